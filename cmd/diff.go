package cmd

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/pmezard/go-difflib/difflib"

	"github.com/RostamVPN/mullvadvpn-app/internal/ledger"
	"github.com/RostamVPN/mullvadvpn-app/internal/wfp/guids"
)

// errIdentitiesDiffer is returned by RunDiff when the ledger and the
// compiled keys disagree.
var errIdentitiesDiffer = errors.New("identities differ")

// RunDiff prints a unified diff between the recorded and compiled keys.
func RunDiff(configFile string) error {
	e, err := setup(configFile)
	if err != nil {
		return err
	}
	defer e.close()

	if e.ledger == nil {
		return fmt.Errorf("identity ledger is disabled")
	}

	catalog, err := e.manager.Prepare()
	if err != nil {
		return err
	}
	records, err := e.ledger.List()
	if err != nil {
		return err
	}

	text, err := identityDiff(records, catalog.Entries())
	if err != nil {
		return err
	}
	if text == "" {
		Printer.Println("No changes detected.")
		return nil
	}

	Printer.Println("Compiled identities differ from the ledger:")
	fmt.Print(text)
	return errIdentitiesDiffer
}

// identityDiff renders both sides as "name key" lines in registry order and
// returns their unified diff, or "" when they are equal.
func identityDiff(recorded []ledger.Record, compiled []guids.Entry) (string, error) {
	before := make(map[guids.LogicalName]guids.Key, len(recorded))
	for _, r := range recorded {
		before[r.Name] = r.Key
	}
	after := make(map[guids.LogicalName]guids.Key, len(compiled))
	for _, e := range compiled {
		after[e.Name] = e.Key
	}

	a, b := identityLines(before), identityLines(after)
	if a == b {
		return "", nil
	}

	diff := difflib.UnifiedDiff{
		A:        difflib.SplitLines(a),
		B:        difflib.SplitLines(b),
		FromFile: "Recorded",
		ToFile:   "Compiled",
		Context:  3,
	}
	return difflib.GetUnifiedDiffString(diff)
}

func identityLines(keys map[guids.LogicalName]guids.Key) string {
	var b strings.Builder
	for _, e := range guids.All() {
		if k, ok := keys[e.Name]; ok {
			fmt.Fprintf(&b, "%s %s\n", e.Name, k)
		}
	}
	// Names the registry no longer knows still belong in the diff.
	var extra []string
	for name, k := range keys {
		if _, err := guids.KeyFor(name); err != nil {
			extra = append(extra, fmt.Sprintf("%s %s\n", name, k))
		}
	}
	sort.Strings(extra)
	for _, line := range extra {
		b.WriteString(line)
	}
	return b.String()
}
