package cmd

import (
	"errors"
	"fmt"

	"github.com/RostamVPN/mullvadvpn-app/internal/ledger"
)

// RunCheck builds the catalog, validates its invariants and compares the
// keys against the identity ledger.
func RunCheck(configFile string) error {
	e, err := setup(configFile)
	if err != nil {
		return err
	}
	defer e.close()
	defer e.writeMetrics()

	catalog, err := e.manager.Prepare()
	if err != nil {
		return fmt.Errorf("catalog invalid: %w", err)
	}
	Printer.Printf("Catalog valid!\n")
	Printer.Printf("Providers: %d\n", len(catalog.Providers()))
	Printer.Printf("Sublayers: %d\n", len(catalog.Sublayers()))

	if e.ledger == nil {
		Printer.Printf("Identity ledger: disabled\n")
		return nil
	}

	err = e.manager.CheckIdentity(catalog)
	var drift *ledger.DriftError
	if errors.As(err, &drift) {
		Printer.Printf("Identity drift in %d object(s):\n", len(drift.Drifts))
		for _, d := range drift.Drifts {
			fmt.Printf("  %s: recorded %s, compiled %s\n", d.Name, d.Recorded, d.Compiled)
		}
		return err
	}
	if err != nil {
		return err
	}
	Printer.Printf("Identity ledger: no drift\n")
	return nil
}
