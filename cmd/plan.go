package cmd

import (
	"fmt"
	"io"

	"github.com/RostamVPN/mullvadvpn-app/internal/firewall"
	"github.com/RostamVPN/mullvadvpn-app/internal/logging"
	"github.com/RostamVPN/mullvadvpn-app/internal/wfp"
)

// RunPlan prints the registrar calls a registration would make, without
// touching the engine or the ledger.
func RunPlan(w io.Writer) error {
	m := firewall.NewManager(logging.Default())
	catalog, err := m.Prepare()
	if err != nil {
		return err
	}

	var dry wfp.DryRunRegistrar
	if err := wfp.Register(&dry, catalog); err != nil {
		return err
	}
	for i, op := range dry.Ops {
		fmt.Fprintf(w, "%d. %s\n", i+1, op)
	}
	return nil
}
