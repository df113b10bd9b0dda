package cmd

import (
	"io"

	"github.com/RostamVPN/mullvadvpn-app/internal/brand"
)

// RunVersion prints the build version.
func RunVersion(w io.Writer) {
	Printer.Fprintf(w, "%s %s (%s)\n", brand.BinaryName, brand.Version, brand.GitCommit)
}
