package main

import (
	"flag"
	"os"

	"github.com/RostamVPN/mullvadvpn-app/cmd"
	"github.com/RostamVPN/mullvadvpn-app/internal/brand"
	"github.com/RostamVPN/mullvadvpn-app/internal/i18n"
)

var printer = i18n.NewCLIPrinter()

func main() {
	if len(os.Args) < 2 {
		printUsage()
		os.Exit(1)
	}

	defaultConfig := brand.GetConfigPath()

	switch os.Args[1] {
	case "show":
		showFlags := flag.NewFlagSet("show", flag.ExitOnError)
		format := showFlags.String("format", "text", "Output format: text, json, yaml or hcl")
		showFlags.StringVar(format, "f", "text", "Output format (short)")
		flavor := showFlags.String("flavor", "", "Only show this object (e.g. sublayer_dns)")
		showFlags.Parse(os.Args[2:])

		if err := cmd.RunShow(os.Stdout, *format, *flavor); err != nil {
			printer.Fprintf(os.Stderr, "Show failed: %v\n", err)
			os.Exit(1)
		}

	case "check":
		checkFlags := flag.NewFlagSet("check", flag.ExitOnError)
		configFile := checkFlags.String("config", defaultConfig, "Configuration file")
		checkFlags.StringVar(configFile, "c", defaultConfig, "Configuration file (short)")
		checkFlags.Parse(os.Args[2:])

		if err := cmd.RunCheck(*configFile); err != nil {
			printer.Fprintf(os.Stderr, "Check failed: %v\n", err)
			os.Exit(1)
		}

	case "record":
		recordFlags := flag.NewFlagSet("record", flag.ExitOnError)
		configFile := recordFlags.String("config", defaultConfig, "Configuration file")
		recordFlags.StringVar(configFile, "c", defaultConfig, "Configuration file (short)")
		acceptDrift := recordFlags.Bool("accept-drift", false, "Overwrite recorded keys that changed (migration)")
		recordFlags.Parse(os.Args[2:])

		if err := cmd.RunRecord(*configFile, *acceptDrift); err != nil {
			printer.Fprintf(os.Stderr, "Record failed: %v\n", err)
			os.Exit(1)
		}

	case "diff":
		diffFlags := flag.NewFlagSet("diff", flag.ExitOnError)
		configFile := diffFlags.String("config", defaultConfig, "Configuration file")
		diffFlags.StringVar(configFile, "c", defaultConfig, "Configuration file (short)")
		diffFlags.Parse(os.Args[2:])

		if err := cmd.RunDiff(*configFile); err != nil {
			printer.Fprintf(os.Stderr, "%v\n", err)
			os.Exit(1)
		}

	case "plan":
		if err := cmd.RunPlan(os.Stdout); err != nil {
			printer.Fprintf(os.Stderr, "Plan failed: %v\n", err)
			os.Exit(1)
		}

	case "version", "-v", "--version":
		cmd.RunVersion(os.Stdout)

	case "help", "-h", "--help":
		printUsage()

	default:
		printer.Fprintf(os.Stderr, "Unknown command: %s\n", os.Args[1])
		printUsage()
		os.Exit(1)
	}
}

func printUsage() {
	printer.Printf(`%s - %s firewall registration objects

Usage: %s <command> [options]

Commands:
  show      Print provider and sublayer descriptors
            Options: --format (-f) text|json|yaml|hcl, --flavor <name>
  check     Validate the catalog and compare keys against the ledger
            Options: --config (-c) <file>
  record    Store the compiled keys in the identity ledger
            Options: --config (-c) <file>, --accept-drift
  diff      Diff recorded keys against compiled keys
            Options: --config (-c) <file>
  plan      Print the registration order (dry run)
  version   Print version

Examples:
  %s show --format json
  %s show --flavor sublayer_dns
  %s check -c winfw.hcl
  %s record --accept-drift
`,
		brand.BinaryName, brand.ProductName(),
		brand.BinaryName,
		brand.BinaryName, brand.BinaryName, brand.BinaryName, brand.BinaryName)
}
