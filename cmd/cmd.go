// Package cmd implements the winfw-objects subcommands.
package cmd

import (
	"fmt"

	"github.com/RostamVPN/mullvadvpn-app/internal/brand"
	"github.com/RostamVPN/mullvadvpn-app/internal/config"
	"github.com/RostamVPN/mullvadvpn-app/internal/firewall"
	"github.com/RostamVPN/mullvadvpn-app/internal/i18n"
	"github.com/RostamVPN/mullvadvpn-app/internal/ledger"
	"github.com/RostamVPN/mullvadvpn-app/internal/logging"
)

// Printer is the locale-aware printer for CLI output.
var Printer = i18n.NewCLIPrinter()

// env is what every subcommand that touches the ledger needs.
type env struct {
	cfg     *config.Config
	logger  *logging.Logger
	ledger  *ledger.Store
	manager *firewall.Manager
}

// setup loads the configuration, configures logging and opens the ledger
// unless it is disabled. Callers must call close.
func setup(configFile string) (*env, error) {
	if configFile == "" {
		configFile = brand.GetConfigPath()
	}
	cfg, err := config.LoadFileOrDefault(configFile)
	if err != nil {
		logging.Error("configuration invalid", "file", configFile, "error", err)
		return nil, fmt.Errorf("configuration invalid: %w", err)
	}

	logger := logging.New(cfg.LoggingConfig())
	logging.SetDefault(logger)

	e := &env{cfg: cfg, logger: logger}
	opts := []firewall.Option{}
	if !cfg.Ledger.Disabled {
		store, err := ledger.Open(ledger.Options{
			Path:    cfg.Ledger.Path,
			WALMode: true,
			Version: brand.Version,
		})
		if err != nil {
			return nil, err
		}
		e.ledger = store
		opts = append(opts, firewall.WithLedger(store))
	}
	e.manager = firewall.NewManager(logger, opts...)
	return e, nil
}

func (e *env) close() {
	if e.ledger != nil {
		if err := e.ledger.Close(); err != nil {
			e.logger.Warn("failed to close ledger", "error", err)
		}
	}
}

// writeMetrics exports metrics when a textfile is configured.
func (e *env) writeMetrics() {
	if e.cfg.Metrics.Textfile == "" {
		return
	}
	if err := e.manager.Metrics().WriteTextfile(e.cfg.Metrics.Textfile); err != nil {
		e.logger.Warn("metrics export failed", "error", err)
	}
}
