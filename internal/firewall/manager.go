package firewall

import (
	"errors"
	"fmt"

	"github.com/RostamVPN/mullvadvpn-app/internal/ledger"
	"github.com/RostamVPN/mullvadvpn-app/internal/logging"
	"github.com/RostamVPN/mullvadvpn-app/internal/metrics"
	"github.com/RostamVPN/mullvadvpn-app/internal/wfp"
)

// Manager builds, checks and registers the integration's engine objects.
type Manager struct {
	logger  *logging.Logger
	metrics *metrics.Registry
	ledger  *ledger.Store
}

// Option configures a Manager.
type Option func(*Manager)

// WithLedger enables identity drift checks against l.
func WithLedger(l *ledger.Store) Option {
	return func(m *Manager) { m.ledger = l }
}

// WithMetrics records metrics in r instead of the global registry.
func WithMetrics(r *metrics.Registry) Option {
	return func(m *Manager) { m.metrics = r }
}

// NewManager creates a manager. A nil logger uses the default logger.
func NewManager(logger *logging.Logger, opts ...Option) *Manager {
	if logger == nil {
		logger = logging.Default()
	}
	m := &Manager{
		logger:  logger.WithComponent("firewall"),
		metrics: metrics.Get(),
	}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// Metrics returns the registry the manager records into.
func (m *Manager) Metrics() *metrics.Registry {
	return m.metrics
}

// Prepare builds and validates the catalog.
func (m *Manager) Prepare() (*wfp.Catalog, error) {
	catalog, err := wfp.BuildCatalog()
	if err != nil {
		var cfgErr *wfp.ConfigError
		if errors.As(err, &cfgErr) {
			m.metrics.DescriptorErrors.WithLabelValues(string(cfgErr.Kind)).Inc()
		}
		m.logger.Error("descriptor build failed", "error", err)
		return nil, err
	}

	for _, step := range catalog.RegistrationOrder() {
		m.metrics.DescriptorsBuilt.WithLabelValues(string(step.Kind), step.Flavor.String()).Inc()
		m.logger.Debug("built descriptor",
			"flavor", step.Flavor.String(),
			"name", step.Name,
			"key", step.Key.String(),
			"weight", uint16(step.Weight))
	}

	if err := catalog.Validate(); err != nil {
		m.metrics.ValidationFailures.Inc()
		m.logger.Error("catalog validation failed", "error", err)
		return nil, err
	}
	return catalog, nil
}

// CheckIdentity compares the catalog keys against the ledger. Without a
// ledger it always succeeds.
func (m *Manager) CheckIdentity(c *wfp.Catalog) error {
	if m.ledger == nil {
		return nil
	}

	err := m.ledger.CheckDrift(c.Entries())
	var drift *ledger.DriftError
	switch {
	case errors.As(err, &drift):
		m.metrics.IdentityDrift.Set(float64(len(drift.Drifts)))
		for _, d := range drift.Drifts {
			m.logger.Warn("identity drift",
				"name", string(d.Name),
				"recorded", d.Recorded.String(),
				"compiled", d.Compiled.String())
		}
		return err
	case err != nil:
		return fmt.Errorf("ledger check failed: %w", err)
	}

	m.metrics.IdentityDrift.Set(0)
	return nil
}

// RecordIdentity stores the catalog keys in the ledger. With accept set,
// drifted keys are overwritten and the migration is logged as an audit
// event.
func (m *Manager) RecordIdentity(c *wfp.Catalog, accept bool) error {
	if m.ledger == nil {
		return nil
	}

	entries := c.Entries()
	if !accept {
		return m.ledger.Record(entries)
	}

	if err := m.ledger.Accept(entries); err != nil {
		return err
	}
	m.metrics.IdentityDrift.Set(0)
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, string(e.Name))
	}
	m.logger.Audit("accept_identity", "ledger", map[string]any{"names": names})
	return nil
}

// ApplyOptions controls Apply.
type ApplyOptions struct {
	// AcceptDrift registers even when keys differ from the ledger and
	// records the new keys.
	AcceptDrift bool
}

// Apply prepares the catalog, checks identity, hands every object to r and
// records the keys that were registered.
func (m *Manager) Apply(r wfp.Registrar, opts ApplyOptions) (*wfp.Catalog, error) {
	catalog, err := m.Prepare()
	if err != nil {
		return nil, err
	}

	if err := m.CheckIdentity(catalog); err != nil {
		if !opts.AcceptDrift || !errors.Is(err, ledger.ErrDrift) {
			return nil, err
		}
		m.logger.Warn("registering despite identity drift")
	}

	if err := wfp.Register(&countingRegistrar{next: r, metrics: m.metrics}, catalog); err != nil {
		m.logger.Error("registration failed", "error", err)
		return nil, err
	}
	m.logger.Info("registered firewall objects",
		"providers", len(catalog.Providers()),
		"sublayers", len(catalog.Sublayers()))

	if err := m.RecordIdentity(catalog, opts.AcceptDrift); err != nil {
		return nil, fmt.Errorf("failed to record identities: %w", err)
	}
	return catalog, nil
}

// countingRegistrar counts registrar results per kind.
type countingRegistrar struct {
	next    wfp.Registrar
	metrics *metrics.Registry
}

func (c *countingRegistrar) observe(kind wfp.Kind, err error) error {
	result := "ok"
	if err != nil {
		result = "error"
	}
	c.metrics.Registrations.WithLabelValues(string(kind), result).Inc()
	return err
}

func (c *countingRegistrar) AddProvider(p wfp.Provider) error {
	return c.observe(wfp.KindProvider, c.next.AddProvider(p))
}

func (c *countingRegistrar) AddSublayer(s wfp.Sublayer) error {
	return c.observe(wfp.KindSublayer, c.next.AddSublayer(s))
}
