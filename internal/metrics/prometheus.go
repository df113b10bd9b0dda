package metrics

import (
	"fmt"
	"sync"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	once     sync.Once
	registry *Registry
)

// Registry holds the firewall integration metrics.
type Registry struct {
	reg *prometheus.Registry

	DescriptorsBuilt   *prometheus.CounterVec
	DescriptorErrors   *prometheus.CounterVec
	ValidationFailures prometheus.Counter
	IdentityDrift      prometheus.Gauge
	Registrations      *prometheus.CounterVec
}

// Get returns the global metrics registry, creating it if necessary.
func Get() *Registry {
	once.Do(func() {
		registry = New()
	})
	return registry
}

// New creates an independent registry. Tests use it to avoid sharing
// counters with the global one.
func New() *Registry {
	reg := prometheus.NewRegistry()
	factory := promauto.With(reg)

	return &Registry{
		reg: reg,
		DescriptorsBuilt: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wfp_descriptors_built_total",
			Help: "Provider and sublayer descriptors built",
		}, []string{"kind", "flavor"}),
		DescriptorErrors: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wfp_descriptor_errors_total",
			Help: "Descriptor builds rejected for missing required fields",
		}, []string{"kind"}),
		ValidationFailures: factory.NewCounter(prometheus.CounterOpts{
			Name: "wfp_catalog_validation_failures_total",
			Help: "Catalog validations that found invariant violations",
		}),
		IdentityDrift: factory.NewGauge(prometheus.GaugeOpts{
			Name: "wfp_identity_drift",
			Help: "Logical objects whose compiled key differs from the recorded one",
		}),
		Registrations: factory.NewCounterVec(prometheus.CounterOpts{
			Name: "wfp_registrations_total",
			Help: "Descriptors handed to the registrar, by result",
		}, []string{"kind", "result"}),
	}
}

// Gatherer exposes the underlying registry.
func (r *Registry) Gatherer() prometheus.Gatherer {
	return r.reg
}

// WriteTextfile writes the current metrics in the text exposition format,
// for node-exporter style textfile collectors.
func (r *Registry) WriteTextfile(path string) error {
	if err := prometheus.WriteToTextfile(path, r.reg); err != nil {
		return fmt.Errorf("failed to write metrics textfile: %w", err)
	}
	return nil
}
