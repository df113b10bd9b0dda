package metrics

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGetIsSingleton(t *testing.T) {
	assert.Same(t, Get(), Get())
	assert.NotSame(t, Get(), New())
}

func TestCounters(t *testing.T) {
	r := New()

	r.DescriptorsBuilt.WithLabelValues("provider", "provider").Inc()
	r.DescriptorsBuilt.WithLabelValues("sublayer", "sublayer_dns").Add(2)
	r.ValidationFailures.Inc()
	r.IdentityDrift.Set(3)

	assert.Equal(t, 1.0, testutil.ToFloat64(r.DescriptorsBuilt.WithLabelValues("provider", "provider")))
	assert.Equal(t, 2.0, testutil.ToFloat64(r.DescriptorsBuilt.WithLabelValues("sublayer", "sublayer_dns")))
	assert.Equal(t, 1.0, testutil.ToFloat64(r.ValidationFailures))
	assert.Equal(t, 3.0, testutil.ToFloat64(r.IdentityDrift))
}

func TestWriteTextfile(t *testing.T) {
	r := New()
	r.IdentityDrift.Set(1)

	path := filepath.Join(t.TempDir(), "winfw.prom")
	require.NoError(t, r.WriteTextfile(path))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.True(t, strings.Contains(string(data), "wfp_identity_drift 1"))
}
