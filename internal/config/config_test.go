package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/RostamVPN/mullvadvpn-app/internal/brand"
	"github.com/RostamVPN/mullvadvpn-app/internal/logging"
)

func TestLoadHCL(t *testing.T) {
	src := `
schema_version = "1.0"

log {
  level = "debug"
  json  = true
}

ledger {
  path = "/var/lib/rostam/ledger.db"
}

metrics {
  textfile = "/var/lib/node_exporter/winfw.prom"
}
`
	cfg, err := LoadHCL([]byte(src), "winfw.hcl")
	require.NoError(t, err)

	assert.Equal(t, "1.0", cfg.SchemaVersion)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.JSON)
	assert.Equal(t, "/var/lib/rostam/ledger.db", cfg.Ledger.Path)
	assert.Equal(t, "/var/lib/node_exporter/winfw.prom", cfg.Metrics.Textfile)

	lc := cfg.LoggingConfig()
	assert.Equal(t, logging.LevelDebug, lc.Level)
	assert.True(t, lc.JSON)
}

func TestLoadHCLDefaults(t *testing.T) {
	cfg, err := LoadHCL([]byte(""), "empty.hcl")
	require.NoError(t, err)

	assert.Equal(t, CurrentSchemaVersion, cfg.SchemaVersion)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, brand.GetLedgerPath(), cfg.Ledger.Path)
	assert.Empty(t, cfg.Metrics.Textfile)
	assert.Equal(t, Default(), cfg)
}

func TestLoadHCLErrors(t *testing.T) {
	tests := []struct {
		name string
		src  string
		want string
	}{
		{"syntax", `log {`, "HCL parse error"},
		{"unknown attribute", `colour = "blue"`, "HCL decode error"},
		{"bad level", "log {\n level = \"chatty\"\n}", "log.level"},
		{"future major", `schema_version = "2.0"`, "unsupported version"},
		{"bad version", `schema_version = "one"`, "schema_version"},
		{"ledger traversal", "ledger {\n path = \"../../ledger.db\"\n}", "ledger.path"},
		{"textfile null byte", "metrics {\n textfile = \"a\\u0000b\"\n}", "metrics.textfile"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			_, err := LoadHCL([]byte(tc.src), "test.hcl")
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.want)
		})
	}
}

func TestValidateLedgerPath(t *testing.T) {
	cfg := Default()
	cfg.Ledger.Path = ""
	errs := cfg.Validate()
	require.True(t, errs.HasErrors())
	assert.Equal(t, "ledger.path", errs[0].Field)

	cfg.Ledger.Disabled = true
	assert.False(t, cfg.Validate().HasErrors())
}

func TestLoadFileOrDefault(t *testing.T) {
	dir := t.TempDir()

	cfg, err := LoadFileOrDefault(filepath.Join(dir, "missing.hcl"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)

	path := filepath.Join(dir, "winfw.hcl")
	require.NoError(t, os.WriteFile(path, []byte("log {\n level = \"warn\"\n}\n"), 0o644))
	cfg, err = LoadFileOrDefault(path)
	require.NoError(t, err)
	assert.Equal(t, "warn", cfg.Log.Level)

	_, err = LoadFile(filepath.Join(dir, "missing.hcl"))
	assert.Error(t, err)
}

func TestParseVersion(t *testing.T) {
	tests := []struct {
		input    string
		expected SchemaVersion
		hasError bool
	}{
		{"", SchemaVersion{1, 0}, false},
		{"1.0", SchemaVersion{1, 0}, false},
		{"2.3", SchemaVersion{2, 3}, false},
		{"1", SchemaVersion{}, true},
		{"x.0", SchemaVersion{}, true},
		{"1.y", SchemaVersion{}, true},
	}

	for _, tc := range tests {
		got, err := ParseVersion(tc.input)
		if tc.hasError {
			assert.Error(t, err, "input %q", tc.input)
			continue
		}
		assert.NoError(t, err)
		assert.Equal(t, tc.expected, got)
	}

	assert.True(t, IsSupportedVersion(SchemaVersion{1, 0}))
	assert.False(t, IsSupportedVersion(SchemaVersion{1, 1}))
	assert.False(t, IsSupportedVersion(SchemaVersion{0, 9}))
	assert.Equal(t, "1.0", SchemaVersion{1, 0}.String())
}
