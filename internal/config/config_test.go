package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"aws-cost-calc/internal/errors"
)

func TestLoadMissingFileReturnsDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.json"))
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoadOverlaysFileOnDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{
		"archive": {"periods": 12, "rates": {"storage_gb_month": 0.002}},
		"server": {"address": ":9090"}
	}`), 0644))

	cfg, err := Load(path)
	require.NoError(t, err)

	assert.Equal(t, 12, cfg.Archive.Periods)
	assert.Equal(t, 0.002, cfg.Archive.Rates.StorageGBMonth)
	assert.Equal(t, ":9090", cfg.Server.Address)
	// untouched keys keep defaults
	assert.Equal(t, 0.05, cfg.Archive.Rates.PutPer1K)
	assert.Equal(t, int64(1000), cfg.Archive.Puts)
	assert.Equal(t, 730, cfg.Endpoint.Hours)
}

func TestLoadRejectsMalformedJSON(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cfg.json")
	require.NoError(t, os.WriteFile(path, []byte(`{"archive": `), 0644))

	_, err := Load(path)
	require.Error(t, err)
	assert.True(t, errors.IsType(err, errors.TypeConfig))
}

func TestApplyEnvOverridesOnlySetVariables(t *testing.T) {
	t.Setenv("AWSCOSTCALC_SERVER_ADDRESS", ":7070")
	t.Setenv("AWSCOSTCALC_ARCHIVE_RATES_STORAGE_GB_MONTH", "0.0036")
	t.Setenv("AWSCOSTCALC_DEDICATED_LINE_PORT_TYPE", "hosted")

	cfg := Default()
	require.NoError(t, cfg.ApplyEnv())

	assert.Equal(t, ":7070", cfg.Server.Address)
	assert.Equal(t, 0.0036, cfg.Archive.Rates.StorageGBMonth)
	assert.Equal(t, "hosted", cfg.DedicatedLine.PortType)
	assert.Equal(t, 0.10, cfg.Archive.Rates.StandardRecoveryPerGB)
	assert.Equal(t, "1.0", cfg.Version)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "cfg.json")
	cfg := Default()
	cfg.Endpoint.AZCount = 3

	require.NoError(t, cfg.Save(path))

	loaded, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 3, loaded.Endpoint.AZCount)
}
