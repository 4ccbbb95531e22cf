package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("API_KEY", "k")
	t.Setenv("API_SECRET", "s")
	t.Setenv("TESTNET", "")
	t.Setenv("SYMBOL", "")

	cfg := Load()
	assert.Equal(t, "k", cfg.APIKey)
	assert.True(t, cfg.Testnet, "testnet must be the default")
	assert.Equal(t, "BTCUSDT", cfg.Symbol)
	assert.Equal(t, "0.001", cfg.QuantityStep)
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "0.001", cfg.Step().String())
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("API_KEY", "k")
	t.Setenv("API_SECRET", "s")
	t.Setenv("TESTNET", "false")
	t.Setenv("SYMBOL", "ETHUSDT")

	cfg := Load()
	assert.False(t, cfg.Testnet)
	assert.Equal(t, "ETHUSDT", cfg.Symbol)
}

func TestValidate(t *testing.T) {
	cfg := Config{APIKey: "k", APISecret: "s", Symbol: "BTCUSDT", QuantityStep: "0.001"}
	assert.NoError(t, cfg.Validate())

	missingKey := cfg
	missingKey.APIKey = ""
	assert.Error(t, missingKey.Validate())

	badStep := cfg
	badStep.QuantityStep = "tiny"
	assert.Error(t, badStep.Validate())
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	data := []byte(`api_key: "file-key"
api_secret: "file-secret"
testnet: true
symbol: "ETHUSDT"
quantity_step: "0.01"
listen_addr: ":9090"
chart_timeframe: "15m"
chart_limit: 80
`)
	require.NoError(t, os.WriteFile(path, data, 0o644))

	cfg, err := LoadFile(path)
	require.NoError(t, err)
	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, "ETHUSDT", cfg.Symbol)
	assert.Equal(t, ":9090", cfg.ListenAddr)
	assert.Equal(t, 80, cfg.ChartLimit)
	assert.Equal(t, "0.01", cfg.Step().String())

	_, err = LoadFile(filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}
