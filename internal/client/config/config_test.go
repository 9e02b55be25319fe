package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg := &Config{}
	cfg.LoadDefaults()

	require.Equal(t, "http://127.0.0.1:8000", cfg.ServerBaseURL)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, "amparo.db", cfg.DatabasePath)
	require.Equal(t, 20*time.Second, cfg.NotifierTick)
}

func TestParseJson_OverridesDefaults(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "conf.json")
	content := `{
		"server_base_url": "http://backend:9000",
		"request_timeout": "30s",
		"database_path": "/tmp/companion.db",
		"notifier_tick": "5s"
	}`
	require.NoError(t, os.WriteFile(file, []byte(content), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cli", "-c", file}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, "http://backend:9000", cfg.ServerBaseURL)
	require.Equal(t, 30*time.Second, cfg.RequestTimeout)
	require.Equal(t, "/tmp/companion.db", cfg.DatabasePath)
	require.Equal(t, 5*time.Second, cfg.NotifierTick)
}

func TestParseJson_PartialFileKeepsDefaults(t *testing.T) {
	dir := t.TempDir()
	file := filepath.Join(dir, "conf.json")
	require.NoError(t, os.WriteFile(file, []byte(`{"server_base_url": "http://x:1"}`), 0o600))

	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cli", "-config", file}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)

	require.Equal(t, "http://x:1", cfg.ServerBaseURL)
	require.Equal(t, 10*time.Second, cfg.RequestTimeout)
	require.Equal(t, "amparo.db", cfg.DatabasePath)
}

func TestParseFlags_Overrides(t *testing.T) {
	oldArgs := os.Args
	defer func() { os.Args = oldArgs }()
	os.Args = []string{"cli", "-a", "http://flagged:8080", "-t", "25", "-i", "7"}

	cfg := &Config{}
	cfg.LoadDefaults()
	parseFlags(cfg)

	require.Equal(t, "http://flagged:8080", cfg.ServerBaseURL)
	require.Equal(t, 25*time.Second, cfg.RequestTimeout)
	require.Equal(t, 7*time.Second, cfg.NotifierTick)
}
