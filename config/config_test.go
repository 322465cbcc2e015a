package config

import (
	"os"
	"path/filepath"
	"testing"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/submersibletoaster/acctocr"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, "info", cfg.Log.Level)
	assert.Equal(t, "text", cfg.Log.Format)
	assert.Equal(t, 4, cfg.Scan.Workers)
	assert.Equal(t, acctocr.ModeCorrect, cfg.Mode())
	assert.False(t, cfg.Output.Color)
	assert.False(t, cfg.Output.Progress)
	assert.Empty(t, cfg.Debug.Dir)
	assert.Equal(t, 1, cfg.Debug.Scale)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ACCTOCR_SCAN_WORKERS", "9")
	t.Setenv("ACCTOCR_SCAN_MODE", "validate")
	t.Setenv("ACCTOCR_OUTPUT_COLOR", "true")

	cfg, err := Load(nil, "")
	require.NoError(t, err)
	assert.Equal(t, 9, cfg.Scan.Workers)
	assert.Equal(t, acctocr.ModeValidate, cfg.Mode())
	assert.True(t, cfg.Output.Color)
}

func TestLoadFlagsWin(t *testing.T) {
	t.Setenv("ACCTOCR_SCAN_WORKERS", "9")
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("workers", 1, "")
	fs.String("mode", "correct", "")
	require.NoError(t, fs.Parse([]string{"--workers=2", "--mode=raw"}))

	cfg, err := Load(fs, "")
	require.NoError(t, err)
	assert.Equal(t, 2, cfg.Scan.Workers)
	assert.Equal(t, acctocr.ModeRaw, cfg.Mode())
}

func TestLoadUnsetFlagKeepsEnv(t *testing.T) {
	t.Setenv("ACCTOCR_SCAN_WORKERS", "7")
	fs := pflag.NewFlagSet("test", pflag.ContinueOnError)
	fs.Int("workers", 1, "")
	require.NoError(t, fs.Parse(nil))

	cfg, err := Load(fs, "")
	require.NoError(t, err)
	assert.Equal(t, 7, cfg.Scan.Workers)
}

func TestLoadFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "acctocr.yaml")
	require.NoError(t, os.WriteFile(path, []byte("scan:\n  workers: 3\nlog:\n  format: json\n"), 0o644))

	cfg, err := Load(nil, path)
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Scan.Workers)
	assert.Equal(t, "json", cfg.Log.Format)

	_, err = Load(nil, filepath.Join(t.TempDir(), "missing.yaml"))
	assert.Error(t, err)
}

func TestValidate(t *testing.T) {
	base := Config{Log: LogConfig{Level: "info", Format: "text"}, Scan: ScanConfig{Workers: 1, Mode: "correct"}, Debug: DebugConfig{Scale: 1}}
	require.NoError(t, base.Validate())

	bad := base
	bad.Scan.Workers = 0
	assert.Error(t, bad.Validate())

	bad = base
	bad.Scan.Mode = "guess"
	assert.Error(t, bad.Validate())

	bad = base
	bad.Log.Level = "loud"
	assert.Error(t, bad.Validate())

	bad = base
	bad.Log.Format = "xml"
	assert.Error(t, bad.Validate())

	bad = base
	bad.Debug.Scale = 0
	assert.Error(t, bad.Validate())
}

func TestApplyLogging(t *testing.T) {
	defer log.SetLevel(log.InfoLevel)
	defer log.SetFormatter(&log.TextFormatter{})

	cfg := &Config{Log: LogConfig{Level: "warn", Format: "json"}}
	cfg.ApplyLogging(false)
	assert.Equal(t, log.WarnLevel, log.GetLevel())
	_, isJSON := log.StandardLogger().Formatter.(*log.JSONFormatter)
	assert.True(t, isJSON)

	cfg.ApplyLogging(true)
	assert.Equal(t, log.DebugLevel, log.GetLevel())
}
