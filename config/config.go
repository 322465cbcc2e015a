package config

import (
	"fmt"
	"strings"

	log "github.com/sirupsen/logrus"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/submersibletoaster/acctocr"
)

// EnvPrefix - environment variables ACCTOCR_SCAN_WORKERS etc. override defaults
const EnvPrefix = "ACCTOCR"

// Config holds all application configuration.
type Config struct {
	Log    LogConfig
	Scan   ScanConfig
	Output OutputConfig
	Debug  DebugConfig
}

// LogConfig holds logging settings.
type LogConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
}

// ScanConfig holds block parsing settings.
type ScanConfig struct {
	Workers int    `mapstructure:"workers"`
	Mode    string `mapstructure:"mode"`
}

// OutputConfig holds result output settings.
type OutputConfig struct {
	Color    bool `mapstructure:"color"`
	Progress bool `mapstructure:"progress"`
}

// DebugConfig holds debug artefact settings. An empty Dir disables them.
type DebugConfig struct {
	Dir   string `mapstructure:"dir"`
	Scale int    `mapstructure:"scale"`
}

// flagKeys maps command line flags onto configuration keys.
var flagKeys = map[string]string{
	"workers":     "scan.workers",
	"mode":        "scan.mode",
	"color":       "output.color",
	"progress":    "output.progress",
	"debug-dir":   "debug.dir",
	"debug-scale": "debug.scale",
	"log-level":   "log.level",
}

// Load reads configuration from defaults, then the optional config file,
// then ACCTOCR_ environment variables, then any flags set on the command line.
func Load(flags *pflag.FlagSet, file string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "text")
	v.SetDefault("scan.workers", 4)
	v.SetDefault("scan.mode", acctocr.ModeCorrect.String())
	v.SetDefault("output.color", false)
	v.SetDefault("output.progress", false)
	v.SetDefault("debug.dir", "")
	v.SetDefault("debug.scale", 1)

	if file != "" {
		v.SetConfigFile(file)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", file, err)
		}
	}

	if flags != nil {
		for name, key := range flagKeys {
			if f := flags.Lookup(name); f != nil {
				if err := v.BindPFlag(key, f); err != nil {
					return nil, fmt.Errorf("binding flag %s: %w", name, err)
				}
			}
		}
	}

	cfg := &Config{
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
		},
		Scan: ScanConfig{
			Workers: v.GetInt("scan.workers"),
			Mode:    v.GetString("scan.mode"),
		},
		Output: OutputConfig{
			Color:    v.GetBool("output.color"),
			Progress: v.GetBool("output.progress"),
		},
		Debug: DebugConfig{
			Dir:   v.GetString("debug.dir"),
			Scale: v.GetInt("debug.scale"),
		},
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate rejects settings the scanner cannot run with.
func (c *Config) Validate() error {
	if c.Scan.Workers < 1 {
		return fmt.Errorf("scan.workers must be at least 1, got %d", c.Scan.Workers)
	}
	if c.Debug.Scale < 1 {
		return fmt.Errorf("debug.scale must be at least 1, got %d", c.Debug.Scale)
	}
	if _, err := acctocr.ParseMode(c.Scan.Mode); err != nil {
		return fmt.Errorf("scan.mode: %w", err)
	}
	if _, err := log.ParseLevel(c.Log.Level); err != nil {
		return fmt.Errorf("log.level: %w", err)
	}
	switch c.Log.Format {
	case "text", "json":
	default:
		return fmt.Errorf("log.format must be text or json, got %q", c.Log.Format)
	}
	return nil
}

// Mode returns the configured parse mode.
func (c *Config) Mode() acctocr.Mode {
	m, _ := acctocr.ParseMode(c.Scan.Mode)
	return m
}

// ApplyLogging configures the standard logrus logger.
func (c *Config) ApplyLogging(verbose bool) {
	level, err := log.ParseLevel(c.Log.Level)
	if err != nil {
		level = log.InfoLevel
	}
	if verbose {
		level = log.DebugLevel
	}
	log.SetLevel(level)
	if c.Log.Format == "json" {
		log.SetFormatter(&log.JSONFormatter{})
	} else {
		log.SetFormatter(&log.TextFormatter{DisableTimestamp: true})
	}
}
