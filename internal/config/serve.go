package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/pflag"
)

// ServeConfig holds configuration for the serve command.
type ServeConfig struct {
	Source          SourceConfig
	Listen          string
	ShutdownTimeout time.Duration
	LogLevel        string
}

// LoadServe merges config file, environment variables, and flags into ServeConfig.
func LoadServe(cfgFile string, flags *pflag.FlagSet) (ServeConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]any{
		"listen":           ":8080",
		"shutdown-timeout": 10 * time.Second,
	})
	if err != nil {
		return ServeConfig{}, err
	}

	source, err := loadSource(v)
	if err != nil {
		return ServeConfig{}, err
	}

	cfg := ServeConfig{
		Source:          source,
		Listen:          strings.TrimSpace(v.GetString("listen")),
		ShutdownTimeout: v.GetDuration("shutdown-timeout"),
		LogLevel:        v.GetString("log-level"),
	}
	if cfg.Listen == "" {
		return ServeConfig{}, fmt.Errorf("listen address is required")
	}
	return cfg, nil
}
