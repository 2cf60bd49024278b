package config

import (
	"fmt"
	"strings"

	"github.com/spf13/pflag"
)

// Output formats accepted by the history command.
const (
	FormatTable = "table"
	FormatJSON  = "json"
	FormatJSONL = "jsonl"
)

// HistoryConfig holds configuration for the history command.
type HistoryConfig struct {
	Source   SourceConfig
	Address  string
	Format   string
	Out      string
	PGDSN    string
	LogLevel string
}

// LoadHistory merges config file, environment variables, and flags into HistoryConfig.
func LoadHistory(cfgFile string, flags *pflag.FlagSet) (HistoryConfig, error) {
	v, err := newViper(cfgFile, flags, map[string]any{
		"format": FormatTable,
	})
	if err != nil {
		return HistoryConfig{}, err
	}

	source, err := loadSource(v)
	if err != nil {
		return HistoryConfig{}, err
	}

	cfg := HistoryConfig{
		Source:   source,
		Address:  strings.TrimSpace(v.GetString("address")),
		Format:   strings.ToLower(strings.TrimSpace(v.GetString("format"))),
		Out:      strings.TrimSpace(v.GetString("out")),
		PGDSN:    strings.TrimSpace(v.GetString("pg-dsn")),
		LogLevel: v.GetString("log-level"),
	}

	switch cfg.Format {
	case FormatTable, FormatJSON, FormatJSONL:
	default:
		return HistoryConfig{}, fmt.Errorf("unsupported format %q", cfg.Format)
	}

	return cfg, nil
}
