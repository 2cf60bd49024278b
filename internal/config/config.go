package config

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
)

// EnvPrefix is the prefix of environment variables read by every command.
const EnvPrefix = "LENDINGSCOPE"

// SourceConfig selects where wallet history is read from.
type SourceConfig struct {
	APIURL         string
	Fixture        string
	ChainIDs       []uint64
	FetchTimeout   time.Duration
	RequestTimeout time.Duration
}

// newViper builds a viper instance bound to env vars, flags and the config
// file. Defaults must be applied by the caller before reading values.
func newViper(cfgFile string, flags *pflag.FlagSet, defaults map[string]any) (*viper.Viper, error) {
	v := viper.New()
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetDefault("api-url", "")
	v.SetDefault("fetch-timeout", 15*time.Second)
	v.SetDefault("request-timeout", 30*time.Second)
	v.SetDefault("log-level", "info")
	for key, value := range defaults {
		v.SetDefault(key, value)
	}

	if flags != nil {
		if err := v.BindPFlags(flags); err != nil {
			return nil, fmt.Errorf("bind flags: %w", err)
		}
	}

	if cfgFile != "" {
		v.SetConfigFile(cfgFile)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("read config: %w", err)
		}
	} else {
		v.SetConfigName("config")
		v.AddConfigPath(".")
		if err := v.ReadInConfig(); err != nil {
			if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
				return nil, fmt.Errorf("read config: %w", err)
			}
		}
	}
	return v, nil
}

func loadSource(v *viper.Viper) (SourceConfig, error) {
	chainIDs, err := getUint64Slice(v, "chains")
	if err != nil {
		return SourceConfig{}, err
	}
	return SourceConfig{
		APIURL:         strings.TrimSpace(v.GetString("api-url")),
		Fixture:        strings.TrimSpace(v.GetString("fixture")),
		ChainIDs:       chainIDs,
		FetchTimeout:   v.GetDuration("fetch-timeout"),
		RequestTimeout: v.GetDuration("request-timeout"),
	}, nil
}

func getUint64Slice(v *viper.Viper, key string) ([]uint64, error) {
	items := getStringSlice(v, key)
	if len(items) == 0 {
		return nil, nil
	}
	out := make([]uint64, 0, len(items))
	seen := make(map[uint64]bool, len(items))
	for _, item := range items {
		id, err := strconv.ParseUint(item, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid %s entry %q: %w", key, item, err)
		}
		if seen[id] {
			continue
		}
		seen[id] = true
		out = append(out, id)
	}
	return out, nil
}

func getStringSlice(v *viper.Viper, key string) []string {
	if !v.IsSet(key) {
		return nil
	}

	val := v.Get(key)
	switch typed := val.(type) {
	case []string:
		return splitAndClean(strings.Join(typed, ","))
	case string:
		return splitAndClean(typed)
	case []interface{}:
		items := make([]string, 0, len(typed))
		for _, item := range typed {
			items = append(items, fmt.Sprintf("%v", item))
		}
		return cleanStrings(items)
	default:
		return nil
	}
}

func splitAndClean(input string) []string {
	if input == "" {
		return nil
	}
	parts := strings.Split(input, ",")
	return cleanStrings(parts)
}

func cleanStrings(items []string) []string {
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item == "" {
			continue
		}
		out = append(out, item)
	}
	return out
}
