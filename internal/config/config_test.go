package config

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"
	"time"

	"github.com/spf13/pflag"
)

func historyFlags() *pflag.FlagSet {
	flags := pflag.NewFlagSet("history", pflag.ContinueOnError)
	flags.String("address", "", "")
	flags.StringSlice("chains", nil, "")
	flags.String("api-url", "", "")
	flags.String("fixture", "", "")
	flags.String("format", "table", "")
	flags.String("out", "", "")
	flags.String("pg-dsn", "", "")
	flags.Duration("fetch-timeout", 15*time.Second, "")
	flags.String("log-level", "info", "")
	return flags
}

func TestLoadHistoryFlags(t *testing.T) {
	flags := historyFlags()
	if err := flags.Parse([]string{"--address", " 0xabc ", "--chains", "1,137,1", "--format", "JSON", "--fetch-timeout", "3s"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}

	cfg, err := LoadHistory("", flags)
	if err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	if cfg.Address != "0xabc" {
		t.Fatalf("address mismatch: %q", cfg.Address)
	}
	if !reflect.DeepEqual(cfg.Source.ChainIDs, []uint64{1, 137}) {
		t.Fatalf("chain ids mismatch: %v", cfg.Source.ChainIDs)
	}
	if cfg.Format != FormatJSON {
		t.Fatalf("format mismatch: %q", cfg.Format)
	}
	if cfg.Source.FetchTimeout != 3*time.Second {
		t.Fatalf("fetch timeout mismatch: %v", cfg.Source.FetchTimeout)
	}
	if cfg.Source.RequestTimeout != 30*time.Second {
		t.Fatalf("request timeout default mismatch: %v", cfg.Source.RequestTimeout)
	}
}

func TestLoadHistoryEnv(t *testing.T) {
	t.Setenv("LENDINGSCOPE_CHAINS", "10, 8453")
	t.Setenv("LENDINGSCOPE_PG_DSN", "postgres://localhost/lending")

	cfg, err := LoadHistory("", historyFlags())
	if err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	if !reflect.DeepEqual(cfg.Source.ChainIDs, []uint64{10, 8453}) {
		t.Fatalf("chain ids mismatch: %v", cfg.Source.ChainIDs)
	}
	if cfg.PGDSN != "postgres://localhost/lending" {
		t.Fatalf("pg dsn mismatch: %q", cfg.PGDSN)
	}
	if cfg.Format != FormatTable {
		t.Fatalf("default format mismatch: %q", cfg.Format)
	}
}

func TestLoadHistoryConfigFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "lendingscope.yaml")
	content := "address: \"0x1111111111111111111111111111111111111111\"\nchains: [1, 42161]\nformat: jsonl\n"
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := LoadHistory(path, nil)
	if err != nil {
		t.Fatalf("LoadHistory: %v", err)
	}
	if cfg.Address != "0x1111111111111111111111111111111111111111" {
		t.Fatalf("address mismatch: %q", cfg.Address)
	}
	if !reflect.DeepEqual(cfg.Source.ChainIDs, []uint64{1, 42161}) {
		t.Fatalf("chain ids mismatch: %v", cfg.Source.ChainIDs)
	}
	if cfg.Format != FormatJSONL {
		t.Fatalf("format mismatch: %q", cfg.Format)
	}
}

func TestLoadHistoryRejectsBadInput(t *testing.T) {
	flags := historyFlags()
	if err := flags.Parse([]string{"--chains", "mainnet"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := LoadHistory("", flags); err == nil {
		t.Fatalf("expected error for non-numeric chain id")
	}

	flags = historyFlags()
	if err := flags.Parse([]string{"--format", "xml"}); err != nil {
		t.Fatalf("parse flags: %v", err)
	}
	if _, err := LoadHistory("", flags); err == nil {
		t.Fatalf("expected error for unsupported format")
	}
}

func TestLoadServeDefaults(t *testing.T) {
	cfg, err := LoadServe("", nil)
	if err != nil {
		t.Fatalf("LoadServe: %v", err)
	}
	if cfg.Listen != ":8080" {
		t.Fatalf("listen mismatch: %q", cfg.Listen)
	}
	if cfg.ShutdownTimeout != 10*time.Second {
		t.Fatalf("shutdown timeout mismatch: %v", cfg.ShutdownTimeout)
	}
	if cfg.Source.ChainIDs != nil {
		t.Fatalf("expected no chain ids, got %v", cfg.Source.ChainIDs)
	}
	if cfg.LogLevel != "info" {
		t.Fatalf("log level mismatch: %q", cfg.LogLevel)
	}
}

func TestSplitAndClean(t *testing.T) {
	got := splitAndClean(" a, ,b ,")
	if !reflect.DeepEqual(got, []string{"a", "b"}) {
		t.Fatalf("unexpected result: %v", got)
	}
	if splitAndClean("") != nil {
		t.Fatalf("expected nil for empty input")
	}
}
