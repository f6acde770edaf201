package config_test

import (
	"testing"

	"github.com/pauljayakar30/Paninis-eye/internal/platform/config"
)

func TestNewReadsOverridesFromEnvironment(t *testing.T) {
	t.Setenv("PANINI_RULES", "/etc/paninis/rules.yaml")
	t.Setenv("PANINI_STRICT_GRAMMAR", "1")
	t.Setenv("PANINI_BACKEND", "plugin")
	t.Setenv("PANINI_BACKEND_PLUGIN", "/usr/local/bin/mockgen")

	cfg, err := config.New("/data")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.RulesPath != "/etc/paninis/rules.yaml" {
		t.Fatalf("rules path not taken from environment, got %q", cfg.RulesPath)
	}
	if !cfg.StrictGrammar {
		t.Fatalf("strict grammar flag not taken from environment")
	}
	if cfg.Backend != config.BackendPlugin || cfg.PluginBinary != "/usr/local/bin/mockgen" {
		t.Fatalf("backend selection not taken from environment, got %s %q", cfg.Backend, cfg.PluginBinary)
	}
}

func TestNewDefaultsLeaveRulesPathEmpty(t *testing.T) {
	t.Setenv("PANINI_RULES", "")
	t.Setenv("PANINI_BACKEND", "")

	cfg, err := config.New("/data")
	if err != nil {
		t.Fatalf("new config: %v", err)
	}
	if cfg.RulesPath != "" {
		t.Fatalf("empty environment must keep the embedded table, got %q", cfg.RulesPath)
	}
	if cfg.Backend != config.BackendOpenAI {
		t.Fatalf("default backend must be openai, got %s", cfg.Backend)
	}
}

func TestNewRejectsUnknownBackend(t *testing.T) {
	t.Setenv("PANINI_BACKEND", "carrier-pigeon")
	if _, err := config.New("/data"); err == nil {
		t.Fatalf("unknown backend must be rejected")
	}
}

func TestNewRejectsEmptyDataDir(t *testing.T) {
	t.Parallel()
	if _, err := config.New(""); err == nil {
		t.Fatalf("empty data dir must be rejected")
	}
}
