package config

import (
	"fmt"
	"os"
	"path/filepath"
	"time"
)

// Backend selects how candidate generation is performed.
type Backend string

const (
	BackendOpenAI Backend = "openai"
	BackendPlugin Backend = "plugin"
)

type Config struct {
	DataDir string
	DBPath  string

	// RulesPath optionally overrides the embedded grammar rule table.
	// Set via PANINI_RULES.
	RulesPath string

	OCRServiceURL string

	Backend       Backend
	PluginBinary  string
	OpenAIModel   string
	ListenAddr    string
	StrictGrammar bool

	SessionCapacity int
	SessionTTL      time.Duration
	MaxBackendCalls int64
}

func New(dataDir string) (Config, error) {
	if dataDir == "" {
		return Config{}, fmt.Errorf("data dir is required")
	}
	cfg := Config{
		DataDir:         dataDir,
		DBPath:          filepath.Join(dataDir, ".paninis-eye", "index.db"),
		RulesPath:       os.Getenv("PANINI_RULES"),
		OCRServiceURL:   envOr("PANINI_OCR_URL", "http://localhost:8001"),
		Backend:         Backend(envOr("PANINI_BACKEND", string(BackendOpenAI))),
		PluginBinary:    os.Getenv("PANINI_BACKEND_PLUGIN"),
		OpenAIModel:     envOr("PANINI_OPENAI_MODEL", "gpt-4o-mini"),
		ListenAddr:      envOr("PANINI_LISTEN", ":8000"),
		StrictGrammar:   os.Getenv("PANINI_STRICT_GRAMMAR") == "1",
		SessionCapacity: 512,
		SessionTTL:      24 * time.Hour,
		MaxBackendCalls: 8,
	}
	if cfg.Backend != BackendOpenAI && cfg.Backend != BackendPlugin {
		return Config{}, fmt.Errorf("unknown backend %q", cfg.Backend)
	}
	return cfg, nil
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
