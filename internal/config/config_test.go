package config

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Backend.BaseURL != "http://localhost:8000" {
		t.Errorf("expected default base_url, got %q", cfg.Backend.BaseURL)
	}
	if cfg.Language != "vi" {
		t.Errorf("expected default language vi, got %q", cfg.Language)
	}
	if cfg.Search.EmptyQuery != "none" {
		t.Errorf("expected default empty_query none, got %q", cfg.Search.EmptyQuery)
	}
	if cfg.Server.Port != 8080 {
		t.Errorf("expected default port 8080, got %d", cfg.Server.Port)
	}
	if cfg.Embeddings.Provider != EmbeddingNone {
		t.Errorf("expected embeddings disabled by default, got %q", cfg.Embeddings.Provider)
	}
}

func TestSaveAndLoad(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.thuvien.yml")

	original := DefaultConfig()
	original.Backend.BaseURL = "https://chat.example.com"
	original.Backend.Token = "secret"
	original.Language = "en"
	original.Search.IncludeBody = true
	original.Search.Limit = 5
	original.Embeddings.Provider = EmbeddingOllama
	original.Embeddings.Model = "nomic-embed-text"

	if err := original.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if loaded.Backend.BaseURL != original.Backend.BaseURL {
		t.Errorf("base_url: got %q, want %q", loaded.Backend.BaseURL, original.Backend.BaseURL)
	}
	if loaded.Backend.Token != "secret" {
		t.Errorf("token: got %q", loaded.Backend.Token)
	}
	if loaded.Language != "en" {
		t.Errorf("language: got %q", loaded.Language)
	}
	if !loaded.Search.IncludeBody {
		t.Error("include_body: expected true")
	}
	if loaded.Search.Limit != 5 {
		t.Errorf("limit: got %d", loaded.Search.Limit)
	}
	if loaded.Embeddings.Provider != EmbeddingOllama {
		t.Errorf("embeddings.provider: got %q", loaded.Embeddings.Provider)
	}
	if loaded.Server.Port != 8080 {
		t.Errorf("unset values should keep defaults, port = %d", loaded.Server.Port)
	}
}

func TestLoadMissingFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "nonexistent.yml")

	// Loading a missing file should return defaults, not an error.
	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load should not fail for missing file: %v", err)
	}
	if cfg.Language != "vi" {
		t.Errorf("expected default language, got %q", cfg.Language)
	}
}

func TestLoadPartialFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "partial.yml")
	if err := os.WriteFile(path, []byte("backend:\n  token: abc\n"), 0600); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if cfg.Backend.Token != "abc" {
		t.Errorf("token: got %q", cfg.Backend.Token)
	}
	if cfg.Backend.BaseURL != "http://localhost:8000" {
		t.Errorf("base_url should keep default, got %q", cfg.Backend.BaseURL)
	}
}

func TestLoadEnvOverride(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "test.yml")

	cfg := DefaultConfig()
	if err := cfg.Save(path); err != nil {
		t.Fatalf("Save failed: %v", err)
	}

	t.Setenv("THUVIEN_BACKEND__TOKEN", "from-env")
	t.Setenv("THUVIEN_LANGUAGE", "en")
	t.Setenv("THUVIEN_SEARCH__INCLUDE_BODY", "true")
	t.Setenv("THUVIEN_SERVER__PORT", "9090")

	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}
	if loaded.Backend.Token != "from-env" {
		t.Errorf("token override failed: got %q", loaded.Backend.Token)
	}
	if loaded.Language != "en" {
		t.Errorf("language override failed: got %q", loaded.Language)
	}
	if !loaded.Search.IncludeBody {
		t.Error("include_body override failed")
	}
	if loaded.Server.Port != 9090 {
		t.Errorf("port override failed: got %d", loaded.Server.Port)
	}
}

func TestEnvKey(t *testing.T) {
	tests := []struct{ in, want string }{
		{"THUVIEN_LANGUAGE", "language"},
		{"THUVIEN_DATA_DIR", "data_dir"},
		{"THUVIEN_BACKEND__BASE_URL", "backend.base_url"},
		{"THUVIEN_LOGGING__LEVEL", "logging.level"},
	}
	for _, tt := range tests {
		if got := envKey(tt.in); got != tt.want {
			t.Errorf("envKey(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}

func TestValidateValid(t *testing.T) {
	cfg := DefaultConfig()
	if err := cfg.Validate(); err != nil {
		t.Errorf("DefaultConfig should be valid, got: %v", err)
	}
}

func TestValidateRejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
	}{
		{"empty base url", func(c *Config) { c.Backend.BaseURL = "" }},
		{"relative base url", func(c *Config) { c.Backend.BaseURL = "/api" }},
		{"ftp base url", func(c *Config) { c.Backend.BaseURL = "ftp://host" }},
		{"language", func(c *Config) { c.Language = "fr" }},
		{"empty query policy", func(c *Config) { c.Search.EmptyQuery = "some" }},
		{"negative limit", func(c *Config) { c.Search.Limit = -1 }},
		{"port", func(c *Config) { c.Server.Port = 0 }},
		{"data dir", func(c *Config) { c.DataDir = "" }},
		{"embedding provider", func(c *Config) { c.Embeddings.Provider = "google" }},
		{"log level", func(c *Config) { c.Logging.Level = "trace" }},
		{"log format", func(c *Config) { c.Logging.Format = "xml" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(cfg)
			if err := cfg.Validate(); err == nil {
				t.Error("expected validation error")
			}
		})
	}
}

func TestPaths(t *testing.T) {
	cfg := DefaultConfig()
	cfg.DataDir = "data"
	if got := cfg.TranscriptPath(); got != filepath.Join("data", "transcript.db") {
		t.Errorf("TranscriptPath = %q", got)
	}
	if got := cfg.IndexPath(); got != filepath.Join("data", "index.gob.gz") {
		t.Errorf("IndexPath = %q", got)
	}
}

func TestAPIKeyEnvVar(t *testing.T) {
	if got := APIKeyEnvVar(EmbeddingOpenAI); got != "OPENAI_API_KEY" {
		t.Errorf("openai: got %q", got)
	}
	if got := APIKeyEnvVar(EmbeddingOllama); got != "" {
		t.Errorf("ollama: got %q", got)
	}
}

func TestLoggerLevels(t *testing.T) {
	var buf bytes.Buffer
	conf := LoggingConfig{Level: "warn", Format: "console"}
	logger, err := conf.Prepare(zapcore.AddSync(&buf), false)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	logger.Info("hidden")
	logger.Warn("shown")
	out := buf.String()
	if strings.Contains(out, "hidden") {
		t.Errorf("info should be filtered at warn level: %s", out)
	}
	if !strings.Contains(out, "shown") {
		t.Errorf("warn should be logged: %s", out)
	}
}

func TestLoggerVerboseAndJSON(t *testing.T) {
	var buf bytes.Buffer
	conf := LoggingConfig{Level: "error", Format: "json"}
	logger, err := conf.Prepare(zapcore.AddSync(&buf), true)
	if err != nil {
		t.Fatalf("Prepare: %v", err)
	}
	logger.Debug("details")
	if !strings.Contains(buf.String(), `"msg":"details"`) {
		t.Errorf("expected JSON debug line, got %s", buf.String())
	}
}

func TestLoggerRejectsUnknownFormat(t *testing.T) {
	conf := LoggingConfig{Level: "info", Format: "xml"}
	if _, err := conf.Prepare(zapcore.AddSync(&bytes.Buffer{}), false); err == nil {
		t.Error("expected error for unknown format")
	}
}

func TestValidateBaseURL(t *testing.T) {
	if err := validateBaseURL("https://x.example"); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
	if err := validateBaseURL("x.example"); err == nil {
		t.Error("expected error for missing scheme")
	}
}
