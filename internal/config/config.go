package config

import (
	"fmt"
	"net/url"
	"os"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
	yamlv3 "gopkg.in/yaml.v3"

	"github.com/votuchankinh/thuvien/internal/catalog"
)

// EnvPrefix prefixes environment overrides. A double underscore separates
// nested keys: THUVIEN_BACKEND__TOKEN sets backend.token.
const EnvPrefix = "THUVIEN_"

// Load reads configuration from the given YAML file, then overlays
// environment variable overrides (THUVIEN_*).
func Load(path string) (*Config, error) {
	k := koanf.New(".")

	// Start from defaults.
	cfg := DefaultConfig()

	// Load YAML file if it exists.
	if _, err := os.Stat(path); err == nil {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	} else if !os.IsNotExist(err) {
		return nil, fmt.Errorf("accessing config %s: %w", path, err)
	}

	if err := k.Load(env.Provider(EnvPrefix, ".", envKey), nil); err != nil {
		return nil, fmt.Errorf("loading env overrides: %w", err)
	}

	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("unmarshalling config: %w", err)
	}

	return cfg, nil
}

// envKey maps THUVIEN_SEARCH__INCLUDE_BODY to search.include_body.
func envKey(s string) string {
	s = strings.ToLower(strings.TrimPrefix(s, EnvPrefix))
	return strings.ReplaceAll(s, "__", ".")
}

// Save writes the configuration to the given YAML file path.
func (c *Config) Save(path string) error {
	data, err := yamlv3.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshalling config: %w", err)
	}
	if err := os.WriteFile(path, data, 0600); err != nil {
		return fmt.Errorf("writing config to %s: %w", path, err)
	}
	return nil
}

var validEmbeddingProviders = map[EmbeddingProvider]bool{
	EmbeddingNone:   true,
	EmbeddingOpenAI: true,
	EmbeddingOllama: true,
}

var validLogLevels = map[string]bool{
	"debug": true,
	"info":  true,
	"warn":  true,
	"error": true,
}

// Validate checks that the configuration contains valid values.
func (c *Config) Validate() error {
	if c.Backend.BaseURL == "" {
		return fmt.Errorf("backend.base_url is required")
	}
	u, err := url.Parse(c.Backend.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid backend.base_url %q: must be an absolute http(s) url", c.Backend.BaseURL)
	}

	if _, err := catalog.ParseLanguage(c.Language); err != nil {
		return fmt.Errorf("invalid language: %w", err)
	}

	switch catalog.EmptyQueryPolicy(c.Search.EmptyQuery) {
	case "", catalog.EmptyQueryNone, catalog.EmptyQueryAll:
	default:
		return fmt.Errorf("invalid search.empty_query %q: must be none or all", c.Search.EmptyQuery)
	}
	if c.Search.Limit < 0 {
		return fmt.Errorf("search.limit must be non-negative")
	}

	if c.Server.Port <= 0 || c.Server.Port > 65535 {
		return fmt.Errorf("invalid server.port %d", c.Server.Port)
	}

	if c.DataDir == "" {
		return fmt.Errorf("data_dir is required")
	}

	if c.Embeddings.Provider != "" && !validEmbeddingProviders[c.Embeddings.Provider] {
		return fmt.Errorf("invalid embeddings.provider %q: must be one of none, openai, ollama", c.Embeddings.Provider)
	}
	if c.Embeddings.Dimensions < 0 {
		return fmt.Errorf("embeddings.dimensions must be non-negative")
	}

	if c.Logging.Level != "" && !validLogLevels[c.Logging.Level] {
		return fmt.Errorf("invalid logging.level %q: must be one of debug, info, warn, error", c.Logging.Level)
	}
	switch c.Logging.Format {
	case "", "console", "json":
	default:
		return fmt.Errorf("invalid logging.format %q: must be console or json", c.Logging.Format)
	}

	return nil
}

// LanguageOrDefault returns the configured UI language.
func (c *Config) LanguageOrDefault() catalog.Language {
	l, err := catalog.ParseLanguage(c.Language)
	if err != nil {
		return catalog.DefaultLanguage
	}
	return l
}

// APIKeyEnvVar returns the conventional environment variable name for
// the API key of the given embedding provider.
func APIKeyEnvVar(provider EmbeddingProvider) string {
	switch provider {
	case EmbeddingOpenAI:
		return "OPENAI_API_KEY"
	default:
		return ""
	}
}

// Options converts the search defaults to catalog search options.
func (s SearchConfig) Options() catalog.SearchOptions {
	return catalog.SearchOptions{
		IncludeBody: s.IncludeBody,
		EmptyQuery:  catalog.EmptyQueryPolicy(s.EmptyQuery),
		Limit:       s.Limit,
	}
}
