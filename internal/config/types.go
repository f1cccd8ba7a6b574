package config

// EmbeddingProvider identifies the service that embeds sutras for semantic
// search.
type EmbeddingProvider string

const (
	EmbeddingNone   EmbeddingProvider = "none"
	EmbeddingOpenAI EmbeddingProvider = "openai"
	EmbeddingOllama EmbeddingProvider = "ollama"
)

// Config is the top-level thuvien configuration, corresponding to .thuvien.yml.
type Config struct {
	Backend    BackendConfig    `yaml:"backend" koanf:"backend"`
	Language   string           `yaml:"language" koanf:"language"`
	DataDir    string           `yaml:"data_dir" koanf:"data_dir"`
	Search     SearchConfig     `yaml:"search" koanf:"search"`
	Server     ServerConfig     `yaml:"server" koanf:"server"`
	Embeddings EmbeddingsConfig `yaml:"embeddings" koanf:"embeddings"`
	Logging    LoggingConfig    `yaml:"logging" koanf:"logging"`
}

// BackendConfig addresses the remote chat backend.
type BackendConfig struct {
	BaseURL string `yaml:"base_url" koanf:"base_url"`
	Token   string `yaml:"token" koanf:"token"`
}

// SearchConfig holds catalog search defaults.
type SearchConfig struct {
	IncludeBody bool   `yaml:"include_body" koanf:"include_body"`
	EmptyQuery  string `yaml:"empty_query" koanf:"empty_query"`
	Limit       int    `yaml:"limit" koanf:"limit"`
}

// ServerConfig holds settings for `thuvien serve`.
type ServerConfig struct {
	Port            int  `yaml:"port" koanf:"port"`
	AllowAllOrigins bool `yaml:"allow_all_origins" koanf:"allow_all_origins"`
}

// EmbeddingsConfig selects the embedder used by `thuvien index` and
// semantic search.
type EmbeddingsConfig struct {
	Provider   EmbeddingProvider `yaml:"provider" koanf:"provider"`
	Model      string            `yaml:"model" koanf:"model"`
	Host       string            `yaml:"host,omitempty" koanf:"host"`
	Dimensions int               `yaml:"dimensions,omitempty" koanf:"dimensions"`
}

// LoggingConfig controls the program logger.
type LoggingConfig struct {
	Level  string `yaml:"level" koanf:"level"`
	Format string `yaml:"format" koanf:"format"`
}
