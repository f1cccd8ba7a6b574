package config

import "path/filepath"

// DefaultPath is the config file looked up in the working directory.
const DefaultPath = ".thuvien.yml"

// embeddingModels are the default models per embedding provider.
var embeddingModels = map[EmbeddingProvider]string{
	EmbeddingOpenAI: "text-embedding-3-small",
	EmbeddingOllama: "nomic-embed-text",
}

// DefaultConfig returns a Config with sensible defaults.
func DefaultConfig() *Config {
	return &Config{
		Backend: BackendConfig{
			BaseURL: "http://localhost:8000",
		},
		Language: "vi",
		DataDir:  ".thuvien",
		Search: SearchConfig{
			IncludeBody: false,
			EmptyQuery:  "none",
			Limit:       20,
		},
		Server: ServerConfig{
			Port: 8080,
		},
		Embeddings: EmbeddingsConfig{
			Provider: EmbeddingNone,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// DefaultEmbeddingModel returns the model used when embeddings.model is
// empty.
func DefaultEmbeddingModel(p EmbeddingProvider) string {
	return embeddingModels[p]
}

// TranscriptPath is the SQLite file holding chat exchanges.
func (c *Config) TranscriptPath() string {
	return filepath.Join(c.DataDir, "transcript.db")
}

// IndexPath is the file holding the persisted semantic index.
func (c *Config) IndexPath() string {
	return filepath.Join(c.DataDir, "index.gob.gz")
}
