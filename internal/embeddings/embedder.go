// Package embeddings turns sutra text into vectors for semantic search.
package embeddings

import (
	"context"
	"fmt"
	"os"

	chromem "github.com/philippgille/chromem-go"

	"github.com/votuchankinh/thuvien/internal/config"
)

// Embedder defines the interface for generating text embeddings.
type Embedder interface {
	// Embed generates embeddings for one or more texts.
	Embed(ctx context.Context, texts []string) ([][]float32, error)

	// Dimensions returns the number of dimensions in the embedding vectors.
	Dimensions() int

	// Name returns the name/identifier of the embedding model.
	Name() string
}

// FromConfig builds the configured embedder wrapped with retries. It returns
// an error when embeddings are disabled.
func FromConfig(cfg config.EmbeddingsConfig) (Embedder, error) {
	model := cfg.Model
	if model == "" {
		model = config.DefaultEmbeddingModel(cfg.Provider)
	}

	var e Embedder
	switch cfg.Provider {
	case config.EmbeddingOpenAI:
		key := os.Getenv(config.APIKeyEnvVar(cfg.Provider))
		if key == "" {
			return nil, fmt.Errorf("%s is not set", config.APIKeyEnvVar(cfg.Provider))
		}
		e = NewOpenAIEmbedder(key, OpenAIModel(model), cfg.Host)
	case config.EmbeddingOllama:
		e = NewOllamaEmbedder(model, cfg.Dimensions, cfg.Host)
	case config.EmbeddingNone, "":
		return nil, fmt.Errorf("semantic search is disabled: set embeddings.provider to openai or ollama")
	default:
		return nil, fmt.Errorf("unknown embeddings provider %q", cfg.Provider)
	}
	return WithRetry(e, defaultAttempts, defaultDelay), nil
}

// ToChromemFunc converts an Embedder into a chromem.EmbeddingFunc.
// chromem-go expects a function that embeds a single text at a time.
func ToChromemFunc(e Embedder) chromem.EmbeddingFunc {
	return func(ctx context.Context, text string) ([]float32, error) {
		results, err := e.Embed(ctx, []string{text})
		if err != nil {
			return nil, err
		}
		if len(results) == 0 || len(results[0]) == 0 {
			return nil, fmt.Errorf("%s returned no embedding", e.Name())
		}
		return results[0], nil
	}
}
