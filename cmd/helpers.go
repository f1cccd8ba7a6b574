package cmd

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"go.uber.org/zap"

	"github.com/votuchankinh/thuvien/internal/chatclient"
	"github.com/votuchankinh/thuvien/internal/config"
	"github.com/votuchankinh/thuvien/internal/db"
	"github.com/votuchankinh/thuvien/internal/embeddings"
	"github.com/votuchankinh/thuvien/internal/transcript"
	"github.com/votuchankinh/thuvien/internal/vectordb"
)

// errNoIndex is returned when a semantic search finds no index on disk.
var errNoIndex = errors.New("semantic index not found\nRun `thuvien index` to build it")

// loadConfig loads and validates the config, providing a user-friendly error.
func loadConfig() (*config.Config, error) {
	cfg, err := config.Load(cfgFile)
	if err != nil {
		return nil, fmt.Errorf("loading config: %w\nRun `thuvien init` to create a config file", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config %s: %w", cfgFile, err)
	}
	return cfg, nil
}

// newLogger builds the program logger. Logs go to stderr so stdout stays
// clean for command output and the MCP protocol.
func newLogger(cfg *config.Config) (*zap.Logger, error) {
	return cfg.Logging.Prepare(os.Stderr, verbose)
}

// setup loads the config and the logger every command needs.
func setup() (*config.Config, *zap.Logger, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}
	log, err := newLogger(cfg)
	if err != nil {
		return nil, nil, err
	}
	return cfg, log, nil
}

// newChatClient creates the chat backend client from config.
func newChatClient(cfg *config.Config, log *zap.Logger) (*chatclient.Client, error) {
	return chatclient.New(chatclient.Config{
		BaseURL: cfg.Backend.BaseURL,
		Token:   cfg.Backend.Token,
		Logger:  log,
	})
}

// openTranscript opens the local transcript database.
func openTranscript(cfg *config.Config) (*transcript.Store, *db.DB, error) {
	database, err := db.Open(cfg.TranscriptPath())
	if err != nil {
		return nil, nil, fmt.Errorf("opening transcript: %w", err)
	}
	return transcript.NewStore(database), database, nil
}

// openSemanticStore loads the persisted semantic index. It returns errNoIndex
// when embeddings are disabled or the index has not been built.
func openSemanticStore(ctx context.Context, cfg *config.Config) (*vectordb.ChromemStore, error) {
	if cfg.Embeddings.Provider == config.EmbeddingNone || cfg.Embeddings.Provider == "" {
		return nil, errNoIndex
	}
	if _, err := os.Stat(cfg.IndexPath()); os.IsNotExist(err) {
		return nil, errNoIndex
	}

	embedder, err := embeddings.FromConfig(cfg.Embeddings)
	if err != nil {
		return nil, fmt.Errorf("creating embedder: %w", err)
	}
	store, err := vectordb.NewChromemStore(embedder)
	if err != nil {
		return nil, fmt.Errorf("creating vector store: %w", err)
	}
	if err := store.Load(ctx, cfg.IndexPath()); err != nil {
		return nil, fmt.Errorf("loading semantic index from %s: %w", cfg.IndexPath(), err)
	}
	return store, nil
}

// printJSON writes v to stdout as indented JSON.
func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
