package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/votuchankinh/thuvien/internal/catalog"
	"github.com/votuchankinh/thuvien/internal/config"
	"github.com/votuchankinh/thuvien/internal/embeddings"
	"github.com/votuchankinh/thuvien/internal/progress"
	"github.com/votuchankinh/thuvien/internal/vectordb"
)

var indexCmd = &cobra.Command{
	Use:   "index",
	Short: "Build the semantic search index",
	Long: `Embeds every sutra stanza with the configured embedding provider and saves
the index to the data directory. Entries without text are indexed by title.`,
	Args: cobra.NoArgs,
	RunE: runIndex,
}

func init() {
	indexCmd.Flags().Bool("rebuild", false, "discard the existing index instead of updating it")
	rootCmd.AddCommand(indexCmd)
}

func runIndex(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	if cfg.Embeddings.Provider == "" || cfg.Embeddings.Provider == config.EmbeddingNone {
		return errors.New("no embedding provider configured\nSet embeddings.provider in " + cfgFile + " or run `thuvien init`")
	}

	cat, err := catalog.Default()
	if err != nil {
		return err
	}
	embedder, err := embeddings.FromConfig(cfg.Embeddings)
	if err != nil {
		return fmt.Errorf("creating embedder: %w", err)
	}
	store, err := vectordb.NewChromemStore(embedder)
	if err != nil {
		return fmt.Errorf("creating vector store: %w", err)
	}

	path := cfg.IndexPath()
	rebuild, _ := cmd.Flags().GetBool("rebuild")
	if _, statErr := os.Stat(path); statErr == nil && !rebuild {
		if err := store.Load(ctx, path); err != nil {
			log.Warn("could not load existing index, rebuilding", zap.String("path", path), zap.Error(err))
			if store, err = vectordb.NewChromemStore(embedder); err != nil {
				return fmt.Errorf("creating vector store: %w", err)
			}
		}
	}

	log.Info("indexing sutras",
		zap.String("embedder", store.EmbedderName()),
		zap.Int("entries", cat.Len()),
	)
	n, err := vectordb.BuildIndex(ctx, store, cat, progress.NewReporter("Indexing sutras"))
	if err != nil {
		return fmt.Errorf("building index: %w", err)
	}
	if err := store.Persist(ctx, path); err != nil {
		return fmt.Errorf("saving index: %w", err)
	}

	fmt.Printf("Indexed %d documents from %d entries into %s\n", n, cat.Len(), path)
	return nil
}
