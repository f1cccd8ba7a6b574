package cmd

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/votuchankinh/thuvien/internal/catalog"
	"github.com/votuchankinh/thuvien/internal/dashboard"
	"github.com/votuchankinh/thuvien/internal/library"
	"github.com/votuchankinh/thuvien/internal/server"
	"github.com/votuchankinh/thuvien/internal/transcript"
	"github.com/votuchankinh/thuvien/internal/vectordb"
)

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Start the web library and chat relay",
	Long: `Starts an HTTP server with the bilingual reading pages, the catalog and
search API, the chat page and its websocket relay to the chat backend, and
the transcript API.`,
	Args: cobra.NoArgs,
	RunE: runServe,
}

func init() {
	serveCmd.Flags().Int("port", 0, "port to listen on (default from config)")
	rootCmd.AddCommand(serveCmd)
}

func runServe(cmd *cobra.Command, args []string) error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	// Semantic search is optional; the text search works without it.
	var semantic vectordb.VectorStore
	if store, err := openSemanticStore(ctx, cfg); err == nil {
		semantic = store
		log.Info("semantic search enabled", zap.Int("documents", store.Count()))
	} else if !errors.Is(err, errNoIndex) {
		log.Warn("semantic search unavailable", zap.Error(err))
	}

	client, err := newChatClient(cfg, log)
	if err != nil {
		return err
	}
	log.Info("chat backend", zap.String("base_url", client.BaseURL()))
	store, database, err := openTranscript(cfg)
	if err != nil {
		return err
	}
	defer database.Close()

	port := cfg.Server.Port
	if cmd.Flags().Changed("port") {
		port, _ = cmd.Flags().GetInt("port")
	}
	srv := server.New(server.Config{Port: port, AllowAll: cfg.Server.AllowAllOrigins}, log)
	r := srv.Router()

	lib, err := library.New(cat, library.Options{
		Search:   cfg.Search,
		Language: cfg.LanguageOrDefault(),
		Semantic: semantic,
		Logger:   log,
	})
	if err != nil {
		return err
	}
	lib.RegisterRoutes(r)
	dashboard.New(client, store, cfg.Language, log).RegisterRoutes(r)
	transcript.RegisterRoutes(r, store)

	errCh := make(chan error, 1)
	go func() { errCh <- srv.Start() }()

	fmt.Printf("Library at http://localhost:%d, chat at http://localhost:%d/chat (Ctrl+C to stop)\n", port, port)

	select {
	case err := <-errCh:
		if !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	log.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	return srv.Shutdown(shutdownCtx)
}
