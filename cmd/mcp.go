package cmd

import (
	"context"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/votuchankinh/thuvien/internal/catalog"
	mcpserver "github.com/votuchankinh/thuvien/internal/mcp"
	"github.com/votuchankinh/thuvien/internal/vectordb"
)

var mcpCmd = &cobra.Command{
	Use:   "mcp",
	Short: "Start the MCP server for AI agent integration",
	Long:  `Starts a Model Context Protocol (MCP) server on stdio, exposing tools to list, read and search the sutra library.`,
	Args:  cobra.NoArgs,
	Run: func(cmd *cobra.Command, args []string) {
		exitOnError(runMCP())
	},
}

func init() {
	rootCmd.AddCommand(mcpCmd)
}

func runMCP() error {
	cfg, log, err := setup()
	if err != nil {
		return err
	}
	defer log.Sync()

	cat, err := catalog.Default()
	if err != nil {
		return err
	}

	var store vectordb.VectorStore
	chromemStore, err := openSemanticStore(context.Background(), cfg)
	switch {
	case err == nil:
		store = chromemStore
	case errors.Is(err, errNoIndex):
		fmt.Fprintf(os.Stderr, "Semantic search disabled. Run `thuvien index` to enable it.\n")
	default:
		fmt.Fprintf(os.Stderr, "Warning: %v\n", err)
	}

	mcpserver.Version = Version

	fmt.Fprintf(os.Stderr, "thuvien MCP server started on stdio (entries=%d, with text=%d)\n", cat.Len(), cat.ContentCount())

	srv := mcpserver.NewServer(cat, store, cfg.Search)
	return srv.Serve()
}
