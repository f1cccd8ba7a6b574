package mcp

import (
	"github.com/mark3labs/mcp-go/server"

	"github.com/votuchankinh/thuvien/internal/catalog"
	"github.com/votuchankinh/thuvien/internal/config"
	"github.com/votuchankinh/thuvien/internal/vectordb"
)

// Version is set via ldflags at build time.
var Version = "dev"

// Server wraps an MCP server that exposes the sutra library to agents.
type Server struct {
	cat    *catalog.Catalog
	store  vectordb.VectorStore
	search config.SearchConfig
	mcp    *server.MCPServer
}

// NewServer creates a new MCP server over cat. store may be nil, in which
// case semantic searches report that the index is missing.
func NewServer(cat *catalog.Catalog, store vectordb.VectorStore, search config.SearchConfig) *Server {
	s := &Server{
		cat:    cat,
		store:  store,
		search: search,
	}

	s.mcp = server.NewMCPServer(
		"thuvien",
		Version,
		server.WithToolCapabilities(false),
	)

	s.registerTools()

	return s
}

// registerTools adds all tool definitions and their handlers to the MCP server.
func (s *Server) registerTools() {
	s.mcp.AddTool(listContentsTool, s.handleListContents)
	s.mcp.AddTool(readSutraTool, s.handleReadSutra)
	s.mcp.AddTool(searchSutrasTool, s.handleSearchSutras)
}

// Serve starts the MCP server on stdio. Stdout is used for MCP protocol
// messages; all logging must go to stderr.
func (s *Server) Serve() error {
	return server.ServeStdio(s.mcp)
}
