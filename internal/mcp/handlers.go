package mcp

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/votuchankinh/thuvien/internal/catalog"
	"github.com/votuchankinh/thuvien/internal/vectordb"
)

const defaultSearchLimit = 20

// handleListContents renders the table of contents. Entries without text
// are marked.
func (s *Server) handleListContents(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%d groups, %d entries (%d with text):\n", len(s.cat.Toc()), s.cat.Len(), s.cat.ContentCount())
	for _, g := range s.cat.Toc() {
		fmt.Fprintf(&sb, "\n%s [%s]\n", g.Title, g.ID)
		for _, e := range g.Items {
			marker := ""
			if _, ok := s.cat.Content(e.ID); !ok {
				marker = " (no text yet)"
			}
			fmt.Fprintf(&sb, "  - %s: %s%s\n", e.ID, e.Title, marker)
		}
	}
	return mcp.NewToolResultText(sb.String()), nil
}

// handleReadSutra returns one sutra's text.
func (s *Server) handleReadSutra(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	id, err := request.RequireString("id")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: id"), nil
	}

	entry, group, ok := s.cat.Entry(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("No entry with id %q. Use list_contents to see valid ids.", id)), nil
	}
	sutra, ok := s.cat.Content(id)
	if !ok {
		return mcp.NewToolResultError(fmt.Sprintf("%q (%s) has no text yet.", entry.Title, id)), nil
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "# %s\n", sutra.Title)
	fmt.Fprintf(&sb, "Group: %s\n", group.Title)
	if sutra.Author != "" {
		fmt.Fprintf(&sb, "Author: %s\n", sutra.Author)
	}
	if sutra.Date != "" {
		fmt.Fprintf(&sb, "Date: %s\n", sutra.Date)
	}
	sb.WriteString("\n")
	sb.WriteString(sutra.Content)
	sb.WriteString("\n")
	return mcp.NewToolResultText(sb.String()), nil
}

// handleSearchSutras runs a text or semantic search.
func (s *Server) handleSearchSutras(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	query, err := request.RequireString("query")
	if err != nil {
		return mcp.NewToolResultError("missing required parameter: query"), nil
	}

	limit := request.GetInt("limit", s.search.Limit)
	if limit <= 0 {
		limit = defaultSearchLimit
	}

	switch mode := request.GetString("mode", "text"); mode {
	case "semantic":
		if s.store == nil || s.store.Count() == 0 {
			return mcp.NewToolResultError("The semantic index is empty. Run `thuvien index` to build it."), nil
		}
		hits, err := vectordb.SearchSutras(ctx, s.store, query, limit)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}
		return mcp.NewToolResultText(vectordb.FormatHits(hits)), nil

	case "text":
		opts := s.search.Options()
		opts.IncludeBody = request.GetBool("include_body", s.search.IncludeBody)
		opts.Limit = limit
		matches, err := s.cat.Search(query, opts)
		if err != nil {
			return mcp.NewToolResultError(fmt.Sprintf("search failed: %v", err)), nil
		}
		return mcp.NewToolResultText(formatMatches(matches)), nil

	default:
		return mcp.NewToolResultError(fmt.Sprintf("unknown mode %q: must be text or semantic", mode)), nil
	}
}

// formatMatches renders text search matches for an agent.
func formatMatches(matches []catalog.Match) string {
	if len(matches) == 0 {
		return "No results found."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n", len(matches))
	for i, m := range matches {
		fmt.Fprintf(&sb, "\n%d. %s [%s]\n", i+1, m.Entry.Title, m.Entry.ID)
		fmt.Fprintf(&sb, "   Group: %s\n", m.GroupTitle)
		if m.Field == catalog.FieldContent {
			fmt.Fprintf(&sb, "   Text: %s\n", m.Snippet)
		}
	}
	return sb.String()
}
