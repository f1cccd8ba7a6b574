package mcp

import "github.com/mark3labs/mcp-go/mcp"

// listContentsTool defines the list_contents MCP tool.
var listContentsTool = mcp.NewTool("list_contents",
	mcp.WithDescription("List the library's table of contents: every group and the id and title of each sutra in reading order."),
)

// readSutraTool defines the read_sutra MCP tool.
var readSutraTool = mcp.NewTool("read_sutra",
	mcp.WithDescription("Read the full text of one sutra, with its author and date when known."),
	mcp.WithString("id",
		mcp.Required(),
		mcp.Description("Sutra id as returned by list_contents, e.g. section-01-01-tam-vo"),
	),
)

// searchSutrasTool defines the search_sutras MCP tool.
var searchSutrasTool = mcp.NewTool("search_sutras",
	mcp.WithDescription("Search sutra titles, and optionally their text. Matching ignores case and Vietnamese diacritics. Semantic mode ranks stanzas by meaning and needs `thuvien index`."),
	mcp.WithString("query",
		mcp.Required(),
		mcp.Description("Words to look for"),
	),
	mcp.WithBoolean("include_body",
		mcp.Description("Also search the sutra text, not only titles"),
	),
	mcp.WithNumber("limit",
		mcp.Description("Maximum number of results to return (default 20)"),
	),
	mcp.WithString("mode",
		mcp.Description("Search mode"),
		mcp.Enum("text", "semantic"),
	),
)
