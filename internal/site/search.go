package site

import (
	"encoding/json"
	"os"
	"strings"

	"github.com/votuchankinh/thuvien/internal/catalog"
)

// SearchEntry is one leaf in the search index shipped with an exported site.
// Folded fields are lowercased with diacritics removed so the browser can
// match them with the same rules as the catalog search.
type SearchEntry struct {
	ID          string `json:"id"`
	Title       string `json:"title"`
	GroupTitle  string `json:"group_title"`
	Href        string `json:"href"`
	FoldedTitle string `json:"folded_title"`
	FoldedBody  string `json:"folded_body,omitempty"`
}

// BuildSearchIndex returns one entry per leaf in reading order. Bodies are
// included only when includeBody is set.
func BuildSearchIndex(cat *catalog.Catalog, links Links, includeBody bool) []SearchEntry {
	entries := make([]SearchEntry, 0, cat.Len())
	for _, g := range cat.Toc() {
		for _, e := range g.Items {
			entry := SearchEntry{
				ID:          e.ID,
				Title:       e.Title,
				GroupTitle:  g.Title,
				Href:        links.Read(e.ID),
				FoldedTitle: catalog.Fold(e.Title),
			}
			if includeBody {
				if s, ok := cat.Content(e.ID); ok {
					entry.FoldedBody = catalog.Fold(strings.Join(strings.Fields(s.Content), " "))
				}
			}
			entries = append(entries, entry)
		}
	}
	return entries
}

// WriteSearchIndex writes the search index as JSON to the given path.
func WriteSearchIndex(entries []SearchEntry, outputPath string) error {
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(outputPath, data, 0o644)
}
