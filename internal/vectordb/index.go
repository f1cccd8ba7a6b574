package vectordb

import (
	"context"
	"fmt"
	"strings"

	"github.com/votuchankinh/thuvien/internal/catalog"
	"github.com/votuchankinh/thuvien/internal/progress"
)

// BuildIndex embeds every leaf of cat into store: one document per stanza
// for sutras with a body, one title document otherwise. It returns the
// number of documents added.
func BuildIndex(ctx context.Context, store VectorStore, cat *catalog.Catalog, rep progress.Reporter) (int, error) {
	leaves := cat.Leaves()
	rep.Start(len(leaves))
	defer rep.Finish()

	added := 0
	for i, leaf := range leaves {
		if err := ctx.Err(); err != nil {
			return added, err
		}
		docs := Documents(cat, leaf.ID)
		if err := store.DeleteBySutra(ctx, leaf.ID); err != nil {
			return added, fmt.Errorf("clearing %s: %w", leaf.ID, err)
		}
		if err := store.AddDocuments(ctx, docs); err != nil {
			return added, fmt.Errorf("indexing %s: %w", leaf.ID, err)
		}
		added += len(docs)
		rep.Update(i+1, leaf.Title)
	}
	return added, nil
}

// Documents returns the documents BuildIndex stores for one leaf.
func Documents(cat *catalog.Catalog, id string) []Document {
	entry, group, ok := cat.Entry(id)
	if !ok {
		return nil
	}
	meta := DocumentMetadata{SutraID: entry.ID, Title: entry.Title, GroupID: group.ID}

	sutra, ok := cat.Content(id)
	if !ok {
		meta.Kind = KindTitle
		return []Document{{ID: entry.ID + "#title", Content: entry.Title, Metadata: meta}}
	}

	var docs []Document
	for n, stanza := range stanzas(sutra.Content) {
		m := meta
		m.Kind = KindStanza
		m.Stanza = n + 1
		docs = append(docs, Document{
			ID:       fmt.Sprintf("%s#%02d", entry.ID, n+1),
			Content:  sutra.Title + "\n" + stanza,
			Metadata: m,
		})
	}
	if len(docs) == 0 {
		meta.Kind = KindTitle
		docs = append(docs, Document{ID: entry.ID + "#title", Content: sutra.Title, Metadata: meta})
	}
	return docs
}

// stanzas splits a body on blank lines.
func stanzas(content string) []string {
	var (
		out     []string
		current []string
	)
	flush := func() {
		if len(current) > 0 {
			out = append(out, strings.Join(current, "\n"))
			current = nil
		}
	}
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" {
			flush()
			continue
		}
		current = append(current, line)
	}
	flush()
	return out
}

// SearchSutras runs a semantic query and keeps the best match per sutra.
func SearchSutras(ctx context.Context, store VectorStore, query string, limit int) ([]Hit, error) {
	if limit <= 0 {
		limit = 10
	}
	results, err := store.Search(ctx, query, limit*4, nil)
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var hits []Hit
	for _, r := range results {
		md := r.Document.Metadata
		if seen[md.SutraID] {
			continue
		}
		seen[md.SutraID] = true
		excerpt := r.Document.Content
		if md.Kind == KindStanza {
			excerpt = strings.TrimPrefix(excerpt, md.Title+"\n")
		}
		hits = append(hits, Hit{
			SutraID:    md.SutraID,
			Title:      md.Title,
			GroupID:    md.GroupID,
			Similarity: r.Similarity,
			Excerpt:    excerpt,
		})
		if len(hits) == limit {
			break
		}
	}
	return hits, nil
}

// FormatHits renders hits as human-readable text.
func FormatHits(hits []Hit) string {
	if len(hits) == 0 {
		return "No results found."
	}

	var sb strings.Builder
	fmt.Fprintf(&sb, "Found %d result(s):\n\n", len(hits))
	for i, h := range hits {
		fmt.Fprintf(&sb, "--- %d. %s [%s] (similarity: %.4f) ---\n", i+1, h.Title, h.SutraID, h.Similarity)
		sb.WriteString(h.Excerpt)
		sb.WriteString("\n\n")
	}
	return sb.String()
}
