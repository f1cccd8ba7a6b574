package site

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/votuchankinh/thuvien/internal/catalog"
	"github.com/votuchankinh/thuvien/internal/progress"
)

// Generator exports the library as a static HTML site in one language.
type Generator struct {
	Catalog     *catalog.Catalog
	OutputDir   string
	Language    catalog.Language
	IncludeBody bool
	Progress    progress.Reporter
}

// NewGenerator creates a Generator writing to outputDir.
func NewGenerator(cat *catalog.Catalog, outputDir string, lang catalog.Language) *Generator {
	return &Generator{
		Catalog:   cat,
		OutputDir: outputDir,
		Language:  lang,
		Progress:  progress.Nop{},
	}
}

// Generate writes index.html, one read/<id>.html per leaf, the assets and
// search-index.json. Returns the number of pages generated.
func (g *Generator) Generate() (int, error) {
	r, err := NewRenderer(g.Catalog)
	if err != nil {
		return 0, err
	}
	r.IncludeBody = g.IncludeBody

	if err := os.MkdirAll(filepath.Join(g.OutputDir, "read"), 0o755); err != nil {
		return 0, err
	}

	entries := BuildSearchIndex(g.Catalog, StaticLinks(g.Language, 0), g.IncludeBody)
	if err := WriteSearchIndex(entries, filepath.Join(g.OutputDir, "search-index.json")); err != nil {
		return 0, fmt.Errorf("writing search index: %w", err)
	}

	if err := os.WriteFile(filepath.Join(g.OutputDir, "style.css"), []byte(cssContent), 0o644); err != nil {
		return 0, err
	}
	if err := os.WriteFile(filepath.Join(g.OutputDir, "script.js"), []byte(jsContent), 0o644); err != nil {
		return 0, err
	}

	if err := g.writePage(r, "", StaticLinks(g.Language, 0), filepath.Join(g.OutputDir, "index.html")); err != nil {
		return 0, fmt.Errorf("rendering index: %w", err)
	}

	leaves := g.Catalog.Leaves()
	rep := g.Progress
	if rep == nil {
		rep = progress.Nop{}
	}
	rep.Start(len(leaves))
	for i, e := range leaves {
		out := filepath.Join(g.OutputDir, "read", e.ID+".html")
		if err := g.writePage(r, e.ID, StaticLinks(g.Language, 1), out); err != nil {
			return 0, fmt.Errorf("rendering %s: %w", e.ID, err)
		}
		rep.Update(i+1, e.Title)
	}
	rep.Finish()

	return len(leaves) + 1, nil
}

func (g *Generator) writePage(r *Renderer, id string, links Links, outPath string) error {
	page, err := r.Page(id, links)
	if err != nil {
		return err
	}
	f, err := os.Create(outPath)
	if err != nil {
		return err
	}
	defer f.Close()
	return r.Render(f, page)
}

// Asset returns a static asset served alongside live pages.
func Asset(name string) (content, contentType string, ok bool) {
	switch name {
	case "style.css":
		return cssContent, "text/css; charset=utf-8", true
	case "script.js":
		return jsContent, "text/javascript; charset=utf-8", true
	}
	return "", "", false
}
