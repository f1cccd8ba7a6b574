package site

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"io"
	"strings"

	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/renderer/html"

	"github.com/votuchankinh/thuvien/internal/catalog"
)

// ErrUnknownEntry is returned for an id that is not in the table of contents.
var ErrUnknownEntry = errors.New("no such table-of-contents entry")

// Page holds the data passed to the HTML template.
type Page struct {
	Lang        catalog.Language
	Labels      catalog.Labels
	Links       Links
	TreeHTML    template.HTML
	IncludeBody bool

	// Selected is false on the landing page.
	Selected   bool
	Entry      catalog.TocEntry
	GroupTitle string
	HasBody    bool
	Body       template.HTML
	Date       string
	Author     string
	Prev, Next catalog.TocEntry
}

// Renderer turns catalog entries into library pages. It is safe for
// concurrent use.
type Renderer struct {
	cat  *catalog.Catalog
	tree *TocTree
	md   goldmark.Markdown
	tmpl *template.Template

	// IncludeBody makes the browser search sutra bodies as well as titles.
	IncludeBody bool
}

// NewRenderer parses the page template for cat.
func NewRenderer(cat *catalog.Catalog) (*Renderer, error) {
	tmpl, err := template.New("page").Parse(pageTemplate)
	if err != nil {
		return nil, fmt.Errorf("parsing page template: %w", err)
	}
	return &Renderer{
		cat:  cat,
		tree: BuildTree(cat.Toc()),
		md: goldmark.New(
			goldmark.WithRendererOptions(
				html.WithHardWraps(),
			),
		),
		tmpl: tmpl,
	}, nil
}

// Page assembles the page for id. An empty id yields the landing page.
func (r *Renderer) Page(id string, links Links) (Page, error) {
	p := Page{
		Lang:        links.Lang,
		Labels:      catalog.Translations(links.Lang),
		Links:       links,
		TreeHTML:    template.HTML(r.tree.ToHTML(id, links)),
		IncludeBody: r.IncludeBody,
	}
	if id == "" {
		return p, nil
	}

	entry, group, ok := r.cat.Entry(id)
	if !ok {
		return Page{}, fmt.Errorf("%w: %q", ErrUnknownEntry, id)
	}
	p.Selected = true
	p.Entry = entry
	p.GroupTitle = group.Title
	p.Prev, p.Next, _ = r.cat.Neighbors(id)

	if s, ok := r.cat.Content(id); ok {
		body, err := r.RenderBody(s.Content)
		if err != nil {
			return Page{}, fmt.Errorf("rendering %s: %w", id, err)
		}
		p.HasBody = true
		p.Body = body
		p.Date = s.Date
		p.Author = s.Author
	}
	return p, nil
}

// Render writes p as a complete HTML document.
func (r *Renderer) Render(w io.Writer, p Page) error {
	return r.tmpl.Execute(w, p)
}

// RenderBody converts a sutra body to HTML. Stanzas become paragraphs and
// line breaks are kept. Markdown syntax in the verse is shown literally.
func (r *Renderer) RenderBody(content string) (template.HTML, error) {
	var buf bytes.Buffer
	if err := r.md.Convert([]byte(escapeVerse(content)), &buf); err != nil {
		return "", fmt.Errorf("converting verse: %w", err)
	}
	return template.HTML(buf.String()), nil
}

const markdownPunct = "\\`*_{}[]<>()#+-.!|~&="

// escapeVerse backslash-escapes markdown punctuation so that lines like
// "1. Tam Vô" or "- - -" stay plain text.
func escapeVerse(content string) string {
	var b strings.Builder
	b.Grow(len(content) + len(content)/8)
	for _, line := range strings.Split(strings.ReplaceAll(content, "\r\n", "\n"), "\n") {
		line = strings.TrimSpace(line)
		for _, r := range line {
			if strings.ContainsRune(markdownPunct, r) {
				b.WriteByte('\\')
			}
			b.WriteRune(r)
		}
		b.WriteByte('\n')
	}
	return b.String()
}
