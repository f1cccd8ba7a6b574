package site

import (
	"fmt"
	"html"
	"strings"

	"github.com/votuchankinh/thuvien/internal/catalog"
)

// TocTree is the sidebar navigation built from the table of contents.
type TocTree struct {
	Groups []catalog.TocGroup
}

// BuildTree constructs the sidebar tree from the catalog's groups.
func BuildTree(groups []catalog.TocGroup) *TocTree {
	return &TocTree{Groups: groups}
}

// ToHTML renders the tree as nested <ul><li> HTML for the sidebar. The
// group holding activeID is expanded and the leaf is marked active. Group
// titles and leaf titles are escaped.
func (t *TocTree) ToHTML(activeID string, links Links) string {
	var b strings.Builder
	b.WriteString("<ul>\n")
	for _, g := range t.Groups {
		expanded := ""
		if containsLeaf(g, activeID) {
			expanded = " expanded"
		}
		fmt.Fprintf(&b, `<li class="dir%s" data-group="%s"><span class="dir-toggle">%s</span>`+"\n",
			expanded, html.EscapeString(g.ID), html.EscapeString(g.Title))
		b.WriteString("<ul>\n")
		for _, e := range g.Items {
			activeClass := ""
			if e.ID == activeID {
				activeClass = ` class="active"`
			}
			fmt.Fprintf(&b, `<li class="file"><a href="%s"%s>%s</a></li>`+"\n",
				html.EscapeString(links.Read(e.ID)), activeClass, html.EscapeString(e.Title))
		}
		b.WriteString("</ul>\n</li>\n")
	}
	b.WriteString("</ul>\n")
	return b.String()
}

func containsLeaf(g catalog.TocGroup, id string) bool {
	if id == "" {
		return false
	}
	for _, e := range g.Items {
		if e.ID == id {
			return true
		}
	}
	return false
}
