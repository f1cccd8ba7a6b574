package site

import (
	"net/url"
	"strings"

	"github.com/votuchankinh/thuvien/internal/catalog"
)

// Links decides where pages point: the live server or a static export.
type Links struct {
	// Static selects relative .html links for an exported site.
	Static bool
	// BasePath is the relative prefix back to the export root ("" or "../").
	BasePath string
	Lang     catalog.Language
}

// LiveLinks returns links for pages served by `thuvien serve`.
func LiveLinks(lang catalog.Language) Links {
	return Links{Lang: lang}
}

// StaticLinks returns links for an exported page depth directories below
// the export root.
func StaticLinks(lang catalog.Language, depth int) Links {
	return Links{Static: true, BasePath: strings.Repeat("../", depth), Lang: lang}
}

// Read links to the page of one leaf.
func (l Links) Read(id string) string {
	if l.Static {
		return l.BasePath + "read/" + id + ".html"
	}
	return "/read/" + url.PathEscape(id) + l.langQuery(l.Lang)
}

// Home links to the library page with nothing selected.
func (l Links) Home() string {
	if l.Static {
		return l.BasePath + "index.html"
	}
	return "/" + l.langQuery(l.Lang)
}

// Asset links to a static asset such as style.css.
func (l Links) Asset(name string) string {
	if l.Static {
		return l.BasePath + name
	}
	return "/static/" + name
}

// Toggle links to the same page in the other language. Static exports are
// single-language and return "".
func (l Links) Toggle(id string) string {
	if l.Static {
		return ""
	}
	other := l.Lang.Toggle()
	if id == "" {
		return "/" + l.langQuery(other)
	}
	return "/read/" + url.PathEscape(id) + l.langQuery(other)
}

// SearchSource is where the browser script looks things up.
func (l Links) SearchSource() string {
	if l.Static {
		return l.BasePath + "search-index.json"
	}
	return "/api/search"
}

func (l Links) langQuery(lang catalog.Language) string {
	if lang == "" || lang == catalog.DefaultLanguage {
		return ""
	}
	return "?lang=" + string(lang)
}
