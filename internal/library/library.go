// Package library serves the bilingual library pages and the catalog API.
package library

import (
	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/votuchankinh/thuvien/internal/catalog"
	"github.com/votuchankinh/thuvien/internal/config"
	"github.com/votuchankinh/thuvien/internal/site"
	"github.com/votuchankinh/thuvien/internal/vectordb"
)

// Library provides the reading pages and the catalog endpoints.
type Library struct {
	cat      *catalog.Catalog
	renderer *site.Renderer
	search   config.SearchConfig
	lang     catalog.Language
	semantic vectordb.VectorStore
	log      *zap.Logger
}

// Options configures a Library. Semantic may be nil, which disables
// mode=semantic searches.
type Options struct {
	Search   config.SearchConfig
	Language catalog.Language
	Semantic vectordb.VectorStore
	Logger   *zap.Logger
}

// New creates a Library over cat.
func New(cat *catalog.Catalog, opts Options) (*Library, error) {
	r, err := site.NewRenderer(cat)
	if err != nil {
		return nil, err
	}
	r.IncludeBody = opts.Search.IncludeBody

	lang := opts.Language
	if lang == "" {
		lang = catalog.DefaultLanguage
	}
	log := opts.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &Library{
		cat:      cat,
		renderer: r,
		search:   opts.Search,
		lang:     lang,
		semantic: opts.Semantic,
		log:      log.Named("library"),
	}, nil
}

// RegisterRoutes mounts the pages and catalog API onto the given router.
func (l *Library) RegisterRoutes(r chi.Router) {
	r.Get("/", l.handleIndex)
	r.Get("/read/{id}", l.handleRead)
	r.Get("/static/{name}", l.handleAsset)

	r.Route("/api", func(r chi.Router) {
		r.Get("/toc", l.handleToc)
		r.Get("/sutras/{id}", l.handleSutra)
		r.Get("/search", l.handleSearch)
	})
}
