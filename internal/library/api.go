package library

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/votuchankinh/thuvien/internal/catalog"
	"github.com/votuchankinh/thuvien/internal/vectordb"
)

// tocResponse is the JSON response for the table-of-contents endpoint.
type tocResponse struct {
	Language catalog.Language   `json:"language"`
	Labels   catalog.Labels     `json:"labels"`
	Groups   []catalog.TocGroup `json:"groups"`
}

// searchResponse is the JSON response for a text search.
type searchResponse struct {
	Query   string          `json:"query"`
	Mode    string          `json:"mode"`
	Results []catalog.Match `json:"results"`
}

// semanticResponse is the JSON response for a semantic search.
type semanticResponse struct {
	Query string         `json:"query"`
	Mode  string         `json:"mode"`
	Hits  []vectordb.Hit `json:"hits"`
}

func (l *Library) handleToc(w http.ResponseWriter, r *http.Request) {
	lang := l.lang
	if v := r.URL.Query().Get("lang"); v != "" {
		var err error
		if lang, err = catalog.ParseLanguage(v); err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
	}
	writeJSON(w, http.StatusOK, tocResponse{
		Language: lang,
		Labels:   catalog.Translations(lang),
		Groups:   l.cat.Toc(),
	})
}

func (l *Library) handleSutra(w http.ResponseWriter, r *http.Request) {
	s, ok := l.cat.Content(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "sutra not found")
		return
	}
	writeJSON(w, http.StatusOK, s)
}

func (l *Library) handleSearch(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	query := q.Get("q")

	opts := l.search.Options()
	if v := q.Get("body"); v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			writeError(w, http.StatusBadRequest, "body must be true or false")
			return
		}
		opts.IncludeBody = b
	}
	if v := q.Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		opts.Limit = n
	}
	opts.Within = q.Get("within")

	switch mode := q.Get("mode"); mode {
	case "", "text":
		matches, err := l.cat.Search(query, opts)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		if matches == nil {
			matches = []catalog.Match{}
		}
		writeJSON(w, http.StatusOK, searchResponse{Query: query, Mode: "text", Results: matches})

	case "semantic":
		if l.semantic == nil {
			writeError(w, http.StatusServiceUnavailable, "semantic search is not enabled; run thuvien index")
			return
		}
		hits, err := vectordb.SearchSutras(r.Context(), l.semantic, query, opts.Limit)
		if err != nil {
			l.log.Warn("semantic search failed", zap.String("query", query), zap.Error(err))
			writeError(w, http.StatusBadGateway, err.Error())
			return
		}
		if hits == nil {
			hits = []vectordb.Hit{}
		}
		writeJSON(w, http.StatusOK, semanticResponse{Query: query, Mode: "semantic", Hits: hits})

	default:
		writeError(w, http.StatusBadRequest, "mode must be text or semantic")
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
