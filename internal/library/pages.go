package library

import (
	"bytes"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/votuchankinh/thuvien/internal/catalog"
	"github.com/votuchankinh/thuvien/internal/site"
)

func (l *Library) handleIndex(w http.ResponseWriter, r *http.Request) {
	l.servePage(w, r, "")
}

func (l *Library) handleRead(w http.ResponseWriter, r *http.Request) {
	l.servePage(w, r, chi.URLParam(r, "id"))
}

// servePage renders the page for id. An unknown id falls back to the
// landing page with a 404 status.
func (l *Library) servePage(w http.ResponseWriter, r *http.Request, id string) {
	links := site.LiveLinks(l.pageLanguage(r))

	status := http.StatusOK
	page, err := l.renderer.Page(id, links)
	if errors.Is(err, site.ErrUnknownEntry) {
		status = http.StatusNotFound
		page, err = l.renderer.Page("", links)
	}
	if err != nil {
		l.log.Error("rendering page", zap.String("id", id), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}

	var buf bytes.Buffer
	if err := l.renderer.Render(&buf, page); err != nil {
		l.log.Error("rendering page", zap.String("id", id), zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	w.Write(buf.Bytes())
}

func (l *Library) handleAsset(w http.ResponseWriter, r *http.Request) {
	content, contentType, ok := site.Asset(chi.URLParam(r, "name"))
	if !ok {
		http.NotFound(w, r)
		return
	}
	w.Header().Set("Content-Type", contentType)
	w.Header().Set("Cache-Control", "public, max-age=3600")
	w.Write([]byte(content))
}

// pageLanguage reads ?lang=, falling back to the configured language for
// missing or unsupported values.
func (l *Library) pageLanguage(r *http.Request) catalog.Language {
	v := r.URL.Query().Get("lang")
	if v == "" {
		return l.lang
	}
	lang, err := catalog.ParseLanguage(v)
	if err != nil {
		return l.lang
	}
	return lang
}
