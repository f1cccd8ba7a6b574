package library

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"

	"github.com/votuchankinh/thuvien/internal/catalog"
	"github.com/votuchankinh/thuvien/internal/config"
	"github.com/votuchankinh/thuvien/internal/vectordb"
)

// stubStore answers every search with the same results.
type stubStore struct {
	results []vectordb.SearchResult
	query   string
}

func (s *stubStore) AddDocuments(context.Context, []vectordb.Document) error { return nil }
func (s *stubStore) DeleteBySutra(context.Context, string) error            { return nil }
func (s *stubStore) Persist(context.Context, string) error                  { return nil }
func (s *stubStore) Load(context.Context, string) error                     { return nil }
func (s *stubStore) Count() int                                             { return len(s.results) }

func (s *stubStore) Search(_ context.Context, query string, _ int, _ *vectordb.SearchFilter) ([]vectordb.SearchResult, error) {
	s.query = query
	return s.results, nil
}

func setupRouter(t *testing.T, opts Options) chi.Router {
	t.Helper()
	l, err := New(catalog.MustLoad(), opts)
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	r := chi.NewRouter()
	l.RegisterRoutes(r)
	return r
}

func get(r http.Handler, target string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, target, nil))
	return w
}

func TestIndexPage(t *testing.T) {
	r := setupRouter(t, Options{})

	w := get(r, "/")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); !strings.Contains(ct, "text/html") {
		t.Errorf("expected text/html content type, got %q", ct)
	}
	body := w.Body.String()
	for _, want := range []string{"THƯ VIỆN", "Mục Lục", "Chọn một mục để đọc nội dung", "1. Tam Vô"} {
		if !strings.Contains(body, want) {
			t.Errorf("index page missing %q", want)
		}
	}
}

func TestReadPageInEnglish(t *testing.T) {
	r := setupRouter(t, Options{})

	w := get(r, "/read/section-01-01-tam-vo?lang=en")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	body := w.Body.String()
	for _, want := range []string{"Table of Contents", "Tam Tinh Quy Nhất Bổn", `class="dir expanded" data-group="section-01-tam-vo"`, "Tiếng Việt", `<html lang="en"`} {
		if !strings.Contains(body, want) {
			t.Errorf("read page missing %q", want)
		}
	}
}

func TestReadPageUnsupportedLanguageFallsBack(t *testing.T) {
	r := setupRouter(t, Options{Language: catalog.English})

	w := get(r, "/read/section-01-01-tam-vo?lang=fr")
	if !strings.Contains(w.Body.String(), "Table of Contents") {
		t.Error("unsupported lang should fall back to the configured language")
	}
}

func TestReadUnknownEntry(t *testing.T) {
	r := setupRouter(t, Options{})

	w := get(r, "/read/no-such-sutra")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Chọn một mục để đọc nội dung") {
		t.Error("unknown id should show the selection prompt")
	}
}

func TestStaticAssets(t *testing.T) {
	r := setupRouter(t, Options{})

	w := get(r, "/static/style.css")
	if w.Code != http.StatusOK || !strings.Contains(w.Header().Get("Content-Type"), "text/css") {
		t.Errorf("style.css: %d %q", w.Code, w.Header().Get("Content-Type"))
	}
	if w := get(r, "/static/nope.txt"); w.Code != http.StatusNotFound {
		t.Errorf("unknown asset: expected 404, got %d", w.Code)
	}
}

func TestTocEndpoint(t *testing.T) {
	r := setupRouter(t, Options{})

	w := get(r, "/api/toc?lang=en")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var resp tocResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding toc: %v", err)
	}
	if resp.Language != catalog.English || resp.Labels.Library != "LIBRARY" {
		t.Errorf("unexpected language/labels: %q %+v", resp.Language, resp.Labels)
	}
	if len(resp.Groups) != 21 {
		t.Errorf("expected 21 groups, got %d", len(resp.Groups))
	}

	if w := get(r, "/api/toc?lang=fr"); w.Code != http.StatusBadRequest {
		t.Errorf("unsupported lang: expected 400, got %d", w.Code)
	}
}

func TestSutraEndpoint(t *testing.T) {
	r := setupRouter(t, Options{})

	w := get(r, "/api/sutras/section-01-01-tam-vo")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	var s catalog.Sutra
	if err := json.NewDecoder(w.Body).Decode(&s); err != nil {
		t.Fatalf("decoding sutra: %v", err)
	}
	if s.Title != "Tam Vô" || s.Author != "TAM VÔ" {
		t.Errorf("unexpected sutra: %q by %q", s.Title, s.Author)
	}

	w = get(r, "/api/sutras/nope")
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "sutra not found") {
		t.Errorf("unexpected body: %s", w.Body.String())
	}
}

func TestSearchEndpoint(t *testing.T) {
	r := setupRouter(t, Options{Search: config.SearchConfig{Limit: 20}})

	w := get(r, "/api/search?q=tam+vo")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp searchResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatalf("decoding search: %v", err)
	}
	if resp.Mode != "text" || len(resp.Results) == 0 {
		t.Fatalf("unexpected response: %+v", resp)
	}
	if resp.Results[0].Entry.ID != "section-01-01-tam-vo" {
		t.Errorf("first result: got %q", resp.Results[0].Entry.ID)
	}
}

func TestSearchEndpointBodyAndEmpty(t *testing.T) {
	r := setupRouter(t, Options{})

	var resp searchResponse
	json.NewDecoder(get(r, "/api/search?q=li%C3%AAn+hoa+c%C3%A0nh&body=true").Body).Decode(&resp)
	found := false
	for _, m := range resp.Results {
		if m.Entry.ID == "section-01-02-vo-tu-nga" && m.Field == catalog.FieldContent {
			found = true
		}
	}
	if !found {
		t.Error("body search should match section-01-02-vo-tu-nga")
	}

	w := get(r, "/api/search?q=")
	if !strings.Contains(w.Body.String(), `"results":[]`) {
		t.Errorf("empty query should return an empty list: %s", w.Body.String())
	}
}

func TestSearchEndpointBadParams(t *testing.T) {
	r := setupRouter(t, Options{})

	for _, target := range []string{
		"/api/search?q=x&body=maybe",
		"/api/search?q=x&limit=-1",
		"/api/search?q=x&within=%5Bbad",
		"/api/search?q=x&mode=fuzzy",
	} {
		if w := get(r, target); w.Code != http.StatusBadRequest {
			t.Errorf("%s: expected 400, got %d", target, w.Code)
		}
	}
}

func TestSemanticSearch(t *testing.T) {
	if w := get(setupRouter(t, Options{}), "/api/search?q=x&mode=semantic"); w.Code != http.StatusServiceUnavailable {
		t.Errorf("semantic without index: expected 503, got %d", w.Code)
	}

	store := &stubStore{results: []vectordb.SearchResult{
		{Document: vectordb.Document{ID: "a#01", Content: "Tam Vô\nTam Tinh Quy Nhất Bổn", Metadata: vectordb.DocumentMetadata{SutraID: "a", Title: "Tam Vô", Kind: vectordb.KindStanza}}, Similarity: 0.9},
		{Document: vectordb.Document{ID: "a#02", Content: "Tam Vô\nkhác", Metadata: vectordb.DocumentMetadata{SutraID: "a", Title: "Tam Vô", Kind: vectordb.KindStanza}}, Similarity: 0.8},
	}}
	r := setupRouter(t, Options{Semantic: store})

	w := get(r, "/api/search?q=ba+c%C3%A1i+kh%C3%B4ng&mode=semantic")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var resp semanticResponse
	if err := json.NewDecoder(w.Body).Decode(&resp); err != nil {
		t.Fatal(err)
	}
	if store.query != "ba cái không" {
		t.Errorf("query passed to store: %q", store.query)
	}
	if len(resp.Hits) != 1 || resp.Hits[0].Excerpt != "Tam Tinh Quy Nhất Bổn" {
		t.Errorf("unexpected hits: %+v", resp.Hits)
	}
}
