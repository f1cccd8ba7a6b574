package transcript

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/votuchankinh/thuvien/internal/db"
)

func setupStore(t *testing.T) *Store {
	t.Helper()
	database, err := db.OpenMemory()
	if err != nil {
		t.Fatalf("OpenMemory: %v", err)
	}
	t.Cleanup(func() { database.Close() })
	return NewStore(database)
}

func TestBeginAndFinish(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()

	ex, err := store.Begin(ctx, Exchange{SessionID: "s1", AgentID: "a1", Language: "vi", Question: "Tam Vô là gì?"})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}
	if ex.ID == "" {
		t.Fatal("expected generated id")
	}
	if ex.Status != StatusStreaming {
		t.Errorf("Status = %q, want streaming", ex.Status)
	}

	got, err := store.Get(ctx, ex.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.FinishedAt != nil {
		t.Error("unfinished exchange should have no finished_at")
	}

	if err := store.Finish(ctx, ex.ID, "Ba cái không.", StatusComplete, "", 15); err != nil {
		t.Fatalf("Finish: %v", err)
	}

	got, err = store.Get(ctx, ex.ID)
	if err != nil {
		t.Fatalf("Get: %v", err)
	}
	if got.Answer != "Ba cái không." {
		t.Errorf("Answer = %q", got.Answer)
	}
	if got.Status != StatusComplete {
		t.Errorf("Status = %q", got.Status)
	}
	if got.Bytes != 15 {
		t.Errorf("Bytes = %d", got.Bytes)
	}
	if got.FinishedAt == nil {
		t.Error("expected finished_at")
	}
	if got.Question != "Tam Vô là gì?" || got.AgentID != "a1" || got.Language != "vi" {
		t.Errorf("unexpected exchange: %+v", got)
	}
}

func TestGetNotFound(t *testing.T) {
	store := setupStore(t)
	if _, err := store.Get(context.Background(), "missing"); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if err := store.Finish(context.Background(), "missing", "", StatusFailed, "", 0); !errors.Is(err, ErrNotFound) {
		t.Errorf("Finish: expected ErrNotFound, got %v", err)
	}
}

func TestListNewestFirstWithFilter(t *testing.T) {
	store := setupStore(t)
	ctx := context.Background()
	base := time.Date(2024, 5, 1, 10, 0, 0, 0, time.UTC)

	for i := 0; i < 4; i++ {
		session := "s1"
		if i%2 == 1 {
			session = "s2"
		}
		_, err := store.Begin(ctx, Exchange{
			ID:        fmt.Sprintf("ex-%d", i),
			SessionID: session,
			Question:  fmt.Sprintf("q%d", i),
			CreatedAt: base.Add(time.Duration(i) * time.Second),
		})
		if err != nil {
			t.Fatalf("Begin: %v", err)
		}
	}

	all, err := store.List(ctx, Filter{})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(all) != 4 || all[0].ID != "ex-3" || all[3].ID != "ex-0" {
		t.Errorf("unexpected order: %v", ids(all))
	}

	s1, err := store.List(ctx, Filter{SessionID: "s1"})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(s1) != 2 || s1[0].ID != "ex-2" {
		t.Errorf("session filter: %v", ids(s1))
	}

	page, err := store.List(ctx, Filter{Limit: 2, Offset: 1})
	if err != nil {
		t.Fatalf("List: %v", err)
	}
	if len(page) != 2 || page[0].ID != "ex-2" || page[1].ID != "ex-1" {
		t.Errorf("pagination: %v", ids(page))
	}

	if err := store.Finish(ctx, "ex-0", "", StatusFailed, "boom", 0); err != nil {
		t.Fatalf("Finish: %v", err)
	}
	failed, _ := store.List(ctx, Filter{Status: StatusFailed})
	if len(failed) != 1 || failed[0].Error != "boom" {
		t.Errorf("status filter: %+v", failed)
	}
}

func ids(exs []Exchange) []string {
	out := make([]string, len(exs))
	for i, e := range exs {
		out[i] = e.ID
	}
	return out
}

func TestOutcome(t *testing.T) {
	wrapped := fmt.Errorf("stream: %w", context.Canceled)
	tests := []struct {
		err      error
		received int64
		want     Status
	}{
		{nil, 10, StatusComplete},
		{nil, 0, StatusComplete},
		{wrapped, 10, StatusAborted},
		{io.ErrUnexpectedEOF, 10, StatusPartial},
		{io.ErrUnexpectedEOF, 0, StatusFailed},
	}
	for _, tt := range tests {
		if got := Outcome(tt.err, tt.received); got != tt.want {
			t.Errorf("Outcome(%v, %d) = %q, want %q", tt.err, tt.received, got, tt.want)
		}
	}
}

func TestRoutes(t *testing.T) {
	store := setupStore(t)
	ex, err := store.Begin(context.Background(), Exchange{SessionID: "s1", Question: "q"})
	if err != nil {
		t.Fatalf("Begin: %v", err)
	}

	r := chi.NewRouter()
	RegisterRoutes(r, store)

	req := httptest.NewRequest(http.MethodGet, "/api/transcript/?session=s1", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Fatalf("list status = %d", w.Code)
	}
	var list []Exchange
	if err := json.NewDecoder(w.Body).Decode(&list); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if len(list) != 1 || list[0].ID != ex.ID {
		t.Errorf("unexpected list: %+v", list)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/transcript/"+ex.ID, nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("get status = %d", w.Code)
	}

	req = httptest.NewRequest(http.MethodGet, "/api/transcript/nope", nil)
	w = httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusNotFound {
		t.Errorf("missing status = %d", w.Code)
	}
	if ct := w.Header().Get("Content-Type"); ct != "application/json" {
		t.Errorf("missing content type = %q", ct)
	}
	var body map[string]string
	if err := json.NewDecoder(w.Body).Decode(&body); err != nil || body["error"] != "exchange not found" {
		t.Errorf("missing body = %v (%v)", body, err)
	}
}

func TestRoutesRejectBadPaging(t *testing.T) {
	r := chi.NewRouter()
	RegisterRoutes(r, setupStore(t))

	for _, query := range []string{"limit=abc", "limit=-1", "offset=x", "offset=-5"} {
		req := httptest.NewRequest(http.MethodGet, "/api/transcript/?"+query, nil)
		w := httptest.NewRecorder()
		r.ServeHTTP(w, req)
		if w.Code != http.StatusBadRequest {
			t.Errorf("%s: status = %d, want 400", query, w.Code)
		}
		if ct := w.Header().Get("Content-Type"); ct != "application/json" {
			t.Errorf("%s: content type = %q", query, ct)
		}
	}

	req := httptest.NewRequest(http.MethodGet, "/api/transcript/?limit=5&offset=0", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	if w.Code != http.StatusOK {
		t.Errorf("valid paging: status = %d", w.Code)
	}
}
