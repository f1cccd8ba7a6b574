package embeddings

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"
	"time"

	"github.com/votuchankinh/thuvien/internal/config"
)

func TestOllamaEmbedBatch(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/api/embed" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		var req ollamaEmbedRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode: %v", err)
		}
		if req.Model != "nomic-embed-text" || len(req.Input) != 2 {
			t.Errorf("unexpected request: %+v", req)
		}
		json.NewEncoder(w).Encode(ollamaEmbedResponse{Embeddings: [][]float32{{1, 0}, {0, 1}}})
	}))
	defer srv.Close()

	e := NewOllamaEmbedder("nomic-embed-text", 2, srv.URL+"/")
	got, err := e.Embed(context.Background(), []string{"Tam Vô", "Thiền"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(got) != 2 || got[1][1] != 1 {
		t.Errorf("unexpected vectors: %v", got)
	}
	if e.Name() != "ollama/nomic-embed-text" || e.Dimensions() != 2 {
		t.Errorf("unexpected name/dimensions: %s %d", e.Name(), e.Dimensions())
	}
}

func TestOpenAIEmbedUsesBaseURL(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/v1/embeddings" {
			t.Errorf("path: got %q", r.URL.Path)
		}
		if r.Header.Get("Authorization") != "Bearer sk-test" {
			t.Errorf("authorization: got %q", r.Header.Get("Authorization"))
		}
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"object":"list","model":"text-embedding-3-small","data":[
			{"object":"embedding","index":1,"embedding":[0,1]},
			{"object":"embedding","index":0,"embedding":[1,0]}
		]}`))
	}))
	defer srv.Close()

	e := NewOpenAIEmbedder("sk-test", ModelTextEmbedding3Small, srv.URL+"/v1")
	got, err := e.Embed(context.Background(), []string{"a", "b"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if got[0][0] != 1 || got[1][1] != 1 {
		t.Errorf("vectors not ordered by index: %v", got)
	}
	if e.Dimensions() != 1536 {
		t.Errorf("dimensions: got %d", e.Dimensions())
	}
}

type flakyEmbedder struct {
	calls int32
	errs  []error
}

func (f *flakyEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	n := atomic.AddInt32(&f.calls, 1)
	if int(n) <= len(f.errs) {
		return nil, f.errs[n-1]
	}
	return [][]float32{{1}}, nil
}
func (f *flakyEmbedder) Dimensions() int { return 1 }
func (f *flakyEmbedder) Name() string    { return "flaky" }

func TestWithRetryRetriesTransient(t *testing.T) {
	inner := &flakyEmbedder{errs: []error{
		&StatusError{StatusCode: http.StatusServiceUnavailable},
		errors.New("connection reset"),
	}}
	e := WithRetry(inner, 3, time.Millisecond)

	got, err := e.Embed(context.Background(), []string{"x"})
	if err != nil {
		t.Fatalf("Embed: %v", err)
	}
	if len(got) != 1 {
		t.Errorf("unexpected result: %v", got)
	}
	if inner.calls != 3 {
		t.Errorf("expected 3 calls, got %d", inner.calls)
	}
	if e.Name() != "flaky" {
		t.Errorf("wrapper should keep the inner name, got %q", e.Name())
	}
}

func TestWithRetryStopsOnClientError(t *testing.T) {
	inner := &flakyEmbedder{errs: []error{&StatusError{StatusCode: http.StatusBadRequest, Body: "bad model"}}}
	e := WithRetry(inner, 3, time.Millisecond)

	_, err := e.Embed(context.Background(), []string{"x"})
	var se *StatusError
	if !errors.As(err, &se) || se.StatusCode != http.StatusBadRequest {
		t.Fatalf("expected 400 StatusError, got %v", err)
	}
	if inner.calls != 1 {
		t.Errorf("expected a single call, got %d", inner.calls)
	}
}

func TestToChromemFunc(t *testing.T) {
	fn := ToChromemFunc(&flakyEmbedder{})
	v, err := fn(context.Background(), "x")
	if err != nil || len(v) != 1 {
		t.Errorf("unexpected result %v, %v", v, err)
	}
}

func TestFromConfig(t *testing.T) {
	if _, err := FromConfig(config.EmbeddingsConfig{Provider: config.EmbeddingNone}); err == nil {
		t.Error("expected error when embeddings are disabled")
	}

	t.Setenv("OPENAI_API_KEY", "")
	if _, err := FromConfig(config.EmbeddingsConfig{Provider: config.EmbeddingOpenAI}); err == nil {
		t.Error("expected error for missing API key")
	}

	e, err := FromConfig(config.EmbeddingsConfig{Provider: config.EmbeddingOllama})
	if err != nil {
		t.Fatalf("FromConfig: %v", err)
	}
	if e.Name() != "ollama/nomic-embed-text" {
		t.Errorf("default model not applied: %q", e.Name())
	}
}
