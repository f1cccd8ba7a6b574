package embeddings

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/avast/retry-go/v4"
	openai "github.com/sashabaranov/go-openai"
)

const (
	defaultAttempts = 3
	defaultDelay    = 500 * time.Millisecond
)

type retryingEmbedder struct {
	Embedder
	attempts uint
	delay    time.Duration
}

// WithRetry retries transient failures of e: network errors, 429 and 5xx.
func WithRetry(e Embedder, attempts uint, delay time.Duration) Embedder {
	return &retryingEmbedder{Embedder: e, attempts: attempts, delay: delay}
}

func (r *retryingEmbedder) Embed(ctx context.Context, texts []string) ([][]float32, error) {
	var out [][]float32
	err := retry.Do(
		func() error {
			var err error
			out, err = r.Embedder.Embed(ctx, texts)
			return err
		},
		retry.Context(ctx),
		retry.Attempts(r.attempts),
		retry.Delay(r.delay),
		retry.RetryIf(transient),
		retry.LastErrorOnly(true),
	)
	return out, err
}

func transient(err error) bool {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		return false
	}
	code := 0
	var apiErr *openai.APIError
	var reqErr *openai.RequestError
	var statusErr *StatusError
	switch {
	case errors.As(err, &apiErr):
		code = apiErr.HTTPStatusCode
	case errors.As(err, &reqErr):
		code = reqErr.HTTPStatusCode
	case errors.As(err, &statusErr):
		code = statusErr.StatusCode
	default:
		return true
	}
	return code == http.StatusTooManyRequests || code >= 500
}
