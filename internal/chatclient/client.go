// Package chatclient talks to the remote chat backend: sections, agents,
// message history and streamed answers.
package chatclient

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"
)

const (
	DefaultOffset       = 0
	DefaultSectionLimit = 20
	DefaultAgentLimit   = 10
	DefaultLanguage     = "vi"
)

// Config holds the connection settings. It is copied by New.
type Config struct {
	BaseURL string
	Token   string
	// HTTPClient defaults to a client without a timeout so long answers can
	// stream; bound calls through the context instead.
	HTTPClient *http.Client
	Logger     *zap.Logger
}

// Client is safe for concurrent use. Its settings never change after New.
type Client struct {
	baseURL string
	token   string
	http    *http.Client
	log     *zap.Logger
}

// New validates cfg and returns a Client.
func New(cfg Config) (*Client, error) {
	u, err := url.Parse(strings.TrimSpace(cfg.BaseURL))
	if err != nil {
		return nil, fmt.Errorf("%w: base url: %v", ErrInvalidArgument, err)
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, fmt.Errorf("%w: base url %q must be an absolute http(s) url", ErrInvalidArgument, cfg.BaseURL)
	}
	u.RawQuery = ""
	u.Fragment = ""

	httpClient := cfg.HTTPClient
	if httpClient == nil {
		httpClient = &http.Client{}
	}
	logger := cfg.Logger
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Client{
		baseURL: strings.TrimRight(u.String(), "/"),
		token:   cfg.Token,
		http:    httpClient,
		log:     logger.Named("chatclient"),
	}, nil
}

// BaseURL returns the normalised backend address.
func (c *Client) BaseURL() string { return c.baseURL }

// ListSections returns one page of the caller's conversations.
func (c *Client) ListSections(ctx context.Context, offset, limit int) ([]Section, error) {
	if offset < 0 {
		return nil, fmt.Errorf("%w: offset must be >= 0, got %d", ErrInvalidArgument, offset)
	}
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be > 0, got %d", ErrInvalidArgument, limit)
	}
	q := url.Values{}
	q.Set("offset", strconv.Itoa(offset))
	q.Set("limit", strconv.Itoa(limit))
	return getList[Section](ctx, c, "list sections", c.endpoint("/api/v1/sections", q), false)
}

// ListAgents returns the available agents with descriptions in language,
// which must be "vi" or "en". An empty language means DefaultLanguage.
func (c *Client) ListAgents(ctx context.Context, limit int, language string) ([]Agent, error) {
	if limit <= 0 {
		return nil, fmt.Errorf("%w: limit must be > 0, got %d", ErrInvalidArgument, limit)
	}
	if language == "" {
		language = DefaultLanguage
	}
	if language != "vi" && language != "en" {
		return nil, fmt.Errorf("%w: language must be vi or en, got %q", ErrInvalidArgument, language)
	}
	q := url.Values{}
	q.Set("language", language)
	q.Set("limit", strconv.Itoa(limit))
	return getList[Agent](ctx, c, "list agents", c.endpoint("/api/v1/agents", q), false)
}

// ListMessages returns the history of one section.
func (c *Client) ListMessages(ctx context.Context, sectionID string) ([]Message, error) {
	if sectionID == "" {
		return nil, fmt.Errorf("%w: section id is required", ErrInvalidArgument)
	}
	path := "/api/v1/sections/" + url.PathEscape(sectionID) + "/messages"
	return getList[Message](ctx, c, "list messages", c.endpoint(path, nil), true)
}

// SendMessage posts a question and returns the answer as a Stream. The
// caller must Close the stream.
func (c *Client) SendMessage(ctx context.Context, req SendRequest) (*Stream, error) {
	const op = "send message"
	if req.SessionID == "" {
		return nil, fmt.Errorf("%w: session id is required", ErrInvalidArgument)
	}
	if req.Payload == nil {
		return nil, fmt.Errorf("%w: payload is required", ErrInvalidArgument)
	}
	body, err := encodePayload(req.Payload)
	if err != nil {
		return nil, err
	}

	ctx, cancel := context.WithCancel(ctx)
	path := "/api/v1/chat/" + url.PathEscape(req.SessionID) + "/ask"
	httpReq, err := c.newRequest(ctx, http.MethodPost, c.endpoint(path, nil), bytes.NewReader(body))
	if err != nil {
		cancel()
		return nil, err
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Accept", "text/event-stream, text/plain, application/json, */*")

	resp, err := c.do(op, httpReq, true)
	if err != nil {
		cancel()
		return nil, err
	}
	return newStream(ctx, cancel, resp.Body, c.log), nil
}

// encodePayload returns the request body. A json.RawMessage is posted as
// is, other values are marshalled.
func encodePayload(payload any) ([]byte, error) {
	if raw, ok := payload.(json.RawMessage); ok {
		if !json.Valid(raw) {
			return nil, fmt.Errorf("%w: payload is not valid JSON", ErrInvalidArgument)
		}
		return raw, nil
	}
	body, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("%w: encoding payload: %v", ErrInvalidArgument, err)
	}
	return body, nil
}

func (c *Client) endpoint(path string, q url.Values) string {
	u := c.baseURL + path
	if len(q) > 0 {
		u += "?" + q.Encode()
	}
	return u
}

func (c *Client) newRequest(ctx context.Context, method, endpoint string, body io.Reader) (*http.Request, error) {
	req, err := http.NewRequestWithContext(ctx, method, endpoint, body)
	if err != nil {
		return nil, fmt.Errorf("%w: building request: %v", ErrInvalidArgument, err)
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}
	req.Header.Set("Accept", "application/json")
	return req, nil
}

// do sends req once. A non-2xx response is drained, closed and returned as
// a typed error.
func (c *Client) do(op string, req *http.Request, resourceScoped bool) (*http.Response, error) {
	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		c.log.Debug("request failed",
			zap.String("op", op),
			zap.String("method", req.Method),
			zap.String("path", req.URL.Path),
			zap.Error(err),
		)
		return nil, &TransportError{Op: op, Err: err}
	}

	c.log.Debug("request",
		zap.String("op", op),
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return resp, nil
	}
	defer resp.Body.Close()
	body, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
	return nil, statusError(op, resp.StatusCode, bytes.TrimSpace(body), resourceScoped)
}

func getList[T any](ctx context.Context, c *Client, op, endpoint string, resourceScoped bool) ([]T, error) {
	req, err := c.newRequest(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return nil, err
	}
	resp, err := c.do(op, req, resourceScoped)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, &TransportError{Op: op, Err: err}
	}
	var out []T
	if err := json.Unmarshal(data, &out); err != nil {
		return nil, &DecodeError{Op: op, Err: err}
	}
	return out, nil
}
