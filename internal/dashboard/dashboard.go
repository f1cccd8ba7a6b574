// Package dashboard relays the remote chat backend to browsers: JSON
// proxies for sections, agents and messages, and a websocket that streams
// answers chunk by chunk.
package dashboard

import (
	"context"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/votuchankinh/thuvien/internal/chatclient"
	"github.com/votuchankinh/thuvien/internal/transcript"
)

// ChatBackend is the part of chatclient.Client the dashboard uses.
type ChatBackend interface {
	ListSections(ctx context.Context, offset, limit int) ([]chatclient.Section, error)
	ListAgents(ctx context.Context, limit int, language string) ([]chatclient.Agent, error)
	ListMessages(ctx context.Context, sectionID string) ([]chatclient.Message, error)
	SendMessage(ctx context.Context, req chatclient.SendRequest) (*chatclient.Stream, error)
}

// Dashboard provides the chat page, the chat proxy endpoints and the
// websocket relay.
type Dashboard struct {
	client     ChatBackend
	transcript *transcript.Store
	language   string
	log        *zap.Logger
}

// New creates a new Dashboard. transcripts may be nil, in which case
// exchanges are not recorded. language is used when a chat message does
// not name one.
func New(client ChatBackend, transcripts *transcript.Store, language string, logger *zap.Logger) *Dashboard {
	if logger == nil {
		logger = zap.NewNop()
	}
	if language == "" {
		language = chatclient.DefaultLanguage
	}
	return &Dashboard{
		client:     client,
		transcript: transcripts,
		language:   language,
		log:        logger.Named("dashboard"),
	}
}

// RegisterRoutes mounts all dashboard routes onto the given router.
func (d *Dashboard) RegisterRoutes(r chi.Router) {
	r.Get("/chat", d.ServeIndex)
	r.Route("/api/chat", func(r chi.Router) {
		r.Get("/sections", d.handleSections)
		r.Get("/sections/{id}/messages", d.handleMessages)
		r.Get("/agents", d.handleAgents)
	})
	r.Get("/ws/chat", d.handleWebSocket)
}
