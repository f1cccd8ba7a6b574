// Package transcript records every question sent to the chat backend and
// the answer it streamed back.
package transcript

import (
	"context"
	"errors"
	"time"
)

// Status is the outcome of an exchange.
type Status string

const (
	StatusStreaming Status = "streaming"
	StatusComplete  Status = "complete"
	StatusPartial   Status = "partial"
	StatusFailed    Status = "failed"
	StatusAborted   Status = "aborted"
)

// ErrNotFound is returned when no exchange has the requested id.
var ErrNotFound = errors.New("exchange not found")

// Exchange is one question and its (possibly partial) answer.
type Exchange struct {
	ID         string     `json:"id"`
	SessionID  string     `json:"session_id"`
	AgentID    string     `json:"agent_id,omitempty"`
	Language   string     `json:"language,omitempty"`
	Question   string     `json:"question"`
	Answer     string     `json:"answer"`
	Status     Status     `json:"status"`
	Error      string     `json:"error,omitempty"`
	Bytes      int64      `json:"bytes"`
	CreatedAt  time.Time  `json:"created_at"`
	FinishedAt *time.Time `json:"finished_at,omitempty"`
}

// Outcome classifies how a stream ended. err is the stream's terminal
// error and received the number of answer bytes delivered.
func Outcome(err error, received int64) Status {
	switch {
	case err == nil:
		return StatusComplete
	case errors.Is(err, context.Canceled):
		return StatusAborted
	case received > 0:
		return StatusPartial
	default:
		return StatusFailed
	}
}
