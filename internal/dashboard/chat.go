package dashboard

import (
	"context"
	"encoding/json"
	"net/http"
	"strings"
	"unicode/utf8"

	"github.com/gorilla/websocket"
	"go.uber.org/zap"

	"github.com/votuchankinh/thuvien/internal/chatclient"
	"github.com/votuchankinh/thuvien/internal/transcript"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// chatRequest is the incoming WebSocket message format.
type chatRequest struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
	AgentID   string `json:"agent_id,omitempty"`
	Language  string `json:"language,omitempty"`
}

// chatResponse is the outgoing WebSocket message format.
type chatResponse struct {
	Type       string `json:"type"` // "chunk", "done" or "error"
	Content    string `json:"content,omitempty"`
	Partial    bool   `json:"partial,omitempty"`
	ExchangeID string `json:"exchange_id,omitempty"`
}

// inbound is one message read off the socket, or the reason it could not
// be decoded.
type inbound struct {
	req chatRequest
	err error
}

func (d *Dashboard) handleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := upgrader.Upgrade(w, r, nil)
	if err != nil {
		d.log.Warn("websocket upgrade", zap.Error(err))
		return
	}
	defer conn.Close()

	// A closed socket cancels the answer being streamed.
	ctx, cancel := context.WithCancel(r.Context())
	defer cancel()

	requests := make(chan inbound)
	go func() {
		defer close(requests)
		defer cancel()
		for {
			_, msg, err := conn.ReadMessage()
			if err != nil {
				if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseNormalClosure) {
					d.log.Debug("websocket read", zap.Error(err))
				}
				return
			}
			var in inbound
			in.err = json.Unmarshal(msg, &in.req)
			select {
			case requests <- in:
			case <-ctx.Done():
				return
			}
		}
	}()

	for in := range requests {
		if in.err != nil {
			d.send(conn, chatResponse{Type: "error", Content: "invalid message format"})
			continue
		}
		if strings.TrimSpace(in.req.Question) == "" {
			d.send(conn, chatResponse{Type: "error", Content: "question is required"})
			continue
		}
		d.relay(ctx, conn, in.req)
	}
}

// relay sends one question to the backend and forwards the answer. The
// exchange is recorded in the transcript however the stream ends.
func (d *Dashboard) relay(ctx context.Context, conn *websocket.Conn, req chatRequest) {
	if req.Language == "" {
		req.Language = d.language
	}
	log := d.log.With(zap.String("session_id", req.SessionID))
	rec := d.begin(ctx, req)

	stream, err := d.client.SendMessage(ctx, chatclient.SendRequest{
		SessionID: req.SessionID,
		Payload: chatclient.MessagePayload{
			SessionID: req.SessionID,
			Question:  req.Question,
			AgentID:   req.AgentID,
			Language:  req.Language,
		},
	})
	if err != nil {
		log.Warn("send message", zap.Error(err))
		d.finish(ctx, rec, "", transcript.StatusFailed, err, 0)
		d.send(conn, chatResponse{Type: "error", Content: err.Error(), ExchangeID: rec})
		return
	}
	defer stream.Close()

	var (
		answer  strings.Builder
		carry   []byte
		writeOK = true
	)
	for stream.Next() {
		chunk := stream.Chunk()
		answer.Write(chunk)
		if !writeOK {
			continue
		}
		var text []byte
		text, carry = splitUTF8(append(carry, chunk...))
		if len(text) == 0 {
			continue
		}
		if err := conn.WriteJSON(chatResponse{Type: "chunk", Content: string(text)}); err != nil {
			log.Debug("websocket write", zap.Error(err))
			writeOK = false
			stream.Close()
		}
	}
	if writeOK && len(carry) > 0 {
		writeOK = d.send(conn, chatResponse{Type: "chunk", Content: string(carry)})
	}

	streamErr := stream.Err()
	status := transcript.Outcome(streamErr, stream.Received())
	if !writeOK && streamErr == nil {
		status = transcript.StatusAborted
	}
	d.finish(ctx, rec, answer.String(), status, streamErr, stream.Received())

	if !writeOK {
		return
	}
	if streamErr != nil {
		log.Warn("answer stream failed", zap.Error(streamErr), zap.Int64("received", stream.Received()))
		d.send(conn, chatResponse{Type: "error", Content: streamErr.Error(), Partial: stream.Received() > 0, ExchangeID: rec})
		return
	}
	d.send(conn, chatResponse{Type: "done", ExchangeID: rec})
}

// splitUTF8 returns the longest prefix of b that does not end inside a
// multi-byte character, and the remainder.
func splitUTF8(b []byte) (complete, rest []byte) {
	for i := len(b) - 1; i >= 0 && i >= len(b)-utf8.UTFMax; i-- {
		if !utf8.RuneStart(b[i]) {
			continue
		}
		if utf8.FullRune(b[i:]) {
			return b, nil
		}
		return b[:i], append([]byte(nil), b[i:]...)
	}
	return b, nil
}

func (d *Dashboard) begin(ctx context.Context, req chatRequest) string {
	if d.transcript == nil {
		return ""
	}
	ex, err := d.transcript.Begin(context.WithoutCancel(ctx), transcript.Exchange{
		SessionID: req.SessionID,
		AgentID:   req.AgentID,
		Language:  req.Language,
		Question:  req.Question,
	})
	if err != nil {
		d.log.Warn("recording exchange", zap.Error(err))
		return ""
	}
	return ex.ID
}

func (d *Dashboard) finish(ctx context.Context, id, answer string, status transcript.Status, streamErr error, received int64) {
	if d.transcript == nil || id == "" {
		return
	}
	var msg string
	if streamErr != nil {
		msg = streamErr.Error()
	}
	if err := d.transcript.Finish(context.WithoutCancel(ctx), id, answer, status, msg, received); err != nil {
		d.log.Warn("finishing exchange", zap.String("id", id), zap.Error(err))
	}
}

func (d *Dashboard) send(conn *websocket.Conn, resp chatResponse) bool {
	if err := conn.WriteJSON(resp); err != nil {
		d.log.Debug("websocket write", zap.Error(err))
		return false
	}
	return true
}
