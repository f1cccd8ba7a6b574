package chatclient

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// Record is a server resource the client does not interpret. The original
// JSON is kept in Raw and written back unchanged by MarshalJSON.
type Record struct {
	// ID is the record's "id" field. Numeric ids keep their JSON spelling.
	ID  string
	Raw json.RawMessage
}

// UnmarshalJSON stores data verbatim and extracts the id. data must be a
// JSON object.
func (r *Record) UnmarshalJSON(data []byte) error {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(data, &fields); err != nil {
		return fmt.Errorf("record is not an object: %w", err)
	}
	if fields == nil {
		return fmt.Errorf("record is null")
	}
	id, err := parseID(fields["id"])
	if err != nil {
		return err
	}
	r.ID = id
	r.Raw = append(json.RawMessage(nil), data...)
	return nil
}

// MarshalJSON returns the record exactly as the server sent it.
func (r Record) MarshalJSON() ([]byte, error) {
	if len(r.Raw) == 0 {
		return []byte("null"), nil
	}
	return r.Raw, nil
}

// Field returns the raw value of a top-level field.
func (r Record) Field(name string) (json.RawMessage, bool) {
	var fields map[string]json.RawMessage
	if err := json.Unmarshal(r.Raw, &fields); err != nil {
		return nil, false
	}
	v, ok := fields[name]
	return v, ok
}

// Text returns the first of the named fields that holds a non-empty string.
// It is meant for display only.
func (r Record) Text(names ...string) string {
	for _, name := range names {
		raw, ok := r.Field(name)
		if !ok {
			continue
		}
		var s string
		if err := json.Unmarshal(raw, &s); err == nil && s != "" {
			return s
		}
	}
	return ""
}

func parseID(raw json.RawMessage) (string, error) {
	raw = bytes.TrimSpace(raw)
	if len(raw) == 0 || bytes.Equal(raw, []byte("null")) {
		return "", nil
	}
	switch raw[0] {
	case '"':
		var s string
		if err := json.Unmarshal(raw, &s); err != nil {
			return "", fmt.Errorf("record id: %w", err)
		}
		return s, nil
	default:
		var n json.Number
		if err := json.Unmarshal(raw, &n); err != nil {
			return "", fmt.Errorf("record id must be a string or number, got %s", raw)
		}
		return n.String(), nil
	}
}

// Section is a server-side conversation grouping chat messages.
type Section struct{ Record }

// Agent is an assistant persona offered by the backend.
type Agent struct{ Record }

// Message is one entry in a section's history.
type Message struct{ Record }

// SendRequest addresses a question to a chat session. Payload is encoded as
// JSON; a json.RawMessage is checked for validity and sent byte for byte.
type SendRequest struct {
	SessionID string
	Payload   any
}

// MessagePayload is the body the backend's ask endpoint expects.
type MessagePayload struct {
	SessionID string `json:"session_id"`
	Question  string `json:"question"`
	AgentID   string `json:"agent_id,omitempty"`
	Language  string `json:"language,omitempty"`
}
