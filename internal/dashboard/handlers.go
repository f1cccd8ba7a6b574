package dashboard

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/votuchankinh/thuvien/internal/chatclient"
)

func (d *Dashboard) handleSections(w http.ResponseWriter, r *http.Request) {
	offset, ok := intParam(w, r, "offset", chatclient.DefaultOffset)
	if !ok {
		return
	}
	limit, ok := intParam(w, r, "limit", chatclient.DefaultSectionLimit)
	if !ok {
		return
	}

	sections, err := d.client.ListSections(r.Context(), offset, limit)
	if err != nil {
		d.writeBackendError(w, err)
		return
	}
	if sections == nil {
		sections = []chatclient.Section{}
	}
	writeJSON(w, http.StatusOK, sections)
}

func (d *Dashboard) handleAgents(w http.ResponseWriter, r *http.Request) {
	limit, ok := intParam(w, r, "limit", chatclient.DefaultAgentLimit)
	if !ok {
		return
	}
	language := r.URL.Query().Get("language")
	if language == "" {
		language = d.language
	}

	agents, err := d.client.ListAgents(r.Context(), limit, language)
	if err != nil {
		d.writeBackendError(w, err)
		return
	}
	if agents == nil {
		agents = []chatclient.Agent{}
	}
	writeJSON(w, http.StatusOK, agents)
}

func (d *Dashboard) handleMessages(w http.ResponseWriter, r *http.Request) {
	messages, err := d.client.ListMessages(r.Context(), chi.URLParam(r, "id"))
	if err != nil {
		d.writeBackendError(w, err)
		return
	}
	if messages == nil {
		messages = []chatclient.Message{}
	}
	writeJSON(w, http.StatusOK, messages)
}

// intParam reads a non-negative integer query parameter. It writes a 400
// response and returns false when the value is malformed.
func intParam(w http.ResponseWriter, r *http.Request, name string, def int) (int, bool) {
	v := r.URL.Query().Get(name)
	if v == "" {
		return def, true
	}
	n, err := strconv.Atoi(v)
	if err != nil || n < 0 {
		writeError(w, http.StatusBadRequest, name+" must be a non-negative integer")
		return 0, false
	}
	return n, true
}

// backendStatus maps a chat client error to the status returned to the
// browser.
func backendStatus(err error) int {
	var (
		authErr     *chatclient.AuthError
		notFoundErr *chatclient.NotFoundError
	)
	switch {
	case errors.Is(err, chatclient.ErrInvalidArgument):
		return http.StatusBadRequest
	case errors.As(err, &authErr):
		return http.StatusUnauthorized
	case errors.As(err, &notFoundErr):
		return http.StatusNotFound
	default:
		return http.StatusBadGateway
	}
}

func (d *Dashboard) writeBackendError(w http.ResponseWriter, err error) {
	status := backendStatus(err)
	if status == http.StatusBadGateway {
		d.log.Warn("chat backend error", zap.Error(err))
	}
	writeError(w, status, err.Error())
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}
