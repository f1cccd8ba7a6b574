package dashboard

import (
	_ "embed"
	"net/http"
)

//go:embed chat.html
var chatHTML []byte

// ServeIndex serves the embedded chat page.
func (d *Dashboard) ServeIndex(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write(chatHTML)
}
