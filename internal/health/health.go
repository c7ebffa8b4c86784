// Package health serves the keep-alive endpoints polled by uptime monitors.
package health

import (
	"encoding/json"
	"net/http"

	"github.com/gorilla/mux"
)

const aliveText = "Telegram encoder bot is alive."

// Counter reports how many jobs are waiting for a resolution choice.
type Counter interface {
	Len() int
}

// NewRouter serves GET / and GET /health. pending may be nil.
func NewRouter(pending Counter) *mux.Router {
	r := mux.NewRouter()
	r.HandleFunc("/", func(w http.ResponseWriter, _ *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte(aliveText))
	}).Methods(http.MethodGet, http.MethodHead)
	r.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		body := map[string]any{"ok": true}
		if pending != nil {
			body["pending"] = pending.Len()
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(body)
	}).Methods(http.MethodGet)
	return r
}
