package health

import (
	"encoding/json"
	"io"
	"net/http"
	"strings"
)

// LivenessHandler answers 200 as long as the process serves HTTP at all.
func LivenessHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		write(w, r, http.StatusOK, &Response{Status: StatusHealthy})
	}
}

// ReadinessHandler runs checks per request and answers 503 when any fails.
func ReadinessHandler(checks Checks, opts ...Option) http.HandlerFunc {
	cfg := newConfig(opts)
	return func(w http.ResponseWriter, r *http.Request) {
		resp := cfg.run(r.Context(), checks)
		code := http.StatusOK
		if resp.Status != StatusHealthy {
			code = http.StatusServiceUnavailable
		}
		write(w, r, code, resp)
	}
}

// write sends JSON to clients asking for it (Accept or ?format=json) and a
// one-word body to everything else, e.g. load balancer probes.
func write(w http.ResponseWriter, r *http.Request, code int, resp *Response) {
	h := w.Header()
	h.Set("Cache-Control", "no-store")

	if r.URL.Query().Get("format") == "json" || strings.Contains(r.Header.Get("Accept"), "application/json") {
		h.Set("Content-Type", "application/json")
		w.WriteHeader(code)
		_ = json.NewEncoder(w).Encode(resp)
		return
	}

	h.Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	body := "OK"
	if code != http.StatusOK {
		body = "Service Unavailable"
	}
	_, _ = io.WriteString(w, body)
}
