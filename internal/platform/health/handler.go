package health

import (
	"encoding/json"
	"net/http"
)

// Handler returns an HTTP handler for the health check endpoint.
// Answers 200 {"status":"ok"} when the readiness function is nil or returns
// true, 503 {"status":"not ready"} otherwise.
func Handler(readiness func() bool) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if readiness != nil && !readiness() {
			w.Header().Set("Content-Type", "application/json")
			w.WriteHeader(http.StatusServiceUnavailable)
			json.NewEncoder(w).Encode(map[string]string{"status": "not ready"})
			return
		}

		w.Header().Set("Content-Type", "application/json")
		json.NewEncoder(w).Encode(map[string]string{"status": "ok"})
	}
}
