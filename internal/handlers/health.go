package handlers

import (
	"net/http"
	"time"
)

// Health reports liveness plus enough environment detail to diagnose a
// misconfigured deployment at a glance.
func Health(env string, backends []string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]interface{}{
			"status":      "ok",
			"timestamp":   time.Now().UTC().Format(time.RFC3339),
			"environment": env,
			"aiBackends":  backends,
		})
	}
}
