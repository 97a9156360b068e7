package handlers

import (
	"net/http"

	"github.com/darwin-mfc/clinical-api/interfaces"
)

// HealthHandler serves GET /health off the injected checker. Unlike the
// catalog endpoints it writes the checker payload directly, without the
// envelope, so probes stay trivial to parse.
func HealthHandler(checker interfaces.HealthChecker) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		status, details, httpStatus := checker.HealthCheck()
		details["status"] = status
		RespondWithJSON(w, httpStatus, details)
	}
}
