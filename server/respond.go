package server

import (
	"encoding/json"
	"net/http"

	"github.com/seatflow/go-floorplan-server/internal/errors"
)

const contentTypeJSON = "application/json; charset=utf-8"

func writeJSON(w http.ResponseWriter, statusCode int, payload any) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeJSONError(w http.ResponseWriter, errorCode, description string, statusCode int) {
	w.Header().Set("Content-Type", contentTypeJSON)
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(map[string]string{
		"error":             errorCode,
		"error_description": description,
	})
}

// writeError maps a domain error onto the HTTP taxonomy. Descriptions stay
// generic for auth failures so a caller cannot probe which check failed.
func writeError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errors.ErrMissingParameter):
		writeJSONError(w, "invalid_request", err.Error(), http.StatusBadRequest)
	case errors.Is(err, errors.ErrInvalidSignature), errors.Is(err, errors.ErrStaleTimestamp):
		writeJSONError(w, "invalid_hmac", "signature verification failed", http.StatusUnauthorized)
	case errors.Is(err, errors.ErrInvalidSession), errors.Is(err, errors.ErrSessionExpired):
		writeJSONError(w, "unauthorized", "invalid session credential", http.StatusUnauthorized)
	case errors.Is(err, errors.ErrForbidden):
		writeJSONError(w, "forbidden", "session does not grant access to this company", http.StatusForbidden)
	case errors.Is(err, errors.ErrUnknownCompany):
		writeJSONError(w, "company_not_found", "company not found", http.StatusNotFound)
	case errors.Is(err, errors.ErrNotFound):
		writeJSONError(w, "not_found", "resource not found", http.StatusNotFound)
	case errors.Is(err, errors.ErrUpstreamAuth):
		writeJSONError(w, "upstream_auth_failed", "authentication with the platform failed", http.StatusBadGateway)
	case errors.Is(err, errors.ErrUnsupported):
		writeJSONError(w, "invalid_request", err.Error(), http.StatusBadRequest)
	default:
		writeJSONError(w, "server_error", "internal server error", http.StatusInternalServerError)
	}
}
