package server

import (
	"encoding/json"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/seatflow/go-floorplan-server/session"
	"github.com/seatflow/go-floorplan-server/signing"
)

// clockSkewTolerance allows for modest clock drift between the platform and
// this server when judging timestamp freshness.
const clockSkewTolerance = 5 * time.Minute

// AuthHandler verifies a signed redirect and mints a session credential for
// a known company.
//
// GET /api/auth?company_id=&timestamp=&hmac=
func (s *Server) AuthHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		companyID := query.Get("company_id")
		timestamp := query.Get("timestamp")
		hmacParam := query.Get("hmac")

		// Parameter presence is checked before any signature work
		if companyID == "" || timestamp == "" || hmacParam == "" {
			writeJSONError(w, "invalid_request", "company_id, timestamp and hmac are required", http.StatusBadRequest)
			return
		}

		if !signing.Verify(flattenQuery(query), s.config.GetClientSecret()) {
			writeJSONError(w, "invalid_hmac", "signature verification failed", http.StatusUnauthorized)
			return
		}

		if !s.freshTimestamp(timestamp) {
			writeJSONError(w, "stale_request", "signed request has expired", http.StatusUnauthorized)
			return
		}

		company, err := s.repos.Companies.Get(companyID)
		if err != nil {
			writeError(w, err)
			return
		}

		token, err := s.issuer.Issue(company.ID, company.AccessToken)
		if err != nil {
			log.Err(err).Str("company_id", companyID).Msg("failed to issue session credential")
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	}
}

// TokenHandler mints a session credential directly from known identity
// claims. Intended for server-side callers that already hold a valid access
// token for the tenant.
//
// POST /api/auth/token  {"company_id": "...", "access_token": "..."}
func (s *Server) TokenHandler() http.HandlerFunc {
	type tokenRequest struct {
		CompanyID   string `json:"company_id"`
		AccessToken string `json:"access_token"`
	}

	return func(w http.ResponseWriter, r *http.Request) {
		var req tokenRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			writeJSONError(w, "invalid_request", "malformed JSON body", http.StatusBadRequest)
			return
		}
		if req.CompanyID == "" {
			writeJSONError(w, "invalid_request", "company_id is required", http.StatusBadRequest)
			return
		}

		token, err := s.issuer.Issue(req.CompanyID, req.AccessToken)
		if err != nil {
			log.Err(err).Str("company_id", req.CompanyID).Msg("failed to issue session credential")
			writeError(w, err)
			return
		}

		writeJSON(w, http.StatusOK, map[string]string{"token": token})
	}
}

// freshTimestamp applies the replay window: a signed request older than
// AUTH_MAX_AGE (or unreasonably far in the future) is rejected even though
// its signature is valid. A non-positive max age disables the check.
func (s *Server) freshTimestamp(timestamp string) bool {
	maxAge := s.config.GetAuthMaxAge()
	if maxAge <= 0 {
		return true
	}

	seconds, err := strconv.ParseInt(timestamp, 10, 64)
	if err != nil {
		return false
	}

	age := session.NowTimeFunc().Sub(time.Unix(seconds, 0))
	return age <= maxAge && age >= -clockSkewTolerance
}

// flattenQuery reduces query parameters to the single-valued mapping the
// signature scheme is defined over. Duplicate keys keep their first value.
func flattenQuery(query url.Values) map[string]string {
	params := make(map[string]string, len(query))
	for key, values := range query {
		if len(values) > 0 {
			params[key] = values[0]
		}
	}
	return params
}
