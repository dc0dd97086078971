package server

import (
	"net/http"
	"net/url"

	"github.com/rs/zerolog/log"

	"github.com/seatflow/go-floorplan-server/companies"
	"github.com/seatflow/go-floorplan-server/signing"
)

// CallbackHandler completes the install/authorization flow: it verifies the
// signed redirect, exchanges the one-time code for an access token, stores
// the tenant record, and bounces the browser to redirect_to with a freshly
// minted session credential appended.
//
// GET /api/callback?company_id=&code=&timestamp=&hmac=&redirect_to=
func (s *Server) CallbackHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		query := r.URL.Query()
		companyID := query.Get("company_id")
		code := query.Get("code")
		timestamp := query.Get("timestamp")
		hmacParam := query.Get("hmac")
		redirectTo := query.Get("redirect_to")
		if redirectTo == "" {
			redirectTo = "/"
		}

		if companyID == "" || code == "" || timestamp == "" || hmacParam == "" {
			writeJSONError(w, "invalid_request", "company_id, code, timestamp and hmac are required", http.StatusBadRequest)
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

		// The code is single-use: a failure here is terminal and the
		// tenant record stays untouched.
		accessToken, err := s.platform.ExchangeCode(r.Context(), code)
		if err != nil {
			log.Err(err).Str("company_id", companyID).Msg("authorization code exchange failed")
			writeError(w, err)
			return
		}

		company := &companies.Company{
			ID:                companyID,
			AuthorizationCode: code,
			AccessToken:       accessToken,
		}

		// Profile enrichment is cosmetic; auth must not fail because of it
		if profile, err := s.platform.FetchCompany(r.Context(), companyID, accessToken); err != nil {
			log.Warn().Err(err).Str("company_id", companyID).Msg("company profile fetch failed")
		} else {
			company.Name = profile.Name
			company.LogoURL = profile.LogoURL
			company.Metadata = profile.Raw
		}

		if err := s.repos.Companies.Upsert(company); err != nil {
			log.Err(err).Str("company_id", companyID).Msg("failed to store company")
			writeJSONError(w, "server_error", "failed to store company", http.StatusInternalServerError)
			return
		}

		token, err := s.issuer.Issue(companyID, accessToken)
		if err != nil {
			log.Err(err).Str("company_id", companyID).Msg("failed to issue session credential")
			writeError(w, err)
			return
		}

		http.Redirect(w, r, appendToken(redirectTo, token), http.StatusFound)
	}
}

// appendToken adds the session credential to the redirect target's query
// string. An unparseable target falls back to the landing page.
func appendToken(redirectTo, token string) string {
	target, err := url.Parse(redirectTo)
	if err != nil {
		target = &url.URL{Path: "/"}
	}
	values := target.Query()
	values.Set("token", token)
	target.RawQuery = values.Encode()
	return target.String()
}
