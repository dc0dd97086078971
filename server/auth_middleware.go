package server

import (
	"context"
	"net/http"
	"strings"

	"github.com/seatflow/go-floorplan-server/session"
)

// ContextKey is a custom type for context keys to avoid collisions
type ContextKey string

const (
	// ContextKeyCompanyID stores the authenticated company ID
	ContextKeyCompanyID ContextKey = "company_id"
	// ContextKeyClaims stores the parsed session claims
	ContextKeyClaims ContextKey = "claims"
)

// RequireSession validates the Bearer session credential and pins it to the
// tenant in the request path: a valid session for one company cannot touch
// another company's floor plan.
func (s *Server) RequireSession() func(http.HandlerFunc) http.HandlerFunc {
	return func(next http.HandlerFunc) http.HandlerFunc {
		return func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				writeJSONError(w, "unauthorized", "missing Authorization header", http.StatusUnauthorized)
				return
			}

			parts := strings.SplitN(authHeader, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "bearer") || parts[1] == "" {
				writeJSONError(w, "unauthorized", "invalid Authorization header format", http.StatusUnauthorized)
				return
			}

			claims, err := s.issuer.Verify(parts[1])
			if err != nil {
				writeError(w, err)
				return
			}

			if companyID := r.PathValue("companyID"); companyID != "" && companyID != claims.CompanyID {
				writeJSONError(w, "forbidden", "session does not grant access to this company", http.StatusForbidden)
				return
			}

			ctx := context.WithValue(r.Context(), ContextKeyCompanyID, claims.CompanyID)
			ctx = context.WithValue(ctx, ContextKeyClaims, claims)
			next(w, r.WithContext(ctx))
		}
	}
}

// SessionClaims extracts the authenticated claims placed by RequireSession.
func SessionClaims(r *http.Request) *session.Claims {
	claims, _ := r.Context().Value(ContextKeyClaims).(*session.Claims)
	return claims
}
