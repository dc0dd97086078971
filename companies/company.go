package companies

import "time"

// Company represents a tenant of the external platform that has installed
// the floor-plan app. The authorization code and access token are the auth
// material obtained through the callback flow; name, logo and metadata come
// from the platform's company profile.
type Company struct {
	ID                string         `json:"id"`
	Name              string         `json:"name"`
	LogoURL           string         `json:"logo_url,omitempty"`
	AuthorizationCode string         `json:"authorization_code"`
	AccessToken       string         `json:"access_token"`
	Metadata          map[string]any `json:"metadata,omitempty"`
	CreatedAt         time.Time      `json:"created_at"`
	UpdatedAt         time.Time      `json:"updated_at"`
}

// Redacted returns a copy of the company safe to expose through the API:
// auth material is stripped.
func (c *Company) Redacted() *Company {
	redacted := *c
	redacted.AuthorizationCode = ""
	redacted.AccessToken = ""
	return &redacted
}
