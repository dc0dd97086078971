// Package platform is the client for the external e-commerce platform: it
// exchanges one-time authorization codes for access tokens and fetches
// company profiles. The client is constructed once and passed down
// explicitly; there is no package-level instance.
package platform

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	"golang.org/x/oauth2"

	"github.com/seatflow/go-floorplan-server/internal/errors"
)

// Credentials identify this app to the platform.
type Credentials struct {
	ClientID     string
	ClientSecret string
	RedirectURI  string
}

// CompanyProfile is the subset of the platform's company object this app
// cares about. Raw carries the full profile for storage as metadata.
type CompanyProfile struct {
	ID      string
	Name    string
	LogoURL string
	Raw     map[string]any
}

type Client struct {
	baseURL    string
	oauthCfg   *oauth2.Config
	httpClient *http.Client
	timeout    time.Duration
}

// NewClient creates a platform client. timeout bounds each outbound call;
// an expired deadline surfaces as ErrUpstreamAuth.
func NewClient(baseURL string, creds Credentials, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 10 * time.Second
	}
	return &Client{
		baseURL: baseURL,
		oauthCfg: &oauth2.Config{
			ClientID:     creds.ClientID,
			ClientSecret: creds.ClientSecret,
			RedirectURL:  creds.RedirectURI,
			Endpoint: oauth2.Endpoint{
				TokenURL: baseURL + "/oauth/token",
				// The platform expects client credentials in the form body
				AuthStyle: oauth2.AuthStyleInParams,
			},
		},
		httpClient: &http.Client{Timeout: timeout},
		timeout:    timeout,
	}
}

// ExchangeCode trades a one-time authorization code for an access token
// using the authorization_code grant. Codes are single-use: any failure is
// terminal and the redirect flow must be restarted.
func (c *Client) ExchangeCode(ctx context.Context, code string) (string, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()
	ctx = context.WithValue(ctx, oauth2.HTTPClient, c.httpClient)

	token, err := c.oauthCfg.Exchange(ctx, code)
	if err != nil {
		return "", errors.Wrapf(errors.ErrUpstreamAuth, "exchanging authorization code: %v", err)
	}
	if token.AccessToken == "" {
		return "", errors.Wrapf(errors.ErrUpstreamAuth, "token endpoint returned no access token")
	}
	return token.AccessToken, nil
}

// FetchCompany retrieves the company profile on behalf of the tenant.
func (c *Client) FetchCompany(ctx context.Context, companyID, accessToken string) (*CompanyProfile, error) {
	ctx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	url := fmt.Sprintf("%s/api/companies/%s", c.baseURL, companyID)
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrUpstreamAuth, "building company request: %v", err)
	}
	req.Header.Set("Authorization", "Bearer "+accessToken)
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, errors.Wrapf(errors.ErrUpstreamAuth, "fetching company %q: %v", companyID, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return nil, errors.Wrapf(errors.ErrUpstreamAuth, "fetching company %q: status %d: %s", companyID, resp.StatusCode, body)
	}

	raw := map[string]any{}
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, errors.Wrapf(errors.ErrUpstreamAuth, "decoding company %q: %v", companyID, err)
	}

	profile := &CompanyProfile{ID: companyID, Raw: raw}
	if name, ok := raw["name"].(string); ok {
		profile.Name = name
	}
	// The platform serves the logo under logoUrl; accept snake_case too.
	if logo, ok := raw["logoUrl"].(string); ok {
		profile.LogoURL = logo
	} else if logo, ok := raw["logo_url"].(string); ok {
		profile.LogoURL = logo
	}
	return profile, nil
}
