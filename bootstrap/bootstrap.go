// Package bootstrap runs the client-side session bootstrap: on page load it
// reuses a cached session when it can, otherwise it presents the signed
// redirect parameters to the verification endpoint, exchanges the returned
// credential for an active session, scrubs credential material from the
// visible URL, and caches the result for the next visit.
package bootstrap

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"sync"

	"github.com/seatflow/go-floorplan-server/internal/errors"
	"github.com/seatflow/go-floorplan-server/session"
)

// State names the steps of the bootstrap flow.
type State string

const (
	StateIdle                   State = "idle"
	StateCheckingLocalSession   State = "checking_local_session"
	StateCheckingRedirectParams State = "checking_redirect_params"
	StateVerifying              State = "verifying"
	StateSessionEstablished     State = "session_established"
	StateFailed                 State = "failed"
)

// Identity is the identity-layer boundary: it consumes an opaque session
// credential and returns the active session's claims.
type Identity interface {
	Establish(ctx context.Context, token string) (*session.Claims, error)
}

// Result is the outcome of one bootstrap run. CleanURL is the page URL with
// credential material stripped, for the presentation layer to swap into
// history. Claims is nil unless State is StateSessionEstablished.
type Result struct {
	State    State
	Claims   *session.Claims
	Token    string
	CleanURL *url.URL
}

// Flow drives the bootstrap state machine. Collaborators are injected; the
// flow owns no ambient state beyond the store it is given.
type Flow struct {
	serverURL  string
	httpClient *http.Client
	identity   Identity
	store      SessionStore

	// Serializes concurrent runs; the cache itself stays last-writer-wins.
	mu    sync.Mutex
	state State
}

func NewFlow(serverURL string, httpClient *http.Client, identity Identity, store SessionStore) *Flow {
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	return &Flow{
		serverURL:  serverURL,
		httpClient: httpClient,
		identity:   identity,
		store:      store,
		state:      StateIdle,
	}
}

// State reports the flow's last observed state.
func (f *Flow) State() State {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

// Run executes one bootstrap attempt for the given page URL. A missing
// parameter set is not an error: the result is simply StateIdle and the
// page renders anonymously. Any authentication failure clears the cache
// and returns the error alongside StateFailed.
func (f *Flow) Run(ctx context.Context, pageURL *url.URL) (*Result, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	query := pageURL.Query()

	// Reuse a previously established session when the page carries no new
	// credential material.
	f.state = StateCheckingLocalSession
	if cached, err := f.store.Get(); err == nil && cached != nil && cached.Token != "" &&
		query.Get("hmac") == "" && query.Get("token") == "" {
		claims, err := f.identity.Establish(ctx, cached.Token)
		if err == nil {
			f.state = StateSessionEstablished
			return &Result{
				State:    StateSessionEstablished,
				Claims:   claims,
				Token:    cached.Token,
				CleanURL: stripCredentials(pageURL),
			}, nil
		}
		// The cached token no longer works; fall through to the redirect
		// parameters after wiping the stale cache.
		_ = f.store.Clear()
	}

	f.state = StateCheckingRedirectParams

	// Callback variant: the server already verified and minted a
	// credential, delivered as ?token= on the redirect target.
	if token := query.Get("token"); token != "" {
		return f.establish(ctx, pageURL, token, &CachedSession{
			CompanyID: query.Get("company_id"),
			Timestamp: query.Get("timestamp"),
			HMAC:      query.Get("hmac"),
			Token:     token,
		})
	}

	companyID := query.Get("company_id")
	timestamp := query.Get("timestamp")
	hmacParam := query.Get("hmac")
	if companyID == "" || timestamp == "" || hmacParam == "" {
		// Anonymous landing view, not an error
		f.state = StateIdle
		return &Result{State: StateIdle, CleanURL: stripCredentials(pageURL)}, nil
	}

	f.state = StateVerifying
	token, err := f.verify(ctx, query)
	if err != nil {
		return f.fail(err)
	}

	return f.establish(ctx, pageURL, token, &CachedSession{
		CompanyID: companyID,
		Timestamp: timestamp,
		HMAC:      hmacParam,
		Token:     token,
	})
}

// verify presents the signed parameters to the verification endpoint and
// returns the minted session credential.
func (f *Flow) verify(ctx context.Context, query url.Values) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, f.serverURL+"/api/auth?"+query.Encode(), nil)
	if err != nil {
		return "", errors.Wrapf(err, "building verification request")
	}

	resp, err := f.httpClient.Do(req)
	if err != nil {
		return "", errors.Wrapf(err, "calling verification endpoint")
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", fmt.Errorf("verification endpoint returned %d: %s", resp.StatusCode, body)
	}

	var payload struct {
		Token string `json:"token"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return "", errors.Wrapf(err, "decoding verification response")
	}
	if payload.Token == "" {
		return "", fmt.Errorf("verification endpoint returned no token")
	}
	return payload.Token, nil
}

// establish exchanges the credential for an active session, then persists
// the cache and strips credential material from the visible URL.
func (f *Flow) establish(ctx context.Context, pageURL *url.URL, token string, cached *CachedSession) (*Result, error) {
	claims, err := f.identity.Establish(ctx, token)
	if err != nil {
		return f.fail(errors.Wrapf(err, "establishing session"))
	}

	if cached.CompanyID == "" {
		cached.CompanyID = claims.CompanyID
	}
	if err := f.store.Set(cached); err != nil {
		return f.fail(errors.Wrapf(err, "persisting session cache"))
	}

	f.state = StateSessionEstablished
	return &Result{
		State:    StateSessionEstablished,
		Claims:   claims,
		Token:    token,
		CleanURL: stripCredentials(pageURL),
	}, nil
}

// fail clears cached session material and surfaces the error; the flow
// never auto-retries.
func (f *Flow) fail(err error) (*Result, error) {
	_ = f.store.Clear()
	f.state = StateFailed
	return &Result{State: StateFailed}, err
}

// stripCredentials removes credential material from the page URL so it does
// not leak through browser history or referrer headers.
func stripCredentials(pageURL *url.URL) *url.URL {
	clean := *pageURL
	query := clean.Query()
	query.Del("token")
	query.Del("hmac")
	clean.RawQuery = query.Encode()
	return &clean
}
