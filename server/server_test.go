package server_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seatflow/go-floorplan-server/companies"
	companyfakes "github.com/seatflow/go-floorplan-server/companies/repofakes"
	"github.com/seatflow/go-floorplan-server/floorplan"
	floorplanfakes "github.com/seatflow/go-floorplan-server/floorplan/repofakes"
	"github.com/seatflow/go-floorplan-server/internal/config"
	"github.com/seatflow/go-floorplan-server/platform"
	"github.com/seatflow/go-floorplan-server/server"
	"github.com/seatflow/go-floorplan-server/session"
)

const (
	testClientSecret   = "shared-client-secret"
	testSessionSecret  = "session-signing-secret"
	testCompanyID      = "company-1"
	testAccessToken    = "platform-access-token"
	testUpstreamToken  = "exchanged-access-token"
	testUpstreamedCode = "one-time-code"
)

// testConfig satisfies config.Config with fixed values.
type testConfig struct {
	platformURL string
}

func (testConfig) GetPort() string     { return ":0" }
func (testConfig) GetAppName() string  { return "Floor Plan Server" }
func (testConfig) GetDataFile() string { return "" }
func (testConfig) GetEnv() string      { return "TEST" }

func (testConfig) GetAllowedOrigins() config.AllowedOrigins {
	return config.AllowedOrigins{"https://app.example.com": {}}
}
func (testConfig) GetAllowedMethods() string { return "GET, POST, PUT, PATCH, DELETE" }
func (testConfig) GetAllowedHeaders() string { return "Content-Type, Authorization" }

func (tc testConfig) GetPlatformURL() string { return tc.platformURL }

func (testConfig) GetClientID() string               { return "client-1" }
func (testConfig) GetClientSecret() string           { return testClientSecret }
func (testConfig) GetRedirectURI() string            { return "https://app.example.com/api/callback" }
func (testConfig) GetExchangeTimeout() time.Duration { return time.Second }
func (testConfig) GetSessionSigningSecret() string   { return testSessionSecret }
func (testConfig) GetSessionTokenTTL() time.Duration { return time.Hour }
func (testConfig) GetAuthMaxAge() time.Duration      { return 24 * time.Hour }

var _ config.Config = testConfig{}

// upstream fakes the external platform's token and company endpoints.
type upstream struct {
	server      *httptest.Server
	failTokens  bool
	failProfile bool
}

func newUpstream(t *testing.T) *upstream {
	t.Helper()

	u := &upstream{}
	mux := http.NewServeMux()
	mux.HandleFunc("POST /oauth/token", func(w http.ResponseWriter, r *http.Request) {
		if u.failTokens {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"` + testUpstreamToken + `","token_type":"bearer"}`))
	})
	mux.HandleFunc("GET /api/companies/{companyID}", func(w http.ResponseWriter, r *http.Request) {
		if u.failProfile {
			http.Error(w, "unavailable", http.StatusServiceUnavailable)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"` + r.PathValue("companyID") + `","name":"Cafe du Parc","logoUrl":"https://cdn.example.com/logo.png"}`))
	})

	u.server = httptest.NewServer(mux)
	t.Cleanup(u.server.Close)
	return u
}

type fixture struct {
	companyRepo *companyfakes.FakeCompanyRepo
	floorplan   *floorplan.Service
	upstream    *upstream
	httpServer  *httptest.Server
	issuer      *session.Issuer
}

func setup(t *testing.T) *fixture {
	t.Helper()

	up := newUpstream(t)
	cfg := testConfig{platformURL: up.server.URL}

	companyRepo := companyfakes.NewFakeCompanyRepo()
	floorplanService := floorplan.NewService(floorplanfakes.NewFakeFloorplanRepo())
	platformClient := platform.NewClient(up.server.URL, platform.Credentials{
		ClientID:     cfg.GetClientID(),
		ClientSecret: cfg.GetClientSecret(),
		RedirectURI:  cfg.GetRedirectURI(),
	}, cfg.GetExchangeTimeout())

	srv, err := server.New(cfg, server.Repos{Companies: companyRepo}, floorplanService, platformClient)
	require.NoError(t, err)

	httpServer := httptest.NewServer(srv)
	t.Cleanup(httpServer.Close)

	return &fixture{
		companyRepo: companyRepo,
		floorplan:   floorplanService,
		upstream:    up,
		httpServer:  httpServer,
		issuer:      session.NewIssuer(session.NewHMACSigner(testSessionSecret), time.Hour),
	}
}

func (f *fixture) seedCompany(t *testing.T) {
	t.Helper()
	require.NoError(t, f.companyRepo.Upsert(&companies.Company{
		ID:          testCompanyID,
		Name:        "Cafe du Parc",
		AccessToken: testAccessToken,
	}))
}

// noRedirectClient returns redirect responses instead of following them.
func noRedirectClient() *http.Client {
	return &http.Client{
		CheckRedirect: func(*http.Request, []*http.Request) error {
			return http.ErrUseLastResponse
		},
	}
}
