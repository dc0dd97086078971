package platform_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"github.com/seatflow/go-floorplan-server/internal/errors"
	"github.com/seatflow/go-floorplan-server/platform"
)

var testCreds = platform.Credentials{
	ClientID:     "client-1",
	ClientSecret: "client-secret",
	RedirectURI:  "https://app.example.com/api/callback",
}

func TestClient_ExchangeCode(t *testing.T) {
	t.Run("sends the authorization_code grant form", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, http.MethodPost, r.Method)
			require.Equal(t, "/oauth/token", r.URL.Path)
			require.NoError(t, r.ParseForm())
			require.Equal(t, "authorization_code", r.PostForm.Get("grant_type"))
			require.Equal(t, "one-time-code", r.PostForm.Get("code"))
			require.Equal(t, "client-1", r.PostForm.Get("client_id"))
			require.Equal(t, "client-secret", r.PostForm.Get("client_secret"))
			require.Equal(t, testCreds.RedirectURI, r.PostForm.Get("redirect_uri"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"access_token":"granted-token","token_type":"bearer"}`))
		}))
		defer server.Close()

		client := platform.NewClient(server.URL, testCreds, time.Second)
		accessToken, err := client.ExchangeCode(context.Background(), "one-time-code")
		require.NoError(t, err)
		require.Equal(t, "granted-token", accessToken)
	})

	t.Run("non-2xx is an upstream auth error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, `{"error":"invalid_grant"}`, http.StatusBadRequest)
		}))
		defer server.Close()

		client := platform.NewClient(server.URL, testCreds, time.Second)
		_, err := client.ExchangeCode(context.Background(), "expired-code")
		require.Error(t, err)
		require.True(t, errors.Is(err, errors.ErrUpstreamAuth))
	})

	t.Run("empty access token is an upstream auth error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"token_type":"bearer"}`))
		}))
		defer server.Close()

		client := platform.NewClient(server.URL, testCreds, time.Second)
		_, err := client.ExchangeCode(context.Background(), "one-time-code")
		require.Error(t, err)
		require.True(t, errors.Is(err, errors.ErrUpstreamAuth))
	})

	t.Run("slow endpoint times out as upstream auth error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
		}))
		defer server.Close()

		client := platform.NewClient(server.URL, testCreds, 50*time.Millisecond)
		_, err := client.ExchangeCode(context.Background(), "one-time-code")
		require.Error(t, err)
		require.True(t, errors.Is(err, errors.ErrUpstreamAuth))
	})
}

func TestClient_FetchCompany(t *testing.T) {
	t.Run("extracts profile fields and keeps the raw document", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			require.Equal(t, "/api/companies/company-1", r.URL.Path)
			require.Equal(t, "Bearer granted-token", r.Header.Get("Authorization"))

			w.Header().Set("Content-Type", "application/json")
			_, _ = w.Write([]byte(`{"id":"company-1","name":"Cafe du Parc","logoUrl":"https://cdn.example.com/logo.png","plan":"pro"}`))
		}))
		defer server.Close()

		client := platform.NewClient(server.URL, testCreds, time.Second)
		profile, err := client.FetchCompany(context.Background(), "company-1", "granted-token")
		require.NoError(t, err)
		require.Equal(t, "Cafe du Parc", profile.Name)
		require.Equal(t, "https://cdn.example.com/logo.png", profile.LogoURL)
		require.Equal(t, "pro", profile.Raw["plan"])
	})

	t.Run("non-2xx is an upstream auth error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "nope", http.StatusForbidden)
		}))
		defer server.Close()

		client := platform.NewClient(server.URL, testCreds, time.Second)
		_, err := client.FetchCompany(context.Background(), "company-1", "bad-token")
		require.Error(t, err)
		require.True(t, errors.Is(err, errors.ErrUpstreamAuth))
	})
}
