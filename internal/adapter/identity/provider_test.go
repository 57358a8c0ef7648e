package identity_test

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"

	"github.com/srgjo27/event_ticketing/internal/adapter/identity"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/srgjo27/event_ticketing/internal/core/ports/mocks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"
)

func TestSignInWithPassword(t *testing.T) {
	hash, err := identity.HashPassword("s3cret")
	require.NoError(t, err)

	stored := &domain.Profile{
		Principal:    domain.Principal{ID: "p-1", Email: "ana@example.com", Name: "Ana", Role: domain.RoleAdmin},
		PasswordHash: hash,
	}

	t.Run("valid credentials", func(t *testing.T) {
		profiles := mocks.NewProfileRepository(t)
		profiles.On("GetByEmail", mock.Anything, "ana@example.com").Return(stored, nil)

		principal, err := identity.NewProvider(profiles).SignInWithPassword(context.Background(), " Ana@Example.com ", "s3cret")

		require.NoError(t, err)
		assert.Equal(t, stored.Principal, *principal)
	})

	t.Run("wrong password", func(t *testing.T) {
		profiles := mocks.NewProfileRepository(t)
		profiles.On("GetByEmail", mock.Anything, "ana@example.com").Return(stored, nil)

		_, err := identity.NewProvider(profiles).SignInWithPassword(context.Background(), "ana@example.com", "nope")

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("unknown email", func(t *testing.T) {
		profiles := mocks.NewProfileRepository(t)
		profiles.On("GetByEmail", mock.Anything, "ghost@example.com").Return(nil, domain.ErrNotFound)

		_, err := identity.NewProvider(profiles).SignInWithPassword(context.Background(), "ghost@example.com", "x")

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})

	t.Run("oauth-only account", func(t *testing.T) {
		profiles := mocks.NewProfileRepository(t)
		profiles.On("GetByEmail", mock.Anything, "oauth@example.com").
			Return(&domain.Profile{Principal: domain.Principal{Email: "oauth@example.com"}}, nil)

		_, err := identity.NewProvider(profiles).SignInWithPassword(context.Background(), "oauth@example.com", "")

		assert.ErrorIs(t, err, domain.ErrUnauthorized)
	})
}

func TestAuthCodeURL(t *testing.T) {
	provider := identity.NewProvider(mocks.NewProfileRepository(t)).WithGoogle(identity.OAuthConfig{
		ClientID:    "client-id",
		RedirectURL: "http://localhost:8080/auth/callback/google",
	})

	raw, err := provider.AuthCodeURL("google", "state-123")
	require.NoError(t, err)

	u, err := url.Parse(raw)
	require.NoError(t, err)
	assert.Equal(t, "client-id", u.Query().Get("client_id"))
	assert.Equal(t, "state-123", u.Query().Get("state"))

	_, err = provider.AuthCodeURL("github", "state-123")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestAuthCodeURL_GoogleDisabledWithoutClientID(t *testing.T) {
	provider := identity.NewProvider(mocks.NewProfileRepository(t)).WithGoogle(identity.OAuthConfig{})

	_, err := provider.AuthCodeURL("google", "s")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func newOAuthServer(t *testing.T, info map[string]any) *httptest.Server {
	t.Helper()

	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, r.ParseForm())
		if r.Form.Get("code") != "good-code" {
			w.WriteHeader(http.StatusBadRequest)
			_, _ = w.Write([]byte(`{"error":"invalid_grant"}`))
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"access-1","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("Authorization") != "Bearer access-1" {
			w.WriteHeader(http.StatusUnauthorized)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_ = json.NewEncoder(w).Encode(info)
	})

	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)

	return server
}

func googleAt(profiles *mocks.ProfileRepository, server *httptest.Server) *identity.Provider {
	return identity.NewProvider(profiles).WithGoogle(identity.OAuthConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		Endpoint:     oauth2.Endpoint{AuthURL: server.URL + "/auth", TokenURL: server.URL + "/token"},
		UserInfoURL:  server.URL + "/userinfo",
	})
}

func TestExchangeCode_UpsertsProfile(t *testing.T) {
	server := newOAuthServer(t, map[string]any{"email": "Beto@Example.com", "name": "Beto", "verified_email": true})

	profiles := mocks.NewProfileRepository(t)
	profiles.On("Upsert", mock.Anything, mock.MatchedBy(func(p *domain.Profile) bool {
		return p.Email == "beto@example.com" && p.Name == "Beto" && p.Role == ""
	})).Return(func(_ context.Context, p *domain.Profile) *domain.Profile {
		out := *p
		out.Role = domain.RoleUser
		return &out
	}, nil)

	principal, err := googleAt(profiles, server).ExchangeCode(context.Background(), "google", "good-code")

	require.NoError(t, err)
	assert.Equal(t, "beto@example.com", principal.Email)
	assert.Equal(t, domain.RoleUser, principal.Role)
}

func TestExchangeCode_RejectedCode(t *testing.T) {
	server := newOAuthServer(t, map[string]any{"email": "beto@example.com"})

	_, err := googleAt(mocks.NewProfileRepository(t), server).ExchangeCode(context.Background(), "google", "bad-code")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestExchangeCode_UnverifiedEmail(t *testing.T) {
	server := newOAuthServer(t, map[string]any{"email": "beto@example.com", "verified_email": false})

	_, err := googleAt(mocks.NewProfileRepository(t), server).ExchangeCode(context.Background(), "google", "good-code")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestExchangeCode_MissingCode(t *testing.T) {
	server := newOAuthServer(t, nil)

	_, err := googleAt(mocks.NewProfileRepository(t), server).ExchangeCode(context.Background(), "google", "")

	assert.ErrorIs(t, err, domain.ErrValidation)
}
