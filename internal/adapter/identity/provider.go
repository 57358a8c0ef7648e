package identity

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/srgjo27/event_ticketing/internal/core/ports"
	"golang.org/x/crypto/bcrypt"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"
)

const (
	ProviderGoogle = "google"

	googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"
)

type OAuthConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string

	// Endpoint and UserInfoURL override the provider defaults.
	Endpoint    oauth2.Endpoint
	UserInfoURL string
}

// Provider authenticates against stored profiles (email and password) and
// against external OAuth providers. OAuth sign-ins create the profile on
// first use.
type Provider struct {
	profiles ports.ProfileRepository
	oauth    map[string]oauthClient
	now      func() time.Time
}

type oauthClient struct {
	config      *oauth2.Config
	userInfoURL string
}

type userInfo struct {
	Email         string `json:"email"`
	Name          string `json:"name"`
	VerifiedEmail *bool  `json:"verified_email"`
}

func NewProvider(profiles ports.ProfileRepository) *Provider {
	return &Provider{
		profiles: profiles,
		oauth:    map[string]oauthClient{},
		now:      time.Now,
	}
}

// WithGoogle enables Google sign-in. It is a no-op when no client id is set.
func (p *Provider) WithGoogle(cfg OAuthConfig) *Provider {
	if cfg.ClientID == "" {
		return p
	}

	endpoint := cfg.Endpoint
	if endpoint.TokenURL == "" {
		endpoint = google.Endpoint
	}
	userInfoURL := cfg.UserInfoURL
	if userInfoURL == "" {
		userInfoURL = googleUserInfoURL
	}

	p.oauth[ProviderGoogle] = oauthClient{
		config: &oauth2.Config{
			ClientID:     cfg.ClientID,
			ClientSecret: cfg.ClientSecret,
			RedirectURL:  cfg.RedirectURL,
			Scopes:       []string{"https://www.googleapis.com/auth/userinfo.profile", "https://www.googleapis.com/auth/userinfo.email"},
			Endpoint:     endpoint,
		},
		userInfoURL: userInfoURL,
	}

	return p
}

func (p *Provider) SignInWithPassword(ctx context.Context, email, secret string) (*domain.Principal, error) {
	profile, err := p.profiles.GetByEmail(ctx, strings.ToLower(strings.TrimSpace(email)))
	if errors.Is(err, domain.ErrNotFound) {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	} else if err != nil {
		return nil, err
	}

	if profile.PasswordHash == "" {
		return nil, fmt.Errorf("%w: password sign-in not enabled for this account", domain.ErrUnauthorized)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(profile.PasswordHash), []byte(secret)); err != nil {
		return nil, fmt.Errorf("%w: invalid credentials", domain.ErrUnauthorized)
	}

	principal := profile.Principal
	return &principal, nil
}

func (p *Provider) AuthCodeURL(provider, state string) (string, error) {
	client, err := p.client(provider)
	if err != nil {
		return "", err
	}

	return client.config.AuthCodeURL(state, oauth2.AccessTypeOnline), nil
}

func (p *Provider) ExchangeCode(ctx context.Context, provider, code string) (*domain.Principal, error) {
	client, err := p.client(provider)
	if err != nil {
		return nil, err
	}

	if code == "" {
		return nil, fmt.Errorf("%w: missing authorization code", domain.ErrValidation)
	}

	token, err := client.config.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("%w: exchange code: %v", domain.ErrUnauthorized, err)
	}

	info, err := fetchUserInfo(ctx, client.config.Client(ctx, token), client.userInfoURL)
	if err != nil {
		return nil, err
	}

	stored, err := p.profiles.Upsert(ctx, &domain.Profile{
		Principal: domain.Principal{
			ID:    uuid.NewString(),
			Email: strings.ToLower(strings.TrimSpace(info.Email)),
			Name:  strings.TrimSpace(info.Name),
		},
		CreatedAt: p.now(),
	})
	if err != nil {
		return nil, err
	}

	principal := stored.Principal
	return &principal, nil
}

func (p *Provider) client(provider string) (oauthClient, error) {
	client, ok := p.oauth[strings.ToLower(provider)]
	if !ok {
		return oauthClient{}, fmt.Errorf("%w: unsupported provider %q", domain.ErrValidation, provider)
	}
	return client, nil
}

func fetchUserInfo(ctx context.Context, httpClient *http.Client, url string) (*userInfo, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, err
	}

	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: fetch user info: %v", domain.ErrUnauthorized, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("%w: user info returned %d", domain.ErrUnauthorized, resp.StatusCode)
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return nil, fmt.Errorf("%w: decode user info: %v", domain.ErrUnauthorized, err)
	}

	if info.Email == "" {
		return nil, fmt.Errorf("%w: provider returned no email", domain.ErrUnauthorized)
	}
	if info.VerifiedEmail != nil && !*info.VerifiedEmail {
		return nil, fmt.Errorf("%w: email not verified", domain.ErrUnauthorized)
	}

	return &info, nil
}

// HashPassword returns the bcrypt hash stored in profiles.password_hash.
func HashPassword(secret string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(secret), bcrypt.DefaultCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}
