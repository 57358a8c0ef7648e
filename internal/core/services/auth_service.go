package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/srgjo27/event_ticketing/internal/core/ports"
)

const defaultSessionTTL = 24 * time.Hour

type AuthConfig struct {
	Secret     []byte
	SessionTTL time.Duration
	Now        func() time.Time
}

type sessionClaims struct {
	Email string `json:"email"`
	jwt.RegisteredClaims
}

// AuthService turns a successful sign-in into a session. The principal is
// kept in the session store; the token handed to the client only names the
// session.
type AuthService struct {
	idp      ports.IdentityProvider
	sessions ports.SessionStore
	cfg      AuthConfig
	logger   *slog.Logger
}

func NewAuthService(idp ports.IdentityProvider, sessions ports.SessionStore, cfg AuthConfig, logger *slog.Logger) *AuthService {
	if cfg.SessionTTL <= 0 {
		cfg.SessionTTL = defaultSessionTTL
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	if logger == nil {
		logger = nopLogger()
	}
	return &AuthService{idp: idp, sessions: sessions, cfg: cfg, logger: logger}
}

func (s *AuthService) SignInWithPassword(ctx context.Context, email, secret string) (*domain.Session, error) {
	email = normalizeEmail(email)
	if email == "" || secret == "" {
		return nil, fmt.Errorf("%w: email and password are required", domain.ErrValidation)
	}

	principal, err := s.idp.SignInWithPassword(ctx, email, secret)
	if err != nil {
		s.logger.Info("password sign-in rejected", "email", email, "error", err)
		return nil, err
	}

	return s.startSession(ctx, *principal)
}

func (s *AuthService) OAuthURL(provider, state string) (string, error) {
	if state == "" {
		return "", fmt.Errorf("%w: oauth state is required", domain.ErrValidation)
	}
	return s.idp.AuthCodeURL(provider, state)
}

func (s *AuthService) CompleteOAuth(ctx context.Context, provider, code string) (*domain.Session, error) {
	if code == "" {
		return nil, fmt.Errorf("%w: missing authorization code", domain.ErrValidation)
	}

	principal, err := s.idp.ExchangeCode(ctx, provider, code)
	if err != nil {
		s.logger.Warn("oauth sign-in failed", "provider", provider, "error", err)
		return nil, err
	}

	return s.startSession(ctx, *principal)
}

// GetSession resolves a session token to its principal.
func (s *AuthService) GetSession(ctx context.Context, token string) (*domain.Principal, error) {
	claims, err := s.parse(token)
	if err != nil {
		return nil, domain.ErrNoSession
	}
	return s.sessions.Load(ctx, claims.ID)
}

// SignOut drops the session named by token. Expired or malformed tokens are
// already signed out.
func (s *AuthService) SignOut(ctx context.Context, token string) error {
	claims, err := s.parse(token, jwt.WithoutClaimsValidation())
	if err != nil {
		return nil
	}

	if err := s.sessions.Delete(ctx, claims.ID); err != nil {
		return err
	}

	s.logger.Info("signed out", "email", claims.Email)
	return nil
}

func (s *AuthService) startSession(ctx context.Context, principal domain.Principal) (*domain.Session, error) {
	principal = resolvePrincipal(principal)

	now := s.cfg.Now()
	expiresAt := now.Add(s.cfg.SessionTTL)
	sessionID := uuid.NewString()

	claims := sessionClaims{
		Email: principal.Email,
		RegisteredClaims: jwt.RegisteredClaims{
			ID:        sessionID,
			Subject:   principal.ID,
			IssuedAt:  jwt.NewNumericDate(now),
			ExpiresAt: jwt.NewNumericDate(expiresAt),
		},
	}

	token, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString(s.cfg.Secret)
	if err != nil {
		return nil, fmt.Errorf("sign session token: %w", err)
	}

	if err := s.sessions.Save(ctx, sessionID, principal, s.cfg.SessionTTL); err != nil {
		return nil, err
	}

	s.logger.Info("signed in", "email", principal.Email, "role", principal.Role)

	return &domain.Session{
		ID:        sessionID,
		Token:     token,
		Principal: principal,
		ExpiresAt: expiresAt,
	}, nil
}

func (s *AuthService) parse(token string, opts ...jwt.ParserOption) (*sessionClaims, error) {
	if token == "" {
		return nil, domain.ErrNoSession
	}

	opts = append(opts,
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
		jwt.WithTimeFunc(s.cfg.Now),
	)

	claims := &sessionClaims{}
	parsed, err := jwt.ParseWithClaims(token, claims, func(*jwt.Token) (any, error) {
		return s.cfg.Secret, nil
	}, opts...)
	if err != nil {
		return nil, err
	}
	if !parsed.Valid || claims.ID == "" {
		return nil, errors.New("invalid session token")
	}
	return claims, nil
}

// resolvePrincipal fills the defaults a provider may leave out.
func resolvePrincipal(p domain.Principal) domain.Principal {
	p.Email = normalizeEmail(p.Email)
	if strings.TrimSpace(p.Name) == "" {
		p.Name = p.Email
	}
	if p.Role != domain.RoleAdmin {
		p.Role = domain.RoleUser
	}
	return p
}

type principalKey struct{}

// WithPrincipal returns a context carrying the request's principal.
func WithPrincipal(ctx context.Context, principal domain.Principal) context.Context {
	return context.WithValue(ctx, principalKey{}, principal)
}

func PrincipalFrom(ctx context.Context) (domain.Principal, bool) {
	principal, ok := ctx.Value(principalKey{}).(domain.Principal)
	return principal, ok
}
