package services_test

import (
	"context"
	"testing"
	"time"

	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/srgjo27/event_ticketing/internal/core/ports/mocks"
	"github.com/srgjo27/event_ticketing/internal/core/services"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func newAuthService(t *testing.T, now time.Time) (*services.AuthService, *mocks.IdentityProvider, *mocks.SessionStore) {
	idp := mocks.NewIdentityProvider(t)
	store := mocks.NewSessionStore(t)
	svc := services.NewAuthService(idp, store, services.AuthConfig{
		Secret:     []byte("test-secret"),
		SessionTTL: time.Hour,
		Now:        func() time.Time { return now },
	}, nil)
	return svc, idp, store
}

func TestSignInWithPassword_DefaultsRoleToUser(t *testing.T) {
	now := time.Now()
	svc, idp, store := newAuthService(t, now)
	ctx := context.Background()

	idp.On("SignInWithPassword", ctx, "ana@x.com", "pw").
		Return(&domain.Principal{ID: "u1", Email: "ana@x.com"}, nil)
	store.On("Save", ctx, mock.AnythingOfType("string"), domain.Principal{
		ID: "u1", Email: "ana@x.com", Name: "ana@x.com", Role: domain.RoleUser,
	}, time.Hour).Return(nil)

	session, err := svc.SignInWithPassword(ctx, " Ana@X.com ", "pw")

	require.NoError(t, err)
	assert.NotEmpty(t, session.Token)
	assert.Equal(t, domain.RoleUser, session.Principal.Role)
	assert.Equal(t, now.Add(time.Hour), session.ExpiresAt)
}

func TestSignInWithPassword_Rejected(t *testing.T) {
	svc, idp, _ := newAuthService(t, time.Now())
	ctx := context.Background()

	idp.On("SignInWithPassword", ctx, "ana@x.com", "bad").Return(nil, domain.ErrUnauthorized)

	_, err := svc.SignInWithPassword(ctx, "ana@x.com", "bad")

	assert.ErrorIs(t, err, domain.ErrUnauthorized)
}

func TestSignInWithPassword_MissingFields(t *testing.T) {
	svc, _, _ := newAuthService(t, time.Now())

	_, err := svc.SignInWithPassword(context.Background(), "", "pw")

	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestGetSession_RoundTrip(t *testing.T) {
	now := time.Now()
	svc, idp, store := newAuthService(t, now)
	ctx := context.Background()
	admin := domain.Principal{ID: "u1", Email: "boss@x.com", Name: "Boss", Role: domain.RoleAdmin}

	var savedID string
	idp.On("SignInWithPassword", ctx, "boss@x.com", "pw").Return(&admin, nil)
	store.On("Save", ctx, mock.AnythingOfType("string"), admin, time.Hour).
		Run(func(args mock.Arguments) { savedID = args.String(1) }).
		Return(nil)

	session, err := svc.SignInWithPassword(ctx, "boss@x.com", "pw")
	require.NoError(t, err)

	store.On("Load", ctx, savedID).Return(&admin, nil)

	principal, err := svc.GetSession(ctx, session.Token)

	require.NoError(t, err)
	assert.Equal(t, admin, *principal)
	assert.Equal(t, savedID, session.ID)
}

func TestGetSession_BadToken(t *testing.T) {
	svc, _, _ := newAuthService(t, time.Now())

	_, err := svc.GetSession(context.Background(), "not-a-token")

	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestGetSession_ExpiredToken(t *testing.T) {
	issued := time.Now().Add(-2 * time.Hour)
	issuer, idp, store := newAuthService(t, issued)
	ctx := context.Background()

	idp.On("SignInWithPassword", ctx, "ana@x.com", "pw").Return(&domain.Principal{ID: "u1", Email: "ana@x.com"}, nil)
	store.On("Save", ctx, mock.Anything, mock.Anything, time.Hour).Return(nil)

	session, err := issuer.SignInWithPassword(ctx, "ana@x.com", "pw")
	require.NoError(t, err)

	checker, _, _ := newAuthService(t, time.Now())
	_, err = checker.GetSession(ctx, session.Token)

	assert.ErrorIs(t, err, domain.ErrNoSession)
}

func TestSignOut_DeletesSession(t *testing.T) {
	svc, idp, store := newAuthService(t, time.Now())
	ctx := context.Background()

	var savedID string
	idp.On("SignInWithPassword", ctx, "ana@x.com", "pw").Return(&domain.Principal{ID: "u1", Email: "ana@x.com"}, nil)
	store.On("Save", ctx, mock.Anything, mock.Anything, time.Hour).
		Run(func(args mock.Arguments) { savedID = args.String(1) }).
		Return(nil)

	session, err := svc.SignInWithPassword(ctx, "ana@x.com", "pw")
	require.NoError(t, err)

	store.On("Delete", ctx, savedID).Return(nil)

	assert.NoError(t, svc.SignOut(ctx, session.Token))
	assert.NoError(t, svc.SignOut(ctx, "garbage"))
}

func TestCompleteOAuth(t *testing.T) {
	svc, idp, store := newAuthService(t, time.Now())
	ctx := context.Background()

	idp.On("ExchangeCode", ctx, "google", "code-1").
		Return(&domain.Principal{ID: "g1", Email: "ana@gmail.com", Name: "Ana"}, nil)
	store.On("Save", ctx, mock.Anything, mock.MatchedBy(func(p domain.Principal) bool {
		return p.Role == domain.RoleUser && p.Name == "Ana"
	}), time.Hour).Return(nil)

	session, err := svc.CompleteOAuth(ctx, "google", "code-1")

	require.NoError(t, err)
	assert.Equal(t, "ana@gmail.com", session.Principal.Email)

	_, err = svc.CompleteOAuth(ctx, "google", "")
	assert.ErrorIs(t, err, domain.ErrValidation)
}

func TestPrincipalContext(t *testing.T) {
	_, ok := services.PrincipalFrom(context.Background())
	assert.False(t, ok)

	ctx := services.WithPrincipal(context.Background(), domain.Principal{Email: "a@x.com"})
	p, ok := services.PrincipalFrom(ctx)

	assert.True(t, ok)
	assert.Equal(t, "a@x.com", p.Email)
}
