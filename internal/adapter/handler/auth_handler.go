package handler

import (
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"
	"github.com/srgjo27/event_ticketing/internal/core/domain"
	"github.com/srgjo27/event_ticketing/internal/core/services"
)

const oauthStateCookie = "oauth_state"

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type meResponse struct {
	domain.Principal
	IsAdmin bool `json:"is_admin"`
}

type AuthHandler struct {
	auth   *services.AuthService
	policy services.AuthorizationPolicy
	secure bool
	logger *slog.Logger
}

// NewAuthHandler builds the sign-in handlers. secure marks cookies as
// HTTPS-only.
func NewAuthHandler(auth *services.AuthService, policy services.AuthorizationPolicy, secure bool, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{auth: auth, policy: policy, secure: secure, logger: logger}
}

// Login handles POST /auth/login
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(w, r, &req); err != nil {
		writeError(w, http.StatusBadRequest, "invalid request body: "+err.Error())
		return
	}

	session, err := h.auth.SignInWithPassword(r.Context(), req.Email, req.Password)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	h.setSessionCookie(w, session)
	writeJSON(w, http.StatusOK, session)
}

// OAuthStart handles GET /auth/oauth/{provider}
// Redirects the browser to the provider's consent page.
func (h *AuthHandler) OAuthStart(w http.ResponseWriter, r *http.Request) {
	state := uuid.NewString()

	url, err := h.auth.OAuthURL(chi.URLParam(r, "provider"), state)
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{
		Name:     oauthStateCookie,
		Value:    state,
		Path:     "/auth",
		MaxAge:   int((10 * time.Minute).Seconds()),
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
	http.Redirect(w, r, url, http.StatusTemporaryRedirect)
}

// OAuthCallback handles GET /auth/callback/{provider}
func (h *AuthHandler) OAuthCallback(w http.ResponseWriter, r *http.Request) {
	cookie, err := r.Cookie(oauthStateCookie)
	if err != nil || cookie.Value == "" || cookie.Value != r.URL.Query().Get("state") {
		writeError(w, http.StatusBadRequest, "invalid oauth state")
		return
	}

	http.SetCookie(w, &http.Cookie{Name: oauthStateCookie, Path: "/auth", MaxAge: -1})

	session, err := h.auth.CompleteOAuth(r.Context(), chi.URLParam(r, "provider"), r.URL.Query().Get("code"))
	if err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	h.setSessionCookie(w, session)
	writeJSON(w, http.StatusOK, session)
}

// Logout handles POST /auth/logout
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.auth.SignOut(r.Context(), sessionToken(r)); err != nil {
		respondError(w, r, h.logger, err)
		return
	}

	http.SetCookie(w, &http.Cookie{Name: sessionCookie, Path: "/", MaxAge: -1})
	w.WriteHeader(http.StatusNoContent)
}

// Me handles GET /me
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	principal, ok := services.PrincipalFrom(r.Context())
	if !ok {
		respondError(w, r, h.logger, errors.New("principal missing from authenticated route"))
		return
	}

	writeJSON(w, http.StatusOK, meResponse{Principal: principal, IsAdmin: h.policy.IsAdmin(principal)})
}

func (h *AuthHandler) setSessionCookie(w http.ResponseWriter, session *domain.Session) {
	http.SetCookie(w, &http.Cookie{
		Name:     sessionCookie,
		Value:    session.Token,
		Path:     "/",
		Expires:  session.ExpiresAt,
		HttpOnly: true,
		Secure:   h.secure,
		SameSite: http.SameSiteLaxMode,
	})
}
