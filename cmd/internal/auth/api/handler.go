// Package authapi wires HTTP auth endpoints to the identity and session services.
package authapi

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"
	"time"

	"notekeep/cmd/identity"
	"notekeep/cmd/internal/auth/session"
	"notekeep/cmd/internal/httpjson"
)

// Handler maps the anonymous operations (register, login) and the protected
// ones (logout, logout-all, profile) onto the identity store and the session
// service. Protected operations resolve the caller's identity from the
// session cookie first and only then touch per-user state.
type Handler struct {
	log *slog.Logger
	cfg Config

	users    identity.Store
	sessions *session.Service

	// dummyHash makes the unknown-user login path cost the same as a real
	// password check, so response timing does not reveal whether the
	// username exists.
	dummyHash string
}

// NewHandler constructs an auth Handler.
func NewHandler(log *slog.Logger, cfg Config, users identity.Store, sessions *session.Service) *Handler {
	if log == nil {
		log = slog.Default()
	}

	h := &Handler{
		log:      log,
		cfg:      cfg,
		users:    users,
		sessions: sessions,
	}

	if hash, err := identity.HashPassword("dummy-password-for-timing-only"); err == nil {
		h.dummyHash = hash
	}

	return h
}

// Register wires auth routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("/register", h.handleRegister)
	mux.HandleFunc("/login", h.handleLogin)
	mux.HandleFunc("/logout", h.handleLogout)
	mux.HandleFunc("/logout_all", h.handleLogoutAll)
	mux.HandleFunc("/user/me", h.handleMe)
}

func (h *Handler) handleRegister(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req registerRequest
	if err := httpjson.Decode(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	username := strings.TrimSpace(req.Username)
	email := strings.TrimSpace(req.Email)
	if username == "" || email == "" || strings.TrimSpace(req.Password) == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid_request", "username, email and password are required")
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()

	res, err := h.users.CreateUser(ctx, identity.CreateUserInput{
		Username: username,
		Email:    email,
		Password: req.Password,
		Now:      now,
	})
	if err != nil {
		switch {
		case identity.IsConflict(err):
			h.auditRegisterConflict(username)
			httpjson.WriteError(w, http.StatusConflict, "conflict", "username or email already exists")
		case identity.IsInvalidInput(err):
			httpjson.WriteError(w, http.StatusBadRequest, "invalid_request", "invalid input")
		default:
			h.log.Error("auth.register.fail", "err", err)
			httpjson.WriteError(w, http.StatusInternalServerError, "server_error", "internal error")
		}
		return
	}

	h.auditRegisterSuccess(res.User.ID, res.User.Username)

	// Registration does not authenticate: no session, no cookie.
	httpjson.Write(w, http.StatusCreated, registerResponse{User: toUserResponse(res.User)})
}

func (h *Handler) handleLogin(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	var req loginRequest
	if err := httpjson.Decode(w, r, h.cfg.MaxBodyBytes, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	username := strings.TrimSpace(req.Username)
	if username == "" || strings.TrimSpace(req.Password) == "" {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid_request", "username and password are required")
		return
	}

	ctx := r.Context()
	now := time.Now().UTC()

	ua, err := h.users.GetUserByUsername(ctx, username)
	if err != nil {
		if !identity.IsNotFound(err) {
			h.log.Error("auth.login.lookup.fail", "err", err)
			httpjson.WriteError(w, http.StatusInternalServerError, "server_error", "internal error")
			return
		}
		// Timing resistance: perform a dummy verify when the user is missing,
		// then fail with the same shape as a bad password.
		if h.dummyHash != "" {
			_, _ = identity.VerifyPassword(req.Password, h.dummyHash)
		}
		h.auditLoginFailed(username, "not_found")
		httpjson.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
		return
	}

	okPw, err := identity.VerifyPassword(req.Password, ua.PasswordHash)
	if err != nil || !okPw {
		h.auditLoginFailed(username, "bad_password")
		httpjson.WriteError(w, http.StatusUnauthorized, "invalid_credentials", "invalid credentials")
		return
	}

	issued, err := h.sessions.Issue(ctx, now, ua.User.ID)
	if err != nil {
		h.log.Error("auth.login.issue.fail", "err", err)
		httpjson.WriteError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	h.auditLoginSuccess(ua.User.ID, issued.SessionID)

	h.setSessionCookie(w, issued.Token, issued.ExpiresAt)
	httpjson.Write(w, http.StatusOK, loginResponse{User: toUserResponse(ua.User)})
}

func (h *Handler) handleLogout(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	// Logout never hard-fails: revoke whatever credential was presented,
	// clear the cookie, succeed.
	if tok, ok := h.sessionTokenFromCookie(r); ok {
		now := time.Now().UTC()
		if id, err := h.sessions.Validate(r.Context(), tok, now); err == nil {
			h.auditLogout(id.SessionID)
		}
		if err := h.sessions.Revoke(r.Context(), now, tok); err != nil {
			h.log.Error("auth.logout.revoke.fail", "err", err)
		}
	}

	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleLogoutAll(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	if err := h.sessions.RevokeAll(r.Context(), time.Now().UTC(), id.UserID); err != nil {
		h.log.Error("auth.logout_all.fail", "err", err)
		httpjson.WriteError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	h.auditLogoutAll(id.UserID)
	h.clearSessionCookie(w)
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) handleMe(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodGet {
		w.WriteHeader(http.StatusMethodNotAllowed)
		return
	}

	id, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	u, err := h.users.GetUserByID(r.Context(), id.UserID)
	if err != nil {
		if identity.IsNotFound(err) {
			httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
			return
		}
		h.log.Error("auth.me.fail", "err", err)
		httpjson.WriteError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	httpjson.Write(w, http.StatusOK, meResponse{User: toUserResponse(u)})
}

// requireSession resolves the cookie to an identity, or writes a uniform 401.
func (h *Handler) requireSession(w http.ResponseWriter, r *http.Request) (session.Identity, bool) {
	tok, ok := h.sessionTokenFromCookie(r)
	if !ok {
		httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return session.Identity{}, false
	}

	id, err := h.sessions.Validate(r.Context(), tok, time.Now().UTC())
	if err != nil {
		if !errors.Is(err, session.ErrSessionNotActive) {
			h.log.Error("auth.session.fail", "err", err)
			httpjson.WriteError(w, http.StatusInternalServerError, "server_error", "internal error")
			return session.Identity{}, false
		}
		httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return session.Identity{}, false
	}
	return id, true
}

func toUserResponse(u identity.User) userResponse {
	return userResponse{
		ID:        u.ID,
		Username:  u.Username,
		Email:     u.Email,
		CreatedAt: u.CreatedAt,
	}
}
