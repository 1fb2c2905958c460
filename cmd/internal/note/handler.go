package note

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"notekeep/cmd/internal/auth/session"
	"notekeep/cmd/internal/httpjson"
)

// Handler serves the note endpoints for the authenticated user.
//
// The note is always keyed by the identity resolved from the session cookie;
// nothing in the request body or URL selects whose note is touched.
type Handler struct {
	log          *slog.Logger
	store        Store
	sessions     *session.Service
	cookieName   string
	maxBodyBytes int64
}

// NewHandler constructs a note Handler.
func NewHandler(log *slog.Logger, store Store, sessions *session.Service, cookieName string, maxBodyBytes int64) *Handler {
	if log == nil {
		log = slog.Default()
	}
	if maxBodyBytes <= 0 {
		maxBodyBytes = 1 << 20
	}
	return &Handler{
		log:          log,
		store:        store,
		sessions:     sessions,
		cookieName:   cookieName,
		maxBodyBytes: maxBodyBytes,
	}
}

// Register wires note routes onto the provided mux.
func (h *Handler) Register(mux *http.ServeMux) {
	if h == nil || mux == nil {
		return
	}
	mux.HandleFunc("/user/note", h.handleNote)
}

type noteBody struct {
	Note string `json:"note"`
}

func (h *Handler) handleNote(w http.ResponseWriter, r *http.Request) {
	switch r.Method {
	case http.MethodGet:
		h.handleRead(w, r)
	case http.MethodPost, http.MethodPut:
		h.handleWrite(w, r)
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func (h *Handler) handleRead(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	text, err := h.store.Get(r.Context(), id.UserID)
	if err != nil {
		h.log.Error("note.read.fail", "err", err)
		httpjson.WriteError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	httpjson.Write(w, http.StatusOK, noteBody{Note: text})
}

func (h *Handler) handleWrite(w http.ResponseWriter, r *http.Request) {
	id, ok := h.requireSession(w, r)
	if !ok {
		return
	}

	var req noteBody
	if err := httpjson.Decode(w, r, h.maxBodyBytes, &req); err != nil {
		httpjson.WriteError(w, http.StatusBadRequest, "invalid_json", "invalid request body")
		return
	}

	if err := h.store.Upsert(r.Context(), time.Now().UTC(), id.UserID, req.Note); err != nil {
		h.log.Error("note.write.fail", "err", err)
		httpjson.WriteError(w, http.StatusInternalServerError, "server_error", "internal error")
		return
	}

	w.WriteHeader(http.StatusNoContent)
}

// requireSession resolves the session cookie to an identity, or writes 401.
// Absent cookie, unknown token, and expired session produce the same response.
func (h *Handler) requireSession(w http.ResponseWriter, r *http.Request) (session.Identity, bool) {
	c, err := r.Cookie(h.cookieName)
	if err != nil {
		httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return session.Identity{}, false
	}

	id, err := h.validate(r.Context(), c.Value)
	if err != nil {
		if !errors.Is(err, session.ErrSessionNotActive) {
			h.log.Error("note.session.fail", "err", err)
			httpjson.WriteError(w, http.StatusInternalServerError, "server_error", "internal error")
			return session.Identity{}, false
		}
		httpjson.WriteError(w, http.StatusUnauthorized, "unauthorized", "authentication required")
		return session.Identity{}, false
	}
	return id, true
}

func (h *Handler) validate(ctx context.Context, tok string) (session.Identity, error) {
	return h.sessions.Validate(ctx, tok, time.Now().UTC())
}
