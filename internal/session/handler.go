package session

import (
	"context"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"github.com/videoshare/videoshare/internal/httputil"
	"github.com/videoshare/videoshare/internal/model"
	"github.com/videoshare/videoshare/internal/validate"
)

type Handler struct {
	store *Store
}

func NewHandler(store *Store) *Handler {
	return &Handler{store: store}
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type registerRequest struct {
	Username string `json:"username"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Avatar   string `json:"avatar"`
}

type sessionResponse struct {
	User    *model.Identity `json:"user"`
	Loading bool            `json:"loading"`
}

func (h *Handler) respond(w http.ResponseWriter, status int) {
	resp := sessionResponse{Loading: h.store.Loading()}
	if user, ok := h.store.Current(); ok {
		resp.User = &user
	}
	httputil.WriteJSON(w, status, resp)
}

// Current reports the signed in identity, or a null user.
func (h *Handler) Current(w http.ResponseWriter, r *http.Request) {
	h.respond(w, http.StatusOK)
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}
	email := strings.TrimSpace(req.Email)
	if email == "" {
		httputil.WriteError(w, http.StatusBadRequest, "email is required")
		return
	}

	ok, err := h.store.Login(r.Context(), email, req.Password)
	if err != nil {
		h.writeStoreError(w, "login", err)
		return
	}
	if !ok {
		httputil.WriteError(w, http.StatusUnauthorized, "invalid email or password")
		return
	}
	h.respond(w, http.StatusOK)
}

func (h *Handler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := httputil.DecodeJSON(w, r, &req); err != nil {
		httputil.WriteError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	profile := model.Profile{
		Username: strings.TrimSpace(req.Username),
		Email:    strings.TrimSpace(req.Email),
		Avatar:   strings.TrimSpace(req.Avatar),
	}
	if profile.Username == "" {
		httputil.WriteError(w, http.StatusBadRequest, "username is required")
		return
	}
	if msg := validate.Username(profile.Username); msg != "" {
		httputil.WriteError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validate.Email(profile.Email); msg != "" {
		httputil.WriteError(w, http.StatusBadRequest, msg)
		return
	}
	if msg := validate.AvatarURL(profile.Avatar); msg != "" {
		httputil.WriteError(w, http.StatusBadRequest, msg)
		return
	}

	if _, err := h.store.Register(r.Context(), profile); err != nil {
		h.writeStoreError(w, "register", err)
		return
	}
	h.respond(w, http.StatusCreated)
}

func (h *Handler) Logout(w http.ResponseWriter, r *http.Request) {
	if err := h.store.Logout(r.Context()); err != nil {
		slog.Error("session: logout could not clear persisted identity", "error", err)
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) writeStoreError(w http.ResponseWriter, op string, err error) {
	if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
		httputil.WriteError(w, http.StatusServiceUnavailable, "request cancelled")
		return
	}
	slog.Error("session: "+op+" failed", "error", err)
	httputil.WriteError(w, http.StatusInternalServerError, "could not save session")
}
