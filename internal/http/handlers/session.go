package handlers

import (
	"coursehub/internal/models"
	"coursehub/internal/routes"
	"coursehub/internal/security"
	"coursehub/internal/view"
	"errors"
	"net/http"
)

const loginFailed = "Wrong username or password"

type loginForm struct {
	Username string
}

type SessionHandler struct {
	*Base
	auth *security.Authenticator
}

func NewSessionHandler(base *Base, auth *security.Authenticator) *SessionHandler {
	return &SessionHandler{Base: base, auth: auth}
}

func (h *SessionHandler) New(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, "session/new", view.Page{Title: "Log in", Form: &loginForm{}})
}

func (h *SessionHandler) Create(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return
	}
	username := r.PostForm.Get("username")

	userID, err := h.auth.Authenticate(r.Context(), username, r.PostForm.Get("password"))
	if err != nil {
		if !errors.Is(err, security.ErrInvalidCredentials) {
			h.logger(r).Error().Err(err).Msg("authenticate")
			http.Error(w, "Internal server error", http.StatusInternalServerError)
			return
		}
		h.render(w, r, http.StatusOK, "session/new", view.Page{
			Title:   "Log in",
			Message: loginFailed,
			Form:    &loginForm{Username: username},
		})
		return
	}

	if err := h.sessions.Login(w, r, userID); err != nil {
		h.logger(r).Error().Err(err).Msg("login")
		http.Error(w, "Failed to create session", http.StatusInternalServerError)
		return
	}

	h.flash.Push(w, r, models.FlashSuccess, "Welcome back! You are now logged in.")
	http.Redirect(w, r, routes.RootPath(), http.StatusSeeOther)
}

// Delete logs out. The session itself survives so the flash reaches the
// next page.
func (h *SessionHandler) Delete(w http.ResponseWriter, r *http.Request) {
	if err := h.sessions.Logout(w, r); err != nil {
		h.logger(r).Error().Err(err).Msg("logout")
		http.Error(w, "Failed to end session", http.StatusInternalServerError)
		return
	}

	h.flash.Push(w, r, models.FlashSuccess, "You have been logged out successfully.")
	http.Redirect(w, r, routes.RootPath(), http.StatusSeeOther)
}
