package handlers

import (
	"coursehub/internal/view"
	"net/http"
)

const visitedCookie = "visited"

type HomeHandler struct {
	*Base
}

func NewHomeHandler(base *Base) *HomeHandler {
	return &HomeHandler{Base: base}
}

func (h *HomeHandler) Index(w http.ResponseWriter, r *http.Request) {
	page := view.Page{Title: "Home"}
	if c, err := r.Cookie(visitedCookie); err == nil && c.Value == "true" {
		page.Message = "Welcome back!"
	}

	http.SetCookie(w, &http.Cookie{
		Name:     visitedCookie,
		Value:    "true",
		Path:     "/",
		MaxAge:   365 * 24 * 60 * 60,
		HttpOnly: true,
	})

	h.render(w, r, http.StatusOK, "home", page)
}

func (h *HomeHandler) Hello(w http.ResponseWriter, r *http.Request) {
	message := "Hello, World!"
	if name := r.URL.Query().Get("name"); name != "" {
		message = "Hello, " + name + "!"
	}

	h.render(w, r, http.StatusOK, "hello", view.Page{Title: "Hello", Message: message})
}

// NotFound answers paths that match no route.
func (h *HomeHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusNotFound, "errors", view.Page{
		Title:   "Page not found",
		Message: "The page " + r.URL.Path + " does not exist.",
	})
}
