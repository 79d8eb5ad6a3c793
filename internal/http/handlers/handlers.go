package handlers

import (
	"coursehub/internal/flash"
	"coursehub/internal/security"
	"coursehub/internal/view"
	"encoding/json"
	"net/http"

	"github.com/rs/zerolog"
)

// Base carries what every page handler needs to answer a request.
type Base struct {
	view     *view.Renderer
	flash    *flash.Channel
	sessions *security.SessionStore
	log      zerolog.Logger
}

func NewBase(v *view.Renderer, f *flash.Channel, s *security.SessionStore, log zerolog.Logger) *Base {
	return &Base{view: v, flash: f, sessions: s, log: log}
}

// render fills in the session-derived parts of page and writes the template.
// Pending flash messages are consumed only once the page has rendered, so
// they reach exactly one page.
func (b *Base) render(w http.ResponseWriter, r *http.Request, status int, name string, page view.Page) {
	page.CurrentUser = b.sessions.UserID(r)
	page.Flashes = b.flash.Pending(r)

	buf, err := b.view.Execute(name, page)
	if err != nil {
		b.logger(r).Error().Err(err).Str("template", name).Msg("render failed")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	if len(page.Flashes) > 0 {
		b.flash.Drain(w, r)
	}
	if err := view.Write(w, status, buf); err != nil {
		b.logger(r).Warn().Err(err).Str("template", name).Msg("write response")
	}
}

// logger prefers the request-scoped logger installed by middleware.
func (b *Base) logger(r *http.Request) *zerolog.Logger {
	if l := zerolog.Ctx(r.Context()); l.GetLevel() != zerolog.Disabled {
		return l
	}
	return &b.log
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

func notFound(w http.ResponseWriter, message string) {
	writeJSON(w, http.StatusNotFound, map[string]string{"message": message})
}
