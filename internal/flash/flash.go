// Package flash implements one-shot, per-session notices: a message pushed
// while handling one request is shown by the next rendered page of the same
// session and then discarded.
package flash

import (
	"coursehub/internal/models"
	"coursehub/internal/security"
	"encoding/gob"
	"net/http"

	"github.com/rs/zerolog"
)

const flashKey = "_flash"

func init() {
	gob.Register(models.FlashMessage{})
}

type Channel struct {
	sessions *security.SessionStore
	log      zerolog.Logger
}

func NewChannel(sessions *security.SessionStore, log zerolog.Logger) *Channel {
	return &Channel{sessions: sessions, log: log}
}

// Push queues a message for the session. Flash is informational, so a session
// that cannot be loaded or saved drops the message.
func (c *Channel) Push(w http.ResponseWriter, r *http.Request, category, text string) {
	session, err := c.sessions.Get(r)
	if err != nil {
		c.log.Warn().Err(err).Str("category", category).Msg("flash dropped")
		return
	}

	session.AddFlash(models.FlashMessage{Category: category, Text: text}, flashKey)

	if err := c.sessions.Save(w, r, session); err != nil {
		c.log.Warn().Err(err).Str("category", category).Msg("flash dropped")
	}
}

// Pending returns the queued messages without clearing them.
func (c *Channel) Pending(r *http.Request) []models.FlashMessage {
	session, err := c.sessions.Get(r)
	if err != nil {
		return nil
	}

	raw, _ := session.Values[flashKey].([]interface{})
	return messages(raw)
}

// Drain returns the queued messages in the order they were pushed and
// clears the queue.
func (c *Channel) Drain(w http.ResponseWriter, r *http.Request) []models.FlashMessage {
	session, err := c.sessions.Get(r)
	if err != nil {
		return nil
	}

	raw := session.Flashes(flashKey)
	if len(raw) == 0 {
		return nil
	}

	if err := c.sessions.Save(w, r, session); err != nil {
		c.log.Warn().Err(err).Msg("flash queue not cleared")
	}

	return messages(raw)
}

func messages(raw []interface{}) []models.FlashMessage {
	if len(raw) == 0 {
		return nil
	}

	msgs := make([]models.FlashMessage, 0, len(raw))
	for _, v := range raw {
		if m, ok := v.(models.FlashMessage); ok {
			msgs = append(msgs, m)
		}
	}
	return msgs
}
