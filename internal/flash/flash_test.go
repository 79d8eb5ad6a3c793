package flash

import (
	"coursehub/internal/config"
	"coursehub/internal/models"
	"coursehub/internal/security"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newChannel(t *testing.T) *Channel {
	t.Helper()

	s, err := security.NewSessionStore(config.SessionConfig{
		Name:   "coursehub",
		Secret: "a secret with minimum length of 32 characters",
		Store:  config.SessionFilesystem,
		Dir:    t.TempDir(),
		MaxAge: 3600,
	}, nil)
	require.NoError(t, err)

	return NewChannel(s, zerolog.Nop())
}

// request runs fn in a fresh request that carries jar, then replaces jar
// with the cookies the response set.
func request(jar *[]*http.Cookie, fn func(w http.ResponseWriter, r *http.Request)) {
	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range *jar {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	fn(w, r)

	if set := w.Result().Cookies(); len(set) > 0 {
		*jar = set
	}
}

func TestChannel_DeliveredOnce(t *testing.T) {
	t.Parallel()

	ch := newChannel(t)
	var jar []*http.Cookie

	request(&jar, func(w http.ResponseWriter, r *http.Request) {
		ch.Push(w, r, models.FlashSuccess, "first")
		ch.Push(w, r, models.FlashError, "second")
	})

	var got []models.FlashMessage
	request(&jar, func(w http.ResponseWriter, r *http.Request) {
		got = ch.Drain(w, r)
	})
	assert.Equal(t, []models.FlashMessage{
		{Category: models.FlashSuccess, Text: "first"},
		{Category: models.FlashError, Text: "second"},
	}, got)

	request(&jar, func(w http.ResponseWriter, r *http.Request) {
		got = ch.Drain(w, r)
	})
	assert.Empty(t, got)
}

func TestChannel_SessionsAreIsolated(t *testing.T) {
	t.Parallel()

	ch := newChannel(t)
	var alice, bob []*http.Cookie

	request(&alice, func(w http.ResponseWriter, r *http.Request) {
		ch.Push(w, r, models.FlashInfo, "for alice")
	})
	request(&bob, func(w http.ResponseWriter, r *http.Request) {
		ch.Push(w, r, models.FlashInfo, "for bob")
	})

	var got []models.FlashMessage
	request(&alice, func(w http.ResponseWriter, r *http.Request) {
		got = ch.Drain(w, r)
	})
	require.Len(t, got, 1)
	assert.Equal(t, "for alice", got[0].Text)
}

func TestChannel_DrainWithoutSession(t *testing.T) {
	t.Parallel()

	ch := newChannel(t)
	var jar []*http.Cookie

	request(&jar, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, ch.Drain(w, r))
	})
	assert.Empty(t, jar)
}

func TestChannel_PendingKeepsQueue(t *testing.T) {
	t.Parallel()

	c := newChannel(t)
	var jar []*http.Cookie

	request(&jar, func(w http.ResponseWriter, r *http.Request) {
		c.Push(w, r, models.FlashInfo, "kept")
	})

	want := []models.FlashMessage{{Category: models.FlashInfo, Text: "kept"}}
	request(&jar, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, want, c.Pending(r))
		assert.Equal(t, want, c.Pending(r))
	})
	request(&jar, func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, want, c.Drain(w, r))
	})
	request(&jar, func(w http.ResponseWriter, r *http.Request) {
		assert.Empty(t, c.Pending(r))
	})
}
