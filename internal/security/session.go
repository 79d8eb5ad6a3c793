package security

import (
	"coursehub/internal/config"
	"fmt"
	"net/http"
	"os"
	"path/filepath"

	"github.com/gorilla/sessions"
	"github.com/redis/go-redis/v9"
)

const userIDKey = "user_id"

// SessionStore names the application's session and fronts whichever gorilla
// backend the configuration selects.
type SessionStore struct {
	store sessions.Store
	name  string
	dir   string
}

// NewSessionStore builds the configured backend. rdb is only used by the
// redis backend and may be nil otherwise.
func NewSessionStore(cfg config.SessionConfig, rdb *redis.Client) (*SessionStore, error) {
	opts := sessions.Options{
		Path:     "/",
		MaxAge:   cfg.MaxAge,
		HttpOnly: true,
		Secure:   false, // development setting
		SameSite: http.SameSiteLaxMode,
	}
	secret := []byte(cfg.Secret)

	s := &SessionStore{name: cfg.Name}

	switch cfg.Store {
	case config.SessionCookie:
		cs := sessions.NewCookieStore(secret)
		cs.Options = &opts
		cs.MaxAge(cfg.MaxAge)
		s.store = cs
	case config.SessionRedis:
		if rdb == nil {
			return nil, fmt.Errorf("redis session store needs a redis client")
		}
		rs := NewRedisStore(rdb, secret)
		rs.Options = &opts
		rs.MaxAge(cfg.MaxAge)
		s.store = rs
	case config.SessionFilesystem:
		dir := cfg.Dir
		if dir == "" {
			dir = filepath.Join(os.TempDir(), "coursehub-sessions")
		}
		if err := os.MkdirAll(dir, 0o700); err != nil {
			return nil, fmt.Errorf("create session dir: %w", err)
		}
		fs := sessions.NewFilesystemStore(dir, secret)
		fs.Options = &opts
		fs.MaxAge(cfg.MaxAge)
		s.store = fs
		s.dir = dir
	default:
		return nil, fmt.Errorf("unsupported session store %q", cfg.Store)
	}

	return s, nil
}

// Dir is the directory holding session files, or "" when sessions are not
// kept on disk.
func (s *SessionStore) Dir() string {
	return s.dir
}

// Get returns the request's session. A cookie that no longer decodes or
// points at a vanished session yields a fresh session rather than an error.
func (s *SessionStore) Get(r *http.Request) (*sessions.Session, error) {
	session, err := s.store.Get(r, s.name)
	if session == nil {
		return nil, fmt.Errorf("load session: %w", err)
	}
	return session, nil
}

func (s *SessionStore) Save(w http.ResponseWriter, r *http.Request, session *sessions.Session) error {
	if err := session.Save(r, w); err != nil {
		return fmt.Errorf("save session: %w", err)
	}
	return nil
}

// UserID returns the logged-in identity, or "" for anonymous requests.
func (s *SessionStore) UserID(r *http.Request) string {
	session, err := s.Get(r)
	if err != nil {
		return ""
	}
	id, _ := session.Values[userIDKey].(string)
	return id
}

func (s *SessionStore) Login(w http.ResponseWriter, r *http.Request, userID string) error {
	session, err := s.Get(r)
	if err != nil {
		return err
	}
	session.Values[userIDKey] = userID
	return s.Save(w, r, session)
}

// Logout forgets the identity but keeps the session so that a flash can
// still be delivered on the next page.
func (s *SessionStore) Logout(w http.ResponseWriter, r *http.Request) error {
	session, err := s.Get(r)
	if err != nil {
		return err
	}
	delete(session.Values, userIDKey)
	return s.Save(w, r, session)
}
