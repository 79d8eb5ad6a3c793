package security

import (
	"context"
	"coursehub/internal/config"
	"coursehub/internal/models"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "a secret with minimum length of 32 characters"

func TestPasswords(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("qwerty")
	require.NoError(t, err)

	assert.NotEqual(t, "qwerty", hash)
	assert.True(t, ComparePasswords(hash, "qwerty"))
	assert.False(t, ComparePasswords(hash, "qwertz"))
	assert.False(t, ComparePasswords("", "qwerty"))
}

type userList []models.User

func (l userList) List(context.Context) ([]models.User, error) { return l, nil }

type failingList struct{}

func (failingList) List(context.Context) ([]models.User, error) { return nil, errors.New("db down") }

func TestAuthenticator(t *testing.T) {
	t.Parallel()

	hash, err := HashPassword("secret1")
	require.NoError(t, err)
	users := userList{{ID: 1, Name: "Al", Email: "al@x.com", PasswordHash: hash}}

	auth, err := NewAuthenticator(map[string]string{"admin": "qwerty"}, users)
	require.NoError(t, err)

	ctx := context.Background()
	tests := []struct {
		name     string
		username string
		password string
		want     string
		wantErr  error
	}{
		{name: "configured account", username: "admin", password: "qwerty", want: "admin"},
		{name: "configured account wrong password", username: "admin", password: "nope", wantErr: ErrInvalidCredentials},
		{name: "stored user by email", username: " AL@x.com ", password: "secret1", want: "al@x.com"},
		{name: "stored user wrong password", username: "al@x.com", password: "secret2", wantErr: ErrInvalidCredentials},
		{name: "unknown user", username: "nobody", password: "qwerty", wantErr: ErrInvalidCredentials},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := auth.Authenticate(ctx, tt.username, tt.password)
			if tt.wantErr != nil {
				assert.ErrorIs(t, err, tt.wantErr)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestAuthenticator_StoreFailure(t *testing.T) {
	t.Parallel()

	auth, err := NewAuthenticator(nil, failingList{})
	require.NoError(t, err)

	_, err = auth.Authenticate(context.Background(), "al@x.com", "secret1")
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrInvalidCredentials)
}

// roundTrip runs fn against a request carrying cookies and returns the
// cookies set by the response.
func roundTrip(t *testing.T, cookies []*http.Cookie, fn func(w http.ResponseWriter, r *http.Request)) []*http.Cookie {
	t.Helper()

	r := httptest.NewRequest(http.MethodGet, "/", nil)
	for _, c := range cookies {
		r.AddCookie(c)
	}
	w := httptest.NewRecorder()
	fn(w, r)

	return w.Result().Cookies()
}

func TestSessionStore_LoginLogout(t *testing.T) {
	t.Parallel()

	for _, backend := range []string{config.SessionFilesystem, config.SessionCookie} {
		backend := backend
		t.Run(backend, func(t *testing.T) {
			t.Parallel()

			s, err := NewSessionStore(config.SessionConfig{
				Name: "coursehub", Secret: testSecret, Store: backend, Dir: t.TempDir(), MaxAge: 3600,
			}, nil)
			require.NoError(t, err)

			cookies := roundTrip(t, nil, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "", s.UserID(r))
				require.NoError(t, s.Login(w, r, "admin"))
			})
			require.NotEmpty(t, cookies)

			roundTrip(t, cookies, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "admin", s.UserID(r))
				require.NoError(t, s.Logout(w, r))
				assert.Equal(t, "", s.UserID(r))
			})
		})
	}
}

func TestSessionStore_StaleCookieStartsFresh(t *testing.T) {
	t.Parallel()

	s, err := NewSessionStore(config.SessionConfig{
		Name: "coursehub", Secret: testSecret, Store: config.SessionFilesystem, Dir: t.TempDir(), MaxAge: 3600,
	}, nil)
	require.NoError(t, err)

	roundTrip(t, []*http.Cookie{{Name: "coursehub", Value: "garbage"}}, func(w http.ResponseWriter, r *http.Request) {
		session, err := s.Get(r)
		require.NoError(t, err)
		assert.True(t, session.IsNew)
	})
}

func TestSessionStore_SignedCookieExpiresWithMaxAge(t *testing.T) {
	t.Parallel()

	for _, backend := range []string{config.SessionFilesystem, config.SessionCookie} {
		backend := backend
		t.Run(backend, func(t *testing.T) {
			t.Parallel()

			s, err := NewSessionStore(config.SessionConfig{
				Name: "coursehub", Secret: testSecret, Store: backend, Dir: t.TempDir(), MaxAge: 1,
			}, nil)
			require.NoError(t, err)

			cookies := roundTrip(t, nil, func(w http.ResponseWriter, r *http.Request) {
				require.NoError(t, s.Login(w, r, "admin"))
			})
			require.NotEmpty(t, cookies)

			time.Sleep(2100 * time.Millisecond)

			roundTrip(t, cookies, func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, "", s.UserID(r))
			})
		})
	}
}

func TestNewSessionStore_RedisNeedsClient(t *testing.T) {
	t.Parallel()

	_, err := NewSessionStore(config.SessionConfig{Name: "coursehub", Secret: testSecret, Store: config.SessionRedis}, nil)
	assert.Error(t, err)
}
