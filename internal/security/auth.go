package security

import (
	"context"
	"coursehub/internal/models"
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidCredentials covers both an unknown user and a wrong password.
var ErrInvalidCredentials = errors.New("invalid username or password")

type UserLister interface {
	List(ctx context.Context) ([]models.User, error)
}

// Authenticator checks login credentials against the configured accounts
// and then against stored users, matched by email.
type Authenticator struct {
	accounts map[string]string
	users    UserLister
}

func NewAuthenticator(accounts map[string]string, users UserLister) (*Authenticator, error) {
	hashed := make(map[string]string, len(accounts))
	for name, password := range accounts {
		hash, err := HashPassword(password)
		if err != nil {
			return nil, fmt.Errorf("account %s: %w", name, err)
		}
		hashed[name] = hash
	}

	return &Authenticator{accounts: hashed, users: users}, nil
}

// Authenticate returns the identity to record in the session.
func (a *Authenticator) Authenticate(ctx context.Context, username, password string) (string, error) {
	if hash, ok := a.accounts[username]; ok {
		if ComparePasswords(hash, password) {
			return username, nil
		}
		return "", ErrInvalidCredentials
	}

	if a.users == nil {
		return "", ErrInvalidCredentials
	}

	users, err := a.users.List(ctx)
	if err != nil {
		return "", fmt.Errorf("list users: %w", err)
	}

	email := strings.ToLower(strings.TrimSpace(username))
	for _, u := range users {
		if u.Email == email && ComparePasswords(u.PasswordHash, password) {
			return u.Email, nil
		}
	}

	return "", ErrInvalidCredentials
}
