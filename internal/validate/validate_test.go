package validate

import (
	"errors"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type signupForm struct {
	Name                 string `form:"name" label:"Name" validate:"required,min=2"`
	Email                string `form:"email" label:"Email" validate:"required,email"`
	Password             string `form:"password" label:"Password" validate:"required,min=6"`
	PasswordConfirmation string `form:"password_confirmation" label:"Password confirmation" validate:"required,eqfield=Password"`
}

func (f *signupForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
}

func bindErrors(t *testing.T, form any, values url.Values) Errors {
	t.Helper()

	err := New().Bind(form, values)
	if err == nil {
		return nil
	}

	var errs Errors
	require.True(t, errors.As(err, &errs), "unexpected error type: %v", err)

	return errs
}

func TestBind(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		values url.Values
		want   Errors
	}{
		{
			name: "valid",
			values: url.Values{
				"name": {"John"}, "email": {"john@example.com"},
				"password": {"secret1"}, "password_confirmation": {"secret1"},
			},
			want: nil,
		},
		{
			name:   "everything missing",
			values: url.Values{},
			want: Errors{
				"name":                  "Name is required",
				"email":                 "Email is required",
				"password":              "Password is required",
				"password_confirmation": "Password confirmation is required",
			},
		},
		{
			name: "confirmation mismatch with valid lengths",
			values: url.Values{
				"name": {"John"}, "email": {"john@example.com"},
				"password": {"secret1"}, "password_confirmation": {"secret2"},
			},
			want: Errors{"password_confirmation": "Password confirmation does not match Password"},
		},
		{
			name: "all constraints accumulate",
			values: url.Values{
				"name": {"J"}, "email": {"not-an-email"},
				"password": {"abc"}, "password_confirmation": {"abd"},
			},
			want: Errors{
				"name":                  "Name must be at least 2 characters",
				"email":                 "Please enter a valid email",
				"password":              "Password must be at least 6 characters",
				"password_confirmation": "Password confirmation does not match Password",
			},
		},
		{
			name: "whitespace is trimmed before length checks",
			values: url.Values{
				"name": {"  J  "}, "email": {"john@example.com"},
				"password": {"secret1"}, "password_confirmation": {"secret1"},
			},
			want: Errors{"name": "Name must be at least 2 characters"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got := bindErrors(t, &signupForm{}, tt.values)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestBind_NormalizesAndIgnoresUnknownKeys(t *testing.T) {
	t.Parallel()

	form := &signupForm{}
	errs := bindErrors(t, form, url.Values{
		"_method": {"PATCH"},
		"name":    {"  Jane Doe "}, "email": {" Jane@Example.COM "},
		"password": {"secret1"}, "password_confirmation": {"secret1"},
	})

	require.Nil(t, errs)
	assert.Equal(t, "Jane Doe", form.Name)
	assert.Equal(t, "jane@example.com", form.Email)
}

func TestMaxLength(t *testing.T) {
	t.Parallel()

	type titleForm struct {
		Title string `form:"title" validate:"max=5"`
	}

	errs := bindErrors(t, &titleForm{}, url.Values{"title": {"too long"}})
	assert.Equal(t, Errors{"title": "title must be at most 5 characters"}, errs)
}

func TestMaxBytes(t *testing.T) {
	t.Parallel()

	type passwordForm struct {
		Password string `form:"password" label:"Password" validate:"max=72,maxbytes=72"`
	}

	// 40 runes, 80 bytes
	multibyte := strings.Repeat("é", 40)

	errs := bindErrors(t, &passwordForm{}, url.Values{"password": {multibyte}})
	assert.Equal(t, Errors{"password": "Password must be at most 72 bytes"}, errs)

	errs = bindErrors(t, &passwordForm{}, url.Values{"password": {strings.Repeat("a", 72)}})
	assert.Nil(t, errs)
}

func TestErrors_Error(t *testing.T) {
	t.Parallel()

	errs := Errors{"title": "Title is required", "description": "Description is required"}
	assert.Equal(t, "description: Description is required; title: Title is required", errs.Error())
}
