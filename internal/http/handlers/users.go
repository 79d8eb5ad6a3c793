package handlers

import (
	"coursehub/internal/models"
	"coursehub/internal/routes"
	"coursehub/internal/security"
	"coursehub/internal/store"
	"strings"
)

type UserCreateForm struct {
	Name                 string `form:"name" label:"Name" validate:"required,min=2"`
	Email                string `form:"email" label:"Email" validate:"required,email"`
	Password             string `form:"password" label:"Password" validate:"required,min=6,maxbytes=72"`
	PasswordConfirmation string `form:"password_confirmation" label:"Password confirmation" validate:"required,eqfield=Password"`
}

func (f *UserCreateForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
}

func (f *UserCreateForm) Apply(u models.User) (models.User, error) {
	hash, err := security.HashPassword(f.Password)
	if err != nil {
		return u, err
	}

	u.Name = f.Name
	u.Email = f.Email
	u.PasswordHash = hash
	return u, nil
}

type UserUpdateForm struct {
	Name  string `form:"name" label:"Name" validate:"required,min=2"`
	Email string `form:"email" label:"Email" validate:"required,email"`
}

func (f *UserUpdateForm) Normalize() {
	f.Name = strings.TrimSpace(f.Name)
	f.Email = strings.ToLower(strings.TrimSpace(f.Email))
}

func (f *UserUpdateForm) Apply(u models.User) (models.User, error) {
	u.Name = f.Name
	u.Email = f.Email
	return u, nil
}

func UserResource(users store.Store[models.User]) ResourceConfig[models.User] {
	return ResourceConfig[models.User]{
		Path:       routes.Resource("users"),
		Noun:       "User",
		Plural:     "Users",
		Store:      users,
		CreateForm: func() Form[models.User] { return &UserCreateForm{} },
		UpdateForm: func() Form[models.User] { return &UserUpdateForm{} },
		EditForm: func(u models.User) Form[models.User] {
			return &UserUpdateForm{Name: u.Name, Email: u.Email}
		},
	}
}
