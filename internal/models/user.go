package models

type User struct {
	ID           int64  `json:"id"`
	Name         string `json:"name"`
	Email        string `json:"email"`
	PasswordHash string `json:"-"` // Don't expose in JSON
}

func (u User) GetID() int64 { return u.ID }

func (u User) WithID(id int64) User {
	u.ID = id
	return u
}
