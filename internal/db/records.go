package db

import (
	"coursehub/internal/models"
	"coursehub/internal/store"
)

type userMapper struct{}

func (userMapper) Table() string { return "users" }

func (userMapper) Columns() []string { return []string{"name", "email", "password_hash"} }

func (userMapper) Values(u models.User) []any { return []any{u.Name, u.Email, u.PasswordHash} }

func (userMapper) Scan(row scanner) (models.User, error) {
	var u models.User
	err := row.Scan(&u.ID, &u.Name, &u.Email, &u.PasswordHash)
	return u, err
}

type courseMapper struct{}

func (courseMapper) Table() string { return "courses" }

func (courseMapper) Columns() []string { return []string{"title", "description"} }

func (courseMapper) Values(c models.Course) []any { return []any{c.Title, c.Description} }

func (courseMapper) Scan(row scanner) (models.Course, error) {
	var c models.Course
	err := row.Scan(&c.ID, &c.Title, &c.Description)
	return c, err
}

func (db *DB) Users() *Table[models.User] {
	return NewTable[models.User](db, userMapper{})
}

func (db *DB) Courses() *Table[models.Course] {
	return NewTable[models.Course](db, courseMapper{})
}

var (
	_ store.Store[models.User]   = (*Table[models.User])(nil)
	_ store.Store[models.Course] = (*Table[models.Course])(nil)
)
