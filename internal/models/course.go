package models

type Course struct {
	ID          int64  `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
}

func (c Course) GetID() int64 { return c.ID }

func (c Course) WithID(id int64) Course {
	c.ID = id
	return c
}
