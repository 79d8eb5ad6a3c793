package handlers

import (
	"coursehub/internal/models"
	"coursehub/internal/routes"
	"coursehub/internal/store"
	"strings"
)

// CourseForm is used both to create and to update a course.
type CourseForm struct {
	Title       string `form:"title" label:"Title" validate:"required,min=2"`
	Description string `form:"description" label:"Description" validate:"required,min=10"`
}

func (f *CourseForm) Normalize() {
	f.Title = strings.TrimSpace(f.Title)
	f.Description = strings.TrimSpace(f.Description)
}

func (f *CourseForm) Apply(c models.Course) (models.Course, error) {
	c.Title = f.Title
	c.Description = f.Description
	return c, nil
}

func CourseResource(courses store.Store[models.Course]) ResourceConfig[models.Course] {
	return ResourceConfig[models.Course]{
		Path:       routes.Resource("courses"),
		Noun:       "Course",
		Plural:     "Courses",
		Store:      courses,
		CreateForm: func() Form[models.Course] { return &CourseForm{} },
		UpdateForm: func() Form[models.Course] { return &CourseForm{} },
		EditForm: func(c models.Course) Form[models.Course] {
			return &CourseForm{Title: c.Title, Description: c.Description}
		},
	}
}
