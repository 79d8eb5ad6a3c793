// Package routes builds the application's paths so handlers, redirects and
// templates agree on them.
package routes

import (
	"html/template"
	"strconv"
)

func RootPath() string  { return "/" }
func HelloPath() string { return "/hello" }

func NewSessionPath() string    { return "/session/new" }
func SessionPath() string       { return "/session" }
func DeleteSessionPath() string { return "/session/delete" }

func UsersPath() string            { return Resource("users").Index() }
func NewUserPath() string          { return Resource("users").New() }
func UserPath(id int64) string     { return Resource("users").Show(id) }
func EditUserPath(id int64) string { return Resource("users").Edit(id) }

func CoursesPath() string            { return Resource("courses").Index() }
func NewCoursePath() string          { return Resource("courses").New() }
func CoursePath(id int64) string     { return Resource("courses").Show(id) }
func EditCoursePath(id int64) string { return Resource("courses").Edit(id) }

// Resource is the path prefix of a CRUD collection, e.g. "users".
type Resource string

func (r Resource) Index() string { return "/" + string(r) }
func (r Resource) New() string   { return r.Index() + "/new" }

func (r Resource) Show(id int64) string {
	return r.Index() + "/" + strconv.FormatInt(id, 10)
}

func (r Resource) Edit(id int64) string { return r.Show(id) + "/edit" }

// FuncMap exposes the path builders to templates.
func FuncMap() template.FuncMap {
	return template.FuncMap{
		"rootPath":          RootPath,
		"helloPath":         HelloPath,
		"newSessionPath":    NewSessionPath,
		"sessionPath":       SessionPath,
		"deleteSessionPath": DeleteSessionPath,
		"usersPath":         UsersPath,
		"newUserPath":       NewUserPath,
		"userPath":          UserPath,
		"editUserPath":      EditUserPath,
		"coursesPath":       CoursesPath,
		"newCoursePath":     NewCoursePath,
		"coursePath":        CoursePath,
		"editCoursePath":    EditCoursePath,
	}
}
