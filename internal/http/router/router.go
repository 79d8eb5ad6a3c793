package router

import (
	"coursehub/internal/flash"
	"coursehub/internal/http/handlers"
	"coursehub/internal/http/middleware"
	"coursehub/internal/models"
	"coursehub/internal/routes"
	"coursehub/internal/security"
	"coursehub/internal/store"
	"coursehub/internal/validate"
	"coursehub/internal/view"
	"net/http"

	ghandlers "github.com/gorilla/handlers"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"
)

type Deps struct {
	Log      zerolog.Logger
	Users    store.Store[models.User]
	Courses  store.Store[models.Course]
	Sessions *security.SessionStore
	Auth     *security.Authenticator
	View     *view.Renderer
	// DB is pinged by /healthz; nil for the in-memory backend.
	DB handlers.Pinger
}

func Setup(deps Deps) http.Handler {
	r := mux.NewRouter()

	// Initialize handlers
	base := handlers.NewBase(deps.View, flash.NewChannel(deps.Sessions, deps.Log), deps.Sessions, deps.Log)
	validator := validate.New()

	homeHandler := handlers.NewHomeHandler(base)
	sessionHandler := handlers.NewSessionHandler(base, deps.Auth)
	healthHandler := handlers.NewHealthHandler(deps.DB)

	r.HandleFunc(routes.RootPath(), homeHandler.Index).Methods("GET")
	r.HandleFunc(routes.HelloPath(), homeHandler.Hello).Methods("GET")
	r.HandleFunc("/healthz", healthHandler.Health).Methods("GET")

	r.HandleFunc(routes.NewSessionPath(), sessionHandler.New).Methods("GET")
	r.HandleFunc(routes.SessionPath(), sessionHandler.Create).Methods("POST")
	r.HandleFunc(routes.DeleteSessionPath(), sessionHandler.Delete).Methods("POST")

	resource(r, handlers.NewResource(base, validator, handlers.UserResource(deps.Users)))
	resource(r, handlers.NewResource(base, validator, handlers.CourseResource(deps.Courses)))

	r.NotFoundHandler = http.HandlerFunc(homeHandler.NotFound)

	// Method override runs before routing so that mux sees PATCH and DELETE.
	var h http.Handler = ghandlers.HTTPMethodOverrideHandler(r)
	h = middleware.Recovery(deps.Log)(h)
	h = middleware.Logger(deps.Log)(h)
	h = middleware.RequestID(deps.Log)(h)

	return h
}

func resource[T store.Record[T]](r *mux.Router, h *handlers.Resource[T]) {
	p := h.Config().Path

	r.HandleFunc(p.Index(), h.Index).Methods("GET")
	r.HandleFunc(p.Index(), h.Create).Methods("POST")
	r.HandleFunc(p.New(), h.New).Methods("GET")
	r.HandleFunc(p.Index()+"/{id}", h.Show).Methods("GET")
	r.HandleFunc(p.Index()+"/{id}", h.Update).Methods("PATCH", "PUT")
	r.HandleFunc(p.Index()+"/{id}", h.Delete).Methods("DELETE")
	r.HandleFunc(p.Index()+"/{id}/edit", h.Edit).Methods("GET")
}
