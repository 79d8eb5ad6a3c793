package handlers

import (
	"coursehub/internal/models"
	"coursehub/internal/routes"
	"coursehub/internal/store"
	"coursehub/internal/validate"
	"coursehub/internal/view"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"
)

// Form is a submitted schema for a record type. Apply copies the validated
// values onto rec.
type Form[T any] interface {
	Apply(rec T) (T, error)
}

// ResourceConfig describes one CRUD collection.
type ResourceConfig[T store.Record[T]] struct {
	// Path is both the URL prefix and the template directory.
	Path   routes.Resource
	Noun   string // "User"
	Plural string // "Users"
	Store  store.Store[T]

	CreateForm func() Form[T]
	UpdateForm func() Form[T]
	// EditForm prefills the edit page from a stored record.
	EditForm func(rec T) Form[T]
}

// Resource serves list, show, create, update and delete for one collection.
type Resource[T store.Record[T]] struct {
	*Base
	cfg       ResourceConfig[T]
	validator *validate.Validator
}

func NewResource[T store.Record[T]](base *Base, v *validate.Validator, cfg ResourceConfig[T]) *Resource[T] {
	return &Resource[T]{Base: base, cfg: cfg, validator: v}
}

func (h *Resource[T]) Config() ResourceConfig[T] {
	return h.cfg
}

func (h *Resource[T]) Index(w http.ResponseWriter, r *http.Request) {
	recs, err := h.cfg.Store.List(r.Context())
	if err != nil {
		h.serverError(w, r, "list", err)
		return
	}

	h.render(w, r, http.StatusOK, h.template("index"), view.Page{Title: h.cfg.Plural, Records: recs})
}

func (h *Resource[T]) New(w http.ResponseWriter, r *http.Request) {
	h.render(w, r, http.StatusOK, h.template("new"), view.Page{
		Title: "New " + strings.ToLower(h.cfg.Noun),
		Form:  h.cfg.CreateForm(),
	})
}

func (h *Resource[T]) Show(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.lookup(w, r)
	if !ok {
		return
	}

	h.render(w, r, http.StatusOK, h.template("show"), view.Page{Title: h.cfg.Noun, Record: rec})
}

func (h *Resource[T]) Edit(w http.ResponseWriter, r *http.Request) {
	rec, ok := h.lookup(w, r)
	if !ok {
		return
	}

	h.render(w, r, http.StatusOK, h.template("edit"), view.Page{
		Title:  "Edit " + strings.ToLower(h.cfg.Noun),
		Record: rec,
		Form:   h.cfg.EditForm(rec),
	})
}

func (h *Resource[T]) Create(w http.ResponseWriter, r *http.Request) {
	form := h.cfg.CreateForm()

	errs, ok := h.bind(w, r, form)
	if !ok {
		return
	}
	if errs != nil {
		h.render(w, r, http.StatusOK, h.template("new"), view.Page{
			Title:  "New " + strings.ToLower(h.cfg.Noun),
			Form:   form,
			Errors: errs,
		})
		return
	}

	var zero T
	rec, err := form.Apply(zero)
	if err != nil {
		h.persistFailed(w, r, "create", err)
		return
	}

	if _, err := h.cfg.Store.Create(r.Context(), rec); err != nil {
		h.persistFailed(w, r, "create", err)
		return
	}

	h.flash.Push(w, r, models.FlashSuccess, h.cfg.Noun+" created successfully")
	http.Redirect(w, r, h.cfg.Path.Index(), http.StatusSeeOther)
}

func (h *Resource[T]) Update(w http.ResponseWriter, r *http.Request) {
	existing, ok := h.lookup(w, r)
	if !ok {
		return
	}
	form := h.cfg.UpdateForm()

	errs, ok := h.bind(w, r, form)
	if !ok {
		return
	}
	if errs != nil {
		h.render(w, r, http.StatusOK, h.template("edit"), view.Page{
			Title:  "Edit " + strings.ToLower(h.cfg.Noun),
			Record: existing,
			Form:   form,
			Errors: errs,
		})
		return
	}

	id := existing.GetID()
	rec, err := form.Apply(existing)
	if err != nil {
		h.persistFailed(w, r, "update", err)
		return
	}

	if err := h.cfg.Store.Update(r.Context(), id, rec); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound(w, h.cfg.Noun+" not found")
			return
		}
		h.persistFailed(w, r, "update", err)
		return
	}

	h.flash.Push(w, r, models.FlashSuccess, h.cfg.Noun+" updated successfully")
	http.Redirect(w, r, h.cfg.Path.Show(id), http.StatusSeeOther)
}

func (h *Resource[T]) Delete(w http.ResponseWriter, r *http.Request) {
	id, ok := h.id(w, r)
	if !ok {
		return
	}

	if err := h.cfg.Store.Delete(r.Context(), id); err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound(w, h.cfg.Noun+" not found")
			return
		}
		h.persistFailed(w, r, "delete", err)
		return
	}

	h.flash.Push(w, r, models.FlashSuccess, h.cfg.Noun+" deleted successfully")
	http.Redirect(w, r, h.cfg.Path.Index(), http.StatusSeeOther)
}

// bind decodes and checks the submitted form. ok is false when a response
// has already been written; errs is non-nil when a constraint failed.
func (h *Resource[T]) bind(w http.ResponseWriter, r *http.Request, form Form[T]) (errs validate.Errors, ok bool) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid request", http.StatusBadRequest)
		return nil, false
	}

	err := h.validator.Bind(form, r.PostForm)
	if err == nil {
		return nil, true
	}
	if errors.As(err, &errs) {
		return errs, true
	}

	h.logger(r).Warn().Err(err).Msg("undecodable form")
	http.Error(w, "Invalid request", http.StatusBadRequest)
	return nil, false
}

// lookup resolves the {id} route variable. A missing record ends the
// request with a 404.
func (h *Resource[T]) lookup(w http.ResponseWriter, r *http.Request) (T, bool) {
	var zero T

	id, ok := h.id(w, r)
	if !ok {
		return zero, false
	}

	rec, err := h.cfg.Store.Get(r.Context(), id)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			notFound(w, h.cfg.Noun+" not found")
			return zero, false
		}
		h.serverError(w, r, "get", err)
		return zero, false
	}

	return rec, true
}

func (h *Resource[T]) id(w http.ResponseWriter, r *http.Request) (int64, bool) {
	id, err := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	if err != nil || id < 1 {
		notFound(w, h.cfg.Noun+" not found")
		return 0, false
	}
	return id, true
}

func (h *Resource[T]) persistFailed(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger(r).Error().Err(err).Str("resource", string(h.cfg.Path)).Str("op", op).Msg("persist failed")
	h.flash.Push(w, r, models.FlashError, "Could not "+op+" "+strings.ToLower(h.cfg.Noun))
	http.Redirect(w, r, h.cfg.Path.Index(), http.StatusSeeOther)
}

func (h *Resource[T]) serverError(w http.ResponseWriter, r *http.Request, op string, err error) {
	h.logger(r).Error().Err(err).Str("resource", string(h.cfg.Path)).Str("op", op).Msg("read failed")
	http.Error(w, "Internal server error", http.StatusInternalServerError)
}

func (h *Resource[T]) template(page string) string {
	return string(h.cfg.Path) + "/" + page
}
