package courses

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
)

// Handle serves the course endpoints. Placeholder content for now; the
// catalog service lands in its own repository.
type Handle struct{}

// NewHandle creates the courses handle.
func NewHandle() Handle {
	return Handle{}
}

// Routes mounts the course endpoints behind the given middleware chain.
func Routes(r chi.Router, handle Handle, middlewares ...func(http.Handler) http.Handler) {
	r.Group(func(r chi.Router) {
		r.Use(middlewares...)
		r.Get("/", handle.GetIndex)
		r.Get("/list", handle.GetList)
	})
}

func (h Handle) GetIndex(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, "Courses!")
}

func (h Handle) GetList(w http.ResponseWriter, r *http.Request) {
	render.PlainText(w, r, "Courses list")
}
