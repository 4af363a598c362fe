// internal/app/features/errors/errors.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/templates"
)

// pageData is the basic view model for error pages.
type pageData struct {
	Title   string
	Message string
	BackURL string
}

// Handler is the errors feature handler.
// No backends needed; it just renders templates.
type Handler struct{}

// NewHandler constructs an errors Handler.
func NewHandler() *Handler {
	return &Handler{}
}

// Unauthorized renders a friendly "sign in required" page.
// GET /unauthorized
func (h *Handler) Unauthorized(w http.ResponseWriter, r *http.Request) {
	data := pageData{
		Title:   "Sign in required",
		Message: "Please sign in to continue.",
		BackURL: "/login",
	}
	templates.Render(w, r, "error_page", data)
}

// NotFound renders a friendly 404 page.
func (h *Handler) NotFound(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusNotFound)
	data := pageData{
		Title:   "Page not found",
		Message: "The page you were looking for doesn't exist.",
		BackURL: "/",
	}
	templates.Render(w, r, "error_page", data)
}
