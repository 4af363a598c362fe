// internal/app/features/errors/render.go
package errors

import (
	"net/http"

	"github.com/dalemusser/waffle/pantry/httpnav"
	"github.com/dalemusser/waffle/pantry/templates"
)

// RenderUnauthorized shows a friendly "sign in required" page.
// If backURL is empty, it will default to /login.
func RenderUnauthorized(w http.ResponseWriter, r *http.Request, backURL string) {
	if backURL == "" {
		backURL = "/login"
	}
	templates.Render(w, r, "error_page", pageData{
		Title:   "Sign in required",
		Message: "Please sign in to continue.",
		BackURL: backURL,
	})
}

// RenderBadRequest shows a friendly error page with the given message.
// If backURL is empty, it resolves a safe back URL with a default fallback.
func RenderBadRequest(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}
	w.WriteHeader(http.StatusBadRequest)
	templates.Render(w, r, "error_page", pageData{
		Title:   "Something's not right",
		Message: msg,
		BackURL: backURL,
	})
}

// RenderServerError shows a generic server error page.
func RenderServerError(w http.ResponseWriter, r *http.Request, msg, backURL string) {
	if backURL == "" {
		backURL = httpnav.ResolveBackURL(r, "/")
	}
	w.WriteHeader(http.StatusInternalServerError)
	templates.Render(w, r, "error_page", pageData{
		Title:   "Server error",
		Message: msg,
		BackURL: backURL,
	})
}
