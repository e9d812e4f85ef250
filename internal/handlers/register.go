package handlers

import (
	"context"
	"net/http"
)

// Registerer defines the interface that the service must implement.
type Registerer interface {
	Register(ctx context.Context, username, email, password, confirmPassword string) error
}

// RegisterPage is the data of register.html.
type RegisterPage struct {
	Page
}

// NewRegisterPageHandler renders the registration form.
func NewRegisterPageHandler(renderer Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, renderer, "register.html", RegisterPage{Page: newPage(r, "Register")})
	}
}

// NewRegisterHandler creates the account and sends the user to the login page.
func NewRegisterHandler(svc Registerer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithFlash(w, r, "/register", flashError, "invalid form submission")
			return
		}

		err := svc.Register(r.Context(),
			r.PostFormValue("username"),
			r.PostFormValue("email"),
			r.PostFormValue("password"),
			r.PostFormValue("confirm_password"),
		)
		if err != nil {
			redirectError(w, r, "/register", err)
			return
		}

		redirectSuccess(w, r, "/login", "registration successful, please log in")
	}
}
