package handlers

import (
	"context"
	"net/http"
)

// Loginer defines the interface that the login service must implement.
type Loginer interface {
	Login(ctx context.Context, username, password string) (string, error)
}

// CookieWriter stores and removes the session cookie.
type CookieWriter interface {
	SetCookie(w http.ResponseWriter, token string)
	ClearCookie(w http.ResponseWriter)
}

// LoginPage is the data of login.html.
type LoginPage struct {
	Page
}

// NewLoginPageHandler renders the login form.
func NewLoginPageHandler(renderer Renderer) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		render(w, r, renderer, "login.html", LoginPage{Page: newPage(r, "Login")})
	}
}

// NewLoginHandler checks the submitted credentials and starts a session.
func NewLoginHandler(svc Loginer, cookies CookieWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if err := r.ParseForm(); err != nil {
			redirectWithFlash(w, r, "/login", flashError, "invalid form submission")
			return
		}

		token, err := svc.Login(r.Context(), r.PostFormValue("username"), r.PostFormValue("password"))
		if err != nil {
			redirectError(w, r, "/login", err)
			return
		}

		cookies.SetCookie(w, token)
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}
