package handlers

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-finance-tracker/internal/logger"
	"github.com/sbilibin2017/gw-finance-tracker/internal/middlewares"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
)

// Logouter ends a session.
type Logouter interface {
	Logout(ctx context.Context, session models.Session) error
}

// NewLogoutHandler revokes the session, clears the cookie and goes back to the login page.
// The cookie is cleared even when revocation fails.
func NewLogoutHandler(svc Logouter, cookies CookieWriter) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if session, ok := middlewares.SessionFromContext(r.Context()); ok {
			if err := svc.Logout(r.Context(), session); err != nil {
				logger.FromContext(r.Context()).Errorw("logout failed", "user_id", session.UserID, "err", err)
			}
		}

		cookies.ClearCookie(w)
		redirectSuccess(w, r, middlewares.LoginPath, "you have been logged out")
	}
}

// NewIndexHandler sends the root path to the dashboard.
func NewIndexHandler() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		http.Redirect(w, r, "/dashboard", http.StatusSeeOther)
	}
}
