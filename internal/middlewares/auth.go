package middlewares

import (
	"context"
	"net/http"

	"github.com/sbilibin2017/gw-finance-tracker/internal/jwt"
	"github.com/sbilibin2017/gw-finance-tracker/internal/logger"
	"github.com/sbilibin2017/gw-finance-tracker/internal/models"
)

// LoginPath is where requests without a valid session are sent.
const LoginPath = "/login"

// Tokener defines the minimal interface needed by the middleware
type Tokener interface {
	GetTokenFromRequest(ctx context.Context, r *http.Request) (string, error)
	GetClaims(ctx context.Context, tokenString string) (*jwt.Claims, error)
}

// RevocationChecker reports sessions that were logged out before they expired.
type RevocationChecker interface {
	IsRevoked(ctx context.Context, sessionID string) (bool, error)
}

type sessionKey struct{}

// WithSession returns a copy of ctx carrying the session.
func WithSession(ctx context.Context, s models.Session) context.Context {
	return context.WithValue(ctx, sessionKey{}, s)
}

// SessionFromContext returns the session stored by AuthMiddleware.
func SessionFromContext(ctx context.Context) (models.Session, bool) {
	s, ok := ctx.Value(sessionKey{}).(models.Session)
	return s, ok
}

// AuthMiddleware returns a middleware that requires a valid session cookie.
// Requests without one are redirected to the login page. revoked may be nil.
func AuthMiddleware(tokener Tokener, revoked RevocationChecker) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			ctx := r.Context()
			log := logger.FromContext(ctx)

			tokenString, err := tokener.GetTokenFromRequest(ctx, r)
			if err != nil {
				log.Debugw("no session", "err", err)
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			claims, err := tokener.GetClaims(ctx, tokenString)
			if err != nil {
				log.Infow("invalid session", "err", err)
				http.Redirect(w, r, LoginPath, http.StatusSeeOther)
				return
			}

			if revoked != nil {
				isRevoked, err := revoked.IsRevoked(ctx, claims.ID)
				if err != nil {
					log.Errorw("failed to check session revocation", "err", err)
					http.Error(w, http.StatusText(http.StatusServiceUnavailable), http.StatusServiceUnavailable)
					return
				}
				if isRevoked {
					log.Infow("revoked session", "user_id", claims.UserID)
					http.Redirect(w, r, LoginPath, http.StatusSeeOther)
					return
				}
			}

			session := models.Session{
				UserID:    claims.UserID,
				Username:  claims.Username,
				SessionID: claims.ID,
			}
			if claims.ExpiresAt != nil {
				session.ExpiresAt = claims.ExpiresAt.Time
			}

			next.ServeHTTP(w, r.WithContext(WithSession(ctx, session)))
		})
	}
}
