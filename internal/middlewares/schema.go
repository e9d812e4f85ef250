package middlewares

import (
	"context"
	"net/http"
	"sync"
	"sync/atomic"

	"github.com/sbilibin2017/gw-finance-tracker/internal/logger"
)

// SchemaEnsurer creates the database schema if it is missing.
type SchemaEnsurer interface {
	Ensure(ctx context.Context) error
}

// SchemaMiddleware makes sure the schema exists before any request is served.
// After the first successful Ensure the check is a single atomic load; a
// failure answers 500 and the next request tries again.
func SchemaMiddleware(ensurer SchemaEnsurer) func(http.Handler) http.Handler {
	var (
		ready atomic.Bool
		mu    sync.Mutex
	)

	ensure := func(ctx context.Context) error {
		mu.Lock()
		defer mu.Unlock()

		if ready.Load() {
			return nil
		}
		if err := ensurer.Ensure(ctx); err != nil {
			return err
		}
		ready.Store(true)
		return nil
	}

	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			if !ready.Load() {
				if err := ensure(r.Context()); err != nil {
					logger.FromContext(r.Context()).Errorw("failed to ensure schema", "err", err)
					http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
					return
				}
			}

			next.ServeHTTP(w, r)
		})
	}
}
