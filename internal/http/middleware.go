package http

import (
	"context"
	"net/http"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/mauv0809/courtside/internal/auth"
	"github.com/mauv0809/courtside/internal/http/handlers"
)

// Middleware defines the standard signature for an HTTP middleware.
type Middleware func(http.Handler) http.Handler

// Chain combines multiple middlewares into a single handler.
// The middlewares are applied in the order they are passed.
func Chain(h http.Handler, middlewares ...Middleware) http.Handler {
	for i := len(middlewares) - 1; i >= 0; i-- {
		h = middlewares[i](h)
	}
	return h
}

// paramsMiddleware handles common query parameters like 'verbose' and 'dry_run'.
func paramsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		log.Info("incoming request", "method", r.Method, "url", r.URL.String())
		// Handle 'verbose' for request-scoped verbose logging.
		if r.URL.Query().Get("verbose") == "true" {
			originalLevel := log.GetLevel()
			log.SetLevel(log.DebugLevel)
			defer log.SetLevel(originalLevel)
		}

		// Handle 'dry_run' and add it to the request context.
		isDryRun := r.URL.Query().Get("dry_run") == "true"
		ctx := context.WithValue(r.Context(), handlers.DryRunKey, isDryRun)

		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

// authMiddleware resolves the caller's token into an identity and attaches
// it to the request context. Requests without a valid token get a 401.
// The token travels as a bearer header or, for convenience, as ?token=.
func authMiddleware(sessions auth.Sessions) Middleware {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			token := r.URL.Query().Get("token")
			if header := r.Header.Get("Authorization"); header != "" {
				token = strings.TrimPrefix(header, "Bearer ")
			}

			identity, err := sessions.Resolve(token)
			if err != nil {
				log.Debug("Rejected unauthenticated request", "url", r.URL.Path)
				http.Error(w, "Invalid token", http.StatusUnauthorized)
				return
			}

			ctx := context.WithValue(r.Context(), handlers.IdentityKey, identity)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}
