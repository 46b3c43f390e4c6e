package middleware

import (
	"context"
	"net/http"

	"github.com/ridgeline-hq/hoa-backend/pkg/logger"
)

const actorRoleHeader = "X-Actor-Role"

type actorRoleKey struct{}

// ActorRole pulls the caller's declared role off the request and stashes it
// in the context for handlers and log lines. Absent header means anonymous.
func ActorRole(logg *logger.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			role := r.Header.Get(actorRoleHeader)
			if role == "" {
				next.ServeHTTP(w, r)
				return
			}

			ctx := context.WithValue(r.Context(), actorRoleKey{}, role)
			if logg != nil {
				ctx = logg.WithActorRole(ctx, role)
			}

			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// ActorRoleFromContext returns the role set by ActorRole, or "".
func ActorRoleFromContext(ctx context.Context) string {
	role, _ := ctx.Value(actorRoleKey{}).(string)
	return role
}
