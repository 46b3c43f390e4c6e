package controllers

import (
	"net/http"

	"github.com/ridgeline-hq/hoa-backend/api/middleware"
	"github.com/ridgeline-hq/hoa-backend/api/responses"
)

func Ping() http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		payload := map[string]string{"status": "ok"}
		if role := middleware.ActorRoleFromContext(r.Context()); role != "" {
			payload["actor_role"] = role
		}
		responses.WriteSuccess(w, payload)
	}
}
