package controllers

import (
	"net/http"

	"github.com/ridgeline-hq/hoa-backend/api/responses"
	"github.com/ridgeline-hq/hoa-backend/pkg/config"
	"github.com/ridgeline-hq/hoa-backend/pkg/db"
	pkgerrors "github.com/ridgeline-hq/hoa-backend/pkg/errors"
	"github.com/ridgeline-hq/hoa-backend/pkg/logger"
)

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-HOA-Env", cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady reports readiness after verifying the database connection.
func HealthReady(cfg *config.Config, client *db.Client, logg *logger.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("X-HOA-Env", cfg.App.Env)
		if client != nil {
			if err := client.Ping(r.Context()); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "database not reachable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{"status": "ready"})
	}
}
