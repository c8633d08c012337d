package controllers

import (
	"context"
	"net/http"
	"time"

	"github.com/angelmondragon/shopcart-backend/api/responses"
	"github.com/angelmondragon/shopcart-backend/pkg/config"
	pkgerrors "github.com/angelmondragon/shopcart-backend/pkg/errors"
	"github.com/angelmondragon/shopcart-backend/pkg/logger"
)

const (
	envHeader    = "X-Shopcart-Env"
	readyTimeout = 2 * time.Second
)

// Pinger is satisfied by the snapshot backend.
type Pinger interface {
	Ping(ctx context.Context) error
}

func HealthLive(cfg *config.Config) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		responses.WriteSuccess(w, map[string]string{"status": "live"})
	}
}

// HealthReady pings the snapshot backend and reports 503 when it is unreachable.
func HealthReady(cfg *config.Config, logg *logger.Logger, snapshots Pinger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set(envHeader, cfg.App.Env)
		if snapshots != nil {
			ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
			defer cancel()
			if err := snapshots.Ping(ctx); err != nil {
				responses.WriteError(r.Context(), logg, w, pkgerrors.Wrap(pkgerrors.CodeDependency, err, "snapshot backend unavailable"))
				return
			}
		}
		responses.WriteSuccess(w, map[string]string{
			"status":   "ready",
			"snapshot": cfg.Snapshot.NormalizedBackend(),
		})
	}
}
