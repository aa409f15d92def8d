package main

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"statusgate/internal/platform/metrics"
	"statusgate/internal/status/handler"
	dErrors "statusgate/pkg/domain-errors"
	"statusgate/pkg/platform/httputil"
	"statusgate/pkg/platform/middleware/metadata"
	"statusgate/pkg/platform/middleware/requesttime"
	"statusgate/pkg/requestcontext"
)

const healthTimeout = 2 * time.Second

// healthChecker reports whether the selected store backend is reachable.
type healthChecker interface {
	Health(ctx context.Context) error
}

func newRouter(h *handler.Handler, health healthChecker, log *slog.Logger) http.Handler {
	r := chi.NewRouter()
	r.Use(metadata.RequestID)
	r.Use(requesttime.Middleware)
	r.Use(metadata.AccessLog(log))
	r.Use(metadata.CORS)

	r.NotFound(func(w http.ResponseWriter, _ *http.Request) {
		httputil.WriteError(w, dErrors.New(dErrors.CodeNotFound, "route not found"))
	})
	r.Get("/healthz", healthHandler(health, log))
	r.Handle("/metrics", metrics.Handler())

	h.Register(r)
	return r
}

func healthHandler(health healthChecker, log *slog.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), healthTimeout)
		defer cancel()
		if err := health.Health(ctx); err != nil {
			log.WarnContext(ctx, "health check failed",
				"request_id", requestcontext.RequestID(ctx),
				"error", err,
			)
			httputil.WriteError(w, dErrors.Wrap(err, dErrors.CodeUnavailable, "store backend unreachable"))
			return
		}
		httputil.WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}
}
