package handler

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"statusgate/internal/status/metrics"
	"statusgate/internal/status/models"
	"statusgate/pkg/platform/httputil"
	pstrings "statusgate/pkg/platform/strings"
	"statusgate/pkg/requestcontext"
)

// Service resolves and lists subject statuses.
type Service interface {
	Resolve(ctx context.Context, raw string) models.Outcome
	List(ctx context.Context) ([]models.StatusView, error)
}

// Publisher hands one subject to background resolution.
type Publisher interface {
	Publish(ctx context.Context, subject string) error
}

// Handler wires the status endpoints to the resolver and the queue.
type Handler struct {
	service   Service
	publisher Publisher
	logger    *slog.Logger
	metrics   *metrics.Metrics
}

func New(service Service, publisher Publisher, logger *slog.Logger, metrics *metrics.Metrics) *Handler {
	return &Handler{
		service:   service,
		publisher: publisher,
		logger:    logger,
		metrics:   metrics,
	}
}

// Register mounts the status endpoints on the router.
func (h *Handler) Register(r chi.Router) {
	r.Post("/status", h.HandleStatus)
	r.Post("/bulk_status", h.HandleBulkStatus)
	r.Get("/scan", h.HandleScan)
}

// HandleStatus handles POST /status and returns the envelope body verbatim.
func (h *Handler) HandleStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)

	req, ok := httputil.DecodeAndPrepare[StatusRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	env := FromOutcome(h.service.Resolve(ctx, req.MobileNumber))
	httputil.WriteJSON(w, env.StatusCode, env.Body)
}

// HandleBulkStatus handles POST /bulk_status. Each number is queued
// independently; the reply lists the ones that could not be queued.
func (h *Handler) HandleBulkStatus(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	requestID := requestcontext.RequestID(ctx)
	start := time.Now()

	req, ok := httputil.DecodeAndPrepare[BulkStatusRequest](w, r, h.logger, ctx, requestID)
	if !ok {
		return
	}

	numbers := pstrings.SplitList(req.Numbers, ",")
	var failed []string
	for _, number := range numbers {
		if err := h.publisher.Publish(ctx, number); err != nil {
			h.metrics.IncrementPublished("error")
			h.logger.ErrorContext(ctx, "failed to queue number",
				"request_id", requestID,
				"subject", number,
				"error", err,
			)
			failed = append(failed, number)
			continue
		}
		h.metrics.IncrementPublished("ok")
	}

	h.logger.InfoContext(ctx, "bulk status queued",
		"request_id", requestID,
		"queued", len(numbers)-len(failed),
		"failed", len(failed),
		"duration_ms", time.Since(start).Milliseconds(),
	)
	httputil.WriteJSON(w, http.StatusOK, bulkResponse(len(numbers)-len(failed), failed))
}

// HandleScan handles GET /scan, the listing of unexpired results.
func (h *Handler) HandleScan(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	views, err := h.service.List(ctx)
	if err != nil {
		h.logger.ErrorContext(ctx, "failed to list resolved statuses",
			"request_id", requestcontext.RequestID(ctx),
			"error", err,
		)
		httputil.WriteJSON(w, http.StatusBadGateway, []models.StatusView{})
		return
	}
	httputil.WriteJSON(w, http.StatusOK, views)
}
