package insights

import (
	"context"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"

	"github.com/velora-studio/velora/internal/platform/httpx"
)

// WarmupQueue hands cache warmups off to the background worker.
type WarmupQueue interface {
	EnqueueInsightsWarmup(ctx context.Context) error
}

// Handler serves the dashboard summary API.
type Handler struct {
	logger  *slog.Logger
	service *Service
	queue   WarmupQueue
}

// NewHandler constructs the insights Handler.
func NewHandler(logger *slog.Logger, service *Service, queue WarmupQueue) *Handler {
	return &Handler{logger: logger, service: service, queue: queue}
}

// MountRoutes registers insights routes.
func (h *Handler) MountRoutes(r chi.Router) {
	r.Get("/summary", h.Summary)
	r.Post("/summary/refresh", h.Refresh)
}

// Refresh enqueues a background recomputation of the default range so the
// next dashboard view is served from a fresh cache.
func (h *Handler) Refresh(w http.ResponseWriter, r *http.Request) {
	if err := h.queue.EnqueueInsightsWarmup(r.Context()); err != nil {
		h.logger.Error("enqueue insights warmup", slog.Any("error", err))
		httpx.Problem(w, http.StatusInternalServerError, "Internal Error", "")
		return
	}
	httpx.JSON(w, http.StatusAccepted, map[string]string{"status": "queued"})
}

// Summary returns the dashboard numbers. Without from/to query parameters
// the default trailing window is used.
func (h *Handler) Summary(w http.ResponseWriter, r *http.Request) {
	req := SummaryRequest{
		From: r.URL.Query().Get("from"),
		To:   r.URL.Query().Get("to"),
	}
	if req.From == "" || req.To == "" {
		req.From, req.To = DefaultRange(time.Now())
	}

	summary, err := h.service.Summary(r.Context(), req)
	if err != nil {
		h.logger.Error("dashboard summary", slog.Any("error", err))
		httpx.Problem(w, http.StatusBadRequest, "Bad Request", err.Error())
		return
	}
	httpx.JSON(w, http.StatusOK, summary)
}
