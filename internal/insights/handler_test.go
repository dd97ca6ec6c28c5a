package insights

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubWarmupQueue struct {
	calls int
}

func (s *stubWarmupQueue) EnqueueInsightsWarmup(ctx context.Context) error {
	s.calls++
	return nil
}

func TestRefreshQueuesWarmup(t *testing.T) {
	svc, _ := newTestService(t, &mockRepo{sales: 100}, time.Minute)
	queue := &stubWarmupQueue{}
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc, queue)
	router := chi.NewRouter()
	router.Route("/insights", h.MountRoutes)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/insights/summary/refresh", nil))
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, 1, queue.calls)
}
