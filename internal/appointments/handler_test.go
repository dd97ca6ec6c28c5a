package appointments

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubReminderQueue struct {
	dates []string
}

func (s *stubReminderQueue) EnqueueAppointmentReminder(ctx context.Context, date string) error {
	s.dates = append(s.dates, date)
	return nil
}

func newReminderRouter(t *testing.T) (chi.Router, *stubReminderQueue) {
	t.Helper()
	queue := &stubReminderQueue{}
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), NewService(newMockRepo()), queue)
	r := chi.NewRouter()
	r.Route("/appointments", h.MountRoutes)
	return r, queue
}

func TestScheduleReminderQueuesScan(t *testing.T) {
	router, queue := newReminderRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments/reminders",
		strings.NewReader(`{"date":"2026-09-01"}`)))
	require.Equal(t, http.StatusAccepted, rec.Code)
	assert.Equal(t, []string{"2026-09-01"}, queue.dates)
}

func TestScheduleReminderDefaultsToTomorrow(t *testing.T) {
	router, queue := newReminderRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments/reminders", nil))
	require.Equal(t, http.StatusAccepted, rec.Code)
	// An empty date is resolved to tomorrow by the worker at execution time.
	assert.Equal(t, []string{""}, queue.dates)
}

func TestScheduleReminderRejectsBadDate(t *testing.T) {
	router, queue := newReminderRouter(t)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/appointments/reminders",
		strings.NewReader(`{"date":"next tuesday"}`)))
	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, queue.dates)
}
