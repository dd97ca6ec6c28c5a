package orders

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/velora-studio/velora/internal/shared"
)

func newTestRouter(t *testing.T) chi.Router {
	t.Helper()
	svc, _ := newTestService(t, newMockOrderRepo())
	h := NewHandler(slog.New(slog.NewTextHandler(io.Discard, nil)), svc)
	r := chi.NewRouter()
	r.Route("/orders", h.MountRoutes)
	return r
}

func TestListNormalizesPageSize(t *testing.T) {
	router := newTestRouter(t)

	for _, query := range []string{"limit=0", "limit=-5", "limit=5000"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/orders?"+query, nil))
		require.Equal(t, http.StatusOK, rec.Code, query)

		var body struct {
			Pagination shared.Pagination `json:"pagination"`
		}
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body), query)
		assert.Equal(t, 50, body.Pagination.PerPage, query)
		assert.Equal(t, 1, body.Pagination.Page, query)
	}
}
