package api

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitaka-app/pitaka-api/internal/service"
)

// stubDashboardService returns a canned dashboard or error.
type stubDashboardService struct {
	dashboard *service.Dashboard
	err       error
}

func (s *stubDashboardService) GetDashboard(_ context.Context, _ int64) (*service.Dashboard, error) {
	return s.dashboard, s.err
}

func TestGetDashboard(t *testing.T) {
	t.Parallel()

	t.Run("returns the aggregated figures", func(t *testing.T) {
		t.Parallel()

		handler := NewDashboardHandler(&stubDashboardService{
			dashboard: &service.Dashboard{
				TotalIncome:  10000,
				TotalExpense: 3000,
				NetWorth:     6500,
			},
		}, slog.Default())

		req := withUserID(httptest.NewRequest(http.MethodGet, "/api/dashboard", nil), 42)
		rec := httptest.NewRecorder()

		handler.GetDashboard(rec, req)

		require.Equal(t, http.StatusOK, rec.Code)

		var body service.Dashboard
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.InDelta(t, 10000, body.TotalIncome, 0.001)
		assert.InDelta(t, 6500, body.NetWorth, 0.001)
	})

	t.Run("unauthenticated request gets a 401", func(t *testing.T) {
		t.Parallel()

		handler := NewDashboardHandler(&stubDashboardService{}, slog.Default())

		rec := httptest.NewRecorder()
		handler.GetDashboard(rec, httptest.NewRequest(http.MethodGet, "/api/dashboard", nil))

		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("service failure gets a sanitized 500", func(t *testing.T) {
		t.Parallel()

		handler := NewDashboardHandler(&stubDashboardService{
			err: errors.New("pq: connection refused"),
		}, slog.Default())

		req := withUserID(httptest.NewRequest(http.MethodGet, "/api/dashboard", nil), 42)
		rec := httptest.NewRecorder()

		handler.GetDashboard(rec, req)

		assert.Equal(t, http.StatusInternalServerError, rec.Code)
		assert.Contains(t, rec.Body.String(), "An unexpected error occurred")
		assert.NotContains(t, rec.Body.String(), "connection refused")
	})
}
