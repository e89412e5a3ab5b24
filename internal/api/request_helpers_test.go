package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pitaka-app/pitaka-api/internal/api/shared"
	"github.com/pitaka-app/pitaka-api/internal/policy"
)

// newRequestWithPathID builds a request whose chi route context carries
// the given path parameter, as the router would during dispatch.
func newRequestWithPathID(t *testing.T, param, value string) *http.Request {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	rctx := chi.NewRouteContext()
	rctx.URLParams.Add(param, value)
	return req.WithContext(context.WithValue(req.Context(), chi.RouteCtxKey, rctx))
}

func withUserID(r *http.Request, userID int64) *http.Request {
	return r.WithContext(context.WithValue(r.Context(), shared.UserIDContextKey, userID))
}

func TestGetUserIDFromContext(t *testing.T) {
	t.Parallel()

	t.Run("present and positive", func(t *testing.T) {
		t.Parallel()

		req := withUserID(httptest.NewRequest(http.MethodGet, "/", nil), 42)

		userID, ok := getUserIDFromContext(req)
		assert.True(t, ok)
		assert.Equal(t, int64(42), userID)
	})

	t.Run("absent", func(t *testing.T) {
		t.Parallel()

		_, ok := getUserIDFromContext(httptest.NewRequest(http.MethodGet, "/", nil))
		assert.False(t, ok)
	})

	t.Run("non-positive", func(t *testing.T) {
		t.Parallel()

		req := withUserID(httptest.NewRequest(http.MethodGet, "/", nil), 0)

		_, ok := getUserIDFromContext(req)
		assert.False(t, ok)
	})
}

func TestGetPathID(t *testing.T) {
	t.Parallel()

	t.Run("parses a positive id", func(t *testing.T) {
		t.Parallel()

		id, err := getPathID(newRequestWithPathID(t, "debtID", "42"), "debtID")
		require.NoError(t, err)
		assert.Equal(t, int64(42), id)
	})

	tests := []struct {
		name    string
		value   string
		wantMsg string
	}{
		{name: "missing", value: "", wantMsg: "Missing debtID in URL"},
		{name: "non-numeric", value: "abc", wantMsg: "Invalid debtID in URL"},
		{name: "zero", value: "0", wantMsg: "Invalid debtID in URL"},
		{name: "negative", value: "-3", wantMsg: "Invalid debtID in URL"},
	}

	for _, tc := range tests {
		tc := tc
		t.Run("rejects "+tc.name, func(t *testing.T) {
			t.Parallel()

			_, err := getPathID(newRequestWithPathID(t, "debtID", tc.value), "debtID")
			require.Error(t, err)
			assert.True(t, policy.IsPolicyError(err))
			assert.EqualError(t, err, tc.wantMsg)
		})
	}
}

func TestHandleUserIDAndPathID(t *testing.T) {
	t.Parallel()

	t.Run("extracts both values", func(t *testing.T) {
		t.Parallel()

		req := withUserID(newRequestWithPathID(t, "goalID", "7"), 42)
		rec := httptest.NewRecorder()

		userID, pathID, ok := handleUserIDAndPathID(rec, req, "goalID", nil)
		require.True(t, ok)
		assert.Equal(t, int64(42), userID)
		assert.Equal(t, int64(7), pathID)
	})

	t.Run("unauthenticated request gets a 401", func(t *testing.T) {
		t.Parallel()

		req := newRequestWithPathID(t, "goalID", "7")
		rec := httptest.NewRecorder()

		_, _, ok := handleUserIDAndPathID(rec, req, "goalID", nil)
		assert.False(t, ok)
		assert.Equal(t, http.StatusUnauthorized, rec.Code)
	})

	t.Run("bad path parameter gets a 400", func(t *testing.T) {
		t.Parallel()

		req := withUserID(newRequestWithPathID(t, "goalID", "abc"), 42)
		rec := httptest.NewRecorder()

		_, _, ok := handleUserIDAndPathID(rec, req, "goalID", nil)
		assert.False(t, ok)
		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Contains(t, rec.Body.String(), "Invalid goalID in URL")
	})
}
