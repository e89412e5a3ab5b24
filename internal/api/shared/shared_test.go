package shared

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTraceID(t *testing.T) {
	t.Parallel()

	t.Run("set and get", func(t *testing.T) {
		t.Parallel()

		ctx := SetTraceID(context.Background())
		traceID := GetTraceID(ctx)

		assert.NotEmpty(t, traceID)
	})

	t.Run("each request gets a fresh id", func(t *testing.T) {
		t.Parallel()

		first := GetTraceID(SetTraceID(context.Background()))
		second := GetTraceID(SetTraceID(context.Background()))

		assert.NotEqual(t, first, second)
	})

	t.Run("missing trace id yields empty string", func(t *testing.T) {
		t.Parallel()
		assert.Empty(t, GetTraceID(context.Background()))
	})
}

func TestRespondWithJSON(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, "/test", nil)

	RespondWithJSON(rec, req, http.StatusCreated, map[string]string{"status": "ok"})

	assert.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var body map[string]string
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
	assert.Equal(t, "ok", body["status"])
}

func TestRespondWithError(t *testing.T) {
	t.Parallel()

	t.Run("includes the trace id when set", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)
		req = req.WithContext(SetTraceID(req.Context()))

		RespondWithError(rec, req, http.StatusBadRequest, "Missing fields: name")

		assert.Equal(t, http.StatusBadRequest, rec.Code)

		var body ErrorResponse
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))
		assert.Equal(t, "Missing fields: name", body.Error)
		assert.NotEmpty(t, body.TraceID)
	})

	t.Run("omits a missing trace id", func(t *testing.T) {
		t.Parallel()

		rec := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodGet, "/test", nil)

		RespondWithError(rec, req, http.StatusNotFound, "Record not found")

		var raw map[string]any
		require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &raw))
		assert.NotContains(t, raw, "trace_id")
		assert.NotContains(t, raw, "code")
	})
}

func TestRespondWithErrorAndLog(t *testing.T) {
	t.Parallel()

	rec := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/test", nil)

	RespondWithErrorAndLog(rec, req, http.StatusInternalServerError,
		"An unexpected error occurred", assert.AnError)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)

	var body ErrorResponse
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &body))

	// Only the sanitized message reaches the client.
	assert.Equal(t, "An unexpected error occurred", body.Error)
	assert.NotContains(t, rec.Body.String(), assert.AnError.Error())
}

type taggedRequest struct {
	Email string `validate:"required,email"`
}

type selfValidatingRequest struct {
	err error
}

func (r selfValidatingRequest) Validate() error { return r.err }

func TestValidateRequest(t *testing.T) {
	t.Parallel()

	t.Run("checks struct tags", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, ValidateRequest(taggedRequest{Email: "juan@example.com"}))
		assert.Error(t, ValidateRequest(taggedRequest{Email: "not-an-email"}))
		assert.Error(t, ValidateRequest(taggedRequest{}))
	})

	t.Run("prefers a Validate method over tags", func(t *testing.T) {
		t.Parallel()

		assert.NoError(t, ValidateRequest(selfValidatingRequest{}))
		assert.ErrorIs(t, ValidateRequest(selfValidatingRequest{err: assert.AnError}), assert.AnError)
	})
}
