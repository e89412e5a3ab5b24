package logger

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestFromContext(t *testing.T) {
	t.Parallel()

	t.Run("returns the stored logger", func(t *testing.T) {
		t.Parallel()

		stored := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
		ctx := WithLogger(context.Background(), stored)

		assert.Same(t, stored, FromContext(ctx))
	})

	t.Run("falls back to the default logger", func(t *testing.T) {
		t.Parallel()

		got := FromContext(context.Background())
		assert.NotNil(t, got)
	})
}

func TestFromContextOrDefault(t *testing.T) {
	t.Parallel()

	stored := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))
	fallback := slog.New(slog.NewTextHandler(&bytes.Buffer{}, nil))

	t.Run("prefers the context logger", func(t *testing.T) {
		t.Parallel()

		ctx := WithLogger(context.Background(), stored)
		assert.Same(t, stored, FromContextOrDefault(ctx, fallback))
	})

	t.Run("uses the fallback when the context is empty", func(t *testing.T) {
		t.Parallel()
		assert.Same(t, fallback, FromContextOrDefault(context.Background(), fallback))
	})

	t.Run("never returns nil", func(t *testing.T) {
		t.Parallel()
		assert.NotNil(t, FromContextOrDefault(context.Background(), nil))
	})
}

func TestWithRequestID(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	base := slog.New(slog.NewJSONHandler(&buf, nil))
	ctx := WithLogger(context.Background(), base)

	ctx = WithRequestID(ctx, "req-123")

	t.Run("stores the correlation id", func(t *testing.T) {
		t.Parallel()

		id, ok := RequestID(ctx)
		require.True(t, ok)
		assert.Equal(t, "req-123", id)
	})

	t.Run("tags downstream log lines", func(t *testing.T) {
		t.Parallel()

		FromContext(ctx).Info("processing")
		assert.Contains(t, buf.String(), `"request_id":"req-123"`)
	})
}

func TestRequestIDMissing(t *testing.T) {
	t.Parallel()

	_, ok := RequestID(context.Background())
	assert.False(t, ok)
}
