package common

import (
	"context"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestRequestIDRoundTrip(t *testing.T) {
	ctx := context.Background()
	assert.Empty(t, RequestIDFromContext(ctx))

	id := NewRequestID()
	assert.Len(t, id, 36)
	assert.Equal(t, id, RequestIDFromContext(WithRequestID(ctx, id)))
}

func TestLoggerFromContext(t *testing.T) {
	fallback := slog.New(slog.DiscardHandler)
	scoped := slog.New(slog.DiscardHandler).With("request_id", "r1")

	assert.Same(t, fallback, LoggerFromContext(context.Background(), fallback))
	assert.Same(t, scoped, LoggerFromContext(WithLogger(context.Background(), scoped), fallback))
	assert.NotNil(t, LoggerFromContext(context.Background(), nil))
}
