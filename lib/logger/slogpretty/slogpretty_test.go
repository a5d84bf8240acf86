package slogpretty

import (
	"bytes"
	"context"
	"log/slog"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestHandleTimestamp(t *testing.T) {
	var buf bytes.Buffer
	handler := PrettyHandlerOptions{
		SlogOpts: &slog.HandlerOptions{Level: slog.LevelDebug},
	}.NewPrettyHandler(&buf)

	// Minute and second differ so a swapped slot shows up.
	at := time.Date(2026, 8, 29, 13, 4, 56, 0, time.UTC)
	record := slog.NewRecord(at, slog.LevelInfo, "hello", 0)

	require.NoError(t, handler.Handle(context.Background(), record))

	assert.Contains(t, buf.String(), "[13:04:56.000]")
	assert.Contains(t, buf.String(), "hello")
}
