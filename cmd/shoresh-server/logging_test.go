// ABOUTME: Tests for logger setup and the colorized slog handler
// ABOUTME: Covers format/level selection, default installation, and group-qualified keys

package main

import (
	"bytes"
	"context"
	"log/slog"
	"strings"
	"testing"
	"time"

	"github.com/fatih/color"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/shoresh-dev/shoresh/internal/config"
)

func TestSetupLogger_FormatSelectsHandler(t *testing.T) {
	logger := setupLogger(config.LoggingConfig{Format: "json"})
	_, ok := logger.Handler().(*slog.JSONHandler)
	assert.True(t, ok, "json format should build a JSON handler")

	logger = setupLogger(config.LoggingConfig{Format: "text"})
	_, ok = logger.Handler().(*colorHandler)
	assert.True(t, ok, "text format should build the color handler")
}

func TestSetupLogger_LevelGovernsInstalledDefault(t *testing.T) {
	restore := slog.Default()
	t.Cleanup(func() { slog.SetDefault(restore) })

	ctx := context.Background()

	// Components take slog.Default at construction, so the configured
	// level has to reach them through the installed default.
	slog.SetDefault(setupLogger(config.LoggingConfig{Level: "debug", Format: "json"}))
	assert.True(t, slog.Default().Enabled(ctx, slog.LevelDebug))

	slog.SetDefault(setupLogger(config.LoggingConfig{Level: "error", Format: "json"}))
	assert.False(t, slog.Default().Enabled(ctx, slog.LevelInfo))
}

func newTestColorHandler(buf *bytes.Buffer, level slog.Level) *colorHandler {
	return &colorHandler{out: buf, level: level}
}

func TestColorHandler_GroupsQualifyKeys(t *testing.T) {
	restore := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = restore })

	var buf bytes.Buffer
	h := newTestColorHandler(&buf, slog.LevelInfo)

	logger := slog.New(h).WithGroup("http").With("component", "api")
	logger.Info("request", "status", 200)

	out := buf.String()
	assert.Contains(t, out, "http.component=api")
	assert.Contains(t, out, "http.status=200")
	assert.Contains(t, out, "INF request")
}

func TestColorHandler_LevelFilter(t *testing.T) {
	restore := color.NoColor
	color.NoColor = true
	t.Cleanup(func() { color.NoColor = restore })

	var buf bytes.Buffer
	h := newTestColorHandler(&buf, slog.LevelWarn)

	require.False(t, h.Enabled(context.Background(), slog.LevelInfo))
	require.True(t, h.Enabled(context.Background(), slog.LevelWarn))

	rec := slog.NewRecord(time.Now(), slog.LevelWarn, "slow query", 0)
	require.NoError(t, h.Handle(context.Background(), rec))
	assert.True(t, strings.Contains(buf.String(), "WRN slow query"))
}
