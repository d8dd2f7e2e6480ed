package log

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLevel(t *testing.T) {
	assert.Equal(t, slog.LevelInfo, Level(false, false))
	assert.Equal(t, slog.LevelDebug, Level(true, false))
	assert.Equal(t, slog.LevelWarn, Level(false, true))
	assert.Equal(t, slog.LevelWarn, Level(true, true), "quiet takes precedence")
}

func TestSetup_DefaultLevel(t *testing.T) {
	Setup(false, false, false)
	h := slog.Default().Handler()
	ctx := context.Background()
	assert.True(t, h.Enabled(ctx, slog.LevelInfo))
	assert.False(t, h.Enabled(ctx, slog.LevelDebug))
}

func TestSetup_Verbose(t *testing.T) {
	Setup(true, false, false)
	assert.True(t, slog.Default().Handler().Enabled(context.Background(), slog.LevelDebug))
}

func TestNew_Text(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false, false, false).Info("dataset loaded", "rows", 41)
	assert.Contains(t, buf.String(), "msg=\"dataset loaded\"")
	assert.Contains(t, buf.String(), "rows=41")
}

func TestNew_JSON(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false, false, true).Warn("slow render", "view", "scatter")

	var entry map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &entry))
	assert.Equal(t, "WARN", entry["level"])
	assert.Equal(t, "scatter", entry["view"])
}

func TestNew_QuietDropsInfo(t *testing.T) {
	var buf bytes.Buffer
	New(&buf, false, true, false).Info("hidden")
	assert.Empty(t, buf.String())
}
