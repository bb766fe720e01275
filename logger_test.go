package gosiegeom

import (
	"bytes"
	"context"
	"log/slog"
	"testing"

	"github.com/go-gl/mathgl/mgl64"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoggerDefaultIsSilent(t *testing.T) {
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}

func TestSetLogger(t *testing.T) {
	var buf bytes.Buffer
	SetLogger(slog.New(slog.NewTextHandler(&buf, &slog.HandlerOptions{Level: slog.LevelDebug})))
	defer SetLogger(nil)

	_, err := NewDelaunay2([]mgl64.Vec2{{0, 0}, {1, 0}, {0, 1}, {1, 1}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "delaunay: triangulated")
	assert.Contains(t, buf.String(), "triangles=2")

	buf.Reset()
	_, err = MinAreaCircle2([]mgl64.Vec2{{0, 0}, {1, 1}, {3, 3}})
	require.NoError(t, err)
	assert.Contains(t, buf.String(), "min area circle")

	SetLogger(nil)
	assert.False(t, Logger().Enabled(context.Background(), slog.LevelError))
}
