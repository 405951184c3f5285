package observability

import (
	"bytes"
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLogRunObserver_Success(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogRunObserver(&buf)

	obs.ObserveRun(context.Background(), RunEvent{
		RunID:     "abc-123",
		Command:   "render dashboard",
		Duration:  1200 * time.Millisecond,
		Success:   true,
		Artifacts: []string{"dashboard.png"},
		Fields:    map[string]any{"body_count": 9},
	})

	out := buf.String()
	assert.Contains(t, out, "level=INFO")
	assert.Contains(t, out, "command_run")
	assert.Contains(t, out, "run_id=abc-123")
	assert.Contains(t, out, "duration_ms=1200")
	assert.Contains(t, out, "body_count=9")
}

func TestLogRunObserver_Error(t *testing.T) {
	var buf bytes.Buffer
	obs := NewLogRunObserver(&buf)

	obs.ObserveRun(context.Background(), RunEvent{
		RunID:   "abc-123",
		Command: "stats kepler",
		Err:     errors.New("catalog has no planets"),
	})

	out := buf.String()
	assert.Contains(t, out, "level=ERROR")
	assert.Contains(t, out, "catalog has no planets")
}

func TestNewLogRunObserver_NilWriterIsNoop(t *testing.T) {
	obs := NewLogRunObserver(nil)
	assert.IsType(t, NoopRunObserver{}, obs)
	obs.ObserveRun(context.Background(), RunEvent{Command: "version"})
}
