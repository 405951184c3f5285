package nbody

import (
	"bufio"
	"encoding/json"
	"fmt"
	"os"
)

// SnapshotSink receives snapshots as an integration produces them, so
// long runs stream to disk instead of holding everything in memory.
type SnapshotSink interface {
	OnStart(totalSteps int, snapEvery int) error
	OnSnapshot(tDays float64, bodies []Body) error
	OnEnd(finalTDays float64) error
	Close() error
}

// JSONLSnapshotWriter streams snapshots to a JSON-lines file, one
// snapshot per line.
type JSONLSnapshotWriter struct {
	f  *os.File
	bw *bufio.Writer
}

// NewJSONLSnapshotWriter creates the output file, truncating any
// existing content.
func NewJSONLSnapshotWriter(path string) (*JSONLSnapshotWriter, error) {
	f, err := os.Create(path)
	if err != nil {
		return nil, fmt.Errorf("creating snapshot file: %w", err)
	}
	return &JSONLSnapshotWriter{f: f, bw: bufio.NewWriter(f)}, nil
}

func (w *JSONLSnapshotWriter) OnStart(totalSteps int, snapEvery int) error { return nil }

func (w *JSONLSnapshotWriter) OnSnapshot(tDays float64, bodies []Body) error {
	rec := Snapshot{TimeDays: tDays, Bodies: bodies}
	b, err := json.Marshal(rec)
	if err != nil {
		return err
	}
	if _, err := w.bw.Write(b); err != nil {
		return err
	}
	return w.bw.WriteByte('\n')
}

func (w *JSONLSnapshotWriter) OnEnd(finalTDays float64) error { return w.bw.Flush() }

func (w *JSONLSnapshotWriter) Close() error {
	if w.bw != nil {
		_ = w.bw.Flush()
	}
	if w.f != nil {
		return w.f.Close()
	}
	return nil
}
