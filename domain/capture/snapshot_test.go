package capture

import (
	"errors"
	"image"
	"log/slog"
	"testing"
)

var discardLogger = slog.New(slog.NewTextHandler(&discardWriter{}, nil))

type discardWriter struct{}

func (d *discardWriter) Write(p []byte) (int, error) { return len(p), nil }

func TestSnapshotService_SequenceAndLatest(t *testing.T) {
	svc := NewSnapshotService(discardLogger, func() (*image.RGBA, error) {
		return image.NewRGBA(image.Rect(0, 0, 8, 8)), nil
	})

	if _, ok := svc.Latest(); ok {
		t.Fatalf("latest present before any snapshot")
	}
	first, err := svc.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	second, err := svc.Snapshot()
	if err != nil {
		t.Fatalf("snapshot: %v", err)
	}
	if first.Sequence != 1 || second.Sequence != 2 {
		t.Fatalf("sequences %d,%d want 1,2", first.Sequence, second.Sequence)
	}
	if first.ID == second.ID {
		t.Fatalf("snapshot ids not unique")
	}
	latest, ok := svc.Latest()
	if !ok || latest.Sequence != second.Sequence {
		t.Fatalf("latest = %+v, want sequence 2", latest)
	}
}

func TestSnapshotService_StatsCountFailures(t *testing.T) {
	fail := true
	svc := NewSnapshotService(discardLogger, func() (*image.RGBA, error) {
		if fail {
			return nil, errors.New("no backend")
		}
		return image.NewRGBA(image.Rect(0, 0, 4, 4)), nil
	})

	if _, err := svc.Snapshot(); err == nil {
		t.Fatalf("expected grab error")
	}
	fail = false
	if _, err := svc.Snapshot(); err != nil {
		t.Fatalf("snapshot: %v", err)
	}

	st := svc.Stats()
	if st.Captures != 1 || st.Failures != 1 {
		t.Fatalf("stats = %+v, want 1 capture, 1 failure", st)
	}
	if st.LastCapture.IsZero() {
		t.Fatalf("last capture time not recorded")
	}
}
