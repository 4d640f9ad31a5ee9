package capture

import (
	"image"
	"log/slog"
	"sync/atomic"
	"time"

	"github.com/google/uuid"
)

// Snapshot is one captured still plus acquisition metadata.
type Snapshot struct {
	ID         uuid.UUID
	Image      *image.RGBA
	CapturedAt time.Time
	Sequence   uint64
}

// Stats summarises snapshot acquisition for instrumentation.
type Stats struct {
	Captures       uint64
	Failures       uint64
	AvgCapture     time.Duration
	LastCapture    time.Time
	LatestSequence uint64
}

// Grabber produces a raw frame. The default is the screen; tests substitute
// a synthetic source.
type Grabber func() (*image.RGBA, error)

// SnapshotService acquires one still per request and exposes the most recent
// snapshot alongside counters. Use NewSnapshotService to construct one.
type SnapshotService interface {
	Snapshot() (Snapshot, error)
	Latest() (Snapshot, bool)
	Stats() Stats
}

type snapshotService struct {
	grab   Grabber
	logger *slog.Logger

	latest       atomic.Pointer[Snapshot]
	captures     atomic.Uint64
	failures     atomic.Uint64
	captureNanos atomic.Uint64
	sequence     atomic.Uint64
}

// NewSnapshotService constructs a snapshot service over the given grabber;
// a nil grabber uses the screen.
func NewSnapshotService(logger *slog.Logger, grab Grabber) SnapshotService {
	if grab == nil {
		grab = Grab
	}
	return &snapshotService{grab: grab, logger: logger}
}

func (s *snapshotService) Snapshot() (Snapshot, error) {
	start := time.Now()
	img, err := s.grab()
	if err != nil {
		s.failures.Add(1)
		if s.logger != nil {
			s.logger.Error("snapshot failed", "error", err)
		}
		return Snapshot{}, err
	}
	elapsed := time.Since(start)
	s.captureNanos.Add(uint64(elapsed.Nanoseconds()))
	s.captures.Add(1)
	snap := Snapshot{
		ID:         uuid.New(),
		Image:      img,
		CapturedAt: time.Now(),
		Sequence:   s.sequence.Add(1),
	}
	s.latest.Store(&snap)
	if s.logger != nil {
		b := img.Bounds()
		s.logger.Debug("snapshot acquired",
			"id", snap.ID.String(),
			"seq", snap.Sequence,
			"w", b.Dx(),
			"h", b.Dy(),
			"took", elapsed,
		)
	}
	return snap, nil
}

func (s *snapshotService) Latest() (Snapshot, bool) {
	snap := s.latest.Load()
	if snap == nil {
		return Snapshot{}, false
	}
	return *snap, true
}

func (s *snapshotService) Stats() Stats {
	captures := s.captures.Load()
	total := s.captureNanos.Load()
	var avg time.Duration
	if captures > 0 {
		avg = time.Duration(total / captures)
	}
	st := Stats{
		Captures:       captures,
		Failures:       s.failures.Load(),
		AvgCapture:     avg,
		LatestSequence: s.sequence.Load(),
	}
	if snap, ok := s.Latest(); ok {
		st.LastCapture = snap.CapturedAt
	}
	return st
}
