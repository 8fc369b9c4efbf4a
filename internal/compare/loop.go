package compare

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/dbsmedya/redcompare/internal/logger"
)

// State names the phases of the refresh loop.
type State int

const (
	StateIdle State = iota
	StateScanning
	StateDiffing
	StateRendering
	StateStopped
)

func (s State) String() string {
	switch s {
	case StateIdle:
		return "idle"
	case StateScanning:
		return "scanning"
	case StateDiffing:
		return "diffing"
	case StateRendering:
		return "rendering"
	case StateStopped:
		return "stopped"
	default:
		return "unknown"
	}
}

// SnapshotSource produces keyspace snapshots. Scanner is the production
// implementation.
type SnapshotSource interface {
	Scan(ctx context.Context) (*Snapshot, error)
	Name() string
}

// Sink receives comparison results for display. Render replaces the whole
// view; Status annotates it with a transient message without destroying the
// previous render.
type Sink interface {
	Render(diff *DiffResult, source, destination *Snapshot, at time.Time)
	Status(message string)
}

// Loop orchestrates repeated scan+diff+render cycles on a fixed interval.
//
// A failed cycle skips the render (the previous view stays on screen) and
// the loop proceeds to the next tick; only maxFailures consecutive failed
// cycles stop the loop. Cancellation is observed at tick boundaries, so an
// in-flight pass finishes before the loop stops.
type Loop struct {
	source      SnapshotSource
	destination SnapshotSource
	sink        Sink
	interval    time.Duration
	maxFailures int
	log         *logger.Logger

	state    State
	cycles   int
	failures int // consecutive failed cycles
}

// NewLoop creates a refresh loop over the two snapshot sources.
func NewLoop(source, destination SnapshotSource, sink Sink, interval time.Duration, maxFailures int, log *logger.Logger) *Loop {
	if log == nil {
		log = logger.NewDefault()
	}
	if interval <= 0 {
		interval = 5 * time.Second
	}
	if maxFailures <= 0 {
		maxFailures = 3
	}
	return &Loop{
		source:      source,
		destination: destination,
		sink:        sink,
		interval:    interval,
		maxFailures: maxFailures,
		log:         log,
		state:       StateIdle,
	}
}

// State returns the loop's current phase.
func (l *Loop) State() State {
	return l.state
}

// Cycles returns how many cycles have started.
func (l *Loop) Cycles() int {
	return l.cycles
}

// Run drives the loop until the context is cancelled or the consecutive
// failure ceiling is reached. Cancellation returns nil; sustained failure
// returns the last cycle error.
func (l *Loop) Run(ctx context.Context) error {
	for {
		select {
		case <-ctx.Done():
			l.state = StateStopped
			l.log.Infow("Comparison loop stopped", "cycles", l.cycles)
			return nil
		default:
		}

		l.cycles++
		if err := l.runCycle(ctx); err != nil {
			l.failures++
			l.log.Warnw("Comparison cycle failed",
				"cycle", l.cycles,
				"consecutive_failures", l.failures,
				"error", err,
			)
			l.sink.Status(fmt.Sprintf("cycle %d failed (%d/%d consecutive): %v",
				l.cycles, l.failures, l.maxFailures, err))

			if l.failures >= l.maxFailures {
				l.state = StateStopped
				return fmt.Errorf("stopping after %d consecutive failed cycles: %w", l.failures, err)
			}
		} else {
			l.failures = 0
		}

		l.state = StateIdle
		select {
		case <-ctx.Done():
			l.state = StateStopped
			l.log.Infow("Comparison loop stopped", "cycles", l.cycles)
			return nil
		case <-time.After(l.interval):
		}
	}
}

// runCycle performs one scan+diff+render pass. A failure on either side
// aborts the cycle before the differ runs; no partial result is rendered.
func (l *Loop) runCycle(ctx context.Context) error {
	l.state = StateScanning
	src, dst, err := l.scanBoth(ctx)
	if err != nil {
		return err
	}

	l.state = StateDiffing
	diff := Diff(src, dst)

	l.state = StateRendering
	l.sink.Render(diff, src, dst, time.Now())

	return nil
}

// scanBoth scans the two keyspaces concurrently. The scans share no mutable
// state; each accumulates into its own counters and hands back an immutable
// snapshot.
func (l *Loop) scanBoth(ctx context.Context) (*Snapshot, *Snapshot, error) {
	var (
		wg       sync.WaitGroup
		src, dst *Snapshot
		srcErr   error
		dstErr   error
	)

	wg.Add(2)
	go func() {
		defer wg.Done()
		src, srcErr = l.source.Scan(ctx)
	}()
	go func() {
		defer wg.Done()
		dst, dstErr = l.destination.Scan(ctx)
	}()
	wg.Wait()

	if srcErr != nil {
		return nil, nil, fmt.Errorf("%s scan: %w", l.source.Name(), srcErr)
	}
	if dstErr != nil {
		return nil, nil, fmt.Errorf("%s scan: %w", l.destination.Name(), dstErr)
	}

	return src, dst, nil
}
