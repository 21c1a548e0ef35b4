package results

import (
	"context"
	"fmt"
	"sync"

	"github.com/marrowlabs/triptych/internal/check"
)

// Sink is a channel-fed check.Recorder that drains into a Store from a
// single collector goroutine. Producers only ever touch the channel, so
// record and flush stay safe under concurrency without a shared lock on
// the write path.
type Sink struct {
	store *Store
	runID int64

	ch   chan check.Result
	done chan struct{}

	mu  sync.Mutex
	err error
}

// NewSink starts a collector writing to the given run. Close must be
// called to flush and observe write errors.
func NewSink(ctx context.Context, store *Store, runID int64) *Sink {
	s := &Sink{
		store: store,
		runID: runID,
		ch:    make(chan check.Result, 64),
		done:  make(chan struct{}),
	}
	go s.drain(ctx)
	return s
}

// Record queues one result. Safe for concurrent use; blocks only when
// the collector falls behind the channel buffer.
func (s *Sink) Record(r check.Result) {
	s.ch <- r
}

// Close stops accepting results, waits for the collector to drain, and
// returns the first write error encountered.
func (s *Sink) Close() error {
	close(s.ch)
	<-s.done

	s.mu.Lock()
	defer s.mu.Unlock()
	return s.err
}

func (s *Sink) drain(ctx context.Context) {
	defer close(s.done)
	for r := range s.ch {
		if err := s.store.WriteResult(ctx, s.runID, r); err != nil {
			s.mu.Lock()
			if s.err == nil {
				s.err = fmt.Errorf("sink: %w", err)
			}
			s.mu.Unlock()
		}
	}
}
