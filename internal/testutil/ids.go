package testutil

import (
	"fmt"
	"sync"
)

// SequentialIDGenerator hands out predictable event ids ("evt-001",
// "evt-002", ...) for deterministic scenario execution and golden
// comparison. Production code uses orders.NewEventID (UUIDv7) instead.
//
// Thread-safety: safe for concurrent use via internal mutex.
type SequentialIDGenerator struct {
	mu     sync.Mutex
	prefix string
	n      int
}

// NewSequentialIDGenerator creates a generator with the given prefix.
// An empty prefix defaults to "evt".
func NewSequentialIDGenerator(prefix string) *SequentialIDGenerator {
	if prefix == "" {
		prefix = "evt"
	}
	return &SequentialIDGenerator{prefix: prefix}
}

// Next returns the next id in sequence.
func (g *SequentialIDGenerator) Next() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n++
	return fmt.Sprintf("%s-%03d", g.prefix, g.n)
}

// Reset rewinds the sequence so the next id is "<prefix>-001" again.
func (g *SequentialIDGenerator) Reset() {
	g.mu.Lock()
	defer g.mu.Unlock()
	g.n = 0
}
