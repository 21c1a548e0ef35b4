package check

import "sync"

// Result is one property outcome.
type Result struct {
	Name    string
	Passed  bool
	Details string
}

// Recorder consumes property results. Implementations must be safe for
// concurrent use; the suite itself records sequentially but sinks may be
// shared with benchmark callers.
type Recorder interface {
	Record(r Result)
}

// RecorderFunc adapts a function to the Recorder interface.
type RecorderFunc func(Result)

// Record calls f(r).
func (f RecorderFunc) Record(r Result) { f(r) }

// MemoryRecorder collects results in memory. Zero value is ready to use.
type MemoryRecorder struct {
	mu      sync.Mutex
	results []Result
}

// Record appends the result.
func (m *MemoryRecorder) Record(r Result) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.results = append(m.results, r)
}

// Results returns a copy of everything recorded so far.
func (m *MemoryRecorder) Results() []Result {
	m.mu.Lock()
	defer m.mu.Unlock()
	out := make([]Result, len(m.results))
	copy(out, m.results)
	return out
}

// Failed returns the number of failing results.
func (m *MemoryRecorder) Failed() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	var n int
	for _, r := range m.results {
		if !r.Passed {
			n++
		}
	}
	return n
}
