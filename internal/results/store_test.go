package results

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/marrowlabs/triptych/internal/check"
)

func testStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "results.db")
	s, err := Open(path, WithNow(func() time.Time {
		return time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC)
	}))
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen_CreatesNewDatabase(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")

	s, err := Open(path)
	if err != nil {
		t.Fatalf("Open() failed: %v", err)
	}
	defer s.Close()

	if _, err := os.Stat(path); os.IsNotExist(err) {
		t.Error("database file was not created")
	}
}

func TestOpen_Idempotent(t *testing.T) {
	path := filepath.Join(t.TempDir(), "results.db")

	for i := 0; i < 3; i++ {
		s, err := Open(path)
		if err != nil {
			t.Fatalf("Open() iteration %d failed: %v", i, err)
		}
		s.Close()
	}

	s, err := Open(path)
	if err != nil {
		t.Fatalf("final Open() failed: %v", err)
	}
	defer s.Close()

	for _, table := range []string{"runs", "results"} {
		var name string
		err := s.db.QueryRow(
			"SELECT name FROM sqlite_master WHERE type='table' AND name=?",
			table,
		).Scan(&name)
		if err != nil {
			t.Errorf("table %q not found after idempotent opens: %v", table, err)
		}
	}
}

func TestOpen_InvalidPath(t *testing.T) {
	_, err := Open("/nonexistent/dir/results.db")
	if err == nil {
		t.Error("expected error for invalid path, got nil")
	}
}

func TestClose_NilDB(t *testing.T) {
	s := &Store{db: nil}
	if err := s.Close(); err != nil {
		t.Errorf("Close() on nil db should not error: %v", err)
	}
}

func TestWriteResult_RoundTrip(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	runID, err := s.BeginRun(ctx, 42, "check")
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}

	in := []check.Result{
		{Name: "closure", Passed: true},
		{Name: "identity_laws", Passed: false, Details: "identity(x) != x"},
	}
	for _, r := range in {
		if err := s.WriteResult(ctx, runID, r); err != nil {
			t.Fatalf("WriteResult(%s) failed: %v", r.Name, err)
		}
	}

	got, err := s.Results(ctx, runID)
	if err != nil {
		t.Fatalf("Results() failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("got %d results, want 2", len(got))
	}

	// Deterministic ordering: name ascending
	if got[0].Name != "closure" || got[1].Name != "identity_laws" {
		t.Errorf("unexpected order: %q, %q", got[0].Name, got[1].Name)
	}
	if !got[0].Passed {
		t.Error("closure should be passed")
	}
	if got[1].Passed {
		t.Error("identity_laws should be failed")
	}
	if got[1].Details != "identity(x) != x" {
		t.Errorf("details = %q", got[1].Details)
	}
}

func TestWriteResult_DuplicateNameIgnored(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	runID, err := s.BeginRun(ctx, 1, "check")
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}

	r := check.Result{Name: "closure", Passed: true}
	if err := s.WriteResult(ctx, runID, r); err != nil {
		t.Fatalf("first WriteResult() failed: %v", err)
	}
	// Second write with same (run, name) is a silent no-op
	r.Passed = false
	if err := s.WriteResult(ctx, runID, r); err != nil {
		t.Fatalf("second WriteResult() failed: %v", err)
	}

	got, err := s.Results(ctx, runID)
	if err != nil {
		t.Fatalf("Results() failed: %v", err)
	}
	if len(got) != 1 {
		t.Fatalf("got %d results, want 1", len(got))
	}
	if !got[0].Passed {
		t.Error("first write should win")
	}
}

func TestResults_EmptyRunReturnsEmptySlice(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	runID, err := s.BeginRun(ctx, 0, "empty")
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}

	got, err := s.Results(ctx, runID)
	if err != nil {
		t.Fatalf("Results() failed: %v", err)
	}
	if got == nil {
		t.Error("Results() returned nil, want empty slice")
	}
	if len(got) != 0 {
		t.Errorf("got %d results, want 0", len(got))
	}
}

func TestRuns_SummariesNewestFirst(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	first, err := s.BeginRun(ctx, 1, "check")
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}
	second, err := s.BeginRun(ctx, 2, "bench")
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}

	if err := s.WriteResult(ctx, first, check.Result{Name: "a", Passed: true}); err != nil {
		t.Fatalf("WriteResult() failed: %v", err)
	}
	if err := s.WriteResult(ctx, first, check.Result{Name: "b", Passed: false}); err != nil {
		t.Fatalf("WriteResult() failed: %v", err)
	}

	runs, err := s.Runs(ctx, 0)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != 2 {
		t.Fatalf("got %d runs, want 2", len(runs))
	}

	if runs[0].RunID != second || runs[1].RunID != first {
		t.Errorf("runs not newest first: %d, %d", runs[0].RunID, runs[1].RunID)
	}
	if runs[0].Label != "bench" || runs[0].Seed != 2 {
		t.Errorf("unexpected run summary: %+v", runs[0])
	}
	if runs[1].Total != 2 || runs[1].Failed != 1 {
		t.Errorf("counts = %d/%d, want 2 total 1 failed", runs[1].Total, runs[1].Failed)
	}
}

func TestRuns_LimitApplies(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	for i := int64(0); i < 5; i++ {
		if _, err := s.BeginRun(ctx, i, "check"); err != nil {
			t.Fatalf("BeginRun() failed: %v", err)
		}
	}

	runs, err := s.Runs(ctx, 3)
	if err != nil {
		t.Fatalf("Runs() failed: %v", err)
	}
	if len(runs) != 3 {
		t.Errorf("got %d runs, want 3", len(runs))
	}
}

func TestSink_DrainsConcurrentProducers(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	runID, err := s.BeginRun(ctx, 7, "check")
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}

	sink := NewSink(ctx, s, runID)

	const producers = 8
	var wg sync.WaitGroup
	wg.Add(producers)
	for p := 0; p < producers; p++ {
		go func(p int) {
			defer wg.Done()
			sink.Record(check.Result{
				Name:   string(rune('a' + p)),
				Passed: p%2 == 0,
			})
		}(p)
	}
	wg.Wait()

	if err := sink.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	got, err := s.Results(ctx, runID)
	if err != nil {
		t.Fatalf("Results() failed: %v", err)
	}
	if len(got) != producers {
		t.Errorf("got %d results, want %d", len(got), producers)
	}
}

func TestSink_CloseIsOrderedAfterDrain(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	runID, err := s.BeginRun(ctx, 9, "check")
	if err != nil {
		t.Fatalf("BeginRun() failed: %v", err)
	}

	sink := NewSink(ctx, s, runID)
	for i := 0; i < 100; i++ {
		sink.Record(check.Result{Name: string(rune('a'+i%26)) + string(rune('0'+i/26)), Passed: true})
	}
	if err := sink.Close(); err != nil {
		t.Fatalf("Close() failed: %v", err)
	}

	got, err := s.Results(ctx, runID)
	if err != nil {
		t.Fatalf("Results() failed: %v", err)
	}
	if len(got) != 100 {
		t.Errorf("got %d results after close, want 100", len(got))
	}
}
