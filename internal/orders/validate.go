package orders

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/marrowlabs/triptych/internal/op"
	"github.com/marrowlabs/triptych/internal/triple"
)

// Validate is the normalizing operator that checks log consistency and,
// on any failure, repairs in the same application. Checks run in order:
//
//  1. contiguity: the event at 0-based position i must carry version i+1
//  2. duplicate versions anywhere in the log
//  3. the last event's version must equal CurrentVersion
//
// A passing log is reported under validationResult=PASS and passes
// through otherwise unchanged. A failing log gets validationResult=FAIL,
// the error list, and an unconditional best-effort repair: dedup by
// version (first occurrence wins), re-sort ascending, and reset
// CurrentVersion to the last retained version (0 when empty). Violations
// are diagnostics, never errors thrown to the caller.
type Validate struct {
	op.NormalizingTag
}

// NewValidate builds a Validate operator.
func NewValidate() Validate {
	return Validate{}
}

// Apply checks the log and repairs it when any check fails.
func (Validate) Apply(t Aggregate) Aggregate {
	log := t.State()

	var errs []string
	for i, ev := range log.Events {
		if want := int64(i + 1); ev.Version() != want {
			errs = append(errs, fmt.Sprintf("version gap at position %d: got %d, want %d", i, ev.Version(), want))
		}
	}

	seen := make(map[int64]bool, len(log.Events))
	for _, ev := range log.Events {
		if seen[ev.Version()] {
			errs = append(errs, fmt.Sprintf("duplicate version %d", ev.Version()))
		}
		seen[ev.Version()] = true
	}

	if last, ok := log.Last(); ok && last.Version() != log.CurrentVersion {
		errs = append(errs, fmt.Sprintf("last event version %d does not match current version %d", last.Version(), log.CurrentVersion))
	}

	if len(errs) == 0 {
		props := t.Props().Clone()
		props[PropValidationResult] = triple.String(ValidationPass)
		return triple.New(t.Value(), props, EventLog{
			Events:         slices.Clone(log.Events),
			CurrentVersion: log.CurrentVersion,
			Replaying:      log.Replaying,
		})
	}

	repaired := repairLog(log)

	props := t.Props().Clone()
	props[PropValidationResult] = triple.String(ValidationFail)
	props[PropValidationErrors] = triple.Strings(errs)

	return triple.New(t.Value(), props, repaired)
}

// repairLog deduplicates by version (first occurrence wins), re-sorts
// ascending, and re-bases CurrentVersion on the last retained event.
func repairLog(log EventLog) EventLog {
	seen := make(map[int64]bool, len(log.Events))
	kept := make([]Event, 0, len(log.Events))
	for _, ev := range log.Events {
		if seen[ev.Version()] {
			continue
		}
		seen[ev.Version()] = true
		kept = append(kept, ev)
	}

	slices.SortStableFunc(kept, func(a, b Event) int {
		return cmp.Compare(a.Version(), b.Version())
	})

	var current int64
	if len(kept) > 0 {
		current = kept[len(kept)-1].Version()
	}

	return EventLog{
		Events:         kept,
		CurrentVersion: current,
		Replaying:      log.Replaying,
	}
}
