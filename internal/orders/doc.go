// Package orders instantiates the operator algebra over an event-sourced
// order aggregate: V is the materialized order projection, S the
// append-only event log.
//
// The log is append-biased and monotonically versioned. Desired (not
// everywhere enforced) invariant: versions are contiguous integers from 1,
// strictly increasing, no duplicates, last version == CurrentVersion.
//
// Two deliberate asymmetries are preserved rather than fixed:
//   - Append performs no id-based deduplication; a reused event id
//     produces a second log entry under a fresh version. Only Normalize
//     collapses it later ("dirty write, clean up later").
//   - Commit trims the log but not the version counter, so a compacted
//     log can start at a version > 1 and Validate's contiguity check will
//     fail against it. Contiguity is a property of uncompacted logs.
//
// Concurrency: appends are single-writer by assumption. Version is a
// sequence counter, not an optimistic-concurrency token; callers needing
// multi-writer safety must serialize externally per aggregate id.
package orders
