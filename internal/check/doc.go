// Package check runs the algebra's property suite: boolean predicates
// over hand-built fixtures plus a seeded sampler over randomized
// aggregates. Each property records a named pass/fail result to a
// Recorder; a panicking operator is reported as a local failure, never
// propagated to the caller.
package check
