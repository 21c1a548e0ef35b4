// Package op defines the two operator families applied to triples and
// their composition.
//
// Both families share the single method shape Apply(Triple) Triple; the
// distinction is a capability marker, not behavior the type system could
// infer. Structural operators edit structure or value (append an event,
// mutate adjacency); normalizing operators perform idempotent-leaning
// maintenance (dedup, sort, repair, compaction, metadata commit).
//
// Composition is ordinary function composition and deliberately
// order-sensitive: compose(f, g) applies g first. Grouping of composed
// operators is interchangeable only when each operator's state output
// depends solely on the state it was handed (see Compose docs); callers
// must not assume associativity beyond that.
package op
