// Package triple defines the (value, props, state) record that every
// operator in this repository consumes and produces.
//
// This package contains the foundational types only. All other internal
// packages import triple; triple imports nothing internal. This keeps
// the object model free of circular dependencies.
//
// Key design constraints:
//   - Triples are immutable: operators allocate a new Triple per
//     application and never mutate the one they were given
//   - Props is never nil: constructors normalize nil to an empty map
//   - Props values are a sealed variant type (String, Int, Bool, Float,
//     Time, Strings) - no open interface{} values at rest
//   - Equality is structural, never referential
package triple
