// Package fractly provides a resource transformation layer: it converts
// domain values into serializable field trees with support for nested
// includes and excludes, pluggable serialization envelopes, pagination and
// cursors. Configuration is collected through a fluent Builder and executed
// by a Manager producing a Scope with array and JSON projections.
package fractly
