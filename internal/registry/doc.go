// Package registry maps source-format type names to translator constructors.
//
// A Registry is built once from an ordered list of locations. Each location
// holds definitions declaring the single type name they handle; a later
// location overrides an earlier one. Definitions are copied at construction,
// so changing a location afterwards has no effect on a built registry. Build a
// new Registry to pick up changes.
//
// The registry is read-only after New returns and is safe for concurrent use.
package registry
