// Package compare computes structural differences between descriptor trees.
//
// Both trees are normalized before comparison:
//   - maps lose their key order
//   - numbers become float64, so 2 and 2.0 are equal
//   - lists under an orderless key are sorted by their canonical JSON form
//
// All other lists are compared position by position. The result is a Report,
// never an error: callers decide how severe a difference is.
package compare
