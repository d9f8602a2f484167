// Package match provides the name handling shared by both translation directions.
//
// Key functions:
//   - KeyMapper: bidirectional underscore/hyphen key renaming with an explicit exception table
//   - NormalizeIdent: separator- and case-insensitive form of a name
//   - Levenshtein: edit distance between strings
//   - Suggest: closest known names for an unresolved reference
package match
