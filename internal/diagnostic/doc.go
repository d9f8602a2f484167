// Package diagnostic provides the error taxonomy of the translator and the
// non-fatal warnings collected during a translation run.
//
// Key capabilities:
//   - Typed fatal errors (registry load, validation, unsupported constraint, internal)
//     that always name the offending entity and its type
//   - Accumulated warnings and infos that never abort a run
//   - Suggestions attached to unresolved names
package diagnostic
