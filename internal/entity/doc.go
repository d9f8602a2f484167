// Package entity holds the per-entity translators of the TOSCA -> YANG direction.
//
// One Translator is created per node template, group and policy of a service
// template. Each one:
//   - maps its own properties in HandleProperties (key renaming, coercions)
//   - declares the CrossReferences it needs resolved against its siblings
//   - appends its translated record to the shared Output in GenerateOutput
//
// A Unit holds the translators of one run in insertion order. Builtin returns
// the registry location with the constructors for the orchestrator's types.
package entity
