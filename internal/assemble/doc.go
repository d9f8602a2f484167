// Package assemble puts service templates into canonical order and
// serializes them.
//
// Ordering rules:
//   - top-level sections and topology sections follow fixed lists
//   - type catalogs are sorted by type name
//   - node templates, groups and policies keep their order
//   - each entity follows the priority list in EntityOrder
//   - property, capability, artifact and interface maps are sorted recursively
//
// Keys outside a priority list are appended in lexical order. Every such key
// is logged and recorded as an info diagnostic.
package assemble
