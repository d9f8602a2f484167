// Package translator is the entry point of the descriptor translation engine.
//
// A Translator is built once per process from a Config and runs both directions:
//   - ToYANG turns a TOSCA NFV service template into an NSD/VNFD descriptor tree.
//     One entity translator per node template, group and policy is resolved
//     through the type registry, then cross references are resolved before any
//     output is generated.
//   - ToTOSCA turns a YANG descriptor tree into a canonically ordered service
//     template.
//
// Every run returns a Result carrying the tree, the accumulated diagnostics and
// the supporting-files manifest, or the first fatal error. A Translator holds no
// per-run state and may be shared between goroutines.
package translator
