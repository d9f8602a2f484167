// Package tosca models the TOSCA NFV service templates the translator reads
// and writes.
//
// Key types and functions:
//   - ServiceTemplate, TopologyTemplate, NodeTemplate, Group, Policy: the parsed document
//   - Ordered: a name-keyed section that keeps document order
//   - Parse / LoadFile / FromTree: decoding with required-field validation
//   - CheckDefinitionsVersion: tosca_definitions_version support check
//   - Ancestors / DerivesFrom: type inheritance through the template's own
//     type catalogs and the normative NFV types
package tosca
