// Package totosca translates YANG NSD/VNFD descriptor trees into TOSCA NFV
// service templates.
//
// A Builder walks the single NSD of a descriptor tree. Header leaves become
// template metadata; every list of the NSD is dispatched by name to a Handler
// looked up in a handler registry:
//   - input-parameter: topology inputs, constraints mapped back to TOSCA clauses
//   - constituent-vnfd: one VNF node per member, its VDU nodes and a
//     VNFComponents group
//   - vld: one virtual link node per entry
//   - service-primitive: one ns_service_primitives policy
//   - scaling-group-descriptor: one scaling policy per group
//   - initial-config-primitive: one policy per primitive
//
// Connection point nodes are emitted last, once every VDU interface and VLD
// reference to them is known. Lists without a handler are reported as
// warnings and not translated.
package totosca
