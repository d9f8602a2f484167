// Package resolve wires translated entities together.
//
// Resolution runs once per unit, after every entity has handled its
// properties and before any output is generated. It walks the entities in
// insertion order and, for each CrossReference, appends records to the
// target's property set:
//   - hosts: the compute record into its VNF's vdu list
//   - virtualBinding: a connection-point into the VNF and an external-interface into the compute node
//   - virtualLink: a vnfd-connection-point-ref into the network
//   - scaling member and config action: vnfd-member and scaling-config-action into the group
package resolve
