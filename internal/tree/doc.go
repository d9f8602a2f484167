// Package tree provides the in-memory descriptor tree shared by both
// translation directions.
//
// A descriptor is a tree of three kinds of values:
//   - *Map: string-keyed containers that keep insertion order
//   - []any: ordered lists
//   - scalars: string, int, float64, bool and nil
//
// Key types and functions:
//   - Map: ordered container with read accessors (Get, Has, GetString, GetMap, Maps)
//   - FromNode / Decode: order-preserving decoding from YAML (and JSON) documents
//   - EncodeOptions: conversion back to yaml.Node, optionally with sorted keys and
//     unquoted numeric-looking strings
//   - Plain: conversion to map[string]any for callers that do not care about order
package tree
