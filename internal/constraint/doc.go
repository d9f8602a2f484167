// Package constraint translates input constraints between the TOSCA operator
// vocabulary and the YANG target vocabulary.
//
// The TOSCA side is a list of single-key clauses such as {greater_than: 5}.
// The YANG side is a list of single-key entries:
//   - allowedValues: [v...]
//   - range: {min, max}
//   - length: {min, max}
//   - allowedPattern: re
//
// Translate is total over the eleven TOSCA operators. Strict bounds become the
// integer successor or predecessor; a non-integer strict bound is rejected.
package constraint
