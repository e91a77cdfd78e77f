// Package transform implements the egress half of the boundary
// data-transformation layer.
//
// Query results come out of the repository layer as dynamic trees
// (records, sequences, scalars). Before a result leaves the service,
// every storage-relative file path embedded anywhere in that tree is
// rewritten into an externally resolvable URL using a configured base.
//
// The package is built around three pieces:
//   - Value: a closed tagged variant over decoded JSON, so traversal
//     can be written as an exhaustive switch instead of reflection.
//   - Walk: a generic shape-preserving tree walker.
//   - Materializer: the URL-rewriting visitor, driven by a static
//     registry of entity fields and a naming convention that maps
//     nested record keys onto entity types.
//
// All transforms return new trees; the input is never mutated.
package transform
