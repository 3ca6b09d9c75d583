// Package pgraph is the program graph: one append-only directed multigraph
// whose nodes are tagged variants (declarations, builtins, concrete literals,
// execution contexts, variable versions, ...) and whose edges are tagged
// structural or execution relations.
//
// Node storage is a flat slice indexed by NodeIdx, guarded by its own
// sync.RWMutex, with a second RWMutex guarding the edge/adjacency store. Go
// has no closed sum type, so a Node is any value implementing the Kind()
// method;
// pgraph restricts the set of valid implementations to the structs declared
// in this package, and typed index wrappers (ContextNode, ContractNode, ...)
// give callers kind-safe handles without a type switch at every call site.
//
// Mutation discipline:
//
//   - add_node/add_edge only ever append. The one sanctioned exception is
//     ResolveForward, which overwrites an UnresolvedData payload in place so
//     that edges recorded against the forward-declared NodeIdx stay valid
//     once the real declaration is parsed — the one exception to an
//     otherwise append-only graph.
//   - Every other node, once appended, keeps its Kind for the lifetime of
//     the graph. Typed index wrappers assert this on every dereference and
//     panic on violation — a structural bug, not a recoverable error.
package pgraph
