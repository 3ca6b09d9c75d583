// Package gref holds the identifier and source-location primitives shared
// across solsym's packages: NodeIdx (a stable, insertion-order index into the
// program graph) and Loc (a source span).
//
// These two types are split out of pgraph into their own leaf package for one
// reason: srange's range-algebra (Elem, SolcRange) needs to name graph nodes
// (Elem's Dynamic variant carries a NodeIdx) but pgraph's node payloads need
// to carry ranges (a ContextVar's type carries a SolcRange). Without a shared
// leaf package for NodeIdx, those two packages would import each other.
package gref
