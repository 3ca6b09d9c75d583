package gref

import "fmt"

// NodeIdx is a stable, insertion-order index into the program graph's node
// store. Indices are never reused and never invalidated: pgraph.Graph is
// append-only, nodes are created and never deleted.
type NodeIdx uint64

// String renders the index the way a debugger or error message would print
// it, e.g. "n#42".
func (n NodeIdx) String() string {
	return fmt.Sprintf("n#%d", uint64(n))
}

// Loc is a source span, carried on graph nodes and edges that originate from
// a parsed expression or statement so that diagnostics can point back at the
// source text. The concrete file/offset encoding is owned by the external
// parser (out of scope for this core); Loc only needs to be comparable and
// zero-valuable.
type Loc struct {
	File  int // source-unit file number, -1 for implicit/synthetic locations
	Start int // byte offset of the span start
	End   int // byte offset of the span end
}

// Implicit is the Loc used for nodes synthesized by the evaluator itself
// (fresh concrete constants, precondition booleans) rather than parsed from
// source text.
var Implicit = Loc{File: -1, Start: -1, End: -1}

// IsImplicit reports whether l was synthesized rather than parsed.
func (l Loc) IsImplicit() bool { return l.File < 0 }

func (l Loc) String() string {
	if l.IsImplicit() {
		return "<implicit>"
	}
	return fmt.Sprintf("%d:%d-%d", l.File, l.Start, l.End)
}
