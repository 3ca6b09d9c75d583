package pgraph

import "github.com/solgraph/solsym/gref"

// Typed index wrappers give callers a kind-safe handle over a raw NodeIdx.
// Each wrapper's accessor asserts the underlying node's Kind on every
// dereference and panics on mismatch: a wrong-kind handle means the graph
// was built incorrectly, not that the caller supplied bad input.

// ContextNode wraps a NodeIdx known to hold a *ContextData. Unlike every
// other node kind, ContextData is stored by pointer: a context's tmp
// counter, dependency set, and fork/kill flags mutate in place after
// creation as the evaluator runs, so Data returns the graph's own pointer
// rather than a copy.
type ContextNode gref.NodeIdx

// Idx returns the underlying NodeIdx.
func (c ContextNode) Idx() gref.NodeIdx { return gref.NodeIdx(c) }

// Data dereferences the node and panics if it is not a *ContextData.
func (c ContextNode) Data(g *Graph) *ContextData {
	n := mustNode(g, gref.NodeIdx(c), KindContext)
	d, ok := n.(*ContextData)
	if !ok {
		panic("pgraph: Context node was not stored by pointer")
	}

	return d
}

// ContextVarNode wraps a NodeIdx known to hold ContextVarData.
type ContextVarNode gref.NodeIdx

func (c ContextVarNode) Idx() gref.NodeIdx { return gref.NodeIdx(c) }

func (c ContextVarNode) Data(g *Graph) *ContextVarData {
	n := mustNode(g, gref.NodeIdx(c), KindContextVar)
	d := n.(ContextVarData)

	return &d
}

// ContractNode wraps a NodeIdx known to hold ContractData.
type ContractNode gref.NodeIdx

func (c ContractNode) Idx() gref.NodeIdx { return gref.NodeIdx(c) }

func (c ContractNode) Data(g *Graph) *ContractData {
	n := mustNode(g, gref.NodeIdx(c), KindContract)
	d := n.(ContractData)

	return &d
}

// FunctionNode wraps a NodeIdx known to hold FunctionData.
type FunctionNode gref.NodeIdx

func (c FunctionNode) Idx() gref.NodeIdx { return gref.NodeIdx(c) }

func (c FunctionNode) Data(g *Graph) *FunctionData {
	n := mustNode(g, gref.NodeIdx(c), KindFunction)
	d := n.(FunctionData)

	return &d
}

// ConcreteNode wraps a NodeIdx known to hold ConcreteData.
type ConcreteNode gref.NodeIdx

func (c ConcreteNode) Idx() gref.NodeIdx { return gref.NodeIdx(c) }

func (c ConcreteNode) Data(g *Graph) *ConcreteData {
	n := mustNode(g, gref.NodeIdx(c), KindConcrete)
	d := n.(ConcreteData)

	return &d
}

// BuiltInNode wraps a NodeIdx known to hold BuiltinData.
type BuiltInNode gref.NodeIdx

func (c BuiltInNode) Idx() gref.NodeIdx { return gref.NodeIdx(c) }

func (c BuiltInNode) Data(g *Graph) *BuiltinData {
	n := mustNode(g, gref.NodeIdx(c), KindBuiltin)
	d := n.(BuiltinData)

	return &d
}

// VarNode wraps a NodeIdx known to hold VarData.
type VarNode gref.NodeIdx

func (c VarNode) Idx() gref.NodeIdx { return gref.NodeIdx(c) }

func (c VarNode) Data(g *Graph) *VarData {
	n := mustNode(g, gref.NodeIdx(c), KindVar)
	d := n.(VarData)

	return &d
}

// MsgNode wraps a NodeIdx known to hold MsgData.
type MsgNode gref.NodeIdx

func (c MsgNode) Idx() gref.NodeIdx { return gref.NodeIdx(c) }

// BlockNode wraps a NodeIdx known to hold BlockData.
type BlockNode gref.NodeIdx

func (c BlockNode) Idx() gref.NodeIdx { return gref.NodeIdx(c) }

// mustNode dereferences idx and panics if it is missing or of the wrong
// kind. A bad NodeIdx or a wrong-kind typed wrapper is a structural bug in
// the caller, not a condition to propagate as an error.
func mustNode(g *Graph, idx gref.NodeIdx, want NodeKind) Node {
	n, err := g.Node(idx)
	if err != nil {
		panic("pgraph: " + idx.String() + ": " + err.Error())
	}
	if n.Kind() != want {
		panic("pgraph: " + idx.String() + ": expected kind " + want.String() + ", got " + n.Kind().String())
	}

	return n
}
