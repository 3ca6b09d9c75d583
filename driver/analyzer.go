package driver

import (
	"github.com/solgraph/solsym/evaluator"
	"github.com/solgraph/solsym/gref"
	"github.com/solgraph/solsym/pgraph"
)

// NewAnalyzer builds an Analyzer over a fresh graph: the Entry root node
// (index 0, per pgraph.NewGraph's documented convention), a synthetic
// "<parser_fn>" Function node every pre-final-pass expression can attach a
// Context to, and the Msg/Block singletons. Default budgets match
// evaluator's: 1024 for both MaxDepth and MaxWidth.
func NewAnalyzer(opts ...Option) *Analyzer {
	g := pgraph.NewGraph()
	entry := g.AddNode(pgraph.EntryData{})
	parseFn := g.AddNode(pgraph.FunctionData{Name: "<parser_fn>"})
	msg := g.AddNode(pgraph.MsgData{})
	block := g.AddNode(pgraph.BlockData{})

	a := &Analyzer{
		Graph:     g,
		entry:     entry,
		parseFn:   pgraph.FunctionNode(parseFn),
		msg:       pgraph.MsgNode(msg),
		block:     pgraph.BlockNode(block),
		builtins:    make(map[builtinKey]gref.NodeIdx),
		userTypes:   make(map[string]gref.NodeIdx),
		unitsByPath: make(map[string]gref.NodeIdx),
		MaxDepth:    1024,
		MaxWidth:    1024,
	}
	for _, opt := range opts {
		opt(a)
	}

	a.eval = evaluator.NewEvaluator(g, evaluator.WithMaxDepth(a.MaxDepth), evaluator.WithMaxWidth(a.MaxWidth))

	return a
}

// ParseFn returns the synthetic scaffold Function node early expression
// parsing attaches contexts to, before any real function has been declared.
func (a *Analyzer) ParseFn() pgraph.FunctionNode { return a.parseFn }

// Msg returns the singleton `msg` builtin object node.
func (a *Analyzer) Msg() pgraph.MsgNode { return a.msg }

// Block returns the singleton `block` builtin object node.
func (a *Analyzer) Block() pgraph.BlockNode { return a.block }

// BuiltinOrAdd interns a built-in type descriptor, returning the existing
// node if an equal one was already allocated rather than a duplicate:
// repeated references to e.g. uint256 share one Builtin node. Elem.N/
// Elem.Bits are recursively interned first so an Array-of-uint256's element
// shares the same node a bare uint256 reference would get.
func (a *Analyzer) BuiltinOrAdd(spec BuiltinSpec) gref.NodeIdx {
	var elemIdx gref.NodeIdx
	if spec.Elem != nil {
		elemIdx = a.BuiltinOrAdd(*spec.Elem)
	}

	key := builtinKey{kind: spec.Kind, bits: spec.Bits, n: spec.N, elem: elemIdx}
	if idx, ok := a.builtins[key]; ok {
		return idx
	}

	idx := a.Graph.AddNode(pgraph.BuiltinData{Builtin: spec.Kind, Bits: spec.Bits, N: spec.N, Elem: elemIdx})
	a.builtins[key] = idx

	return idx
}

// UserTypeOrAdd interns a user-defined type reference by name (struct, enum,
// contract, or `type X is ...`), returning the NodeIdx of its Unresolved
// placeholder if the real declaration has not been registered yet via
// RegisterUserType.
func (a *Analyzer) UserTypeOrAdd(name string) gref.NodeIdx {
	if idx, ok := a.userTypes[name]; ok {
		return idx
	}

	idx := a.Graph.AddNode(pgraph.UnresolvedData{Ident: name})
	a.userTypes[name] = idx

	return idx
}

// RegisterUserType resolves name's Unresolved placeholder (if any) to its
// real declaration node, or interns decl directly under name if no forward
// reference preceded the declaration.
func (a *Analyzer) RegisterUserType(name string, decl pgraph.Node) {
	if idx, ok := a.userTypes[name]; ok {
		if err := a.Graph.ResolveForward(idx, decl); err == nil {
			return
		}
		// Already resolved or never Unresolved: fall through and re-intern.
	}

	a.userTypes[name] = a.Graph.AddNode(decl)
}

// QueueFinalPass appends item to the deferred resolution queue drained by
// the resolve pass.
func (a *Analyzer) QueueFinalPass(item FinalPassItem) {
	a.finalPass = append(a.finalPass, item)
}

// RecordError appends err unless an equal EvalError was already recorded.
func (a *Analyzer) RecordError(err EvalError) {
	for _, existing := range a.errs {
		if existing == err {
			return
		}
	}
	a.errs = append(a.errs, err)
}

// Errors returns the accumulated diagnostics in recorded order.
func (a *Analyzer) Errors() []EvalError {
	out := make([]EvalError, len(a.errs))
	copy(out, a.errs)

	return out
}
