package ctxvar

import (
	"errors"

	"github.com/solgraph/solsym/gref"
	"github.com/solgraph/solsym/pgraph"
	"github.com/solgraph/solsym/srange"
)

// Sentinel errors for context/variable operations.
var (
	// ErrNoRange indicates a range setter was called against a ContextVar
	// whose VarType carries no SolcRange (e.g. a struct/contract-typed var).
	ErrNoRange = errors.New("ctxvar: variable has no range")
)

// GraphResolver adapts a live pgraph.Graph into an srange.Resolver, letting
// Elem::Dynamic references resolve against whatever the graph's current
// state is at Eval time, including a reference that cycles back to a node
// still being built.
type GraphResolver struct {
	G *pgraph.Graph
}

// RangeOf implements srange.Resolver.
func (r GraphResolver) RangeOf(ref gref.NodeIdx) (*srange.SolcRange, bool) {
	n, err := r.G.Node(ref)
	if err != nil {
		return nil, false
	}
	switch v := n.(type) {
	case pgraph.ContextVarData:
		rng := v.Ty.Range()

		return rng, rng != nil
	case pgraph.ConcreteData:
		return srange.SingletonRange(v.Value), true
	default:
		return nil, false
	}
}

var _ srange.Resolver = GraphResolver{}
