package ctxvar

import (
	"github.com/solgraph/solsym/gref"
	"github.com/solgraph/solsym/pgraph"
	"github.com/solgraph/solsym/srange"
)

// NewContext allocates a fresh execution context under parentFunction.
func NewContext(g *pgraph.Graph, parentFunction gref.NodeIdx, label string, loc gref.Loc) pgraph.ContextNode {
	idx := g.AddNode(&pgraph.ContextData{
		ParentFunction: parentFunction,
		Label:          label,
		Loc:            loc,
		Deps:           make(map[gref.NodeIdx]struct{}),
	})

	return pgraph.ContextNode(idx)
}

// LatestVersion follows the forward chain of Prev edges from v to find the
// most recently advanced version of that variable. v itself is returned if
// no newer version exists. Ties (more than one node claiming v as Prev, e.g.
// after a fork) resolve to whichever the graph's linear edge scan meets
// first — callers that need a specific context's view should instead track
// the ContextVarNode AdvanceVarInCtx returned them directly.
func LatestVersion(g *pgraph.Graph, v gref.NodeIdx) gref.NodeIdx {
	for {
		incoming := g.IncomingEdges(v, pgraph.EdgeContext)
		next, ok := gref.NodeIdx(0), false
		for _, e := range incoming {
			if e.CtxKind == pgraph.CtxEdgePrev {
				next, ok = e.From, true

				break
			}
		}
		if !ok {
			return v
		}
		v = next
	}
}

// AdvanceVarInCtx creates a new ContextVar version of v inside ctx, copying
// its type, names, and symbolic flag from its latest known version, and
// links the new version to its predecessor with a Prev edge.
// This is the only sanctioned way to mutate a variable's range: the caller
// then calls SetRangeMin/SetRangeMax/SetRangeExclusions on the returned
// node.
func AdvanceVarInCtx(g *pgraph.Graph, v gref.NodeIdx, loc gref.Loc, ctx pgraph.ContextNode) pgraph.ContextVarNode {
	latest := LatestVersion(g, v)
	old := pgraph.ContextVarNode(latest).Data(g)

	idx := g.AddNode(pgraph.ContextVarData{
		Name:        old.Name,
		DisplayName: old.DisplayName,
		Storage:     old.Storage,
		IsTmp:       old.IsTmp,
		IsSymbolic:  old.IsSymbolic,
		Ty:          srange.CloneVarType(old.Ty),
	})

	g.AddEdge(pgraph.Edge{Kind: pgraph.EdgeContext, CtxKind: pgraph.CtxEdgeVariable, From: ctx.Idx(), To: idx})
	g.AddEdge(pgraph.Edge{Kind: pgraph.EdgeContext, CtxKind: pgraph.CtxEdgePrev, From: idx, To: latest})

	return pgraph.ContextVarNode(idx)
}

// NewTmp returns ctx's tmp counter and post-increments it.
func NewTmp(g *pgraph.Graph, ctx pgraph.ContextNode) uint64 {
	d := ctx.Data(g)
	n := d.TmpCounter
	d.TmpCounter++

	return n
}

// AddCtxDep records cvar as a precondition ctx requires to hold for its
// path to be feasible.
func AddCtxDep(g *pgraph.Graph, ctx pgraph.ContextNode, cvar pgraph.ContextVarNode) {
	d := ctx.Data(g)
	if d.Deps == nil {
		d.Deps = make(map[gref.NodeIdx]struct{})
	}
	d.Deps[cvar.Idx()] = struct{}{}
}

// SetRangeMin/SetRangeMax/SetRangeExclusions tighten cvar's range in place.
// They mutate the SolcRange the variable's VarType already points to, which
// is why AdvanceVarInCtx must run first: only a freshly advanced version's
// range may be narrowed — ranges only ever tighten, never widen, across
// versions.
func SetRangeMin(g *pgraph.Graph, cvar pgraph.ContextVarNode, min srange.Elem) error {
	rng := cvar.Data(g).Ty.Range()
	if rng == nil {
		return ErrNoRange
	}
	rng.Min = min

	return nil
}

func SetRangeMax(g *pgraph.Graph, cvar pgraph.ContextVarNode, max srange.Elem) error {
	rng := cvar.Data(g).Ty.Range()
	if rng == nil {
		return ErrNoRange
	}
	rng.Max = max

	return nil
}

func SetRangeExclusions(g *pgraph.Graph, cvar pgraph.ContextVarNode, exclusions []srange.SolcRange) error {
	rng := cvar.Data(g).Ty.Range()
	if rng == nil {
		return ErrNoRange
	}
	rng.Exclusions = exclusions

	return nil
}

// AddRangeExclusion appends a single excluded sub-interval, used by the
// Div/Mod precondition path to add {0,0} when a signed divisor's minimum
// can't simply be tightened to 1.
func AddRangeExclusion(g *pgraph.Graph, cvar pgraph.ContextVarNode, excl srange.SolcRange) error {
	d := cvar.Data(g)
	rng := d.Ty.Range()
	if rng == nil {
		return ErrNoRange
	}
	rng.Exclusions = append(rng.Exclusions, excl)

	return nil
}
