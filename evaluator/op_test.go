package evaluator_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solgraph/solsym/concrete"
	"github.com/solgraph/solsym/ctxvar"
	"github.com/solgraph/solsym/evaluator"
	"github.com/solgraph/solsym/exprret"
	"github.com/solgraph/solsym/gref"
	"github.com/solgraph/solsym/pgraph"
	"github.com/solgraph/solsym/srange"
)

func newSymbolicUint(g *pgraph.Graph, ctx pgraph.ContextNode, name string, bits uint16) gref.NodeIdx {
	idx := g.AddNode(pgraph.ContextVarData{
		Name:        name,
		DisplayName: name,
		IsSymbolic:  true,
		Ty:          srange.VTBuiltIn{Rng: srange.FullUintRange(bits)},
	})
	g.AddEdge(pgraph.Edge{Kind: pgraph.EdgeContext, CtxKind: pgraph.CtxEdgeVariable, From: ctx.Idx(), To: idx})

	return idx
}

func newSymbolicInt(g *pgraph.Graph, ctx pgraph.ContextNode, name string, bits uint16, min, max int64) gref.NodeIdx {
	minV, _ := concrete.FromInt256(bits, big.NewInt(min))
	maxV, _ := concrete.FromInt256(bits, big.NewInt(max))
	idx := g.AddNode(pgraph.ContextVarData{
		Name:        name,
		DisplayName: name,
		IsSymbolic:  true,
		Ty:          srange.VTBuiltIn{Rng: &srange.SolcRange{Min: srange.Concrete(minV), Max: srange.Concrete(maxV)}},
	})
	g.AddEdge(pgraph.Edge{Kind: pgraph.EdgeContext, CtxKind: pgraph.CtxEdgeVariable, From: ctx.Idx(), To: idx})

	return idx
}

func newSymbolicUintRange(g *pgraph.Graph, ctx pgraph.ContextNode, name string, bits uint16, min, max uint64) gref.NodeIdx {
	minV, _ := concrete.FromUint256(bits, new(big.Int).SetUint64(min))
	maxV, _ := concrete.FromUint256(bits, new(big.Int).SetUint64(max))
	idx := g.AddNode(pgraph.ContextVarData{
		Name:        name,
		DisplayName: name,
		IsSymbolic:  true,
		Ty:          srange.VTBuiltIn{Rng: &srange.SolcRange{Min: srange.Concrete(minV), Max: srange.Concrete(maxV)}},
	})
	g.AddEdge(pgraph.Edge{Kind: pgraph.EdgeContext, CtxKind: pgraph.CtxEdgeVariable, From: ctx.Idx(), To: idx})

	return idx
}

func rangeBounds(t *testing.T, g *pgraph.Graph, resolver srange.Resolver, v gref.NodeIdx) (*big.Int, *big.Int) {
	t.Helper()
	rng := pgraph.ContextVarNode(v).Data(g).Ty.Range()
	require.NotNil(t, rng)

	minV, ok := srange.Eval(rng.Min, false, resolver)
	require.True(t, ok, "min did not resolve")
	maxV, ok := srange.Eval(rng.Max, true, resolver)
	require.True(t, ok, "max did not resolve")

	minB, _ := minV.UintVal()
	if minB == nil {
		minB, _ = minV.IntVal()
	}
	maxB, _ := maxV.UintVal()
	if maxB == nil {
		maxB, _ = maxV.IntVal()
	}

	return minB, maxB
}

// S1: Div precondition over two full-width symbolic uint256s.
func TestS1DivPrecondition(t *testing.T) {
	g := pgraph.NewGraph()
	ctx := ctxvar.NewContext(g, 0, "f", gref.Implicit)
	ev := evaluator.NewEvaluator(g)

	a := newSymbolicUint(g, ctx, "a", 256)
	b := newSymbolicUint(g, ctx, "b", 256)

	ret := ev.Op(gref.Implicit, exprret.NewSingle(ctx, a), exprret.NewSingle(ctx, b), srange.OpDiv, false)
	single, err := exprret.ExpectSingle(ret)
	require.NoError(t, err)

	tMin, tMax := rangeBounds(t, g, ev.Resolver, single.Var)
	require.Equal(t, big.NewInt(0), tMin)
	require.Equal(t, concrete.MaxUint256(), tMax)

	bLatest := ctxvar.LatestVersion(g, b)
	require.NotEqual(t, b, bLatest, "divisor should have advanced to a new version")
	bMin, bMax := rangeBounds(t, g, ev.Resolver, bLatest)
	require.Equal(t, big.NewInt(1), bMin)
	require.Equal(t, concrete.MaxUint256(), bMax)

	require.Len(t, ctx.Data(g).Deps, 1, "exactly one precondition dependency expected")
}

// S2: Div precondition over a signed divisor that can be negative.
func TestS2SignedDivExcludesZero(t *testing.T) {
	g := pgraph.NewGraph()
	ctx := ctxvar.NewContext(g, 0, "f", gref.Implicit)
	ev := evaluator.NewEvaluator(g)

	a := newSymbolicInt(g, ctx, "a", 256, -100, 100)
	b := newSymbolicInt(g, ctx, "b", 256, -100, 100)

	ret := ev.Op(gref.Implicit, exprret.NewSingle(ctx, a), exprret.NewSingle(ctx, b), srange.OpDiv, false)
	_, err := exprret.ExpectSingle(ret)
	require.NoError(t, err)

	bLatest := ctxvar.LatestVersion(g, b)
	rng := pgraph.ContextVarNode(bLatest).Data(g).Ty.Range()
	require.Len(t, rng.Exclusions, 1)

	minV, ok := srange.Eval(rng.Min, false, ev.Resolver)
	require.True(t, ok)
	minB, _ := minV.IntVal()
	require.Equal(t, big.NewInt(-100), minB)
}

// S3: Add overflow precondition.
func TestS3AddOverflow(t *testing.T) {
	g := pgraph.NewGraph()
	ctx := ctxvar.NewContext(g, 0, "f", gref.Implicit)
	ev := evaluator.NewEvaluator(g)

	a := newSymbolicUintRange(g, ctx, "a", 256, 0, 10)
	b := newSymbolicUintRange(g, ctx, "b", 256, 5, 20)

	ret := ev.Op(gref.Implicit, exprret.NewSingle(ctx, a), exprret.NewSingle(ctx, b), srange.OpAdd, false)
	single, err := exprret.ExpectSingle(ret)
	require.NoError(t, err)

	tMin, tMax := rangeBounds(t, g, ev.Resolver, single.Var)
	require.Equal(t, big.NewInt(5), tMin)
	require.Equal(t, big.NewInt(30), tMax)

	aLatest := ctxvar.LatestVersion(g, a)
	require.NotEqual(t, a, aLatest)
	_, aMax := rangeBounds(t, g, ev.Resolver, aLatest)
	require.Equal(t, big.NewInt(10), aMax, "a's tightened max should stay at 10 (min(10, MAX-b))")

	require.Len(t, ctx.Data(g).Deps, 1)
}

// S4: Mul overflow precondition.
func TestS4MulOverflow(t *testing.T) {
	g := pgraph.NewGraph()
	ctx := ctxvar.NewContext(g, 0, "f", gref.Implicit)
	ev := evaluator.NewEvaluator(g)

	a := newSymbolicUintRange(g, ctx, "a", 256, 1, 10)
	twoTo128 := new(big.Int).Lsh(big.NewInt(1), 128)
	bVal, _ := concrete.FromUint256(256, twoTo128)
	zeroVal, _ := concrete.FromUint256(256, big.NewInt(0))
	b := g.AddNode(pgraph.ContextVarData{
		Name: "b", DisplayName: "b", IsSymbolic: true,
		Ty: srange.VTBuiltIn{Rng: &srange.SolcRange{Min: srange.Concrete(zeroVal), Max: srange.Concrete(bVal)}},
	})
	g.AddEdge(pgraph.Edge{Kind: pgraph.EdgeContext, CtxKind: pgraph.CtxEdgeVariable, From: ctx.Idx(), To: b})

	ret := ev.Op(gref.Implicit, exprret.NewSingle(ctx, a), exprret.NewSingle(ctx, b), srange.OpMul, false)
	single, err := exprret.ExpectSingle(ret)
	require.NoError(t, err)

	tMin, tMax := rangeBounds(t, g, ev.Resolver, single.Var)
	require.Equal(t, big.NewInt(0), tMin)
	wantMax := new(big.Int).Mul(big.NewInt(10), twoTo128)
	require.Equal(t, wantMax, tMax)

	aLatest := ctxvar.LatestVersion(g, a)
	_, aMax := rangeBounds(t, g, ev.Resolver, aLatest)
	require.Equal(t, big.NewInt(10), aMax)
}

// S5: Exp-with-zero fix-up.
func TestS5ExpWithZero(t *testing.T) {
	g := pgraph.NewGraph()
	ctx := ctxvar.NewContext(g, 0, "f", gref.Implicit)
	ev := evaluator.NewEvaluator(g)

	a := newSymbolicUintRange(g, ctx, "a", 256, 0, 3)
	b := newSymbolicUintRange(g, ctx, "b", 256, 0, 2)

	ret := ev.Op(gref.Implicit, exprret.NewSingle(ctx, a), exprret.NewSingle(ctx, b), srange.OpExp, false)
	single, err := exprret.ExpectSingle(ret)
	require.NoError(t, err)

	tMin, tMax := rangeBounds(t, g, ev.Resolver, single.Var)
	require.Equal(t, big.NewInt(0), tMin)
	require.Equal(t, big.NewInt(9), tMax)
}

// S6: context fork on a binary op.
func TestS6ContextFork(t *testing.T) {
	g := pgraph.NewGraph()
	c1 := ctxvar.NewContext(g, 0, "f.then", gref.Implicit)
	c2 := ctxvar.NewContext(g, 0, "f.else", gref.Implicit)
	ev := evaluator.NewEvaluator(g)

	x := newSymbolicUintRange(g, c1, "x", 256, 0, 10)
	y := newSymbolicUintRange(g, c2, "y", 256, 0, 10)

	ret := ev.Op(gref.Implicit, exprret.NewSingle(c1, x), exprret.NewSingle(c2, y), srange.OpAdd, false)
	multi, ok := ret.(exprret.Multi)
	require.True(t, ok, "expected a Multi result across two contexts")
	require.Len(t, multi.Items, 2)

	singles := exprret.Flatten(ret)
	require.Len(t, singles, 2)
	require.Equal(t, c1.Idx(), singles[0].Ctx.Idx())
	require.Equal(t, c2.Idx(), singles[1].Ctx.Idx())
	require.NotEqual(t, singles[0].Var, singles[1].Var, "each context should get its own fresh tmp")
}

func TestOpPropagatesKilled(t *testing.T) {
	g := pgraph.NewGraph()
	ctx := ctxvar.NewContext(g, 0, "f", gref.Implicit)
	ev := evaluator.NewEvaluator(g)
	a := newSymbolicUint(g, ctx, "a", 256)

	ret := ev.Op(gref.Implicit, exprret.NewSingle(ctx, a), exprret.CtxKilled, srange.OpAdd, false)
	require.True(t, exprret.IsKilled(ret))

	ret2 := ev.Op(gref.Implicit, exprret.CtxKilled, exprret.NewSingle(ctx, a), srange.OpAdd, false)
	require.True(t, exprret.IsKilled(ret2))
}

func TestMultiByMultiCartesianProduct(t *testing.T) {
	g := pgraph.NewGraph()
	ctx := ctxvar.NewContext(g, 0, "f", gref.Implicit)
	ev := evaluator.NewEvaluator(g)

	a1 := newSymbolicUintRange(g, ctx, "a1", 256, 0, 1)
	a2 := newSymbolicUintRange(g, ctx, "a2", 256, 0, 1)
	b1 := newSymbolicUintRange(g, ctx, "b1", 256, 0, 1)
	b2 := newSymbolicUintRange(g, ctx, "b2", 256, 0, 1)

	lhs := exprret.NewMulti(exprret.NewSingle(ctx, a1), exprret.NewSingle(ctx, a2))
	rhs := exprret.NewMulti(exprret.NewSingle(ctx, b1), exprret.NewSingle(ctx, b2))

	ret := ev.Op(gref.Implicit, lhs, rhs, srange.OpAdd, false)
	singles := exprret.Flatten(ret)
	require.Len(t, singles, 4, "2x2 Multi operands should cartesian-product into 4 results")
}
