package ctxvar_test

import (
	"errors"
	"math/big"
	"testing"

	"github.com/solgraph/solsym/concrete"
	"github.com/solgraph/solsym/ctxvar"
	"github.com/solgraph/solsym/gref"
	"github.com/solgraph/solsym/pgraph"
	"github.com/solgraph/solsym/srange"
)

func newUintVar(t *testing.T, g *pgraph.Graph, bits uint16) gref.NodeIdx {
	t.Helper()
	rng := srange.FullUintRange(bits)

	return g.AddNode(pgraph.ContextVarData{
		Name: "a",
		Ty:   srange.VTBuiltIn{Rng: rng},
	})
}

func TestAdvanceVarInCtxCopiesAndLinksPrev(t *testing.T) {
	g := pgraph.NewGraph()
	ctx := ctxvar.NewContext(g, 0, "f", gref.Implicit)
	a := newUintVar(t, g, 256)

	adv := ctxvar.AdvanceVarInCtx(g, a, gref.Implicit, ctx)
	if adv.Idx() == a {
		t.Fatalf("AdvanceVarInCtx should allocate a new node, got same index")
	}

	oldData := pgraph.ContextVarNode(a).Data(g)
	newData := adv.Data(g)
	if newData.Name != oldData.Name {
		t.Fatalf("Name not copied: got %q want %q", newData.Name, oldData.Name)
	}

	if got := ctxvar.LatestVersion(g, a); got != adv.Idx() {
		t.Fatalf("LatestVersion(a) = %d, want %d", got, adv.Idx())
	}
}

func TestNewTmpIncrements(t *testing.T) {
	g := pgraph.NewGraph()
	ctx := ctxvar.NewContext(g, 0, "f", gref.Implicit)

	if n := ctxvar.NewTmp(g, ctx); n != 0 {
		t.Fatalf("first NewTmp = %d, want 0", n)
	}
	if n := ctxvar.NewTmp(g, ctx); n != 1 {
		t.Fatalf("second NewTmp = %d, want 1", n)
	}
}

func TestAddCtxDep(t *testing.T) {
	g := pgraph.NewGraph()
	ctx := ctxvar.NewContext(g, 0, "f", gref.Implicit)
	b := g.AddNode(pgraph.ContextVarData{Name: "b", Ty: srange.VTBuiltIn{Rng: srange.FullBoolRange()}})
	bvar := pgraph.ContextVarNode(b)

	ctxvar.AddCtxDep(g, ctx, bvar)

	if _, ok := ctx.Data(g).Deps[bvar.Idx()]; !ok {
		t.Fatalf("AddCtxDep did not record dependency")
	}
}

func TestSetRangeMinRequiresRange(t *testing.T) {
	g := pgraph.NewGraph()
	noRange := pgraph.ContextVarNode(g.AddNode(pgraph.ContextVarData{Name: "s", Ty: srange.VTUser{}}))

	v, _ := concrete.FromUint256(256, big.NewInt(1))
	if err := ctxvar.SetRangeMin(g, noRange, srange.Concrete(v)); !errors.Is(err, ctxvar.ErrNoRange) {
		t.Fatalf("SetRangeMin error = %v, want ErrNoRange", err)
	}
}

func TestGraphResolverRangeOf(t *testing.T) {
	g := pgraph.NewGraph()
	a := pgraph.ContextVarNode(newUintVar(t, g, 8))
	resolver := ctxvar.GraphResolver{G: g}

	rng, ok := resolver.RangeOf(a.Idx())
	if !ok {
		t.Fatalf("RangeOf(a) returned ok=false")
	}
	v, isOk := srange.Eval(rng.Max, true, resolver)
	if !isOk {
		t.Fatalf("Eval(rng.Max) failed to resolve")
	}
	if v.U256.Cmp(concrete.MaxUintN(8)) != 0 {
		t.Fatalf("Eval(rng.Max) = %v, want %v", v.U256, concrete.MaxUintN(8))
	}
}
