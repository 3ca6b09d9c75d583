package pgraph_test

import (
	"errors"
	"testing"

	"github.com/solgraph/solsym/gref"
	"github.com/solgraph/solsym/pgraph"
)

func TestAddNodeIsAppendOnlyAndOrdered(t *testing.T) {
	g := pgraph.NewGraph()

	e := g.AddNode(pgraph.EntryData{})
	c := g.AddNode(pgraph.ContractData{Name: "Foo"})

	if e != 0 {
		t.Fatalf("Entry expected at idx 0, got %d", e)
	}
	if c != 1 {
		t.Fatalf("second node expected at idx 1, got %d", c)
	}
	if g.NodeCount() != 2 {
		t.Fatalf("NodeCount() = %d, want 2", g.NodeCount())
	}

	n, err := g.Node(c)
	if err != nil {
		t.Fatalf("Node(%d) returned error: %v", c, err)
	}
	if n.Kind() != pgraph.KindContract {
		t.Fatalf("Node(%d).Kind() = %v, want Contract", c, n.Kind())
	}
}

func TestNodeOutOfRange(t *testing.T) {
	g := pgraph.NewGraph()
	g.AddNode(pgraph.EntryData{})

	if _, err := g.Node(gref.NodeIdx(99)); !errors.Is(err, pgraph.ErrNodeNotFound) {
		t.Fatalf("Node(99) error = %v, want ErrNodeNotFound", err)
	}
}

func TestResolveForwardRequiresUnresolved(t *testing.T) {
	g := pgraph.NewGraph()
	u := g.AddNode(pgraph.UnresolvedData{Ident: "Foo"})
	decl := g.AddNode(pgraph.ContractData{Name: "Bar"})

	if err := g.ResolveForward(decl, pgraph.ContractData{Name: "Foo"}); !errors.Is(err, pgraph.ErrNotUnresolved) {
		t.Fatalf("ResolveForward(decl) error = %v, want ErrNotUnresolved", err)
	}

	if err := g.ResolveForward(u, pgraph.ContractData{Name: "Foo"}); err != nil {
		t.Fatalf("ResolveForward(u) returned error: %v", err)
	}
	n, _ := g.Node(u)
	if n.Kind() != pgraph.KindContract {
		t.Fatalf("after ResolveForward, Kind() = %v, want Contract", n.Kind())
	}

	if err := g.ResolveForward(u, pgraph.ContractData{Name: "Foo"}); !errors.Is(err, pgraph.ErrNotUnresolved) {
		t.Fatalf("second ResolveForward should fail, got %v", err)
	}
}

func TestSearchChildrenBFS(t *testing.T) {
	g := pgraph.NewGraph()
	root := g.AddNode(pgraph.ContractData{Name: "C"})
	f1 := g.AddNode(pgraph.FunctionData{Name: "f1"})
	f2 := g.AddNode(pgraph.FunctionData{Name: "f2"})
	v := g.AddNode(pgraph.VarData{Name: "x"})

	g.AddEdge(pgraph.Edge{Kind: pgraph.EdgeFunc, From: root, To: f1})
	g.AddEdge(pgraph.Edge{Kind: pgraph.EdgeFunc, From: root, To: f2})
	g.AddEdge(pgraph.Edge{Kind: pgraph.EdgeVar, From: root, To: v})

	got := g.SearchChildren(root, pgraph.EdgeFunc)
	if len(got) != 2 {
		t.Fatalf("SearchChildren(EdgeFunc) = %v, want 2 results", got)
	}
	seen := map[gref.NodeIdx]bool{got[0]: true}
	if len(got) > 1 {
		seen[got[1]] = true
	}
	if !seen[f1] || !seen[f2] {
		t.Fatalf("SearchChildren(EdgeFunc) = %v, want [%d %d]", got, f1, f2)
	}
}

func TestContextVarNodeDataPanicsOnWrongKind(t *testing.T) {
	g := pgraph.NewGraph()
	idx := g.AddNode(pgraph.ContractData{Name: "C"})

	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic dereferencing ContextVarNode over a Contract node")
		}
	}()
	pgraph.ContextVarNode(idx).Data(g)
}

func TestWithCapacityRejectsNegative(t *testing.T) {
	defer func() {
		if recover() == nil {
			t.Fatalf("expected panic on negative capacity")
		}
	}()
	pgraph.WithCapacity(-1, 0)
}
