package exprret_test

import (
	"errors"
	"testing"

	"github.com/solgraph/solsym/exprret"
	"github.com/solgraph/solsym/pgraph"
)

func TestExpectSingle(t *testing.T) {
	ctx := pgraph.ContextNode(0)
	r := exprret.NewSingle(ctx, 5)

	s, err := exprret.ExpectSingle(r)
	if err != nil {
		t.Fatalf("ExpectSingle returned error: %v", err)
	}
	if s.Var != 5 {
		t.Fatalf("s.Var = %d, want 5", s.Var)
	}

	if _, err := exprret.ExpectSingle(exprret.CtxKilled); !errors.Is(err, exprret.ErrNotSingle) {
		t.Fatalf("ExpectSingle(Killed) error = %v, want ErrNotSingle", err)
	}
}

func TestIsKilled(t *testing.T) {
	if !exprret.IsKilled(exprret.CtxKilled) {
		t.Fatalf("IsKilled(CtxKilled) = false, want true")
	}
	if exprret.IsKilled(exprret.NewSingle(pgraph.ContextNode(0), 1)) {
		t.Fatalf("IsKilled(Single) = true, want false")
	}
}

func TestFlattenDescendsMultiAndDropsKilled(t *testing.T) {
	c1 := pgraph.ContextNode(0)
	c2 := pgraph.ContextNode(1)

	r := exprret.NewMulti(
		exprret.NewSingle(c1, 10),
		exprret.NewMulti(
			exprret.NewSingle(c2, 20),
			exprret.CtxKilled,
		),
	)

	got := exprret.Flatten(r)
	if len(got) != 2 {
		t.Fatalf("Flatten returned %d singles, want 2: %v", len(got), got)
	}
	if got[0].Var != 10 || got[1].Var != 20 {
		t.Fatalf("Flatten order/values wrong: %v", got)
	}
}
