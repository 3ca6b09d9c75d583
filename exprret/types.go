package exprret

import (
	"errors"
	"fmt"

	"github.com/solgraph/solsym/gref"
	"github.com/solgraph/solsym/pgraph"
)

// ErrNotSingle indicates ExpectSingle was called against a Multi or Killed.
var ErrNotSingle = errors.New("exprret: not a Single result")

// ExprRet is the sum type an expression evaluation returns.
type ExprRet interface {
	isExprRet()
	String() string
}

// Single is one sub-result living in one context.
type Single struct {
	Ctx pgraph.ContextNode
	Var gref.NodeIdx
}

func (Single) isExprRet() {}

func (s Single) String() string {
	return fmt.Sprintf("Single(ctx=%d, var=%d)", s.Ctx.Idx(), s.Var)
}

// Multi is a fork: one ExprRet per resulting context. Every element must
// eventually reach a Single or Killed leaf.
type Multi struct {
	Items []ExprRet
}

func (Multi) isExprRet() {}

func (m Multi) String() string {
	return fmt.Sprintf("Multi(%d)", len(m.Items))
}

// Killed marks a path proven infeasible.
type Killed struct{}

func (Killed) isExprRet() {}

func (Killed) String() string { return "CtxKilled" }

// CtxKilled is the shared Killed value; callers compare by type-assertion
// (IsKilled), not by identity, since Killed carries no state.
var CtxKilled ExprRet = Killed{}

// NewSingle wraps (ctx, v) as an ExprRet.
func NewSingle(ctx pgraph.ContextNode, v gref.NodeIdx) ExprRet {
	return Single{Ctx: ctx, Var: v}
}

// NewMulti wraps items as a forked ExprRet.
func NewMulti(items ...ExprRet) ExprRet {
	return Multi{Items: items}
}

// IsKilled reports whether r is Killed.
func IsKilled(r ExprRet) bool {
	_, ok := r.(Killed)

	return ok
}

// ExpectSingle asserts r is a Single and returns it, or ErrNotSingle.
func ExpectSingle(r ExprRet) (Single, error) {
	s, ok := r.(Single)
	if !ok {
		return Single{}, ErrNotSingle
	}

	return s, nil
}

// Flatten collects every Single leaf reachable from r, descending through
// nested Multi values and dropping Killed branches. Every well-formed
// ExprRet reaches a Single or Killed leaf in finitely many steps.
func Flatten(r ExprRet) []Single {
	switch v := r.(type) {
	case Single:
		return []Single{v}
	case Multi:
		var out []Single
		for _, item := range v.Items {
			out = append(out, Flatten(item)...)
		}

		return out
	default:
		return nil
	}
}
