package evaluator

import (
	"fmt"
	"math/big"

	"github.com/solgraph/solsym/concrete"
	"github.com/solgraph/solsym/ctxvar"
	"github.com/solgraph/solsym/exprret"
	"github.com/solgraph/solsym/gref"
	"github.com/solgraph/solsym/pgraph"
	"github.com/solgraph/solsym/srange"
)

// concreteZero builds the concrete zero of the same kind/width as sample.
func concreteZero(sample concrete.Value) concrete.Value {
	if sample.Kind == concrete.KindInt {
		z, _ := concrete.FromInt256(sample.Bits, big.NewInt(0))

		return z
	}
	bits := sample.Bits
	if bits == 0 {
		bits = 256
	}
	z, _ := concrete.FromUint256(bits, big.NewInt(0))

	return z
}

// freshConcreteVar allocates a brand-new ContextVar wrapping a concrete
// literal, attached to ctx but not linked to any Prev chain (it is not a
// version of an existing variable). Used for the Add/Mul preconditions'
// recursive UINT256_MAX operand: always fresh, never the caller's own tmp,
// so the recursive call below can never chase its own tail.
func (e *Evaluator) freshConcreteVar(ctx pgraph.ContextNode, v concrete.Value) gref.NodeIdx {
	data := pgraph.ContextVarData{
		Name:        v.String(),
		DisplayName: v.String(),
		Ty:          srange.NewConcreteVarType(v),
	}
	idx := e.Graph.AddNode(data)
	e.Graph.AddEdge(pgraph.Edge{Kind: pgraph.EdgeContext, CtxKind: pgraph.CtxEdgeVariable, From: ctx.Idx(), To: idx})

	return idx
}

// newTmpBool allocates a fresh boolean tmp ContextVar witnessing a
// synthesized precondition, named "tmp<n>(label)".
func (e *Evaluator) newTmpBool(ctx pgraph.ContextNode, label string, tmpOf pgraph.TmpConstruction) pgraph.ContextVarNode {
	n := ctxvar.NewTmp(e.Graph, ctx)
	data := pgraph.ContextVarData{
		Name:        fmt.Sprintf("tmp%d(%s)", n, label),
		DisplayName: "(" + label + ")",
		IsTmp:       true,
		IsSymbolic:  true,
		Ty:          srange.VTBuiltIn{Rng: srange.FullBoolRange()},
		TmpOf:       &tmpOf,
	}
	idx := e.Graph.AddNode(data)
	e.Graph.AddEdge(pgraph.Edge{Kind: pgraph.EdgeContext, CtxKind: pgraph.CtxEdgeVariable, From: ctx.Idx(), To: idx})

	return pgraph.ContextVarNode(idx)
}

// divModPrecondition handles the Div/Mod case: advance the divisor to a
// fresh version, attach a "divisor != 0" dependency, and either
// exclude {0,0} (divisor can be negative) or tighten its minimum to 1
// (divisor is known non-negative). Returns the divisor's new NodeIdx, which
// the caller feeds to the transfer function in place of the original rhs.
func (e *Evaluator) divModPrecondition(ctx pgraph.ContextNode, loc gref.Loc, rhsVar gref.NodeIdx) gref.NodeIdx {
	r := ctxvar.AdvanceVarInCtx(e.Graph, rhsVar, loc, ctx)
	rData := r.Data(e.Graph)
	rng := rData.Ty.Range()
	if rng == nil {
		return r.Idx()
	}

	sample, ok := srange.Eval(rng.Max, true, e.Resolver)
	if !ok {
		sample, ok = srange.Eval(rng.Min, false, e.Resolver)
	}
	var zeroVal concrete.Value
	if ok {
		zeroVal = concreteZero(sample)
	} else {
		zeroVal, _ = concrete.FromUint256(256, big.NewInt(0))
	}
	zeroIdx := e.Graph.AddNode(pgraph.ConcreteData{Value: zeroVal})

	label := fmt.Sprintf("%s != 0", rData.DisplayName)
	c := e.newTmpBool(ctx, label, pgraph.TmpConstruction{Lhs: r.Idx(), Op: srange.OpNeq, Rhs: &zeroIdx})
	ctxvar.AddCtxDep(e.Graph, ctx, c)

	if rng.MinIsNegative(e.Resolver) {
		_ = ctxvar.AddRangeExclusion(e.Graph, r, *srange.SingletonRange(zeroVal))
	} else {
		one, _ := concrete.FromUint256(256, big.NewInt(1))
		_ = ctxvar.SetRangeMin(e.Graph, r, srange.Max(rng.Min, srange.Concrete(one)))
	}

	return r.Idx()
}

// subPrecondition handles the Sub case: a new version of
// lhs has its minimum tightened to at-least-rhs, and a "lhs >= rhs"
// dependency is recorded. The result of this call's own arithmetic (step 4)
// still reads the pre-tightening lhs range — see opSingle's comment.
func (e *Evaluator) subPrecondition(ctx pgraph.ContextNode, loc gref.Loc, lhsVar, rhsVar gref.NodeIdx) gref.NodeIdx {
	l := ctxvar.AdvanceVarInCtx(e.Graph, lhsVar, loc, ctx)
	lData := l.Data(e.Graph)
	rhsData := pgraph.ContextVarNode(rhsVar).Data(e.Graph)

	if rng := lData.Ty.Range(); rng != nil {
		_ = ctxvar.SetRangeMin(e.Graph, l, srange.Max(rng.Min, srange.Dynamic(rhsVar, loc)))
	}

	label := fmt.Sprintf("%s >= %s", lData.DisplayName, rhsData.DisplayName)
	c := e.newTmpBool(ctx, label, pgraph.TmpConstruction{Lhs: l.Idx(), Op: srange.OpGte, Rhs: &rhsVar})
	ctxvar.AddCtxDep(e.Graph, ctx, c)

	return l.Idx()
}

// addPrecondition handles the Add case: lhs's new
// version has its maximum capped at UINT256_MAX - rhs, computed by
// recursively invoking Sub (assign=false) against a fresh UINT256_MAX
// operand so the bound expression itself lives in the graph as a variable
// other Dynamic references can point at.
func (e *Evaluator) addPrecondition(ctx pgraph.ContextNode, loc gref.Loc, lhsVar, rhsVar gref.NodeIdx) gref.NodeIdx {
	l := ctxvar.AdvanceVarInCtx(e.Graph, lhsVar, loc, ctx)
	lData := l.Data(e.Graph)

	maxVal, _ := concrete.FromUint256(256, concrete.MaxUint256())
	maxVarIdx := e.freshConcreteVar(ctx, maxVal)

	boundVar, ok := e.recursiveResult(loc, ctx, maxVarIdx, rhsVar, srange.OpSub)
	if !ok {
		return l.Idx()
	}

	if rng := lData.Ty.Range(); rng != nil {
		_ = ctxvar.SetRangeMax(e.Graph, l, srange.Min(rng.Max, srange.Dynamic(boundVar, loc)))
	}

	boundData := pgraph.ContextVarNode(boundVar).Data(e.Graph)
	label := fmt.Sprintf("%s <= %s", lData.DisplayName, boundData.DisplayName)
	c := e.newTmpBool(ctx, label, pgraph.TmpConstruction{Lhs: l.Idx(), Op: srange.OpLte, Rhs: &boundVar})
	ctxvar.AddCtxDep(e.Graph, ctx, c)

	return l.Idx()
}

// mulPrecondition handles the Mul case: lhs's new
// version has its maximum capped at UINT256_MAX / max(1, rhs), computed by
// recursively invoking Div against a fresh UINT256_MAX operand.
func (e *Evaluator) mulPrecondition(ctx pgraph.ContextNode, loc gref.Loc, lhsVar, rhsVar gref.NodeIdx) gref.NodeIdx {
	l := ctxvar.AdvanceVarInCtx(e.Graph, lhsVar, loc, ctx)
	lData := l.Data(e.Graph)

	maxVal, _ := concrete.FromUint256(256, concrete.MaxUint256())
	maxVarIdx := e.freshConcreteVar(ctx, maxVal)

	boundVar, ok := e.recursiveResult(loc, ctx, maxVarIdx, rhsVar, srange.OpDiv)
	if !ok {
		return l.Idx()
	}

	if rng := lData.Ty.Range(); rng != nil {
		_ = ctxvar.SetRangeMax(e.Graph, l, srange.Min(rng.Max, srange.Dynamic(boundVar, loc)))
	}

	boundData := pgraph.ContextVarNode(boundVar).Data(e.Graph)
	label := fmt.Sprintf("%s <= %s", lData.DisplayName, boundData.DisplayName)
	c := e.newTmpBool(ctx, label, pgraph.TmpConstruction{Lhs: l.Idx(), Op: srange.OpLte, Rhs: &boundVar})
	ctxvar.AddCtxDep(e.Graph, ctx, c)

	return l.Idx()
}

// recursiveResult re-enters opSingle for a fresh, non-symbolic lhs operand
// (so the call never triggers a further precondition and terminates in one
// extra level of recursion) and unwraps the resulting Single.
func (e *Evaluator) recursiveResult(loc gref.Loc, ctx pgraph.ContextNode, lhsVar, rhsVar gref.NodeIdx, op srange.RangeOp) (gref.NodeIdx, bool) {
	ret := e.opSingle(loc, ctx, lhsVar, rhsVar, op, false)
	single, err := exprret.ExpectSingle(ret)
	if err != nil {
		e.RecordError(EvalError{Kind: KindParseError, Loc: loc, Msg: "precondition: recursive op did not yield Single"})

		return 0, false
	}

	return single.Var, true
}
