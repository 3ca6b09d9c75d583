package evaluator

import (
	"fmt"

	"github.com/solgraph/solsym/ctxvar"
	"github.com/solgraph/solsym/exprret"
	"github.com/solgraph/solsym/gref"
	"github.com/solgraph/solsym/pgraph"
	"github.com/solgraph/solsym/srange"
)

// Op is the binary-operation evaluator's entry point. lhsRet and rhsRet are
// the already-evaluated operand sub-results — each a single variable in a
// single context, a fork across several contexts, or a proof that a path
// is infeasible. Op cross-products them and, for every surviving
// (ctx, lhsVar, rhsVar) triple, applies op once via opSingle.
func (e *Evaluator) Op(loc gref.Loc, lhsRet, rhsRet exprret.ExprRet, op srange.RangeOp, assign bool) exprret.ExprRet {
	switch lhs := lhsRet.(type) {
	case exprret.Killed:
		return exprret.CtxKilled

	case exprret.Single:
		switch rhs := rhsRet.(type) {
		case exprret.Killed:
			return exprret.CtxKilled

		case exprret.Single:
			if lhs.Ctx.Idx() == rhs.Ctx.Idx() {
				return e.opSingle(loc, lhs.Ctx, lhs.Var, rhs.Var, op, assign)
			}
			// Fork: operands live in distinct contexts. Apply once in each,
			// each gaining its own fresh tmp and (if applicable) precondition.
			r1 := e.opSingle(loc, lhs.Ctx, lhs.Var, rhs.Var, op, assign)
			r2 := e.opSingle(loc, rhs.Ctx, lhs.Var, rhs.Var, op, assign)

			return exprret.NewMulti(r1, r2)

		case exprret.Multi:
			items := make([]exprret.ExprRet, 0, len(rhs.Items))
			for _, item := range rhs.Items {
				items = append(items, e.Op(loc, lhsRet, item, op, assign))
			}

			return exprret.NewMulti(items...)

		default:
			return exprret.CtxKilled
		}

	case exprret.Multi:
		switch rhsRet.(type) {
		case exprret.Killed:
			return exprret.CtxKilled

		case exprret.Multi:
			// Multi x Multi fans out as a flat Cartesian product: every lhs
			// branch paired against every rhs branch.
			rhsMulti := rhsRet.(exprret.Multi)
			items := make([]exprret.ExprRet, 0, len(lhs.Items)*len(rhsMulti.Items))
			for _, l := range lhs.Items {
				for _, r := range rhsMulti.Items {
					items = append(items, e.Op(loc, l, r, op, assign))
				}
			}

			return exprret.NewMulti(items...)

		default:
			items := make([]exprret.ExprRet, 0, len(lhs.Items))
			for _, item := range lhs.Items {
				items = append(items, e.Op(loc, item, rhsRet, op, assign))
			}

			return exprret.NewMulti(items...)
		}

	default:
		e.RecordError(EvalError{Kind: KindParseError, Loc: loc, Msg: "op: unrecognized ExprRet shape"})

		return exprret.CtxKilled
	}
}

// opSingle runs the result-variable construction, precondition synthesis,
// and range propagation steps for one (ctx, lhsVar, rhsVar) triple.
func (e *Evaluator) opSingle(loc gref.Loc, ctx pgraph.ContextNode, lhsVar, rhsVar gref.NodeIdx, op srange.RangeOp, assign bool) exprret.ExprRet {
	lhsData := pgraph.ContextVarNode(lhsVar).Data(e.Graph)
	rhsData := pgraph.ContextVarNode(rhsVar).Data(e.Graph)

	newLhs := e.buildResultVar(ctx, loc, lhsVar, rhsVar, lhsData, rhsData, op, assign)

	// Step 3: implicit precondition synthesis. Only Div/Mod's precondition
	// changes which node the transfer function reads its rhs range from
	// (the freshly tightened divisor version); Sub/Add/Mul's preconditions
	// tighten the *operand's own* future range but leave this call's
	// transfer inputs untouched, matching S3/S4's expected result ranges
	// (computed from the pre-tightening operand ranges).
	transferRhs := rhsVar
	if lhsData.IsSymbolic && rhsData.IsSymbolic && op.IsOverflowChecked() {
		switch op {
		case srange.OpDiv, srange.OpMod:
			transferRhs = e.divModPrecondition(ctx, loc, rhsVar)
		case srange.OpSub:
			e.subPrecondition(ctx, loc, lhsVar, rhsVar)
		case srange.OpAdd:
			e.addPrecondition(ctx, loc, lhsVar, rhsVar)
		case srange.OpMul:
			e.mulPrecondition(ctx, loc, lhsVar, rhsVar)
		}
	}

	lhsRange := lhsData.Ty.Range()
	rhsRange := rhsData.Ty.Range()
	if transferRhs != rhsVar {
		if rr, ok := e.Resolver.RangeOf(transferRhs); ok {
			rhsRange = rr
		}
	}

	// Deliberate: base reads lhsData's original range, not newLhs's advanced
	// one. For a symbolic VTBuiltIn operand the two coincide (AdvanceVarInCtx
	// clones the range unchanged before any precondition tightens it), so
	// S1-S6 see no difference. They diverge only when lhsData started out
	// VTConcrete and newLhs was promoted to VTBuiltIn by buildResultVar:
	// there, basing the transfer on the literal's own singleton range
	// (rather than the promoted type's freshly widened one) keeps the
	// result tighter while remaining sound.
	//
	// Fall back to the other side's range if one operand carries none; both
	// missing is a fatal internal invariant violation.
	base := lhsRange
	if base == nil {
		base = rhsRange
	}
	if base == nil {
		panic(fmt.Sprintf("evaluator: neither operand of %s carries a range", op))
	}

	newRange := srange.DynFnFromOp(op)(base, transferRhs, rhsRange, loc)

	// Step 5: Exp-with-zero fix-up.
	if op == srange.OpExp && lhsRange.ContainsZero(e.Resolver) && rhsRange.ContainsZero(e.Resolver) {
		if zero, ok := zeroLikeRange(lhsRange, e.Resolver); ok {
			newRange.Min = zero
		}
	}

	_ = ctxvar.SetRangeMin(e.Graph, newLhs, newRange.Min)
	_ = ctxvar.SetRangeMax(e.Graph, newLhs, newRange.Max)

	return exprret.NewSingle(ctx, newLhs.Idx())
}

// buildResultVar allocates the node the operation's result will live in:
// an advanced version of lhs for an assignment, or a fresh named tmp
// ContextVar for an expression result.
func (e *Evaluator) buildResultVar(ctx pgraph.ContextNode, loc gref.Loc, lhsVar, rhsVar gref.NodeIdx, lhsData, rhsData *pgraph.ContextVarData, op srange.RangeOp, assign bool) pgraph.ContextVarNode {
	if assign {
		return ctxvar.AdvanceVarInCtx(e.Graph, lhsVar, loc, ctx)
	}

	n := ctxvar.NewTmp(e.Graph, ctx)
	name := fmt.Sprintf("tmp%d(%s %s %s)", n, lhsData.Name, op, rhsData.Name)
	display := fmt.Sprintf("(%s %s %s)", lhsData.DisplayName, op, rhsData.DisplayName)
	rhsRef := rhsVar

	data := pgraph.ContextVarData{
		Name:        name,
		DisplayName: display,
		IsTmp:       true,
		IsSymbolic:  lhsData.IsSymbolic || rhsData.IsSymbolic,
		Ty:          normalizeTy(lhsData.Ty),
		TmpOf:       &pgraph.TmpConstruction{Lhs: lhsVar, Op: op, Rhs: &rhsRef},
	}
	idx := e.Graph.AddNode(data)
	e.Graph.AddEdge(pgraph.Edge{Kind: pgraph.EdgeContext, CtxKind: pgraph.CtxEdgeVariable, From: ctx.Idx(), To: idx})

	return pgraph.ContextVarNode(idx)
}

// normalizeTy promotes a VTConcrete operand type to the VTBuiltIn of the
// literal's own kind and bit width, so the range algebra has room to widen past the
// literal's own value, and otherwise clones the type so the result's range
// is never aliased to its operand's (srange.CloneVarType).
func normalizeTy(ty srange.VarType) srange.VarType {
	if c, ok := ty.(srange.VTConcrete); ok {
		return srange.ConcreteToBuiltin(c, 0)
	}

	return srange.CloneVarType(ty)
}

// zeroLikeRange returns an Elem wrapping the concrete zero of the same
// kind/width as r's resolved maximum, used by the Exp fix-up.
func zeroLikeRange(r *srange.SolcRange, env srange.Resolver) (srange.Elem, bool) {
	v, ok := srange.Eval(r.Max, true, env)
	if !ok {
		return nil, false
	}

	return srange.Concrete(concreteZero(v)), true
}
