package srange

import (
	"math/big"

	"github.com/solgraph/solsym/concrete"
	"github.com/solgraph/solsym/gref"
)

var bigZeroLiteral = big.NewInt(0)

// TransferFunc computes the output SolcRange of applying a RangeOp to a lhs
// range and a rhs operand. rhsRef names the rhs ContextVar (so the returned
// Elem tree can lazily reference its *current* range via Dynamic) and
// rhsRange is a snapshot of that range at call time, used only for the
// eager concrete-fast-path comparisons transfer functions make (e.g.
// choosing full-bool-range vs. a resolved singleton for comparisons).
type TransferFunc func(lhs *SolcRange, rhsRef gref.NodeIdx, rhsRange *SolcRange, loc gref.Loc) *SolcRange

// DynFnFromOp returns the range-transfer function for op.
func DynFnFromOp(op RangeOp) TransferFunc {
	switch op {
	case OpAdd:
		return transferAdd
	case OpSub:
		return transferSub
	case OpMul:
		return transferMul
	case OpDiv:
		return transferDiv
	case OpMod:
		return transferMod
	case OpExp:
		return transferExp
	case OpShl:
		return transferShl
	case OpShr:
		return transferShr
	case OpBitAnd, OpBitOr, OpBitXor:
		return transferBitwiseConservative(op)
	case OpLt, OpLte, OpGt, OpGte, OpEq, OpNeq:
		return transferComparison(op)
	case OpAnd, OpOr:
		return transferBoolean(op)
	case OpNot:
		return transferNot
	default:
		return transferIdentity
	}
}

// rhsElem wraps rhsRef as a lazy Dynamic reference. The Elem tree itself
// doesn't encode which side (min or max) of that reference is wanted — that
// choice is made by Eval's caller when it walks the tree — so embedding one
// Dynamic node defers the choice, letting a later tightening of rhsRef's
// range propagate automatically the next time this Elem is evaluated.
func rhsElem(rhsRef gref.NodeIdx, loc gref.Loc) Elem {
	return Dynamic(rhsRef, loc)
}

func transferAdd(lhs *SolcRange, rhsRef gref.NodeIdx, _ *SolcRange, loc gref.Loc) *SolcRange {
	rhs := rhsElem(rhsRef, loc)

	return &SolcRange{Min: Add(lhs.Min, rhs), Max: Add(lhs.Max, rhs)}
}

func transferSub(lhs *SolcRange, rhsRef gref.NodeIdx, _ *SolcRange, loc gref.Loc) *SolcRange {
	rhs := rhsElem(rhsRef, loc)

	return &SolcRange{Min: Sub(lhs.Min, rhs), Max: Sub(lhs.Max, rhs)}
}

func transferMul(lhs *SolcRange, rhsRef gref.NodeIdx, _ *SolcRange, loc gref.Loc) *SolcRange {
	rhs := rhsElem(rhsRef, loc)

	return extremesRange(rhs, lhs)
}

func transferDiv(lhs *SolcRange, rhsRef gref.NodeIdx, _ *SolcRange, loc gref.Loc) *SolcRange {
	rhs := rhsElem(rhsRef, loc)

	return &SolcRange{
		Min: ElemExpr{Op: eDiv, Lhs: lhs.Min, Rhs: rhs},
		Max: ElemExpr{Op: eDiv, Lhs: lhs.Max, Rhs: rhs},
	}
}

// transferMod bounds a % b by [min(lhs.Min, 0), max(lhs.Max, 0)]: the
// remainder takes a's sign and never exceeds |a|, so the range holds for
// either sign of b. b's magnitude is not used to narrow it.
func transferMod(lhs *SolcRange, _ gref.NodeIdx, _ *SolcRange, _ gref.Loc) *SolcRange {
	zero, _ := concrete.FromUint256(256, bigZeroLiteral)

	return &SolcRange{Min: Min(lhs.Min, Concrete(zero)), Max: Max(lhs.Max, Concrete(zero))}
}

func transferExp(lhs *SolcRange, rhsRef gref.NodeIdx, _ *SolcRange, loc gref.Loc) *SolcRange {
	rhs := rhsElem(rhsRef, loc)

	return &SolcRange{
		Min: ElemExpr{Op: eExp, Lhs: lhs.Min, Rhs: rhs},
		Max: ElemExpr{Op: eExp, Lhs: lhs.Max, Rhs: rhs},
	}
}

func transferShl(lhs *SolcRange, rhsRef gref.NodeIdx, _ *SolcRange, loc gref.Loc) *SolcRange {
	rhs := rhsElem(rhsRef, loc)

	return &SolcRange{
		Min: ElemExpr{Op: eShl, Lhs: lhs.Min, Rhs: rhs},
		Max: ElemExpr{Op: eShl, Lhs: lhs.Max, Rhs: rhs},
	}
}

func transferShr(lhs *SolcRange, rhsRef gref.NodeIdx, _ *SolcRange, loc gref.Loc) *SolcRange {
	rhs := rhsElem(rhsRef, loc)

	return &SolcRange{
		Min: ElemExpr{Op: eShr, Lhs: lhs.Min, Rhs: rhs},
		Max: ElemExpr{Op: eShr, Lhs: lhs.Max, Rhs: rhs},
	}
}

// extremesRange builds the standard two-combination min/max interval result
// for multiplication by a possibly-either-sign rhs: lhs.Min and lhs.Max are
// each multiplied by the same lazy rhs reference, and Eval's evalExtremes
// later expands rhs's own min/max at resolution time, giving the full
// four-combination interval-multiplication formula lazily.
func extremesRange(rhsMinMax Elem, lhs *SolcRange) *SolcRange {
	combos := []Elem{
		Mul(lhs.Min, rhsMinMax),
		Mul(lhs.Max, rhsMinMax),
	}

	return &SolcRange{
		Min: Min(combos[0], combos[1]),
		Max: Max(combos[0], combos[1]),
	}
}

func transferBitwiseConservative(op RangeOp) TransferFunc {
	return func(lhs *SolcRange, rhsRef gref.NodeIdx, rhsRange *SolcRange, loc gref.Loc) *SolcRange {
		rhs := rhsElem(rhsRef, loc)
		switch op {
		case OpBitAnd:
			zero, _ := concrete.FromUint256(256, bigZeroLiteral)

			return &SolcRange{Min: Concrete(zero), Max: Min(lhs.Max, rhs)}
		case OpBitOr, OpBitXor:
			return &SolcRange{Min: Max(lhs.Min, rhs), Max: Add(lhs.Max, rhs)}
		default:
			return lhs
		}
	}
}

func transferComparison(op RangeOp) TransferFunc {
	return func(lhs *SolcRange, rhsRef gref.NodeIdx, rhsRange *SolcRange, loc gref.Loc) *SolcRange {
		lv, lok := Eval(lhs.Min, false, trivialResolver{})
		hv, hok := Eval(lhs.Max, true, trivialResolver{})
		rv, rok := Eval(rhsRange.Min, false, trivialResolver{})
		rh, rhok := Eval(rhsRange.Max, true, trivialResolver{})
		if lok && hok && rok && rhok && lv.Equal(hv) && rv.Equal(rh) {
			b, _ := concreteCompare(op, lv, rv)

			return SingletonRange(b)
		}

		return FullBoolRange()
	}
}

func transferBoolean(op RangeOp) TransferFunc {
	return func(lhs *SolcRange, rhsRef gref.NodeIdx, rhsRange *SolcRange, loc gref.Loc) *SolcRange {
		lv, lok := Eval(lhs.Min, false, trivialResolver{})
		hv, hok := Eval(lhs.Max, true, trivialResolver{})
		rv, rok := Eval(rhsRange.Min, false, trivialResolver{})
		rh, rhok := Eval(rhsRange.Max, true, trivialResolver{})
		if lok && hok && rok && rhok && lv.Equal(hv) && rv.Equal(rh) {
			var b concrete.Value
			if op == OpAnd {
				b, _ = concrete.And(lv, rv)
			} else {
				b, _ = concrete.Or(lv, rv)
			}

			return SingletonRange(b)
		}

		return FullBoolRange()
	}
}

func transferNot(lhs *SolcRange, _ gref.NodeIdx, _ *SolcRange, _ gref.Loc) *SolcRange {
	lv, lok := Eval(lhs.Min, false, trivialResolver{})
	hv, hok := Eval(lhs.Max, true, trivialResolver{})
	if lok && hok && lv.Equal(hv) {
		b, _ := concrete.Not(lv)

		return SingletonRange(b)
	}

	return FullBoolRange()
}

func transferIdentity(lhs *SolcRange, _ gref.NodeIdx, _ *SolcRange, _ gref.Loc) *SolcRange {
	return lhs
}

func concreteCompare(op RangeOp, a, b concrete.Value) (concrete.Value, error) {
	switch op {
	case OpLt:
		return concrete.Lt(a, b)
	case OpLte:
		return concrete.Lte(a, b)
	case OpGt:
		return concrete.Gt(a, b)
	case OpGte:
		return concrete.Gte(a, b)
	case OpEq:
		return concrete.Eq(a, b)
	case OpNeq:
		return concrete.Neq(a, b)
	default:
		return concrete.Value{}, concrete.ErrKindMismatch
	}
}

// trivialResolver resolves nothing; it is used by comparison/boolean
// transfer functions that only ever probe already-concrete lhs/rhs
// snapshots (ElemConcrete leaves), never a Dynamic reference.
type trivialResolver struct{}

func (trivialResolver) RangeOf(gref.NodeIdx) (*SolcRange, bool) { return nil, false }
