package srange

import (
	"math/big"

	"github.com/solgraph/solsym/concrete"
	"github.com/solgraph/solsym/gref"
)

// Resolver resolves a Dynamic Elem reference to the SolcRange currently
// attached to that graph node. Package srange has no dependency on pgraph
// (pgraph depends on srange, for ContextVar.Ty), so Resolver is the seam
// ctxvar/evaluator plug the live graph into when they call Eval.
type Resolver interface {
	RangeOf(ref gref.NodeIdx) (*SolcRange, bool)
}

// Eval resolves e to a concrete endpoint value. wantMax selects which
// extreme of a Dynamic reference's range to substitute: true picks the
// referenced variable's current maximum, false its current minimum.
//
// For composite ElemExpr nodes, wantMax is propagated to each child
// according to whether that child's operand position is monotonically
// increasing or decreasing in the outer operator — e.g. for a-b, maximizing
// the result means maximizing a but *minimizing* b; any operator that can
// invert ordering this way gets the same endpoint swap.
func Eval(e Elem, wantMax bool, env Resolver) (concrete.Value, bool) {
	switch v := e.(type) {
	case ElemConcrete:
		return v.Value, true
	case ElemConcreteDyn:
		return concrete.Value{}, false
	case ElemDynamic:
		r, ok := env.RangeOf(v.Ref)
		if !ok {
			return concrete.Value{}, false
		}
		if wantMax {
			return Eval(r.Max, true, env)
		}

		return Eval(r.Min, false, env)
	case ElemExpr:
		return evalExpr(v, wantMax, env)
	default:
		return concrete.Value{}, false
	}
}

func evalExpr(e ElemExpr, wantMax bool, env Resolver) (concrete.Value, bool) {
	switch e.Op {
	case eMin, eMax:
		a, aok := Eval(e.Lhs, wantMax, env)
		b, bok := Eval(e.Rhs, wantMax, env)
		switch {
		case aok && bok:
			if (e.Op == eMax) == (a.Cmp(b) >= 0) {
				return a, true
			}

			return b, true
		case aok:
			return a, true
		case bok:
			return b, true
		default:
			return concrete.Value{}, false
		}
	case eAdd:
		return evalFold(e, wantMax, wantMax, concrete.Add, env)
	case eSub:
		// a - b: maximizing wants a maximized and b minimized.
		return evalFold(e, wantMax, !wantMax, concrete.Sub, env)
	case eMul:
		return evalExtremes(e, wantMax, concrete.Mul, env)
	case eDiv:
		return evalExtremes(e, wantMax, safeDiv, env)
	case eMod:
		return evalExtremes(e, wantMax, safeMod, env)
	case eExp:
		return evalFold(e, wantMax, wantMax, safeExp, env)
	case eShl:
		return evalFold(e, wantMax, wantMax, safeShl, env)
	case eShr:
		// shifting right by a larger amount shrinks the magnitude, so the
		// shift-amount operand's direction inverts relative to the base.
		return evalFold(e, wantMax, !wantMax, safeShr, env)
	default:
		return concrete.Value{}, false
	}
}

func evalFold(e ElemExpr, lhsMax, rhsMax bool, fn func(a, b concrete.Value) (concrete.Value, error), env Resolver) (concrete.Value, bool) {
	a, aok := Eval(e.Lhs, lhsMax, env)
	b, bok := Eval(e.Rhs, rhsMax, env)
	if !aok || !bok {
		return concrete.Value{}, false
	}
	r, err := fn(a, b)
	if err != nil {
		return concrete.Value{}, false
	}

	return r, true
}

// evalExtremes implements interval multiplication/division by evaluating
// fn at all four sign-extreme combinations of (lhs, rhs) and taking the
// overall min or max, per the standard interval-arithmetic formula. This
// stays correct when an operand's sign is not statically known, at the cost
// of the laziness a single Dynamic substitution would have had — each
// combination still resolves against the *current* range via Eval, so
// later tightening is still observed.
func evalExtremes(e ElemExpr, wantMax bool, fn func(a, b concrete.Value) (concrete.Value, error), env Resolver) (concrete.Value, bool) {
	lhsMin, lhsMinOk := Eval(e.Lhs, false, env)
	lhsMax, lhsMaxOk := Eval(e.Lhs, true, env)
	rhsMin, rhsMinOk := Eval(e.Rhs, false, env)
	rhsMax, rhsMaxOk := Eval(e.Rhs, true, env)
	if !lhsMinOk || !lhsMaxOk || !rhsMinOk || !rhsMaxOk {
		return concrete.Value{}, false
	}

	var best concrete.Value
	haveBest := false
	consider := func(a, b concrete.Value) {
		v, err := fn(a, b)
		if err != nil {
			return
		}
		if !haveBest {
			best, haveBest = v, true

			return
		}
		if wantMax && v.Cmp(best) > 0 {
			best = v
		}
		if !wantMax && v.Cmp(best) < 0 {
			best = v
		}
	}
	consider(lhsMin, rhsMin)
	consider(lhsMin, rhsMax)
	consider(lhsMax, rhsMin)
	consider(lhsMax, rhsMax)
	if !haveBest {
		return concrete.Value{}, false
	}

	return best, true
}

func safeDiv(a, b concrete.Value) (concrete.Value, error) { return concrete.Div(a, b) }
func safeMod(a, b concrete.Value) (concrete.Value, error) { return concrete.Mod(a, b) }
func safeExp(a, b concrete.Value) (concrete.Value, error) { return concrete.Exp(a, b) }
func safeShl(a, b concrete.Value) (concrete.Value, error) { return concrete.Shl(a, b) }
func safeShr(a, b concrete.Value) (concrete.Value, error) { return concrete.Shr(a, b) }

// Contains decides whether self's interval covers other's under the current
// bindings resolvable through env. Endpoints that fail to resolve make
// Contains conservatively report false.
func (r *SolcRange) Contains(other *SolcRange, env Resolver) bool {
	selfMin, ok1 := Eval(r.Min, false, env)
	selfMax, ok2 := Eval(r.Max, true, env)
	otherMin, ok3 := Eval(other.Min, false, env)
	otherMax, ok4 := Eval(other.Max, true, env)
	if !ok1 || !ok2 || !ok3 || !ok4 {
		return false
	}

	return selfMin.Cmp(otherMin) <= 0 && selfMax.Cmp(otherMax) >= 0
}

// MinIsNegative reports whether r's lower bound resolves to a negative
// value, used to decide the Div/Mod exclusion-vs-tighten split.
func (r *SolcRange) MinIsNegative(env Resolver) bool {
	v, ok := Eval(r.Min, false, env)
	if !ok {
		return false
	}

	return v.IsNegative()
}

// ContainsZero reports whether r's interval, resolved under env, covers 0.
// Used by the Exp fix-up: when both the base's and the exponent's ranges
// contain zero, the result's minimum is forced back down to 0 (0**0 = 1,
// but anything**0 and 0**anything-else both still touch 0 or 1).
func (r *SolcRange) ContainsZero(env Resolver) bool {
	if r == nil {
		return false
	}
	minV, ok1 := Eval(r.Min, false, env)
	maxV, ok2 := Eval(r.Max, true, env)
	if !ok1 || !ok2 {
		return false
	}

	zero := zeroLike(minV)

	return minV.Cmp(zero) <= 0 && maxV.Cmp(zero) >= 0
}

// zeroLike builds the concrete zero of the same kind/width as a sample
// value, so comparisons stay within one numeric reading (signed vs
// unsigned) rather than accidentally mixing them.
func zeroLike(sample concrete.Value) concrete.Value {
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
