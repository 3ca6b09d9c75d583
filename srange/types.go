package srange

import (
	"errors"
	"math/big"

	"github.com/solgraph/solsym/concrete"
	"github.com/solgraph/solsym/gref"
)

// Sentinel errors for the range algebra.
var (
	// ErrNoRange indicates a SolcRange was requested from something that
	// does not carry one (e.g. a Multi or Killed operand).
	ErrNoRange = errors.New("srange: operand has no range")

	// ErrUnresolved indicates Eval could not resolve every Dynamic reference
	// in an Elem tree against the supplied Resolver.
	ErrUnresolved = errors.New("srange: could not resolve dynamic range reference")
)

// RangeOp enumerates the operators the range algebra knows how to transfer
// a SolcRange through.
type RangeOp int

const (
	OpAdd RangeOp = iota
	OpSub
	OpMul
	OpDiv
	OpMod
	OpExp
	OpShl
	OpShr
	OpBitAnd
	OpBitOr
	OpBitXor
	OpLt
	OpLte
	OpGt
	OpGte
	OpEq
	OpNeq
	OpAnd
	OpOr
	OpNot
)

var opNames = map[RangeOp]string{
	OpAdd: "+", OpSub: "-", OpMul: "*", OpDiv: "/", OpMod: "%", OpExp: "**",
	OpShl: "<<", OpShr: ">>", OpBitAnd: "&", OpBitOr: "|", OpBitXor: "^",
	OpLt: "<", OpLte: "<=", OpGt: ">", OpGte: ">=", OpEq: "==", OpNeq: "!=",
	OpAnd: "&&", OpOr: "||", OpNot: "!",
}

// String renders the operator the way it would appear in a synthesized tmp
// variable's name, e.g. "tmp1(a + b)".
func (op RangeOp) String() string {
	if s, ok := opNames[op]; ok {
		return s
	}

	return "?"
}

// IsOverflowChecked reports whether op is one of the five operators for
// which the evaluator synthesizes an implicit safety precondition:
// Div, Mod, Sub, Add, Mul.
func (op RangeOp) IsOverflowChecked() bool {
	switch op {
	case OpDiv, OpMod, OpSub, OpAdd, OpMul:
		return true
	default:
		return false
	}
}

// elemOp is the small internal arithmetic vocabulary Elem's lazy expression
// trees are built from. It intentionally does not reuse RangeOp: Elem::min
// and Elem::max have no corresponding Solidity operator, and giving them
// their own tag keeps RangeOp a 1:1 mirror of Solidity's operators rather
// than overloading it with tree-construction-only meanings.
type elemOp int

const (
	eAdd elemOp = iota
	eSub
	eMul
	eDiv
	eMod
	eExp
	eShl
	eShr
	eMin
	eMax
)

// Elem is the recursive interval-endpoint expression tree.
// Exactly one of the concrete implementations below satisfies it at a time;
// Go has no closed sum type, so isElem is an unexported marker method that
// restricts implementers to this package's four variants.
type Elem interface {
	isElem()
	String() string
}

// ElemConcrete is a literal endpoint.
type ElemConcrete struct {
	Value concrete.Value
}

func (ElemConcrete) isElem() {}
func (e ElemConcrete) String() string { return e.Value.String() }

// ElemDynamic is a late-bound reference to another variable's current range.
// Resolution happens at Eval time via a Resolver, never at construction
// time, so Dynamic refs never dangle even though graph nodes are
// append-only and indices are allocated out of order relative to range
// construction — including a reference that cycles back to a node still
// being built.
type ElemDynamic struct {
	Ref gref.NodeIdx
	Loc gref.Loc
}

func (ElemDynamic) isElem() {}
func (e ElemDynamic) String() string { return e.Ref.String() }

// ElemConcreteDyn marks an endpoint whose concrete *shape* is known (e.g. a
// dynamic bytes/string length is always >= 0) but whose value is not a
// fixed literal. Eval never resolves it (it reports ok=false), so it is
// primarily useful as a placeholder min/max for dynamically-sized builtins
// like bytes/string.
type ElemConcreteDyn struct{}

func (ElemConcreteDyn) isElem() {}
func (ElemConcreteDyn) String() string { return "<dyn>" }

// ElemExpr is a lazy binary (or unary, with Rhs == nil) operation over two
// endpoint sub-expressions.
type ElemExpr struct {
	Op  elemOp
	Lhs Elem
	Rhs Elem // nil for a unary op (none currently constructed, kept for symmetry)
}

func (ElemExpr) isElem() {}
func (e ElemExpr) String() string {
	if e.Rhs == nil {
		return "(" + e.Lhs.String() + ")"
	}

	return "(" + e.Lhs.String() + " ? " + e.Rhs.String() + ")"
}

// Concrete wraps a concrete.Value as a singleton Elem.
func Concrete(v concrete.Value) Elem { return ElemConcrete{Value: v} }

// Dynamic wraps a late-bound variable reference as an Elem.
func Dynamic(ref gref.NodeIdx, loc gref.Loc) Elem { return ElemDynamic{Ref: ref, Loc: loc} }

// Max returns a lazy Elem computing max(a, b).
func Max(a, b Elem) Elem { return ElemExpr{Op: eMax, Lhs: a, Rhs: b} }

// Min returns a lazy Elem computing min(a, b).
func Min(a, b Elem) Elem { return ElemExpr{Op: eMin, Lhs: a, Rhs: b} }

// Add/Sub/Mul/Div lift concrete.Value's arithmetic into the Elem tree.
func Add(a, b Elem) Elem { return ElemExpr{Op: eAdd, Lhs: a, Rhs: b} }
func Sub(a, b Elem) Elem { return ElemExpr{Op: eSub, Lhs: a, Rhs: b} }
func Mul(a, b Elem) Elem { return ElemExpr{Op: eMul, Lhs: a, Rhs: b} }
func Div(a, b Elem) Elem { return ElemExpr{Op: eDiv, Lhs: a, Rhs: b} }

// SolcRange is the abstract numeric value of a ContextVar: a closed interval
// [Min, Max] plus a list of excluded sub-intervals.
type SolcRange struct {
	Min        Elem
	Max        Elem
	Exclusions []SolcRange
}

// SingletonRange builds {c, c, ∅} for a concrete literal.
func SingletonRange(v concrete.Value) *SolcRange {
	e := Concrete(v)

	return &SolcRange{Min: e, Max: e}
}

// FullUintRange builds [0, 2^bits - 1].
func FullUintRange(bits uint16) *SolcRange {
	zero, _ := concrete.FromUint256(bits, big.NewInt(0))
	max, _ := concrete.FromUint256(bits, concrete.MaxUintN(bits))

	return &SolcRange{Min: Concrete(zero), Max: Concrete(max)}
}

// FullIntRange builds [-2^(bits-1), 2^(bits-1) - 1].
func FullIntRange(bits uint16) *SolcRange {
	min, _ := concrete.FromInt256(bits, concrete.MinIntN(bits))
	max, _ := concrete.FromInt256(bits, concrete.MaxIntN(bits))

	return &SolcRange{Min: Concrete(min), Max: Concrete(max)}
}

// FullBoolRange builds {false, true}.
func FullBoolRange() *SolcRange {
	return &SolcRange{Min: Concrete(concrete.FromBool(false)), Max: Concrete(concrete.FromBool(true))}
}

// RangeExclusions returns a copy of r's exclusion list (mirrors the
// original's `range_exclusions()` accessor used before appending a new
// excluded sub-interval).
func (r *SolcRange) RangeExclusions() []SolcRange {
	out := make([]SolcRange, len(r.Exclusions))
	copy(out, r.Exclusions)

	return out
}

// CloneRange deep-copies a SolcRange's Exclusions slice (Min/Max are
// immutable Elem trees shared by value, which is safe to alias). Every
// AdvanceVarInCtx call must clone the predecessor's range through this
// before handing the copy to a caller who will tighten it in place —
// otherwise tightening a new version's range would retroactively mutate
// every earlier version's range, since both would point at the same
// *SolcRange — ranges only ever tighten across versions, which presumes
// each version owns its own range.
func CloneRange(r *SolcRange) *SolcRange {
	if r == nil {
		return nil
	}
	cp := *r
	if r.Exclusions != nil {
		cp.Exclusions = append([]SolcRange(nil), r.Exclusions...)
	}

	return &cp
}

// CloneVarType deep-copies vt's range (see CloneRange) while keeping its
// other fields (Builtin/Value/Kind refs) aliased — those never mutate.
func CloneVarType(vt VarType) VarType {
	switch v := vt.(type) {
	case VTBuiltIn:
		return VTBuiltIn{Builtin: v.Builtin, Rng: CloneRange(v.Rng)}
	case VTConcrete:
		return VTConcrete{Value: v.Value, Rng: CloneRange(v.Rng)}
	case VTUser:
		return VTUser{Kind: v.Kind, Rng: CloneRange(v.Rng)}
	default:
		return vt
	}
}
