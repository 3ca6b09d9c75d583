package srange

import (
	"github.com/solgraph/solsym/concrete"
	"github.com/solgraph/solsym/gref"
)

// VarType is the sum type a ContextVar's Ty field carries. As with Elem,
// Go's lack of a closed sum type is worked around with an unexported marker
// method restricting implementers to this package's three variants.
type VarType interface {
	isVarType()
	Range() *SolcRange
}

// VTBuiltIn types a variable as one of the built-in kinds (pgraph.BuiltinData),
// carrying the numeric range derived for that kind.
type VTBuiltIn struct {
	Builtin gref.NodeIdx
	Rng     *SolcRange
}

func (VTBuiltIn) isVarType()        {}
func (v VTBuiltIn) Range() *SolcRange { return v.Rng }

// VTConcrete types a variable as a fixed literal; its range is always the
// singleton {c, c, ∅}.
type VTConcrete struct {
	Value concrete.Value
	Rng   *SolcRange
}

func (VTConcrete) isVarType()        {}
func (v VTConcrete) Range() *SolcRange { return v.Rng }

// VTUser types a variable as a user-defined declaration (struct, enum,
// contract, ...). Range is nil for non-numeric user types (structs,
// contracts) and set for numeric ones (enums, user-defined value types).
type VTUser struct {
	Kind gref.NodeIdx
	Rng  *SolcRange
}

func (VTUser) isVarType()        {}
func (v VTUser) Range() *SolcRange { return v.Rng }

// NewConcreteVarType lifts a literal into a VTConcrete with its singleton
// range {c, c, ∅} already attached.
func NewConcreteVarType(v concrete.Value) VTConcrete {
	return VTConcrete{Value: v, Rng: SingletonRange(v)}
}

// ConcreteToBuiltin promotes a VTConcrete to the VTBuiltIn of the literal's
// own kind and bit width (256 when the literal carries none), so the range
// algebra has room to widen past the literal's own value. builtinRef is the graph node for that builtin kind, supplied by the
// caller (pgraph/driver own builtin interning, srange only knows how to size
// the range).
func ConcreteToBuiltin(c VTConcrete, builtinRef gref.NodeIdx) VTBuiltIn {
	bits := c.Value.Bits
	if bits == 0 {
		bits = 256
	}
	var rng *SolcRange
	switch c.Value.Kind {
	case concrete.KindInt:
		rng = FullIntRange(bits)
	case concrete.KindBool:
		rng = FullBoolRange()
	default:
		rng = FullUintRange(bits)
	}

	return VTBuiltIn{Builtin: builtinRef, Rng: rng}
}
