package concrete

import (
	"errors"
	"fmt"
	"math/big"
)

// Sentinel errors for concrete-value construction and conversion.
var (
	// ErrBadBitWidth indicates a bit width outside the 8..256 (step 8) range
	// solc accepts for integer literals.
	ErrBadBitWidth = errors.New("concrete: bit width must be in 8..256 and a multiple of 8")

	// ErrNotNumeric indicates an arithmetic operation was given a non-numeric
	// operand (e.g. a string), or Exp was given a negative exponent.
	ErrNotNumeric = errors.New("concrete: value is not numeric")

	// ErrKindMismatch indicates a boolean operator (And/Or/Not) was applied to
	// a non-bool operand.
	ErrKindMismatch = errors.New("concrete: operand kinds are incompatible")
)

// Kind tags the shape of a Value.
type Kind int

const (
	// KindUint is an unsigned integer of some bit width in 8..256.
	KindUint Kind = iota
	// KindInt is a two's-complement signed integer of some bit width in 8..256.
	KindInt
	// KindBool is a boolean literal.
	KindBool
	// KindAddress is a 160-bit unsigned value (an account/contract address).
	KindAddress
	// KindBytes is a fixed-size byte string, bytes1..bytes32.
	KindBytes
	// KindString is a UTF-8 string literal.
	KindString
)

func (k Kind) String() string {
	switch k {
	case KindUint:
		return "uint"
	case KindInt:
		return "int"
	case KindBool:
		return "bool"
	case KindAddress:
		return "address"
	case KindBytes:
		return "bytes"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a bit-width-exact Solidity literal. Exactly one payload field is
// meaningful for a given Kind:
//
//	KindUint/KindAddress → U256 (canonical unsigned magnitude, masked to Bits)
//	KindInt              → I256 (signed value, already sign-extended to Bits)
//	KindBool             → Bool
//	KindBytes            → Bytes (left-padded/truncated to Bits/8 length)
//	KindString           → Str
type Value struct {
	Kind Kind
	Bits uint16 // bit width: 8..256 for Uint/Int, 160 for Address, 8..256 for Bytes

	U256 *big.Int
	I256 *big.Int
	Bool bool
	Bytes []byte
	Str   string
}

func validBits(bits uint16) bool {
	return bits >= 8 && bits <= 256 && bits%8 == 0
}

func mask(bits uint16) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(bits))
	return m.Sub(m, big.NewInt(1))
}

// MaxUint256 returns 2**256 - 1, the constant the evaluator's Add/Mul
// overflow preconditions are expressed against.
func MaxUint256() *big.Int {
	return mask(256)
}

// MaxUintN returns 2**bits - 1.
func MaxUintN(bits uint16) *big.Int {
	return mask(bits)
}

// MaxIntN/MinIntN bound a signed integer of the given bit width.
func MaxIntN(bits uint16) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	return m.Sub(m, big.NewInt(1))
}

func MinIntN(bits uint16) *big.Int {
	m := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	return m.Neg(m)
}

// FromUint256 builds an unsigned literal, masking v to the given bit width.
func FromUint256(bits uint16, v *big.Int) (Value, error) {
	if !validBits(bits) {
		return Value{}, ErrBadBitWidth
	}
	u := new(big.Int).And(v, mask(bits))

	return Value{Kind: KindUint, Bits: bits, U256: u}, nil
}

// FromInt256 builds a signed literal, wrapping v into [-2^(bits-1), 2^(bits-1)-1].
func FromInt256(bits uint16, v *big.Int) (Value, error) {
	if !validBits(bits) {
		return Value{}, ErrBadBitWidth
	}
	wrapped := wrapSigned(v, bits)

	return Value{Kind: KindInt, Bits: bits, I256: wrapped}, nil
}

// FromBool builds a boolean literal.
func FromBool(b bool) Value {
	return Value{Kind: KindBool, Bits: 1, Bool: b}
}

// FromAddress builds a 160-bit address literal from its numeric value,
// masked to 160 bits.
func FromAddress(v *big.Int) Value {
	u := new(big.Int).And(v, mask(160))

	return Value{Kind: KindAddress, Bits: 160, U256: u}
}

// FromBytesN builds a fixed-size bytesN literal, N in 1..32.
func FromBytesN(n uint16, b []byte) Value {
	buf := make([]byte, n)
	copy(buf, b)

	return Value{Kind: KindBytes, Bits: n * 8, Bytes: buf}
}

// FromString builds a string literal.
func FromString(s string) Value {
	return Value{Kind: KindString, Str: s}
}

// wrapSigned reduces v modulo 2^bits into two's-complement signed range.
func wrapSigned(v *big.Int, bits uint16) *big.Int {
	m := mask(bits)
	reduced := new(big.Int).And(v, m)
	half := new(big.Int).Lsh(big.NewInt(1), uint(bits-1))
	if reduced.Cmp(half) >= 0 {
		reduced.Sub(reduced, new(big.Int).Lsh(big.NewInt(1), uint(bits)))
	}

	return reduced
}

// UintVal returns the value's unsigned magnitude when it has a natural
// numeric reading (Uint, Address, Bytes-as-number, Bool-as-0-or-1), and
// false otherwise. This mirrors the original's `uint_val() -> Option<u256>`.
func (v Value) UintVal() (*big.Int, bool) {
	switch v.Kind {
	case KindUint, KindAddress:
		return new(big.Int).Set(v.U256), true
	case KindBytes:
		return new(big.Int).SetBytes(v.Bytes), true
	case KindBool:
		if v.Bool {
			return big.NewInt(1), true
		}
		return big.NewInt(0), true
	default:
		return nil, false
	}
}

// IntVal returns the value's signed reading for KindInt, or the unsigned
// reading promoted to signed for other numeric kinds.
func (v Value) IntVal() (*big.Int, bool) {
	if v.Kind == KindInt {
		return new(big.Int).Set(v.I256), true
	}

	return v.UintVal()
}

// IsNegative reports whether the value's natural numeric reading is < 0.
func (v Value) IsNegative() bool {
	if v.Kind == KindInt {
		return v.I256.Sign() < 0
	}

	return false
}

// Equal reports bit-for-bit and kind-for-kind equality.
func (v Value) Equal(other Value) bool {
	if v.Kind != other.Kind || v.Bits != other.Bits {
		return false
	}
	switch v.Kind {
	case KindUint, KindAddress:
		return v.U256.Cmp(other.U256) == 0
	case KindInt:
		return v.I256.Cmp(other.I256) == 0
	case KindBool:
		return v.Bool == other.Bool
	case KindBytes:
		return string(v.Bytes) == string(other.Bytes)
	case KindString:
		return v.Str == other.Str
	default:
		return false
	}
}

// String renders the value the way it would appear inside a synthesized tmp
// variable's display name.
func (v Value) String() string {
	switch v.Kind {
	case KindUint:
		return v.U256.String()
	case KindInt:
		return v.I256.String()
	case KindBool:
		if v.Bool {
			return "true"
		}
		return "false"
	case KindAddress:
		return "0x" + v.U256.Text(16)
	case KindBytes:
		return fmt.Sprintf("0x%x", v.Bytes)
	case KindString:
		return v.Str
	default:
		return "<concrete>"
	}
}

// Cmp orders two numeric values of the same signedness reading. It panics if
// the values are not both numeric; callers (srange) only ever compare
// operands already known to be numeric.
func (v Value) Cmp(other Value) int {
	if v.Kind == KindInt || other.Kind == KindInt {
		a, _ := v.IntVal()
		b, _ := other.IntVal()

		return a.Cmp(b)
	}
	a, _ := v.UintVal()
	b, _ := other.UintVal()

	return a.Cmp(b)
}
