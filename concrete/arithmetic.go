package concrete

import (
	"errors"
	"math/big"
)

// ErrDivByZero is returned by Div/Mod when the divisor is the concrete zero
// value. Callers in srange only ever see this for fully-concrete operands;
// the symbolic case is instead guarded by the evaluator's synthesized
// preconditions.
var ErrDivByZero = errors.New("concrete: division by zero")

// bitsOf returns the operative bit width for a binary op over two values of
// (conventionally) matching kind/width; it picks the wider of the two so a
// mixed-width fold still wraps at the correct width.
func bitsOf(a, b Value) uint16 {
	if a.Bits >= b.Bits {
		return a.Bits
	}

	return b.Bits
}

func numeric(v Value) (*big.Int, bool, uint16, error) {
	switch v.Kind {
	case KindInt:
		return v.I256, true, v.Bits, nil
	case KindUint, KindAddress:
		n, _ := v.UintVal()

		return n, false, v.Bits, nil
	case KindBytes:
		n, _ := v.UintVal()

		return n, false, v.Bits, nil
	case KindBool:
		n, _ := v.UintVal()

		return n, false, 8, nil
	default:
		return nil, false, 0, ErrNotNumeric
	}
}

func rewrap(n *big.Int, signed bool, bits uint16) Value {
	if signed {
		v, _ := FromInt256(bits, n)

		return v
	}
	v, _ := FromUint256(bits, n)

	return v
}

// Add returns a+b, wrapped at the wider operand's bit width.
func Add(a, b Value) (Value, error) {
	an, signed, bits, err := numeric(a)
	if err != nil {
		return Value{}, err
	}
	bn, _, bbits, err := numeric(b)
	if err != nil {
		return Value{}, err
	}
	if bbits > bits {
		bits = bbits
	}
	sum := new(big.Int).Add(an, bn)

	return rewrap(sum, signed, bits), nil
}

// Sub returns a-b, wrapped at the wider operand's bit width.
func Sub(a, b Value) (Value, error) {
	an, signed, bits, err := numeric(a)
	if err != nil {
		return Value{}, err
	}
	bn, _, bbits, err := numeric(b)
	if err != nil {
		return Value{}, err
	}
	if bbits > bits {
		bits = bbits
	}
	diff := new(big.Int).Sub(an, bn)

	return rewrap(diff, signed, bits), nil
}

// Mul returns a*b, wrapped at the wider operand's bit width.
func Mul(a, b Value) (Value, error) {
	an, signed, bits, err := numeric(a)
	if err != nil {
		return Value{}, err
	}
	bn, _, bbits, err := numeric(b)
	if err != nil {
		return Value{}, err
	}
	if bbits > bits {
		bits = bbits
	}
	prod := new(big.Int).Mul(an, bn)

	return rewrap(prod, signed, bits), nil
}

// Div returns a/b using Solidity's truncating-toward-zero semantics.
func Div(a, b Value) (Value, error) {
	an, signed, bits, err := numeric(a)
	if err != nil {
		return Value{}, err
	}
	bn, _, bbits, err := numeric(b)
	if err != nil {
		return Value{}, err
	}
	if bn.Sign() == 0 {
		return Value{}, ErrDivByZero
	}
	if bbits > bits {
		bits = bbits
	}
	q := new(big.Int).Quo(an, bn)

	return rewrap(q, signed, bits), nil
}

// Mod returns a%b using Solidity's truncating-toward-zero remainder.
func Mod(a, b Value) (Value, error) {
	an, signed, bits, err := numeric(a)
	if err != nil {
		return Value{}, err
	}
	bn, _, bbits, err := numeric(b)
	if err != nil {
		return Value{}, err
	}
	if bn.Sign() == 0 {
		return Value{}, ErrDivByZero
	}
	if bbits > bits {
		bits = bbits
	}
	r := new(big.Int).Rem(an, bn)

	return rewrap(r, signed, bits), nil
}

// Exp returns a**b. b is always treated as unsigned (Solidity disallows
// negative exponents at the type level).
func Exp(a, b Value) (Value, error) {
	an, signed, bits, err := numeric(a)
	if err != nil {
		return Value{}, err
	}
	bn, _, _, err := numeric(b)
	if err != nil {
		return Value{}, err
	}
	if bn.Sign() < 0 {
		return Value{}, ErrNotNumeric
	}
	r := new(big.Int).Exp(an, bn, nil)
	r.And(r, mask(bits))

	return rewrap(r, signed, bits), nil
}

// Shl/Shr: logical shifts, wrapped at the left operand's width.
func Shl(a, b Value) (Value, error) {
	an, signed, bits, err := numeric(a)
	if err != nil {
		return Value{}, err
	}
	bn, _, _, err := numeric(b)
	if err != nil {
		return Value{}, err
	}
	r := new(big.Int).Lsh(an, uint(bn.Int64()))

	return rewrap(r, signed, bits), nil
}

func Shr(a, b Value) (Value, error) {
	an, signed, bits, err := numeric(a)
	if err != nil {
		return Value{}, err
	}
	bn, _, _, err := numeric(b)
	if err != nil {
		return Value{}, err
	}
	r := new(big.Int).Rsh(an, uint(bn.Int64()))

	return rewrap(r, signed, bits), nil
}

// BitAnd/BitOr/BitXor: bitwise ops over the numeric reading of both operands
// (two's complement for signed values), wrapped at the wider operand's width.
func BitAnd(a, b Value) (Value, error) {
	return bitwise(a, b, (*big.Int).And)
}

func BitOr(a, b Value) (Value, error) {
	return bitwise(a, b, (*big.Int).Or)
}

func BitXor(a, b Value) (Value, error) {
	return bitwise(a, b, (*big.Int).Xor)
}

func bitwise(a, b Value, fn func(z, x, y *big.Int) *big.Int) (Value, error) {
	an, signed, bits, err := numeric(a)
	if err != nil {
		return Value{}, err
	}
	bn, _, bbits, err := numeric(b)
	if err != nil {
		return Value{}, err
	}
	if bbits > bits {
		bits = bbits
	}
	r := fn(new(big.Int), an, bn)

	return rewrap(r, signed, bits), nil
}

// And/Or/Not implement boolean logic for KindBool operands.
func And(a, b Value) (Value, error) {
	if a.Kind != KindBool || b.Kind != KindBool {
		return Value{}, ErrKindMismatch
	}

	return FromBool(a.Bool && b.Bool), nil
}

func Or(a, b Value) (Value, error) {
	if a.Kind != KindBool || b.Kind != KindBool {
		return Value{}, ErrKindMismatch
	}

	return FromBool(a.Bool || b.Bool), nil
}

func Not(a Value) (Value, error) {
	if a.Kind != KindBool {
		return Value{}, ErrKindMismatch
	}

	return FromBool(!a.Bool), nil
}

// Lt/Lte/Gt/Gte/Eq/Neq return a KindBool Value.
func Lt(a, b Value) (Value, error)  { return FromBool(a.Cmp(b) < 0), nil }
func Lte(a, b Value) (Value, error) { return FromBool(a.Cmp(b) <= 0), nil }
func Gt(a, b Value) (Value, error)  { return FromBool(a.Cmp(b) > 0), nil }
func Gte(a, b Value) (Value, error) { return FromBool(a.Cmp(b) >= 0), nil }
func Eq(a, b Value) (Value, error)  { return FromBool(a.Equal(b)), nil }
func Neq(a, b Value) (Value, error) { return FromBool(!a.Equal(b)), nil }
