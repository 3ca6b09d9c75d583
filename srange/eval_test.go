package srange_test

import (
	"math/big"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solgraph/solsym/concrete"
	"github.com/solgraph/solsym/gref"
	"github.com/solgraph/solsym/srange"
)

// fakeResolver backs srange.Resolver with a plain map for tests that need a
// Dynamic reference to resolve against a known range.
type fakeResolver map[gref.NodeIdx]*srange.SolcRange

func (f fakeResolver) RangeOf(ref gref.NodeIdx) (*srange.SolcRange, bool) {
	r, ok := f[ref]

	return r, ok
}

func mustUint(t *testing.T, bits uint16, v int64) concrete.Value {
	t.Helper()
	val, err := concrete.FromUint256(bits, big.NewInt(v))
	require.NoError(t, err)

	return val
}

func mustInt(t *testing.T, bits uint16, v int64) concrete.Value {
	t.Helper()
	val, err := concrete.FromInt256(bits, big.NewInt(v))
	require.NoError(t, err)

	return val
}

func uintElem(t *testing.T, bits uint16, v int64) srange.Elem {
	return srange.Concrete(mustUint(t, bits, v))
}

func TestEvalConcreteIgnoresWantMax(t *testing.T) {
	e := uintElem(t, 256, 42)

	v, ok := srange.Eval(e, false, fakeResolver{})
	require.True(t, ok)
	require.Equal(t, "42", v.String())

	v, ok = srange.Eval(e, true, fakeResolver{})
	require.True(t, ok)
	require.Equal(t, "42", v.String())
}

func TestEvalConcreteDynNeverResolves(t *testing.T) {
	_, ok := srange.Eval(srange.ElemConcreteDyn{}, true, fakeResolver{})
	require.False(t, ok)
}

func TestEvalDynamicPicksMinOrMax(t *testing.T) {
	ref := gref.NodeIdx(7)
	resolver := fakeResolver{
		ref: &srange.SolcRange{Min: uintElem(t, 256, 10), Max: uintElem(t, 256, 20)},
	}
	e := srange.Dynamic(ref, gref.Implicit)

	minV, ok := srange.Eval(e, false, resolver)
	require.True(t, ok)
	require.Equal(t, "10", minV.String())

	maxV, ok := srange.Eval(e, true, resolver)
	require.True(t, ok)
	require.Equal(t, "20", maxV.String())
}

func TestEvalDynamicUnresolvedRefFails(t *testing.T) {
	e := srange.Dynamic(gref.NodeIdx(99), gref.Implicit)
	_, ok := srange.Eval(e, true, fakeResolver{})
	require.False(t, ok)
}

func TestEvalSubInvertsEndpointDirection(t *testing.T) {
	// a - b, a in [2,5], b in [1,3]. Minimizing the result minimizes a and
	// maximizes b; maximizing it does the reverse.
	ref := gref.NodeIdx(1)
	resolver := fakeResolver{
		ref: {Min: srange.Concrete(mustInt(t, 256, 1)), Max: srange.Concrete(mustInt(t, 256, 3))},
	}
	a := &srange.SolcRange{Min: srange.Concrete(mustInt(t, 256, 2)), Max: srange.Concrete(mustInt(t, 256, 5))}
	b := srange.Dynamic(ref, gref.Implicit)

	minE := srange.Sub(a.Min, b)
	v, ok := srange.Eval(minE, false, resolver)
	require.True(t, ok)
	vb, _ := v.IntVal()
	require.Equal(t, big.NewInt(-1), vb, "min(a) - max(b) = 2 - 3")

	maxE := srange.Sub(a.Max, b)
	v, ok = srange.Eval(maxE, true, resolver)
	require.True(t, ok)
	vb, _ = v.IntVal()
	require.Equal(t, big.NewInt(4), vb, "max(a) - min(b) = 5 - 1")
}

func TestEvalMulExtremesOverSignedInterval(t *testing.T) {
	// lhs in [-3,4], rhs in [-2,5] (signed). The interval-multiplication
	// extremes formula picks the min/max across all four sign combinations.
	ref := gref.NodeIdx(2)
	resolver := fakeResolver{
		ref: {Min: srange.Concrete(mustInt(t, 256, -2)), Max: srange.Concrete(mustInt(t, 256, 5))},
	}
	lhs := &srange.SolcRange{Min: srange.Concrete(mustInt(t, 256, -3)), Max: srange.Concrete(mustInt(t, 256, 4))}
	rhs := srange.Dynamic(ref, gref.Implicit)

	combos := []srange.Elem{srange.Mul(lhs.Min, rhs), srange.Mul(lhs.Max, rhs)}
	result := &srange.SolcRange{Min: srange.Min(combos[0], combos[1]), Max: srange.Max(combos[0], combos[1])}

	minV, ok := srange.Eval(result.Min, false, resolver)
	require.True(t, ok)
	minB, _ := minV.IntVal()
	require.Equal(t, big.NewInt(-15), minB)

	maxV, ok := srange.Eval(result.Max, true, resolver)
	require.True(t, ok)
	maxB, _ := maxV.IntVal()
	require.Equal(t, big.NewInt(20), maxB)
}

func TestContainsTrueAndFalse(t *testing.T) {
	outer := &srange.SolcRange{Min: uintElem(t, 256, 0), Max: uintElem(t, 256, 100)}
	inner := &srange.SolcRange{Min: uintElem(t, 256, 10), Max: uintElem(t, 256, 20)}
	require.True(t, outer.Contains(inner, fakeResolver{}))
	require.False(t, inner.Contains(outer, fakeResolver{}))
}

func TestContainsFalseOnUnresolvedEndpoint(t *testing.T) {
	outer := &srange.SolcRange{Min: uintElem(t, 256, 0), Max: uintElem(t, 256, 100)}
	unresolved := &srange.SolcRange{Min: srange.Dynamic(gref.NodeIdx(123), gref.Implicit), Max: uintElem(t, 256, 20)}
	require.False(t, outer.Contains(unresolved, fakeResolver{}))
}

func TestMinIsNegative(t *testing.T) {
	neg := &srange.SolcRange{Min: srange.Concrete(mustInt(t, 256, -5)), Max: srange.Concrete(mustInt(t, 256, 5))}
	require.True(t, neg.MinIsNegative(fakeResolver{}))

	pos := &srange.SolcRange{Min: uintElem(t, 256, 0), Max: uintElem(t, 256, 5)}
	require.False(t, pos.MinIsNegative(fakeResolver{}))
}

func TestContainsZero(t *testing.T) {
	spanning := &srange.SolcRange{Min: srange.Concrete(mustInt(t, 256, -5)), Max: srange.Concrete(mustInt(t, 256, 5))}
	require.True(t, spanning.ContainsZero(fakeResolver{}))

	positive := &srange.SolcRange{Min: uintElem(t, 256, 1), Max: uintElem(t, 256, 5)}
	require.False(t, positive.ContainsZero(fakeResolver{}))

	require.False(t, (*srange.SolcRange)(nil).ContainsZero(fakeResolver{}))
}
