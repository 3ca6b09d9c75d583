package srange_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/solgraph/solsym/concrete"
	"github.com/solgraph/solsym/srange"
)

func TestRangeOpString(t *testing.T) {
	require.Equal(t, "+", srange.OpAdd.String())
	require.Equal(t, "**", srange.OpExp.String())
	require.Equal(t, "?", srange.RangeOp(999).String())
}

func TestIsOverflowChecked(t *testing.T) {
	for _, op := range []srange.RangeOp{srange.OpAdd, srange.OpSub, srange.OpMul, srange.OpDiv, srange.OpMod} {
		require.True(t, op.IsOverflowChecked())
	}
	for _, op := range []srange.RangeOp{srange.OpShl, srange.OpLt, srange.OpAnd, srange.OpNot} {
		require.False(t, op.IsOverflowChecked())
	}
}

func TestSingletonRange(t *testing.T) {
	v := mustUint(t, 256, 7)
	r := srange.SingletonRange(v)

	minV, ok := srange.Eval(r.Min, false, fakeResolver{})
	require.True(t, ok)
	maxV, ok := srange.Eval(r.Max, true, fakeResolver{})
	require.True(t, ok)
	require.True(t, minV.Equal(maxV))
	require.Empty(t, r.Exclusions)
}

func TestCloneRangeNil(t *testing.T) {
	require.Nil(t, srange.CloneRange(nil))
}

func TestCloneRangeDoesNotAliasExclusions(t *testing.T) {
	excl := srange.SolcRange{Min: uintElem(t, 256, 5), Max: uintElem(t, 256, 5)}
	original := &srange.SolcRange{
		Min:        uintElem(t, 256, 0),
		Max:        uintElem(t, 256, 100),
		Exclusions: []srange.SolcRange{excl},
	}

	clone := srange.CloneRange(original)
	require.Len(t, clone.Exclusions, 1)

	// Appending to the clone's exclusions must never reach the original: each
	// version of a variable owns its own Exclusions slice.
	clone.Exclusions = append(clone.Exclusions, srange.SolcRange{Min: uintElem(t, 256, 50), Max: uintElem(t, 256, 50)})
	require.Len(t, original.Exclusions, 1, "appending to the clone must not grow the original's backing slice")

	clone.Exclusions[0] = srange.SolcRange{Min: uintElem(t, 256, 1), Max: uintElem(t, 256, 1)}
	origMin, ok := srange.Eval(original.Exclusions[0].Min, false, fakeResolver{})
	require.True(t, ok)
	origMinB, _ := origMin.UintVal()
	require.Equal(t, "5", origMinB.String(), "mutating the clone's exclusion element must not mutate the original's")
}

func TestCloneVarTypeClonesRangeKeepsOtherFieldsAliased(t *testing.T) {
	builtin := srange.VTBuiltIn{Builtin: 0, Rng: srange.FullUintRange(256)}
	cloned := srange.CloneVarType(builtin).(srange.VTBuiltIn)

	require.Equal(t, builtin.Builtin, cloned.Builtin)
	require.NotSame(t, builtin.Rng, cloned.Rng)
}

func TestConcreteToBuiltinWidensRange(t *testing.T) {
	lit := srange.NewConcreteVarType(mustUint(t, 8, 3))
	builtin := srange.ConcreteToBuiltin(lit, 0)

	minV, ok := srange.Eval(builtin.Rng.Min, false, fakeResolver{})
	require.True(t, ok)
	minB, _ := minV.UintVal()
	require.Equal(t, "0", minB.String())

	maxV, ok := srange.Eval(builtin.Rng.Max, true, fakeResolver{})
	require.True(t, ok)
	maxB, _ := maxV.UintVal()
	require.Equal(t, concrete.MaxUintN(8).String(), maxB.String())
}
