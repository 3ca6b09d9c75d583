// Package srange implements the interval-range algebra used to abstractly
// evaluate Solidity expressions: the lazy endpoint expression tree Elem, the
// SolcRange{Min,Max,Exclusions} abstract value, and the per-operator
// transfer functions that propagate a SolcRange through a RangeOp.
//
// Design:
//
//   - Elem never eagerly evaluates. Two variables' ranges can reference each
//     other (x.max built from y, y.max built from x) without a borrow or
//     initialization-order problem, because Elem only stores NodeIdx
//     references (package gref) and resolves them against a Resolver at
//     query time — see Eval.
//   - Dynamic(ref) always resolves against the *current* range of ref: later
//     tightening of an operand (evaluator.Op narrowing a divisor's minimum,
//     say) is visible to every Elem tree that already referenced it, with no
//     tree rewriting required.
//   - Where an operator's exact interval image would need full case
//     analysis beyond the common arithmetic cases (bitwise ops, Mod, Exp on
//     arbitrary operands), the transfer function returns a sound but
//     widened range rather than a precise one.
package srange
