// Package evaluator implements the binary-operation evaluator: the
// algorithm that, given two already-evaluated operand sub-results and an
// operator, produces a result variable, propagates its interval range, and
// for symbolic/symbolic operands synthesizes the implicit safety
// precondition the operation requires (divisor != 0, no-underflow,
// no-overflow) as a constraint attached to the context.
//
// This is the hard part of the system. The algorithm, in order:
//
//  1. Cross-product the lhs/rhs ExprRet operands, fanning out across forked
//     contexts and short-circuiting on CtxKilled (Op).
//  2. Build the result variable: AdvanceVarInCtx for an assignment, or a
//     fresh named tmp ContextVar for an expression result (buildResultVar).
//  3. When both operands are symbolic, synthesize the operator's implicit
//     precondition and tighten the relevant operand's range in place
//     (divModPrecondition, subPrecondition, addPrecondition,
//     mulPrecondition).
//  4. Propagate the range through srange.DynFnFromOp(op).
//  5. Apply the Exp-with-zero fix-up (0**0 = 1, but the naive transfer
//     function reports min 1 even when the base can be 0).
//  6. Return the result wrapped as exprret.Single.
//
// Add's and Mul's preconditions recursively re-enter this same algorithm
// (Sub and Div respectively) against a freshly allocated UINT256_MAX
// operand. That operand is never the caller's own tmp, which is what keeps
// the recursion from ever looping back on a symbolic pair and bounds it to
// one extra level.
package evaluator
