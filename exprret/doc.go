// Package exprret defines ExprRet, the sum type an expression evaluation
// returns: a single result in a single context, a fork into several
// sub-results (one per resulting context), or a proof that the current path
// is infeasible.
//
// Like srange.Elem and pgraph.Node, ExprRet is modeled as a small closed
// interface with an unexported marker method, since Go has no native sum
// type. Single/Multi/Killed are the only three implementations.
package exprret
