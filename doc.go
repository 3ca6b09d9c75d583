// Package solsym is the static-analysis core of a Solidity symbolic
// executor: it builds a typed, directed program graph from an already-parsed
// AST and symbolically evaluates expressions over it, propagating interval
// ranges and materializing the implicit safety preconditions Solidity's
// arithmetic requires (division-by-zero, underflow, overflow) as constrained
// nodes attached to the evaluation context.
//
// Package layout, leaves first:
//
//	concrete/  — bit-width-exact literal values and builtin numeric lift
//	srange/    — lazy interval trees (Elem), SolcRange, per-operator transfer functions
//	gref/      — stable graph-node indices and source locations shared by every package
//	pgraph/    — the append-only typed node/edge store (spec's program graph)
//	ctxvar/    — execution contexts and versioned variables
//	exprret/   — the Single/Multi/CtxKilled sum type expression evaluation returns
//	evaluator/ — the binary-operation evaluator: range propagation + precondition synthesis
//	driver/    — the Analyzer aggregate and the declare/resolve source-unit walker
//
// solsym does not parse Solidity source text itself — driver.Walk consumes
// an already-parsed AST an external frontend supplies. The evaluator's core
// scenarios are exercised by the tests in evaluator/op_test.go.
package solsym
