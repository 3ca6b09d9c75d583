// Package driver owns the one aggregate that ties the rest of solsym
// together: the Analyzer. Everything else in this module (pgraph, ctxvar,
// exprret, evaluator) is a library of pure-ish operations over an explicit
// *pgraph.Graph; driver is where a caller actually builds one from a parsed
// Solidity AST and runs it.
//
// Algorithm:
//
//  1. NewAnalyzer allocates the graph's Entry node, a synthetic "<parser_fn>"
//     Function node every pre-final-pass expression can attach a Context to,
//     and the Msg/Block singletons.
//  2. Walk runs a two-pass algorithm over the supplied SourceUnits:
//     - Declare pass: allocate nodes for every Contract/Struct/Enum/Error/Ty/Var
//     declaration, registering an Unresolved placeholder for anything
//     referenced before it's declared and overwriting that placeholder in
//     place (pgraph.ResolveForward) once the declaration is registered, and
//     queuing a FinalPassItem for whatever needs the second pass (function
//     bodies, inheritance lists, variable initializers).
//  3. Resolve pass: drain the FinalPassItem queue, linking each contract to
//     its declared bases and evaluating each function body's expressions via
//     evaluator.Op in one context per function. The driver itself never
//     forks a context.
//
// driver does not parse Solidity source text itself — it consumes an
// already-parsed Expr/SourceUnit tree an external frontend supplies, the
// same boundary the original's own driver crosses.
package driver
