package evaluator

import (
	"fmt"

	"github.com/solgraph/solsym/ctxvar"
	"github.com/solgraph/solsym/gref"
	"github.com/solgraph/solsym/pgraph"
)

// ErrorKind tags the taxonomy of errors an evaluation run accumulates.
type ErrorKind int

const (
	// KindParseError is an operand shape the evaluator cannot handle, e.g. an
	// ExprRet that is none of Single, Multi or Killed.
	KindParseError ErrorKind = iota
	// KindUnresolved is a name that could not be typed.
	KindUnresolved
	// KindTodo is a feature gap (e.g. a wildcard `using` directive).
	KindTodo
)

func (k ErrorKind) String() string {
	switch k {
	case KindParseError:
		return "ParseError"
	case KindUnresolved:
		return "Unresolved"
	case KindTodo:
		return "Todo"
	default:
		return "Unknown"
	}
}

// EvalError is one accumulated diagnostic. It is comparable so RecordError
// can dedup on equality rather than carrying its own identity.
type EvalError struct {
	Kind ErrorKind
	Loc  gref.Loc
	Msg  string
}

func (e EvalError) Error() string {
	return fmt.Sprintf("%s at %s: %s", e.Kind, e.Loc, e.Msg)
}

// Option configures an Evaluator at construction time, following the
// teacher's functional-options pattern (dijkstra.Option, core.GraphOption).
type Option func(*Evaluator)

// WithMaxDepth caps the recursion depth a driver should allow before
// treating further descent as CtxKilled. The evaluator itself does not
// enforce this; it only carries the budget for the driver to read. Panics
// on a non-positive value when the option is built, before it is applied.
func WithMaxDepth(n int) Option {
	if n <= 0 {
		panic("evaluator: MaxDepth must be positive")
	}

	return func(e *Evaluator) { e.MaxDepth = n }
}

// WithMaxWidth caps the global fork count a driver should allow.
func WithMaxWidth(n int) Option {
	if n <= 0 {
		panic("evaluator: MaxWidth must be positive")
	}

	return func(e *Evaluator) { e.MaxWidth = n }
}

// Evaluator is the binary-operation evaluator's handle onto a live graph.
// It carries no state of its own beyond the accumulated error list and the
// externally-read depth/width budgets — the graph itself, not the
// Evaluator, is the single shared aggregate.
type Evaluator struct {
	Graph    *pgraph.Graph
	Resolver ctxvar.GraphResolver

	MaxDepth int
	MaxWidth int

	errs []EvalError
}

// NewEvaluator builds an Evaluator over g with default budgets of 1024.
func NewEvaluator(g *pgraph.Graph, opts ...Option) *Evaluator {
	e := &Evaluator{
		Graph:    g,
		Resolver: ctxvar.GraphResolver{G: g},
		MaxDepth: 1024,
		MaxWidth: 1024,
	}
	for _, opt := range opts {
		opt(e)
	}

	return e
}

// RecordError appends err unless an equal EvalError was already recorded.
func (e *Evaluator) RecordError(err EvalError) {
	for _, existing := range e.errs {
		if existing == err {
			return
		}
	}
	e.errs = append(e.errs, err)
}

// Errors returns the accumulated diagnostics in recorded order.
func (e *Evaluator) Errors() []EvalError {
	out := make([]EvalError, len(e.errs))
	copy(out, e.errs)

	return out
}
