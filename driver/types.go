package driver

import (
	"errors"

	"github.com/solgraph/solsym/concrete"
	"github.com/solgraph/solsym/evaluator"
	"github.com/solgraph/solsym/gref"
	"github.com/solgraph/solsym/pgraph"
	"github.com/solgraph/solsym/srange"
)

// ErrBadRemapping indicates ParseRemappingString was given a string with no
// "=" separator.
var ErrBadRemapping = errors.New("driver: remapping string missing '='")

// Root names where an Analyzer's source units came from. Exactly one of
// the three shapes is populated; Go has no closed sum type, so the zero
// value (SingleSolFile with an empty Path) is the always-valid default
// rather than an invalid "none selected" state.
type RootKind int

const (
	RootSingleSolFile RootKind = iota
	RootSolcJSON
	RootRemappingsDirectory
)

// Root is the analyzer's input-source descriptor.
type Root struct {
	Kind RootKind
	Path string
}

// Remapping is one solc-style import remapping ("prefix=target").
type Remapping struct {
	Prefix string
	Target string
}

// SolcJSONDescriptor is the subset of solc's Standard JSON Input this module
// reads: the source file table and the remappings list.
type SolcJSONDescriptor struct {
	Sources  map[string]struct{ Content string }
	Settings struct {
		Remappings []string
	}
}

// ExprKind tags the variant of an Expr.
type ExprKind int

const (
	ExprNumberLiteral ExprKind = iota
	ExprVariable
	ExprType
	ExprArraySubscript
	ExprBinary
	ExprComplicated
)

// Expr is the minimal expression AST surface driver consumes. As with
// pgraph.Node and srange.Elem, Go has no closed sum type; Kind() is the
// runtime tag, and each constructor returns the interface so callers never
// build a malformed variant by hand.
type Expr interface {
	Kind() ExprKind
	Loc() gref.Loc
}

// NumberLiteral is a numeric/boolean/address/bytes/string constant appearing
// directly in source.
type NumberLiteral struct {
	L     gref.Loc
	Value concrete.Value
}

func (e NumberLiteral) Kind() ExprKind { return ExprNumberLiteral }
func (e NumberLiteral) Loc() gref.Loc  { return e.L }

// VariableExpr references a previously-declared identifier by name.
type VariableExpr struct {
	L    gref.Loc
	Name string
}

func (e VariableExpr) Kind() ExprKind { return ExprVariable }
func (e VariableExpr) Loc() gref.Loc  { return e.L }

// TypeExpr references a type name (used for casts and `type(T).max`-style
// member access).
type TypeExpr struct {
	L    gref.Loc
	Name string
}

func (e TypeExpr) Kind() ExprKind { return ExprType }
func (e TypeExpr) Loc() gref.Loc  { return e.L }

// ArraySubscriptExpr is `Base[Index]`.
type ArraySubscriptExpr struct {
	L     gref.Loc
	Base  Expr
	Index Expr
}

func (e ArraySubscriptExpr) Kind() ExprKind { return ExprArraySubscript }
func (e ArraySubscriptExpr) Loc() gref.Loc  { return e.L }

// BinaryExpr is `Lhs Op Rhs`, optionally an assignment (`+=` lowers to
// Assign=true, Op=Add).
type BinaryExpr struct {
	L      gref.Loc
	Lhs    Expr
	Op     srange.RangeOp
	Rhs    Expr
	Assign bool
}

func (e BinaryExpr) Kind() ExprKind { return ExprBinary }
func (e BinaryExpr) Loc() gref.Loc  { return e.L }

// ComplicatedExpr is the fallback for shapes this minimal AST doesn't model
// (ternaries, function calls, tuples, …). Payload is opaque to driver; a
// caller that needs to interpret it downcasts on its own concrete type.
// Evaluating one records KindTodo and yields CtxKilled, which ends
// evaluation of the enclosing function body.
type ComplicatedExpr struct {
	L       gref.Loc
	Payload any
}

func (e ComplicatedExpr) Kind() ExprKind { return ExprComplicated }
func (e ComplicatedExpr) Loc() gref.Loc  { return e.L }

// FinalPassKind tags what kind of deferred work a FinalPassItem carries.
type FinalPassKind int

const (
	FinalPassFunctionBody FinalPassKind = iota
	FinalPassUsingDirective
	FinalPassInheritance
	FinalPassVarInitializer
)

// FinalPassItem is one unit of work deferred from the declare pass to the
// resolve pass, so forward references across a source unit (a function
// calling another declared later in the same contract, a struct field typed
// with a struct declared later in the file) resolve correctly.
type FinalPassItem struct {
	Kind     FinalPassKind
	Owner    gref.NodeIdx // the Contract/Function/Var node this item resolves against
	Params   []VarSpec    // function parameters, for FinalPassFunctionBody
	Body     []Expr       // function-body statements (FinalPassFunctionBody) or a
	// single-element initializer expression (FinalPassVarInitializer)
	TypeName string // referenced base-contract name, for FinalPassInheritance
}

// Option configures an Analyzer at construction time (teacher's functional-
// options pattern, core.GraphOption/dijkstra.Option style).
type Option func(*Analyzer)

// WithMaxDepth sets the recursion-depth budget handed to the evaluator.
// Neither driver nor evaluator enforces it. Panics on a non-positive value.
func WithMaxDepth(n int) Option {
	if n <= 0 {
		panic("driver: MaxDepth must be positive")
	}

	return func(a *Analyzer) { a.MaxDepth = n }
}

// WithMaxWidth sets the global fork-count budget handed to the evaluator.
// Neither driver nor evaluator enforces it. Panics on a non-positive value.
func WithMaxWidth(n int) Option {
	if n <= 0 {
		panic("driver: MaxWidth must be positive")
	}

	return func(a *Analyzer) { a.MaxWidth = n }
}

// WithRoot sets the analyzer's source-root descriptor.
func WithRoot(root Root) Option {
	return func(a *Analyzer) { a.root = root }
}

// WithRemappings seeds the analyzer's import remapping table.
func WithRemappings(remaps []Remapping) Option {
	return func(a *Analyzer) { a.remappings = append(a.remappings, remaps...) }
}

// Analyzer is the single owned aggregate the system needs: every other
// package operates on the *pgraph.Graph it is handed, but something has to
// own the graph, the builtin/user-type interning tables, the Msg/Block
// singletons, and the deferred resolution queue, and that something is
// Analyzer.
type Analyzer struct {
	Graph *pgraph.Graph

	root        Root
	remappings  []Remapping
	sources     []SourceEntry
	fileNo      int
	entry       gref.NodeIdx
	parseFn     pgraph.FunctionNode
	msg         pgraph.MsgNode
	block       pgraph.BlockNode
	builtins    map[builtinKey]gref.NodeIdx
	userTypes   map[string]gref.NodeIdx
	unitsByPath map[string]gref.NodeIdx
	finalPass   []FinalPassItem

	eval *evaluator.Evaluator

	MaxDepth int
	MaxWidth int

	errs []EvalError
}

// SourceEntry is one parsed file registered with the analyzer.
type SourceEntry struct {
	FileNo int
	Path   string
	Unit   SourceUnit
}

// SourceUnit is one parsed file's top-level contents. Parts are whatever
// the external frontend produced; driver only needs their Kind-discriminated
// shape to route them.
type SourceUnit struct {
	Parts []SourceUnitPart
}

// SourceUnitPartKind tags a top-level declaration shape.
type SourceUnitPartKind int

const (
	PartContract SourceUnitPartKind = iota
	PartStruct
	PartEnum
	PartError
	PartTy
	PartImport
)

// SourceUnitPart is one top-level declaration within a SourceUnit.
type SourceUnitPart struct {
	Kind SourceUnitPartKind
	// Name is the declared identifier (Contract/Struct/Enum/Error/Ty); for
	// PartImport it is the unresolved import path instead.
	Name string
	// EnumVariants is populated for PartEnum.
	EnumVariants []string
	// TyBuiltin describes the underlying type for PartTy ("type X is uintN").
	TyBuiltin *BuiltinSpec
	// Contract is populated for PartContract.
	Contract *ContractSpec
}

// BuiltinSpec names a built-in type shape without yet owning a graph node —
// Analyzer.BuiltinOrAdd interns it.
type BuiltinSpec struct {
	Kind pgraph.BuiltinKind
	Bits uint16
	N    uint64
	Elem *BuiltinSpec
}

// ContractSpec is the declare-pass view of a contract: its own declarations
// plus what the resolve pass still needs (bases, functions, state vars).
type ContractSpec struct {
	Bases     []string
	Functions []FunctionSpec
	Vars      []VarSpec
}

// FunctionSpec is the declare-pass view of a function: its signature is
// enough to allocate a Function node; its Body is deferred to the resolve
// pass as a FinalPassItem.
type FunctionSpec struct {
	Name   string
	Params []VarSpec
	Body   []Expr
}

// VarSpec is the declare-pass view of a variable/field/parameter
// declaration.
type VarSpec struct {
	Name      string
	TyBuiltin *BuiltinSpec
	TyUser    string // non-empty for a user-defined type reference
	Init      Expr   // nil if uninitialized
}

// builtinKey is BuiltinOrAdd's interning key — the fields of BuiltinSpec
// that determine identity, flattened so it can be a map key.
type builtinKey struct {
	kind pgraph.BuiltinKind
	bits uint16
	n    uint64
	elem gref.NodeIdx
}

// ErrorKind mirrors evaluator.ErrorKind structurally; driver keeps its own
// copy so its diagnostics do not depend on evaluator's error type, although
// driver does import evaluator to run Op. evaluator.Op takes ExprRet operands rather than driver.Expr precisely so
// evaluator never needs to import driver, which would otherwise cycle.
type ErrorKind int

const (
	KindParseError ErrorKind = iota
	KindUnresolved
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

// EvalError is one accumulated diagnostic, recorded with dedup-on-equality.
type EvalError struct {
	Kind ErrorKind
	Loc  gref.Loc
	Msg  string
}

func (e EvalError) Error() string {
	return e.Kind.String() + " at " + e.Loc.String() + ": " + e.Msg
}
