package pgraph

import (
	"errors"

	"github.com/solgraph/solsym/concrete"
	"github.com/solgraph/solsym/gref"
	"github.com/solgraph/solsym/srange"
)

// Sentinel errors for graph construction and traversal.
var (
	// ErrNodeNotFound indicates a NodeIdx does not resolve in the graph.
	ErrNodeNotFound = errors.New("pgraph: node index out of range")

	// ErrNotUnresolved indicates ResolveForward was called against a node
	// whose current Kind is not KindUnresolved.
	ErrNotUnresolved = errors.New("pgraph: target node is not Unresolved")
)

// NodeKind tags the variant of a Node.
type NodeKind int

const (
	KindEntry NodeKind = iota
	KindSourceUnit
	KindSourceUnitPart
	KindContract
	KindStruct
	KindEnum
	KindError
	KindTy
	KindFunction
	KindVar
	KindField
	KindFunctionParam
	KindFunctionReturn
	KindBuiltin
	KindConcrete
	KindContext
	KindContextVar
	KindMsg
	KindBlock
	KindUnresolved
)

func (k NodeKind) String() string {
	switch k {
	case KindEntry:
		return "Entry"
	case KindSourceUnit:
		return "SourceUnit"
	case KindSourceUnitPart:
		return "SourceUnitPart"
	case KindContract:
		return "Contract"
	case KindStruct:
		return "Struct"
	case KindEnum:
		return "Enum"
	case KindError:
		return "Error"
	case KindTy:
		return "Ty"
	case KindFunction:
		return "Function"
	case KindVar:
		return "Var"
	case KindField:
		return "Field"
	case KindFunctionParam:
		return "FunctionParam"
	case KindFunctionReturn:
		return "FunctionReturn"
	case KindBuiltin:
		return "Builtin"
	case KindConcrete:
		return "Concrete"
	case KindContext:
		return "Context"
	case KindContextVar:
		return "ContextVar"
	case KindMsg:
		return "Msg"
	case KindBlock:
		return "Block"
	case KindUnresolved:
		return "Unresolved"
	default:
		return "Unknown"
	}
}

// Node is any tagged variant storable in the graph. Go has no closed sum
// type; Kind() is the runtime tag typed index wrappers assert against.
type Node interface {
	Kind() NodeKind
}

// EntryData is the single root node every source unit hangs off of.
type EntryData struct{}

func (EntryData) Kind() NodeKind { return KindEntry }

// SourceUnitData anchors one parsed file.
type SourceUnitData struct {
	FileNo int
}

func (SourceUnitData) Kind() NodeKind { return KindSourceUnit }

// SourceUnitPartData anchors one top-level item within a file.
type SourceUnitPartData struct {
	FileNo int
	Idx    int
}

func (SourceUnitPartData) Kind() NodeKind { return KindSourceUnitPart }

// ContractData is a contract/library/interface declaration.
type ContractData struct {
	Name string
}

func (ContractData) Kind() NodeKind { return KindContract }

// StructData is a struct declaration.
type StructData struct {
	Name string
}

func (StructData) Kind() NodeKind { return KindStruct }

// EnumData is an enum declaration.
type EnumData struct {
	Name     string
	Variants []string
}

func (EnumData) Kind() NodeKind { return KindEnum }

// ErrorData is a custom error declaration.
type ErrorData struct {
	Name string
}

func (ErrorData) Kind() NodeKind { return KindError }

// TyData is a user-defined value-type declaration (`type X is uintN`).
type TyData struct {
	Name string
	Ty   srange.VarType
}

func (TyData) Kind() NodeKind { return KindTy }

// FunctionData is a function/modifier/constructor declaration.
type FunctionData struct {
	Name string
}

func (FunctionData) Kind() NodeKind { return KindFunction }

// VarData is a state-variable declaration.
type VarData struct {
	Name string
	Ty   srange.VarType
}

func (VarData) Kind() NodeKind { return KindVar }

// FieldData is a struct field declaration.
type FieldData struct {
	Name string
	Ty   srange.VarType
}

func (FieldData) Kind() NodeKind { return KindField }

// FunctionParamData is a function parameter declaration.
type FunctionParamData struct {
	Name string
	Ty   srange.VarType
}

func (FunctionParamData) Kind() NodeKind { return KindFunctionParam }

// FunctionReturnData is a named function return-value declaration.
type FunctionReturnData struct {
	Name string
	Ty   srange.VarType
}

func (FunctionReturnData) Kind() NodeKind { return KindFunctionReturn }

// BuiltinKind enumerates the built-in type shapes.
type BuiltinKind int

const (
	BuiltinUint BuiltinKind = iota
	BuiltinInt
	BuiltinBool
	BuiltinAddress
	BuiltinBytes
	BuiltinDynBytes
	BuiltinString
	BuiltinArray
	BuiltinSizedArray
)

// BuiltinData describes a built-in type. Bits is meaningful for
// Uint/Int/Bytes; N is the fixed length for SizedArray; Elem is the element
// builtin's NodeIdx for Array/SizedArray.
type BuiltinData struct {
	Builtin BuiltinKind
	Bits    uint16
	N    uint64
	Elem gref.NodeIdx
}

func (BuiltinData) Kind() NodeKind { return KindBuiltin }

// ConcreteData wraps a literal value as a standalone graph node (used when a
// literal needs a stable NodeIdx of its own, e.g. as an Elem::Dynamic target).
type ConcreteData struct {
	Value concrete.Value
}

func (ConcreteData) Kind() NodeKind { return KindConcrete }

// StorageClass tags where a ContextVar's storage lives.
type StorageClass int

const (
	StorageDefault StorageClass = iota
	StorageMemory
	StorageStorage
	StorageCalldata
)

// ContextData is an execution context. It is the one node kind whose
// payload mutates after creation (tmp counter, deps, fork/kill flags), so
// callers must append it with AddNode(&ContextData{...}) — by pointer —
// rather than by value; ContextNode.Data relies on this.
type ContextData struct {
	ParentFunction gref.NodeIdx
	Label          string
	Loc            gref.Loc
	TmpCounter     uint64
	Deps           map[gref.NodeIdx]struct{}
	Forked         bool
	Killed         bool
}

func (ContextData) Kind() NodeKind { return KindContext }

// TmpConstruction witnesses how a tmp ContextVar was derived: lhs op rhs
// (rhs nil for a unary construction).
type TmpConstruction struct {
	Lhs gref.NodeIdx
	Op  srange.RangeOp
	Rhs *gref.NodeIdx
}

// ContextVarData is one immutable version of a named variable inside a
// Context.
type ContextVarData struct {
	Name        string
	DisplayName string
	Storage     StorageClass
	IsTmp       bool
	IsSymbolic  bool
	Ty          srange.VarType
	TmpOf       *TmpConstruction
}

func (ContextVarData) Kind() NodeKind { return KindContextVar }

// MsgData is the singleton `msg` builtin object.
type MsgData struct{}

func (MsgData) Kind() NodeKind { return KindMsg }

// BlockData is the singleton `block` builtin object.
type BlockData struct{}

func (BlockData) Kind() NodeKind { return KindBlock }

// UnresolvedData is a forward reference to a not-yet-declared identifier.
// ResolveForward is the only primitive allowed to overwrite it in place.
type UnresolvedData struct {
	Ident string
}

func (UnresolvedData) Kind() NodeKind { return KindUnresolved }

// EdgeKind tags the variant of an Edge.
type EdgeKind int

const (
	EdgeSource EdgeKind = iota
	EdgePart
	EdgeContract
	EdgeFunc
	EdgeVar
	EdgeStruct
	EdgeEnum
	EdgeError
	EdgeTy
	EdgeField
	EdgeImport
	EdgeInheritedContract
	EdgeLibraryFunction
	EdgeConstructor
	EdgeFallbackFunc
	EdgeReceiveFunc
	EdgeModifier
	// EdgeContext is the execution-edge family; CtxKind on Edge disambiguates
	// which of {Context, Variable, Prev, Fork} this particular edge is.
	EdgeContext
)

// ContextEdgeKind sub-tags an EdgeContext edge.
type ContextEdgeKind int

const (
	CtxEdgeContext ContextEdgeKind = iota
	CtxEdgeVariable
	CtxEdgePrev
	CtxEdgeFork
)

// Edge is a single directed arc. Scope is only meaningful for
// EdgeLibraryFunction; CtxKind is only meaningful for EdgeContext.
type Edge struct {
	Kind    EdgeKind
	From    gref.NodeIdx
	To      gref.NodeIdx
	Scope   gref.NodeIdx
	CtxKind ContextEdgeKind
}
