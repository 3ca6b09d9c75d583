package driver

import (
	"github.com/solgraph/solsym/ctxvar"
	"github.com/solgraph/solsym/exprret"
	"github.com/solgraph/solsym/gref"
	"github.com/solgraph/solsym/pgraph"
	"github.com/solgraph/solsym/srange"
)

// Walk runs the declare/resolve two-pass algorithm over units. paths[i] is
// the source path units[i] was loaded from; the two slices must be the same
// length.
func (a *Analyzer) Walk(paths []string, units []SourceUnit) {
	a.declarePass(paths, units)
	a.resolvePass()
}

// declarePass allocates graph nodes for every declaration reachable without
// needing a forward reference resolved, queuing a FinalPassItem for
// anything that does (the package doc's step 2).
func (a *Analyzer) declarePass(paths []string, units []SourceUnit) {
	// Register every SourceUnit node before processing any unit's contents,
	// so an import anywhere in the batch can resolve against a unit declared
	// later in the slice.
	unitIdx := make([]gref.NodeIdx, len(units))
	for i, path := range paths {
		idx := a.Graph.AddNode(pgraph.SourceUnitData{FileNo: a.fileNo})
		a.Graph.AddEdge(pgraph.Edge{Kind: pgraph.EdgeSource, From: a.entry, To: idx})
		unitIdx[i] = idx
		a.unitsByPath[path] = idx
		a.sources = append(a.sources, SourceEntry{FileNo: a.fileNo, Path: path, Unit: units[i]})
		a.fileNo++
	}

	for i, unit := range units {
		for partI, part := range unit.Parts {
			partIdx := a.Graph.AddNode(pgraph.SourceUnitPartData{FileNo: a.sources[i].FileNo, Idx: partI})
			a.Graph.AddEdge(pgraph.Edge{Kind: pgraph.EdgePart, From: unitIdx[i], To: partIdx})
			a.declarePart(partIdx, part)
		}
	}
}

func (a *Analyzer) declarePart(partIdx gref.NodeIdx, part SourceUnitPart) {
	switch part.Kind {
	case PartContract:
		a.declareContract(partIdx, part.Name, part.Contract)

	case PartStruct:
		idx := a.Graph.AddNode(pgraph.StructData{Name: part.Name})
		a.Graph.AddEdge(pgraph.Edge{Kind: pgraph.EdgeStruct, From: partIdx, To: idx})
		a.RegisterUserType(part.Name, pgraph.StructData{Name: part.Name})

	case PartEnum:
		idx := a.Graph.AddNode(pgraph.EnumData{Name: part.Name, Variants: part.EnumVariants})
		a.Graph.AddEdge(pgraph.Edge{Kind: pgraph.EdgeEnum, From: partIdx, To: idx})
		a.RegisterUserType(part.Name, pgraph.EnumData{Name: part.Name, Variants: part.EnumVariants})

	case PartError:
		idx := a.Graph.AddNode(pgraph.ErrorData{Name: part.Name})
		a.Graph.AddEdge(pgraph.Edge{Kind: pgraph.EdgeError, From: partIdx, To: idx})
		a.RegisterUserType(part.Name, pgraph.ErrorData{Name: part.Name})

	case PartTy:
		ty := a.varTypeFromSpec(part.TyBuiltin, "")
		idx := a.Graph.AddNode(pgraph.TyData{Name: part.Name, Ty: ty})
		a.Graph.AddEdge(pgraph.Edge{Kind: pgraph.EdgeTy, From: partIdx, To: idx})
		a.RegisterUserType(part.Name, pgraph.TyData{Name: part.Name, Ty: ty})

	case PartImport:
		target, _ := ResolveImport(a.remappings, part.Name)
		if toIdx, ok := a.unitsByPath[target]; ok {
			a.Graph.AddEdge(pgraph.Edge{Kind: pgraph.EdgeImport, From: partIdx, To: toIdx})
		} else {
			a.RecordError(EvalError{Kind: KindUnresolved, Loc: gref.Implicit, Msg: "import target not found: " + target})
		}
	}
}

// declareContract allocates the Contract node and everything declarable
// without a forward reference (functions by signature, state variables by
// type), deferring bodies, initializers and the base list to the resolve
// pass.
func (a *Analyzer) declareContract(partIdx gref.NodeIdx, name string, spec *ContractSpec) {
	contractIdx := a.Graph.AddNode(pgraph.ContractData{Name: name})
	a.Graph.AddEdge(pgraph.Edge{Kind: pgraph.EdgeContract, From: partIdx, To: contractIdx})
	a.RegisterUserType(name, pgraph.ContractData{Name: name})

	if spec == nil {
		return
	}

	for _, base := range spec.Bases {
		a.QueueFinalPass(FinalPassItem{Kind: FinalPassInheritance, Owner: contractIdx, TypeName: base})
	}

	for _, v := range spec.Vars {
		varIdx := a.declareVar(contractIdx, pgraph.EdgeVar, v)
		if v.Init != nil {
			a.QueueFinalPass(FinalPassItem{Kind: FinalPassVarInitializer, Owner: varIdx, Body: []Expr{v.Init}})
		}
	}

	for _, fn := range spec.Functions {
		fnIdx := a.Graph.AddNode(pgraph.FunctionData{Name: fn.Name})
		a.Graph.AddEdge(pgraph.Edge{Kind: pgraph.EdgeFunc, From: contractIdx, To: fnIdx})
		a.QueueFinalPass(FinalPassItem{Kind: FinalPassFunctionBody, Owner: fnIdx, Params: fn.Params, Body: fn.Body})
	}
}

// declareVar allocates a Var node for one state-variable/field declaration,
// resolving its type eagerly when it's a builtin and lazily (via
// UserTypeOrAdd's Unresolved placeholder) when it names a not-yet-declared
// user type.
func (a *Analyzer) declareVar(owner gref.NodeIdx, edgeKind pgraph.EdgeKind, v VarSpec) gref.NodeIdx {
	ty := a.varTypeFromSpec(v.TyBuiltin, v.TyUser)
	idx := a.Graph.AddNode(pgraph.VarData{Name: v.Name, Ty: ty})
	a.Graph.AddEdge(pgraph.Edge{Kind: edgeKind, From: owner, To: idx})

	return idx
}

// varTypeFromSpec resolves a declare-pass type reference into a
// srange.VarType. Exactly one of builtin/userTypeName should be set; a
// user-defined type carries no numeric range here — a later pass that
// cares about an enum's or user-value-type's underlying range re-derives it
// from the resolved declaration node.
func (a *Analyzer) varTypeFromSpec(builtin *BuiltinSpec, userTypeName string) srange.VarType {
	if builtin != nil {
		ref := a.BuiltinOrAdd(*builtin)

		return srange.VTBuiltIn{Builtin: ref, Rng: rangeForBuiltin(*builtin)}
	}
	if userTypeName != "" {
		return srange.VTUser{Kind: a.UserTypeOrAdd(userTypeName)}
	}

	return srange.VTBuiltIn{Rng: srange.FullUintRange(256)}
}

// rangeForBuiltin derives the numeric range a freshly declared variable of
// this builtin kind starts with: full range for its bit width, nil for
// non-numeric shapes like Array/String.
func rangeForBuiltin(spec BuiltinSpec) *srange.SolcRange {
	switch spec.Kind {
	case pgraph.BuiltinUint, pgraph.BuiltinAddress:
		bits := spec.Bits
		if spec.Kind == pgraph.BuiltinAddress {
			bits = 160
		}

		return srange.FullUintRange(bits)
	case pgraph.BuiltinInt:
		return srange.FullIntRange(spec.Bits)
	case pgraph.BuiltinBool:
		return srange.FullBoolRange()
	default:
		return nil
	}
}

// resolvePass drains the FinalPassItem queue (the package doc's step 3): resolving
// inheritance lists against now-fully-declared user types, and evaluating
// function bodies and variable initializers through the binary-operation
// evaluator.
func (a *Analyzer) resolvePass() {
	for _, item := range a.finalPass {
		switch item.Kind {
		case FinalPassInheritance:
			a.resolveInheritance(item)
		case FinalPassFunctionBody:
			a.resolveFunctionBody(item)
		case FinalPassVarInitializer:
			a.resolveVarInitializer(item)
		case FinalPassUsingDirective:
			a.RecordError(EvalError{Kind: KindTodo, Loc: gref.Implicit, Msg: "using-directive resolution not implemented"})
		}
	}
}

func (a *Analyzer) resolveInheritance(item FinalPassItem) {
	baseIdx, ok := a.userTypes[item.TypeName]
	if !ok {
		a.RecordError(EvalError{Kind: KindUnresolved, Loc: gref.Implicit, Msg: "base contract not found: " + item.TypeName})

		return
	}
	a.Graph.AddEdge(pgraph.Edge{Kind: pgraph.EdgeInheritedContract, From: item.Owner, To: baseIdx})
}

// resolveFunctionBody creates one execution context for the function,
// seeded with a symbolic ContextVar per declared parameter, then evaluates
// each body statement against it in order, stopping early if a statement
// kills the context.
func (a *Analyzer) resolveFunctionBody(item FinalPassItem) {
	fn := pgraph.FunctionNode(item.Owner)
	ctx := ctxvar.NewContext(a.Graph, fn.Idx(), fn.Data(a.Graph).Name, gref.Implicit)

	locals := make(map[string]gref.NodeIdx, len(item.Params))
	for _, p := range item.Params {
		ty := a.varTypeFromSpec(p.TyBuiltin, p.TyUser)
		idx := a.Graph.AddNode(pgraph.ContextVarData{Name: p.Name, DisplayName: p.Name, IsSymbolic: true, Ty: ty})
		a.Graph.AddEdge(pgraph.Edge{Kind: pgraph.EdgeContext, CtxKind: pgraph.CtxEdgeVariable, From: ctx.Idx(), To: idx})
		locals[p.Name] = idx
	}

	for _, stmt := range item.Body {
		ret := a.evalExpr(ctx, locals, stmt)
		if exprret.IsKilled(ret) {
			break
		}
	}
}

// resolveVarInitializer evaluates a state variable's initializer expression
// under a throwaway context rooted at the synthetic parse_fn scaffold, the
// same attachment point any expression parsed before a real function
// context exists gets. Wiring the result back into VarData's own type is
// future work — a state
// variable's declared type, not its initializer's inferred range, is its
// type of record — so this pass exists to surface Unresolved/Todo
// diagnostics in the initializer expression itself.
func (a *Analyzer) resolveVarInitializer(item FinalPassItem) {
	if len(item.Body) == 0 {
		return
	}
	ctx := ctxvar.NewContext(a.Graph, a.parseFn.Idx(), "<init>", gref.Implicit)
	a.evalExpr(ctx, map[string]gref.NodeIdx{}, item.Body[0])
}

// evalExpr walks e bottom-up and returns its ExprRet; every node except a
// bare reference produces one. locals maps in-scope names to their current
// ContextVar NodeIdx; a successful assignment's new version is written back
// into it.
func (a *Analyzer) evalExpr(ctx pgraph.ContextNode, locals map[string]gref.NodeIdx, e Expr) exprret.ExprRet {
	switch v := e.(type) {
	case NumberLiteral:
		idx := a.Graph.AddNode(pgraph.ContextVarData{
			Name: v.Value.String(), DisplayName: v.Value.String(),
			Ty: srange.NewConcreteVarType(v.Value),
		})
		a.Graph.AddEdge(pgraph.Edge{Kind: pgraph.EdgeContext, CtxKind: pgraph.CtxEdgeVariable, From: ctx.Idx(), To: idx})

		return exprret.NewSingle(ctx, idx)

	case VariableExpr:
		idx, ok := locals[v.Name]
		if !ok {
			a.RecordError(EvalError{Kind: KindUnresolved, Loc: v.L, Msg: "variable not in scope: " + v.Name})

			return exprret.CtxKilled
		}

		return exprret.NewSingle(ctx, ctxvar.LatestVersion(a.Graph, idx))

	case BinaryExpr:
		lhsRet := a.evalExpr(ctx, locals, v.Lhs)
		rhsRet := a.evalExpr(ctx, locals, v.Rhs)
		ret := a.eval.Op(v.L, lhsRet, rhsRet, v.Op, v.Assign)

		if v.Assign {
			if name, ok := v.Lhs.(VariableExpr); ok {
				if single, err := exprret.ExpectSingle(ret); err == nil {
					locals[name.Name] = single.Var
				}
			}
		}

		return ret

	case TypeExpr, ArraySubscriptExpr, ComplicatedExpr:
		a.RecordError(EvalError{Kind: KindTodo, Loc: e.Loc(), Msg: "complicated_parse: expression shape not modeled"})

		return exprret.CtxKilled

	default:
		a.RecordError(EvalError{Kind: KindParseError, Loc: e.Loc(), Msg: "evalExpr: unrecognized Expr shape"})

		return exprret.CtxKilled
	}
}
