package vm

import (
	"math"
	"slices"
	"strings"

	"sigil/internal/ast"
	"sigil/internal/costs"
	"sigil/internal/datastore"
	"sigil/internal/errs"
	"sigil/internal/ident"
	"sigil/internal/trace"
	"sigil/internal/types"
)

// Definition keywords. They are not registry entries: hitting one during
// expression evaluation means a define form escaped the top level.
const (
	kwDefinePrivate  ident.Name = "define-private"
	kwDefinePublic   ident.Name = "define-public"
	kwDefineReadOnly ident.Name = "define-read-only"
	kwDefineConstant ident.Name = "define-constant"
	kwDefineDataVar  ident.Name = "define-data-var"
	kwDefineMap      ident.Name = "define-map"
)

func isDefineKeyword(name ident.Name) bool {
	switch name {
	case kwDefinePrivate, kwDefinePublic, kwDefineReadOnly,
		kwDefineConstant, kwDefineDataVar, kwDefineMap:
		return true
	default:
		return false
	}
}

// DefineType is the visibility of a contract function.
type DefineType uint8

const (
	// DefinePrivate functions are callable only from inside the contract.
	DefinePrivate DefineType = iota + 1
	// DefinePublic functions form the transaction surface and must
	// return a response value.
	DefinePublic
	// DefineReadOnly functions are public but may not write state.
	DefineReadOnly
)

// String returns a human-readable name for the define type.
func (t DefineType) String() string {
	switch t {
	case DefinePrivate:
		return "private"
	case DefinePublic:
		return "public"
	case DefineReadOnly:
		return "read-only"
	default:
		return "unknown"
	}
}

type functionParam struct {
	Name ident.Name
	Type types.TypeSignature
}

// DefinedFunction is one function born from a define form, bound to the
// contract that declared it. Immutable after initialization.
type DefinedFunction struct {
	name       ident.Name
	defineType DefineType
	params     []functionParam
	body       ast.Expr
	contract   types.QualifiedContractIdentifier
}

// Name returns the function's declared name.
func (f *DefinedFunction) Name() ident.Name {
	return f.name
}

// DefineType returns the function's visibility.
func (f *DefinedFunction) DefineType() DefineType {
	return f.defineType
}

// Arity returns the declared parameter count.
func (f *DefinedFunction) Arity() int {
	return len(f.params)
}

// Apply invokes the function on evaluated arguments: arity and parameter
// types are checked, parameters bind into a fresh context, and the
// function joins the call stack for the duration of its body. A
// short-return raised inside the body resolves here, becoming the
// function's ordinary result.
func (f *DefinedFunction) Apply(args []types.Value, env *Environment) (types.Value, error) {
	if err := errs.CheckArgumentCount(len(f.params), len(args)); err != nil {
		return types.Value{}, err
	}
	if err := env.charge(costs.CostBindName, uint64(len(f.params))); err != nil {
		return types.Value{}, err
	}
	ctx := NewLocalContext()
	for i, p := range f.params {
		if !typeAdmits(p.Type, args[i]) {
			return types.Value{}, errs.TypeValue(p.Type.String(), args[i].String())
		}
		ctx.bind(p.Name, args[i])
	}
	id := newFunctionIdentifier(f.contract, f.name)
	if env.stack.Contains(id) {
		return types.Value{}, errs.NewCheckError(errs.CheckCircularReference,
			"%s is already on the call stack; recursion is forbidden", f.name)
	}
	if err := env.stack.Push(id); err != nil {
		return types.Value{}, err
	}
	defer env.stack.Pop(id)
	result, err := Eval(&f.body, env, ctx)
	if err != nil {
		if sr, ok := AsShortReturn(err); ok {
			return sr.Value, nil
		}
		return types.Value{}, err
	}
	return result, nil
}

// InitializeContract deploys a contract body into env's contract context:
// define forms register functions, constants, data variables and maps,
// and any other top-level expression evaluates for effect. Store writes
// buffer in a rollback wrapper, so a failure anywhere leaves the store
// untouched and the partially filled context abandoned.
func InitializeContract(exprs []ast.Expr, env *Environment) error {
	emitBoundary(env, trace.KindBegin, "initialize", env.contract.ID().String())
	rollback := datastore.NewRollback(env.store)
	inner := env.nestWithStore(rollback)
	ctx := NewLocalContext()
	for i := range exprs {
		if err := evalTopLevel(&exprs[i], inner, ctx); err != nil {
			rollback.Discard()
			emitBoundary(env, trace.KindEnd, "initialize", outcomeLabel(err))
			return err
		}
	}
	if err := rollback.Commit(); err != nil {
		emitBoundary(env, trace.KindEnd, "initialize", outcomeLabel(err))
		return err
	}
	emitBoundary(env, trace.KindEnd, "initialize", "value")
	return nil
}

func evalTopLevel(expr *ast.Expr, env *Environment, ctx *LocalContext) error {
	if children, ok := expr.MatchList(); ok && len(children) > 0 {
		if head, ok := children[0].MatchAtom(); ok && isDefineKeyword(head) {
			return evalDefine(head, children[1:], env)
		}
	}
	_, err := Eval(expr, env, ctx)
	return err
}

func evalDefine(keyword ident.Name, args []ast.Expr, env *Environment) error {
	switch keyword {
	case kwDefineConstant:
		return defineConstant(args, env)
	case kwDefineDataVar:
		return defineDataVar(args, env)
	case kwDefineMap:
		return defineMap(args, env)
	case kwDefinePrivate:
		return defineFunction(args, env, DefinePrivate)
	case kwDefinePublic:
		return defineFunction(args, env, DefinePublic)
	case kwDefineReadOnly:
		return defineFunction(args, env, DefineReadOnly)
	default:
		return errs.NewCheckError(errs.CheckBadFunctionName,
			"unknown definition keyword %q", keyword)
	}
}

// checkDefinableName rejects names the contract may not claim: reserved
// words and names an earlier definition already took.
func checkDefinableName(name ident.Name, env *Environment) error {
	if IsReserved(name) {
		return errs.NewCheckError(errs.CheckNameAlreadyUsed,
			"%s is a reserved word", name)
	}
	if env.contract.nameUsed(name) {
		return errs.NewCheckError(errs.CheckNameAlreadyUsed,
			"%s is already defined in this contract", name)
	}
	return nil
}

func defineConstant(args []ast.Expr, env *Environment) error {
	if err := errs.CheckArgumentCount(2, len(args)); err != nil {
		return err
	}
	name, ok := args[0].MatchAtom()
	if !ok {
		return errs.NewCheckError(errs.CheckExpectedName,
			"define-constant names its constant directly")
	}
	if err := checkDefinableName(name, env); err != nil {
		return err
	}
	v, err := Eval(&args[1], env, NewLocalContext())
	if err != nil {
		return err
	}
	env.contract.constants[name] = v
	return nil
}

func defineDataVar(args []ast.Expr, env *Environment) error {
	if err := errs.CheckArgumentCount(3, len(args)); err != nil {
		return err
	}
	name, ok := args[0].MatchAtom()
	if !ok {
		return errs.NewCheckError(errs.CheckExpectedName,
			"define-data-var names its variable directly")
	}
	if err := checkDefinableName(name, env); err != nil {
		return err
	}
	decl, err := parseTypeExpr(&args[1])
	if err != nil {
		return err
	}
	initial, err := Eval(&args[2], env, NewLocalContext())
	if err != nil {
		return err
	}
	if !typeAdmits(decl, initial) {
		return errs.TypeValue(decl.String(), initial.String())
	}
	if err := env.store.CreateVariable(env.contract.ID(), name, initial); err != nil {
		return err
	}
	env.contract.varTypes[name] = decl
	return nil
}

func defineMap(args []ast.Expr, env *Environment) error {
	if err := errs.CheckArgumentCount(3, len(args)); err != nil {
		return err
	}
	name, ok := args[0].MatchAtom()
	if !ok {
		return errs.NewCheckError(errs.CheckExpectedName,
			"define-map names its map directly")
	}
	if err := checkDefinableName(name, env); err != nil {
		return err
	}
	keyType, err := parseTypeExpr(&args[1])
	if err != nil {
		return err
	}
	valueType, err := parseTypeExpr(&args[2])
	if err != nil {
		return err
	}
	if err := env.store.CreateMap(env.contract.ID(), name); err != nil {
		return err
	}
	env.contract.mapTypes[name] = mapSignature{Key: keyType, Value: valueType}
	return nil
}

// defineFunction registers a function from its signature list: the
// function name followed by (param type) pairs, with a single body
// expression. The body is not evaluated until the function is applied.
func defineFunction(args []ast.Expr, env *Environment, dt DefineType) error {
	if err := errs.CheckArgumentCount(2, len(args)); err != nil {
		return err
	}
	sig, ok := args[0].MatchList()
	if !ok || len(sig) == 0 {
		return errs.NewCheckError(errs.CheckBadSyntaxBinding,
			"function signatures are a name followed by (param type) pairs")
	}
	name, ok := sig[0].MatchAtom()
	if !ok {
		return errs.NewCheckError(errs.CheckExpectedName,
			"function signatures start with the function name")
	}
	if err := checkDefinableName(name, env); err != nil {
		return err
	}
	params := make([]functionParam, 0, len(sig)-1)
	err := handleBindingList(sig[1:], func(pname ident.Name, texpr *ast.Expr) error {
		if IsReserved(pname) {
			return errs.NewCheckError(errs.CheckNameAlreadyUsed,
				"%s is a reserved word", pname)
		}
		for _, p := range params {
			if p.Name == pname {
				return errs.NewCheckError(errs.CheckNameAlreadyUsed,
					"parameter %s is declared twice", pname)
			}
		}
		pt, err := parseTypeExpr(texpr)
		if err != nil {
			return err
		}
		params = append(params, functionParam{Name: pname, Type: pt})
		return nil
	})
	if err != nil {
		return err
	}
	env.contract.functions[name] = &DefinedFunction{
		name:       name,
		defineType: dt,
		params:     params,
		body:       args[1],
		contract:   env.contract.ID(),
	}
	return nil
}

// parseTypeExpr reads a type annotation from its source form: a bare
// name for the primitive types, a parameterized list for the rest.
func parseTypeExpr(expr *ast.Expr) (types.TypeSignature, error) {
	if name, ok := expr.MatchAtom(); ok {
		switch name {
		case "int":
			return types.IntType(), nil
		case "uint":
			return types.UIntType(), nil
		case "bool":
			return types.BoolType(), nil
		case "principal":
			return types.PrincipalType(), nil
		default:
			return types.TypeSignature{}, errTypeDescription(expr)
		}
	}
	children, ok := expr.MatchList()
	if !ok || len(children) == 0 {
		return types.TypeSignature{}, errTypeDescription(expr)
	}
	head, ok := children[0].MatchAtom()
	if !ok {
		return types.TypeSignature{}, errTypeDescription(expr)
	}
	switch head {
	case "buff":
		if len(children) != 2 {
			return types.TypeSignature{}, errTypeDescription(expr)
		}
		n, ok := typeLength(&children[1])
		if !ok || n > types.MaxValueSize {
			return types.TypeSignature{}, errTypeDescription(expr)
		}
		return types.BufferType(n), nil
	case "optional":
		if len(children) != 2 {
			return types.TypeSignature{}, errTypeDescription(expr)
		}
		inner, err := parseTypeExpr(&children[1])
		if err != nil {
			return types.TypeSignature{}, err
		}
		return types.OptionalType(inner), nil
	case "response":
		if len(children) != 3 {
			return types.TypeSignature{}, errTypeDescription(expr)
		}
		okType, err := parseTypeExpr(&children[1])
		if err != nil {
			return types.TypeSignature{}, err
		}
		errType, err := parseTypeExpr(&children[2])
		if err != nil {
			return types.TypeSignature{}, err
		}
		return types.ResponseType(okType, errType), nil
	case "list":
		if len(children) != 3 {
			return types.TypeSignature{}, errTypeDescription(expr)
		}
		n, ok := typeLength(&children[1])
		if !ok {
			return types.TypeSignature{}, errTypeDescription(expr)
		}
		elem, err := parseTypeExpr(&children[2])
		if err != nil {
			return types.TypeSignature{}, err
		}
		return types.ListType(elem, n), nil
	case "tuple":
		if len(children) < 2 {
			return types.TypeSignature{}, errTypeDescription(expr)
		}
		fields := make([]types.TupleFieldType, 0, len(children)-1)
		err := handleBindingList(children[1:], func(fname ident.Name, fexpr *ast.Expr) error {
			for _, f := range fields {
				if f.Name == fname {
					return errs.NewCheckError(errs.CheckNameAlreadyUsed,
						"tuple field %q is declared twice", fname)
				}
			}
			ft, err := parseTypeExpr(fexpr)
			if err != nil {
				return err
			}
			fields = append(fields, types.TupleFieldType{Name: fname, Type: ft})
			return nil
		})
		if err != nil {
			return types.TypeSignature{}, err
		}
		slices.SortFunc(fields, func(a, b types.TupleFieldType) int {
			return strings.Compare(string(a.Name), string(b.Name))
		})
		return types.TupleType(fields), nil
	default:
		return types.TypeSignature{}, errTypeDescription(expr)
	}
}

func errTypeDescription(expr *ast.Expr) error {
	return errs.NewCheckError(errs.CheckInvalidTypeDescription,
		"invalid type description %s", expr)
}

// typeLength reads a literal length parameter, accepting written and
// substituted literals of either integer family.
func typeLength(expr *ast.Expr) (uint32, bool) {
	v, ok := expr.MatchAtomValue()
	if !ok {
		v, ok = expr.MatchLiteralValue()
	}
	if !ok {
		return 0, false
	}
	switch v.Kind {
	case types.VKInt:
		if v.Int.IsNegative() {
			return 0, false
		}
		n, ok := v.Int.Abs().Uint64()
		if !ok || n > math.MaxUint32 {
			return 0, false
		}
		return uint32(n), true
	case types.VKUInt:
		n, ok := v.UInt.Uint64()
		if !ok || n > math.MaxUint32 {
			return 0, false
		}
		return uint32(n), true
	default:
		return 0, false
	}
}

// typeAdmits reports whether a declared signature admits a value:
// joining the two must give back the declaration unchanged, so sized
// shapes admit anything up to their bound and never widen past it.
func typeAdmits(decl types.TypeSignature, v types.Value) bool {
	joined, ok := types.LeastSupertype(decl, types.TypeOf(v))
	return ok && joined.Equal(decl)
}
