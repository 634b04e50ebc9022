package vm

import (
	"sigil/internal/ast"
	"sigil/internal/costs"
	"sigil/internal/errs"
	"sigil/internal/ident"
	"sigil/internal/types"
)

// specialMatch destructures an optional or a response. The branch arm
// shape depends on the input kind, so only the input expression can be
// validated before evaluation:
//
//	(match input some-name some-branch none-branch)
//	(match input ok-name ok-branch err-name err-branch)
//
// The taken branch sees the unwrapped payload under its bind name; the
// other branch is never evaluated.
func specialMatch(args []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if err := errs.CheckArgumentsAtLeast(1, len(args)); err != nil {
		return types.Value{}, err
	}
	if err := env.charge(costs.CostMatch, 0); err != nil {
		return types.Value{}, err
	}
	input, err := Eval(&args[0], env, ctx)
	if err != nil {
		return types.Value{}, err
	}
	branches := args[1:]
	switch input.Kind {
	case types.VKOptional:
		return matchOptional(input, branches, env, ctx)
	case types.VKResponse:
		return matchResponse(input, branches, env, ctx)
	default:
		return types.Value{}, errs.NewCheckError(errs.CheckBadMatchSyntax,
			"match input must be an optional or a response, found %s", input.Kind)
	}
}

func matchOptional(input types.Value, branches []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if len(branches) != 3 {
		return types.Value{}, errs.NewCheckError(errs.CheckBadMatchSyntax,
			"match on an optional takes a bind name, a some branch and a none branch")
	}
	name, ok := branches[0].MatchAtom()
	if !ok {
		return types.Value{}, errs.NewCheckError(errs.CheckBadMatchSyntax,
			"match binds its payload through a plain name")
	}
	if input.Optional == nil {
		return Eval(&branches[2], env, ctx)
	}
	return evalWithNewBinding(&branches[1], name, *input.Optional, env, ctx)
}

func matchResponse(input types.Value, branches []ast.Expr, env *Environment, ctx *LocalContext) (types.Value, error) {
	if len(branches) != 4 {
		return types.Value{}, errs.NewCheckError(errs.CheckBadMatchSyntax,
			"match on a response takes ok and err bind names with one branch each")
	}
	okName, ok := branches[0].MatchAtom()
	if !ok {
		return types.Value{}, errs.NewCheckError(errs.CheckBadMatchSyntax,
			"match binds its payload through a plain name")
	}
	errName, ok := branches[2].MatchAtom()
	if !ok {
		return types.Value{}, errs.NewCheckError(errs.CheckBadMatchSyntax,
			"match binds its payload through a plain name")
	}
	if input.Response.Committed {
		return evalWithNewBinding(&branches[1], okName, input.Response.Value, env, ctx)
	}
	return evalWithNewBinding(&branches[3], errName, input.Response.Value, env, ctx)
}

// evalWithNewBinding runs body in a child context holding exactly one
// extra binding. Collision rules match let.
func evalWithNewBinding(body *ast.Expr, name ident.Name, v types.Value, env *Environment, ctx *LocalContext) (types.Value, error) {
	inner, err := ctx.Extend()
	if err != nil {
		return types.Value{}, err
	}
	if err := checkBindable(name, env, inner); err != nil {
		return types.Value{}, err
	}
	inner.bind(name, v)
	return Eval(body, env, inner)
}
