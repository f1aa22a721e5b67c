package codegen

import (
	"strconv"
	"strings"

	"github.com/xplshn/bgen/pkg/block"
	"github.com/xplshn/bgen/pkg/config"
	"github.com/xplshn/bgen/pkg/fragments"
	"github.com/xplshn/bgen/pkg/names"
	"github.com/xplshn/bgen/pkg/typeChecker"
)

func (ctx *Context) procedure(raw string) string {
	return ctx.names.Allocate(raw, names.Procedure)
}

// codegenProcedureDef writes the function and its prototype. Nothing is
// spliced where the definition block sits.
func (ctx *Context) codegenProcedureDef(n *block.Node) string {
	raw := n.Field("NAME")
	if first := ctx.procs[strings.ToLower(raw)]; first != nil && first != n {
		ctx.warn(n, config.WarnExtra, "procedure", "Procedure %s is already defined by block %s; this definition is ignored.", raw, first.ID)
		return ""
	}
	name := ctx.procedure(raw)

	params := make([]string, len(n.Mutation.Args))
	for i, arg := range n.Mutation.Args {
		params[i] = typeChecker.CType(ctx.types.ParamType(raw, arg)) + " " + ctx.variable(arg)
	}
	ret := ctx.types.ReturnType(raw)
	if n.Kind == "procedures_defnoreturn" {
		ret = typeChecker.Null
	}
	signature := typeChecker.CType(ret) + " " + name + "(" + strings.Join(params, ", ") + ")"

	var body strings.Builder
	body.WriteString(ctx.statement(n, "STACK"))
	if n.Kind == "procedures_defreturn" {
		if v := ctx.value(n, "RETURN", OrderNone, ""); v != "" {
			body.WriteString(ctx.indent + "return " + v + ";\n")
		}
	}

	ctx.frags.Put(fragments.Declarations, "proto_"+name, signature+";", false)
	ctx.frags.Put(fragments.UserFunctions, name, ctx.comments(n)+signature+" {\n"+body.String()+"}", false)
	return ""
}

// callArgs emits ARG0..ARGn of a call. Missing arguments default to the
// zero value of the parameter type.
func (ctx *Context) callArgs(n *block.Node) string {
	raw := n.Field("NAME")
	params := n.Mutation.Args
	if def := ctx.procs[strings.ToLower(raw)]; len(params) == 0 && def != nil {
		params = def.Mutation.Args
	}
	if ctx.procs[strings.ToLower(raw)] == nil {
		ctx.warn(n, config.WarnExtra, "procedure", "Procedure %s is called but never defined.", raw)
	}
	args := make([]string, len(params))
	for i, p := range params {
		args[i] = ctx.value(n, "ARG"+strconv.Itoa(i), OrderNone, zeroValue(ctx.types.ParamType(raw, p)))
	}
	return ctx.procedure(raw) + "(" + strings.Join(args, ", ") + ")"
}

func (ctx *Context) codegenCallReturn(n *block.Node) (string, Order) {
	return ctx.callArgs(n), OrderUnaryPostfix
}

func (ctx *Context) codegenCallNoReturn(n *block.Node) string {
	return ctx.callArgs(n) + ";\n"
}

func (ctx *Context) codegenIfReturn(n *block.Node) string {
	cond := ctx.value(n, "CONDITION", OrderNone, "false")
	code := "if (" + cond + ") {\n"
	if n.Mutation.HasReturn {
		code += ctx.indent + "return " + ctx.value(n, "VALUE", OrderNone, "0") + ";\n"
	} else {
		code += ctx.indent + "return;\n"
	}
	return code + "}\n"
}

// codegenMainFunctions splits the program into a setup branch, run once at
// the top of main, and a loop branch.
func (ctx *Context) codegenMainFunctions(n *block.Node) string {
	if setup := ctx.chain(n.InputBlock("SETUP_FUNC")); setup != "" {
		ctx.frags.Put(fragments.Setups, "userSetupCode", strings.TrimSuffix(setup, "\n"), true)
	}
	if !ctx.cfg.IsFeatureEnabled(config.FeatMainLoop) {
		return ctx.chain(n.InputBlock("LOOP_FUNC"))
	}
	return "while (true) {\n" + ctx.statement(n, "LOOP_FUNC") + "}\n"
}
