package codegen

import (
	"strings"

	"github.com/xplshn/bgen/pkg/block"
	"github.com/xplshn/bgen/pkg/config"
	"github.com/xplshn/bgen/pkg/fragments"
	"github.com/xplshn/bgen/pkg/names"
	"github.com/xplshn/bgen/pkg/typeChecker"
)

// zeroValue is the literal used for a missing input of type t.
func zeroValue(t typeChecker.Type) string {
	switch t {
	case typeChecker.Text:
		return `""`
	case typeChecker.Boolean:
		return "false"
	case typeChecker.Character:
		return `'\0'`
	}
	return "0"
}

func (ctx *Context) codegenVariableGet(n *block.Node) (string, Order) {
	return ctx.variable(n.Field("VAR")), OrderAtomic
}

func (ctx *Context) codegenVariableSet(n *block.Node) string {
	raw := n.Field("VAR")
	v := ctx.value(n, "VALUE", OrderAssignment, zeroValue(ctx.types.VarType(raw)))
	return ctx.variable(raw) + " = " + v + ";\n"
}

// codegenVariableCast converts its input to the selected type with a C
// style cast.
func (ctx *Context) codegenVariableCast(n *block.Node) (string, Order) {
	t, ok := typeChecker.ParseType(n.Field("VARIABLE_SETTYPE_TYPE"))
	if !ok {
		ctx.warn(n, config.WarnType, "type", "Unknown type %q, converting to int.", n.Field("VARIABLE_SETTYPE_TYPE"))
	}
	v := ctx.value(n, "VARIABLE_SETTYPE_INPUT", OrderUnaryPrefix, "0")
	return "(" + typeChecker.CType(t) + ")" + v, OrderUnaryPrefix
}

func (ctx *Context) codegenChange(n *block.Node) string {
	delta := ctx.value(n, "DELTA", OrderAssignment, "0")
	return ctx.variable(n.Field("VAR")) + " += " + delta + ";\n"
}

func (ctx *Context) codegenMacroDefine(n *block.Node) string {
	name := ctx.names.Allocate(n.Field("MACRO_NAME"), names.Macro)
	v := ctx.value(n, "MACRO_DEFINE_AS", OrderAtomic, "0")
	ctx.frags.Put(fragments.Declarations, "#define "+name, "#define "+name+" "+v, false)
	return ""
}

func (ctx *Context) codegenMacroGet(n *block.Node) (string, Order) {
	raw := n.Field("MACRO_NAME")
	if !ctx.macros[strings.ToLower(raw)] {
		ctx.warn(n, config.WarnExtra, "macro", "Macro %s is used but never defined.", raw)
	}
	return ctx.names.Allocate(raw, names.Macro), OrderAtomic
}
