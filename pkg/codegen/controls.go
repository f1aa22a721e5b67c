package codegen

import (
	"strconv"
	"strings"

	"github.com/xplshn/bgen/pkg/block"
	"github.com/xplshn/bgen/pkg/names"
	"github.com/xplshn/bgen/pkg/typeChecker"
)

func (ctx *Context) codegenIf(n *block.Node) string {
	var sb strings.Builder
	arms := n.Arity(n.Mutation.ElseIf+1, "IF", "DO")
	for i := 0; i < arms; i++ {
		idx := strconv.Itoa(i)
		cond := ctx.value(n, "IF"+idx, OrderNone, "false")
		if i > 0 {
			sb.WriteString(" else ")
		}
		sb.WriteString("if (" + cond + ") {\n" + ctx.statement(n, "DO"+idx) + "}")
	}
	if n.Mutation.Else || n.Input("ELSE") != nil {
		sb.WriteString(" else {\n" + ctx.statement(n, "ELSE") + "}")
	}
	sb.WriteString("\n")
	return sb.String()
}

// simple reports whether code can be evaluated repeatedly without side
// effects or extra cost: a numeric literal or a bare identifier.
func simple(code string) bool {
	if _, ok := literal(code); ok {
		return true
	}
	if code == "" {
		return false
	}
	for i, r := range code {
		switch {
		case r == '_', r >= 'a' && r <= 'z', r >= 'A' && r <= 'Z':
		case r >= '0' && r <= '9' && i > 0:
		default:
			return false
		}
	}
	return true
}

// hoist stores code in a fresh local unless it is simple, appending the
// declaration to pre.
func (ctx *Context) hoist(pre *strings.Builder, ctype, hint, code string) string {
	if simple(code) {
		return code
	}
	name := ctx.names.Distinct(hint, names.Generated)
	pre.WriteString(ctype + " " + name + " = " + code + ";\n")
	return name
}

func (ctx *Context) codegenRepeat(n *block.Node) string {
	var pre strings.Builder
	times := ctx.hoist(&pre, "int", "repeat_end", ctx.value(n, "TIMES", OrderRelational-1, "0"))
	count := ctx.names.Distinct("count", names.Generated)
	return pre.String() +
		"for (int " + count + " = 0; " + count + " < " + times + "; " + count + "++) {\n" +
		ctx.statement(n, "DO") + "}\n"
}

func (ctx *Context) codegenWhileUntil(n *block.Node) string {
	var cond string
	if n.Field("MODE") == "UNTIL" {
		cond = "!" + ctx.value(n, "BOOL", OrderUnaryPrefix, "false")
	} else {
		cond = ctx.value(n, "BOOL", OrderNone, "false")
	}
	return "while (" + cond + ") {\n" + ctx.statement(n, "DO") + "}\n"
}

// codegenFor counts VAR from FROM to TO in steps of |BY|, upwards or
// downwards depending on the bounds. Literal bounds fix the direction at
// generation time.
func (ctx *Context) codegenFor(n *block.Node) string {
	raw := n.Field("VAR")
	v := ctx.variable(raw)
	from := ctx.value(n, "FROM", OrderAssignment, "0")
	to := ctx.value(n, "TO", OrderRelational-1, "0")
	by := ctx.value(n, "BY", OrderAssignment, "1")
	body := ctx.statement(n, "DO")

	f, fromLit := literal(from)
	t, toLit := literal(to)
	b, byLit := literal(by)
	if fromLit && toLit && byLit {
		step := formatNumber(abs(b))
		if f <= t {
			return "for (" + v + " = " + from + "; " + v + " <= " + to + "; " + v + " += " + step + ") {\n" + body + "}\n"
		}
		return "for (" + v + " = " + from + "; " + v + " >= " + to + "; " + v + " -= " + step + ") {\n" + body + "}\n"
	}

	ctype := typeChecker.CType(ctx.types.VarType(raw))
	var pre strings.Builder
	start := ctx.hoist(&pre, ctype, v+"_start", from)
	end := ctx.hoist(&pre, ctype, v+"_end", to)
	inc := ctx.names.Distinct(v+"_inc", names.Generated)
	pre.WriteString(ctype + " " + inc + " = " + by + ";\n")
	pre.WriteString("if (" + inc + " < 0) {\n" + ctx.indent + inc + " = -" + inc + ";\n}\n")
	pre.WriteString("if (" + start + " > " + end + ") {\n" + ctx.indent + inc + " = -" + inc + ";\n}\n")
	return pre.String() +
		"for (" + v + " = " + start + "; " + inc + " >= 0 ? " + v + " <= " + end + " : " + v + " >= " + end + "; " +
		v + " += " + inc + ") {\n" + body + "}\n"
}

func abs(f float64) float64 {
	if f < 0 {
		return -f
	}
	return f
}

func (ctx *Context) codegenFlowStatement(n *block.Node) string {
	if n.Field("FLOW") == "CONTINUE" {
		return "continue;\n"
	}
	return "break;\n"
}
