package codegen

import (
	"github.com/xplshn/bgen/pkg/block"
)

var compareOps = map[string]string{
	"EQ": "==", "NEQ": "!=", "LT": "<", "LTE": "<=", "GT": ">", "GTE": ">=",
}

func (ctx *Context) codegenCompare(n *block.Node) (string, Order) {
	op, ok := compareOps[n.Field("OP")]
	if !ok {
		op = "=="
	}
	order := OrderRelational
	if op == "==" || op == "!=" {
		order = OrderEquality
	}
	a := ctx.value(n, "A", order, "0")
	b := ctx.value(n, "B", order-1, "0")
	return a + " " + op + " " + b, order
}

// codegenLogicOperation fills a single missing operand with the identity of
// the operator; two missing operands give false.
func (ctx *Context) codegenLogicOperation(n *block.Node) (string, Order) {
	op, order := "&&", OrderLogicalAnd
	if n.Field("OP") == "OR" {
		op, order = "||", OrderLogicalOr
	}
	a := ctx.value(n, "A", order, "")
	b := ctx.value(n, "B", order, "")
	if a == "" && b == "" {
		a, b = "false", "false"
	} else {
		identity := "false"
		if op == "&&" {
			identity = "true"
		}
		if a == "" {
			a = identity
		}
		if b == "" {
			b = identity
		}
	}
	return a + " " + op + " " + b, order
}

func (ctx *Context) codegenNegate(n *block.Node) (string, Order) {
	return "!" + ctx.value(n, "BOOL", OrderUnaryPrefix, "true"), OrderUnaryPrefix
}

func (ctx *Context) codegenBoolean(n *block.Node) (string, Order) {
	if n.Field("BOOL") == "TRUE" {
		return "true", OrderAtomic
	}
	return "false", OrderAtomic
}

func (ctx *Context) codegenNull(*block.Node) (string, Order) {
	return "NULL", OrderAtomic
}

func (ctx *Context) codegenTernary(n *block.Node) (string, Order) {
	cond := ctx.value(n, "IF", OrderConditional-1, "false")
	then := ctx.value(n, "THEN", OrderConditional, "0")
	els := ctx.value(n, "ELSE", OrderConditional, "0")
	return cond + " ? " + then + " : " + els, OrderConditional
}
