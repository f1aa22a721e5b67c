package codegen

import (
	"strings"

	"github.com/xplshn/bgen/pkg/block"
	"github.com/xplshn/bgen/pkg/config"
)

// Emit generates the statement chain starting at n. Disabled blocks are
// skipped, value blocks standing alone are terminated with ';', and each
// block's comments are placed above its code.
func (ctx *Context) Emit(n *block.Node) (string, error) {
	code := ctx.chain(n)
	if ctx.err != nil {
		return "", ctx.err
	}
	return code, nil
}

// EmitValue generates the value block n for a slot that accepts at most
// min. The code is parenthesised when its own order is looser than min.
func (ctx *Context) EmitValue(n *block.Node, min Order) (string, Order, error) {
	code, order := ctx.valueOf(n, min)
	if ctx.err != nil {
		return "", OrderNone, ctx.err
	}
	return code, order, nil
}

func (ctx *Context) chain(n *block.Node) string {
	var sb strings.Builder
	for cur := n; cur != nil; cur = cur.Next {
		if cur.Disabled {
			continue
		}
		sb.WriteString(ctx.statementOf(cur))
	}
	return sb.String()
}

func (ctx *Context) statementOf(n *block.Node) string {
	e, err := lookup(n)
	if err != nil {
		ctx.fail(err)
		return ""
	}

	var code string
	switch {
	case e.detached:
		// Definitions write their own fragments; nothing goes in the body.
		e.stmt(ctx, n)
		return ""
	case e.stmt != nil:
		code = e.stmt(ctx, n)
	default:
		v, _ := e.value(ctx, n)
		if v == "" {
			return ""
		}
		code = v + ";\n"
	}
	return ctx.comments(n) + code
}

func (ctx *Context) valueOf(n *block.Node, min Order) (string, Order) {
	if n == nil || n.Disabled {
		return "", OrderAtomic
	}
	e, err := lookup(n)
	if err != nil {
		ctx.fail(err)
		return "", OrderAtomic
	}
	if e.value == nil {
		ctx.fail(&ShapeError{Kind: n.Kind, BlockID: n.ID, Want: "value"})
		return "", OrderAtomic
	}
	code, order := e.value(ctx, n)
	if code == "" {
		return "", OrderAtomic
	}
	return parenthesize(code, order, min)
}

// comments collects the comment of n and every comment inside its value
// inputs. Statement inputs are left out: their blocks print their own.
func (ctx *Context) comments(n *block.Node) string {
	if !ctx.cfg.IsFeatureEnabled(config.FeatComments) {
		return ""
	}
	var sb strings.Builder
	writeComment(&sb, n.Comment)
	for _, in := range n.Inputs {
		if in.Kind != block.ValueInput || in.Block == nil {
			continue
		}
		in.Block.Walk(func(c *block.Node) bool {
			writeComment(&sb, c.Comment)
			return true
		})
	}
	return sb.String()
}

func writeComment(sb *strings.Builder, text string) {
	if text == "" {
		return
	}
	for _, line := range strings.Split(strings.TrimRight(text, "\n"), "\n") {
		sb.WriteString("// " + line + "\n")
	}
}

// value emits the block connected to input name, or def when nothing usable
// is connected.
func (ctx *Context) value(n *block.Node, name string, min Order, def string) string {
	code, _ := ctx.valueOf(n.InputBlock(name), min)
	if code == "" {
		return def
	}
	return code
}

// statement emits the chain connected to a statement input, indented one
// level.
func (ctx *Context) statement(n *block.Node, name string) string {
	return ctx.indentLines(ctx.chain(n.InputBlock(name)))
}

func (ctx *Context) indentLines(code string) string {
	if code == "" {
		return ""
	}
	lines := strings.SplitAfter(code, "\n")
	var sb strings.Builder
	for _, line := range lines {
		if line != "" && line != "\n" {
			sb.WriteString(ctx.indent)
		}
		sb.WriteString(line)
	}
	return sb.String()
}
