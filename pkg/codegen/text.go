package codegen

import (
	"strconv"
	"strings"

	"github.com/xplshn/bgen/pkg/block"
	"github.com/xplshn/bgen/pkg/typeChecker"
)

var quoter = strings.NewReplacer(`\`, `\\`, "\n", `\n`, `"`, `\"`, `'`, `\'`)

// quote returns s as a C string literal.
func quote(s string) string {
	return `"` + quoter.Replace(s) + `"`
}

func (ctx *Context) codegenText(n *block.Node) (string, Order) {
	return quote(n.Field("TEXT")), OrderAtomic
}

// codegenTextJoin concatenates its items into a std::string, converting
// non-text items with std::to_string.
func (ctx *Context) codegenTextJoin(n *block.Node) (string, Order) {
	ctx.include("<string>")
	var parts []string
	for i, items := 0, n.Arity(n.Mutation.Items, "ADD"); i < items; i++ {
		name := "ADD" + strconv.Itoa(i)
		code := ctx.value(n, name, OrderNone, "")
		if code == "" {
			continue
		}
		switch ctx.typeOf(n.InputBlock(name)) {
		case typeChecker.Text:
			parts = append(parts, "std::string("+code+")")
		case typeChecker.Character:
			parts = append(parts, "std::string(1, "+code+")")
		default:
			parts = append(parts, "std::to_string("+code+")")
		}
	}
	switch len(parts) {
	case 0:
		return `std::string("")`, OrderUnaryPostfix
	case 1:
		return parts[0], OrderUnaryPostfix
	}
	return strings.Join(parts, " + "), OrderAdditive
}
