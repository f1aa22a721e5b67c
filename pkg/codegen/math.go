package codegen

import (
	"strconv"
	"strings"

	"github.com/xplshn/bgen/pkg/block"
	"github.com/xplshn/bgen/pkg/fragments"
	"github.com/xplshn/bgen/pkg/typeChecker"
)

func (ctx *Context) codegenNumber(n *block.Node) (string, Order) {
	lit := strings.TrimSpace(n.Field("NUM"))
	switch lit {
	case "Infinity":
		ctx.include("<math.h>")
		return "INFINITY", OrderAtomic
	case "-Infinity":
		ctx.include("<math.h>")
		return "-INFINITY", OrderUnaryPrefix
	}
	if _, ok := literal(lit); !ok {
		return "0", OrderAtomic
	}
	if strings.HasPrefix(lit, "-") {
		return lit, OrderUnaryPrefix
	}
	return lit, OrderAtomic
}

var arithmeticOps = map[string]struct {
	op    string
	order Order
	// assoc is set when a right operand of the same order needs no parens.
	assoc bool
}{
	"ADD":      {" + ", OrderAdditive, true},
	"MINUS":    {" - ", OrderAdditive, false},
	"MULTIPLY": {" * ", OrderMultiplicative, false},
	"DIVIDE":   {" / ", OrderMultiplicative, false},
}

func (ctx *Context) codegenArithmetic(n *block.Node) (string, Order) {
	if n.Field("OP") == "POWER" {
		ctx.include("<math.h>")
		a := ctx.value(n, "A", OrderNone, "0")
		b := ctx.value(n, "B", OrderNone, "0")
		return "pow(" + a + ", " + b + ")", OrderUnaryPostfix
	}
	ar, ok := arithmeticOps[n.Field("OP")]
	if !ok {
		ar = arithmeticOps["ADD"]
	}
	right := ar.order
	if !ar.assoc {
		right--
	}
	a := ctx.value(n, "A", ar.order, "0")
	b := ctx.value(n, "B", right, "0")
	return a + ar.op + b, ar.order
}

// codegenSingle covers math_single, math_round and math_trig. Trigonometry
// works in degrees.
func (ctx *Context) codegenSingle(n *block.Node) (string, Order) {
	op := n.Field("OP")
	if op == "NEG" {
		arg := ctx.value(n, "NUM", OrderUnaryPrefix, "0")
		if strings.HasPrefix(arg, "-") {
			arg = " " + arg
		}
		return "-" + arg, OrderUnaryPrefix
	}

	ctx.include("<math.h>")
	switch op {
	case "SIN", "COS", "TAN":
		arg := ctx.value(n, "NUM", OrderMultiplicative, "0")
		return strings.ToLower(op) + "(" + arg + " / 180.0 * M_PI)", OrderUnaryPostfix
	case "ASIN", "ACOS", "ATAN":
		arg := ctx.value(n, "NUM", OrderNone, "0")
		return strings.ToLower(op) + "(" + arg + ") / M_PI * 180", OrderMultiplicative
	}

	arg := ctx.value(n, "NUM", OrderNone, "0")
	var fn string
	switch op {
	case "ROOT":
		fn = "sqrt"
	case "ABS":
		fn = "abs"
		if ctx.typeOf(n.InputBlock("NUM")) == typeChecker.Decimal {
			fn = "fabs"
		}
	case "LN":
		fn = "log"
	case "LOG10":
		fn = "log10"
	case "EXP":
		fn = "exp"
	case "POW10":
		return "pow(10, " + arg + ")", OrderUnaryPostfix
	case "ROUND":
		fn = "round"
	case "ROUNDUP":
		fn = "ceil"
	case "ROUNDDOWN":
		fn = "floor"
	default:
		fn = "sqrt"
	}
	return fn + "(" + arg + ")", OrderUnaryPostfix
}

var constants = map[string]struct {
	code  string
	order Order
}{
	"PI":           {"M_PI", OrderAtomic},
	"E":            {"M_E", OrderAtomic},
	"GOLDEN_RATIO": {"(1 + sqrt(5)) / 2", OrderMultiplicative},
	"SQRT2":        {"M_SQRT2", OrderAtomic},
	"SQRT1_2":      {"M_SQRT1_2", OrderAtomic},
	"INFINITY":     {"INFINITY", OrderAtomic},
}

func (ctx *Context) codegenConstant(n *block.Node) (string, Order) {
	ctx.include("<math.h>")
	c, ok := constants[n.Field("CONSTANT")]
	if !ok {
		c = constants["PI"]
	}
	return c.code, c.order
}

const isPrimeTemplate = `bool ` + fragments.FunctionName + `(int n) {
  if (n == 2 || n == 3) {
    return true;
  }
  if (n <= 1 || n % 2 == 0 || n % 3 == 0) {
    return false;
  }
  for (int x = 6; x - 1 <= sqrt(n); x += 6) {
    if (n % (x - 1) == 0 || n % (x + 1) == 0) {
      return false;
    }
  }
  return true;
}`

func (ctx *Context) codegenNumberProperty(n *block.Node) (string, Order) {
	prop := n.Field("PROPERTY")
	if prop == "PRIME" {
		ctx.include("<math.h>")
		fn := ctx.frags.AddFunction("mathIsPrime", isPrimeTemplate, ctx.names)
		return fn + "(" + ctx.value(n, "NUMBER_TO_CHECK", OrderNone, "0") + ")", OrderUnaryPostfix
	}

	switch prop {
	case "EVEN", "ODD", "DIVISIBLE_BY":
		x := ctx.value(n, "NUMBER_TO_CHECK", OrderMultiplicative, "0")
		d, cmp := "2", " == 0"
		if prop == "ODD" {
			cmp = " != 0"
		}
		if prop == "DIVISIBLE_BY" {
			d = ctx.value(n, "DIVISOR", OrderMultiplicative-1, "1")
		}
		return x + " % " + d + cmp, OrderEquality
	case "WHOLE":
		ctx.include("<math.h>")
		x, order := ctx.valueOf(n.InputBlock("NUMBER_TO_CHECK"), OrderNone)
		if x == "" {
			x, order = "0", OrderAtomic
		}
		right, _ := parenthesize(x, order, OrderEquality-1)
		return "floor(" + x + ") == " + right, OrderEquality
	case "NEGATIVE":
		return ctx.value(n, "NUMBER_TO_CHECK", OrderRelational, "0") + " < 0", OrderRelational
	}
	return ctx.value(n, "NUMBER_TO_CHECK", OrderRelational, "0") + " > 0", OrderRelational
}

func (ctx *Context) codegenModulo(n *block.Node) (string, Order) {
	a := ctx.value(n, "DIVIDEND", OrderMultiplicative, "0")
	b := ctx.value(n, "DIVISOR", OrderMultiplicative-1, "1")
	return a + " % " + b, OrderMultiplicative
}

// codegenConstrain clamps VALUE into [LOW, HIGH].
func (ctx *Context) codegenConstrain(n *block.Node) (string, Order) {
	x := ctx.value(n, "VALUE", OrderRelational-1, "0")
	lo := ctx.value(n, "LOW", OrderRelational-1, "0")
	hi := ctx.value(n, "HIGH", OrderRelational-1, "100")
	return x + " < " + lo + " ? " + lo + " : " + x + " > " + hi + " ? " + hi + " : " + x, OrderConditional
}

const randomIntTemplate = `int ` + fragments.FunctionName + `(int min, int max) {
  if (min > max) {
    int temp = min;
    min = max;
    max = temp;
  }
  return min + (rand() % (max - min + 1));
}`

func (ctx *Context) codegenRandomInt(n *block.Node) (string, Order) {
	fn := ctx.frags.AddFunction("mathRandomInt", randomIntTemplate, ctx.names)
	from := ctx.value(n, "FROM", OrderNone, "0")
	to := ctx.value(n, "TO", OrderNone, "0")
	return fn + "(" + from + ", " + to + ")", OrderUnaryPostfix
}

func (ctx *Context) codegenRandomFloat(*block.Node) (string, Order) {
	return "rand() / (float)RAND_MAX", OrderMultiplicative
}

const mapTemplate = `long ` + fragments.FunctionName + `(long x, long inMin, long inMax, long outMin, long outMax) {
  return (x - inMin) * (outMax - outMin) / (inMax - inMin) + outMin;
}`

// codegenMap scales a 10-bit reading in NUM onto [0, DMAX].
func (ctx *Context) codegenMap(n *block.Node) (string, Order) {
	fn := ctx.frags.AddFunction("mapValue", mapTemplate, ctx.names)
	num := ctx.value(n, "NUM", OrderNone, "0")
	dmax := ctx.value(n, "DMAX", OrderNone, "0")
	return fn + "(" + num + ", 0, 1024, 0, " + dmax + ")", OrderUnaryPostfix
}

// formatNumber prints f the way a math_number field would.
func formatNumber(f float64) string {
	return strconv.FormatFloat(f, 'g', -1, 64)
}
