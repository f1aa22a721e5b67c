package codegen

import (
	"github.com/xplshn/bgen/pkg/block"
	"github.com/xplshn/bgen/pkg/config"
	"github.com/xplshn/bgen/pkg/fragments"
	"github.com/xplshn/bgen/pkg/pins"
	"github.com/xplshn/bgen/pkg/typeChecker"
)

// serialPort declares the Serial object for port, claims its pins and
// returns the object name. Ports missing from the board fall back to the
// USB console pins.
func (ctx *Context) serialPort(n *block.Node, port string) string {
	tx, rx := "USBTX", "USBRX"
	if p, ok := ctx.board.SerialPorts[port]; ok {
		tx, rx = p[0], p[1]
		ctx.reservePin(n, tx, pins.Serial, "SERIAL TX")
		ctx.reservePin(n, rx, pins.Serial, "SERIAL RX")
	} else {
		ctx.warn(n, config.WarnExtra, "board:serial", "Serial port %s is not available on board %s.", port, ctx.board.Key)
	}
	return ctx.peripheral("Serial", "my", port, tx+", "+rx)
}

// hasSetup reports whether an enabled block of kind configures the
// peripheral named in field.
func (ctx *Context) hasSetup(kind, field, id string) bool {
	for _, s := range ctx.ws.OfKind(kind) {
		if !s.Disabled && s.Field(field) == id {
			return true
		}
	}
	return false
}

func (ctx *Context) codegenSerialSetup(n *block.Node) string {
	port := n.Field("SERIAL_ID")
	name := ctx.serialPort(n, port)
	speed := n.Field("SPEED")
	if speed == "" {
		speed = "9600"
	}
	ctx.frags.Put(fragments.Setups, "serial_"+port, name+".baud("+speed+");", true)
	return ""
}

func (ctx *Context) codegenSerialPrint(n *block.Node) string {
	port := n.Field("SERIAL_ID")
	name := ctx.serialPort(n, port)
	if !ctx.hasSetup("serial_setup", "SERIAL_ID", port) {
		ctx.warn(n, config.WarnSerialSetup, "serial_setup",
			"A setup block for %s must be added to the workspace to use this block.", port)
	}

	content := n.InputBlock("CONTENT")
	arg := ctx.value(n, "CONTENT", OrderNone, "0")
	var format string
	switch ctx.typeOf(content) {
	case typeChecker.Text:
		ctx.include("<string>")
		format, arg = "%s", "std::string("+arg+").c_str()"
	case typeChecker.Decimal:
		format = "%f"
	case typeChecker.LargeNumber:
		format = "%ld"
	case typeChecker.Character:
		format = "%c"
	default:
		format = "%d"
	}
	if n.Field("NEW_LINE") == "TRUE" {
		format += `\n`
	}
	return name + `.printf("` + format + `", ` + arg + ");\n"
}

func (ctx *Context) codegenSerialGetc(n *block.Node) (string, Order) {
	port := n.Field("SERIAL_ID")
	name := ctx.serialPort(n, port)
	if !ctx.hasSetup("serial_setup", "SERIAL_ID", port) {
		ctx.warn(n, config.WarnSerialSetup, "serial_setup",
			"A setup block for %s must be added to the workspace to use this block.", port)
	}
	return name + ".getc()", OrderUnaryPostfix
}
