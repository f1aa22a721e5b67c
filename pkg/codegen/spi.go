package codegen

import (
	"fmt"
	"strconv"

	"github.com/xplshn/bgen/pkg/block"
	"github.com/xplshn/bgen/pkg/board"
	"github.com/xplshn/bgen/pkg/config"
	"github.com/xplshn/bgen/pkg/fragments"
	"github.com/xplshn/bgen/pkg/pins"
)

// spiBus declares the SPI object of bus and claims its pins. ok is false
// when the board has no such bus.
func (ctx *Context) spiBus(n *block.Node, bus, choice string) (name string, ok bool) {
	var p board.SPIBus
	if p, ok = ctx.board.SPIBusPins(bus, choice); !ok {
		ctx.warn(n, config.WarnExtra, "board:spi", "SPI bus %s is not available on board %s.", bus, ctx.board.Key)
		return "", false
	}
	ctx.reservePin(n, p.MOSI, pins.SPI, "SPI MOSI")
	ctx.reservePin(n, p.MISO, pins.SPI, "SPI MISO")
	ctx.reservePin(n, p.SCK, pins.SPI, "SPI SCK")
	return ctx.peripheral("SPI", "spi_", bus, p.MOSI+", "+p.MISO+", "+p.SCK), true
}

// codegenSPISetup configures the bus clock (FREQUENCY x 100 kHz) and mode,
// then selects the chip on PIN.
func (ctx *Context) codegenSPISetup(n *block.Node) string {
	name, ok := ctx.spiBus(n, n.Field("SPI_ID"), n.Field("SPI1_ID"))
	if !ok {
		return ""
	}

	freq := ctx.value(n, "frequency", OrderMultiplicative, "1")
	if f, isLit := literal(freq); isLit {
		freq = strconv.FormatFloat(f*100000, 'f', -1, 64)
	} else {
		freq += " * 100000"
	}
	mode := n.Field("SPI_MODE")
	if mode == "" {
		mode = "0"
	}

	code := name + ".frequency(" + freq + ");\n" + name + ".format(8, " + mode + ");\n"
	if cs := n.Field("PIN"); cs != "" {
		ctx.reservePin(n, cs, pins.Output, "SPI CS")
		code += ctx.digitalOut(cs) + ".write(0);\n"
	}
	return code
}

// spiTarget resolves the bus of a transfer block. The pin mapping follows
// the setup block of the same bus, which must exist.
func (ctx *Context) spiTarget(n *block.Node) (string, bool) {
	bus := n.Field("SPI_ID")
	var setup *block.Node
	for _, s := range ctx.ws.OfKind("spi_setup") {
		if !s.Disabled && s.Field("SPI_ID") == bus {
			setup = s
			break
		}
	}
	if setup == nil {
		ctx.warn(n, config.WarnSPISetup, "spi_setup",
			"A setup block for %s must be added to the workspace to use this block.", bus)
	}
	return ctx.spiBus(n, bus, setup.Field("SPI1_ID"))
}

func (ctx *Context) codegenSPITransfer(n *block.Node) string {
	name, ok := ctx.spiTarget(n)
	if !ok {
		return ""
	}
	return name + ".write(" + ctx.value(n, "SPI_DATA", OrderNone, "0") + ");\n"
}

const spiSlaveTemplate = `int ` + fragments.FunctionName + `(int data) {
  int spiReturn = 0;
  %[1]s.write(0);
  spiReturn = %[2]s.write(data);
  %[1]s.write(1);
  return spiReturn;
}`

// codegenSPITransferReturn writes SPI_DATA and yields the byte clocked in.
// With a slave select pin the transfer goes through a helper that frames it.
func (ctx *Context) codegenSPITransferReturn(n *block.Node) (string, Order) {
	name, ok := ctx.spiTarget(n)
	if !ok {
		return "0", OrderAtomic
	}
	data := ctx.value(n, "SPI_DATA", OrderNone, "0")
	ss := n.Field("SPI_SS")
	if ss == "" || ss == "none" {
		return name + ".write(" + data + ")", OrderUnaryPostfix
	}

	ctx.reservePin(n, ss, pins.Output, "SPI Slave pin")
	cs := ctx.digitalOut(ss)
	fn := ctx.frags.AddFunction("spiReturnSlave"+ident(ss), fmt.Sprintf(spiSlaveTemplate, cs, name), ctx.names)
	return fn + "(" + data + ")", OrderUnaryPostfix
}
