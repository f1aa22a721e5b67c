package codegen

import (
	"math"
	"strconv"
	"strings"

	"github.com/xplshn/bgen/pkg/block"
	"github.com/xplshn/bgen/pkg/config"
	"github.com/xplshn/bgen/pkg/fragments"
	"github.com/xplshn/bgen/pkg/names"
	"github.com/xplshn/bgen/pkg/pins"
)

// peripheral declares the object of type class bound to pin once and returns
// its name. The name goes through the allocator so user identifiers that
// happen to match it get a different one.
func (ctx *Context) peripheral(class, prefix, pin, args string) string {
	name := ctx.names.Allocate(prefix+ident(pin), names.Generated)
	ctx.frags.Put(fragments.Declarations, prefix+"|"+pin, class+" "+name+"("+args+");", false)
	return name
}

// digitalOut declares the DigitalOut object driving pin and returns its name.
func (ctx *Context) digitalOut(pin string) string {
	return ctx.peripheral("DigitalOut", "myDigitalOut", pin, pin)
}

func (ctx *Context) digitalIn(pin string) string {
	return ctx.peripheral("DigitalIn", "myDigitalIn", pin, pin)
}

func (ctx *Context) pwmOut(prefix, pin string) string {
	return ctx.peripheral("PwmOut", prefix, pin, pin)
}

func (ctx *Context) writePin(n *block.Node, pin, label string) string {
	ctx.reservePin(n, pin, pins.Output, label)
	state := ctx.value(n, "STATE", OrderAtomic, "LOW")
	return ctx.digitalOut(pin) + ".write(" + state + ");\n"
}

func (ctx *Context) codegenDigitalWrite(n *block.Node) string {
	pin := n.Field("PIN")
	ctx.checkPin(n, "digitalPins", pin)
	return ctx.writePin(n, pin, "Digital Write")
}

func (ctx *Context) codegenBuiltinLed(n *block.Node) string {
	pin := n.Field("BUILT_IN_LED")
	ctx.checkPin(n, "builtinLed", pin)
	return ctx.writePin(n, pin, "Set LED")
}

func (ctx *Context) codegenDigitalOut(n *block.Node) string {
	return ctx.writePin(n, n.Field("digitalOut_enum"), "Digital Out")
}

func (ctx *Context) codegenDigitalRead(n *block.Node) (string, Order) {
	pin := n.Field("PIN")
	ctx.checkPin(n, "digitalPins", pin)
	ctx.reservePin(n, pin, pins.Input, "Digital Read")
	return ctx.digitalIn(pin) + ".read()", OrderUnaryPostfix
}

func (ctx *Context) codegenAnalogWrite(n *block.Node) string {
	pin := n.Field("PIN")
	ctx.checkPin(n, "pwmPins", pin)
	ctx.reservePin(n, pin, pins.PWM, "Analogue Write")
	v := ctx.value(n, "NUM", OrderMultiplicative, "0")

	if lit, ok := literal(v); ok && (lit < 0 || lit > 255) {
		ctx.warn(n, config.WarnAnalogRange, "pwm_value", "The analogue value set must be between 0 and 255")
	}
	return ctx.pwmOut("myPwmOut", pin) + ".write(" + v + " / 255.0);\n"
}

func (ctx *Context) codegenAnalogRead(n *block.Node) (string, Order) {
	pin := n.Field("PIN")
	ctx.checkPin(n, "analogPins", pin)
	ctx.reservePin(n, pin, pins.Input, "Analogue Read")
	return ctx.peripheral("AnalogIn", "myIO", pin, pin) + ".read()", OrderUnaryPostfix
}

func (ctx *Context) codegenHighLow(n *block.Node) (string, Order) {
	if n.Field("STATE") == "HIGH" {
		return "HIGH", OrderAtomic
	}
	return "LOW", OrderAtomic
}

const pulseInTemplate = `long ` + fragments.FunctionName + `(DigitalIn &pin, int state, long timeout) {
  Timer t;
  t.start();
  while (pin.read() == state) {
    if (timeout > 0 && t.read_us() > timeout) return 0;
  }
  while (pin.read() != state) {
    if (timeout > 0 && t.read_us() > timeout) return 0;
  }
  t.reset();
  while (pin.read() == state) {
    if (timeout > 0 && t.read_us() > timeout) return 0;
  }
  return t.read_us();
}`

// codegenPulseIn measures a pulse on PULSEPIN in microseconds. The
// io_pulsetimeout form gives up after TIMEOUT microseconds and returns 0.
func (ctx *Context) codegenPulseIn(n *block.Node) (string, Order) {
	pin := n.Field("PULSEPIN")
	ctx.checkPin(n, "digitalPins", pin)
	ctx.reservePin(n, pin, pins.Input, "Pulse Pin")
	state := ctx.value(n, "PULSETYPE", OrderNone, "HIGH")
	timeout := "0"
	if n.Kind == "io_pulsetimeout" {
		timeout = ctx.value(n, "TIMEOUT", OrderNone, "0")
	}
	fn := ctx.frags.AddFunction("measurePulse", pulseInTemplate, ctx.names)
	return fn + "(" + ctx.digitalIn(pin) + ", " + state + ", " + timeout + ")", OrderUnaryPostfix
}

func (ctx *Context) codegenTone(n *block.Node) string {
	pin := n.Field("TONEPIN")
	ctx.checkPin(n, "pwmPins", pin)
	ctx.reservePin(n, pin, pins.PWM, "Tone Pin")
	freq := ctx.value(n, "FREQUENCY", OrderMultiplicative-1, "440")
	name := ctx.pwmOut("myPwmOut", pin)
	return name + ".period(1.0 / " + freq + ");\n" + name + ".write(0.5);\n"
}

func (ctx *Context) codegenNoTone(n *block.Node) string {
	pin := n.Field("TONEPIN")
	ctx.reservePin(n, pin, pins.PWM, "Tone Pin")
	return ctx.pwmOut("myPwmOut", pin) + ".write(0);\n"
}

func (ctx *Context) codegenDelay(n *block.Node) string {
	ms := ctx.value(n, "DELAY_TIME_MILI", OrderMultiplicative, "0")
	if f, ok := literal(ms); ok {
		return "wait(" + formatNumber(f/1000) + ");\n"
	}
	return "wait(" + ms + " / 1000.0);\n"
}

func (ctx *Context) codegenDelayMicros(n *block.Node) string {
	return "wait_us(" + ctx.value(n, "DELAY_TIME_MICRO", OrderNone, "0") + ");\n"
}

// codegenMillis reads a shared Timer started at the top of main.
func (ctx *Context) codegenMillis(n *block.Node) (string, Order) {
	timer := ctx.names.Allocate("timer", names.Generated)
	ctx.frags.Put(fragments.Declarations, "timer", "Timer "+timer+";", false)
	ctx.frags.Put(fragments.Setups, "timer", timer+".start();", false)
	if n.Kind == "time_micros" {
		return timer + ".read_us()", OrderUnaryPostfix
	}
	return timer + ".read_ms()", OrderUnaryPostfix
}

func (ctx *Context) codegenInfiniteLoop(*block.Node) string {
	return "while (true);\n"
}

// literal parses code when it is a finite numeric literal.
func literal(code string) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(code), 64)
	if err != nil || math.IsInf(f, 0) || math.IsNaN(f) {
		return 0, false
	}
	return f, true
}
