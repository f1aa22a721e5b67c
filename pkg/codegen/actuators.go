package codegen

import (
	"github.com/xplshn/bgen/pkg/block"
	"github.com/xplshn/bgen/pkg/fragments"
	"github.com/xplshn/bgen/pkg/names"
	"github.com/xplshn/bgen/pkg/pins"
)

func (ctx *Context) servo(n *block.Node, label string) string {
	pin := n.Field("SERVO_PIN")
	ctx.checkPin(n, "pwmPins", pin)
	ctx.reservePin(n, pin, pins.Servo, label)
	return ctx.pwmOut("myServo", pin)
}

// codegenServoWrite drives a hobby servo with a PWM period and pulse width,
// both in seconds.
func (ctx *Context) codegenServoWrite(n *block.Node) string {
	name := ctx.servo(n, "Servo Write")
	period := ctx.value(n, "SERVO_PERIOD", OrderNone, "0.02")
	width := ctx.value(n, "SERVO_PULSEWIDTH", OrderNone, "0.0015")
	return name + ".period(" + period + ");\n" + name + ".pulsewidth(" + width + ");\n"
}

// codegenServoRead yields the current duty cycle.
func (ctx *Context) codegenServoRead(n *block.Node) (string, Order) {
	return ctx.servo(n, "Servo Read") + ".read()", OrderUnaryPostfix
}

func (ctx *Context) stepperName(n *block.Node) string {
	return ctx.names.Allocate("stepper_"+ident(n.Field("STEPPER_NAME")), names.Generated)
}

func (ctx *Context) codegenStepperConfig(n *block.Node) string {
	pin1, pin2 := n.Field("STEPPER_PIN1"), n.Field("STEPPER_PIN2")
	raw := n.Field("STEPPER_NAME")
	steps := ctx.value(n, "STEPPER_STEPS", OrderNone, "360")
	speed := ctx.value(n, "STEPPER_SPEED", OrderNone, "90")

	ctx.reservePin(n, pin1, pins.Stepper, "Stepper")
	ctx.reservePin(n, pin2, pins.Stepper, "Stepper")

	// The pin pair is kept as an array named after the stepper.
	arr := ctx.names.Allocate(raw, names.Generated)
	ctx.frags.Put(fragments.Variables, "Stepper[]|"+raw, "int "+arr+"[2] = {"+pin1+", "+pin2+"};", true)
	ctx.include(`"Stepper.h"`)
	name := ctx.stepperName(n)
	ctx.frags.Put(fragments.Declarations, "Stepper|"+raw, "Stepper "+name+"("+steps+", "+pin1+", "+pin2+");", false)
	ctx.frags.Put(fragments.Setups, "Stepper|"+raw, name+".setSpeed("+speed+");", true)
	return ""
}

func (ctx *Context) codegenStepperStep(n *block.Node) string {
	return ctx.stepperName(n) + ".step(" + ctx.value(n, "STEPPER_STEPS", OrderNone, "0") + ");\n"
}
