package codegen

import (
	"errors"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"

	"github.com/xplshn/bgen/pkg/block"
	"github.com/xplshn/bgen/pkg/config"
	"github.com/xplshn/bgen/pkg/pins"
)

func newConfig(t *testing.T, board string) *config.Config {
	t.Helper()
	cfg := config.NewConfig()
	if board != "" {
		if err := cfg.SetBoard(board); err != nil {
			t.Fatalf("SetBoard(%s): %v", board, err)
		}
	}
	return cfg
}

func generate(t *testing.T, cfg *config.Config, blocks ...*block.Node) *Result {
	t.Helper()
	res, err := NewGenerator(cfg).Generate(&block.Workspace{Blocks: blocks})
	if err != nil {
		t.Fatalf("Generate: %v", err)
	}
	return res
}

func assertContains(t *testing.T, src, want string) {
	t.Helper()
	if !strings.Contains(src, want) {
		t.Errorf("output does not contain %q:\n%s", want, src)
	}
}

func num(id, v string) *block.Node {
	return block.NewNode(id, "math_number", map[string]string{"NUM": v})
}

func highLow(id, state string) *block.Node {
	return block.NewNode(id, "io_highlow", map[string]string{"STATE": state})
}

func digitalWrite(id, pin string, state *block.Node) *block.Node {
	n := block.NewNode(id, "io_digitalwrite", map[string]string{"PIN": pin})
	if state != nil {
		n.SetValue("STATE", state)
	}
	return n
}

func delay(id string, ms *block.Node) *block.Node {
	return block.NewNode(id, "time_delay", nil).SetValue("DELAY_TIME_MILI", ms)
}

func arith(id, op string, a, b *block.Node) *block.Node {
	return block.NewNode(id, "math_arithmetic", map[string]string{"OP": op}).SetValue("A", a).SetValue("B", b)
}

func TestBlinkSource(t *testing.T) {
	cfg := newConfig(t, "uno")
	res := generate(t, cfg, block.Chain(
		digitalWrite("w", "13", highLow("h", "HIGH")),
		delay("d", num("ms", "1000")),
	))

	want := `#define HIGH 1
#define LOW 0
#include "mbed.h"

DigitalOut myDigitalOut13(13);

int main() {
  myDigitalOut13.write(HIGH);
  wait(1);
}
`
	if diff := cmp.Diff(want, res.Source); diff != "" {
		t.Errorf("source mismatch (-want +got):\n%s", diff)
	}
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %+v", res.Warnings)
	}
	wantClaims := []pins.Claim{{Resource: "13", Kind: pins.Output, Owner: "w", Label: "Digital Write"}}
	if diff := cmp.Diff(wantClaims, res.Claims); diff != "" {
		t.Errorf("claims mismatch (-want +got):\n%s", diff)
	}
}

func TestSharedPinDeclaredOnce(t *testing.T) {
	res := generate(t, newConfig(t, "uno"), block.Chain(
		digitalWrite("w1", "13", highLow("h", "HIGH")),
		delay("d", num("ms", "500")),
		digitalWrite("w2", "13", highLow("l", "LOW")),
	))
	if got := strings.Count(res.Source, "DigitalOut myDigitalOut13(13);"); got != 1 {
		t.Errorf("declaration emitted %d times, want 1:\n%s", got, res.Source)
	}
	assertContains(t, res.Source, "  myDigitalOut13.write(HIGH);\n  wait(0.5);\n  myDigitalOut13.write(LOW);\n")
	if len(res.Warnings) != 0 {
		t.Errorf("same-kind reuse produced warnings: %+v", res.Warnings)
	}
}

func conflictGraph() []*block.Node {
	led := block.NewNode("led", "io_builtin_led", map[string]string{"BUILT_IN_LED": "PA_5"}).
		SetValue("STATE", highLow("h", "HIGH"))
	spi := block.NewNode("spi", "spi_setup", map[string]string{"SPI_ID": "SPI1", "SPI_MODE": "0", "PIN": "PB_6"})
	return []*block.Node{block.Chain(led, spi)}
}

func TestPinConflictAnnotatesBothBlocks(t *testing.T) {
	res := generate(t, newConfig(t, ""), conflictGraph()...)

	want := []Annotation{
		{BlockID: "spi", Tag: "pin:PA_5", Warning: config.WarnPinConflict,
			Message: "Pin PA_5 is needed for SPI SCK as pin SPI. Already used as OUTPUT by block led."},
		{BlockID: "led", Tag: "pin:PA_5", Warning: config.WarnPinConflict,
			Message: "Pin PA_5 is used for Set LED as pin OUTPUT. Also needed as SPI by SPI SCK in block spi."},
	}
	if diff := cmp.Diff(want, res.Warnings); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
	assertContains(t, res.Source, "SPI spi_SPI1(PA_7, PA_6, PA_5);")
	assertContains(t, res.Source, "  spi_SPI1.frequency(100000);\n  spi_SPI1.format(8, 0);\n  myDigitalOutPB_6.write(0);\n")
}

func TestStrictPinsFailsPass(t *testing.T) {
	cfg := newConfig(t, "")
	cfg.SetFeature(config.FeatStrictPins, true)
	_, err := NewGenerator(cfg).Generate(&block.Workspace{Blocks: conflictGraph()})
	var pe *PinConflictError
	if !errors.As(err, &pe) {
		t.Fatalf("Generate error = %v, want *PinConflictError", err)
	}
	if len(pe.Conflicts) != 1 || pe.Conflicts[0].Resource != "PA_5" {
		t.Errorf("conflicts = %+v", pe.Conflicts)
	}
}

func TestMissingInputDefaults(t *testing.T) {
	res := generate(t, newConfig(t, "uno"), block.Chain(
		digitalWrite("w", "13", nil),
		block.NewNode("d", "time_delay", nil),
		block.NewNode("a", "io_analogwrite", map[string]string{"PIN": "3"}),
	))
	assertContains(t, res.Source, "  myDigitalOut13.write(LOW);\n")
	assertContains(t, res.Source, "  wait(0);\n")
	assertContains(t, res.Source, "  myPwmOut3.write(0 / 255.0);\n")
}

func TestGenerateIsIdempotent(t *testing.T) {
	ws := &block.Workspace{Blocks: conflictGraph()}
	g := NewGenerator(newConfig(t, ""))
	first, err := g.Generate(ws)
	if err != nil {
		t.Fatal(err)
	}
	second, err := g.Generate(ws)
	if err != nil {
		t.Fatal(err)
	}
	if first.Source != second.Source || first.Digest != second.Digest {
		t.Errorf("second pass differs:\n%s\n---\n%s", first.Source, second.Source)
	}
	if diff := cmp.Diff(first.Warnings, second.Warnings); diff != "" {
		t.Errorf("warnings accumulated across passes (-first +second):\n%s", diff)
	}
}

func whole(id string, x *block.Node) *block.Node {
	n := block.NewNode(id, "math_number_property", map[string]string{"PROPERTY": "WHOLE"})
	if x != nil {
		n.SetValue("NUMBER_TO_CHECK", x)
	}
	return n
}

func ternary(id string, then, els *block.Node) *block.Node {
	return block.NewNode(id, "logic_ternary", nil).
		SetValue("IF", block.NewNode(id+"c", "logic_boolean", map[string]string{"BOOL": "TRUE"})).
		SetValue("THEN", then).
		SetValue("ELSE", els)
}

func TestPrecedence(t *testing.T) {
	tests := []struct {
		name  string
		node  *block.Node
		min   Order
		want  string
		order Order
	}{
		{"tighter inner", arith("m", "MULTIPLY", arith("a", "ADD", num("1", "1"), num("2", "2")), num("3", "3")),
			OrderNone, "(1 + 2) * 3", OrderMultiplicative},
		{"associative tie", arith("a", "ADD", num("1", "1"), arith("b", "ADD", num("2", "2"), num("3", "3"))),
			OrderNone, "1 + 2 + 3", OrderAdditive},
		{"non-associative right", arith("a", "MINUS", num("1", "1"), arith("b", "MINUS", num("2", "2"), num("3", "3"))),
			OrderNone, "1 - (2 - 3)", OrderAdditive},
		{"left operand tie", arith("a", "MINUS", arith("b", "MINUS", num("1", "1"), num("2", "2")), num("3", "3")),
			OrderNone, "1 - 2 - 3", OrderAdditive},
		{"equal to minimum", arith("a", "ADD", num("1", "1"), num("2", "2")), OrderAdditive, "1 + 2", OrderAdditive},
		{"looser than minimum", arith("a", "ADD", num("1", "1"), num("2", "2")), OrderMultiplicative, "(1 + 2)", OrderAtomic},
		{"atomic", num("1", "7"), OrderAtomic, "7", OrderAtomic},
		{"negative literal", arith("a", "MINUS", num("1", "1"), num("2", "-2")), OrderNone, "1 - -2", OrderAdditive},
		{"whole over conditional", whole("w", ternary("t", num("1", "1.5"), num("2", "2"))),
			OrderNone, "floor(true ? 1.5 : 2) == (true ? 1.5 : 2)", OrderEquality},
		{"whole over product", whole("w", arith("m", "MULTIPLY", num("1", "2"), num("2", "3"))),
			OrderNone, "floor(2 * 3) == 2 * 3", OrderEquality},
		{"whole without operand", whole("w", nil), OrderNone, "floor(0) == 0", OrderEquality},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ws := &block.Workspace{Blocks: []*block.Node{tt.node}}
			ctx := NewContext(config.NewConfig(), ws)
			code, order, err := ctx.EmitValue(tt.node, tt.min)
			if err != nil {
				t.Fatal(err)
			}
			if code != tt.want || order != tt.order {
				t.Errorf("EmitValue = %q, %d; want %q, %d", code, order, tt.want, tt.order)
			}
		})
	}
}

func TestLogicPrecedence(t *testing.T) {
	lt := block.NewNode("lt", "logic_compare", map[string]string{"OP": "LT"}).
		SetValue("A", block.NewNode("x", "variables_get", map[string]string{"VAR": "x"})).
		SetValue("B", num("n", "3"))
	or := block.NewNode("or", "logic_operation", map[string]string{"OP": "OR"}).
		SetValue("A", lt).
		SetValue("B", block.NewNode("t", "logic_boolean", map[string]string{"BOOL": "TRUE"}))
	and := block.NewNode("and", "logic_operation", map[string]string{"OP": "AND"}).
		SetValue("A", or)
	not := block.NewNode("not", "logic_negate", nil).SetValue("BOOL", and)

	ctx := NewContext(config.NewConfig(), &block.Workspace{Blocks: []*block.Node{not}})
	code, _, err := ctx.EmitValue(not, OrderNone)
	if err != nil {
		t.Fatal(err)
	}
	if want := "!((x < 3 || true) && true)"; code != want {
		t.Errorf("got %q, want %q", code, want)
	}
}

func TestUnknownKindAbortsPass(t *testing.T) {
	for name, graph := range map[string]*block.Node{
		"statement": block.Chain(digitalWrite("w", "13", nil), block.NewNode("x", "no_such_block", nil)),
		"value":     digitalWrite("w", "13", block.NewNode("x", "no_such_block", nil)),
	} {
		t.Run(name, func(t *testing.T) {
			res, err := NewGenerator(newConfig(t, "uno")).Generate(&block.Workspace{Blocks: []*block.Node{graph}})
			if res != nil {
				t.Errorf("got partial result %q", res.Source)
			}
			if !errors.Is(err, ErrUnknownKind) {
				t.Fatalf("err = %v, want ErrUnknownKind", err)
			}
			var uk *UnknownKindError
			if !errors.As(err, &uk) || uk.Kind != "no_such_block" || uk.BlockID != "x" {
				t.Errorf("err = %#v", err)
			}
		})
	}
}

func TestStatementInValueSlot(t *testing.T) {
	graph := digitalWrite("w", "13", delay("d", num("n", "1")))
	_, err := NewGenerator(newConfig(t, "uno")).Generate(&block.Workspace{Blocks: []*block.Node{graph}})
	var se *ShapeError
	if !errors.As(err, &se) || se.BlockID != "d" || se.Want != "value" {
		t.Fatalf("err = %v, want *ShapeError for block d", err)
	}
}

func TestNakedValueAndDisabledBlocks(t *testing.T) {
	skipped := digitalWrite("off", "12", nil)
	skipped.Disabled = true
	res := generate(t, newConfig(t, "uno"), block.Chain(
		arith("a", "ADD", num("1", "1"), num("2", "2")),
		skipped,
		delay("d", num("n", "250")),
	))
	assertContains(t, res.Source, "int main() {\n  1 + 2;\n  wait(0.25);\n}\n")
	if strings.Contains(res.Source, "myDigitalOut12") {
		t.Errorf("disabled block was emitted:\n%s", res.Source)
	}
}

func TestComments(t *testing.T) {
	state := highLow("h", "HIGH")
	state.Comment = "on"
	w := digitalWrite("w", "13", state)
	w.Comment = "blink\nled"
	inner := delay("d", num("n", "1000"))
	inner.Comment = "pause"
	loop := block.NewNode("r", "controls_repeat_ext", nil).
		SetValue("TIMES", num("t", "3")).
		SetStatement("DO", inner)
	loop.Comment = "three times"

	cfg := newConfig(t, "uno")
	res := generate(t, cfg, block.Chain(w, loop))
	assertContains(t, res.Source, "  // blink\n  // led\n  // on\n  myDigitalOut13.write(HIGH);\n")
	assertContains(t, res.Source, "  // three times\n  for (int count = 0; count < 3; count++) {\n    // pause\n    wait(1);\n  }\n")
	if got := strings.Count(res.Source, "// pause"); got != 1 {
		t.Errorf("nested statement comment printed %d times", got)
	}

	cfg.SetFeature(config.FeatComments, false)
	res = generate(t, cfg, block.Chain(w, loop))
	if strings.Contains(res.Source, "//") {
		t.Errorf("comments emitted with -Fno-comments:\n%s", res.Source)
	}
}

func TestProcedures(t *testing.T) {
	def := block.NewNode("def", "procedures_defreturn", map[string]string{"NAME": "double"}).
		SetValue("RETURN", arith("m", "MULTIPLY",
			block.NewNode("g", "variables_get", map[string]string{"VAR": "n"}), num("two", "2")))
	def.Mutation.Args = []string{"n"}
	call := block.NewNode("call", "procedures_callreturn", map[string]string{"NAME": "double"}).
		SetValue("ARG0", num("four", "4"))
	call.Mutation.Args = []string{"n"}
	set := block.NewNode("set", "variables_set", map[string]string{"VAR": "y"}).SetValue("VALUE", call)

	res := generate(t, newConfig(t, ""), def, set)
	want := `#define HIGH 1
#define LOW 0
#include "mbed.h"

int n;
int y;

int double2(int n);

int double2(int n) {
  return n * 2;
}

int main() {
  y = double2(4);
}
`
	if diff := cmp.Diff(want, res.Source); diff != "" {
		t.Errorf("source mismatch (-want +got):\n%s", diff)
	}
}

func TestMainFunctionsAndSerial(t *testing.T) {
	setup := block.NewNode("ss", "serial_setup", map[string]string{"SERIAL_ID": "Serial_2", "SPEED": "9600"})
	out := block.NewNode("sp", "serial_print", map[string]string{"SERIAL_ID": "Serial_2", "NEW_LINE": "TRUE"}).
		SetValue("CONTENT", block.NewNode("txt", "text", map[string]string{"TEXT": "hi"}))
	fns := block.NewNode("main", "mbed_functions", nil).
		SetStatement("SETUP_FUNC", setup).
		SetStatement("LOOP_FUNC", out)

	res := generate(t, newConfig(t, ""), fns)
	assertContains(t, res.Source, "#include <string>\n")
	assertContains(t, res.Source, "Serial mySerial_2(PA_2, PA_3);\n")
	assertContains(t, res.Source, "int main() {\n  mySerial_2.baud(9600);\n\n"+
		"  while (true) {\n    mySerial_2.printf(\"%s\\n\", std::string(\"hi\").c_str());\n  }\n}\n")
	if len(res.Warnings) != 0 {
		t.Errorf("unexpected warnings: %+v", res.Warnings)
	}
}

func TestSetupWarnings(t *testing.T) {
	out := block.NewNode("sp", "serial_print", map[string]string{"SERIAL_ID": "Serial_1"}).
		SetValue("CONTENT", num("n", "1.5"))
	transfer := block.NewNode("st", "spi_transfer", map[string]string{"SPI_ID": "SPI2"})
	analog := block.NewNode("aw", "io_analogwrite", map[string]string{"PIN": "PA_6"}).
		SetValue("NUM", num("v", "300"))

	res := generate(t, newConfig(t, ""), block.Chain(out, transfer, analog))
	got := map[string]config.Warning{}
	for _, w := range res.Warnings {
		got[w.BlockID] = w.Warning
	}
	want := map[string]config.Warning{
		"sp": config.WarnSerialSetup,
		"st": config.WarnSPISetup,
		"aw": config.WarnAnalogRange,
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("warnings mismatch (-want +got):\n%s", diff)
	}
	assertContains(t, res.Source, "  mySerial_1.printf(\"%f\", 1.5);\n")
	assertContains(t, res.Source, "  spi_SPI2.write(0);\n")

	cfg := newConfig(t, "")
	cfg.ProcessFlagString("-Wno-all")
	if res := generate(t, cfg, block.Chain(out, transfer, analog)); len(res.Warnings) != 0 {
		t.Errorf("warnings with -Wno-all: %+v", res.Warnings)
	}
}

func TestControlFlow(t *testing.T) {
	cond := block.NewNode("c", "logic_compare", map[string]string{"OP": "GT"}).
		SetValue("A", block.NewNode("x", "variables_get", map[string]string{"VAR": "x"})).
		SetValue("B", num("n", "5"))
	ifBlock := block.NewNode("if", "controls_if", nil).
		SetValue("IF0", cond).
		SetStatement("DO0", block.NewNode("b", "controls_flow_statements", map[string]string{"FLOW": "BREAK"})).
		SetStatement("ELSE", block.NewNode("inc", "math_change", map[string]string{"VAR": "x"}).SetValue("DELTA", num("one", "1")))
	ifBlock.Mutation.Else = true
	loop := block.NewNode("w", "controls_whileUntil", map[string]string{"MODE": "UNTIL"}).
		SetValue("BOOL", block.NewNode("f", "logic_boolean", map[string]string{"BOOL": "FALSE"})).
		SetStatement("DO", ifBlock)
	count := block.NewNode("for", "controls_for", map[string]string{"VAR": "i"}).
		SetValue("FROM", num("from", "10")).
		SetValue("TO", num("to", "1")).
		SetValue("BY", num("by", "-3"))

	res := generate(t, newConfig(t, ""), block.Chain(loop, count))
	assertContains(t, res.Source, "int x;\nint i;\n")
	assertContains(t, res.Source, "  while (!false) {\n"+
		"    if (x > 5) {\n      break;\n    } else {\n      x += 1;\n    }\n"+
		"  }\n")
	assertContains(t, res.Source, "  for (i = 10; i >= 1; i -= 3) {\n  }\n")
}

func TestTextQuotingAndJoin(t *testing.T) {
	join := block.NewNode("j", "text_join", nil).
		SetValue("ADD0", block.NewNode("t", "text", map[string]string{"TEXT": "say \"hi\"\n"})).
		SetValue("ADD1", num("n", "42"))
	join.Mutation.Items = 2
	set := block.NewNode("s", "variables_set", map[string]string{"VAR": "msg"}).SetValue("VALUE", join)

	res := generate(t, newConfig(t, ""), set)
	assertContains(t, res.Source, "std::string msg;\n")
	assertContains(t, res.Source, `  msg = std::string("say \"hi\"\n") + std::to_string(42);`+"\n")
}

func TestHelperFunctionsAreShared(t *testing.T) {
	r1 := block.NewNode("r1", "math_random_int", nil).SetValue("FROM", num("a", "1")).SetValue("TO", num("b", "6"))
	r2 := block.NewNode("r2", "math_random_int", nil)
	res := generate(t, newConfig(t, ""), block.Chain(
		block.NewNode("s1", "variables_set", map[string]string{"VAR": "mathRandomInt"}).SetValue("VALUE", r1),
		block.NewNode("s2", "variables_set", map[string]string{"VAR": "other"}).SetValue("VALUE", r2),
	))
	if got := strings.Count(res.Source, "int mathRandomInt2(int min, int max) {"); got != 1 {
		t.Errorf("helper defined %d times:\n%s", got, res.Source)
	}
	assertContains(t, res.Source, "  mathRandomInt = mathRandomInt2(1, 6);\n  other = mathRandomInt2(0, 0);\n")
}

func TestEveryKindHasOneShape(t *testing.T) {
	for _, kind := range Kinds() {
		e := emitters[kind]
		if (e.stmt == nil) == (e.value == nil) {
			t.Errorf("%s: want exactly one of stmt and value", kind)
		}
	}
}

func setVar(id, name string, v *block.Node) *block.Node {
	n := block.NewNode(id, "variables_set", map[string]string{"VAR": name})
	if v != nil {
		n.SetValue("VALUE", v)
	}
	return n
}

func TestPeripheralNamesAvoidUserNames(t *testing.T) {
	stepper := block.NewNode("sc", "stepper_config", map[string]string{
		"STEPPER_NAME": "m", "STEPPER_PIN1": "8", "STEPPER_PIN2": "9",
	})
	res := generate(t, newConfig(t, "uno"), block.Chain(
		setVar("s1", "myDigitalOut13", num("one", "1")),
		setVar("s2", "stepper_m", num("two", "2")),
		digitalWrite("w1", "13", highLow("h", "HIGH")),
		digitalWrite("w2", "13", highLow("l", "LOW")),
		stepper,
		block.NewNode("st", "stepper_step", map[string]string{"STEPPER_NAME": "m"}).SetValue("STEPPER_STEPS", num("n", "10")),
	))
	assertContains(t, res.Source, "int myDigitalOut13;\n")
	assertContains(t, res.Source, "int stepper_m;\n")
	if got := strings.Count(res.Source, "DigitalOut myDigitalOut132(13);"); got != 1 {
		t.Errorf("DigitalOut declared %d times:\n%s", got, res.Source)
	}
	assertContains(t, res.Source, "int m[2] = {8, 9};\n")
	assertContains(t, res.Source, "Stepper stepper_m2(360, 8, 9);\n")
	assertContains(t, res.Source, "  myDigitalOut13 = 1;\n  stepper_m = 2;\n"+
		"  myDigitalOut132.write(HIGH);\n  myDigitalOut132.write(LOW);\n")
	assertContains(t, res.Source, "  stepper_m2.step(10);\n")
	if strings.Contains(res.Source, "DigitalOut myDigitalOut13(") {
		t.Errorf("object declared under the variable's name:\n%s", res.Source)
	}
}

func TestPlaceholderKindsEmitNothing(t *testing.T) {
	res := generate(t, newConfig(t, ""), block.Chain(
		setVar("s", "c", block.NewNode("col", "colour_picker", map[string]string{"COLOUR": "#ff0000"})),
		block.NewNode("set", "lists_setIndex", nil),
		block.NewNode("len", "lists_length", nil),
		delay("d", block.NewNode("sum", "math_on_list", map[string]string{"OP": "SUM"})),
	))
	assertContains(t, res.Source, "int c;\n")
	assertContains(t, res.Source, "int main() {\n  c = 0;\n  wait(0);\n}\n")
	for _, kind := range []string{"colour_picker", "lists_setIndex", "lists_length", "math_on_list"} {
		if _, err := lookup(block.NewNode("x", kind, nil)); err != nil {
			t.Errorf("lookup(%s): %v", kind, err)
		}
	}
}

func TestNumberedInputsWithoutMutation(t *testing.T) {
	join := block.NewNode("j", "text_join", nil).
		SetValue("ADD0", block.NewNode("t", "text", map[string]string{"TEXT": "n="})).
		SetValue("ADD1", num("n", "42"))
	res := generate(t, newConfig(t, ""), setVar("s", "msg", join))
	assertContains(t, res.Source, `  msg = std::string("n=") + std::to_string(42);`+"\n")

	ifBlock := block.NewNode("if", "controls_if", nil).
		SetValue("IF0", block.NewNode("t", "logic_boolean", map[string]string{"BOOL": "TRUE"})).
		SetStatement("DO0", setVar("a1", "a", num("1", "1"))).
		SetValue("IF1", block.NewNode("f", "logic_boolean", map[string]string{"BOOL": "FALSE"})).
		SetStatement("DO1", setVar("a2", "a", num("2", "2"))).
		SetStatement("ELSE", setVar("a3", "a", num("3", "3")))
	res = generate(t, newConfig(t, ""), ifBlock)
	assertContains(t, res.Source, "  if (true) {\n    a = 1;\n  } else if (false) {\n    a = 2;\n  } else {\n    a = 3;\n  }\n")
}
