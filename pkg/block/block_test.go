package block

import (
	"bytes"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

const blinkJSON = `{
  "blocks": [
    {
      "type": "io_digitalwrite", "id": "w1",
      "fields": {"PIN": "PA_5"},
      "comment": "led on",
      "inputs": [{"name": "STATE", "value": {"type": "io_highlow", "fields": {"STATE": "HIGH"}}}],
      "next": {
        "type": "time_delay", "id": "d1",
        "inputs": [{"name": "DELAY_TIME_MILI", "value": {"type": "math_number", "fields": {"NUM": 1000}}}]
      }
    },
    {
      "type": "serial_print", "id": "p1",
      "fields": {"SERIAL_ID": "Serial_2", "NEW_LINE": true}
    }
  ]
}`

func TestDecode(t *testing.T) {
	ws, err := DecodeBytes([]byte(blinkJSON))
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if len(ws.Blocks) != 2 {
		t.Fatalf("got %d top-level blocks, want 2", len(ws.Blocks))
	}

	var kinds []string
	ws.Walk(func(n *Node) bool {
		kinds = append(kinds, n.Kind)
		return true
	})
	want := []string{"io_digitalwrite", "io_highlow", "time_delay", "math_number", "serial_print"}
	if diff := cmp.Diff(want, kinds); diff != "" {
		t.Errorf("walk order mismatch (-want +got):\n%s", diff)
	}

	if got := ws.Find("d1").InputBlock("DELAY_TIME_MILI").Field("NUM"); got != "1000" {
		t.Errorf("number field = %q, want 1000", got)
	}
	if got := ws.Find("p1").Field("NEW_LINE"); got != "TRUE" {
		t.Errorf("checkbox field = %q, want TRUE", got)
	}
	if got := ws.Find("w1").Comment; got != "led on" {
		t.Errorf("comment = %q", got)
	}
	if ws.Find("w1").InputBlock("STATE").ID == "" {
		t.Error("block without id was not numbered")
	}
}

func TestDecodeErrors(t *testing.T) {
	tests := []struct {
		name, src, want string
	}{
		{"duplicate id", `{"blocks":[{"type":"a","id":"x"},{"type":"b","id":"x"}]}`, "duplicate block id"},
		{"missing type", `{"blocks":[{"id":"x"}]}`, "has no type"},
		{"both slots", `{"blocks":[{"type":"a","inputs":[{"name":"I","value":{"type":"b"},"statement":{"type":"c"}}]}]}`, "both value and statement"},
		{"bad field", `{"blocks":[{"type":"a","fields":{"F":[1]}}]}`, "unsupported field value"},
		{"syntax", `{"blocks":[`, "decoding workspace"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Decode(strings.NewReader(tt.src))
			if err == nil || !strings.Contains(err.Error(), tt.want) {
				t.Errorf("Decode error = %v, want containing %q", err, tt.want)
			}
		})
	}
}

func TestEncodeDecode(t *testing.T) {
	proc := NewNode("f1", "procedures_defnoreturn", map[string]string{"NAME": "blink"})
	proc.Mutation.Args = []string{"times"}
	proc.SetStatement("STACK", Chain(
		NewNode("s1", "variables_set", map[string]string{"VAR": "x"}).
			SetValue("VALUE", NewNode("n1", "math_number", map[string]string{"NUM": "3"})),
		NewNode("s2", "infinite_loop", nil),
	))
	ws := &Workspace{Blocks: []*Node{proc}}

	var buf bytes.Buffer
	if err := Encode(&buf, ws); err != nil {
		t.Fatalf("Encode: %v", err)
	}
	got, err := Decode(&buf)
	if err != nil {
		t.Fatalf("Decode: %v", err)
	}
	if diff := cmp.Diff(ws, got); diff != "" {
		t.Errorf("workspace changed (-want +got):\n%s", diff)
	}
}

func TestWalkPrune(t *testing.T) {
	ifBlock := NewNode("if", "controls_if", nil).
		SetValue("IF0", NewNode("c", "logic_boolean", nil)).
		SetStatement("DO0", NewNode("body", "infinite_loop", nil))
	head := Chain(ifBlock, NewNode("after", "time_millis", nil))

	var ids []string
	head.Walk(func(n *Node) bool {
		ids = append(ids, n.ID)
		return n.Kind != "controls_if"
	})
	if diff := cmp.Diff([]string{"if", "after"}, ids); diff != "" {
		t.Errorf("pruned walk mismatch (-want +got):\n%s", diff)
	}
}

func TestNameFields(t *testing.T) {
	ws := &Workspace{Blocks: []*Node{
		Chain(
			NewNode("a", "variables_set", map[string]string{"VAR": "Count"}).
				SetValue("VALUE", NewNode("b", "variables_get", map[string]string{"VAR": "i"})),
			NewNode("c", "math_change", map[string]string{"VAR": "count"}),
			NewNode("d", "macro_define", map[string]string{"MACRO_NAME": "LIMIT"}),
		),
	}}

	if diff := cmp.Diff([]string{"Count", "i"}, ws.Names(VariableName)); diff != "" {
		t.Errorf("variable names mismatch (-want +got):\n%s", diff)
	}
	if diff := cmp.Diff([]string{"LIMIT"}, ws.Names(MacroName)); diff != "" {
		t.Errorf("macro names mismatch (-want +got):\n%s", diff)
	}

	if got := ws.UniqueName(VariableName); got != "j" {
		t.Errorf("UniqueName = %q, want j", got)
	}

	if n := ws.Rename(VariableName, "COUNT", "total"); n != 2 {
		t.Errorf("Rename changed %d fields, want 2", n)
	}
	if got := ws.Find("c").Field("VAR"); got != "total" {
		t.Errorf("math_change VAR = %q, want total", got)
	}
	if n := ws.Rename(MacroName, "i", "x"); n != 0 {
		t.Errorf("Rename crossed categories: %d fields changed", n)
	}
}

func TestUniqueNameSuffix(t *testing.T) {
	var nodes []*Node
	for i, l := range nameLetters {
		nodes = append(nodes, NewNode(string(rune('A'+i)), "variables_get", map[string]string{"VAR": string(l)}))
	}
	ws := &Workspace{Blocks: nodes}
	if got := ws.UniqueName(VariableName); got != "i1" {
		t.Errorf("UniqueName = %q, want i1", got)
	}
}

func TestArity(t *testing.T) {
	n := NewNode("if", "controls_if", nil).
		SetValue("IF0", nil).
		SetStatement("DO2", nil).
		SetStatement("ELSE", nil).
		SetValue("IFX", nil).
		SetValue("IF-1", nil)
	tests := []struct {
		declared int
		prefixes []string
		want     int
	}{
		{0, []string{"IF"}, 1},
		{0, []string{"IF", "DO"}, 3},
		{5, []string{"IF", "DO"}, 5},
		{1, []string{"ADD"}, 1},
		{0, nil, 0},
	}
	for _, tt := range tests {
		if got := n.Arity(tt.declared, tt.prefixes...); got != tt.want {
			t.Errorf("Arity(%d, %v) = %d, want %d", tt.declared, tt.prefixes, got, tt.want)
		}
	}
	var missing *Node
	if got := missing.Arity(2, "ADD"); got != 2 {
		t.Errorf("nil Arity = %d, want 2", got)
	}
}
