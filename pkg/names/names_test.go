package names

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestAllocateIsStable(t *testing.T) {
	a := NewAllocator()
	first := a.Allocate("count", Variable)
	if got := a.Allocate("count", Variable); got != first {
		t.Errorf("second Allocate(count) = %q, want %q", got, first)
	}
	if got := a.Allocate("COUNT", Variable); got != first {
		t.Errorf("Allocate(COUNT) = %q, want case-insensitive match %q", got, first)
	}
}

func TestAllocateDistinctAndNotReserved(t *testing.T) {
	a := NewAllocator()
	raws := []string{"x", "x2", "int", "delay", "while", "x", "led pin", "9lives", "", "main"}
	seen := map[string]string{}
	for _, raw := range raws {
		name := a.Allocate(raw, Variable)
		if a.IsReserved(name) {
			t.Errorf("Allocate(%q) = reserved word %q", raw, name)
		}
		if prev, ok := seen[name]; ok && prev != raw {
			t.Errorf("Allocate(%q) = %q, already given to %q", raw, name, prev)
		}
		seen[name] = raw
	}
}

func TestNamespacesShareIdentifierSpace(t *testing.T) {
	a := NewAllocator()
	got := []string{
		a.Allocate("speed", Variable),
		a.Allocate("speed", Macro),
		a.Allocate("speed", Procedure),
		a.Allocate("speed", Variable),
	}
	want := []string{"speed", "speed2", "speed3", "speed"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("names mismatch (-want +got):\n%s", diff)
	}
}

func TestDistinctNeverRepeats(t *testing.T) {
	a := NewAllocator()
	a.Allocate("mathRandomInt", Procedure)
	got := []string{a.Distinct("mathRandomInt", Generated), a.Distinct("mathRandomInt", Generated)}
	want := []string{"mathRandomInt2", "mathRandomInt3"}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Distinct mismatch (-want +got):\n%s", diff)
	}
}

func TestReset(t *testing.T) {
	a := NewAllocator()
	a.Allocate("x", Variable)
	a.Allocate("x", Macro)
	a.Reset()
	if _, ok := a.Bound("x", Macro); ok {
		t.Fatal("binding survived Reset")
	}
	if got := a.Allocate("x", Macro); got != "x" {
		t.Errorf("Allocate after Reset = %q, want x", got)
	}
}

func TestSanitize(t *testing.T) {
	tests := []struct{ in, want string }{
		{"led", "led"},
		{"led pin", "led_pin"},
		{"3d", "my_3d"},
		{"", "unnamed"},
		{"a.b", "a_2eb"},
		{"über", "_fcber"},
	}
	for _, tt := range tests {
		if got := Sanitize(tt.in); got != tt.want {
			t.Errorf("Sanitize(%q) = %q, want %q", tt.in, got, tt.want)
		}
	}
}
