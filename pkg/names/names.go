// Package names maps user identifiers to collision-free C++ identifiers.
package names

import (
	"strconv"
	"strings"
	"unicode"
)

type Namespace int

const (
	Variable Namespace = iota
	Procedure
	Macro
	Argument
	Generated
)

func (ns Namespace) String() string {
	switch ns {
	case Variable:
		return "variable"
	case Procedure:
		return "procedure"
	case Macro:
		return "macro"
	case Argument:
		return "argument"
	case Generated:
		return "generated"
	}
	return "namespace(" + strconv.Itoa(int(ns)) + ")"
}

// Reserved lists identifiers that emitted names must never equal: the
// target's runtime API plus the C++ keywords.
var Reserved = []string{
	"setup", "loop", "if", "else", "for", "switch", "case", "while", "do", "break", "continue", "return", "goto",
	"define", "include", "HIGH", "LOW", "INPUT", "OUTPUT", "INPUT_PULLUP", "true", "false", "integer",
	"constants", "floating", "point", "void", "boolean", "char", "unsigned", "byte", "int", "word", "long",
	"float", "double", "string", "String", "array", "static", "volatile", "const", "sizeof", "pinMode",
	"digitalWrite", "digitalRead", "analogReference", "analogRead", "analogWrite", "tone",
	"noTone", "shiftOut", "shitIn", "pulseIn", "millis", "micros", "delay", "delayMicroseconds",
	"min", "max", "abs", "constrain", "map", "pow", "sqrt", "sin", "cos", "tan", "randomSeed", "random",
	"lowByte", "highByte", "bitRead", "bitWrite", "bitSet", "bitClear", "bit", "attachInterrupt",
	"detachInterrupt", "interrupts", "noInterrupts",
	// mbed runtime
	"main", "wait", "wait_ms", "wait_us", "DigitalOut", "DigitalIn", "AnalogIn", "PwmOut", "Serial",
	"SPI", "I2C", "Timer", "Ticker", "InterruptIn", "NULL", "INFINITY", "rand", "RAND_MAX", "std",
	// C++
	"alignas", "alignof", "and", "and_eq", "asm", "auto", "bitand", "bitor", "bool", "catch", "char16_t",
	"char32_t", "class", "compl", "constexpr", "const_cast", "decltype", "default", "delete",
	"dynamic_cast", "enum", "explicit", "export", "extern", "friend", "inline", "mutable", "namespace",
	"new", "noexcept", "not", "not_eq", "nullptr", "operator", "or", "or_eq", "private", "protected",
	"public", "register", "reinterpret_cast", "short", "signed", "static_assert", "static_cast", "struct",
	"template", "this", "thread_local", "throw", "try", "typedef", "typeid", "typename", "union", "using",
	"virtual", "wchar_t", "xor", "xor_eq",
}

type binding struct {
	raw string
	ns  Namespace
}

// Allocator hands out emitted identifiers for one generation pass. It is not
// safe for concurrent use.
type Allocator struct {
	reserved map[string]bool
	bound    map[binding]string
	used     map[string]bool
}

func NewAllocator(extra ...string) *Allocator {
	a := &Allocator{reserved: make(map[string]bool)}
	for _, w := range Reserved {
		a.reserved[w] = true
	}
	for _, w := range extra {
		a.reserved[w] = true
	}
	a.Reset()
	return a
}

// Reset drops every binding. Reserved words are kept.
func (a *Allocator) Reset() {
	a.bound = make(map[binding]string)
	a.used = make(map[string]bool)
}

// Allocate returns the emitted name bound to (raw, ns), creating it on first
// use. Raw names compare case-insensitively within a namespace.
func (a *Allocator) Allocate(raw string, ns Namespace) string {
	key := binding{strings.ToLower(raw), ns}
	if name, ok := a.bound[key]; ok {
		return name
	}
	name := a.Distinct(raw, ns)
	a.bound[key] = name
	return name
}

// Distinct returns a fresh name derived from raw that collides with nothing
// allocated so far. The result is not bound, so two calls with the same raw
// yield two different names.
func (a *Allocator) Distinct(raw string, _ Namespace) string {
	base := Sanitize(raw)
	name := base
	for i := 2; a.taken(name); i++ {
		name = base + strconv.Itoa(i)
	}
	a.used[name] = true
	return name
}

// Bound reports the emitted name of (raw, ns) without allocating.
func (a *Allocator) Bound(raw string, ns Namespace) (string, bool) {
	name, ok := a.bound[binding{strings.ToLower(raw), ns}]
	return name, ok
}

// IsReserved reports whether name is a reserved word.
func (a *Allocator) IsReserved(name string) bool { return a.reserved[name] }

func (a *Allocator) taken(name string) bool { return a.reserved[name] || a.used[name] }

// Sanitize turns raw into a legal C++ identifier.
func Sanitize(raw string) string {
	var sb strings.Builder
	for _, r := range raw {
		switch {
		case r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r) || r == '_'):
			sb.WriteRune(r)
		case r == ' ' || r == '-':
			sb.WriteByte('_')
		default:
			sb.WriteString("_" + strconv.FormatInt(int64(r), 16))
		}
	}
	name := sb.String()
	if name == "" {
		return "unnamed"
	}
	if name[0] >= '0' && name[0] <= '9' {
		name = "my_" + name
	}
	return name
}
