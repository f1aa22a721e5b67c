package typeChecker

import "strings"

// Type is the resolved static type of a value block.
type Type int

const (
	ChildMissing Type = iota
	Boolean
	Character
	ShortNumber
	Number
	LargeNumber
	Decimal
	Text
	Null
	Undefined
)

var typeNames = [...]string{
	ChildMissing: "CHILD_BLOCK_MISSING",
	Boolean:      "BOOLEAN",
	Character:    "CHARACTER",
	ShortNumber:  "SHORT_NUMBER",
	Number:       "NUMBER",
	LargeNumber:  "LARGE_NUMBER",
	Decimal:      "DECIMAL",
	Text:         "TEXT",
	Null:         "NULL",
	Undefined:    "UNDEF",
}

func (t Type) String() string {
	if t >= 0 && int(t) < len(typeNames) {
		return typeNames[t]
	}
	return "INVALID"
}

// ParseType maps a type name as stored in block fields back to a Type.
func ParseType(name string) (Type, bool) {
	for t, n := range typeNames {
		if strings.EqualFold(n, name) {
			return Type(t), true
		}
	}
	return Undefined, false
}

// IsConcrete reports whether t can be declared as a variable type.
func (t Type) IsConcrete() bool { return t >= Boolean && t <= Text }

// IsNumeric covers the integer and floating point types.
func (t Type) IsNumeric() bool { return t >= ShortNumber && t <= Decimal }

// CType maps t to its C++ spelling. ChildMissing declares as int; Undefined
// also falls back to int and callers are expected to warn.
func CType(t Type) string {
	switch t {
	case Boolean:
		return "bool"
	case Character, ShortNumber:
		return "char"
	case Number, ChildMissing, Undefined:
		return "int"
	case LargeNumber:
		return "long"
	case Decimal:
		return "float"
	case Text:
		return "std::string"
	case Null:
		return "void"
	}
	return "int"
}

// widen returns the arithmetic result type of a and b.
func widen(a, b Type) Type {
	switch {
	case a == Decimal || b == Decimal:
		return Decimal
	case a == LargeNumber || b == LargeNumber:
		return LargeNumber
	}
	return Number
}
