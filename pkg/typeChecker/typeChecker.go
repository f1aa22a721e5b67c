package typeChecker

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/xplshn/bgen/pkg/block"
	"github.com/xplshn/bgen/pkg/config"
)

// Diagnostic is an advisory message about one block.
type Diagnostic struct {
	BlockID string
	Warning config.Warning
	Message string
}

// Result holds every type resolved for one workspace.
type Result struct {
	// Vars lists variable names in order of first appearance.
	Vars        []string
	vars        map[string]Type
	params      map[string]map[string]Type
	returns     map[string]Type
	blocks      map[*block.Node]Type
	Diagnostics []Diagnostic
}

func key(name string) string { return strings.ToLower(name) }

// VarType returns the resolved type of a variable, ChildMissing if unknown.
func (r *Result) VarType(name string) Type {
	if t, ok := r.vars[key(name)]; ok {
		return t
	}
	return ChildMissing
}

// ParamType returns the resolved type of a procedure parameter.
func (r *Result) ParamType(proc, param string) Type {
	if t, ok := r.params[key(proc)][key(param)]; ok {
		return t
	}
	return ChildMissing
}

// ReturnType returns the resolved return type of a procedure; Null when it
// returns nothing.
func (r *Result) ReturnType(proc string) Type {
	if t, ok := r.returns[key(proc)]; ok {
		return t
	}
	return Null
}

// TypeOf returns the type resolved for a value block. Blocks that produce
// no value, and nil, report ChildMissing.
func (r *Result) TypeOf(n *block.Node) Type {
	if t, ok := r.blocks[n]; ok {
		return t
	}
	return ChildMissing
}

type assignment struct {
	node  *block.Node
	value *block.Node
	// implied is set when the block forces a type without a value input.
	implied Type
}

type TypeChecker struct {
	cfg       *config.Config
	result    *Result
	assigns   map[string][]assignment
	procs     map[string]*block.Node
	procOrder []string
	calls     map[string][]*block.Node
	macros    map[string]*block.Node
	resolved  map[string]bool
	resolving map[string]bool
}

func NewTypeChecker(cfg *config.Config) *TypeChecker {
	return &TypeChecker{cfg: cfg}
}

// Check resolves every variable, procedure parameter, procedure return and
// value block of ws. Resolution never fails: missing information resolves to
// ChildMissing.
//
// When a variable is assigned values of different concrete types, the first
// assignment in walk order wins and each disagreeing assignment gets a
// diagnostic.
func (tc *TypeChecker) Check(ws *block.Workspace) *Result {
	tc.result = &Result{
		vars:    make(map[string]Type),
		params:  make(map[string]map[string]Type),
		returns: make(map[string]Type),
		blocks:  make(map[*block.Node]Type),
	}
	tc.assigns = make(map[string][]assignment)
	tc.procs = make(map[string]*block.Node)
	tc.procOrder = nil
	tc.calls = make(map[string][]*block.Node)
	tc.macros = make(map[string]*block.Node)
	tc.resolved = make(map[string]bool)
	tc.resolving = make(map[string]bool)

	tc.result.Vars = ws.Names(block.VariableName)
	tc.collect(ws)

	for _, name := range tc.result.Vars {
		tc.varType(name)
	}
	for _, name := range tc.procOrder {
		tc.checkProcedure(name, tc.procs[name])
	}
	ws.Walk(func(n *block.Node) bool {
		if _, ok := tc.result.blocks[n]; !ok {
			if t, isValue := tc.typeOf(n); isValue {
				tc.result.blocks[n] = t
			}
		}
		return true
	})
	return tc.result
}

func (tc *TypeChecker) collect(ws *block.Workspace) {
	ws.Walk(func(n *block.Node) bool {
		switch n.Kind {
		case "variables_set":
			name := key(n.Field("VAR"))
			tc.assigns[name] = append(tc.assigns[name], assignment{node: n, value: n.InputBlock("VALUE")})
		case "math_change":
			name := key(n.Field("VAR"))
			tc.assigns[name] = append(tc.assigns[name], assignment{node: n, implied: Number})
		case "controls_for":
			name := key(n.Field("VAR"))
			tc.assigns[name] = append(tc.assigns[name], assignment{node: n, value: n.InputBlock("FROM"), implied: Number})
		case "procedures_defreturn", "procedures_defnoreturn":
			name := key(n.Field("NAME"))
			if _, dup := tc.procs[name]; !dup {
				tc.procs[name] = n
				tc.procOrder = append(tc.procOrder, name)
			}
		case "procedures_callreturn", "procedures_callnoreturn":
			name := key(n.Field("NAME"))
			tc.calls[name] = append(tc.calls[name], n)
		case "macro_define":
			name := key(n.Field("MACRO_NAME"))
			if _, dup := tc.macros[name]; !dup {
				tc.macros[name] = n
			}
		}
		return true
	})
}

func (tc *TypeChecker) warn(n *block.Node, format string, args ...any) {
	if !tc.cfg.IsWarningEnabled(config.WarnType) {
		return
	}
	tc.result.Diagnostics = append(tc.result.Diagnostics, Diagnostic{
		BlockID: n.ID, Warning: config.WarnType, Message: fmt.Sprintf(format, args...),
	})
}

func (tc *TypeChecker) varType(name string) Type {
	k := key(name)
	if tc.resolved[k] {
		return tc.result.vars[k]
	}
	if tc.resolving[k] {
		return ChildMissing
	}
	tc.resolving[k] = true
	defer delete(tc.resolving, k)

	resolvedType, sawUndefined := ChildMissing, false
	var winner *block.Node
	for _, a := range tc.assigns[k] {
		if a.value == nil && a.implied != ChildMissing {
			continue
		}
		t := tc.valueType(a.value)
		if !t.IsConcrete() && a.implied != ChildMissing {
			t = a.implied
		}
		if !t.IsConcrete() {
			sawUndefined = sawUndefined || t == Undefined
			continue
		}
		if winner == nil {
			resolvedType, winner = t, a.node
			continue
		}
		if t != resolvedType {
			tc.warn(a.node, "variable '%s' assigned %s, already typed %s by block %s", name, t, resolvedType, winner.ID)
		}
	}
	// Blocks such as math_change only imply a type when nothing assigns one.
	if winner == nil {
		for _, a := range tc.assigns[k] {
			if a.value == nil && a.implied != ChildMissing {
				resolvedType, winner = a.implied, a.node
				break
			}
		}
	}
	if winner == nil && sawUndefined {
		resolvedType = Undefined
	}

	tc.result.vars[k] = resolvedType
	tc.resolved[k] = true
	return resolvedType
}

func (tc *TypeChecker) checkProcedure(name string, def *block.Node) {
	params := make(map[string]Type, len(def.Mutation.Args))
	for i, arg := range def.Mutation.Args {
		t := ChildMissing
		if vt := tc.varType(arg); vt.IsConcrete() {
			t = vt
		} else {
			for _, call := range tc.calls[name] {
				if ct := tc.valueType(call.InputBlock("ARG" + strconv.Itoa(i))); ct.IsConcrete() {
					t = ct
					break
				}
			}
		}
		params[key(arg)] = t
	}
	tc.result.params[name] = params

	tc.result.returns[name] = tc.returnType(name)
}

func (tc *TypeChecker) returnType(name string) Type {
	k := key(name)
	if t, ok := tc.result.returns[k]; ok {
		return t
	}
	def, ok := tc.procs[k]
	if !ok || def.Kind != "procedures_defreturn" {
		return Null
	}
	if tc.resolving["()"+k] {
		return ChildMissing
	}
	tc.resolving["()"+k] = true
	defer delete(tc.resolving, "()"+k)
	t := tc.valueType(def.InputBlock("RETURN"))
	if t == Null {
		t = ChildMissing
	}
	return t
}

// valueType is typeOf for a connected value input; nil is ChildMissing.
func (tc *TypeChecker) valueType(n *block.Node) Type {
	if n == nil {
		return ChildMissing
	}
	if t, ok := tc.result.blocks[n]; ok {
		return t
	}
	t, isValue := tc.typeOf(n)
	if !isValue {
		return Undefined
	}
	return t
}

// typeOf computes the type of n and reports whether n produces a value.
func (tc *TypeChecker) typeOf(n *block.Node) (Type, bool) {
	switch n.Kind {
	case "math_number":
		return numberType(n.Field("NUM")), true
	case "math_arithmetic":
		if n.Field("OP") == "POWER" {
			return Decimal, true
		}
		return widen(tc.valueType(n.InputBlock("A")), tc.valueType(n.InputBlock("B"))), true
	case "math_single":
		switch n.Field("OP") {
		case "NEG", "ABS":
			if t := tc.valueType(n.InputBlock("NUM")); t.IsNumeric() {
				return t, true
			}
			return Number, true
		case "ROUND", "ROUNDUP", "ROUNDDOWN":
			return Number, true
		}
		return Decimal, true
	case "math_round", "math_modulo", "math_random_int", "base_map", "spi_transfer_return":
		return Number, true
	case "math_trig", "math_constant", "math_random_float", "io_analogread", "servo_read":
		return Decimal, true
	case "math_constrain":
		if t := tc.valueType(n.InputBlock("VALUE")); t.IsNumeric() {
			return t, true
		}
		return Number, true
	case "math_number_property", "logic_compare", "logic_operation", "logic_negate", "logic_boolean",
		"io_digitalread", "io_highlow":
		return Boolean, true
	case "logic_null":
		return Null, true
	case "logic_ternary":
		if t := tc.valueType(n.InputBlock("THEN")); t.IsConcrete() {
			return t, true
		}
		return tc.valueType(n.InputBlock("ELSE")), true
	case "text", "text_join":
		return Text, true
	case "serial_getc":
		return Character, true
	case "io_pulsein", "io_pulsetimeout", "time_millis", "time_micros":
		return LargeNumber, true
	case "variables_get":
		return tc.varType(n.Field("VAR")), true
	case "variables_set_type":
		t, ok := ParseType(n.Field("VARIABLE_SETTYPE_TYPE"))
		if !ok {
			return Undefined, true
		}
		return t, true
	case "macro_get":
		def, ok := tc.macros[key(n.Field("MACRO_NAME"))]
		if !ok {
			return ChildMissing, true
		}
		if t := tc.valueType(def.InputBlock("MACRO_DEFINE_AS")); t.IsConcrete() {
			return t, true
		}
		return Number, true
	case "procedures_callreturn":
		return tc.returnType(n.Field("NAME")), true
	}
	return Undefined, false
}

func numberType(lit string) Type {
	f, err := strconv.ParseFloat(strings.TrimSpace(lit), 64)
	if err != nil {
		return ChildMissing
	}
	if math.IsInf(f, 0) || f != math.Trunc(f) {
		return Decimal
	}
	if f >= math.MinInt16 && f <= math.MaxInt16 {
		return Number
	}
	return LargeNumber
}
