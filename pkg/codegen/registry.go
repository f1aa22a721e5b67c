package codegen

import (
	"errors"
	"fmt"
	"sort"
	"strings"

	"github.com/xplshn/bgen/pkg/block"
	"github.com/xplshn/bgen/pkg/pins"
)

// ErrUnknownKind is matched by every UnknownKindError.
var ErrUnknownKind = errors.New("no emitter registered for block kind")

// UnknownKindError aborts a pass: the graph holds a block kind the generator
// has no rule for.
type UnknownKindError struct {
	Kind    string
	BlockID string
}

func (e *UnknownKindError) Error() string {
	return fmt.Sprintf("block %s: no emitter registered for block kind %q", e.BlockID, e.Kind)
}

func (e *UnknownKindError) Unwrap() error { return ErrUnknownKind }

// ShapeError reports a block used in a slot its kind cannot fill, such as a
// statement block plugged into a value input.
type ShapeError struct {
	Kind    string
	BlockID string
	Want    string
}

func (e *ShapeError) Error() string {
	return fmt.Sprintf("block %s: %q cannot be used as a %s", e.BlockID, e.Kind, e.Want)
}

// PinConflictError is returned instead of source when strict-pins is enabled
// and the pass recorded conflicting pin claims.
type PinConflictError struct {
	Conflicts []*pins.Conflict
}

func (e *PinConflictError) Error() string {
	msgs := make([]string, len(e.Conflicts))
	for i, c := range e.Conflicts {
		msgs[i] = c.Error()
	}
	return fmt.Sprintf("%d pin conflict(s): %s", len(e.Conflicts), strings.Join(msgs, "; "))
}

type (
	stmtFunc  func(*Context, *block.Node) string
	valueFunc func(*Context, *block.Node) (string, Order)
)

// emitter is the rule for one block kind. A kind has a statement form, a
// value form, or (for procedure definitions) a detached form that only
// writes fragments.
type emitter struct {
	stmt     stmtFunc
	value    valueFunc
	detached bool
}

var emitters map[string]emitter

func init() {
	emitters = map[string]emitter{
		// io
		"io_digitalwrite":  {stmt: (*Context).codegenDigitalWrite},
		"io_builtin_led":   {stmt: (*Context).codegenBuiltinLed},
		"mbed_digitalOut":  {stmt: (*Context).codegenDigitalOut},
		"io_digitalread":   {value: (*Context).codegenDigitalRead},
		"io_analogwrite":   {stmt: (*Context).codegenAnalogWrite},
		"io_analogread":    {value: (*Context).codegenAnalogRead},
		"io_highlow":       {value: (*Context).codegenHighLow},
		"io_pulsein":       {value: (*Context).codegenPulseIn},
		"io_pulsetimeout":  {value: (*Context).codegenPulseIn},
		"io_tone":          {stmt: (*Context).codegenTone},
		"io_notone":        {stmt: (*Context).codegenNoTone},
		"time_delay":       {stmt: (*Context).codegenDelay},
		"time_delaymicros": {stmt: (*Context).codegenDelayMicros},
		"time_millis":      {value: (*Context).codegenMillis},
		"time_micros":      {value: (*Context).codegenMillis},
		"infinite_loop":    {stmt: (*Context).codegenInfiniteLoop},

		// peripherals
		"serial_setup":        {stmt: (*Context).codegenSerialSetup},
		"serial_print":        {stmt: (*Context).codegenSerialPrint},
		"serial_getc":         {value: (*Context).codegenSerialGetc},
		"spi_setup":           {stmt: (*Context).codegenSPISetup},
		"spi_transfer":        {stmt: (*Context).codegenSPITransfer},
		"spi_transfer_return": {value: (*Context).codegenSPITransferReturn},
		"servo_write":         {stmt: (*Context).codegenServoWrite},
		"servo_read":          {value: (*Context).codegenServoRead},
		"stepper_config":      {stmt: (*Context).codegenStepperConfig},
		"stepper_step":        {stmt: (*Context).codegenStepperStep},

		// variables and macros
		"variables_get":      {value: (*Context).codegenVariableGet},
		"variables_set":      {stmt: (*Context).codegenVariableSet},
		"variables_set_type": {value: (*Context).codegenVariableCast},
		"macro_define":       {stmt: (*Context).codegenMacroDefine},
		"macro_get":          {value: (*Context).codegenMacroGet},

		// procedures
		"procedures_defreturn":    {stmt: (*Context).codegenProcedureDef, detached: true},
		"procedures_defnoreturn":  {stmt: (*Context).codegenProcedureDef, detached: true},
		"procedures_callreturn":   {value: (*Context).codegenCallReturn},
		"procedures_callnoreturn": {stmt: (*Context).codegenCallNoReturn},
		"procedures_ifreturn":     {stmt: (*Context).codegenIfReturn},
		"mbed_functions":          {stmt: (*Context).codegenMainFunctions},

		// control flow
		"controls_if":              {stmt: (*Context).codegenIf},
		"controls_repeat_ext":      {stmt: (*Context).codegenRepeat},
		"controls_whileUntil":      {stmt: (*Context).codegenWhileUntil},
		"controls_for":             {stmt: (*Context).codegenFor},
		"controls_flow_statements": {stmt: (*Context).codegenFlowStatement},

		// logic
		"logic_compare":   {value: (*Context).codegenCompare},
		"logic_operation": {value: (*Context).codegenLogicOperation},
		"logic_negate":    {value: (*Context).codegenNegate},
		"logic_boolean":   {value: (*Context).codegenBoolean},
		"logic_null":      {value: (*Context).codegenNull},
		"logic_ternary":   {value: (*Context).codegenTernary},

		// math
		"math_number":          {value: (*Context).codegenNumber},
		"math_arithmetic":      {value: (*Context).codegenArithmetic},
		"math_single":          {value: (*Context).codegenSingle},
		"math_round":           {value: (*Context).codegenSingle},
		"math_trig":            {value: (*Context).codegenSingle},
		"math_constant":        {value: (*Context).codegenConstant},
		"math_number_property": {value: (*Context).codegenNumberProperty},
		"math_change":          {stmt: (*Context).codegenChange},
		"math_modulo":          {value: (*Context).codegenModulo},
		"math_constrain":       {value: (*Context).codegenConstrain},
		"math_random_int":      {value: (*Context).codegenRandomInt},
		"math_random_float":    {value: (*Context).codegenRandomFloat},
		"base_map":             {value: (*Context).codegenMap},

		// text
		"text":      {value: (*Context).codegenText},
		"text_join": {value: (*Context).codegenTextJoin},

		// colours and lists have no mbed rendering; they emit nothing and
		// let the enclosing block fall back to its default.
		"colour_picker":      {value: (*Context).codegenNoValue},
		"colour_random":      {value: (*Context).codegenNoValue},
		"colour_rgb":         {value: (*Context).codegenNoValue},
		"colour_blend":       {value: (*Context).codegenNoValue},
		"lists_create_empty": {value: (*Context).codegenNoValue},
		"lists_create_with":  {value: (*Context).codegenNoValue},
		"lists_repeat":       {value: (*Context).codegenNoValue},
		"lists_length":       {value: (*Context).codegenNoValue},
		"lists_isEmpty":      {value: (*Context).codegenNoValue},
		"lists_indexOf":      {value: (*Context).codegenNoValue},
		"lists_getIndex":     {value: (*Context).codegenNoValue},
		"lists_setIndex":     {stmt: (*Context).codegenNoStatement},
		"math_on_list":       {value: (*Context).codegenNoValue},
	}
}

func (ctx *Context) codegenNoValue(*block.Node) (string, Order) { return "", OrderAtomic }

func (ctx *Context) codegenNoStatement(*block.Node) string { return "" }

// Kinds lists every block kind the generator can emit, sorted.
func Kinds() []string {
	out := make([]string, 0, len(emitters))
	for k := range emitters {
		out = append(out, k)
	}
	sort.Strings(out)
	return out
}

func lookup(n *block.Node) (emitter, error) {
	e, ok := emitters[n.Kind]
	if !ok {
		return emitter{}, &UnknownKindError{Kind: n.Kind, BlockID: n.ID}
	}
	return e, nil
}
