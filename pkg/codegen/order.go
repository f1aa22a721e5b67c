package codegen

// Order is the binding strength of an emitted C++ expression. Lower values
// bind tighter.
type Order int

const (
	OrderAtomic         Order = 0  // 0 "" ...
	OrderUnaryPostfix   Order = 1  // expr++ expr-- () [] .
	OrderUnaryPrefix    Order = 2  // -expr !expr ~expr ++expr --expr (cast)
	OrderMultiplicative Order = 3  // * / %
	OrderAdditive       Order = 4  // + -
	OrderShift          Order = 5  // << >>
	OrderRelational     Order = 6  // < <= > >=
	OrderEquality       Order = 7  // == !=
	OrderBitwiseAnd     Order = 8  // &
	OrderBitwiseXor     Order = 9  // ^
	OrderBitwiseOr      Order = 10 // |
	OrderLogicalAnd     Order = 11 // &&
	OrderLogicalOr      Order = 12 // ||
	OrderConditional    Order = 13 // expr ? expr : expr
	OrderAssignment     Order = 14 // = *= /= ~/= %= += -= <<= >>= &= ^= |=
	OrderNone           Order = 99 // (...)
)

// parenthesize wraps code when its order binds more loosely than the
// context allows. Equal orders are left alone; callers that need the tighter
// reading for a non-associative operand request min-1.
func parenthesize(code string, order, min Order) (string, Order) {
	if order > min {
		return "(" + code + ")", OrderAtomic
	}
	return code, order
}
