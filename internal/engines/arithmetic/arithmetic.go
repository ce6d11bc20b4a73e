// Package arithmetic is the four-function calculator.
package arithmetic

import (
	"strings"

	apperrors "calculators/internal/common/errors"
)

// Operation names accepted by Apply.
const (
	OpAdd      = "add"
	OpSubtract = "subtract"
	OpMultiply = "multiply"
	OpDivide   = "divide"
)

var symbols = map[string]string{
	OpAdd:      "+",
	OpSubtract: "-",
	OpMultiply: "×",
	OpDivide:   "÷",
}

func Add(a, b float64) float64      { return a + b }
func Subtract(a, b float64) float64 { return a - b }
func Multiply(a, b float64) float64 { return a * b }

// Divide returns DIVISION_BY_ZERO when b is zero.
func Divide(a, b float64) (float64, error) {
	if b == 0 {
		return 0, apperrors.NewDivisionByZeroError()
	}
	return a / b, nil
}

// Apply dispatches on the operation name, ignoring case.
func Apply(op string, a, b float64) (float64, error) {
	switch strings.ToLower(strings.TrimSpace(op)) {
	case OpAdd:
		return Add(a, b), nil
	case OpSubtract:
		return Subtract(a, b), nil
	case OpMultiply:
		return Multiply(a, b), nil
	case OpDivide:
		return Divide(a, b)
	default:
		return 0, apperrors.NewUnknownOperationError(op)
	}
}

// Symbol returns the display symbol for op, or "?".
func Symbol(op string) string {
	if s, ok := symbols[strings.ToLower(strings.TrimSpace(op))]; ok {
		return s
	}
	return "?"
}

// Operations lists the supported operation names.
func Operations() []string {
	return []string{OpAdd, OpSubtract, OpMultiply, OpDivide}
}
