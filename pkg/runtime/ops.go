package runtime

import (
	"math"
	"math/big"
	"strings"
)

// maxPowerBits bounds integer exponentiation results in bits and repeated
// strings in bytes.
const maxPowerBits = 1 << 20

var errZeroDivision = &EvalError{Kind: "ZeroDivisionError", Message: "division by zero"}

func applyUnary(op string, operand Value) (Value, error) {
	switch v := operand.(type) {
	case IntegerValue:
		if op == "-" {
			return IntegerValue{Val: new(big.Int).Neg(v.Val)}, nil
		}
		return v, nil
	case FloatValue:
		if op == "-" {
			return FloatValue{Val: -v.Val}, nil
		}
		return v, nil
	default:
		return nil, typeErrorf("bad operand type for unary %s: '%s'", op, operand.Kind())
	}
}

func applyBinary(op string, left, right Value) (Value, error) {
	switch op {
	case "+":
		return add(left, right)
	case "-":
		return arithmetic(op, left, right, new(big.Int).Sub, func(a, b float64) float64 { return a - b })
	case "*":
		return multiply(left, right)
	case "/":
		return divide(left, right)
	case "//":
		return floorDivide(left, right)
	case "%":
		return modulo(left, right)
	case "**":
		return power(left, right)
	default:
		return nil, syntaxErrorf("unsupported operator %q", op)
	}
}

func unsupported(op string, left, right Value) error {
	return typeErrorf("unsupported operand type(s) for %s: '%s' and '%s'", op, left.Kind(), right.Kind())
}

func arithmetic(op string, left, right Value, ints func(a, b *big.Int) *big.Int, floats func(a, b float64) float64) (Value, error) {
	if li, ok := left.(IntegerValue); ok {
		if ri, ok := right.(IntegerValue); ok {
			return IntegerValue{Val: ints(li.Val, ri.Val)}, nil
		}
	}
	lf, lok := toFloat(left)
	rf, rok := toFloat(right)
	if !lok || !rok {
		return nil, unsupported(op, left, right)
	}
	return FloatValue{Val: floats(lf, rf)}, nil
}

func add(left, right Value) (Value, error) {
	if ls, ok := left.(StringValue); ok {
		rs, ok := right.(StringValue)
		if !ok {
			return nil, typeErrorf(`can only concatenate str (not "%s") to str`, right.Kind())
		}
		return StringValue{Val: ls.Val + rs.Val}, nil
	}
	return arithmetic("+", left, right, new(big.Int).Add, func(a, b float64) float64 { return a + b })
}

func multiply(left, right Value) (Value, error) {
	if s, ok := left.(StringValue); ok {
		return repeat(s, right)
	}
	if s, ok := right.(StringValue); ok {
		return repeat(s, left)
	}
	return arithmetic("*", left, right, new(big.Int).Mul, func(a, b float64) float64 { return a * b })
}

func repeat(s StringValue, count Value) (Value, error) {
	n, ok := count.(IntegerValue)
	if !ok {
		return nil, typeErrorf("can't multiply sequence by non-int of type '%s'", count.Kind())
	}
	if n.Val.Sign() <= 0 {
		return StringValue{Val: ""}, nil
	}
	if s.Val == "" {
		return s, nil
	}
	if !n.Val.IsInt64() || n.Val.Int64() > maxPowerBits/int64(len(s.Val)) {
		return nil, &EvalError{Kind: "OverflowError", Message: "repeated string is too long"}
	}
	return StringValue{Val: strings.Repeat(s.Val, int(n.Val.Int64()))}, nil
}

func divide(left, right Value) (Value, error) {
	if !IsNumber(left) || !IsNumber(right) {
		return nil, unsupported("/", left, right)
	}
	li, lok := left.(IntegerValue)
	ri, rok := right.(IntegerValue)
	if lok && rok {
		if ri.Val.Sign() == 0 {
			return nil, errZeroDivision
		}
		f, _ := new(big.Rat).SetFrac(li.Val, ri.Val).Float64()
		return FloatValue{Val: f}, nil
	}
	lf, _ := toFloat(left)
	rf, _ := toFloat(right)
	if rf == 0 {
		return nil, &EvalError{Kind: "ZeroDivisionError", Message: "float division by zero"}
	}
	return FloatValue{Val: lf / rf}, nil
}

// floorQuoRem returns the quotient rounded toward negative infinity and the
// remainder carrying the divisor's sign.
func floorQuoRem(a, b *big.Int) (*big.Int, *big.Int) {
	q, r := new(big.Int).QuoRem(a, b, new(big.Int))
	if r.Sign() != 0 && (r.Sign() < 0) != (b.Sign() < 0) {
		q.Sub(q, big.NewInt(1))
		r.Add(r, b)
	}
	return q, r
}

func floorDivide(left, right Value) (Value, error) {
	if !IsNumber(left) || !IsNumber(right) {
		return nil, unsupported("//", left, right)
	}
	li, lok := left.(IntegerValue)
	ri, rok := right.(IntegerValue)
	if lok && rok {
		if ri.Val.Sign() == 0 {
			return nil, &EvalError{Kind: "ZeroDivisionError", Message: "integer division or modulo by zero"}
		}
		q, _ := floorQuoRem(li.Val, ri.Val)
		return IntegerValue{Val: q}, nil
	}
	lf, _ := toFloat(left)
	rf, _ := toFloat(right)
	if rf == 0 {
		return nil, &EvalError{Kind: "ZeroDivisionError", Message: "float floor division by zero"}
	}
	return FloatValue{Val: math.Floor(lf / rf)}, nil
}

func modulo(left, right Value) (Value, error) {
	if !IsNumber(left) || !IsNumber(right) {
		return nil, unsupported("%", left, right)
	}
	li, lok := left.(IntegerValue)
	ri, rok := right.(IntegerValue)
	if lok && rok {
		if ri.Val.Sign() == 0 {
			return nil, &EvalError{Kind: "ZeroDivisionError", Message: "integer modulo by zero"}
		}
		_, r := floorQuoRem(li.Val, ri.Val)
		return IntegerValue{Val: r}, nil
	}
	lf, _ := toFloat(left)
	rf, _ := toFloat(right)
	if rf == 0 {
		return nil, &EvalError{Kind: "ZeroDivisionError", Message: "float modulo"}
	}
	m := math.Mod(lf, rf)
	if m != 0 && (m < 0) != (rf < 0) {
		m += rf
	}
	return FloatValue{Val: m}, nil
}

func power(left, right Value) (Value, error) {
	if !IsNumber(left) || !IsNumber(right) {
		return nil, unsupported("** or pow()", left, right)
	}
	li, lok := left.(IntegerValue)
	ri, rok := right.(IntegerValue)
	if lok && rok && ri.Val.Sign() >= 0 {
		if bits := int64(li.Val.BitLen()); bits > 1 && (!ri.Val.IsInt64() || ri.Val.Int64() > maxPowerBits/bits) {
			return nil, &EvalError{Kind: "OverflowError", Message: "integer power result too large"}
		}
		return IntegerValue{Val: new(big.Int).Exp(li.Val, ri.Val, nil)}, nil
	}
	lf, _ := toFloat(left)
	rf, _ := toFloat(right)
	if lf == 0 && rf < 0 {
		return nil, &EvalError{Kind: "ZeroDivisionError", Message: "0.0 cannot be raised to a negative power"}
	}
	result := math.Pow(lf, rf)
	if math.IsNaN(result) && !math.IsNaN(lf) && !math.IsNaN(rf) {
		return nil, &EvalError{Kind: "ValueError", Message: "math domain error"}
	}
	return FloatValue{Val: result}, nil
}
