package runtime

import (
	"math"
	"math/big"
	"strconv"
	"strings"
)

// Kind identifies the runtime value category.
type Kind int

const (
	KindString Kind = iota
	KindInteger
	KindFloat
)

// String returns the type name used in error messages.
func (k Kind) String() string {
	switch k {
	case KindString:
		return "str"
	case KindInteger:
		return "int"
	case KindFloat:
		return "float"
	default:
		return "unknown"
	}
}

// Value is a Firic runtime value. Firic only distinguishes strings from
// numbers; numbers keep an integer/float split so arithmetic and printing
// behave like the host language the scripts were written against.
type Value interface {
	Kind() Kind
}

type StringValue struct {
	Val string
}

func (StringValue) Kind() Kind { return KindString }

// IntegerValue holds an arbitrary-precision integer.
type IntegerValue struct {
	Val *big.Int
}

func (IntegerValue) Kind() Kind { return KindInteger }

type FloatValue struct {
	Val float64
}

func (FloatValue) Kind() Kind { return KindFloat }

// NewInt wraps an int64.
func NewInt(v int64) IntegerValue {
	return IntegerValue{Val: big.NewInt(v)}
}

// IsNumber reports whether v is an integer or a float.
func IsNumber(v Value) bool {
	switch v.(type) {
	case IntegerValue, FloatValue:
		return true
	default:
		return false
	}
}

// Format renders v the way print shows it.
func Format(v Value) string {
	switch val := v.(type) {
	case StringValue:
		return val.Val
	case IntegerValue:
		if val.Val == nil {
			return "0"
		}
		return val.Val.String()
	case FloatValue:
		return formatFloat(val.Val)
	default:
		return ""
	}
}

// Literal renders v as source text, used when a variable reference is
// substituted into a synthesized statement. Strings are wrapped in double
// quotes without escaping.
func Literal(v Value) string {
	if s, ok := v.(StringValue); ok {
		return `"` + s.Val + `"`
	}
	return Format(v)
}

func formatFloat(f float64) string {
	switch {
	case math.IsInf(f, 1):
		return "inf"
	case math.IsInf(f, -1):
		return "-inf"
	case math.IsNaN(f):
		return "nan"
	}
	abs := math.Abs(f)
	if abs != 0 && (abs >= 1e16 || abs < 1e-4) {
		return strconv.FormatFloat(f, 'e', -1, 64)
	}
	out := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(out, ".") {
		out += ".0"
	}
	return out
}

func toFloat(v Value) (float64, bool) {
	switch val := v.(type) {
	case FloatValue:
		return val.Val, true
	case IntegerValue:
		f, _ := new(big.Float).SetInt(val.Val).Float64()
		return f, true
	default:
		return 0, false
	}
}
