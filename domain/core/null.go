package core

import (
	"encoding/json"
	"math"
)

// Value is a nullable float64. Arithmetic on Values propagates "unknown":
// any operation touching an undefined operand yields an undefined result,
// so partial data surfaces as nulls instead of NaNs or errors.
type Value struct {
	v       float64
	defined bool
}

// Some returns a defined Value. NaN and Inf inputs collapse to None so a
// bad upstream division can never leak a non-finite number into results.
func Some(v float64) Value {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return Value{}
	}
	return Value{v: v, defined: true}
}

// None returns the undefined Value.
func None() Value {
	return Value{}
}

// Defined reports whether the value carries a number.
func (x Value) Defined() bool {
	return x.defined
}

// Float returns the underlying number and whether it is defined.
func (x Value) Float() (float64, bool) {
	return x.v, x.defined
}

// Or returns the underlying number, or fallback when undefined.
func (x Value) Or(fallback float64) float64 {
	if !x.defined {
		return fallback
	}
	return x.v
}

// Add returns x + y, undefined unless both operands are defined.
func (x Value) Add(y Value) Value {
	if !x.defined || !y.defined {
		return Value{}
	}
	return Some(x.v + y.v)
}

// Sub returns x - y, undefined unless both operands are defined.
func (x Value) Sub(y Value) Value {
	if !x.defined || !y.defined {
		return Value{}
	}
	return Some(x.v - y.v)
}

// Ratio returns 100*num/den, undefined when den is zero. Both inputs are
// plain counts; the helper exists so rate stats share one zero-denominator
// policy.
func Ratio(num, den float64) Value {
	if den == 0 {
		return Value{}
	}
	return Some(num / den * 100)
}

// MeanOf returns the arithmetic mean of the defined values, undefined iff
// no value is defined.
func MeanOf(values []Value) Value {
	sum := 0.0
	n := 0
	for _, v := range values {
		if v.defined {
			sum += v.v
			n++
		}
	}
	if n == 0 {
		return Value{}
	}
	return Some(sum / float64(n))
}

// CountDefined returns the number of defined values.
func CountDefined(values []Value) int {
	n := 0
	for _, v := range values {
		if v.defined {
			n++
		}
	}
	return n
}

// MarshalJSON encodes undefined values as JSON null.
func (x Value) MarshalJSON() ([]byte, error) {
	if !x.defined {
		return []byte("null"), nil
	}
	return json.Marshal(x.v)
}

// UnmarshalJSON decodes JSON null as the undefined value.
func (x *Value) UnmarshalJSON(data []byte) error {
	if string(data) == "null" {
		*x = Value{}
		return nil
	}
	var f float64
	if err := json.Unmarshal(data, &f); err != nil {
		return err
	}
	*x = Some(f)
	return nil
}
