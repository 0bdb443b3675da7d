package params

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// Kind is the inferred type of a parameter value.
type Kind int

const (
	KindString Kind = iota
	KindInt
	KindFloat
)

// String returns the name used for the kind in schemas and exports.
func (k Kind) String() string {
	switch k {
	case KindInt:
		return "integer"
	case KindFloat:
		return "float"
	case KindString:
		return "string"
	default:
		return "unknown"
	}
}

// Value is a typed scalar. The raw text is kept so the value can be written back
// exactly as it was read.
type Value struct {
	kind Kind
	raw  string
	f    float64
	i    int
}

// Infer types raw text: a '.' makes it a float, a full base-10 integer makes it an
// integer, anything else stays a string. Text with a '.' that is not a number
// (a file name, say) is a string. A number too large for its kind is a malformed
// entry rather than a string.
func Infer(raw string) (Value, error) {
	v, perr := infer(raw)
	if perr != nil {
		return Value{}, perr
	}
	return v, nil
}

func infer(raw string) (Value, *Error) {
	if strings.Contains(raw, ".") {
		f, err := strconv.ParseFloat(raw, 64)
		switch {
		case err == nil:
			return Value{kind: KindFloat, raw: raw, f: f}, nil
		case errors.Is(err, strconv.ErrRange):
			return Value{}, outOfRange(raw, KindFloat)
		}
		return Value{kind: KindString, raw: raw}, nil
	}

	i, err := strconv.Atoi(raw)
	switch {
	case err == nil:
		return Value{kind: KindInt, raw: raw, i: i}, nil
	case errors.Is(err, strconv.ErrRange) && isDigits(raw):
		return Value{}, outOfRange(raw, KindInt)
	}
	return Value{kind: KindString, raw: raw}, nil
}

// isDigits reports whether s is an optional sign followed by decimal digits.
func isDigits(s string) bool {
	s = strings.TrimLeft(s, "+-")
	if s == "" {
		return false
	}
	for _, r := range s {
		if r < '0' || r > '9' {
			return false
		}
	}
	return true
}

func outOfRange(raw string, kind Kind) *Error {
	return &Error{Kind: KindMalformedEntry, Msg: fmt.Sprintf("value %q is out of range for %s", raw, kind)}
}

// FloatValue returns a float value whose raw text always contains a '.'.
func FloatValue(f float64) Value {
	raw := strconv.FormatFloat(f, 'f', -1, 64)
	if !strings.ContainsAny(raw, ".NI") {
		raw += "."
	}
	return Value{kind: KindFloat, raw: raw, f: f}
}

// IntValue returns an integer value.
func IntValue(i int) Value {
	return Value{kind: KindInt, raw: strconv.Itoa(i), i: i}
}

// StringValue returns a string value kept verbatim.
func StringValue(s string) Value {
	return Value{kind: KindString, raw: s}
}

// Kind returns the inferred kind.
func (v Value) Kind() Kind { return v.kind }

// Raw returns the text the value was built from.
func (v Value) Raw() string { return v.raw }

// Float returns the value as a float64. Integers are widened.
func (v Value) Float() (float64, bool) {
	switch v.kind {
	case KindFloat:
		return v.f, true
	case KindInt:
		return float64(v.i), true
	}
	return 0, false
}

// Int returns the value when it is an integer.
func (v Value) Int() (int, bool) {
	if v.kind != KindInt {
		return 0, false
	}
	return v.i, true
}

// Interface returns the Go value: float64, int or string.
func (v Value) Interface() any {
	switch v.kind {
	case KindFloat:
		return v.f
	case KindInt:
		return v.i
	default:
		return v.raw
	}
}

// String implements fmt.Stringer.
func (v Value) String() string {
	return v.raw
}

// GoString helps test failure output.
func (v Value) GoString() string {
	return fmt.Sprintf("%s(%s)", v.kind, v.raw)
}

// Equal compares kind and typed content.
func (v Value) Equal(o Value) bool {
	if v.kind != o.kind {
		return false
	}
	switch v.kind {
	case KindFloat:
		return v.f == o.f
	case KindInt:
		return v.i == o.i
	default:
		return v.raw == o.raw
	}
}
