package memfile

import (
	"math"
	"strconv"

	"github.com/pkg/errors"
	"github.com/spf13/cast"
)

// valueKind is an enumerated type representing what a Value holds
type valueKind int32

const (
	invalidValue valueKind = iota
	bytesValue
	intValue
	floatValue
)

// Value is one write argument for WriteValues: a byte sequence or a number.
// Numbers are written as canonical decimal text, integers in base 10 and
// floats as the shortest representation that round-trips. The zero Value is
// invalid and makes WriteValues fail.
type Value struct {
	kind valueKind
	data []byte
	i    int64
	f    float64
}

// Bytes makes a Value that writes p as it is. The slice is read when the
// write happens, the caller must not mutate it in between.
func Bytes(p []byte) Value { return Value{kind: bytesValue, data: p} }

// Text makes a Value that writes the bytes of s.
func Text(s string) Value { return Value{kind: bytesValue, data: []byte(s)} }

// Int makes a Value that writes n in decimal.
func Int(n int64) Value { return Value{kind: intValue, i: n} }

// Float makes a Value that writes x as the shortest decimal that round-trips
// back to x.
func Float(x float64) Value { return Value{kind: floatValue, f: x} }

// ValueOf coerces the things Go callers actually hold into a Value: byte
// slices and strings write as they are, every integer and float width writes
// as canonical decimal text, and a Value passes through. Anything else fails
// with ErrInvalidArgument.
func ValueOf(v interface{}) (Value, error) {
	switch t := v.(type) {
	case Value:
		return t, nil
	case []byte:
		return Bytes(t), nil
	case string:
		return Text(t), nil
	case float32, float64:
		x, err := cast.ToFloat64E(v)
		if err != nil {
			return Value{}, errors.Wrapf(ErrInvalidArgument, "cannot write %T", v)
		}
		return Float(x), nil
	case uint:
		return uintValue(uint64(t)), nil
	case uint64:
		return uintValue(t), nil
	case int, int8, int16, int32, int64, uint8, uint16, uint32:
		n, err := cast.ToInt64E(v)
		if err != nil {
			return Value{}, errors.Wrapf(ErrInvalidArgument, "cannot write %T", v)
		}
		return Int(n), nil
	default:
		return Value{}, errors.Wrapf(ErrInvalidArgument, "cannot write a value of type %T", v)
	}
}

// uintValue handles the one numeric case an int64 cannot represent.
func uintValue(u uint64) Value {
	if u > math.MaxInt64 {
		return Value{kind: bytesValue, data: strconv.AppendUint(nil, u, 10)}
	}
	return Int(int64(u))
}

// appendTo renders the value into dst in its write encoding.
func (v Value) appendTo(dst []byte) []byte {
	switch v.kind {
	case bytesValue:
		return append(dst, v.data...)
	case intValue:
		return strconv.AppendInt(dst, v.i, 10)
	case floatValue:
		return strconv.AppendFloat(dst, v.f, 'g', -1, 64)
	}
	return dst
}

func (v Value) valid() bool { return v.kind != invalidValue }

// String renders exactly the bytes the value would write.
func (v Value) String() string { return string(v.appendTo(nil)) }

// WriteValues concatenates the values and writes them like Write: at the
// cursor on a normal handle, at the end on an append-mode handle. The call
// is all or nothing, an invalid Value fails with ErrInvalidArgument before
// any byte moves. Returns the number of bytes written.
func (f *File) WriteValues(vals ...Value) (int, error) {
	for i, v := range vals {
		if !v.valid() {
			return 0, errors.Wrapf(ErrInvalidArgument, "invalid value at index %d", i)
		}
	}

	var out []byte
	for _, v := range vals {
		out = v.appendTo(out)
	}
	if len(out) == 0 {
		return 0, nil
	}

	return f.Write(out)
}
