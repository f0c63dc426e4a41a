package memfile

import (
	"io"
	"math"
	"testing"

	"github.com/pkg/errors"
)

func TestValueOf(t *testing.T) {
	cases := []struct {
		val   interface{}
		want  string
		fails bool
	}{
		{int(42), "42", false},
		{int8(-5), "-5", false},
		{int16(300), "300", false},
		{int32(1 << 20), "1048576", false},
		{int64(math.MinInt64), "-9223372036854775808", false},
		{uint(7), "7", false},
		{uint8(255), "255", false},
		{uint16(65535), "65535", false},
		{uint32(4294967295), "4294967295", false},
		{uint64(math.MaxUint64), "18446744073709551615", false},
		{float32(2.5), "2.5", false},
		{float64(12.5), "12.5", false},
		{float64(3), "3", false},
		{"text", "text", false},
		{[]byte("raw"), "raw", false},
		{Int(9), "9", false},
		{true, "", true},
		{nil, "", true},
		{struct{}{}, "", true},
		{3 + 4i, "", true},
	}

	for _, c := range cases {
		got, err := ValueOf(c.val)

		if c.fails {
			if !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("ValueOf(%#v): expected ErrInvalidArgument, got %v", c.val, err)
			}
			continue
		}

		if err != nil {
			t.Errorf("ValueOf(%#v): unexpected error %v", c.val, err)
			continue
		}
		if got.String() != c.want {
			t.Errorf("ValueOf(%#v) writes %q, expected %q", c.val, got.String(), c.want)
		}
	}
}

func TestValueString(t *testing.T) {
	cases := []struct {
		v    Value
		want string
	}{
		{Int(-3), "-3"},
		{Int(0), "0"},
		{Float(0.25), "0.25"},
		{Float(100), "100"},
		{Float(1e21), "1e+21"},
		{Text("plain"), "plain"},
		{Bytes([]byte("hi")), "hi"},
	}

	for _, c := range cases {
		if got := c.v.String(); got != c.want {
			t.Errorf("String() = %q, expected %q", got, c.want)
		}
	}
}

func TestWriteValues(t *testing.T) {
	f := Open(nil, "w")

	n, err := f.WriteValues(Text("x: "), Int(10), Text(" y: "), Float(2.5), Bytes([]byte("!")))
	if err != nil {
		t.Error(err)
		return
	}

	want := "x: 10 y: 2.5!"
	if n != len(want) {
		t.Errorf("wrote %v bytes, expected %v", n, len(want))
	}
	if got := f.String(); got != want {
		t.Errorf("contents read %q, expected %q", got, want)
	}
	if f.Pos() != len(want) {
		t.Errorf("cursor at %v, expected %v", f.Pos(), len(want))
	}
}

func TestWriteValuesOverwriteThenScanBack(t *testing.T) {
	f := OpenString("##########", "w")

	if _, err := f.Seek(2, io.SeekStart); err != nil {
		t.Error(err)
		return
	}
	if _, err := f.WriteValues(Int(42)); err != nil {
		t.Error(err)
		return
	}

	if got := f.String(); got != "##42######" {
		t.Errorf("contents read %q, expected %q", got, "##42######")
	}

	if _, err := f.Seek(2, io.SeekStart); err != nil {
		t.Error(err)
		return
	}
	res, err := f.Scan(NumberFormat)
	if err != nil {
		t.Error(err)
		return
	}
	if res[0].Number() != 42 {
		t.Errorf("scanned back %v, expected 42", res[0].Number())
	}
}

func TestWriteValuesAppendMode(t *testing.T) {
	f := OpenString("log:", "a")

	if _, err := f.Seek(0, io.SeekStart); err != nil {
		t.Error(err)
		return
	}

	n, err := f.WriteValues(Text(" entry "), Int(1))
	if err != nil {
		t.Error(err)
		return
	}
	if n != 8 {
		t.Errorf("wrote %v bytes, expected 8", n)
	}

	if got := f.String(); got != "log: entry 1" {
		t.Errorf("contents read %q, expected %q", got, "log: entry 1")
	}
	if f.Pos() != 0 {
		t.Errorf("append-mode WriteValues moved the cursor to %v", f.Pos())
	}
}

func TestWriteValuesAllOrNothing(t *testing.T) {
	f := OpenString("keep", "w")
	if _, err := f.Seek(2, io.SeekStart); err != nil {
		t.Error(err)
		return
	}

	var zero Value
	n, err := f.WriteValues(Text("a"), zero, Text("b"))
	if !errors.Is(err, ErrInvalidArgument) {
		t.Errorf("expected ErrInvalidArgument, got %v", err)
	}
	if n != 0 {
		t.Errorf("a failed WriteValues reported %v bytes written", n)
	}
	if f.String() != "keep" || f.Pos() != 2 {
		t.Error("a failed WriteValues mutated the handle")
	}
}

func TestWriteValuesNothing(t *testing.T) {
	f := OpenString("same", "w")

	n, err := f.WriteValues()
	if n != 0 || err != nil {
		t.Errorf("WriteValues() = %v %v, expected 0 nil", n, err)
	}
	if f.String() != "same" {
		t.Error("WriteValues with no values mutated the handle")
	}
}
