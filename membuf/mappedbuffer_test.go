package membuf

import (
	"os"
	"testing"
)

func TestMappedBufferRoundTrip(t *testing.T) {
	cases := []string{"", "m", "mapped contents", "with\x00zero\nbytes"}

	for _, c := range cases {
		b, err := NewMappedBuffer([]byte(c))
		if err != nil {
			t.Error(err)
			return
		}

		if got := string(b.Bytes()); got != c {
			t.Errorf("buffer reads %q, expected %q", got, c)
		}
		if b.Len() != len(c) {
			t.Errorf("Len() = %v, expected %v", b.Len(), len(c))
		}

		if err = b.Release(); err != nil {
			t.Error(err)
			return
		}
	}
}

func TestMappedBufferWriteAt(t *testing.T) {
	cases := []struct {
		initial string
		p       string
		off     int
		want    string
	}{
		{"hello", "HE", 0, "HEllo"},
		{"hello", "!!", 5, "hello!!"},
		{"hi", "far", 4, "hi\x00\x00far"},
		{"", "fresh", 0, "fresh"},
	}

	for _, c := range cases {
		b, err := NewMappedBuffer([]byte(c.initial))
		if err != nil {
			t.Error(err)
			return
		}

		n, err := b.WriteAt([]byte(c.p), c.off)
		if err != nil {
			t.Error(err)
			return
		}
		if n != len(c.p) {
			t.Errorf("WriteAt(%q, %v): wrote %v bytes, expected %v", c.p, c.off, n, len(c.p))
		}

		if got := string(b.Bytes()); got != c.want {
			t.Errorf("WriteAt(%q, %v) on %q: got %q, expected %q", c.p, c.off, c.initial, got, c.want)
		}

		if err = b.Release(); err != nil {
			t.Error(err)
			return
		}
	}
}

func TestMappedBufferRegionPageAligned(t *testing.T) {
	b, err := NewMappedBuffer([]byte("x"))
	if err != nil {
		t.Error(err)
		return
	}
	defer b.Release()

	if pagesize := os.Getpagesize(); b.Cap()%pagesize != 0 {
		t.Errorf("Cap() = %v, expected a multiple of the %v byte page size", b.Cap(), pagesize)
	}
}

func TestMappedBufferGrowAcrossRegions(t *testing.T) {
	b, err := NewMappedBuffer([]byte("start"))
	if err != nil {
		t.Error(err)
		return
	}
	defer b.Release()

	// force a remap by growing well past the first region
	big := 3 * os.Getpagesize()
	if _, err = b.WriteAt([]byte("end"), big); err != nil {
		t.Error(err)
		return
	}

	if b.Len() != big+3 {
		t.Errorf("Len() = %v, expected %v", b.Len(), big+3)
	}
	if got := string(b.Bytes()[:5]); got != "start" {
		t.Errorf("contents lost across remap: %q", got)
	}
	for i, c := range b.Bytes()[5:big] {
		if c != 0 {
			t.Errorf("gap byte %v = %#x, expected zero", 5+i, c)
			return
		}
	}
	if got := string(b.Bytes()[big:]); got != "end" {
		t.Errorf("tail reads %q, expected %q", got, "end")
	}
}

func TestMappedBufferShrinkClearsTail(t *testing.T) {
	b, err := NewMappedBuffer([]byte("secret"))
	if err != nil {
		t.Error(err)
		return
	}
	defer b.Release()

	if err = b.Resize(2); err != nil {
		t.Error(err)
		return
	}
	if err = b.Resize(6); err != nil {
		t.Error(err)
		return
	}

	if got := string(b.Bytes()); got != "se\x00\x00\x00\x00" {
		t.Errorf("regrown buffer reads %q, stale bytes leaked", got)
	}
}

func TestMappedBufferReleaseThenWrite(t *testing.T) {
	b, err := NewMappedBuffer([]byte("gone"))
	if err != nil {
		t.Error(err)
		return
	}

	if err = b.Release(); err != nil {
		t.Error(err)
		return
	}
	if b.Len() != 0 || b.Cap() != 0 {
		t.Errorf("released buffer has Len %v Cap %v, expected 0 0", b.Len(), b.Cap())
	}

	// the next write maps a fresh region
	if _, err = b.WriteAt([]byte("back"), 0); err != nil {
		t.Error(err)
		return
	}
	if got := string(b.Bytes()); got != "back" {
		t.Errorf("write after Release reads %q, expected %q", got, "back")
	}

	if err = b.Release(); err != nil {
		t.Error(err)
	}
}
