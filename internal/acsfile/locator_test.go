package acsfile

import (
	"errors"
	"testing"

	"github.com/msagent/acs/internal/binreader"
)

func TestLocatorIsNil(t *testing.T) {
	if !(Locator{}).IsNil() {
		t.Error("zero-valued Locator should report IsNil")
	}
	if (Locator{Offset: 1}).IsNil() {
		t.Error("Locator with nonzero offset should not report IsNil")
	}
	if (Locator{Size: 1}).IsNil() {
		t.Error("Locator with nonzero size should not report IsNil")
	}
}

func TestReadLocator(t *testing.T) {
	c := binreader.New([]byte{0x10, 0x00, 0x00, 0x00, 0x20, 0x00, 0x00, 0x00})
	loc, err := readLocator(c)
	if err != nil {
		t.Fatalf("readLocator: %v", err)
	}
	if loc.Offset != 0x10 || loc.Size != 0x20 {
		t.Errorf("readLocator() = %+v, want {Offset:16, Size:32}", loc)
	}
}

func TestDerefNilLocator(t *testing.T) {
	full := binreader.New(make([]byte, 16))
	if _, err := deref(full, Locator{}); !errors.Is(err, ErrMalformedStructure) {
		t.Errorf("deref(nil locator): err = %v, want ErrMalformedStructure", err)
	}
}

func TestDerefOutOfRange(t *testing.T) {
	full := binreader.New(make([]byte, 16))
	if _, err := deref(full, Locator{Offset: 10, Size: 10}); !errors.Is(err, ErrMalformedStructure) {
		t.Errorf("deref(out-of-range locator): err = %v, want ErrMalformedStructure", err)
	}
}

func TestDerefValid(t *testing.T) {
	buf := make([]byte, 16)
	buf[4] = 0xAB
	full := binreader.New(buf)
	sub, err := deref(full, Locator{Offset: 4, Size: 4})
	if err != nil {
		t.Fatalf("deref: %v", err)
	}
	b, err := sub.Bytes(1)
	if err != nil || b[0] != 0xAB {
		t.Errorf("deref window = %v, %v, want [0xAB], nil", b, err)
	}
}
