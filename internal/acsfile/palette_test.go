package acsfile

import (
	"image/color"
	"testing"

	"github.com/msagent/acs/internal/binreader"
)

func TestReadPalette(t *testing.T) {
	buf := []byte{
		0x01, 0x02, 0x03, 0x00, // entry 0: B=1 G=2 R=3
		0x04, 0x05, 0x06, 0x00, // entry 1: B=4 G=5 R=6
	}
	pal, err := readPalette(binreader.New(buf), 2)
	if err != nil {
		t.Fatalf("readPalette: %v", err)
	}
	if len(pal) != 2 {
		t.Fatalf("len(pal) = %d, want 2", len(pal))
	}
	if pal[0] != (PaletteEntry{Blue: 1, Green: 2, Red: 3}) {
		t.Errorf("pal[0] = %+v", pal[0])
	}
}

func TestPaletteResolveOpaque(t *testing.T) {
	pal := Palette{{Blue: 10, Green: 20, Red: 30}}
	got := pal.Resolve(0, 255) // transparent index doesn't match 0
	want := color.NRGBA{R: 30, G: 20, B: 10, A: 255}
	if got != want {
		t.Errorf("Resolve() = %+v, want %+v", got, want)
	}
}

func TestPaletteResolveTransparent(t *testing.T) {
	pal := Palette{{Blue: 10, Green: 20, Red: 30}}
	got := pal.Resolve(0, 0)
	if got.A != 0 {
		t.Errorf("Resolve() at transparent index: alpha = %d, want 0", got.A)
	}
	if got.R != 30 || got.G != 20 || got.B != 10 {
		t.Errorf("Resolve() at transparent index kept wrong RGB: %+v", got)
	}
}
