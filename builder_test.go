package acs

import (
	"bytes"
	"encoding/binary"
	"testing"
	"unicode/utf16"
)

// testArchiveBuilder assembles a synthetic ACS archive byte slice at the
// facade level, the same way internal/acsfile's own test builder does one
// layer down: every cross-reference is an absolute locator, so sections
// can be appended in any convenient order.
type testArchiveBuilder struct {
	buf bytes.Buffer
}

type testLocator struct{ Offset, Size uint32 }

func (b *testArchiveBuilder) offset() uint32 { return uint32(b.buf.Len()) }
func (b *testArchiveBuilder) u8(v uint8)     { b.buf.WriteByte(v) }
func (b *testArchiveBuilder) u16(v uint16)   { binary.Write(&b.buf, binary.LittleEndian, v) }
func (b *testArchiveBuilder) i16(v int16)    { binary.Write(&b.buf, binary.LittleEndian, v) }
func (b *testArchiveBuilder) u32(v uint32)   { binary.Write(&b.buf, binary.LittleEndian, v) }
func (b *testArchiveBuilder) i32(v int32)    { binary.Write(&b.buf, binary.LittleEndian, v) }
func (b *testArchiveBuilder) raw(p []byte)   { b.buf.Write(p) }
func (b *testArchiveBuilder) guid()          { b.raw(make([]byte, 16)) }

func (b *testArchiveBuilder) locator(l testLocator) {
	b.u32(l.Offset)
	b.u32(l.Size)
}

func (b *testArchiveBuilder) str(s string) {
	units := utf16.Encode([]rune(s))
	b.u32(uint32(len(units)))
	for _, u := range units {
		b.u16(u)
	}
	if len(units) > 0 {
		b.u16(0)
	}
}

func (b *testArchiveBuilder) dataBlock(p []byte) {
	b.u32(uint32(len(p)))
	b.raw(p)
}

func (b *testArchiveBuilder) section(build func(*testArchiveBuilder)) testLocator {
	start := b.offset()
	build(b)
	return testLocator{Offset: start, Size: b.offset() - start}
}

func paddedRow(width int) int { return (width + 3) &^ 3 }

func (b *testArchiveBuilder) imagePayload(width, height int, idx uint8) {
	b.u8(0)
	b.u16(uint16(width))
	b.u16(uint16(height))
	b.u8(0)
	rowBytes := paddedRow(width)
	b.dataBlock(bytes.Repeat([]byte{idx}, rowBytes*height))
	b.u32(0)
	b.u32(0)
}

func (b *testArchiveBuilder) voiceInfoNoExtra() {
	b.guid()
	b.guid()
	b.u32(0)
	b.u16(0)
	b.u8(0)
}

func (b *testArchiveBuilder) balloonInfoMinimal() {
	b.u8(4)
	b.u8(40)
	b.raw([]byte{0, 0, 0, 0})
	b.raw([]byte{0, 0, 0, 0})
	b.raw([]byte{0, 0, 0, 0})
	b.str("MS Sans Serif")
	b.i32(-12)
	b.i32(400)
	b.u8(0)
	b.u8(0)
}

func (b *testArchiveBuilder) characterInfo(width, height, paletteSize int, localizedInfoLoc testLocator) {
	b.u16(2)
	b.u16(2)
	b.locator(localizedInfoLoc)
	b.guid()
	b.u16(uint16(width))
	b.u16(uint16(height))
	b.u8(0)
	b.u32(0)
	b.u16(2)
	b.u16(2)
	b.voiceInfoNoExtra()
	b.balloonInfoMinimal()
	b.u32(uint32(paletteSize))
	for i := 0; i < paletteSize; i++ {
		v := uint8(i)
		b.raw([]byte{v, v, v, 0})
	}
	b.u8(0) // no tray icon
	b.u16(1) // 1 state
	b.str("IdlingLevel1")
	b.u16(1)
	b.str("Idle")
}

// buildTwoAnimationArchive produces a two-animation, two-image, one-audio
// archive: "Greeting" (one frame, plays sound 0, returns to "Idle") and
// "Idle" (one frame, loopable idle pose named per the state table above).
func buildTwoAnimationArchive(t *testing.T) []byte {
	t.Helper()
	b := &testArchiveBuilder{}
	headerStart := b.offset()
	b.raw(make([]byte, 4+4*8))

	img0 := b.section(func(b *testArchiveBuilder) { b.imagePayload(2, 2, 1) })
	img1 := b.section(func(b *testArchiveBuilder) { b.imagePayload(2, 2, 1) })
	audio0 := b.section(func(b *testArchiveBuilder) { b.raw([]byte("RIFF....WAVEfmt ")) })

	greetAnim := b.section(func(b *testArchiveBuilder) {
		b.str("Greeting")
		b.u8(0) // TransitionReturn
		b.str("Idle")
		b.u32(1) // 1 frame
		b.u16(1)
		b.u16(0)
		b.i16(0)
		b.i16(0)
		b.u16(0)  // sound index 0
		b.u16(20) // duration
		b.i16(-1) // no exit frame
		b.u16(0)
		b.u16(0)
	})
	idleAnim := b.section(func(b *testArchiveBuilder) {
		b.str("Idle")
		b.u8(1) // TransitionExitBranches
		b.str("")
		b.u32(1)
		b.u16(1)
		b.u16(1)
		b.i16(0)
		b.i16(0)
		b.u16(0xFFFF)
		b.u16(10)
		b.i16(-1)
		b.u16(0)
		b.u16(0)
	})

	localizedLoc := b.section(func(b *testArchiveBuilder) {
		b.u32(1)
		b.u16(0x0409)
		b.str("Clippy")
		b.str("Office Assistant")
		b.str("")
	})
	charLoc := b.section(func(b *testArchiveBuilder) {
		b.characterInfo(2, 2, 2, localizedLoc)
	})
	animInfoLoc := b.section(func(b *testArchiveBuilder) {
		b.u32(2)
		b.str("Greeting")
		b.locator(greetAnim)
		b.str("Idle")
		b.locator(idleAnim)
	})
	imgInfoLoc := b.section(func(b *testArchiveBuilder) {
		b.u32(2)
		b.locator(img0)
		b.u32(0)
		b.locator(img1)
		b.u32(0)
	})
	audioInfoLoc := b.section(func(b *testArchiveBuilder) {
		b.u32(1)
		b.locator(audio0)
		b.u32(0)
	})

	out := b.buf.Bytes()
	var hdr bytes.Buffer
	binary.Write(&hdr, binary.LittleEndian, uint32(0xABCDABC3))
	for _, l := range []testLocator{charLoc, animInfoLoc, imgInfoLoc, audioInfoLoc} {
		binary.Write(&hdr, binary.LittleEndian, l.Offset)
		binary.Write(&hdr, binary.LittleEndian, l.Size)
	}
	copy(out[headerStart:headerStart+36], hdr.Bytes())
	return out
}
