package acsfile

import (
	"bytes"
	"encoding/binary"
	"testing"
)

// archiveBuilder assembles a synthetic, minimal-but-valid ACS archive byte
// slice to exercise Parse end-to-end without needing a real captured
// character file. Sections are appended in whatever order is convenient;
// every cross-reference goes through an absolute Locator, so layout order
// never matters to the decoder.
type archiveBuilder struct {
	buf bytes.Buffer
}

func (b *archiveBuilder) offset() uint32 { return uint32(b.buf.Len()) }

func (b *archiveBuilder) u8(v uint8)   { b.buf.WriteByte(v) }
func (b *archiveBuilder) u16(v uint16) { binary.Write(&b.buf, binary.LittleEndian, v) }
func (b *archiveBuilder) i16(v int16)  { binary.Write(&b.buf, binary.LittleEndian, v) }
func (b *archiveBuilder) u32(v uint32) { binary.Write(&b.buf, binary.LittleEndian, v) }
func (b *archiveBuilder) i32(v int32)  { binary.Write(&b.buf, binary.LittleEndian, v) }
func (b *archiveBuilder) raw(p []byte) { b.buf.Write(p) }

func (b *archiveBuilder) str(s string) { b.raw(encodeString(s)) }

func (b *archiveBuilder) locator(l Locator) {
	b.u32(l.Offset)
	b.u32(l.Size)
}

func (b *archiveBuilder) guid() {
	b.raw(make([]byte, 16))
}

func (b *archiveBuilder) dataBlock(p []byte) {
	b.u32(uint32(len(p)))
	b.raw(p)
}

// section writes a section returning its own locator: helper for building a
// record in isolation, measuring its size, then splicing it into the main
// buffer at a recorded offset.
func (b *archiveBuilder) section(build func(*archiveBuilder)) Locator {
	start := b.offset()
	build(b)
	return Locator{Offset: start, Size: b.offset() - start}
}

// rawImagePayload builds one ImagePayload: reserved byte, width, height,
// uncompressed flag, a row-padded index plane of paddedRowBytes(width)*height
// bytes (every byte set to idx), then an empty region.
func rawImagePayload(width, height int, idx uint8) []byte {
	b := &archiveBuilder{}
	b.u8(0) // reserved
	b.u16(uint16(width))
	b.u16(uint16(height))
	b.u8(0) // not compressed
	rowBytes := paddedRowBytes(width)
	plane := bytes.Repeat([]byte{idx}, rowBytes*height)
	b.dataBlock(plane)
	b.u32(0) // region compressed size
	b.u32(0) // region uncompressed size
	return b.buf.Bytes()
}

// voiceInfoNoExtra builds a VoiceInfo with HasExtra = false.
func (b *archiveBuilder) voiceInfoNoExtra() {
	b.guid()
	b.guid()
	b.u32(0) // speed
	b.u16(0) // pitch
	b.u8(0)  // has_extra = false
}

// balloonInfoMinimal builds a minimal BalloonInfo.
func (b *archiveBuilder) balloonInfoMinimal() {
	b.u8(4)              // lines
	b.u8(40)              // chars per line
	b.raw([]byte{0, 0, 0, 0}) // foreground RGBQUAD
	b.raw([]byte{0, 0, 0, 0}) // background RGBQUAD
	b.raw([]byte{0, 0, 0, 0}) // border RGBQUAD
	b.str("MS Sans Serif")
	b.i32(-12) // font height
	b.i32(400) // font weight
	b.u8(0)    // italic
	b.u8(0)    // reserved
}

// characterInfoBytes builds a CharacterInfo record for a canvasW x
// canvasH character with a paletteSize-entry gray ramp palette and the
// given state table, transparent index fixed at 0.
func characterInfoBytes(canvasW, canvasH int, paletteSize int, states func(*archiveBuilder)) []byte {
	b := &archiveBuilder{}
	b.u16(2) // minor version
	b.u16(2) // major version
	b.locator(Locator{})
	b.guid()
	b.u16(uint16(canvasW))
	b.u16(uint16(canvasH))
	b.u8(0) // transparent index
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
	b.u8(0) // has_tray_icon
	states(b)
	return b.buf.Bytes()
}

func noStates(b *archiveBuilder) { b.u16(0) }

// minimalArchive assembles a single-animation, single-image, single-audio
// archive: a 2x2 opaque image, a "Greeting" animation with one frame that
// shows it and plays sound 0.
func minimalArchive(t *testing.T) []byte {
	t.Helper()
	b := &archiveBuilder{}

	// Header placeholder; patched at the end.
	headerStart := b.offset()
	b.raw(make([]byte, headerSize))

	imgLoc := b.section(func(b *archiveBuilder) {
		b.raw(rawImagePayload(2, 2, 1))
	})

	audioLoc := b.section(func(b *archiveBuilder) {
		b.raw([]byte("RIFF....WAVEfmt "))
	})

	animLoc := b.section(func(b *archiveBuilder) {
		b.str("Greeting")
		b.u8(0) // transition_type = Return
		b.str("")
		b.u32(1) // frame count
		// frame 0
		b.u16(1) // image count
		b.u16(0) // image index
		b.i16(0) // dx
		b.i16(0) // dy
		b.u16(0) // sound index
		b.u16(10) // duration cs
		b.i16(-1) // exit frame = none
		b.u16(0)  // branch count
		b.u16(0)  // overlay count
	})

	charLoc := b.section(func(b *archiveBuilder) {
		b.raw(characterInfoBytes(2, 2, 2, noStates))
	})

	animInfoLoc := b.section(func(b *archiveBuilder) {
		b.u32(1)
		b.str("Greeting")
		b.locator(animLoc)
	})

	imgInfoLoc := b.section(func(b *archiveBuilder) {
		b.u32(1)
		b.locator(imgLoc)
		b.u32(0) // checksum
	})

	audioInfoLoc := b.section(func(b *archiveBuilder) {
		b.u32(1)
		b.locator(audioLoc)
		b.u32(0) // checksum
	})

	out := b.buf.Bytes()

	// Patch the header in place.
	var hdr bytes.Buffer
	binary.Write(&hdr, binary.LittleEndian, Magic)
	for _, l := range []Locator{charLoc, animInfoLoc, imgInfoLoc, audioInfoLoc} {
		binary.Write(&hdr, binary.LittleEndian, l.Offset)
		binary.Write(&hdr, binary.LittleEndian, l.Size)
	}
	copy(out[headerStart:headerStart+uint32(headerSize)], hdr.Bytes())

	return out
}
