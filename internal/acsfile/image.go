package acsfile

import (
	"fmt"

	"github.com/msagent/acs/internal/binreader"
)

// ImageHeader precedes an image's pixel plane and region blob within the
// payload pointed to by ImageEntry.DataLocator.
type ImageHeader struct {
	// Unknown is the leading reserved byte of the payload. Its semantics
	// are unspecified; it is preserved rather than discarded so callers
	// can round-trip it.
	Unknown    uint8
	Width      uint16
	Height     uint16
	Compressed bool
}

// Region is the opaque hit-testing outline that follows an image's pixel
// plane. The core never interprets it; it is retained verbatim for a
// caller that wants to reconstruct hit-testing elsewhere.
type Region struct {
	CompressedSize   uint32
	UncompressedSize uint32
	Bytes            []byte
}

// ImageEntry is one archive image: a checksum (unused by the core) and the
// locator of its data block. Header, pixel plane and region are parsed on
// first access by an ImageStore, not eagerly here.
type ImageEntry struct {
	Checksum uint32
	Data     Locator
}

// readImageInfoList decodes an ImageInfoList: u32 count, then count
// {data_locator, checksum} entries, per §3's ImageEntry field order.
func readImageInfoList(c *binreader.Cursor) ([]ImageEntry, error) {
	count, err := c.U32()
	if err != nil {
		return nil, fmt.Errorf("image list count: %w", err)
	}
	entries := make([]ImageEntry, count)
	for i := range entries {
		loc, err := readLocator(c)
		if err != nil {
			return nil, fmt.Errorf("image[%d] data locator: %w", i, err)
		}
		checksum, err := c.U32()
		if err != nil {
			return nil, fmt.Errorf("image[%d] checksum: %w", i, err)
		}
		entries[i] = ImageEntry{Checksum: checksum, Data: loc}
	}
	return entries, nil
}

// readImagePayload decodes the ImageHeader, raw or compressed pixel
// plane, and region blob from the cursor over an image's data locator
// window. The returned plane is the row-padded, bottom-up index buffer
// exactly as stored (row padding not yet stripped); region is retained
// opaquely. pooled reports whether plane was drawn from internal/pool
// (the compressed path) rather than being a borrowed slice of the
// archive's own backing buffer (the raw path) — only the former may be
// returned to the pool once the caller is done with it.
func readImagePayload(c *binreader.Cursor) (hdr ImageHeader, plane []byte, pooled bool, region Region, err error) {
	unknown, err := c.U8()
	if err != nil {
		return ImageHeader{}, nil, false, Region{}, fmt.Errorf("image reserved byte: %w", err)
	}
	width, err := c.U16()
	if err != nil {
		return ImageHeader{}, nil, false, Region{}, fmt.Errorf("image width: %w", err)
	}
	height, err := c.U16()
	if err != nil {
		return ImageHeader{}, nil, false, Region{}, fmt.Errorf("image height: %w", err)
	}
	compressedFlag, err := c.U8()
	if err != nil {
		return ImageHeader{}, nil, false, Region{}, fmt.Errorf("image compressed flag: %w", err)
	}
	hdr = ImageHeader{Unknown: unknown, Width: width, Height: height, Compressed: compressedFlag != 0}

	rowBytes := paddedRowBytes(int(width))
	planeLen := rowBytes * int(height)

	if hdr.Compressed {
		plane, err = readCompressedPlane(c, planeLen)
		pooled = err == nil
	} else {
		plane, err = readDataBlock(c)
	}
	if err != nil {
		return ImageHeader{}, nil, false, Region{}, fmt.Errorf("image pixel plane: %w", err)
	}
	if len(plane) != planeLen {
		return ImageHeader{}, nil, false, Region{}, fmt.Errorf("%w: pixel plane is %d bytes, expected %d",
			ErrMalformedStructure, len(plane), planeLen)
	}

	region, err = readRegion(c)
	if err != nil {
		return ImageHeader{}, nil, false, Region{}, fmt.Errorf("image region: %w", err)
	}

	return hdr, plane, pooled, region, nil
}

// paddedRowBytes returns width rounded up to the next multiple of 4, the
// Windows DIB row-alignment convention the pixel plane is stored under.
func paddedRowBytes(width int) int {
	return (width + 3) &^ 3
}

func readRegion(c *binreader.Cursor) (Region, error) {
	csize, err := c.U32()
	if err != nil {
		return Region{}, fmt.Errorf("region compressed size: %w", err)
	}
	usize, err := c.U32()
	if err != nil {
		return Region{}, fmt.Errorf("region uncompressed size: %w", err)
	}
	b, err := c.Bytes(int(csize))
	if err != nil {
		return Region{}, fmt.Errorf("region payload: %w", err)
	}
	return Region{CompressedSize: csize, UncompressedSize: usize, Bytes: b}, nil
}
