package acsfile

import (
	"fmt"
	"image"
	"sync"

	"github.com/msagent/acs/internal/binreader"
	"github.com/msagent/acs/internal/pool"
)

// decodedImage caches one image's pixel-index buffer and its RGBA
// expansion. Both fields are write-once: the zero value means "not yet
// decoded", and decodeOnce guards the one materialization.
type decodedImage struct {
	header ImageHeader
	region Region

	decodeOnce sync.Once
	decodeErr  error
	indices    []byte // top-down, unpadded, width*height bytes
	rgba       *image.NRGBA
}

// ImageStore holds every archive image's entry plus a lazy, memoized
// per-image decode. An image's header is parsed together with its pixel
// plane on first access, not when the store is built. It satisfies
// animation.ImageSource so a Compositor can pull RGBA layers directly
// from it.
type ImageStore struct {
	full    *binreader.Cursor
	entries []ImageEntry
	palette Palette
	transparentIndex uint8

	images []*decodedImage
}

// newImageStore builds a store over entries without decoding any pixel
// plane yet.
func newImageStore(full *binreader.Cursor, entries []ImageEntry, palette Palette, transparentIndex uint8) *ImageStore {
	s := &ImageStore{
		full:             full,
		entries:          entries,
		palette:          palette,
		transparentIndex: transparentIndex,
		images:           make([]*decodedImage, len(entries)),
	}
	for i := range s.images {
		s.images[i] = &decodedImage{}
	}
	return s
}

// Len returns the number of images in the archive.
func (s *ImageStore) Len() int { return len(s.entries) }

// Image returns index's straight-alpha RGBA expansion, decoding and
// caching it on first access. Safe for concurrent use across distinct
// indices; concurrent calls for the same index serialize on that image's
// own latch.
func (s *ImageStore) Image(index int) (*image.NRGBA, error) {
	if index < 0 || index >= len(s.images) {
		return nil, fmt.Errorf("%w: image index %d, have %d images", ErrIndexOutOfRange, index, len(s.images))
	}
	img := s.images[index]
	img.decodeOnce.Do(func() {
		img.decodeErr = s.decode(index, img)
	})
	if img.decodeErr != nil {
		return nil, img.decodeErr
	}
	return img.rgba, nil
}

// Region returns index's opaque hit-testing region, decoding the image
// (and thus the region alongside it) on first access.
func (s *ImageStore) Region(index int) (Region, error) {
	if index < 0 || index >= len(s.images) {
		return Region{}, fmt.Errorf("%w: image index %d, have %d images", ErrIndexOutOfRange, index, len(s.images))
	}
	img := s.images[index]
	img.decodeOnce.Do(func() {
		img.decodeErr = s.decode(index, img)
	})
	if img.decodeErr != nil {
		return Region{}, img.decodeErr
	}
	return img.region, nil
}

// ImageHeader returns index's decoded header (including the preserved,
// unspecified-semantics Unknown byte), decoding the image on first access.
func (s *ImageStore) ImageHeader(index int) (ImageHeader, error) {
	if index < 0 || index >= len(s.images) {
		return ImageHeader{}, fmt.Errorf("%w: image index %d, have %d images", ErrIndexOutOfRange, index, len(s.images))
	}
	img := s.images[index]
	img.decodeOnce.Do(func() {
		img.decodeErr = s.decode(index, img)
	})
	if img.decodeErr != nil {
		return ImageHeader{}, img.decodeErr
	}
	return img.header, nil
}

// decode parses an image's data block, flips its row-padded bottom-up
// plane into a top-down unpadded index buffer, and expands it through the
// palette into straight-alpha RGBA.
func (s *ImageStore) decode(index int, img *decodedImage) error {
	entry := s.entries[index]
	sub, err := deref(s.full, entry.Data)
	if err != nil {
		return fmt.Errorf("image[%d]: %w", index, err)
	}
	hdr, plane, wasPooled, region, err := readImagePayload(sub)
	if err != nil {
		return fmt.Errorf("image[%d]: %w", index, err)
	}

	img.header = hdr
	img.region = region
	img.indices = flipBottomUp(plane, int(hdr.Width), int(hdr.Height))
	if wasPooled {
		pool.Put(plane)
	}
	img.rgba = s.toRGBA(img.indices, int(hdr.Width), int(hdr.Height))
	return nil
}

// flipBottomUp strips row padding and reverses row order, turning a
// bottom-up, 4-byte-row-aligned DIB plane into a top-down, tightly packed
// width*height index buffer.
func flipBottomUp(plane []byte, width, height int) []byte {
	rowBytes := paddedRowBytes(width)
	out := make([]byte, width*height)
	for y := 0; y < height; y++ {
		srcRow := plane[(height-1-y)*rowBytes : (height-1-y)*rowBytes+width]
		copy(out[y*width:(y+1)*width], srcRow)
	}
	return out
}

// toRGBA expands a top-down palette-index buffer into straight-alpha
// NRGBA, per §4.D: opaque everywhere except the transparent index.
func (s *ImageStore) toRGBA(indices []byte, width, height int) *image.NRGBA {
	img := image.NewNRGBA(image.Rect(0, 0, width, height))
	for i, idx := range indices {
		px := s.palette.Resolve(idx, s.transparentIndex)
		o := i * 4
		img.Pix[o+0] = px.R
		img.Pix[o+1] = px.G
		img.Pix[o+2] = px.B
		img.Pix[o+3] = px.A
	}
	return img
}
