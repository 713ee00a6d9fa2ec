package animation

import (
	"fmt"
	"image"
	"image/color"
)

// ImageSource resolves an archive image index to its palette-expanded,
// straight-alpha RGBA form at the image's own native width/height. It
// decouples this package from the archive's lazy image store (internal to
// the root package); the dependency is per-archive state, so it is passed
// in as an interface rather than wired through a global function variable.
type ImageSource interface {
	Image(index int) (*image.NRGBA, error)
}

// Compositor blits a Frame's ordered image layers and lip-sync overlays
// onto a transparent canvas the size of the character.
type Compositor struct {
	Width  int
	Height int
}

// NewCompositor creates a Compositor for a character canvas of the given
// dimensions.
func NewCompositor(width, height int) *Compositor {
	return &Compositor{Width: width, Height: height}
}

// Draw composites frame onto a fresh transparent canvas: every FrameImage
// first (bottom to top, in declared order), then every Overlay. Source
// alpha-0 pixels never write, except under Overlay.Replace, which writes
// destination pixels unconditionally (including alpha-0, punching a hole).
func (c *Compositor) Draw(frame *Frame, images ImageSource) (*image.NRGBA, error) {
	canvas := image.NewNRGBA(image.Rect(0, 0, c.Width, c.Height))

	for _, fi := range frame.Images {
		src, err := images.Image(int(fi.ImageIndex))
		if err != nil {
			return nil, fmt.Errorf("layer image %d: %w", fi.ImageIndex, err)
		}
		blit(canvas, src, int(fi.DX), int(fi.DY), false)
	}
	for _, ov := range frame.Overlays {
		src, err := images.Image(int(ov.ImageIndex))
		if err != nil {
			return nil, fmt.Errorf("overlay image %d: %w", ov.ImageIndex, err)
		}
		blit(canvas, src, int(ov.DX), int(ov.DY), ov.Replace)
	}
	return canvas, nil
}

// blit draws src onto canvas at offset (dx, dy), clipped to canvas bounds.
// When replace is true, destination pixels within the source rectangle are
// overwritten unconditionally, including with source alpha-0. Otherwise
// source alpha-0 pixels are skipped and partial alpha is straight-over
// blended onto whatever is already on the canvas.
func blit(canvas, src *image.NRGBA, dx, dy int, replace bool) {
	srcBounds := src.Bounds()
	rect := image.Rect(dx, dy, dx+srcBounds.Dx(), dy+srcBounds.Dy()).Intersect(canvas.Bounds())
	if rect.Empty() {
		return
	}

	for y := rect.Min.Y; y < rect.Max.Y; y++ {
		sy := y - dy
		for x := rect.Min.X; x < rect.Max.X; x++ {
			sx := x - dx
			srcPx := src.NRGBAAt(sx, sy)
			if replace {
				canvas.SetNRGBA(x, y, srcPx)
				continue
			}
			if srcPx.A == 0 {
				continue
			}
			dstPx := canvas.NRGBAAt(x, y)
			canvas.SetNRGBA(x, y, alphaBlendNRGBA(srcPx, dstPx))
		}
	}
}

// alphaBlendNRGBA performs "src over dst" compositing in non-premultiplied
// RGBA: dstFactorA = dstA*(256-srcA)>>8, blendA = srcA+dstFactorA, each
// channel = (srcC*srcA + dstC*dstFactorA) * scale >> 24 where
// scale = (1<<24)/blendA.
func alphaBlendNRGBA(src, dst color.NRGBA) color.NRGBA {
	if src.A == 0 {
		return dst
	}
	if src.A == 255 || dst.A == 0 {
		return src
	}

	srcA := uint32(src.A)
	dstA := uint32(dst.A)

	dstFactorA := (dstA * (256 - srcA)) >> 8
	blendA := srcA + dstFactorA
	if blendA == 0 {
		return color.NRGBA{}
	}
	scale := (1 << 24) / blendA

	blend := func(sc, dc uint8) uint8 {
		v := (uint32(sc)*srcA + uint32(dc)*dstFactorA) * scale >> 24
		if v > 255 {
			v = 255
		}
		return uint8(v)
	}

	return color.NRGBA{
		R: blend(src.R, dst.R),
		G: blend(src.G, dst.G),
		B: blend(src.B, dst.B),
		A: uint8(blendA),
	}
}
