package glitch

import (
	"image"
	"math/rand"

	"github.com/disintegration/imaging"
)

// Apply corrupts a copy of src by the given amount (0..10) and returns it.
// The transform is the classic two-part glitch: random horizontal bands are
// displaced sideways, then one color channel is offset by a few pixels.
// Seeding with the frame index makes a render reproducible.
func Apply(src image.Image, amount float64, seed int64) *image.NRGBA {
	out := imaging.Clone(src)
	if amount <= 0 {
		return out
	}
	if amount > MaxIntensity {
		amount = MaxIntensity
	}

	rng := rand.New(rand.NewSource(seed))
	w := out.Bounds().Dx()
	h := out.Bounds().Dy()
	if w == 0 || h == 0 {
		return out
	}

	// Each pass shifts a band of rows; more passes and wider shifts as the
	// amount grows. Max displacement is a quarter of the width at amount 10.
	passes := 3 + int(amount*2)
	maxShift := int(float64(w) * amount / MaxIntensity * 0.25)
	if maxShift < 1 {
		maxShift = 1
	}

	for p := 0; p < passes; p++ {
		bandH := 1 + rng.Intn(h/8+1)
		y0 := rng.Intn(h)
		y1 := y0 + bandH
		if y1 > h {
			y1 = h
		}
		shift := rng.Intn(2*maxShift+1) - maxShift
		shiftRows(out, y0, y1, shift)
	}

	// Channel offset: red channel at low amounts, alternating with blue as
	// the rng decides, displaced by up to amount pixels in each axis.
	maxOff := int(amount)
	if maxOff < 1 {
		maxOff = 1
	}
	channel := 0 // R
	if rng.Intn(2) == 1 {
		channel = 2 // B
	}
	dx := rng.Intn(2*maxOff+1) - maxOff
	dy := rng.Intn(2*maxOff+1) - maxOff
	offsetChannel(out, channel, dx, dy)

	return out
}

// shiftRows displaces rows [y0,y1) horizontally by shift pixels, wrapping
// around the image edge.
func shiftRows(img *image.NRGBA, y0, y1, shift int) {
	w := img.Bounds().Dx()
	if w == 0 || shift == 0 {
		return
	}
	shift = ((shift % w) + w) % w
	if shift == 0 {
		return
	}

	rowLen := w * 4
	tmp := make([]byte, rowLen)
	for y := y0; y < y1; y++ {
		row := img.Pix[y*img.Stride : y*img.Stride+rowLen]
		off := shift * 4
		copy(tmp, row[rowLen-off:])
		copy(tmp[off:], row[:rowLen-off])
		copy(row, tmp)
	}
}

// offsetChannel moves a single color channel by (dx,dy), sampling from the
// unshifted pixel and wrapping at the edges.
func offsetChannel(img *image.NRGBA, channel, dx, dy int) {
	if dx == 0 && dy == 0 {
		return
	}
	w := img.Bounds().Dx()
	h := img.Bounds().Dy()

	src := make([]byte, len(img.Pix))
	copy(src, img.Pix)

	for y := 0; y < h; y++ {
		sy := ((y-dy)%h + h) % h
		for x := 0; x < w; x++ {
			sx := ((x-dx)%w + w) % w
			img.Pix[y*img.Stride+x*4+channel] = src[sy*img.Stride+sx*4+channel]
		}
	}
}
