// seehuhn.de/go/primitive - approximate images with geometric shapes
// Copyright (C) 2026  Jochen Voss <voss@seehuhn.de>
//
// This program is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// This program is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with this program.  If not, see <https://www.gnu.org/licenses/>.

package primitive

import (
	"image"
	"image/color"
	"math"

	"golang.org/x/image/draw"
)

// drawLines composites the colour c over the pixels covered by lines,
// using the scanline weight as an additional coverage factor.
func drawLines(im *image.RGBA, c color.Color, lines []Scanline) {
	const m = 0xffff
	sr, sg, sb, sa := c.RGBA()
	for _, l := range lines {
		ma := l.Alpha
		a := (m - sa*ma/m) * 0x101
		i := im.PixOffset(l.X1, l.Y)
		for x := l.X1; x <= l.X2; x++ {
			dr := uint32(im.Pix[i+0])
			dg := uint32(im.Pix[i+1])
			db := uint32(im.Pix[i+2])
			da := uint32(im.Pix[i+3])
			im.Pix[i+0] = uint8((dr*a + sr*ma) / m >> 8)
			im.Pix[i+1] = uint8((dg*a + sg*ma) / m >> 8)
			im.Pix[i+2] = uint8((db*a + sb*ma) / m >> 8)
			im.Pix[i+3] = uint8((da*a + sa*ma) / m >> 8)
			i += 4
		}
	}
}

// copyLines copies the pixels covered by lines from src to dst.
func copyLines(dst, src *image.RGBA, lines []Scanline) {
	for _, l := range lines {
		a := dst.PixOffset(l.X1, l.Y)
		b := a + (l.X2-l.X1+1)*4
		copy(dst.Pix[a:b], src.Pix[a:b])
	}
}

// computeColor returns the colour which, drawn with the given opacity
// over current, brings the pixels covered by lines closest to target.
// If lines is empty, the result is transparent black.
func computeColor(target, current *image.RGBA, lines []Scanline, alpha int) color.NRGBA {
	var rsum, gsum, bsum, count int64
	a := 0x101 * 255 / alpha
	for _, l := range lines {
		i := target.PixOffset(l.X1, l.Y)
		for x := l.X1; x <= l.X2; x++ {
			tr := int(target.Pix[i+0])
			tg := int(target.Pix[i+1])
			tb := int(target.Pix[i+2])
			cr := int(current.Pix[i+0])
			cg := int(current.Pix[i+1])
			cb := int(current.Pix[i+2])
			i += 4
			rsum += int64((tr-cr)*a + cr*0x101)
			gsum += int64((tg-cg)*a + cg*0x101)
			bsum += int64((tb-cb)*a + cb*0x101)
			count++
		}
	}
	if count == 0 {
		return color.NRGBA{}
	}
	r := clampInt(int(rsum/count)>>8, 0, 255)
	g := clampInt(int(gsum/count)>>8, 0, 255)
	b := clampInt(int(bsum/count)>>8, 0, 255)
	return color.NRGBA{uint8(r), uint8(g), uint8(b), uint8(alpha)}
}

// differenceFull returns the root mean square difference between a and
// b over all four channels, normalised to the range [0, 1].
func differenceFull(a, b *image.RGBA) float64 {
	size := a.Bounds().Size()
	w, h := size.X, size.Y
	var total uint64
	for y := range h {
		i := a.PixOffset(0, y)
		for range w {
			dr := int(a.Pix[i+0]) - int(b.Pix[i+0])
			dg := int(a.Pix[i+1]) - int(b.Pix[i+1])
			db := int(a.Pix[i+2]) - int(b.Pix[i+2])
			da := int(a.Pix[i+3]) - int(b.Pix[i+3])
			total += uint64(dr*dr + dg*dg + db*db + da*da)
			i += 4
		}
	}
	return math.Sqrt(float64(total)/float64(w*h*4)) / 255
}

// differencePartial updates score, the difference between target and
// before, to the difference between target and after.  The two images
// must only differ in the pixels covered by lines.
func differencePartial(target, before, after *image.RGBA, score float64, lines []Scanline) float64 {
	size := target.Bounds().Size()
	w, h := size.X, size.Y
	n := float64(w * h * 4)
	s := score * 255
	total := int64(math.Round(s * s * n))
	for _, l := range lines {
		i := target.PixOffset(l.X1, l.Y)
		for x := l.X1; x <= l.X2; x++ {
			tr := int(target.Pix[i+0])
			tg := int(target.Pix[i+1])
			tb := int(target.Pix[i+2])
			ta := int(target.Pix[i+3])
			br := int(before.Pix[i+0])
			bg := int(before.Pix[i+1])
			bb := int(before.Pix[i+2])
			ba := int(before.Pix[i+3])
			ar := int(after.Pix[i+0])
			ag := int(after.Pix[i+1])
			ab := int(after.Pix[i+2])
			aa := int(after.Pix[i+3])
			i += 4
			dr1, dg1, db1, da1 := tr-br, tg-bg, tb-bb, ta-ba
			dr2, dg2, db2, da2 := tr-ar, tg-ag, tb-ab, ta-aa
			total -= int64(dr1*dr1 + dg1*dg1 + db1*db1 + da1*da1)
			total += int64(dr2*dr2 + dg2*dg2 + db2*db2 + da2*da2)
		}
	}
	total = max(total, 0)
	return math.Sqrt(float64(total)/n) / 255
}

// averageImageColor returns the mean colour of all pixels in im.
func averageImageColor(im image.Image) color.NRGBA {
	rgba := imageToRGBA(im)
	size := rgba.Bounds().Size()
	w, h := size.X, size.Y
	if w == 0 || h == 0 {
		return color.NRGBA{A: 255}
	}
	var r, g, b int
	for y := range h {
		i := rgba.PixOffset(0, y)
		for range w {
			r += int(rgba.Pix[i+0])
			g += int(rgba.Pix[i+1])
			b += int(rgba.Pix[i+2])
			i += 4
		}
	}
	r /= w * h
	g /= w * h
	b /= w * h
	return color.NRGBA{uint8(r), uint8(g), uint8(b), 255}
}

// imageToRGBA returns an RGBA copy of src with the origin moved to (0, 0).
func imageToRGBA(src image.Image) *image.RGBA {
	bounds := src.Bounds()
	dst := image.NewRGBA(image.Rect(0, 0, bounds.Dx(), bounds.Dy()))
	draw.Draw(dst, dst.Bounds(), src, bounds.Min, draw.Src)
	return dst
}

// copyRGBA returns a deep copy of src.
func copyRGBA(src *image.RGBA) *image.RGBA {
	dst := image.NewRGBA(src.Bounds())
	copy(dst.Pix, src.Pix)
	return dst
}

// uniformRGBA returns a new image of the given size, filled with c.
func uniformRGBA(r image.Rectangle, c color.Color) *image.RGBA {
	im := image.NewRGBA(r)
	draw.Draw(im, im.Bounds(), &image.Uniform{C: c}, image.Point{}, draw.Src)
	return im
}

func clampInt(x, lo, hi int) int {
	return max(lo, min(hi, x))
}
