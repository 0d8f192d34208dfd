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
	"math/rand/v2"
	"testing"

	"seehuhn.de/go/geom/rect"
)

func canvasRect(w, h int) rect.Rect {
	return rect.Rect{URx: float64(w), URy: float64(h)}
}

// gradientImage returns a w×h test image with smoothly varying colours.
func gradientImage(w, h int) *image.RGBA {
	im := image.NewRGBA(image.Rect(0, 0, w, h))
	for y := range h {
		for x := range w {
			im.SetRGBA(x, y, color.RGBA{
				R: uint8(255 * x / max(w-1, 1)),
				G: uint8(255 * y / max(h-1, 1)),
				B: uint8((x * y) % 256),
				A: 255,
			})
		}
	}
	return im
}

func TestDrawLines(t *testing.T) {
	cases := []struct {
		name  string
		dst   color.RGBA
		src   color.NRGBA
		alpha uint32
		want  color.RGBA
	}{
		{"opaque", color.RGBA{255, 255, 255, 255}, color.NRGBA{255, 0, 0, 255}, maxAlpha, color.RGBA{255, 0, 0, 255}},
		{"no coverage", color.RGBA{10, 20, 30, 255}, color.NRGBA{255, 0, 0, 255}, 0, color.RGBA{10, 20, 30, 255}},
		{"transparent", color.RGBA{10, 20, 30, 255}, color.NRGBA{255, 0, 0, 0}, maxAlpha, color.RGBA{10, 20, 30, 255}},
		{"half", color.RGBA{0, 0, 0, 255}, color.NRGBA{255, 255, 255, 128}, maxAlpha, color.RGBA{128, 128, 128, 255}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			im := uniformRGBA(image.Rect(0, 0, 4, 3), tc.dst)
			lines := []Scanline{{Y: 1, X1: 1, X2: 2, Alpha: tc.alpha}}
			drawLines(im, tc.src, lines)

			for y := range 3 {
				for x := range 4 {
					want := tc.dst
					if y == 1 && x >= 1 && x <= 2 {
						want = tc.want
					}
					if got := im.RGBAAt(x, y); got != want {
						t.Errorf("(%d,%d): got %v, want %v", x, y, got, want)
					}
				}
			}
		})
	}
}

func TestComputeColor(t *testing.T) {
	cases := []struct {
		name    string
		target  color.RGBA
		current color.RGBA
		alpha   int
	}{
		{"opaque", color.RGBA{200, 100, 50, 255}, color.RGBA{0, 0, 0, 255}, 255},
		{"half", color.RGBA{150, 120, 80, 255}, color.RGBA{100, 100, 100, 255}, 128},
		{"faint", color.RGBA{110, 90, 100, 255}, color.RGBA{100, 100, 100, 255}, 32},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			r := image.Rect(0, 0, 8, 8)
			target := uniformRGBA(r, tc.target)
			current := uniformRGBA(r, tc.current)
			lines := []Scanline{{Y: 2, X1: 0, X2: 7, Alpha: maxAlpha}, {Y: 3, X1: 2, X2: 5, Alpha: maxAlpha}}

			c := computeColor(target, current, lines, tc.alpha)
			if int(c.A) != tc.alpha {
				t.Fatalf("alpha %d, want %d", c.A, tc.alpha)
			}

			// painting the colour must reproduce the target closely
			drawLines(current, c, lines)
			got := current.RGBAAt(1, 2)
			for i, pair := range [][2]uint8{{got.R, tc.target.R}, {got.G, tc.target.G}, {got.B, tc.target.B}} {
				if d := int(pair[0]) - int(pair[1]); d < -3 || d > 3 {
					t.Errorf("channel %d: got %d, want %d", i, pair[0], pair[1])
				}
			}
		})
	}
}

func TestComputeColorEmpty(t *testing.T) {
	im := image.NewRGBA(image.Rect(0, 0, 2, 2))
	c := computeColor(im, im, nil, 77)
	if c != (color.NRGBA{}) {
		t.Errorf("got %v", c)
	}
}

func TestDifferenceFull(t *testing.T) {
	r := image.Rect(0, 0, 2, 2)
	white := uniformRGBA(r, color.White)
	black := uniformRGBA(r, color.Black)

	if d := differenceFull(white, white); d != 0 {
		t.Errorf("identical images: %g", d)
	}
	want := math.Sqrt(0.75)
	if d := differenceFull(white, black); math.Abs(d-want) > 1e-12 {
		t.Errorf("white/black: got %g, want %g", d, want)
	}
}

// TestDifferencePartial checks that the incremental score update agrees
// with a full recomputation, over a sequence of painted shapes.
func TestDifferencePartial(t *testing.T) {
	const w, h = 64, 48
	target := gradientImage(w, h)
	current := uniformRGBA(target.Bounds(), color.NRGBA{128, 64, 32, 255})
	before := image.NewRGBA(target.Bounds())
	rast := NewRasteriser(canvasRect(w, h))
	rng := rand.New(rand.NewPCG(1, 2))

	score := differenceFull(target, current)
	for i := range 200 {
		s := NewShape(KindAny, w, h, rng)
		lines := rasterizeShape(rast, s, i%2 == 0)
		c := computeColor(target, current, lines, 1+rng.IntN(255))
		copyLines(before, current, lines)
		drawLines(current, c, lines)
		score = differencePartial(target, before, current, score, lines)

		if full := differenceFull(target, current); math.Abs(score-full) > 1e-9 {
			t.Fatalf("shape %d (%s): partial %.15f, full %.15f", i, s.Kind(), score, full)
		}
	}
}

func TestAverageImageColor(t *testing.T) {
	im := image.NewRGBA(image.Rect(0, 0, 2, 1))
	im.SetRGBA(0, 0, color.RGBA{0, 100, 200, 255})
	im.SetRGBA(1, 0, color.RGBA{100, 200, 0, 255})
	if c := averageImageColor(im); c != (color.NRGBA{50, 150, 100, 255}) {
		t.Errorf("got %v", c)
	}
}

func TestImageToRGBA(t *testing.T) {
	src := image.NewGray(image.Rect(5, 7, 8, 9))
	src.SetGray(5, 7, color.Gray{Y: 42})
	dst := imageToRGBA(src)
	if dst.Bounds() != image.Rect(0, 0, 3, 2) {
		t.Fatalf("bounds %v", dst.Bounds())
	}
	if c := dst.RGBAAt(0, 0); c != (color.RGBA{42, 42, 42, 255}) {
		t.Errorf("origin pixel %v", c)
	}
}
