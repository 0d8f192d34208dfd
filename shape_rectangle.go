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
	"math/rand/v2"

	svg "github.com/ajstarks/svgo/float"

	"seehuhn.de/go/geom/matrix"
)

// Rectangle is an axis-aligned rectangle.  Both corners are included in
// the covered area.  The corners may be given in any order.
type Rectangle struct {
	X1, Y1 int
	X2, Y2 int

	canvas
}

func newRectangle(c canvas, rng *rand.Rand) *Rectangle {
	x1 := rng.IntN(c.w)
	y1 := rng.IntN(c.h)
	return &Rectangle{
		X1: x1, Y1: y1,
		X2: clampInt(x1+rng.IntN(32)+1, 0, c.w-1),
		Y2: clampInt(y1+rng.IntN(32)+1, 0, c.h-1),

		canvas: c,
	}
}

func (r *Rectangle) Kind() ShapeKind { return KindRectangle }

// Valid always returns true.
func (r *Rectangle) Valid() bool {
	return true
}

// Mutate moves one corner.  Corners stay on the canvas.
func (r *Rectangle) Mutate(rng *rand.Rand) {
	w, h := r.w, r.h
	switch rng.IntN(2) {
	case 0:
		r.X1 = jitterInt(rng, r.X1, 0, w-1)
		r.Y1 = jitterInt(rng, r.Y1, 0, h-1)
	case 1:
		r.X2 = jitterInt(rng, r.X2, 0, w-1)
		r.Y2 = jitterInt(rng, r.Y2, 0, h-1)
	}
}

func (r *Rectangle) Copy() Shape {
	c := *r
	return &c
}

// bounds returns the corners in normalised order.
func (r *Rectangle) bounds() (x1, y1, x2, y2 int) {
	return min(r.X1, r.X2), min(r.Y1, r.Y2), max(r.X1, r.X2), max(r.Y1, r.Y2)
}

// Rasterize emits one span per row directly, without building a path.
func (r *Rectangle) Rasterize(rast *Rasteriser) []Scanline {
	x1, y1, x2, y2 := r.bounds()
	lines := rast.lines[:0]
	for y := y1; y <= y2; y++ {
		lines = append(lines, Scanline{Y: y, X1: x1, X2: x2, Alpha: maxAlpha})
	}
	w, h := rast.canvas()
	rast.lines = cropScanlines(lines, w, h)
	return rast.lines
}

// Outline encloses whole pixels, so the right and bottom edges lie at
// X2+1 and Y2+1.
func (r *Rectangle) Outline() Outline {
	x1, y1, x2, y2 := r.bounds()
	xs := []float64{float64(x1), float64(x2 + 1), float64(x2 + 1), float64(x1)}
	ys := []float64{float64(y1), float64(y1), float64(y2 + 1), float64(y2 + 1)}
	return Outline{Path: closedPolygon(xs, ys), CTM: matrix.Identity}
}

func (r *Rectangle) DrawSVG(s *svg.SVG, attrs ...string) {
	x1, y1, x2, y2 := r.bounds()
	s.Rect(float64(x1), float64(y1), float64(x2-x1+1), float64(y2-y1+1), attrs...)
}

// maxAspect is the largest side ratio of a valid RotatedRectangle.
const maxAspect = 5

// RotatedRectangle is a rectangle of size Sx×Sy, centred at (X, Y) and
// rotated by Angle degrees.
type RotatedRectangle struct {
	X, Y   int
	Sx, Sy int
	Angle  int

	canvas
}

func newRotatedRectangle(c canvas, rng *rand.Rand) *RotatedRectangle {
	r := &RotatedRectangle{
		X:      rng.IntN(c.w),
		Y:      rng.IntN(c.h),
		Sx:     rng.IntN(32) + 1,
		Sy:     rng.IntN(32) + 1,
		Angle:  rng.IntN(360),
		canvas: c,
	}
	if !r.Valid() {
		r.Mutate(rng)
	}
	return r
}

func (r *RotatedRectangle) Kind() ShapeKind { return KindRotatedRectangle }

// Valid reports whether both sides are at least one pixel long and the
// rectangle is not too elongated.
func (r *RotatedRectangle) Valid() bool {
	a, b := min(r.Sx, r.Sy), max(r.Sx, r.Sy)
	return a >= 1 && b <= maxAspect*a
}

// Mutate moves the centre, resizes or rotates the rectangle, retrying
// until the aspect ratio is acceptable.
func (r *RotatedRectangle) Mutate(rng *rand.Rand) {
	w, h := r.w, r.h
	for {
		switch rng.IntN(3) {
		case 0:
			r.X = jitterInt(rng, r.X, 0, w-1)
			r.Y = jitterInt(rng, r.Y, 0, h-1)
		case 1:
			r.Sx = jitterInt(rng, r.Sx, 1, max(w-1, 1))
			r.Sy = jitterInt(rng, r.Sy, 1, max(h-1, 1))
		case 2:
			r.Angle += int(gauss(rng, angleStep))
		}
		if r.Valid() {
			return
		}
	}
}

func (r *RotatedRectangle) Copy() Shape {
	c := *r
	return &c
}

func (r *RotatedRectangle) ctm() matrix.Matrix {
	return matrix.RotateDeg(float64(r.Angle)).Translate(float64(r.X), float64(r.Y))
}

func (r *RotatedRectangle) Rasterize(rast *Rasteriser) []Scanline {
	o := r.Outline()
	return rasterizePath(rast, o.Path, o.CTM)
}

// Outline returns a rectangle centred at the origin together with the
// rotation and translation which place it on the canvas.
func (r *RotatedRectangle) Outline() Outline {
	sx, sy := float64(r.Sx)/2, float64(r.Sy)/2
	xs := []float64{-sx, sx, sx, -sx}
	ys := []float64{-sy, -sy, sy, sy}
	return Outline{Path: closedPolygon(xs, ys), CTM: r.ctm()}
}

// DrawSVG writes a unit square inside a group which scales, rotates
// and moves it.
func (r *RotatedRectangle) DrawSVG(s *svg.SVG, attrs ...string) {
	s.Gtransform(placement(float64(r.X), float64(r.Y), float64(r.Angle), float64(r.Sx), float64(r.Sy)))
	s.Rect(-0.5, -0.5, 1, 1, attrs...)
	s.Gend()
}

