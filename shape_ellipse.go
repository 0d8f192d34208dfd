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
	"math"
	"math/rand/v2"

	svg "github.com/ajstarks/svgo/float"

	"seehuhn.de/go/geom/matrix"
)

// Ellipse is an axis-aligned ellipse with integer centre and radii.
// If Circle is set, the two radii are kept equal.
type Ellipse struct {
	X, Y   int
	Rx, Ry int
	Circle bool

	canvas
}

func newEllipse(c canvas, rng *rand.Rand, circle bool) *Ellipse {
	e := &Ellipse{
		X:      rng.IntN(c.w),
		Y:      rng.IntN(c.h),
		Rx:     rng.IntN(32) + 1,
		Ry:     rng.IntN(32) + 1,
		Circle: circle,
		canvas: c,
	}
	if circle {
		e.Ry = e.Rx
	}
	return e
}

// Kind returns KindCircle if Circle is set, and KindEllipse otherwise.
func (e *Ellipse) Kind() ShapeKind {
	if e.Circle {
		return KindCircle
	}
	return KindEllipse
}

func (e *Ellipse) Valid() bool {
	if e.Circle && e.Rx != e.Ry {
		return false
	}
	return e.Rx >= 1 && e.Ry >= 1
}

// Mutate moves the centre or changes one radius.  For circles both
// radii change together.
func (e *Ellipse) Mutate(rng *rand.Rand) {
	w, h := e.w, e.h
	switch rng.IntN(3) {
	case 0:
		e.X = jitterInt(rng, e.X, 0, w-1)
		e.Y = jitterInt(rng, e.Y, 0, h-1)
	case 1:
		e.Rx = jitterInt(rng, e.Rx, 1, max(w-1, 1))
		if e.Circle {
			e.Ry = e.Rx
		}
	case 2:
		e.Ry = jitterInt(rng, e.Ry, 1, max(h-1, 1))
		if e.Circle {
			e.Rx = e.Ry
		}
	}
}

func (e *Ellipse) Copy() Shape {
	c := *e
	return &c
}

// Rasterize uses the ellipse equation to find the span of each row.
func (e *Ellipse) Rasterize(r *Rasteriser) []Scanline {
	w, h := r.canvas()
	aspect := float64(e.Rx) / float64(e.Ry)
	lines := r.lines[:0]
	for dy := range e.Ry {
		y1 := e.Y - dy
		y2 := e.Y + dy
		if (y1 < 0 || y1 >= h) && (y2 < 0 || y2 >= h) {
			continue
		}
		s := int(math.Sqrt(float64(e.Ry*e.Ry-dy*dy)) * aspect)
		x1 := max(e.X-s, 0)
		x2 := min(e.X+s, w-1)
		if x1 > x2 {
			continue
		}
		if y1 >= 0 && y1 < h {
			lines = append(lines, Scanline{Y: y1, X1: x1, X2: x2, Alpha: maxAlpha})
		}
		if y2 >= 0 && y2 < h && dy > 0 {
			lines = append(lines, Scanline{Y: y2, X1: x1, X2: x2, Alpha: maxAlpha})
		}
	}
	r.lines = lines
	return lines
}

// Outline approximates the ellipse by four cubic Bézier arcs.
func (e *Ellipse) Outline() Outline {
	return Outline{
		Path: ellipsePath(float64(e.Rx), float64(e.Ry)),
		CTM:  matrix.Identity.Translate(float64(e.X), float64(e.Y)),
	}
}

// DrawSVG writes a <circle> or an <ellipse> element.
func (e *Ellipse) DrawSVG(s *svg.SVG, attrs ...string) {
	if e.Circle {
		s.Circle(float64(e.X), float64(e.Y), float64(e.Rx), attrs...)
		return
	}
	s.Ellipse(float64(e.X), float64(e.Y), float64(e.Rx), float64(e.Ry), attrs...)
}

// RotatedEllipse is an ellipse centred at (X, Y), rotated by Angle
// degrees.
type RotatedEllipse struct {
	X, Y   float64
	Rx, Ry float64
	Angle  float64

	canvas
}

func newRotatedEllipse(c canvas, rng *rand.Rand) *RotatedEllipse {
	return &RotatedEllipse{
		X:      rng.Float64() * float64(c.w),
		Y:      rng.Float64() * float64(c.h),
		Rx:     rng.Float64()*32 + 1,
		Ry:     rng.Float64()*32 + 1,
		Angle:  rng.Float64() * 360,
		canvas: c,
	}
}

func (e *RotatedEllipse) Kind() ShapeKind { return KindRotatedEllipse }

func (e *RotatedEllipse) Valid() bool {
	return e.Rx >= 1 && e.Ry >= 1
}

// Mutate moves the centre, changes both radii or rotates the ellipse.
func (e *RotatedEllipse) Mutate(rng *rand.Rand) {
	w, h := float64(e.w), float64(e.h)
	switch rng.IntN(3) {
	case 0:
		e.X = jitter(rng, e.X, 0, w-1)
		e.Y = jitter(rng, e.Y, 0, h-1)
	case 1:
		e.Rx = jitter(rng, e.Rx, 1, max(w-1, 1))
		e.Ry = jitter(rng, e.Ry, 1, max(h-1, 1))
	case 2:
		e.Angle += gauss(rng, angleStep)
	}
}

func (e *RotatedEllipse) Copy() Shape {
	c := *e
	return &c
}

func (e *RotatedEllipse) Rasterize(r *Rasteriser) []Scanline {
	o := e.Outline()
	return rasterizePath(r, o.Path, o.CTM)
}

func (e *RotatedEllipse) Outline() Outline {
	return Outline{
		Path: ellipsePath(e.Rx, e.Ry),
		CTM:  matrix.RotateDeg(e.Angle).Translate(e.X, e.Y),
	}
}

// DrawSVG writes a unit circle inside a group which scales, rotates and
// moves it.
func (e *RotatedEllipse) DrawSVG(s *svg.SVG, attrs ...string) {
	s.Gtransform(placement(e.X, e.Y, e.Angle, e.Rx, e.Ry))
	s.Ellipse(0, 0, 1, 1, attrs...)
	s.Gend()
}
