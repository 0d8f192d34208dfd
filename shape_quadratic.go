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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf/graphics"
)

// Stroke geometry for quadratic curves.
const (
	strokeCap  = graphics.LineCapRound
	strokeJoin = graphics.LineJoinRound

	minStrokeWidth = 0.5
	maxStrokeWidth = 16
)

// Quadratic is a stroked quadratic Bézier curve from (X1, Y1) to (X3, Y3)
// with control point (X2, Y2).
type Quadratic struct {
	X1, Y1 float64
	X2, Y2 float64
	X3, Y3 float64
	Width  float64

	canvas
}

func newQuadratic(c canvas, rng *rand.Rand) *Quadratic {
	x1 := rng.Float64() * float64(c.w)
	y1 := rng.Float64() * float64(c.h)
	x2 := x1 + rng.Float64()*40 - 20
	y2 := y1 + rng.Float64()*40 - 20
	x3 := x2 + rng.Float64()*40 - 20
	y3 := y2 + rng.Float64()*40 - 20
	q := &Quadratic{
		X1: x1, Y1: y1,
		X2: x2, Y2: y2,
		X3: x3, Y3: y3,
		Width:  minStrokeWidth,
		canvas: c,
	}
	if !q.Valid() {
		q.Mutate(rng)
	}
	return q
}

func (q *Quadratic) Kind() ShapeKind { return KindQuadratic }

// Valid reports whether the end points are further apart than each of
// them is from the control point.  This excludes curves which double
// back on themselves.
func (q *Quadratic) Valid() bool {
	d12 := math.Hypot(q.X2-q.X1, q.Y2-q.Y1)
	d23 := math.Hypot(q.X3-q.X2, q.Y3-q.Y2)
	d13 := math.Hypot(q.X3-q.X1, q.Y3-q.Y1)
	return d13 > d12 && d13 > d23 &&
		q.Width >= minStrokeWidth && q.Width <= maxStrokeWidth
}

// Mutate moves one of the three points or changes the line width.
func (q *Quadratic) Mutate(rng *rand.Rand) {
	w, h := float64(q.w), float64(q.h)
	for {
		switch rng.IntN(4) {
		case 0:
			q.X1 = jitter(rng, q.X1, -margin, w-1+margin)
			q.Y1 = jitter(rng, q.Y1, -margin, h-1+margin)
		case 1:
			q.X2 = jitter(rng, q.X2, -margin, w-1+margin)
			q.Y2 = jitter(rng, q.Y2, -margin, h-1+margin)
		case 2:
			q.X3 = jitter(rng, q.X3, -margin, w-1+margin)
			q.Y3 = jitter(rng, q.Y3, -margin, h-1+margin)
		case 3:
			q.Width = max(minStrokeWidth, min(maxStrokeWidth, q.Width+gauss(rng, 1)))
		}
		if q.Valid() {
			return
		}
	}
}

func (q *Quadratic) Copy() Shape {
	c := *q
	return &c
}

func (q *Quadratic) path() *path.Data {
	return (&path.Data{}).
		MoveTo(vec2(q.X1, q.Y1)).
		QuadTo(vec2(q.X2, q.Y2), vec2(q.X3, q.Y3))
}

// Rasterize always uses the anti-aliased stroke outline, since hard
// spans lose thin strokes entirely.
func (q *Quadratic) Rasterize(r *Rasteriser) []Scanline {
	return rasterizeOutline(r, q.Outline(), matrix.Identity)
}

// Outline returns the open curve with a non-zero StrokeWidth.  The curve
// is stroked with round caps and joins.
func (q *Quadratic) Outline() Outline {
	return Outline{Path: q.path(), CTM: matrix.Identity, StrokeWidth: q.Width}
}

// DrawSVG writes a <path> element.  The caller supplies the stroke
// attributes.
func (q *Quadratic) DrawSVG(s *svg.SVG, attrs ...string) {
	s.Qbez(q.X1, q.Y1, q.X2, q.Y2, q.X3, q.Y3, attrs...)
}
