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

// minTriangleAngle is the smallest interior angle, in degrees, of a
// valid triangle.
const minTriangleAngle = 15

// Triangle is a triangle with integer vertices.  Vertices may lie
// slightly outside the canvas.
type Triangle struct {
	X1, Y1 int
	X2, Y2 int
	X3, Y3 int

	canvas
}

func newTriangle(c canvas, rng *rand.Rand) *Triangle {
	x1 := rng.IntN(c.w)
	y1 := rng.IntN(c.h)
	t := &Triangle{
		X1: x1, Y1: y1,
		X2: x1 + rng.IntN(31) - 15, Y2: y1 + rng.IntN(31) - 15,
		X3: x1 + rng.IntN(31) - 15, Y3: y1 + rng.IntN(31) - 15,
		canvas: c,
	}
	if !t.Valid() {
		t.Mutate(rng)
	}
	return t
}

func (t *Triangle) Kind() ShapeKind { return KindTriangle }

// Valid reports whether all interior angles exceed 15 degrees.
func (t *Triangle) Valid() bool {
	x1, y1 := float64(t.X1), float64(t.Y1)
	x2, y2 := float64(t.X2), float64(t.Y2)
	x3, y3 := float64(t.X3), float64(t.Y3)
	a1 := angleBetween(x2-x1, y2-y1, x3-x1, y3-y1)
	a2 := angleBetween(x1-x2, y1-y2, x3-x2, y3-y2)
	a3 := 180 - a1 - a2
	return a1 > minTriangleAngle && a2 > minTriangleAngle && a3 > minTriangleAngle
}

// Mutate moves one vertex, retrying until all angles are wide enough.
func (t *Triangle) Mutate(rng *rand.Rand) {
	w, h := t.w, t.h
	for {
		switch rng.IntN(3) {
		case 0:
			t.X1 = jitterInt(rng, t.X1, -margin, w-1+margin)
			t.Y1 = jitterInt(rng, t.Y1, -margin, h-1+margin)
		case 1:
			t.X2 = jitterInt(rng, t.X2, -margin, w-1+margin)
			t.Y2 = jitterInt(rng, t.Y2, -margin, h-1+margin)
		case 2:
			t.X3 = jitterInt(rng, t.X3, -margin, w-1+margin)
			t.Y3 = jitterInt(rng, t.Y3, -margin, h-1+margin)
		}
		if t.Valid() {
			return
		}
	}
}

func (t *Triangle) Copy() Shape {
	c := *t
	return &c
}

func (t *Triangle) vertices() (xs, ys []float64) {
	return []float64{float64(t.X1), float64(t.X2), float64(t.X3)},
		[]float64{float64(t.Y1), float64(t.Y2), float64(t.Y3)}
}

// Rasterize returns the pixels whose centres lie inside the triangle.
func (t *Triangle) Rasterize(r *Rasteriser) []Scanline {
	return rasterizePath(r, t.Outline().Path, matrix.Identity)
}

func (t *Triangle) Outline() Outline {
	return Outline{Path: closedPolygon(t.vertices()), CTM: matrix.Identity}
}

// DrawSVG writes a <polygon> element.
func (t *Triangle) DrawSVG(s *svg.SVG, attrs ...string) {
	xs, ys := t.vertices()
	s.Polygon(xs, ys, attrs...)
}
