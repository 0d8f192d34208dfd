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
	"slices"

	svg "github.com/ajstarks/svgo/float"

	"seehuhn.de/go/geom/matrix"
)

// Polygon is a closed polygon with freely placed vertices.  If Convex is
// set, only convex vertex arrangements are valid.
type Polygon struct {
	X, Y   []float64
	Convex bool

	canvas
}

func newPolygon(c canvas, rng *rand.Rand, order int, convex bool) *Polygon {
	p := &Polygon{
		X:      make([]float64, order),
		Y:      make([]float64, order),
		Convex: convex,
		canvas: c,
	}
	p.X[0] = rng.Float64() * float64(c.w)
	p.Y[0] = rng.Float64() * float64(c.h)
	for i := 1; i < order; i++ {
		p.X[i] = p.X[0] + rng.Float64()*40 - 20
		p.Y[i] = p.Y[0] + rng.Float64()*40 - 20
	}
	if !p.Valid() {
		p.Mutate(rng)
	}
	return p
}

// Kind returns KindPolygon.
func (p *Polygon) Kind() ShapeKind { return KindPolygon }

// Valid reports whether the polygon has at least three vertices and, for
// convex polygons, whether all corners turn in the same direction.
func (p *Polygon) Valid() bool {
	n := len(p.X)
	if n < 3 {
		return false
	}
	if !p.Convex {
		return true
	}
	var positive bool
	for a := range n {
		i, j, k := a, (a+1)%n, (a+2)%n
		c := (p.X[j]-p.X[i])*(p.Y[k]-p.Y[j]) - (p.Y[j]-p.Y[i])*(p.X[k]-p.X[j])
		if a == 0 {
			positive = c > 0
		} else if (c > 0) != positive {
			return false
		}
	}
	return true
}

// Mutate moves one vertex, or with probability 1/4 swaps two vertices.
// Vertices may leave the canvas by a small margin.
func (p *Polygon) Mutate(rng *rand.Rand) {
	w, h := float64(p.w), float64(p.h)
	n := len(p.X)
	for {
		if rng.Float64() < 0.25 {
			i := rng.IntN(n)
			j := rng.IntN(n)
			p.X[i], p.Y[i], p.X[j], p.Y[j] = p.X[j], p.Y[j], p.X[i], p.Y[i]
		} else {
			i := rng.IntN(n)
			p.X[i] = jitter(rng, p.X[i], -margin, w-1+margin)
			p.Y[i] = jitter(rng, p.Y[i], -margin, h-1+margin)
		}
		if p.Valid() {
			return
		}
	}
}

// Copy returns a deep copy, the vertex slices are not shared.
func (p *Polygon) Copy() Shape {
	c := *p
	c.X = slices.Clone(p.X)
	c.Y = slices.Clone(p.Y)
	return &c
}

// Rasterize fills the polygon with the even-odd rule, so a
// self-intersecting polygon leaves holes.
func (p *Polygon) Rasterize(r *Rasteriser) []Scanline {
	return rasterizePath(r, closedPolygon(p.X, p.Y), matrix.Identity)
}

func (p *Polygon) Outline() Outline {
	return Outline{Path: closedPolygon(p.X, p.Y), CTM: matrix.Identity}
}

// DrawSVG writes a <polygon> element.
func (p *Polygon) DrawSVG(s *svg.SVG, attrs ...string) {
	s.Polygon(p.X, p.Y, attrs...)
}

// RegularPolygon is a regular polygon with the given number of sides,
// inscribed in a circle of the given radius around (X, Y).  Angle is the
// direction of the first vertex, in degrees counter-clockwise from the
// positive x-axis.
type RegularPolygon struct {
	X, Y   float64
	Radius float64
	Angle  float64
	Sides  int

	canvas
}

func newRegularPolygon(c canvas, rng *rand.Rand, sides int) *RegularPolygon {
	return &RegularPolygon{
		X:      float64(rng.IntN(c.w)),
		Y:      float64(rng.IntN(c.h)),
		Radius: rng.Float64()*32 + 1,
		Angle:  rng.Float64() * 360,
		Sides:  sides,
		canvas: c,
	}
}

// Kind returns the kind matching the number of sides.
func (p *RegularPolygon) Kind() ShapeKind {
	k, _ := regularPolygonKind(p.Sides)
	return k
}

func regularPolygonKind(sides int) (ShapeKind, bool) {
	switch sides {
	case 4:
		return KindSquare, true
	case 5:
		return KindPentagon, true
	case 6:
		return KindHexagon, true
	case 8:
		return KindOctagon, true
	}
	return KindAny, false
}

// Valid reports whether the number of sides is one of 4, 5, 6 or 8 and
// the radius is at least one pixel.
func (p *RegularPolygon) Valid() bool {
	_, ok := regularPolygonKind(p.Sides)
	return ok && p.Radius >= 1
}

// Mutate moves the centre, changes the radius or rotates the polygon.
// The number of sides never changes.
func (p *RegularPolygon) Mutate(rng *rand.Rand) {
	mutateRadial(rng, p.canvas, &p.X, &p.Y, &p.Radius, &p.Angle)
}

func (p *RegularPolygon) Copy() Shape {
	c := *p
	return &c
}

func (p *RegularPolygon) Rasterize(r *Rasteriser) []Scanline {
	return rasterizePath(r, closedPolygon(p.vertices()), matrix.Identity)
}

func (p *RegularPolygon) vertices() (xs, ys []float64) {
	return circleVertices(p.Sides, p.Radius, p.Angle, p.X, p.Y)
}

func (p *RegularPolygon) Outline() Outline {
	return Outline{Path: closedPolygon(p.vertices()), CTM: matrix.Identity}
}

// DrawSVG writes the polygon as a <polygon> element.
func (p *RegularPolygon) DrawSVG(s *svg.SVG, attrs ...string) {
	xs, ys := p.vertices()
	s.Polygon(xs, ys, attrs...)
}

// Star is a regular star with the given number of points.  The outer
// vertices lie on a circle of the given radius around (X, Y), the inner
// ones on a smaller circle.
type Star struct {
	X, Y   float64
	Radius float64
	Angle  float64
	Points int

	canvas
}

func newStar(c canvas, rng *rand.Rand, points int) *Star {
	return &Star{
		X:      float64(rng.IntN(c.w)),
		Y:      float64(rng.IntN(c.h)),
		Radius: rng.Float64()*32 + 1,
		Angle:  rng.Float64() * 360,
		Points: points,
		canvas: c,
	}
}

// Kind returns the kind matching the number of points.
func (p *Star) Kind() ShapeKind {
	k, _ := starKind(p.Points)
	return k
}

func starKind(points int) (ShapeKind, bool) {
	switch points {
	case 4:
		return KindFourPointedStar, true
	case 5:
		return KindPentagram, true
	case 6:
		return KindHexagram, true
	}
	return KindAny, false
}

// Valid reports whether the star has 4 to 6 points and an outer radius
// of at least one pixel.
func (p *Star) Valid() bool {
	_, ok := starKind(p.Points)
	return ok && p.Radius >= 1
}

// Mutate moves the centre, changes the radius or rotates the star.
func (p *Star) Mutate(rng *rand.Rand) {
	mutateRadial(rng, p.canvas, &p.X, &p.Y, &p.Radius, &p.Angle)
}

func (p *Star) Copy() Shape {
	c := *p
	return &c
}

// innerRatio returns the ratio between the outer and the inner radius.
func (p *Star) innerRatio() float64 {
	if p.Points == 6 {
		return math.Sqrt(3)
	}
	return math.Phi * math.Phi
}

// vertices returns the outer and inner vertices in alternating order.
func (p *Star) vertices() (xs, ys []float64) {
	ox, oy := circleVertices(p.Points, p.Radius, p.Angle, p.X, p.Y)
	ix, iy := circleVertices(p.Points, p.Radius/p.innerRatio(), p.Angle+180/float64(p.Points), p.X, p.Y)
	for i := range ox {
		xs = append(xs, ox[i], ix[i])
		ys = append(ys, oy[i], iy[i])
	}
	return xs, ys
}

// Rasterize fills the star outline.  The outline does not cross itself,
// so the centre is covered.
func (p *Star) Rasterize(r *Rasteriser) []Scanline {
	return rasterizePath(r, closedPolygon(p.vertices()), matrix.Identity)
}

func (p *Star) Outline() Outline {
	return Outline{Path: closedPolygon(p.vertices()), CTM: matrix.Identity}
}

func (p *Star) DrawSVG(s *svg.SVG, attrs ...string) {
	xs, ys := p.vertices()
	s.Polygon(xs, ys, attrs...)
}

// mutateRadial perturbs the centre, the radius or the angle of a shape
// which is defined by its circumscribed circle.
func mutateRadial(rng *rand.Rand, c canvas, x, y, radius, angle *float64) {
	w, h := float64(c.w), float64(c.h)
	switch rng.IntN(3) {
	case 0:
		*x = jitter(rng, *x, 0, w-1)
		*y = jitter(rng, *y, 0, h-1)
	case 1:
		*radius = jitter(rng, *radius, 1, max(min(w, h)-1, 1))
	case 2:
		*angle += gauss(rng, angleStep)
	}
}

// circleVertices returns n points evenly spaced on a circle, starting at
// the given angle and proceeding counter-clockwise on the screen.
func circleVertices(n int, radius, angle, cx, cy float64) (xs, ys []float64) {
	xs = make([]float64, n)
	ys = make([]float64, n)
	step := 360 / float64(n)
	for i := range n {
		sin, cos := math.Sincos((angle + float64(i)*step) * math.Pi / 180)
		xs[i] = cx + cos*radius
		ys[i] = cy - sin*radius
	}
	return xs, ys
}
