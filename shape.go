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
	"errors"
	"fmt"
	"math"
	"math/rand/v2"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo/float"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
)

// Shape is a geometric primitive which can be placed on the canvas.
//
// Every Shape is valid after construction and after every call to
// Mutate.  Shapes are not safe for concurrent use, but different shapes
// share no state.
type Shape interface {
	// Kind returns the kind of the shape.
	Kind() ShapeKind

	// Valid reports whether the shape parameters satisfy the constraints
	// of its kind.
	Valid() bool

	// Mutate perturbs one randomly chosen parameter.
	Mutate(rng *rand.Rand)

	// Copy returns a deep copy of the shape.
	Copy() Shape

	// Rasterize returns the pixels covered by the shape, cropped to the
	// clip rectangle of r.  The result is only valid until the next use
	// of r.
	Rasterize(r *Rasteriser) []Scanline

	// Outline returns a vector description of the shape.
	Outline() Outline

	// DrawSVG writes the shape as an SVG element.  The attributes are
	// added to the element verbatim.
	DrawSVG(s *svg.SVG, attrs ...string)
}

// Outline is the vector description of a shape.
type Outline struct {
	// Path is the outline in shape coordinates.
	Path *path.Data

	// CTM maps shape coordinates to canvas pixels.
	CTM matrix.Matrix

	// StrokeWidth is non-zero for shapes which are painted by stroking
	// Path instead of filling it.
	StrokeWidth float64
}

// ShapeKind enumerates the available shapes.
type ShapeKind int

// The numeric values of the shape kinds are used on the command line.
const (
	KindAny ShapeKind = iota
	KindTriangle
	KindRectangle
	KindEllipse
	KindCircle
	KindRotatedRectangle
	KindQuadratic
	KindRotatedEllipse
	KindPolygon
	KindSquare
	KindPentagon
	KindHexagon
	KindOctagon
	KindFourPointedStar
	KindPentagram
	KindHexagram

	numKinds
)

var kindNames = [numKinds]string{
	"any",
	"triangle",
	"rectangle",
	"ellipse",
	"circle",
	"rotatedrectangle",
	"quadratic",
	"rotatedellipse",
	"polygon",
	"square",
	"pentagon",
	"hexagon",
	"octagon",
	"fourpointedstar",
	"pentagram",
	"hexagram",
}

func (k ShapeKind) String() string {
	if k.Valid() {
		return kindNames[k]
	}
	return "ShapeKind(" + strconv.Itoa(int(k)) + ")"
}

// Valid reports whether k is one of the known shape kinds.
func (k ShapeKind) Valid() bool {
	return k >= 0 && k < numKinds
}

// ErrUnknownShape is returned when a shape kind cannot be recognised.
var ErrUnknownShape = errors.New("unknown shape kind")

// ParseShapeKind converts a name like "triangle", or its number, into a
// ShapeKind.
func ParseShapeKind(s string) (ShapeKind, error) {
	s = strings.ToLower(strings.TrimSpace(s))
	if n, err := strconv.Atoi(s); err == nil {
		if k := ShapeKind(n); k.Valid() {
			return k, nil
		}
		return 0, fmt.Errorf("%w: %d", ErrUnknownShape, n)
	}
	s = strings.NewReplacer("-", "", "_", "", " ", "").Replace(s)
	for k, name := range kindNames {
		if name == s {
			return ShapeKind(k), nil
		}
	}
	return 0, fmt.Errorf("%w: %q", ErrUnknownShape, s)
}

// NewShape returns a random, valid shape of the given kind on a w×h
// canvas.  KindAny selects one of the concrete kinds uniformly at
// random.  NewShape panics if kind is not valid.
func NewShape(kind ShapeKind, w, h int, rng *rand.Rand) Shape {
	if kind == KindAny {
		kind = ShapeKind(rng.IntN(int(numKinds)-1) + 1)
	}
	c := canvas{w: w, h: h}
	switch kind {
	case KindTriangle:
		return newTriangle(c, rng)
	case KindRectangle:
		return newRectangle(c, rng)
	case KindEllipse:
		return newEllipse(c, rng, false)
	case KindCircle:
		return newEllipse(c, rng, true)
	case KindRotatedRectangle:
		return newRotatedRectangle(c, rng)
	case KindQuadratic:
		return newQuadratic(c, rng)
	case KindRotatedEllipse:
		return newRotatedEllipse(c, rng)
	case KindPolygon:
		return newPolygon(c, rng, 4, false)
	case KindSquare:
		return newRegularPolygon(c, rng, 4)
	case KindPentagon:
		return newRegularPolygon(c, rng, 5)
	case KindHexagon:
		return newRegularPolygon(c, rng, 6)
	case KindOctagon:
		return newRegularPolygon(c, rng, 8)
	case KindFourPointedStar:
		return newStar(c, rng, 4)
	case KindPentagram:
		return newStar(c, rng, 5)
	case KindHexagram:
		return newStar(c, rng, 6)
	}
	panic("primitive: " + kind.String())
}

// canvas holds the size of the image a shape is placed on.
type canvas struct {
	w, h int
}

// Mutation parameters.
const (
	// mutationStep is the standard deviation of position and size changes.
	mutationStep = 16

	// angleStep is the standard deviation of angle changes, in degrees.
	angleStep = 32

	// margin is how far free vertices may leave the canvas.
	margin = 16
)

func gauss(rng *rand.Rand, sigma float64) float64 {
	return rng.NormFloat64() * sigma
}

// jitter moves v by a Gaussian step and clamps the result to [lo, hi].
func jitter(rng *rand.Rand, v, lo, hi float64) float64 {
	return max(lo, min(hi, v+gauss(rng, mutationStep)))
}

// jitterInt is like jitter for integer coordinates.
func jitterInt(rng *rand.Rand, v, lo, hi int) int {
	return clampInt(v+int(gauss(rng, mutationStep)), lo, hi)
}

// rasterizePath fills the closed path p, placed on the canvas by ctm.
func rasterizePath(r *Rasteriser, p *path.Data, ctm matrix.Matrix) []Scanline {
	r.CTM = ctm
	lines := r.FillSpans(p)
	r.CTM = matrix.Identity
	return lines
}

// rasterizeShape returns the scanlines of s.  With antiAlias set, the
// exact-area coverage of the outline is used instead of hard spans.
func rasterizeShape(r *Rasteriser, s Shape, antiAlias bool) []Scanline {
	if !antiAlias {
		return s.Rasterize(r)
	}
	return rasterizeOutline(r, s.Outline(), matrix.Identity)
}

// rasterizeOutline returns the anti-aliased scanlines of o, with the
// additional transformation post applied after the shape's own CTM.
func rasterizeOutline(r *Rasteriser, o Outline, post matrix.Matrix) []Scanline {
	r.CTM = concat(o.CTM, post)
	defer func() { r.CTM = matrix.Identity }()
	if o.StrokeWidth > 0 {
		r.Width = o.StrokeWidth
		r.Cap = strokeCap
		r.Join = strokeJoin
		return r.StrokeLines(o.Path)
	}
	return r.FillLines(o.Path)
}

// concat returns the transformation which first applies a, then b.
func concat(a, b matrix.Matrix) matrix.Matrix {
	return matrix.Matrix{
		a[0]*b[0] + a[1]*b[2],
		a[0]*b[1] + a[1]*b[3],
		a[2]*b[0] + a[3]*b[2],
		a[2]*b[1] + a[3]*b[3],
		a[4]*b[0] + a[5]*b[2] + b[4],
		a[4]*b[1] + a[5]*b[3] + b[5],
	}
}

// closedPolygon returns the closed path through the given vertices.
func closedPolygon(xs, ys []float64) *path.Data {
	p := &path.Data{}
	for i := range xs {
		pt := vec2(xs[i], ys[i])
		if i == 0 {
			p = p.MoveTo(pt)
		} else {
			p = p.LineTo(pt)
		}
	}
	return p.Close()
}

// ellipsePath returns an ellipse around the origin, made from four cubic
// Bézier arcs.
func ellipsePath(rx, ry float64) *path.Data {
	const k = 0.5522847498
	kx, ky := k*rx, k*ry
	return (&path.Data{}).
		MoveTo(vec2(rx, 0)).
		CubeTo(vec2(rx, ky), vec2(kx, ry), vec2(0, ry)).
		CubeTo(vec2(-kx, ry), vec2(-rx, ky), vec2(-rx, 0)).
		CubeTo(vec2(-rx, -ky), vec2(-kx, -ry), vec2(0, -ry)).
		CubeTo(vec2(kx, -ry), vec2(rx, -ky), vec2(rx, 0)).
		Close()
}

// svgNum formats a coordinate for use inside SVG attributes.
func svgNum(x float64) string {
	return strconv.FormatFloat(x, 'f', -1, 64)
}

// placement returns the SVG transform which places a unit shape with the
// given position, rotation and scale.
func placement(x, y, angle, sx, sy float64) string {
	return fmt.Sprintf("translate(%s %s) rotate(%s) scale(%s %s)",
		svgNum(x), svgNum(y), svgNum(angle), svgNum(sx), svgNum(sy))
}

// angleBetween returns the angle, in degrees, between the vectors
// (x1, y1) and (x2, y2).  The result is NaN if one of them is zero.
func angleBetween(x1, y1, x2, y2 float64) float64 {
	d1 := math.Hypot(x1, y1)
	d2 := math.Hypot(x2, y2)
	c := (x1*x2 + y1*y2) / (d1 * d2)
	return math.Acos(max(-1, min(1, c))) * 180 / math.Pi
}

func vec2(x, y float64) vec.Vec2 {
	return vec.Vec2{X: x, Y: y}
}
