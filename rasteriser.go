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
	"cmp"
	"math"
	"slices"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// edge is a line segment in device coordinates.
type edge struct {
	x0, y0 float64
	x1, y1 float64
	dxdy   float64 // (x1-x0)/(y1-y0)
}

// Rasteriser converts shape outlines into scanlines.
//
// Two modes are available.  FillSpans produces hard-edged spans which
// cover exactly the pixels whose centres lie inside the outline; this is
// what the search uses by default.  FillNonZero, FillEvenOdd and Stroke
// compute exact-area anti-aliased coverage; the coverage is delivered
// row by row, or converted into weighted scanlines by FillLines and
// StrokeLines.
//
// A Rasteriser is not safe for concurrent use.  Every worker owns one.
// Internal buffers grow as needed but never shrink, so that steady state
// rasterisation does not allocate.
type Rasteriser struct {
	// CTM maps shape coordinates to device pixels.
	CTM matrix.Matrix

	// Clip is the device region which receives output.
	// The coordinates must be integers.
	Clip rect.Rect

	// Flatness is the curve flattening tolerance in device pixels.
	Flatness float64

	// Width is the stroke width in shape units.
	Width float64

	// Cap and Join select the stroke geometry at endpoints and corners.
	Cap  graphics.LineCapStyle
	Join graphics.LineJoinStyle

	// MiterLimit applies to miter joins, must be >= 1.
	MiterLimit float64

	smallPathThreshold int

	cover     []float32
	area      []float32
	edges     []edge
	activeIdx []int
	rowXMin   []int
	rowXMax   []int
	crossings []float64
	xs        []float64
	lines     []Scanline

	stroke           []vec.Vec2
	strokeOffsets    []int
	segs             []strokeSegment
	segsOffsets      []int
	subpathClosed    []bool
	degeneratePoints []vec.Vec2

	edgeBBoxFirst bool
	edgeDevXMin   float64
	edgeDevXMax   float64
	edgeDevYMin   float64
	edgeDevYMax   float64
}

// NewRasteriser returns a Rasteriser which writes into the given clip
// rectangle.  The remaining parameters are set to their defaults.
func NewRasteriser(clip rect.Rect) *Rasteriser {
	r := &Rasteriser{}
	r.Reset(clip)
	return r
}

// Reset restores the default parameters and sets a new clip rectangle.
// Buffer capacity is kept.
func (r *Rasteriser) Reset(clip rect.Rect) {
	r.CTM = matrix.Identity
	r.Clip = clip
	r.Flatness = defaultFlatness
	r.Width = 1.0
	r.Cap = graphics.LineCapButt
	r.Join = graphics.LineJoinMiter
	r.MiterLimit = defaultMiterLimit
	r.smallPathThreshold = smallPathThreshold

	r.cover = r.cover[:0]
	r.area = r.area[:0]
	r.edges = r.edges[:0]
	r.activeIdx = r.activeIdx[:0]
	r.rowXMin = r.rowXMin[:0]
	r.rowXMax = r.rowXMax[:0]
	r.crossings = r.crossings[:0]
	r.xs = r.xs[:0]
	r.lines = r.lines[:0]
	r.stroke = r.stroke[:0]
	r.strokeOffsets = r.strokeOffsets[:0]
	r.segs = r.segs[:0]
	r.segsOffsets = r.segsOffsets[:0]
	r.subpathClosed = r.subpathClosed[:0]
	r.degeneratePoints = r.degeneratePoints[:0]
}

// canvas returns the clip size in whole pixels.
func (r *Rasteriser) canvas() (w, h int) {
	return int(r.Clip.URx - r.Clip.LLx), int(r.Clip.URy - r.Clip.LLy)
}

// transformLinear applies the linear part of the CTM to v.
func (r *Rasteriser) transformLinear(v vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: r.CTM[0]*v.X + r.CTM[2]*v.Y,
		Y: r.CTM[1]*v.X + r.CTM[3]*v.Y,
	}
}

// flattenQuadratic approximates the quadratic Bézier curve p0, p1, p2 by
// line segments.  The number of segments is chosen so that the error in
// device space stays below r.Flatness.
func (r *Rasteriser) flattenQuadratic(p0, p1, p2 vec.Vec2, emit func(from, to vec.Vec2)) {
	e := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2).Mul(0.25))

	n := 1
	if errDev := e.Length(); errDev > r.Flatness {
		n = int(math.Ceil(math.Sqrt(errDev / r.Flatness)))
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		pt := p0.Mul(omt * omt).Add(p1.Mul(2 * omt * t)).Add(p2.Mul(t * t))
		emit(prev, pt)
		prev = pt
	}
}

// flattenCubic approximates a cubic Bézier curve by line segments,
// using Wang's formula for the segment count.
func (r *Rasteriser) flattenCubic(p0, p1, p2, p3 vec.Vec2, emit func(from, to vec.Vec2)) {
	d1 := r.transformLinear(p0.Sub(p1.Mul(2)).Add(p2))
	d2 := r.transformLinear(p1.Sub(p2.Mul(2)).Add(p3))

	n := 1
	if m := max(d1.Length(), d2.Length()); m > 0 {
		if nf := math.Sqrt(3 * m / (4 * r.Flatness)); nf > 1 {
			n = int(math.Ceil(nf))
		}
	}

	prev := p0
	for i := 1; i <= n; i++ {
		t := float64(i) / float64(n)
		omt := 1 - t
		omt2 := omt * omt
		t2 := t * t
		pt := p0.Mul(omt2 * omt).Add(p1.Mul(3 * omt2 * t)).Add(p2.Mul(3 * omt * t2)).Add(p3.Mul(t2 * t))
		emit(prev, pt)
		prev = pt
	}
}

// FillSpans returns the hard-edged scanlines of the region enclosed by p.
// A pixel is covered if its centre lies inside the region, using the
// even-odd rule.  The result is cropped to the clip rectangle and no two
// returned scanlines overlap.  The returned slice is only valid until the
// next call to a method of r.
func (r *Rasteriser) FillSpans(p *path.Data) []Scanline {
	r.lines = r.lines[:0]
	_, _, yMin, yMax, ok := r.collectPathEdges(p)
	if !ok {
		return r.lines
	}

	x0, y0 := int(r.Clip.LLx), int(r.Clip.LLy)
	for y := yMin; y < yMax; y++ {
		yc := float64(y) + 0.5

		r.xs = r.xs[:0]
		for i := range r.edges {
			e := &r.edges[i]
			lo, hi := e.y0, e.y1
			if lo > hi {
				lo, hi = hi, lo
			}
			if yc < lo || yc >= hi {
				continue
			}
			r.xs = append(r.xs, e.x0+e.dxdy*(yc-e.y0))
		}
		if len(r.xs) == 0 {
			continue
		}
		slices.Sort(r.xs)

		if len(r.xs)%2 == 1 {
			// unbalanced crossings from a degenerate outline
			x := int(math.Floor(r.xs[0]))
			r.lines = append(r.lines, Scanline{Y: y - y0, X1: x - x0, X2: x - x0, Alpha: maxAlpha})
			continue
		}
		for i := 0; i < len(r.xs); i += 2 {
			x1 := int(math.Ceil(r.xs[i] - 0.5))
			x2 := int(math.Ceil(r.xs[i+1]-0.5)) - 1
			if x1 > x2 {
				continue
			}
			r.lines = append(r.lines, Scanline{Y: y - y0, X1: x1 - x0, X2: x2 - x0, Alpha: maxAlpha})
		}
	}

	w, h := r.canvas()
	r.lines = mergeScanlines(cropScanlines(r.lines, w, h))
	return r.lines
}

// FillLines returns the anti-aliased scanlines of the region enclosed by
// p, using the nonzero winding rule.  Runs of pixels with equal coverage
// are combined into one scanline.  The returned slice is only valid until
// the next call to a method of r.
func (r *Rasteriser) FillLines(p *path.Data) []Scanline {
	r.lines = r.lines[:0]
	r.FillNonZero(p, r.appendCoverage)
	return r.lines
}

// StrokeLines is like FillLines, but for the stroke outline of p.
func (r *Rasteriser) StrokeLines(p *path.Data) []Scanline {
	r.lines = r.lines[:0]
	r.Stroke(p, r.appendCoverage)
	return r.lines
}

// appendCoverage converts one row of coverage values into scanlines.
func (r *Rasteriser) appendCoverage(y, xMin int, coverage []float32) {
	x0, y0 := int(r.Clip.LLx), int(r.Clip.LLy)
	start := 0
	for start < len(coverage) {
		a := quantizeCoverage(coverage[start])
		end := start + 1
		for end < len(coverage) && quantizeCoverage(coverage[end]) == a {
			end++
		}
		if a > 0 {
			r.lines = append(r.lines, Scanline{
				Y:     y - y0,
				X1:    xMin + start - x0,
				X2:    xMin + end - 1 - x0,
				Alpha: a,
			})
		}
		start = end
	}
}

func quantizeCoverage(c float32) uint32 {
	return uint32(max(0, min(1, c)) * maxAlpha)
}

// FillNonZero rasterises p using the nonzero winding rule.
// Coverage is delivered row by row.  The coverage slice passed to emit is
// only valid for the duration of the callback.
func (r *Rasteriser) FillNonZero(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.fill(p, fillNonZero, emit)
}

// FillEvenOdd rasterises p using the even-odd rule.
func (r *Rasteriser) FillEvenOdd(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.fill(p, fillEvenOdd, emit)
}

type fillRule int

const (
	fillNonZero fillRule = iota
	fillEvenOdd
)

func (r *Rasteriser) fill(p *path.Data, rule fillRule, emit func(y, xMin int, coverage []float32)) {
	xMin, xMax, yMin, yMax, ok := r.collectPathEdges(p)
	if !ok {
		return
	}
	r.fillEdges(xMin, xMax, yMin, yMax, rule, emit)
}

// fillEdges integrates the current edge list.  Small regions use a
// per-pixel 2D buffer, large ones an active edge list.
func (r *Rasteriser) fillEdges(xMin, xMax, yMin, yMax int, rule fillRule, emit func(y, xMin int, coverage []float32)) {
	if (xMax-xMin)*(yMax-yMin) < r.smallPathThreshold {
		r.fillSmallPath(xMin, xMax, yMin, yMax, rule, emit)
	} else {
		r.fillLargePath(xMin, xMax, yMin, yMax, rule, emit)
	}
}

// collectPathEdges transforms p to device space and builds the edge list.
// The returned bounding box is clamped to the clip rectangle.
func (r *Rasteriser) collectPathEdges(p *path.Data) (xMin, xMax, yMin, yMax int, ok bool) {
	r.edges = r.edges[:0]
	r.edgeBBoxFirst = true

	var current, subpath vec.Vec2
	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if current != subpath {
				r.addEdge(current, subpath) // implicit close
			}
			current = p.Coords[k]
			subpath = current
			k++
		case path.CmdLineTo:
			r.addEdge(current, p.Coords[k])
			current = p.Coords[k]
			k++
		case path.CmdQuadTo:
			r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], r.addEdge)
			current = p.Coords[k+1]
			k += 2
		case path.CmdCubeTo:
			r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], r.addEdge)
			current = p.Coords[k+2]
			k += 3
		case path.CmdClose:
			if current != subpath {
				r.addEdge(current, subpath)
			}
			current = subpath
		}
	}
	if current != subpath {
		r.addEdge(current, subpath)
	}

	return r.edgeBounds()
}

// edgeBounds returns the integer bounding box of the edge list, clamped
// to the clip rectangle.
func (r *Rasteriser) edgeBounds() (xMin, xMax, yMin, yMax int, ok bool) {
	if len(r.edges) == 0 {
		return 0, 0, 0, 0, false
	}

	xMin = max(int(math.Floor(r.edgeDevXMin)), int(r.Clip.LLx))
	xMax = min(int(math.Floor(r.edgeDevXMax))+1, int(r.Clip.URx))
	yMin = max(int(math.Floor(r.edgeDevYMin)), int(r.Clip.LLy))
	yMax = min(int(math.Floor(r.edgeDevYMax))+1, int(r.Clip.URy))
	if xMin >= xMax || yMin >= yMax {
		return 0, 0, 0, 0, false
	}
	return xMin, xMax, yMin, yMax, true
}

// addEdge appends the segment p0→p1, given in shape coordinates, to the
// edge list.  Horizontal edges are dropped.
func (r *Rasteriser) addEdge(p0, p1 vec.Vec2) {
	dx0 := r.CTM[0]*p0.X + r.CTM[2]*p0.Y + r.CTM[4]
	dy0 := r.CTM[1]*p0.X + r.CTM[3]*p0.Y + r.CTM[5]
	dx1 := r.CTM[0]*p1.X + r.CTM[2]*p1.Y + r.CTM[4]
	dy1 := r.CTM[1]*p1.X + r.CTM[3]*p1.Y + r.CTM[5]

	dy := dy1 - dy0
	if dy > -horizontalEdgeThreshold && dy < horizontalEdgeThreshold {
		return
	}
	r.edges = append(r.edges, edge{
		x0: dx0, y0: dy0,
		x1: dx1, y1: dy1,
		dxdy: (dx1 - dx0) / dy,
	})

	if r.edgeBBoxFirst {
		r.edgeDevXMin, r.edgeDevXMax = min(dx0, dx1), max(dx0, dx1)
		r.edgeDevYMin, r.edgeDevYMax = min(dy0, dy1), max(dy0, dy1)
		r.edgeBBoxFirst = false
		return
	}
	r.edgeDevXMin = min(r.edgeDevXMin, dx0, dx1)
	r.edgeDevXMax = max(r.edgeDevXMax, dx0, dx1)
	r.edgeDevYMin = min(r.edgeDevYMin, dy0, dy1)
	r.edgeDevYMax = max(r.edgeDevYMax, dy0, dy1)
}

// Coverage accumulation:
//
// For each pixel two values are tracked.  cover is the signed vertical
// extent of the edges crossing the pixel, area weights this by the
// horizontal position of the crossing inside the pixel:
//
//	cover = sign * dy
//	area  = cover * (1 - xFrac)
//
// Integrating a row from the left gives the signed area of the region
// inside each pixel:
//
//	coverage[i] = accumulated + area[i]
//	accumulated += cover[i]

// accumulateEdge adds the contribution of e within row y to the cover and
// area buffers, which are indexed by x - bboxXMin.
func (r *Rasteriser) accumulateEdge(e *edge, y int, cover, area []float32, bboxXMin, bboxXMax int) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return
	}

	sign := float32(1)
	if e.y1 < e.y0 {
		sign = -1
	}

	xLeft := e.x0 + e.dxdy*(yTop-e.y0)
	xRight := e.x0 + e.dxdy*(yBot-e.y0)
	if xLeft > xRight {
		xLeft, xRight = xRight, xLeft
	}
	pixLeft := int(math.Floor(xLeft))
	pixRight := int(math.Floor(xRight))

	switch {
	case pixRight < bboxXMin:
		c := sign * float32(yBot-yTop)
		cover[0] += c
		area[0] += c
		return
	case pixLeft >= bboxXMax:
		return
	case pixLeft == pixRight:
		r.accumulateSegment(e, yTop, yBot, sign, cover, area, bboxXMin, bboxXMax)
		return
	}

	// split the edge where it crosses pixel columns
	dydx := 1 / e.dxdy
	r.crossings = append(r.crossings[:0], yTop, yBot)
	for x := pixLeft + 1; x <= pixRight; x++ {
		yx := e.y0 + dydx*(float64(x)-e.x0)
		if yx > yTop && yx < yBot {
			r.crossings = append(r.crossings, yx)
		}
	}
	slices.Sort(r.crossings)

	for i := range len(r.crossings) - 1 {
		if r.crossings[i+1] <= r.crossings[i] {
			continue
		}
		r.accumulateSegment(e, r.crossings[i], r.crossings[i+1], sign, cover, area, bboxXMin, bboxXMax)
	}
}

// accumulateSegment handles the part of e between yTop and yBot, which
// must fall into a single pixel column.
func (r *Rasteriser) accumulateSegment(e *edge, yTop, yBot float64, sign float32, cover, area []float32, bboxXMin, bboxXMax int) {
	c := sign * float32(yBot-yTop)

	xMid := e.x0 + e.dxdy*((yTop+yBot)/2-e.y0)
	pix := int(math.Floor(xMid))
	if pix < bboxXMin {
		cover[0] += c
		area[0] += c
		return
	}
	if pix >= bboxXMax {
		return
	}

	idx := pix - bboxXMin
	cover[idx] += c
	area[idx] += c * float32(1-(xMid-float64(pix)))
}

// integrateNonZero turns accumulated cover/area values into coverage,
// using the nonzero winding rule.  The cover slice is overwritten.
func integrateNonZero(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := accum + area[i]
		accum += cover[i]
		cover[i] = min(abs32(raw), 1)
	}
}

// integrateEvenOdd is like integrateNonZero, for the even-odd rule.
func integrateEvenOdd(cover, area []float32) {
	var accum float32
	for i := range cover {
		raw := abs32(accum + area[i])
		accum += cover[i]
		mod := raw - 2*float32(int(raw/2))
		cover[i] = 1 - abs32(1-mod)
	}
}

func abs32(x float32) float32 {
	if x < 0 {
		return -x
	}
	return x
}

// trimZeros strips zero coverage from both ends of a row.
func trimZeros(coverage []float32) (trimmed []float32, offset int) {
	lo, hi := 0, len(coverage)
	for lo < hi && coverage[lo] == 0 {
		lo++
	}
	if lo == hi {
		return nil, 0
	}
	for coverage[hi-1] == 0 {
		hi--
	}
	return coverage[lo:hi], lo
}

// rowBound returns the pixel column, relative to xMin, where e passes
// through the middle of row y.
func rowBound(e *edge, y, xMin, xMax int) (int, bool) {
	yTop := max(float64(y), min(e.y0, e.y1))
	yBot := min(float64(y+1), max(e.y0, e.y1))
	if yBot <= yTop {
		return 0, false
	}
	x := int(math.Floor(e.x0 + e.dxdy*((yTop+yBot)/2-e.y0)))
	return min(max(x, xMin), xMax-1) - xMin, true
}

// fillSmallPath rasterises the edge list using 2D buffers covering the
// whole bounding box.
func (r *Rasteriser) fillSmallPath(xMin, xMax, yMin, yMax int, rule fillRule, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	height := yMax - yMin

	size := width * height
	r.cover = slices.Grow(r.cover[:0], size)[:size]
	r.area = slices.Grow(r.area[:0], size)[:size]
	clear(r.cover)
	clear(r.area)

	r.rowXMin = slices.Grow(r.rowXMin[:0], height)[:height]
	r.rowXMax = slices.Grow(r.rowXMax[:0], height)[:height]
	for i := range height {
		r.rowXMin[i] = width
		r.rowXMax[i] = -1
	}

	for i := range r.edges {
		e := &r.edges[i]
		lo := max(int(math.Floor(min(e.y0, e.y1))), yMin)
		hi := min(int(math.Floor(max(e.y0, e.y1)))+1, yMax)
		for y := lo; y < hi; y++ {
			row := y - yMin
			off := row * width
			r.accumulateEdge(e, y, r.cover[off:off+width], r.area[off:off+width], xMin, xMax)
			if x, ok := rowBound(e, y, xMin, xMax); ok {
				r.rowXMin[row] = min(r.rowXMin[row], x)
				r.rowXMax[row] = max(r.rowXMax[row], x)
			}
		}
	}

	for row := range height {
		if r.rowXMax[row] < 0 {
			continue
		}
		off := row * width
		coverage := r.cover[off : off+width]
		if rule == fillNonZero {
			integrateNonZero(coverage, r.area[off:off+width])
		} else {
			integrateEvenOdd(coverage, r.area[off:off+width])
		}
		if trimmed, offset := trimZeros(coverage); trimmed != nil {
			emit(yMin+row, xMin+offset, trimmed)
		}
	}
}

// fillLargePath rasterises the edge list one row at a time, using an
// active edge list.
func (r *Rasteriser) fillLargePath(xMin, xMax, yMin, yMax int, rule fillRule, emit func(y, xMin int, coverage []float32)) {
	width := xMax - xMin
	r.cover = slices.Grow(r.cover[:0], width)[:width]
	r.area = slices.Grow(r.area[:0], width)[:width]

	slices.SortFunc(r.edges, func(a, b edge) int {
		return cmp.Compare(min(a.y0, a.y1), min(b.y0, b.y1))
	})

	r.activeIdx = r.activeIdx[:0]
	next := 0
	for y := yMin; y < yMax; y++ {
		yf := float64(y)

		for next < len(r.edges) && min(r.edges[next].y0, r.edges[next].y1) < yf+1 {
			r.activeIdx = append(r.activeIdx, next)
			next++
		}
		if len(r.activeIdx) == 0 {
			continue
		}

		clear(r.cover)
		clear(r.area)
		touched := false
		for i := 0; i < len(r.activeIdx); {
			e := &r.edges[r.activeIdx[i]]
			if max(e.y0, e.y1) <= yf {
				last := len(r.activeIdx) - 1
				r.activeIdx[i] = r.activeIdx[last]
				r.activeIdx = r.activeIdx[:last]
				continue
			}
			r.accumulateEdge(e, y, r.cover, r.area, xMin, xMax)
			if _, ok := rowBound(e, y, xMin, xMax); ok {
				touched = true
			}
			i++
		}
		if !touched {
			continue
		}

		if rule == fillNonZero {
			integrateNonZero(r.cover, r.area)
		} else {
			integrateEvenOdd(r.cover, r.area)
		}
		if trimmed, offset := trimZeros(r.cover); trimmed != nil {
			emit(y, xMin+offset, trimmed)
		}
	}
}

const (
	// defaultFlatness is below the threshold of visual perception.
	defaultFlatness = 0.25

	// defaultMiterLimit matches PDF and PostScript.
	defaultMiterLimit = 10.0

	horizontalEdgeThreshold = 1e-10

	// smallPathThreshold is the largest bounding box area, in pixels,
	// which is rasterised using 2D buffers.
	smallPathThreshold = 65536

	zeroLengthThreshold   = 1e-10
	collinearityThreshold = 1e-6

	// cuspCosineThreshold detects a path doubling back on itself.
	cuspCosineThreshold = -0.9999
)
