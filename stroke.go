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

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf/graphics"
)

// strokeSegment is a flattened piece of a stroked path, in shape
// coordinates.
type strokeSegment struct {
	A, B vec.Vec2
	T    vec.Vec2 // unit tangent A→B
	N    vec.Vec2 // unit normal, 90° CCW from T
}

// Stroke rasterises the outline of p, stroked with r.Width, r.Cap,
// r.Join and r.MiterLimit.  Coverage is delivered row by row, as for
// FillNonZero.
func (r *Rasteriser) Stroke(p *path.Data, emit func(y, xMin int, coverage []float32)) {
	r.flattenPath(p)
	if len(r.segsOffsets) == 0 && len(r.degeneratePoints) == 0 {
		return
	}

	r.stroke = r.stroke[:0]
	r.strokeOffsets = r.strokeOffsets[:0]

	// a subpath without direction only shows up with round caps
	if r.Cap == graphics.LineCapRound {
		for _, pt := range r.degeneratePoints {
			start := len(r.stroke)
			r.addArc(pt, r.Width/2, vec.Vec2{X: 1, Y: 0}, 2*math.Pi, true)
			r.strokeOffsets = append(r.strokeOffsets, start)
		}
	}

	for i := range r.segsOffsets {
		start := len(r.stroke)
		r.strokeSubpath(r.subpathSegments(i), r.subpathClosed[i])
		if len(r.stroke)-start >= 3 {
			r.strokeOffsets = append(r.strokeOffsets, start)
		} else {
			r.stroke = r.stroke[:start]
		}
	}

	r.fillStrokeOutlines(emit)
}

// subpathSegments returns the flattened segments of subpath i.
func (r *Rasteriser) subpathSegments(i int) []strokeSegment {
	end := len(r.segs)
	if i+1 < len(r.segsOffsets) {
		end = r.segsOffsets[i+1]
	}
	return r.segs[r.segsOffsets[i]:end]
}

// flattenPath converts p into line segments.  It fills r.segs,
// r.segsOffsets, r.subpathClosed and r.degeneratePoints.
func (r *Rasteriser) flattenPath(p *path.Data) {
	r.segs = r.segs[:0]
	r.segsOffsets = r.segsOffsets[:0]
	r.subpathClosed = r.subpathClosed[:0]
	r.degeneratePoints = r.degeneratePoints[:0]

	var current, start vec.Vec2
	startIdx := 0
	inSubpath := false
	drawn := false

	endSubpath := func(closed bool) {
		if len(r.segs) == startIdx {
			r.degeneratePoints = append(r.degeneratePoints, start)
		} else {
			r.segsOffsets = append(r.segsOffsets, startIdx)
			r.subpathClosed = append(r.subpathClosed, closed)
		}
	}

	k := 0
	for _, cmd := range p.Cmds {
		switch cmd {
		case path.CmdMoveTo:
			if inSubpath && (len(r.segs) > startIdx || drawn) {
				endSubpath(false)
			}
			current = p.Coords[k]
			start = current
			startIdx = len(r.segs)
			inSubpath = true
			drawn = false
			k++

		case path.CmdLineTo:
			if inSubpath {
				drawn = true
				r.addStrokeSegment(current, p.Coords[k])
				current = p.Coords[k]
			}
			k++

		case path.CmdQuadTo:
			if inSubpath {
				drawn = true
				r.flattenQuadratic(current, p.Coords[k], p.Coords[k+1], r.addStrokeSegment)
				current = p.Coords[k+1]
			}
			k += 2

		case path.CmdCubeTo:
			if inSubpath {
				drawn = true
				r.flattenCubic(current, p.Coords[k], p.Coords[k+1], p.Coords[k+2], r.addStrokeSegment)
				current = p.Coords[k+2]
			}
			k += 3

		case path.CmdClose:
			if !inSubpath {
				continue
			}
			if current != start {
				r.addStrokeSegment(current, start)
			}
			endSubpath(true)
			current = start
			startIdx = len(r.segs)
			inSubpath = false
			drawn = false
		}
	}

	if inSubpath && (len(r.segs) > startIdx || drawn) {
		endSubpath(false)
	}
}

// addStrokeSegment appends the segment a→b, unless it has zero length.
func (r *Rasteriser) addStrokeSegment(a, b vec.Vec2) {
	d := b.Sub(a)
	length := d.Length()
	if length < zeroLengthThreshold {
		return
	}
	t := d.Mul(1 / length)
	r.segs = append(r.segs, strokeSegment{A: a, B: b, T: t, N: vec.Vec2{X: -t.Y, Y: t.X}})
}

// turn returns the sine of the angle between the tangents of a and b.
func turn(a, b *strokeSegment) float64 {
	return a.T.X*b.T.Y - a.T.Y*b.T.X
}

// strokeSubpath appends the outline of one subpath to r.stroke.
// The outline is a single polygon: the +N side forwards, followed by the
// -N side backwards.  Join geometry goes on the outer side of each corner.
func (r *Rasteriser) strokeSubpath(segs []strokeSegment, closed bool) {
	if len(segs) == 0 {
		return
	}
	d := r.Width / 2
	first := &segs[0]
	last := &segs[len(segs)-1]

	if closed {
		// forward pass, +N side
		r.stroke = append(r.stroke, first.A.Add(first.N.Mul(d)))
		for i := range segs {
			seg := &segs[i]
			next := first
			if i < len(segs)-1 {
				next = &segs[i+1]
			}
			r.outerCorner(seg, next, d, true)
		}

		// backward pass, -N side, starting at the closing corner
		r.outerCorner(last, first, d, false)
		for i := len(segs) - 1; i > 0; i-- {
			r.outerCorner(&segs[i-1], &segs[i], d, false)
		}
		r.stroke = append(r.stroke, first.A.Sub(first.N.Mul(d)))
		return
	}

	r.addCap(first.A, first.T.Mul(-1), d)
	skip := false
	for i := range segs {
		seg := &segs[i]
		if !skip {
			r.stroke = append(r.stroke, seg.A.Add(seg.N.Mul(d)))
		}
		skip = false
		if i == len(segs)-1 {
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
			break
		}
		next := &segs[i+1]
		s := turn(seg, next)
		switch {
		case math.Abs(s) < collinearityThreshold:
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
		case s > 0:
			skip = r.addInnerIntersectionOrOffsets(seg.B, seg.T, next.T, seg.N, next.N, d, true)
		default:
			r.stroke = append(r.stroke, seg.B.Add(seg.N.Mul(d)))
			r.addJoin(seg.B, seg.T, next.T, d, true)
		}
	}

	r.addCap(last.B, last.T, d)
	skip = false
	for i := len(segs) - 1; i >= 0; i-- {
		seg := &segs[i]
		if !skip {
			r.stroke = append(r.stroke, seg.B.Sub(seg.N.Mul(d)))
		}
		skip = false
		if i == 0 {
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
			break
		}
		prev := &segs[i-1]
		s := turn(prev, seg)
		switch {
		case math.Abs(s) < collinearityThreshold:
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
		case s > 0:
			r.stroke = append(r.stroke, seg.A.Sub(seg.N.Mul(d)))
			r.addJoin(seg.A, prev.T, seg.T, d, false)
		default:
			skip = r.addInnerIntersectionOrOffsets(seg.A, prev.T, seg.T, prev.N, seg.N, d, false)
		}
	}
}

// outerCorner emits the outline points of a closed subpath at the corner
// where a meets b, on the +N side (positive) or the -N side.
func (r *Rasteriser) outerCorner(a, b *strokeSegment, d float64, positive bool) {
	s := turn(a, b)
	if positive {
		switch {
		case math.Abs(s) < collinearityThreshold:
			r.stroke = append(r.stroke, a.B.Add(a.N.Mul(d)), b.A.Add(b.N.Mul(d)))
		case s > 0:
			r.addInnerIntersectionOrOffsets(a.B, a.T, b.T, a.N, b.N, d, true)
		default:
			r.stroke = append(r.stroke, a.B.Add(a.N.Mul(d)))
			r.addJoin(a.B, a.T, b.T, d, true)
			r.stroke = append(r.stroke, b.A.Add(b.N.Mul(d)))
		}
		return
	}
	switch {
	case math.Abs(s) < collinearityThreshold:
		r.stroke = append(r.stroke, b.A.Sub(b.N.Mul(d)), a.B.Sub(a.N.Mul(d)))
	case s > 0:
		r.stroke = append(r.stroke, b.A.Sub(b.N.Mul(d)))
		r.addJoin(b.A, a.T, b.T, d, false)
		r.stroke = append(r.stroke, a.B.Sub(a.N.Mul(d)))
	default:
		r.addInnerIntersectionOrOffsets(b.A, a.T, b.T, a.N, b.N, d, false)
	}
}

// addCap adds a line cap at P.  T points away from the line.
func (r *Rasteriser) addCap(P, T vec.Vec2, d float64) {
	N := vec.Vec2{X: -T.Y, Y: T.X}

	switch r.Cap {
	case graphics.LineCapSquare:
		ext := P.Add(T.Mul(d))
		r.stroke = append(r.stroke, ext.Add(N.Mul(d)), ext.Sub(N.Mul(d)))
	case graphics.LineCapRound:
		r.addArc(P, d, N, -math.Pi, true)
	}
}

// innerIntersection returns the point where the two inner offset lines
// of a corner meet.
func innerIntersection(P, T1, T2 vec.Vec2, d float64, positive bool) (vec.Vec2, bool) {
	cosTheta := T1.Dot(T2)
	if cosTheta > 1-1e-9 {
		return vec.Vec2{}, false
	}
	halfAngle := math.Sqrt((1 + cosTheta) / 2)
	if halfAngle < 1e-9 {
		return vec.Vec2{}, false
	}

	dir := vec.Vec2{X: -T1.Y, Y: T1.X}.Add(vec.Vec2{X: -T2.Y, Y: T2.X})
	if !positive {
		dir = dir.Mul(-1)
	}
	l := dir.Length()
	if l < 1e-9 {
		return vec.Vec2{}, false
	}
	return P.Add(dir.Mul(d / (l * halfAngle))), true
}

// addInnerIntersectionOrOffsets emits the inner side of a corner.
// The return value reports whether the intersection point was used, in
// which case the caller skips the next offset point.
func (r *Rasteriser) addInnerIntersectionOrOffsets(P, T1, T2, N1, N2 vec.Vec2, d float64, positive bool) bool {
	if pt, ok := innerIntersection(P, T1, T2, d, positive); ok {
		r.stroke = append(r.stroke, pt)
		return true
	}
	if positive {
		r.stroke = append(r.stroke, P.Add(N1.Mul(d)), P.Add(N2.Mul(d)))
	} else {
		r.stroke = append(r.stroke, P.Sub(N1.Mul(d)), P.Sub(N2.Mul(d)))
	}
	return false
}

// addJoin adds the join geometry at P, where the tangent changes from T1
// to T2.
func (r *Rasteriser) addJoin(P, T1, T2 vec.Vec2, d float64, positive bool) {
	cosTheta := T1.Dot(T2)
	sinTheta := T1.X*T2.Y - T1.Y*T2.X
	if sinTheta > -collinearityThreshold && sinTheta < collinearityThreshold {
		return
	}

	if cosTheta < cuspCosineThreshold {
		r.addCap(P, T1, d)
		r.addCap(P, T2.Mul(-1), d)
		return
	}

	switch r.Join {
	case graphics.LineJoinMiter:
		const miterEpsilon = 1e-10
		sinHalf := math.Sqrt((1 + cosTheta) / 2)
		if sinHalf > 0 && 1/sinHalf <= r.MiterLimit+miterEpsilon {
			bisector := vec.Vec2{X: -T1.Y, Y: T1.X}.Add(vec.Vec2{X: -T2.Y, Y: T2.X})
			if !positive {
				bisector = bisector.Mul(-1)
			}
			if l := bisector.Length(); l > zeroLengthThreshold {
				r.stroke = append(r.stroke, P.Add(bisector.Mul(d/(l*sinHalf))))
			}
		}

	case graphics.LineJoinRound:
		angle := math.Acos(max(-1, min(1, cosTheta)))
		if positive {
			N1 := vec.Vec2{X: -T1.Y, Y: T1.X}
			if sinTheta < 0 {
				angle = -angle
			}
			r.addArc(P, d, N1, angle, false)
		} else {
			N2 := vec.Vec2{X: T2.Y, Y: -T2.X}
			if sinTheta > 0 {
				angle = -angle
			}
			r.addArc(P, d, N2, angle, false)
		}
	}
}

// addArc appends points along a circular arc around center, starting in
// direction startDir and sweeping by sweep radians (positive is CCW).
func (r *Rasteriser) addArc(center vec.Vec2, radius float64, startDir vec.Vec2, sweep float64, includeStart bool) {
	devRadius := max(
		r.transformLinear(vec.Vec2{X: radius}).Length(),
		r.transformLinear(vec.Vec2{Y: radius}).Length())

	n := 1
	if devRadius >= r.Flatness {
		// the sagitta of each chord stays below the flatness
		step := 2 * math.Acos(1-r.Flatness/devRadius)
		if step <= 0 || math.IsNaN(step) {
			step = math.Pi / 4
		}
		n = max(int(math.Ceil(math.Abs(sweep)/step)), 1)
	}

	dt := sweep / float64(n)
	i := 0
	if !includeStart {
		i = 1
	}
	for ; i <= n; i++ {
		sin, cos := math.Sincos(float64(i) * dt)
		dir := vec.Vec2{
			X: startDir.X*cos - startDir.Y*sin,
			Y: startDir.X*sin + startDir.Y*cos,
		}
		r.stroke = append(r.stroke, center.Add(dir.Mul(radius)))
	}
}

// fillStrokeOutlines fills all stroke polygons as one compound region,
// so that overlapping parts are painted once.
func (r *Rasteriser) fillStrokeOutlines(emit func(y, xMin int, coverage []float32)) {
	if len(r.strokeOffsets) == 0 {
		return
	}

	r.edges = r.edges[:0]
	r.edgeBBoxFirst = true
	for i, start := range r.strokeOffsets {
		end := len(r.stroke)
		if i+1 < len(r.strokeOffsets) {
			end = r.strokeOffsets[i+1]
		}
		poly := r.stroke[start:end]
		if len(poly) < 2 {
			continue
		}
		for j := 1; j < len(poly); j++ {
			r.addEdge(poly[j-1], poly[j])
		}
		r.addEdge(poly[len(poly)-1], poly[0])
	}

	xMin, xMax, yMin, yMax, ok := r.edgeBounds()
	if !ok {
		return
	}
	r.fillEdges(xMin, xMax, yMin, yMax, fillNonZero, emit)
}
