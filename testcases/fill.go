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

package testcases

import (
	"math"

	"seehuhn.de/go/geom/path"
)

var fillCases = []TestCase{
	{
		Name:   "triangle_nonzero",
		Path:   polygon(10, 50, 32, 10, 54, 50),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "triangle_evenodd",
		Path:   polygon(10, 50, 32, 10, 54, 50),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: EvenOdd},
	},
	{
		Name:   "triangle_clockwise",
		Path:   polygon(10, 50, 54, 50, 32, 10),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "pentagram",
		Path:   pentagram(32, 32, 25),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: EvenOdd},
	},
	{
		Name:   "star_outline",
		Path:   star(32, 32, 25, 25/2.618, 5),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "hexagram_outline",
		Path:   star(32, 32, 28, 28/math.Sqrt(3), 6),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "rectangle",
		Path:   rectangle(10, 10, 44, 44),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "bowtie",
		Path:   polygon(10, 10, 54, 54, 54, 10, 10, 54),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: EvenOdd},
	},
	{
		Name:   "subpixel_offset_25",
		Path:   rectangle(20.25, 20.25, 44.25, 44.25),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "subpixel_offset_50",
		Path:   rectangle(20.5, 20.5, 44.5, 44.5),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "tiny_triangle",
		Path:   polygon(30.2, 30.2, 31.8, 30.4, 30.9, 31.9),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "off_canvas_left",
		Path:   polygon(-16, 5, 20, 32, -16, 59),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "off_canvas_corner",
		Path:   polygon(40, 40, 80, 50, 50, 80),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
}

// polygon builds a closed polygon from a list of x, y coordinates.
func polygon(coords ...float64) *path.Data {
	return polyline(coords...).Close()
}

// rectangle builds a rectangular path.
func rectangle(x1, y1, x2, y2 float64) *path.Data {
	return polygon(x1, y1, x2, y1, x2, y2, x1, y2)
}

// pentagram builds a self-intersecting five-pointed star.
func pentagram(cx, cy, r float64) *path.Data {
	p := &path.Data{}
	// connect every second point: 0 -> 2 -> 4 -> 1 -> 3
	for i, k := range []int{0, 2, 4, 1, 3} {
		angle := float64(k)*2*math.Pi/5 - math.Pi/2
		v := pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
		if i == 0 {
			p = p.MoveTo(v)
		} else {
			p = p.LineTo(v)
		}
	}
	return p.Close()
}

// star builds the outline of a star with n points, alternating between
// the outer and the inner radius.
func star(cx, cy, outer, inner float64, n int) *path.Data {
	p := &path.Data{}
	for i := range 2 * n {
		r := outer
		if i%2 == 1 {
			r = inner
		}
		angle := float64(i)*math.Pi/float64(n) - math.Pi/2
		v := pt(cx+r*math.Cos(angle), cy+r*math.Sin(angle))
		if i == 0 {
			p = p.MoveTo(v)
		} else {
			p = p.LineTo(v)
		}
	}
	return p.Close()
}
