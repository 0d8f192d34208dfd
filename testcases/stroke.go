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
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/pdf/graphics"
)

// strokeCases cover the stroke styles other than the round style used by
// the quadratic shapes.
var strokeCases = []TestCase{
	{
		Name:   "segment_butt",
		Path:   polyline(12, 32, 52, 32),
		Width:  64,
		Height: 64,
		Op:     styledStroke(6, graphics.LineCapButt, graphics.LineJoinMiter, 10),
	},
	{
		Name:   "segment_square",
		Path:   polyline(12, 32, 52, 32),
		Width:  64,
		Height: 64,
		Op:     styledStroke(6, graphics.LineCapSquare, graphics.LineJoinMiter, 10),
	},
	{
		Name:   "segment_slanted_square",
		Path:   polyline(12, 50, 50, 14),
		Width:  64,
		Height: 64,
		Op:     styledStroke(5, graphics.LineCapSquare, graphics.LineJoinBevel, 10),
	},
	{
		Name:   "zigzag_miter",
		Path:   polyline(8, 48, 22, 16, 36, 48, 50, 16),
		Width:  64,
		Height: 64,
		Op:     styledStroke(4, graphics.LineCapButt, graphics.LineJoinMiter, 10),
	},
	{
		Name:   "zigzag_miter_limited",
		Path:   polyline(8, 48, 22, 16, 36, 48, 50, 16),
		Width:  64,
		Height: 64,
		Op:     styledStroke(4, graphics.LineCapButt, graphics.LineJoinMiter, 1.5),
	},
	{
		Name:   "zigzag_bevel",
		Path:   polyline(8, 48, 22, 16, 36, 48, 50, 16),
		Width:  64,
		Height: 64,
		Op:     styledStroke(4, graphics.LineCapSquare, graphics.LineJoinBevel, 10),
	},
	{
		Name:   "triangle_outline_miter",
		Path:   polygon(10, 50, 32, 10, 54, 50),
		Width:  64,
		Height: 64,
		Op:     styledStroke(3, graphics.LineCapButt, graphics.LineJoinMiter, 10),
	},
	{
		Name:   "quadratic_butt",
		Path:   quadratic(8, 50, 32, 4, 56, 50),
		Width:  64,
		Height: 64,
		Op:     styledStroke(8, graphics.LineCapButt, graphics.LineJoinBevel, 10),
	},
}

// polyline builds an open path through the given x, y pairs.
func polyline(coords ...float64) *path.Data {
	p := (&path.Data{}).MoveTo(pt(coords[0], coords[1]))
	for i := 2; i+1 < len(coords); i += 2 {
		p = p.LineTo(pt(coords[i], coords[i+1]))
	}
	return p
}
