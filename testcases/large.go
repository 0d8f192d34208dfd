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
)

// largeCases have bounding boxes above 65536 pixels, so that the
// rasteriser switches to the active edge list.
var largeCases = []TestCase{
	{
		Name:   "large_rectangle",
		Path:   rectangle(50, 50, 462, 462),
		Width:  512,
		Height: 512,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "large_frame_evenodd",
		Path:   frame(256, 256, 200, 100),
		Width:  512,
		Height: 512,
		Op:     Fill{Rule: EvenOdd},
	},
	{
		Name:   "large_diamond",
		Path:   polygon(256, 76, 436, 256, 256, 436, 76, 256),
		Width:  512,
		Height: 512,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "large_ellipse",
		Path:   ellipse(256, 200, 240, 150),
		Width:  512,
		Height: 400,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "large_grid",
		Path:   rectangleGrid(8, 8, 512, 512, 4),
		Width:  512,
		Height: 512,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "large_clipped",
		Path:   rectangle(-100, 100, 612, 400),
		Width:  512,
		Height: 512,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "large_quadratic",
		Path:   quadratic(20, 480, 256, -200, 490, 480),
		Width:  512,
		Height: 512,
		Op:     roundStroke(16),
	},
}

// frame builds two concentric squares with the given half sizes.
func frame(cx, cy, outer, inner float64) *path.Data {
	p := rectangle(cx-outer, cy-outer, cx+outer, cy+outer)
	return p.
		MoveTo(pt(cx-inner, cy-inner)).
		LineTo(pt(cx+inner, cy-inner)).
		LineTo(pt(cx+inner, cy+inner)).
		LineTo(pt(cx-inner, cy+inner)).
		Close()
}

// rectangleGrid builds a grid of rectangles.
func rectangleGrid(rows, cols, width, height int, gap float64) *path.Data {
	cellW := float64(width) / float64(cols)
	cellH := float64(height) / float64(rows)

	p := &path.Data{}
	for row := range rows {
		for col := range cols {
			x1 := float64(col)*cellW + gap
			y1 := float64(row)*cellH + gap
			x2 := float64(col+1)*cellW - gap
			y2 := float64(row+1)*cellH - gap

			p = p.
				MoveTo(pt(x1, y1)).
				LineTo(pt(x2, y1)).
				LineTo(pt(x2, y2)).
				LineTo(pt(x1, y2)).
				Close()
		}
	}

	return p
}
