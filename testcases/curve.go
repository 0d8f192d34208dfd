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

var curveCases = []TestCase{
	{
		Name:   "circle",
		Path:   ellipse(32, 32, 20, 20),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "ellipse_wide",
		Path:   ellipse(32, 32, 28, 8),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "ellipse_small",
		Path:   ellipse(10.5, 10.5, 1.5, 1),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "ellipse_clipped",
		Path:   ellipse(0, 32, 20, 30),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
	},
	{
		Name:   "quadratic_thin",
		Path:   quadratic(8, 50, 32, 4, 56, 50),
		Width:  64,
		Height: 64,
		Op:     roundStroke(0.5),
	},
	{
		Name:   "quadratic_medium",
		Path:   quadratic(8, 50, 32, 4, 56, 50),
		Width:  64,
		Height: 64,
		Op:     roundStroke(4),
	},
	{
		Name:   "quadratic_thick",
		Path:   quadratic(8, 56, 20, 8, 56, 40),
		Width:  64,
		Height: 64,
		Op:     roundStroke(16),
	},
	{
		Name:   "quadratic_off_canvas",
		Path:   quadratic(-10, 20, 32, 70, 74, 20),
		Width:  64,
		Height: 64,
		Op:     roundStroke(6),
	},
}

// ellipse builds an axis-aligned ellipse from four cubic Bézier arcs.
func ellipse(cx, cy, rx, ry float64) *path.Data {
	const k = 0.5522847498
	kx, ky := k*rx, k*ry
	return (&path.Data{}).
		MoveTo(pt(cx+rx, cy)).
		CubeTo(pt(cx+rx, cy+ky), pt(cx+kx, cy+ry), pt(cx, cy+ry)).
		CubeTo(pt(cx-kx, cy+ry), pt(cx-rx, cy+ky), pt(cx-rx, cy)).
		CubeTo(pt(cx-rx, cy-ky), pt(cx-kx, cy-ry), pt(cx, cy-ry)).
		CubeTo(pt(cx+kx, cy-ry), pt(cx+rx, cy-ky), pt(cx+rx, cy)).
		Close()
}

// quadratic builds an open quadratic Bézier curve.
func quadratic(x1, y1, x2, y2, x3, y3 float64) *path.Data {
	return (&path.Data{}).
		MoveTo(pt(x1, y1)).
		QuadTo(pt(x2, y2), pt(x3, y3))
}
