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

	"seehuhn.de/go/geom/matrix"
)

// ctmCases place unit shapes the way rotated shapes and the output
// scaling do: scale, then rotate, then translate.
var ctmCases = []TestCase{
	{
		Name:   "scale_4x",
		Path:   rectangle(0, 0, 10, 10),
		Width:  128,
		Height: 128,
		Op:     Fill{Rule: NonZero},
		CTM:    matrix.Scale(4, 4).Translate(24, 24),
	},
	{
		Name:   "scale_half",
		Path:   polygon(10, 100, 64, 20, 118, 100),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		CTM:    matrix.Scale(0.5, 0.5),
	},
	{
		Name:   "rotated_rectangle_30",
		Path:   rectangle(-0.5, -0.5, 0.5, 0.5),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		CTM:    place(40, 12, 30, 32, 32),
	},
	{
		Name:   "rotated_rectangle_90",
		Path:   rectangle(-0.5, -0.5, 0.5, 0.5),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		CTM:    place(30, 10, 90, 32, 32),
	},
	{
		Name:   "rotated_ellipse_45",
		Path:   ellipse(0, 0, 1, 1),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		CTM:    place(26, 9, 45, 32, 32),
	},
	{
		Name:   "rotated_ellipse_off_canvas",
		Path:   ellipse(0, 0, 1, 1),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		CTM:    place(30, 6, -20, 60, 4),
	},
	{
		Name:   "shear",
		Path:   rectangle(-15, -15, 15, 15),
		Width:  64,
		Height: 64,
		Op:     Fill{Rule: NonZero},
		CTM:    matrix.Matrix{1, 0, 0.5, 1, 32, 32},
	},
	{
		Name:   "stroke_scaled",
		Path:   quadratic(2, 12, 8, 1, 14, 12),
		Width:  64,
		Height: 64,
		Op:     roundStroke(1),
		CTM:    matrix.Scale(4, 4),
	},
}

// place returns the transformation which scales by (sx, sy), rotates by
// deg degrees and then moves the origin to (tx, ty).
func place(sx, sy, deg, tx, ty float64) matrix.Matrix {
	sin, cos := math.Sincos(deg * math.Pi / 180)
	return matrix.Matrix{sx * cos, sx * sin, -sy * sin, sy * cos, tx, ty}
}
