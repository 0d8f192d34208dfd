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

package main

import (
	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/vec"
	"seehuhn.de/go/pdf"
	"seehuhn.de/go/pdf/document"
	"seehuhn.de/go/pdf/graphics"
	"seehuhn.de/go/pdf/graphics/color"

	"seehuhn.de/go/primitive"
)

// writePDF writes the model as a single page PDF file.  One PDF unit
// corresponds to one pixel of the output image.
func writePDF(fname string, model *primitive.Model) error {
	w, h, scale := model.OutputSize()
	paper := &pdf.Rectangle{
		URx: float64(w),
		URy: float64(h),
	}

	page, err := document.CreateSinglePage(fname, paper, pdf.V1_7, nil)
	if err != nil {
		return err
	}

	page.SetFillColor(pdfColor(model.Background()))
	page.Rectangle(0, 0, float64(w), float64(h))
	page.Fill()

	// PDF has the origin in the bottom-left corner.
	page.Transform(matrix.Matrix{scale, 0, 0, -scale, 0, float64(h)})

	colors := model.Colors()
	for i, shape := range model.Shapes() {
		c := colors[i]
		o := shape.Outline()
		alpha := float64(c.A) / 255
		if o.StrokeWidth > 0 {
			page.SetStrokeColor(pdfColor(c))
			page.SetStrokeAlpha(alpha)
			page.SetLineWidth(o.StrokeWidth)
			page.SetLineCap(graphics.LineCapRound)
			page.SetLineJoin(graphics.LineJoinRound)
		} else {
			page.SetFillColor(pdfColor(c))
			page.SetFillAlpha(alpha)
		}

		for cmd, pts := range o.Path.Iter().ToCubic() {
			switch cmd {
			case path.CmdMoveTo:
				p := apply(o.CTM, pts[0])
				page.MoveTo(p.X, p.Y)
			case path.CmdLineTo:
				p := apply(o.CTM, pts[0])
				page.LineTo(p.X, p.Y)
			case path.CmdCubeTo:
				p1 := apply(o.CTM, pts[0])
				p2 := apply(o.CTM, pts[1])
				p3 := apply(o.CTM, pts[2])
				page.CurveTo(p1.X, p1.Y, p2.X, p2.Y, p3.X, p3.Y)
			case path.CmdClose:
				page.ClosePath()
			}
		}

		if o.StrokeWidth > 0 {
			page.Stroke()
		} else {
			page.Fill()
		}
	}

	return page.Close()
}

func pdfColor(c interface{ RGBA() (r, g, b, a uint32) }) color.Color {
	r, g, b, a := c.RGBA()
	if a == 0 {
		return color.DeviceRGB(0, 0, 0)
	}
	// un-premultiply
	return color.DeviceRGB(
		float64(r)/float64(a),
		float64(g)/float64(a),
		float64(b)/float64(a))
}

// apply maps a point through the transformation m.
func apply(m matrix.Matrix, p vec.Vec2) vec.Vec2 {
	return vec.Vec2{
		X: m[0]*p.X + m[2]*p.Y + m[4],
		Y: m[1]*p.X + m[3]*p.Y + m[5],
	}
}
