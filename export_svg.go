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
	"image/color"
	"strconv"
	"strings"

	svg "github.com/ajstarks/svgo/float"
	"github.com/lucasb-eyer/go-colorful"
)

// SVG returns the model as an SVG document.  The document has the size of
// the output image; shape coordinates are given at working resolution.
func (m *Model) SVG() string {
	return m.svg(len(m.shapes))
}

// SVGFrames returns one SVG document for every nth shape, matching the
// images returned by [Model.Frames].
func (m *Model) SVGFrames(nth int) []string {
	nth = max(nth, 1)
	var frames []string
	for i := range m.shapes {
		if i%nth == 0 {
			frames = append(frames, m.svg(i+1))
		}
	}
	return frames
}

// svg renders the first n shapes.
func (m *Model) svg(n int) string {
	b := &strings.Builder{}
	s := svg.New(b)
	s.Startview(float64(m.sw), float64(m.sh), 0, 0, float64(m.w), float64(m.h))
	s.Rect(0, 0, float64(m.w), float64(m.h), fillAttr(m.background))

	if n > 0 {
		first := m.colors[0].A
		s.Group(opacityAttr("fill-opacity", first))
		for i, shape := range m.shapes[:n] {
			c := m.colors[i]
			var attrs []string
			if shape.Outline().StrokeWidth > 0 {
				attrs = append(attrs, `fill="none"`, `stroke="`+hexColor(c)+`"`)
				attrs = append(attrs, `stroke-width="`+svgNum(shape.Outline().StrokeWidth)+`"`)
				attrs = append(attrs, `stroke-linecap="round"`, `stroke-linejoin="round"`)
				attrs = append(attrs, opacityAttr("stroke-opacity", c.A))
			} else {
				attrs = append(attrs, fillAttr(c))
				if c.A != first {
					attrs = append(attrs, opacityAttr("fill-opacity", c.A))
				}
			}
			shape.DrawSVG(s, attrs...)
		}
		s.Gend()
	}
	s.End()
	return b.String()
}

func hexColor(c color.NRGBA) string {
	return colorful.Color{
		R: float64(c.R) / 255,
		G: float64(c.G) / 255,
		B: float64(c.B) / 255,
	}.Hex()
}

func fillAttr(c color.NRGBA) string {
	return `fill="` + hexColor(c) + `"`
}

func opacityAttr(name string, a uint8) string {
	return name + `="` + strconv.FormatFloat(float64(a)/255, 'f', 6, 64) + `"`
}
