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
	"fmt"
	"image"
	"image/color"
	"math/rand/v2"
	"testing"

	"golang.org/x/image/vector"

	"seehuhn.de/go/geom/path"
	"seehuhn.de/go/geom/rect"
)

func BenchmarkRasteriserO(b *testing.B) {
	sizes := []int{20, 200, 2000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{LLx: 0, LLy: 0, URx: float64(size), URy: float64(size)}
			r := NewRasteriser(clip)

			dst := image.NewAlpha(image.Rect(0, 0, size, size))

			center := float64(size) / 2
			outerR := float64(size) * 0.45
			innerR := float64(size) * 0.30

			// Create the "O" path: outer circle CCW, inner circle CW
			oPath := makeOPath(center, center, outerR, innerR)

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				r.Reset(clip)
				r.FillEvenOdd(oPath, func(y, xMin int, coverage []float32) {
					row := dst.Pix[y*dst.Stride+xMin:]
					for i, c := range coverage {
						row[i] = uint8(c * 255)
					}
				})
			}
		})
	}
}

// BenchmarkSpansO measures the hard-edged span fill used by the search.
func BenchmarkSpansO(b *testing.B) {
	sizes := []int{20, 200, 2000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			clip := rect.Rect{URx: float64(size), URy: float64(size)}
			r := NewRasteriser(clip)
			center := float64(size) / 2
			oPath := makeOPath(center, center, float64(size)*0.45, float64(size)*0.30)

			b.ReportAllocs()
			for b.Loop() {
				r.FillSpans(oPath)
			}
		})
	}
}

// BenchmarkVectorO benchmarks x/image/vector drawing an "O" shape.
func BenchmarkVectorO(b *testing.B) {
	sizes := []int{20, 200, 2000}

	for _, size := range sizes {
		b.Run(fmt.Sprintf("%dx%d", size, size), func(b *testing.B) {
			r := vector.NewRasterizer(size, size)

			dst := image.NewAlpha(image.Rect(0, 0, size, size))
			src := image.NewUniform(color.Alpha{255})

			center := float32(size) / 2
			outerR := float32(size) * 0.45
			innerR := float32(size) * 0.30

			b.ResetTimer()
			b.ReportAllocs()

			for b.Loop() {
				r.Reset(size, size)

				// Outer circle (counter-clockwise)
				addCircleToVector(r, center, center, outerR, false)
				// Inner circle (clockwise)
				addCircleToVector(r, center, center, innerR, true)

				// Rasterize and composite
				r.Draw(dst, dst.Bounds(), src, image.Point{})
			}
		})
	}
}

// BenchmarkEnergy measures the cost of scoring one candidate, for every
// shape kind.
func BenchmarkEnergy(b *testing.B) {
	target := gradientImage(256, 256)
	for k := KindTriangle; k.Valid(); k++ {
		b.Run(k.String(), func(b *testing.B) {
			w := NewWorker(target, 1, 0)
			w.Init(uniformRGBA(target.Bounds(), color.White), differenceFull(target, uniformRGBA(target.Bounds(), color.White)))
			rng := rand.New(rand.NewPCG(2, 0))
			shapes := make([]Shape, 64)
			for i := range shapes {
				shapes[i] = NewShape(k, 256, 256, rng)
			}

			b.ReportAllocs()
			i := 0
			for b.Loop() {
				w.Energy(shapes[i%len(shapes)], 128)
				i++
			}
		})
	}
}

// makeOPath creates an "O" shape path for our rasterizer.
// Outer circle is counter-clockwise, inner circle is clockwise.
func makeOPath(cx, cy, outerR, innerR float64) *path.Data {
	p := &path.Data{}
	addCircleToPath(p, cx, cy, outerR, false)
	addCircleToPath(p, cx, cy, innerR, true)
	return p
}

// addCircleToPath adds a circle to a path using cubic Bézier curves.
func addCircleToPath(p *path.Data, cx, cy, r float64, clockwise bool) {
	// Magic number for circular arc approximation with cubic Bézier
	const k = 0.5522847498
	kr := k * r

	p.MoveTo(vec2(cx, cy-r))
	if clockwise {
		p.CubeTo(vec2(cx-kr, cy-r), vec2(cx-r, cy-kr), vec2(cx-r, cy))
		p.CubeTo(vec2(cx-r, cy+kr), vec2(cx-kr, cy+r), vec2(cx, cy+r))
		p.CubeTo(vec2(cx+kr, cy+r), vec2(cx+r, cy+kr), vec2(cx+r, cy))
		p.CubeTo(vec2(cx+r, cy-kr), vec2(cx+kr, cy-r), vec2(cx, cy-r))
	} else {
		p.CubeTo(vec2(cx+kr, cy-r), vec2(cx+r, cy-kr), vec2(cx+r, cy))
		p.CubeTo(vec2(cx+r, cy+kr), vec2(cx+kr, cy+r), vec2(cx, cy+r))
		p.CubeTo(vec2(cx-kr, cy+r), vec2(cx-r, cy+kr), vec2(cx-r, cy))
		p.CubeTo(vec2(cx-r, cy-kr), vec2(cx-kr, cy-r), vec2(cx, cy-r))
	}
	p.Close()
}

// addCircleToVector adds a circle to a vector.Rasterizer using cubic Bézier curves.
func addCircleToVector(r *vector.Rasterizer, cx, cy, radius float32, clockwise bool) {
	const k = float32(0.5522847498)
	kr := k * radius

	if clockwise {
		r.MoveTo(cx, cy-radius)
		r.CubeTo(cx-kr, cy-radius, cx-radius, cy-kr, cx-radius, cy)
		r.CubeTo(cx-radius, cy+kr, cx-kr, cy+radius, cx, cy+radius)
		r.CubeTo(cx+kr, cy+radius, cx+radius, cy+kr, cx+radius, cy)
		r.CubeTo(cx+radius, cy-kr, cx+kr, cy-radius, cx, cy-radius)
	} else {
		r.MoveTo(cx, cy-radius)
		r.CubeTo(cx+kr, cy-radius, cx+radius, cy-kr, cx+radius, cy)
		r.CubeTo(cx+radius, cy+kr, cx+kr, cy+radius, cx, cy+radius)
		r.CubeTo(cx-kr, cy+radius, cx-radius, cy+kr, cx-radius, cy)
		r.CubeTo(cx-radius, cy-kr, cx-kr, cy-radius, cx, cy-radius)
	}
	r.ClosePath()
}
