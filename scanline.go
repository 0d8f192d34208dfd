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
	"slices"
)

// maxAlpha is the coverage weight of a fully covered scanline.
const maxAlpha = 0xffff

// Scanline is a horizontal run of pixels covered by a shape.
// X1 and X2 are both inclusive.  Alpha is the coverage weight in the
// range 0 to 0xffff.
type Scanline struct {
	Y, X1, X2 int
	Alpha     uint32
}

// cropScanlines removes the parts of lines which fall outside the
// w×h canvas.  The slice is modified in place.
func cropScanlines(lines []Scanline, w, h int) []Scanline {
	out := lines[:0]
	for _, l := range lines {
		if l.Y < 0 || l.Y >= h {
			continue
		}
		l.X1 = max(l.X1, 0)
		l.X2 = min(l.X2, w-1)
		if l.X1 > l.X2 {
			continue
		}
		out = append(out, l)
	}
	return out
}

// mergeScanlines sorts lines by row and start column and joins runs of
// equal weight which overlap or touch.  After merging, no two scanlines
// share a pixel.  The slice is modified in place.
func mergeScanlines(lines []Scanline) []Scanline {
	if len(lines) < 2 {
		return lines
	}
	slices.SortFunc(lines, func(a, b Scanline) int {
		if c := cmp.Compare(a.Y, b.Y); c != 0 {
			return c
		}
		return cmp.Compare(a.X1, b.X1)
	})

	out := lines[:1]
	for _, l := range lines[1:] {
		last := &out[len(out)-1]
		if l.Y == last.Y && l.X1 <= last.X2+1 && l.Alpha == last.Alpha {
			last.X2 = max(last.X2, l.X2)
			continue
		}
		if l.Y == last.Y && l.X1 <= last.X2 {
			// overlapping runs of different weight: keep the earlier one
			l.X1 = last.X2 + 1
			if l.X1 > l.X2 {
				continue
			}
		}
		out = append(out, l)
	}
	return out
}
