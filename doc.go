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

// Package primitive approximates a raster image by a sequence of
// semi-transparent geometric shapes.
//
// Shapes are added one at a time.  For every new shape a pool of
// [Worker]s samples random candidates, improves the best of them by hill
// climbing, and the overall best candidate is painted onto the canvas
// using the colour which minimises the difference to the target image.
//
// Shapes are converted to pixels by a [Rasteriser], which either produces
// crisp spans (used during the search) or exact-area anti-aliased coverage
// (used for the output image).  The finished approximation can be
// exported as a raster image, as a sequence of animation frames or as an
// SVG document.
package primitive
