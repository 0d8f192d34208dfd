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
	"image"
	"math/rand/v2"

	"seehuhn.de/go/geom/rect"
)

// Worker scores candidate shapes against a fixed target image.
//
// Each worker owns a scratch buffer, a rasteriser and a random number
// stream, so that different workers can search concurrently.  The
// current canvas is shared between workers and must not change while a
// search is running.
type Worker struct {
	w, h    int
	target  *image.RGBA
	current *image.RGBA
	buffer  *image.RGBA
	rast    *Rasteriser
	rng     *rand.Rand

	score     float64
	counter   int
	antiAlias bool
}

// NewWorker returns a worker for the given target.  The random numbers
// used by the worker are determined by seed and stream.
func NewWorker(target *image.RGBA, seed, stream uint64) *Worker {
	size := target.Bounds().Size()
	clip := rect.Rect{URx: float64(size.X), URy: float64(size.Y)}
	return &Worker{
		w:      size.X,
		h:      size.Y,
		target: target,
		buffer: image.NewRGBA(target.Bounds()),
		rast:   NewRasteriser(clip),
		rng:    rand.New(rand.NewPCG(seed, stream)),
	}
}

// Init prepares the worker for a new search round on top of current,
// whose difference to the target is score.
func (w *Worker) Init(current *image.RGBA, score float64) {
	w.current = current
	copy(w.buffer.Pix, current.Pix)
	w.score = score
	w.counter = 0
}

// Evaluations returns the number of candidates scored since the last
// call to Init.
func (w *Worker) Evaluations() int {
	return w.counter
}

// Energy returns the difference between the target and the current
// canvas with the shape added, painted with the best flat colour for the
// given opacity.
func (w *Worker) Energy(s Shape, alpha int) float64 {
	w.counter++
	lines := rasterizeShape(w.rast, s, w.antiAlias)
	c := computeColor(w.target, w.current, lines, alpha)
	copyLines(w.buffer, w.current, lines)
	drawLines(w.buffer, c, lines)
	return differencePartial(w.target, w.current, w.buffer, w.score, lines)
}

// RandomCandidate returns a new random candidate of the given kind.
func (w *Worker) RandomCandidate(kind ShapeKind, alpha int) *Candidate {
	return newCandidate(w, NewShape(kind, w.w, w.h, w.rng), alpha)
}

// BestRandomCandidate draws n random candidates and returns the one with
// the lowest score.
func (w *Worker) BestRandomCandidate(kind ShapeKind, alpha, n int) *Candidate {
	var best *Candidate
	var bestEnergy float64
	for i := range n {
		c := w.RandomCandidate(kind, alpha)
		energy := c.Energy()
		if i == 0 || energy < bestEnergy {
			bestEnergy = energy
			best = c
		}
	}
	return best
}

// BestHillClimbCandidate runs m random restarts.  Each restart draws n
// random candidates and refines the best of them by hill climbing with
// the given age.  The overall best candidate is returned.
func (w *Worker) BestHillClimbCandidate(kind ShapeKind, alpha, n, age, m int) *Candidate {
	var best *Candidate
	var bestEnergy float64
	for i := range m {
		c := w.BestRandomCandidate(kind, alpha, n)
		before := c.Energy()
		c = HillClimb(c, age)
		energy := c.Energy()
		Logger().Debug("restart",
			"samples", n,
			"before", before,
			"age", age,
			"after", energy)
		if i == 0 || energy < bestEnergy {
			bestEnergy = energy
			best = c
		}
	}
	return best
}
