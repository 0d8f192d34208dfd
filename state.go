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

// Candidate is a shape together with its opacity, as considered by the
// search.  The score is computed lazily by the owning Worker.
type Candidate struct {
	Shape Shape

	// Alpha is the opacity of the shape, between 1 and 255.
	Alpha int

	// MutateAlpha is set if the search may change Alpha.
	MutateAlpha bool

	// Score is the image difference after adding the shape, or -1 if it
	// has not been computed yet.
	Score float64

	worker *Worker
}

// newCandidate returns an unscored candidate.  An alpha of zero lets the
// search choose the opacity, starting from 128.
func newCandidate(w *Worker, s Shape, alpha int) *Candidate {
	mutateAlpha := false
	if alpha == 0 {
		alpha = 128
		mutateAlpha = true
	}
	return &Candidate{
		Shape:       s,
		Alpha:       alpha,
		MutateAlpha: mutateAlpha,
		Score:       -1,
		worker:      w,
	}
}

// Energy returns the score of the candidate, computing it if needed.
func (c *Candidate) Energy() float64 {
	if c.Score < 0 {
		c.Score = c.worker.Energy(c.Shape, c.Alpha)
	}
	return c.Score
}

// DoMove randomly changes the candidate and returns the previous state,
// to be passed to UndoMove.
func (c *Candidate) DoMove() *Candidate {
	old := c.Copy()
	c.Shape.Mutate(c.worker.rng)
	if c.MutateAlpha {
		c.Alpha = clampInt(c.Alpha+c.worker.rng.IntN(21)-10, 1, 255)
	}
	c.Score = -1
	return old
}

// UndoMove restores the state returned by DoMove.
func (c *Candidate) UndoMove(undo *Candidate) {
	c.Shape = undo.Shape
	c.Alpha = undo.Alpha
	c.Score = undo.Score
}

// Copy returns a deep copy of the candidate.
func (c *Candidate) Copy() *Candidate {
	res := *c
	res.Shape = c.Shape.Copy()
	return &res
}
