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

// maxHillClimbMoves bounds the total number of moves in one hill climb.
const maxHillClimbMoves = 100000

// HillClimb improves c by random moves, keeping only strict improvements.
// The climb ends after maxAge consecutive moves without improvement.
// The best state is returned as a new Candidate; c itself is unchanged.
func HillClimb(c *Candidate, maxAge int) *Candidate {
	state := c.Copy()
	best := state.Copy()
	bestEnergy := state.Energy()
	best.Score = bestEnergy

	age := 0
	for step := 0; age < maxAge && step < maxHillClimbMoves; step++ {
		undo := state.DoMove()
		energy := state.Energy()
		if energy >= bestEnergy {
			state.UndoMove(undo)
			age++
			continue
		}
		bestEnergy = energy
		best = state.Copy()
		age = 0
	}
	return best
}
