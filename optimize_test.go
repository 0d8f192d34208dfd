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
	"bytes"
	"image/color"
	"reflect"
	"testing"
)

func newTestWorker(t testing.TB, seed uint64) *Worker {
	t.Helper()
	target := gradientImage(48, 32)
	current := uniformRGBA(target.Bounds(), color.NRGBA{128, 128, 128, 255})
	w := NewWorker(target, seed, 0)
	w.Init(current, differenceFull(target, current))
	return w
}

func TestCandidateAlpha(t *testing.T) {
	w := newTestWorker(t, 1)

	c := w.RandomCandidate(KindTriangle, 0)
	if c.Alpha != 128 || !c.MutateAlpha {
		t.Fatalf("alpha %d, mutate %t", c.Alpha, c.MutateAlpha)
	}
	for range 1000 {
		c.DoMove()
		if c.Alpha < 1 || c.Alpha > 255 {
			t.Fatalf("alpha %d out of range", c.Alpha)
		}
	}

	c = w.RandomCandidate(KindTriangle, 200)
	for range 100 {
		c.DoMove()
	}
	if c.Alpha != 200 || c.MutateAlpha {
		t.Errorf("fixed alpha changed to %d", c.Alpha)
	}
}

func TestCandidateUndo(t *testing.T) {
	w := newTestWorker(t, 2)
	c := w.RandomCandidate(KindRotatedEllipse, 0)
	energy := c.Energy()
	before := c.Copy()

	undo := c.DoMove()
	if c.Score != -1 {
		t.Errorf("score not reset after move")
	}
	c.UndoMove(undo)
	if !reflect.DeepEqual(c.Shape, before.Shape) || c.Alpha != before.Alpha {
		t.Errorf("undo did not restore the state")
	}
	if c.Energy() != energy {
		t.Errorf("energy %g after undo, want %g", c.Energy(), energy)
	}
}

func TestHillClimbZeroAge(t *testing.T) {
	w := newTestWorker(t, 3)
	c := w.RandomCandidate(KindTriangle, 128)
	res := HillClimb(c, 0)
	if !reflect.DeepEqual(res.Shape, c.Shape) || res.Alpha != c.Alpha {
		t.Errorf("HillClimb with age 0 changed the candidate")
	}
	if res.Energy() != c.Energy() {
		t.Errorf("energy %g, want %g", res.Energy(), c.Energy())
	}
}

func TestHillClimbImproves(t *testing.T) {
	w := newTestWorker(t, 4)
	for k := KindTriangle; k.Valid(); k++ {
		c := w.RandomCandidate(k, 0)
		orig := c.Copy()
		start := c.Energy()

		res := HillClimb(c, 50)
		if res.Energy() > start {
			t.Errorf("%s: energy went up from %g to %g", k, start, res.Energy())
		}
		if !reflect.DeepEqual(c.Shape, orig.Shape) {
			t.Errorf("%s: input candidate was modified", k)
		}

		// the stored score must match a fresh evaluation
		fresh := res.Copy()
		fresh.Score = -1
		if fresh.Energy() != res.Energy() {
			t.Errorf("%s: cached score %g, recomputed %g", k, res.Energy(), fresh.Energy())
		}
	}
}

func TestWorkerEnergy(t *testing.T) {
	w := newTestWorker(t, 5)
	current := bytes.Clone(w.current.Pix)

	c := w.RandomCandidate(KindEllipse, 100)
	if w.Evaluations() != 0 {
		t.Fatalf("counter %d before scoring", w.Evaluations())
	}
	c.Energy()
	c.Energy()
	if w.Evaluations() != 1 {
		t.Errorf("counter %d after scoring once", w.Evaluations())
	}
	if !bytes.Equal(current, w.current.Pix) {
		t.Errorf("scoring modified the canvas")
	}

	w.Init(w.current, w.score)
	if w.Evaluations() != 0 {
		t.Errorf("Init did not reset the counter")
	}
}

func TestBestRandomCandidateSingle(t *testing.T) {
	a := newTestWorker(t, 6)
	b := newTestWorker(t, 6)

	ca := a.BestRandomCandidate(KindPentagon, 128, 1)
	cb := b.RandomCandidate(KindPentagon, 128)
	if !reflect.DeepEqual(ca.Shape, cb.Shape) {
		t.Fatalf("best of one differs from a single sample")
	}
	if ca.Energy() != cb.Energy() {
		t.Errorf("energies %g and %g", ca.Energy(), cb.Energy())
	}
}

func TestWorkerReproducible(t *testing.T) {
	a := newTestWorker(t, 7)
	b := newTestWorker(t, 7)

	ca := a.BestHillClimbCandidate(KindAny, 0, 20, 10, 2)
	cb := b.BestHillClimbCandidate(KindAny, 0, 20, 10, 2)
	if !reflect.DeepEqual(ca.Shape, cb.Shape) || ca.Alpha != cb.Alpha {
		t.Errorf("equal seeds gave different results")
	}
	if a.Evaluations() != b.Evaluations() {
		t.Errorf("evaluations %d and %d", a.Evaluations(), b.Evaluations())
	}
}
