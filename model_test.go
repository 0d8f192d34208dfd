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
	"errors"
	"image"
	"image/color"
	"math"
	"reflect"
	"slices"
	"strings"
	"testing"
)

func testModel(t testing.TB, seed uint64) *Model {
	t.Helper()
	return NewModel(gradientImage(32, 24), nil,
		WithWorkers(2),
		WithRestarts(2),
		WithSamples(20),
		WithMaxAge(10),
		WithOutputSize(64),
		WithSeed(seed))
}

func TestModelInitialScore(t *testing.T) {
	target := uniformRGBA(image.Rect(0, 0, 2, 2), color.White)
	m := NewModel(target, color.Black, WithWorkers(1))
	if want := math.Sqrt(0.75); math.Abs(m.Score()-want) > 1e-12 {
		t.Errorf("score %g, want %g", m.Score(), want)
	}
	if m.Len() != 0 {
		t.Errorf("new model has %d shapes", m.Len())
	}

	n, err := m.Step(KindRectangle, 255, 0)
	if err != nil {
		t.Fatal(err)
	}
	if n == 0 {
		t.Errorf("no candidates scored")
	}
	if m.Score() >= math.Sqrt(0.75) {
		t.Errorf("score did not improve: %g", m.Score())
	}
}

func TestModelBackground(t *testing.T) {
	target := image.NewRGBA(image.Rect(0, 0, 2, 1))
	target.SetRGBA(0, 0, color.RGBA{0, 100, 200, 255})
	target.SetRGBA(1, 0, color.RGBA{100, 200, 0, 255})
	m := NewModel(target, nil, WithWorkers(1))
	if bg := m.Background(); bg != (color.NRGBA{50, 150, 100, 255}) {
		t.Errorf("background %v", bg)
	}
	if c := m.Current().RGBAAt(1, 0); c != (color.RGBA{50, 150, 100, 255}) {
		t.Errorf("canvas %v", c)
	}
}

func TestOutputSize(t *testing.T) {
	cases := []struct {
		w, h, size int
		sw, sh     int
		scale      float64
	}{
		{200, 100, 1024, 1024, 512, 5.12},
		{100, 200, 1024, 512, 1024, 5.12},
		{64, 64, 32, 32, 32, 0.5},
		{300, 1, 100, 100, 1, 1.0 / 3},
	}
	for _, tc := range cases {
		sw, sh, scale := outputSize(tc.w, tc.h, tc.size)
		if sw != tc.sw || sh != tc.sh || math.Abs(scale-tc.scale) > 1e-12 {
			t.Errorf("outputSize(%d, %d, %d) = %d, %d, %g", tc.w, tc.h, tc.size, sw, sh, scale)
		}
	}
}

func TestModelStep(t *testing.T) {
	m := testModel(t, 1)
	prev := m.Score()
	for i := range 12 {
		kind := ShapeKind(1 + i%int(numKinds-1))
		if _, err := m.Step(kind, 0, 1); err != nil {
			t.Fatal(err)
		}
		if m.Score() > prev {
			t.Fatalf("step %d: score went up from %g to %g", i, prev, m.Score())
		}
		prev = m.Score()
	}

	if len(m.Shapes()) != m.Len() || len(m.Colors()) != m.Len() || len(m.Scores()) != m.Len() {
		t.Fatalf("history lengths %d, %d, %d", len(m.Shapes()), len(m.Colors()), len(m.Scores()))
	}
	if m.Len() == 0 {
		t.Fatal("no shapes added")
	}
	for i := 1; i < m.Len(); i++ {
		if m.Scores()[i] >= m.Scores()[i-1] {
			t.Errorf("shape %d did not improve the score", i)
		}
	}
	if full := differenceFull(m.target, m.current); math.Abs(full-m.Score()) > 1e-9 {
		t.Errorf("tracked score %g, recomputed %g", m.Score(), full)
	}
}

func TestModelStepErrors(t *testing.T) {
	m := testModel(t, 1)
	if _, err := m.Step(ShapeKind(42), 128, 0); !errors.Is(err, ErrUnknownShape) {
		t.Errorf("unknown kind: %v", err)
	}
	if _, err := m.Step(KindTriangle, 256, 0); err == nil {
		t.Errorf("alpha 256 accepted")
	}
	if m.Len() != 0 {
		t.Errorf("failed steps added shapes")
	}
}

func TestModelReproducible(t *testing.T) {
	a := testModel(t, 9)
	b := testModel(t, 9)
	for range 4 {
		a.Step(KindAny, 0, 0)
		b.Step(KindAny, 0, 0)
	}
	if !reflect.DeepEqual(a.Shapes(), b.Shapes()) || !reflect.DeepEqual(a.Colors(), b.Colors()) {
		t.Errorf("equal seeds gave different models")
	}
}

func TestStepCountsRepeatEvaluations(t *testing.T) {
	newModel := func() *Model {
		return NewModel(gradientImage(32, 24), nil,
			WithWorkers(2),
			WithRestarts(2),
			WithSamples(500),
			WithMaxAge(10),
			WithOutputSize(64),
			WithSeed(5))
	}

	single, err := newModel().Step(KindEllipse, 128, 0)
	if err != nil {
		t.Fatal(err)
	}
	m := newModel()
	repeated, err := m.Step(KindEllipse, 128, 3)
	if err != nil {
		t.Fatal(err)
	}
	if m.Len() == 0 {
		t.Fatal("no shape committed")
	}

	// the restart phase is identical, the repeat phase adds to it
	if repeated <= single {
		t.Errorf("with repeats %d evaluations, without %d", repeated, single)
	}
}

func TestWithSeed(t *testing.T) {
	o := defaultOptions()
	clock := o.seed
	WithSeed(0)(&o)
	if o.seed != clock {
		t.Errorf("WithSeed(0) replaced the clock seed %d by %d", clock, o.seed)
	}
	WithSeed(42)(&o)
	if o.seed != 42 {
		t.Errorf("seed %d, want 42", o.seed)
	}
}

func TestModelAdd(t *testing.T) {
	m := testModel(t, 1)
	m.Add(&Rectangle{X1: 4, Y1: 4, X2: 20, Y2: 15, canvas: canvas{32, 24}}, 200)
	m.Add(&Ellipse{X: 10, Y: 10, Rx: 30, Ry: 5, canvas: canvas{32, 24}}, 60)

	if m.Len() != 2 {
		t.Fatalf("%d shapes", m.Len())
	}
	if full := differenceFull(m.target, m.current); math.Abs(full-m.Score()) > 1e-9 {
		t.Errorf("tracked score %g, recomputed %g", m.Score(), full)
	}
	if c := m.Colors()[0]; c.A != 200 {
		t.Errorf("colour %v", c)
	}
}

func TestModelAddOffCanvas(t *testing.T) {
	m := testModel(t, 1)
	before := m.Score()
	pix := slices.Clone(m.Current().Pix)

	m.Add(&Ellipse{X: -100, Y: 10, Rx: 5, Ry: 5, canvas: canvas{32, 24}}, 128)

	if c := m.Colors()[0]; c != (color.NRGBA{}) {
		t.Errorf("colour %v, want transparent black", c)
	}
	if math.Abs(m.Score()-before) > 1e-12 {
		t.Errorf("score changed from %g to %g", before, m.Score())
	}
	if !slices.Equal(pix, m.Current().Pix) {
		t.Error("current image changed")
	}
}

func TestModelFrames(t *testing.T) {
	m := testModel(t, 2)
	for range 7 {
		m.Step(KindTriangle, 128, 0)
	}
	n := m.Len()

	frames := m.Frames(1)
	if len(frames) != n {
		t.Fatalf("%d frames for %d shapes", len(frames), n)
	}
	last := frames[len(frames)-1].(*image.RGBA)
	if !reflect.DeepEqual(last.Pix, m.Result().Pix) {
		t.Errorf("last frame differs from the result")
	}
	if got, want := len(m.Frames(3)), (n+2)/3; got != want {
		t.Errorf("Frames(3): %d frames, want %d", got, want)
	}

	// with delta 0 every strictly improving shape gets a frame
	if got := len(m.FramesByDelta(0)); got != n+1 {
		t.Errorf("FramesByDelta(0): %d frames, want %d", got, n+1)
	}
	if got := len(m.FramesByDelta(10)); got != 1 {
		t.Errorf("FramesByDelta(10): %d frames, want 1", got)
	}
}

func TestModelSVG(t *testing.T) {
	m := testModel(t, 3)
	empty := m.SVG()
	if !strings.Contains(empty, "<svg") || strings.Contains(empty, "<g") {
		t.Errorf("empty model: %q", empty)
	}

	m.Add(&Rectangle{X1: 1, Y1: 1, X2: 5, Y2: 5, canvas: canvas{32, 24}}, 128)
	m.Add(&Quadratic{X1: 2, Y1: 20, X2: 16, Y2: 2, X3: 30, Y3: 20, Width: 2, canvas: canvas{32, 24}}, 64)
	m.Add(&Ellipse{X: 16, Y: 12, Rx: 4, Ry: 4, Circle: true, canvas: canvas{32, 24}}, 128)

	doc := m.SVG()
	if doc != m.SVG() {
		t.Errorf("SVG output is not deterministic")
	}
	for _, want := range []string{
		`viewBox="0.00 0.00 32.00 24.00"`,
		`fill-opacity="0.501961"`,
		`<rect`,
		`fill="none"`,
		`stroke-width="2"`,
		`stroke-opacity="0.250980"`,
		`<circle`,
		`</g>`,
		`</svg>`,
	} {
		if !strings.Contains(doc, want) {
			t.Errorf("missing %q in\n%s", want, doc)
		}
	}

	frames := m.SVGFrames(1)
	if len(frames) != 3 || frames[2] != doc {
		t.Errorf("SVGFrames(1) does not end with the full document")
	}
	if strings.Count(frames[0], "<rect") != 2 {
		t.Errorf("first frame: %q", frames[0])
	}
}
