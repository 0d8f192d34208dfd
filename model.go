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
	"sync"
	"time"

	"seehuhn.de/go/geom/matrix"
	"seehuhn.de/go/geom/rect"
)

// Model approximates a target image by a growing list of shapes.
//
// The search runs at the resolution of the target image.  Every committed
// shape is also rendered, anti-aliased, into an output image whose longer
// side has the configured output size.
//
// A Model is not safe for concurrent use.
type Model struct {
	w, h   int
	sw, sh int
	scale  float64

	background color.NRGBA
	target     *image.RGBA
	current    *image.RGBA
	scratch    *image.RGBA
	result     *image.RGBA
	score      float64

	shapes []Shape
	colors []color.NRGBA
	scores []float64

	workers []*Worker
	rast    *Rasteriser
	outRast *Rasteriser
	opts    options
}

// NewModel returns a model for the given target image.  The canvas
// starts out filled with background; if background is nil, the average
// colour of the target is used.
func NewModel(target image.Image, background color.Color, opts ...Option) *Model {
	o := defaultOptions()
	for _, opt := range opts {
		opt(&o)
	}

	t := imageToRGBA(target)
	size := t.Bounds().Size()
	w, h := size.X, size.Y

	var bg color.NRGBA
	if background == nil {
		bg = averageImageColor(t)
	} else {
		bg = color.NRGBAModel.Convert(background).(color.NRGBA)
	}

	sw, sh, scale := outputSize(w, h, o.outputSize)

	m := &Model{
		w:          w,
		h:          h,
		sw:         sw,
		sh:         sh,
		scale:      scale,
		background: bg,
		target:     t,
		current:    uniformRGBA(t.Bounds(), bg),
		scratch:    image.NewRGBA(t.Bounds()),
		result:     uniformRGBA(image.Rect(0, 0, sw, sh), bg),
		rast:       NewRasteriser(rect.Rect{URx: float64(w), URy: float64(h)}),
		outRast:    NewRasteriser(rect.Rect{URx: float64(sw), URy: float64(sh)}),
		opts:       o,
	}
	m.score = differenceFull(m.target, m.current)

	for i := range o.workers {
		wk := NewWorker(t, o.seed, uint64(i))
		wk.antiAlias = o.antiAlias
		m.workers = append(m.workers, wk)
	}
	return m
}

// outputSize returns the size of the output image, and its scale
// relative to the w×h working image.
func outputSize(w, h, size int) (sw, sh int, scale float64) {
	aspect := float64(w) / float64(h)
	if aspect >= 1 {
		sw = size
		sh = int(float64(size) / aspect)
		scale = float64(size) / float64(w)
	} else {
		sw = int(float64(size) * aspect)
		sh = size
		scale = float64(size) / float64(h)
	}
	return max(sw, 1), max(sh, 1), scale
}

// Score returns the current difference between the canvas and the
// target, in the range 0 to 1.
func (m *Model) Score() float64 { return m.score }

// Len returns the number of committed shapes.
func (m *Model) Len() int { return len(m.shapes) }

// Shapes returns the committed shapes, in painting order.
func (m *Model) Shapes() []Shape { return m.shapes }

// Colors returns the colours of the committed shapes.
func (m *Model) Colors() []color.NRGBA { return m.colors }

// Scores returns the score after each committed shape.
func (m *Model) Scores() []float64 { return m.scores }

// Background returns the colour of the empty canvas.
func (m *Model) Background() color.NRGBA { return m.background }

// Current returns the canvas at working resolution.
func (m *Model) Current() *image.RGBA { return m.current }

// Result returns the canvas at output resolution.
func (m *Model) Result() *image.RGBA { return m.result }

// Size returns the size of the working canvas.
func (m *Model) Size() (w, h int) { return m.w, m.h }

// OutputSize returns the size of the output image and the scale factor
// from working to output resolution.
func (m *Model) OutputSize() (w, h int, scale float64) { return m.sw, m.sh, m.scale }

// Add paints shape onto the canvas with the given opacity.  The colour
// is chosen to minimise the difference to the target.
func (m *Model) Add(shape Shape, alpha int) {
	lines := rasterizeShape(m.rast, shape, m.opts.antiAlias)
	c := computeColor(m.target, m.current, lines, alpha)
	copyLines(m.scratch, m.current, lines)
	drawLines(m.current, c, lines)
	m.score = differencePartial(m.target, m.scratch, m.current, m.score, lines)

	m.shapes = append(m.shapes, shape)
	m.colors = append(m.colors, c)
	m.scores = append(m.scores, m.score)

	m.draw(m.result, shape, c)
}

// draw renders a shape at output resolution.
func (m *Model) draw(dst *image.RGBA, shape Shape, c color.NRGBA) {
	lines := rasterizeOutline(m.outRast, shape.Outline(), matrix.Scale(m.scale, m.scale))
	drawLines(dst, c, lines)
}

// Step searches for one new shape and adds it to the model, unless no
// candidate improves the score.  Then up to repeat further shapes are
// found by hill climbing from the previous one.  The kind selects the
// shape type; alpha is the opacity, or zero to let the search choose.
//
// The return value is the number of candidates scored.
func (m *Model) Step(kind ShapeKind, alpha, repeat int) (int, error) {
	if !kind.Valid() {
		return 0, fmt.Errorf("step: %w: %d", ErrUnknownShape, int(kind))
	}
	if alpha < 0 || alpha > 255 {
		return 0, fmt.Errorf("step: invalid alpha %d", alpha)
	}
	start := time.Now()

	state := m.runWorkers(kind, alpha)
	counter := 0
	for _, w := range m.workers {
		counter += w.Evaluations()
	}
	if state.Energy() < m.score {
		m.Add(state.Shape, state.Alpha)

		for range repeat {
			// Init restarts the worker's evaluation count
			state.worker.Init(m.current, m.score)
			state.Score = -1
			a := state.Energy()
			state = HillClimb(state, m.opts.maxAge)
			b := state.Energy()
			counter += state.worker.Evaluations()
			if a == b || b >= m.score {
				break
			}
			m.Add(state.Shape, state.Alpha)
		}
	}

	elapsed := time.Since(start)
	Logger().Info("step",
		"shapes", len(m.shapes),
		"score", m.score,
		"evaluations", counter,
		"elapsed", elapsed,
		"rate", float64(counter)/elapsed.Seconds())
	return counter, nil
}

// runWorkers runs the random restart search on all workers in parallel
// and returns the best candidate found.
func (m *Model) runWorkers(kind ShapeKind, alpha int) *Candidate {
	wn := len(m.workers)
	wm := (m.opts.restarts + wn - 1) / wn

	results := make([]*Candidate, wn)
	panics := make([]any, wn)
	var wg sync.WaitGroup
	for i, w := range m.workers {
		w.Init(m.current, m.score)
		wg.Add(1)
		go func() {
			defer wg.Done()
			defer func() {
				if r := recover(); r != nil {
					panics[i] = r
				}
			}()
			results[i] = w.BestHillClimbCandidate(kind, alpha, m.opts.samples, m.opts.maxAge, wm)
		}()
	}
	wg.Wait()
	for _, p := range panics {
		if p != nil {
			panic(p)
		}
	}

	best := results[0]
	for _, c := range results[1:] {
		if c.Energy() < best.Energy() {
			best = c
		}
	}
	return best
}

// Frames returns the output image after every nth shape.  The first frame
// shows the first shape.
func (m *Model) Frames(nth int) []image.Image {
	nth = max(nth, 1)
	im := uniformRGBA(m.result.Bounds(), m.background)
	var frames []image.Image
	for i, s := range m.shapes {
		m.draw(im, s, m.colors[i])
		if i%nth == 0 {
			frames = append(frames, copyRGBA(im))
		}
	}
	return frames
}

// FramesByDelta returns the empty canvas, followed by the output image
// after every shape which lowered the score by at least delta since the
// previous frame.
func (m *Model) FramesByDelta(delta float64) []image.Image {
	im := uniformRGBA(m.result.Bounds(), m.background)
	frames := []image.Image{copyRGBA(im)}
	previous := 10.0
	for i, s := range m.shapes {
		m.draw(im, s, m.colors[i])
		if previous-m.scores[i] >= delta {
			previous = m.scores[i]
			frames = append(frames, copyRGBA(im))
		}
	}
	return frames
}
