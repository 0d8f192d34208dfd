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
	"runtime"
	"time"
)

// Option configures a Model.
type Option func(*options)

type options struct {
	workers    int
	outputSize int
	restarts   int
	samples    int
	maxAge     int
	seed       uint64
	antiAlias  bool
}

// Defaults for the search budget.
const (
	defaultOutputSize = 1024
	defaultRestarts   = 16
	defaultSamples    = 1000
	defaultMaxAge     = 100
)

func defaultOptions() options {
	return options{
		workers:    runtime.GOMAXPROCS(0),
		outputSize: defaultOutputSize,
		restarts:   defaultRestarts,
		samples:    defaultSamples,
		maxAge:     defaultMaxAge,
		seed:       uint64(time.Now().UnixNano()),
	}
}

// WithWorkers sets the number of parallel workers.  Values below one
// select the number of CPUs.
func WithWorkers(n int) Option {
	return func(o *options) {
		if n < 1 {
			n = runtime.GOMAXPROCS(0)
		}
		o.workers = n
	}
}

// WithOutputSize sets the size, in pixels, of the longer side of the
// rendered output.
func WithOutputSize(size int) Option {
	return func(o *options) {
		o.outputSize = max(size, 1)
	}
}

// WithRestarts sets the total number of random restarts per step.  The
// restarts are shared out between the workers.
func WithRestarts(m int) Option {
	return func(o *options) {
		o.restarts = max(m, 1)
	}
}

// WithSamples sets the number of random candidates drawn at the start of
// every restart.
func WithSamples(n int) Option {
	return func(o *options) {
		o.samples = max(n, 1)
	}
}

// WithMaxAge sets how many consecutive unsuccessful moves end a hill
// climb.
func WithMaxAge(age int) Option {
	return func(o *options) {
		o.maxAge = max(age, 0)
	}
}

// WithSeed makes the search reproducible.  Worker i draws its random
// numbers from a stream determined by seed and i.  A seed of 0 keeps the
// default, which is taken from the clock.
func WithSeed(seed uint64) Option {
	return func(o *options) {
		if seed != 0 {
			o.seed = seed
		}
	}
}

// WithAntiAlias makes the search score shapes by their anti-aliased
// coverage, instead of by the set of pixels whose centres they contain.
func WithAntiAlias(enable bool) Option {
	return func(o *options) {
		o.antiAlias = enable
	}
}
