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

// Command primitive approximates an image by a sequence of geometric
// shapes.
//
// Usage:
//
//	primitive -i input.png -o output.png -n 100 [flags]
//
// The output flag may be given several times.  The file extension selects
// the format: .png, .jpg, .gif, .svg or .pdf.  If an output name contains
// "%d", a numbered file is written after every nth shape.
package main

import (
	"errors"
	"flag"
	"fmt"
	"image"
	"image/color"
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"
	"log/slog"
	"os"
	"strings"
	"time"

	"github.com/lucasb-eyer/go-colorful"
	"go.uber.org/zap"
	"go.uber.org/zap/exp/zapslog"
	"golang.org/x/image/draw"

	"seehuhn.de/go/primitive"
)

type outputList []string

func (o *outputList) String() string {
	return strings.Join(*o, ", ")
}

func (o *outputList) Set(s string) error {
	*o = append(*o, s)
	return nil
}

type config struct {
	input      string
	outputs    outputList
	count      int
	mode       string
	alpha      int
	repeat     int
	resize     int
	outputSize int
	background string
	workers    int
	nth        int
	delta      float64
	seed       uint64
	antiAlias  bool
	plot       string
	verbose    bool
	veryVerb   bool
}

func main() {
	var cfg config
	flag.StringVar(&cfg.input, "i", "", "input image (required)")
	flag.Var(&cfg.outputs, "o", "output file (required, may be repeated)")
	flag.IntVar(&cfg.count, "n", 0, "number of shapes (required)")
	flag.StringVar(&cfg.mode, "m", "1", "shape kind, by number or name:\n"+kindHelp())
	flag.IntVar(&cfg.alpha, "a", 128, "shape opacity, 0 lets the search choose")
	flag.IntVar(&cfg.repeat, "rep", 0, "add up to N extra shapes per step by hill climbing")
	flag.IntVar(&cfg.resize, "r", 256, "shrink the input to at most this size before processing")
	flag.IntVar(&cfg.outputSize, "s", 1024, "output image size")
	flag.StringVar(&cfg.background, "bg", "", "background colour as hex, default is the average colour")
	flag.IntVar(&cfg.workers, "j", 0, "number of parallel workers, 0 uses all cores")
	flag.IntVar(&cfg.nth, "nth", 1, "save every nth frame")
	flag.Float64Var(&cfg.delta, "delta", 0, "for GIF output, add a frame when the score improves by this much")
	flag.Uint64Var(&cfg.seed, "seed", 0, "random seed, 0 seeds from the clock")
	flag.BoolVar(&cfg.antiAlias, "aa", false, "use anti-aliased coverage during the search")
	flag.StringVar(&cfg.plot, "plot", "", "write a chart of the score per shape to this file")
	flag.BoolVar(&cfg.verbose, "v", false, "verbose output")
	flag.BoolVar(&cfg.veryVerb, "vv", false, "very verbose output")
	flag.Parse()

	if err := run(&cfg); err != nil {
		fmt.Fprintln(os.Stderr, "primitive:", err)
		os.Exit(1)
	}
}

func kindHelp() string {
	var lines []string
	for k := primitive.KindAny; k.Valid(); k++ {
		lines = append(lines, fmt.Sprintf("%d=%s", int(k), k))
	}
	return strings.Join(lines, ", ")
}

var errUsage = errors.New("missing required flag, see -help")

func run(cfg *config) error {
	if cfg.input == "" || len(cfg.outputs) == 0 || cfg.count < 1 {
		return errUsage
	}
	kind, err := primitive.ParseShapeKind(cfg.mode)
	if err != nil {
		return err
	}
	if cfg.alpha < 0 || cfg.alpha > 255 {
		return fmt.Errorf("alpha %d out of range 0..255", cfg.alpha)
	}

	log, err := newLogger(cfg.verbose, cfg.veryVerb)
	if err != nil {
		return fmt.Errorf("init logger: %w", err)
	}
	defer log.Sync() //nolint:errcheck
	primitive.SetLogger(slog.New(zapslog.NewHandler(log.Core())))

	log.Info("reading", zap.String("file", cfg.input))
	im, err := loadImage(cfg.input)
	if err != nil {
		return err
	}
	if cfg.resize > 0 {
		im = thumbnail(im, cfg.resize)
	}

	var bg color.Color
	if cfg.background != "" {
		bg, err = parseColor(cfg.background)
		if err != nil {
			return err
		}
	}

	seed := cfg.seed
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	model := primitive.NewModel(im, bg,
		primitive.WithWorkers(cfg.workers),
		primitive.WithOutputSize(cfg.outputSize),
		primitive.WithSeed(seed),
		primitive.WithAntiAlias(cfg.antiAlias))
	log.Info("start",
		zap.Stringer("kind", kind),
		zap.Int("count", cfg.count),
		zap.Uint64("seed", seed),
		zap.Float64("score", model.Score()))

	start := time.Now()
	nth := max(cfg.nth, 1)
	for frame := 1; frame <= cfg.count; frame++ {
		if _, err := model.Step(kind, cfg.alpha, cfg.repeat); err != nil {
			return err
		}
		last := frame == cfg.count
		for _, out := range cfg.outputs {
			numbered := strings.Contains(out, "%")
			if !last && !(numbered && frame%nth == 0) {
				continue
			}
			name := out
			if numbered {
				name = fmt.Sprintf(out, frame)
			}
			log.Info("writing", zap.String("file", name))
			if err := save(name, model, cfg); err != nil {
				return err
			}
		}
	}
	log.Info("done",
		zap.Int("shapes", model.Len()),
		zap.Float64("score", model.Score()),
		zap.Duration("elapsed", time.Since(start)))

	if cfg.plot != "" {
		if err := plotScores(cfg.plot, model.Scores()); err != nil {
			return err
		}
	}
	return nil
}

// newLogger returns a console logger writing to stderr.  Without -v
// nothing is logged, -v logs one line per shape and -vv adds the
// progress of every restart.
func newLogger(verbose, veryVerbose bool) (*zap.Logger, error) {
	if !verbose && !veryVerbose {
		return zap.NewNop(), nil
	}
	cfg := zap.NewDevelopmentConfig()
	cfg.DisableStacktrace = true
	if !veryVerbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	}
	return cfg.Build()
}

func loadImage(fname string) (im image.Image, err error) {
	fd, err := os.Open(fname)
	if err != nil {
		return nil, err
	}
	defer func() {
		err2 := fd.Close()
		if err == nil {
			err = err2
		}
	}()

	im, _, err = image.Decode(fd)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", fname, err)
	}
	return im, nil
}

// thumbnail scales im down so that neither side exceeds size.  Images
// which are small enough are returned unchanged.
func thumbnail(im image.Image, size int) image.Image {
	b := im.Bounds()
	w, h := b.Dx(), b.Dy()
	if w <= size && h <= size {
		return im
	}
	if w >= h {
		h = max(h*size/w, 1)
		w = size
	} else {
		w = max(w*size/h, 1)
		h = size
	}
	dst := image.NewRGBA(image.Rect(0, 0, w, h))
	draw.ApproxBiLinear.Scale(dst, dst.Bounds(), im, b, draw.Src, nil)
	return dst
}

// parseColor parses a hex colour, with or without leading "#", in
// three or six digit form.
func parseColor(s string) (color.Color, error) {
	s = strings.TrimPrefix(s, "#")
	if len(s) == 3 {
		s = string([]byte{s[0], s[0], s[1], s[1], s[2], s[2]})
	}
	c, err := colorful.Hex("#" + s)
	if err != nil {
		return nil, fmt.Errorf("background %q: %w", s, err)
	}
	r, g, b := c.RGB255()
	return color.NRGBA{R: r, G: g, B: b, A: 255}, nil
}
