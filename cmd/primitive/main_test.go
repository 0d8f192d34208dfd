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

package main

import (
	"context"
	"errors"
	"image"
	"image/color"
	"image/gif"
	"image/png"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"go.uber.org/zap/exp/zapslog"

	"seehuhn.de/go/primitive"
)

func TestParseColor(t *testing.T) {
	cases := []struct {
		in   string
		want color.NRGBA
	}{
		{"#ff0000", color.NRGBA{255, 0, 0, 255}},
		{"00ff80", color.NRGBA{0, 255, 128, 255}},
		{"#fff", color.NRGBA{255, 255, 255, 255}},
		{"123", color.NRGBA{0x11, 0x22, 0x33, 255}},
	}
	for _, tc := range cases {
		c, err := parseColor(tc.in)
		if err != nil {
			t.Errorf("%q: %v", tc.in, err)
			continue
		}
		if c != tc.want {
			t.Errorf("%q: got %v, want %v", tc.in, c, tc.want)
		}
	}

	for _, in := range []string{"", "#12", "zzzzzz"} {
		if _, err := parseColor(in); err == nil {
			t.Errorf("%q: no error", in)
		}
	}
}

func TestNewLogger(t *testing.T) {
	cases := []struct {
		verbose, veryVerbose bool
		info, debug          bool
	}{
		{false, false, false, false},
		{true, false, true, false},
		{false, true, true, true},
		{true, true, true, true},
	}
	for _, tc := range cases {
		l, err := newLogger(tc.verbose, tc.veryVerbose)
		if err != nil {
			t.Fatal(err)
		}
		h := zapslog.NewHandler(l.Core())
		ctx := context.Background()
		if got := h.Enabled(ctx, slog.LevelInfo); got != tc.info {
			t.Errorf("-v=%t -vv=%t: info enabled %t", tc.verbose, tc.veryVerbose, got)
		}
		if got := h.Enabled(ctx, slog.LevelDebug); got != tc.debug {
			t.Errorf("-v=%t -vv=%t: debug enabled %t", tc.verbose, tc.veryVerbose, got)
		}
	}
}

func TestThumbnail(t *testing.T) {
	cases := []struct {
		w, h, size int
		wantW      int
		wantH      int
	}{
		{100, 50, 256, 100, 50},
		{512, 256, 256, 256, 128},
		{300, 600, 100, 50, 100},
		{1000, 2, 100, 100, 1},
	}
	for _, tc := range cases {
		im := image.NewRGBA(image.Rect(0, 0, tc.w, tc.h))
		b := thumbnail(im, tc.size).Bounds()
		if b.Dx() != tc.wantW || b.Dy() != tc.wantH {
			t.Errorf("%dx%d to %d: got %dx%d", tc.w, tc.h, tc.size, b.Dx(), b.Dy())
		}
	}
}

func TestRunErrors(t *testing.T) {
	cases := []struct {
		name string
		cfg  config
	}{
		{"no input", config{outputs: outputList{"out.png"}, count: 1, mode: "1"}},
		{"no output", config{input: "in.png", count: 1, mode: "1"}},
		{"no count", config{input: "in.png", outputs: outputList{"out.png"}, mode: "1"}},
		{"bad mode", config{input: "in.png", outputs: outputList{"out.png"}, count: 1, mode: "blob"}},
		{"bad alpha", config{input: "in.png", outputs: outputList{"out.png"}, count: 1, mode: "1", alpha: 300}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if err := run(&tc.cfg); err == nil {
				t.Error("no error")
			}
		})
	}

	cfg := config{input: "in.png", outputs: outputList{"out.png"}, count: 1, mode: "99"}
	if err := run(&cfg); !errors.Is(err, primitive.ErrUnknownShape) {
		t.Errorf("unknown mode: %v", err)
	}
}

func TestRun(t *testing.T) {
	dir := t.TempDir()

	// a red square on a blue background
	im := image.NewRGBA(image.Rect(0, 0, 24, 16))
	for y := range 16 {
		for x := range 24 {
			c := color.RGBA{0, 0, 255, 255}
			if x >= 6 && x < 14 && y >= 4 && y < 12 {
				c = color.RGBA{255, 0, 0, 255}
			}
			im.SetRGBA(x, y, c)
		}
	}
	input := filepath.Join(dir, "in.png")
	if err := writeFile(input, func(w io.Writer) error { return png.Encode(w, im) }); err != nil {
		t.Fatal(err)
	}

	cfg := config{
		input: input,
		outputs: outputList{
			filepath.Join(dir, "out.png"),
			filepath.Join(dir, "out.svg"),
			filepath.Join(dir, "out.gif"),
			filepath.Join(dir, "out.pdf"),
			filepath.Join(dir, "frame%03d.jpg"),
		},
		count:      3,
		mode:       "rectangle",
		alpha:      128,
		outputSize: 48,
		workers:    1,
		nth:        2,
		seed:       1,
		plot:       filepath.Join(dir, "scores.png"),
	}
	if err := run(&cfg); err != nil {
		t.Fatal(err)
	}

	for _, name := range []string{"out.png", "out.svg", "out.gif", "out.pdf", "frame002.jpg", "frame003.jpg", "scores.png"} {
		st, err := os.Stat(filepath.Join(dir, name))
		if err != nil {
			t.Error(err)
		} else if st.Size() == 0 {
			t.Errorf("%s is empty", name)
		}
	}
	if _, err := os.Stat(filepath.Join(dir, "frame001.jpg")); err == nil {
		t.Error("frame001.jpg written with -nth 2")
	}

	out, err := os.Open(filepath.Join(dir, "out.png"))
	if err != nil {
		t.Fatal(err)
	}
	defer out.Close()
	res, err := png.Decode(out)
	if err != nil {
		t.Fatal(err)
	}
	if b := res.Bounds(); b.Dx() != 48 || b.Dy() != 32 {
		t.Errorf("output size %dx%d", b.Dx(), b.Dy())
	}

	svgData, err := os.ReadFile(filepath.Join(dir, "out.svg"))
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(svgData), "<svg") {
		t.Errorf("not an SVG document")
	}

	fd, err := os.Open(filepath.Join(dir, "out.gif"))
	if err != nil {
		t.Fatal(err)
	}
	defer fd.Close()
	g, err := gif.DecodeAll(fd)
	if err != nil {
		t.Fatal(err)
	}
	if len(g.Image) == 0 || len(g.Image) > 2 {
		t.Errorf("%d GIF frames", len(g.Image))
	}
}

func TestSaveUnknownFormat(t *testing.T) {
	target := image.NewRGBA(image.Rect(0, 0, 4, 4))
	model := primitive.NewModel(target, nil, primitive.WithWorkers(1))
	name := filepath.Join(t.TempDir(), "out.bmp")
	if err := save(name, model, &config{nth: 1}); err == nil {
		t.Error("no error for .bmp")
	}
}
