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
	"bufio"
	"fmt"
	"image"
	"image/color/palette"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/image/draw"

	"seehuhn.de/go/primitive"
)

// GIF frame delays, in 1/100 s.
const (
	gifDelay     = 50
	gifLastDelay = 250
)

// save writes the current state of the model to the named file.  The
// format is selected by the file name extension.
func save(name string, model *primitive.Model, cfg *config) error {
	switch ext := strings.ToLower(filepath.Ext(name)); ext {
	case ".png":
		return writeFile(name, func(w io.Writer) error {
			return png.Encode(w, model.Result())
		})
	case ".jpg", ".jpeg":
		return writeFile(name, func(w io.Writer) error {
			return jpeg.Encode(w, model.Result(), &jpeg.Options{Quality: 95})
		})
	case ".svg":
		return writeFile(name, func(w io.Writer) error {
			_, err := io.WriteString(w, model.SVG())
			return err
		})
	case ".gif":
		var frames []image.Image
		if cfg.delta > 0 {
			frames = model.FramesByDelta(cfg.delta)
		} else {
			frames = model.Frames(cfg.nth)
		}
		if len(frames) == 0 {
			frames = []image.Image{model.Result()}
		}
		return writeFile(name, func(w io.Writer) error {
			return encodeGIF(w, frames)
		})
	case ".pdf":
		return writePDF(name, model)
	default:
		return fmt.Errorf("%s: unsupported output format %q", name, ext)
	}
}

func writeFile(name string, write func(io.Writer) error) (err error) {
	fd, err := os.Create(name)
	if err != nil {
		return err
	}
	defer func() {
		err2 := fd.Close()
		if err == nil {
			err = err2
		}
	}()

	w := bufio.NewWriter(fd)
	if err := write(w); err != nil {
		return fmt.Errorf("%s: %w", name, err)
	}
	return w.Flush()
}

// encodeGIF writes an animated GIF, dithering every frame to the Plan 9
// palette.
func encodeGIF(w io.Writer, frames []image.Image) error {
	g := &gif.GIF{}
	for _, im := range frames {
		p := image.NewPaletted(im.Bounds(), palette.Plan9)
		draw.FloydSteinberg.Draw(p, p.Bounds(), im, im.Bounds().Min)
		g.Image = append(g.Image, p)
		g.Delay = append(g.Delay, gifDelay)
	}
	g.Delay[len(g.Delay)-1] = gifLastDelay
	return gif.EncodeAll(w, g)
}
