// Copyright 2026 The Go Authors. All rights reserved.
// Use of this source code is governed by a BSD-style
// license that can be found in the LICENSE file.

package benchplot

import (
	"fmt"
	"image/color"
	"os"
	"path/filepath"
	"strings"
	"unicode"

	"github.com/gdamore/tcell/v2"
)

// A Display shows figures to the user, one at a time.
type Display interface {
	// Show presents f and returns once the user is done with it.
	Show(f *Figure) error
}

// ImageDisplay writes each figure to a numbered image file in Dir.
type ImageDisplay struct {
	Dir    string
	Format string // "png" if empty

	// Paths lists the files written so far.
	Paths []string
}

// Show writes f to the next file in d.Dir.
func (d *ImageDisplay) Show(f *Figure) error {
	format := d.Format
	if format == "" {
		format = "png"
	}
	if err := os.MkdirAll(d.Dir, 0o777); err != nil {
		return err
	}
	name := fmt.Sprintf("%03d-%s.%s", len(d.Paths)+1, slug(f.Title), format)
	path := filepath.Join(d.Dir, name)
	out, err := os.Create(path)
	if err != nil {
		return err
	}
	if err := f.Encode(out, format); err != nil {
		out.Close()
		return fmt.Errorf("writing %s: %w", path, err)
	}
	if err := out.Close(); err != nil {
		return err
	}
	d.Paths = append(d.Paths, path)
	return nil
}

// slug turns a title into a file name fragment.
func slug(title string) string {
	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(title) {
		if unicode.IsLetter(r) || unicode.IsDigit(r) {
			if dash && b.Len() > 0 {
				b.WriteByte('-')
			}
			b.WriteRune(r)
			dash = false
		} else {
			dash = true
		}
	}
	if b.Len() == 0 {
		return "chart"
	}
	return b.String()
}

// TermDisplay draws figures in a terminal using half-block
// characters, two pixels per cell. Each figure stays up until the
// user presses q, Esc, Enter or Ctrl-C.
type TermDisplay struct {
	// Screen, if non-nil, is an initialized screen to draw on.
	// Show leaves it initialized. Otherwise Show opens the
	// terminal for the duration of each call.
	Screen tcell.Screen
}

// Show draws f and blocks until it is dismissed.
func (d *TermDisplay) Show(f *Figure) error {
	s := d.Screen
	if s == nil {
		var err error
		s, err = tcell.NewScreen()
		if err != nil {
			return err
		}
		if err := s.Init(); err != nil {
			return err
		}
		defer s.Fini()
	}

	paint(s, f)
	for {
		switch ev := s.PollEvent().(type) {
		case nil:
			// The screen was finalized.
			return nil
		case *tcell.EventResize:
			s.Sync()
			paint(s, f)
		case *tcell.EventKey:
			switch {
			case ev.Key() == tcell.KeyEscape, ev.Key() == tcell.KeyEnter, ev.Key() == tcell.KeyCtrlC:
				return nil
			case ev.Key() == tcell.KeyRune && (ev.Rune() == 'q' || ev.Rune() == 'Q'):
				return nil
			}
		case *tcell.EventInterrupt:
			return nil
		}
	}
}

// paint rasterizes f to fill s. Each cell shows two vertically
// stacked pixels: the upper half block in the foreground color and
// the lower half in the background color.
func paint(s tcell.Screen, f *Figure) {
	w, h := s.Size()
	s.Clear()
	if w > 0 && h > 0 {
		// Terminals are too coarse to lay out text at cell size.
		// Render larger and sample.
		iw, ih := max(w, minRasterWidth), max(2*h, minRasterHeight)
		img := f.Image(iw, ih)
		b := img.Bounds()
		at := func(x, y int) color.Color {
			return img.At(b.Min.X+x*iw/w, b.Min.Y+y*ih/(2*h))
		}
		for y := 0; y < h; y++ {
			for x := 0; x < w; x++ {
				st := tcell.StyleDefault.
					Foreground(tcell.FromImageColor(at(x, 2*y))).
					Background(tcell.FromImageColor(at(x, 2*y+1)))
				s.SetContent(x, y, '▀', nil, st)
			}
		}
	}
	s.Show()
}

// Smallest image paint rasterizes figures to, in pixels.
const (
	minRasterWidth  = 640
	minRasterHeight = 400
)
