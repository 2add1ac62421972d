package report

import (
	"bytes"
	"fmt"

	"github.com/icza/mjpeg"

	"difgrow/internal/engine"
	"difgrow/internal/lattice"
	"difgrow/internal/render"
)

// Movie writes lattice snapshots as frames of an MJPEG AVI file.
type Movie struct {
	w       mjpeg.AviWriter
	opt     render.Options
	every   int
	quality int
	buf     bytes.Buffer
	frames  int
	closed  bool
}

// NewMovie creates path for a rows×cols lattice rendered at opt.Scale. Every
// every-th observed cycle becomes a frame.
func NewMovie(path string, rows, cols int, opt render.Options, fps, every int) (*Movie, error) {
	if opt.Scale < 1 {
		opt.Scale = 1
	}
	if fps <= 0 {
		fps = 10
	}
	if every <= 0 {
		every = 1
	}
	w, err := mjpeg.New(path, int32(cols*opt.Scale), int32(rows*opt.Scale), int32(fps))
	if err != nil {
		return nil, fmt.Errorf("create movie %s: %w", path, err)
	}
	return &Movie{w: w, opt: opt, every: every, quality: 85}, nil
}

// AddFrame encodes the current state as one frame.
func (m *Movie) AddFrame(s *lattice.State) error {
	m.buf.Reset()
	if err := render.WriteJPEG(&m.buf, render.Image(s, m.opt), m.quality); err != nil {
		return fmt.Errorf("encode frame: %w", err)
	}
	if err := m.w.AddFrame(m.buf.Bytes()); err != nil {
		return fmt.Errorf("add frame: %w", err)
	}
	m.frames++
	return nil
}

// Observe adds a frame on every every-th cycle. Its signature matches
// engine.CycleFunc.
func (m *Movie) Observe(cycle int, e *engine.Engine) error {
	if cycle%m.every != 0 {
		return nil
	}
	return m.AddFrame(e.State())
}

// Frames reports how many frames have been written.
func (m *Movie) Frames() int { return m.frames }

// Close finalises the AVI index. Calling it again is a no-op.
func (m *Movie) Close() error {
	if m.closed {
		return nil
	}
	m.closed = true
	return m.w.Close()
}
