// Package wave builds and animates the sine-wave bands drawn along the bottom
// of a surface.
//
// An Engine owns a fixed set of bands. The host tells it the surface size
// with Resize, advances it once per tick with Advance, and paints it with
// Draw. Nothing in the package blocks or spawns goroutines; all calls are
// expected to come from the host's update loop.
package wave

import (
	"errors"
	"fmt"
	"log/slog"
	"math/rand/v2"
	"time"

	"github.com/lucasb-eyer/go-colorful"
)

var (
	// ErrNoBands is returned when an engine is asked for fewer than one band.
	ErrNoBands = errors.New("band count must be at least 1")
	// ErrPaletteMismatch is returned when the palette does not hold exactly
	// one color per band.
	ErrPaletteMismatch = errors.New("palette size does not match band count")
)

// Surface receives the filled regions of every band, in band ID order.
type Surface interface {
	FillContour(c Contour, fill FillStyle)
}

// Option configures an Engine.
type Option func(*Engine)

// WithBandCount sets the number of bands. The palette must hold as many colors.
func WithBandCount(n int) Option {
	return func(e *Engine) { e.count = n }
}

// WithRand sets the random source used for band parameters and baselines.
func WithRand(r *rand.Rand) Option {
	return func(e *Engine) { e.rng = r }
}

// WithLogger sets the engine's logger.
func WithLogger(l *slog.Logger) Option {
	return func(e *Engine) { e.log = l }
}

// WithInvalidate registers fn to be called whenever animated geometry has
// been rebuilt and the surface should be repainted.
func WithInvalidate(fn func()) Option {
	return func(e *Engine) { e.invalidate = fn }
}

// Engine is the entry point used by the host.
type Engine struct {
	count      int
	rng        *rand.Rand
	log        *slog.Logger
	invalidate func()

	bands    []Band
	driver   Driver
	width    int
	height   int
	revision uint64
}

// New creates an engine with one band per palette color.
func New(palette []colorful.Color, opts ...Option) (*Engine, error) {
	e := &Engine{count: DefaultBandCount}
	for _, opt := range opts {
		opt(e)
	}
	if e.count < 1 {
		return nil, fmt.Errorf("new engine: %w: %d", ErrNoBands, e.count)
	}
	if len(palette) != e.count {
		return nil, fmt.Errorf("new engine: %w: %d colors for %d bands", ErrPaletteMismatch, len(palette), e.count)
	}
	if e.rng == nil {
		e.rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	if e.log == nil {
		e.log = slog.Default()
	}
	e.driver.log = e.log

	e.bands = make([]Band, e.count)
	for i := range e.bands {
		e.bands[i] = newBand(i, palette[i], e.rng)
		b := e.bands[i]
		e.log.Debug("band created", "id", b.ID, "amplitude", b.Amplitude, "frequency", b.Frequency, "phase", b.Phase)
	}
	return e, nil
}

// Resize rebuilds every band for a surface of w×h. Animation state is not
// touched.
func (e *Engine) Resize(w, h int) {
	e.width, e.height = w, h
	e.rebuild()
}

// Size returns the last surface size passed to Resize.
func (e *Engine) Size() (int, int) { return e.width, e.height }

// Start begins animating every band. It does nothing if the bands are
// already animating.
func (e *Engine) Start() {
	n := e.driver.Start(e.bands)
	if n > 0 {
		e.log.Info("wave animation started", "bands", n)
	}
}

// Stop cancels every running animation. It returns false if nothing was
// running.
func (e *Engine) Stop() bool {
	stopped := e.driver.Stop()
	if stopped {
		e.log.Info("wave animation stopped")
	}
	return stopped
}

// Running reports whether the bands are animating.
func (e *Engine) Running() bool { return e.driver.Running() }

// Animations returns the number of animation sets currently retained.
func (e *Engine) Animations() int { return e.driver.Len() }

// Advance moves the animations forward by dt. When new phase values were
// produced the geometry is rebuilt before the invalidate hook is called.
func (e *Engine) Advance(dt time.Duration) {
	if !e.driver.Advance(e.bands, dt) {
		return
	}
	e.rebuild()
	if e.invalidate != nil {
		e.invalidate()
	}
}

// Revision increases every time the geometry is rebuilt.
func (e *Engine) Revision() uint64 { return e.revision }

// Draw paints every band onto s in ID order.
func (e *Engine) Draw(s Surface) {
	for i := range e.bands {
		s.FillContour(e.bands[i].Contour, e.bands[i].Fill)
	}
}

// Bands returns a snapshot of the bands.
func (e *Engine) Bands() []Band {
	return append([]Band(nil), e.bands...)
}

func (e *Engine) rebuild() {
	for i := range e.bands {
		e.bands[i] = Rebuild(e.bands[i], e.width, e.height, e.rng)
	}
	e.revision++
}
