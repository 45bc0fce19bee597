package wave

import (
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"
)

const (
	// AmplitudeCycle is the length of one amplitude pulse.
	AmplitudeCycle = 2000 * time.Millisecond

	// PhaseSweepUnit is the sweep time per radian of phase at frequency 1.
	PhaseSweepUnit = 1000 * time.Millisecond

	// StaggerStep delays each band's animations by ID × StaggerStep.
	StaggerStep = 100 * time.Millisecond

	amplitudePeak = 1.5
)

// ErrInvalidFrequency is returned for a band whose frequency cannot size a
// phase sweep.
var ErrInvalidFrequency = errors.New("invalid frequency")

// animationSet is the linked amplitude pulse and phase sweep of one band.
type animationSet struct {
	band      int
	delay     time.Duration
	elapsed   time.Duration
	amplitude *Track
	phase     *Track
	running   bool
}

func newAnimationSet(b Band) (*animationSet, error) {
	if !(b.Frequency > 0) || math.IsInf(b.Frequency, 0) {
		return nil, fmt.Errorf("band %d: %w: %v", b.ID, ErrInvalidFrequency, b.Frequency)
	}

	amp, err := NewTrack([]float64{b.Amplitude, amplitudePeak * b.Amplitude, b.Amplitude}, AmplitudeCycle, RepeatRestart)
	if err != nil {
		return nil, fmt.Errorf("band %d amplitude: %w", b.ID, err)
	}

	sweep := 2 * math.Pi / b.Frequency
	phase, err := NewTrack([]float64{b.Phase, b.Phase + sweep}, time.Duration(float64(PhaseSweepUnit)*sweep), RepeatReverse)
	if err != nil {
		return nil, fmt.Errorf("band %d phase: %w", b.ID, err)
	}

	return &animationSet{
		band:      b.ID,
		delay:     time.Duration(b.ID) * StaggerStep,
		amplitude: amp,
		phase:     phase,
		running:   true,
	}, nil
}

// started reports whether the stagger delay has passed.
func (s *animationSet) started() bool {
	return s.elapsed >= s.delay
}

// apply returns b as it looks after elapsed time since the set was started.
// Before the stagger delay has passed the band is returned untouched.
func (s *animationSet) apply(b Band, elapsed time.Duration) Band {
	if elapsed < s.delay {
		return b
	}
	local := elapsed - s.delay
	b.Amplitude = math.Max(0, s.amplitude.At(local))
	b.Phase = s.phase.At(local)
	return b
}

// Driver runs the animation sets of all bands. The zero value is idle and
// ready to use.
type Driver struct {
	sets []*animationSet
	log  *slog.Logger
}

func (d *Driver) logger() *slog.Logger {
	if d.log == nil {
		return slog.Default()
	}
	return d.log
}

// Running reports whether any animation set is running.
func (d *Driver) Running() bool {
	for _, s := range d.sets {
		if s.running {
			return true
		}
	}
	return false
}

// Len returns the number of retained animation sets.
func (d *Driver) Len() int { return len(d.sets) }

// Start creates one animation set per band, starting from each band's
// current amplitude and phase. It does nothing while sets are running and
// returns the number of sets it created.
func (d *Driver) Start(bands []Band) int {
	if d.Running() {
		return 0
	}
	d.sets = d.sets[:0]
	for _, b := range bands {
		s, err := newAnimationSet(b)
		if err != nil {
			d.logger().Warn("skipping band animation", "error", err)
			continue
		}
		d.sets = append(d.sets, s)
	}
	return len(d.sets)
}

// Stop cancels and forgets every animation set. It returns false if there
// was nothing to stop.
func (d *Driver) Stop() bool {
	if len(d.sets) == 0 {
		return false
	}
	for _, s := range d.sets {
		s.running = false
	}
	d.sets = nil
	return true
}

// Advance moves every running set forward by dt and writes the resulting
// amplitude and phase into bands, indexed by band ID. It reports whether any
// phase value was produced.
func (d *Driver) Advance(bands []Band, dt time.Duration) bool {
	ticked := false
	for _, s := range d.sets {
		if !s.running || s.band < 0 || s.band >= len(bands) {
			continue
		}
		s.elapsed += dt
		if !s.started() {
			continue
		}
		bands[s.band] = s.apply(bands[s.band], s.elapsed)
		ticked = true
	}
	return ticked
}
