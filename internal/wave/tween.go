package wave

import (
	"errors"
	"fmt"
	"time"

	"github.com/tanema/gween"
	"github.com/tanema/gween/ease"
)

// ErrInvalidTrack is returned when a track has too few keyframes or no duration.
var ErrInvalidTrack = errors.New("invalid track")

// RepeatMode selects how a Track behaves at a cycle boundary.
type RepeatMode uint8

const (
	// RepeatRestart jumps back to the first keyframe every cycle.
	RepeatRestart RepeatMode = iota
	// RepeatReverse plays every other cycle backwards (ping-pong).
	RepeatReverse
)

// Track interpolates linearly through evenly spaced keyframes and repeats
// forever. Its value is a function of elapsed time only.
type Track struct {
	segments []*gween.Tween
	segLen   float64 // seconds
	duration time.Duration
	mode     RepeatMode
}

// NewTrack builds a track through keys over one cycle of the given duration.
func NewTrack(keys []float64, duration time.Duration, mode RepeatMode) (*Track, error) {
	if len(keys) < 2 {
		return nil, fmt.Errorf("%w: need at least 2 keyframes, got %d", ErrInvalidTrack, len(keys))
	}
	if duration <= 0 {
		return nil, fmt.Errorf("%w: duration %v", ErrInvalidTrack, duration)
	}

	t := &Track{
		segLen:   duration.Seconds() / float64(len(keys)-1),
		duration: duration,
		mode:     mode,
	}
	for i := 1; i < len(keys); i++ {
		t.segments = append(t.segments, gween.New(float32(keys[i-1]), float32(keys[i]), float32(t.segLen), ease.Linear))
	}
	return t, nil
}

// Duration returns the length of one cycle.
func (t *Track) Duration() time.Duration { return t.duration }

// At returns the track value after elapsed time.
func (t *Track) At(elapsed time.Duration) float64 {
	if elapsed < 0 {
		elapsed = 0
	}
	cycle := elapsed / t.duration
	local := elapsed % t.duration
	if t.mode == RepeatReverse && cycle%2 == 1 {
		local = t.duration - local
	}

	pos := local.Seconds()
	idx := int(pos / t.segLen)
	if idx >= len(t.segments) {
		idx = len(t.segments) - 1
	}
	v, _ := t.segments[idx].Set(float32(pos - float64(idx)*t.segLen))
	return float64(v)
}
