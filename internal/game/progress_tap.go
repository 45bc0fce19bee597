package game

import (
	"sync"

	"github.com/faiface/beep"
)

// progressTap wraps a beep.Streamer and counts the samples that have been
// streamed through it, so the host can show the playback position without
// guessing from the frame rate.
type progressTap struct {
	Source beep.Streamer
	played int
	mu     sync.RWMutex
}

func newProgressTap(src beep.Streamer) *progressTap {
	return &progressTap{Source: src}
}

func (t *progressTap) Stream(samples [][2]float64) (int, bool) {
	n, ok := t.Source.Stream(samples)
	if n > 0 {
		t.mu.Lock()
		t.played += n
		t.mu.Unlock()
	}
	return n, ok
}

func (t *progressTap) Err() error { return t.Source.Err() }

// position returns the number of samples streamed so far.
func (t *progressTap) position() int {
	t.mu.RLock()
	defer t.mu.RUnlock()
	return t.played
}
