package wave

import (
	"math"
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

const (
	// DefaultBandCount is the number of bands an engine draws unless told otherwise.
	DefaultBandCount = 4

	// MaxWaveGap is the spread of random baselines below height/5.
	MaxWaveGap = 48

	minAmplitude = 20.0
	maxAmplitude = 50.0
	minFrequency = 0.5
	maxFrequency = 1.0
	minPhase     = 0.1
	maxPhase     = 2.0
)

// Band is the geometric and phase state of one wave band.
//
// A zero Baseline means the baseline has not been picked yet; it is chosen
// on the first geometry build against a non-empty surface.
type Band struct {
	ID        int
	Amplitude float64
	Frequency float64
	Phase     float64 // radians
	Baseline  float64

	Color   colorful.Color
	Fill    FillStyle
	Contour Contour
}

func newBand(id int, c colorful.Color, rng *rand.Rand) Band {
	return Band{
		ID:        id,
		Amplitude: uniform(rng, minAmplitude, maxAmplitude),
		Frequency: uniform(rng, minFrequency, maxFrequency),
		Phase:     uniform(rng, minPhase, maxPhase) * math.Pi,
		Color:     c,
	}
}

// Y returns the height of the band's curve at x.
func (b Band) Y(x float64) float64 {
	return b.Amplitude*math.Sin(b.Frequency*math.Pi/180*x+b.Phase) + b.Baseline
}

// uniform returns a value in [lo, hi).
func uniform(rng *rand.Rand, lo, hi float64) float64 {
	return lo + rng.Float64()*(hi-lo)
}
