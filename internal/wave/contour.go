package wave

import (
	"math/rand/v2"

	"github.com/lucasb-eyer/go-colorful"
)

// StrokeWidth is the width of the outline painted along each band's curve.
const StrokeWidth = 4.0

var white = colorful.Color{R: 1, G: 1, B: 1}

// Point is a position on the surface, in surface units.
type Point struct {
	X, Y float64
}

// Contour is the closed region between a band's curve and the bottom edge of
// the surface. It is immutable: every rebuild produces a new Contour.
//
// The ring is laid out as (0, baseline), the sampled curve from left to right,
// (width, height), (0, height) and back to (0, baseline).
type Contour struct {
	points []Point
}

// Len returns the number of points in the ring, closing point included.
func (c Contour) Len() int { return len(c.points) }

// Empty reports whether the contour has no area to fill.
func (c Contour) Empty() bool { return len(c.points) == 0 }

// At returns the i-th point of the ring.
func (c Contour) At(i int) Point { return c.points[i] }

// Points returns a copy of the ring.
func (c Contour) Points() []Point {
	return append([]Point(nil), c.points...)
}

// Curve returns a copy of the sampled curve without the closing corners.
func (c Contour) Curve() []Point {
	if len(c.points) < 5 {
		return nil
	}
	return append([]Point(nil), c.points[1:len(c.points)-3]...)
}

// Bottom returns the y coordinate of the region's lower edge.
func (c Contour) Bottom() float64 {
	if len(c.points) < 5 {
		return 0
	}
	return c.points[len(c.points)-2].Y
}

// FillStyle is a linear gradient from the band color at From to white at To,
// clamped past both ends.
type FillStyle struct {
	From, To    Point
	Start, End  colorful.Color
	StrokeWidth float64
}

// ColorAt returns the gradient color at p.
func (f FillStyle) ColorAt(p Point) colorful.Color {
	dx, dy := f.To.X-f.From.X, f.To.Y-f.From.Y
	l2 := dx*dx + dy*dy
	if l2 == 0 {
		return f.Start
	}
	t := ((p.X-f.From.X)*dx + (p.Y-f.From.Y)*dy) / l2
	return f.Start.BlendRgb(f.End, clamp01(t))
}

// Rebuild returns b with its contour and fill recomputed for a surface of the
// given size. The baseline is picked from rng the first time it is needed.
// A surface without area yields an empty contour and leaves the baseline
// alone.
func Rebuild(b Band, width, height int, rng *rand.Rand) Band {
	if width <= 0 || height <= 0 {
		b.Contour = Contour{}
		b.Fill = FillStyle{}
		return b
	}

	w, h := float64(width), float64(height)
	if b.Baseline == 0 {
		b.Baseline = uniform(rng, h/5, h/5+MaxWaveGap)
	}

	pts := make([]Point, 0, width+5)
	pts = append(pts, Point{0, b.Baseline})
	for x := 0; x <= width; x++ {
		pts = append(pts, Point{float64(x), b.Y(float64(x))})
	}
	pts = append(pts,
		Point{w, h},
		Point{0, h},
		Point{0, b.Baseline},
	)
	b.Contour = Contour{points: pts}

	b.Fill = FillStyle{
		From:        Point{0, b.Baseline},
		To:          Point{w, h},
		Start:       b.Color,
		End:         white,
		StrokeWidth: StrokeWidth,
	}
	return b
}

func clamp01(v float64) float64 {
	if v < 0 {
		return 0
	}
	if v > 1 {
		return 1
	}
	return v
}
