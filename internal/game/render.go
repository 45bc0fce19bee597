package game

import (
	"image/color"

	"github.com/hajimehoshi/ebiten/v2"

	"github.com/iburimskiy/sound-wave/internal/wave"
)

// stripColumns caps the columns drawn per DrawTriangles call so vertex
// indices stay well inside uint16.
const stripColumns = 8192

var whitePixelImage *ebiten.Image

// whitePixel returns a lazily-initialized 1x1 white source image.
func whitePixel() *ebiten.Image {
	if whitePixelImage == nil {
		whitePixelImage = ebiten.NewImage(1, 1)
		whitePixelImage.Fill(color.White)
	}
	return whitePixelImage
}

// Renderer paints wave contours onto an ebiten image. It implements
// wave.Surface; buffers are reused between frames.
type Renderer struct {
	target   *ebiten.Image
	vertices []ebiten.Vertex
	indices  []uint16
}

// Render draws every band of e onto target.
func (r *Renderer) Render(target *ebiten.Image, e *wave.Engine) {
	r.target = target
	e.Draw(r)
	r.target = nil
}

// FillContour fills the region between the contour's curve and its bottom
// edge with the gradient in fill.
func (r *Renderer) FillContour(c wave.Contour, fill wave.FillStyle) {
	if c.Empty() {
		return
	}
	if r.target == nil {
		return
	}
	curve := c.Curve()
	bottom := c.Bottom()

	for start := 0; start < len(curve)-1; start += stripColumns {
		end := min(start+stripColumns, len(curve)-1)
		r.vertices, r.indices = appendStrip(r.vertices[:0], r.indices[:0], curve[start:end+1], bottom, fill)
		r.target.DrawTriangles(r.vertices, r.indices, whitePixel(), nil)
	}
}

// appendStrip appends a triangle strip covering the area under curve down to
// bottom: one vertex pair per curve point, two triangles per column. The top
// edge is raised by half the stroke width so the fill includes the outline.
func appendStrip(vs []ebiten.Vertex, is []uint16, curve []wave.Point, bottom float64, fill wave.FillStyle) ([]ebiten.Vertex, []uint16) {
	lift := fill.StrokeWidth / 2
	base := uint16(len(vs))
	for i, p := range curve {
		vs = append(vs,
			vertex(wave.Point{X: p.X, Y: p.Y - lift}, fill),
			vertex(wave.Point{X: p.X, Y: bottom}, fill),
		)
		if i == 0 {
			continue
		}
		j := base + uint16(2*i)
		is = append(is, j-2, j-1, j, j-1, j+1, j)
	}
	return vs, is
}

func vertex(p wave.Point, fill wave.FillStyle) ebiten.Vertex {
	c := fill.ColorAt(p).Clamped()
	return ebiten.Vertex{
		DstX:   float32(p.X),
		DstY:   float32(p.Y),
		SrcX:   0.5,
		SrcY:   0.5,
		ColorR: float32(c.R),
		ColorG: float32(c.G),
		ColorB: float32(c.B),
		ColorA: 1,
	}
}
