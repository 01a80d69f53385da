// Package render draws points, matches and centroids as a braille scatter plot.
package render

import (
	"math"
	"strings"

	"github.com/hupe1980/pointsearch/matchset"
	"github.com/hupe1980/pointsearch/model"
)

// CentroidGlyph marks the cell that holds a centroid.
const CentroidGlyph = '+'

// Scene is what a plot shows.
type Scene struct {
	Points    []model.Point
	Matches   *matchset.MatchSet
	Centroids []model.Centroid

	// Radius draws a circle around each centroid when positive.
	Radius float64
}

// Plot renders s into width×height terminal cells with DefaultStyles.
func Plot(s Scene, width, height int) string {
	return PlotWith(s, width, height, DefaultStyles())
}

// PlotWith renders s with the given styles.
func PlotWith(s Scene, width, height int, st Styles) string {
	if width <= 0 || height <= 0 {
		return ""
	}

	cells := rasterize(s, width, height)

	var sb strings.Builder
	for i, c := range cells {
		if i > 0 && i%width == 0 {
			sb.WriteByte('\n')
		}
		g := string(c.glyph)
		switch c.layer {
		case layerCentroid:
			sb.WriteString(st.Centroid.Render(g))
		case layerMatch:
			sb.WriteString(st.Match.Render(g))
		case layerCircle:
			sb.WriteString(st.Circle.Render(g))
		case layerPoint:
			sb.WriteString(st.Point.Render(g))
		default:
			sb.WriteByte(' ')
		}
	}
	return sb.String()
}

// layer is the topmost thing drawn in a cell.
type layer uint8

const (
	layerEmpty layer = iota
	layerPoint
	layerCircle
	layerMatch
	layerCentroid
)

type cell struct {
	layer layer
	glyph rune
}

// rasterize resolves each cell to its highest layer: centroid, matched point,
// radius circle, unmatched point.
func rasterize(s Scene, width, height int) []cell {
	proj := newProjection(sceneBounds(s), width, height)

	all := newCanvas(width, height)
	hit := newCanvas(width, height)
	ring := newCanvas(width, height)
	centers := make(map[int]bool, len(s.Centroids))

	for _, p := range s.Points {
		mx, my := proj.micro(p.X, p.Y)
		all.set(mx, my)
		if s.Matches.Contains(p.ID) {
			hit.set(mx, my)
		}
	}

	for _, c := range s.Centroids {
		if s.Radius > 0 {
			proj.circle(ring, c, s.Radius)
		}
		mx, my := proj.micro(c.X, c.Y)
		if mx >= 0 && my >= 0 && mx/2 < width && my/4 < height {
			centers[(my/4)*width+mx/2] = true
		}
	}

	cells := make([]cell, width*height)
	for i := range cells {
		switch {
		case centers[i]:
			cells[i] = cell{layerCentroid, CentroidGlyph}
		case hit.m[i] != 0:
			cells[i] = cell{layerMatch, glyph(all.m[i])}
		case ring.m[i] != 0:
			cells[i] = cell{layerCircle, glyph(ring.m[i] | all.m[i])}
		case all.m[i] != 0:
			cells[i] = cell{layerPoint, glyph(all.m[i])}
		default:
			cells[i] = cell{layerEmpty, ' '}
		}
	}
	return cells
}

func sceneBounds(s Scene) model.BoundingBox {
	box := model.EmptyBox()
	for _, p := range s.Points {
		box = box.Extend(p.X, p.Y)
	}
	for _, c := range s.Centroids {
		box = box.Extend(c.X, c.Y)
	}
	return box
}

type projection struct {
	box        model.BoundingBox
	wMic, hMic int
}

func newProjection(box model.BoundingBox, w, h int) projection {
	if box.IsEmpty() {
		box = model.BoundingBox{MinX: -1, MinY: -1, MaxX: 1, MaxY: 1}
	}
	if box.Width() == 0 {
		box.MinX--
		box.MaxX++
	}
	if box.Height() == 0 {
		box.MinY--
		box.MaxY++
	}
	return projection{box: box, wMic: w * 2, hMic: h * 4}
}

// micro maps data coordinates to micro-pixels; y grows downwards.
func (p projection) micro(x, y float64) (int, int) {
	nx := (x - p.box.MinX) / p.box.Width()
	ny := (y - p.box.MinY) / p.box.Height()
	return int(math.Round(nx * float64(p.wMic-1))), int(math.Round((1 - ny) * float64(p.hMic-1)))
}

func (p projection) circle(c *canvas, center model.Centroid, r float64) {
	rx := r / p.box.Width() * float64(p.wMic)
	ry := r / p.box.Height() * float64(p.hMic)
	steps := max(16, int(2*math.Pi*max(rx, ry)))
	steps = min(steps, 4096)

	for i := range steps {
		a := 2 * math.Pi * float64(i) / float64(steps)
		mx, my := p.micro(center.X+r*math.Cos(a), center.Y+r*math.Sin(a))
		c.set(mx, my)
	}
}
