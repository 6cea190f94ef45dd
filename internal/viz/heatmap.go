package viz

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// Heatmap rasterizes scattered point samples onto a colored cell grid.
// Points sharing a cell are averaged. Each cell renders as two block
// characters so the aspect ratio of terminal cells roughly cancels out.
type Heatmap struct {
	Cols, Rows int
	sum        []float64
	count      []int
}

func NewHeatmap(cols, rows int) *Heatmap {
	return &Heatmap{
		Cols:  cols,
		Rows:  rows,
		sum:   make([]float64, cols*rows),
		count: make([]int, cols*rows),
	}
}

func (h *Heatmap) Clear() {
	for i := range h.sum {
		h.sum[i] = 0
		h.count[i] = 0
	}
}

// Plot accumulates samples at layout positions. Positions are normalized
// into the bounding box of pts, so any layout scale works.
func (h *Heatmap) Plot(pts [][2]float64, vals []float64) {
	if len(pts) == 0 {
		return
	}
	minX, minY := pts[0][0], pts[0][1]
	maxX, maxY := minX, minY
	for _, p := range pts {
		minX = math.Min(minX, p[0])
		maxX = math.Max(maxX, p[0])
		minY = math.Min(minY, p[1])
		maxY = math.Max(maxY, p[1])
	}
	spanX, spanY := maxX-minX, maxY-minY
	if spanX == 0 {
		spanX = 1
	}
	if spanY == 0 {
		spanY = 1
	}
	for i, p := range pts {
		if i >= len(vals) {
			break
		}
		col := int((p[0] - minX) / spanX * float64(h.Cols-1))
		row := int((p[1] - minY) / spanY * float64(h.Rows-1))
		idx := row*h.Cols + col
		h.sum[idx] += vals[i]
		h.count[idx]++
	}
}

// Render paints the grid with pal, mapping values from [lo, hi] onto the
// ramp. Empty cells stay blank.
func (h *Heatmap) Render(pal Palette, lo, hi float64) string {
	span := hi - lo
	if span == 0 {
		span = 1
	}
	var b strings.Builder
	for row := 0; row < h.Rows; row++ {
		for col := 0; col < h.Cols; col++ {
			idx := row*h.Cols + col
			if h.count[idx] == 0 {
				b.WriteString("  ")
				continue
			}
			v := h.sum[idx] / float64(h.count[idx])
			c := pal.At((v - lo) / span)
			b.WriteString(lipgloss.NewStyle().Foreground(c).Render("██"))
		}
		if row < h.Rows-1 {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// ColorBar renders a horizontal palette legend labeled with its range.
func ColorBar(pal Palette, lo, hi float64, width int) string {
	if width < 4 {
		width = 4
	}
	var b strings.Builder
	b.WriteString(fmt.Sprintf("%.2g ", lo))
	for i := 0; i < width; i++ {
		t := float64(i) / float64(width-1)
		b.WriteString(lipgloss.NewStyle().Foreground(pal.At(t)).Render("█"))
	}
	b.WriteString(fmt.Sprintf(" %.2g", hi))
	return b.String()
}
