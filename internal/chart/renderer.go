package chart

import (
	"bytes"
	"fmt"
	"image"
	"image/color"
	"image/png"
	"strconv"
	"strings"

	"suimei/internal/domain"
)

const (
	defaultChartWidth  = 960
	defaultChartHeight = 480
	scoreMax           = 100
)

var (
	colBackground = color.RGBA{R: 250, G: 252, B: 255, A: 255}
	colGrid       = color.RGBA{R: 225, G: 232, B: 240, A: 255}
	colBoundary   = color.RGBA{R: 104, G: 122, B: 146, A: 255}
	colMarker     = color.RGBA{R: 58, G: 64, B: 90, A: 255}
	colMoney      = color.RGBA{R: 255, G: 193, B: 7, A: 255}
	colLove       = color.RGBA{R: 255, G: 64, B: 129, A: 255}
	colWork       = color.RGBA{R: 33, G: 150, B: 243, A: 255}
	colHealth     = color.RGBA{R: 76, G: 175, B: 80, A: 255}
	colOverall    = color.RGBA{R: 58, G: 64, B: 90, A: 255}
)

// Renderer draws fortune timelines as PNG line charts.
type Renderer struct {
	width, height int
}

func NewRenderer() *Renderer {
	return &Renderer{width: defaultChartWidth, height: defaultChartHeight}
}

// RenderTimeline plots the five scores per year. Luck-pillar changes are drawn as
// vertical rules and markYear, when inside the window, as a darker one.
func (r *Renderer) RenderTimeline(view domain.TimelineView, markYear int) (*domain.ImageData, error) {
	entries := view.Entries
	if len(entries) < 2 {
		return nil, fmt.Errorf("need at least 2 scored years to render timeline, got %d", len(entries))
	}

	img := image.NewRGBA(image.Rect(0, 0, r.width, r.height))
	fillRect(img, img.Bounds(), colBackground)

	plot := image.Rect(50, 20, r.width-20, r.height-40)
	drawGrid(img, plot, min(len(entries)-1, 12), 5)
	for _, threshold := range []int{20, 35, 50, 65, 80} {
		y := mapScoreToY(threshold, plot)
		drawLine(img, plot.Min.X, y, plot.Max.X, y, levelColor(threshold))
	}

	for i := 1; i < len(entries); i++ {
		if entries[i].Luck.Index != entries[i-1].Luck.Index {
			x := mapIndexToX(i, len(entries), plot)
			drawLine(img, x, plot.Min.Y, x, plot.Max.Y, colBoundary)
		}
	}
	for i, e := range entries {
		if e.Year == markYear {
			x := mapIndexToX(i, len(entries), plot)
			drawThickLine(img, x, plot.Min.Y, x, plot.Max.Y, colMarker)
		}
	}

	series := []struct {
		pick  func(domain.ScoreView) int
		color color.RGBA
	}{
		{func(s domain.ScoreView) int { return s.Money }, colMoney},
		{func(s domain.ScoreView) int { return s.Love }, colLove},
		{func(s domain.ScoreView) int { return s.Work }, colWork},
		{func(s domain.ScoreView) int { return s.Health }, colHealth},
	}
	for _, s := range series {
		drawSeries(img, plot, entries, s.pick, s.color, false)
	}
	drawSeries(img, plot, entries, func(s domain.ScoreView) int { return s.Overall }, colOverall, true)
	for i, e := range entries {
		x := mapIndexToX(i, len(entries), plot)
		y := mapScoreToY(e.Scores.Overall, plot)
		fillRect(img, image.Rect(x-3, y-3, x+4, y+4), parseHex(e.Scores.Level.Color))
	}

	var buf bytes.Buffer
	if err := png.Encode(&buf, img); err != nil {
		return nil, err
	}
	return &domain.ImageData{
		MimeType: "image/png",
		Width:    r.width,
		Height:   r.height,
		Bytes:    buf.Bytes(),
	}, nil
}

func drawSeries(img *image.RGBA, rect image.Rectangle, entries []domain.TimelineEntryView, pick func(domain.ScoreView) int, col color.RGBA, thick bool) {
	lastX, lastY := -1, -1
	for i, e := range entries {
		x := mapIndexToX(i, len(entries), rect)
		y := mapScoreToY(pick(e.Scores), rect)
		if lastX >= 0 {
			if thick {
				drawThickLine(img, lastX, lastY, x, y, col)
			} else {
				drawLine(img, lastX, lastY, x, y, col)
			}
		}
		lastX, lastY = x, y
	}
}

func levelColor(score int) color.RGBA {
	return parseHex(domain.NewLevelView(score).Color)
}

// parseHex reads #RRGGBB; anything else is black.
func parseHex(hex string) color.RGBA {
	v, err := strconv.ParseUint(strings.TrimPrefix(hex, "#"), 16, 32)
	if err != nil || len(hex) != 7 {
		return color.RGBA{A: 255}
	}
	return color.RGBA{R: uint8(v >> 16), G: uint8(v >> 8), B: uint8(v), A: 255}
}

func drawGrid(img *image.RGBA, rect image.Rectangle, verticalLines, horizontalLines int) {
	for i := 0; i <= verticalLines; i++ {
		x := rect.Min.X + (rect.Dx()*i)/max(1, verticalLines)
		drawLine(img, x, rect.Min.Y, x, rect.Max.Y, colGrid)
	}
	for i := 0; i <= horizontalLines; i++ {
		y := rect.Min.Y + (rect.Dy()*i)/max(1, horizontalLines)
		drawLine(img, rect.Min.X, y, rect.Max.X, y, colGrid)
	}
}

func mapIndexToX(idx, total int, rect image.Rectangle) int {
	if total <= 1 {
		return rect.Min.X
	}
	return rect.Min.X + (idx*(rect.Dx()-1))/(total-1)
}

func mapScoreToY(score int, rect image.Rectangle) int {
	score = max(0, min(scoreMax, score))
	return rect.Max.Y - (score*(rect.Dy()-1))/scoreMax
}

func fillRect(img *image.RGBA, rect image.Rectangle, col color.RGBA) {
	r := rect.Intersect(img.Bounds())
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			img.SetRGBA(x, y, col)
		}
	}
}

func drawThickLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	drawLine(img, x0, y0, x1, y1, col)
	drawLine(img, x0+1, y0, x1+1, y1, col)
	drawLine(img, x0, y0+1, x1, y1+1, col)
}

// drawLine is Bresenham's algorithm clipped to the image bounds.
func drawLine(img *image.RGBA, x0, y0, x1, y1 int, col color.RGBA) {
	dx := abs(x1 - x0)
	sx := -1
	if x0 < x1 {
		sx = 1
	}
	dy := -abs(y1 - y0)
	sy := -1
	if y0 < y1 {
		sy = 1
	}
	err := dx + dy
	for {
		if image.Pt(x0, y0).In(img.Bounds()) {
			img.SetRGBA(x0, y0, col)
		}
		if x0 == x1 && y0 == y1 {
			break
		}
		e2 := 2 * err
		if e2 >= dy {
			err += dy
			x0 += sx
		}
		if e2 <= dx {
			err += dx
			y0 += sy
		}
	}
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
