package export

import (
	"fmt"
	"math"

	"github.com/jung-kurt/gofpdf"
)

// ShapeStyle selects the fill and stroke of a chart shape.
type ShapeStyle string

const (
	StyleAvailable ShapeStyle = "available"
	StyleOccupied  ShapeStyle = "occupied"
	StyleSelected  ShapeStyle = "selected"
	StyleLandmark  ShapeStyle = "landmark"
)

type rgb struct{ r, g, b int }

type palette struct {
	fill   rgb
	stroke rgb
	text   rgb
}

var palettes = map[ShapeStyle]palette{
	StyleAvailable: {fill: rgb{255, 255, 255}, stroke: rgb{156, 163, 175}, text: rgb{55, 65, 81}},
	StyleOccupied:  {fill: rgb{229, 231, 235}, stroke: rgb{107, 114, 128}, text: rgb{55, 65, 81}},
	StyleSelected:  {fill: rgb{37, 99, 235}, stroke: rgb{29, 78, 216}, text: rgb{255, 255, 255}},
	StyleLandmark:  {fill: rgb{253, 230, 138}, stroke: rgb{180, 83, 9}, text: rgb{120, 53, 15}},
}

// ChartShape is a rectangle or circle in canvas units. Rectangles are anchored at
// their top-left corner, circles at their centre.
type ChartShape struct {
	Circle bool
	X      float64
	Y      float64
	Width  float64
	Height float64
	Radius float64
	Label  string
	Style  ShapeStyle
}

// ChartLine is a background grid line in canvas units.
type ChartLine struct {
	X1, Y1, X2, Y2 float64
}

// Chart is a seating chart independent of how it was projected.
type Chart struct {
	Title      string
	Subtitle   string
	Width      float64
	Height     float64
	Lines      []ChartLine
	Landmarks  []ChartShape
	Seats      []ChartShape
	FrontLabel string
	FrontX     float64
	FrontY     float64
}

// RenderSeatingChart draws the chart scaled to fit an A4 landscape page.
func (e *PDFExporter) RenderSeatingChart(chart Chart) ([]byte, error) {
	if chart.Width <= 0 || chart.Height <= 0 {
		return nil, fmt.Errorf("chart has no drawable area")
	}
	pdf := gofpdf.New("L", "mm", "A4", "")
	pdf.SetMargins(pageMargin, pageMargin, pageMargin)
	pdf.SetAutoPageBreak(false, 0)
	pdf.AddPage()

	pageW, pageH := pdf.GetPageSize()
	top := pageMargin
	if chart.Title != "" {
		pdf.SetFont("Arial", "B", 14)
		pdf.CellFormat(0, titleHeight, chart.Title, "", 1, "C", false, 0, "")
		top += titleHeight
	}
	if chart.Subtitle != "" {
		pdf.SetFont("Arial", "", 10)
		pdf.CellFormat(0, 6, chart.Subtitle, "", 1, "C", false, 0, "")
		top += 6
	}

	scale := chartScale(chart, pageW-2*pageMargin, pageH-top-pageMargin)
	offsetX := (pageW - chart.Width*scale) / 2
	offsetY := top
	tx := func(x float64) float64 { return offsetX + x*scale }
	ty := func(y float64) float64 { return offsetY + y*scale }

	pdf.SetDrawColor(229, 231, 235)
	pdf.SetLineWidth(0.2)
	for _, line := range chart.Lines {
		pdf.Line(tx(line.X1), ty(line.Y1), tx(line.X2), ty(line.Y2))
	}

	if chart.FrontLabel != "" {
		pdf.SetFont("Arial", "B", 9)
		pdf.SetTextColor(107, 114, 128)
		w := pdf.GetStringWidth(chart.FrontLabel)
		pdf.Text(tx(chart.FrontX)-w/2, ty(chart.FrontY), chart.FrontLabel)
	}

	pdf.SetLineWidth(0.3)
	for _, shape := range chart.Landmarks {
		drawShape(pdf, shape, tx, ty, scale)
	}
	pdf.SetFont("Arial", "", 7)
	for _, shape := range chart.Seats {
		drawShape(pdf, shape, tx, ty, scale)
	}

	return output(pdf)
}

func chartScale(chart Chart, availW, availH float64) float64 {
	return math.Min(availW/chart.Width, availH/chart.Height)
}

func drawShape(pdf *gofpdf.Fpdf, shape ChartShape, tx, ty func(float64) float64, scale float64) {
	p, ok := palettes[shape.Style]
	if !ok {
		p = palettes[StyleAvailable]
	}
	pdf.SetFillColor(p.fill.r, p.fill.g, p.fill.b)
	pdf.SetDrawColor(p.stroke.r, p.stroke.g, p.stroke.b)

	var cx, cy float64
	if shape.Circle {
		cx, cy = tx(shape.X), ty(shape.Y)
		pdf.Circle(cx, cy, shape.Radius*scale, "FD")
	} else {
		pdf.Rect(tx(shape.X), ty(shape.Y), shape.Width*scale, shape.Height*scale, "FD")
		cx, cy = tx(shape.X+shape.Width/2), ty(shape.Y+shape.Height/2)
	}

	if shape.Label == "" {
		return
	}
	pdf.SetTextColor(p.text.r, p.text.g, p.text.b)
	w := pdf.GetStringWidth(shape.Label)
	pdf.Text(cx-w/2, cy+1, shape.Label)
}
