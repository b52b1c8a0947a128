// Package render draws projected classroom layouts.
package render

import (
	"bytes"
	"fmt"
	"html"

	"github.com/noah-isme/exam-seat-finder/internal/geometry"
	"github.com/noah-isme/exam-seat-finder/internal/models"
)

const chartCSS = `
    .grid { stroke: #e5e7eb; stroke-width: 1; }
    .seat { stroke-width: 2; }
    .seat-available { fill: #ffffff; stroke: #9ca3af; }
    .seat-occupied { fill: #e5e7eb; stroke: #6b7280; }
    .seat-selected { fill: #2563eb; stroke: #1d4ed8; }
    .seat-label { font: 11px sans-serif; fill: #374151; text-anchor: middle; dominant-baseline: middle; }
    .seat-selected + .seat-label { fill: #ffffff; font-weight: bold; }
    .landmark { fill: #fde68a; stroke: #b45309; stroke-width: 1; }
    .landmark-door { fill: #d6b48c; }
    .landmark-window { fill: #bae6fd; stroke: #0369a1; }
    .landmark-board { fill: #1f2937; }
    .front-label { font: bold 12px sans-serif; fill: #6b7280; text-anchor: middle; }`

// SVGOption configures the SVG renderer.
type SVGOption func(*svgRenderer)

type svgRenderer struct {
	states     map[string]models.SeatState
	title      string
	frontLabel string
}

// WithSeatStates colours seats by state; seats without an entry are drawn available.
func WithSeatStates(states map[string]models.SeatState) SVGOption {
	return func(r *svgRenderer) { r.states = states }
}

// WithTitle sets the document title.
func WithTitle(title string) SVGOption { return func(r *svgRenderer) { r.title = title } }

// WithFrontLabel overrides the label printed above the first row.
func WithFrontLabel(label string) SVGOption { return func(r *svgRenderer) { r.frontLabel = label } }

// RenderSVG draws the layout: grid first, then landmarks, then seats on top.
func RenderSVG(l *geometry.Layout, opts ...SVGOption) []byte {
	r := svgRenderer{frontLabel: "FRONT (BOARD)"}
	for _, opt := range opts {
		opt(&r)
	}

	var buf bytes.Buffer
	fmt.Fprintf(&buf, `<svg xmlns="http://www.w3.org/2000/svg" viewBox="0 0 %.1f %.1f" width="%.0f" height="%.0f">`+"\n",
		l.Width, l.Height, l.Width, l.Height)
	if r.title != "" {
		fmt.Fprintf(&buf, "  <title>%s</title>\n", html.EscapeString(r.title))
	}
	fmt.Fprintf(&buf, "  <style>%s\n  </style>\n", chartCSS)
	fmt.Fprintf(&buf, `  <rect x="0" y="0" width="%.1f" height="%.1f" fill="#f9fafb"/>`+"\n", l.Width, l.Height)

	buf.WriteString(`  <g class="grid">` + "\n")
	for _, line := range l.GridLines {
		fmt.Fprintf(&buf, `    <line x1="%.1f" y1="%.1f" x2="%.1f" y2="%.1f"/>`+"\n", line.X1, line.Y1, line.X2, line.Y2)
	}
	buf.WriteString("  </g>\n")

	fmt.Fprintf(&buf, `  <text class="front-label" x="%.1f" y="%.1f">%s</text>`+"\n",
		l.FrontLabel.X, l.FrontLabel.Y, html.EscapeString(r.frontLabel))

	for _, g := range l.Landmarks {
		renderLandmark(&buf, g)
	}
	for _, g := range l.Seats {
		renderSeat(&buf, g, r.state(g.ID))
	}

	buf.WriteString("</svg>\n")
	return buf.Bytes()
}

func (r svgRenderer) state(seatID string) models.SeatState {
	if s, ok := r.states[seatID]; ok {
		return s
	}
	return models.SeatAvailable
}

func renderLandmark(buf *bytes.Buffer, g geometry.Geometry) {
	class := fmt.Sprintf("landmark landmark-%s", g.LandmarkType)
	fmt.Fprintf(buf, `  <g id="landmark-%s">`+"\n", html.EscapeString(g.ID))
	if g.Title != "" {
		fmt.Fprintf(buf, "    <title>%s</title>\n", html.EscapeString(g.Title))
	}
	switch g.Shape {
	case geometry.ShapeCircle:
		fmt.Fprintf(buf, `    <circle class="%s" cx="%.1f" cy="%.1f" r="%.1f"/>`+"\n", class, g.X, g.Y, g.Radius)
	default:
		fmt.Fprintf(buf, `    <rect class="%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f"/>`+"\n",
			class, g.X, g.Y, g.Width, g.Height, g.CornerRadius)
	}
	buf.WriteString("  </g>\n")
}

func renderSeat(buf *bytes.Buffer, g geometry.Geometry, state models.SeatState) {
	fmt.Fprintf(buf, `  <g id="seat-%s">`+"\n", html.EscapeString(g.ID))
	fmt.Fprintf(buf, "    <title>%s</title>\n", html.EscapeString(seatTitle(g, state)))
	fmt.Fprintf(buf, `    <rect class="seat seat-%s" x="%.1f" y="%.1f" width="%.1f" height="%.1f" rx="%.1f"/>`+"\n",
		state, g.X, g.Y, g.Width, g.Height, g.CornerRadius)
	fmt.Fprintf(buf, `    <text class="seat-label" x="%.1f" y="%.1f">%s</text>`+"\n",
		g.X+g.Width/2, g.Y+g.Height/2, html.EscapeString(g.Label))
	buf.WriteString("  </g>\n")
}

func seatTitle(g geometry.Geometry, state models.SeatState) string {
	switch state {
	case models.SeatSelected:
		return fmt.Sprintf("Seat %s (your seat)", g.Label)
	case models.SeatOccupied:
		return fmt.Sprintf("Seat %s (occupied)", g.Label)
	default:
		return fmt.Sprintf("Seat %s", g.Label)
	}
}
