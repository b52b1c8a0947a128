package geometry

import (
	"fmt"
	"math"

	"github.com/noah-isme/exam-seat-finder/internal/models"
)

const (
	// MinCellSize keeps the seat footprint positive after the gutter is removed.
	MinCellSize = 20.0

	seatGutter       = 10.0
	seatCornerRadius = 8.0
	frontGap         = 4.0
	wallGap          = 4.0
	markerRadius     = 8.0
	landmarkCorner   = 2.0
)

// Config holds the presentation constants for one projection.
type Config struct {
	CellSize float64 `json:"cellSize"`
	Padding  float64 `json:"padding"`
}

// DefaultConfig matches the classic on-screen seating chart.
func DefaultConfig() Config {
	return Config{CellSize: 60, Padding: 40}
}

// Validate rejects configurations that cannot produce a sensible chart.
func (c Config) Validate() error {
	if math.IsNaN(c.CellSize) || c.CellSize < MinCellSize {
		return fmt.Errorf("cell size must be at least %.0f", MinCellSize)
	}
	if math.IsNaN(c.Padding) || c.Padding < 0 {
		return fmt.Errorf("padding must not be negative")
	}
	return nil
}

// Kind tells seat geometry apart from landmark geometry.
type Kind string

const (
	KindSeat     Kind = "seat"
	KindLandmark Kind = "landmark"
)

// Shape is the primitive a renderer should draw.
type Shape string

const (
	ShapeRect   Shape = "rect"
	ShapeCircle Shape = "circle"
)

// Placement records which projection rule produced a landmark geometry.
type Placement string

const (
	PlacementFront  Placement = "front"
	PlacementWall   Placement = "wall"
	PlacementMarker Placement = "marker"
)

// Geometry is a drawable element. For rectangles X and Y are the top-left corner;
// for circles they are the centre and Width/Height span the bounding box.
type Geometry struct {
	ID           string              `json:"id"`
	Kind         Kind                `json:"kind"`
	Shape        Shape               `json:"shape"`
	X            float64             `json:"x"`
	Y            float64             `json:"y"`
	Width        float64             `json:"width"`
	Height       float64             `json:"height"`
	CornerRadius float64             `json:"cornerRadius,omitempty"`
	Radius       float64             `json:"radius,omitempty"`
	Label        string              `json:"label,omitempty"`
	Title        string              `json:"title,omitempty"`
	LandmarkType models.LandmarkType `json:"landmarkType,omitempty"`
	Placement    Placement           `json:"placement,omitempty"`
	Orientation  models.Orientation  `json:"orientation,omitempty"`
}

// Point is a canvas coordinate.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Line is a background grid line.
type Line struct {
	X1 float64 `json:"x1"`
	Y1 float64 `json:"y1"`
	X2 float64 `json:"x2"`
	Y2 float64 `json:"y2"`
}

// Layout is a fully projected classroom.
type Layout struct {
	ClassroomID string     `json:"classroomId"`
	Width       float64    `json:"width"`
	Height      float64    `json:"height"`
	Config      Config     `json:"config"`
	Seats       []Geometry `json:"seats"`
	Landmarks   []Geometry `json:"landmarks"`
	GridLines   []Line     `json:"gridLines"`
	FrontLabel  Point      `json:"frontLabel"`
}

// ProjectSeat places a seat in its grid cell. It needs no room dimensions.
func ProjectSeat(seat models.Seat, cfg Config) Geometry {
	size := cfg.CellSize - seatGutter
	return Geometry{
		ID:           seat.ID,
		Kind:         KindSeat,
		Shape:        ShapeRect,
		X:            float64(seat.Column-1)*cfg.CellSize + cfg.Padding,
		Y:            float64(seat.Row-1)*cfg.CellSize + cfg.Padding,
		Width:        size,
		Height:       size,
		CornerRadius: seatCornerRadius,
		Label:        fmt.Sprintf("%d-%d", seat.Row, seat.Column),
	}
}

// Projector projects a room of fixed dimensions.
type Projector struct {
	rows    int
	columns int
	cfg     Config
}

// NewProjector validates the configuration and room dimensions.
func NewProjector(rows, columns int, cfg Config) (*Projector, error) {
	if rows <= 0 || columns <= 0 {
		return nil, fmt.Errorf("room must have at least one row and one column, got %dx%d", rows, columns)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &Projector{rows: rows, columns: columns, cfg: cfg}, nil
}

// Canvas returns the drawing surface size: the grid plus padding on every side.
func (p *Projector) Canvas() (width, height float64) {
	width = float64(p.columns)*p.cfg.CellSize + 2*p.cfg.Padding
	height = float64(p.rows)*p.cfg.CellSize + 2*p.cfg.Padding
	return width, height
}

// ProjectSeat places a seat using the projector's configuration.
func (p *Projector) ProjectSeat(seat models.Seat) Geometry {
	return ProjectSeat(seat, p.cfg)
}

// ProjectLandmark places a landmark according to its placement variant.
func (p *Projector) ProjectLandmark(landmark models.Landmark) (Geometry, error) {
	variant, err := classify(landmark, p.rows, p.columns)
	if err != nil {
		return Geometry{}, err
	}
	g := variant.project(p, landmark)
	g.ID = landmark.ID
	g.Kind = KindLandmark
	g.Title = landmark.Description
	g.LandmarkType = landmark.Type
	g.Placement = variant.placement()
	return g, nil
}

// ProjectClassroom projects every seat and landmark of the classroom, in input order.
func (p *Projector) ProjectClassroom(classroom models.Classroom) (*Layout, error) {
	width, height := p.Canvas()
	layout := &Layout{
		ClassroomID: classroom.ID,
		Width:       width,
		Height:      height,
		Config:      p.cfg,
		Seats:       make([]Geometry, 0, len(classroom.Seats)),
		Landmarks:   make([]Geometry, 0, len(classroom.Landmarks)),
		GridLines:   p.gridLines(),
		FrontLabel:  Point{X: width / 2, Y: p.cfg.Padding / 2},
	}
	for _, seat := range classroom.Seats {
		layout.Seats = append(layout.Seats, p.ProjectSeat(seat))
	}
	for _, landmark := range classroom.Landmarks {
		g, err := p.ProjectLandmark(landmark)
		if err != nil {
			return nil, fmt.Errorf("landmark %s: %w", landmark.ID, err)
		}
		layout.Landmarks = append(layout.Landmarks, g)
	}
	return layout, nil
}

// Project is a convenience for projecting a classroom with its own dimensions.
func Project(classroom models.Classroom, cfg Config) (*Layout, error) {
	p, err := NewProjector(classroom.Rows, classroom.Columns, cfg)
	if err != nil {
		return nil, err
	}
	return p.ProjectClassroom(classroom)
}

func (p *Projector) gridLines() []Line {
	width, height := p.Canvas()
	pad := p.cfg.Padding
	lines := make([]Line, 0, p.rows+p.columns)
	for r := 0; r < p.rows; r++ {
		y := float64(r)*p.cfg.CellSize + pad
		lines = append(lines, Line{X1: pad / 2, Y1: y, X2: width - pad/2, Y2: y})
	}
	for c := 0; c < p.columns; c++ {
		x := float64(c)*p.cfg.CellSize + pad
		lines = append(lines, Line{X1: x, Y1: pad / 2, X2: x, Y2: height - pad/2})
	}
	return lines
}
