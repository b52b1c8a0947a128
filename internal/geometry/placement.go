package geometry

import (
	"fmt"
	"math"

	"github.com/noah-isme/exam-seat-finder/internal/models"
)

// footprint is a landmark size in canvas units.
type footprint struct {
	width  float64
	height float64
}

var defaultFootprints = map[models.LandmarkType]footprint{
	models.LandmarkBoard:   {width: 40, height: 10},
	models.LandmarkTeacher: {width: 30, height: 20},
	models.LandmarkDais:    {width: 50, height: 16},
	models.LandmarkDoor:    {width: 20, height: 30},
	models.LandmarkWindow:  {width: 30, height: 15},
}

// placement is the closed set of landmark projection rules. Each variant owns
// exactly one projection function; classify is the only constructor.
type placement interface {
	placement() Placement
	project(p *Projector, landmark models.Landmark) Geometry
}

// frontPlacement pins a landmark to the top margin, in front of the first row.
type frontPlacement struct{}

// wallPlacement pins a landmark against the left, right or bottom wall.
type wallPlacement struct {
	wall models.Orientation
}

// markerPlacement draws a small circle straight at the landmark's grid position.
type markerPlacement struct{}

// classify maps a landmark to its placement variant. Unknown types or
// orientations are errors rather than a silent fallback.
func classify(landmark models.Landmark, rows, columns int) (placement, error) {
	switch landmark.Type {
	case models.LandmarkBoard, models.LandmarkDais, models.LandmarkTeacher:
		return frontPlacement{}, nil
	case models.LandmarkDoor, models.LandmarkWindow:
		switch landmark.Orientation {
		case models.OrientationTop:
			return frontPlacement{}, nil
		case models.OrientationLeft, models.OrientationRight, models.OrientationBottom:
			return wallPlacement{wall: landmark.Orientation}, nil
		case models.OrientationNone:
			wall := inferWall(landmark.Position, rows, columns)
			if wall == models.OrientationTop {
				return frontPlacement{}, nil
			}
			return wallPlacement{wall: wall}, nil
		default:
			return nil, fmt.Errorf("unknown orientation %q", landmark.Orientation)
		}
	case models.LandmarkOther:
		return markerPlacement{}, nil
	default:
		return nil, fmt.Errorf("unknown landmark type %q", landmark.Type)
	}
}

// inferWall picks the wall a door or window without orientation most likely sits on.
func inferWall(pos models.Position, rows, columns int) models.Orientation {
	switch {
	case pos.X < 1:
		return models.OrientationLeft
	case pos.X > float64(columns):
		return models.OrientationRight
	case pos.Y > float64(rows):
		return models.OrientationBottom
	default:
		return models.OrientationTop
	}
}

func (frontPlacement) placement() Placement { return PlacementFront }

func (frontPlacement) project(p *Projector, landmark models.Landmark) Geometry {
	size := p.footprintOf(landmark)
	return Geometry{
		Shape:        ShapeRect,
		X:            landmark.Position.X*p.cfg.CellSize + p.cfg.Padding,
		Y:            math.Max(0, p.cfg.Padding-size.height-frontGap),
		Width:        size.width,
		Height:       size.height,
		CornerRadius: landmarkCorner,
		Orientation:  models.OrientationTop,
	}
}

func (w wallPlacement) placement() Placement { return PlacementWall }

func (w wallPlacement) project(p *Projector, landmark models.Landmark) Geometry {
	size := p.footprintOf(landmark)
	span := math.Max(size.width, size.height)
	thickness := math.Min(size.width, size.height)
	width, height := p.Canvas()

	g := Geometry{
		Shape:        ShapeRect,
		CornerRadius: landmarkCorner,
		Orientation:  w.wall,
	}
	switch w.wall {
	case models.OrientationLeft, models.OrientationRight:
		g.Width, g.Height = thickness, span
		g.Y = landmark.Position.Y*p.cfg.CellSize + p.cfg.Padding - span/2
		g.X = wallGap
		if w.wall == models.OrientationRight {
			g.X = width - wallGap - thickness
		}
	default:
		g.Width, g.Height = span, thickness
		g.X = landmark.Position.X*p.cfg.CellSize + p.cfg.Padding - span/2
		g.Y = height - wallGap - thickness
	}
	return g
}

func (markerPlacement) placement() Placement { return PlacementMarker }

func (markerPlacement) project(p *Projector, landmark models.Landmark) Geometry {
	return Geometry{
		Shape:  ShapeCircle,
		X:      landmark.Position.X*p.cfg.CellSize + p.cfg.Padding,
		Y:      landmark.Position.Y*p.cfg.CellSize + p.cfg.Padding,
		Width:  2 * markerRadius,
		Height: 2 * markerRadius,
		Radius: markerRadius,
	}
}

// footprintOf scales an explicit dimension by the cell size, or falls back to the type default.
func (p *Projector) footprintOf(landmark models.Landmark) footprint {
	if d := landmark.Dimension; d != nil && d.Width > 0 && d.Height > 0 {
		return footprint{width: d.Width * p.cfg.CellSize, height: d.Height * p.cfg.CellSize}
	}
	if size, ok := defaultFootprints[landmark.Type]; ok {
		return size
	}
	return footprint{width: 2 * markerRadius, height: 2 * markerRadius}
}
