package models

import "fmt"

// LandmarkType enumerates the fixed room features used to describe seat locations.
type LandmarkType string

const (
	LandmarkDoor    LandmarkType = "door"
	LandmarkWindow  LandmarkType = "window"
	LandmarkTeacher LandmarkType = "teacher"
	LandmarkBoard   LandmarkType = "board"
	LandmarkDais    LandmarkType = "dais"
	LandmarkOther   LandmarkType = "other"
)

// ParseLandmarkType validates a raw type tag.
func ParseLandmarkType(raw string) (LandmarkType, error) {
	switch t := LandmarkType(raw); t {
	case LandmarkDoor, LandmarkWindow, LandmarkTeacher, LandmarkBoard, LandmarkDais, LandmarkOther:
		return t, nil
	default:
		return "", fmt.Errorf("unknown landmark type %q", raw)
	}
}

// Orientation names the wall a landmark sits against. Empty means unspecified.
type Orientation string

const (
	OrientationNone   Orientation = ""
	OrientationTop    Orientation = "top"
	OrientationRight  Orientation = "right"
	OrientationBottom Orientation = "bottom"
	OrientationLeft   Orientation = "left"
)

// ParseOrientation validates a raw orientation; the empty string is allowed.
func ParseOrientation(raw string) (Orientation, error) {
	switch o := Orientation(raw); o {
	case OrientationNone, OrientationTop, OrientationRight, OrientationBottom, OrientationLeft:
		return o, nil
	default:
		return "", fmt.Errorf("unknown orientation %q", raw)
	}
}

// Position is a grid-space point: X runs along columns, Y along rows.
// Values may be fractional or negative to sit outside the seat grid.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Dimension is a landmark footprint in grid units.
type Dimension struct {
	Width  float64 `json:"width"`
	Height float64 `json:"height"`
}

// Landmark is a fixed room feature such as a door or the board.
type Landmark struct {
	ID          string       `json:"id"`
	Type        LandmarkType `json:"type"`
	Description string       `json:"description"`
	Position    Position     `json:"position"`
	Dimension   *Dimension   `json:"dimension,omitempty"`
	Orientation Orientation  `json:"orientation,omitempty"`
}
