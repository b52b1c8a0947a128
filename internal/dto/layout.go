package dto

import (
	"github.com/noah-isme/exam-seat-finder/internal/geometry"
	"github.com/noah-isme/exam-seat-finder/internal/models"
)

// LayoutSeat is a projected seat with its chart state.
type LayoutSeat struct {
	geometry.Geometry
	State       models.SeatState `json:"state"`
	StudentID   string           `json:"studentId,omitempty"`
	Description string           `json:"description,omitempty"`
}

// LayoutResponse is a classroom ready to draw.
type LayoutResponse struct {
	ClassroomID    string              `json:"classroomId"`
	ClassroomName  string              `json:"classroomName"`
	ExamID         string              `json:"examId,omitempty"`
	SelectedSeatID string              `json:"selectedSeatId,omitempty"`
	Width          float64             `json:"width"`
	Height         float64             `json:"height"`
	Config         geometry.Config     `json:"config"`
	Seats          []LayoutSeat        `json:"seats"`
	Landmarks      []geometry.Geometry `json:"landmarks"`
	GridLines      []geometry.Line     `json:"gridLines"`
	FrontLabel     geometry.Point      `json:"frontLabel"`
}

// SeatStates indexes seat states by seat id.
func (l *LayoutResponse) SeatStates() map[string]models.SeatState {
	states := make(map[string]models.SeatState, len(l.Seats))
	for _, seat := range l.Seats {
		states[seat.ID] = seat.State
	}
	return states
}

// Geometry rebuilds the plain projected layout.
func (l *LayoutResponse) Geometry() *geometry.Layout {
	seats := make([]geometry.Geometry, 0, len(l.Seats))
	for _, seat := range l.Seats {
		seats = append(seats, seat.Geometry)
	}
	return &geometry.Layout{
		ClassroomID: l.ClassroomID,
		Width:       l.Width,
		Height:      l.Height,
		Config:      l.Config,
		Seats:       seats,
		Landmarks:   l.Landmarks,
		GridLines:   l.GridLines,
		FrontLabel:  l.FrontLabel,
	}
}

// RosterEntry is one line of an exam roster.
type RosterEntry struct {
	HallTicketNumber string `json:"hallTicketNumber"`
	StudentID        string `json:"studentId"`
	Name             string `json:"name"`
	Section          string `json:"section"`
	SeatID           string `json:"seatId"`
	ClassroomID      string `json:"classroomId,omitempty"`
	ClassroomName    string `json:"classroomName,omitempty"`
	Row              int    `json:"row,omitempty"`
	Column           int    `json:"column,omitempty"`
}

// RosterResponse is the seating roster for one exam.
type RosterResponse struct {
	Exam    models.Exam   `json:"exam"`
	Entries []RosterEntry `json:"entries"`
}
