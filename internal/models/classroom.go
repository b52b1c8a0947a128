package models

// Classroom is an exam hall laid out as a Rows x Columns grid of seats.
type Classroom struct {
	ID        string     `json:"id"`
	Name      string     `json:"name"`
	Rows      int        `json:"rows"`
	Columns   int        `json:"columns"`
	Seats     []Seat     `json:"seats"`
	Landmarks []Landmark `json:"landmarks"`
}

// Capacity is the number of grid cells in the room.
func (c Classroom) Capacity() int {
	return c.Rows * c.Columns
}

// Seat is one grid cell. Row and Column are 1-based.
type Seat struct {
	ID                  string `json:"id"`
	Row                 int    `json:"row"`
	Column              int    `json:"column"`
	IsOccupied          bool   `json:"isOccupied"`
	StudentID           string `json:"studentId,omitempty"`
	LandmarkDescription string `json:"landmarkDescription,omitempty"`
}

// ClassroomSummary is the list view of a classroom.
type ClassroomSummary struct {
	ID            string `json:"id"`
	Name          string `json:"name"`
	Rows          int    `json:"rows"`
	Columns       int    `json:"columns"`
	Capacity      int    `json:"capacity"`
	OccupiedSeats int    `json:"occupiedSeats"`
	Landmarks     int    `json:"landmarks"`
}

// Summary condenses the classroom for list endpoints.
func (c Classroom) Summary() ClassroomSummary {
	occupied := 0
	for _, seat := range c.Seats {
		if seat.IsOccupied {
			occupied++
		}
	}
	return ClassroomSummary{
		ID:            c.ID,
		Name:          c.Name,
		Rows:          c.Rows,
		Columns:       c.Columns,
		Capacity:      c.Capacity(),
		OccupiedSeats: occupied,
		Landmarks:     len(c.Landmarks),
	}
}

// SeatState is how a seat is drawn on a chart.
type SeatState string

const (
	SeatAvailable SeatState = "available"
	SeatOccupied  SeatState = "occupied"
	SeatSelected  SeatState = "selected"
)
