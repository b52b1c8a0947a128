package dto

import "github.com/noah-isme/exam-seat-finder/internal/models"

// SearchResponse is a resolved hall-ticket lookup plus a printable summary.
type SearchResponse struct {
	models.SearchResult
	Details SeatDetails `json:"details"`
}

// SeatDetails is the seat card shown to a student.
type SeatDetails struct {
	Student         string   `json:"student"`
	HallTicket      string   `json:"hallTicket"`
	Exam            string   `json:"exam"`
	ExamDate        string   `json:"examDate"`
	Duration        string   `json:"duration"`
	Classroom       string   `json:"classroom"`
	Position        string   `json:"position"`
	Hint            string   `json:"hint,omitempty"`
	NearbyLandmarks []string `json:"nearbyLandmarks"`
}

// SeatLandmarksResponse lists the landmarks near one seat.
type SeatLandmarksResponse struct {
	SeatID      string            `json:"seatId"`
	ClassroomID string            `json:"classroomId"`
	Landmarks   []models.Landmark `json:"landmarks"`
}
