package models

// Student is an exam candidate. HallTicketNumber is the search key students type in.
type Student struct {
	ID               string               `json:"id"`
	Name             string               `json:"name"`
	HallTicketNumber string               `json:"hallTicketNumber"`
	Section          string               `json:"section"`
	Exams            []ExamSeatAllocation `json:"exams"`
}

// ExamSeatAllocation binds a student to one seat for one exam.
type ExamSeatAllocation struct {
	ExamID string `json:"examId"`
	SeatID string `json:"seatId"`
}

// AllocationFor returns the allocation for examID, if any.
func (s Student) AllocationFor(examID string) (ExamSeatAllocation, bool) {
	for _, alloc := range s.Exams {
		if alloc.ExamID == examID {
			return alloc, true
		}
	}
	return ExamSeatAllocation{}, false
}

// StudentFilter encapsulates allowed search parameters for listing students.
type StudentFilter struct {
	Search   string `validate:"max=64"`
	Section  string `validate:"max=16"`
	ExamID   string `validate:"max=64"`
	Page     int    `validate:"gte=0,lte=100000"`
	PageSize int    `validate:"gte=0"`
}

// StudentSeat is an allocation resolved against the classroom data.
type StudentSeat struct {
	Exam          Exam   `json:"exam"`
	SeatID        string `json:"seatId"`
	ClassroomID   string `json:"classroomId,omitempty"`
	ClassroomName string `json:"classroomName,omitempty"`
	Row           int    `json:"row,omitempty"`
	Column        int    `json:"column,omitempty"`
	Resolved      bool   `json:"resolved"`
}

// StudentDetail contains a student with every allocation resolved.
type StudentDetail struct {
	Student
	Seats []StudentSeat `json:"seats"`
}
