package catalog

import (
	"fmt"

	"github.com/noah-isme/exam-seat-finder/internal/models"
)

// Catalog is the read-only reference data the API serves: students, exams and
// classrooms. It is built once by New, which also derives seat occupancy, and
// never changes afterwards, so it is safe for concurrent readers without locks.
// Every accessor returns copies.
type Catalog struct {
	students   []models.Student
	exams      []models.Exam
	classrooms []models.Classroom

	studentIndex   map[string]int
	ticketIndex    map[string]int
	examIndex      map[string]int
	classroomIndex map[string]int
	seatIndex      map[string]seatRef
	examOccupancy  map[string]map[string]string

	issues []Issue
}

type seatRef struct {
	classroom int
	seat      int
}

// New validates and indexes the reference data and runs the occupancy pass.
// Structural problems (duplicate ids, seats outside the grid, unknown landmark
// tags) are errors. Referential problems in allocations are kept and reported by
// Audit, because a lookup must be able to tell them apart from a user miss.
func New(students []models.Student, exams []models.Exam, classrooms []models.Classroom) (*Catalog, error) {
	c := &Catalog{
		students:       cloneStudents(students),
		exams:          append([]models.Exam(nil), exams...),
		classrooms:     cloneClassrooms(classrooms),
		studentIndex:   make(map[string]int, len(students)),
		ticketIndex:    make(map[string]int, len(students)),
		examIndex:      make(map[string]int, len(exams)),
		classroomIndex: make(map[string]int, len(classrooms)),
		seatIndex:      make(map[string]seatRef),
		examOccupancy:  make(map[string]map[string]string, len(exams)),
	}

	if err := c.indexExams(); err != nil {
		return nil, err
	}
	if err := c.indexClassrooms(); err != nil {
		return nil, err
	}
	if err := c.indexStudents(); err != nil {
		return nil, err
	}
	c.deriveOccupancy()

	return c, nil
}

func (c *Catalog) indexExams() error {
	for i, exam := range c.exams {
		if exam.ID == "" {
			return fmt.Errorf("exam at index %d has no id", i)
		}
		if _, dup := c.examIndex[exam.ID]; dup {
			return fmt.Errorf("duplicate exam id %s", exam.ID)
		}
		c.examIndex[exam.ID] = i
		c.examOccupancy[exam.ID] = make(map[string]string)
	}
	return nil
}

func (c *Catalog) indexClassrooms() error {
	for ci, room := range c.classrooms {
		if room.ID == "" {
			return fmt.Errorf("classroom at index %d has no id", ci)
		}
		if _, dup := c.classroomIndex[room.ID]; dup {
			return fmt.Errorf("duplicate classroom id %s", room.ID)
		}
		if room.Rows <= 0 || room.Columns <= 0 {
			return fmt.Errorf("classroom %s: invalid grid %dx%d", room.ID, room.Rows, room.Columns)
		}
		c.classroomIndex[room.ID] = ci

		cells := make(map[[2]int]string, len(room.Seats))
		for si, seat := range room.Seats {
			if seat.ID == "" {
				return fmt.Errorf("classroom %s: seat at index %d has no id", room.ID, si)
			}
			if _, dup := c.seatIndex[seat.ID]; dup {
				return fmt.Errorf("duplicate seat id %s", seat.ID)
			}
			if seat.Row < 1 || seat.Row > room.Rows || seat.Column < 1 || seat.Column > room.Columns {
				return fmt.Errorf("classroom %s: seat %s at (%d,%d) is outside the %dx%d grid", room.ID, seat.ID, seat.Row, seat.Column, room.Rows, room.Columns)
			}
			cell := [2]int{seat.Row, seat.Column}
			if other, taken := cells[cell]; taken {
				return fmt.Errorf("classroom %s: seats %s and %s share row %d column %d", room.ID, other, seat.ID, seat.Row, seat.Column)
			}
			cells[cell] = seat.ID
			c.seatIndex[seat.ID] = seatRef{classroom: ci, seat: si}
		}
		if len(room.Seats) != room.Capacity() {
			c.report(IssueIncompleteGrid, room.ID, fmt.Sprintf("%d seats for a %dx%d grid", len(room.Seats), room.Rows, room.Columns))
		}

		for li, landmark := range room.Landmarks {
			if _, err := models.ParseLandmarkType(string(landmark.Type)); err != nil {
				return fmt.Errorf("classroom %s: landmark %d: %w", room.ID, li, err)
			}
			if _, err := models.ParseOrientation(string(landmark.Orientation)); err != nil {
				return fmt.Errorf("classroom %s: landmark %d: %w", room.ID, li, err)
			}
		}
	}
	return nil
}

func (c *Catalog) indexStudents() error {
	for i, student := range c.students {
		if student.ID == "" {
			return fmt.Errorf("student at index %d has no id", i)
		}
		if _, dup := c.studentIndex[student.ID]; dup {
			return fmt.Errorf("duplicate student id %s", student.ID)
		}
		c.studentIndex[student.ID] = i

		if first, dup := c.ticketIndex[student.HallTicketNumber]; dup {
			c.report(IssueDuplicateHallTicket, student.HallTicketNumber,
				fmt.Sprintf("students %s and %s; lookups resolve to %s", c.students[first].ID, student.ID, c.students[first].ID))
			continue
		}
		c.ticketIndex[student.HallTicketNumber] = i
	}
	return nil
}

// deriveOccupancy replays every allocation against the seat set, students in
// order and allocations in order. Prior occupancy flags are discarded; the last
// allocation to touch a seat names its occupant.
func (c *Catalog) deriveOccupancy() {
	for ci := range c.classrooms {
		for si := range c.classrooms[ci].Seats {
			c.classrooms[ci].Seats[si].IsOccupied = false
			c.classrooms[ci].Seats[si].StudentID = ""
		}
	}

	for _, student := range c.students {
		seenExam := make(map[string]struct{}, len(student.Exams))
		for _, alloc := range student.Exams {
			if _, repeated := seenExam[alloc.ExamID]; repeated {
				c.report(IssueRepeatedExam, student.ID, fmt.Sprintf("more than one allocation for exam %s", alloc.ExamID))
			}
			seenExam[alloc.ExamID] = struct{}{}

			ref, ok := c.seatIndex[alloc.SeatID]
			if !ok {
				c.report(IssueDanglingSeat, student.ID, fmt.Sprintf("exam %s references unknown seat %s", alloc.ExamID, alloc.SeatID))
				continue
			}
			seat := &c.classrooms[ref.classroom].Seats[ref.seat]
			seat.IsOccupied = true
			seat.StudentID = student.ID

			occupancy, known := c.examOccupancy[alloc.ExamID]
			if !known {
				c.report(IssueUnknownExam, student.ID, fmt.Sprintf("allocation references unknown exam %s", alloc.ExamID))
				continue
			}
			if holder, taken := occupancy[alloc.SeatID]; taken && holder != student.ID {
				c.report(IssueDuplicateAllocation, alloc.ExamID+"/"+alloc.SeatID,
					fmt.Sprintf("seat allocated to both %s and %s", holder, student.ID))
			}
			// Later allocations replace earlier ones, matching the seat's StudentID.
			occupancy[alloc.SeatID] = student.ID
		}
	}
}

func (c *Catalog) report(kind IssueKind, subject, detail string) {
	c.issues = append(c.issues, Issue{Kind: kind, Subject: subject, Detail: detail})
}

// ListStudents returns every student in generation order.
func (c *Catalog) ListStudents() []models.Student {
	return cloneStudents(c.students)
}

// ListExams returns every exam in generation order.
func (c *Catalog) ListExams() []models.Exam {
	return append([]models.Exam(nil), c.exams...)
}

// ListClassrooms returns every classroom, seats included.
func (c *Catalog) ListClassrooms() []models.Classroom {
	return cloneClassrooms(c.classrooms)
}

// Student looks a student up by id.
func (c *Catalog) Student(id string) (models.Student, bool) {
	i, ok := c.studentIndex[id]
	if !ok {
		return models.Student{}, false
	}
	return cloneStudent(c.students[i]), true
}

// StudentByHallTicket returns the first student holding the exact (case-sensitive) hall ticket.
func (c *Catalog) StudentByHallTicket(ticket string) (models.Student, bool) {
	i, ok := c.ticketIndex[ticket]
	if !ok {
		return models.Student{}, false
	}
	return cloneStudent(c.students[i]), true
}

// Exam looks an exam up by id.
func (c *Catalog) Exam(id string) (models.Exam, bool) {
	i, ok := c.examIndex[id]
	if !ok {
		return models.Exam{}, false
	}
	return c.exams[i], true
}

// Classroom looks a classroom up by id.
func (c *Catalog) Classroom(id string) (models.Classroom, bool) {
	i, ok := c.classroomIndex[id]
	if !ok {
		return models.Classroom{}, false
	}
	return cloneClassroom(c.classrooms[i]), true
}

// LocateSeat finds the classroom containing seatID.
func (c *Catalog) LocateSeat(seatID string) (models.Classroom, models.Seat, bool) {
	ref, ok := c.seatIndex[seatID]
	if !ok {
		return models.Classroom{}, models.Seat{}, false
	}
	room := cloneClassroom(c.classrooms[ref.classroom])
	return room, room.Seats[ref.seat], true
}

// ExamOccupancy returns seat id -> student id for one exam.
func (c *Catalog) ExamOccupancy(examID string) (map[string]string, bool) {
	occupancy, ok := c.examOccupancy[examID]
	if !ok {
		return nil, false
	}
	out := make(map[string]string, len(occupancy))
	for seatID, studentID := range occupancy {
		out[seatID] = studentID
	}
	return out, true
}

// Audit lists the referential problems found while building the catalog.
func (c *Catalog) Audit() []Issue {
	return append([]Issue(nil), c.issues...)
}

// Stats summarises the catalog for start-up logging and readiness output.
func (c *Catalog) Stats() Stats {
	stats := Stats{
		Students:   len(c.students),
		Exams:      len(c.exams),
		Classrooms: len(c.classrooms),
		Seats:      len(c.seatIndex),
		Issues:     len(c.issues),
	}
	for _, room := range c.classrooms {
		for _, seat := range room.Seats {
			if seat.IsOccupied {
				stats.OccupiedSeats++
			}
		}
	}
	return stats
}

// Stats is a size summary of the catalog.
type Stats struct {
	Students      int `json:"students"`
	Exams         int `json:"exams"`
	Classrooms    int `json:"classrooms"`
	Seats         int `json:"seats"`
	OccupiedSeats int `json:"occupiedSeats"`
	Issues        int `json:"issues"`
}
