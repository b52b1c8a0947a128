package service

import (
	"context"
	"sort"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-seat-finder/internal/dto"
	"github.com/noah-isme/exam-seat-finder/internal/models"
	appErrors "github.com/noah-isme/exam-seat-finder/pkg/errors"
)

type examDirectory interface {
	ListExams() []models.Exam
	Exam(id string) (models.Exam, bool)
	ListStudents() []models.Student
	LocateSeat(seatID string) (models.Classroom, models.Seat, bool)
}

// ExamService exposes exams and their seating rosters.
type ExamService struct {
	dir    examDirectory
	logger *zap.Logger
}

// NewExamService constructs an ExamService.
func NewExamService(dir examDirectory, logger *zap.Logger) *ExamService {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &ExamService{dir: dir, logger: logger}
}

// List returns exams in schedule order.
func (s *ExamService) List(ctx context.Context) []models.Exam {
	exams := s.dir.ListExams()
	sort.SliceStable(exams, func(i, j int) bool { return exams[i].Date.Before(exams[j].Date) })
	return exams
}

// Get returns a single exam.
func (s *ExamService) Get(ctx context.Context, id string) (*models.Exam, error) {
	exam, ok := s.dir.Exam(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
	}
	return &exam, nil
}

// Roster lists every student seated for the exam, ordered by classroom, row and column.
// Entries whose seat cannot be located sort last with empty classroom fields.
func (s *ExamService) Roster(ctx context.Context, examID string) (*dto.RosterResponse, error) {
	exam, ok := s.dir.Exam(examID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
	}

	entries := make([]dto.RosterEntry, 0)
	for _, student := range s.dir.ListStudents() {
		alloc, ok := student.AllocationFor(examID)
		if !ok {
			continue
		}
		entry := dto.RosterEntry{
			HallTicketNumber: student.HallTicketNumber,
			StudentID:        student.ID,
			Name:             student.Name,
			Section:          student.Section,
			SeatID:           alloc.SeatID,
		}
		if room, seat, ok := s.dir.LocateSeat(alloc.SeatID); ok {
			entry.ClassroomID = room.ID
			entry.ClassroomName = room.Name
			entry.Row = seat.Row
			entry.Column = seat.Column
		}
		entries = append(entries, entry)
	}

	sort.SliceStable(entries, func(i, j int) bool {
		a, b := entries[i], entries[j]
		if (a.ClassroomID == "") != (b.ClassroomID == "") {
			return b.ClassroomID == ""
		}
		if a.ClassroomID != b.ClassroomID {
			return a.ClassroomID < b.ClassroomID
		}
		if a.Row != b.Row {
			return a.Row < b.Row
		}
		return a.Column < b.Column
	})

	return &dto.RosterResponse{Exam: exam, Entries: entries}, nil
}
