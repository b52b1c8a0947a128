package service

import (
	"context"
	"strings"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seat-finder/internal/models"
	appErrors "github.com/noah-isme/exam-seat-finder/pkg/errors"
)

const (
	defaultStudentPageSize = 20
	maxStudentPageSize     = 100
)

type studentDirectory interface {
	ListStudents() []models.Student
	Student(id string) (models.Student, bool)
	Exam(id string) (models.Exam, bool)
	LocateSeat(seatID string) (models.Classroom, models.Seat, bool)
}

// StudentService handles student roster use-cases.
type StudentService struct {
	dir       studentDirectory
	validator *validator.Validate
	logger    *zap.Logger
}

// NewStudentService constructs the student service.
func NewStudentService(dir studentDirectory, validate *validator.Validate, logger *zap.Logger) *StudentService {
	if validate == nil {
		validate = validator.New()
	}
	if logger == nil {
		logger = zap.NewNop()
	}
	return &StudentService{dir: dir, validator: validate, logger: logger}
}

// List filters students and returns one page plus pagination metadata.
// Search matches name or hall ticket, case-insensitively.
func (s *StudentService) List(ctx context.Context, filter models.StudentFilter) ([]models.Student, *models.Pagination, error) {
	if err := s.validator.Struct(filter); err != nil {
		return nil, nil, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "page must be 0-100000 and search, section or examId is too long")
	}
	page := filter.Page
	if page < 1 {
		page = 1
	}
	size := filter.PageSize
	if size <= 0 {
		size = defaultStudentPageSize
	}
	if size > maxStudentPageSize {
		size = maxStudentPageSize
	}
	if filter.ExamID != "" {
		if _, ok := s.dir.Exam(filter.ExamID); !ok {
			return nil, nil, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
	}

	search := strings.ToLower(strings.TrimSpace(filter.Search))
	matched := make([]models.Student, 0)
	for _, student := range s.dir.ListStudents() {
		if filter.Section != "" && !strings.EqualFold(student.Section, filter.Section) {
			continue
		}
		if filter.ExamID != "" {
			if _, ok := student.AllocationFor(filter.ExamID); !ok {
				continue
			}
		}
		if search != "" &&
			!strings.Contains(strings.ToLower(student.Name), search) &&
			!strings.Contains(strings.ToLower(student.HallTicketNumber), search) {
			continue
		}
		matched = append(matched, student)
	}

	pagination := &models.Pagination{Page: page, PageSize: size, TotalCount: len(matched)}
	if page-1 >= (len(matched)+size-1)/size {
		return []models.Student{}, pagination, nil
	}
	start := (page - 1) * size
	end := start + size
	if end > len(matched) {
		end = len(matched)
	}
	return matched[start:end], pagination, nil
}

// Get returns a student with every allocation resolved against exams and classrooms.
// Allocations that point at missing data are returned unresolved rather than failing.
func (s *StudentService) Get(ctx context.Context, id string) (*models.StudentDetail, error) {
	student, ok := s.dir.Student(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student not found")
	}

	detail := &models.StudentDetail{Student: student, Seats: make([]models.StudentSeat, 0, len(student.Exams))}
	for _, alloc := range student.Exams {
		seat := models.StudentSeat{SeatID: alloc.SeatID, Exam: models.Exam{ID: alloc.ExamID}}
		exam, examOK := s.dir.Exam(alloc.ExamID)
		if examOK {
			seat.Exam = exam
		}
		room, located, seatOK := s.dir.LocateSeat(alloc.SeatID)
		if seatOK {
			seat.ClassroomID = room.ID
			seat.ClassroomName = room.Name
			seat.Row = located.Row
			seat.Column = located.Column
		}
		seat.Resolved = examOK && seatOK
		if !seat.Resolved {
			s.logger.Warn("student allocation does not resolve",
				zap.String("student_id", student.ID),
				zap.String("exam_id", alloc.ExamID),
				zap.String("seat_id", alloc.SeatID))
		}
		detail.Seats = append(detail.Seats, seat)
	}
	return detail, nil
}
