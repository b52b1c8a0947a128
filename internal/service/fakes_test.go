package service

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/noah-isme/exam-seat-finder/internal/models"
	appErrors "github.com/noah-isme/exam-seat-finder/pkg/errors"
)

type fakeDirectory struct {
	students   []models.Student
	exams      []models.Exam
	classrooms []models.Classroom
	occupancy  map[string]map[string]string
}

func (f *fakeDirectory) ListStudents() []models.Student {
	return append([]models.Student(nil), f.students...)
}

func (f *fakeDirectory) ListExams() []models.Exam {
	return append([]models.Exam(nil), f.exams...)
}

func (f *fakeDirectory) ListClassrooms() []models.Classroom {
	return append([]models.Classroom(nil), f.classrooms...)
}

func (f *fakeDirectory) Student(id string) (models.Student, bool) {
	for _, s := range f.students {
		if s.ID == id {
			return s, true
		}
	}
	return models.Student{}, false
}

func (f *fakeDirectory) StudentByHallTicket(ticket string) (models.Student, bool) {
	for _, s := range f.students {
		if s.HallTicketNumber == ticket {
			return s, true
		}
	}
	return models.Student{}, false
}

func (f *fakeDirectory) Exam(id string) (models.Exam, bool) {
	for _, e := range f.exams {
		if e.ID == id {
			return e, true
		}
	}
	return models.Exam{}, false
}

func (f *fakeDirectory) Classroom(id string) (models.Classroom, bool) {
	for _, c := range f.classrooms {
		if c.ID == id {
			return c, true
		}
	}
	return models.Classroom{}, false
}

func (f *fakeDirectory) LocateSeat(seatID string) (models.Classroom, models.Seat, bool) {
	for _, c := range f.classrooms {
		for _, s := range c.Seats {
			if s.ID == seatID {
				return c, s, true
			}
		}
	}
	return models.Classroom{}, models.Seat{}, false
}

func (f *fakeDirectory) ExamOccupancy(examID string) (map[string]string, bool) {
	occ, ok := f.occupancy[examID]
	return occ, ok
}

// newFixture builds a 2x3 room with a board, a door and a window, three
// students and two exams. student-2 points at a seat that does not exist and
// student-3 holds an allocation for an exam that does not exist.
func newFixture() *fakeDirectory {
	board := models.Landmark{ID: "board", Type: models.LandmarkBoard, Description: "Main whiteboard", Position: models.Position{X: 2, Y: -0.8}}
	door := models.Landmark{ID: "door", Type: models.LandmarkDoor, Description: "Main entrance", Position: models.Position{X: 0, Y: 1}, Orientation: models.OrientationLeft}
	window := models.Landmark{ID: "window", Type: models.LandmarkWindow, Description: "Windows", Position: models.Position{X: 4, Y: 2}, Orientation: models.OrientationRight}

	room := models.Classroom{
		ID:        "classroom-1",
		Name:      "Lecture Hall A101",
		Rows:      2,
		Columns:   3,
		Landmarks: []models.Landmark{board, door, window},
	}
	for r := 1; r <= 2; r++ {
		for c := 1; c <= 3; c++ {
			room.Seats = append(room.Seats, models.Seat{
				ID:     fmt.Sprintf("classroom-1-seat-%d", (r-1)*3+c),
				Row:    r,
				Column: c,
			})
		}
	}
	room.Seats[0].IsOccupied, room.Seats[0].StudentID = true, "student-3"
	room.Seats[0].LandmarkDescription = "Near door"
	room.Seats[2].IsOccupied, room.Seats[2].StudentID = true, "student-1"

	return &fakeDirectory{
		students: []models.Student{
			{ID: "student-1", Name: "Alice Johnson", HallTicketNumber: "A10013", Section: "A", Exams: []models.ExamSeatAllocation{
				{ExamID: "exam-1", SeatID: "classroom-1-seat-3"},
			}},
			{ID: "student-2", Name: "Bob Smith", HallTicketNumber: "B10026", Section: "B", Exams: []models.ExamSeatAllocation{
				{ExamID: "exam-1", SeatID: "classroom-3-seat-14"},
			}},
			{ID: "student-3", Name: "Carol Brown", HallTicketNumber: "C10039", Section: "A", Exams: []models.ExamSeatAllocation{
				{ExamID: "exam-1", SeatID: "classroom-1-seat-1"},
				{ExamID: "exam-ghost", SeatID: "classroom-1-seat-2"},
			}},
		},
		exams: []models.Exam{
			{ID: "exam-2", Name: "Physics", Date: time.Date(2025, time.March, 11, 0, 0, 0, 0, time.UTC), Duration: "3 hours"},
			{ID: "exam-1", Name: "Mathematics", Date: time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC), Duration: "3 hours"},
		},
		classrooms: []models.Classroom{room},
		occupancy: map[string]map[string]string{
			"exam-1": {"classroom-1-seat-3": "student-1", "classroom-1-seat-1": "student-3"},
			"exam-2": {},
		},
	}
}

type memoryCacheRepo struct {
	mu     sync.Mutex
	values map[string][]byte
	getErr error
	sets   int
}

func newMemoryCacheRepo() *memoryCacheRepo {
	return &memoryCacheRepo{values: make(map[string][]byte)}
}

func (m *memoryCacheRepo) Get(ctx context.Context, key string, dest interface{}) error {
	if m.getErr != nil {
		return m.getErr
	}
	m.mu.Lock()
	raw, ok := m.values[key]
	m.mu.Unlock()
	if !ok {
		return appErrors.ErrCacheMiss
	}
	return json.Unmarshal(raw, dest)
}

func (m *memoryCacheRepo) Set(ctx context.Context, key string, value interface{}, ttl time.Duration) error {
	raw, err := json.Marshal(value)
	if err != nil {
		return err
	}
	m.mu.Lock()
	m.sets++
	m.values[key] = raw
	m.mu.Unlock()
	return nil
}

func (m *memoryCacheRepo) DeleteByPattern(ctx context.Context, pattern string) error {
	if pattern == "" {
		return errors.New("empty pattern")
	}
	m.mu.Lock()
	for key := range m.values {
		delete(m.values, key)
	}
	m.mu.Unlock()
	return nil
}

func counterValue(m *MetricsService, name string, labels map[string]string) float64 {
	families, err := m.Registry().Gather()
	if err != nil {
		return -1
	}
	for _, family := range families {
		if family.GetName() != name {
			continue
		}
	metrics:
		for _, metric := range family.GetMetric() {
			for _, pair := range metric.GetLabel() {
				if want, ok := labels[pair.GetName()]; ok && want != pair.GetValue() {
					continue metrics
				}
			}
			if metric.GetCounter() != nil {
				return metric.GetCounter().GetValue()
			}
			if metric.GetHistogram() != nil {
				return float64(metric.GetHistogram().GetSampleCount())
			}
			return metric.GetGauge().GetValue()
		}
	}
	return 0
}
