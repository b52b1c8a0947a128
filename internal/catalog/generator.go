package catalog

import (
	"fmt"
	"math/rand"
	"time"

	"github.com/noah-isme/exam-seat-finder/internal/geometry"
	"github.com/noah-isme/exam-seat-finder/internal/models"
)

// GeneratorConfig sizes the generated population. The same config always yields the same data.
type GeneratorConfig struct {
	Seed          int64
	Students      int
	Classrooms    int
	Exams         int
	ExamStartDate time.Time
}

// seatHintRadius is how close a door or window must be for a seat to be described by it.
const seatHintRadius = 1.5

type classroomTemplate struct {
	name    string
	rows    int
	columns int
}

var classroomTemplates = []classroomTemplate{
	{name: "Lecture Hall A101", rows: 5, columns: 6},
	{name: "Seminar Room B204", rows: 6, columns: 8},
	{name: "Examination Hall C301", rows: 8, columns: 10},
	{name: "Laboratory D110", rows: 4, columns: 5},
	{name: "Auditorium E001", rows: 10, columns: 12},
}

type examTemplate struct {
	name     string
	duration string
}

var examTemplates = []examTemplate{
	{name: "Mathematics", duration: "3 hours"},
	{name: "Physics", duration: "3 hours"},
	{name: "Chemistry", duration: "2 hours 30 minutes"},
	{name: "English Literature", duration: "2 hours"},
	{name: "Computer Science", duration: "3 hours"},
	{name: "Biology", duration: "2 hours 30 minutes"},
}

var (
	sections   = []string{"A", "B", "C", "D"}
	firstNames = []string{"Alice", "Bob", "Charlie", "Diana", "Ethan", "Fatima", "George", "Hana", "Ivan", "Jaya", "Kofi", "Lena", "Mateo", "Nadia", "Omar", "Priya"}
	lastNames  = []string{"Johnson", "Smith", "Brown", "Prince", "Garcia", "Khan", "Nguyen", "Okafor", "Rossi", "Sato", "Schmidt", "Silva", "Taylor", "Wang"}
)

// Generate builds a catalog from cfg.
func Generate(cfg GeneratorConfig) (*Catalog, error) {
	students, exams, classrooms := GenerateData(cfg)
	return New(students, exams, classrooms)
}

// GenerateData produces the raw population without building a catalog.
//
// Every exam shuffles the pooled seats of all classrooms and hands them to the
// students in order, so an (exam, seat) pair is never allocated twice. Students
// beyond the pooled capacity get no seat for that exam.
func GenerateData(cfg GeneratorConfig) ([]models.Student, []models.Exam, []models.Classroom) {
	if cfg.ExamStartDate.IsZero() {
		cfg.ExamStartDate = time.Date(2025, time.March, 10, 0, 0, 0, 0, time.UTC)
	}
	rng := rand.New(rand.NewSource(cfg.Seed))

	exams := generateExams(cfg.Exams, cfg.ExamStartDate)
	classrooms := generateClassrooms(cfg.Classrooms)
	students := generateStudents(cfg.Students, rng)

	var pool []string
	for _, room := range classrooms {
		for _, seat := range room.Seats {
			pool = append(pool, seat.ID)
		}
	}
	for _, exam := range exams {
		order := rng.Perm(len(pool))
		for i := range students {
			if i >= len(order) {
				break
			}
			students[i].Exams = append(students[i].Exams, models.ExamSeatAllocation{ExamID: exam.ID, SeatID: pool[order[i]]})
		}
	}

	return students, exams, classrooms
}

func generateExams(n int, start time.Time) []models.Exam {
	exams := make([]models.Exam, 0, n)
	for i := 0; i < n; i++ {
		tpl := examTemplates[i%len(examTemplates)]
		name := tpl.name
		if round := i / len(examTemplates); round > 0 {
			name = fmt.Sprintf("%s %d", tpl.name, round+1)
		}
		exams = append(exams, models.Exam{
			ID:       fmt.Sprintf("exam-%d", i+1),
			Name:     name,
			Date:     start.AddDate(0, 0, i),
			Duration: tpl.duration,
		})
	}
	return exams
}

func generateClassrooms(n int) []models.Classroom {
	classrooms := make([]models.Classroom, 0, n)
	for k := 1; k <= n; k++ {
		tpl := classroomTemplates[(k-1)%len(classroomTemplates)]
		name := tpl.name
		if round := (k - 1) / len(classroomTemplates); round > 0 {
			name = fmt.Sprintf("%s (%d)", tpl.name, round+1)
		}
		room := models.Classroom{
			ID:      fmt.Sprintf("classroom-%d", k),
			Name:    name,
			Rows:    tpl.rows,
			Columns: tpl.columns,
		}
		room.Landmarks = standardLandmarks(room.ID, tpl.rows, tpl.columns)
		room.Seats = make([]models.Seat, 0, tpl.rows*tpl.columns)
		for r := 1; r <= tpl.rows; r++ {
			for c := 1; c <= tpl.columns; c++ {
				seat := models.Seat{
					ID:     fmt.Sprintf("%s-seat-%d", room.ID, (r-1)*tpl.columns+c),
					Row:    r,
					Column: c,
				}
				seat.LandmarkDescription = seatHint(seat, room.Landmarks)
				room.Seats = append(room.Seats, seat)
			}
		}
		classrooms = append(classrooms, room)
	}
	return classrooms
}

// standardLandmarks furnishes a room: entrance, windows, board and desk, plus a
// dais and rear exit for the larger halls.
func standardLandmarks(roomID string, rows, columns int) []models.Landmark {
	half := float64(columns) / 2
	landmarks := []models.Landmark{
		{
			Type:        models.LandmarkDoor,
			Description: "Main entrance",
			Position:    models.Position{X: 0, Y: 1},
			Orientation: models.OrientationLeft,
		},
		{
			Type:        models.LandmarkWindow,
			Description: "Windows on the right wall",
			Position:    models.Position{X: float64(columns) + 1, Y: float64(rows) / 2},
			Orientation: models.OrientationRight,
		},
		{
			Type:        models.LandmarkBoard,
			Description: "Main whiteboard",
			Position:    models.Position{X: half - 1, Y: -0.8},
			Dimension:   &models.Dimension{Width: 2, Height: 0.25},
		},
		{
			Type:        models.LandmarkTeacher,
			Description: "Teacher's desk",
			Position:    models.Position{X: float64(columns) - 1, Y: 0},
		},
	}
	if rows >= 8 {
		landmarks = append(landmarks, models.Landmark{
			Type:        models.LandmarkDais,
			Description: "Invigilator dais",
			Position:    models.Position{X: 1, Y: -0.5},
		})
	}
	if rows >= 6 {
		landmarks = append(landmarks, models.Landmark{
			Type:        models.LandmarkDoor,
			Description: "Rear exit",
			Position:    models.Position{X: float64(columns), Y: float64(rows) + 1},
			Orientation: models.OrientationBottom,
		})
	}
	for i := range landmarks {
		landmarks[i].ID = fmt.Sprintf("%s-landmark-%d", roomID, i+1)
	}
	return landmarks
}

// seatHint describes a seat by the first door or window right next to it.
func seatHint(seat models.Seat, landmarks []models.Landmark) string {
	for _, landmark := range geometry.Within(seat, landmarks, seatHintRadius) {
		switch landmark.Type {
		case models.LandmarkDoor, models.LandmarkWindow:
			return "Near " + string(landmark.Type)
		}
	}
	return ""
}

func generateStudents(n int, rng *rand.Rand) []models.Student {
	students := make([]models.Student, 0, n)
	for i := 1; i <= n; i++ {
		section := sections[(i-1)%len(sections)]
		students = append(students, models.Student{
			ID:               fmt.Sprintf("student-%d", i),
			Name:             firstNames[rng.Intn(len(firstNames))] + " " + lastNames[rng.Intn(len(lastNames))],
			HallTicketNumber: fmt.Sprintf("%s%05d", section, 10000+i*13),
			Section:          section,
		})
	}
	return students
}
