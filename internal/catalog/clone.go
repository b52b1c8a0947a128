package catalog

import "github.com/noah-isme/exam-seat-finder/internal/models"

func cloneStudent(s models.Student) models.Student {
	s.Exams = append([]models.ExamSeatAllocation(nil), s.Exams...)
	return s
}

func cloneStudents(in []models.Student) []models.Student {
	out := make([]models.Student, len(in))
	for i, s := range in {
		out[i] = cloneStudent(s)
	}
	return out
}

func cloneClassroom(c models.Classroom) models.Classroom {
	c.Seats = append([]models.Seat(nil), c.Seats...)
	if c.Landmarks == nil {
		return c
	}
	landmarks := make([]models.Landmark, len(c.Landmarks))
	for i, l := range c.Landmarks {
		if l.Dimension != nil {
			d := *l.Dimension
			l.Dimension = &d
		}
		landmarks[i] = l
	}
	c.Landmarks = landmarks
	return c
}

func cloneClassrooms(in []models.Classroom) []models.Classroom {
	out := make([]models.Classroom, len(in))
	for i, c := range in {
		out[i] = cloneClassroom(c)
	}
	return out
}
