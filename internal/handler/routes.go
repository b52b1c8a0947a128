package handler

import "github.com/gin-gonic/gin"

// Handlers groups the API handlers mounted by Register.
type Handlers struct {
	Search     *SearchHandler
	Classrooms *ClassroomHandler
	Students   *StudentHandler
	Exams      *ExamHandler
	// Exports enables the roster and chart download routes.
	Exports bool
}

// Register mounts the seat finder API on group.
func Register(group *gin.RouterGroup, h Handlers) {
	group.GET("/search", h.Search.Search)
	group.GET("/seats/:id/landmarks", h.Search.SeatLandmarks)

	classrooms := group.Group("/classrooms")
	classrooms.GET("", h.Classrooms.List)
	classrooms.GET("/:id", h.Classrooms.Get)
	classrooms.GET("/:id/layout", h.Classrooms.Layout)
	classrooms.GET("/:id/chart.svg", h.Classrooms.ChartSVG)

	students := group.Group("/students")
	students.GET("", h.Students.List)
	students.GET("/:id", h.Students.Get)

	exams := group.Group("/exams")
	exams.GET("", h.Exams.List)
	exams.GET("/:id", h.Exams.Get)

	if h.Exports {
		classrooms.GET("/:id/chart.pdf", h.Classrooms.ChartPDF)
		exams.GET("/:id/roster.csv", h.Exams.RosterCSV)
		exams.GET("/:id/roster.pdf", h.Exams.RosterPDF)
	}
}
