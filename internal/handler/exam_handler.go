package handler

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-seat-finder/internal/models"
	"github.com/noah-isme/exam-seat-finder/internal/service"
	appErrors "github.com/noah-isme/exam-seat-finder/pkg/errors"
	"github.com/noah-isme/exam-seat-finder/pkg/response"
)

type examService interface {
	List(ctx context.Context) []models.Exam
	Get(ctx context.Context, id string) (*models.Exam, error)
}

type rosterExporter interface {
	RosterCSV(ctx context.Context, examID string) (*service.ExportFile, error)
	RosterPDF(ctx context.Context, examID string) (*service.ExportFile, error)
}

// ExamHandler serves exams and roster downloads.
type ExamHandler struct {
	service examService
	export  rosterExporter
}

// NewExamHandler constructs the handler. export may be nil when downloads are disabled.
func NewExamHandler(service examService, export rosterExporter) *ExamHandler {
	return &ExamHandler{service: service, export: export}
}

// List godoc
// @Summary List exams
// @Tags Exams
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /exams [get]
func (h *ExamHandler) List(c *gin.Context) {
	response.JSON(c, http.StatusOK, h.service.List(c.Request.Context()), nil)
}

// Get godoc
// @Summary Exam detail
// @Tags Exams
// @Produce json
// @Param id path string true "Exam ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /exams/{id} [get]
func (h *ExamHandler) Get(c *gin.Context) {
	exam, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, exam, nil)
}

// RosterCSV godoc
// @Summary Exam seating roster as CSV
// @Tags Exams
// @Produce text/csv
// @Param id path string true "Exam ID"
// @Success 200 {file} file
// @Router /exams/{id}/roster.csv [get]
func (h *ExamHandler) RosterCSV(c *gin.Context) {
	h.download(c, func(ctx context.Context, id string) (*service.ExportFile, error) {
		return h.export.RosterCSV(ctx, id)
	})
}

// RosterPDF godoc
// @Summary Exam seating roster as PDF
// @Tags Exams
// @Produce application/pdf
// @Param id path string true "Exam ID"
// @Success 200 {file} file
// @Router /exams/{id}/roster.pdf [get]
func (h *ExamHandler) RosterPDF(c *gin.Context) {
	h.download(c, func(ctx context.Context, id string) (*service.ExportFile, error) {
		return h.export.RosterPDF(ctx, id)
	})
}

func (h *ExamHandler) download(c *gin.Context, render func(ctx context.Context, id string) (*service.ExportFile, error)) {
	if h.export == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}
	file, err := render(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}
