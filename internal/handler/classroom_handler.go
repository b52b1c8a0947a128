package handler

import (
	"context"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/noah-isme/exam-seat-finder/internal/dto"
	"github.com/noah-isme/exam-seat-finder/internal/middleware"
	"github.com/noah-isme/exam-seat-finder/internal/models"
	"github.com/noah-isme/exam-seat-finder/internal/service"
	appErrors "github.com/noah-isme/exam-seat-finder/pkg/errors"
	"github.com/noah-isme/exam-seat-finder/pkg/response"
)

type classroomService interface {
	List(ctx context.Context) []models.ClassroomSummary
	Get(ctx context.Context, id string) (*models.Classroom, error)
	Layout(ctx context.Context, req service.LayoutRequest) (*dto.LayoutResponse, bool, error)
	SVG(ctx context.Context, req service.LayoutRequest) ([]byte, error)
}

type chartExporter interface {
	ChartPDF(ctx context.Context, req service.LayoutRequest) (*service.ExportFile, error)
}

// ClassroomHandler serves classrooms and their seating charts.
type ClassroomHandler struct {
	service classroomService
	export  chartExporter
}

// NewClassroomHandler constructs the handler. export may be nil when downloads are disabled.
func NewClassroomHandler(service classroomService, export chartExporter) *ClassroomHandler {
	return &ClassroomHandler{service: service, export: export}
}

// List godoc
// @Summary List classrooms
// @Tags Classrooms
// @Produce json
// @Success 200 {object} response.Envelope
// @Router /classrooms [get]
func (h *ClassroomHandler) List(c *gin.Context) {
	summaries := h.service.List(c.Request.Context())
	response.JSON(c, http.StatusOK, summaries, nil)
}

// Get godoc
// @Summary Classroom detail with seats and landmarks
// @Tags Classrooms
// @Produce json
// @Param id path string true "Classroom ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classrooms/{id} [get]
func (h *ClassroomHandler) Get(c *gin.Context) {
	room, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, room, nil)
}

// Layout godoc
// @Summary Projected seating chart geometry
// @Tags Classrooms
// @Produce json
// @Param id path string true "Classroom ID"
// @Param examId query string false "Colour occupancy for this exam only"
// @Param selectedSeatId query string false "Seat to highlight"
// @Param cellSize query number false "Grid cell size (default 60)"
// @Param padding query number false "Canvas padding (default 40)"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /classrooms/{id}/layout [get]
func (h *ClassroomHandler) Layout(c *gin.Context) {
	req, err := parseLayoutRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	start := time.Now()
	layout, cacheHit, err := h.service.Layout(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, layout, nil, meta)
}

// ChartSVG godoc
// @Summary Seating chart as SVG
// @Tags Classrooms
// @Produce image/svg+xml
// @Param id path string true "Classroom ID"
// @Param examId query string false "Exam ID"
// @Param selectedSeatId query string false "Seat to highlight"
// @Success 200 {string} string "SVG document"
// @Router /classrooms/{id}/chart.svg [get]
func (h *ClassroomHandler) ChartSVG(c *gin.Context) {
	req, err := parseLayoutRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	svg, err := h.service.SVG(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Inline(c, "image/svg+xml", svg)
}

// ChartPDF godoc
// @Summary Seating chart as PDF
// @Tags Classrooms
// @Produce application/pdf
// @Param id path string true "Classroom ID"
// @Param examId query string false "Exam ID"
// @Param selectedSeatId query string false "Seat to highlight"
// @Success 200 {file} file
// @Router /classrooms/{id}/chart.pdf [get]
func (h *ClassroomHandler) ChartPDF(c *gin.Context) {
	if h.export == nil {
		response.Error(c, appErrors.Clone(appErrors.ErrNotFound, "exports are disabled"))
		return
	}
	req, err := parseLayoutRequest(c)
	if err != nil {
		response.Error(c, err)
		return
	}
	file, err := h.export.ChartPDF(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	response.Attachment(c, file.Filename, file.ContentType, file.Payload)
}

func parseLayoutRequest(c *gin.Context) (service.LayoutRequest, error) {
	req := service.LayoutRequest{
		ClassroomID:    c.Param("id"),
		ExamID:         strings.TrimSpace(c.Query("examId")),
		SelectedSeatID: strings.TrimSpace(c.Query("selectedSeatId")),
	}
	var err error
	if req.CellSize, err = optionalFloat(c, "cellSize"); err != nil {
		return req, err
	}
	if req.Padding, err = optionalFloat(c, "padding"); err != nil {
		return req, err
	}
	return req, nil
}

func optionalFloat(c *gin.Context, name string) (*float64, error) {
	raw := strings.TrimSpace(c.Query(name))
	if raw == "" {
		return nil, nil
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return nil, appErrors.Clone(appErrors.ErrValidation, name+" must be a number")
	}
	return &v, nil
}
