package handler

import (
	"context"
	"net/http"
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

type searchService interface {
	Resolve(ctx context.Context, req service.SearchRequest) (*models.SearchResult, bool, error)
	LandmarksBySeat(ctx context.Context, seatID string) (*dto.SeatLandmarksResponse, error)
}

// SearchHandler serves hall ticket lookups.
type SearchHandler struct {
	service searchService
}

// NewSearchHandler constructs the handler.
func NewSearchHandler(service searchService) *SearchHandler {
	return &SearchHandler{service: service}
}

// Search godoc
// @Summary Find a seat by hall ticket
// @Tags Search
// @Produce json
// @Param hallTicket query string true "Hall ticket number (case-sensitive)"
// @Param examId query string true "Exam ID"
// @Success 200 {object} response.Envelope
// @Failure 400 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /search [get]
func (h *SearchHandler) Search(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	req := service.SearchRequest{
		HallTicketNumber: strings.TrimSpace(c.Query("hallTicket")),
		ExamID:           strings.TrimSpace(c.Query("examId")),
	}
	start := time.Now()
	result, cacheHit, err := h.service.Resolve(c.Request.Context(), req)
	if err != nil {
		response.Error(c, err)
		return
	}
	middleware.SetCacheHit(c, cacheHit)
	meta := middleware.ExtractMeta(c)
	meta["processing_time_ms"] = time.Since(start).Milliseconds()
	response.JSON(c, http.StatusOK, dto.SearchResponse{SearchResult: *result, Details: service.DescribeSeat(result)}, nil, meta)
}

// SeatLandmarks godoc
// @Summary Landmarks near a seat
// @Tags Search
// @Produce json
// @Param id path string true "Seat ID"
// @Success 200 {object} response.Envelope
// @Failure 404 {object} response.Envelope
// @Router /seats/{id}/landmarks [get]
func (h *SearchHandler) SeatLandmarks(c *gin.Context) {
	if h.service == nil {
		response.Error(c, appErrors.ErrInternal)
		return
	}
	resp, err := h.service.LandmarksBySeat(c.Request.Context(), c.Param("id"))
	if err != nil {
		response.Error(c, err)
		return
	}
	response.JSON(c, http.StatusOK, resp, nil)
}
