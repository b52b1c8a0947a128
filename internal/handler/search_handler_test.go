package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-seat-finder/internal/dto"
	"github.com/noah-isme/exam-seat-finder/internal/middleware"
	"github.com/noah-isme/exam-seat-finder/internal/models"
	"github.com/noah-isme/exam-seat-finder/internal/service"
	appErrors "github.com/noah-isme/exam-seat-finder/pkg/errors"
)

type fakeSearchSrv struct {
	result    *models.SearchResult
	hit       bool
	err       error
	landmarks *dto.SeatLandmarksResponse
	lastReq   service.SearchRequest
	lastSeat  string
}

func (f *fakeSearchSrv) Resolve(_ context.Context, req service.SearchRequest) (*models.SearchResult, bool, error) {
	f.lastReq = req
	return f.result, f.hit, f.err
}

func (f *fakeSearchSrv) LandmarksBySeat(_ context.Context, seatID string) (*dto.SeatLandmarksResponse, error) {
	f.lastSeat = seatID
	if f.err != nil {
		return nil, f.err
	}
	return f.landmarks, nil
}

func sampleResult() *models.SearchResult {
	return &models.SearchResult{
		Student:   models.Student{ID: "student-1", Name: "Ana Lee", HallTicketNumber: "A10013"},
		Seat:      models.Seat{ID: "classroom-1-seat-3", Row: 1, Column: 3, IsOccupied: true},
		Classroom: models.Classroom{ID: "classroom-1", Name: "Lecture Hall A101"},
		NearbyLandmarks: []models.Landmark{
			{ID: "window", Type: models.LandmarkWindow, Description: "Window"},
		},
		Exam: &models.Exam{ID: "exam-1", Name: "Mathematics", Date: time.Date(2025, 3, 10, 9, 0, 0, 0, time.UTC), Duration: "3 hours"},
	}
}

func TestSearchHandlerSuccess(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeSearchSrv{result: sampleResult(), hit: true}
	handler := NewSearchHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/search?hallTicket=%20A10013%20&examId=exam-1", nil)

	handler.Search(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "A10013", srv.lastReq.HallTicketNumber)
	assert.Equal(t, "exam-1", srv.lastReq.ExamID)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, true, envelope.Meta["cache_hit"])
	assert.Contains(t, envelope.Meta, "processing_time_ms")

	seat := envelope.Data["seat"].(map[string]interface{})
	assert.Equal(t, "classroom-1-seat-3", seat["id"])
	details := envelope.Data["details"].(map[string]interface{})
	assert.Equal(t, "Row 1, Column 3", details["position"])
	assert.Equal(t, "Monday, 10 March 2025", details["examDate"])
}

func TestSearchHandlerErrors(t *testing.T) {
	gin.SetMode(gin.TestMode)

	cases := map[string]struct {
		err    error
		status int
		code   string
	}{
		"validation":    {appErrors.Clone(appErrors.ErrValidation, "hallTicketNumber is required"), http.StatusBadRequest, appErrors.ErrValidation.Code},
		"not found":     {appErrors.Clone(appErrors.ErrNotFound, "no seat"), http.StatusNotFound, appErrors.ErrNotFound.Code},
		"inconsistent":  {appErrors.Clone(appErrors.ErrDataInconsistent, "seat missing"), http.StatusNotFound, appErrors.ErrDataInconsistent.Code},
		"unknown error": {assert.AnError, http.StatusInternalServerError, appErrors.ErrInternal.Code},
	}
	for name, tc := range cases {
		t.Run(name, func(t *testing.T) {
			handler := NewSearchHandler(&fakeSearchSrv{err: tc.err})
			rec := httptest.NewRecorder()
			c, _ := gin.CreateTestContext(rec)
			c.Request = httptest.NewRequest(http.MethodGet, "/search?hallTicket=X&examId=exam-1", nil)

			handler.Search(c)

			assert.Equal(t, tc.status, rec.Code)
			var envelope errorEnvelope
			require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
			assert.Equal(t, tc.code, envelope.Error["code"])
		})
	}
}

func TestSearchHandlerNilService(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSearchHandler(nil)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/search", nil)

	handler.Search(c)

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestSearchHandlerKeepsRequestMeta(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewSearchHandler(&fakeSearchSrv{result: sampleResult()})

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/search?hallTicket=A10013&examId=exam-1", nil)
	middleware.SetCacheHit(c, true)
	middleware.ExtractMeta(c)["request_id"] = "req-1"

	handler.Search(c)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, false, envelope.Meta["cache_hit"])
	assert.Equal(t, "req-1", envelope.Meta["request_id"])
	details := envelope.Data["details"].(map[string]interface{})
	assert.Equal(t, []interface{}{"Window"}, details["nearbyLandmarks"])
}

func TestSeatLandmarksHandler(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeSearchSrv{landmarks: &dto.SeatLandmarksResponse{
		SeatID:      "classroom-1-seat-1",
		ClassroomID: "classroom-1",
		Landmarks:   []models.Landmark{{ID: "door"}},
	}}
	handler := NewSearchHandler(srv)

	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, "/seats/classroom-1-seat-1/landmarks", nil)
	c.Params = gin.Params{{Key: "id", Value: "classroom-1-seat-1"}}

	handler.SeatLandmarks(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "classroom-1-seat-1", srv.lastSeat)
	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, "classroom-1", envelope.Data["classroomId"])
}

type responseEnvelope struct {
	Data map[string]interface{} `json:"data"`
	Meta map[string]interface{} `json:"meta"`
}

type errorEnvelope struct {
	Error map[string]interface{} `json:"error"`
}
