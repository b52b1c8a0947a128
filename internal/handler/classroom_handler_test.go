package handler

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/noah-isme/exam-seat-finder/internal/dto"
	"github.com/noah-isme/exam-seat-finder/internal/models"
	"github.com/noah-isme/exam-seat-finder/internal/service"
	appErrors "github.com/noah-isme/exam-seat-finder/pkg/errors"
)

type fakeClassroomSrv struct {
	layout  *dto.LayoutResponse
	hit     bool
	err     error
	lastReq service.LayoutRequest
}

func (f *fakeClassroomSrv) List(context.Context) []models.ClassroomSummary {
	return []models.ClassroomSummary{{ID: "classroom-1", Capacity: 6}}
}

func (f *fakeClassroomSrv) Get(_ context.Context, id string) (*models.Classroom, error) {
	if id != "classroom-1" {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
	}
	return &models.Classroom{ID: id, Rows: 2, Columns: 3}, nil
}

func (f *fakeClassroomSrv) Layout(_ context.Context, req service.LayoutRequest) (*dto.LayoutResponse, bool, error) {
	f.lastReq = req
	return f.layout, f.hit, f.err
}

func (f *fakeClassroomSrv) SVG(_ context.Context, req service.LayoutRequest) ([]byte, error) {
	f.lastReq = req
	if f.err != nil {
		return nil, f.err
	}
	return []byte("<svg></svg>"), nil
}

type fakeChartExporter struct {
	lastReq service.LayoutRequest
}

func (f *fakeChartExporter) ChartPDF(_ context.Context, req service.LayoutRequest) (*service.ExportFile, error) {
	f.lastReq = req
	return &service.ExportFile{Filename: "chart_classroom-1.pdf", ContentType: "application/pdf", Payload: []byte("%PDF-1.3")}, nil
}

func newLayoutContext(target string) (*gin.Context, *httptest.ResponseRecorder) {
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = httptest.NewRequest(http.MethodGet, target, nil)
	c.Params = gin.Params{{Key: "id", Value: "classroom-1"}}
	return c, rec
}

func TestClassroomHandlerLayoutParsesQuery(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeClassroomSrv{layout: &dto.LayoutResponse{ClassroomID: "classroom-1", Width: 300}}
	handler := NewClassroomHandler(srv, nil)

	c, rec := newLayoutContext("/classrooms/classroom-1/layout?examId=exam-1&selectedSeatId=classroom-1-seat-3&cellSize=80&padding=0")
	handler.Layout(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "classroom-1", srv.lastReq.ClassroomID)
	assert.Equal(t, "exam-1", srv.lastReq.ExamID)
	assert.Equal(t, "classroom-1-seat-3", srv.lastReq.SelectedSeatID)
	require.NotNil(t, srv.lastReq.CellSize)
	assert.Equal(t, 80.0, *srv.lastReq.CellSize)
	require.NotNil(t, srv.lastReq.Padding)
	assert.Equal(t, 0.0, *srv.lastReq.Padding)

	var envelope responseEnvelope
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &envelope))
	assert.Equal(t, 300.0, envelope.Data["width"])
	assert.Equal(t, false, envelope.Meta["cache_hit"])
}

func TestClassroomHandlerLayoutDefaultsLeaveProjectionUnset(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeClassroomSrv{layout: &dto.LayoutResponse{}}
	handler := NewClassroomHandler(srv, nil)

	c, rec := newLayoutContext("/classrooms/classroom-1/layout")
	handler.Layout(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Nil(t, srv.lastReq.CellSize)
	assert.Nil(t, srv.lastReq.Padding)
}

func TestClassroomHandlerLayoutRejectsBadNumbers(t *testing.T) {
	gin.SetMode(gin.TestMode)
	srv := &fakeClassroomSrv{}
	handler := NewClassroomHandler(srv, nil)

	c, rec := newLayoutContext("/classrooms/classroom-1/layout?cellSize=big")
	handler.Layout(c)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Empty(t, srv.lastReq.ClassroomID)
}

func TestClassroomHandlerGet(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewClassroomHandler(&fakeClassroomSrv{}, nil)

	c, rec := newLayoutContext("/classrooms/classroom-1")
	handler.Get(c)
	assert.Equal(t, http.StatusOK, rec.Code)

	c, rec = newLayoutContext("/classrooms/classroom-9")
	c.Params = gin.Params{{Key: "id", Value: "classroom-9"}}
	handler.Get(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestClassroomHandlerChartSVG(t *testing.T) {
	gin.SetMode(gin.TestMode)
	handler := NewClassroomHandler(&fakeClassroomSrv{}, nil)

	c, rec := newLayoutContext("/classrooms/classroom-1/chart.svg")
	handler.ChartSVG(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "image/svg+xml", rec.Header().Get("Content-Type"))
	assert.Equal(t, "<svg></svg>", rec.Body.String())
}

func TestClassroomHandlerChartPDF(t *testing.T) {
	gin.SetMode(gin.TestMode)
	exporter := &fakeChartExporter{}
	handler := NewClassroomHandler(&fakeClassroomSrv{}, exporter)

	c, rec := newLayoutContext("/classrooms/classroom-1/chart.pdf?examId=exam-1")
	handler.ChartPDF(c)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "exam-1", exporter.lastReq.ExamID)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "chart_classroom-1.pdf")

	disabled := NewClassroomHandler(&fakeClassroomSrv{}, nil)
	c, rec = newLayoutContext("/classrooms/classroom-1/chart.pdf")
	disabled.ChartPDF(c)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}
