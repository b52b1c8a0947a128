package service

import (
	"context"
	"fmt"
	"strconv"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seat-finder/internal/dto"
	"github.com/noah-isme/exam-seat-finder/internal/geometry"
	"github.com/noah-isme/exam-seat-finder/internal/models"
	"github.com/noah-isme/exam-seat-finder/internal/render"
	appErrors "github.com/noah-isme/exam-seat-finder/pkg/errors"
	"github.com/noah-isme/exam-seat-finder/pkg/logger"
)

type classroomDirectory interface {
	ListClassrooms() []models.Classroom
	Classroom(id string) (models.Classroom, bool)
	Exam(id string) (models.Exam, bool)
	ExamOccupancy(examID string) (map[string]string, bool)
}

// LayoutRequest selects a classroom chart. Without an exam, seats use the
// global occupancy flag; with one, only that exam's allocations count.
type LayoutRequest struct {
	ClassroomID    string   `validate:"required"`
	ExamID         string   `validate:"omitempty,max=64"`
	SelectedSeatID string   `validate:"omitempty,max=128"`
	CellSize       *float64 `validate:"omitempty,gte=20,lte=400"`
	Padding        *float64 `validate:"omitempty,gte=0,lte=400"`
}

// ClassroomServiceConfig carries the default projection and cache TTL.
type ClassroomServiceConfig struct {
	Layout   geometry.Config
	CacheTTL time.Duration
}

// ClassroomServiceParams groups constructor dependencies.
type ClassroomServiceParams struct {
	Directory classroomDirectory
	Validator *validator.Validate
	Cache     *CacheService
	Metrics   *MetricsService
	Logger    *zap.Logger
	Config    ClassroomServiceConfig
}

// ClassroomService serves classroom data and projected seating charts.
type ClassroomService struct {
	dir       classroomDirectory
	validator *validator.Validate
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       ClassroomServiceConfig
}

// NewClassroomService constructs a ClassroomService.
func NewClassroomService(params ClassroomServiceParams) *ClassroomService {
	cfg := params.Config
	if cfg.Layout.CellSize == 0 {
		cfg.Layout = geometry.DefaultConfig()
	}
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	log := params.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &ClassroomService{
		dir:       params.Directory,
		validator: validate,
		cache:     params.Cache,
		metrics:   params.Metrics,
		logger:    log,
		cfg:       cfg,
	}
}

// List summarises every classroom.
func (s *ClassroomService) List(ctx context.Context) []models.ClassroomSummary {
	rooms := s.dir.ListClassrooms()
	summaries := make([]models.ClassroomSummary, 0, len(rooms))
	for _, room := range rooms {
		summaries = append(summaries, room.Summary())
	}
	return summaries
}

// Get returns one classroom with its seats and landmarks.
func (s *ClassroomService) Get(ctx context.Context, id string) (*models.Classroom, error) {
	room, ok := s.dir.Classroom(id)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
	}
	return &room, nil
}

// Layout projects a classroom and marks every seat available, occupied or selected.
func (s *ClassroomService) Layout(ctx context.Context, req LayoutRequest) (*dto.LayoutResponse, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "invalid layout parameters")
	}
	cfg := s.layoutConfig(req)
	if err := cfg.Validate(); err != nil {
		return nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, err.Error())
	}

	key := Key("layout", req.ClassroomID, req.ExamID, req.SelectedSeatID,
		strconv.FormatFloat(cfg.CellSize, 'f', -1, 64), strconv.FormatFloat(cfg.Padding, 'f', -1, 64))
	var cached dto.LayoutResponse
	if s.cache.Get(ctx, key, &cached) {
		return &cached, true, nil
	}

	room, ok := s.dir.Classroom(req.ClassroomID)
	if !ok {
		return nil, false, appErrors.Clone(appErrors.ErrNotFound, "classroom not found")
	}

	var occupancy map[string]string
	if req.ExamID != "" {
		if _, ok := s.dir.Exam(req.ExamID); !ok {
			return nil, false, appErrors.Clone(appErrors.ErrNotFound, "exam not found")
		}
		occupancy, _ = s.dir.ExamOccupancy(req.ExamID)
	}

	if req.SelectedSeatID != "" && !hasSeat(room, req.SelectedSeatID) {
		return nil, false, appErrors.Clone(appErrors.ErrNotFound, "selected seat is not in this classroom")
	}

	start := time.Now()
	layout, err := geometry.Project(room, cfg)
	s.metrics.ObserveLayout(time.Since(start))
	if err != nil {
		logger.FromContext(ctx, s.logger).Error("project classroom", zap.String("classroom_id", room.ID), zap.Error(err))
		return nil, false, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to project classroom")
	}

	resp := &dto.LayoutResponse{
		ClassroomID:    room.ID,
		ClassroomName:  room.Name,
		ExamID:         req.ExamID,
		SelectedSeatID: req.SelectedSeatID,
		Width:          layout.Width,
		Height:         layout.Height,
		Config:         layout.Config,
		Seats:          make([]dto.LayoutSeat, 0, len(layout.Seats)),
		Landmarks:      layout.Landmarks,
		GridLines:      layout.GridLines,
		FrontLabel:     layout.FrontLabel,
	}
	for i, g := range layout.Seats {
		seat := room.Seats[i]
		studentID := seat.StudentID
		occupied := seat.IsOccupied
		if req.ExamID != "" {
			studentID = occupancy[seat.ID]
			occupied = studentID != ""
		}
		state := models.SeatAvailable
		switch {
		case seat.ID == req.SelectedSeatID:
			state = models.SeatSelected
		case occupied:
			state = models.SeatOccupied
		}
		resp.Seats = append(resp.Seats, dto.LayoutSeat{
			Geometry:    g,
			State:       state,
			StudentID:   studentID,
			Description: seat.LandmarkDescription,
		})
	}

	s.cache.Set(ctx, key, resp, s.cfg.CacheTTL)
	return resp, false, nil
}

// SVG renders the layout for req as an SVG document.
func (s *ClassroomService) SVG(ctx context.Context, req LayoutRequest) ([]byte, error) {
	layout, _, err := s.Layout(ctx, req)
	if err != nil {
		return nil, err
	}
	return render.RenderSVG(layout.Geometry(),
		render.WithSeatStates(layout.SeatStates()),
		render.WithTitle(chartTitle(layout)),
	), nil
}

func (s *ClassroomService) layoutConfig(req LayoutRequest) geometry.Config {
	cfg := s.cfg.Layout
	if req.CellSize != nil {
		cfg.CellSize = *req.CellSize
	}
	if req.Padding != nil {
		cfg.Padding = *req.Padding
	}
	return cfg
}

func hasSeat(room models.Classroom, seatID string) bool {
	for _, seat := range room.Seats {
		if seat.ID == seatID {
			return true
		}
	}
	return false
}

func chartTitle(layout *dto.LayoutResponse) string {
	if layout.ExamID == "" {
		return layout.ClassroomName
	}
	return fmt.Sprintf("%s - %s", layout.ClassroomName, layout.ExamID)
}
