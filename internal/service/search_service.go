package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"go.uber.org/zap"

	"github.com/noah-isme/exam-seat-finder/internal/dto"
	"github.com/noah-isme/exam-seat-finder/internal/geometry"
	"github.com/noah-isme/exam-seat-finder/internal/models"
	appErrors "github.com/noah-isme/exam-seat-finder/pkg/errors"
	"github.com/noah-isme/exam-seat-finder/pkg/logger"
)

type seatDirectory interface {
	StudentByHallTicket(ticket string) (models.Student, bool)
	LocateSeat(seatID string) (models.Classroom, models.Seat, bool)
	Exam(id string) (models.Exam, bool)
}

// SearchRequest is a hall ticket lookup. Matching is exact and case-sensitive.
type SearchRequest struct {
	HallTicketNumber string `json:"hallTicket" validate:"required,max=32,alphanum"`
	ExamID           string `json:"examId" validate:"required,max=64"`
}

// SearchServiceConfig tunes search behaviour.
type SearchServiceConfig struct {
	CacheTTL time.Duration
}

// SearchServiceParams groups constructor dependencies.
type SearchServiceParams struct {
	Directory seatDirectory
	Validator *validator.Validate
	Cache     *CacheService
	Metrics   *MetricsService
	Logger    *zap.Logger
	Config    SearchServiceConfig
}

// SearchService resolves hall tickets to seats and nearby landmarks.
type SearchService struct {
	dir       seatDirectory
	validator *validator.Validate
	cache     *CacheService
	metrics   *MetricsService
	logger    *zap.Logger
	cfg       SearchServiceConfig
}

// NewSearchService constructs a SearchService.
func NewSearchService(params SearchServiceParams) *SearchService {
	validate := params.Validator
	if validate == nil {
		validate = validator.New()
	}
	log := params.Logger
	if log == nil {
		log = zap.NewNop()
	}
	return &SearchService{
		dir:       params.Directory,
		validator: validate,
		cache:     params.Cache,
		metrics:   params.Metrics,
		logger:    log,
		cfg:       params.Config,
	}
}

// Resolve finds the seat allocated to a hall ticket for an exam. The boolean
// reports whether the result came from cache.
func (s *SearchService) Resolve(ctx context.Context, req SearchRequest) (*models.SearchResult, bool, error) {
	if err := s.validator.Struct(req); err != nil {
		s.metrics.RecordSearch(SearchInvalid)
		return nil, false, appErrors.Wrap(err, appErrors.ErrValidation.Code, appErrors.ErrValidation.Status, "hallTicket must be 1-32 letters or digits and examId is required")
	}

	key := Key("search", req.ExamID, req.HallTicketNumber)
	var cached models.SearchResult
	if s.cache.Get(ctx, key, &cached) {
		s.metrics.RecordSearch(SearchFound)
		return &cached, true, nil
	}

	result, err := s.resolve(ctx, req)
	if err != nil {
		s.metrics.RecordSearch(outcomeOf(err))
		return nil, false, err
	}
	s.metrics.RecordSearch(SearchFound)
	s.cache.Set(ctx, key, result, s.cfg.CacheTTL)
	return result, false, nil
}

func (s *SearchService) resolve(ctx context.Context, req SearchRequest) (*models.SearchResult, error) {
	student, ok := s.dir.StudentByHallTicket(req.HallTicketNumber)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "no student holds this hall ticket")
	}

	alloc, ok := student.AllocationFor(req.ExamID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "student has no seat for this exam")
	}

	classroom, seat, ok := s.dir.LocateSeat(alloc.SeatID)
	if !ok {
		logger.FromContext(ctx, s.logger).Error("allocation references unknown seat",
			zap.String("student_id", student.ID),
			zap.String("exam_id", alloc.ExamID),
			zap.String("seat_id", alloc.SeatID))
		return nil, appErrors.Clone(appErrors.ErrDataInconsistent, "allocated seat does not exist")
	}

	nearby := geometry.NearbyLandmarks(seat, classroom.Landmarks)

	exam, ok := s.dir.Exam(alloc.ExamID)
	if !ok {
		logger.FromContext(ctx, s.logger).Error("allocation references unknown exam",
			zap.String("student_id", student.ID),
			zap.String("exam_id", alloc.ExamID))
		return nil, appErrors.Clone(appErrors.ErrDataInconsistent, "allocated exam does not exist")
	}

	return &models.SearchResult{
		Student:         student,
		Seat:            seat,
		Classroom:       classroom,
		NearbyLandmarks: nearby,
		Exam:            &exam,
	}, nil
}

// LandmarksBySeat lists the landmarks near any seat.
func (s *SearchService) LandmarksBySeat(ctx context.Context, seatID string) (*dto.SeatLandmarksResponse, error) {
	if strings.TrimSpace(seatID) == "" {
		return nil, appErrors.Clone(appErrors.ErrValidation, "seat id is required")
	}
	classroom, seat, ok := s.dir.LocateSeat(seatID)
	if !ok {
		return nil, appErrors.Clone(appErrors.ErrNotFound, "seat not found")
	}
	return &dto.SeatLandmarksResponse{
		SeatID:      seat.ID,
		ClassroomID: classroom.ID,
		Landmarks:   geometry.NearbyLandmarks(seat, classroom.Landmarks),
	}, nil
}

func outcomeOf(err error) string {
	switch {
	case appErrors.HasCode(err, appErrors.ErrDataInconsistent.Code):
		return SearchInconsistent
	case appErrors.HasCode(err, appErrors.ErrValidation.Code):
		return SearchInvalid
	default:
		return SearchNotFound
	}
}

// DescribeSeat turns a search result into the text of a seat card.
func DescribeSeat(result *models.SearchResult) dto.SeatDetails {
	details := dto.SeatDetails{
		Student:         result.Student.Name,
		HallTicket:      result.Student.HallTicketNumber,
		Classroom:       result.Classroom.Name,
		Position:        fmt.Sprintf("Row %d, Column %d", result.Seat.Row, result.Seat.Column),
		Hint:            result.Seat.LandmarkDescription,
		NearbyLandmarks: make([]string, 0, len(result.NearbyLandmarks)),
	}
	if result.Exam != nil {
		details.Exam = result.Exam.Name
		details.ExamDate = result.Exam.Date.Format("Monday, 2 January 2006")
		details.Duration = result.Exam.Duration
	}
	for _, landmark := range result.NearbyLandmarks {
		text := landmark.Description
		if text == "" {
			text = string(landmark.Type)
		}
		details.NearbyLandmarks = append(details.NearbyLandmarks, text)
	}
	return details
}
