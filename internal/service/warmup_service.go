package service

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-seat-finder/internal/dto"
	"github.com/noah-isme/exam-seat-finder/internal/models"
	"github.com/noah-isme/exam-seat-finder/pkg/jobs"
)

type warmupDirectory interface {
	ListClassrooms() []models.Classroom
	ListExams() []models.Exam
}

type layoutBuilder interface {
	Layout(ctx context.Context, req LayoutRequest) (*dto.LayoutResponse, bool, error)
}

// WarmupConfig sizes the cache warm-up pool.
type WarmupConfig struct {
	Workers int
	Timeout time.Duration
}

// WarmupReport summarises one warm-up run.
type WarmupReport struct {
	Jobs    int
	Warmed  int
	Failed  int
	Skipped bool
}

// WarmupService pre-computes classroom layouts into the cache so the first
// chart request for each room and exam is a hit.
type WarmupService struct {
	dir     warmupDirectory
	layouts layoutBuilder
	cache   *CacheService
	logger  *zap.Logger
	cfg     WarmupConfig
}

// NewWarmupService constructs a WarmupService.
func NewWarmupService(dir warmupDirectory, layouts layoutBuilder, cache *CacheService, logger *zap.Logger, cfg WarmupConfig) *WarmupService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 2
	}
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	return &WarmupService{dir: dir, layouts: layouts, cache: cache, logger: logger, cfg: cfg}
}

// Warm projects every classroom once without an exam and once per exam.
// It is a no-op when caching is disabled.
func (s *WarmupService) Warm(ctx context.Context) (WarmupReport, error) {
	if !s.cache.Enabled() {
		return WarmupReport{Skipped: true}, nil
	}

	queue := jobs.NewQueue("layout-warmup", func(ctx context.Context, job jobs.Job) error {
		req := job.Payload.(LayoutRequest)
		_, _, err := s.layouts.Layout(ctx, req)
		return err
	}, jobs.QueueConfig{Workers: s.cfg.Workers, MaxRetries: 1, Logger: s.logger})

	ctx, cancel := context.WithTimeout(ctx, s.cfg.Timeout)
	defer cancel()
	queue.Start(ctx)
	defer queue.Stop()

	exams := s.dir.ListExams()
	report := WarmupReport{}
	for _, room := range s.dir.ListClassrooms() {
		requests := make([]LayoutRequest, 0, len(exams)+1)
		requests = append(requests, LayoutRequest{ClassroomID: room.ID})
		for _, exam := range exams {
			requests = append(requests, LayoutRequest{ClassroomID: room.ID, ExamID: exam.ID})
		}
		for _, req := range requests {
			if err := queue.Enqueue(jobs.Job{ID: Key("layout", req.ClassroomID, req.ExamID), Kind: "layout", Payload: req}); err != nil {
				return report, err
			}
			report.Jobs++
		}
	}

	err := queue.Wait(ctx)
	stats := queue.Stats()
	report.Warmed, report.Failed = stats.Succeeded, stats.Failed
	s.logger.Info("layout cache warmed",
		zap.Int("jobs", report.Jobs),
		zap.Int("warmed", report.Warmed),
		zap.Int("failed", report.Failed))
	return report, err
}
