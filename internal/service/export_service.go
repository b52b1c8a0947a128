package service

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/noah-isme/exam-seat-finder/internal/dto"
	"github.com/noah-isme/exam-seat-finder/internal/geometry"
	"github.com/noah-isme/exam-seat-finder/internal/models"
	appErrors "github.com/noah-isme/exam-seat-finder/pkg/errors"
	"github.com/noah-isme/exam-seat-finder/pkg/export"
)

type rosterProvider interface {
	Roster(ctx context.Context, examID string) (*dto.RosterResponse, error)
}

type layoutProvider interface {
	Layout(ctx context.Context, req LayoutRequest) (*dto.LayoutResponse, bool, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
	RenderSeatingChart(chart export.Chart) ([]byte, error)
}

// ExportFile is a rendered download.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders rosters and seating charts as downloadable files.
type ExportService struct {
	rosters rosterProvider
	layouts layoutProvider
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
}

var rosterHeaders = []string{"Hall Ticket", "Name", "Section", "Classroom", "Row", "Column", "Seat ID"}

// NewExportService constructs an ExportService; nil renderers use the package defaults.
func NewExportService(rosters rosterProvider, layouts layoutProvider, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{rosters: rosters, layouts: layouts, csv: csv, pdf: pdf, logger: logger}
}

// RosterCSV renders the exam roster as CSV.
func (s *ExportService) RosterCSV(ctx context.Context, examID string) (*ExportFile, error) {
	roster, err := s.rosters.Roster(ctx, examID)
	if err != nil {
		return nil, err
	}
	payload, err := s.csv.Render(rosterDataset(roster))
	if err != nil {
		return nil, s.renderFailed("csv", err)
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("roster_%s.csv", sanitizeFilename(roster.Exam.ID)),
		ContentType: "text/csv",
		Payload:     payload,
	}, nil
}

// RosterPDF renders the exam roster as a PDF table.
func (s *ExportService) RosterPDF(ctx context.Context, examID string) (*ExportFile, error) {
	roster, err := s.rosters.Roster(ctx, examID)
	if err != nil {
		return nil, err
	}
	title := fmt.Sprintf("%s seating roster (%s)", roster.Exam.Name, roster.Exam.Date.Format("2006-01-02"))
	payload, err := s.pdf.Render(rosterDataset(roster), title)
	if err != nil {
		return nil, s.renderFailed("pdf", err)
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("roster_%s.pdf", sanitizeFilename(roster.Exam.ID)),
		ContentType: "application/pdf",
		Payload:     payload,
	}, nil
}

// ChartPDF renders a classroom seating chart as PDF.
func (s *ExportService) ChartPDF(ctx context.Context, req LayoutRequest) (*ExportFile, error) {
	layout, _, err := s.layouts.Layout(ctx, req)
	if err != nil {
		return nil, err
	}
	payload, err := s.pdf.RenderSeatingChart(chartFromLayout(layout))
	if err != nil {
		return nil, s.renderFailed("chart", err)
	}
	name := layout.ClassroomID
	if layout.ExamID != "" {
		name += "_" + layout.ExamID
	}
	return &ExportFile{
		Filename:    fmt.Sprintf("chart_%s.pdf", sanitizeFilename(name)),
		ContentType: "application/pdf",
		Payload:     payload,
	}, nil
}

func (s *ExportService) renderFailed(kind string, err error) error {
	s.logger.Error("export render failed", zap.String("kind", kind), zap.Error(err))
	return appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render export")
}

func rosterDataset(roster *dto.RosterResponse) export.Dataset {
	rows := make([]map[string]string, 0, len(roster.Entries))
	for _, entry := range roster.Entries {
		row := map[string]string{
			"Hall Ticket": entry.HallTicketNumber,
			"Name":        entry.Name,
			"Section":     entry.Section,
			"Classroom":   entry.ClassroomName,
			"Seat ID":     entry.SeatID,
		}
		if entry.ClassroomID != "" {
			row["Row"] = strconv.Itoa(entry.Row)
			row["Column"] = strconv.Itoa(entry.Column)
		}
		rows = append(rows, row)
	}
	return export.Dataset{Headers: rosterHeaders, Rows: rows}
}

func chartFromLayout(layout *dto.LayoutResponse) export.Chart {
	chart := export.Chart{
		Title:      layout.ClassroomName,
		Width:      layout.Width,
		Height:     layout.Height,
		Lines:      make([]export.ChartLine, 0, len(layout.GridLines)),
		Landmarks:  make([]export.ChartShape, 0, len(layout.Landmarks)),
		Seats:      make([]export.ChartShape, 0, len(layout.Seats)),
		FrontLabel: "FRONT (BOARD)",
		FrontX:     layout.FrontLabel.X,
		FrontY:     layout.FrontLabel.Y,
	}
	if layout.ExamID != "" {
		chart.Subtitle = "Exam " + layout.ExamID
	}
	for _, line := range layout.GridLines {
		chart.Lines = append(chart.Lines, export.ChartLine{X1: line.X1, Y1: line.Y1, X2: line.X2, Y2: line.Y2})
	}
	for _, g := range layout.Landmarks {
		chart.Landmarks = append(chart.Landmarks, shapeOf(g, export.StyleLandmark))
	}
	for _, seat := range layout.Seats {
		chart.Seats = append(chart.Seats, shapeOf(seat.Geometry, seatStyle(seat.State)))
	}
	return chart
}

func shapeOf(g geometry.Geometry, style export.ShapeStyle) export.ChartShape {
	shape := export.ChartShape{
		X:      g.X,
		Y:      g.Y,
		Width:  g.Width,
		Height: g.Height,
		Label:  g.Label,
		Style:  style,
	}
	if g.Shape == geometry.ShapeCircle {
		shape.Circle = true
		shape.Radius = g.Radius
	}
	return shape
}

func seatStyle(state models.SeatState) export.ShapeStyle {
	switch state {
	case models.SeatSelected:
		return export.StyleSelected
	case models.SeatOccupied:
		return export.StyleOccupied
	default:
		return export.StyleAvailable
	}
}

func sanitizeFilename(raw string) string {
	if raw == "" {
		return "na"
	}
	replacer := strings.NewReplacer(" ", "_", "/", "-", "\\", "-", ":", "-", "..", ".", "\"", "")
	result := replacer.Replace(raw)
	if len(result) > 100 {
		return result[:100]
	}
	return result
}
