package service

import (
	"context"
	"fmt"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/campusplan/planner-api/internal/planner"
	"github.com/campusplan/planner-api/pkg/export"
	appErrors "github.com/campusplan/planner-api/pkg/errors"
)

// Export formats accepted by the plan export endpoint.
const (
	ExportFormatCSV = "csv"
	ExportFormatPDF = "pdf"
)

var exportDayNames = [7]string{
	"Sunday", "Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday",
}

type planProvider interface {
	Generate(ctx context.Context, userID string, force bool) (*planner.Result, bool, error)
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string, notes []string) ([]byte, error)
}

// ExportFile is a rendered plan ready to stream to the client.
type ExportFile struct {
	Filename    string
	ContentType string
	Payload     []byte
}

// ExportService renders the generated weekly plan as CSV or PDF.
type ExportService struct {
	plans   planProvider
	courses plannerCourseRepository
	csv     csvRenderer
	pdf     pdfRenderer
	logger  *zap.Logger
}

// NewExportService constructs an ExportService.
func NewExportService(plans planProvider, courses plannerCourseRepository, csv csvRenderer, pdf pdfRenderer, logger *zap.Logger) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter("")
	}
	return &ExportService{plans: plans, courses: courses, csv: csv, pdf: pdf, logger: logger}
}

// Export generates (or fetches) the user's plan and renders it in the
// requested format.
func (s *ExportService) Export(ctx context.Context, userID, format string) (*ExportFile, error) {
	format = strings.ToLower(strings.TrimSpace(format))
	if format != ExportFormatCSV && format != ExportFormatPDF {
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported export format %q", format))
	}

	result, _, err := s.plans.Generate(ctx, userID, false)
	if err != nil {
		return nil, err
	}

	courseNames, err := s.courseNames(ctx, userID)
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to load courses for export")
	}

	dataset := buildPlanDataset(result, courseNames)
	stamp := time.Now().UTC().Format("2006-01-02")

	switch format {
	case ExportFormatCSV:
		payload, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render csv")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("weekly-plan-%s.csv", stamp),
			ContentType: "text/csv",
			Payload:     payload,
		}, nil
	default:
		title := fmt.Sprintf("Weekly Plan (score %.1f)", result.Score)
		payload, err := s.pdf.Render(dataset, title, result.Suggestions)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render pdf")
		}
		return &ExportFile{
			Filename:    fmt.Sprintf("weekly-plan-%s.pdf", stamp),
			ContentType: "application/pdf",
			Payload:     payload,
		}, nil
	}
}

func (s *ExportService) courseNames(ctx context.Context, userID string) (map[string]string, error) {
	courses, err := s.courses.ListAll(ctx, userID)
	if err != nil {
		return nil, err
	}
	names := make(map[string]string, len(courses))
	for _, course := range courses {
		names[course.ID] = course.Name
	}
	return names, nil
}

func buildPlanDataset(result *planner.Result, courseNames map[string]string) export.Dataset {
	headers := []string{"Day", "Start", "End", "Course", "Type", "Location", "Moved"}
	rows := make([]map[string]string, 0, result.Stats.TotalSessions)

	for day, bucket := range result.Week {
		for _, pl := range bucket.Placements {
			moved := ""
			if pl.IsDifferentDay {
				moved = "different day"
			} else if pl.IsAlternative {
				moved = "alternative slot"
			}
			name := courseNames[pl.Session.CourseID]
			if name == "" {
				name = pl.Session.CourseID
			}
			rows = append(rows, map[string]string{
				"Day":      exportDayNames[day],
				"Start":    pl.StartTime,
				"End":      pl.EndTime,
				"Course":   name,
				"Type":     pl.Session.Type,
				"Location": pl.Session.Location,
				"Moved":    moved,
			})
		}
	}
	return export.Dataset{Headers: headers, Rows: rows}
}
