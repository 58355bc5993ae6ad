package service

import (
	"context"
	"fmt"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/zad-edu/masadr2040/internal/store"
	"github.com/zad-edu/masadr2040/pkg/export"
	appErrors "github.com/zad-edu/masadr2040/pkg/errors"
)

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset, title string) ([]byte, error)
}

// ExportFormat names a supported download format.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ExportArtifact is a rendered download, streamed straight to the client.
type ExportArtifact struct {
	Content     []byte
	Filename    string
	ContentType string
}

// ExportService renders the booking list and the statistics overview as
// CSV or PDF downloads.
type ExportService struct {
	bookings *store.BookingStore
	stats    *StatsService
	csv      csvRenderer
	pdf      pdfRenderer
	logger   *zap.Logger
	now      func() time.Time
}

// NewExportService constructs an ExportService.
func NewExportService(bookings *store.BookingStore, stats *StatsService, logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{
		bookings: bookings,
		stats:    stats,
		csv:      csv,
		pdf:      pdf,
		logger:   logger,
		now:      time.Now,
	}
}

// Bookings renders the full booking list, sorted by day then period.
func (s *ExportService) Bookings(ctx context.Context, format ExportFormat) (*ExportArtifact, error) {
	bookings := s.bookings.List()
	sort.SliceStable(bookings, func(i, j int) bool {
		if bookings[i].Day == bookings[j].Day {
			return bookings[i].Period < bookings[j].Period
		}
		return bookings[i].Day < bookings[j].Day
	})

	rows := make([]map[string]string, 0, len(bookings))
	for _, b := range bookings {
		rows = append(rows, map[string]string{
			"Day":     b.Day,
			"Period":  fmt.Sprintf("%d", b.Period),
			"Teacher": b.Teacher,
			"Subject": b.Subject,
			"Lesson":  b.Lesson,
			"Grade":   b.Grade,
			"Class":   b.Class,
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Day", "Period", "Teacher", "Subject", "Lesson", "Grade", "Class"},
		Rows:    rows,
	}

	return s.render(dataset, "Resource Center Bookings", "bookings", format)
}

// Stats renders the aggregated statistics overview.
func (s *ExportService) Stats(ctx context.Context, format ExportFormat) (*ExportArtifact, error) {
	stats, _, err := s.stats.Overview(ctx)
	if err != nil {
		return nil, err
	}

	rows := make([]map[string]string, 0, len(stats.BySubject)+len(stats.ByTeacher)+1)
	rows = append(rows, map[string]string{
		"Section": "Total", "Label": "All bookings", "Count": fmt.Sprintf("%d", stats.TotalBookings),
	})
	for _, entry := range stats.BySubject {
		rows = append(rows, map[string]string{
			"Section": "By subject", "Label": entry.Label, "Count": fmt.Sprintf("%d", entry.Count),
		})
	}
	for _, entry := range stats.ByTeacher {
		rows = append(rows, map[string]string{
			"Section": "By teacher", "Label": entry.Label, "Count": fmt.Sprintf("%d", entry.Count),
		})
	}
	dataset := export.Dataset{
		Headers: []string{"Section", "Label", "Count"},
		Rows:    rows,
	}

	return s.render(dataset, "Booking Statistics", "booking_stats", format)
}

func (s *ExportService) render(dataset export.Dataset, title, stem string, format ExportFormat) (*ExportArtifact, error) {
	timestamp := s.now().UTC().Format("20060102_150405")
	filename := fmt.Sprintf("%s_%s.%s", stem, timestamp, format)

	switch format {
	case ExportCSV:
		content, err := s.csv.Render(dataset)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "csv render failed")
		}
		return &ExportArtifact{Content: content, Filename: filename, ContentType: "text/csv"}, nil
	case ExportPDF:
		content, err := s.pdf.Render(dataset, title)
		if err != nil {
			return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "pdf render failed")
		}
		return &ExportArtifact{Content: content, Filename: filename, ContentType: "application/pdf"}, nil
	default:
		return nil, appErrors.Clone(appErrors.ErrValidation, fmt.Sprintf("unsupported format %q", format))
	}
}
