package service

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"github.com/octa-services/plant-tracker/internal/dto"
	"github.com/octa-services/plant-tracker/internal/models"
	appErrors "github.com/octa-services/plant-tracker/pkg/errors"
	"github.com/octa-services/plant-tracker/pkg/export"
)

// ExportFormat selects the rendered document type.
type ExportFormat string

const (
	ExportCSV ExportFormat = "csv"
	ExportPDF ExportFormat = "pdf"
)

// ExportResult is a rendered document ready to be sent as an attachment.
type ExportResult struct {
	Filename    string
	ContentType string
	Body        []byte
}

type csvRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

type pdfRenderer interface {
	Render(data export.Dataset) ([]byte, error)
}

// historyColumns are the columns written to history exports.
var historyColumns = []models.Field{
	models.FieldSubmissionID,
	models.FieldLineNumber,
	models.FieldDateSubmitted,
	models.FieldTask,
	models.FieldPriority,
	models.FieldAssignedEngineer,
	models.FieldDateResolved,
	models.FieldResolutionNotes,
	models.FieldDaysToResolve,
	models.FieldSpareParts,
}

// ExportService renders history views as CSV or PDF documents.
type ExportService struct {
	csv    csvRenderer
	pdf    pdfRenderer
	logger *zap.Logger
	now    func() time.Time
}

// NewExportService constructs an ExportService. Nil renderers fall back to the
// default exporters.
func NewExportService(logger *zap.Logger, csv csvRenderer, pdf pdfRenderer) *ExportService {
	if logger == nil {
		logger = zap.NewNop()
	}
	if csv == nil {
		csv = export.NewCSVExporter()
	}
	if pdf == nil {
		pdf = export.NewPDFExporter()
	}
	return &ExportService{csv: csv, pdf: pdf, logger: logger, now: time.Now}
}

// ParseExportFormat validates a requested format. Blank means CSV.
func ParseExportFormat(raw string) (ExportFormat, error) {
	switch ExportFormat(strings.ToLower(strings.TrimSpace(raw))) {
	case "", ExportCSV:
		return ExportCSV, nil
	case ExportPDF:
		return ExportPDF, nil
	}
	return "", appErrors.Validation("format must be csv or pdf", "format")
}

// History renders the records of a history view.
func (s *ExportService) History(history *dto.HistoryResponse, format ExportFormat) (*ExportResult, error) {
	if history == nil {
		return nil, appErrors.Clone(appErrors.ErrInternal, "history is required")
	}
	data := historyDataset(history)
	stamp := s.now().UTC().Format("20060102")
	base := fmt.Sprintf("%s-resolved-%s", history.Site, stamp)

	var (
		body        []byte
		err         error
		contentType string
	)
	switch format {
	case ExportPDF:
		body, err = s.pdf.Render(data)
		contentType = "application/pdf"
	case ExportCSV:
		body, err = s.csv.Render(data)
		contentType = "text/csv"
	default:
		return nil, appErrors.Validation("format must be csv or pdf", "format")
	}
	if err != nil {
		return nil, appErrors.Wrap(err, appErrors.ErrInternal.Code, appErrors.ErrInternal.Status, "failed to render history export")
	}
	s.logger.Info("history exported",
		zap.String("site", history.Site),
		zap.String("format", string(format)),
		zap.Int("rows", len(data.Rows)),
	)
	return &ExportResult{Filename: base + "." + string(format), ContentType: contentType, Body: body}, nil
}

func historyDataset(history *dto.HistoryResponse) export.Dataset {
	headers := make([]string, len(historyColumns))
	for i, f := range historyColumns {
		headers[i] = string(f)
	}
	rows := make([][]string, len(history.Problems))
	for i, record := range history.Problems {
		row := make([]string, len(historyColumns))
		for j, f := range historyColumns {
			row[j] = record.Value(f)
		}
		rows[i] = row
	}
	return export.Dataset{
		Title: fmt.Sprintf("%s resolved problems (%s, avg %s days)",
			history.Site, strconv.Itoa(history.Matching), strconv.FormatFloat(history.AverageDaysToResolve, 'f', 1, 64)),
		Headers: headers,
		Rows:    rows,
	}
}
