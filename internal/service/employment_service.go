package service

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"time"

	"github.com/locvowork/employment_history/internal/domain"
	"github.com/locvowork/employment_history/internal/logger"
	"github.com/locvowork/employment_history/pkg/simpleexcel"
)

// EmploymentsSectionID is the template section the stored employments are
// bound to.
const EmploymentsSectionID = "employments"

// Record errors are not part of the template. They are added below the
// employments on ReportSheetName, or on their own sheet when the template has
// no such sheet.
const (
	ReportSheetName       = "Employments"
	RecordErrorsSheetName = "Record Errors"
	RecordErrorsSectionID = "record_errors"
)

const defaultReportTemplate = `
sheets:
  - name: "Employments"
    sections:
      - id: "employments"
        title: "Employment Report"
        show_header: true
        title_style:
          font: { bold: true }
        header_style:
          font: { bold: true, color: "#FFFFFF" }
          fill: { color: "#4F81BD" }
        columns:
          - { field_name: "Title", header: "Title", width: 30 }
          - { field_name: "Level", header: "Level", width: 18 }
          - { field_name: "StartDate", header: "Start Date", width: 14 }
          - { field_name: "Years", header: "Years", width: 10 }
          - { field_name: "YearsToDate", header: "Years To Date", width: 14 }
`

// EmploymentInput is already primitive-validated data for one position. A nil
// Years asks for the tenure to be derived from the start date.
type EmploymentInput struct {
	Title     string
	Level     domain.SupervisoryLevel
	StartDate time.Time
	Years     *float64
}

type AddressInput struct {
	Number     int
	Street     string
	City       string
	Region     string
	PostalCode string
}

type PersonInput struct {
	FirstName string
	LastName  string
	Address   *AddressInput
	Positions []EmploymentInput
}

// EmploymentRow is the display form of one Employment.
type EmploymentRow struct {
	Title       string  `json:"title"`
	Level       string  `json:"level"`
	StartDate   string  `json:"start_date"`
	Years       float64 `json:"years"`
	YearsToDate float64 `json:"years_to_date"`
	Record      string  `json:"record"`
}

type RecordErrorRow struct {
	Line    int    `json:"line"`
	Raw     string `json:"raw"`
	Message string `json:"message"`
}

type EmploymentReport struct {
	Employments  []EmploymentRow  `json:"employments"`
	RecordErrors []RecordErrorRow `json:"record_errors"`
}

type PersonPreview struct {
	FullName      string          `json:"full_name"`
	Record        string          `json:"record"`
	PositionCount int             `json:"position_count"`
	Positions     []EmploymentRow `json:"positions"`
}

// EmploymentService handles business logic for employment records
type EmploymentService struct {
	repo             domain.EmploymentRepository
	clock            domain.Clock
	reportConfigPath string
}

// NewEmploymentService creates a new EmploymentService instance. An empty
// reportConfigPath, or one that does not exist, uses the built-in layout.
func NewEmploymentService(repo domain.EmploymentRepository, clock domain.Clock, reportConfigPath string) *EmploymentService {
	if clock == nil {
		clock = domain.SystemClock{}
	}
	return &EmploymentService{
		repo:             repo,
		clock:            clock,
		reportConfigPath: reportConfigPath,
	}
}

// Today returns the service's current calendar date.
func (s *EmploymentService) Today() time.Time {
	return domain.DateOf(s.clock.Now())
}

// Record builds an Employment from in and appends it to the store.
func (s *EmploymentService) Record(ctx context.Context, in EmploymentInput) (*domain.Employment, error) {
	e, err := s.newEmployment(in)
	if err != nil {
		return nil, err
	}
	if err := s.repo.Append(ctx, e); err != nil {
		logger.ErrorLog(ctx, "failed to save employment record", err)
		return nil, err
	}
	logger.InfoLog(ctx, "employment record saved: %s", e.String())
	return e, nil
}

// Report loads every stored record. Lines that fail to parse are listed as
// record errors rather than failing the whole report.
func (s *EmploymentService) Report(ctx context.Context) (*EmploymentReport, error) {
	employments, recordErrs, err := s.repo.LoadAll(ctx)
	if err != nil {
		logger.ErrorLog(ctx, "failed to load employment records", err)
		return nil, err
	}

	report := &EmploymentReport{
		Employments:  make([]EmploymentRow, 0, len(employments)),
		RecordErrors: make([]RecordErrorRow, 0, len(recordErrs)),
	}
	for _, e := range employments {
		report.Employments = append(report.Employments, ToEmploymentRow(e))
	}
	for _, re := range recordErrs {
		report.RecordErrors = append(report.RecordErrors, RecordErrorRow{
			Line:    re.Line,
			Raw:     re.Raw,
			Message: re.Error(),
		})
	}
	if len(recordErrs) > 0 {
		logger.WarnLog(ctx, "%d of %d employment records could not be read", len(recordErrs), len(employments)+len(recordErrs))
	}
	return report, nil
}

// ExportReport renders the report as an xlsx workbook.
func (s *EmploymentService) ExportReport(ctx context.Context) ([]byte, error) {
	report, err := s.Report(ctx)
	if err != nil {
		return nil, err
	}

	exporter, err := s.reportExporter(ctx)
	if err != nil {
		return nil, err
	}
	exporter.BindSectionData(EmploymentsSectionID, report.Employments)
	if len(report.RecordErrors) > 0 {
		sheet := exporter.GetSheet(ReportSheetName)
		if sheet == nil {
			sheet = exporter.AddSheet(RecordErrorsSheetName)
		}
		sheet.AddSection(recordErrorsSection(report.RecordErrors))
	}

	data, err := exporter.ToBytes()
	if err != nil {
		return nil, fmt.Errorf("export employment report: %w", err)
	}
	return data, nil
}

// PreviewPerson builds a Person from in without storing anything and returns
// its derived values.
func (s *EmploymentService) PreviewPerson(ctx context.Context, in PersonInput) (*PersonPreview, error) {
	var address *domain.ResidentAddress
	if in.Address != nil {
		a := domain.NewResidentAddress(in.Address.Number, in.Address.Street, in.Address.City, in.Address.Region, in.Address.PostalCode)
		address = &a
	}

	p, err := domain.NewPerson(in.FirstName, in.LastName, nil, address)
	if err != nil {
		return nil, err
	}
	for _, pos := range in.Positions {
		e, err := s.newEmployment(pos)
		if err != nil {
			return nil, err
		}
		if err := p.AddEmployment(e); err != nil {
			return nil, err
		}
	}

	preview := &PersonPreview{
		FullName:      p.FullName(),
		Record:        p.String(),
		PositionCount: p.PositionCount(),
		Positions:     []EmploymentRow{},
	}
	for _, e := range p.Positions() {
		preview.Positions = append(preview.Positions, ToEmploymentRow(e))
	}
	logger.DebugLog(ctx, "previewed person %s with %d positions", preview.FullName, preview.PositionCount)
	return preview, nil
}

func (s *EmploymentService) newEmployment(in EmploymentInput) (*domain.Employment, error) {
	opts := []domain.EmploymentOption{domain.WithClock(s.clock)}
	if in.Years != nil {
		opts = append(opts, domain.WithYears(*in.Years))
	}
	return domain.NewEmployment(in.Title, in.Level, in.StartDate, opts...)
}

func (s *EmploymentService) reportExporter(ctx context.Context) (*simpleexcel.DataExporter, error) {
	if s.reportConfigPath != "" {
		exporter, err := simpleexcel.NewDataExporterFromYamlFile(s.reportConfigPath)
		if err == nil {
			return exporter, nil
		}
		if !errors.Is(err, fs.ErrNotExist) {
			return nil, fmt.Errorf("load report config %s: %w", s.reportConfigPath, err)
		}
		logger.WarnLog(ctx, "report config %s not found, using built-in layout", s.reportConfigPath)
	}
	return simpleexcel.NewDataExporterFromYamlConfig(defaultReportTemplate)
}

func recordErrorsSection(rows []RecordErrorRow) *simpleexcel.SectionConfig {
	return &simpleexcel.SectionConfig{
		ID:         RecordErrorsSectionID,
		Title:      "Record Errors",
		Data:       rows,
		ShowHeader: true,
		TitleStyle: &simpleexcel.StyleTemplate{
			Font: &simpleexcel.FontTemplate{Bold: true, Color: "#C00000"},
		},
		Columns: []simpleexcel.ColumnConfig{
			{FieldName: "Line", Header: "Line"},
			{FieldName: "Message", Header: "Message"},
			{FieldName: "Raw", Header: "Record"},
		},
	}
}

// ToEmploymentRow converts e to its display form.
func ToEmploymentRow(e *domain.Employment) EmploymentRow {
	return EmploymentRow{
		Title:       e.Title(),
		Level:       e.Level().String(),
		StartDate:   e.StartDate().Format(domain.RecordDateLayout),
		Years:       e.Years(),
		YearsToDate: e.EmploymentYears(),
		Record:      e.String(),
	}
}
