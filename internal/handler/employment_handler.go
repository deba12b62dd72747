package handler

import (
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/locvowork/employment_history/internal/domain"
	"github.com/locvowork/employment_history/internal/logger"
	"github.com/locvowork/employment_history/internal/service"
	"github.com/locvowork/employment_history/internal/service/serviceutils"
)

const xlsxContentType = "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet"

type EmploymentHandler struct {
	svc *service.EmploymentService
}

func NewEmploymentHandler(svc *service.EmploymentService) *EmploymentHandler {
	return &EmploymentHandler{svc: svc}
}

type dataEntryView struct {
	Form     EmploymentForm
	Levels   []string
	Today    string
	Feedback string
	Errors   []string
}

type reportView struct {
	Report *service.EmploymentReport
	Errors []string
}

// ==================== HTML pages ====================

func (h *EmploymentHandler) IndexHandler(c echo.Context) error {
	return c.Redirect(http.StatusFound, "/employments/new")
}

// NewFormHandler shows an empty data-entry form.
func (h *EmploymentHandler) NewFormHandler(c echo.Context) error {
	return c.Render(http.StatusOK, "data_entry", h.newDataEntryView(h.emptyForm()))
}

// CollectHandler checks the posted form, records the employment and shows the
// form again with feedback or the list of problems.
func (h *EmploymentHandler) CollectHandler(c echo.Context) error {
	ctx := c.Request().Context()

	var form EmploymentForm
	if err := c.Bind(&form); err != nil {
		view := h.newDataEntryView(h.emptyForm())
		view.Errors = []string{"Data Format: " + err.Error()}
		return c.Render(http.StatusBadRequest, "data_entry", view)
	}
	view := h.newDataEntryView(form)

	in, msgs := h.formInput(c, form)
	if len(msgs) > 0 {
		logger.DebugLog(ctx, "data entry rejected: %s", strings.Join(msgs, " "))
		view.Errors = msgs
		return c.Render(http.StatusUnprocessableEntity, "data_entry", view)
	}

	e, err := h.svc.Record(ctx, in)
	if err != nil {
		status, _ := mapDomainError(err)
		view.Errors = []string{userMessage(err)}
		return c.Render(status, "data_entry", view)
	}

	view.Feedback = fmt.Sprintf("Entered Data: %s, %s, %s, %s \n\nData saved to file.",
		e.Title(), e.StartDate().Format(domain.RecordDateLayout), e.Level(),
		strconv.FormatFloat(e.Years(), 'f', -1, 64))
	return c.Render(http.StatusOK, "data_entry", view)
}

// ReportHandler lists every stored record and every line that failed to parse.
func (h *EmploymentHandler) ReportHandler(c echo.Context) error {
	report, err := h.svc.Report(c.Request().Context())
	if err != nil {
		return c.Render(http.StatusInternalServerError, "report", reportView{
			Errors: []string{userMessage(err)},
		})
	}

	view := reportView{Report: report}
	for _, re := range report.RecordErrors {
		view.Errors = append(view.Errors, re.Message)
	}
	return c.Render(http.StatusOK, "report", view)
}

// ExportHandler downloads the report as an xlsx workbook.
func (h *EmploymentHandler) ExportHandler(c echo.Context) error {
	excelBytes, err := h.svc.ExportReport(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to generate Excel file", err)
	}

	// Set headers for file download
	c.Response().Header().Set("Content-Type", xlsxContentType)
	c.Response().Header().Set("Content-Disposition", `attachment; filename="employment_report.xlsx"`)
	c.Response().Header().Set("Content-Length", strconv.Itoa(len(excelBytes)))

	_, err = c.Response().Write(excelBytes)
	return err
}

// ==================== JSON API ====================

func (h *EmploymentHandler) ListHandler(c echo.Context) error {
	report, err := h.svc.Report(c.Request().Context())
	if err != nil {
		return serviceutils.ResponseError(c, http.StatusInternalServerError, "Failed to read employment records", err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusOK, "Employment records retrieved successfully", report)
}

func (h *EmploymentHandler) CreateHandler(c echo.Context) error {
	var req EmploymentRequest
	if err := c.Bind(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body", err)
	}
	if err := c.Validate(&req); err != nil {
		return serviceutils.ResponseError(c, http.StatusBadRequest, "Invalid request body",
			errors.New(strings.Join(validationMessages(err), " ")))
	}

	in, err := requestInput(req)
	if err != nil {
		status, prefix := mapDomainError(err)
		return serviceutils.ResponseError(c, status, prefix, err)
	}

	e, err := h.svc.Record(c.Request().Context(), in)
	if err != nil {
		status, prefix := mapDomainError(err)
		return serviceutils.ResponseError(c, status, prefix, err)
	}
	return serviceutils.ResponseSuccess(c, http.StatusCreated, "Employment recorded successfully", service.ToEmploymentRow(e))
}

func (h *EmploymentHandler) HealthHandler(c echo.Context) error {
	return serviceutils.ResponseSuccess(c, http.StatusOK, "ok", nil)
}

// ==================== helpers ====================

func (h *EmploymentHandler) emptyForm() EmploymentForm {
	return EmploymentForm{
		Level:     domain.Entry.String(),
		StartDate: h.svc.Today().Format(HTMLDateLayout),
	}
}

func (h *EmploymentHandler) newDataEntryView(form EmploymentForm) dataEntryView {
	levels := make([]string, 0, len(domain.SupervisoryLevels()))
	for _, l := range domain.SupervisoryLevels() {
		levels = append(levels, l.String())
	}
	return dataEntryView{
		Form:   form,
		Levels: levels,
		Today:  h.svc.Today().Format(HTMLDateLayout),
	}
}

// formInput runs the page's own presence, type and range checks and collects
// every problem before anything reaches the domain.
func (h *EmploymentHandler) formInput(c echo.Context, form EmploymentForm) (service.EmploymentInput, []string) {
	var msgs []string
	if err := c.Validate(&form); err != nil {
		msgs = validationMessages(err)
	}

	in := service.EmploymentInput{Title: form.Title}

	if form.Level != "" {
		level, err := domain.ParseSupervisoryLevel(strings.TrimSpace(form.Level))
		if err != nil {
			msgs = append(msgs, userMessage(err))
		}
		in.Level = level
	}

	if start, err := time.Parse(HTMLDateLayout, form.StartDate); err == nil {
		if start.After(h.svc.Today()) {
			msgs = append(msgs, "Start Date cannot be in the future.")
		}
		in.StartDate = start
	}

	if strings.TrimSpace(form.Years) != "" {
		if years, err := strconv.ParseFloat(strings.TrimSpace(form.Years), 64); err == nil {
			if years < 0 {
				msgs = append(msgs, "Years must be 0 or greater.")
			}
			in.Years = &years
		}
	}

	return in, msgs
}

// requestInput converts a validated JSON request into service input.
func requestInput(req EmploymentRequest) (service.EmploymentInput, error) {
	level, err := domain.ParseSupervisoryLevel(strings.TrimSpace(req.Level))
	if err != nil {
		return service.EmploymentInput{}, err
	}
	start, err := time.Parse(HTMLDateLayout, req.StartDate)
	if err != nil {
		return service.EmploymentInput{}, fmt.Errorf("start date %q: %w", req.StartDate, domain.ErrFormat)
	}
	return service.EmploymentInput{
		Title:     req.Title,
		Level:     level,
		StartDate: start,
		Years:     req.Years,
	}, nil
}
