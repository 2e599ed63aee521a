package handlers

import (
	"context"
	"errors"
	"fmt"
	"io"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"interviewanalyzer/internal/archive"
	"interviewanalyzer/internal/audio"
	"interviewanalyzer/internal/pipeline"
	"interviewanalyzer/models"
	"interviewanalyzer/utils"
)

var validate = validator.New()

// AnalysisForm holds the non-file fields of an analysis request.
type AnalysisForm struct {
	AudioURL string `form:"audio_url" validate:"omitempty,url,startswith=http"`
	APIKey   string `form:"api_key" validate:"omitempty,printascii"`
}

// ReportListQuery bounds a report listing.
type ReportListQuery struct {
	Limit int `query:"limit" validate:"omitempty,min=1,max=100"`
}

// ReportSuccessResponse wraps a single report.
type ReportSuccessResponse struct {
	Status  string         `json:"status"`
	Message string         `json:"message"`
	Data    *models.Report `json:"data"`
}

// ReportListSuccessResponse wraps a list of archived report summaries.
type ReportListSuccessResponse struct {
	Status  string                 `json:"status"`
	Message string                 `json:"message"`
	Data    []models.ReportSummary `json:"data"`
}

// ErrorResponse defines a common structure for error responses.
type ErrorResponse struct {
	Status  string `json:"status"`
	Kind    string `json:"kind,omitempty"`
	Message string `json:"message"`
}

// parseAnalysisRequest reads the multipart (or urlencoded) analysis form.
// A non-empty upload wins over audio_url, which is then neither validated
// nor passed on. A missing file is not an error here; the resolver decides
// whether the request carries any audio at all.
func (h *ApplicationHandler) parseAnalysisRequest(c *fiber.Ctx) (pipeline.Request, AnalysisForm, error) {
	form := AnalysisForm{
		AudioURL: utils.SanitizeInput(c.FormValue("audio_url")),
		APIKey:   utils.SanitizeInput(c.FormValue("api_key")),
	}
	req := pipeline.Request{APIKey: form.APIKey}

	upload, err := h.readUpload(c)
	if err != nil {
		return req, form, err
	}

	checked := form
	if upload != nil {
		req.Upload = upload
		checked.AudioURL = ""
	} else {
		req.URL = form.AudioURL
	}
	if err := validate.Struct(checked); err != nil {
		return req, form, fmt.Errorf("%w: %s", utils.ErrInvalidInput, strings.Join(utils.FormatValidationErrors(err), "; "))
	}
	return req, form, nil
}

// readUpload returns the "file" part, or nil when none was sent.
func (h *ApplicationHandler) readUpload(c *fiber.Ctx) (*audio.Upload, error) {
	file, err := c.FormFile("file")
	if err != nil || file.Size == 0 {
		return nil, nil
	}
	if h.MaxUploadBytes > 0 && file.Size > h.MaxUploadBytes {
		return nil, fmt.Errorf("%w: file exceeds %d bytes", utils.ErrInvalidInput, h.MaxUploadBytes)
	}

	fileHandle, err := file.Open()
	if err != nil {
		return nil, fmt.Errorf("opening uploaded file: %w", err)
	}
	defer fileHandle.Close()

	data, err := io.ReadAll(fileHandle)
	if err != nil {
		return nil, fmt.Errorf("reading uploaded file: %w", err)
	}
	return &audio.Upload{
		Filename:    file.Filename,
		ContentType: file.Header.Get("Content-Type"),
		Data:        data,
	}, nil
}

// runAnalysis bounds a pipeline run by the configured request timeout.
func (h *ApplicationHandler) runAnalysis(c *fiber.Ctx, req pipeline.Request) (*models.Report, error) {
	ctx := c.UserContext()
	if h.RequestTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, h.RequestTimeout)
		defer cancel()
	}

	report, err := h.Analyzer.Run(ctx, req)
	if err != nil {
		h.Logger.WithFields(logrus.Fields{
			"request_id": c.Locals("requestid"),
			"kind":       utils.Kind(err),
			"status":     utils.StatusForError(err),
		}).WithError(err).Warn("Analysis failed")
		return nil, err
	}
	return report, nil
}

// CreateAnalysis godoc
// @Summary Analyze an interview recording
// @Description Transcribes an uploaded mp3/wav file (or a recording fetched from audio_url), computes speech metrics and asks the model for strengths, improvements, scores, follow-up questions and stages.
// @Tags analyses
// @Accept  multipart/form-data
// @Produce  json
// @Param   file formData file false "Interview recording (.mp3 or .wav)"
// @Param   audio_url formData string false "URL of a recording, used when no file is uploaded"
// @Param   api_key formData string false "Mistral API key overriding the configured one"
// @Success 200 {object} ReportSuccessResponse "Analysis report"
// @Failure 400 {object} ErrorResponse "Invalid or missing audio"
// @Failure 401 {object} ErrorResponse "Missing or rejected API key"
// @Failure 502 {object} ErrorResponse "Transcription service failure"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /analyses [post]
func (h *ApplicationHandler) CreateAnalysis(c *fiber.Ctx) error {
	req, _, err := h.parseAnalysisRequest(c)
	if err != nil {
		return utils.RespondWithPipelineError(c, err)
	}

	report, err := h.runAnalysis(c, req)
	if err != nil {
		return utils.RespondWithPipelineError(c, err)
	}

	message := "Analysis completed"
	if len(report.Warnings) > 0 {
		message = fmt.Sprintf("Analysis completed with %d warning(s)", len(report.Warnings))
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, message, report)
}

// ListReports godoc
// @Summary List archived reports
// @Description Lists the newest archived reports. Only available when the Supabase archive is configured.
// @Tags reports
// @Produce  json
// @Param   limit query int false "Maximum number of reports (1-100)"
// @Success 200 {object} ReportListSuccessResponse "Archived reports"
// @Failure 400 {object} ErrorResponse "Invalid limit"
// @Failure 404 {object} ErrorResponse "Archive disabled"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /reports [get]
func (h *ApplicationHandler) ListReports(c *fiber.Ctx) error {
	if h.Reports == nil {
		return utils.RespondWithError(c, fiber.StatusNotFound, "Report archive is not configured")
	}

	query := new(ReportListQuery)
	if err := c.QueryParser(query); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, fmt.Sprintf("Invalid query: %v", err))
	}
	if err := validate.Struct(query); err != nil {
		return utils.RespondWithError(c, fiber.StatusBadRequest, strings.Join(utils.FormatValidationErrors(err), "; "))
	}

	reports, err := h.Reports.List(c.UserContext(), query.Limit)
	if err != nil {
		h.Logger.WithError(err).Error("Could not list reports")
		return utils.RespondWithError(c, fiber.StatusInternalServerError, "Could not list reports")
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, "Reports retrieved successfully", reports)
}

// GetReport godoc
// @Summary Get an archived report
// @Tags reports
// @Produce  json
// @Param   id path string true "Report ID (uuid)"
// @Success 200 {object} ReportSuccessResponse "Archived report"
// @Failure 400 {object} ErrorResponse "Invalid report ID"
// @Failure 404 {object} ErrorResponse "Archive disabled or report not found"
// @Failure 500 {object} ErrorResponse "Internal server error"
// @Router /reports/{id} [get]
func (h *ApplicationHandler) GetReport(c *fiber.Ctx) error {
	report, status, message := h.lookupReport(c)
	if report == nil {
		return utils.RespondWithError(c, status, message)
	}
	return utils.RespondWithJSON(c, fiber.StatusOK, "Report retrieved successfully", report)
}

// lookupReport resolves the :id report. On failure it returns the HTTP
// status and a user-facing message.
func (h *ApplicationHandler) lookupReport(c *fiber.Ctx) (*models.Report, int, string) {
	if h.Reports == nil {
		return nil, fiber.StatusNotFound, "Report archive is not configured"
	}
	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return nil, fiber.StatusBadRequest, "Invalid report ID format"
	}

	report, err := h.Reports.Get(c.UserContext(), id)
	switch {
	case errors.Is(err, archive.ErrNotFound):
		return nil, fiber.StatusNotFound, fmt.Sprintf("Report %s not found", id)
	case err != nil:
		h.Logger.WithError(err).WithField("report_id", id).Error("Could not fetch report")
		return nil, fiber.StatusInternalServerError, "Could not fetch report"
	}
	return report, fiber.StatusOK, ""
}
