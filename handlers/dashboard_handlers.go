package handlers

import (
	"github.com/gofiber/fiber/v2"

	"interviewanalyzer/internal/dashboard"
	"interviewanalyzer/utils"
)

// ShowUploadPage renders the upload form.
func (h *ApplicationHandler) ShowUploadPage(c *fiber.Ctx) error {
	return c.Render(dashboard.IndexView, dashboard.NewPage(h.Analyzer.HasDefaultAPIKey()))
}

// AnalyzeForm runs an analysis submitted from the upload form and renders
// the dashboard. Failures re-render the form with the error and the status
// of the error class.
func (h *ApplicationHandler) AnalyzeForm(c *fiber.Ctx) error {
	page := dashboard.NewPage(h.Analyzer.HasDefaultAPIKey())

	req, form, err := h.parseAnalysisRequest(c)
	page.AudioURL = form.AudioURL
	if err == nil {
		report, runErr := h.runAnalysis(c, req)
		if runErr == nil {
			page.Report = dashboard.Build(report)
			return c.Render(dashboard.IndexView, page)
		}
		err = runErr
	}

	page.Error = err.Error()
	page.ErrorKind = utils.Kind(err)
	return c.Status(utils.StatusForError(err)).Render(dashboard.IndexView, page)
}

// ShowReport renders an archived report as a dashboard.
func (h *ApplicationHandler) ShowReport(c *fiber.Ctx) error {
	page := dashboard.NewPage(h.Analyzer.HasDefaultAPIKey())

	report, status, message := h.lookupReport(c)
	if report == nil {
		page.Error = message
		return c.Status(status).Render(dashboard.IndexView, page)
	}
	page.Report = dashboard.Build(report)
	return c.Render(dashboard.IndexView, page)
}
