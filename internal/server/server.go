// Package server assembles the Fiber application: views, middleware and
// routes for the dashboard and the JSON API.
package server

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"github.com/sirupsen/logrus"
	fiberSwagger "github.com/swaggo/fiber-swagger"

	"interviewanalyzer/config"
	_ "interviewanalyzer/docs" // registers the swagger spec
	"interviewanalyzer/handlers"
	"interviewanalyzer/internal/dashboard"
	"interviewanalyzer/middleware"
	"interviewanalyzer/utils"
)

// NewApp builds the HTTP application. reports may be nil when the archive
// is disabled.
func NewApp(cfg *config.Config, analyzer handlers.Analyzer, reports handlers.ReportStore, logger *logrus.Logger) (*fiber.App, error) {
	engine, err := dashboard.NewEngine()
	if err != nil {
		return nil, err
	}

	app := fiber.New(fiber.Config{
		AppName:               "Interview Analyzer",
		Views:                 engine,
		ViewsLayout:           dashboard.LayoutView,
		BodyLimit:             int(cfg.MaxUploadBytes) + 1<<20,
		ReadTimeout:           cfg.RequestTimeout,
		WriteTimeout:          cfg.RequestTimeout,
		DisableStartupMessage: true,
		ErrorHandler:          errorHandler(logger),
	})

	app.Use(recover.New())
	app.Use(cors.New(cors.Config{
		AllowOrigins: "*",
		AllowHeaders: "Origin, Content-Type, Accept, " + middleware.RequestIDHeader,
	}))
	app.Use(middleware.RequestLogger(logger))

	h := handlers.NewApplicationHandler(analyzer, reports, logger, cfg.RequestTimeout, cfg.MaxUploadBytes)

	app.Get("/health", func(c *fiber.Ctx) error {
		return c.Status(fiber.StatusOK).JSON(fiber.Map{
			"status":          "ok",
			"message":         "Interview Analyzer is healthy",
			"api_key":         analyzer.HasDefaultAPIKey(),
			"archive_enabled": reports != nil,
		})
	})
	app.Get("/swagger/*", fiberSwagger.WrapHandler)

	// Dashboard
	app.Get("/", h.ShowUploadPage)
	app.Post("/analyze", h.AnalyzeForm)
	app.Get("/reports/:id", h.ShowReport)

	// API v1 routes
	apiV1 := app.Group("/api/v1")
	apiV1.Post("/analyses", h.CreateAnalysis)
	apiV1.Get("/reports", h.ListReports)
	apiV1.Get("/reports/:id", h.GetReport)

	return app, nil
}

// errorHandler turns errors that escape the handlers into JSON envelopes.
func errorHandler(logger *logrus.Logger) fiber.ErrorHandler {
	return func(c *fiber.Ctx, err error) error {
		var fe *fiber.Error
		if errors.As(err, &fe) {
			return utils.RespondWithError(c, fe.Code, fe.Message)
		}
		logger.WithError(err).WithField("request_id", c.Locals("requestid")).Error("Unhandled error")
		return utils.RespondWithPipelineError(c, err)
	}
}
