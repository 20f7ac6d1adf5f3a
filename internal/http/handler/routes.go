package handler

import (
	"database/sql"

	"github.com/gofiber/fiber/v2"

	"kycintake/internal/service"
)

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, db *sql.DB, svc service.SubmissionService) {
	app.Get("/health", HealthCheck(db))
	app.Get("/healthz", LivenessProbe())

	g := app.Group("/kyc")
	g.Post("/business", SubmitBusiness(svc))
	g.Post("/individual", SubmitIndividual(svc))
	g.Get("/submissions", ListSubmissions(svc))
	g.Get("/submissions/:id", GetSubmission(svc))
	g.Get("/documents/:cid", DownloadDocument(svc))
	g.Get("/documents/:cid/url", DocumentURL(svc))
}
