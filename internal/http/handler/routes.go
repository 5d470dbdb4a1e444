package handler

import (
	"database/sql"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"github.com/gofiber/swagger"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"docanalytics/docs"
	"docanalytics/internal/service"
)

// Dependencies are the collaborators the HTTP layer is built on.
// A nil Metrics gatherer disables the /metrics endpoint.
type Dependencies struct {
	DB         *sql.DB
	Documents  service.DocumentService
	Search     service.SearchService
	Statistics service.StatisticsService
	Metrics    prometheus.Gatherer
}

// RegisterRoutes attaches HTTP routes to the provided Fiber app.
func RegisterRoutes(app *fiber.App, deps Dependencies) {
	app.Get("/health", HealthCheck(deps.DB))
	app.Get("/healthz", LivenessProbe())
	if deps.Metrics != nil {
		app.Get("/metrics", adaptor.HTTPHandler(promhttp.HandlerFor(deps.Metrics, promhttp.HandlerOpts{})))
	}
	app.Get("/swagger/*", SwaggerUI())

	api := app.Group("/api")
	api.Post("/upload", UploadDocument(deps.Documents))
	api.Get("/documents", ListDocuments(deps.Documents))
	api.Post("/documents/reprocess", ReprocessDocuments(deps.Documents))
	api.Get("/document/:id", GetDocument(deps.Documents))
	api.Delete("/document/:id", DeleteDocument(deps.Documents))
	api.Get("/document/:id/download", DownloadDocument(deps.Documents))
	api.Post("/classify", ClassifyDocuments(deps.Documents))
	api.Post("/search", SearchDocuments(deps.Search))
	api.Get("/statistics", GetStatistics(deps.Statistics))
}

// SwaggerUI serves the API docs with host and scheme taken from the request,
// honoring X-Forwarded-Proto behind a proxy.
func SwaggerUI() fiber.Handler {
	return func(c *fiber.Ctx) error {
		scheme := c.Protocol()
		if proto := c.Get("X-Forwarded-Proto"); proto != "" {
			scheme = strings.TrimSpace(strings.Split(proto, ",")[0])
		}

		docs.SwaggerInfo.Host = c.Get("Host")
		docs.SwaggerInfo.Schemes = []string{scheme}

		return swagger.HandlerDefault(c)
	}
}
