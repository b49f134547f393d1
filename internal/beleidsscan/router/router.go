package router

import (
	"github.com/labstack/echo/v4"
	"github.com/labstack/echo/v4/middleware"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/handler"
)

func RegisterRoutes(e *echo.Echo, h *handler.Handler) {
	// Enable CORS for the dashboard frontend
	e.Use(middleware.CORSWithConfig(middleware.CORSConfig{
		AllowOrigins: []string{"*"},
		AllowMethods: []string{echo.GET, echo.PUT, echo.POST, echo.DELETE, echo.OPTIONS},
		AllowHeaders: []string{echo.HeaderOrigin, echo.HeaderContentType, echo.HeaderAccept, "authentication", "x-user-id"},
	}))

	// Health Check
	e.GET("/health", handler.HealthCheck)

	// Prometheus scrape endpoint
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	v1 := e.Group("/api/v1")
	v1.Use(handler.RequestIDMiddleware)

	// Canonical documents
	v1.POST("/documents", h.PostDocument)
	v1.GET("/documents", h.GetDocuments)
	v1.GET("/documents/:id", h.GetDocument)
	v1.PUT("/documents/:id", h.PutDocument)
	v1.DELETE("/documents/:id", h.DeleteDocument)
	v1.POST("/documents/:id/extensions", h.PostDocumentExtension)

	// Scraper graph versioning
	v1.PUT("/scrapers/:scraperId/graph", h.PutScraperGraph)
	v1.GET("/scrapers/:scraperId/graph", h.GetScraperGraph)
	v1.GET("/scrapers/:scraperId/graph/versions", h.GetScraperGraphVersions)
	v1.GET("/scrapers/:scraperId/graph/versions/:version", h.GetScraperGraphVersion)
	v1.POST("/scrapers/:scraperId/graph/diff", h.PostScraperGraphDiff)
	v1.POST("/scrapers/:scraperId/graph/merge", h.PostScraperGraphMerge)

	// Knowledge graph branches
	v1.POST("/kg/branches", h.PostKGBranch)
	v1.GET("/kg/branches", h.GetKGBranches)
	v1.GET("/kg/branches/:branch/log", h.GetKGLog)
	v1.POST("/kg/branches/:branch/commits", h.PostKGCommit)
	v1.POST("/kg/merge", h.PostKGMerge)
	v1.POST("/kg/stashes", h.PostKGStash)
	v1.POST("/kg/stashes/pop", h.PostKGStashPop)
	v1.GET("/kg/stashes", h.GetKGStashes)
	v1.POST("/kg/query", h.PostKGQuery)
	v1.POST("/kg/update", h.PostKGUpdate)

	// Extension schema migrations
	v1.POST("/extensions/migrate", h.PostExtensionMigrate)

	// ETL runs
	v1.POST("/etl/jobs", h.PostETLJob)
	v1.GET("/etl/jobs/:runId", h.GetETLJob)
	v1.POST("/etl/jobs/:runId/result", h.PostETLJobResult)
	v1.POST("/etl/jobs/:runId/manifest", h.PostETLJobManifest)

	// External lookups
	v1.GET("/geo/lookup", h.GetGeoLookup)
	v1.GET("/crawl/captures", h.GetCrawlCaptures)

	// Admin
	v1.GET("/admin/breakers", h.GetBreakers)
	v1.POST("/admin/breakers/:name/reset", h.PostBreakerReset)
}
