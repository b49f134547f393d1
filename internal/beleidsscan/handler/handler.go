package handler

import (
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/breaker"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/service"
)

type Handler struct {
	Documents  service.DocumentService
	Graphs     service.GraphService
	KG         service.KGService
	Extensions service.ExtensionService
	ETL        service.ETLService
	Geo        service.GeoService
	Crawl      service.CrawlService
	Breakers   *breaker.Registry
}

func New(
	documents service.DocumentService,
	graphs service.GraphService,
	kgSvc service.KGService,
	extensions service.ExtensionService,
	etlSvc service.ETLService,
	geo service.GeoService,
	crawl service.CrawlService,
	breakers *breaker.Registry,
) *Handler {
	return &Handler{
		Documents:  documents,
		Graphs:     graphs,
		KG:         kgSvc,
		Extensions: extensions,
		ETL:        etlSvc,
		Geo:        geo,
		Crawl:      crawl,
		Breakers:   breakers,
	}
}

func HealthCheck(c echo.Context) error {
	return c.JSON(http.StatusOK, map[string]string{"status": "ok"})
}

func (h *Handler) extractCallerID(c echo.Context) (string, error) {
	callerID := c.Request().Header.Get("x-user-id")
	if callerID == "" {
		return "", service.ErrUnauthorized
	}
	return callerID, nil
}
