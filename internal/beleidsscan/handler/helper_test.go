package handler_test

import (
	"encoding/json"
	"net/http/httptest"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/breaker"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/handler"
	"github.com/Schravenralph/PolicyScan-sub017/internal/beleidsscan/router"
)

type mockServices struct {
	documents  *MockDocumentService
	graphs     *MockGraphService
	kg         *MockKGService
	extensions *MockExtensionService
	etl        *MockETLService
	geo        *MockGeoService
	crawl      *MockCrawlService
	breakers   *breaker.Registry
}

func newMockServices() *mockServices {
	return &mockServices{
		documents:  new(MockDocumentService),
		graphs:     new(MockGraphService),
		kg:         new(MockKGService),
		extensions: new(MockExtensionService),
		etl:        new(MockETLService),
		geo:        new(MockGeoService),
		crawl:      new(MockCrawlService),
		breakers:   breaker.NewRegistry(),
	}
}

func setupServer(s *mockServices) *echo.Echo {
	h := handler.New(s.documents, s.graphs, s.kg, s.extensions, s.etl, s.geo, s.crawl, s.breakers)
	e := echo.New()
	router.RegisterRoutes(e, h)
	return e
}

func performRequest(e *echo.Echo, method, path string, body interface{}, headers map[string]string) *httptest.ResponseRecorder {
	var bodyReader *strings.Reader
	if body != nil {
		b, _ := json.Marshal(body)
		bodyReader = strings.NewReader(string(b))
	} else {
		bodyReader = strings.NewReader("")
	}

	req := httptest.NewRequest(method, path, bodyReader)
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}

func performRawRequest(e *echo.Echo, method, path, body string, headers map[string]string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(method, path, strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	for k, v := range headers {
		req.Header.Set(k, v)
	}

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, req)
	return rec
}
