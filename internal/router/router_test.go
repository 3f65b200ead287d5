package router

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/GregMSThompson/serrano-dashboard/internal/catalog"
	"github.com/GregMSThompson/serrano-dashboard/internal/dto"
	"github.com/GregMSThompson/serrano-dashboard/internal/handlers"
	"github.com/GregMSThompson/serrano-dashboard/internal/metrics"
	"github.com/GregMSThompson/serrano-dashboard/internal/response"
)

type stubDispatcher struct{}

func (stubDispatcher) Dispatch(_ context.Context, widgetID string, _ dto.WidgetFilters, _ dto.Scope) dto.WidgetResponse {
	return dto.WidgetResponse{OK: true, WidgetID: widgetID}
}

func newTestDeps() *handlers.Deps {
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return &handlers.Deps{
		Log:             log,
		ResponseHandler: response.New(log),
		Catalog:         catalog.Default(),
		Dispatcher:      stubDispatcher{},
	}
}

func TestHealthz(t *testing.T) {
	r := NewRouter(newTestDeps(), Options{})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))

	if rr.Code != http.StatusOK || rr.Body.String() != "ok" {
		t.Fatalf("unexpected healthz %d %q", rr.Code, rr.Body.String())
	}
}

func TestDashboardMountedBehindAuth(t *testing.T) {
	deny := func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "Unauthorized", http.StatusUnauthorized)
		})
	}
	r := NewRouter(newTestDeps(), Options{Auth: deny})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/dashboard/catalog", nil))

	if rr.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", rr.Code)
	}
}

func TestWidgetRouteAndMetrics(t *testing.T) {
	m := metrics.New()
	r := NewRouter(newTestDeps(), Options{Metrics: m})

	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/dashboard/widgets/market.deals_by_month", nil))
	if rr.Code != http.StatusOK || !strings.Contains(rr.Body.String(), `"widgetId":"market.deals_by_month"`) {
		t.Fatalf("unexpected widget response %d %s", rr.Code, rr.Body.String())
	}

	rr = httptest.NewRecorder()
	r.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rr.Body.String(), "dashboard_http_requests_total") {
		t.Errorf("expected request counter in metrics output")
	}
}

func preflight(r http.Handler, origin string) http.Header {
	req := httptest.NewRequest(http.MethodOptions, "/dashboard/catalog", nil)
	req.Header.Set("Origin", origin)
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)
	rr := httptest.NewRecorder()
	r.ServeHTTP(rr, req)
	return rr.Header()
}

func TestCORSWildcardNeverAllowsCredentials(t *testing.T) {
	r := NewRouter(newTestDeps(), Options{CORSOrigins: []string{"*"}})

	h := preflight(r, "https://evil.example")
	if h.Get("Access-Control-Allow-Origin") != "*" {
		t.Fatalf("expected wildcard origin, got %q", h.Get("Access-Control-Allow-Origin"))
	}
	if h.Get("Access-Control-Allow-Credentials") != "" {
		t.Errorf("wildcard must not allow credentials, got %q", h.Get("Access-Control-Allow-Credentials"))
	}
}

func TestCORSExplicitOriginAllowsCredentials(t *testing.T) {
	r := NewRouter(newTestDeps(), Options{CORSOrigins: []string{"https://app.example"}})

	h := preflight(r, "https://app.example")
	if h.Get("Access-Control-Allow-Origin") != "https://app.example" {
		t.Fatalf("unexpected origin %q", h.Get("Access-Control-Allow-Origin"))
	}
	if h.Get("Access-Control-Allow-Credentials") != "true" {
		t.Errorf("expected credentials for listed origin")
	}

	h = preflight(r, "https://evil.example")
	if h.Get("Access-Control-Allow-Origin") != "" {
		t.Errorf("unlisted origin must not be allowed, got %q", h.Get("Access-Control-Allow-Origin"))
	}
}

func TestCORSDisabledByDefault(t *testing.T) {
	r := NewRouter(newTestDeps(), Options{})

	h := preflight(r, "https://evil.example")
	if h.Get("Access-Control-Allow-Origin") != "" {
		t.Errorf("expected no CORS headers, got %q", h.Get("Access-Control-Allow-Origin"))
	}
}
