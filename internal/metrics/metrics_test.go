package metrics

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestObserveWidgetLoad(t *testing.T) {
	m := New()

	m.ObserveWidgetLoad("market", "ok", 20*time.Millisecond)
	m.ObserveWidgetLoad("market", "ok", 10*time.Millisecond)
	m.ObserveWidgetLoad("market", "empty", time.Millisecond)

	assert.Equal(t, 2.0, testutil.ToFloat64(m.widgetLoads.WithLabelValues("market", "ok")))
	assert.Equal(t, 1.0, testutil.ToFloat64(m.widgetLoads.WithLabelValues("market", "empty")))
	assert.Equal(t, 0.0, testutil.ToFloat64(m.widgetLoads.WithLabelValues("serrano", "ok")))
}

func TestObserveHTTPRequest(t *testing.T) {
	m := New()

	m.ObserveHTTPRequest(http.MethodGet, "/dashboard/widgets/{id}", http.StatusOK, time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.httpRequests.WithLabelValues("GET", "/dashboard/widgets/{id}", "200")))
}

func TestHandlerExposesMetrics(t *testing.T) {
	m := New()
	m.ObserveWidgetLoad("overview", "ok", time.Millisecond)

	rec := httptest.NewRecorder()
	m.Handler().ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	require.Equal(t, http.StatusOK, rec.Code)
	body := rec.Body.String()
	assert.True(t, strings.Contains(body, `dashboard_widget_loads_total{family="overview",outcome="ok"} 1`))
	assert.True(t, strings.Contains(body, "go_goroutines"))
}
