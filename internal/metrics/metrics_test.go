package metrics

import (
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
)

func TestRecordHelpers(t *testing.T) {
	before := testutil.ToFloat64(MembershipOps.WithLabelValues("join", "ok"))
	RecordMembership("join", "ok")
	if got := testutil.ToFloat64(MembershipOps.WithLabelValues("join", "ok")); got != before+1 {
		t.Errorf("join ok = %v, want %v", got, before+1)
	}

	RecordPublish("subscription.joined", errors.New("closed"))
	if got := testutil.ToFloat64(EventsPublished.WithLabelValues("subscription.joined", "error")); got < 1 {
		t.Errorf("publish error counter = %v", got)
	}
}

func TestMiddlewareAndHandler(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/v1/artists/:id", func(c echo.Context) error { return c.NoContent(http.StatusNoContent) })
	e.GET("/metrics", Handler())

	rec := httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/v1/artists/3", nil))
	if rec.Code != http.StatusNoContent {
		t.Fatalf("status = %d", rec.Code)
	}
	if got := testutil.ToFloat64(HTTPRequests.WithLabelValues("/v1/artists/:id", "GET", "204")); got < 1 {
		t.Errorf("request counter = %v", got)
	}

	rec = httptest.NewRecorder()
	e.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	if !strings.Contains(rec.Body.String(), "fanclub_http_requests_total") {
		t.Error("metrics output lacks fanclub_http_requests_total")
	}
}
