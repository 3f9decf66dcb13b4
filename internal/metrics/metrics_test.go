package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMiddleware_CountsByRoutePattern(t *testing.T) {
	e := echo.New()
	e.Use(Middleware())
	e.GET("/articles/:id", func(c echo.Context) error {
		return echo.NewHTTPError(http.StatusNotFound, "article not found")
	})

	before := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/articles/:id", "404"))
	for _, id := range []string{"1", "2"} {
		e.ServeHTTP(httptest.NewRecorder(), httptest.NewRequest(http.MethodGet, "/articles/"+id, nil))
	}
	after := testutil.ToFloat64(HTTPRequestsTotal.WithLabelValues(http.MethodGet, "/articles/:id", "404"))
	assert.Equal(t, before+2, after)
}

func TestRecordLogin(t *testing.T) {
	before := testutil.ToFloat64(LoginAttempts.WithLabelValues("failure"))
	RecordLogin(false)
	assert.Equal(t, before+1, testutil.ToFloat64(LoginAttempts.WithLabelValues("failure")))
}
