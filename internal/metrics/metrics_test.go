package metrics

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMiddleware_CountsByRoute(t *testing.T) {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.Use(Middleware())
	r.GET("/ping/:id", func(c *gin.Context) { c.Status(http.StatusNoContent) })

	before := testutil.ToFloat64(RequestsTotal.WithLabelValues(http.MethodGet, "/ping/:id", "204"))

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/ping/abc", nil))
	require.Equal(t, http.StatusNoContent, w.Code)

	after := testutil.ToFloat64(RequestsTotal.WithLabelValues(http.MethodGet, "/ping/:id", "204"))
	assert.Equal(t, before+1, after)
}

func TestHandler_ExposesQuoteCounter(t *testing.T) {
	FareQuotes.WithLabelValues("default", "quote", "false").Inc()

	w := httptest.NewRecorder()
	Handler().ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/metrics", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "rickshawgo_pricing_quotes_total")
}
