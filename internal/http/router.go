// README: HTTP router registration.
package http

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"rickshawgo/internal/http/handlers"
	"rickshawgo/internal/http/middleware"
	"rickshawgo/internal/metrics"
)

func (s *Server) Routes() http.Handler {
	r := gin.New()
	// Recovery is innermost so panicked requests are still logged and counted.
	r.Use(
		middleware.RequestID(),
		middleware.Logging(s.log),
		metrics.Middleware(),
		middleware.Recovery(s.log),
	)

	fareHandler := handlers.NewFareHandler(s.pricing, s.location)
	r.POST("/api/fares/estimate", fareHandler.Estimate)
	r.GET("/api/fares/preview", fareHandler.Preview)
	r.GET("/api/routes/common", fareHandler.CommonRoutes)

	placeHandler := handlers.NewPlaceHandler(s.location)
	r.GET("/api/places", placeHandler.Search)
	r.GET("/api/places/nearest", placeHandler.Nearest)

	r.GET("/health", func(c *gin.Context) {
		c.String(http.StatusOK, "OK")
	})
	r.GET("/metrics", gin.WrapH(metrics.Handler()))

	return r
}
