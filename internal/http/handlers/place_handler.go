// README: Place search handlers backing the location picker.
package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rickshawgo/internal/modules/location"
	"rickshawgo/internal/types"
)

const defaultNearestLimit = 5

type PlaceHandler struct {
	location *location.Service
}

func NewPlaceHandler(svc *location.Service) *PlaceHandler {
	return &PlaceHandler{location: svc}
}

func (h *PlaceHandler) Search(c *gin.Context) {
	places, err := h.location.Search(c.Request.Context(), c.Query("q"))
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"places": places})
}

func (h *PlaceHandler) Nearest(c *gin.Context) {
	lng, errLng := strconv.ParseFloat(c.Query("lng"), 64)
	lat, errLat := strconv.ParseFloat(c.Query("lat"), 64)
	if errLng != nil || errLat != nil {
		writeError(c, http.StatusBadRequest, "lng and lat are required numbers")
		return
	}
	limit := defaultNearestLimit
	if v := c.Query("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			writeError(c, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = n
	}
	places, err := h.location.Nearest(types.Point{Lng: lng, Lat: lat}, limit)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{"places": places})
}
