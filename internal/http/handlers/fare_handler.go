// README: Fare handlers for full quotes and distance-only previews.
package handlers

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"rickshawgo/internal/modules/location"
	"rickshawgo/internal/modules/pricing"
	"rickshawgo/internal/types"
)

type FareHandler struct {
	pricing  *pricing.Service
	location *location.Service
}

func NewFareHandler(pricingSvc *pricing.Service, locationSvc *location.Service) *FareHandler {
	return &FareHandler{pricing: pricingSvc, location: locationSvc}
}

type pointReq struct {
	Lng *float64 `json:"lng"`
	Lat *float64 `json:"lat"`
}

// A stop is given either as coordinates or as a place name.
type estimateReq struct {
	Region          string    `json:"region"`
	Pickup          *pointReq `json:"pickup"`
	PickupName      string    `json:"pickup_name"`
	Destination     *pointReq `json:"destination"`
	DestinationName string    `json:"destination_name"`
	WaitingMinutes  float64   `json:"waiting_minutes"`
}

type estimateResp struct {
	pricing.Breakdown
	TotalDisplay string `json:"total_display"`
	Pickup       place  `json:"pickup"`
	Destination  place  `json:"destination"`
}

type place struct {
	Name     string      `json:"name,omitempty"`
	Position types.Point `json:"position"`
}

func (h *FareHandler) Estimate(c *gin.Context) {
	var req estimateReq
	if err := c.ShouldBindJSON(&req); err != nil {
		writeError(c, http.StatusBadRequest, "invalid json")
		return
	}
	ctx := c.Request.Context()

	pickup, err := h.stop(ctx, req.Pickup, req.PickupName)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	dest, err := h.stop(ctx, req.Destination, req.DestinationName)
	if err != nil {
		writeServiceError(c, err)
		return
	}

	b, err := h.pricing.Quote(ctx, pricing.QuoteRequest{
		Region:         req.Region,
		Pickup:         pickup.Position,
		Destination:    dest.Position,
		WaitingMinutes: req.WaitingMinutes,
	})
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, estimateResp{
		Breakdown:    b,
		TotalDisplay: types.Money{Amount: b.TotalFare, Currency: b.Currency}.String(),
		Pickup:       pickup,
		Destination:  dest,
	})
}

func (h *FareHandler) Preview(c *gin.Context) {
	raw := c.Query("distance_km")
	if raw == "" {
		writeError(c, http.StatusBadRequest, "missing distance_km")
		return
	}
	distanceKm, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		writeError(c, http.StatusBadRequest, "distance_km must be a number")
		return
	}
	m, err := h.pricing.Preview(c.Request.Context(), c.Query("region"), distanceKm)
	if err != nil {
		writeServiceError(c, err)
		return
	}
	writeJSON(c, http.StatusOK, map[string]any{
		"fare":     m.Amount,
		"currency": m.Currency,
		"display":  m.String(),
	})
}

func (h *FareHandler) CommonRoutes(c *gin.Context) {
	writeJSON(c, http.StatusOK, map[string]any{"routes": pricing.CommonRoutes()})
}

func (h *FareHandler) stop(ctx context.Context, p *pointReq, name string) (place, error) {
	if p != nil && p.Lng != nil && p.Lat != nil {
		return place{Name: name, Position: types.Point{Lng: *p.Lng, Lat: *p.Lat}}, nil
	}
	if name == "" {
		return place{}, location.ErrBadRequest
	}
	resolved, err := h.location.Resolve(ctx, name)
	if err != nil {
		return place{}, err
	}
	return place{Name: resolved.Name, Position: resolved.Position}, nil
}
