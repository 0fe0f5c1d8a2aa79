package maps

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"googlemaps.github.io/maps"

	"rickshawgo/internal/modules/location"
)

func newTestGeocoder(t *testing.T, body string) *Geocoder {
	t.Helper()
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/maps/api/geocode/json", r.URL.Path)
		assert.Equal(t, "country:IN", r.URL.Query().Get("components"))
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)

	g, err := NewGeocoder("test-key", maps.WithBaseURL(srv.URL))
	require.NoError(t, err)
	return g
}

func TestGeocode_BestResult(t *testing.T) {
	g := newTestGeocoder(t, `{
		"status": "OK",
		"results": [{
			"formatted_address": "Bhatye Beach, Ratnagiri, Maharashtra, India",
			"geometry": {"location": {"lat": 16.9760, "lng": 73.2870}}
		}]
	}`)

	pos, name, err := g.Geocode(context.Background(), "Bhatye Beach")
	require.NoError(t, err)
	assert.Equal(t, "Bhatye Beach, Ratnagiri, Maharashtra, India", name)
	assert.InDelta(t, 73.2870, pos.Lng, 1e-9)
	assert.InDelta(t, 16.9760, pos.Lat, 1e-9)
}

func TestGeocode_NoResults(t *testing.T) {
	g := newTestGeocoder(t, `{"status": "ZERO_RESULTS", "results": []}`)

	_, _, err := g.Geocode(context.Background(), "nowhere")
	assert.ErrorIs(t, err, location.ErrPlaceNotFound)
}
