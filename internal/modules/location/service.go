// README: Location service searches landmarks and falls back to a geocoder.
package location

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/rs/zerolog"

	"rickshawgo/internal/modules/pricing"
	"rickshawgo/internal/types"
)

var (
	ErrPlaceNotFound = errors.New("place not found")
	ErrBadRequest    = errors.New("bad request")
)

// Geocoder turns free text into a point and a display name.
type Geocoder interface {
	Geocode(ctx context.Context, query string) (types.Point, string, error)
}

type Service struct {
	landmarks []Place
	geocoder  Geocoder
	log       zerolog.Logger
}

// NewService accepts a nil geocoder; lookups are then limited to landmarks.
func NewService(geocoder Geocoder, log zerolog.Logger) *Service {
	return &Service{landmarks: Landmarks(), geocoder: geocoder, log: log}
}

// Search returns landmarks whose name contains q, ignoring case. An empty q
// returns every landmark. When nothing matches and a geocoder is configured,
// its single best result is returned as a custom place.
func (s *Service) Search(ctx context.Context, q string) ([]Place, error) {
	q = strings.TrimSpace(q)
	needle := strings.ToLower(q)
	matches := make([]Place, 0, len(s.landmarks))
	for _, p := range s.landmarks {
		if strings.Contains(strings.ToLower(p.Name), needle) {
			matches = append(matches, p)
		}
	}
	if len(matches) > 0 || s.geocoder == nil {
		return matches, nil
	}

	p, err := s.geocode(ctx, q)
	if errors.Is(err, ErrPlaceNotFound) {
		return matches, nil
	}
	if err != nil {
		return nil, err
	}
	return []Place{p}, nil
}

// Resolve maps a place name to a single place: exact landmark name first,
// then the geocoder.
func (s *Service) Resolve(ctx context.Context, name string) (Place, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return Place{}, ErrBadRequest
	}
	for _, p := range s.landmarks {
		if strings.EqualFold(p.Name, name) {
			return p, nil
		}
	}
	if s.geocoder == nil {
		return Place{}, fmt.Errorf("%q: %w", name, ErrPlaceNotFound)
	}
	return s.geocode(ctx, name)
}

// Nearest returns up to limit landmarks ordered by distance from p. A
// non-positive limit returns all of them.
func (s *Service) Nearest(p types.Point, limit int) ([]NearbyPlace, error) {
	if !p.Valid() {
		return nil, fmt.Errorf("(%v, %v): %w", p.Lng, p.Lat, pricing.ErrInvalidCoordinate)
	}
	nearby := make([]NearbyPlace, len(s.landmarks))
	for i, l := range s.landmarks {
		nearby[i] = NearbyPlace{Place: l, DistanceKm: pricing.DistanceKm(p, l.Position)}
	}
	sortByDistance(nearby, func(n NearbyPlace) float64 { return n.DistanceKm })
	if limit > 0 && limit < len(nearby) {
		nearby = nearby[:limit]
	}
	return nearby, nil
}

func (s *Service) geocode(ctx context.Context, q string) (Place, error) {
	pos, name, err := s.geocoder.Geocode(ctx, q)
	if err != nil {
		s.log.Warn().Err(err).Str("query", q).Msg("geocode failed")
		return Place{}, err
	}
	if !pos.Valid() {
		return Place{}, fmt.Errorf("%q: geocoder returned (%v, %v): %w", q, pos.Lng, pos.Lat, ErrPlaceNotFound)
	}
	if name == "" {
		name = q
	}
	return Place{Name: name, Type: PlaceCustom, Position: pos}, nil
}
