// README: API server; holds module services and builds the gin engine.
package http

import (
	"github.com/rs/zerolog"

	"rickshawgo/internal/modules/location"
	"rickshawgo/internal/modules/pricing"
)

type ServerDeps struct {
	Pricing  *pricing.Service
	Location *location.Service
	Logger   zerolog.Logger
}

type Server struct {
	pricing  *pricing.Service
	location *location.Service
	log      zerolog.Logger
}

func NewServer(deps ServerDeps) *Server {
	return &Server{
		pricing:  deps.Pricing,
		location: deps.Location,
		log:      deps.Logger,
	}
}
