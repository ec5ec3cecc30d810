package api

import (
	"context"

	"github.com/vytor/intuition/internal/services"
)

// Pinger reports whether a backing store is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

type Server struct {
	ProfileService  services.ProfileService
	GameService     services.GameService
	SessionService  services.SessionService
	ProgressService services.ProgressService
	DB              Pinger
	AllowedOrigins  []string
}
