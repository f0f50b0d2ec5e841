package middleware

import (
	"fmt"

	"github.com/gin-gonic/gin"

	"github.com/Conceptual-Machines/fretboard-api/internal/config"
)

// Auth selects the authentication middleware for the configured AUTH_MODE
func Auth(cfg *config.Config) (gin.HandlerFunc, error) {
	switch cfg.AuthMode {
	case config.AuthModeNone, "":
		return NoAuth(), nil
	case config.AuthModeGateway:
		return GatewayAuth(), nil
	case config.AuthModeJWT:
		if cfg.JWTSecret == "" {
			return nil, fmt.Errorf("AUTH_MODE=jwt requires JWT_SECRET")
		}
		return JWTAuth(cfg.JWTSecret), nil
	default:
		return nil, fmt.Errorf("unknown AUTH_MODE %q", cfg.AuthMode)
	}
}
