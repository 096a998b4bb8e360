package middleware

import (
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/apperr"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/config"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/dto"
	jwtware "github.com/gofiber/contrib/jwt"
	"github.com/gofiber/fiber/v2"
)

func jwtConfig(cfg *config.Config) jwtware.Config {
	return jwtware.Config{
		SigningKey:  jwtware.SigningKey{Key: []byte(cfg.JWTSecret)},
		TokenLookup: "header:Authorization,cookie:" + cfg.SessionCookieName,
	}
}

// JWTProtected rejects requests without a valid session token, taken from
// the Authorization header or the session cookie.
func JWTProtected(cfg *config.Config) fiber.Handler {
	jc := jwtConfig(cfg)
	jc.ErrorHandler = func(c *fiber.Ctx, err error) error {
		return c.Status(fiber.StatusUnauthorized).JSON(dto.Fail(
			string(apperr.KindAuthentication),
			"invalid or expired session",
		))
	}
	return jwtware.New(jc)
}

// OptionalSession loads the session when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalSession(cfg *config.Config) fiber.Handler {
	jc := jwtConfig(cfg)
	jc.ErrorHandler = func(c *fiber.Ctx, err error) error {
		return c.Next()
	}
	return jwtware.New(jc)
}
