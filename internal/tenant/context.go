package tenant

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Session is the authenticated caller, passed explicitly into every
// service operation. A nil *Session means "not signed in".
type Session struct {
	UserID uuid.UUID
	Email  string
}

// FromClaims builds a Session from access-token claims.
func FromClaims(claims jwt.MapClaims) (*Session, error) {
	sub, ok := claims["sub"].(string)
	if !ok {
		return nil, errors.New("missing sub claim")
	}
	userID, err := uuid.Parse(sub)
	if err != nil {
		return nil, err
	}
	email, _ := claims["email"].(string)
	return &Session{UserID: userID, Email: email}, nil
}

// GetSession extracts the caller from the JWT stored in Fiber context locals.
// It returns nil when the request carries no valid token.
func GetSession(c *fiber.Ctx) *Session {
	token, ok := c.Locals("user").(*jwt.Token)
	if !ok || token == nil || !token.Valid {
		return nil
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return nil
	}
	sess, err := FromClaims(claims)
	if err != nil {
		return nil
	}
	return sess
}

// GetUserID extracts the user UUID from JWT claims in context.
func GetUserID(c *fiber.Ctx) (uuid.UUID, error) {
	sess := GetSession(c)
	if sess == nil {
		return uuid.Nil, errors.New("invalid token in context")
	}
	return sess.UserID, nil
}
