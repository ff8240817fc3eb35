package middleware

import (
	"errors"
	"fmt"
	"strings"

	"github.com/coachdesk/onboard/internal/storage"
	"github.com/coachdesk/onboard/internal/types"
	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

// Session is the authenticated caller extracted from a bearer token.
type Session struct {
	UserID  string
	Role    storage.Role
	CoachID string
}

const sessionKey = "session"

// SessionFrom retrieves the authenticated session from the request context.
func SessionFrom(c *fiber.Ctx) (Session, bool) {
	s, ok := c.Locals(sessionKey).(Session)
	return s, ok
}

// AuthClient validates that the request carries a client role token
func AuthClient(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, secret, []string{"client"}, "onboard.authorization.client")
	}
}

// AuthCoach validates that the request carries a coach or admin role token
func AuthCoach(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, secret, []string{"coach", "admin"}, "onboard.authorization.coach")
	}
}

// AuthAdmin validates that the request carries an admin role token
func AuthAdmin(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, secret, []string{"admin"}, "onboard.authorization.admin")
	}
}

// AuthAny validates the token without restricting the role
func AuthAny(secret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return authorize(c, secret, nil, "onboard.authorization")
	}
}

// authorize performs the authorization check
func authorize(c *fiber.Ctx, secret string, roles []string, errorType string) error {
	auth := c.Get(fiber.HeaderAuthorization)
	if !strings.HasPrefix(auth, "Bearer ") {
		return &types.CustomError{
			Code:    fiber.StatusUnauthorized,
			Message: "Authorization bearer token not found",
			Type:    errorType,
		}
	}
	tokenString := strings.TrimPrefix(auth, "Bearer ")

	session, err := ParseToken(tokenString, secret)
	if err != nil {
		code := fiber.StatusForbidden
		if errors.Is(err, jwt.ErrTokenExpired) {
			code = fiber.StatusUnauthorized
		}
		return &types.CustomError{
			Code:    code,
			Message: fmt.Sprintf("Invalid session: %v", err),
			Type:    errorType,
		}
	}

	if len(roles) > 0 && !roleAllowed(session.Role, roles) {
		return &types.CustomError{
			Code:    fiber.StatusForbidden,
			Message: fmt.Sprintf("Role %q not permitted", session.Role),
			Type:    errorType,
		}
	}

	c.Locals(sessionKey, session)
	return c.Next()
}

func roleAllowed(role storage.Role, roles []string) bool {
	for _, r := range roles {
		if string(role) == r {
			return true
		}
	}
	return false
}

// ParseToken validates an HS256 bearer token and extracts the session claims.
func ParseToken(tokenString, secret string) (Session, error) {
	token, err := jwt.Parse(tokenString, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Session{}, err
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return Session{}, fmt.Errorf("invalid token claims")
	}

	sub, _ := claims["sub"].(string)
	if sub == "" {
		return Session{}, fmt.Errorf("missing subject claim")
	}
	role, _ := claims["role"].(string)
	if role == "" {
		return Session{}, fmt.Errorf("missing role claim")
	}
	coachID, _ := claims["coach_id"].(string)

	return Session{UserID: sub, Role: storage.Role(role), CoachID: coachID}, nil
}
