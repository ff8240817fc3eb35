package helpers

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// TestJWTSecret is the signing secret used by unit and integration tests.
const TestJWTSecret = "test-secret"

// SignToken mints an HS256 bearer token for a test session.
func SignToken(t *testing.T, userID, role, coachID string) string {
	t.Helper()
	return signToken(t, userID, role, coachID, time.Now().Add(time.Hour))
}

// SignExpiredToken mints a token whose expiry is already in the past.
func SignExpiredToken(t *testing.T, userID, role string) string {
	t.Helper()
	return signToken(t, userID, role, "", time.Now().Add(-time.Hour))
}

func signToken(t *testing.T, userID, role, coachID string, expiry time.Time) string {
	t.Helper()
	claims := jwt.MapClaims{
		"sub":  userID,
		"role": role,
		"exp":  expiry.Unix(),
		"iat":  time.Now().Add(-2 * time.Hour).Unix(),
	}
	if coachID != "" {
		claims["coach_id"] = coachID
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(TestJWTSecret))
	if err != nil {
		t.Fatalf("Failed to sign token: %v", err)
	}
	return signed
}
