package middleware

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/require"
)

const jwtTestSecret = "middleware-test-secret"

func signSessionToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func newJWTApp() *fiber.App {
	app := fiber.New()
	app.Use(JWTProtected(jwtTestSecret))
	app.Get("/protected", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{
			"role":       c.Locals("session_role"),
			"session_id": c.Locals("session_id"),
		})
	})
	return app
}

func TestJWTProtectedBindsSessionLocals(t *testing.T) {
	app := newJWTApp()
	token := signSessionToken(t, jwtTestSecret, jwt.MapClaims{
		"role":       "Team",
		"session_id": "session-42",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})

	req := httptest.NewRequest(http.MethodGet, "/protected", nil)
	req.Header.Set("Authorization", "Bearer "+token)
	resp, err := app.Test(req)
	require.NoError(t, err)
	require.Equal(t, fiber.StatusOK, resp.StatusCode)

	var body struct {
		Role      string `json:"role"`
		SessionID string `json:"session_id"`
	}
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&body))
	require.Equal(t, "team", body.Role, "role claim is normalized to lower case")
	require.Equal(t, "session-42", body.SessionID)
}

func TestJWTProtectedRejectsBadTokens(t *testing.T) {
	expired := signSessionToken(t, jwtTestSecret, jwt.MapClaims{
		"role":       "team",
		"session_id": "session-42",
		"exp":        time.Now().Add(-time.Hour).Unix(),
	})
	wrongKey := signSessionToken(t, "another-secret", jwt.MapClaims{
		"role":       "team",
		"session_id": "session-42",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	missingRole := signSessionToken(t, jwtTestSecret, jwt.MapClaims{
		"session_id": "session-42",
		"exp":        time.Now().Add(time.Hour).Unix(),
	})
	missingSession := signSessionToken(t, jwtTestSecret, jwt.MapClaims{
		"role": "team",
		"exp":  time.Now().Add(time.Hour).Unix(),
	})

	cases := []struct {
		name   string
		header string
	}{
		{name: "no header", header: ""},
		{name: "not bearer", header: "Basic abc123"},
		{name: "empty token", header: "Bearer "},
		{name: "garbage token", header: "Bearer not.a.jwt"},
		{name: "expired token", header: "Bearer " + expired},
		{name: "wrong signing key", header: "Bearer " + wrongKey},
		{name: "missing role claim", header: "Bearer " + missingRole},
		{name: "missing session claim", header: "Bearer " + missingSession},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			app := newJWTApp()
			req := httptest.NewRequest(http.MethodGet, "/protected", nil)
			if tc.header != "" {
				req.Header.Set("Authorization", tc.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			require.Equal(t, fiber.StatusUnauthorized, resp.StatusCode)
		})
	}
}
