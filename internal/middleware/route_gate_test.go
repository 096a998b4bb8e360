package middleware

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type stubChecker struct {
	has bool
	err error
}

func (s stubChecker) HasWorkspace(context.Context, uuid.UUID) (bool, error) {
	return s.has, s.err
}

func gateApp(checker WorkspaceChecker, signedIn bool) *fiber.App {
	app := fiber.New()
	app.Use(func(c *fiber.Ctx) error {
		if signedIn {
			c.Locals("user", &jwt.Token{
				Valid:  true,
				Claims: jwt.MapClaims{"sub": uuid.NewString(), "email": "a@example.com"},
			})
		}
		return c.Next()
	})
	app.Use(RouteGate(checker))
	app.Get("/*", func(c *fiber.Ctx) error { return c.SendString("page") })
	return app
}

func TestRouteGate(t *testing.T) {
	tests := []struct {
		name     string
		path     string
		signedIn bool
		checker  stubChecker
		status   int
		location string
	}{
		{"anonymous dashboard", "/dashboard", false, stubChecker{}, http.StatusFound, "/login"},
		{"anonymous nested dashboard", "/dashboard/tables", false, stubChecker{}, http.StatusFound, "/login"},
		{"no workspace", "/dashboard", true, stubChecker{has: false}, http.StatusFound, "/onboarding"},
		{"member dashboard", "/dashboard", true, stubChecker{has: true}, http.StatusOK, ""},
		{"signed in login", "/login", true, stubChecker{}, http.StatusFound, "/dashboard"},
		{"signed in signup", "/signup", true, stubChecker{}, http.StatusFound, "/dashboard"},
		{"anonymous login", "/login", false, stubChecker{}, http.StatusOK, ""},
		{"anonymous onboarding", "/onboarding", false, stubChecker{}, http.StatusFound, "/login"},
		{"signed in onboarding", "/onboarding", true, stubChecker{}, http.StatusOK, ""},
		{"unrelated path", "/dashboards", false, stubChecker{}, http.StatusOK, ""},
		{"lookup failure", "/dashboard", true, stubChecker{err: errors.New("db down")}, http.StatusInternalServerError, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			app := gateApp(tt.checker, tt.signedIn)
			resp, err := app.Test(httptest.NewRequest(http.MethodGet, tt.path, nil), -1)
			require.NoError(t, err)
			assert.Equal(t, tt.status, resp.StatusCode)
			assert.Equal(t, tt.location, resp.Header.Get("Location"))
		})
	}
}
