package middleware

import (
	"context"
	"log/slog"
	"strings"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// WorkspaceChecker reports whether a user belongs to at least one workspace.
type WorkspaceChecker interface {
	HasWorkspace(ctx context.Context, userID uuid.UUID) (bool, error)
}

var (
	// Pages that need a session and a workspace.
	appPaths = []string{"/dashboard"}
	// Pages only signed-out visitors should see.
	guestPaths = []string{"/login", "/signup"}
	// Pages that need a session but no workspace.
	sessionPaths = []string{"/onboarding"}
)

// RouteGate redirects page requests: anonymous visitors to /login,
// users without a workspace to /onboarding, signed-in users away from the
// login and sign-up pages. It expects OptionalSession to run first.
func RouteGate(workspaces WorkspaceChecker) fiber.Handler {
	return func(c *fiber.Ctx) error {
		path := c.Path()
		sess := tenant.GetSession(c)

		switch {
		case matches(path, appPaths):
			if sess == nil {
				return c.Redirect("/login", fiber.StatusFound)
			}
			has, err := workspaces.HasWorkspace(c.UserContext(), sess.UserID)
			if err != nil {
				slog.Error("workspace lookup failed", "user_id", sess.UserID, "error", err)
				return fiber.ErrInternalServerError
			}
			if !has {
				return c.Redirect("/onboarding", fiber.StatusFound)
			}
		case matches(path, guestPaths):
			if sess != nil {
				return c.Redirect("/dashboard", fiber.StatusFound)
			}
		case matches(path, sessionPaths):
			if sess == nil {
				return c.Redirect("/login", fiber.StatusFound)
			}
		}
		return c.Next()
	}
}

func matches(path string, prefixes []string) bool {
	for _, p := range prefixes {
		if path == p || strings.HasPrefix(path, p+"/") {
			return true
		}
	}
	return false
}
