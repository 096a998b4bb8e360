package handlers

import (
	"net/url"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

// PageHandler answers the page routes. Redirects for missing sessions or
// workspaces happen in middleware.RouteGate before these run.
type PageHandler struct {
	workspaces  *services.WorkspaceService
	invitations *services.InvitationService
}

func NewPageHandler(workspaces *services.WorkspaceService, invitations *services.InvitationService) *PageHandler {
	return &PageHandler{workspaces: workspaces, invitations: invitations}
}

func (h *PageHandler) Dashboard(c *fiber.Ctx) error {
	list, err := h.workspaces.ListMine(c.UserContext(), tenant.GetSession(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"page": "dashboard", "workspaces": list})
}

func (h *PageHandler) Login(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, fiber.Map{"page": "login"})
}

// Signup echoes the invitation parameters carried from an invitation link.
func (h *PageHandler) Signup(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, fiber.Map{
		"page":  "signup",
		"email": c.Query("email"),
		"token": c.Query("token"),
	})
}

func (h *PageHandler) Onboarding(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, fiber.Map{"page": "onboarding"})
}

// Invitation sends signed-out visitors to sign-up with the token and email
// attached; signed-in visitors accept on the spot.
func (h *PageHandler) Invitation(c *fiber.Ctx) error {
	token := c.Params("token")
	sess := tenant.GetSession(c)
	if sess == nil {
		q := url.Values{"token": {token}}
		if preview, err := h.invitations.Preview(c.UserContext(), token); err == nil {
			q.Set("email", preview.Email)
		}
		return c.Redirect("/signup?"+q.Encode(), fiber.StatusFound)
	}

	if _, err := h.invitations.Accept(c.UserContext(), sess, token); err != nil {
		return fail(c, err)
	}
	return c.Redirect("/dashboard", fiber.StatusFound)
}
