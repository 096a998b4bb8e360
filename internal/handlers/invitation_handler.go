package handlers

import (
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

type InvitationHandler struct {
	invitations *services.InvitationService
}

func NewInvitationHandler(invitations *services.InvitationService) *InvitationHandler {
	return &InvitationHandler{invitations: invitations}
}

// Create invites an email address to a workspace.
// @Summary Invite member
// @Tags Invitations
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param body body dto.CreateInvitationRequest true "Invitation"
// @Success 201 {object} dto.Result{data=dto.InvitationResponse}
// @Failure 403 {object} dto.Result
// @Router /workspaces/{id}/invitations [post]
func (h *InvitationHandler) Create(c *fiber.Ctx) error {
	wsID, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.CreateInvitationRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	inv, err := h.invitations.Invite(c.UserContext(), tenant.GetSession(c), wsID, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, inv)
}

func (h *InvitationHandler) List(c *fiber.Ctx) error {
	wsID, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	list, err := h.invitations.List(c.UserContext(), tenant.GetSession(c), wsID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, list)
}

func (h *InvitationHandler) Revoke(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.invitations.Revoke(c.UserContext(), tenant.GetSession(c), id); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"id": id})
}

// Preview is public: anyone holding the token may see who it is for.
// @Summary Preview invitation
// @Tags Invitations
// @Produce json
// @Param token path string true "Invitation token"
// @Success 200 {object} dto.Result{data=dto.InvitationPreview}
// @Failure 404 {object} dto.Result
// @Router /invitations/{token}/preview [get]
func (h *InvitationHandler) Preview(c *fiber.Ctx) error {
	preview, err := h.invitations.Preview(c.UserContext(), c.Params("token"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, preview)
}

// Accept joins the caller to the invitation's workspace.
// @Summary Accept invitation
// @Tags Invitations
// @Produce json
// @Security BearerAuth
// @Param token path string true "Invitation token"
// @Success 200 {object} dto.Result{data=dto.AcceptInvitationResponse}
// @Failure 403 {object} dto.Result
// @Failure 404 {object} dto.Result
// @Router /invitations/{token}/accept [post]
func (h *InvitationHandler) Accept(c *fiber.Ctx) error {
	member, err := h.invitations.Accept(c.UserContext(), tenant.GetSession(c), c.Params("token"))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, dto.AcceptInvitationResponse{
		OrganizationID: member.OrganizationID,
		Role:           member.Role,
	})
}
