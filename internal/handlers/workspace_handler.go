package handlers

import (
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

type WorkspaceHandler struct {
	workspaces *services.WorkspaceService
	projects   *services.ProjectService
}

func NewWorkspaceHandler(workspaces *services.WorkspaceService, projects *services.ProjectService) *WorkspaceHandler {
	return &WorkspaceHandler{workspaces: workspaces, projects: projects}
}

// Create makes a workspace owned by the caller.
// @Summary Create workspace
// @Tags Workspaces
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param body body dto.CreateWorkspaceRequest true "Workspace"
// @Success 201 {object} dto.Result{data=dto.WorkspaceSummary}
// @Failure 400 {object} dto.Result
// @Router /workspaces [post]
func (h *WorkspaceHandler) Create(c *fiber.Ctx) error {
	var req dto.CreateWorkspaceRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	ws, err := h.workspaces.Create(c.UserContext(), tenant.GetSession(c), &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, ws)
}

// @Summary List my workspaces
// @Tags Workspaces
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.Result{data=[]dto.WorkspaceSummary}
// @Router /workspaces [get]
func (h *WorkspaceHandler) List(c *fiber.Ctx) error {
	list, err := h.workspaces.ListMine(c.UserContext(), tenant.GetSession(c))
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, list)
}

func (h *WorkspaceHandler) Get(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	ws, err := h.workspaces.Get(c.UserContext(), tenant.GetSession(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, ws)
}

func (h *WorkspaceHandler) Delete(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.workspaces.Delete(c.UserContext(), tenant.GetSession(c), id); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"id": id})
}

func (h *WorkspaceHandler) Members(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	members, err := h.workspaces.ListMembers(c.UserContext(), tenant.GetSession(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, members)
}

func (h *WorkspaceHandler) Tables(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	tables, err := h.workspaces.ListTables(c.UserContext(), tenant.GetSession(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, tables)
}

// Hierarchy returns projects with their tables plus project-less tables.
// @Summary Workspace hierarchy
// @Tags Workspaces
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Success 200 {object} dto.Result{data=dto.Hierarchy}
// @Failure 403 {object} dto.Result
// @Router /workspaces/{id}/hierarchy [get]
func (h *WorkspaceHandler) Hierarchy(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	tree, err := h.projects.Hierarchy(c.UserContext(), tenant.GetSession(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, tree)
}
