package handlers

import (
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
)

// EntityHandler serves projects, tables and fields.
type EntityHandler struct {
	projects *services.ProjectService
	tables   *services.TableService
	fields   *services.FieldService
}

func NewEntityHandler(projects *services.ProjectService, tables *services.TableService, fields *services.FieldService) *EntityHandler {
	return &EntityHandler{projects: projects, tables: tables, fields: fields}
}

// CreateProject adds a project to a workspace.
// @Summary Create project
// @Tags Projects
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param body body dto.CreateProjectRequest true "Project"
// @Success 201 {object} dto.Result{data=models.Project}
// @Router /workspaces/{id}/projects [post]
func (h *EntityHandler) CreateProject(c *fiber.Ctx) error {
	wsID, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.CreateProjectRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	project, err := h.projects.Create(c.UserContext(), tenant.GetSession(c), wsID, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, project)
}

func (h *EntityHandler) GetProject(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	project, err := h.projects.Get(c.UserContext(), tenant.GetSession(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, project)
}

func (h *EntityHandler) UpdateProject(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.UpdateProjectRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	project, err := h.projects.Update(c.UserContext(), tenant.GetSession(c), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, project)
}

func (h *EntityHandler) DeleteProject(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.projects.Delete(c.UserContext(), tenant.GetSession(c), id); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"id": id})
}

// CreateTable adds a table to a workspace.
// @Summary Create table
// @Tags Tables
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Workspace ID"
// @Param body body dto.CreateTableRequest true "Table"
// @Success 201 {object} dto.Result{data=models.EntityTable}
// @Failure 404 {object} dto.Result
// @Router /workspaces/{id}/tables [post]
func (h *EntityHandler) CreateTable(c *fiber.Ctx) error {
	wsID, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.CreateTableRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	table, err := h.tables.Create(c.UserContext(), tenant.GetSession(c), wsID, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, table)
}

// GetTable returns a table with its ordered fields.
// @Summary Get table with fields
// @Tags Tables
// @Produce json
// @Security BearerAuth
// @Param id path string true "Table ID"
// @Success 200 {object} dto.Result{data=dto.TableWithFields}
// @Failure 404 {object} dto.Result
// @Router /tables/{id} [get]
func (h *EntityHandler) GetTable(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	table, err := h.tables.GetWithFields(c.UserContext(), tenant.GetSession(c), id)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, table)
}

func (h *EntityHandler) UpdateTable(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.UpdateTableRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	table, err := h.tables.Update(c.UserContext(), tenant.GetSession(c), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, table)
}

func (h *EntityHandler) DeleteTable(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.tables.Delete(c.UserContext(), tenant.GetSession(c), id); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"id": id})
}

// CreateField appends a typed column to a table.
// @Summary Create field
// @Tags Fields
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Table ID"
// @Param body body dto.CreateFieldRequest true "Field"
// @Success 201 {object} dto.Result{data=models.EntityField}
// @Failure 400 {object} dto.Result
// @Router /tables/{id}/fields [post]
func (h *EntityHandler) CreateField(c *fiber.Ctx) error {
	tableID, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.CreateFieldRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	field, err := h.fields.Create(c.UserContext(), tenant.GetSession(c), tableID, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, field)
}

func (h *EntityHandler) UpdateField(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.UpdateFieldRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	field, err := h.fields.Update(c.UserContext(), tenant.GetSession(c), id, &req)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, field)
}

func (h *EntityHandler) DeleteField(c *fiber.Ctx) error {
	id, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	if err := h.fields.Delete(c.UserContext(), tenant.GetSession(c), id); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"id": id})
}
