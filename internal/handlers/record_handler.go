package handlers

import (
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/services"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/tenant"
	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type RecordHandler struct {
	records *services.RecordService
}

func NewRecordHandler(records *services.RecordService) *RecordHandler {
	return &RecordHandler{records: records}
}

// List pages through a table's records.
// @Summary List records
// @Tags Records
// @Produce json
// @Security BearerAuth
// @Param id path string true "Table ID"
// @Param page query int false "Page (from 1)" default(1)
// @Param page_size query int false "Page size (max 500)" default(50)
// @Success 200 {object} dto.Result{data=dto.RecordPage}
// @Failure 404 {object} dto.Result
// @Router /tables/{id}/records [get]
func (h *RecordHandler) List(c *fiber.Ctx) error {
	tableID, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	page := c.QueryInt("page", 1)
	pageSize := c.QueryInt("page_size", services.DefaultPageSize)

	result, err := h.records.List(c.UserContext(), tenant.GetSession(c), tableID, page, pageSize)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, result)
}

func (h *RecordHandler) Get(c *fiber.Ctx) error {
	tableID, recordID, err := recordIDs(c)
	if err != nil {
		return fail(c, err)
	}
	record, err := h.records.Get(c.UserContext(), tenant.GetSession(c), tableID, recordID)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, record)
}

// Create stores a record. An absent data map is stored as {}.
// @Summary Create record
// @Tags Records
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path string true "Table ID"
// @Param body body dto.RecordRequest false "Record data keyed by field id"
// @Success 201 {object} dto.Result{data=models.EntityRecord}
// @Router /tables/{id}/records [post]
func (h *RecordHandler) Create(c *fiber.Ctx) error {
	tableID, err := paramID(c, "id")
	if err != nil {
		return fail(c, err)
	}
	var req dto.RecordRequest
	if len(c.Body()) > 0 {
		if err := parseBody(c, &req); err != nil {
			return fail(c, err)
		}
	}
	record, err := h.records.Create(c.UserContext(), tenant.GetSession(c), tableID, req.Data)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusCreated, record)
}

// Update replaces a record's data.
func (h *RecordHandler) Update(c *fiber.Ctx) error {
	tableID, recordID, err := recordIDs(c)
	if err != nil {
		return fail(c, err)
	}
	var req dto.RecordRequest
	if err := parseBody(c, &req); err != nil {
		return fail(c, err)
	}
	record, err := h.records.Update(c.UserContext(), tenant.GetSession(c), tableID, recordID, req.Data)
	if err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, record)
}

func (h *RecordHandler) Delete(c *fiber.Ctx) error {
	tableID, recordID, err := recordIDs(c)
	if err != nil {
		return fail(c, err)
	}
	if err := h.records.Delete(c.UserContext(), tenant.GetSession(c), tableID, recordID); err != nil {
		return fail(c, err)
	}
	return ok(c, fiber.StatusOK, fiber.Map{"id": recordID})
}

func recordIDs(c *fiber.Ctx) (tableID, recordID uuid.UUID, err error) {
	tableID, err = paramID(c, "id")
	if err != nil {
		return
	}
	recordID, err = paramID(c, "recordId")
	return
}
