package handlers

import (
	"time"

	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/database"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/dto"
	"github.com/ahmetcoskunkizilkaya/nocodedb-backend/internal/services"
	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

type HealthHandler struct {
	db *gorm.DB
}

func NewHealthHandler(db *gorm.DB) *HealthHandler {
	return &HealthHandler{db: db}
}

// Check reports process and store health.
// @Summary Health check
// @Tags Meta
// @Produce json
// @Success 200 {object} dto.Result{data=dto.HealthResponse}
// @Router /health [get]
func (h *HealthHandler) Check(c *fiber.Ctx) error {
	dbStatus := "ok"
	if err := database.Ping(h.db); err != nil {
		dbStatus = "unhealthy"
	}

	return ok(c, fiber.StatusOK, dto.HealthResponse{
		Status:    "ok",
		Timestamp: time.Now().UTC().Format(time.RFC3339),
		DB:        dbStatus,
	})
}

// Palette lists the named project colours.
// @Summary Project colour palette
// @Tags Meta
// @Produce json
// @Success 200 {object} dto.Result{data=[]dto.PaletteColor}
// @Router /palette [get]
func Palette(c *fiber.Ctx) error {
	return ok(c, fiber.StatusOK, services.Palette)
}
