package loot

import (
	"errors"

	"loot-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves synthesized loot tables.
type Handler struct {
	service *Service
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterRoutes registers the loot routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/loot")
	group.Get("/", h.HandleVariants)
	group.Get("/:variant", h.HandleTable)
}

// HandleVariants lists the available variants and synthesis warnings.
func (h *Handler) HandleVariants(c *fiber.Ctx) error {
	res, err := h.service.Build()
	if err != nil {
		return h.fail(c, err)
	}
	warnings := res.Warnings
	if warnings == nil {
		warnings = []string{}
	}
	return c.JSON(fiber.Map{"variants": res.Names(), "warnings": warnings})
}

// HandleTable returns one synthesized table.
func (h *Handler) HandleTable(c *fiber.Ctx) error {
	table, err := h.service.Table(c.Params("variant"))
	if err != nil {
		return h.fail(c, err)
	}
	return c.JSON(table)
}

func (h *Handler) fail(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError
	switch {
	case errors.Is(err, ErrUnknownVariant):
		status = fiber.StatusNotFound
	case errors.Is(err, ErrNoEligibleContent):
		status = fiber.StatusUnprocessableEntity
	default:
		logger.WithRayID(h.service.logger, c).Error("Loot synthesis failed", zap.Error(err))
	}
	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
