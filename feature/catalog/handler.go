package catalog

import (
	"errors"

	"loot-manager/core/logger"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// Handler serves read-only catalog views.
type Handler struct {
	service *Service
	logger  *zap.Logger
}

// NewHandler creates a new HTTP handler.
func NewHandler(service *Service, logger *zap.Logger) *Handler {
	return &Handler{service: service, logger: logger}
}

// RegisterRoutes registers the catalog routes.
func (h *Handler) RegisterRoutes(app fiber.Router) {
	group := app.Group("/catalog")
	group.Get("/", h.HandleList)
	group.Get("/diagnostics", h.HandleDiagnostics)
	group.Get("/drift", h.HandleDrift)
	group.Get("/:category", h.HandleList)
}

// HandleList returns the catalog, optionally narrowed to one category.
// With ?stored=true rows come from the database instead of a fresh scan.
func (h *Handler) HandleList(c *fiber.Ctx) error {
	l := logger.WithRayID(h.logger, c)
	category := Category(c.Params("category"))
	if category != "" && !category.Valid() {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "unknown category: " + string(category),
		})
	}

	if c.QueryBool("stored") {
		rows, err := h.service.Stored(c.UserContext(), category)
		if err != nil {
			status := fiber.StatusInternalServerError
			if errors.Is(err, ErrStoreDisabled) {
				status = fiber.StatusServiceUnavailable
			}
			l.Error("Catalog listing failed", zap.Error(err))
			return c.Status(status).JSON(fiber.Map{"error": err.Error()})
		}
		return c.JSON(fiber.Map{"count": len(rows), "rows": rows})
	}

	result, err := h.service.Build()
	if err != nil {
		l.Error("Catalog scan failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	rows := result.Filter(category)
	return c.JSON(fiber.Map{
		"count":       len(rows),
		"diagnostics": result.Diagnostics.Len(),
		"rows":        rows,
	})
}

// HandleDiagnostics returns the diagnostics of a fresh scan.
func (h *Handler) HandleDiagnostics(c *fiber.Ctx) error {
	result, err := h.service.Build()
	if err != nil {
		logger.WithRayID(h.logger, c).Error("Catalog scan failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	lines := result.Diagnostics.Lines()
	if lines == nil {
		lines = []string{}
	}
	return c.JSON(fiber.Map{"count": len(lines), "lines": lines})
}

// HandleDrift returns the rows where the pack and the database disagree.
func (h *Handler) HandleDrift(c *fiber.Ctx) error {
	drifts, err := h.service.Drift(c.UserContext())
	if err != nil {
		status := fiber.StatusInternalServerError
		if errors.Is(err, ErrStoreDisabled) {
			status = fiber.StatusServiceUnavailable
		}
		logger.WithRayID(h.logger, c).Error("Catalog drift failed", zap.Error(err))
		return c.Status(status).JSON(fiber.Map{"error": err.Error()})
	}
	if drifts == nil {
		drifts = []Drift{}
	}
	return c.JSON(fiber.Map{"count": len(drifts), "drift": drifts})
}
