package handler

import (
	"time"

	"go-backoffice/internal/repository"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

// ActivityHandler serves the product activity log straight from the
// repository; there is no business logic beyond filtering and pruning.
type ActivityHandler struct {
	repo repository.ActivityRepository
}

func NewActivityHandler(repo repository.ActivityRepository) *ActivityHandler {
	return &ActivityHandler{repo: repo}
}

func (h *ActivityHandler) GetActivities(c *fiber.Ctx) error {
	orgID, err := getOrgID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	var productID *uuid.UUID
	if raw := c.Query("product_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			return c.Status(400).JSON(fiber.Map{"error": "Invalid product ID"})
		}
		productID = &id
	}

	entries, err := h.repo.FindByOrg(orgID, productID, c.QueryInt("limit", 100), c.QueryInt("offset", 0))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(entries)
}

// Prune deletes activity entries older than the given number of days.
// Only the activity log is prunable; credit transactions are permanent.
func (h *ActivityHandler) Prune(c *fiber.Ctx) error {
	orgID, err := getOrgID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	days := c.QueryInt("older_than_days", 90)
	if days < 1 {
		return c.Status(400).JSON(fiber.Map{"error": "older_than_days must be at least 1"})
	}

	cutoff := time.Now().AddDate(0, 0, -days)
	pruned, err := h.repo.PruneBefore(orgID, cutoff)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"message": "Activity log pruned", "deleted": pruned})
}
