package handler

import (
	"go-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
)

type ConfigHandler struct {
	service service.RateConfigService
}

func NewConfigHandler(s service.RateConfigService) *ConfigHandler {
	return &ConfigHandler{service: s}
}

func (h *ConfigHandler) GetShippingRates(c *fiber.Ctx) error {
	orgID, err := getOrgID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	cfg, err := h.service.GetRates(orgID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(cfg)
}

func (h *ConfigHandler) UpdateShippingRates(c *fiber.Ctx) error {
	var req service.UpdateRatesRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	orgID, err := getOrgID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	cfg, err := h.service.UpdateRates(orgID, &req, getActor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"message": "Shipping rates updated", "data": cfg})
}
