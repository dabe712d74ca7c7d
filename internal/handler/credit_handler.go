package handler

import (
	"go-backoffice/internal/service"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
)

type CreditHandler struct {
	service service.CreditService
}

func NewCreditHandler(s service.CreditService) *CreditHandler {
	return &CreditHandler{service: s}
}

func (h *CreditHandler) GetBalance(c *fiber.Ctx) error {
	orgID, err := getOrgID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	balance, err := h.service.GetBalance(orgID)
	if err != nil {
		return fail(c, err)
	}
	return c.JSON(fiber.Map{"credit_balance": balance})
}

func (h *CreditHandler) AddCredits(c *fiber.Ctx) error {
	var req struct {
		Amount      int64  `json:"amount"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	orgID, err := getOrgID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	entry, err := h.service.AddCredits(orgID, req.Amount, req.Description, getActor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Credits added", "data": entry})
}

func (h *CreditHandler) AdjustCredits(c *fiber.Ctx) error {
	var req struct {
		Amount      int64  `json:"amount"`
		Description string `json:"description"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	orgID, err := getOrgID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	entry, err := h.service.AdjustCredits(orgID, req.Amount, req.Description, getActor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Credits adjusted", "data": entry})
}

func (h *CreditHandler) RefundOrder(c *fiber.Ctx) error {
	var req struct {
		OrderID string `json:"order_id"`
	}
	if err := c.BodyParser(&req); err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid JSON"})
	}

	orderID, err := uuid.Parse(req.OrderID)
	if err != nil {
		return c.Status(400).JSON(fiber.Map{"error": "Invalid order ID"})
	}

	orgID, err := getOrgID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	entry, err := h.service.RefundOrder(orgID, orderID, getActor(c))
	if err != nil {
		return fail(c, err)
	}
	return c.Status(201).JSON(fiber.Map{"message": "Order refunded", "data": entry})
}

func (h *CreditHandler) GetTransactions(c *fiber.Ctx) error {
	orgID, err := getOrgID(c)
	if err != nil {
		return c.Status(401).JSON(fiber.Map{"error": "Unauthorized"})
	}

	limit := c.QueryInt("limit", 50)
	offset := c.QueryInt("offset", 0)

	entries, total, err := h.service.ListTransactions(orgID, limit, offset)
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"data": entries, "total": total})
}
