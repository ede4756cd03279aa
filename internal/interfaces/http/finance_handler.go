package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/application/finance"
	"github.com/jhoicas/Comercial-api/pkg/logger"
)

// FinanceHandler cuentas por cobrar/pagar y resumen.
type FinanceHandler struct {
	uc  *finance.LedgerUseCase
	log *logger.Logger
}

// NewFinanceHandler construye el handler.
func NewFinanceHandler(uc *finance.LedgerUseCase, log *logger.Logger) *FinanceHandler {
	return &FinanceHandler{uc: uc, log: log}
}

// Create godoc
// @Summary      Registrar asiento manual
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateEntryRequest  true  "Asiento"
// @Success      201  {object}  dto.EntryResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/finance/entries [post]
func (h *FinanceHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateEntryRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.Create(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar asientos
// @Tags         finance
// @Produce      json
// @Param        kind    query  string  false  "RECEIVABLE | PAYABLE"
// @Param        status  query  string  false  "PENDING | PAID | CANCELLED"
// @Success      200  {object}  dto.ListResponse[dto.EntryResponse]
// @Router       /api/finance/entries [get]
func (h *FinanceHandler) List(c *fiber.Ctx) error {
	list, err := h.uc.List(c.UserContext(), c.Query("kind"), c.Query("status"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.NewList(list))
}

// GetByID obtiene un asiento.
// GET /api/finance/entries/:id
func (h *FinanceHandler) GetByID(c *fiber.Ctx) error {
	out, err := h.uc.Get(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado del asiento (PAID fija la fecha de pago una sola vez)
// @Tags         finance
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateStatusRequest  true  "Nuevo estado"
// @Success      200  {object}  dto.EntryResponse
// @Router       /api/finance/entries/{id}/status [patch]
func (h *FinanceHandler) UpdateStatus(c *fiber.Ctx) error {
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.uc.UpdateStatus(c.UserContext(), c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete elimina un asiento.
// DELETE /api/finance/entries/:id
func (h *FinanceHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.UserContext(), c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// Summary godoc
// @Summary      Resumen financiero (saldo y saldo proyectado)
// @Tags         finance
// @Produce      json
// @Success      200  {object}  dto.FinanceSummaryResponse
// @Router       /api/finance/summary [get]
func (h *FinanceHandler) Summary(c *fiber.Ctx) error {
	out, err := h.uc.Summary(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
