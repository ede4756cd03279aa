package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/application/inventory"
	"github.com/jhoicas/Comercial-api/pkg/logger"
)

// StockHandler ruta de lectura del Stock Ledger, ajustes manuales y reposición.
type StockHandler struct {
	query         *inventory.StockQueryUseCase
	adjust        *inventory.AdjustStockUseCase
	replenishment *inventory.ReplenishmentUseCase
	log           *logger.Logger
}

// NewStockHandler construye el handler.
func NewStockHandler(query *inventory.StockQueryUseCase, adjust *inventory.AdjustStockUseCase, replenishment *inventory.ReplenishmentUseCase, log *logger.Logger) *StockHandler {
	return &StockHandler{query: query, adjust: adjust, replenishment: replenishment, log: log}
}

// Snapshot godoc
// @Summary      Stock actual por producto activo (CRITICAL / OK)
// @Tags         stock
// @Produce      json
// @Success      200  {object}  dto.ListResponse[dto.StockLevelResponse]
// @Router       /api/stock [get]
func (h *StockHandler) Snapshot(c *fiber.Ctx) error {
	list, err := h.query.Snapshot(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.NewList(list))
}

// Movements godoc
// @Summary      Historial de movimientos (más reciente primero)
// @Tags         stock
// @Produce      json
// @Param        product_id  query  string  false  "Filtrar por producto"
// @Param        limit       query  int     false  "Tope (100 por defecto sin product_id)"
// @Success      200  {object}  dto.ListResponse[dto.MovementResponse]
// @Router       /api/stock/movements [get]
func (h *StockHandler) Movements(c *fiber.Ctx) error {
	list, err := h.query.Movements(c.UserContext(), c.Query("product_id"), c.QueryInt("limit", 0))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.NewList(list))
}

// Adjust godoc
// @Summary      Ajuste manual de stock (cantidad absoluta o delta)
// @Tags         stock
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AdjustStockRequest  true  "product_id + new_quantity | delta"
// @Success      201  {object}  dto.MovementResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/adjustments [post]
func (h *StockHandler) Adjust(c *fiber.Ctx) error {
	var in dto.AdjustStockRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.adjust.Adjust(c.UserContext(), in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// GetReplenishmentList godoc
// @Summary      Lista de reposición
// @Description  Productos bajo su umbral con la cantidad sugerida de pedido, del más urgente al menos.
// @Tags         stock
// @Produce      json
// @Success      200  {array}   dto.ReplenishmentSuggestionDTO
// @Router       /api/stock/replenishment-list [get]
func (h *StockHandler) GetReplenishmentList(c *fiber.Ctx) error {
	list, err := h.replenishment.GenerateReplenishmentList(c.UserContext())
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(fiber.Map{
		"total":          len(list),
		"replenishments": list,
	})
}

// VerifyHistory godoc
// @Summary      Reproducir el historial de un producto y verificar la conservación
// @Tags         stock
// @Produce      json
// @Success      200  {object}  dto.HistoryCheckResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/products/{id}/verify [get]
func (h *StockHandler) VerifyHistory(c *fiber.Ctx) error {
	out, err := h.query.VerifyHistory(c.UserContext(), c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}
