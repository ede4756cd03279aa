package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// AdjustStockRequest body para POST /api/stock/adjustments.
// Exactamente uno de NewQuantity (cantidad absoluta) o Delta.
type AdjustStockRequest struct {
	ProductID   string           `json:"product_id"`
	NewQuantity *decimal.Decimal `json:"new_quantity,omitempty"`
	Delta       *decimal.Decimal `json:"delta,omitempty"`
	Notes       string           `json:"notes,omitempty"`
}

// StockLevelResponse foto de stock de un producto activo.
type StockLevelResponse struct {
	ProductID        string          `json:"product_id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Unit             string          `json:"unit"`
	QuantityOnHand   decimal.Decimal `json:"quantity_on_hand"`
	ReorderThreshold decimal.Decimal `json:"reorder_threshold"`
	Status           string          `json:"status"` // CRITICAL | OK
}

// MovementResponse movimiento de stock.
type MovementResponse struct {
	ID             string          `json:"id"`
	ProductID      string          `json:"product_id"`
	ProductName    string          `json:"product_name,omitempty"`
	Kind           string          `json:"kind"`
	Delta          decimal.Decimal `json:"delta"`
	QuantityBefore decimal.Decimal `json:"quantity_before"`
	QuantityAfter  decimal.Decimal `json:"quantity_after"`
	DocumentID     string          `json:"document_id,omitempty"`
	Reference      string          `json:"reference,omitempty"`
	Notes          string          `json:"notes,omitempty"`
	CreatedAt      time.Time       `json:"created_at"`
}

// HistoryCheckResponse resultado de reproducir el historial de un producto.
type HistoryCheckResponse struct {
	ProductID      string          `json:"product_id"`
	QuantityOnHand decimal.Decimal `json:"quantity_on_hand"`
	Replayed       decimal.Decimal `json:"replayed"`
	Movements      int             `json:"movements"`
	Consistent     bool            `json:"consistent"`
	Violations     []string        `json:"violations,omitempty"`
}

// ReplenishmentSuggestionDTO representa una sugerencia de reposición para un producto
// que se encuentra por debajo de su umbral.
type ReplenishmentSuggestionDTO struct {
	ProductID          string          `json:"product_id"`
	Code               string          `json:"code"`
	ProductName        string          `json:"product_name"`
	CurrentStock       decimal.Decimal `json:"current_stock"`
	ReorderThreshold   decimal.Decimal `json:"reorder_threshold"`
	IdealStock         decimal.Decimal `json:"ideal_stock"`         // umbral * 1.5
	SuggestedOrderQty  decimal.Decimal `json:"suggested_order_qty"` // IdealStock - CurrentStock
	UnitCost           decimal.Decimal `json:"unit_cost"`
	EstimatedOrderCost decimal.Decimal `json:"estimated_order_cost"` // SuggestedOrderQty * UnitCost
	Priority           int             `json:"priority"`             // 1 = más urgente
}
