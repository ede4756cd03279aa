package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateProductRequest entrada para crear un producto.
// OpeningQuantity genera un movimiento de ajuste para que el stock quede respaldado por el historial.
type CreateProductRequest struct {
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Unit             string          `json:"unit,omitempty"`
	CostPrice        decimal.Decimal `json:"cost_price"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	ReorderThreshold decimal.Decimal `json:"reorder_threshold"`
	OpeningQuantity  decimal.Decimal `json:"opening_quantity"`
}

// ProductResponse salida de un producto.
type ProductResponse struct {
	ID               string          `json:"id"`
	Code             string          `json:"code"`
	Name             string          `json:"name"`
	Description      string          `json:"description,omitempty"`
	Unit             string          `json:"unit"`
	CostPrice        decimal.Decimal `json:"cost_price"`
	SalePrice        decimal.Decimal `json:"sale_price"`
	QuantityOnHand   decimal.Decimal `json:"quantity_on_hand"`
	ReorderThreshold decimal.Decimal `json:"reorder_threshold"`
	Lifecycle        string          `json:"lifecycle"`
	CreatedAt        time.Time       `json:"created_at"`
}

// CreatePartyRequest body para POST /api/customers y /api/suppliers.
type CreatePartyRequest struct {
	Name  string `json:"name"`
	TaxID string `json:"tax_id"`
	Email string `json:"email,omitempty"`
	Phone string `json:"phone,omitempty"`
}

// PartyResponse cliente o proveedor en respuestas.
type PartyResponse struct {
	ID        string `json:"id"`
	Name      string `json:"name"`
	TaxID     string `json:"tax_id"`
	Email     string `json:"email,omitempty"`
	Phone     string `json:"phone,omitempty"`
	Lifecycle string `json:"lifecycle"`
}
