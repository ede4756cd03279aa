package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// PostDocumentRequest cuerpo para POST /api/documents/:kind.
// CounterpartyID es el cliente (cotización, pedido, nota de salida) o el proveedor (nota de entrada).
type PostDocumentRequest struct {
	Number         string            `json:"number"`
	CounterpartyID string            `json:"counterparty_id"`
	SalesOrderID   string            `json:"sales_order_id,omitempty"` // solo notas de salida
	DueDate        string            `json:"due_date,omitempty"`       // YYYY-MM-DD o RFC3339
	Notes          string            `json:"notes,omitempty"`
	Items          []LineItemRequest `json:"items"`
}

// LineItemRequest línea del documento. UnitPrice nil = precio de venta del producto
// (obligatorio en notas de entrada).
type LineItemRequest struct {
	ProductID string           `json:"product_id"`
	Quantity  decimal.Decimal  `json:"quantity"`
	UnitPrice *decimal.Decimal `json:"unit_price,omitempty"`
}

// DocumentResponse documento contabilizado con sus líneas en el orden original.
type DocumentResponse struct {
	ID               string             `json:"id"`
	Kind             string             `json:"kind"`
	Number           string             `json:"number"`
	CounterpartyID   string             `json:"counterparty_id"`
	CounterpartyName string             `json:"counterparty_name,omitempty"`
	SalesOrderID     string             `json:"sales_order_id,omitempty"`
	Status           string             `json:"status,omitempty"`
	Total            decimal.Decimal    `json:"total"`
	Notes            string             `json:"notes,omitempty"`
	DueDate          *time.Time         `json:"due_date,omitempty"`
	Date             time.Time          `json:"date"`
	Items            []LineItemResponse `json:"items"`
}

// LineItemResponse línea en la respuesta.
type LineItemResponse struct {
	ID          string          `json:"id"`
	ProductID   string          `json:"product_id"`
	ProductName string          `json:"product_name,omitempty"`
	Quantity    decimal.Decimal `json:"quantity"`
	UnitPrice   decimal.Decimal `json:"unit_price"`
	Subtotal    decimal.Decimal `json:"subtotal"`
}

// UpdateStatusRequest cuerpo para PATCH de estado (cotizaciones, pedidos, asientos).
type UpdateStatusRequest struct {
	Status string `json:"status"`
}
