package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// MovementKind tipo de movimiento de stock.
type MovementKind string

const (
	MovementInbound    MovementKind = "INBOUND"
	MovementOutbound   MovementKind = "OUTBOUND"
	MovementAdjustment MovementKind = "ADJUSTMENT"
)

// Valid indica si el tipo es conocido.
func (k MovementKind) Valid() bool {
	switch k {
	case MovementInbound, MovementOutbound, MovementAdjustment:
		return true
	}
	return false
}

// StockMovement registro inmutable de un cambio de stock. Nunca se actualiza ni se borra.
// Invariante: QuantityAfter = QuantityBefore + Delta.
type StockMovement struct {
	ID             string
	ProductID      string
	ProductName    string // solo lectura, resuelto en consultas
	Kind           MovementKind
	Delta          decimal.Decimal // positivo entrada, negativo salida
	QuantityBefore decimal.Decimal
	QuantityAfter  decimal.Decimal
	DocumentID     string // vacío para ajustes manuales
	Reference      string // número del documento origen
	Notes          string
	CreatedAt      time.Time
}
