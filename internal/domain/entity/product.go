package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product representa un producto del catálogo.
// QuantityOnHand solo lo modifica el Stock Ledger; es la suma de los deltas de sus movimientos.
type Product struct {
	ID               string
	Code             string // código único
	Name             string
	Description      string
	Unit             string          // unidad de medida (UN por defecto)
	CostPrice        decimal.Decimal // costo, actualizado por notas de entrada
	SalePrice        decimal.Decimal // precio de venta
	QuantityOnHand   decimal.Decimal
	ReorderThreshold decimal.Decimal // stock mínimo
	Lifecycle        Lifecycle
	CreatedAt        time.Time
	UpdatedAt        time.Time
}
