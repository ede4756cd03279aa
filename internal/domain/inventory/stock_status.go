package inventory

import "github.com/shopspring/decimal"

// Estados de stock expuestos en la foto de inventario.
const (
	StockStatusCritical = "CRITICAL"
	StockStatusOK       = "OK"
)

// StockStatus CRITICAL cuando la cantidad está por debajo del umbral de reposición.
func StockStatus(quantity, threshold decimal.Decimal) string {
	if quantity.LessThan(threshold) {
		return StockStatusCritical
	}
	return StockStatusOK
}

// SuggestedOrder cantidad sugerida para volver a 1.5× el umbral; nunca negativa.
func SuggestedOrder(quantity, threshold decimal.Decimal) (ideal, suggested decimal.Decimal) {
	ideal = threshold.Mul(decimal.NewFromFloat(1.5))
	suggested = ideal.Sub(quantity)
	if suggested.LessThan(decimal.Zero) {
		suggested = decimal.Zero
	}
	return ideal, suggested
}
