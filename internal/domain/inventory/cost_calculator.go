package inventory

import "github.com/shopspring/decimal"

// CostPolicy define cómo una entrada actualiza el costo del producto.
type CostPolicy string

const (
	// CostPolicyLast el costo pasa a ser el precio unitario de la última entrada.
	CostPolicyLast CostPolicy = "last"
	// CostPolicyAverage costo promedio ponderado.
	CostPolicyAverage CostPolicy = "average"
)

// ParseCostPolicy devuelve CostPolicyLast para valores desconocidos.
func ParseCostPolicy(s string) CostPolicy {
	if CostPolicy(s) == CostPolicyAverage {
		return CostPolicyAverage
	}
	return CostPolicyLast
}

// NextCost costo resultante tras una entrada de cantEntrada unidades a costoEntrada.
func (p CostPolicy) NextCost(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	if p == CostPolicyAverage {
		return CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada)
	}
	return costoEntrada
}

// CostCalculator implementa la lógica de costo promedio ponderado (servicio de dominio).
// NuevoCosto = ((StockActual * CostoActual) + (CantEntrada * CostoEntrada)) / (StockActual + CantEntrada)
// Con stock previo negativo o nulo el promedio no tiene sentido: se toma el costo de entrada.
func CostCalculator(stockActual, costoActual, cantEntrada, costoEntrada decimal.Decimal) decimal.Decimal {
	if stockActual.LessThanOrEqual(decimal.Zero) {
		return costoEntrada
	}
	sum := stockActual.Add(cantEntrada)
	if sum.LessThanOrEqual(decimal.Zero) {
		return decimal.Zero
	}
	num := stockActual.Mul(costoActual).Add(cantEntrada.Mul(costoEntrada))
	return num.DivRound(sum, 4)
}
