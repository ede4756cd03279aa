package inventory

import (
	"fmt"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// ReplayResult resultado de reproducir el historial de un producto desde cero.
type ReplayResult struct {
	Movements  int
	Replayed   decimal.Decimal // suma de deltas
	Violations []string
}

// Consistent true si no se detectó ninguna violación.
func (r ReplayResult) Consistent() bool { return len(r.Violations) == 0 }

// Replay recorre los movimientos en orden cronológico (más antiguo primero) y verifica:
// before/after de cada movimiento cuadran con su delta, cada before encadena con el after
// anterior, y la suma de deltas coincide con la cantidad actual del producto.
func Replay(current decimal.Decimal, movements []*entity.StockMovement) ReplayResult {
	res := ReplayResult{Movements: len(movements), Replayed: decimal.Zero}
	prevAfter := decimal.Zero
	for i, m := range movements {
		if !m.QuantityBefore.Add(m.Delta).Equal(m.QuantityAfter) {
			res.Violations = append(res.Violations,
				fmt.Sprintf("movimiento %s: before %s + delta %s != after %s", m.ID, m.QuantityBefore, m.Delta, m.QuantityAfter))
		}
		if !m.QuantityBefore.Equal(prevAfter) {
			res.Violations = append(res.Violations,
				fmt.Sprintf("movimiento %s (#%d): before %s no encadena con %s", m.ID, i+1, m.QuantityBefore, prevAfter))
		}
		res.Replayed = res.Replayed.Add(m.Delta)
		prevAfter = m.QuantityAfter
	}
	if !res.Replayed.Equal(current) {
		res.Violations = append(res.Violations,
			fmt.Sprintf("suma de deltas %s != stock actual %s", res.Replayed, current))
	}
	return res
}
