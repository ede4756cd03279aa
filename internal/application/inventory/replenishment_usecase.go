package inventory

import (
	"context"
	"sort"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	dominv "github.com/jhoicas/Comercial-api/internal/domain/inventory"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// ReplenishmentUseCase genera la lista de reposición: productos activos bajo su umbral
// con la cantidad sugerida de pedido.
type ReplenishmentUseCase struct {
	products repository.ProductRepository
}

// NewReplenishmentUseCase construye el caso de uso de reposición.
func NewReplenishmentUseCase(products repository.ProductRepository) *ReplenishmentUseCase {
	return &ReplenishmentUseCase{products: products}
}

// GenerateReplenishmentList ordena por mayor déficit relativo al umbral y asigna prioridad (1 = más urgente).
func (uc *ReplenishmentUseCase) GenerateReplenishmentList(ctx context.Context) ([]dto.ReplenishmentSuggestionDTO, error) {
	products, err := uc.products.ListActive(ctx)
	if err != nil {
		return nil, err
	}

	suggestions := make([]dto.ReplenishmentSuggestionDTO, 0)
	for _, p := range products {
		if dominv.StockStatus(p.QuantityOnHand, p.ReorderThreshold) != dominv.StockStatusCritical {
			continue
		}
		ideal, qty := dominv.SuggestedOrder(p.QuantityOnHand, p.ReorderThreshold)
		suggestions = append(suggestions, dto.ReplenishmentSuggestionDTO{
			ProductID:          p.ID,
			Code:               p.Code,
			ProductName:        p.Name,
			CurrentStock:       p.QuantityOnHand,
			ReorderThreshold:   p.ReorderThreshold,
			IdealStock:         ideal,
			SuggestedOrderQty:  qty,
			UnitCost:           p.CostPrice,
			EstimatedOrderCost: qty.Mul(p.CostPrice),
		})
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		a, b := suggestions[i], suggestions[j]
		// Déficit relativo: (umbral - stock) / umbral; el umbral es > 0 porque el producto está en CRITICAL
		// salvo stock negativo con umbral 0, que queda primero.
		if a.ReorderThreshold.IsZero() || b.ReorderThreshold.IsZero() {
			return a.ReorderThreshold.IsZero() && !b.ReorderThreshold.IsZero()
		}
		relA := a.ReorderThreshold.Sub(a.CurrentStock).Div(a.ReorderThreshold)
		relB := b.ReorderThreshold.Sub(b.CurrentStock).Div(b.ReorderThreshold)
		if !relA.Equal(relB) {
			return relA.GreaterThan(relB)
		}
		return a.SuggestedOrderQty.GreaterThan(b.SuggestedOrderQty)
	})

	for i := range suggestions {
		suggestions[i].Priority = i + 1
	}
	return suggestions, nil
}
