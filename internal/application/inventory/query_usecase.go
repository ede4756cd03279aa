package inventory

import (
	"context"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/domain"
	dominv "github.com/jhoicas/Comercial-api/internal/domain/inventory"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// StockQueryUseCase ruta de lectura del Stock Ledger.
type StockQueryUseCase struct {
	repos        repository.TxRepos
	historyLimit int
}

// NewStockQueryUseCase construye el caso de uso. historyLimit es el tope del historial
// cuando no se filtra por producto.
func NewStockQueryUseCase(repos repository.TxRepos, historyLimit int) *StockQueryUseCase {
	if historyLimit <= 0 {
		historyLimit = 100
	}
	return &StockQueryUseCase{repos: repos, historyLimit: historyLimit}
}

// Snapshot foto de stock de los productos activos con su estado CRITICAL/OK.
func (uc *StockQueryUseCase) Snapshot(ctx context.Context) ([]dto.StockLevelResponse, error) {
	products, err := uc.repos.Products.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.StockLevelResponse, 0, len(products))
	for _, p := range products {
		out = append(out, dto.StockLevelResponse{
			ProductID:        p.ID,
			Code:             p.Code,
			Name:             p.Name,
			Unit:             p.Unit,
			QuantityOnHand:   p.QuantityOnHand,
			ReorderThreshold: p.ReorderThreshold,
			Status:           dominv.StockStatus(p.QuantityOnHand, p.ReorderThreshold),
		})
	}
	return out, nil
}

// Movements historial del más reciente al más antiguo. Sin productID se aplica el tope
// por defecto; limit > 0 lo sobrescribe en ambos casos.
func (uc *StockQueryUseCase) Movements(ctx context.Context, productID string, limit int) ([]dto.MovementResponse, error) {
	if limit <= 0 && productID == "" {
		limit = uc.historyLimit
	}
	movs, err := uc.repos.Movements.List(ctx, repository.MovementFilter{ProductID: productID, Limit: limit})
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementResponse, 0, len(movs))
	for _, m := range movs {
		out = append(out, ToMovementResponse(m))
	}
	return out, nil
}

// VerifyHistory reproduce el historial del producto desde cero y verifica la conservación.
func (uc *StockQueryUseCase) VerifyHistory(ctx context.Context, productID string) (*dto.HistoryCheckResponse, error) {
	product, err := uc.repos.Products.GetByID(ctx, productID)
	if err != nil {
		return nil, err
	}
	if product == nil {
		return nil, &domain.ProductNotFoundError{ProductID: productID}
	}
	movs, err := uc.repos.Movements.ListChronological(ctx, productID)
	if err != nil {
		return nil, err
	}
	res := dominv.Replay(product.QuantityOnHand, movs)
	return &dto.HistoryCheckResponse{
		ProductID:      product.ID,
		QuantityOnHand: product.QuantityOnHand,
		Replayed:       res.Replayed,
		Movements:      res.Movements,
		Consistent:     res.Consistent(),
		Violations:     res.Violations,
	}, nil
}
