package repository

import (
	"context"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// MovementFilter filtro del historial de movimientos. Limit <= 0 = sin tope.
type MovementFilter struct {
	ProductID string
	Limit     int
}

// StockMovementRepository puerto de persistencia del historial de movimientos (solo inserción).
type StockMovementRepository interface {
	Create(ctx context.Context, movement *entity.StockMovement) error
	// List devuelve los movimientos del más reciente al más antiguo.
	List(ctx context.Context, filter MovementFilter) ([]*entity.StockMovement, error)
	// ListChronological devuelve todos los movimientos de un producto del más antiguo al más reciente.
	ListChronological(ctx context.Context, productID string) ([]*entity.StockMovement, error)
	CountByDocument(ctx context.Context, documentID string) (int, error)
}
