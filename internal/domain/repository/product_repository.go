package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// ProductRepository define el puerto de persistencia para Product (DIP).
// GetByID devuelve (nil, nil) si el producto no existe.
type ProductRepository interface {
	Create(ctx context.Context, product *entity.Product) error
	GetByID(ctx context.Context, id string) (*entity.Product, error)
	// GetForUpdate bloquea la fila del producto hasta el fin de la transacción (SELECT FOR UPDATE).
	GetForUpdate(ctx context.Context, id string) (*entity.Product, error)
	// UpdateQuantity uso exclusivo del Stock Ledger.
	UpdateQuantity(ctx context.Context, id string, quantity decimal.Decimal) error
	UpdateCost(ctx context.Context, id string, cost decimal.Decimal) error
	Retire(ctx context.Context, id string) error
	ListActive(ctx context.Context) ([]*entity.Product, error)
}
