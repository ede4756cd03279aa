package inventory

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// MovementInput solicitud de movimiento para el Stock Ledger.
// Delta es positivo en INBOUND, negativo en OUTBOUND y de cualquier signo en ADJUSTMENT.
type MovementInput struct {
	ProductID  string
	Kind       entity.MovementKind
	Delta      decimal.Decimal
	DocumentID string
	Reference  string
	Notes      string
}

// StockLedger única autoridad que modifica la cantidad en stock de un producto.
// Cada movimiento: bloquea la fila del producto (SELECT FOR UPDATE), valida, actualiza la
// cantidad y agrega el registro inmutable con la foto antes/después. Debe llamarse dentro de
// una transacción (repos de TxRunner.Run); si falla, la transacción completa hace rollback.
type StockLedger struct {
	now func() time.Time
}

// NewStockLedger construye el ledger.
func NewStockLedger() *StockLedger {
	return &StockLedger{now: time.Now}
}

// PostMovement aplica el movimiento y devuelve el registro creado.
// Errores: ProductNotFoundError (inexistente o retirado), InsufficientStockError (OUTBOUND que deja stock negativo),
// ValidationError (tipo desconocido o signo incoherente). Ante error no hay efecto alguno.
func (l *StockLedger) PostMovement(ctx context.Context, repos repository.TxRepos, in MovementInput) (*entity.StockMovement, error) {
	if err := validateMovement(in); err != nil {
		return nil, err
	}

	// Bloquea la fila del producto para serializar lecturas-escrituras concurrentes
	product, err := repos.Products.GetForUpdate(ctx, in.ProductID)
	if err != nil {
		return nil, err
	}
	// Un producto retirado conserva su historial pero no admite movimientos nuevos
	if product == nil || !product.Lifecycle.IsActive() {
		return nil, &domain.ProductNotFoundError{ProductID: in.ProductID}
	}

	before := product.QuantityOnHand
	after := before.Add(in.Delta)
	if in.Kind == entity.MovementOutbound && after.LessThan(decimal.Zero) {
		return nil, &domain.InsufficientStockError{
			ProductID:   product.ID,
			ProductName: product.Name,
			Requested:   in.Delta.Neg(),
			Available:   before,
		}
	}

	if err := repos.Products.UpdateQuantity(ctx, product.ID, after); err != nil {
		return nil, err
	}
	product.QuantityOnHand = after

	mov := &entity.StockMovement{
		ID:             uuid.New().String(),
		ProductID:      product.ID,
		ProductName:    product.Name,
		Kind:           in.Kind,
		Delta:          in.Delta,
		QuantityBefore: before,
		QuantityAfter:  after,
		DocumentID:     in.DocumentID,
		Reference:      in.Reference,
		Notes:          in.Notes,
		CreatedAt:      l.now(),
	}
	if err := repos.Movements.Create(ctx, mov); err != nil {
		return nil, err
	}
	return mov, nil
}

func validateMovement(in MovementInput) error {
	if in.ProductID == "" {
		return domain.NewValidation("product_id", "requerido")
	}
	switch in.Kind {
	case entity.MovementInbound:
		if !in.Delta.GreaterThan(decimal.Zero) {
			return domain.NewValidation("quantity", "una entrada debe ser positiva")
		}
	case entity.MovementOutbound:
		if !in.Delta.LessThan(decimal.Zero) {
			return domain.NewValidation("quantity", "una salida debe ser negativa")
		}
	case entity.MovementAdjustment:
	default:
		return domain.NewValidation("kind", "tipo de movimiento desconocido")
	}
	return domain.CheckScale("quantity", in.Delta)
}
