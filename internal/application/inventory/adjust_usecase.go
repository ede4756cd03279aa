package inventory

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
	"github.com/jhoicas/Comercial-api/pkg/logger"
)

const defaultAdjustmentNotes = "Ajuste manual de stock"

// AdjustStockUseCase ajuste manual de stock (conteo físico, mermas, correcciones).
type AdjustStockUseCase struct {
	txRunner repository.TxRunner
	ledger   *StockLedger
	log      *logger.Logger
}

// NewAdjustStockUseCase construye el caso de uso.
func NewAdjustStockUseCase(txRunner repository.TxRunner, ledger *StockLedger, log *logger.Logger) *AdjustStockUseCase {
	return &AdjustStockUseCase{txRunner: txRunner, ledger: ledger, log: log.Component("stock.adjust")}
}

// Adjust fija la cantidad absoluta (NewQuantity) o aplica un delta; registra un movimiento ADJUSTMENT.
// Con NewQuantity el delta se calcula como nueva - actual con la fila bloqueada.
func (uc *AdjustStockUseCase) Adjust(ctx context.Context, in dto.AdjustStockRequest) (*dto.MovementResponse, error) {
	if in.ProductID == "" {
		return nil, domain.NewValidation("product_id", "requerido")
	}
	if (in.NewQuantity == nil) == (in.Delta == nil) {
		return nil, domain.NewValidation("new_quantity", "indicar new_quantity o delta (solo uno)")
	}
	if in.NewQuantity != nil {
		if in.NewQuantity.LessThan(decimal.Zero) {
			return nil, domain.NewValidation("new_quantity", "no puede ser negativa")
		}
		if err := domain.CheckScale("new_quantity", *in.NewQuantity); err != nil {
			return nil, err
		}
	}
	if in.Delta != nil {
		if err := domain.CheckScale("delta", *in.Delta); err != nil {
			return nil, err
		}
	}
	notes := in.Notes
	if notes == "" {
		notes = defaultAdjustmentNotes
	}

	var mov *entity.StockMovement
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		delta := decimal.Zero
		if in.Delta != nil {
			delta = *in.Delta
		} else {
			product, err := repos.Products.GetForUpdate(ctx, in.ProductID)
			if err != nil {
				return err
			}
			if product == nil || !product.Lifecycle.IsActive() {
				return &domain.ProductNotFoundError{ProductID: in.ProductID}
			}
			delta = in.NewQuantity.Sub(product.QuantityOnHand)
		}
		var err error
		mov, err = uc.ledger.PostMovement(ctx, repos, MovementInput{
			ProductID: in.ProductID,
			Kind:      entity.MovementAdjustment,
			Delta:     delta,
			Notes:     notes,
		})
		return err
	})
	if err != nil {
		uc.log.FromContext(ctx).Warn().Err(err).Str("product_id", in.ProductID).Msg("ajuste rechazado")
		return nil, err
	}

	uc.log.FromContext(ctx).Info().
		Str("product_id", mov.ProductID).
		Str("delta", mov.Delta.String()).
		Str("after", mov.QuantityAfter.String()).
		Msg("ajuste de stock registrado")
	resp := ToMovementResponse(mov)
	return &resp, nil
}

// ToMovementResponse mapea un movimiento a su DTO.
func ToMovementResponse(m *entity.StockMovement) dto.MovementResponse {
	return dto.MovementResponse{
		ID:             m.ID,
		ProductID:      m.ProductID,
		ProductName:    m.ProductName,
		Kind:           string(m.Kind),
		Delta:          m.Delta,
		QuantityBefore: m.QuantityBefore,
		QuantityAfter:  m.QuantityAfter,
		DocumentID:     m.DocumentID,
		Reference:      m.Reference,
		Notes:          m.Notes,
		CreatedAt:      m.CreatedAt,
	}
}
