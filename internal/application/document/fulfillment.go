package document

import (
	"context"

	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// FulfillmentLinker marca como FULFILLED el pedido de venta que atiende una nota de salida.
type FulfillmentLinker struct {
	// strict: pedido inexistente => DocumentNotFoundError en vez de no-op.
	strict bool
}

// NewFulfillmentLinker construye el linker.
func NewFulfillmentLinker(strict bool) *FulfillmentLinker {
	return &FulfillmentLinker{strict: strict}
}

// LinkOutbound fija el pedido vinculado en FULFILLED sin mirar su estado actual
// (volver a cumplir un pedido cumplido o cancelado sobrescribe el estado).
// Sin pedido vinculado no hace nada.
func (l *FulfillmentLinker) LinkOutbound(ctx context.Context, repos repository.TxRepos, note *entity.Document) error {
	if note == nil || note.SalesOrderID == "" {
		return nil
	}
	order, err := repos.Documents.GetForUpdate(ctx, note.SalesOrderID)
	if err != nil {
		return err
	}
	if order == nil || order.Kind != entity.DocumentSalesOrder {
		if l.strict {
			return domain.NewDocumentNotFound(string(entity.DocumentSalesOrder), note.SalesOrderID)
		}
		return nil
	}
	return repos.Documents.UpdateStatus(ctx, order.ID, entity.OrderStatusFulfilled)
}
