package document

import (
	"context"
	"fmt"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
	"github.com/jhoicas/Comercial-api/pkg/logger"
)

// UseCase consultas, cambios de estado y borrado de documentos ya contabilizados.
type UseCase struct {
	txRunner repository.TxRunner
	repos    repository.TxRepos
	log      *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner repository.TxRunner, repos repository.TxRepos, log *logger.Logger) *UseCase {
	return &UseCase{txRunner: txRunner, repos: repos, log: log.Component("document")}
}

// Get obtiene un documento con sus líneas; kind vacío acepta cualquier tipo.
func (uc *UseCase) Get(ctx context.Context, kind entity.DocumentKind, id string) (*dto.DocumentResponse, error) {
	doc, err := uc.load(ctx, kind, id)
	if err != nil {
		return nil, err
	}
	return ToResponse(doc), nil
}

// List lista documentos de un tipo, opcionalmente filtrados por estado.
func (uc *UseCase) List(ctx context.Context, kind entity.DocumentKind, status string) ([]dto.DocumentResponse, error) {
	docs, err := uc.repos.Documents.List(ctx, repository.DocumentFilter{Kind: kind, Status: status})
	if err != nil {
		return nil, err
	}
	out := make([]dto.DocumentResponse, 0, len(docs))
	for _, d := range docs {
		d.CounterpartyName = counterpartyName(ctx, uc.repos, d)
		out = append(out, *ToResponse(d))
	}
	return out, nil
}

// UpdateStatus cambios de estado externos:
// cotización PENDING -> APPROVED | REJECTED; pedido OPEN -> CANCELLED.
// FULFILLED solo lo asigna el Fulfillment Linker.
func (uc *UseCase) UpdateStatus(ctx context.Context, kind entity.DocumentKind, id, status string) (*dto.DocumentResponse, error) {
	var doc *entity.Document
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		d, err := repos.Documents.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if d == nil || (kind != "" && d.Kind != kind) {
			return domain.NewDocumentNotFound(string(kind), id)
		}
		if err := checkTransition(d, status); err != nil {
			return err
		}
		if err := repos.Documents.UpdateStatus(ctx, d.ID, status); err != nil {
			return err
		}
		d.Status = status
		doc = d
		return nil
	})
	if err != nil {
		return nil, err
	}
	doc.CounterpartyName = counterpartyName(ctx, uc.repos, doc)
	uc.log.FromContext(ctx).Info().Str("id", doc.ID).Str("status", status).Msg("estado de documento actualizado")
	return ToResponse(doc), nil
}

func checkTransition(d *entity.Document, status string) error {
	switch d.Kind {
	case entity.DocumentQuote:
		if status != entity.QuoteStatusApproved && status != entity.QuoteStatusRejected {
			return domain.NewValidation("status", "estado de cotización inválido")
		}
		if d.Status != entity.QuoteStatusPending {
			return fmt.Errorf("%w: la cotización ya está %s", domain.ErrConflict, d.Status)
		}
	case entity.DocumentSalesOrder:
		if status != entity.OrderStatusCancelled {
			return domain.NewValidation("status", "solo se puede cancelar un pedido")
		}
		if d.Status != entity.OrderStatusOpen {
			return fmt.Errorf("%w: el pedido ya está %s", domain.ErrConflict, d.Status)
		}
	default:
		return domain.NewValidation("status", "las notas no tienen estado")
	}
	return nil
}

// Delete borra un documento. Cotizaciones y pedidos se pueden borrar (sus asientos quedan);
// una nota que ya movió stock no, para no dejar el historial huérfano.
func (uc *UseCase) Delete(ctx context.Context, kind entity.DocumentKind, id string) error {
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		d, err := repos.Documents.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if d == nil || (kind != "" && d.Kind != kind) {
			return domain.NewDocumentNotFound(string(kind), id)
		}
		if d.Kind.MovesStock() {
			n, err := repos.Movements.CountByDocument(ctx, d.ID)
			if err != nil {
				return err
			}
			if n > 0 {
				return fmt.Errorf("%w: el documento %s tiene %d movimientos de stock", domain.ErrConflict, d.Number, n)
			}
		}
		return repos.Documents.Delete(ctx, d.ID)
	})
	if err != nil {
		return err
	}
	uc.log.FromContext(ctx).Info().Str("id", id).Msg("documento eliminado")
	return nil
}

func (uc *UseCase) load(ctx context.Context, kind entity.DocumentKind, id string) (*entity.Document, error) {
	doc, err := uc.repos.Documents.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if doc == nil || (kind != "" && doc.Kind != kind) {
		return nil, domain.NewDocumentNotFound(string(kind), id)
	}
	doc.CounterpartyName = counterpartyName(ctx, uc.repos, doc)
	return doc, nil
}

// counterpartyName nombre del cliente/proveedor; vacío si ya no existe.
func counterpartyName(ctx context.Context, repos repository.TxRepos, doc *entity.Document) string {
	if doc.CounterpartyName != "" {
		return doc.CounterpartyName
	}
	if doc.Kind.CounterpartyIsSupplier() {
		if s, err := repos.Suppliers.GetByID(ctx, doc.CounterpartyID); err == nil && s != nil {
			return s.Name
		}
		return ""
	}
	if c, err := repos.Customers.GetByID(ctx, doc.CounterpartyID); err == nil && c != nil {
		return c.Name
	}
	return ""
}
