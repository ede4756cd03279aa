package finance

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/application/document"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// EntryInput datos de un asiento nuevo.
type EntryInput struct {
	Kind             entity.EntryKind
	Description      string
	Amount           decimal.Decimal
	CounterpartyID   string
	CounterpartyName string
	Category         string
	DocumentRef      string
	Notes            string
	DueDate          *time.Time // nil = hoy + dueDays
}

// FinancialPoster crea asientos por cobrar/pagar. Como PostingHook genera exactamente un
// asiento por pedido de venta (RECEIVABLE/SALES) y por nota de entrada (PAYABLE/PURCHASES).
type FinancialPoster struct {
	dueDays int
	now     func() time.Time
}

var _ document.PostingHook = (*FinancialPoster)(nil)

// NewFinancialPoster construye el poster; dueDays es el vencimiento por defecto.
func NewFinancialPoster(dueDays int) *FinancialPoster {
	return &FinancialPoster{dueDays: dueDays, now: time.Now}
}

// PostEntry persiste un asiento nuevo en estado PENDING, sin fecha de pago.
func (p *FinancialPoster) PostEntry(ctx context.Context, entries repository.LedgerEntryRepository, in EntryInput) (*entity.LedgerEntry, error) {
	if !in.Kind.Valid() {
		return nil, domain.NewValidation("kind", "debe ser RECEIVABLE o PAYABLE")
	}
	in.Description = strings.TrimSpace(in.Description)
	if in.Description == "" {
		return nil, domain.NewValidation("description", "requerida")
	}
	if in.Amount.IsNegative() {
		return nil, domain.NewValidation("amount", "no puede ser negativo")
	}

	now := p.now()
	due := in.DueDate
	if due == nil {
		d := now.AddDate(0, 0, p.dueDays)
		due = &d
	}
	entry := &entity.LedgerEntry{
		ID:               uuid.New().String(),
		Kind:             in.Kind,
		Description:      in.Description,
		Amount:           in.Amount,
		CounterpartyID:   in.CounterpartyID,
		CounterpartyName: in.CounterpartyName,
		Status:           entity.EntryPending,
		Category:         in.Category,
		DocumentRef:      in.DocumentRef,
		Notes:            in.Notes,
		DueDate:          due,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	if err := entries.Create(ctx, entry); err != nil {
		return nil, fmt.Errorf("crear asiento: %w", err)
	}
	return entry, nil
}

// OnPosted implementa document.PostingHook.
func (p *FinancialPoster) OnPosted(ctx context.Context, repos repository.TxRepos, ev document.PostedEvent) error {
	doc := ev.Document
	var in EntryInput
	switch doc.Kind {
	case entity.DocumentSalesOrder:
		in = EntryInput{
			Kind:        entity.EntryReceivable,
			Description: fmt.Sprintf("Pedido de venta #%s", doc.Number),
			Category:    entity.CategorySales,
		}
	case entity.DocumentInboundNote:
		in = EntryInput{
			Kind:        entity.EntryPayable,
			Description: fmt.Sprintf("Nota de entrada #%s", doc.Number),
			Category:    entity.CategoryPurchases,
		}
	default:
		return nil
	}
	in.Amount = doc.Total
	in.CounterpartyID = doc.CounterpartyID
	in.CounterpartyName = doc.CounterpartyName
	in.DocumentRef = doc.ID
	_, err := p.PostEntry(ctx, repos.Entries, in)
	return err
}
