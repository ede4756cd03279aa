package finance

import (
	"context"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
	"github.com/jhoicas/Comercial-api/pkg/logger"
)

// LedgerUseCase asientos manuales, cambios de estado y resumen financiero.
type LedgerUseCase struct {
	txRunner  repository.TxRunner
	entries   repository.LedgerEntryRepository
	customers repository.CustomerRepository
	suppliers repository.SupplierRepository
	poster    *FinancialPoster
	log       *logger.Logger
}

// NewLedgerUseCase construye el caso de uso.
func NewLedgerUseCase(
	txRunner repository.TxRunner,
	entries repository.LedgerEntryRepository,
	customers repository.CustomerRepository,
	suppliers repository.SupplierRepository,
	poster *FinancialPoster,
	log *logger.Logger,
) *LedgerUseCase {
	return &LedgerUseCase{
		txRunner:  txRunner,
		entries:   entries,
		customers: customers,
		suppliers: suppliers,
		poster:    poster,
		log:       log.Component("finance"),
	}
}

// Create registra un asiento manual. La contraparte es opcional; si viene, debe existir
// (cliente para RECEIVABLE, proveedor para PAYABLE).
func (uc *LedgerUseCase) Create(ctx context.Context, in dto.CreateEntryRequest) (*dto.EntryResponse, error) {
	kind := entity.EntryKind(strings.ToUpper(in.Kind))
	if !kind.Valid() {
		return nil, domain.NewValidation("kind", "debe ser RECEIVABLE o PAYABLE")
	}
	// Los asientos generados por documentos heredan el total con 8 decimales; los manuales no.
	if err := domain.CheckScale("amount", in.Amount); err != nil {
		return nil, err
	}
	dueDate, err := dto.ParseDate("due_date", in.DueDate)
	if err != nil {
		return nil, err
	}
	name, err := uc.counterpartyName(ctx, kind, in.CounterpartyID)
	if err != nil {
		return nil, err
	}
	entry, err := uc.poster.PostEntry(ctx, uc.entries, EntryInput{
		Kind:             kind,
		Description:      in.Description,
		Amount:           in.Amount,
		CounterpartyID:   in.CounterpartyID,
		CounterpartyName: name,
		Category:         in.Category,
		Notes:            in.Notes,
		DueDate:          dueDate,
	})
	if err != nil {
		return nil, err
	}
	return toEntryResponse(entry), nil
}

// Get obtiene un asiento por ID.
func (uc *LedgerUseCase) Get(ctx context.Context, id string) (*dto.EntryResponse, error) {
	e, err := uc.entries.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if e == nil {
		return nil, domain.ErrNotFound
	}
	return toEntryResponse(e), nil
}

// List filtra por tipo y estado (vacío = todos); orden por vencimiento descendente.
func (uc *LedgerUseCase) List(ctx context.Context, kind, status string) ([]dto.EntryResponse, error) {
	filter := repository.EntryFilter{
		Kind:   entity.EntryKind(strings.ToUpper(kind)),
		Status: entity.EntryStatus(strings.ToUpper(status)),
	}
	if filter.Kind != "" && !filter.Kind.Valid() {
		return nil, domain.NewValidation("kind", "tipo desconocido")
	}
	if filter.Status != "" && !filter.Status.Valid() {
		return nil, domain.NewValidation("status", "estado desconocido")
	}
	list, err := uc.entries.List(ctx, filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.EntryResponse, 0, len(list))
	for _, e := range list {
		out = append(out, *toEntryResponse(e))
	}
	return out, nil
}

// UpdateStatus cambia el estado con la fila bloqueada; la fecha de pago se fija solo la primera vez.
func (uc *LedgerUseCase) UpdateStatus(ctx context.Context, id, status string) (*dto.EntryResponse, error) {
	st := entity.EntryStatus(strings.ToUpper(status))
	if !st.Valid() {
		return nil, domain.NewValidation("status", "debe ser PENDING, PAID o CANCELLED")
	}
	var entry *entity.LedgerEntry
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		e, err := repos.Entries.GetForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if e == nil {
			return domain.ErrNotFound
		}
		e.ApplyStatus(st, uc.poster.now())
		if err := repos.Entries.UpdateStatus(ctx, e); err != nil {
			return err
		}
		entry = e
		return nil
	})
	if err != nil {
		return nil, err
	}
	uc.log.FromContext(ctx).Info().Str("id", id).Str("status", string(st)).Msg("estado de asiento actualizado")
	return toEntryResponse(entry), nil
}

// Delete elimina un asiento.
func (uc *LedgerUseCase) Delete(ctx context.Context, id string) error {
	e, err := uc.entries.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if e == nil {
		return domain.ErrNotFound
	}
	return uc.entries.Delete(ctx, id)
}

// Summary totales por (tipo, estado). Los asientos cancelados no cuentan.
// balance = cobrado - pagado; projected_balance = (pendiente+cobrado) - (pendiente+pagado).
func (uc *LedgerUseCase) Summary(ctx context.Context) (*dto.FinanceSummaryResponse, error) {
	parts, err := uc.entries.SumByPartition(ctx)
	if err != nil {
		return nil, err
	}
	var rec, pay dto.PartitionSummary
	rec.Pending, rec.Paid = decimal.Zero, decimal.Zero
	pay.Pending, pay.Paid = decimal.Zero, decimal.Zero
	for _, p := range parts {
		target := &rec
		if p.Kind == entity.EntryPayable {
			target = &pay
		}
		switch p.Status {
		case entity.EntryPending:
			target.Pending = target.Pending.Add(p.Total)
		case entity.EntryPaid:
			target.Paid = target.Paid.Add(p.Total)
		}
	}
	rec.Total = rec.Pending.Add(rec.Paid)
	pay.Total = pay.Pending.Add(pay.Paid)
	return &dto.FinanceSummaryResponse{
		Receivables:      rec,
		Payables:         pay,
		Balance:          rec.Paid.Sub(pay.Paid),
		ProjectedBalance: rec.Total.Sub(pay.Total),
	}, nil
}

func (uc *LedgerUseCase) counterpartyName(ctx context.Context, kind entity.EntryKind, id string) (string, error) {
	if id == "" {
		return "", nil
	}
	if kind == entity.EntryPayable {
		s, err := uc.suppliers.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		if s == nil {
			return "", domain.NewValidation("counterparty_id", "proveedor no encontrado")
		}
		return s.Name, nil
	}
	c, err := uc.customers.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if c == nil {
		return "", domain.NewValidation("counterparty_id", "cliente no encontrado")
	}
	return c.Name, nil
}

func toEntryResponse(e *entity.LedgerEntry) *dto.EntryResponse {
	return &dto.EntryResponse{
		ID:               e.ID,
		Kind:             string(e.Kind),
		Description:      e.Description,
		Amount:           e.Amount,
		CounterpartyID:   e.CounterpartyID,
		CounterpartyName: e.CounterpartyName,
		Status:           string(e.Status),
		Category:         e.Category,
		DocumentRef:      e.DocumentRef,
		Notes:            e.Notes,
		DueDate:          e.DueDate,
		PaidAt:           e.PaidAt,
		CreatedAt:        e.CreatedAt,
	}
}
