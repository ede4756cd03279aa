package repository

import (
	"context"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// EntryFilter filtro del listado de asientos.
type EntryFilter struct {
	Kind   entity.EntryKind
	Status entity.EntryStatus
}

// PartitionTotal suma de montos de una partición (tipo, estado).
type PartitionTotal struct {
	Kind   entity.EntryKind
	Status entity.EntryStatus
	Total  decimal.Decimal
}

//go:generate mockgen -source=ledger_entry_repository.go -destination=ledger_entry_repository_mock.go -package=repository

// LedgerEntryRepository puerto de persistencia del libro de cuentas por cobrar/pagar.
type LedgerEntryRepository interface {
	Create(ctx context.Context, entry *entity.LedgerEntry) error
	GetByID(ctx context.Context, id string) (*entity.LedgerEntry, error)
	GetForUpdate(ctx context.Context, id string) (*entity.LedgerEntry, error)
	// UpdateStatus persiste Status, PaidAt y UpdatedAt del asiento.
	UpdateStatus(ctx context.Context, entry *entity.LedgerEntry) error
	List(ctx context.Context, filter EntryFilter) ([]*entity.LedgerEntry, error)
	Delete(ctx context.Context, id string) error
	// SumByPartition agrupa por (tipo, estado); las particiones vacías no aparecen.
	SumByPartition(ctx context.Context) ([]PartitionTotal, error)
}
