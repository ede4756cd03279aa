package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// EntryKind tipo de asiento financiero.
type EntryKind string

const (
	EntryReceivable EntryKind = "RECEIVABLE"
	EntryPayable    EntryKind = "PAYABLE"
)

// EntryStatus estado del asiento.
type EntryStatus string

const (
	EntryPending   EntryStatus = "PENDING"
	EntryPaid      EntryStatus = "PAID"
	EntryCancelled EntryStatus = "CANCELLED"
)

// Categorías de los asientos generados automáticamente.
const (
	CategorySales     = "SALES"
	CategoryPurchases = "PURCHASES"
)

// LedgerEntry cuenta por cobrar o por pagar.
// DocumentRef es informativo: no es una llave foránea.
type LedgerEntry struct {
	ID               string
	Kind             EntryKind
	Description      string
	Amount           decimal.Decimal
	CounterpartyID   string
	CounterpartyName string
	Status           EntryStatus
	Category         string
	DocumentRef      string
	Notes            string
	DueDate          *time.Time
	PaidAt           *time.Time
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// ApplyStatus cambia el estado. PaidAt se fija una sola vez, en la transición a PAID;
// volver a marcar PAID no sobrescribe la fecha existente.
func (e *LedgerEntry) ApplyStatus(status EntryStatus, now time.Time) {
	if status == EntryPaid && e.PaidAt == nil {
		paid := now
		e.PaidAt = &paid
	}
	e.Status = status
	e.UpdatedAt = now
}

// Valid indica si el estado es conocido.
func (s EntryStatus) Valid() bool {
	switch s {
	case EntryPending, EntryPaid, EntryCancelled:
		return true
	}
	return false
}

// Valid indica si el tipo es conocido.
func (k EntryKind) Valid() bool { return k == EntryReceivable || k == EntryPayable }
