package dto

import (
	"time"

	"github.com/shopspring/decimal"
)

// CreateEntryRequest body para POST /api/finance/entries (asiento manual).
type CreateEntryRequest struct {
	Kind           string          `json:"kind"` // RECEIVABLE | PAYABLE
	Description    string          `json:"description"`
	Amount         decimal.Decimal `json:"amount"`
	CounterpartyID string          `json:"counterparty_id,omitempty"`
	Category       string          `json:"category,omitempty"`
	DueDate        string          `json:"due_date,omitempty"`
	Notes          string          `json:"notes,omitempty"`
}

// EntryResponse asiento financiero.
type EntryResponse struct {
	ID               string          `json:"id"`
	Kind             string          `json:"kind"`
	Description      string          `json:"description"`
	Amount           decimal.Decimal `json:"amount"`
	CounterpartyID   string          `json:"counterparty_id,omitempty"`
	CounterpartyName string          `json:"counterparty_name,omitempty"`
	Status           string          `json:"status"`
	Category         string          `json:"category,omitempty"`
	DocumentRef      string          `json:"document_ref,omitempty"`
	Notes            string          `json:"notes,omitempty"`
	DueDate          *time.Time      `json:"due_date,omitempty"`
	PaidAt           *time.Time      `json:"paid_at,omitempty"`
	CreatedAt        time.Time       `json:"created_at"`
}

// PartitionSummary totales pendientes/pagados de un tipo de asiento.
type PartitionSummary struct {
	Pending decimal.Decimal `json:"pending"`
	Paid    decimal.Decimal `json:"paid"`
	Total   decimal.Decimal `json:"total"`
}

// FinanceSummaryResponse resumen financiero.
// Balance = cobrado - pagado; ProjectedBalance = (pendiente+cobrado) - (pendiente+pagado).
type FinanceSummaryResponse struct {
	Receivables      PartitionSummary `json:"receivables"`
	Payables         PartitionSummary `json:"payables"`
	Balance          decimal.Decimal  `json:"balance"`
	ProjectedBalance decimal.Decimal  `json:"projected_balance"`
}
