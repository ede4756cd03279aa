package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

var _ repository.LedgerEntryRepository = (*LedgerEntryRepo)(nil)

const entryColumns = `id, kind, description, amount, counterparty_id, counterparty_name, status, category, document_ref, notes, due_date, paid_at, created_at, updated_at`

// LedgerEntryRepo cuentas por cobrar/pagar sobre PostgreSQL.
type LedgerEntryRepo struct {
	q Querier
}

// NewLedgerEntryRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLedgerEntryRepository(q Querier) *LedgerEntryRepo {
	return &LedgerEntryRepo{q: q}
}

// Create persiste un asiento.
func (r *LedgerEntryRepo) Create(ctx context.Context, e *entity.LedgerEntry) error {
	query := `
		INSERT INTO ledger_entries (` + entryColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14)`
	_, err := r.q.Exec(ctx, query,
		e.ID, string(e.Kind), e.Description, e.Amount, nullIfEmpty(e.CounterpartyID), e.CounterpartyName,
		string(e.Status), e.Category, nullIfEmpty(e.DocumentRef), e.Notes, e.DueDate, e.PaidAt,
		e.CreatedAt, e.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert ledger entry: %w", err)
	}
	return nil
}

// GetByID obtiene un asiento.
func (r *LedgerEntryRepo) GetByID(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	return r.get(ctx, `SELECT `+entryColumns+` FROM ledger_entries WHERE id = $1`, id)
}

// GetForUpdate obtiene y bloquea el asiento (SELECT FOR UPDATE).
func (r *LedgerEntryRepo) GetForUpdate(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	return r.get(ctx, `SELECT `+entryColumns+` FROM ledger_entries WHERE id = $1 FOR UPDATE`, id)
}

func (r *LedgerEntryRepo) get(ctx context.Context, query, id string) (*entity.LedgerEntry, error) {
	e, err := scanEntry(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get ledger entry: %w", err)
	}
	return e, nil
}

// UpdateStatus persiste estado, fecha de pago y updated_at.
func (r *LedgerEntryRepo) UpdateStatus(ctx context.Context, e *entity.LedgerEntry) error {
	cmd, err := r.q.Exec(ctx,
		`UPDATE ledger_entries SET status = $2, paid_at = $3, updated_at = $4 WHERE id = $1`,
		e.ID, string(e.Status), e.PaidAt, e.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update ledger entry status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List por vencimiento descendente (sin vencimiento al final).
func (r *LedgerEntryRepo) List(ctx context.Context, filter repository.EntryFilter) ([]*entity.LedgerEntry, error) {
	query := `SELECT ` + entryColumns + ` FROM ledger_entries WHERE 1=1`
	args := []any{}
	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, string(filter.Status))
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY due_date DESC NULLS LAST, created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list ledger entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.LedgerEntry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("scan ledger entry: %w", err)
		}
		list = append(list, e)
	}
	return list, rows.Err()
}

// Delete elimina un asiento.
func (r *LedgerEntryRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM ledger_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete ledger entry: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// SumByPartition suma montos agrupando por (kind, status).
func (r *LedgerEntryRepo) SumByPartition(ctx context.Context) ([]repository.PartitionTotal, error) {
	rows, err := r.q.Query(ctx, `
		SELECT kind, status, COALESCE(SUM(amount), 0)
		FROM ledger_entries GROUP BY kind, status`)
	if err != nil {
		return nil, fmt.Errorf("sum ledger entries: %w", err)
	}
	defer rows.Close()
	var out []repository.PartitionTotal
	for rows.Next() {
		var kind, status string
		var pt repository.PartitionTotal
		if err := rows.Scan(&kind, &status, &pt.Total); err != nil {
			return nil, fmt.Errorf("scan partition: %w", err)
		}
		pt.Kind = entity.EntryKind(kind)
		pt.Status = entity.EntryStatus(status)
		out = append(out, pt)
	}
	return out, rows.Err()
}

func scanEntry(row pgx.Row) (*entity.LedgerEntry, error) {
	var e entity.LedgerEntry
	var kind, status string
	var counterpartyID, documentRef *string
	err := row.Scan(
		&e.ID, &kind, &e.Description, &e.Amount, &counterpartyID, &e.CounterpartyName,
		&status, &e.Category, &documentRef, &e.Notes, &e.DueDate, &e.PaidAt, &e.CreatedAt, &e.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	e.Kind = entity.EntryKind(kind)
	e.Status = entity.EntryStatus(status)
	e.CounterpartyID = derefString(counterpartyID)
	e.DocumentRef = derefString(documentRef)
	return &e, nil
}
