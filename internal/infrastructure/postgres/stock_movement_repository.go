package postgres

import (
	"context"
	"fmt"

	"github.com/jackc/pgx/v5"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

var _ repository.StockMovementRepository = (*StockMovementRepo)(nil)

const movementSelect = `
	SELECT m.id, m.product_id, p.name, m.kind, m.delta, m.quantity_before, m.quantity_after,
	       m.document_id, m.reference, m.notes, m.created_at
	FROM stock_movements m
	JOIN products p ON p.id = m.product_id`

// StockMovementRepo historial de movimientos sobre PostgreSQL. Solo inserta; nunca actualiza ni borra.
type StockMovementRepo struct {
	q Querier
}

// NewStockMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockMovementRepository(q Querier) *StockMovementRepo {
	return &StockMovementRepo{q: q}
}

// Create persiste un movimiento.
func (r *StockMovementRepo) Create(ctx context.Context, m *entity.StockMovement) error {
	query := `
		INSERT INTO stock_movements (id, product_id, kind, delta, quantity_before, quantity_after, document_id, reference, notes, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)`
	_, err := r.q.Exec(ctx, query,
		m.ID, m.ProductID, string(m.Kind), m.Delta, m.QuantityBefore, m.QuantityAfter,
		nullIfEmpty(m.DocumentID), m.Reference, m.Notes, m.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock movement: %w", err)
	}
	return nil
}

// List del más reciente al más antiguo; seq desempata movimientos con el mismo created_at.
func (r *StockMovementRepo) List(ctx context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	query := movementSelect
	args := []any{}
	if filter.ProductID != "" {
		args = append(args, filter.ProductID)
		query += fmt.Sprintf(" WHERE m.product_id = $%d", len(args))
	}
	query += " ORDER BY m.seq DESC"
	if filter.Limit > 0 {
		args = append(args, filter.Limit)
		query += fmt.Sprintf(" LIMIT $%d", len(args))
	}
	return r.list(ctx, query, args...)
}

// ListChronological todos los movimientos del producto en orden de inserción.
func (r *StockMovementRepo) ListChronological(ctx context.Context, productID string) ([]*entity.StockMovement, error) {
	return r.list(ctx, movementSelect+` WHERE m.product_id = $1 ORDER BY m.seq ASC`, productID)
}

// CountByDocument cantidad de movimientos generados por un documento.
func (r *StockMovementRepo) CountByDocument(ctx context.Context, documentID string) (int, error) {
	var n int
	err := r.q.QueryRow(ctx, `SELECT COUNT(*) FROM stock_movements WHERE document_id = $1`, documentID).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count movements: %w", err)
	}
	return n, nil
}

func (r *StockMovementRepo) list(ctx context.Context, query string, args ...any) ([]*entity.StockMovement, error) {
	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockMovement
	for rows.Next() {
		m, err := scanMovement(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock movement: %w", err)
		}
		list = append(list, m)
	}
	return list, rows.Err()
}

func scanMovement(row pgx.Row) (*entity.StockMovement, error) {
	var m entity.StockMovement
	var kind string
	var documentID *string
	err := row.Scan(
		&m.ID, &m.ProductID, &m.ProductName, &kind, &m.Delta, &m.QuantityBefore, &m.QuantityAfter,
		&documentID, &m.Reference, &m.Notes, &m.CreatedAt,
	)
	if err != nil {
		return nil, err
	}
	m.Kind = entity.MovementKind(kind)
	m.DocumentID = derefString(documentID)
	return &m, nil
}
