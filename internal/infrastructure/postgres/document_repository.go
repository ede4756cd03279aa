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

var _ repository.DocumentRepository = (*DocumentRepo)(nil)

const documentColumns = `id, kind, number, counterparty_id, sales_order_id, status, total, notes, due_date, date, created_at, updated_at`

// DocumentRepo documentos comerciales y sus líneas sobre PostgreSQL.
type DocumentRepo struct {
	q Querier
}

// NewDocumentRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDocumentRepository(q Querier) *DocumentRepo {
	return &DocumentRepo{q: q}
}

// Create persiste cabecera y líneas. Fuera de una tx las líneas podrían quedar a medias:
// el Document Poster siempre lo llama dentro de TxRunner.Run.
func (r *DocumentRepo) Create(ctx context.Context, d *entity.Document) error {
	query := `
		INSERT INTO documents (` + documentColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`
	_, err := r.q.Exec(ctx, query,
		d.ID, string(d.Kind), d.Number, d.CounterpartyID, nullIfEmpty(d.SalesOrderID), d.Status,
		d.Total, d.Notes, d.DueDate, d.Date, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert document: %w", err)
	}
	for _, l := range d.Lines {
		_, err := r.q.Exec(ctx, `
			INSERT INTO document_lines (id, document_id, position, product_id, product_name, quantity, unit_price, subtotal)
			VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`,
			l.ID, d.ID, l.Position, l.ProductID, l.ProductName, l.Quantity, l.UnitPrice, l.Subtotal,
		)
		if err != nil {
			return fmt.Errorf("insert document line: %w", err)
		}
	}
	return nil
}

// GetByID obtiene el documento con sus líneas.
func (r *DocumentRepo) GetByID(ctx context.Context, id string) (*entity.Document, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1`, id)
}

// GetForUpdate igual que GetByID pero bloquea la cabecera (SELECT FOR UPDATE).
func (r *DocumentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	return r.get(ctx, `SELECT `+documentColumns+` FROM documents WHERE id = $1 FOR UPDATE`, id)
}

func (r *DocumentRepo) get(ctx context.Context, query, id string) (*entity.Document, error) {
	d, err := scanDocument(r.q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get document: %w", err)
	}
	if err := r.attachLines(ctx, []*entity.Document{d}); err != nil {
		return nil, err
	}
	return d, nil
}

// UpdateStatus cambia solo el estado.
func (r *DocumentRepo) UpdateStatus(ctx context.Context, id, status string) error {
	cmd, err := r.q.Exec(ctx, `UPDATE documents SET status = $2, updated_at = now() WHERE id = $1`, id, status)
	if err != nil {
		return fmt.Errorf("update document status: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// List del más reciente al más antiguo.
func (r *DocumentRepo) List(ctx context.Context, filter repository.DocumentFilter) ([]*entity.Document, error) {
	query := `SELECT ` + documentColumns + ` FROM documents WHERE 1=1`
	args := []any{}
	if filter.Kind != "" {
		args = append(args, string(filter.Kind))
		query += fmt.Sprintf(" AND kind = $%d", len(args))
	}
	if filter.Status != "" {
		args = append(args, filter.Status)
		query += fmt.Sprintf(" AND status = $%d", len(args))
	}
	query += " ORDER BY date DESC, created_at DESC"

	rows, err := r.q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("list documents: %w", err)
	}
	var docs []*entity.Document
	for rows.Next() {
		d, err := scanDocument(rows)
		if err != nil {
			rows.Close()
			return nil, fmt.Errorf("scan document: %w", err)
		}
		docs = append(docs, d)
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return nil, err
	}
	if err := r.attachLines(ctx, docs); err != nil {
		return nil, err
	}
	return docs, nil
}

// Delete elimina el documento; las líneas caen por ON DELETE CASCADE.
func (r *DocumentRepo) Delete(ctx context.Context, id string) error {
	cmd, err := r.q.Exec(ctx, `DELETE FROM documents WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete document: %w", err)
	}
	if cmd.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

// attachLines carga las líneas de todos los documentos en una sola consulta.
func (r *DocumentRepo) attachLines(ctx context.Context, docs []*entity.Document) error {
	if len(docs) == 0 {
		return nil
	}
	ids := make([]string, 0, len(docs))
	byID := make(map[string]*entity.Document, len(docs))
	for _, d := range docs {
		ids = append(ids, d.ID)
		byID[d.ID] = d
		d.Lines = []*entity.LineItem{}
	}
	rows, err := r.q.Query(ctx, `
		SELECT id, document_id, position, product_id, product_name, quantity, unit_price, subtotal
		FROM document_lines WHERE document_id = ANY($1) ORDER BY document_id, position`, ids)
	if err != nil {
		return fmt.Errorf("list document lines: %w", err)
	}
	defer rows.Close()
	for rows.Next() {
		var l entity.LineItem
		if err := rows.Scan(&l.ID, &l.DocumentID, &l.Position, &l.ProductID, &l.ProductName,
			&l.Quantity, &l.UnitPrice, &l.Subtotal); err != nil {
			return fmt.Errorf("scan document line: %w", err)
		}
		if d, ok := byID[l.DocumentID]; ok {
			d.Lines = append(d.Lines, &l)
		}
	}
	return rows.Err()
}

func scanDocument(row pgx.Row) (*entity.Document, error) {
	var d entity.Document
	var kind string
	var salesOrderID *string
	err := row.Scan(
		&d.ID, &kind, &d.Number, &d.CounterpartyID, &salesOrderID, &d.Status,
		&d.Total, &d.Notes, &d.DueDate, &d.Date, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	d.Kind = entity.DocumentKind(kind)
	d.SalesOrderID = derefString(salesOrderID)
	return &d, nil
}
