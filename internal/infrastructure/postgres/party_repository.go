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

var (
	_ repository.CustomerRepository = (*CustomerRepo)(nil)
	_ repository.SupplierRepository = (*SupplierRepo)(nil)
)

const partyColumns = `id, name, tax_id, email, phone, lifecycle, created_at, updated_at`

// partyTable CRUD compartido; table es "customers" o "suppliers".
type partyTable struct {
	q     Querier
	table string
}

func (t partyTable) create(ctx context.Context, args ...any) error {
	query := fmt.Sprintf(`INSERT INTO %s (%s) VALUES ($1, $2, $3, $4, $5, $6, $7, $8)`, t.table, partyColumns)
	if _, err := t.q.Exec(ctx, query, args...); err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("insert %s: %w", t.table, err)
	}
	return nil
}

func (t partyTable) retire(ctx context.Context, id string) error {
	query := fmt.Sprintf(`UPDATE %s SET lifecycle = $2, updated_at = now() WHERE id = $1`, t.table)
	if _, err := t.q.Exec(ctx, query, id, string(entity.LifecycleRetired)); err != nil {
		return fmt.Errorf("retire %s: %w", t.table, err)
	}
	return nil
}

// CustomerRepo clientes sobre PostgreSQL.
type CustomerRepo struct {
	t partyTable
}

// NewCustomerRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCustomerRepository(q Querier) *CustomerRepo {
	return &CustomerRepo{t: partyTable{q: q, table: "customers"}}
}

// Create persiste un cliente; ErrDuplicate si el tax_id ya existe.
func (r *CustomerRepo) Create(ctx context.Context, c *entity.Customer) error {
	return r.t.create(ctx, c.ID, c.Name, c.TaxID, c.Email, c.Phone, string(c.Lifecycle), c.CreatedAt, c.UpdatedAt)
}

// GetByID obtiene un cliente por ID.
func (r *CustomerRepo) GetByID(ctx context.Context, id string) (*entity.Customer, error) {
	var c entity.Customer
	var lifecycle string
	err := r.t.q.QueryRow(ctx, `SELECT `+partyColumns+` FROM customers WHERE id = $1`, id).Scan(
		&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &lifecycle, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get customer: %w", err)
	}
	c.Lifecycle = entity.Lifecycle(lifecycle)
	return &c, nil
}

// ListActive lista los clientes activos por nombre.
func (r *CustomerRepo) ListActive(ctx context.Context) ([]*entity.Customer, error) {
	rows, err := r.t.q.Query(ctx,
		`SELECT `+partyColumns+` FROM customers WHERE lifecycle = $1 ORDER BY name`, string(entity.LifecycleActive))
	if err != nil {
		return nil, fmt.Errorf("list customers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Customer
	for rows.Next() {
		var c entity.Customer
		var lifecycle string
		if err := rows.Scan(&c.ID, &c.Name, &c.TaxID, &c.Email, &c.Phone, &lifecycle, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan customer: %w", err)
		}
		c.Lifecycle = entity.Lifecycle(lifecycle)
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Retire pasa el cliente a RETIRED.
func (r *CustomerRepo) Retire(ctx context.Context, id string) error {
	return r.t.retire(ctx, id)
}

// SupplierRepo proveedores sobre PostgreSQL.
type SupplierRepo struct {
	t partyTable
}

// NewSupplierRepository construye el adaptador. Pasar pool o tx (Querier).
func NewSupplierRepository(q Querier) *SupplierRepo {
	return &SupplierRepo{t: partyTable{q: q, table: "suppliers"}}
}

// Create persiste un proveedor; ErrDuplicate si el tax_id ya existe.
func (r *SupplierRepo) Create(ctx context.Context, s *entity.Supplier) error {
	return r.t.create(ctx, s.ID, s.Name, s.TaxID, s.Email, s.Phone, string(s.Lifecycle), s.CreatedAt, s.UpdatedAt)
}

// GetByID obtiene un proveedor por ID.
func (r *SupplierRepo) GetByID(ctx context.Context, id string) (*entity.Supplier, error) {
	var s entity.Supplier
	var lifecycle string
	err := r.t.q.QueryRow(ctx, `SELECT `+partyColumns+` FROM suppliers WHERE id = $1`, id).Scan(
		&s.ID, &s.Name, &s.TaxID, &s.Email, &s.Phone, &lifecycle, &s.CreatedAt, &s.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get supplier: %w", err)
	}
	s.Lifecycle = entity.Lifecycle(lifecycle)
	return &s, nil
}

// ListActive lista los proveedores activos por nombre.
func (r *SupplierRepo) ListActive(ctx context.Context) ([]*entity.Supplier, error) {
	rows, err := r.t.q.Query(ctx,
		`SELECT `+partyColumns+` FROM suppliers WHERE lifecycle = $1 ORDER BY name`, string(entity.LifecycleActive))
	if err != nil {
		return nil, fmt.Errorf("list suppliers: %w", err)
	}
	defer rows.Close()
	var list []*entity.Supplier
	for rows.Next() {
		var s entity.Supplier
		var lifecycle string
		if err := rows.Scan(&s.ID, &s.Name, &s.TaxID, &s.Email, &s.Phone, &lifecycle, &s.CreatedAt, &s.UpdatedAt); err != nil {
			return nil, fmt.Errorf("scan supplier: %w", err)
		}
		s.Lifecycle = entity.Lifecycle(lifecycle)
		list = append(list, &s)
	}
	return list, rows.Err()
}

// Retire pasa el proveedor a RETIRED.
func (r *SupplierRepo) Retire(ctx context.Context, id string) error {
	return r.t.retire(ctx, id)
}
