package memory

import (
	"context"
	"sort"
	"time"

	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// ── Productos ──────────────────────────────────────────────────────────────

type productRepo struct{ binding }

func (r *productRepo) Create(_ context.Context, p *entity.Product) error {
	return r.do(func(st *state) error {
		if _, ok := st.products[p.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.products {
			if other.Code == p.Code {
				return domain.ErrDuplicate
			}
		}
		c := *p
		st.products[p.ID] = &c
		return nil
	})
}

func (r *productRepo) GetByID(_ context.Context, id string) (*entity.Product, error) {
	var out *entity.Product
	err := r.do(func(st *state) error {
		if p, ok := st.products[id]; ok {
			c := *p
			out = &c
		}
		return nil
	})
	return out, err
}

// GetForUpdate el lock del store ya serializa la unidad de trabajo.
func (r *productRepo) GetForUpdate(ctx context.Context, id string) (*entity.Product, error) {
	return r.GetByID(ctx, id)
}

func (r *productRepo) UpdateQuantity(_ context.Context, id string, quantity decimal.Decimal) error {
	return r.do(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.QuantityOnHand = quantity
		p.UpdatedAt = time.Now()
		return nil
	})
}

func (r *productRepo) UpdateCost(_ context.Context, id string, cost decimal.Decimal) error {
	return r.do(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.CostPrice = cost
		p.UpdatedAt = time.Now()
		return nil
	})
}

func (r *productRepo) Retire(_ context.Context, id string) error {
	return r.do(func(st *state) error {
		p, ok := st.products[id]
		if !ok {
			return domain.ErrNotFound
		}
		p.Lifecycle = entity.LifecycleRetired
		p.UpdatedAt = time.Now()
		return nil
	})
}

func (r *productRepo) ListActive(_ context.Context) ([]*entity.Product, error) {
	var out []*entity.Product
	err := r.do(func(st *state) error {
		for _, p := range st.products {
			if p.Lifecycle.IsActive() {
				c := *p
				out = append(out, &c)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

// ── Movimientos ────────────────────────────────────────────────────────────

type movementRepo struct{ binding }

func (r *movementRepo) Create(_ context.Context, m *entity.StockMovement) error {
	return r.do(func(st *state) error {
		c := *m
		st.movements = append(st.movements, &c)
		return nil
	})
}

func (r *movementRepo) List(_ context.Context, filter repository.MovementFilter) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.do(func(st *state) error {
		for i := len(st.movements) - 1; i >= 0; i-- {
			m := st.movements[i]
			if filter.ProductID != "" && m.ProductID != filter.ProductID {
				continue
			}
			c := *m
			out = append(out, &c)
			if filter.Limit > 0 && len(out) == filter.Limit {
				break
			}
		}
		return nil
	})
	return out, err
}

func (r *movementRepo) ListChronological(_ context.Context, productID string) ([]*entity.StockMovement, error) {
	var out []*entity.StockMovement
	err := r.do(func(st *state) error {
		for _, m := range st.movements {
			if m.ProductID == productID {
				c := *m
				out = append(out, &c)
			}
		}
		return nil
	})
	return out, err
}

func (r *movementRepo) CountByDocument(_ context.Context, documentID string) (int, error) {
	n := 0
	err := r.do(func(st *state) error {
		for _, m := range st.movements {
			if m.DocumentID == documentID {
				n++
			}
		}
		return nil
	})
	return n, err
}

// ── Documentos ─────────────────────────────────────────────────────────────

type documentRepo struct{ binding }

func (r *documentRepo) Create(_ context.Context, d *entity.Document) error {
	return r.do(func(st *state) error {
		if _, ok := st.documents[d.ID]; ok {
			return domain.ErrDuplicate
		}
		for _, other := range st.documents {
			if other.Number == d.Number {
				return domain.ErrDuplicate
			}
		}
		st.documents[d.ID] = cloneDocument(d)
		st.docOrder = append(st.docOrder, d.ID)
		return nil
	})
}

func (r *documentRepo) GetByID(_ context.Context, id string) (*entity.Document, error) {
	var out *entity.Document
	err := r.do(func(st *state) error {
		if d, ok := st.documents[id]; ok {
			out = cloneDocument(d)
		}
		return nil
	})
	return out, err
}

func (r *documentRepo) GetForUpdate(ctx context.Context, id string) (*entity.Document, error) {
	return r.GetByID(ctx, id)
}

func (r *documentRepo) UpdateStatus(_ context.Context, id, status string) error {
	return r.do(func(st *state) error {
		d, ok := st.documents[id]
		if !ok {
			return domain.ErrNotFound
		}
		d.Status = status
		d.UpdatedAt = time.Now()
		return nil
	})
}

// List del más reciente al más antiguo.
func (r *documentRepo) List(_ context.Context, filter repository.DocumentFilter) ([]*entity.Document, error) {
	var out []*entity.Document
	err := r.do(func(st *state) error {
		for i := len(st.docOrder) - 1; i >= 0; i-- {
			d := st.documents[st.docOrder[i]]
			if filter.Kind != "" && d.Kind != filter.Kind {
				continue
			}
			if filter.Status != "" && d.Status != filter.Status {
				continue
			}
			out = append(out, cloneDocument(d))
		}
		return nil
	})
	return out, err
}

func (r *documentRepo) Delete(_ context.Context, id string) error {
	return r.do(func(st *state) error {
		if _, ok := st.documents[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.documents, id)
		for i, docID := range st.docOrder {
			if docID == id {
				st.docOrder = append(st.docOrder[:i:i], st.docOrder[i+1:]...)
				break
			}
		}
		return nil
	})
}

// ── Asientos ───────────────────────────────────────────────────────────────

type entryRepo struct{ binding }

func (r *entryRepo) Create(_ context.Context, e *entity.LedgerEntry) error {
	return r.do(func(st *state) error {
		if _, ok := st.entries[e.ID]; ok {
			return domain.ErrDuplicate
		}
		c := *e
		st.entries[e.ID] = &c
		return nil
	})
}

func (r *entryRepo) GetByID(_ context.Context, id string) (*entity.LedgerEntry, error) {
	var out *entity.LedgerEntry
	err := r.do(func(st *state) error {
		if e, ok := st.entries[id]; ok {
			c := *e
			out = &c
		}
		return nil
	})
	return out, err
}

func (r *entryRepo) GetForUpdate(ctx context.Context, id string) (*entity.LedgerEntry, error) {
	return r.GetByID(ctx, id)
}

func (r *entryRepo) UpdateStatus(_ context.Context, e *entity.LedgerEntry) error {
	return r.do(func(st *state) error {
		cur, ok := st.entries[e.ID]
		if !ok {
			return domain.ErrNotFound
		}
		cur.Status = e.Status
		cur.PaidAt = e.PaidAt
		cur.UpdatedAt = e.UpdatedAt
		return nil
	})
}

// List por vencimiento descendente (sin vencimiento al final).
func (r *entryRepo) List(_ context.Context, filter repository.EntryFilter) ([]*entity.LedgerEntry, error) {
	var out []*entity.LedgerEntry
	err := r.do(func(st *state) error {
		for _, e := range st.entries {
			if filter.Kind != "" && e.Kind != filter.Kind {
				continue
			}
			if filter.Status != "" && e.Status != filter.Status {
				continue
			}
			c := *e
			out = append(out, &c)
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool {
		a, b := out[i], out[j]
		switch {
		case a.DueDate == nil && b.DueDate == nil:
		case a.DueDate == nil:
			return false
		case b.DueDate == nil:
			return true
		case !a.DueDate.Equal(*b.DueDate):
			return a.DueDate.After(*b.DueDate)
		}
		return a.CreatedAt.After(b.CreatedAt)
	})
	return out, err
}

func (r *entryRepo) Delete(_ context.Context, id string) error {
	return r.do(func(st *state) error {
		if _, ok := st.entries[id]; !ok {
			return domain.ErrNotFound
		}
		delete(st.entries, id)
		return nil
	})
}

func (r *entryRepo) SumByPartition(_ context.Context) ([]repository.PartitionTotal, error) {
	type key struct {
		kind   entity.EntryKind
		status entity.EntryStatus
	}
	sums := make(map[key]decimal.Decimal)
	err := r.do(func(st *state) error {
		for _, e := range st.entries {
			k := key{e.Kind, e.Status}
			sums[k] = sums[k].Add(e.Amount)
		}
		return nil
	})
	out := make([]repository.PartitionTotal, 0, len(sums))
	for k, v := range sums {
		out = append(out, repository.PartitionTotal{Kind: k.kind, Status: k.status, Total: v})
	}
	return out, err
}

// ── Clientes y proveedores ─────────────────────────────────────────────────

type customerRepo struct{ binding }

func (r *customerRepo) Create(_ context.Context, c *entity.Customer) error {
	return r.do(func(st *state) error {
		for _, other := range st.customers {
			if other.ID == c.ID || other.TaxID == c.TaxID {
				return domain.ErrDuplicate
			}
		}
		x := *c
		st.customers[c.ID] = &x
		return nil
	})
}

func (r *customerRepo) GetByID(_ context.Context, id string) (*entity.Customer, error) {
	var out *entity.Customer
	err := r.do(func(st *state) error {
		if c, ok := st.customers[id]; ok {
			x := *c
			out = &x
		}
		return nil
	})
	return out, err
}

func (r *customerRepo) ListActive(_ context.Context) ([]*entity.Customer, error) {
	var out []*entity.Customer
	err := r.do(func(st *state) error {
		for _, c := range st.customers {
			if c.Lifecycle.IsActive() {
				x := *c
				out = append(out, &x)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *customerRepo) Retire(_ context.Context, id string) error {
	return r.do(func(st *state) error {
		c, ok := st.customers[id]
		if !ok {
			return domain.ErrNotFound
		}
		c.Lifecycle = entity.LifecycleRetired
		c.UpdatedAt = time.Now()
		return nil
	})
}

type supplierRepo struct{ binding }

func (r *supplierRepo) Create(_ context.Context, s *entity.Supplier) error {
	return r.do(func(st *state) error {
		for _, other := range st.suppliers {
			if other.ID == s.ID || other.TaxID == s.TaxID {
				return domain.ErrDuplicate
			}
		}
		x := *s
		st.suppliers[s.ID] = &x
		return nil
	})
}

func (r *supplierRepo) GetByID(_ context.Context, id string) (*entity.Supplier, error) {
	var out *entity.Supplier
	err := r.do(func(st *state) error {
		if s, ok := st.suppliers[id]; ok {
			x := *s
			out = &x
		}
		return nil
	})
	return out, err
}

func (r *supplierRepo) ListActive(_ context.Context) ([]*entity.Supplier, error) {
	var out []*entity.Supplier
	err := r.do(func(st *state) error {
		for _, s := range st.suppliers {
			if s.Lifecycle.IsActive() {
				x := *s
				out = append(out, &x)
			}
		}
		return nil
	})
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, err
}

func (r *supplierRepo) Retire(_ context.Context, id string) error {
	return r.do(func(st *state) error {
		s, ok := st.suppliers[id]
		if !ok {
			return domain.ErrNotFound
		}
		s.Lifecycle = entity.LifecycleRetired
		s.UpdatedAt = time.Now()
		return nil
	})
}
