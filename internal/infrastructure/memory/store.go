// Package memory almacén transaccional en memoria que implementa todos los repositorios.
// Sirve para pruebas y para DB_DRIVER=memory (sin persistencia).
package memory

import (
	"context"
	"sync"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

type state struct {
	products  map[string]*entity.Product
	movements []*entity.StockMovement
	documents map[string]*entity.Document
	docOrder  []string
	entries   map[string]*entity.LedgerEntry
	customers map[string]*entity.Customer
	suppliers map[string]*entity.Supplier
}

func newState() *state {
	return &state{
		products:  make(map[string]*entity.Product),
		documents: make(map[string]*entity.Document),
		entries:   make(map[string]*entity.LedgerEntry),
		customers: make(map[string]*entity.Customer),
		suppliers: make(map[string]*entity.Supplier),
	}
}

// clone copia profunda para poder restaurar ante rollback.
func (st *state) clone() *state {
	c := newState()
	for k, v := range st.products {
		p := *v
		c.products[k] = &p
	}
	c.movements = make([]*entity.StockMovement, len(st.movements))
	copy(c.movements, st.movements) // inmutables
	for k, v := range st.documents {
		c.documents[k] = cloneDocument(v)
	}
	c.docOrder = append([]string(nil), st.docOrder...)
	for k, v := range st.entries {
		e := *v
		c.entries[k] = &e
	}
	for k, v := range st.customers {
		x := *v
		c.customers[k] = &x
	}
	for k, v := range st.suppliers {
		x := *v
		c.suppliers[k] = &x
	}
	return c
}

func cloneDocument(d *entity.Document) *entity.Document {
	c := *d
	c.Lines = make([]*entity.LineItem, len(d.Lines))
	for i, l := range d.Lines {
		line := *l
		c.Lines[i] = &line
	}
	return &c
}

// Store una sola exclusión mutua: cada unidad de trabajo (Run) la toma completa, de modo que
// las lecturas-escrituras de stock quedan serializadas igual que con SELECT FOR UPDATE.
type Store struct {
	mu sync.Mutex
	st *state
}

// NewStore crea un almacén vacío.
func NewStore() *Store {
	return &Store{st: newState()}
}

// Repos repositorios fuera de transacción (cada llamada toma el lock).
func (s *Store) Repos() repository.TxRepos {
	return s.repos(false)
}

func (s *Store) repos(inTx bool) repository.TxRepos {
	b := binding{s: s, inTx: inTx}
	return repository.TxRepos{
		Products:  &productRepo{b},
		Movements: &movementRepo{b},
		Documents: &documentRepo{b},
		Entries:   &entryRepo{b},
		Customers: &customerRepo{b},
		Suppliers: &supplierRepo{b},
	}
}

// Run implementa repository.TxRunner: si fn falla se restaura el estado previo.
func (s *Store) Run(ctx context.Context, fn func(ctx context.Context, repos repository.TxRepos) error) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := s.st.clone()
	if err := fn(ctx, s.repos(true)); err != nil {
		s.st = snapshot
		return err
	}
	return nil
}

// binding ata un repositorio al store; dentro de Run el lock ya está tomado.
type binding struct {
	s    *Store
	inTx bool
}

func (b binding) do(fn func(st *state) error) error {
	if !b.inTx {
		b.s.mu.Lock()
		defer b.s.mu.Unlock()
	}
	return fn(b.s.st)
}

var _ repository.TxRunner = (*Store)(nil)
