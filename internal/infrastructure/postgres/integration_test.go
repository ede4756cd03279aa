//go:build integration

// Pruebas contra un PostgreSQL real: go test -tags integration ./internal/infrastructure/postgres/...
// con TEST_DATABASE_URL apuntando a una base desechable.
package postgres_test

import (
	"context"
	"fmt"
	"os"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercial-api/internal/application/document"
	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/application/finance"
	"github.com/jhoicas/Comercial-api/internal/application/inventory"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	dominv "github.com/jhoicas/Comercial-api/internal/domain/inventory"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
	"github.com/jhoicas/Comercial-api/internal/infrastructure/postgres"
	"github.com/jhoicas/Comercial-api/pkg/config"
	"github.com/jhoicas/Comercial-api/pkg/logger"
)

type pgEnv struct {
	repos    repository.TxRepos
	poster   *document.PostDocumentUseCase
	suffix   string
	customer string
	supplier string
}

func newPgEnv(t *testing.T) *pgEnv {
	t.Helper()
	url := os.Getenv("TEST_DATABASE_URL")
	if url == "" {
		t.Skip("TEST_DATABASE_URL no definido")
	}
	ctx := context.Background()
	pool, err := postgres.NewPool(ctx, config.DBConfig{DatabaseURL: url, MaxConns: 20})
	require.NoError(t, err)
	t.Cleanup(pool.Close)
	require.NoError(t, postgres.Migrate(ctx, pool))

	// Cada prueba usa ids y números propios: no hace falta limpiar tablas
	e := &pgEnv{
		repos:    postgres.NewRepos(pool),
		suffix:   uuid.New().String()[:8],
		customer: uuid.New().String(),
		supplier: uuid.New().String(),
	}
	now := time.Now()
	require.NoError(t, e.repos.Customers.Create(ctx, &entity.Customer{
		ID: e.customer, Name: "Cliente", TaxID: "C-" + e.suffix, Lifecycle: entity.LifecycleActive, CreatedAt: now, UpdatedAt: now,
	}))
	require.NoError(t, e.repos.Suppliers.Create(ctx, &entity.Supplier{
		ID: e.supplier, Name: "Proveedor", TaxID: "S-" + e.suffix, Lifecycle: entity.LifecycleActive, CreatedAt: now, UpdatedAt: now,
	}))
	e.poster = document.NewPostDocumentUseCase(
		postgres.NewTxRunner(pool), inventory.NewStockLedger(), document.NewFulfillmentLinker(false),
		document.PosterConfig{AllowEmptyDocuments: true, CostPolicy: dominv.CostPolicyLast},
		logger.Nop(), finance.NewFinancialPoster(30),
	)
	return e
}

// product crea un producto y le da stock inicial con una nota de entrada.
func (e *pgEnv) product(t *testing.T, name string, stock int64) string {
	t.Helper()
	ctx := context.Background()
	id := uuid.New().String()
	now := time.Now()
	require.NoError(t, e.repos.Products.Create(ctx, &entity.Product{
		ID: id, Code: name + "-" + e.suffix, Name: name, Unit: "UN", Lifecycle: entity.LifecycleActive,
		CreatedAt: now, UpdatedAt: now,
	}))
	price := decimal.NewFromInt(10)
	_, err := e.poster.Post(ctx, entity.DocumentInboundNote, dto.PostDocumentRequest{
		Number: e.number("NE-" + name), CounterpartyID: e.supplier,
		Items: []dto.LineItemRequest{{ProductID: id, Quantity: decimal.NewFromInt(stock), UnitPrice: &price}},
	})
	require.NoError(t, err)
	return id
}

func (e *pgEnv) number(prefix string) string { return prefix + "-" + e.suffix }

func (e *pgEnv) assertConsistent(t *testing.T, productID string, want int64) {
	t.Helper()
	ctx := context.Background()
	p, err := e.repos.Products.GetByID(ctx, productID)
	require.NoError(t, err)
	assert.True(t, p.QuantityOnHand.Equal(decimal.NewFromInt(want)), p.QuantityOnHand.String())
	movs, err := e.repos.Movements.ListChronological(ctx, productID)
	require.NoError(t, err)
	assert.True(t, dominv.Replay(p.QuantityOnHand, movs).Consistent())
}

func TestPostgres_ConcurrentOutboundNeverOversells(t *testing.T) {
	e := newPgEnv(t)
	p := e.product(t, "P", 10)

	const workers = 25
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		kinds    []string
	)
	for i := 0; i < workers; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := e.poster.Post(context.Background(), entity.DocumentOutboundNote, dto.PostDocumentRequest{
				Number: e.number(fmt.Sprintf("NS-%02d", i)), CounterpartyID: e.customer,
				Items: []dto.LineItemRequest{{ProductID: p, Quantity: decimal.NewFromInt(1)}},
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				accepted++
				return
			}
			kinds = append(kinds, domain.KindOf(err))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 10, accepted)
	for _, k := range kinds {
		assert.Equal(t, domain.KindInsufficientStock, k)
	}
	e.assertConsistent(t, p, 0)
}

// Documentos con los mismos productos en orden inverso no deben bloquearse entre sí.
func TestPostgres_SharedProductsInOppositeOrder(t *testing.T) {
	e := newPgEnv(t)
	a := e.product(t, "A", 20)
	b := e.product(t, "B", 20)

	const workers = 30
	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		accepted int
		kinds    []string
	)
	for i := 0; i < workers; i++ {
		first, second := a, b
		if i%2 == 1 {
			first, second = b, a
		}
		wg.Add(1)
		go func(i int, first, second string) {
			defer wg.Done()
			_, err := e.poster.Post(context.Background(), entity.DocumentOutboundNote, dto.PostDocumentRequest{
				Number: e.number(fmt.Sprintf("NX-%02d", i)), CounterpartyID: e.customer,
				Items: []dto.LineItemRequest{
					{ProductID: first, Quantity: decimal.NewFromInt(1)},
					{ProductID: second, Quantity: decimal.NewFromInt(1)},
				},
			})
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				accepted++
				return
			}
			kinds = append(kinds, domain.KindOf(err))
		}(i, first, second)
	}
	wg.Wait()

	// Un deadlock aparecería como INTERNAL (40P01)
	assert.Equal(t, 20, accepted)
	for _, k := range kinds {
		assert.Equal(t, domain.KindInsufficientStock, k)
	}
	e.assertConsistent(t, a, 0)
	e.assertConsistent(t, b, 0)
}

func TestPostgres_DecimalScale(t *testing.T) {
	e := newPgEnv(t)
	p := e.product(t, "D", 5)
	ctx := context.Background()

	_, err := e.poster.Post(ctx, entity.DocumentQuote, dto.PostDocumentRequest{
		Number: e.number("CT-1"), CounterpartyID: e.customer,
		Items: []dto.LineItemRequest{{ProductID: p, Quantity: decimal.RequireFromString("0.00004")}},
	})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	price := decimal.RequireFromString("0.3333")
	out, err := e.poster.Post(ctx, entity.DocumentSalesOrder, dto.PostDocumentRequest{
		Number: e.number("PV-1"), CounterpartyID: e.customer,
		Items: []dto.LineItemRequest{{ProductID: p, Quantity: decimal.RequireFromString("0.5"), UnitPrice: &price}},
	})
	require.NoError(t, err)

	stored, err := e.repos.Documents.GetByID(ctx, out.ID)
	require.NoError(t, err)
	require.Len(t, stored.Lines, 1)
	l := stored.Lines[0]
	assert.True(t, l.Subtotal.Equal(l.Quantity.Mul(l.UnitPrice)), l.Subtotal.String())
	assert.True(t, stored.Total.Equal(decimal.RequireFromString("0.16665")), stored.Total.String())
}
