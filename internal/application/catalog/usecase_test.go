package catalog_test

import (
	"context"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercial-api/internal/application/catalog"
	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/application/inventory"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
	"github.com/jhoicas/Comercial-api/internal/infrastructure/memory"
)

func newUseCase() (*catalog.UseCase, *memory.Store) {
	s := memory.NewStore()
	return catalog.NewUseCase(s, s.Repos(), inventory.NewStockLedger()), s
}

func TestCreateProduct_OpeningQuantityIsAMovement(t *testing.T) {
	ctx := context.Background()
	uc, s := newUseCase()

	out, err := uc.CreateProduct(ctx, dto.CreateProductRequest{
		Code: " SKU-1 ", Name: "Tornillo", SalePrice: decimal.NewFromInt(3),
		ReorderThreshold: decimal.NewFromInt(5), OpeningQuantity: decimal.NewFromInt(12),
	})
	require.NoError(t, err)
	assert.Equal(t, "SKU-1", out.Code)
	assert.Equal(t, "UN", out.Unit)
	assert.Equal(t, string(entity.LifecycleActive), out.Lifecycle)
	assert.True(t, out.QuantityOnHand.Equal(decimal.NewFromInt(12)))

	movs, err := s.Repos().Movements.List(ctx, repository.MovementFilter{ProductID: out.ID})
	require.NoError(t, err)
	require.Len(t, movs, 1)
	assert.Equal(t, entity.MovementAdjustment, movs[0].Kind)
	assert.Equal(t, "Stock inicial", movs[0].Notes)
	assert.True(t, movs[0].QuantityBefore.IsZero())

	got, err := uc.GetProduct(ctx, out.ID)
	require.NoError(t, err)
	assert.True(t, got.QuantityOnHand.Equal(decimal.NewFromInt(12)))
}

func TestCreateProduct_WithoutOpeningQuantity(t *testing.T) {
	ctx := context.Background()
	uc, s := newUseCase()

	out, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Code: "A", Name: "A", Unit: "KG"})
	require.NoError(t, err)
	assert.Equal(t, "KG", out.Unit)
	movs, err := s.Repos().Movements.List(ctx, repository.MovementFilter{ProductID: out.ID})
	require.NoError(t, err)
	assert.Empty(t, movs)
}

func TestCreateProduct_Errors(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()
	_, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Code: "A", Name: "A"})
	require.NoError(t, err)

	neg := decimal.NewFromInt(-1)
	tests := []struct {
		name string
		in   dto.CreateProductRequest
		want string
	}{
		{"sin código", dto.CreateProductRequest{Name: "x"}, domain.KindValidation},
		{"sin nombre", dto.CreateProductRequest{Code: "x"}, domain.KindValidation},
		{"precio negativo", dto.CreateProductRequest{Code: "x", Name: "x", SalePrice: neg}, domain.KindValidation},
		{"umbral negativo", dto.CreateProductRequest{Code: "x", Name: "x", ReorderThreshold: neg}, domain.KindValidation},
		{"stock inicial negativo", dto.CreateProductRequest{Code: "x", Name: "x", OpeningQuantity: neg}, domain.KindValidation},
		{"precio con más de 4 decimales", dto.CreateProductRequest{Code: "x", Name: "x", CostPrice: decimal.RequireFromString("0.33335")}, domain.KindValidation},
		{"código repetido", dto.CreateProductRequest{Code: "A", Name: "otro"}, domain.KindDuplicate},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := uc.CreateProduct(ctx, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.want, domain.KindOf(err))
		})
	}
}

func TestRetireProduct(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()
	out, err := uc.CreateProduct(ctx, dto.CreateProductRequest{Code: "A", Name: "A"})
	require.NoError(t, err)

	require.NoError(t, uc.RetireProduct(ctx, out.ID))
	list, err := uc.ListProducts(ctx)
	require.NoError(t, err)
	assert.Empty(t, list)

	// El producto retirado sigue siendo consultable por ID
	got, err := uc.GetProduct(ctx, out.ID)
	require.NoError(t, err)
	assert.Equal(t, string(entity.LifecycleRetired), got.Lifecycle)

	err = uc.RetireProduct(ctx, "nope")
	assert.Equal(t, domain.KindProductNotFound, domain.KindOf(err))
}

func TestParties(t *testing.T) {
	ctx := context.Background()
	uc, _ := newUseCase()

	c, err := uc.CreateCustomer(ctx, dto.CreatePartyRequest{Name: " Cliente ", TaxID: "123"})
	require.NoError(t, err)
	assert.Equal(t, "Cliente", c.Name)
	_, err = uc.CreateCustomer(ctx, dto.CreatePartyRequest{Name: "Otro", TaxID: "123"})
	assert.ErrorIs(t, err, domain.ErrDuplicate)
	_, err = uc.CreateCustomer(ctx, dto.CreatePartyRequest{Name: "Sin NIT"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	s, err := uc.CreateSupplier(ctx, dto.CreatePartyRequest{Name: "Proveedor", TaxID: "999"})
	require.NoError(t, err)

	customers, err := uc.ListCustomers(ctx)
	require.NoError(t, err)
	assert.Len(t, customers, 1)
	suppliers, err := uc.ListSuppliers(ctx)
	require.NoError(t, err)
	assert.Len(t, suppliers, 1)

	require.NoError(t, uc.RetireCustomer(ctx, c.ID))
	require.NoError(t, uc.RetireSupplier(ctx, s.ID))
	customers, _ = uc.ListCustomers(ctx)
	assert.Empty(t, customers)
	suppliers, _ = uc.ListSuppliers(ctx)
	assert.Empty(t, suppliers)

	assert.ErrorIs(t, uc.RetireCustomer(ctx, "nope"), domain.ErrNotFound)
	assert.ErrorIs(t, uc.RetireSupplier(ctx, "nope"), domain.ErrNotFound)
}
