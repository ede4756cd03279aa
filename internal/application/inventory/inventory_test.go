package inventory_test

import (
	"context"
	"errors"
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/application/inventory"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	dominv "github.com/jhoicas/Comercial-api/internal/domain/inventory"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
	"github.com/jhoicas/Comercial-api/internal/infrastructure/memory"
	"github.com/jhoicas/Comercial-api/pkg/logger"
)

func d(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

func dp(v int64) *decimal.Decimal {
	x := decimal.NewFromInt(v)
	return &x
}

func seed(t *testing.T, s *memory.Store, id string, threshold int64) {
	t.Helper()
	require.NoError(t, s.Repos().Products.Create(context.Background(), &entity.Product{
		ID:               id,
		Code:             "C-" + id,
		Name:             "Producto " + id,
		CostPrice:        d(10),
		ReorderThreshold: d(threshold),
		Lifecycle:        entity.LifecycleActive,
	}))
}

func post(t *testing.T, s *memory.Store, l *inventory.StockLedger, in inventory.MovementInput) (*entity.StockMovement, error) {
	t.Helper()
	var mov *entity.StockMovement
	err := s.Run(context.Background(), func(ctx context.Context, repos repository.TxRepos) error {
		var err error
		mov, err = l.PostMovement(ctx, repos, in)
		return err
	})
	return mov, err
}

func quantity(t *testing.T, s *memory.Store, id string) decimal.Decimal {
	t.Helper()
	p, err := s.Repos().Products.GetByID(context.Background(), id)
	require.NoError(t, err)
	require.NotNil(t, p)
	return p.QuantityOnHand
}

func TestStockLedger_PostMovement(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, "p", 0)
	l := inventory.NewStockLedger()

	mov, err := post(t, s, l, inventory.MovementInput{ProductID: "p", Kind: entity.MovementInbound, Delta: d(10), Reference: "NE-1"})
	require.NoError(t, err)
	assert.True(t, mov.QuantityBefore.IsZero())
	assert.True(t, mov.QuantityAfter.Equal(d(10)))
	assert.Equal(t, "NE-1", mov.Reference)
	assert.Equal(t, "Producto p", mov.ProductName)

	mov, err = post(t, s, l, inventory.MovementInput{ProductID: "p", Kind: entity.MovementOutbound, Delta: d(-4)})
	require.NoError(t, err)
	assert.True(t, mov.QuantityBefore.Equal(d(10)))
	assert.True(t, mov.QuantityAfter.Equal(d(6)))
	assert.True(t, quantity(t, s, "p").Equal(d(6)))
}

func TestStockLedger_OutboundCannotGoNegative(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, "p", 0)
	l := inventory.NewStockLedger()
	_, err := post(t, s, l, inventory.MovementInput{ProductID: "p", Kind: entity.MovementInbound, Delta: d(3)})
	require.NoError(t, err)

	_, err = post(t, s, l, inventory.MovementInput{ProductID: "p", Kind: entity.MovementOutbound, Delta: d(-5)})
	var insufficient *domain.InsufficientStockError
	require.True(t, errors.As(err, &insufficient))
	assert.Equal(t, "p", insufficient.ProductID)
	assert.True(t, insufficient.Requested.Equal(d(5)))
	assert.True(t, insufficient.Available.Equal(d(3)))
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)

	// Sin efecto: ni cantidad ni movimiento
	assert.True(t, quantity(t, s, "p").Equal(d(3)))
	movs, err := s.Repos().Movements.List(context.Background(), repository.MovementFilter{ProductID: "p"})
	require.NoError(t, err)
	assert.Len(t, movs, 1)
}

func TestStockLedger_AdjustmentMayGoNegative(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, "p", 0)
	l := inventory.NewStockLedger()

	mov, err := post(t, s, l, inventory.MovementInput{ProductID: "p", Kind: entity.MovementAdjustment, Delta: d(-2)})
	require.NoError(t, err)
	assert.True(t, mov.QuantityAfter.Equal(d(-2)))
}

func TestStockLedger_Validation(t *testing.T) {
	s := memory.NewStore()
	seed(t, s, "p", 0)
	l := inventory.NewStockLedger()

	tests := []struct {
		name string
		in   inventory.MovementInput
		kind string
	}{
		{"sin producto", inventory.MovementInput{Kind: entity.MovementInbound, Delta: d(1)}, domain.KindValidation},
		{"entrada negativa", inventory.MovementInput{ProductID: "p", Kind: entity.MovementInbound, Delta: d(-1)}, domain.KindValidation},
		{"salida positiva", inventory.MovementInput{ProductID: "p", Kind: entity.MovementOutbound, Delta: d(1)}, domain.KindValidation},
		{"tipo desconocido", inventory.MovementInput{ProductID: "p", Kind: "TRANSFER", Delta: d(1)}, domain.KindValidation},
		{"producto inexistente", inventory.MovementInput{ProductID: "x", Kind: entity.MovementInbound, Delta: d(1)}, domain.KindProductNotFound},
		{"más de 4 decimales", inventory.MovementInput{ProductID: "p", Kind: entity.MovementInbound, Delta: decimal.RequireFromString("0.00004")}, domain.KindValidation},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := post(t, s, l, tt.in)
			require.Error(t, err)
			assert.Equal(t, tt.kind, domain.KindOf(err))
		})
	}
}

func TestAdjustStock(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seed(t, s, "p", 0)
	uc := inventory.NewAdjustStockUseCase(s, inventory.NewStockLedger(), logger.Nop())

	out, err := uc.Adjust(ctx, dto.AdjustStockRequest{ProductID: "p", NewQuantity: dp(12)})
	require.NoError(t, err)
	assert.Equal(t, string(entity.MovementAdjustment), out.Kind)
	assert.True(t, out.Delta.Equal(d(12)))
	assert.Equal(t, "Ajuste manual de stock", out.Notes)

	out, err = uc.Adjust(ctx, dto.AdjustStockRequest{ProductID: "p", NewQuantity: dp(7), Notes: "conteo"})
	require.NoError(t, err)
	assert.True(t, out.Delta.Equal(d(-5)))
	assert.True(t, out.QuantityAfter.Equal(d(7)))
	assert.Equal(t, "conteo", out.Notes)

	out, err = uc.Adjust(ctx, dto.AdjustStockRequest{ProductID: "p", Delta: dp(3)})
	require.NoError(t, err)
	assert.True(t, out.QuantityAfter.Equal(d(10)))
	assert.True(t, quantity(t, s, "p").Equal(d(10)))
}

func TestAdjustStock_Errors(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seed(t, s, "p", 0)
	uc := inventory.NewAdjustStockUseCase(s, inventory.NewStockLedger(), logger.Nop())

	_, err := uc.Adjust(ctx, dto.AdjustStockRequest{ProductID: "p"})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = uc.Adjust(ctx, dto.AdjustStockRequest{ProductID: "p", NewQuantity: dp(1), Delta: dp(1)})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = uc.Adjust(ctx, dto.AdjustStockRequest{ProductID: "p", NewQuantity: dp(-1)})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))

	_, err = uc.Adjust(ctx, dto.AdjustStockRequest{ProductID: "nope", NewQuantity: dp(1)})
	assert.Equal(t, domain.KindProductNotFound, domain.KindOf(err))

	fine := decimal.RequireFromString("1.00005")
	_, err = uc.Adjust(ctx, dto.AdjustStockRequest{ProductID: "p", NewQuantity: &fine})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	_, err = uc.Adjust(ctx, dto.AdjustStockRequest{ProductID: "p", Delta: &fine})
	assert.Equal(t, domain.KindValidation, domain.KindOf(err))
	assert.True(t, quantity(t, s, "p").IsZero())
}

func TestAdjustStock_RetiredProduct(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seed(t, s, "p", 0)
	require.NoError(t, s.Repos().Products.Retire(ctx, "p"))
	uc := inventory.NewAdjustStockUseCase(s, inventory.NewStockLedger(), logger.Nop())

	_, err := uc.Adjust(ctx, dto.AdjustStockRequest{ProductID: "p", NewQuantity: dp(5)})
	assert.Equal(t, domain.KindProductNotFound, domain.KindOf(err))
	_, err = uc.Adjust(ctx, dto.AdjustStockRequest{ProductID: "p", Delta: dp(5)})
	assert.Equal(t, domain.KindProductNotFound, domain.KindOf(err))

	movs, err := s.Repos().Movements.List(ctx, repository.MovementFilter{ProductID: "p"})
	require.NoError(t, err)
	assert.Empty(t, movs)
	assert.True(t, quantity(t, s, "p").IsZero())
}

func TestStockQuery_SnapshotAndMovements(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seed(t, s, "a", 5)
	seed(t, s, "b", 5)
	l := inventory.NewStockLedger()
	_, err := post(t, s, l, inventory.MovementInput{ProductID: "a", Kind: entity.MovementInbound, Delta: d(2)})
	require.NoError(t, err)
	_, err = post(t, s, l, inventory.MovementInput{ProductID: "b", Kind: entity.MovementInbound, Delta: d(9)})
	require.NoError(t, err)
	_, err = post(t, s, l, inventory.MovementInput{ProductID: "a", Kind: entity.MovementOutbound, Delta: d(-1)})
	require.NoError(t, err)

	q := inventory.NewStockQueryUseCase(s.Repos(), 2)

	snap, err := q.Snapshot(ctx)
	require.NoError(t, err)
	require.Len(t, snap, 2)
	status := map[string]string{}
	for _, r := range snap {
		status[r.ProductID] = r.Status
	}
	assert.Equal(t, dominv.StockStatusCritical, status["a"])
	assert.Equal(t, dominv.StockStatusOK, status["b"])

	// Sin filtro aplica el tope configurado, del más reciente al más antiguo
	all, err := q.Movements(ctx, "", 0)
	require.NoError(t, err)
	require.Len(t, all, 2)
	assert.Equal(t, "a", all[0].ProductID)
	assert.Equal(t, string(entity.MovementOutbound), all[0].Kind)
	assert.Equal(t, "b", all[1].ProductID)

	onlyA, err := q.Movements(ctx, "a", 0)
	require.NoError(t, err)
	assert.Len(t, onlyA, 2)
}

func TestStockQuery_VerifyHistory(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seed(t, s, "p", 0)
	l := inventory.NewStockLedger()
	for _, in := range []inventory.MovementInput{
		{ProductID: "p", Kind: entity.MovementInbound, Delta: d(10)},
		{ProductID: "p", Kind: entity.MovementOutbound, Delta: d(-3)},
		{ProductID: "p", Kind: entity.MovementAdjustment, Delta: d(1)},
	} {
		_, err := post(t, s, l, in)
		require.NoError(t, err)
	}
	q := inventory.NewStockQueryUseCase(s.Repos(), 100)

	res, err := q.VerifyHistory(ctx, "p")
	require.NoError(t, err)
	assert.True(t, res.Consistent)
	assert.Equal(t, 3, res.Movements)
	assert.True(t, res.Replayed.Equal(d(8)))
	assert.True(t, res.QuantityOnHand.Equal(d(8)))

	_, err = q.VerifyHistory(ctx, "nope")
	assert.Equal(t, domain.KindProductNotFound, domain.KindOf(err))
}

func TestReplenishmentList(t *testing.T) {
	ctx := context.Background()
	s := memory.NewStore()
	seed(t, s, "half", 10) // 5/10 → déficit 0.5
	seed(t, s, "empty", 4) // 0/4  → déficit 1
	seed(t, s, "ok", 2)    // 3/2  → no aparece
	l := inventory.NewStockLedger()
	for id, q := range map[string]int64{"half": 5, "ok": 3} {
		_, err := post(t, s, l, inventory.MovementInput{ProductID: id, Kind: entity.MovementInbound, Delta: d(q)})
		require.NoError(t, err)
	}

	list, err := inventory.NewReplenishmentUseCase(s.Repos().Products).GenerateReplenishmentList(ctx)
	require.NoError(t, err)
	require.Len(t, list, 2)

	assert.Equal(t, "empty", list[0].ProductID)
	assert.Equal(t, 1, list[0].Priority)
	assert.True(t, list[0].SuggestedOrderQty.Equal(d(6)))
	assert.True(t, list[0].EstimatedOrderCost.Equal(d(60)))

	assert.Equal(t, "half", list[1].ProductID)
	assert.Equal(t, 2, list[1].Priority)
	assert.True(t, list[1].IdealStock.Equal(d(15)))
	assert.True(t, list[1].SuggestedOrderQty.Equal(d(10)))
}
