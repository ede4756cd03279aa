package catalog

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/application/inventory"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

const defaultUnit = "UN"

// UseCase alta, listado y retiro de productos, clientes y proveedores.
// El stock nunca se edita aquí: la cantidad inicial entra como movimiento de ajuste.
type UseCase struct {
	txRunner repository.TxRunner
	repos    repository.TxRepos
	ledger   *inventory.StockLedger
}

// NewUseCase construye el caso de uso.
func NewUseCase(txRunner repository.TxRunner, repos repository.TxRepos, ledger *inventory.StockLedger) *UseCase {
	return &UseCase{txRunner: txRunner, repos: repos, ledger: ledger}
}

// CreateProduct crea un producto; OpeningQuantity != 0 se registra como ADJUSTMENT en la misma transacción.
func (uc *UseCase) CreateProduct(ctx context.Context, in dto.CreateProductRequest) (*dto.ProductResponse, error) {
	in.Code = strings.TrimSpace(in.Code)
	in.Name = strings.TrimSpace(in.Name)
	if in.Code == "" {
		return nil, domain.NewValidation("code", "requerido")
	}
	if in.Name == "" {
		return nil, domain.NewValidation("name", "requerido")
	}
	if in.CostPrice.IsNegative() || in.SalePrice.IsNegative() {
		return nil, domain.NewValidation("price", "no puede ser negativo")
	}
	if in.ReorderThreshold.IsNegative() {
		return nil, domain.NewValidation("reorder_threshold", "no puede ser negativo")
	}
	if in.OpeningQuantity.IsNegative() {
		return nil, domain.NewValidation("opening_quantity", "no puede ser negativa")
	}
	for field, v := range map[string]decimal.Decimal{
		"cost_price":        in.CostPrice,
		"sale_price":        in.SalePrice,
		"reorder_threshold": in.ReorderThreshold,
		"opening_quantity":  in.OpeningQuantity,
	} {
		if err := domain.CheckScale(field, v); err != nil {
			return nil, err
		}
	}
	if in.Unit == "" {
		in.Unit = defaultUnit
	}

	now := time.Now()
	product := &entity.Product{
		ID:               uuid.New().String(),
		Code:             in.Code,
		Name:             in.Name,
		Description:      in.Description,
		Unit:             in.Unit,
		CostPrice:        in.CostPrice,
		SalePrice:        in.SalePrice,
		QuantityOnHand:   decimal.Zero,
		ReorderThreshold: in.ReorderThreshold,
		Lifecycle:        entity.LifecycleActive,
		CreatedAt:        now,
		UpdatedAt:        now,
	}
	err := uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		if err := repos.Products.Create(ctx, product); err != nil {
			return err
		}
		if in.OpeningQuantity.IsZero() {
			return nil
		}
		mov, err := uc.ledger.PostMovement(ctx, repos, inventory.MovementInput{
			ProductID: product.ID,
			Kind:      entity.MovementAdjustment,
			Delta:     in.OpeningQuantity,
			Notes:     "Stock inicial",
		})
		if err != nil {
			return err
		}
		product.QuantityOnHand = mov.QuantityAfter
		return nil
	})
	if err != nil {
		return nil, err
	}
	return toProductResponse(product), nil
}

// GetProduct obtiene un producto por ID.
func (uc *UseCase) GetProduct(ctx context.Context, id string) (*dto.ProductResponse, error) {
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if p == nil {
		return nil, &domain.ProductNotFoundError{ProductID: id}
	}
	return toProductResponse(p), nil
}

// ListProducts lista los productos activos.
func (uc *UseCase) ListProducts(ctx context.Context) ([]dto.ProductResponse, error) {
	list, err := uc.repos.Products.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ProductResponse, 0, len(list))
	for _, p := range list {
		out = append(out, *toProductResponse(p))
	}
	return out, nil
}

// RetireProduct retira el producto (deja de listarse; su historial se conserva).
func (uc *UseCase) RetireProduct(ctx context.Context, id string) error {
	p, err := uc.repos.Products.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if p == nil {
		return &domain.ProductNotFoundError{ProductID: id}
	}
	return uc.repos.Products.Retire(ctx, id)
}

// CreateCustomer crea un cliente.
func (uc *UseCase) CreateCustomer(ctx context.Context, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if err := validateParty(in); err != nil {
		return nil, err
	}
	now := time.Now()
	c := &entity.Customer{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		TaxID:     strings.TrimSpace(in.TaxID),
		Email:     in.Email,
		Phone:     in.Phone,
		Lifecycle: entity.LifecycleActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repos.Customers.Create(ctx, c); err != nil {
		return nil, err
	}
	return &dto.PartyResponse{ID: c.ID, Name: c.Name, TaxID: c.TaxID, Email: c.Email, Phone: c.Phone, Lifecycle: string(c.Lifecycle)}, nil
}

// ListCustomers lista los clientes activos.
func (uc *UseCase) ListCustomers(ctx context.Context) ([]dto.PartyResponse, error) {
	list, err := uc.repos.Customers.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartyResponse, 0, len(list))
	for _, c := range list {
		out = append(out, dto.PartyResponse{ID: c.ID, Name: c.Name, TaxID: c.TaxID, Email: c.Email, Phone: c.Phone, Lifecycle: string(c.Lifecycle)})
	}
	return out, nil
}

// RetireCustomer retira un cliente.
func (uc *UseCase) RetireCustomer(ctx context.Context, id string) error {
	c, err := uc.repos.Customers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if c == nil {
		return domain.ErrNotFound
	}
	return uc.repos.Customers.Retire(ctx, id)
}

// CreateSupplier crea un proveedor.
func (uc *UseCase) CreateSupplier(ctx context.Context, in dto.CreatePartyRequest) (*dto.PartyResponse, error) {
	if err := validateParty(in); err != nil {
		return nil, err
	}
	now := time.Now()
	s := &entity.Supplier{
		ID:        uuid.New().String(),
		Name:      strings.TrimSpace(in.Name),
		TaxID:     strings.TrimSpace(in.TaxID),
		Email:     in.Email,
		Phone:     in.Phone,
		Lifecycle: entity.LifecycleActive,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if err := uc.repos.Suppliers.Create(ctx, s); err != nil {
		return nil, err
	}
	return &dto.PartyResponse{ID: s.ID, Name: s.Name, TaxID: s.TaxID, Email: s.Email, Phone: s.Phone, Lifecycle: string(s.Lifecycle)}, nil
}

// ListSuppliers lista los proveedores activos.
func (uc *UseCase) ListSuppliers(ctx context.Context) ([]dto.PartyResponse, error) {
	list, err := uc.repos.Suppliers.ListActive(ctx)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PartyResponse, 0, len(list))
	for _, s := range list {
		out = append(out, dto.PartyResponse{ID: s.ID, Name: s.Name, TaxID: s.TaxID, Email: s.Email, Phone: s.Phone, Lifecycle: string(s.Lifecycle)})
	}
	return out, nil
}

// RetireSupplier retira un proveedor.
func (uc *UseCase) RetireSupplier(ctx context.Context, id string) error {
	s, err := uc.repos.Suppliers.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if s == nil {
		return domain.ErrNotFound
	}
	return uc.repos.Suppliers.Retire(ctx, id)
}

func validateParty(in dto.CreatePartyRequest) error {
	if strings.TrimSpace(in.Name) == "" {
		return domain.NewValidation("name", "requerido")
	}
	if strings.TrimSpace(in.TaxID) == "" {
		return domain.NewValidation("tax_id", "requerido")
	}
	return nil
}

func toProductResponse(p *entity.Product) *dto.ProductResponse {
	return &dto.ProductResponse{
		ID:               p.ID,
		Code:             p.Code,
		Name:             p.Name,
		Description:      p.Description,
		Unit:             p.Unit,
		CostPrice:        p.CostPrice,
		SalePrice:        p.SalePrice,
		QuantityOnHand:   p.QuantityOnHand,
		ReorderThreshold: p.ReorderThreshold,
		Lifecycle:        string(p.Lifecycle),
		CreatedAt:        p.CreatedAt,
	}
}
