package document

import (
	"context"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/application/inventory"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	dominv "github.com/jhoicas/Comercial-api/internal/domain/inventory"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
	"github.com/jhoicas/Comercial-api/pkg/logger"
)

// PosterConfig políticas del Document Poster.
type PosterConfig struct {
	AllowEmptyDocuments bool
	CostPolicy          dominv.CostPolicy
}

// PostDocumentUseCase Document Poster: valida el documento, mueve stock por línea (notas),
// persiste cabecera y líneas, vincula el pedido y emite el evento, todo en una transacción.
type PostDocumentUseCase struct {
	txRunner repository.TxRunner
	ledger   *inventory.StockLedger
	linker   *FulfillmentLinker
	hooks    []PostingHook
	cfg      PosterConfig
	log      *logger.Logger
	now      func() time.Time
}

// NewPostDocumentUseCase construye el caso de uso. Los hooks corren en el orden dado.
func NewPostDocumentUseCase(
	txRunner repository.TxRunner,
	ledger *inventory.StockLedger,
	linker *FulfillmentLinker,
	cfg PosterConfig,
	log *logger.Logger,
	hooks ...PostingHook,
) *PostDocumentUseCase {
	return &PostDocumentUseCase{
		txRunner: txRunner,
		ledger:   ledger,
		linker:   linker,
		hooks:    hooks,
		cfg:      cfg,
		log:      log.Component("document.poster"),
		now:      time.Now,
	}
}

// Post contabiliza un documento del tipo indicado.
// Errores: ValidationError, ProductNotFoundError, InsufficientStockError, DocumentNotFoundError
// (pedido vinculado inexistente en modo estricto), ErrDuplicate (número repetido).
// Cualquier error deja todo como estaba.
func (uc *PostDocumentUseCase) Post(ctx context.Context, kind entity.DocumentKind, in dto.PostDocumentRequest) (*dto.DocumentResponse, error) {
	doc, err := uc.post(ctx, kind, in)
	if err != nil {
		uc.log.FromContext(ctx).Warn().
			Err(err).
			Str("kind", string(kind)).
			Str("number", in.Number).
			Str("error_kind", domain.KindOf(err)).
			Msg("documento rechazado")
		return nil, err
	}
	uc.log.FromContext(ctx).Info().
		Str("kind", string(doc.Kind)).
		Str("number", doc.Number).
		Int("lines", len(doc.Lines)).
		Str("total", doc.Total.String()).
		Msg("documento contabilizado")
	return ToResponse(doc), nil
}

func (uc *PostDocumentUseCase) post(ctx context.Context, kind entity.DocumentKind, in dto.PostDocumentRequest) (*entity.Document, error) {
	if err := uc.validate(kind, &in); err != nil {
		return nil, err
	}
	dueDate, err := dto.ParseDate("due_date", in.DueDate)
	if err != nil {
		return nil, err
	}

	now := uc.now()
	doc := &entity.Document{
		ID:             uuid.New().String(),
		Kind:           kind,
		Number:         in.Number,
		CounterpartyID: in.CounterpartyID,
		SalesOrderID:   in.SalesOrderID,
		Status:         kind.DefaultStatus(),
		Total:          decimal.Zero,
		Notes:          in.Notes,
		DueDate:        dueDate,
		Date:           now,
		Lines:          make([]*entity.LineItem, 0, len(in.Items)),
		CreatedAt:      now,
		UpdatedAt:      now,
	}

	err = uc.txRunner.Run(ctx, func(ctx context.Context, repos repository.TxRepos) error {
		name, err := resolveCounterparty(ctx, repos, kind, in.CounterpartyID)
		if err != nil {
			return err
		}
		doc.CounterpartyName = name

		// 1) Resolver productos: cualquier referencia inexistente rechaza el documento completo
		products := make(map[string]*entity.Product, len(in.Items))
		for _, item := range in.Items {
			if _, ok := products[item.ProductID]; ok {
				continue
			}
			p, err := repos.Products.GetByID(ctx, item.ProductID)
			if err != nil {
				return err
			}
			if p == nil || !p.Lifecycle.IsActive() {
				return &domain.ProductNotFoundError{ProductID: item.ProductID}
			}
			products[item.ProductID] = p
		}

		// 2) Líneas y total (se calcula una sola vez)
		for i, item := range in.Items {
			p := products[item.ProductID]
			price := p.SalePrice
			if item.UnitPrice != nil {
				price = *item.UnitPrice
			}
			subtotal := item.Quantity.Mul(price)
			doc.Lines = append(doc.Lines, &entity.LineItem{
				ID:          uuid.New().String(),
				DocumentID:  doc.ID,
				Position:    i,
				ProductID:   p.ID,
				ProductName: p.Name,
				Quantity:    item.Quantity,
				UnitPrice:   price,
				Subtotal:    subtotal,
			})
			doc.Total = doc.Total.Add(subtotal)
		}

		if err := repos.Documents.Create(ctx, doc); err != nil {
			return err
		}

		// 3) Stock: una línea, un movimiento
		if kind.MovesStock() {
			if err := uc.moveStock(ctx, repos, doc); err != nil {
				return err
			}
		}

		// 4) Vínculo con el pedido de venta
		if kind == entity.DocumentOutboundNote {
			if err := uc.linker.LinkOutbound(ctx, repos, doc); err != nil {
				return err
			}
		}

		// 5) Evento (asientos financieros, etc.) dentro de la misma unidad de trabajo
		ev := PostedEvent{Document: doc}
		for _, h := range uc.hooks {
			if err := h.OnPosted(ctx, repos, ev); err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return doc, nil
}

// moveStock procesa las líneas en orden ascendente de producto para que dos documentos que
// comparten productos tomen los bloqueos en el mismo orden. doc.Lines no se reordena.
func (uc *PostDocumentUseCase) moveStock(ctx context.Context, repos repository.TxRepos, doc *entity.Document) error {
	order := make([]*entity.LineItem, len(doc.Lines))
	copy(order, doc.Lines)
	sort.SliceStable(order, func(i, j int) bool { return order[i].ProductID < order[j].ProductID })

	movKind := entity.MovementOutbound
	notes := fmt.Sprintf("Nota de salida #%s", doc.Number)
	if doc.Kind == entity.DocumentInboundNote {
		movKind = entity.MovementInbound
		notes = fmt.Sprintf("Nota de entrada #%s", doc.Number)
	}

	for _, line := range order {
		delta := line.Quantity
		if movKind == entity.MovementOutbound {
			delta = delta.Neg()
		}
		mov, err := uc.ledger.PostMovement(ctx, repos, inventory.MovementInput{
			ProductID:  line.ProductID,
			Kind:       movKind,
			Delta:      delta,
			DocumentID: doc.ID,
			Reference:  doc.Number,
			Notes:      notes,
		})
		if err != nil {
			return err
		}
		if movKind != entity.MovementInbound {
			continue
		}
		// La fila ya está bloqueada por el ledger
		p, err := repos.Products.GetForUpdate(ctx, line.ProductID)
		if err != nil {
			return err
		}
		cost := uc.cfg.CostPolicy.NextCost(mov.QuantityBefore, p.CostPrice, line.Quantity, line.UnitPrice)
		if err := repos.Products.UpdateCost(ctx, line.ProductID, cost); err != nil {
			return err
		}
	}
	return nil
}

func (uc *PostDocumentUseCase) validate(kind entity.DocumentKind, in *dto.PostDocumentRequest) error {
	in.Number = strings.TrimSpace(in.Number)
	if in.Number == "" {
		return domain.NewValidation("number", "requerido")
	}
	if in.CounterpartyID == "" {
		return domain.NewValidation("counterparty_id", "requerido")
	}
	if in.SalesOrderID != "" && kind != entity.DocumentOutboundNote {
		return domain.NewValidation("sales_order_id", "solo aplica a notas de salida")
	}
	if len(in.Items) == 0 && !uc.cfg.AllowEmptyDocuments {
		return domain.NewValidation("items", "el documento no tiene líneas")
	}
	for i, item := range in.Items {
		field := fmt.Sprintf("items[%d]", i)
		if item.ProductID == "" {
			return domain.NewValidation(field+".product_id", "requerido")
		}
		if !item.Quantity.GreaterThan(decimal.Zero) {
			return domain.NewValidation(field+".quantity", "debe ser mayor que cero")
		}
		if err := domain.CheckScale(field+".quantity", item.Quantity); err != nil {
			return err
		}
		if item.UnitPrice == nil {
			if kind == entity.DocumentInboundNote {
				return domain.NewValidation(field+".unit_price", "obligatorio en notas de entrada")
			}
			continue
		}
		if item.UnitPrice.LessThan(decimal.Zero) {
			return domain.NewValidation(field+".unit_price", "no puede ser negativo")
		}
		if err := domain.CheckScale(field+".unit_price", *item.UnitPrice); err != nil {
			return err
		}
	}
	return nil
}

// resolveCounterparty valida que la contraparte exista y esté activa; devuelve su nombre.
func resolveCounterparty(ctx context.Context, repos repository.TxRepos, kind entity.DocumentKind, id string) (string, error) {
	if kind.CounterpartyIsSupplier() {
		s, err := repos.Suppliers.GetByID(ctx, id)
		if err != nil {
			return "", err
		}
		if s == nil || !s.Lifecycle.IsActive() {
			return "", domain.NewValidation("counterparty_id", "proveedor no encontrado")
		}
		return s.Name, nil
	}
	c, err := repos.Customers.GetByID(ctx, id)
	if err != nil {
		return "", err
	}
	if c == nil || !c.Lifecycle.IsActive() {
		return "", domain.NewValidation("counterparty_id", "cliente no encontrado")
	}
	return c.Name, nil
}

// ToResponse mapea el documento a su DTO con las líneas en el orden original.
func ToResponse(doc *entity.Document) *dto.DocumentResponse {
	resp := &dto.DocumentResponse{
		ID:               doc.ID,
		Kind:             string(doc.Kind),
		Number:           doc.Number,
		CounterpartyID:   doc.CounterpartyID,
		CounterpartyName: doc.CounterpartyName,
		SalesOrderID:     doc.SalesOrderID,
		Status:           doc.Status,
		Total:            doc.Total,
		Notes:            doc.Notes,
		DueDate:          doc.DueDate,
		Date:             doc.Date,
		Items:            make([]dto.LineItemResponse, 0, len(doc.Lines)),
	}
	lines := make([]*entity.LineItem, len(doc.Lines))
	copy(lines, doc.Lines)
	sort.SliceStable(lines, func(i, j int) bool { return lines[i].Position < lines[j].Position })
	for _, l := range lines {
		resp.Items = append(resp.Items, dto.LineItemResponse{
			ID:          l.ID,
			ProductID:   l.ProductID,
			ProductName: l.ProductName,
			Quantity:    l.Quantity,
			UnitPrice:   l.UnitPrice,
			Subtotal:    l.Subtotal,
		})
	}
	return resp
}
