package http_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gofiber/fiber/v2"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Comercial-api/internal/application/catalog"
	"github.com/jhoicas/Comercial-api/internal/application/document"
	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/application/finance"
	"github.com/jhoicas/Comercial-api/internal/application/inventory"
	dominv "github.com/jhoicas/Comercial-api/internal/domain/inventory"
	"github.com/jhoicas/Comercial-api/internal/infrastructure/memory"
	infrapdf "github.com/jhoicas/Comercial-api/internal/infrastructure/pdf"
	apphttp "github.com/jhoicas/Comercial-api/internal/interfaces/http"
	"github.com/jhoicas/Comercial-api/pkg/logger"
)

// ──────────────────────────────────────────────────────────────────────────────
// Helpers de test
// ──────────────────────────────────────────────────────────────────────────────

// buildTestApp arma la API completa sobre el almacén en memoria.
func buildTestApp() *fiber.App {
	return buildTestAppWithLogger(logger.Nop())
}

func buildTestAppWithLogger(log *logger.Logger) *fiber.App {
	store := memory.NewStore()
	repos := store.Repos()
	ledger := inventory.NewStockLedger()
	fin := finance.NewFinancialPoster(30)
	docs := document.NewUseCase(store, repos, log)

	app := fiber.New()
	app.Use(apphttp.RequestContext(log))
	apphttp.Router(app, apphttp.RouterDeps{
		Catalog: catalog.NewUseCase(store, repos, ledger),
		Poster: document.NewPostDocumentUseCase(store, ledger, document.NewFulfillmentLinker(false),
			document.PosterConfig{AllowEmptyDocuments: true, CostPolicy: dominv.CostPolicyLast}, log, fin),
		Documents:     docs,
		DocumentPDF:   document.NewPDFUseCase(docs, infrapdf.NewMarotoPDFGenerator("Comercial Test")),
		StockQuery:    inventory.NewStockQueryUseCase(repos, 100),
		AdjustStock:   inventory.NewAdjustStockUseCase(store, ledger, log),
		Replenishment: inventory.NewReplenishmentUseCase(repos.Products),
		Ledger:        finance.NewLedgerUseCase(store, repos.Entries, repos.Customers, repos.Suppliers, fin, log),
		Log:           log,
	})
	return app
}

// call ejecuta la petición y decodifica el cuerpo en out (si no es nil).
func call(t *testing.T, app *fiber.App, method, path string, body any, out any) int {
	t.Helper()
	var reader io.Reader
	if body != nil {
		raw, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(raw)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if out != nil && len(raw) > 0 {
		require.NoError(t, json.Unmarshal(raw, out), string(raw))
	}
	return resp.StatusCode
}

func num(v int64) decimal.Decimal { return decimal.NewFromInt(v) }

type fixture struct {
	app        *fiber.App
	productID  string
	customerID string
	supplierID string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	app := buildTestApp()

	var p dto.ProductResponse
	status := call(t, app, http.MethodPost, "/api/products", dto.CreateProductRequest{
		Code: "P-1", Name: "Producto P", SalePrice: num(120), ReorderThreshold: num(10),
	}, &p)
	require.Equal(t, fiber.StatusCreated, status)

	var c, s dto.PartyResponse
	require.Equal(t, fiber.StatusCreated, call(t, app, http.MethodPost, "/api/customers", dto.CreatePartyRequest{Name: "Cliente", TaxID: "1"}, &c))
	require.Equal(t, fiber.StatusCreated, call(t, app, http.MethodPost, "/api/suppliers", dto.CreatePartyRequest{Name: "Proveedor", TaxID: "2"}, &s))

	return fixture{app: app, productID: p.ID, customerID: c.ID, supplierID: s.ID}
}

func line(productID string, qty int64, price *int64) []dto.LineItemRequest {
	item := dto.LineItemRequest{ProductID: productID, Quantity: num(qty)}
	if price != nil {
		p := num(*price)
		item.UnitPrice = &p
	}
	return []dto.LineItemRequest{item}
}

func ptr(v int64) *int64 { return &v }

// ──────────────────────────────────────────────────────────────────────────────
// Tests
// ──────────────────────────────────────────────────────────────────────────────

func TestAPI_PostingScenario(t *testing.T) {
	f := newFixture(t)

	// Entrada: P = 50
	var inbound dto.DocumentResponse
	status := call(t, f.app, http.MethodPost, "/api/documents/inbound-notes", dto.PostDocumentRequest{
		Number: "NE-1", CounterpartyID: f.supplierID, Items: line(f.productID, 50, ptr(100)),
	}, &inbound)
	require.Equal(t, fiber.StatusCreated, status)
	assert.Equal(t, "INBOUND_NOTE", inbound.Kind)
	assert.True(t, inbound.Total.Equal(num(5000)))
	assert.Equal(t, "Producto P", inbound.Items[0].ProductName)

	// Cuenta por pagar pendiente
	var entries dto.ListResponse[dto.EntryResponse]
	require.Equal(t, fiber.StatusOK, call(t, f.app, http.MethodGet, "/api/finance/entries?kind=PAYABLE", nil, &entries))
	require.Equal(t, 1, entries.Total)
	assert.Equal(t, "PENDING", entries.Items[0].Status)
	assert.True(t, entries.Items[0].Amount.Equal(num(5000)))

	// Salida de 60: 409 INSUFFICIENT_STOCK
	var errResp dto.ErrorResponse
	status = call(t, f.app, http.MethodPost, "/api/documents/outbound-notes", dto.PostDocumentRequest{
		Number: "NS-1", CounterpartyID: f.customerID, Items: line(f.productID, 60, nil),
	}, &errResp)
	assert.Equal(t, fiber.StatusConflict, status)
	assert.Equal(t, "INSUFFICIENT_STOCK", errResp.Code)

	// Pedido + salida vinculada
	var order dto.DocumentResponse
	require.Equal(t, fiber.StatusCreated, call(t, f.app, http.MethodPost, "/api/documents/sales-orders", dto.PostDocumentRequest{
		Number: "PV-1", CounterpartyID: f.customerID, Items: line(f.productID, 10, ptr(150)),
	}, &order))
	assert.Equal(t, "OPEN", order.Status)

	require.Equal(t, fiber.StatusCreated, call(t, f.app, http.MethodPost, "/api/documents/outbound-notes", dto.PostDocumentRequest{
		Number: "NS-2", CounterpartyID: f.customerID, SalesOrderID: order.ID, Items: line(f.productID, 10, ptr(150)),
	}, nil))

	var got dto.DocumentResponse
	require.Equal(t, fiber.StatusOK, call(t, f.app, http.MethodGet, "/api/documents/sales-orders/"+order.ID, nil, &got))
	assert.Equal(t, "FULFILLED", got.Status)

	var stock dto.ListResponse[dto.StockLevelResponse]
	require.Equal(t, fiber.StatusOK, call(t, f.app, http.MethodGet, "/api/stock", nil, &stock))
	require.Equal(t, 1, stock.Total)
	assert.True(t, stock.Items[0].QuantityOnHand.Equal(num(40)))
	assert.Equal(t, "OK", stock.Items[0].Status)

	var movs dto.ListResponse[dto.MovementResponse]
	require.Equal(t, fiber.StatusOK, call(t, f.app, http.MethodGet, "/api/stock/movements?product_id="+f.productID, nil, &movs))
	require.Equal(t, 2, movs.Total)
	assert.Equal(t, "OUTBOUND", movs.Items[0].Kind)
	assert.True(t, movs.Items[0].QuantityBefore.Equal(num(50)))
	assert.True(t, movs.Items[0].QuantityAfter.Equal(num(40)))

	var check dto.HistoryCheckResponse
	require.Equal(t, fiber.StatusOK, call(t, f.app, http.MethodGet, "/api/stock/products/"+f.productID+"/verify", nil, &check))
	assert.True(t, check.Consistent)

	var summary dto.FinanceSummaryResponse
	require.Equal(t, fiber.StatusOK, call(t, f.app, http.MethodGet, "/api/finance/summary", nil, &summary))
	assert.True(t, summary.ProjectedBalance.Equal(num(1500-5000)))
	assert.True(t, summary.Balance.IsZero())
}

func TestAPI_ErrorMapping(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		name       string
		method     string
		path       string
		body       any
		wantStatus int
		wantCode   string
	}{
		{"tipo de documento desconocido", http.MethodGet, "/api/documents/invoices", nil, fiber.StatusBadRequest, "VALIDATION"},
		{"producto inexistente", http.MethodPost, "/api/documents/quotes",
			dto.PostDocumentRequest{Number: "OR-1", CounterpartyID: f.customerID, Items: line("ghost", 1, nil)},
			fiber.StatusNotFound, "PRODUCT_NOT_FOUND"},
		{"cantidad no positiva", http.MethodPost, "/api/documents/quotes",
			dto.PostDocumentRequest{Number: "OR-2", CounterpartyID: f.customerID, Items: line(f.productID, 0, nil)},
			fiber.StatusBadRequest, "VALIDATION"},
		{"documento inexistente", http.MethodGet, "/api/documents/quotes/nope", nil, fiber.StatusNotFound, "DOCUMENT_NOT_FOUND"},
		{"asiento inexistente", http.MethodGet, "/api/finance/entries/nope", nil, fiber.StatusNotFound, "NOT_FOUND"},
		{"producto duplicado", http.MethodPost, "/api/products",
			dto.CreateProductRequest{Code: "P-1", Name: "Otro"}, fiber.StatusConflict, "DUPLICATE"},
		{"ajuste sin cantidad", http.MethodPost, "/api/stock/adjustments",
			dto.AdjustStockRequest{ProductID: f.productID}, fiber.StatusBadRequest, "VALIDATION"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var errResp dto.ErrorResponse
			status := call(t, f.app, tt.method, tt.path, tt.body, &errResp)
			assert.Equal(t, tt.wantStatus, status)
			assert.Equal(t, tt.wantCode, errResp.Code)
			assert.NotEmpty(t, errResp.Message)
		})
	}
}

func TestAPI_InvalidBody(t *testing.T) {
	app := buildTestApp()
	req := httptest.NewRequest(http.MethodPost, "/api/products", bytes.NewReader([]byte("{not json")))
	req.Header.Set("Content-Type", "application/json")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	defer resp.Body.Close()

	var errResp dto.ErrorResponse
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&errResp))
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
	assert.Equal(t, "INVALID_BODY", errResp.Code)
}

func TestAPI_DocumentLifecycle(t *testing.T) {
	f := newFixture(t)

	var quote dto.DocumentResponse
	require.Equal(t, fiber.StatusCreated, call(t, f.app, http.MethodPost, "/api/documents/quotes", dto.PostDocumentRequest{
		Number: "OR-1", CounterpartyID: f.customerID, DueDate: "2026-12-31", Items: line(f.productID, 2, nil),
	}, &quote))
	assert.Equal(t, "PENDING", quote.Status)
	assert.True(t, quote.Total.Equal(num(240)))

	var approved dto.DocumentResponse
	require.Equal(t, fiber.StatusOK, call(t, f.app, http.MethodPatch, "/api/documents/quotes/"+quote.ID+"/status",
		dto.UpdateStatusRequest{Status: "APPROVED"}, &approved))
	assert.Equal(t, "APPROVED", approved.Status)

	var errResp dto.ErrorResponse
	assert.Equal(t, fiber.StatusConflict, call(t, f.app, http.MethodPatch, "/api/documents/quotes/"+quote.ID+"/status",
		dto.UpdateStatusRequest{Status: "REJECTED"}, &errResp))
	assert.Equal(t, "CONFLICT", errResp.Code)

	var list dto.ListResponse[dto.DocumentResponse]
	require.Equal(t, fiber.StatusOK, call(t, f.app, http.MethodGet, "/api/documents/quotes?status=APPROVED", nil, &list))
	assert.Equal(t, 1, list.Total)

	// PDF
	req := httptest.NewRequest(http.MethodGet, "/api/documents/quotes/"+quote.ID+"/pdf", nil)
	resp, err := f.app.Test(req, -1)
	require.NoError(t, err)
	body, _ := io.ReadAll(resp.Body)
	resp.Body.Close()
	assert.Equal(t, fiber.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/pdf", resp.Header.Get("Content-Type"))
	assert.Contains(t, resp.Header.Get("Content-Disposition"), "quote_OR-1.pdf")
	assert.True(t, bytes.HasPrefix(body, []byte("%PDF")))

	assert.Equal(t, fiber.StatusNoContent, call(t, f.app, http.MethodDelete, "/api/documents/quotes/"+quote.ID, nil, nil))
	assert.Equal(t, fiber.StatusNotFound, call(t, f.app, http.MethodGet, "/api/documents/quotes/"+quote.ID, nil, nil))
}

func TestAPI_StockAdjustmentAndReplenishment(t *testing.T) {
	f := newFixture(t)

	qty := num(4)
	var mov dto.MovementResponse
	require.Equal(t, fiber.StatusCreated, call(t, f.app, http.MethodPost, "/api/stock/adjustments",
		dto.AdjustStockRequest{ProductID: f.productID, NewQuantity: &qty, Notes: "conteo"}, &mov))
	assert.Equal(t, "ADJUSTMENT", mov.Kind)
	assert.True(t, mov.QuantityAfter.Equal(num(4)))

	var repl struct {
		Total          int                              `json:"total"`
		Replenishments []dto.ReplenishmentSuggestionDTO `json:"replenishments"`
	}
	require.Equal(t, fiber.StatusOK, call(t, f.app, http.MethodGet, "/api/stock/replenishment-list", nil, &repl))
	require.Equal(t, 1, repl.Total)
	assert.True(t, repl.Replenishments[0].SuggestedOrderQty.Equal(num(11)))
}

func TestAPI_FinanceEntryLifecycle(t *testing.T) {
	f := newFixture(t)

	var entry dto.EntryResponse
	require.Equal(t, fiber.StatusCreated, call(t, f.app, http.MethodPost, "/api/finance/entries", dto.CreateEntryRequest{
		Kind: "RECEIVABLE", Description: "Servicio", Amount: num(200), CounterpartyID: f.customerID,
	}, &entry))
	assert.Equal(t, "Cliente", entry.CounterpartyName)

	var paid dto.EntryResponse
	require.Equal(t, fiber.StatusOK, call(t, f.app, http.MethodPatch, "/api/finance/entries/"+entry.ID+"/status",
		dto.UpdateStatusRequest{Status: "PAID"}, &paid))
	require.NotNil(t, paid.PaidAt)

	var again dto.EntryResponse
	require.Equal(t, fiber.StatusOK, call(t, f.app, http.MethodPatch, "/api/finance/entries/"+entry.ID+"/status",
		dto.UpdateStatusRequest{Status: "PAID"}, &again))
	require.NotNil(t, again.PaidAt)
	assert.True(t, again.PaidAt.Equal(*paid.PaidAt))

	var summary dto.FinanceSummaryResponse
	require.Equal(t, fiber.StatusOK, call(t, f.app, http.MethodGet, "/api/finance/summary", nil, &summary))
	assert.True(t, summary.Balance.Equal(num(200)))

	assert.Equal(t, fiber.StatusNoContent, call(t, f.app, http.MethodDelete, "/api/finance/entries/"+entry.ID, nil, nil))
}

func TestRequestContext_SetsRequestID(t *testing.T) {
	app := buildTestApp()

	req := httptest.NewRequest(http.MethodGet, "/api/stock", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.NotEmpty(t, resp.Header.Get(apphttp.HeaderRequestID))

	req = httptest.NewRequest(http.MethodGet, "/api/stock", nil)
	req.Header.Set(apphttp.HeaderRequestID, "abc-123")
	resp, err = app.Test(req, -1)
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, "abc-123", resp.Header.Get(apphttp.HeaderRequestID))
}

func TestRequestLogCarriesComponentAndRequestID(t *testing.T) {
	var buf bytes.Buffer
	app := buildTestAppWithLogger(logger.New(logger.Config{Env: "production", Level: "debug", Output: &buf}))

	body, err := json.Marshal(dto.PostDocumentRequest{Number: "CT-1", CounterpartyID: "nadie"})
	require.NoError(t, err)
	req := httptest.NewRequest(http.MethodPost, "/api/documents/quotes", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set(apphttp.HeaderRequestID, "req-42")
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)

	var rejected map[string]any
	for _, line := range bytes.Split(bytes.TrimSpace(buf.Bytes()), []byte("\n")) {
		var entry map[string]any
		require.NoError(t, json.Unmarshal(line, &entry))
		if entry["message"] == "documento rechazado" {
			rejected = entry
		}
	}
	require.NotNil(t, rejected, buf.String())
	assert.Equal(t, "req-42", rejected["request_id"])
	assert.Equal(t, "document.poster", rejected["component"])
	assert.Equal(t, "warn", rejected["level"])
}
