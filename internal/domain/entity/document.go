package entity

import (
	"time"

	"github.com/shopspring/decimal"
)

// DocumentKind variante de documento comercial.
type DocumentKind string

const (
	DocumentQuote        DocumentKind = "QUOTE"
	DocumentSalesOrder   DocumentKind = "SALES_ORDER"
	DocumentInboundNote  DocumentKind = "INBOUND_NOTE"
	DocumentOutboundNote DocumentKind = "OUTBOUND_NOTE"
)

// ParseDocumentKind acepta el valor canónico o el slug de la ruta HTTP.
func ParseDocumentKind(s string) (DocumentKind, bool) {
	switch s {
	case string(DocumentQuote), "quotes":
		return DocumentQuote, true
	case string(DocumentSalesOrder), "sales-orders":
		return DocumentSalesOrder, true
	case string(DocumentInboundNote), "inbound-notes":
		return DocumentInboundNote, true
	case string(DocumentOutboundNote), "outbound-notes":
		return DocumentOutboundNote, true
	}
	return "", false
}

// MovesStock indica si el documento genera movimientos de stock al contabilizarse.
func (k DocumentKind) MovesStock() bool {
	return k == DocumentInboundNote || k == DocumentOutboundNote
}

// CounterpartyIsSupplier las notas de entrada son contra proveedor; el resto contra cliente.
func (k DocumentKind) CounterpartyIsSupplier() bool { return k == DocumentInboundNote }

// Estados de cotización.
const (
	QuoteStatusPending  = "PENDING"
	QuoteStatusApproved = "APPROVED"
	QuoteStatusRejected = "REJECTED"
)

// Estados de pedido de venta. OPEN→FULFILLED y OPEN→CANCELLED son de una sola vía.
const (
	OrderStatusOpen      = "OPEN"
	OrderStatusFulfilled = "FULFILLED"
	OrderStatusCancelled = "CANCELLED"
)

// DefaultStatus estado inicial por tipo; las notas no tienen estado propio.
func (k DocumentKind) DefaultStatus() string {
	switch k {
	case DocumentQuote:
		return QuoteStatusPending
	case DocumentSalesOrder:
		return OrderStatusOpen
	}
	return ""
}

// Document cabecera de un documento comercial (cotización, pedido, nota de entrada/salida).
// Total se calcula al contabilizar y no se recalcula después.
type Document struct {
	ID               string
	Kind             DocumentKind
	Number           string // único
	CounterpartyID   string // cliente o proveedor según Kind
	CounterpartyName string // solo lectura
	SalesOrderID     string // solo OUTBOUND_NOTE, opcional
	Status           string
	Total            decimal.Decimal
	Notes            string
	DueDate          *time.Time // validez de la cotización / entrega del pedido
	Date             time.Time
	Lines            []*LineItem
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// LineItem línea de un documento. Subtotal = Quantity × UnitPrice.
type LineItem struct {
	ID          string
	DocumentID  string
	Position    int // orden original dentro del documento
	ProductID   string
	ProductName string
	Quantity    decimal.Decimal
	UnitPrice   decimal.Decimal
	Subtotal    decimal.Decimal
}
