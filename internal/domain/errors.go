package domain

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrInsufficientStock = errors.New("stock insuficiente")
)

// Códigos estables expuestos al cliente (dto.ErrorResponse.Code).
const (
	KindProductNotFound   = "PRODUCT_NOT_FOUND"
	KindInsufficientStock = "INSUFFICIENT_STOCK"
	KindDocumentNotFound  = "DOCUMENT_NOT_FOUND"
	KindValidation        = "VALIDATION"
	KindDuplicate         = "DUPLICATE"
	KindConflict          = "CONFLICT"
	KindNotFound          = "NOT_FOUND"
	KindInternal          = "INTERNAL"
)

// ProductNotFoundError una línea referencia un producto inexistente (o retirado).
type ProductNotFoundError struct {
	ProductID string
}

func (e *ProductNotFoundError) Error() string {
	return fmt.Sprintf("producto %s no encontrado", e.ProductID)
}

func (e *ProductNotFoundError) Unwrap() error { return ErrNotFound }

// Kind código de error.
func (e *ProductNotFoundError) Kind() string { return KindProductNotFound }

// InsufficientStockError una salida dejaría el stock del producto en negativo.
type InsufficientStockError struct {
	ProductID   string
	ProductName string
	Requested   decimal.Decimal
	Available   decimal.Decimal
}

func (e *InsufficientStockError) Error() string {
	name := e.ProductName
	if name == "" {
		name = e.ProductID
	}
	return fmt.Sprintf("stock insuficiente para el producto %s: solicitado %s, disponible %s",
		name, e.Requested.String(), e.Available.String())
}

func (e *InsufficientStockError) Unwrap() error { return ErrInsufficientStock }

// Kind código de error.
func (e *InsufficientStockError) Kind() string { return KindInsufficientStock }

// DocumentNotFoundError lectura/borrado/vínculo contra un documento inexistente.
type DocumentNotFoundError struct {
	DocKind string
	ID      string
}

// NewDocumentNotFound construye el error; kind puede ir vacío si no se conoce.
func NewDocumentNotFound(kind, id string) *DocumentNotFoundError {
	return &DocumentNotFoundError{DocKind: kind, ID: id}
}

func (e *DocumentNotFoundError) Error() string {
	if e.DocKind != "" {
		return fmt.Sprintf("documento %s %s no encontrado", e.DocKind, e.ID)
	}
	return fmt.Sprintf("documento %s no encontrado", e.ID)
}

func (e *DocumentNotFoundError) Unwrap() error { return ErrNotFound }

// Kind código de error.
func (e *DocumentNotFoundError) Kind() string { return KindDocumentNotFound }

// ValidationError campo requerido ausente, cantidad no positiva, fecha mal formada, etc.
type ValidationError struct {
	Field  string
	Reason string
}

// NewValidation atajo para construir un ValidationError.
func NewValidation(field, reason string) *ValidationError {
	return &ValidationError{Field: field, Reason: reason}
}

func (e *ValidationError) Error() string {
	if e.Field == "" {
		return e.Reason
	}
	return e.Field + ": " + e.Reason
}

func (e *ValidationError) Unwrap() error { return ErrInvalidInput }

// Kind código de error.
func (e *ValidationError) Kind() string { return KindValidation }

// KindOf devuelve el código estable de cualquier error del dominio; KindInternal si no es del dominio.
func KindOf(err error) string {
	var k interface{ Kind() string }
	if errors.As(err, &k) {
		return k.Kind()
	}
	switch {
	case errors.Is(err, ErrInvalidInput):
		return KindValidation
	case errors.Is(err, ErrDuplicate):
		return KindDuplicate
	case errors.Is(err, ErrConflict):
		return KindConflict
	case errors.Is(err, ErrInsufficientStock):
		return KindInsufficientStock
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	}
	return KindInternal
}
