package repository

import (
	"context"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// DocumentFilter filtro del listado de documentos.
type DocumentFilter struct {
	Kind   entity.DocumentKind
	Status string
}

// DocumentRepository puerto de persistencia para documentos comerciales y sus líneas.
// GetByID/GetForUpdate devuelven (nil, nil) si el documento no existe.
type DocumentRepository interface {
	// Create persiste cabecera y líneas; domain.ErrDuplicate si el número ya existe.
	Create(ctx context.Context, doc *entity.Document) error
	GetByID(ctx context.Context, id string) (*entity.Document, error)
	GetForUpdate(ctx context.Context, id string) (*entity.Document, error)
	UpdateStatus(ctx context.Context, id, status string) error
	List(ctx context.Context, filter DocumentFilter) ([]*entity.Document, error)
	Delete(ctx context.Context, id string) error
}
