package document

import (
	"context"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/internal/domain/repository"
)

// PostedEvent se emite al contabilizar un documento, antes del commit.
type PostedEvent struct {
	Document *entity.Document
}

// PostingHook consumidor de documentos contabilizados (p. ej. el Financial Poster).
// Corre dentro de la misma transacción: si devuelve error, el documento completo hace rollback.
type PostingHook interface {
	OnPosted(ctx context.Context, repos repository.TxRepos, ev PostedEvent) error
}

// PostingHookFunc adapta una función a PostingHook.
type PostingHookFunc func(ctx context.Context, repos repository.TxRepos, ev PostedEvent) error

// OnPosted implementa PostingHook.
func (f PostingHookFunc) OnPosted(ctx context.Context, repos repository.TxRepos, ev PostedEvent) error {
	return f(ctx, repos, ev)
}

// PDFGenerator genera la representación imprimible de un documento contabilizado.
type PDFGenerator interface {
	GenerateDocumentPDF(ctx context.Context, doc *entity.Document) ([]byte, error)
}
