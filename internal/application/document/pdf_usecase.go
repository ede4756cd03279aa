package document

import (
	"context"
	"fmt"
	"strings"

	"github.com/jhoicas/Comercial-api/internal/domain/entity"
)

// PDFUseCase genera la representación imprimible de un documento contabilizado.
type PDFUseCase struct {
	docs      *UseCase
	generator PDFGenerator
}

// NewPDFUseCase construye el caso de uso.
func NewPDFUseCase(docs *UseCase, generator PDFGenerator) *PDFUseCase {
	return &PDFUseCase{docs: docs, generator: generator}
}

// DownloadPDF devuelve (pdfBytes, filename). DocumentNotFoundError si el documento no existe.
func (uc *PDFUseCase) DownloadPDF(ctx context.Context, kind entity.DocumentKind, id string) ([]byte, string, error) {
	doc, err := uc.docs.load(ctx, kind, id)
	if err != nil {
		return nil, "", err
	}
	pdfBytes, err := uc.generator.GenerateDocumentPDF(ctx, doc)
	if err != nil {
		return nil, "", fmt.Errorf("pdf: generación fallida: %w", err)
	}
	filename := fmt.Sprintf("%s_%s.pdf", strings.ToLower(string(doc.Kind)), doc.Number)
	return pdfBytes, filename, nil
}
