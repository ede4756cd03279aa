package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercial-api/internal/application/document"
	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/internal/domain/entity"
	"github.com/jhoicas/Comercial-api/pkg/logger"
)

// DocumentHandler contabilización y consulta de documentos comerciales.
// :kind es el slug del tipo: quotes, sales-orders, inbound-notes, outbound-notes.
type DocumentHandler struct {
	poster *document.PostDocumentUseCase
	docs   *document.UseCase
	pdf    *document.PDFUseCase
	log    *logger.Logger
}

// NewDocumentHandler construye el handler.
func NewDocumentHandler(poster *document.PostDocumentUseCase, docs *document.UseCase, pdf *document.PDFUseCase, log *logger.Logger) *DocumentHandler {
	return &DocumentHandler{poster: poster, docs: docs, pdf: pdf, log: log}
}

func (h *DocumentHandler) kind(c *fiber.Ctx) (entity.DocumentKind, error) {
	kind, ok := entity.ParseDocumentKind(c.Params("kind"))
	if !ok {
		return "", domain.NewValidation("kind", "tipo de documento desconocido")
	}
	return kind, nil
}

// Post godoc
// @Summary      Contabilizar documento
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        kind  path  string                    true  "quotes | sales-orders | inbound-notes | outbound-notes"
// @Param        body  body  dto.PostDocumentRequest  true  "Cabecera y líneas"
// @Success      201   {object}  dto.DocumentResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/documents/{kind} [post]
func (h *DocumentHandler) Post(c *fiber.Ctx) error {
	kind, err := h.kind(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var in dto.PostDocumentRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.poster.Post(c.UserContext(), kind, in)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// List godoc
// @Summary      Listar documentos
// @Tags         documents
// @Produce      json
// @Param        kind    path   string  true   "Tipo"
// @Param        status  query  string  false  "Filtrar por estado"
// @Success      200  {object}  dto.ListResponse[dto.DocumentResponse]
// @Router       /api/documents/{kind} [get]
func (h *DocumentHandler) List(c *fiber.Ctx) error {
	kind, err := h.kind(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	list, err := h.docs.List(c.UserContext(), kind, c.Query("status"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(dto.NewList(list))
}

// GetByID godoc
// @Summary      Obtener documento con sus líneas
// @Tags         documents
// @Produce      json
// @Success      200  {object}  dto.DocumentResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{kind}/{id} [get]
func (h *DocumentHandler) GetByID(c *fiber.Ctx) error {
	kind, err := h.kind(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	out, err := h.docs.Get(c.UserContext(), kind, c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// UpdateStatus godoc
// @Summary      Cambiar estado (aprobar/rechazar cotización, cancelar pedido)
// @Tags         documents
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UpdateStatusRequest  true  "Nuevo estado"
// @Success      200  {object}  dto.DocumentResponse
// @Failure      400  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/documents/{kind}/{id}/status [patch]
func (h *DocumentHandler) UpdateStatus(c *fiber.Ctx) error {
	kind, err := h.kind(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	var in dto.UpdateStatusRequest
	if err := c.BodyParser(&in); err != nil {
		return badBody(c)
	}
	out, err := h.docs.UpdateStatus(c.UserContext(), kind, c.Params("id"), in.Status)
	if err != nil {
		return respondError(c, h.log, err)
	}
	return c.JSON(out)
}

// Delete godoc
// @Summary      Eliminar documento (las notas con movimientos no se pueden borrar)
// @Tags         documents
// @Success      204
// @Failure      404  {object}  dto.ErrorResponse
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/documents/{kind}/{id} [delete]
func (h *DocumentHandler) Delete(c *fiber.Ctx) error {
	kind, err := h.kind(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	if err := h.docs.Delete(c.UserContext(), kind, c.Params("id")); err != nil {
		return respondError(c, h.log, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

// DownloadPDF godoc
// @Summary      Descargar PDF del documento
// @Tags         documents
// @Produce      application/pdf
// @Success      200
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/documents/{kind}/{id}/pdf [get]
func (h *DocumentHandler) DownloadPDF(c *fiber.Ctx) error {
	kind, err := h.kind(c)
	if err != nil {
		return respondError(c, h.log, err)
	}
	pdfBytes, filename, err := h.pdf.DownloadPDF(c.UserContext(), kind, c.Params("id"))
	if err != nil {
		return respondError(c, h.log, err)
	}
	c.Set(fiber.HeaderContentType, "application/pdf")
	c.Set(fiber.HeaderContentDisposition, `attachment; filename="`+filename+`"`)
	return c.Send(pdfBytes)
}
