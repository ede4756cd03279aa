package http

import (
	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Comercial-api/internal/application/dto"
	"github.com/jhoicas/Comercial-api/internal/domain"
	"github.com/jhoicas/Comercial-api/pkg/logger"
)

// statusByKind código HTTP por tipo de error del dominio.
var statusByKind = map[string]int{
	domain.KindValidation:        fiber.StatusBadRequest,
	domain.KindProductNotFound:   fiber.StatusNotFound,
	domain.KindDocumentNotFound:  fiber.StatusNotFound,
	domain.KindNotFound:          fiber.StatusNotFound,
	domain.KindInsufficientStock: fiber.StatusConflict,
	domain.KindDuplicate:         fiber.StatusConflict,
	domain.KindConflict:          fiber.StatusConflict,
}

// respondError traduce un error del dominio a dto.ErrorResponse. Los errores internos
// se registran y se devuelven sin detalle.
func respondError(c *fiber.Ctx, log *logger.Logger, err error) error {
	kind := domain.KindOf(err)
	status, ok := statusByKind[kind]
	if !ok {
		log.FromContext(c.UserContext()).Error().Err(err).Str("path", c.Path()).Msg("error interno")
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: domain.KindInternal, Message: "error interno"})
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: kind, Message: err.Error()})
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}
