package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/application/dto"
	"github.com/ibrahimkimaro/kaluuuexpress-backend-app/internal/domain"
)

var statusByKind = map[string]int{
	domain.KindNotFound:           fiber.StatusNotFound,
	domain.KindInvalidInput:       fiber.StatusBadRequest,
	domain.KindStorageUnavailable: fiber.StatusServiceUnavailable,
	domain.KindConflict:           fiber.StatusConflict,
	domain.KindUnauthorized:       fiber.StatusUnauthorized,
	domain.KindForbidden:          fiber.StatusForbidden,
}

// writeError traduce un error de caso de uso a status + ErrorResponse.
// Los errores internos no exponen el detalle al cliente.
func writeError(c *fiber.Ctx, err error) error {
	kind := domain.Kind(err)
	status, ok := statusByKind[kind]
	if !ok {
		return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: domain.KindInternal, Message: "error interno"})
	}
	if kind == domain.KindStorageUnavailable {
		c.Set(fiber.HeaderRetryAfter, "1")
	}
	return c.Status(status).JSON(dto.ErrorResponse{Code: kind, Message: err.Error()})
}

func badRequest(c *fiber.Ctx, code, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: code, Message: msg})
}

// ErrorHandler manejador de errores de Fiber: los *fiber.Error conservan su status,
// el resto pasa por el mapeo de dominio.
func ErrorHandler(c *fiber.Ctx, err error) error {
	var fe *fiber.Error
	if errors.As(err, &fe) {
		return c.Status(fe.Code).JSON(dto.ErrorResponse{Code: "HTTP_ERROR", Message: fe.Message})
	}
	return writeError(c, err)
}
