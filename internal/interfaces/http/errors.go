package http

import (
	"errors"
	"strings"

	"github.com/gofiber/fiber/v2"

	"github.com/jhoicas/Inventario-suministros/internal/application/dto"
	"github.com/jhoicas/Inventario-suministros/internal/domain"
)

// errorMapping error de dominio → status HTTP y código de respuesta.
var errorMapping = []struct {
	err     error
	status  int
	code    string
	message string
}{
	{domain.ErrInvalidInput, fiber.StatusBadRequest, "VALIDATION", "datos inválidos"},
	{domain.ErrUnauthorized, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas"},
	{domain.ErrForbidden, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado"},
	{domain.ErrUserNotFound, fiber.StatusNotFound, "NOT_FOUND", "usuario no encontrado"},
	{domain.ErrNotFound, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado"},
	{domain.ErrInsufficientStock, fiber.StatusConflict, "INSUFFICIENT_STOCK", "stock insuficiente"},
	{domain.ErrUsernameExists, fiber.StatusConflict, "USERNAME_EXISTS", "el nombre de usuario ya está registrado"},
	{domain.ErrDuplicate, fiber.StatusConflict, "DUPLICATE", "el recurso ya existe"},
	{domain.ErrInUse, fiber.StatusConflict, "CONFLICT", "el recurso tiene movimientos asociados"},
	{domain.ErrConflict, fiber.StatusConflict, "CONFLICT", "operación concurrente, intente de nuevo"},
	{domain.ErrStoreUnavailable, fiber.StatusServiceUnavailable, "STORE_UNAVAILABLE", "base de datos no disponible"},
}

// respondError traduce un error de los casos de uso a la respuesta HTTP.
// Los errores no clasificados responden 500 sin exponer el detalle.
func respondError(c *fiber.Ctx, err error) error {
	for _, m := range errorMapping {
		if errors.Is(err, m.err) {
			msg := m.message
			if (m.status == fiber.StatusBadRequest || m.status == fiber.StatusNotFound) && fromSentinel(err, m.err) {
				msg = err.Error()
			}
			return c.Status(m.status).JSON(dto.ErrorResponse{Code: m.code, Message: msg})
		}
	}
	requestLogger(c).Error().Err(err).Msg("error no controlado")
	return c.Status(fiber.StatusInternalServerError).JSON(dto.ErrorResponse{Code: "INTERNAL", Message: "error interno"})
}

// fromSentinel true si el mensaje lo armó el dominio ("<centinela>: detalle"). Los errores
// envueltos por los repositorios ("get receipt: ...") no se exponen.
func fromSentinel(err, sentinel error) bool {
	return strings.HasPrefix(err.Error(), sentinel.Error())
}

func badBody(c *fiber.Ctx) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "INVALID_BODY", Message: "cuerpo inválido"})
}

func badParam(c *fiber.Ctx, msg string) error {
	return c.Status(fiber.StatusBadRequest).JSON(dto.ErrorResponse{Code: "VALIDATION", Message: msg})
}
