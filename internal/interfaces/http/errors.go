package http

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/jmarte/equimed-api/internal/application/dto"
	"github.com/jmarte/equimed-api/internal/domain"
)

// respondError traduce un error de dominio a su código HTTP. Los errores no
// reconocidos son 500 con el mensaje del error.
func respondError(c *fiber.Ctx, err error) error {
	switch {
	case errors.Is(err, domain.ErrInvalidInput):
		return respond(c, fiber.StatusBadRequest, "VALIDATION", "datos inválidos")
	case errors.Is(err, domain.ErrInvalidProductType):
		return respond(c, fiber.StatusBadRequest, "INVALID_PRODUCT_TYPE", "el tipo de producto no permite esta operación")
	case errors.Is(err, domain.ErrInvalidMovementType):
		return respond(c, fiber.StatusBadRequest, "INVALID_MOVEMENT_TYPE", "tipo de movimiento no reconocido")
	case errors.Is(err, domain.ErrNotFound), errors.Is(err, domain.ErrUserNotFound):
		return respond(c, fiber.StatusNotFound, "NOT_FOUND", "recurso no encontrado")
	case errors.Is(err, domain.ErrForbidden):
		return respond(c, fiber.StatusForbidden, "FORBIDDEN", "acceso denegado al recurso")
	case errors.Is(err, domain.ErrUnauthorized):
		return respond(c, fiber.StatusUnauthorized, "UNAUTHORIZED", "credenciales inválidas")
	case errors.Is(err, domain.ErrDuplicate):
		return respond(c, fiber.StatusConflict, "DUPLICATE", "el recurso ya existe")
	case errors.Is(err, domain.ErrEmailAlreadyExists):
		return respond(c, fiber.StatusConflict, "EMAIL_EXISTS", "el email ya está registrado")
	case errors.Is(err, domain.ErrInsufficientStock):
		return respond(c, fiber.StatusConflict, "INSUFFICIENT_STOCK", "stock insuficiente")
	case errors.Is(err, domain.ErrInsufficientAvailable):
		return respond(c, fiber.StatusConflict, "INSUFFICIENT_AVAILABLE", "no hay unidades disponibles para alquiler")
	case errors.Is(err, domain.ErrAlreadyConverted):
		return respond(c, fiber.StatusConflict, "ALREADY_CONVERTED", "la cotización ya fue convertida")
	case errors.Is(err, domain.ErrAlreadyCancelled):
		return respond(c, fiber.StatusConflict, "ALREADY_CANCELLED", "la operación ya fue cancelada")
	case errors.Is(err, domain.ErrInvalidStatus):
		return respond(c, fiber.StatusConflict, "INVALID_STATUS", "el estado actual no permite esta transición")
	case errors.Is(err, domain.ErrPaymentExceedsBalance):
		return respond(c, fiber.StatusConflict, "PAYMENT_EXCEEDS_BALANCE", "el pago excede el balance pendiente")
	}
	return respond(c, fiber.StatusInternalServerError, "INTERNAL", err.Error())
}

func respond(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(dto.ErrorResponse{Code: code, Message: message})
}
