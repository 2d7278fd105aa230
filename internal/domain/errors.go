package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound              = errors.New("recurso no encontrado")
	ErrUserNotFound          = errors.New("usuario no encontrado")
	ErrEmailAlreadyExists    = errors.New("el email ya está registrado")
	ErrInvalidInput          = errors.New("entrada inválida")
	ErrDuplicate             = errors.New("recurso duplicado")
	ErrUnauthorized          = errors.New("no autorizado")
	ErrForbidden             = errors.New("acceso denegado")
	ErrInsufficientStock     = errors.New("stock insuficiente")
	ErrInsufficientAvailable = errors.New("stock disponible insuficiente")
	ErrInvalidProductType    = errors.New("el producto no admite este tipo de transacción")
	ErrInvalidMovementType   = errors.New("tipo de movimiento inválido")
	ErrInvalidStatus         = errors.New("estado inválido para la operación")
	ErrAlreadyConverted      = errors.New("la cotización ya fue convertida")
	ErrAlreadyCancelled      = errors.New("el alquiler ya está cancelado")
	ErrPaymentExceedsBalance = errors.New("el pago excede el balance pendiente")
)
