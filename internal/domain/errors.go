package domain

import (
	"errors"
	"fmt"
)

// Errores de dominio (sin dependencias externas).
// Las clases base forman la taxonomía que ve el llamador; los errores específicos
// envuelven su clase para que errors.Is funcione con ambos.
var (
	ErrNotFound           = errors.New("recurso no encontrado")
	ErrInvalidInput       = errors.New("entrada inválida")
	ErrStorageUnavailable = errors.New("almacenamiento no disponible")
	ErrConflict           = errors.New("conflicto con el estado actual")
	ErrDuplicate          = errors.New("recurso duplicado")
	ErrUnauthorized       = errors.New("no autorizado")
	ErrForbidden          = errors.New("acceso denegado")
)

var (
	ErrInvoiceNotFound      = fmt.Errorf("factura no encontrada: %w", ErrNotFound)
	ErrPaymentNotFound      = fmt.Errorf("pago no encontrado: %w", ErrNotFound)
	ErrShipmentNotFound     = fmt.Errorf("envío no encontrado: %w", ErrNotFound)
	ErrPackingListNotFound  = fmt.Errorf("packing list no encontrada: %w", ErrNotFound)
	ErrNotificationNotFound = fmt.Errorf("notificación no encontrada: %w", ErrNotFound)

	ErrInvalidAmount = fmt.Errorf("monto debe ser mayor que cero: %w", ErrInvalidInput)
	ErrInvalidWeight = fmt.Errorf("peso debe ser mayor que cero: %w", ErrInvalidInput)
	ErrInvalidTier   = fmt.Errorf("tarifa de servicio o de manejo ausente: %w", ErrInvalidInput)
	ErrInvalidMethod = fmt.Errorf("método de pago inválido: %w", ErrInvalidInput)
	ErrInvalidStatus = fmt.Errorf("estado de envío inválido: %w", ErrInvalidInput)
	ErrInvalidStage  = fmt.Errorf("etapa de ruta inválida: %w", ErrInvalidInput)
)

// Códigos de la taxonomía expuestos en las respuestas de error.
const (
	KindNotFound           = "NOT_FOUND"
	KindInvalidInput       = "VALIDATION"
	KindStorageUnavailable = "STORAGE_UNAVAILABLE"
	KindConflict           = "CONFLICT"
	KindUnauthorized       = "UNAUTHORIZED"
	KindForbidden          = "FORBIDDEN"
	KindInternal           = "INTERNAL"
)

// Kind clasifica un error en la taxonomía. ErrDuplicate cuenta como conflicto.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrNotFound):
		return KindNotFound
	case errors.Is(err, ErrInvalidInput):
		return KindInvalidInput
	case errors.Is(err, ErrStorageUnavailable):
		return KindStorageUnavailable
	case errors.Is(err, ErrConflict), errors.Is(err, ErrDuplicate):
		return KindConflict
	case errors.Is(err, ErrUnauthorized):
		return KindUnauthorized
	case errors.Is(err, ErrForbidden):
		return KindForbidden
	default:
		return KindInternal
	}
}

// IsRetryable indica si la operación completa puede reintentarse sin riesgo:
// las mutaciones son unidades atómicas, así que un fallo confirmado no aplicó nada.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrStorageUnavailable) || errors.Is(err, ErrConflict)
}
