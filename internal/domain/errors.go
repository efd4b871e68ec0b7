package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrNotFound          = errors.New("recurso no encontrado")
	ErrInvalidInput      = errors.New("entrada inválida")
	ErrDuplicate         = errors.New("recurso duplicado")
	ErrUnauthorized      = errors.New("no autorizado")
	ErrConflict          = errors.New("conflicto con el estado actual")
	ErrNoRecipeDefined   = errors.New("el producto no tiene fórmula definida")
	ErrInsufficientStock = errors.New("stock insuficiente de materia prima")
	ErrAlreadyFinalized  = errors.New("la orden de producción ya fue finalizada")
	ErrProductionExists  = errors.New("el pedido ya tiene una orden de producción activa")
)
