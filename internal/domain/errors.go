package domain

import "errors"

// Errores de dominio (sin dependencias externas).
var (
	ErrInvalidInput           = errors.New("entrada inválida")
	ErrNotFound               = errors.New("recurso no encontrado")
	ErrLocationNotFound       = errors.New("ubicación no encontrada")
	ErrRecordNotFound         = errors.New("registro de stock no encontrado")
	ErrDuplicateLocationName  = errors.New("ya existe una ubicación con ese nombre")
	ErrInsufficientStock      = errors.New("stock insuficiente")
	ErrInsufficientWholeBoxes = errors.New("no hay suficientes cajas completas")
	ErrProtectedLocation      = errors.New("la ubicación por defecto no puede eliminarse")
	ErrUndoPayloadStale       = errors.New("la acción no puede revertirse: el estado referenciado ya no existe")
	ErrPackagingNotTracked    = errors.New("el artículo no maneja empaque por cajas")
	ErrDuplicate              = errors.New("recurso duplicado")
)
