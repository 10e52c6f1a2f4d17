package repository

import (
	"time"

	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
)

// MovementRepository acceso al libro de movimientos (append-only).
//
// Los métodos Delete* existen solo para el motor de undo: retiran
// exclusivamente las entradas creadas por la acción que se revierte,
// emparejadas por clave exacta + cantidad + tipo + ventana temporal, nunca
// por patrones amplios.
type MovementRepository interface {
	Create(m *entity.Movement) error
	List(filter entity.MovementFilter) ([]*entity.Movement, error)
	// DeleteMatching elimina las entradas con clave, cantidad y tipo
	// exactos cuyo timestamp cae dentro de la ventana [around-w, around+w].
	// subject vacío no filtra por sujeto.
	DeleteMatching(key entity.ItemKey, quantity int, kind, subject string, around time.Time, window time.Duration) (int, error)
	// DeleteByDestinationSince elimina entradas de un tipo hacia una
	// ubicación desde un instante dado (retracción de los traslados
	// automáticos de una eliminación de ubicación o de una auditoría).
	DeleteByDestinationSince(toLocation, kind string, since time.Time) (int, error)
	DeleteBySourceSince(fromLocation, kind string, since time.Time) (int, error)
}
