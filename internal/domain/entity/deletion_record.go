package entity

import "time"

// Tipos de entidad para registros de eliminación.
const (
	DeletionKindLocation = "location"
	DeletionKindCatalog  = "catalog"
)

// DeletionRecord deja constancia de que un usuario eliminó explícitamente
// una entidad. La siembra de datos por defecto consulta estos registros
// para no resucitar lo que el usuario borró, salvo que la eliminación se
// haya deshecho (Restored = true).
type DeletionRecord struct {
	ID         string    `json:"id"`
	EntityKind string    `json:"entity_kind"`
	EntityName string    `json:"entity_name"`
	Snapshot   []byte    `json:"snapshot"` // JSON de la entidad eliminada
	Actor      string    `json:"actor"`
	CreatedAt  time.Time `json:"created_at"`
	Restored   bool      `json:"restored"`
}
