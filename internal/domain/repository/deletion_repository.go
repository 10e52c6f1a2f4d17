package repository

import "github.com/jhoicas/Botiquin-api/internal/domain/entity"

// DeletionRepository acceso a registros de eliminación explícita.
type DeletionRepository interface {
	Create(d *entity.DeletionRecord) error
	// FindActive devuelve el registro no restaurado más reciente para la
	// entidad, o (nil, nil). La siembra de datos por defecto consulta esto
	// antes de insertar.
	FindActive(entityKind, entityName string) (*entity.DeletionRecord, error)
	MarkRestored(id string) error
}
