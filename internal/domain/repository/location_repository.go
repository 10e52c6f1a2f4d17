package repository

import "github.com/jhoicas/Botiquin-api/internal/domain/entity"

// LocationRepository acceso a ubicaciones de almacenamiento.
// Los métodos Get devuelven (nil, nil) si la entidad no existe.
type LocationRepository interface {
	// Create persiste la ubicación; asigna ID si viene vacío (el undo de
	// una eliminación pasa el ID original para restaurarla tal cual).
	Create(l *entity.StorageLocation) error
	GetByID(id string) (*entity.StorageLocation, error)
	GetByName(name string) (*entity.StorageLocation, error)
	List() ([]*entity.StorageLocation, error)
	Update(l *entity.StorageLocation) error
	Delete(id string) error
}
