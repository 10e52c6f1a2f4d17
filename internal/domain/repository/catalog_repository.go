package repository

import "github.com/jhoicas/Botiquin-api/internal/domain/entity"

// CatalogRepository acceso a entradas de catálogo.
// Los métodos Get devuelven (nil, nil) si la entrada no existe.
type CatalogRepository interface {
	Create(c *entity.CatalogEntry) error
	GetByID(id string) (*entity.CatalogEntry, error)
	GetByName(name string) (*entity.CatalogEntry, error)
	List() ([]*entity.CatalogEntry, error)
	Update(c *entity.CatalogEntry) error
	Delete(id string) error
}

// ThresholdRepository umbrales mínimos por ubicación.
type ThresholdRepository interface {
	Create(t *entity.ThresholdSetting) error
	ListByLocation(locationID string) ([]*entity.ThresholdSetting, error)
	Delete(id string) error
	DeleteByLocation(locationID string) error
}
