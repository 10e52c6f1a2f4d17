package entity

import "time"

// Categorías de ubicación: el depósito central (reservorio) y las
// ubicaciones satélite (maletines, ambulancias, etc.).
const (
	LocationCategoryCentral   = "central"
	LocationCategorySatellite = "satellite"
)

// ReservoirName es el nombre de la ubicación por defecto. Siempre existe,
// no puede eliminarse y recibe el stock de las ubicaciones que se eliminan.
const ReservoirName = "Cabinet"

// StorageLocation es una ubicación de almacenamiento con nombre único.
type StorageLocation struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	Description string    `json:"description,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// IsReservoir indica si la ubicación es el depósito central por defecto.
func (l *StorageLocation) IsReservoir() bool {
	return l.Name == ReservoirName
}
