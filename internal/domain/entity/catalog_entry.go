package entity

import "time"

// DefaultMinStock umbral mínimo por defecto para entradas nuevas de catálogo.
const DefaultMinStock = 5

// CatalogEntry agrupa los StockRecords que comparten nombre: define el
// umbral de stock mínimo y, si aplica, la razón de empaque (unidades por
// caja). Se crea al primer uso de un nombre nuevo y nunca se elimina
// implícitamente mientras algún registro la referencie.
type CatalogEntry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Category    string    `json:"category"`
	MinStock    int       `json:"min_stock"`
	UnitsPerBox int       `json:"units_per_box"` // 0 = sin empaque
	BoxLabel    string    `json:"box_label,omitempty"`
	CreatedAt   time.Time `json:"created_at"`
}

// TracksPackaging indica si la entrada define razón de empaque.
func (c *CatalogEntry) TracksPackaging() bool {
	return c.UnitsPerBox > 0
}

// IsLowStock indica si el total agregado está en o por debajo del umbral.
func (c *CatalogEntry) IsLowStock(total int) bool {
	return total <= c.MinStock
}

// ThresholdSetting es un umbral mínimo por ubicación para una entrada de
// catálogo; se elimina junto con la ubicación y se restaura con el undo.
type ThresholdSetting struct {
	ID          string    `json:"id"`
	LocationID  string    `json:"location_id"`
	CatalogName string    `json:"catalog_name"`
	MinQuantity int       `json:"min_quantity"`
	CreatedAt   time.Time `json:"created_at"`
}
