package entity

import "time"

// Estados de vencimiento de un registro de stock.
const (
	ExpiryStatusGood     = "good"
	ExpiryStatusExpiring = "expiring"
	ExpiryStatusExpired  = "expired"
)

// expiringWindowDays días de antelación con que un artículo cuenta como "por vencer".
const expiringWindowDays = 30

// StockRecord es una existencia concreta: una clave descriptiva en una
// ubicación. La cantidad se expresa como cajas + piezas sueltas cuando el
// artículo maneja empaque (UnitsPerBox > 0); si no, todo vive en Loose.
//
// Política de cantidad cero (modo reclaim): un registro cuyo total llega a
// cero se elimina en la misma transacción que lo vació; el motor de undo
// lo reconstruye desde el snapshot del payload cuando corresponde.
type StockRecord struct {
	ID          string    `json:"id"`
	Key         ItemKey   `json:"key"`
	LocationID  string    `json:"location_id"`
	CatalogID   string    `json:"catalog_id,omitempty"`
	Boxes       int       `json:"boxes"`
	Loose       int       `json:"loose"`
	UnitsPerBox int       `json:"units_per_box"` // 0 = sin empaque
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Total devuelve el total en piezas (cajas × unidades por caja + sueltas).
func (r *StockRecord) Total() int {
	if r.UnitsPerBox <= 0 {
		return r.Loose
	}
	return r.Boxes*r.UnitsPerBox + r.Loose
}

// TracksPackaging indica si el registro maneja cajas.
func (r *StockRecord) TracksPackaging() bool {
	return r.UnitsPerBox > 0
}

// ExpiryStatus clasifica el registro según su fecha de vencimiento
// respecto a now: expired, expiring (vence en ≤ 30 días) o good.
func (r *StockRecord) ExpiryStatus(now time.Time) string {
	if r.Key.ExpiryDate == nil {
		return ExpiryStatusGood
	}
	today := now.Truncate(24 * time.Hour)
	expiry := r.Key.ExpiryDate.Truncate(24 * time.Hour)
	if expiry.Before(today) {
		return ExpiryStatusExpired
	}
	if !expiry.After(today.AddDate(0, 0, expiringWindowDays)) {
		return ExpiryStatusExpiring
	}
	return ExpiryStatusGood
}

// Snapshot captura el estado completo del registro para payloads de undo.
// Los payloads son snapshots desnormalizados a propósito: el registro puede
// haberse eliminado o fusionado cuando el undo corre.
func (r *StockRecord) Snapshot() RecordSnapshot {
	return RecordSnapshot{
		ID:          r.ID,
		Key:         r.Key,
		LocationID:  r.LocationID,
		CatalogID:   r.CatalogID,
		Boxes:       r.Boxes,
		Loose:       r.Loose,
		UnitsPerBox: r.UnitsPerBox,
		CreatedAt:   r.CreatedAt,
	}
}

// RecordSnapshot es la copia serializable de un StockRecord dentro de un
// payload de acción compensatoria.
type RecordSnapshot struct {
	ID          string    `json:"id"`
	Key         ItemKey   `json:"key"`
	LocationID  string    `json:"location_id"`
	CatalogID   string    `json:"catalog_id,omitempty"`
	Boxes       int       `json:"boxes"`
	Loose       int       `json:"loose"`
	UnitsPerBox int       `json:"units_per_box"`
	CreatedAt   time.Time `json:"created_at"`
}

// Restore reconstruye el StockRecord a partir del snapshot.
func (s RecordSnapshot) Restore(now time.Time) *StockRecord {
	return &StockRecord{
		ID:          s.ID,
		Key:         s.Key,
		LocationID:  s.LocationID,
		CatalogID:   s.CatalogID,
		Boxes:       s.Boxes,
		Loose:       s.Loose,
		UnitsPerBox: s.UnitsPerBox,
		CreatedAt:   s.CreatedAt,
		UpdatedAt:   now,
	}
}
