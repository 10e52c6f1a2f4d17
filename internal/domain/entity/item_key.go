package entity

import (
	"strings"
	"time"
)

// ItemKey es la clave descriptiva que decide si dos existencias representan
// "el mismo artículo" para efectos de fusión (transferencias, adiciones,
// consolidación). Dos registros con ItemKey igual en la misma ubicación
// siempre se fusionan en vez de duplicarse.
//
// La igualdad es estricta: incluye la fecha de vencimiento y el lote. Los
// campos opcionales ausentes se normalizan a cadena vacía para evitar la
// ambigüedad null vs "" al comparar.
type ItemKey struct {
	Name        string     `json:"name"`
	Type        string     `json:"type"`
	Size        string     `json:"size,omitempty"`
	Brand       string     `json:"brand,omitempty"`
	GenericName string     `json:"generic_name,omitempty"`
	ExpiryDate  *time.Time `json:"expiry_date,omitempty"`
	Batch       string     `json:"batch,omitempty"`
}

// Normalized devuelve la clave con espacios recortados y la fecha de
// vencimiento truncada a día (la hora no participa en la identidad).
func (k ItemKey) Normalized() ItemKey {
	n := ItemKey{
		Name:        strings.TrimSpace(k.Name),
		Type:        strings.TrimSpace(k.Type),
		Size:        strings.TrimSpace(k.Size),
		Brand:       strings.TrimSpace(k.Brand),
		GenericName: strings.TrimSpace(k.GenericName),
		Batch:       strings.TrimSpace(k.Batch),
	}
	if k.ExpiryDate != nil {
		d := k.ExpiryDate.Truncate(24 * time.Hour)
		n.ExpiryDate = &d
	}
	return n
}

// Equal compara dos claves normalizadas. La fecha de vencimiento se compara
// por día calendario; nil solo es igual a nil.
func (k ItemKey) Equal(other ItemKey) bool {
	a, b := k.Normalized(), other.Normalized()
	if a.Name != b.Name || a.Type != b.Type || a.Size != b.Size ||
		a.Brand != b.Brand || a.GenericName != b.GenericName || a.Batch != b.Batch {
		return false
	}
	if (a.ExpiryDate == nil) != (b.ExpiryDate == nil) {
		return false
	}
	if a.ExpiryDate != nil && !a.ExpiryDate.Equal(*b.ExpiryDate) {
		return false
	}
	return true
}

// Fingerprint devuelve una representación canónica de la clave, útil para
// agrupar duplicados en memoria.
func (k ItemKey) Fingerprint() string {
	n := k.Normalized()
	expiry := ""
	if n.ExpiryDate != nil {
		expiry = n.ExpiryDate.Format("2006-01-02")
	}
	return strings.Join([]string{n.Name, n.Type, n.Size, n.Brand, n.GenericName, expiry, n.Batch}, "|")
}

// Label devuelve una descripción corta legible ("Saline 500ml").
func (k ItemKey) Label() string {
	if k.Size != "" {
		return k.Name + " " + k.Size
	}
	return k.Name
}
