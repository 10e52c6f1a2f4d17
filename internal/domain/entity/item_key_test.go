package entity

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func date(s string) *time.Time {
	d, _ := time.Parse("2006-01-02", s)
	return &d
}

func TestItemKeyEqual(t *testing.T) {
	base := ItemKey{Name: "Saline", Type: "IV Vials", Size: "500ml", Batch: "L-01", ExpiryDate: date("2027-03-01")}

	t.Run("identica", func(t *testing.T) {
		other := ItemKey{Name: "Saline", Type: "IV Vials", Size: "500ml", Batch: "L-01", ExpiryDate: date("2027-03-01")}
		assert.True(t, base.Equal(other))
	})

	t.Run("espacios no cuentan", func(t *testing.T) {
		other := ItemKey{Name: "  Saline ", Type: "IV Vials", Size: "500ml", Batch: "L-01", ExpiryDate: date("2027-03-01")}
		assert.True(t, base.Equal(other))
	})

	t.Run("la hora del vencimiento no participa", func(t *testing.T) {
		withHour := *date("2027-03-01")
		withHour = withHour.Add(14 * time.Hour)
		other := base
		other.ExpiryDate = &withHour
		assert.True(t, base.Equal(other))
	})

	t.Run("lote distinto es otro articulo", func(t *testing.T) {
		other := base
		other.Batch = "L-02"
		assert.False(t, base.Equal(other))
	})

	t.Run("vencimiento distinto es otro articulo", func(t *testing.T) {
		other := base
		other.ExpiryDate = date("2027-04-01")
		assert.False(t, base.Equal(other))
	})

	t.Run("nil solo iguala nil", func(t *testing.T) {
		other := base
		other.ExpiryDate = nil
		assert.False(t, base.Equal(other))
	})
}

func TestItemKeyFingerprint(t *testing.T) {
	a := ItemKey{Name: "Gauze", Type: "Bandages", Size: "4x4"}
	b := ItemKey{Name: " Gauze ", Type: "Bandages", Size: "4x4"}
	c := ItemKey{Name: "Gauze", Type: "Bandages", Size: "2x2"}

	assert.Equal(t, a.Fingerprint(), b.Fingerprint())
	assert.NotEqual(t, a.Fingerprint(), c.Fingerprint())
}

func TestItemKeyLabel(t *testing.T) {
	assert.Equal(t, "Saline 500ml", ItemKey{Name: "Saline", Size: "500ml"}.Label())
	assert.Equal(t, "Gauze", ItemKey{Name: "Gauze"}.Label())
}
