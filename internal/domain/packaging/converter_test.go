package packaging_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/packaging"
)

// ──────────────────────────────────────────────────────────────────────────────
// Conversión cajas/piezas: ida y vuelta, drenaje de sueltas y rotura de cajas.
// Escenario de referencia: 2 cajas + 3 sueltas con 100 unidades por caja.
// ──────────────────────────────────────────────────────────────────────────────

func TestToPieces(t *testing.T) {
	assert.Equal(t, 203, packaging.ToPieces(2, 3, 100))
	assert.Equal(t, 7, packaging.ToPieces(0, 7, 100))
	// Sin razón de empaque todo es pieza suelta
	assert.Equal(t, 7, packaging.ToPieces(5, 7, 0))
}

func TestFromPieces_MaximasCajasCompletas(t *testing.T) {
	q := packaging.FromPieces(203, 100)
	assert.Equal(t, 2, q.Boxes)
	assert.Equal(t, 3, q.Loose)

	q = packaging.FromPieces(99, 100)
	assert.Equal(t, 0, q.Boxes)
	assert.Equal(t, 99, q.Loose)

	q = packaging.FromPieces(200, 100)
	assert.Equal(t, 2, q.Boxes)
	assert.Equal(t, 0, q.Loose)
}

// FromPieces(ToPieces(b, p, u), u) == (b, p) siempre que p < u (forma normalizada).
func TestConversion_IdaYVuelta(t *testing.T) {
	cases := []struct{ boxes, loose, unitsPerBox int }{
		{0, 0, 10},
		{2, 3, 100},
		{1, 99, 100},
		{7, 0, 12},
		{0, 11, 12},
	}
	for _, c := range cases {
		total := packaging.ToPieces(c.boxes, c.loose, c.unitsPerBox)
		q := packaging.FromPieces(total, c.unitsPerBox)
		assert.Equal(t, c.boxes, q.Boxes, "cajas para %+v", c)
		assert.Equal(t, c.loose, q.Loose, "sueltas para %+v", c)
	}
}

func TestRemovePieces_DrenaSueltasYRompeCajas(t *testing.T) {
	// 2 cajas + 3 sueltas (u=100), retirar 150: drena las 3 sueltas,
	// rompe ceil(147/100)=2 cajas -> 0 cajas, 200-147=53 sueltas.
	q, err := packaging.RemovePieces(packaging.Quantity{Boxes: 2, Loose: 3}, 150, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, q.Boxes)
	assert.Equal(t, 53, q.Loose)
}

func TestRemovePieces_SoloSueltas(t *testing.T) {
	q, err := packaging.RemovePieces(packaging.Quantity{Boxes: 2, Loose: 3}, 2, 100)
	require.NoError(t, err)
	assert.Equal(t, 2, q.Boxes)
	assert.Equal(t, 1, q.Loose)
}

func TestRemovePieces_CasiTodo(t *testing.T) {
	// Total 203, retirar 201 debe dejar 0 cajas y 2 sueltas.
	q, err := packaging.RemovePieces(packaging.Quantity{Boxes: 2, Loose: 3}, 201, 100)
	require.NoError(t, err)
	assert.Equal(t, 0, q.Boxes)
	assert.Equal(t, 2, q.Loose)
}

func TestRemovePieces_ExcedeTotal(t *testing.T) {
	// Total 203, retirar 204 falla y no modifica nada.
	orig := packaging.Quantity{Boxes: 2, Loose: 3}
	q, err := packaging.RemovePieces(orig, 204, 100)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
	assert.Equal(t, orig, q, "la cantidad no debe cambiar tras un fallo")
}

func TestRemovePieces_SinEmpaque(t *testing.T) {
	q, err := packaging.RemovePieces(packaging.Quantity{Loose: 10}, 4, 0)
	require.NoError(t, err)
	assert.Equal(t, 6, q.Loose)

	_, err = packaging.RemovePieces(packaging.Quantity{Loose: 10}, 11, 0)
	assert.ErrorIs(t, err, domain.ErrInsufficientStock)
}

func TestRemovePieces_NegativoEsInvalido(t *testing.T) {
	_, err := packaging.RemovePieces(packaging.Quantity{Loose: 10}, -1, 0)
	assert.ErrorIs(t, err, domain.ErrInvalidInput)
}

func TestRemoveBoxes(t *testing.T) {
	q, err := packaging.RemoveBoxes(packaging.Quantity{Boxes: 2, Loose: 3}, 1, 100)
	require.NoError(t, err)
	assert.Equal(t, 1, q.Boxes)
	assert.Equal(t, 3, q.Loose)
}

func TestRemoveBoxes_CajasInsuficientes(t *testing.T) {
	// Hay 203 piezas pero solo 2 cajas completas: pedir 3 cajas falla.
	_, err := packaging.RemoveBoxes(packaging.Quantity{Boxes: 2, Loose: 3}, 3, 100)
	assert.ErrorIs(t, err, domain.ErrInsufficientWholeBoxes)
}

func TestRemoveBoxes_SinEmpaque(t *testing.T) {
	_, err := packaging.RemoveBoxes(packaging.Quantity{Loose: 50}, 1, 0)
	assert.ErrorIs(t, err, domain.ErrPackagingNotTracked)
}

func TestAddPieces_Renormaliza(t *testing.T) {
	q := packaging.AddPieces(packaging.Quantity{Boxes: 1, Loose: 99}, 1, 100)
	assert.Equal(t, 2, q.Boxes)
	assert.Equal(t, 0, q.Loose)
}
