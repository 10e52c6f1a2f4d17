// Package packaging convierte entre cajas + piezas sueltas y el total plano
// en piezas, según la razón de empaque (unidades por caja) del artículo.
// Funciones puras, sin estado: cada mutación de stock que maneja empaque
// pasa por aquí.
package packaging

import "github.com/jhoicas/Botiquin-api/internal/domain"

// Quantity una cantidad expresada como cajas + piezas sueltas.
type Quantity struct {
	Boxes int
	Loose int
}

// ToPieces devuelve el total plano en piezas. Con unitsPerBox <= 0 el
// empaque no se maneja y todo cuenta como pieza suelta.
func ToPieces(boxes, loose, unitsPerBox int) int {
	if unitsPerBox <= 0 {
		return loose
	}
	return boxes*unitsPerBox + loose
}

// FromPieces reparte un total plano en el máximo de cajas completas más el
// resto en piezas sueltas.
func FromPieces(total, unitsPerBox int) Quantity {
	if unitsPerBox <= 0 {
		return Quantity{Loose: total}
	}
	return Quantity{Boxes: total / unitsPerBox, Loose: total % unitsPerBox}
}

// AddPieces suma piezas a la cantidad actual y renormaliza a cajas máximas.
func AddPieces(current Quantity, pieces, unitsPerBox int) Quantity {
	return FromPieces(ToPieces(current.Boxes, current.Loose, unitsPerBox)+pieces, unitsPerBox)
}

// RemovePieces retira piezas drenando primero las sueltas; si faltan, rompe
// cajas completas de una en una (ceil(restante/unitsPerBox)), vuelca las
// cajas rotas al pozo de sueltas y resta de ahí.
// Falla con ErrInsufficientStock si piecesToRemove excede el total.
func RemovePieces(current Quantity, piecesToRemove, unitsPerBox int) (Quantity, error) {
	if piecesToRemove < 0 {
		return current, domain.ErrInvalidInput
	}
	total := ToPieces(current.Boxes, current.Loose, unitsPerBox)
	if piecesToRemove > total {
		return current, domain.ErrInsufficientStock
	}
	if unitsPerBox <= 0 {
		return Quantity{Loose: current.Loose - piecesToRemove}, nil
	}
	boxes, loose := current.Boxes, current.Loose
	if piecesToRemove <= loose {
		return Quantity{Boxes: boxes, Loose: loose - piecesToRemove}, nil
	}
	remaining := piecesToRemove - loose
	toBreak := (remaining + unitsPerBox - 1) / unitsPerBox
	boxes -= toBreak
	loose = toBreak * unitsPerBox
	loose -= remaining
	return Quantity{Boxes: boxes, Loose: loose}, nil
}

// RemoveBoxes retira cajas completas sin romperlas. Falla con
// ErrInsufficientWholeBoxes si hay menos cajas completas que las pedidas y
// con ErrPackagingNotTracked si el artículo no maneja empaque.
func RemoveBoxes(current Quantity, boxesToRemove, unitsPerBox int) (Quantity, error) {
	if boxesToRemove < 0 {
		return current, domain.ErrInvalidInput
	}
	if unitsPerBox <= 0 {
		return current, domain.ErrPackagingNotTracked
	}
	if boxesToRemove > current.Boxes {
		return current, domain.ErrInsufficientWholeBoxes
	}
	return Quantity{Boxes: current.Boxes - boxesToRemove, Loose: current.Loose}, nil
}
