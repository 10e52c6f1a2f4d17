package entity

import "time"

// Tipos de movimiento de stock.
const (
	MovementAddition      = "addition"
	MovementTransfer      = "transfer"
	MovementUsage         = "usage"
	MovementDisposal      = "disposal"
	MovementAdjustment    = "bulk-adjustment"
	MovementConsolidation = "consolidation"
)

// Movement es una entrada del libro de movimientos: un registro inmutable
// por cada mutación de stock, independiente de los valores actuales del
// Stock Store. Solo el motor de undo puede retirar entradas, y únicamente
// las creadas por la acción que está revirtiendo.
//
// Invariante: transfer lleva origen y destino; usage/disposal solo origen;
// addition solo destino. Quantity va con signo solo en bulk-adjustment.
type Movement struct {
	ID           string    `json:"id"`
	Key          ItemKey   `json:"key"`
	Quantity     int       `json:"quantity"`
	Kind         string    `json:"kind"`
	FromLocation string    `json:"from_location,omitempty"`
	ToLocation   string    `json:"to_location,omitempty"`
	Note         string    `json:"note,omitempty"`
	Subject      string    `json:"subject,omitempty"` // p. ej. paciente o receptor
	Timestamp    time.Time `json:"timestamp"`
}

// MovementFilter filtros para consultar el libro (paginado, más reciente primero).
type MovementFilter struct {
	Kind   string
	From   *time.Time
	To     *time.Time
	Search string // subcadena sobre nombre/tipo/lote de la clave
	Limit  int
	Offset int
}
