package entity

import (
	"encoding/json"
	"fmt"
	"time"
)

// Tipos de acción compensatoria (espejo de las operaciones mutantes).
const (
	ActionAddition         = "addition"
	ActionTransfer         = "transfer"
	ActionUsage            = "usage"
	ActionDisposal         = "disposal"
	ActionLocationDeletion = "location-deletion"
	ActionBulkAdjustment   = "bulk-adjustment"
)

// CompensatingAction registra cómo invertir una mutación concreta. Se
// consume a lo sumo una vez; solo la más reciente sin consumir de un actor
// es utilizable (las anteriores quedan inutilizables al consumirla).
type CompensatingAction struct {
	ID          string    `json:"id"`
	Kind        string    `json:"kind"`
	Payload     []byte    `json:"payload"` // JSON del payload según Kind
	Description string    `json:"description"`
	Actor       string    `json:"actor"`
	CreatedAt   time.Time `json:"created_at"`
	Consumed    bool      `json:"consumed"`
}

// NewCompensatingAction serializa el payload y arma la acción.
func NewCompensatingAction(kind, actor, description string, payload any, now time.Time) (*CompensatingAction, error) {
	raw, err := json.Marshal(payload)
	if err != nil {
		return nil, fmt.Errorf("marshal undo payload: %w", err)
	}
	return &CompensatingAction{
		Kind:        kind,
		Payload:     raw,
		Description: description,
		Actor:       actor,
		CreatedAt:   now,
	}, nil
}

// DecodePayload deserializa el payload en dst según el Kind esperado.
func (a *CompensatingAction) DecodePayload(dst any) error {
	if err := json.Unmarshal(a.Payload, dst); err != nil {
		return fmt.Errorf("unmarshal undo payload (%s): %w", a.Kind, err)
	}
	return nil
}

// AdditionPayload datos para revertir una adición de stock.
type AdditionPayload struct {
	RecordID       string    `json:"record_id"`
	Key            ItemKey   `json:"key"`
	LocationID     string    `json:"location_id"`
	Quantity       int       `json:"quantity"`
	Merged         bool      `json:"merged"`          // se fusionó en un registro existente
	CatalogCreated bool      `json:"catalog_created"` // la adición creó la entrada de catálogo
	CatalogID      string    `json:"catalog_id,omitempty"`
	MovementAt     time.Time `json:"movement_at"`
}

// TransferLine una línea de una transferencia (simple o por lotes).
type TransferLine struct {
	SourceID       string         `json:"source_id"`
	SourceSnapshot RecordSnapshot `json:"source_snapshot"`
	SourceDeleted  bool           `json:"source_deleted"` // el origen llegó a cero y se eliminó
	OriginalQty    int            `json:"original_qty"`   // total del origen antes de transferir
	DestRecordID   string         `json:"dest_record_id"`
	DestCreated    bool           `json:"dest_created"` // el destino se creó nuevo
	Quantity       int            `json:"quantity"`
}

// TransferPayload datos para revertir una transferencia.
type TransferPayload struct {
	DestLocationID string         `json:"dest_location_id"`
	Lines          []TransferLine `json:"lines"`
	MovementAt     time.Time      `json:"movement_at"`
}

// ConsumptionPayload datos para revertir un uso o descarte.
type ConsumptionPayload struct {
	Snapshot      RecordSnapshot `json:"snapshot"`
	RecordDeleted bool           `json:"record_deleted"`
	Quantity      int            `json:"quantity"`
	Subject       string         `json:"subject,omitempty"`
	Note          string         `json:"note,omitempty"`
	MovementKind  string         `json:"movement_kind"` // usage | disposal
	MovementAt    time.Time      `json:"movement_at"`
}

// RelocatedRecord un registro movido al reservorio al eliminar su ubicación.
type RelocatedRecord struct {
	Snapshot     RecordSnapshot `json:"snapshot"`
	Quantity     int            `json:"quantity"`
	DestRecordID string         `json:"dest_record_id"`
	DestCreated  bool           `json:"dest_created"`
}

// LocationDeletionPayload datos para revertir la eliminación de una ubicación.
type LocationDeletionPayload struct {
	Location         StorageLocation    `json:"location"`
	Relocated        []RelocatedRecord  `json:"relocated,omitempty"`
	Thresholds       []ThresholdSetting `json:"thresholds,omitempty"`
	DeletionRecordID string             `json:"deletion_record_id"`
	MovementAt       time.Time          `json:"movement_at"`
}

// AuditDelta un ajuste individual aplicado durante una auditoría.
type AuditDelta struct {
	RecordID      string         `json:"record_id"`
	Key           ItemKey        `json:"key"`
	Delta         int            `json:"delta"` // con signo: conteo - total previo
	RecordCreated bool           `json:"record_created"`
	RecordDeleted bool           `json:"record_deleted"`
	Snapshot      RecordSnapshot `json:"snapshot"`
}

// AuditPayload datos para revertir un ajuste masivo de auditoría.
type AuditPayload struct {
	LocationID   string       `json:"location_id"`
	LocationName string       `json:"location_name"`
	Deltas       []AuditDelta `json:"deltas"`
	AuditAt      time.Time    `json:"audit_at"`
}
