package dto

// AddStockRequest adición de stock a una ubicación. La cantidad puede venir
// como piezas sueltas, cajas, o ambas (se suman según la razón de empaque).
type AddStockRequest struct {
	Key         ItemKeyDTO `json:"key" validate:"required"`
	LocationID  string     `json:"location_id" validate:"required"`
	Pieces      int        `json:"pieces" validate:"gte=0"`
	Boxes       int        `json:"boxes" validate:"gte=0"`
	UnitsPerBox int        `json:"units_per_box" validate:"gte=0"` // configura empaque al crear catálogo
	Note        string     `json:"note,omitempty"`
}

// TransferLineRequest una línea de transferencia.
type TransferLineRequest struct {
	RecordID  string `json:"record_id" validate:"required"`
	Pieces    int    `json:"pieces" validate:"gte=0"`
	Boxes     int    `json:"boxes" validate:"gte=0"`
	BoxesOnly bool   `json:"boxes_only"` // retirar solo cajas completas, sin romper
}

// TransferRequest transferencia (simple o por lotes) hacia una ubicación.
type TransferRequest struct {
	ToLocationID string                `json:"to_location_id" validate:"required"`
	Lines        []TransferLineRequest `json:"lines" validate:"required,min=1,dive"`
	Note         string                `json:"note,omitempty"`
}

// UsageRequest consumo de stock (uso clínico) o descarte.
type UsageRequest struct {
	RecordID  string `json:"record_id" validate:"required"`
	Pieces    int    `json:"pieces" validate:"gte=0"`
	Boxes     int    `json:"boxes" validate:"gte=0"`
	BoxesOnly bool   `json:"boxes_only"`
	Subject   string `json:"subject,omitempty"` // receptor/paciente (solo uso)
	Note      string `json:"note,omitempty"`    // motivo (obligatorio en descarte)
}

// AuditCountRequest un conteo físico de auditoría para una clave.
type AuditCountRequest struct {
	Key     ItemKeyDTO `json:"key" validate:"required"`
	Counted int        `json:"counted" validate:"gte=0"` // total contado, en piezas
}

// BulkAuditRequest ajuste masivo tras un conteo físico en una ubicación.
type BulkAuditRequest struct {
	LocationID string              `json:"location_id" validate:"required"`
	Counts     []AuditCountRequest `json:"counts" validate:"required,min=1,dive"`
	Note       string              `json:"note,omitempty"`
}

// StockRecordDTO registro de stock en responses.
type StockRecordDTO struct {
	ID           string     `json:"id"`
	Key          ItemKeyDTO `json:"key"`
	LocationID   string     `json:"location_id"`
	LocationName string     `json:"location_name,omitempty"`
	Boxes        int        `json:"boxes"`
	Loose        int        `json:"loose"`
	UnitsPerBox  int        `json:"units_per_box"`
	Total        int        `json:"total"`
	ExpiryStatus string     `json:"expiry_status"`
}

// KeyTotalDTO total agregado por clave descriptiva.
type KeyTotalDTO struct {
	Key   ItemKeyDTO `json:"key"`
	Total int        `json:"total"`
}

// LowStockDTO artículo en o bajo su umbral mínimo. Sin ubicación es el
// umbral global de catálogo; con ubicación es un ThresholdSetting local.
type LowStockDTO struct {
	Name         string `json:"name"`
	Category     string `json:"category,omitempty"`
	Total        int    `json:"total"`
	MinStock     int    `json:"min_stock"`
	LocationID   string `json:"location_id,omitempty"`
	LocationName string `json:"location_name,omitempty"`
}

// ConsolidationResultDTO resultado de una consolidación de duplicados.
type ConsolidationResultDTO struct {
	MergedGroups   int `json:"merged_groups"`
	RemovedRecords int `json:"removed_records"`
}
