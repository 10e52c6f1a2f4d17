package dto

// CreateLocationRequest alta de ubicación.
type CreateLocationRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty" validate:"max=255"`
}

// UpdateLocationRequest edición de nombre/descripción.
type UpdateLocationRequest struct {
	Name        string `json:"name" validate:"required,max=100"`
	Description string `json:"description,omitempty" validate:"max=255"`
}

// LocationDTO ubicación en responses, con totales agregados.
type LocationDTO struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	Category    string `json:"category"`
	Description string `json:"description,omitempty"`
	TotalPieces int    `json:"total_pieces"`
}

// SetThresholdRequest fija el umbral mínimo de un artículo en una ubicación.
// Si ya existe un umbral para ese nombre en la ubicación, se reemplaza.
type SetThresholdRequest struct {
	CatalogName string `json:"catalog_name" validate:"required,max=100"`
	MinQuantity int    `json:"min_quantity" validate:"gte=0"`
}

// ThresholdDTO umbral por ubicación en responses.
type ThresholdDTO struct {
	ID          string `json:"id"`
	LocationID  string `json:"location_id"`
	CatalogName string `json:"catalog_name"`
	MinQuantity int    `json:"min_quantity"`
}
