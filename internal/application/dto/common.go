package dto

// ErrorResponse respuesta de error estándar de la API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

// ItemKeyDTO clave descriptiva en requests/responses.
type ItemKeyDTO struct {
	Name        string `json:"name" validate:"required"`
	Type        string `json:"type" validate:"required"`
	Size        string `json:"size,omitempty"`
	Brand       string `json:"brand,omitempty"`
	GenericName string `json:"generic_name,omitempty"`
	ExpiryDate  string `json:"expiry_date,omitempty" validate:"omitempty,datetime=2006-01-02"`
	Batch       string `json:"batch,omitempty"`
}
