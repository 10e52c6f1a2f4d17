package dto

// UndoResultDTO resultado de una petición de deshacer.
type UndoResultDTO struct {
	Undone      bool   `json:"undone"`
	Description string `json:"description,omitempty"` // qué se revirtió
}

// UndoStatusDTO indica si el actor tiene una acción deshacible.
type UndoStatusDTO struct {
	Available   bool   `json:"available"`
	Description string `json:"description,omitempty"`
}
