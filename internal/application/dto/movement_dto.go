package dto

import "time"

// MovementQuery filtros para consultar el libro de movimientos.
type MovementQuery struct {
	Kind   string `json:"kind,omitempty"`
	From   string `json:"from,omitempty"` // RFC 3339 o 2006-01-02
	To     string `json:"to,omitempty"`
	Search string `json:"search,omitempty"`
	Page   int    `json:"page"`
	Limit  int    `json:"limit"`
}

// MovementDTO entrada del libro en responses.
type MovementDTO struct {
	ID           string     `json:"id"`
	Key          ItemKeyDTO `json:"key"`
	Quantity     int        `json:"quantity"`
	Kind         string     `json:"kind"`
	FromLocation string     `json:"from_location,omitempty"`
	ToLocation   string     `json:"to_location,omitempty"`
	Note         string     `json:"note,omitempty"`
	Subject      string     `json:"subject,omitempty"`
	Timestamp    time.Time  `json:"timestamp"`
}
