package dto

// TokenRequest solicitud de token para un actor.
type TokenRequest struct {
	Actor string `json:"actor" validate:"required,min=1,max=80"`
}

// TokenResponse token emitido.
type TokenResponse struct {
	Token string `json:"token"`
	Actor string `json:"actor"`
}
