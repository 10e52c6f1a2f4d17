package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/pkg/config"
	"github.com/jhoicas/Botiquin-api/pkg/jwt"
)

// AuthHandler emite tokens de actor. La aplicación es de uso interno: no
// hay cuentas ni contraseñas, el actor solo identifica la pila de deshacer
// y la autoría de los asientos.
type AuthHandler struct {
	cfg config.JWTConfig
}

// NewAuthHandler construye el handler.
func NewAuthHandler(cfg config.JWTConfig) *AuthHandler {
	return &AuthHandler{cfg: cfg}
}

// Token godoc
// @Summary      Emitir un token JWT para un actor
// @Tags         auth
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TokenRequest  true  "nombre del actor"
// @Success      200   {object}  dto.TokenResponse
// @Failure      400   {object}  dto.ErrorResponse
// @Router       /api/auth/token [post]
func (h *AuthHandler) Token(c *fiber.Ctx) error {
	var in dto.TokenRequest
	if !parseBody(c, &in) {
		return nil
	}
	token, err := jwt.Generate(h.cfg.Secret, in.Actor, h.cfg.Issuer, h.cfg.Expiration)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(dto.TokenResponse{Token: token, Actor: in.Actor})
}
