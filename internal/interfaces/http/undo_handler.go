package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Botiquin-api/internal/application/undo"
)

// UndoHandler maneja las peticiones del motor de deshacer (protegido).
// La pila de deshacer es por actor: cada token solo revierte lo suyo.
type UndoHandler struct {
	uc *undo.UseCase
}

// NewUndoHandler construye el handler.
func NewUndoHandler(uc *undo.UseCase) *UndoHandler {
	return &UndoHandler{uc: uc}
}

// Status godoc
// @Summary      Indica si el actor tiene una acción deshacible
// @Tags         undo
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UndoStatusDTO
// @Router       /api/undo/status [get]
func (h *UndoHandler) Status(c *fiber.Ctx) error {
	out, err := h.uc.Status(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// UndoLast godoc
// @Summary      Deshacer la última acción del actor
// @Description  Revierte la acción sin consumir más reciente. Si no hay
// @Description  ninguna devuelve undone=false; si el estado derivó desde la
// @Description  acción responde 409.
// @Tags         undo
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  dto.UndoResultDTO
// @Failure      409  {object}  dto.ErrorResponse
// @Router       /api/undo [post]
func (h *UndoHandler) UndoLast(c *fiber.Ctx) error {
	out, err := h.uc.UndoLast(c.Context(), GetActor(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}
