package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/application/location"
	"github.com/jhoicas/Botiquin-api/internal/application/stock"
)

// LocationHandler maneja las peticiones HTTP de ubicaciones (protegido).
type LocationHandler struct {
	uc    *location.UseCase
	query *stock.QueryUseCase
}

// NewLocationHandler construye el handler.
func NewLocationHandler(uc *location.UseCase, query *stock.QueryUseCase) *LocationHandler {
	return &LocationHandler{uc: uc, query: query}
}

// List godoc
// @Summary      Listar ubicaciones con su total de piezas
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LocationDTO
// @Router       /api/locations [get]
func (h *LocationHandler) List(c *fiber.Ctx) error {
	out, err := h.query.Locations(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// Create godoc
// @Summary      Crear ubicación satélite
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.CreateLocationRequest  true  "nombre único y descripción"
// @Success      201   {object}  dto.LocationDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations [post]
func (h *LocationHandler) Create(c *fiber.Ctx) error {
	var in dto.CreateLocationRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.Create(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Update godoc
// @Summary      Editar nombre y descripción de una ubicación
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                     true  "ID de la ubicación"
// @Param        body  body  dto.UpdateLocationRequest  true  "nuevos datos"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      403   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [put]
func (h *LocationHandler) Update(c *fiber.Ctx) error {
	var in dto.UpdateLocationRequest
	if !parseBody(c, &in) {
		return nil
	}
	if err := h.uc.Update(c.Context(), GetActor(c), c.Params("id"), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ubicación actualizada"})
}

// Delete godoc
// @Summary      Eliminar una ubicación (su stock se reubica en el reservorio)
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      200  {object}  map[string]string
// @Failure      403  {object}  dto.ErrorResponse
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id} [delete]
func (h *LocationHandler) Delete(c *fiber.Ctx) error {
	if err := h.uc.Delete(c.Context(), GetActor(c), c.Params("id")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "ubicación eliminada"})
}

// SetThreshold godoc
// @Summary      Fijar umbral mínimo local de un artículo en la ubicación
// @Tags         locations
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        id    path  string                   true  "ID de la ubicación"
// @Param        body  body  dto.SetThresholdRequest  true  "nombre de catálogo y mínimo"
// @Success      201   {object}  dto.ThresholdDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/thresholds [post]
func (h *LocationHandler) SetThreshold(c *fiber.Ctx) error {
	var in dto.SetThresholdRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.SetThreshold(c.Context(), GetActor(c), c.Params("id"), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// ListThresholds godoc
// @Summary      Listar umbrales locales de una ubicación
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      200  {array}   dto.ThresholdDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/thresholds [get]
func (h *LocationHandler) ListThresholds(c *fiber.Ctx) error {
	out, err := h.query.Thresholds(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// RemoveThreshold godoc
// @Summary      Eliminar un umbral local de la ubicación
// @Tags         locations
// @Security     Bearer
// @Produce      json
// @Param        id   path  string  true  "ID de la ubicación"
// @Param        tid  path  string  true  "ID del umbral"
// @Success      200  {object}  map[string]string
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/locations/{id}/thresholds/{tid} [delete]
func (h *LocationHandler) RemoveThreshold(c *fiber.Ctx) error {
	if err := h.uc.RemoveThreshold(c.Context(), GetActor(c), c.Params("id"), c.Params("tid")); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "umbral eliminado"})
}
