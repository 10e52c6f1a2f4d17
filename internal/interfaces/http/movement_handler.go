package http

import (
	"strconv"

	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/application/stock"
)

// MovementHandler consultas del libro de movimientos (protegido).
type MovementHandler struct {
	query *stock.QueryUseCase
}

// NewMovementHandler construye el handler.
func NewMovementHandler(query *stock.QueryUseCase) *MovementHandler {
	return &MovementHandler{query: query}
}

// List godoc
// @Summary      Consultar el libro de movimientos (paginado, más reciente primero)
// @Tags         movements
// @Security     Bearer
// @Produce      json
// @Param        kind    query  string  false  "tipo de movimiento (addition, transfer, usage, disposal, bulk-adjustment, consolidation)"
// @Param        from    query  string  false  "desde (RFC 3339 o 2006-01-02)"
// @Param        to      query  string  false  "hasta (RFC 3339 o 2006-01-02)"
// @Param        search  query  string  false  "subcadena sobre nombre/tipo/lote"
// @Param        page    query  int     false  "página (desde 1)"
// @Param        limit   query  int     false  "tamaño de página (máx. 200)"
// @Success      200  {array}   dto.MovementDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/movements [get]
func (h *MovementHandler) List(c *fiber.Ctx) error {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "50"))
	q := dto.MovementQuery{
		Kind:   c.Query("kind"),
		From:   c.Query("from"),
		To:     c.Query("to"),
		Search: c.Query("search"),
		Page:   page,
		Limit:  limit,
	}
	out, err := h.query.Movements(c.Context(), q)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "movements": out})
}
