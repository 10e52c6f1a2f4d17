package http

import (
	"github.com/gofiber/fiber/v2"
	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/application/stock"
)

// StockHandler maneja las peticiones HTTP de stock (protegido).
type StockHandler struct {
	uc    *stock.UseCase
	query *stock.QueryUseCase
}

// NewStockHandler construye el handler.
func NewStockHandler(uc *stock.UseCase, query *stock.QueryUseCase) *StockHandler {
	return &StockHandler{uc: uc, query: query}
}

// Add godoc
// @Summary      Agregar stock a una ubicación
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.AddStockRequest  true  "clave descriptiva, ubicación y cantidad (piezas y/o cajas)"
// @Success      201   {object}  dto.StockRecordDTO
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/add [post]
func (h *StockHandler) Add(c *fiber.Ctx) error {
	var in dto.AddStockRequest
	if !parseBody(c, &in) {
		return nil
	}
	out, err := h.uc.AddStock(c.Context(), GetActor(c), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.Status(fiber.StatusCreated).JSON(out)
}

// Transfer godoc
// @Summary      Transferir stock entre ubicaciones (una o varias líneas)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.TransferRequest  true  "destino y líneas (registro origen + cantidad)"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/transfer [post]
func (h *StockHandler) Transfer(c *fiber.Ctx) error {
	var in dto.TransferRequest
	if !parseBody(c, &in) {
		return nil
	}
	if err := h.uc.Transfer(c.Context(), GetActor(c), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "transferencia registrada"})
}

// Usage godoc
// @Summary      Registrar uso (consumo) de stock
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UsageRequest  true  "registro, cantidad y receptor opcional"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/usage [post]
func (h *StockHandler) Usage(c *fiber.Ctx) error {
	var in dto.UsageRequest
	if !parseBody(c, &in) {
		return nil
	}
	if err := h.uc.RecordUsage(c.Context(), GetActor(c), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "uso registrado"})
}

// Disposal godoc
// @Summary      Registrar descarte de stock (vencimiento, daño)
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.UsageRequest  true  "registro, cantidad y motivo (obligatorio)"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Failure      409   {object}  dto.ErrorResponse
// @Router       /api/stock/disposal [post]
func (h *StockHandler) Disposal(c *fiber.Ctx) error {
	var in dto.UsageRequest
	if !parseBody(c, &in) {
		return nil
	}
	if err := h.uc.RecordDisposal(c.Context(), GetActor(c), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "descarte registrado"})
}

// Audit godoc
// @Summary      Ajuste masivo tras conteo físico
// @Tags         stock
// @Security     Bearer
// @Accept       json
// @Produce      json
// @Param        body  body  dto.BulkAuditRequest  true  "ubicación y conteos por clave"
// @Success      200   {object}  map[string]string
// @Failure      400   {object}  dto.ErrorResponse
// @Failure      404   {object}  dto.ErrorResponse
// @Router       /api/stock/audit [post]
func (h *StockHandler) Audit(c *fiber.Ctx) error {
	var in dto.BulkAuditRequest
	if !parseBody(c, &in) {
		return nil
	}
	if err := h.uc.BulkAudit(c.Context(), GetActor(c), in); err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"message": "auditoría aplicada"})
}

// Consolidate godoc
// @Summary      Consolidar registros duplicados de una ubicación
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      200  {object}  dto.ConsolidationResultDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/consolidate/{id} [post]
func (h *StockHandler) Consolidate(c *fiber.Ctx) error {
	out, err := h.uc.ConsolidateDuplicates(c.Context(), GetActor(c), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// ListByLocation godoc
// @Summary      Stock actual de una ubicación
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        id  path  string  true  "ID de la ubicación"
// @Success      200  {array}   dto.StockRecordDTO
// @Failure      404  {object}  dto.ErrorResponse
// @Router       /api/stock/location/{id} [get]
func (h *StockHandler) ListByLocation(c *fiber.Ctx) error {
	out, err := h.query.ListByLocation(c.Context(), c.Params("id"))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// TotalByKey godoc
// @Summary      Total agregado de una clave descriptiva en todas las ubicaciones
// @Tags         stock
// @Security     Bearer
// @Produce      json
// @Param        name         query  string  true   "nombre del artículo"
// @Param        type         query  string  true   "tipo/categoría"
// @Param        size         query  string  false  "tamaño"
// @Param        brand        query  string  false  "marca"
// @Param        generic_name query  string  false  "nombre genérico"
// @Param        expiry_date  query  string  false  "fecha de vencimiento (2006-01-02)"
// @Param        batch        query  string  false  "lote"
// @Success      200  {object}  dto.KeyTotalDTO
// @Failure      400  {object}  dto.ErrorResponse
// @Router       /api/stock/total [get]
func (h *StockHandler) TotalByKey(c *fiber.Ctx) error {
	in := dto.ItemKeyDTO{
		Name:        c.Query("name"),
		Type:        c.Query("type"),
		Size:        c.Query("size"),
		Brand:       c.Query("brand"),
		GenericName: c.Query("generic_name"),
		ExpiryDate:  c.Query("expiry_date"),
		Batch:       c.Query("batch"),
	}
	out, err := h.query.TotalByKey(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(out)
}

// LowStock godoc
// @Summary      Entradas de catálogo en o bajo su umbral mínimo
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {array}  dto.LowStockDTO
// @Router       /api/reports/low-stock [get]
func (h *StockHandler) LowStock(c *fiber.Ctx) error {
	out, err := h.query.LowStock(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"total": len(out), "items": out})
}

// Expiry godoc
// @Summary      Registros vencidos y por vencer (30 días)
// @Tags         reports
// @Security     Bearer
// @Produce      json
// @Success      200  {object}  map[string][]dto.StockRecordDTO
// @Router       /api/reports/expiry [get]
func (h *StockHandler) Expiry(c *fiber.Ctx) error {
	expired, expiring, err := h.query.Expiry(c.Context())
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"expired": expired, "expiring": expiring})
}
