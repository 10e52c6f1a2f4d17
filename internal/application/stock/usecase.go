package stock

import (
	"fmt"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/application/ports"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/packaging"
	"github.com/jhoicas/Botiquin-api/pkg/logger"
)

// UndoMatchWindow ventana temporal con la que el undo empareja asientos del
// libro creados por la acción que revierte.
const UndoMatchWindow = 2 * time.Second

// UseCase agrupa las operaciones mutantes de stock: adición, transferencia,
// uso, descarte, auditoría y consolidación. Cada operación corre como una
// unidad de trabajo (TxRunner): mutación del Stock Store + asiento en el
// libro + acción compensatoria se confirman juntos o ninguno.
type UseCase struct {
	tx  ports.TxRunner
	log *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ports.TxRunner, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, log: log}
}

// KeyFromDTO convierte la clave del request a entidad, validando la fecha.
func KeyFromDTO(in dto.ItemKeyDTO) (entity.ItemKey, error) {
	key := entity.ItemKey{
		Name:        in.Name,
		Type:        in.Type,
		Size:        in.Size,
		Brand:       in.Brand,
		GenericName: in.GenericName,
		Batch:       in.Batch,
	}
	if in.ExpiryDate != "" {
		d, err := time.Parse("2006-01-02", in.ExpiryDate)
		if err != nil {
			return entity.ItemKey{}, domain.ErrInvalidInput
		}
		key.ExpiryDate = &d
	}
	if key.Name == "" || key.Type == "" {
		return entity.ItemKey{}, domain.ErrInvalidInput
	}
	return key.Normalized(), nil
}

// KeyToDTO convierte la clave de entidad a DTO.
func KeyToDTO(k entity.ItemKey) dto.ItemKeyDTO {
	out := dto.ItemKeyDTO{
		Name:        k.Name,
		Type:        k.Type,
		Size:        k.Size,
		Brand:       k.Brand,
		GenericName: k.GenericName,
		Batch:       k.Batch,
	}
	if k.ExpiryDate != nil {
		out.ExpiryDate = k.ExpiryDate.Format("2006-01-02")
	}
	return out
}

// RecordToDTO arma el DTO de un registro de stock.
func RecordToDTO(r *entity.StockRecord, locationName string, now time.Time) dto.StockRecordDTO {
	return dto.StockRecordDTO{
		ID:           r.ID,
		Key:          KeyToDTO(r.Key),
		LocationID:   r.LocationID,
		LocationName: locationName,
		Boxes:        r.Boxes,
		Loose:        r.Loose,
		UnitsPerBox:  r.UnitsPerBox,
		Total:        r.Total(),
		ExpiryStatus: r.ExpiryStatus(now),
	}
}

// removeFromRecord retira la cantidad pedida del registro aplicando las
// reglas de empaque: boxesOnly usa RemoveBoxes (falla si no hay cajas
// completas suficientes); si no, el total pedido se drena con RemovePieces.
// Devuelve la cantidad resultante y el total retirado en piezas.
func removeFromRecord(rec *entity.StockRecord, pieces, boxes int, boxesOnly bool) (packaging.Quantity, int, error) {
	current := packaging.Quantity{Boxes: rec.Boxes, Loose: rec.Loose}
	if boxesOnly {
		if boxes <= 0 {
			return current, 0, domain.ErrInvalidInput
		}
		q, err := packaging.RemoveBoxes(current, boxes, rec.UnitsPerBox)
		if err != nil {
			return current, 0, err
		}
		return q, boxes * rec.UnitsPerBox, nil
	}
	total := pieces
	if boxes > 0 {
		if !rec.TracksPackaging() {
			return current, 0, domain.ErrPackagingNotTracked
		}
		total += boxes * rec.UnitsPerBox
	}
	if total <= 0 {
		return current, 0, domain.ErrInvalidInput
	}
	q, err := packaging.RemovePieces(current, total, rec.UnitsPerBox)
	if err != nil {
		return current, 0, err
	}
	return q, total, nil
}

// applyRemoval escribe la cantidad resultante en el registro, eliminándolo
// si quedó en cero (modo reclaim). Devuelve si el registro fue eliminado.
func applyRemoval(r ports.Repos, rec *entity.StockRecord, q packaging.Quantity, now time.Time) (bool, error) {
	rec.Boxes, rec.Loose = q.Boxes, q.Loose
	if rec.Total() == 0 {
		if err := r.Stock.Delete(rec.ID); err != nil {
			return false, fmt.Errorf("delete emptied record: %w", err)
		}
		return true, nil
	}
	rec.UpdatedAt = now
	if err := r.Stock.Update(rec); err != nil {
		return false, fmt.Errorf("update record: %w", err)
	}
	return false, nil
}
