package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/application/ports"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/packaging"
)

// AddStock agrega existencias a una ubicación. Si ya hay un registro con la
// misma clave descriptiva se fusiona en él (nunca se duplican lotes
// idénticos); si el nombre es nuevo se crea la entrada de catálogo. Todo en
// una transacción: registro + asiento en el libro + acción compensatoria.
func (uc *UseCase) AddStock(ctx context.Context, actor string, in dto.AddStockRequest) (*dto.StockRecordDTO, error) {
	key, err := KeyFromDTO(in.Key)
	if err != nil {
		return nil, err
	}
	if in.Pieces < 0 || in.Boxes < 0 || (in.Pieces == 0 && in.Boxes == 0) {
		return nil, domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	var out dto.StockRecordDTO

	err = uc.tx.Run(ctx, func(r ports.Repos) error {
		loc, err := r.Locations.GetByID(in.LocationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrLocationNotFound
		}

		// Entrada de catálogo: se crea al primer uso de un nombre nuevo.
		cat, err := r.Catalog.GetByName(key.Name)
		if err != nil {
			return err
		}
		catalogCreated := false
		if cat == nil {
			cat = &entity.CatalogEntry{
				Name:        key.Name,
				Category:    key.Type,
				MinStock:    entity.DefaultMinStock,
				UnitsPerBox: in.UnitsPerBox,
				CreatedAt:   now,
			}
			if err := r.Catalog.Create(cat); err != nil {
				return err
			}
			catalogCreated = true
		}

		ratio := cat.UnitsPerBox
		if in.Boxes > 0 && ratio <= 0 {
			return domain.ErrPackagingNotTracked
		}
		quantity := in.Pieces + in.Boxes*ratio

		target, err := r.Stock.FindByKeyAtLocationForUpdate(loc.ID, key)
		if err != nil {
			return err
		}
		merged := target != nil
		if merged {
			q := packaging.AddPieces(packaging.Quantity{Boxes: target.Boxes, Loose: target.Loose}, quantity, ratio)
			target.Boxes, target.Loose = q.Boxes, q.Loose
			target.UpdatedAt = now
			if err := r.Stock.Update(target); err != nil {
				return err
			}
		} else {
			q := packaging.FromPieces(quantity, ratio)
			target = &entity.StockRecord{
				Key:         key,
				LocationID:  loc.ID,
				CatalogID:   cat.ID,
				Boxes:       q.Boxes,
				Loose:       q.Loose,
				UnitsPerBox: ratio,
				CreatedAt:   now,
				UpdatedAt:   now,
			}
			if err := r.Stock.Create(target); err != nil {
				return err
			}
		}

		mov := &entity.Movement{
			Key:        key,
			Quantity:   quantity,
			Kind:       entity.MovementAddition,
			ToLocation: loc.Name,
			Note:       in.Note,
			Timestamp:  now,
		}
		if err := r.Movements.Create(mov); err != nil {
			return err
		}

		payload := entity.AdditionPayload{
			RecordID:       target.ID,
			Key:            key,
			LocationID:     loc.ID,
			Quantity:       quantity,
			Merged:         merged,
			CatalogCreated: catalogCreated,
			CatalogID:      cat.ID,
			MovementAt:     now,
		}
		desc := fmt.Sprintf("Adición de %d × %s a %s", quantity, key.Label(), loc.Name)
		action, err := entity.NewCompensatingAction(entity.ActionAddition, actor, desc, payload, now)
		if err != nil {
			return err
		}
		if err := r.Undo.Create(action); err != nil {
			return err
		}

		out = RecordToDTO(target, loc.Name, now)
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("actor", actor).
		Str("item", key.Label()).
		Int("quantity", out.Total).
		Msg("stock agregado")
	return &out, nil
}
