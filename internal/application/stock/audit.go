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

// BulkAudit ajusta las existencias de una ubicación a los conteos físicos
// de una auditoría. Por cada clave contada calcula el delta con signo
// contra el total actual y lo aplica: crea el registro si el conteo
// encontró algo que no estaba, lo elimina si el conteo fue cero. Todos los
// deltas, los asientos bulk-adjustment y una única acción compensatoria se
// confirman como una sola unidad de trabajo.
func (uc *UseCase) BulkAudit(ctx context.Context, actor string, in dto.BulkAuditRequest) error {
	if len(in.Counts) == 0 {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	applied := 0

	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		loc, err := r.Locations.GetByID(in.LocationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrLocationNotFound
		}

		payload := entity.AuditPayload{LocationID: loc.ID, LocationName: loc.Name, AuditAt: now}

		for _, count := range in.Counts {
			key, err := KeyFromDTO(count.Key)
			if err != nil {
				return err
			}
			if count.Counted < 0 {
				return domain.ErrInvalidInput
			}

			rec, err := r.Stock.FindByKeyAtLocationForUpdate(loc.ID, key)
			if err != nil {
				return err
			}

			current := 0
			if rec != nil {
				current = rec.Total()
			}
			delta := count.Counted - current
			if delta == 0 {
				continue
			}

			d := entity.AuditDelta{Key: key, Delta: delta}

			switch {
			case rec == nil:
				// El conteo encontró existencias sin registro.
				ratio := 0
				catalogID := ""
				if cat, err := r.Catalog.GetByName(key.Name); err != nil {
					return err
				} else if cat != nil {
					ratio = cat.UnitsPerBox
					catalogID = cat.ID
				}
				q := packaging.FromPieces(count.Counted, ratio)
				rec = &entity.StockRecord{
					Key:         key,
					LocationID:  loc.ID,
					CatalogID:   catalogID,
					Boxes:       q.Boxes,
					Loose:       q.Loose,
					UnitsPerBox: ratio,
					CreatedAt:   now,
					UpdatedAt:   now,
				}
				if err := r.Stock.Create(rec); err != nil {
					return err
				}
				d.RecordCreated = true
				d.RecordID = rec.ID
				d.Snapshot = rec.Snapshot()
			case delta > 0:
				d.RecordID = rec.ID
				d.Snapshot = rec.Snapshot()
				q := packaging.AddPieces(packaging.Quantity{Boxes: rec.Boxes, Loose: rec.Loose}, delta, rec.UnitsPerBox)
				rec.Boxes, rec.Loose = q.Boxes, q.Loose
				rec.UpdatedAt = now
				if err := r.Stock.Update(rec); err != nil {
					return err
				}
			default:
				d.RecordID = rec.ID
				d.Snapshot = rec.Snapshot()
				q, err := packaging.RemovePieces(packaging.Quantity{Boxes: rec.Boxes, Loose: rec.Loose}, -delta, rec.UnitsPerBox)
				if err != nil {
					return err
				}
				deleted, err := applyRemoval(r, rec, q, now)
				if err != nil {
					return err
				}
				d.RecordDeleted = deleted
			}

			mov := &entity.Movement{
				Key:       key,
				Quantity:  delta,
				Kind:      entity.MovementAdjustment,
				Note:      in.Note,
				Timestamp: now,
			}
			if delta > 0 {
				mov.ToLocation = loc.Name
			} else {
				mov.FromLocation = loc.Name
			}
			if err := r.Movements.Create(mov); err != nil {
				return err
			}

			payload.Deltas = append(payload.Deltas, d)
			applied++
		}

		if len(payload.Deltas) == 0 {
			// Conteo idéntico al sistema: nada que ajustar ni que deshacer.
			return nil
		}

		desc := fmt.Sprintf("Auditoría en %s: %d ajustes", loc.Name, len(payload.Deltas))
		action, err := entity.NewCompensatingAction(entity.ActionBulkAdjustment, actor, desc, payload, now)
		if err != nil {
			return err
		}
		return r.Undo.Create(action)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("actor", actor).Int("adjustments", applied).Msg("auditoría aplicada")
	return nil
}
