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

// Transfer mueve existencias hacia una ubicación destino, una o varias
// líneas en la misma unidad de trabajo. En el destino se fusiona sobre el
// registro de clave idéntica si existe; el origen que queda en cero se
// elimina (modo reclaim). La transferencia conserva el total global:
// total(origen) + total(destino) no cambia.
func (uc *UseCase) Transfer(ctx context.Context, actor string, in dto.TransferRequest) error {
	if len(in.Lines) == 0 {
		return domain.ErrInvalidInput
	}

	now := time.Now().UTC()
	var desc string

	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		dest, err := r.Locations.GetByID(in.ToLocationID)
		if err != nil {
			return err
		}
		if dest == nil {
			return domain.ErrLocationNotFound
		}

		payload := entity.TransferPayload{DestLocationID: dest.ID, MovementAt: now}

		for _, lineReq := range in.Lines {
			src, err := r.Stock.GetByIDForUpdate(lineReq.RecordID)
			if err != nil {
				return err
			}
			if src == nil {
				return domain.ErrRecordNotFound
			}
			if src.LocationID == dest.ID {
				return domain.ErrInvalidInput
			}
			srcLoc, err := r.Locations.GetByID(src.LocationID)
			if err != nil {
				return err
			}
			if srcLoc == nil {
				return domain.ErrLocationNotFound
			}

			snapshot := src.Snapshot()
			originalQty := src.Total()

			newQty, removed, err := removeFromRecord(src, lineReq.Pieces, lineReq.Boxes, lineReq.BoxesOnly)
			if err != nil {
				return err
			}
			sourceDeleted, err := applyRemoval(r, src, newQty, now)
			if err != nil {
				return err
			}

			target, err := r.Stock.FindByKeyAtLocationForUpdate(dest.ID, src.Key)
			if err != nil {
				return err
			}
			destCreated := target == nil
			if destCreated {
				q := packaging.FromPieces(removed, src.UnitsPerBox)
				target = &entity.StockRecord{
					Key:         src.Key,
					LocationID:  dest.ID,
					CatalogID:   src.CatalogID,
					Boxes:       q.Boxes,
					Loose:       q.Loose,
					UnitsPerBox: src.UnitsPerBox,
					CreatedAt:   now,
					UpdatedAt:   now,
				}
				if err := r.Stock.Create(target); err != nil {
					return err
				}
			} else {
				q := packaging.AddPieces(packaging.Quantity{Boxes: target.Boxes, Loose: target.Loose}, removed, target.UnitsPerBox)
				target.Boxes, target.Loose = q.Boxes, q.Loose
				target.UpdatedAt = now
				if err := r.Stock.Update(target); err != nil {
					return err
				}
			}

			mov := &entity.Movement{
				Key:          src.Key,
				Quantity:     removed,
				Kind:         entity.MovementTransfer,
				FromLocation: srcLoc.Name,
				ToLocation:   dest.Name,
				Note:         in.Note,
				Timestamp:    now,
			}
			if err := r.Movements.Create(mov); err != nil {
				return err
			}

			payload.Lines = append(payload.Lines, entity.TransferLine{
				SourceID:       snapshot.ID,
				SourceSnapshot: snapshot,
				SourceDeleted:  sourceDeleted,
				OriginalQty:    originalQty,
				DestRecordID:   target.ID,
				DestCreated:    destCreated,
				Quantity:       removed,
			})
		}

		if len(payload.Lines) == 1 {
			l := payload.Lines[0]
			desc = fmt.Sprintf("Transferencia de %d × %s a %s", l.Quantity, l.SourceSnapshot.Key.Label(), dest.Name)
		} else {
			desc = fmt.Sprintf("Transferencia de %d artículos a %s", len(payload.Lines), dest.Name)
		}
		action, err := entity.NewCompensatingAction(entity.ActionTransfer, actor, desc, payload, now)
		if err != nil {
			return err
		}
		return r.Undo.Create(action)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("actor", actor).Str("detail", desc).Msg("transferencia registrada")
	return nil
}
