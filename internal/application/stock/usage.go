package stock

import (
	"context"
	"fmt"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/application/ports"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
)

// RecordUsage registra el consumo de existencias (uso clínico), con el
// receptor opcional como sujeto del asiento.
func (uc *UseCase) RecordUsage(ctx context.Context, actor string, in dto.UsageRequest) error {
	return uc.consume(ctx, actor, in, entity.MovementUsage)
}

// RecordDisposal registra un descarte (vencimiento, daño). El motivo es
// obligatorio.
func (uc *UseCase) RecordDisposal(ctx context.Context, actor string, in dto.UsageRequest) error {
	if in.Note == "" {
		return domain.ErrInvalidInput
	}
	in.Subject = ""
	return uc.consume(ctx, actor, in, entity.MovementDisposal)
}

// consume retira existencias de un registro y deja asiento + acción
// compensatoria. El registro que queda en cero se elimina; el snapshot del
// payload permite recrearlo al deshacer.
func (uc *UseCase) consume(ctx context.Context, actor string, in dto.UsageRequest, kind string) error {
	now := time.Now().UTC()
	var desc string

	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		rec, err := r.Stock.GetByIDForUpdate(in.RecordID)
		if err != nil {
			return err
		}
		if rec == nil {
			return domain.ErrRecordNotFound
		}
		loc, err := r.Locations.GetByID(rec.LocationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrLocationNotFound
		}

		snapshot := rec.Snapshot()
		newQty, removed, err := removeFromRecord(rec, in.Pieces, in.Boxes, in.BoxesOnly)
		if err != nil {
			return err
		}
		deleted, err := applyRemoval(r, rec, newQty, now)
		if err != nil {
			return err
		}

		mov := &entity.Movement{
			Key:          snapshot.Key,
			Quantity:     removed,
			Kind:         kind,
			FromLocation: loc.Name,
			Note:         in.Note,
			Subject:      in.Subject,
			Timestamp:    now,
		}
		if err := r.Movements.Create(mov); err != nil {
			return err
		}

		payload := entity.ConsumptionPayload{
			Snapshot:      snapshot,
			RecordDeleted: deleted,
			Quantity:      removed,
			Subject:       in.Subject,
			Note:          in.Note,
			MovementKind:  kind,
			MovementAt:    now,
		}
		verb := "Uso"
		actionKind := entity.ActionUsage
		if kind == entity.MovementDisposal {
			verb = "Descarte"
			actionKind = entity.ActionDisposal
		}
		desc = fmt.Sprintf("%s de %d × %s en %s", verb, removed, snapshot.Key.Label(), loc.Name)
		action, err := entity.NewCompensatingAction(actionKind, actor, desc, payload, now)
		if err != nil {
			return err
		}
		return r.Undo.Create(action)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("actor", actor).Str("detail", desc).Msg("consumo registrado")
	return nil
}
