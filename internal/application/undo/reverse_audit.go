package undo

import (
	"fmt"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/application/ports"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
)

// reverseBulkAdjustment aplica el delta negado de cada ajuste de la
// auditoría con la misma lógica de drenaje del consumo, y retira del libro
// los asientos bulk-adjustment creados a partir del instante del conteo.
func (uc *UseCase) reverseBulkAdjustment(r ports.Repos, action *entity.CompensatingAction, now time.Time) error {
	var p entity.AuditPayload
	if err := action.DecodePayload(&p); err != nil {
		return err
	}

	for i := len(p.Deltas) - 1; i >= 0; i-- {
		d := p.Deltas[i]

		rec, err := r.Stock.GetByIDForUpdate(d.RecordID)
		if err != nil {
			return err
		}

		switch {
		case d.RecordCreated:
			// La auditoría creó el registro: revertir es eliminarlo.
			if rec == nil {
				return fmt.Errorf("el registro %s ya no existe: %w", d.RecordID, domain.ErrUndoPayloadStale)
			}
			if err := r.Stock.Delete(rec.ID); err != nil {
				return err
			}
		case d.RecordDeleted:
			// La auditoría lo dejó en cero: recrearlo desde el snapshot.
			if rec != nil {
				return fmt.Errorf("el registro %s reapareció: %w", d.RecordID, domain.ErrUndoPayloadStale)
			}
			if err := r.Stock.Create(d.Snapshot.Restore(now)); err != nil {
				return err
			}
		default:
			if rec == nil {
				return fmt.Errorf("el registro %s ya no existe: %w", d.RecordID, domain.ErrUndoPayloadStale)
			}
			if d.Delta > 0 {
				if err := shrinkRecord(r, rec, d.Delta, now); err != nil {
					return err
				}
			} else {
				if err := addToRecord(r, rec, -d.Delta, now); err != nil {
					return err
				}
			}
		}
	}

	// Retirar los asientos de la auditoría (ambas direcciones del ajuste).
	if _, err := r.Movements.DeleteByDestinationSince(p.LocationName, entity.MovementAdjustment, p.AuditAt); err != nil {
		return err
	}
	if _, err := r.Movements.DeleteBySourceSince(p.LocationName, entity.MovementAdjustment, p.AuditAt); err != nil {
		return err
	}
	return nil
}
