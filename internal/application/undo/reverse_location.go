package undo

import (
	"fmt"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/application/ports"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
)

// reverseLocationDeletion recrea la ubicación con sus atributos
// originales, devuelve cada registro reubicado desde el reservorio,
// restaura los umbrales, retira los asientos de traslado automáticos y
// marca el DeletionRecord como restaurado.
func (uc *UseCase) reverseLocationDeletion(r ports.Repos, action *entity.CompensatingAction, now time.Time) error {
	var p entity.LocationDeletionPayload
	if err := action.DecodePayload(&p); err != nil {
		return err
	}

	// Si otra ubicación tomó el nombre (o el ID sigue vivo), no se puede
	// restaurar limpiamente.
	if existing, err := r.Locations.GetByName(p.Location.Name); err != nil {
		return err
	} else if existing != nil {
		return fmt.Errorf("el nombre %q volvió a usarse: %w", p.Location.Name, domain.ErrUndoPayloadStale)
	}
	restored := p.Location
	if err := r.Locations.Create(&restored); err != nil {
		return err
	}

	for _, rel := range p.Relocated {
		dest, err := r.Stock.GetByIDForUpdate(rel.DestRecordID)
		if err != nil {
			return err
		}
		if dest == nil {
			return fmt.Errorf("el registro del reservorio %s ya no existe: %w", rel.DestRecordID, domain.ErrUndoPayloadStale)
		}
		if rel.DestCreated {
			if err := r.Stock.Delete(dest.ID); err != nil {
				return err
			}
		} else {
			if err := shrinkRecord(r, dest, rel.Quantity, now); err != nil {
				return err
			}
		}
		if err := r.Stock.Create(rel.Snapshot.Restore(now)); err != nil {
			return err
		}
	}

	for i := range p.Thresholds {
		t := p.Thresholds[i]
		if err := r.Thresholds.Create(&t); err != nil {
			return err
		}
	}

	// Retirar los traslados automáticos generados por la eliminación.
	if _, err := r.Movements.DeleteBySourceSince(p.Location.Name, entity.MovementTransfer, p.MovementAt); err != nil {
		return err
	}

	if p.DeletionRecordID != "" {
		if err := r.Deletions.MarkRestored(p.DeletionRecordID); err != nil {
			return err
		}
	}
	return nil
}
