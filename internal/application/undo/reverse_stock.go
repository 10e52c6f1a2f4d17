package undo

import (
	"fmt"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/application/ports"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
)

// reverseAddition elimina el registro creado por la adición (o le resta la
// cantidad si se fusionó en uno existente), retira el asiento del libro y
// borra la entrada de catálogo autocreada si ya nadie la referencia.
func (uc *UseCase) reverseAddition(r ports.Repos, action *entity.CompensatingAction, now time.Time) error {
	var p entity.AdditionPayload
	if err := action.DecodePayload(&p); err != nil {
		return err
	}

	rec, err := r.Stock.GetByIDForUpdate(p.RecordID)
	if err != nil {
		return err
	}
	if rec == nil {
		return fmt.Errorf("el registro %s ya no existe: %w", p.RecordID, domain.ErrUndoPayloadStale)
	}
	if p.Merged {
		if err := shrinkRecord(r, rec, p.Quantity, now); err != nil {
			return err
		}
	} else {
		if err := r.Stock.Delete(rec.ID); err != nil {
			return err
		}
	}

	if err := retractMovement(r, p.Key, p.Quantity, entity.MovementAddition, "", p.MovementAt); err != nil {
		return err
	}

	// Catálogo autocreado: chequeo de referencias en vivo, no inferencia
	// del snapshot. Otro registro pudo empezar a usar la entrada.
	if p.CatalogCreated && p.CatalogID != "" {
		refs, err := r.Stock.CountByCatalog(p.CatalogID)
		if err != nil {
			return err
		}
		if refs == 0 {
			if err := r.Catalog.Delete(p.CatalogID); err != nil {
				return err
			}
		}
	}
	return nil
}

// reverseTransfer devuelve cada línea a su origen: deshace el destino
// (borrándolo si la transferencia lo creó) y restaura el origen
// (recreándolo desde el snapshot si había quedado en cero).
func (uc *UseCase) reverseTransfer(r ports.Repos, action *entity.CompensatingAction, now time.Time) error {
	var p entity.TransferPayload
	if err := action.DecodePayload(&p); err != nil {
		return err
	}

	for i := len(p.Lines) - 1; i >= 0; i-- {
		line := p.Lines[i]

		dest, err := r.Stock.GetByIDForUpdate(line.DestRecordID)
		if err != nil {
			return err
		}
		if dest == nil {
			return fmt.Errorf("el destino %s ya no existe: %w", line.DestRecordID, domain.ErrUndoPayloadStale)
		}
		if line.DestCreated {
			if err := r.Stock.Delete(dest.ID); err != nil {
				return err
			}
		} else {
			if err := shrinkRecord(r, dest, line.Quantity, now); err != nil {
				return err
			}
		}

		src, err := r.Stock.GetByIDForUpdate(line.SourceID)
		if err != nil {
			return err
		}
		switch {
		case src != nil:
			if err := addToRecord(r, src, line.Quantity, now); err != nil {
				return err
			}
		case line.SourceDeleted:
			// El origen se eliminó al quedar en cero: el snapshot trae la
			// cantidad completa previa a la transferencia.
			if err := r.Stock.Create(line.SourceSnapshot.Restore(now)); err != nil {
				return err
			}
		default:
			return fmt.Errorf("el origen %s ya no existe: %w", line.SourceID, domain.ErrUndoPayloadStale)
		}

		if err := retractMovement(r, line.SourceSnapshot.Key, line.Quantity, entity.MovementTransfer, "", p.MovementAt); err != nil {
			return err
		}
	}
	return nil
}

// reverseConsumption reincorpora la cantidad consumida o descartada y
// retira el asiento (emparejado por clave + cantidad + sujeto + tipo).
func (uc *UseCase) reverseConsumption(r ports.Repos, action *entity.CompensatingAction, now time.Time) error {
	var p entity.ConsumptionPayload
	if err := action.DecodePayload(&p); err != nil {
		return err
	}

	rec, err := r.Stock.GetByIDForUpdate(p.Snapshot.ID)
	if err != nil {
		return err
	}
	switch {
	case rec != nil:
		if err := addToRecord(r, rec, p.Quantity, now); err != nil {
			return err
		}
	case p.RecordDeleted:
		if err := r.Stock.Create(p.Snapshot.Restore(now)); err != nil {
			return err
		}
	default:
		return fmt.Errorf("el registro %s ya no existe: %w", p.Snapshot.ID, domain.ErrUndoPayloadStale)
	}

	return retractMovement(r, p.Snapshot.Key, p.Quantity, p.MovementKind, p.Subject, p.MovementAt)
}
