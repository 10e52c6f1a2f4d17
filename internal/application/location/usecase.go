package location

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/application/ports"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/packaging"
	"github.com/jhoicas/Botiquin-api/pkg/logger"
)

// UseCase administra ubicaciones de almacenamiento: alta, edición y
// eliminación. Eliminar una ubicación reubica su stock restante en el
// reservorio, retira sus umbrales, deja constancia en DeletionRecord y
// registra la acción compensatoria, todo en una transacción.
type UseCase struct {
	tx  ports.TxRunner
	log *logger.Logger
}

// NewUseCase construye el caso de uso.
func NewUseCase(tx ports.TxRunner, log *logger.Logger) *UseCase {
	return &UseCase{tx: tx, log: log}
}

// Create da de alta una ubicación satélite con nombre único.
func (uc *UseCase) Create(ctx context.Context, actor string, in dto.CreateLocationRequest) (*dto.LocationDTO, error) {
	if in.Name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	var out dto.LocationDTO

	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		existing, err := r.Locations.GetByName(in.Name)
		if err != nil {
			return err
		}
		if existing != nil {
			return domain.ErrDuplicateLocationName
		}
		loc := &entity.StorageLocation{
			Name:        in.Name,
			Category:    entity.LocationCategorySatellite,
			Description: in.Description,
			CreatedAt:   now,
		}
		if err := r.Locations.Create(loc); err != nil {
			return err
		}
		out = dto.LocationDTO{ID: loc.ID, Name: loc.Name, Category: loc.Category, Description: loc.Description}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("actor", actor).Str("location", out.Name).Msg("ubicación creada")
	return &out, nil
}

// Update edita nombre y descripción, validando colisión de nombre.
func (uc *UseCase) Update(ctx context.Context, actor, id string, in dto.UpdateLocationRequest) error {
	if in.Name == "" {
		return domain.ErrInvalidInput
	}
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		loc, err := r.Locations.GetByID(id)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrLocationNotFound
		}
		if loc.IsReservoir() && in.Name != loc.Name {
			return domain.ErrProtectedLocation
		}
		other, err := r.Locations.GetByName(in.Name)
		if err != nil {
			return err
		}
		if other != nil && other.ID != loc.ID {
			return domain.ErrDuplicateLocationName
		}
		loc.Name = in.Name
		loc.Description = in.Description
		return r.Locations.Update(loc)
	})
}

// Delete elimina una ubicación. El stock restante se reubica en el
// reservorio (fusionando sobre claves idénticas) con un asiento de
// traslado por registro; los umbrales de la ubicación se retiran y se
// escribe un DeletionRecord para que la siembra por defecto no la
// resucite. El payload de undo captura todo lo necesario para restaurarla.
func (uc *UseCase) Delete(ctx context.Context, actor, id string) error {
	now := time.Now().UTC()
	var name string

	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		loc, err := r.Locations.GetByID(id)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrLocationNotFound
		}
		if loc.IsReservoir() {
			return domain.ErrProtectedLocation
		}
		reservoir, err := r.Locations.GetByName(entity.ReservoirName)
		if err != nil {
			return err
		}
		if reservoir == nil {
			return domain.ErrLocationNotFound
		}
		name = loc.Name

		payload := entity.LocationDeletionPayload{Location: *loc, MovementAt: now}

		// Reubicar el stock restante en el reservorio.
		records, err := r.Stock.ListByLocation(loc.ID)
		if err != nil {
			return err
		}
		for _, rec := range records {
			locked, err := r.Stock.GetByIDForUpdate(rec.ID)
			if err != nil {
				return err
			}
			if locked == nil {
				continue
			}
			snapshot := locked.Snapshot()
			qty := locked.Total()

			target, err := r.Stock.FindByKeyAtLocationForUpdate(reservoir.ID, locked.Key)
			if err != nil {
				return err
			}
			destCreated := target == nil
			if destCreated {
				target = &entity.StockRecord{
					Key:         locked.Key,
					LocationID:  reservoir.ID,
					CatalogID:   locked.CatalogID,
					Boxes:       locked.Boxes,
					Loose:       locked.Loose,
					UnitsPerBox: locked.UnitsPerBox,
					CreatedAt:   now,
					UpdatedAt:   now,
				}
				if err := r.Stock.Create(target); err != nil {
					return err
				}
			} else {
				q := packaging.AddPieces(packaging.Quantity{Boxes: target.Boxes, Loose: target.Loose}, qty, target.UnitsPerBox)
				target.Boxes, target.Loose = q.Boxes, q.Loose
				target.UpdatedAt = now
				if err := r.Stock.Update(target); err != nil {
					return err
				}
			}
			if err := r.Stock.Delete(locked.ID); err != nil {
				return err
			}

			mov := &entity.Movement{
				Key:          locked.Key,
				Quantity:     qty,
				Kind:         entity.MovementTransfer,
				FromLocation: loc.Name,
				ToLocation:   reservoir.Name,
				Note:         fmt.Sprintf("Reubicado al eliminar la ubicación %s", loc.Name),
				Timestamp:    now,
			}
			if err := r.Movements.Create(mov); err != nil {
				return err
			}

			payload.Relocated = append(payload.Relocated, entity.RelocatedRecord{
				Snapshot:     snapshot,
				Quantity:     qty,
				DestRecordID: target.ID,
				DestCreated:  destCreated,
			})
		}

		// Umbrales de la ubicación: se retiran y quedan en el payload.
		thresholds, err := r.Thresholds.ListByLocation(loc.ID)
		if err != nil {
			return err
		}
		for _, t := range thresholds {
			payload.Thresholds = append(payload.Thresholds, *t)
		}
		if err := r.Thresholds.DeleteByLocation(loc.ID); err != nil {
			return err
		}

		if err := r.Locations.Delete(loc.ID); err != nil {
			return err
		}

		snapshotJSON, err := json.Marshal(loc)
		if err != nil {
			return fmt.Errorf("marshal location snapshot: %w", err)
		}
		deletion := &entity.DeletionRecord{
			EntityKind: entity.DeletionKindLocation,
			EntityName: loc.Name,
			Snapshot:   snapshotJSON,
			Actor:      actor,
			CreatedAt:  now,
		}
		if err := r.Deletions.Create(deletion); err != nil {
			return err
		}
		payload.DeletionRecordID = deletion.ID

		desc := fmt.Sprintf("Eliminación de la ubicación %s (%d registros reubicados)", loc.Name, len(payload.Relocated))
		action, err := entity.NewCompensatingAction(entity.ActionLocationDeletion, actor, desc, payload, now)
		if err != nil {
			return err
		}
		return r.Undo.Create(action)
	})
	if err != nil {
		return err
	}

	uc.log.Info().Str("actor", actor).Str("location", name).Msg("ubicación eliminada")
	return nil
}

// SetThreshold fija el umbral mínimo local de un artículo en la ubicación.
// Si ya existe un umbral para ese nombre, se reemplaza (un umbral por
// artículo y ubicación).
func (uc *UseCase) SetThreshold(ctx context.Context, actor, locationID string, in dto.SetThresholdRequest) (*dto.ThresholdDTO, error) {
	name := strings.TrimSpace(in.CatalogName)
	if name == "" {
		return nil, domain.ErrInvalidInput
	}
	now := time.Now().UTC()
	var out dto.ThresholdDTO

	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		loc, err := r.Locations.GetByID(locationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrLocationNotFound
		}
		existing, err := r.Thresholds.ListByLocation(loc.ID)
		if err != nil {
			return err
		}
		for _, t := range existing {
			if strings.EqualFold(strings.TrimSpace(t.CatalogName), name) {
				if err := r.Thresholds.Delete(t.ID); err != nil {
					return err
				}
			}
		}
		threshold := &entity.ThresholdSetting{
			LocationID:  loc.ID,
			CatalogName: name,
			MinQuantity: in.MinQuantity,
			CreatedAt:   now,
		}
		if err := r.Thresholds.Create(threshold); err != nil {
			return err
		}
		out = dto.ThresholdDTO{
			ID:          threshold.ID,
			LocationID:  threshold.LocationID,
			CatalogName: threshold.CatalogName,
			MinQuantity: threshold.MinQuantity,
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().Str("actor", actor).Str("catalog", name).Int("min", in.MinQuantity).Msg("umbral fijado")
	return &out, nil
}

// RemoveThreshold elimina un umbral local de la ubicación.
func (uc *UseCase) RemoveThreshold(ctx context.Context, actor, locationID, thresholdID string) error {
	return uc.tx.Run(ctx, func(r ports.Repos) error {
		loc, err := r.Locations.GetByID(locationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrLocationNotFound
		}
		existing, err := r.Thresholds.ListByLocation(loc.ID)
		if err != nil {
			return err
		}
		for _, t := range existing {
			if t.ID == thresholdID {
				return r.Thresholds.Delete(t.ID)
			}
		}
		return domain.ErrNotFound
	})
}
