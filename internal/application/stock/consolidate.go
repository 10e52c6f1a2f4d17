package stock

import (
	"context"
	"fmt"
	"sort"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/application/ports"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/packaging"
)

// ConsolidateDuplicates fusiona los registros de una ubicación que
// comparten clave descriptiva idéntica: suma los totales en el más antiguo
// (creación más temprana; a igualdad, menor ID), elimina el resto y deja
// un único asiento de consolidación por grupo. La consolidación no genera
// acción compensatoria: es una operación de saneamiento sin inverso.
func (uc *UseCase) ConsolidateDuplicates(ctx context.Context, actor, locationID string) (*dto.ConsolidationResultDTO, error) {
	now := time.Now().UTC()
	result := &dto.ConsolidationResultDTO{}

	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		loc, err := r.Locations.GetByID(locationID)
		if err != nil {
			return err
		}
		if loc == nil {
			return domain.ErrLocationNotFound
		}

		records, err := r.Stock.ListByLocation(loc.ID)
		if err != nil {
			return err
		}

		groups := make(map[string][]*entity.StockRecord)
		for _, rec := range records {
			fp := rec.Key.Fingerprint()
			groups[fp] = append(groups[fp], rec)
		}

		for _, group := range groups {
			if len(group) < 2 {
				continue
			}
			sort.Slice(group, func(i, j int) bool {
				if !group[i].CreatedAt.Equal(group[j].CreatedAt) {
					return group[i].CreatedAt.Before(group[j].CreatedAt)
				}
				return group[i].ID < group[j].ID
			})

			keeper := group[0]
			sum := 0
			for _, rec := range group {
				sum += rec.Total()
			}
			q := packaging.FromPieces(sum, keeper.UnitsPerBox)
			keeper.Boxes, keeper.Loose = q.Boxes, q.Loose
			keeper.UpdatedAt = now
			if err := r.Stock.Update(keeper); err != nil {
				return err
			}
			for _, rec := range group[1:] {
				if err := r.Stock.Delete(rec.ID); err != nil {
					return err
				}
			}

			mov := &entity.Movement{
				Key:        keeper.Key,
				Quantity:   sum,
				Kind:       entity.MovementConsolidation,
				ToLocation: loc.Name,
				Note:       fmt.Sprintf("Consolidación de %d registros duplicados", len(group)),
				Timestamp:  now,
			}
			if err := r.Movements.Create(mov); err != nil {
				return err
			}

			result.MergedGroups++
			result.RemovedRecords += len(group) - 1
		}
		return nil
	})
	if err != nil {
		return nil, err
	}

	uc.log.Info().
		Str("actor", actor).
		Int("groups", result.MergedGroups).
		Int("removed", result.RemovedRecords).
		Msg("consolidación ejecutada")
	return result, nil
}
