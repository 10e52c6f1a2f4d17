package location

import (
	"context"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/application/ports"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/pkg/logger"
)

// Categorías de catálogo sembradas por defecto.
var defaultCatalogNames = []string{
	"Consumables",
	"Pharmacy Vials",
	"IV Vials",
	"Syringes",
	"Needles",
	"Bandages",
	"Medications",
	"Equipment",
	"Supplies",
}

// SeedUseCase siembra los datos por defecto al arranque: el reservorio
// (Cabinet) y las entradas de catálogo base. Cada inserción pasa por el
// registro de eliminaciones: lo que un usuario borró explícitamente no se
// resucita, salvo que esa eliminación se haya deshecho.
type SeedUseCase struct {
	tx  ports.TxRunner
	log *logger.Logger
}

// NewSeedUseCase construye el caso de uso de siembra.
func NewSeedUseCase(tx ports.TxRunner, log *logger.Logger) *SeedUseCase {
	return &SeedUseCase{tx: tx, log: log}
}

// EnsureDefaults crea lo que falte, respetando eliminaciones explícitas.
// El reservorio no pasa por el chequeo: no puede eliminarse, debe existir
// siempre.
func (uc *SeedUseCase) EnsureDefaults(ctx context.Context) error {
	now := time.Now().UTC()
	created := 0

	err := uc.tx.Run(ctx, func(r ports.Repos) error {
		reservoir, err := r.Locations.GetByName(entity.ReservoirName)
		if err != nil {
			return err
		}
		if reservoir == nil {
			loc := &entity.StorageLocation{
				Name:        entity.ReservoirName,
				Category:    entity.LocationCategoryCentral,
				Description: "Depósito central",
				CreatedAt:   now,
			}
			if err := r.Locations.Create(loc); err != nil {
				return err
			}
			created++
		}

		for _, name := range defaultCatalogNames {
			existing, err := r.Catalog.GetByName(name)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}
			deleted, err := r.Deletions.FindActive(entity.DeletionKindCatalog, name)
			if err != nil {
				return err
			}
			if deleted != nil {
				// Eliminado explícitamente y no restaurado: no resucitar.
				continue
			}
			cat := &entity.CatalogEntry{
				Name:      name,
				Category:  name,
				MinStock:  entity.DefaultMinStock,
				CreatedAt: now,
			}
			if err := r.Catalog.Create(cat); err != nil {
				return err
			}
			created++
		}
		return nil
	})
	if err != nil {
		return err
	}

	if created > 0 {
		uc.log.Info().Int("created", created).Msg("datos por defecto sembrados")
	}
	return nil
}
