package location_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/application/location"
	"github.com/jhoicas/Botiquin-api/internal/application/ports"
	"github.com/jhoicas/Botiquin-api/internal/application/undo"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/infrastructure/memory"
	"github.com/jhoicas/Botiquin-api/pkg/logger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const actor = "ana"

type fixture struct {
	store   *memory.Store
	repos   ports.Repos
	uc      *location.UseCase
	undoUC  *undo.UseCase
	seedUC  *location.SeedUseCase
	cabinet *entity.StorageLocation
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	log := logger.New(logger.Config{Env: "development", Level: "error"})

	cabinet := &entity.StorageLocation{
		Name:      entity.ReservoirName,
		Category:  entity.LocationCategoryCentral,
		CreatedAt: time.Now().UTC(),
	}
	require.NoError(t, repos.Locations.Create(cabinet))

	return &fixture{
		store:   store,
		repos:   repos,
		uc:      location.NewUseCase(store, log),
		undoUC:  undo.NewUseCase(store, repos.Undo, log),
		seedUC:  location.NewSeedUseCase(store, log),
		cabinet: cabinet,
	}
}

func TestCreateLocationRejectsDuplicateName(t *testing.T) {
	f := newFixture(t)

	out, err := f.uc.Create(context.Background(), actor, dto.CreateLocationRequest{Name: "Ambulance Bag"})
	require.NoError(t, err)
	assert.Equal(t, entity.LocationCategorySatellite, out.Category)

	_, err = f.uc.Create(context.Background(), actor, dto.CreateLocationRequest{Name: "Ambulance Bag"})
	assert.ErrorIs(t, err, domain.ErrDuplicateLocationName)
}

func TestReservoirCannotBeRenamedNorDeleted(t *testing.T) {
	f := newFixture(t)

	err := f.uc.Update(context.Background(), actor, f.cabinet.ID, dto.UpdateLocationRequest{Name: "Otro"})
	assert.ErrorIs(t, err, domain.ErrProtectedLocation)

	err = f.uc.Delete(context.Background(), actor, f.cabinet.ID)
	assert.ErrorIs(t, err, domain.ErrProtectedLocation)
}

func TestDeleteLocationRelocatesStockToReservoir(t *testing.T) {
	f := newFixture(t)
	now := time.Now().UTC()

	bag, err := f.uc.Create(context.Background(), actor, dto.CreateLocationRequest{Name: "Ambulance Bag"})
	require.NoError(t, err)

	key := entity.ItemKey{Name: "Gauze", Type: "Bandages"}
	rec := &entity.StockRecord{Key: key, LocationID: bag.ID, Loose: 8, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.repos.Stock.Create(rec))
	existing := &entity.StockRecord{Key: key, LocationID: f.cabinet.ID, Loose: 2, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.repos.Stock.Create(existing))
	threshold := &entity.ThresholdSetting{LocationID: bag.ID, CatalogName: "Gauze", MinQuantity: 3, CreatedAt: now}
	require.NoError(t, f.repos.Thresholds.Create(threshold))

	require.NoError(t, f.uc.Delete(context.Background(), actor, bag.ID))

	gone, err := f.repos.Locations.GetByID(bag.ID)
	require.NoError(t, err)
	assert.Nil(t, gone)

	merged, err := f.repos.Stock.GetByID(existing.ID)
	require.NoError(t, err)
	require.NotNil(t, merged)
	assert.Equal(t, 10, merged.Total(), "el stock reubicado se fusiona sobre la clave idéntica")

	transfers, err := f.repos.Movements.List(entity.MovementFilter{Kind: entity.MovementTransfer})
	require.NoError(t, err)
	require.Len(t, transfers, 1)
	assert.Equal(t, "Ambulance Bag", transfers[0].FromLocation)
	assert.Equal(t, entity.ReservoirName, transfers[0].ToLocation)

	remaining, err := f.repos.Thresholds.ListByLocation(bag.ID)
	require.NoError(t, err)
	assert.Empty(t, remaining)

	deletion, err := f.repos.Deletions.FindActive(entity.DeletionKindLocation, "Ambulance Bag")
	require.NoError(t, err)
	assert.NotNil(t, deletion)
}

func TestUndoLocationDeletionRestoresEverything(t *testing.T) {
	f := newFixture(t)
	now := time.Now().UTC()

	bag, err := f.uc.Create(context.Background(), actor, dto.CreateLocationRequest{Name: "Ambulance Bag"})
	require.NoError(t, err)

	key := entity.ItemKey{Name: "Gauze", Type: "Bandages"}
	rec := &entity.StockRecord{Key: key, LocationID: bag.ID, Loose: 8, CreatedAt: now, UpdatedAt: now}
	require.NoError(t, f.repos.Stock.Create(rec))
	threshold := &entity.ThresholdSetting{LocationID: bag.ID, CatalogName: "Gauze", MinQuantity: 3, CreatedAt: now}
	require.NoError(t, f.repos.Thresholds.Create(threshold))

	require.NoError(t, f.uc.Delete(context.Background(), actor, bag.ID))

	res, err := f.undoUC.UndoLast(context.Background(), actor)
	require.NoError(t, err)
	assert.True(t, res.Undone)

	restored, err := f.repos.Locations.GetByID(bag.ID)
	require.NoError(t, err)
	require.NotNil(t, restored, "la ubicación vuelve con su ID original")
	assert.Equal(t, "Ambulance Bag", restored.Name)

	back, err := f.repos.Stock.GetByID(rec.ID)
	require.NoError(t, err)
	require.NotNil(t, back)
	assert.Equal(t, bag.ID, back.LocationID)
	assert.Equal(t, 8, back.Total())

	inReservoir, err := f.repos.Stock.FindByKeyAtLocation(f.cabinet.ID, key)
	require.NoError(t, err)
	assert.Nil(t, inReservoir, "el registro temporal del reservorio desaparece")

	thresholds, err := f.repos.Thresholds.ListByLocation(bag.ID)
	require.NoError(t, err)
	assert.Len(t, thresholds, 1)

	transfers, err := f.repos.Movements.List(entity.MovementFilter{Kind: entity.MovementTransfer})
	require.NoError(t, err)
	assert.Empty(t, transfers, "los traslados automáticos se retiran del libro")

	deletion, err := f.repos.Deletions.FindActive(entity.DeletionKindLocation, "Ambulance Bag")
	require.NoError(t, err)
	assert.Nil(t, deletion, "la eliminación queda marcada como restaurada")
}

func TestUndoLocationDeletionNameCollision(t *testing.T) {
	f := newFixture(t)

	bag, err := f.uc.Create(context.Background(), actor, dto.CreateLocationRequest{Name: "Ambulance Bag"})
	require.NoError(t, err)
	require.NoError(t, f.uc.Delete(context.Background(), actor, bag.ID))

	// Otra ubicación toma el nombre antes del undo.
	_, err = f.uc.Create(context.Background(), "bruno", dto.CreateLocationRequest{Name: "Ambulance Bag"})
	require.NoError(t, err)

	_, err = f.undoUC.UndoLast(context.Background(), actor)
	assert.ErrorIs(t, err, domain.ErrUndoPayloadStale)
}

func TestSeedCreatesDefaultsOnce(t *testing.T) {
	f := newFixture(t)

	require.NoError(t, f.seedUC.EnsureDefaults(context.Background()))

	entries, err := f.repos.Catalog.List()
	require.NoError(t, err)
	assert.Len(t, entries, 9)

	// Idempotente: una segunda corrida no duplica nada.
	require.NoError(t, f.seedUC.EnsureDefaults(context.Background()))
	entries, err = f.repos.Catalog.List()
	require.NoError(t, err)
	assert.Len(t, entries, 9)
}

func TestSeedRespectsExplicitDeletions(t *testing.T) {
	f := newFixture(t)
	require.NoError(t, f.seedUC.EnsureDefaults(context.Background()))

	// El usuario elimina "Syringes" explícitamente.
	cat, err := f.repos.Catalog.GetByName("Syringes")
	require.NoError(t, err)
	require.NotNil(t, cat)
	require.NoError(t, f.repos.Catalog.Delete(cat.ID))
	deletion := &entity.DeletionRecord{
		EntityKind: entity.DeletionKindCatalog,
		EntityName: "Syringes",
		Actor:      actor,
		CreatedAt:  time.Now().UTC(),
	}
	require.NoError(t, f.repos.Deletions.Create(deletion))

	require.NoError(t, f.seedUC.EnsureDefaults(context.Background()))
	cat, err = f.repos.Catalog.GetByName("Syringes")
	require.NoError(t, err)
	assert.Nil(t, cat, "lo eliminado explícitamente no se resucita")

	// Salvo que la eliminación se haya deshecho.
	require.NoError(t, f.repos.Deletions.MarkRestored(deletion.ID))
	require.NoError(t, f.seedUC.EnsureDefaults(context.Background()))
	cat, err = f.repos.Catalog.GetByName("Syringes")
	require.NoError(t, err)
	assert.NotNil(t, cat)
}

func TestSetThresholdReplacesExisting(t *testing.T) {
	f := newFixture(t)

	first, err := f.uc.SetThreshold(context.Background(), actor, f.cabinet.ID, dto.SetThresholdRequest{CatalogName: "Gauze", MinQuantity: 3})
	require.NoError(t, err)
	require.NotEmpty(t, first.ID)

	// Mismo artículo (con espacios y otra capitalización): reemplaza, no duplica.
	second, err := f.uc.SetThreshold(context.Background(), actor, f.cabinet.ID, dto.SetThresholdRequest{CatalogName: " gauze ", MinQuantity: 7})
	require.NoError(t, err)

	list, err := f.repos.Thresholds.ListByLocation(f.cabinet.ID)
	require.NoError(t, err)
	require.Len(t, list, 1, "un umbral por artículo y ubicación")
	assert.Equal(t, second.ID, list[0].ID)
	assert.Equal(t, 7, list[0].MinQuantity)
}

func TestSetThresholdUnknownLocation(t *testing.T) {
	f := newFixture(t)

	_, err := f.uc.SetThreshold(context.Background(), actor, "no-existe", dto.SetThresholdRequest{CatalogName: "Gauze", MinQuantity: 3})
	assert.ErrorIs(t, err, domain.ErrLocationNotFound)
}

func TestRemoveThreshold(t *testing.T) {
	f := newFixture(t)

	created, err := f.uc.SetThreshold(context.Background(), actor, f.cabinet.ID, dto.SetThresholdRequest{CatalogName: "Gauze", MinQuantity: 3})
	require.NoError(t, err)

	require.NoError(t, f.uc.RemoveThreshold(context.Background(), actor, f.cabinet.ID, created.ID))

	list, err := f.repos.Thresholds.ListByLocation(f.cabinet.ID)
	require.NoError(t, err)
	assert.Empty(t, list)

	err = f.uc.RemoveThreshold(context.Background(), actor, f.cabinet.ID, created.ID)
	assert.ErrorIs(t, err, domain.ErrNotFound)
}
