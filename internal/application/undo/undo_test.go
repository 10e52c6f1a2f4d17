package undo_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/application/ports"
	"github.com/jhoicas/Botiquin-api/internal/application/stock"
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
	stockUC *stock.UseCase
	undoUC  *undo.UseCase
	cabinet *entity.StorageLocation
	bag     *entity.StorageLocation
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	store := memory.NewStore()
	repos := store.Repos()
	log := logger.New(logger.Config{Env: "development", Level: "error"})
	now := time.Now().UTC()

	cabinet := &entity.StorageLocation{Name: entity.ReservoirName, Category: entity.LocationCategoryCentral, CreatedAt: now}
	require.NoError(t, repos.Locations.Create(cabinet))
	bag := &entity.StorageLocation{Name: "Ambulance Bag", Category: entity.LocationCategorySatellite, CreatedAt: now}
	require.NoError(t, repos.Locations.Create(bag))

	return &fixture{
		store:   store,
		repos:   repos,
		stockUC: stock.NewUseCase(store, log),
		undoUC:  undo.NewUseCase(store, repos.Undo, log),
		cabinet: cabinet,
		bag:     bag,
	}
}

func (f *fixture) seedSaline(t *testing.T) *entity.StockRecord {
	t.Helper()
	now := time.Now().UTC()
	cat := &entity.CatalogEntry{Name: "Saline", Category: "IV Vials", MinStock: 5, UnitsPerBox: 100, CreatedAt: now}
	require.NoError(t, f.repos.Catalog.Create(cat))
	rec := &entity.StockRecord{
		Key:         entity.ItemKey{Name: "Saline", Type: "IV Vials", Size: "500ml"},
		LocationID:  f.cabinet.ID,
		CatalogID:   cat.ID,
		Boxes:       2,
		Loose:       3,
		UnitsPerBox: 100,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	require.NoError(t, f.repos.Stock.Create(rec))
	return rec
}

func (f *fixture) movementCount(t *testing.T, kind string) int {
	t.Helper()
	list, err := f.repos.Movements.List(entity.MovementFilter{Kind: kind})
	require.NoError(t, err)
	return len(list)
}

func TestUndoNothingToUndo(t *testing.T) {
	f := newFixture(t)

	out, err := f.undoUC.UndoLast(context.Background(), actor)
	require.NoError(t, err)
	assert.False(t, out.Undone, "sin acciones no es un error, solo undone=false")

	status, err := f.undoUC.Status(context.Background(), actor)
	require.NoError(t, err)
	assert.False(t, status.Available)
}

func TestUndoAdditionRemovesRecordAndCatalog(t *testing.T) {
	f := newFixture(t)

	out, err := f.stockUC.AddStock(context.Background(), actor, dto.AddStockRequest{
		Key:        dto.ItemKeyDTO{Name: "Gauze", Type: "Bandages"},
		LocationID: f.cabinet.ID,
		Pieces:     10,
	})
	require.NoError(t, err)

	res, err := f.undoUC.UndoLast(context.Background(), actor)
	require.NoError(t, err)
	assert.True(t, res.Undone)

	rec, err := f.repos.Stock.GetByID(out.ID)
	require.NoError(t, err)
	assert.Nil(t, rec, "el registro creado por la adición desaparece")

	cat, err := f.repos.Catalog.GetByName("Gauze")
	require.NoError(t, err)
	assert.Nil(t, cat, "la entrada de catálogo autocreada sin referencias se elimina")

	assert.Zero(t, f.movementCount(t, entity.MovementAddition), "el asiento se retira del libro")
}

func TestUndoAdditionMergedShrinksRecord(t *testing.T) {
	f := newFixture(t)
	key := dto.ItemKeyDTO{Name: "Gauze", Type: "Bandages"}

	first, err := f.stockUC.AddStock(context.Background(), actor, dto.AddStockRequest{Key: key, LocationID: f.cabinet.ID, Pieces: 10})
	require.NoError(t, err)
	_, err = f.stockUC.AddStock(context.Background(), actor, dto.AddStockRequest{Key: key, LocationID: f.cabinet.ID, Pieces: 5})
	require.NoError(t, err)

	res, err := f.undoUC.UndoLast(context.Background(), actor)
	require.NoError(t, err)
	assert.True(t, res.Undone)

	rec, err := f.repos.Stock.GetByID(first.ID)
	require.NoError(t, err)
	require.NotNil(t, rec)
	assert.Equal(t, 10, rec.Total(), "solo se resta la cantidad de la adición fusionada")
}

func TestUndoTransferRestoresBothSides(t *testing.T) {
	f := newFixture(t)
	rec := f.seedSaline(t)

	err := f.stockUC.Transfer(context.Background(), actor, dto.TransferRequest{
		ToLocationID: f.bag.ID,
		Lines:        []dto.TransferLineRequest{{RecordID: rec.ID, Pieces: 150}},
	})
	require.NoError(t, err)

	res, err := f.undoUC.UndoLast(context.Background(), actor)
	require.NoError(t, err)
	assert.True(t, res.Undone)

	src, err := f.repos.Stock.GetByID(rec.ID)
	require.NoError(t, err)
	require.NotNil(t, src)
	assert.Equal(t, 2, src.Boxes)
	assert.Equal(t, 3, src.Loose)

	dest, err := f.repos.Stock.FindByKeyAtLocation(f.bag.ID, rec.Key)
	require.NoError(t, err)
	assert.Nil(t, dest, "el registro destino creado por la transferencia desaparece")

	assert.Zero(t, f.movementCount(t, entity.MovementTransfer))
}

func TestUndoUsageRecreatesDeletedRecord(t *testing.T) {
	f := newFixture(t)
	rec := f.seedSaline(t)

	err := f.stockUC.RecordUsage(context.Background(), actor, dto.UsageRequest{RecordID: rec.ID, Pieces: 203, Subject: "patient-7"})
	require.NoError(t, err)

	res, err := f.undoUC.UndoLast(context.Background(), actor)
	require.NoError(t, err)
	assert.True(t, res.Undone)

	restored, err := f.repos.Stock.GetByID(rec.ID)
	require.NoError(t, err)
	require.NotNil(t, restored, "el registro eliminado al vaciarse se recrea con su ID original")
	assert.Equal(t, 203, restored.Total())
	assert.Zero(t, f.movementCount(t, entity.MovementUsage))
}

func TestUndoBulkAudit(t *testing.T) {
	f := newFixture(t)
	rec := f.seedSaline(t)

	err := f.stockUC.BulkAudit(context.Background(), actor, dto.BulkAuditRequest{
		LocationID: f.cabinet.ID,
		Counts: []dto.AuditCountRequest{
			{Key: dto.ItemKeyDTO{Name: "Saline", Type: "IV Vials", Size: "500ml"}, Counted: 180},
			{Key: dto.ItemKeyDTO{Name: "Tape", Type: "Supplies"}, Counted: 7},
		},
	})
	require.NoError(t, err)

	res, err := f.undoUC.UndoLast(context.Background(), actor)
	require.NoError(t, err)
	assert.True(t, res.Undone)

	saline, err := f.repos.Stock.GetByID(rec.ID)
	require.NoError(t, err)
	assert.Equal(t, 203, saline.Total())

	tape, err := f.repos.Stock.FindByKeyAtLocation(f.cabinet.ID, entity.ItemKey{Name: "Tape", Type: "Supplies"})
	require.NoError(t, err)
	assert.Nil(t, tape, "el registro creado por la auditoría desaparece")

	assert.Zero(t, f.movementCount(t, entity.MovementAdjustment))
}

func TestUndoConsumesAndInvalidatesOlder(t *testing.T) {
	f := newFixture(t)
	key := dto.ItemKeyDTO{Name: "Gauze", Type: "Bandages"}

	_, err := f.stockUC.AddStock(context.Background(), actor, dto.AddStockRequest{Key: key, LocationID: f.cabinet.ID, Pieces: 10})
	require.NoError(t, err)
	time.Sleep(5 * time.Millisecond)
	_, err = f.stockUC.AddStock(context.Background(), actor, dto.AddStockRequest{Key: key, LocationID: f.cabinet.ID, Pieces: 5})
	require.NoError(t, err)

	res, err := f.undoUC.UndoLast(context.Background(), actor)
	require.NoError(t, err)
	assert.True(t, res.Undone)

	// Al consumir la más reciente, la anterior queda inutilizable: no hay
	// "deshacer dos veces" encadenado.
	res, err = f.undoUC.UndoLast(context.Background(), actor)
	require.NoError(t, err)
	assert.False(t, res.Undone)
}

func TestUndoIsPerActor(t *testing.T) {
	f := newFixture(t)

	_, err := f.stockUC.AddStock(context.Background(), "ana", dto.AddStockRequest{
		Key: dto.ItemKeyDTO{Name: "Gauze", Type: "Bandages"}, LocationID: f.cabinet.ID, Pieces: 10,
	})
	require.NoError(t, err)

	res, err := f.undoUC.UndoLast(context.Background(), "bruno")
	require.NoError(t, err)
	assert.False(t, res.Undone, "un actor no puede deshacer acciones de otro")
}

func TestUndoStaleStateFailsAndKeepsAction(t *testing.T) {
	f := newFixture(t)

	out, err := f.stockUC.AddStock(context.Background(), actor, dto.AddStockRequest{
		Key: dto.ItemKeyDTO{Name: "Gauze", Type: "Bandages"}, LocationID: f.cabinet.ID, Pieces: 10,
	})
	require.NoError(t, err)

	// El estado deriva por fuera: el registro desaparece antes del undo.
	require.NoError(t, f.repos.Stock.Delete(out.ID))

	_, err = f.undoUC.UndoLast(context.Background(), actor)
	assert.ErrorIs(t, err, domain.ErrUndoPayloadStale)

	status, err := f.undoUC.Status(context.Background(), actor)
	require.NoError(t, err)
	assert.True(t, status.Available, "la reversión fallida no consume la acción")
}
