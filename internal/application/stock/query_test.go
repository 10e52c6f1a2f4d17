package stock_test

import (
	"context"
	"testing"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/application/stock"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func (f *fixture) newQuery() *stock.QueryUseCase {
	return stock.NewQueryUseCase(f.repos.Locations, f.repos.Stock, f.repos.Catalog, f.repos.Movements, f.repos.Thresholds)
}

func TestLowStockUsesLocationThresholds(t *testing.T) {
	f := newFixture(t)
	now := time.Now().UTC()

	// Gauze está holgado frente al umbral global de catálogo (10 > 5), pero
	// el umbral local del reservorio exige 20.
	cat := &entity.CatalogEntry{Name: "Gauze", Category: "Bandages", MinStock: 5, CreatedAt: now}
	require.NoError(t, f.repos.Catalog.Create(cat))
	rec := &entity.StockRecord{
		Key:        entity.ItemKey{Name: "Gauze", Type: "Bandages"},
		LocationID: f.cabinet.ID,
		CatalogID:  cat.ID,
		Loose:      10,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, f.repos.Stock.Create(rec))
	threshold := &entity.ThresholdSetting{LocationID: f.cabinet.ID, CatalogName: "Gauze", MinQuantity: 20, CreatedAt: now}
	require.NoError(t, f.repos.Thresholds.Create(threshold))

	out, err := f.newQuery().LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 1, "solo el umbral local está en falta")
	assert.Equal(t, "Gauze", out[0].Name)
	assert.Equal(t, 10, out[0].Total)
	assert.Equal(t, 20, out[0].MinStock)
	assert.Equal(t, f.cabinet.ID, out[0].LocationID)
	assert.Equal(t, entity.ReservoirName, out[0].LocationName)
}

func TestLowStockCombinesCatalogAndLocationEntries(t *testing.T) {
	f := newFixture(t)
	now := time.Now().UTC()

	// Tape está bajo su umbral global; su umbral local en la bolsa también
	// está en falta (no hay stock allí). Ambas entradas deben aparecer.
	cat := &entity.CatalogEntry{Name: "Tape", Category: "Supplies", MinStock: 5, CreatedAt: now}
	require.NoError(t, f.repos.Catalog.Create(cat))
	rec := &entity.StockRecord{
		Key:        entity.ItemKey{Name: "Tape", Type: "Supplies"},
		LocationID: f.cabinet.ID,
		CatalogID:  cat.ID,
		Loose:      3,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, f.repos.Stock.Create(rec))
	threshold := &entity.ThresholdSetting{LocationID: f.bag.ID, CatalogName: "Tape", MinQuantity: 2, CreatedAt: now}
	require.NoError(t, f.repos.Thresholds.Create(threshold))

	out, err := f.newQuery().LowStock(context.Background())
	require.NoError(t, err)
	require.Len(t, out, 2)

	var global, local *int
	for i := range out {
		if out[i].LocationID == "" {
			global = &out[i].Total
		} else {
			local = &out[i].Total
		}
	}
	require.NotNil(t, global, "la entrada global de catálogo aparece")
	assert.Equal(t, 3, *global)
	require.NotNil(t, local, "la entrada del umbral local aparece")
	assert.Equal(t, 0, *local)
}

func TestLowStockLocationAboveThresholdNotListed(t *testing.T) {
	f := newFixture(t)
	now := time.Now().UTC()

	cat := &entity.CatalogEntry{Name: "Gloves", Category: "Supplies", MinStock: 1, CreatedAt: now}
	require.NoError(t, f.repos.Catalog.Create(cat))
	rec := &entity.StockRecord{
		Key:        entity.ItemKey{Name: "Gloves", Type: "Supplies"},
		LocationID: f.cabinet.ID,
		CatalogID:  cat.ID,
		Loose:      50,
		CreatedAt:  now,
		UpdatedAt:  now,
	}
	require.NoError(t, f.repos.Stock.Create(rec))
	threshold := &entity.ThresholdSetting{LocationID: f.cabinet.ID, CatalogName: "Gloves", MinQuantity: 10, CreatedAt: now}
	require.NoError(t, f.repos.Thresholds.Create(threshold))

	out, err := f.newQuery().LowStock(context.Background())
	require.NoError(t, err)
	assert.Empty(t, out, "por encima de ambos umbrales no hay alertas")
}
