package stock

import (
	"context"
	"strings"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/application/dto"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
)

// QueryUseCase consultas de solo lectura sobre stock, catálogo, umbrales y
// libro de movimientos. Opera fuera de transacción, directo sobre el pool.
type QueryUseCase struct {
	locations  repository.LocationRepository
	stock      repository.StockRepository
	catalog    repository.CatalogRepository
	movements  repository.MovementRepository
	thresholds repository.ThresholdRepository
}

// NewQueryUseCase construye el caso de uso de consultas.
func NewQueryUseCase(
	locations repository.LocationRepository,
	stock repository.StockRepository,
	catalog repository.CatalogRepository,
	movements repository.MovementRepository,
	thresholds repository.ThresholdRepository,
) *QueryUseCase {
	return &QueryUseCase{
		locations:  locations,
		stock:      stock,
		catalog:    catalog,
		movements:  movements,
		thresholds: thresholds,
	}
}

// ListByLocation registros actuales de una ubicación.
func (uc *QueryUseCase) ListByLocation(ctx context.Context, locationID string) ([]dto.StockRecordDTO, error) {
	loc, err := uc.locations.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrLocationNotFound
	}
	records, err := uc.stock.ListByLocation(loc.ID)
	if err != nil {
		return nil, err
	}
	now := time.Now().UTC()
	out := make([]dto.StockRecordDTO, 0, len(records))
	for _, rec := range records {
		out = append(out, RecordToDTO(rec, loc.Name, now))
	}
	return out, nil
}

// TotalByKey total actual agregado para una clave descriptiva.
func (uc *QueryUseCase) TotalByKey(ctx context.Context, in dto.ItemKeyDTO) (*dto.KeyTotalDTO, error) {
	key, err := KeyFromDTO(in)
	if err != nil {
		return nil, err
	}
	total, err := uc.stock.TotalByKey(key)
	if err != nil {
		return nil, err
	}
	return &dto.KeyTotalDTO{Key: KeyToDTO(key), Total: total}, nil
}

// Locations ubicaciones con su total agregado en piezas.
func (uc *QueryUseCase) Locations(ctx context.Context) ([]dto.LocationDTO, error) {
	locs, err := uc.locations.List()
	if err != nil {
		return nil, err
	}
	out := make([]dto.LocationDTO, 0, len(locs))
	for _, loc := range locs {
		total, err := uc.stock.TotalByLocation(loc.ID)
		if err != nil {
			return nil, err
		}
		out = append(out, dto.LocationDTO{
			ID:          loc.ID,
			Name:        loc.Name,
			Category:    loc.Category,
			Description: loc.Description,
			TotalPieces: total,
		})
	}
	return out, nil
}

// LowStock artículos en o bajo su umbral mínimo: entradas de catálogo
// contra su umbral global, y umbrales por ubicación (ThresholdSetting)
// contra el total local del artículo.
func (uc *QueryUseCase) LowStock(ctx context.Context) ([]dto.LowStockDTO, error) {
	entries, err := uc.catalog.List()
	if err != nil {
		return nil, err
	}
	var out []dto.LowStockDTO
	for _, cat := range entries {
		total, err := uc.stock.TotalByCatalog(cat.ID)
		if err != nil {
			return nil, err
		}
		if cat.IsLowStock(total) {
			out = append(out, dto.LowStockDTO{
				Name:     cat.Name,
				Category: cat.Category,
				Total:    total,
				MinStock: cat.MinStock,
			})
		}
	}

	locs, err := uc.locations.List()
	if err != nil {
		return nil, err
	}
	for _, loc := range locs {
		thresholds, err := uc.thresholds.ListByLocation(loc.ID)
		if err != nil {
			return nil, err
		}
		if len(thresholds) == 0 {
			continue
		}
		records, err := uc.stock.ListByLocation(loc.ID)
		if err != nil {
			return nil, err
		}
		for _, t := range thresholds {
			total := 0
			for _, rec := range records {
				if strings.EqualFold(strings.TrimSpace(rec.Key.Name), strings.TrimSpace(t.CatalogName)) {
					total += rec.Total()
				}
			}
			if total <= t.MinQuantity {
				out = append(out, dto.LowStockDTO{
					Name:         t.CatalogName,
					Total:        total,
					MinStock:     t.MinQuantity,
					LocationID:   loc.ID,
					LocationName: loc.Name,
				})
			}
		}
	}
	return out, nil
}

// Thresholds umbrales locales configurados en una ubicación.
func (uc *QueryUseCase) Thresholds(ctx context.Context, locationID string) ([]dto.ThresholdDTO, error) {
	loc, err := uc.locations.GetByID(locationID)
	if err != nil {
		return nil, err
	}
	if loc == nil {
		return nil, domain.ErrLocationNotFound
	}
	list, err := uc.thresholds.ListByLocation(loc.ID)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ThresholdDTO, 0, len(list))
	for _, t := range list {
		out = append(out, dto.ThresholdDTO{
			ID:          t.ID,
			LocationID:  t.LocationID,
			CatalogName: t.CatalogName,
			MinQuantity: t.MinQuantity,
		})
	}
	return out, nil
}

// Expiry registros vencidos o por vencer (≤ 30 días), en toda ubicación.
func (uc *QueryUseCase) Expiry(ctx context.Context) (expired, expiring []dto.StockRecordDTO, err error) {
	records, err := uc.stock.ListAll()
	if err != nil {
		return nil, nil, err
	}
	now := time.Now().UTC()
	names := map[string]string{}
	locs, err := uc.locations.List()
	if err != nil {
		return nil, nil, err
	}
	for _, loc := range locs {
		names[loc.ID] = loc.Name
	}
	for _, rec := range records {
		switch rec.ExpiryStatus(now) {
		case entity.ExpiryStatusExpired:
			expired = append(expired, RecordToDTO(rec, names[rec.LocationID], now))
		case entity.ExpiryStatusExpiring:
			expiring = append(expiring, RecordToDTO(rec, names[rec.LocationID], now))
		}
	}
	return expired, expiring, nil
}

// Movements consulta paginada del libro, más reciente primero.
func (uc *QueryUseCase) Movements(ctx context.Context, q dto.MovementQuery) ([]dto.MovementDTO, error) {
	filter := entity.MovementFilter{
		Kind:   q.Kind,
		Search: q.Search,
		Limit:  q.Limit,
	}
	if filter.Limit <= 0 || filter.Limit > 200 {
		filter.Limit = 50
	}
	if q.Page > 1 {
		filter.Offset = (q.Page - 1) * filter.Limit
	}
	if q.From != "" {
		t, err := parseQueryTime(q.From)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.From = &t
	}
	if q.To != "" {
		t, err := parseQueryTime(q.To)
		if err != nil {
			return nil, domain.ErrInvalidInput
		}
		filter.To = &t
	}

	movements, err := uc.movements.List(filter)
	if err != nil {
		return nil, err
	}
	out := make([]dto.MovementDTO, 0, len(movements))
	for _, m := range movements {
		out = append(out, dto.MovementDTO{
			ID:           m.ID,
			Key:          KeyToDTO(m.Key),
			Quantity:     m.Quantity,
			Kind:         m.Kind,
			FromLocation: m.FromLocation,
			ToLocation:   m.ToLocation,
			Note:         m.Note,
			Subject:      m.Subject,
			Timestamp:    m.Timestamp,
		})
	}
	return out, nil
}

func parseQueryTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339, s); err == nil {
		return t, nil
	}
	return time.Parse("2006-01-02", s)
}
