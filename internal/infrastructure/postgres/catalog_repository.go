package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
)

var (
	_ repository.CatalogRepository   = (*CatalogRepo)(nil)
	_ repository.ThresholdRepository = (*ThresholdRepo)(nil)
)

// CatalogRepo implementación de CatalogRepository sobre PostgreSQL
// (usable con pool o tx).
type CatalogRepo struct {
	q Querier
}

// NewCatalogRepository construye el adaptador. Pasar pool o tx (Querier).
func NewCatalogRepository(q Querier) *CatalogRepo {
	return &CatalogRepo{q: q}
}

const catalogColumns = `id, name, category, min_stock, units_per_box, box_label, created_at`

// Create persiste la entrada de catálogo; el nombre es único.
func (r *CatalogRepo) Create(c *entity.CatalogEntry) error {
	if c.ID == "" {
		c.ID = uuid.New().String()
	}
	query := `
		INSERT INTO catalog_entries (id, name, category, min_stock, units_per_box, box_label, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Name, c.Category, c.MinStock, c.UnitsPerBox, c.BoxLabel, c.CreatedAt,
	)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicate
		}
		return fmt.Errorf("create catalog entry: %w", err)
	}
	return nil
}

// GetByID obtiene una entrada por ID.
func (r *CatalogRepo) GetByID(id string) (*entity.CatalogEntry, error) {
	return r.get(`SELECT `+catalogColumns+` FROM catalog_entries WHERE id = $1`, id)
}

// GetByName obtiene una entrada por nombre único.
func (r *CatalogRepo) GetByName(name string) (*entity.CatalogEntry, error) {
	return r.get(`SELECT `+catalogColumns+` FROM catalog_entries WHERE name = $1`, name)
}

func (r *CatalogRepo) get(query string, arg any) (*entity.CatalogEntry, error) {
	var c entity.CatalogEntry
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&c.ID, &c.Name, &c.Category, &c.MinStock, &c.UnitsPerBox, &c.BoxLabel, &c.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get catalog entry: %w", err)
	}
	return &c, nil
}

// List lista todas las entradas ordenadas por nombre.
func (r *CatalogRepo) List() ([]*entity.CatalogEntry, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT `+catalogColumns+` FROM catalog_entries ORDER BY name`)
	if err != nil {
		return nil, fmt.Errorf("list catalog entries: %w", err)
	}
	defer rows.Close()
	var list []*entity.CatalogEntry
	for rows.Next() {
		var c entity.CatalogEntry
		if err := rows.Scan(&c.ID, &c.Name, &c.Category, &c.MinStock, &c.UnitsPerBox, &c.BoxLabel, &c.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan catalog entry: %w", err)
		}
		list = append(list, &c)
	}
	return list, rows.Err()
}

// Update actualiza categoría, umbral y empaque de la entrada.
func (r *CatalogRepo) Update(c *entity.CatalogEntry) error {
	query := `
		UPDATE catalog_entries
		SET category = $2, min_stock = $3, units_per_box = $4, box_label = $5
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		c.ID, c.Category, c.MinStock, c.UnitsPerBox, c.BoxLabel,
	)
	if err != nil {
		return fmt.Errorf("update catalog entry: %w", err)
	}
	return nil
}

// Delete elimina la entrada de catálogo.
func (r *CatalogRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM catalog_entries WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete catalog entry: %w", err)
	}
	return nil
}

// ThresholdRepo implementación de ThresholdRepository sobre PostgreSQL
// (usable con pool o tx).
type ThresholdRepo struct {
	q Querier
}

// NewThresholdRepository construye el adaptador. Pasar pool o tx (Querier).
func NewThresholdRepository(q Querier) *ThresholdRepo {
	return &ThresholdRepo{q: q}
}

// Create persiste el umbral; respeta el ID si viene asignado (restauración).
func (r *ThresholdRepo) Create(t *entity.ThresholdSetting) error {
	if t.ID == "" {
		t.ID = uuid.New().String()
	}
	query := `
		INSERT INTO threshold_settings (id, location_id, catalog_name, min_quantity, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query,
		t.ID, t.LocationID, t.CatalogName, t.MinQuantity, t.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("create threshold: %w", err)
	}
	return nil
}

// ListByLocation lista los umbrales de una ubicación.
func (r *ThresholdRepo) ListByLocation(locationID string) ([]*entity.ThresholdSetting, error) {
	rows, err := r.q.Query(context.Background(),
		`SELECT id, location_id, catalog_name, min_quantity, created_at
		FROM threshold_settings WHERE location_id = $1 ORDER BY catalog_name`, locationID)
	if err != nil {
		return nil, fmt.Errorf("list thresholds: %w", err)
	}
	defer rows.Close()
	var list []*entity.ThresholdSetting
	for rows.Next() {
		var t entity.ThresholdSetting
		if err := rows.Scan(&t.ID, &t.LocationID, &t.CatalogName, &t.MinQuantity, &t.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan threshold: %w", err)
		}
		list = append(list, &t)
	}
	return list, rows.Err()
}

// Delete elimina un umbral individual.
func (r *ThresholdRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM threshold_settings WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete threshold: %w", err)
	}
	return nil
}

// DeleteByLocation elimina todos los umbrales de la ubicación.
func (r *ThresholdRepo) DeleteByLocation(locationID string) error {
	_, err := r.q.Exec(context.Background(),
		`DELETE FROM threshold_settings WHERE location_id = $1`, locationID)
	if err != nil {
		return fmt.Errorf("delete thresholds: %w", err)
	}
	return nil
}
