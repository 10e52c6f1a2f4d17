package postgres

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
)

var _ repository.StockRepository = (*StockRepo)(nil)

// StockRepo implementación de StockRepository sobre PostgreSQL (usable con
// pool o tx). Los campos opcionales de la clave se guardan como cadena
// vacía (nunca NULL) para que la igualdad de claves sea directa; la fecha
// de vencimiento es la excepción (DATE NULL) y se compara con
// IS NOT DISTINCT FROM.
type StockRepo struct {
	q Querier
}

// NewStockRepository construye el adaptador. Pasar pool o tx (Querier).
func NewStockRepository(q Querier) *StockRepo {
	return &StockRepo{q: q}
}

const stockColumns = `id, name, type, size, brand, generic_name, expiry_date, batch,
	location_id, catalog_id, boxes, loose, units_per_box, created_at, updated_at`

func scanStockRecord(row pgx.Row) (*entity.StockRecord, error) {
	var rec entity.StockRecord
	var catalogID *string
	err := row.Scan(
		&rec.ID, &rec.Key.Name, &rec.Key.Type, &rec.Key.Size, &rec.Key.Brand,
		&rec.Key.GenericName, &rec.Key.ExpiryDate, &rec.Key.Batch,
		&rec.LocationID, &catalogID, &rec.Boxes, &rec.Loose, &rec.UnitsPerBox,
		&rec.CreatedAt, &rec.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	if catalogID != nil {
		rec.CatalogID = *catalogID
	}
	return &rec, nil
}

// Create persiste el registro; respeta el ID si viene asignado (el undo
// recrea registros eliminados con su ID original).
func (r *StockRepo) Create(rec *entity.StockRecord) error {
	if rec.ID == "" {
		rec.ID = uuid.New().String()
	}
	var catalogID *string
	if rec.CatalogID != "" {
		catalogID = &rec.CatalogID
	}
	query := `
		INSERT INTO stock_records (id, name, type, size, brand, generic_name, expiry_date, batch,
			location_id, catalog_id, boxes, loose, units_per_box, created_at, updated_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.Key.Name, rec.Key.Type, rec.Key.Size, rec.Key.Brand,
		rec.Key.GenericName, rec.Key.ExpiryDate, rec.Key.Batch,
		rec.LocationID, catalogID, rec.Boxes, rec.Loose, rec.UnitsPerBox,
		rec.CreatedAt, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("create stock record: %w", err)
	}
	return nil
}

// GetByID obtiene un registro por ID.
func (r *StockRepo) GetByID(id string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE id = $1`
	rec, err := scanStockRecord(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record: %w", err)
	}
	return rec, nil
}

// GetByIDForUpdate obtiene el registro y bloquea la fila (SELECT FOR UPDATE)
// para serializar las mutaciones concurrentes sobre el mismo registro.
func (r *StockRepo) GetByIDForUpdate(id string) (*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE id = $1 FOR UPDATE`
	rec, err := scanStockRecord(r.q.QueryRow(context.Background(), query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get stock record for update: %w", err)
	}
	return rec, nil
}

const keyMatchClause = `
	location_id = $1 AND name = $2 AND type = $3 AND size = $4 AND brand = $5
	AND generic_name = $6 AND expiry_date IS NOT DISTINCT FROM $7 AND batch = $8`

// FindByKeyAtLocation busca el destino de fusión: clave descriptiva exacta
// en la ubicación, incluida la igualdad de vencimiento y lote.
func (r *StockRepo) FindByKeyAtLocation(locationID string, key entity.ItemKey) (*entity.StockRecord, error) {
	return r.findByKey(locationID, key, "")
}

// FindByKeyAtLocationForUpdate igual que FindByKeyAtLocation, bloqueando la fila.
func (r *StockRepo) FindByKeyAtLocationForUpdate(locationID string, key entity.ItemKey) (*entity.StockRecord, error) {
	return r.findByKey(locationID, key, " FOR UPDATE")
}

func (r *StockRepo) findByKey(locationID string, key entity.ItemKey, suffix string) (*entity.StockRecord, error) {
	k := key.Normalized()
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE ` + keyMatchClause + suffix
	rec, err := scanStockRecord(r.q.QueryRow(context.Background(), query,
		locationID, k.Name, k.Type, k.Size, k.Brand, k.GenericName, k.ExpiryDate, k.Batch,
	))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find stock record by key: %w", err)
	}
	return rec, nil
}

// Update reescribe cantidades y metadatos del registro.
func (r *StockRepo) Update(rec *entity.StockRecord) error {
	var catalogID *string
	if rec.CatalogID != "" {
		catalogID = &rec.CatalogID
	}
	query := `
		UPDATE stock_records
		SET location_id = $2, catalog_id = $3, boxes = $4, loose = $5, units_per_box = $6, updated_at = $7
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		rec.ID, rec.LocationID, catalogID, rec.Boxes, rec.Loose, rec.UnitsPerBox, rec.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("update stock record: %w", err)
	}
	return nil
}

// Delete elimina el registro (modo reclaim: los registros en cero no se conservan).
func (r *StockRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM stock_records WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete stock record: %w", err)
	}
	return nil
}

// ListByLocation lista los registros de una ubicación.
func (r *StockRepo) ListByLocation(locationID string) ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records WHERE location_id = $1 ORDER BY name, expiry_date NULLS LAST`
	return r.list(query, locationID)
}

// ListAll lista todos los registros.
func (r *StockRepo) ListAll() ([]*entity.StockRecord, error) {
	query := `SELECT ` + stockColumns + ` FROM stock_records ORDER BY name, expiry_date NULLS LAST`
	return r.list(query)
}

func (r *StockRepo) list(query string, args ...any) ([]*entity.StockRecord, error) {
	rows, err := r.q.Query(context.Background(), query, args...)
	if err != nil {
		return nil, fmt.Errorf("list stock records: %w", err)
	}
	defer rows.Close()
	var list []*entity.StockRecord
	for rows.Next() {
		rec, err := scanStockRecord(rows)
		if err != nil {
			return nil, fmt.Errorf("scan stock record: %w", err)
		}
		list = append(list, rec)
	}
	return list, rows.Err()
}

// CountByCatalog cuenta los registros vivos que referencian la entrada de catálogo.
func (r *StockRepo) CountByCatalog(catalogID string) (int, error) {
	var n int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM stock_records WHERE catalog_id = $1`, catalogID,
	).Scan(&n)
	if err != nil {
		return 0, fmt.Errorf("count by catalog: %w", err)
	}
	return n, nil
}

// TotalByKey total agregado en piezas para una clave en todas las ubicaciones.
func (r *StockRepo) TotalByKey(key entity.ItemKey) (int, error) {
	k := key.Normalized()
	query := `
		SELECT COALESCE(SUM(boxes * units_per_box + loose), 0) FROM stock_records
		WHERE name = $1 AND type = $2 AND size = $3 AND brand = $4
		AND generic_name = $5 AND expiry_date IS NOT DISTINCT FROM $6 AND batch = $7`
	var total int
	err := r.q.QueryRow(context.Background(), query,
		k.Name, k.Type, k.Size, k.Brand, k.GenericName, k.ExpiryDate, k.Batch,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total by key: %w", err)
	}
	return total, nil
}

// TotalByLocation total agregado en piezas de una ubicación.
func (r *StockRepo) TotalByLocation(locationID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(boxes * units_per_box + loose), 0) FROM stock_records WHERE location_id = $1`,
		locationID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total by location: %w", err)
	}
	return total, nil
}

// TotalByCatalog total agregado en piezas de una entrada de catálogo.
func (r *StockRepo) TotalByCatalog(catalogID string) (int, error) {
	var total int
	err := r.q.QueryRow(context.Background(),
		`SELECT COALESCE(SUM(boxes * units_per_box + loose), 0) FROM stock_records WHERE catalog_id = $1`,
		catalogID,
	).Scan(&total)
	if err != nil {
		return 0, fmt.Errorf("total by catalog: %w", err)
	}
	return total, nil
}
