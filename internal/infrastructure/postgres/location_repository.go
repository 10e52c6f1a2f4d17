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

var _ repository.LocationRepository = (*LocationRepo)(nil)

// LocationRepo implementación de LocationRepository sobre PostgreSQL
// (usable con pool o tx).
type LocationRepo struct {
	q Querier
}

// NewLocationRepository construye el adaptador. Pasar pool o tx (Querier).
func NewLocationRepository(q Querier) *LocationRepo {
	return &LocationRepo{q: q}
}

// Create persiste la ubicación; respeta el ID si viene asignado (restauración).
func (r *LocationRepo) Create(l *entity.StorageLocation) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	query := `
		INSERT INTO storage_locations (id, name, category, description, created_at)
		VALUES ($1, $2, $3, $4, $5)`
	_, err := r.q.Exec(context.Background(), query, l.ID, l.Name, l.Category, l.Description, l.CreatedAt)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateLocationName
		}
		return fmt.Errorf("create location: %w", err)
	}
	return nil
}

// GetByID obtiene una ubicación por ID.
func (r *LocationRepo) GetByID(id string) (*entity.StorageLocation, error) {
	return r.get(`SELECT id, name, category, description, created_at FROM storage_locations WHERE id = $1`, id)
}

// GetByName obtiene una ubicación por nombre único.
func (r *LocationRepo) GetByName(name string) (*entity.StorageLocation, error) {
	return r.get(`SELECT id, name, category, description, created_at FROM storage_locations WHERE name = $1`, name)
}

func (r *LocationRepo) get(query string, arg any) (*entity.StorageLocation, error) {
	var l entity.StorageLocation
	err := r.q.QueryRow(context.Background(), query, arg).Scan(
		&l.ID, &l.Name, &l.Category, &l.Description, &l.CreatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get location: %w", err)
	}
	return &l, nil
}

// List lista todas las ubicaciones ordenadas por nombre.
func (r *LocationRepo) List() ([]*entity.StorageLocation, error) {
	query := `SELECT id, name, category, description, created_at FROM storage_locations ORDER BY name`
	rows, err := r.q.Query(context.Background(), query)
	if err != nil {
		return nil, fmt.Errorf("list locations: %w", err)
	}
	defer rows.Close()
	var list []*entity.StorageLocation
	for rows.Next() {
		var l entity.StorageLocation
		if err := rows.Scan(&l.ID, &l.Name, &l.Category, &l.Description, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("scan location: %w", err)
		}
		list = append(list, &l)
	}
	return list, rows.Err()
}

// Update actualiza nombre, categoría y descripción.
func (r *LocationRepo) Update(l *entity.StorageLocation) error {
	query := `UPDATE storage_locations SET name = $2, category = $3, description = $4 WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query, l.ID, l.Name, l.Category, l.Description)
	if err != nil {
		if isUniqueViolation(err) {
			return domain.ErrDuplicateLocationName
		}
		return fmt.Errorf("update location: %w", err)
	}
	return nil
}

// Delete elimina la ubicación.
func (r *LocationRepo) Delete(id string) error {
	_, err := r.q.Exec(context.Background(), `DELETE FROM storage_locations WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("delete location: %w", err)
	}
	return nil
}
