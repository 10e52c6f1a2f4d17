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

var _ repository.DeletionRepository = (*DeletionRepo)(nil)

// DeletionRepo implementación de DeletionRepository sobre PostgreSQL
// (usable con pool o tx).
type DeletionRepo struct {
	q Querier
}

// NewDeletionRepository construye el adaptador. Pasar pool o tx (Querier).
func NewDeletionRepository(q Querier) *DeletionRepo {
	return &DeletionRepo{q: q}
}

// Create persiste el registro de eliminación.
func (r *DeletionRepo) Create(d *entity.DeletionRecord) error {
	if d.ID == "" {
		d.ID = uuid.New().String()
	}
	query := `
		INSERT INTO deletion_records (id, entity_kind, entity_name, snapshot, actor, created_at, restored)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.EntityKind, d.EntityName, d.Snapshot, d.Actor, d.CreatedAt, d.Restored,
	)
	if err != nil {
		return fmt.Errorf("create deletion record: %w", err)
	}
	return nil
}

// FindActive devuelve el registro no restaurado más reciente para la
// entidad, o (nil, nil).
func (r *DeletionRepo) FindActive(entityKind, entityName string) (*entity.DeletionRecord, error) {
	query := `
		SELECT id, entity_kind, entity_name, snapshot, actor, created_at, restored
		FROM deletion_records
		WHERE entity_kind = $1 AND entity_name = $2 AND NOT restored
		ORDER BY created_at DESC
		LIMIT 1`
	var d entity.DeletionRecord
	err := r.q.QueryRow(context.Background(), query, entityKind, entityName).Scan(
		&d.ID, &d.EntityKind, &d.EntityName, &d.Snapshot, &d.Actor, &d.CreatedAt, &d.Restored,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("find active deletion record: %w", err)
	}
	return &d, nil
}

// MarkRestored marca el registro como restaurado (la entidad volvió vía undo).
func (r *DeletionRepo) MarkRestored(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE deletion_records SET restored = TRUE WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("mark deletion restored: %w", err)
	}
	return nil
}
