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

var _ repository.UndoRepository = (*UndoRepo)(nil)

// UndoRepo implementación de UndoRepository sobre PostgreSQL (usable con
// pool o tx). El payload va en una columna JSONB.
type UndoRepo struct {
	q Querier
}

// NewUndoRepository construye el adaptador. Pasar pool o tx (Querier).
func NewUndoRepository(q Querier) *UndoRepo {
	return &UndoRepo{q: q}
}

// Create persiste la acción compensatoria.
func (r *UndoRepo) Create(a *entity.CompensatingAction) error {
	if a.ID == "" {
		a.ID = uuid.New().String()
	}
	query := `
		INSERT INTO compensating_actions (id, kind, payload, description, actor, created_at, consumed)
		VALUES ($1, $2, $3, $4, $5, $6, $7)`
	_, err := r.q.Exec(context.Background(), query,
		a.ID, a.Kind, a.Payload, a.Description, a.Actor, a.CreatedAt, a.Consumed,
	)
	if err != nil {
		return fmt.Errorf("create compensating action: %w", err)
	}
	return nil
}

// LatestUnconsumed devuelve la acción sin consumir más reciente del actor,
// o (nil, nil) si no hay ninguna.
func (r *UndoRepo) LatestUnconsumed(actor string) (*entity.CompensatingAction, error) {
	query := `
		SELECT id, kind, payload, description, actor, created_at, consumed
		FROM compensating_actions
		WHERE actor = $1 AND NOT consumed
		ORDER BY created_at DESC, id DESC
		LIMIT 1`
	var a entity.CompensatingAction
	err := r.q.QueryRow(context.Background(), query, actor).Scan(
		&a.ID, &a.Kind, &a.Payload, &a.Description, &a.Actor, &a.CreatedAt, &a.Consumed,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("latest unconsumed action: %w", err)
	}
	return &a, nil
}

// MarkConsumed marca la acción como consumida.
func (r *UndoRepo) MarkConsumed(id string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE compensating_actions SET consumed = TRUE WHERE id = $1`, id,
	)
	if err != nil {
		return fmt.Errorf("mark action consumed: %w", err)
	}
	return nil
}

// InvalidateOthers marca consumidas todas las acciones sin consumir del
// actor salvo exceptID. La exclusión por ID evita que una acción con el
// mismo created_at que la consumida sobreviva.
func (r *UndoRepo) InvalidateOthers(actor, exceptID string) error {
	_, err := r.q.Exec(context.Background(),
		`UPDATE compensating_actions SET consumed = TRUE WHERE actor = $1 AND NOT consumed AND id <> $2`,
		actor, exceptID,
	)
	if err != nil {
		return fmt.Errorf("invalidate other actions: %w", err)
	}
	return nil
}
