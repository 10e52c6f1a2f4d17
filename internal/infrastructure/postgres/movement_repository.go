package postgres

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
)

var _ repository.MovementRepository = (*MovementRepo)(nil)

// MovementRepo implementación de MovementRepository sobre PostgreSQL
// (usable con pool o tx). El libro es append-only: los DELETE de abajo
// son exclusivos del motor de undo y siempre con predicados exactos.
type MovementRepo struct {
	q Querier
}

// NewMovementRepository construye el adaptador. Pasar pool o tx (Querier).
func NewMovementRepository(q Querier) *MovementRepo {
	return &MovementRepo{q: q}
}

const movementColumns = `id, name, type, size, brand, generic_name, expiry_date, batch,
	quantity, kind, from_location, to_location, note, subject, created_at`

// Create agrega una entrada al libro.
func (r *MovementRepo) Create(m *entity.Movement) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	query := `
		INSERT INTO movements (id, name, type, size, brand, generic_name, expiry_date, batch,
			quantity, kind, from_location, to_location, note, subject, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)`
	_, err := r.q.Exec(context.Background(), query,
		m.ID, m.Key.Name, m.Key.Type, m.Key.Size, m.Key.Brand,
		m.Key.GenericName, m.Key.ExpiryDate, m.Key.Batch,
		m.Quantity, m.Kind, m.FromLocation, m.ToLocation, m.Note, m.Subject, m.Timestamp,
	)
	if err != nil {
		return fmt.Errorf("create movement: %w", err)
	}
	return nil
}

// List consulta el libro con filtros opcionales, más reciente primero.
func (r *MovementRepo) List(filter entity.MovementFilter) ([]*entity.Movement, error) {
	var sb strings.Builder
	sb.WriteString(`SELECT ` + movementColumns + ` FROM movements WHERE 1=1`)
	var args []any
	arg := func(v any) string {
		args = append(args, v)
		return fmt.Sprintf("$%d", len(args))
	}

	if filter.Kind != "" {
		sb.WriteString(` AND kind = ` + arg(filter.Kind))
	}
	if filter.From != nil {
		sb.WriteString(` AND created_at >= ` + arg(*filter.From))
	}
	if filter.To != nil {
		sb.WriteString(` AND created_at <= ` + arg(*filter.To))
	}
	if filter.Search != "" {
		p := arg("%" + strings.ToLower(filter.Search) + "%")
		sb.WriteString(` AND (LOWER(name) LIKE ` + p + ` OR LOWER(type) LIKE ` + p + ` OR LOWER(batch) LIKE ` + p + `)`)
	}
	sb.WriteString(` ORDER BY created_at DESC, id DESC`)
	if filter.Limit > 0 {
		sb.WriteString(` LIMIT ` + arg(filter.Limit))
	}
	if filter.Offset > 0 {
		sb.WriteString(` OFFSET ` + arg(filter.Offset))
	}

	rows, err := r.q.Query(context.Background(), sb.String(), args...)
	if err != nil {
		return nil, fmt.Errorf("list movements: %w", err)
	}
	defer rows.Close()
	var list []*entity.Movement
	for rows.Next() {
		var m entity.Movement
		if err := rows.Scan(
			&m.ID, &m.Key.Name, &m.Key.Type, &m.Key.Size, &m.Key.Brand,
			&m.Key.GenericName, &m.Key.ExpiryDate, &m.Key.Batch,
			&m.Quantity, &m.Kind, &m.FromLocation, &m.ToLocation, &m.Note, &m.Subject, &m.Timestamp,
		); err != nil {
			return nil, fmt.Errorf("scan movement: %w", err)
		}
		list = append(list, &m)
	}
	return list, rows.Err()
}

// DeleteMatching retira las entradas con clave, cantidad y tipo exactos en
// la ventana temporal dada. subject vacío no filtra por sujeto.
func (r *MovementRepo) DeleteMatching(key entity.ItemKey, quantity int, kind, subject string, around time.Time, window time.Duration) (int, error) {
	k := key.Normalized()
	query := `
		DELETE FROM movements
		WHERE name = $1 AND type = $2 AND size = $3 AND brand = $4
		AND generic_name = $5 AND expiry_date IS NOT DISTINCT FROM $6 AND batch = $7
		AND quantity = $8 AND kind = $9
		AND created_at BETWEEN $10 AND $11`
	args := []any{
		k.Name, k.Type, k.Size, k.Brand, k.GenericName, k.ExpiryDate, k.Batch,
		quantity, kind, around.Add(-window), around.Add(window),
	}
	if subject != "" {
		query += ` AND subject = $12`
		args = append(args, subject)
	}
	tag, err := r.q.Exec(context.Background(), query, args...)
	if err != nil {
		return 0, fmt.Errorf("delete matching movements: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteByDestinationSince retira entradas de un tipo hacia una ubicación
// desde un instante dado.
func (r *MovementRepo) DeleteByDestinationSince(toLocation, kind string, since time.Time) (int, error) {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM movements WHERE to_location = $1 AND kind = $2 AND created_at >= $3`,
		toLocation, kind, since,
	)
	if err != nil {
		return 0, fmt.Errorf("delete movements by destination: %w", err)
	}
	return int(tag.RowsAffected()), nil
}

// DeleteBySourceSince retira entradas de un tipo desde una ubicación origen
// a partir de un instante dado.
func (r *MovementRepo) DeleteBySourceSince(fromLocation, kind string, since time.Time) (int, error) {
	tag, err := r.q.Exec(context.Background(),
		`DELETE FROM movements WHERE from_location = $1 AND kind = $2 AND created_at >= $3`,
		fromLocation, kind, since,
	)
	if err != nil {
		return 0, fmt.Errorf("delete movements by source: %w", err)
	}
	return int(tag.RowsAffected()), nil
}
