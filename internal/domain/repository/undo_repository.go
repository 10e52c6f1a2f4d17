package repository

import "github.com/jhoicas/Botiquin-api/internal/domain/entity"

// UndoRepository acceso al log de acciones compensatorias.
type UndoRepository interface {
	Create(a *entity.CompensatingAction) error
	// LatestUnconsumed devuelve la acción sin consumir más reciente del
	// actor, o (nil, nil) si no hay ninguna.
	LatestUnconsumed(actor string) (*entity.CompensatingAction, error)
	MarkConsumed(id string) error
	// InvalidateOthers marca consumidas todas las acciones sin consumir del
	// actor salvo exceptID: al consumir la más reciente, las demás quedan
	// permanentemente inutilizables (no es una cola). La exclusión es por ID,
	// no por timestamp, para que dos acciones con el mismo instante no dejen
	// ninguna superviviente.
	InvalidateOthers(actor, exceptID string) error
}
