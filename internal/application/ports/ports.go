package ports

import (
	"context"

	"github.com/jhoicas/Botiquin-api/internal/domain/repository"
)

// Repos los repositorios atados a una misma transacción.
type Repos struct {
	Locations  repository.LocationRepository
	Stock      repository.StockRepository
	Movements  repository.MovementRepository
	Undo       repository.UndoRepository
	Deletions  repository.DeletionRepository
	Catalog    repository.CatalogRepository
	Thresholds repository.ThresholdRepository
}

// TxRunner ejecuta fn dentro de una transacción de BD, pasando repositorios
// atados a esa tx. Si fn devuelve error se hace Rollback; si no, Commit.
// Garantiza que mutación de stock, asiento en el libro y acción
// compensatoria se confirmen juntos o ninguno.
type TxRunner interface {
	Run(ctx context.Context, fn func(r Repos) error) error
}
