package repository

import "github.com/jhoicas/Botiquin-api/internal/domain/entity"

// KeyTotal total agregado por clave descriptiva.
type KeyTotal struct {
	Key   entity.ItemKey
	Total int
}

// StockRepository acceso al Stock Store. Toda mutación debe correr dentro
// de una transacción (TxRunner) y bloquear la fila con las variantes
// ForUpdate antes de leer-modificar-escribir.
// Los métodos Get/Find devuelven (nil, nil) si no hay coincidencia.
type StockRepository interface {
	// Create persiste el registro; asigna ID si viene vacío (el undo pasa
	// el ID del snapshot para recrear registros eliminados).
	Create(r *entity.StockRecord) error
	GetByID(id string) (*entity.StockRecord, error)
	GetByIDForUpdate(id string) (*entity.StockRecord, error)
	// FindByKeyAtLocation busca el destino de fusión: un registro en la
	// ubicación cuya clave descriptiva coincide exactamente (incluida la
	// igualdad de fecha de vencimiento y lote).
	FindByKeyAtLocation(locationID string, key entity.ItemKey) (*entity.StockRecord, error)
	FindByKeyAtLocationForUpdate(locationID string, key entity.ItemKey) (*entity.StockRecord, error)
	Update(r *entity.StockRecord) error
	Delete(id string) error
	ListByLocation(locationID string) ([]*entity.StockRecord, error)
	ListAll() ([]*entity.StockRecord, error)
	// CountByCatalog cuenta los registros vivos que referencian la entrada
	// de catálogo (chequeo de referencias en vivo para el undo).
	CountByCatalog(catalogID string) (int, error)
	TotalByKey(key entity.ItemKey) (int, error)
	TotalByLocation(locationID string) (int, error)
	TotalByCatalog(catalogID string) (int, error)
}
