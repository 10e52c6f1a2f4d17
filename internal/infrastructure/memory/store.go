// Package memory implementa los repositorios del motor de stock sobre mapas
// en memoria. Es la infraestructura de los tests de aplicación: mismo
// contrato que los adaptadores de PostgreSQL, incluida la atomicidad del
// TxRunner (si fn falla, el estado vuelve al snapshot previo).
package memory

import (
	"context"
	"sort"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/jhoicas/Botiquin-api/internal/application/ports"
	"github.com/jhoicas/Botiquin-api/internal/domain"
	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
)

// Store estado compartido de todos los repositorios en memoria.
type Store struct {
	mu sync.Mutex

	locations  map[string]entity.StorageLocation
	stock      map[string]entity.StockRecord
	movements  []entity.Movement
	actions    map[string]entity.CompensatingAction
	actionSeq  map[string]int // desempate cuando CreatedAt coincide
	deletions  map[string]entity.DeletionRecord
	catalog    map[string]entity.CatalogEntry
	thresholds map[string]entity.ThresholdSetting
	seq        int
}

// NewStore crea un estado vacío.
func NewStore() *Store {
	return &Store{
		locations:  map[string]entity.StorageLocation{},
		stock:      map[string]entity.StockRecord{},
		actions:    map[string]entity.CompensatingAction{},
		actionSeq:  map[string]int{},
		deletions:  map[string]entity.DeletionRecord{},
		catalog:    map[string]entity.CatalogEntry{},
		thresholds: map[string]entity.ThresholdSetting{},
	}
}

// Repos devuelve los repositorios atados al store (fuera de "transacción").
func (s *Store) Repos() ports.Repos {
	return ports.Repos{
		Locations:  &locationRepo{s},
		Stock:      &stockRepo{s},
		Movements:  &movementRepo{s},
		Undo:       &undoRepo{s},
		Deletions:  &deletionRepo{s},
		Catalog:    &catalogRepo{s},
		Thresholds: &thresholdRepo{s},
	}
}

var _ ports.TxRunner = (*Store)(nil)

// Run ejecuta fn de forma atómica: si devuelve error, el estado completo se
// restaura al snapshot tomado al inicio.
func (s *Store) Run(ctx context.Context, fn func(r ports.Repos) error) error {
	s.mu.Lock()
	snap := s.clone()
	s.mu.Unlock()

	if err := fn(s.Repos()); err != nil {
		s.mu.Lock()
		s.restore(snap)
		s.mu.Unlock()
		return err
	}
	return nil
}

type snapshot struct {
	locations  map[string]entity.StorageLocation
	stock      map[string]entity.StockRecord
	movements  []entity.Movement
	actions    map[string]entity.CompensatingAction
	actionSeq  map[string]int
	deletions  map[string]entity.DeletionRecord
	catalog    map[string]entity.CatalogEntry
	thresholds map[string]entity.ThresholdSetting
	seq        int
}

func cloneMap[V any](m map[string]V) map[string]V {
	out := make(map[string]V, len(m))
	for k, v := range m {
		out[k] = v
	}
	return out
}

func (s *Store) clone() snapshot {
	return snapshot{
		locations:  cloneMap(s.locations),
		stock:      cloneMap(s.stock),
		movements:  append([]entity.Movement(nil), s.movements...),
		actions:    cloneMap(s.actions),
		actionSeq:  cloneMap(s.actionSeq),
		deletions:  cloneMap(s.deletions),
		catalog:    cloneMap(s.catalog),
		thresholds: cloneMap(s.thresholds),
		seq:        s.seq,
	}
}

func (s *Store) restore(snap snapshot) {
	s.locations = snap.locations
	s.stock = snap.stock
	s.movements = snap.movements
	s.actions = snap.actions
	s.actionSeq = snap.actionSeq
	s.deletions = snap.deletions
	s.catalog = snap.catalog
	s.thresholds = snap.thresholds
	s.seq = snap.seq
}

func newID(id string) string {
	if id != "" {
		return id
	}
	return uuid.New().String()
}

// --- locations ---

type locationRepo struct{ s *Store }

func (r *locationRepo) Create(l *entity.StorageLocation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.locations {
		if ex.Name == l.Name {
			return domain.ErrDuplicateLocationName
		}
	}
	l.ID = newID(l.ID)
	r.s.locations[l.ID] = *l
	return nil
}

func (r *locationRepo) GetByID(id string) (*entity.StorageLocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if l, ok := r.s.locations[id]; ok {
		out := l
		return &out, nil
	}
	return nil, nil
}

func (r *locationRepo) GetByName(name string) (*entity.StorageLocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, l := range r.s.locations {
		if l.Name == name {
			out := l
			return &out, nil
		}
	}
	return nil, nil
}

func (r *locationRepo) List() ([]*entity.StorageLocation, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.StorageLocation, 0, len(r.s.locations))
	for _, l := range r.s.locations {
		cp := l
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *locationRepo) Update(l *entity.StorageLocation) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.locations {
		if ex.Name == l.Name && ex.ID != l.ID {
			return domain.ErrDuplicateLocationName
		}
	}
	r.s.locations[l.ID] = *l
	return nil
}

func (r *locationRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.locations, id)
	return nil
}

// --- stock ---

type stockRepo struct{ s *Store }

func (r *stockRepo) Create(rec *entity.StockRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	rec.ID = newID(rec.ID)
	r.s.stock[rec.ID] = *rec
	return nil
}

func (r *stockRepo) GetByID(id string) (*entity.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if rec, ok := r.s.stock[id]; ok {
		out := rec
		return &out, nil
	}
	return nil, nil
}

func (r *stockRepo) GetByIDForUpdate(id string) (*entity.StockRecord, error) {
	return r.GetByID(id)
}

func (r *stockRepo) FindByKeyAtLocation(locationID string, key entity.ItemKey) (*entity.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, rec := range r.s.stock {
		if rec.LocationID == locationID && rec.Key.Equal(key) {
			out := rec
			return &out, nil
		}
	}
	return nil, nil
}

func (r *stockRepo) FindByKeyAtLocationForUpdate(locationID string, key entity.ItemKey) (*entity.StockRecord, error) {
	return r.FindByKeyAtLocation(locationID, key)
}

func (r *stockRepo) Update(rec *entity.StockRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.stock[rec.ID] = *rec
	return nil
}

func (r *stockRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.stock, id)
	return nil
}

func (r *stockRepo) ListByLocation(locationID string) ([]*entity.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.StockRecord
	for _, rec := range r.s.stock {
		if rec.LocationID == locationID {
			cp := rec
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.Name != out[j].Key.Name {
			return out[i].Key.Name < out[j].Key.Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *stockRepo) ListAll() ([]*entity.StockRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.StockRecord, 0, len(r.s.stock))
	for _, rec := range r.s.stock {
		cp := rec
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Key.Name != out[j].Key.Name {
			return out[i].Key.Name < out[j].Key.Name
		}
		return out[i].ID < out[j].ID
	})
	return out, nil
}

func (r *stockRepo) CountByCatalog(catalogID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	n := 0
	for _, rec := range r.s.stock {
		if rec.CatalogID == catalogID {
			n++
		}
	}
	return n, nil
}

func (r *stockRepo) TotalByKey(key entity.ItemKey) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := 0
	for _, rec := range r.s.stock {
		if rec.Key.Equal(key) {
			total += rec.Total()
		}
	}
	return total, nil
}

func (r *stockRepo) TotalByLocation(locationID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := 0
	for _, rec := range r.s.stock {
		if rec.LocationID == locationID {
			total += rec.Total()
		}
	}
	return total, nil
}

func (r *stockRepo) TotalByCatalog(catalogID string) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	total := 0
	for _, rec := range r.s.stock {
		if rec.CatalogID == catalogID {
			total += rec.Total()
		}
	}
	return total, nil
}

// --- movements ---

type movementRepo struct{ s *Store }

func (r *movementRepo) Create(m *entity.Movement) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	m.ID = newID(m.ID)
	r.s.movements = append(r.s.movements, *m)
	return nil
}

func (r *movementRepo) List(filter entity.MovementFilter) ([]*entity.Movement, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var matched []entity.Movement
	for _, m := range r.s.movements {
		if filter.Kind != "" && m.Kind != filter.Kind {
			continue
		}
		if filter.From != nil && m.Timestamp.Before(*filter.From) {
			continue
		}
		if filter.To != nil && m.Timestamp.After(*filter.To) {
			continue
		}
		if filter.Search != "" {
			needle := strings.ToLower(filter.Search)
			hay := strings.ToLower(m.Key.Name + " " + m.Key.Type + " " + m.Key.Batch)
			if !strings.Contains(hay, needle) {
				continue
			}
		}
		matched = append(matched, m)
	}
	// Más reciente primero; el orden de inserción desempata.
	sort.SliceStable(matched, func(i, j int) bool { return matched[i].Timestamp.After(matched[j].Timestamp) })
	if filter.Offset > 0 {
		if filter.Offset >= len(matched) {
			return nil, nil
		}
		matched = matched[filter.Offset:]
	}
	if filter.Limit > 0 && len(matched) > filter.Limit {
		matched = matched[:filter.Limit]
	}
	out := make([]*entity.Movement, 0, len(matched))
	for i := range matched {
		out = append(out, &matched[i])
	}
	return out, nil
}

func (r *movementRepo) DeleteMatching(key entity.ItemKey, quantity int, kind, subject string, around time.Time, window time.Duration) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var kept []entity.Movement
	removed := 0
	lo, hi := around.Add(-window), around.Add(window)
	for _, m := range r.s.movements {
		match := m.Key.Equal(key) && m.Quantity == quantity && m.Kind == kind &&
			!m.Timestamp.Before(lo) && !m.Timestamp.After(hi) &&
			(subject == "" || m.Subject == subject)
		if match {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	r.s.movements = kept
	return removed, nil
}

func (r *movementRepo) DeleteByDestinationSince(toLocation, kind string, since time.Time) (int, error) {
	return r.deleteWhere(func(m entity.Movement) bool {
		return m.ToLocation == toLocation && m.Kind == kind && !m.Timestamp.Before(since)
	})
}

func (r *movementRepo) DeleteBySourceSince(fromLocation, kind string, since time.Time) (int, error) {
	return r.deleteWhere(func(m entity.Movement) bool {
		return m.FromLocation == fromLocation && m.Kind == kind && !m.Timestamp.Before(since)
	})
}

func (r *movementRepo) deleteWhere(match func(entity.Movement) bool) (int, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var kept []entity.Movement
	removed := 0
	for _, m := range r.s.movements {
		if match(m) {
			removed++
			continue
		}
		kept = append(kept, m)
	}
	r.s.movements = kept
	return removed, nil
}

// --- undo ---

type undoRepo struct{ s *Store }

func (r *undoRepo) Create(a *entity.CompensatingAction) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	a.ID = newID(a.ID)
	r.s.seq++
	r.s.actions[a.ID] = *a
	r.s.actionSeq[a.ID] = r.s.seq
	return nil
}

func (r *undoRepo) LatestUnconsumed(actor string) (*entity.CompensatingAction, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var latest *entity.CompensatingAction
	latestSeq := -1
	for id, a := range r.s.actions {
		if a.Actor != actor || a.Consumed {
			continue
		}
		seq := r.s.actionSeq[id]
		if latest == nil || a.CreatedAt.After(latest.CreatedAt) ||
			(a.CreatedAt.Equal(latest.CreatedAt) && seq > latestSeq) {
			cp := a
			latest = &cp
			latestSeq = seq
		}
	}
	return latest, nil
}

func (r *undoRepo) MarkConsumed(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if a, ok := r.s.actions[id]; ok {
		a.Consumed = true
		r.s.actions[id] = a
	}
	return nil
}

func (r *undoRepo) InvalidateOthers(actor, exceptID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, a := range r.s.actions {
		if a.Actor == actor && !a.Consumed && id != exceptID {
			a.Consumed = true
			r.s.actions[id] = a
		}
	}
	return nil
}

// --- deletions ---

type deletionRepo struct{ s *Store }

func (r *deletionRepo) Create(d *entity.DeletionRecord) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	d.ID = newID(d.ID)
	r.s.deletions[d.ID] = *d
	return nil
}

func (r *deletionRepo) FindActive(entityKind, entityName string) (*entity.DeletionRecord, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var latest *entity.DeletionRecord
	for _, d := range r.s.deletions {
		if d.EntityKind != entityKind || d.EntityName != entityName || d.Restored {
			continue
		}
		if latest == nil || d.CreatedAt.After(latest.CreatedAt) {
			cp := d
			latest = &cp
		}
	}
	return latest, nil
}

func (r *deletionRepo) MarkRestored(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if d, ok := r.s.deletions[id]; ok {
		d.Restored = true
		r.s.deletions[id] = d
	}
	return nil
}

// --- catalog ---

type catalogRepo struct{ s *Store }

func (r *catalogRepo) Create(c *entity.CatalogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, ex := range r.s.catalog {
		if ex.Name == c.Name {
			return domain.ErrDuplicate
		}
	}
	c.ID = newID(c.ID)
	r.s.catalog[c.ID] = *c
	return nil
}

func (r *catalogRepo) GetByID(id string) (*entity.CatalogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	if c, ok := r.s.catalog[id]; ok {
		out := c
		return &out, nil
	}
	return nil, nil
}

func (r *catalogRepo) GetByName(name string) (*entity.CatalogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for _, c := range r.s.catalog {
		if c.Name == name {
			out := c
			return &out, nil
		}
	}
	return nil, nil
}

func (r *catalogRepo) List() ([]*entity.CatalogEntry, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	out := make([]*entity.CatalogEntry, 0, len(r.s.catalog))
	for _, c := range r.s.catalog {
		cp := c
		out = append(out, &cp)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out, nil
}

func (r *catalogRepo) Update(c *entity.CatalogEntry) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	r.s.catalog[c.ID] = *c
	return nil
}

func (r *catalogRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.catalog, id)
	return nil
}

// --- thresholds ---

type thresholdRepo struct{ s *Store }

func (r *thresholdRepo) Create(t *entity.ThresholdSetting) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	t.ID = newID(t.ID)
	r.s.thresholds[t.ID] = *t
	return nil
}

func (r *thresholdRepo) ListByLocation(locationID string) ([]*entity.ThresholdSetting, error) {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	var out []*entity.ThresholdSetting
	for _, t := range r.s.thresholds {
		if t.LocationID == locationID {
			cp := t
			out = append(out, &cp)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CatalogName < out[j].CatalogName })
	return out, nil
}

func (r *thresholdRepo) Delete(id string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	delete(r.s.thresholds, id)
	return nil
}

func (r *thresholdRepo) DeleteByLocation(locationID string) error {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	for id, t := range r.s.thresholds {
		if t.LocationID == locationID {
			delete(r.s.thresholds, id)
		}
	}
	return nil
}
