package memory_test

import (
	"testing"
	"time"

	"github.com/jhoicas/Botiquin-api/internal/domain/entity"
	"github.com/jhoicas/Botiquin-api/internal/infrastructure/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newAction(t *testing.T, actor string, at time.Time) *entity.CompensatingAction {
	t.Helper()
	a, err := entity.NewCompensatingAction(entity.ActionAddition, actor, "Adición de prueba",
		entity.AdditionPayload{Quantity: 1}, at)
	require.NoError(t, err)
	return a
}

func TestInvalidateOthersWithIdenticalTimestamp(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repos()
	now := time.Now().UTC()

	// Dos acciones del mismo actor con el mismo instante de creación: el
	// desempate es por orden de inserción, y al consumir la más reciente la
	// otra debe quedar inutilizable aunque comparta timestamp.
	first := newAction(t, "ana", now)
	require.NoError(t, repos.Undo.Create(first))
	second := newAction(t, "ana", now)
	require.NoError(t, repos.Undo.Create(second))

	latest, err := repos.Undo.LatestUnconsumed("ana")
	require.NoError(t, err)
	require.NotNil(t, latest)
	assert.Equal(t, second.ID, latest.ID, "a igualdad de timestamp gana la insertada después")

	require.NoError(t, repos.Undo.MarkConsumed(latest.ID))
	require.NoError(t, repos.Undo.InvalidateOthers("ana", latest.ID))

	remaining, err := repos.Undo.LatestUnconsumed("ana")
	require.NoError(t, err)
	assert.Nil(t, remaining, "la acción gemela en timestamp no sobrevive a la invalidación")
}

func TestInvalidateOthersNoCruzaActores(t *testing.T) {
	store := memory.NewStore()
	repos := store.Repos()
	now := time.Now().UTC()

	ana := newAction(t, "ana", now)
	require.NoError(t, repos.Undo.Create(ana))
	bruno := newAction(t, "bruno", now)
	require.NoError(t, repos.Undo.Create(bruno))

	require.NoError(t, repos.Undo.MarkConsumed(ana.ID))
	require.NoError(t, repos.Undo.InvalidateOthers("ana", ana.ID))

	still, err := repos.Undo.LatestUnconsumed("bruno")
	require.NoError(t, err)
	require.NotNil(t, still, "la invalidación de un actor no toca la pila de otro")
	assert.Equal(t, bruno.ID, still.ID)
}
