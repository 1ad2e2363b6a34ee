package snapshot

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/Gobusters/ectologger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Ramsey-B/protea/pkg/models"
)

type stubLoader struct {
	loads   atomic.Int64
	dataset models.Dataset
	err     error
}

func (s *stubLoader) Load(ctx context.Context) (models.Dataset, error) {
	s.loads.Add(1)
	if s.err != nil {
		return models.Dataset{}, s.err
	}
	return s.dataset, nil
}

func testLogger() ectologger.Logger {
	return ectologger.NewEctoLogger(func(_ ectologger.EctoLogMessage) {})
}

func TestStoreEmptyUntilFirstReplace(t *testing.T) {
	store := NewStore()
	assert.Nil(t, store.Current())

	store.Replace(models.Dataset{
		Interventions: []models.Intervention{{ID: "DDD_2024_101", Stage: models.StageActive}},
	})

	snap := store.Current()
	require.NotNil(t, snap)
	assert.Len(t, snap.Dataset.Interventions, 1)
	assert.Equal(t, 1, snap.Stats.Totals.Interventions)
	assert.Equal(t, 1, snap.Stats.Totals.Active)
	assert.False(t, snap.LoadedAt.IsZero())
}

func TestRefresherInitialLoad(t *testing.T) {
	loader := &stubLoader{dataset: models.Dataset{
		Interventions: []models.Intervention{{ID: "DDD_2024_101"}},
	}}
	store := NewStore()
	r := NewRefresher(loader, store, RefresherConfig{
		Debounce:    10 * time.Millisecond,
		MaxInterval: time.Hour,
	}, testLogger())

	err := r.Start(context.Background())
	require.NoError(t, err)
	defer r.Stop()

	require.NotNil(t, store.Current())
	assert.Len(t, store.Current().Dataset.Interventions, 1)
}

func TestRefresherInitialLoadFailureLeavesStoreEmpty(t *testing.T) {
	loader := &stubLoader{err: errors.New("db down")}
	store := NewStore()
	r := NewRefresher(loader, store, RefresherConfig{
		Debounce:    10 * time.Millisecond,
		MaxInterval: time.Hour,
	}, testLogger())

	err := r.Start(context.Background())
	require.Error(t, err)
	defer r.Stop()

	assert.Nil(t, store.Current())
}

func TestRefresherCoalescesBursts(t *testing.T) {
	loader := &stubLoader{}
	store := NewStore()
	r := NewRefresher(loader, store, RefresherConfig{
		Debounce:    50 * time.Millisecond,
		MaxInterval: time.Hour,
	}, testLogger())

	require.NoError(t, r.Start(context.Background()))
	defer r.Stop()
	require.Equal(t, int64(1), loader.loads.Load())

	// A burst of triggers inside the debounce window produces one refetch.
	for i := 0; i < 10; i++ {
		r.Trigger()
		time.Sleep(2 * time.Millisecond)
	}

	assert.Eventually(t, func() bool {
		return loader.loads.Load() == 2
	}, time.Second, 10*time.Millisecond)

	// And it stays at one extra load once the window has passed.
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int64(2), loader.loads.Load())
}

func TestRefresherTriggerAfterQuietPeriodRefetchesAgain(t *testing.T) {
	loader := &stubLoader{}
	store := NewStore()
	r := NewRefresher(loader, store, RefresherConfig{
		Debounce:    10 * time.Millisecond,
		MaxInterval: time.Hour,
	}, testLogger())

	require.NoError(t, r.Start(context.Background()))
	defer r.Stop()

	r.Trigger()
	assert.Eventually(t, func() bool {
		return loader.loads.Load() == 2
	}, time.Second, 5*time.Millisecond)

	r.Trigger()
	assert.Eventually(t, func() bool {
		return loader.loads.Load() == 3
	}, time.Second, 5*time.Millisecond)
}

func TestRefresherOnRefreshCallback(t *testing.T) {
	loader := &stubLoader{dataset: models.Dataset{
		Interventions: []models.Intervention{{ID: "DDD_2024_101"}},
	}}
	store := NewStore()
	r := NewRefresher(loader, store, RefresherConfig{
		Debounce:    10 * time.Millisecond,
		MaxInterval: time.Hour,
	}, testLogger())

	var calls atomic.Int64
	r.OnRefresh(func(snap *Snapshot) {
		calls.Add(1)
	})

	require.NoError(t, r.Start(context.Background()))
	defer r.Stop()

	assert.Equal(t, int64(1), calls.Load())
}
