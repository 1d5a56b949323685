package services

import (
	"context"
	"errors"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"next2play/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/language"
)

type countingSource struct {
	fetches atomic.Int32
	games   []models.Game
	err     error
}

func (s *countingSource) FetchCollection(context.Context) ([]models.Game, error) {
	s.fetches.Add(1)
	return s.games, s.err
}

type memorySnapshots struct {
	mu    sync.Mutex
	games []models.Game
}

func (m *memorySnapshots) Save(_ context.Context, games []models.Game) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.games = append([]models.Game(nil), games...)
	return nil
}

func (m *memorySnapshots) Load(context.Context) ([]models.Game, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.games, nil
}

func TestResyncerNowReplacesAndPersists(t *testing.T) {
	src := &countingSource{games: sampleGames()}
	coll := NewCollection(language.English)
	store := &memorySnapshots{}
	r, err := NewResyncer(src, coll, store)
	require.NoError(t, err)
	t.Cleanup(func() { r.Shutdown() })

	snap, err := r.Now(context.Background())
	require.NoError(t, err)
	assert.Equal(t, uint64(1), snap.Generation)
	assert.Len(t, snap.Games, len(src.games))
	assert.Len(t, store.games, len(src.games))
}

func TestResyncerScheduleCoalesces(t *testing.T) {
	src := &countingSource{games: sampleGames()}
	coll := NewCollection(language.English)
	r, err := NewResyncer(src, coll, nil)
	require.NoError(t, err)
	t.Cleanup(func() { r.Shutdown() })

	r.Schedule(50 * time.Millisecond)
	r.Schedule(50 * time.Millisecond)
	r.Schedule(50 * time.Millisecond)

	assert.Eventually(t, func() bool { return coll.Snapshot().Generation == 1 }, 2*time.Second, 10*time.Millisecond)
	time.Sleep(100 * time.Millisecond)
	assert.Equal(t, int32(1), src.fetches.Load())

	r.Schedule(0)
	assert.Eventually(t, func() bool { return src.fetches.Load() == 2 }, 2*time.Second, 10*time.Millisecond)
}

func TestResyncerBootFallsBackToSnapshot(t *testing.T) {
	src := &countingSource{err: errors.New("connection refused")}
	coll := NewCollection(language.English)
	store := &memorySnapshots{games: sampleGames()}
	r, err := NewResyncer(src, coll, store)
	require.NoError(t, err)
	t.Cleanup(func() { r.Shutdown() })

	snap, err := r.Boot(context.Background())
	require.NoError(t, err)
	assert.Len(t, snap.Games, len(store.games))
	assert.Equal(t, models.StatusInProgress, snap.Games[0].ProgressStatus)
}

func TestResyncerFailureKeepsCollection(t *testing.T) {
	src := &countingSource{games: sampleGames()}
	coll := NewCollection(language.English)
	r, err := NewResyncer(src, coll, nil)
	require.NoError(t, err)
	t.Cleanup(func() { r.Shutdown() })

	_, err = r.Now(context.Background())
	require.NoError(t, err)

	src.err = errors.New("boom")
	snap, err := r.Now(context.Background())
	require.Error(t, err)
	assert.Equal(t, uint64(1), snap.Generation)
	assert.Len(t, snap.Games, len(src.games))
}
