package badger

import (
	"context"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/strindex/analysis"
	"github.com/poiesic/strindex/core"
	"github.com/poiesic/strindex/storage"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newRecord(value string) *core.StoredRecord {
	props := analysis.Compute(value)
	return &core.StoredRecord{
		ID:         props.ContentHash,
		Value:      value,
		Properties: props,
		CreatedAt:  time.Now().UTC().Truncate(time.Microsecond),
	}
}

func setupRepo(t *testing.T) storage.StringRepository {
	t.Helper()
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})
	return repo
}

func TestStringRepository_AddAndGet(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	record := newRecord("Racecar")
	require.NoError(t, repo.AddRecord(ctx, record))

	got, err := repo.GetRecord(ctx, record.ID)
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
	assert.Equal(t, record.Value, got.Value)
	assert.Equal(t, record.Properties, got.Properties)
	assert.True(t, record.CreatedAt.Equal(got.CreatedAt))
}

func TestStringRepository_Duplicate(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.AddRecord(ctx, newRecord("hello")))
	err := repo.AddRecord(ctx, newRecord("hello"))
	assert.ErrorIs(t, err, storage.ErrDuplicateKey)

	count, err := repo.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestStringRepository_GetMissing(t *testing.T) {
	repo := setupRepo(t)

	_, err := repo.GetRecord(context.Background(), "nope")
	assert.ErrorIs(t, err, storage.ErrNotFound)
}

func TestStringRepository_Delete(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	record := newRecord("delete me")
	require.NoError(t, repo.AddRecord(ctx, record))
	require.NoError(t, repo.DeleteRecord(ctx, record.ID))

	_, err := repo.GetRecord(ctx, record.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	err = repo.DeleteRecord(ctx, record.ID)
	assert.ErrorIs(t, err, storage.ErrNotFound)

	// Re-adding after delete is allowed
	require.NoError(t, repo.AddRecord(ctx, record))
}

func TestStringRepository_ListInsertionOrder(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	values := []string{"zeta", "alpha", "mike", "bravo", "yankee"}
	for _, v := range values {
		require.NoError(t, repo.AddRecord(ctx, newRecord(v)))
	}
	require.NoError(t, repo.DeleteRecord(ctx, newRecord("mike").ID))
	require.NoError(t, repo.AddRecord(ctx, newRecord("mike")))

	records, err := repo.ListRecords(ctx)
	require.NoError(t, err)

	got := make([]string, len(records))
	for i, r := range records {
		got[i] = r.Value
	}
	assert.Equal(t, []string{"zeta", "alpha", "bravo", "yankee", "mike"}, got)
}

func TestStringRepository_ListEmpty(t *testing.T) {
	repo := setupRepo(t)

	records, err := repo.ListRecords(context.Background())
	require.NoError(t, err)
	assert.NotNil(t, records)
	assert.Empty(t, records)
}

func TestStringRepository_ListIsSnapshot(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	require.NoError(t, repo.AddRecord(ctx, newRecord("first")))
	snapshot, err := repo.ListRecords(ctx)
	require.NoError(t, err)

	require.NoError(t, repo.AddRecord(ctx, newRecord("second")))
	require.NoError(t, repo.DeleteRecord(ctx, newRecord("first").ID))

	require.Len(t, snapshot, 1)
	assert.Equal(t, "first", snapshot[0].Value)
}

func TestStringRepository_ConcurrentDuplicateAdds(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	const workers = 16
	var (
		wg         sync.WaitGroup
		mu         sync.Mutex
		successes  int
		duplicates int
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			err := repo.AddRecord(ctx, newRecord("same value"))
			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				successes++
			case assert.ErrorIs(t, err, storage.ErrDuplicateKey):
				duplicates++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, successes)
	assert.Equal(t, workers-1, duplicates)

	records, err := repo.ListRecords(ctx)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestStringRepository_ConcurrentDistinctAdds(t *testing.T) {
	repo := setupRepo(t)
	ctx := context.Background()

	var wg sync.WaitGroup
	for i := range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			assert.NoError(t, repo.AddRecord(ctx, newRecord(fmt.Sprintf("value-%d", i))))
		}()
	}
	wg.Wait()

	count, err := repo.CountRecords(ctx)
	require.NoError(t, err)
	assert.Equal(t, 50, count)
}

func TestStringRepository_PersistsAcrossReopen(t *testing.T) {
	dir := t.TempDir()
	ctx := context.Background()

	backend, err := OpenBackend(dir, false)
	require.NoError(t, err)
	repo, err := NewStringRepository(backend, "sha256")
	require.NoError(t, err)
	require.NoError(t, repo.AddRecord(ctx, newRecord("one")))
	require.NoError(t, repo.AddRecord(ctx, newRecord("two")))
	require.NoError(t, repo.Close())
	require.NoError(t, backend.Close())

	backend, err = OpenBackend(dir, false)
	require.NoError(t, err)
	defer backend.Close()
	repo, err = NewStringRepository(backend, "sha256")
	require.NoError(t, err)
	defer repo.Close()

	require.NoError(t, repo.AddRecord(ctx, newRecord("three")))

	records, err := repo.ListRecords(ctx)
	require.NoError(t, err)
	require.Len(t, records, 3)
	assert.Equal(t, "one", records[0].Value)
	assert.Equal(t, "two", records[1].Value)
	assert.Equal(t, "three", records[2].Value)
}

func TestStringRepository_HashMismatch(t *testing.T) {
	backend, err := OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()

	repo, err := NewStringRepository(backend, "sha256")
	require.NoError(t, err)
	defer repo.Close()

	_, err = NewStringRepository(backend, "blake2b")
	assert.ErrorIs(t, err, storage.ErrHashMismatch)
}

func TestStringRepository_Closed(t *testing.T) {
	repo, backend, err := NewMemoryRepository()
	require.NoError(t, err)
	require.NoError(t, repo.Close())
	require.NoError(t, backend.Close())

	ctx := context.Background()
	assert.ErrorIs(t, repo.AddRecord(ctx, newRecord("x")), storage.ErrStorageClosed)
	_, err = repo.ListRecords(ctx)
	assert.ErrorIs(t, err, storage.ErrStorageClosed)
}
