package service

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"
	"time"

	"github.com/poiesic/strindex/analysis"
	"github.com/poiesic/strindex/core"
	"github.com/poiesic/strindex/storage"
	"github.com/poiesic/strindex/storage/badger"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupService(t *testing.T, opts ...Option) *Service {
	t.Helper()
	repo, backend, err := badger.NewMemoryRepository()
	require.NoError(t, err)
	t.Cleanup(func() {
		repo.Close()
		backend.Close()
	})

	svc, err := NewService(repo, opts...)
	require.NoError(t, err)
	return svc
}

func seed(t *testing.T, svc *Service, values ...string) {
	t.Helper()
	for _, v := range values {
		_, err := svc.Create(context.Background(), v)
		require.NoError(t, err, "seeding %q", v)
	}
}

func valuesOf(records []*core.StoredRecord) []string {
	out := make([]string, len(records))
	for i, r := range records {
		out[i] = r.Value
	}
	return out
}

func TestNewService_RequiresRepository(t *testing.T) {
	svc, err := NewService(nil)
	assert.ErrorIs(t, err, ErrRepositoryRequired)
	assert.Nil(t, svc)
}

func TestService_Create(t *testing.T) {
	fixed := time.Date(2025, 1, 2, 3, 4, 5, 123456789, time.UTC)
	svc := setupService(t, WithClock(func() time.Time { return fixed }))
	ctx := context.Background()

	record, err := svc.Create(ctx, "Racecar")
	require.NoError(t, err)

	assert.Equal(t, analysis.Compute("Racecar").ContentHash, record.ID)
	assert.Equal(t, record.ID, record.Properties.ContentHash)
	assert.Equal(t, "Racecar", record.Value)
	assert.True(t, record.Properties.IsPalindrome)
	assert.Equal(t, 7, record.Properties.Length)
	assert.True(t, fixed.Truncate(time.Microsecond).Equal(record.CreatedAt))
}

func TestService_CreateDuplicate(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	first, err := svc.Create(ctx, "hello")
	require.NoError(t, err)

	_, err = svc.Create(ctx, "hello")
	assert.ErrorIs(t, err, core.ErrDuplicate)

	second, err := svc.Create(ctx, "Hello")
	require.NoError(t, err)
	assert.NotEqual(t, first.ID, second.ID)

	count, err := svc.Count(ctx)
	require.NoError(t, err)
	assert.Equal(t, 2, count)
}

func TestService_ConcurrentCreateSameValue(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	const workers = 20
	var (
		wg   sync.WaitGroup
		mu   sync.Mutex
		errs []error
	)
	for range workers {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Create(ctx, "contended")
			mu.Lock()
			errs = append(errs, err)
			mu.Unlock()
		}()
	}
	wg.Wait()

	successes := 0
	for _, err := range errs {
		if err == nil {
			successes++
			continue
		}
		assert.ErrorIs(t, err, core.ErrDuplicate)
	}
	assert.Equal(t, 1, successes)
}

func TestService_GetByValue(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	seed(t, svc, "find me")

	record, err := svc.GetByValue(ctx, "find me")
	require.NoError(t, err)
	assert.Equal(t, "find me", record.Value)
	assert.Equal(t, 2, record.Properties.WordCount)

	_, err = svc.GetByValue(ctx, "missing")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestService_DeleteByValue(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	seed(t, svc, "temporary")

	require.NoError(t, svc.DeleteByValue(ctx, "temporary"))

	_, err := svc.GetByValue(ctx, "temporary")
	assert.ErrorIs(t, err, core.ErrNotFound)

	err = svc.DeleteByValue(ctx, "temporary")
	assert.ErrorIs(t, err, core.ErrNotFound)
}

func TestService_ListFiltered(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	seed(t, svc, "racecar", "hello world", "noon", "abc", "a santa at nasa")

	result, err := svc.ListFiltered(ctx, core.FilterSpec{})
	require.NoError(t, err)
	assert.Equal(t, []string{"racecar", "hello world", "noon", "abc", "a santa at nasa"}, valuesOf(result.Records))

	spec := core.FilterSpec{IsPalindrome: core.Ptr(true), WordCount: core.Ptr(1)}
	result, err = svc.ListFiltered(ctx, spec)
	require.NoError(t, err)
	assert.Equal(t, []string{"racecar", "noon"}, valuesOf(result.Records))
	assert.True(t, spec.Equal(result.Filters))
}

func TestService_ListFilteredRejectsBadSpec(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.ListFiltered(ctx, core.FilterSpec{MinLength: core.Ptr(10), MaxLength: core.Ptr(5)})
	assert.ErrorIs(t, err, core.ErrConflict)

	_, err = svc.ListFiltered(ctx, core.FilterSpec{WordCount: core.Ptr(-1)})
	assert.ErrorIs(t, err, core.ErrValidation)
}

func TestService_ListByPhrase(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	seed(t, svc, "level", "kayak", "a man a plan", "stats", "deed", "tattarrattat")

	result, err := svc.ListByPhrase(ctx, "single word palindromic strings longer than 4 characters")
	require.NoError(t, err)
	assert.Equal(t, []string{"level", "kayak", "stats", "tattarrattat"}, valuesOf(result.Records))
	assert.Equal(t, "single word palindromic strings longer than 4 characters", result.Interpretation.Original)
	assert.Equal(t, 5, *result.Interpretation.ParsedFilters.MinLength)

	result, err = svc.ListByPhrase(ctx, "palindromic strings that contain the first vowel")
	require.NoError(t, err)
	assert.Equal(t, []string{"kayak", "stats", "tattarrattat"}, valuesOf(result.Records))
}

func TestService_ListByPhraseErrors(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	_, err := svc.ListByPhrase(ctx, "banana")
	assert.ErrorIs(t, err, core.ErrNoMatch)

	_, err = svc.ListByPhrase(ctx, "longer than 20 and shorter than 5")
	assert.ErrorIs(t, err, core.ErrConflict)
}

type failingRepo struct {
	storage.StringRepository
	err error
}

func (f *failingRepo) AddRecord(ctx context.Context, record *core.StoredRecord) error {
	return f.err
}

func (f *failingRepo) ListRecords(ctx context.Context) ([]*core.StoredRecord, error) {
	return nil, f.err
}

func TestService_InternalErrorsPassThrough(t *testing.T) {
	boom := errors.New("boom")
	svc, err := NewService(&failingRepo{err: boom})
	require.NoError(t, err)
	ctx := context.Background()

	_, err = svc.Create(ctx, "x")
	assert.ErrorIs(t, err, boom)
	assert.Equal(t, core.KindInternal, core.KindOf(err))

	_, err = svc.ListFiltered(ctx, core.FilterSpec{})
	assert.ErrorIs(t, err, boom)
}

func TestService_ValidationHappensBeforeStoreAccess(t *testing.T) {
	boom := errors.New("store must not be read")
	svc, err := NewService(&failingRepo{err: boom})
	require.NoError(t, err)

	_, err = svc.ListFiltered(context.Background(), core.FilterSpec{MinLength: core.Ptr(3), MaxLength: core.Ptr(1)})
	assert.ErrorIs(t, err, core.ErrConflict)

	_, err = svc.ListByPhrase(context.Background(), "banana")
	assert.ErrorIs(t, err, core.ErrNoMatch)
}

func TestService_BLAKE2bAnalyzer(t *testing.T) {
	backend, err := badger.OpenBackend("", true)
	require.NoError(t, err)
	defer backend.Close()
	repo, err := badger.NewStringRepository(backend, string(analysis.BLAKE2b))
	require.NoError(t, err)
	defer repo.Close()

	svc, err := NewService(repo, WithAnalyzer(analysis.NewAnalyzer(analysis.BLAKE2b)))
	require.NoError(t, err)
	ctx := context.Background()

	record, err := svc.Create(ctx, "hashed")
	require.NoError(t, err)
	assert.Equal(t, analysis.BLAKE2b.Sum("hashed"), record.ID)

	got, err := svc.GetByValue(ctx, "hashed")
	require.NoError(t, err)
	assert.Equal(t, record.ID, got.ID)
}

func TestService_ManyRecordsOrder(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()

	want := make([]string, 0, 30)
	for i := range 30 {
		v := fmt.Sprintf("item %02d", 29-i)
		want = append(want, v)
		seed(t, svc, v)
	}

	result, err := svc.ListFiltered(ctx, core.FilterSpec{WordCount: core.Ptr(2)})
	require.NoError(t, err)
	assert.Equal(t, want, valuesOf(result.Records))
}

func TestService_ListByPhrase_OversizedBoundMatchesNothing(t *testing.T) {
	svc := setupService(t)
	ctx := context.Background()
	seed(t, svc, "racecar", "hello world")

	result, err := svc.ListByPhrase(ctx, "longer than 99999999999999999999 characters")
	require.NoError(t, err)
	assert.Empty(t, result.Records)
	assert.NotNil(t, result.Interpretation.ParsedFilters.MinLength)

	_, err = svc.ListByPhrase(ctx, "longer than 99999999999999999999 and shorter than 5")
	assert.ErrorIs(t, err, core.ErrConflict)
}
