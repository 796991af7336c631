package ledger

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chanqt/boardinghouse/internal/domain/models"
)

type fakeStore struct {
	entries   []models.RemovalEntry
	loadErr   error
	insertErr error
	inserts   int
	deletes   int
}

func (f *fakeStore) LoadAll(ctx context.Context) ([]models.RemovalEntry, error) {
	return f.entries, f.loadErr
}

func (f *fakeStore) Insert(ctx context.Context, entry models.RemovalEntry) error {
	if f.insertErr != nil {
		return f.insertErr
	}
	f.inserts++
	f.entries = append(f.entries, entry)
	return nil
}

func (f *fakeStore) Delete(ctx context.Context, tenantID int) error {
	f.deletes++
	for i, e := range f.entries {
		if e.TenantID == tenantID {
			f.entries = append(f.entries[:i], f.entries[i+1:]...)
			break
		}
	}
	return nil
}

func newTestService(t *testing.T, store *fakeStore) *Service {
	t.Helper()
	svc, err := NewService(context.Background(), store, nil)
	require.NoError(t, err)
	return svc
}

func TestRemove_AppendsEntry(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store)

	entry, err := svc.Remove(context.Background(), 5)
	require.NoError(t, err)
	assert.Equal(t, 5, entry.TenantID)
	assert.False(t, entry.DateRemoved.IsZero())
	assert.True(t, svc.IsRemoved(5))
	assert.Equal(t, 1, store.inserts)
}

func TestRemove_IsIdempotent(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store)

	firstNow := time.Date(2024, time.March, 1, 12, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return firstNow }

	first, err := svc.Remove(context.Background(), 5)
	require.NoError(t, err)

	// A later second removal must keep the original timestamp and write nothing.
	svc.now = func() time.Time { return firstNow.AddDate(0, 0, 10) }
	second, err := svc.Remove(context.Background(), 5)
	require.NoError(t, err)

	assert.Equal(t, first.DateRemoved, second.DateRemoved)
	assert.Equal(t, 1, store.inserts)
	assert.Len(t, svc.Entries(), 1)
}

func TestRemove_StoreFailureLeavesLedgerUntouched(t *testing.T) {
	store := &fakeStore{insertErr: errors.New("mongo down")}
	svc := newTestService(t, store)

	_, err := svc.Remove(context.Background(), 5)
	assert.Error(t, err)
	assert.False(t, svc.IsRemoved(5))
}

func TestRestore_DeletesEntry(t *testing.T) {
	store := &fakeStore{}
	svc := newTestService(t, store)

	_, err := svc.Remove(context.Background(), 5)
	require.NoError(t, err)

	require.NoError(t, svc.Restore(context.Background(), 5))
	assert.False(t, svc.IsRemoved(5))
	assert.Equal(t, 1, store.deletes)

	// Restoring a tenant that is not removed is a no-op.
	require.NoError(t, svc.Restore(context.Background(), 5))
	assert.Equal(t, 1, store.deletes)
}

func TestRemovalDate(t *testing.T) {
	svc := newTestService(t, &fakeStore{})

	removedAt := time.Date(2024, time.March, 1, 0, 0, 0, 0, time.UTC)
	svc.now = func() time.Time { return removedAt }
	_, err := svc.Remove(context.Background(), 9)
	require.NoError(t, err)

	got, ok := svc.RemovalDate(9)
	assert.True(t, ok)
	assert.Equal(t, removedAt, got)

	_, ok = svc.RemovalDate(10)
	assert.False(t, ok)
}

func TestNewService_LoadsExistingEntries(t *testing.T) {
	existing := models.RemovalEntry{TenantID: 3, DateRemoved: time.Date(2023, time.June, 1, 0, 0, 0, 0, time.UTC)}
	svc := newTestService(t, &fakeStore{entries: []models.RemovalEntry{existing}})

	assert.True(t, svc.IsRemoved(3))
	got, ok := svc.RemovalDate(3)
	assert.True(t, ok)
	assert.Equal(t, existing.DateRemoved, got)
}

func TestNewService_LoadFailure(t *testing.T) {
	_, err := NewService(context.Background(), &fakeStore{loadErr: errors.New("mongo down")}, nil)
	assert.Error(t, err)
}

func TestEntries_SortedByTenantID(t *testing.T) {
	svc := newTestService(t, &fakeStore{})

	for _, id := range []int{9, 2, 5} {
		_, err := svc.Remove(context.Background(), id)
		require.NoError(t, err)
	}

	entries := svc.Entries()
	require.Len(t, entries, 3)
	assert.Equal(t, 2, entries[0].TenantID)
	assert.Equal(t, 5, entries[1].TenantID)
	assert.Equal(t, 9, entries[2].TenantID)
}
