package ledger

import (
	"context"
	"fmt"
	"sort"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chanqt/boardinghouse/internal/domain/models"
)

// Store is the durable persistence behind the removal ledger. Entries survive
// process restarts; the in-memory index is rebuilt from LoadAll at startup.
type Store interface {
	LoadAll(ctx context.Context) ([]models.RemovalEntry, error)
	Insert(ctx context.Context, entry models.RemovalEntry) error
	Delete(ctx context.Context, tenantID int) error
}

// Service is the soft-deletion ledger. It is the sole source of truth
// distinguishing active tenants from historical ones; tenant records
// themselves are never mutated by a removal.
type Service struct {
	store  Store
	logger *zap.Logger
	now    func() time.Time

	mu      sync.RWMutex
	entries map[int]models.RemovalEntry
}

// NewService builds the ledger and loads existing entries from the store.
func NewService(ctx context.Context, store Store, logger *zap.Logger) (*Service, error) {
	if logger == nil {
		logger = zap.NewNop()
	}

	s := &Service{
		store:   store,
		logger:  logger,
		now:     time.Now,
		entries: make(map[int]models.RemovalEntry),
	}

	loaded, err := store.LoadAll(ctx)
	if err != nil {
		return nil, fmt.Errorf("load removal ledger: %w", err)
	}
	for _, e := range loaded {
		s.entries[e.TenantID] = e
	}

	logger.Info("removal ledger loaded", zap.Int("entries", len(loaded)))
	return s, nil
}

// Remove appends a ledger entry for the tenant. Removing an already removed
// tenant is a no-op that keeps the original removal timestamp.
func (s *Service) Remove(ctx context.Context, tenantID int) (models.RemovalEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if existing, ok := s.entries[tenantID]; ok {
		s.logger.Debug("tenant already removed", zap.Int("tenant_id", tenantID))
		return existing, nil
	}

	entry := models.RemovalEntry{TenantID: tenantID, DateRemoved: s.now().UTC()}
	if err := s.store.Insert(ctx, entry); err != nil {
		return models.RemovalEntry{}, fmt.Errorf("persist removal entry: %w", err)
	}

	s.entries[tenantID] = entry
	s.logger.Info("tenant removed", zap.Int("tenant_id", tenantID), zap.Time("date_removed", entry.DateRemoved))
	return entry, nil
}

// Restore deletes the tenant's ledger entry, returning it to the active set.
func (s *Service) Restore(ctx context.Context, tenantID int) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, ok := s.entries[tenantID]; !ok {
		return nil
	}
	if err := s.store.Delete(ctx, tenantID); err != nil {
		return fmt.Errorf("delete removal entry: %w", err)
	}

	delete(s.entries, tenantID)
	s.logger.Info("tenant restored", zap.Int("tenant_id", tenantID))
	return nil
}

// IsRemoved reports whether the tenant is soft-deleted.
func (s *Service) IsRemoved(tenantID int) bool {
	s.mu.RLock()
	defer s.mu.RUnlock()
	_, ok := s.entries[tenantID]
	return ok
}

// RemovalDate returns the timestamp of the tenant's removal, if any.
func (s *Service) RemovalDate(tenantID int) (time.Time, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	entry, ok := s.entries[tenantID]
	return entry.DateRemoved, ok
}

// Entries returns a snapshot of the ledger sorted by tenant id.
func (s *Service) Entries() []models.RemovalEntry {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]models.RemovalEntry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].TenantID < out[j].TenantID })
	return out
}
