package engine

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"go.uber.org/zap"

	"github.com/chanqt/boardinghouse/internal/domain/models"
	"github.com/chanqt/boardinghouse/internal/repository/recordstore"
	"github.com/chanqt/boardinghouse/internal/service/alerts"
	"github.com/chanqt/boardinghouse/internal/service/billing"
	"github.com/chanqt/boardinghouse/internal/service/ledger"
	"github.com/chanqt/boardinghouse/internal/service/occupancy"
)

// ErrPassInProgress is returned when a pass is requested while another one is
// still running. The caller simply waits for the next cycle; the newest
// snapshot always wins.
var ErrPassInProgress = errors.New("reconciliation pass already in progress")

// PassSummary describes the outcome of one reconciliation pass.
type PassSummary struct {
	Tenants        int `json:"tenants"`
	ActiveTenants  int `json:"activeTenants"`
	Rooms          int `json:"rooms"`
	IntentsEmitted int `json:"intentsEmitted"`
	IntentsApplied int `json:"intentsApplied"`
	Conflicts      int `json:"conflicts"`
}

// Engine runs reconciliation passes: it snapshots the record store, derives
// room statuses from active tenant counts and applies the resulting update
// intents. All computation is a pure function of the snapshot; only intent
// application writes anywhere.
type Engine struct {
	store   recordstore.Repository
	removed *ledger.Service
	scanner *alerts.Scanner
	logger  *zap.Logger
	now     func() time.Time

	passMu sync.Mutex
}

// New wires an engine instance.
func New(store recordstore.Repository, removed *ledger.Service, scanner *alerts.Scanner, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Engine{
		store:   store,
		removed: removed,
		scanner: scanner,
		logger:  logger,
		now:     time.Now,
	}
}

// RunPass executes one full reconciliation pass. A failed snapshot fetch
// aborts the pass before any intent is emitted; a conflicting status write is
// logged and left for the next pass to correct. Overlapping invocations are
// rejected rather than queued.
func (e *Engine) RunPass(ctx context.Context) (PassSummary, error) {
	if !e.passMu.TryLock() {
		return PassSummary{}, ErrPassInProgress
	}
	defer e.passMu.Unlock()

	snapshot, err := e.Snapshot(ctx)
	if err != nil {
		return PassSummary{}, fmt.Errorf("snapshot record store: %w", err)
	}

	active := e.ActiveTenants(snapshot.Tenants)
	counts := occupancy.CountByRoom(active)

	if dup := billing.AmbiguousJoinKeys(active); len(dup) > 0 {
		e.logger.Warn("tenants share a name+room join key, payment matches are ambiguous",
			zap.Strings("keys", dup))
	}

	summary := PassSummary{
		Tenants:       len(snapshot.Tenants),
		ActiveTenants: len(active),
		Rooms:         len(snapshot.Rooms),
	}

	for _, room := range snapshot.Rooms {
		intent := occupancy.Reconcile(room, counts[room.RoomName])
		if intent == nil {
			continue
		}
		summary.IntentsEmitted++

		if _, err := e.store.UpdateRoomStatus(ctx, room, intent.To); err != nil {
			if errors.Is(err, recordstore.ErrStaleWriteConflict) {
				summary.Conflicts++
				e.logger.Warn("room status write conflicted, deferring to next pass",
					zap.String("room", room.RoomName), zap.Error(err))
				continue
			}
			e.logger.Error("room status write failed",
				zap.String("room", room.RoomName), zap.Error(err))
			continue
		}

		summary.IntentsApplied++
		e.logger.Info("room status reconciled",
			zap.String("room", room.RoomName),
			zap.String("from", string(intent.From)),
			zap.String("to", string(intent.To)))
	}

	e.logger.Info("reconciliation pass finished",
		zap.Int("tenants", summary.Tenants),
		zap.Int("active_tenants", summary.ActiveTenants),
		zap.Int("intents_emitted", summary.IntentsEmitted),
		zap.Int("intents_applied", summary.IntentsApplied),
		zap.Int("conflicts", summary.Conflicts))
	return summary, nil
}

// DueAlerts snapshots the store and sweeps active tenants for upcoming due
// dates. A zero horizon uses the configured default.
func (e *Engine) DueAlerts(ctx context.Context, horizonDays int) ([]models.DueAlert, error) {
	snapshot, err := e.Snapshot(ctx)
	if err != nil {
		return nil, fmt.Errorf("snapshot record store: %w", err)
	}

	active := e.ActiveTenants(snapshot.Tenants)
	return e.scanner.ScanWithHorizon(active, snapshot.Payments, horizonDays), nil
}

// DueDate computes the current due date for a single active tenant.
func (e *Engine) DueDate(tenant models.Tenant, payments []models.PaymentRecord) (time.Time, error) {
	return billing.TenantDueDate(tenant, e.now().UTC(), payments)
}

// Snapshot fetches tenants, rooms and payments concurrently and returns only
// once all three collections are in hand. The fetches are independent and
// unordered; any failure discards the whole snapshot so reconciliation never
// runs against partial data.
func (e *Engine) Snapshot(ctx context.Context) (models.Snapshot, error) {
	var (
		wg       sync.WaitGroup
		snapshot models.Snapshot
		errs     [3]error
	)

	wg.Add(3)
	go func() {
		defer wg.Done()
		snapshot.Tenants, errs[0] = e.store.ListTenants(ctx)
	}()
	go func() {
		defer wg.Done()
		snapshot.Rooms, errs[1] = e.store.ListRooms(ctx)
	}()
	go func() {
		defer wg.Done()
		snapshot.Payments, errs[2] = e.store.ListPayments(ctx)
	}()
	wg.Wait()

	for _, err := range errs {
		if err != nil {
			return models.Snapshot{}, err
		}
	}
	return snapshot, nil
}

// ActiveTenants filters out tenants present in the removal ledger. Only
// active tenants count toward occupancy and near-due sweeps.
func (e *Engine) ActiveTenants(tenants []models.Tenant) []models.Tenant {
	active := make([]models.Tenant, 0, len(tenants))
	for _, t := range tenants {
		if e.removed.IsRemoved(t.ID) {
			continue
		}
		active = append(active, t)
	}
	return active
}
