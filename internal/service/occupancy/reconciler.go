package occupancy

import (
	"github.com/chanqt/boardinghouse/internal/domain/models"
)

// Reconcile compares a room's stored status against the status derived from
// its active tenant count and returns an update intent when they disagree.
// It returns nil when the stored status is already correct, so a recompute
// pass over an in-sync snapshot emits no writes.
//
// Maintenance is operator-asserted and never overwritten here; only the
// capacity-driven Available/Occupied transitions are automatic.
func Reconcile(room models.Room, activeCount int) *models.StatusUpdate {
	if room.Status == models.RoomMaintenance {
		return nil
	}

	derived := models.RoomAvailable
	if activeCount >= room.Capacity {
		derived = models.RoomOccupied
	}

	if room.Status == derived {
		return nil
	}

	return &models.StatusUpdate{
		RoomID:   room.ID,
		RoomName: room.RoomName,
		From:     room.Status,
		To:       derived,
	}
}

// CountByRoom groups active tenants by their room name join key.
func CountByRoom(tenants []models.Tenant) map[string]int {
	counts := make(map[string]int, len(tenants))
	for _, t := range tenants {
		counts[t.RoomName]++
	}
	return counts
}
