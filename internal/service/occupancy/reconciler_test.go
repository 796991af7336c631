package occupancy

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chanqt/boardinghouse/internal/domain/models"
)

func room(status models.RoomStatus, capacity int) models.Room {
	return models.Room{ID: 7, RoomName: "01", Capacity: capacity, Price: 3500, Status: status}
}

func TestReconcile_FullRoomBecomesOccupied(t *testing.T) {
	intent := Reconcile(room(models.RoomAvailable, 2), 2)
	require.NotNil(t, intent)
	assert.Equal(t, models.RoomOccupied, intent.To)
	assert.Equal(t, models.RoomAvailable, intent.From)
	assert.Equal(t, 7, intent.RoomID)
	assert.Equal(t, "01", intent.RoomName)
}

func TestReconcile_UnderCapacityBecomesAvailable(t *testing.T) {
	intent := Reconcile(room(models.RoomOccupied, 2), 1)
	require.NotNil(t, intent)
	assert.Equal(t, models.RoomAvailable, intent.To)
}

func TestReconcile_NoOpWhenStatusMatches(t *testing.T) {
	assert.Nil(t, Reconcile(room(models.RoomOccupied, 1), 1))
	assert.Nil(t, Reconcile(room(models.RoomAvailable, 2), 1))
	assert.Nil(t, Reconcile(room(models.RoomAvailable, 2), 0))
}

func TestReconcile_MaintenanceIsNeverOverwritten(t *testing.T) {
	assert.Nil(t, Reconcile(room(models.RoomMaintenance, 1), 1))
	assert.Nil(t, Reconcile(room(models.RoomMaintenance, 1), 0))
}

func TestReconcile_SecondPassEmitsNothing(t *testing.T) {
	r := room(models.RoomAvailable, 1)

	intent := Reconcile(r, 1)
	require.NotNil(t, intent)

	r.Status = intent.To
	assert.Nil(t, Reconcile(r, 1), "applying the intent must make the next pass a no-op")
}

func TestReconcile_RemovalFlipsRoomBack(t *testing.T) {
	// Capacity 2 with 2 active tenants reconciles to Occupied; removing one
	// tenant from the active set flips it back to Available.
	r := room(models.RoomAvailable, 2)

	intent := Reconcile(r, 2)
	require.NotNil(t, intent)
	assert.Equal(t, models.RoomOccupied, intent.To)

	r.Status = models.RoomOccupied
	intent = Reconcile(r, 1)
	require.NotNil(t, intent)
	assert.Equal(t, models.RoomAvailable, intent.To)
}

func TestCountByRoom(t *testing.T) {
	tenants := []models.Tenant{
		{ID: 1, TenantName: "Ana", RoomName: "01"},
		{ID: 2, TenantName: "Ben", RoomName: "01"},
		{ID: 3, TenantName: "Cara", RoomName: "02"},
	}

	counts := CountByRoom(tenants)
	assert.Equal(t, 2, counts["01"])
	assert.Equal(t, 1, counts["02"])
	assert.Equal(t, 0, counts["03"])
}
