package recordstore

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/chanqt/boardinghouse/internal/domain/models"
)

func TestListTenants_ParsesRecords(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/tenants", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"tenantName":"Ana","roomNo":"01","phoneNumber":"09171234567","guardianName":"Luz","startDate":"2024-01-15"},
			{"id":2,"tenantName":"Ben","roomNo":"02","phoneNumber":"09179876543","guardianName":"Mia"}
		]`))
	}))
	defer srv.Close()

	repo := NewAPIRepository(srv.URL, nil)
	tenants, err := repo.ListTenants(context.Background())
	require.NoError(t, err)
	require.Len(t, tenants, 2)

	assert.Equal(t, "Ana", tenants[0].TenantName)
	require.NotNil(t, tenants[0].StartDate)
	assert.Equal(t, time.Date(2024, time.January, 15, 0, 0, 0, 0, time.UTC), *tenants[0].StartDate)

	assert.Nil(t, tenants[1].StartDate, "missing start date means no billing basis")
}

func TestListRooms_AcceptsStringNumerics(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		// The store serializes capacity and price as strings on some rows.
		_, _ = w.Write([]byte(`[
			{"id":10,"roomName":"01","capacity":"2","price":"3500","status":"Available"},
			{"id":11,"roomName":"02","capacity":1,"price":4200.5,"status":"Maintenance"}
		]`))
	}))
	defer srv.Close()

	repo := NewAPIRepository(srv.URL, nil)
	rooms, err := repo.ListRooms(context.Background())
	require.NoError(t, err)
	require.Len(t, rooms, 2)

	assert.Equal(t, 2, rooms[0].Capacity)
	assert.Equal(t, 3500.0, rooms[0].Price)
	assert.Equal(t, models.RoomAvailable, rooms[0].Status)
	assert.Equal(t, models.RoomMaintenance, rooms[1].Status)
}

func TestListPayments_ParsesTimestamps(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/payment-histories", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"tenant_name":"Ana","room":"01","payment_amount":3500,"payment_date":"2024-02-10 14:30:00","status":"paid"},
			{"id":2,"tenant_name":"Ben","room":"02","payment_amount":"4200","payment_date":"2024-02-11","status":"pending"}
		]`))
	}))
	defer srv.Close()

	repo := NewAPIRepository(srv.URL, nil)
	payments, err := repo.ListPayments(context.Background())
	require.NoError(t, err)
	require.Len(t, payments, 2)

	assert.Equal(t, time.Date(2024, time.February, 10, 14, 30, 0, 0, time.UTC), payments[0].PaymentDate)
	assert.True(t, payments[0].Paid())
	assert.Equal(t, 4200.0, payments[1].Amount)
	assert.False(t, payments[1].Paid())
}

func TestListTenants_SkipsMalformedRows(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`[
			{"id":1,"tenantName":"Ana","roomNo":"01","startDate":"not-a-date"},
			{"id":2,"tenantName":"Ben","roomNo":"02","startDate":"2024-01-10"}
		]`))
	}))
	defer srv.Close()

	repo := NewAPIRepository(srv.URL, nil)
	tenants, err := repo.ListTenants(context.Background())
	require.NoError(t, err)
	require.Len(t, tenants, 1)
	assert.Equal(t, "Ben", tenants[0].TenantName)
}

func TestUpdateRoomStatus_SendsStatusAndDecodesResult(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPut, r.Method)
		require.Equal(t, "/api/rooms/10", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Occupied", body["status"])

		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":10,"roomName":"01","capacity":1,"price":3500,"status":"Occupied"}`))
	}))
	defer srv.Close()

	repo := NewAPIRepository(srv.URL, nil)
	room := models.Room{ID: 10, RoomName: "01", Capacity: 1, Price: 3500, Status: models.RoomAvailable}

	updated, err := repo.UpdateRoomStatus(context.Background(), room, models.RoomOccupied)
	require.NoError(t, err)
	assert.Equal(t, models.RoomOccupied, updated.Status)
}

func TestUpdateRoomStatus_ConflictMapsToStaleWrite(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusConflict)
	}))
	defer srv.Close()

	repo := NewAPIRepository(srv.URL, nil)
	room := models.Room{ID: 10, RoomName: "01", Capacity: 1, Status: models.RoomAvailable}

	_, err := repo.UpdateRoomStatus(context.Background(), room, models.RoomOccupied)
	assert.ErrorIs(t, err, ErrStaleWriteConflict)
}

func TestUpdateRoomStatus_NotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	repo := NewAPIRepository(srv.URL, nil)
	_, err := repo.UpdateRoomStatus(context.Background(), models.Room{ID: 99}, models.RoomAvailable)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestCreatePayment_ReturnsPersistedRecord(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, http.MethodPost, r.Method)
		require.Equal(t, "/api/payment-histories", r.URL.Path)

		var body map[string]any
		require.NoError(t, json.NewDecoder(r.Body).Decode(&body))
		require.Equal(t, "Ana", body["tenant_name"])
		require.Equal(t, "2024-02-10 14:30:00", body["payment_date"])

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"id":42,"tenant_name":"Ana","room":"01","payment_amount":3500,"payment_date":"2024-02-10 14:30:00","status":"paid"}`))
	}))
	defer srv.Close()

	repo := NewAPIRepository(srv.URL, nil)
	record := models.PaymentRecord{
		TenantName:  "Ana",
		RoomName:    "01",
		Amount:      3500,
		PaymentDate: time.Date(2024, time.February, 10, 14, 30, 0, 0, time.UTC),
		Status:      models.PaymentStatusPaid,
	}

	created, err := repo.CreatePayment(context.Background(), record)
	require.NoError(t, err)
	assert.Equal(t, 42, created.ID)
}

func TestListTenants_ServerError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	repo := NewAPIRepository(srv.URL, nil)
	_, err := repo.ListTenants(context.Background())
	assert.Error(t, err)
}
