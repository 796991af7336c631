package recordstore

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.uber.org/zap"

	"github.com/chanqt/boardinghouse/internal/domain/models"
)

// ErrStaleWriteConflict indicates the store rejected a status write because
// the room changed concurrently. Callers do not retry inline; the next
// reconciliation pass recomputes against fresh data.
var ErrStaleWriteConflict = errors.New("record store rejected stale write")

// ErrNotFound indicates the addressed record does not exist.
var ErrNotFound = errors.New("record not found")

// Repository is the external record store contract: plain list/create/update
// over tenants, rooms and payment histories. The engine never reaches into
// the store beyond this surface.
type Repository interface {
	ListTenants(ctx context.Context) ([]models.Tenant, error)
	ListRooms(ctx context.Context) ([]models.Room, error)
	ListPayments(ctx context.Context) ([]models.PaymentRecord, error)
	UpdateRoomStatus(ctx context.Context, room models.Room, status models.RoomStatus) (models.Room, error)
	CreatePayment(ctx context.Context, record models.PaymentRecord) (models.PaymentRecord, error)
}

// APIRepository is a resty-backed Repository talking to the boarding house
// REST API (/api/tenants, /api/rooms, /api/payment-histories).
type APIRepository struct {
	httpClient *resty.Client
	logger     *zap.Logger
}

// NewAPIRepository builds a record store client for the given base URL.
func NewAPIRepository(baseURL string, logger *zap.Logger) *APIRepository {
	if logger == nil {
		logger = zap.NewNop()
	}

	restyClient := resty.New()
	restyClient.
		SetBaseURL(strings.TrimSuffix(baseURL, "/")).
		SetHeader("Accept", "application/json").
		SetHeader("Content-Type", "application/json").
		SetTimeout(15 * time.Second)

	return &APIRepository{httpClient: restyClient, logger: logger}
}

// ListTenants fetches every tenant record.
func (r *APIRepository) ListTenants(ctx context.Context) ([]models.Tenant, error) {
	var dtos []tenantDTO
	if err := r.getList(ctx, "/api/tenants", &dtos); err != nil {
		return nil, fmt.Errorf("list tenants: %w", err)
	}

	tenants := make([]models.Tenant, 0, len(dtos))
	for _, dto := range dtos {
		tenant, err := dto.toModel()
		if err != nil {
			r.logger.Warn("skipping malformed tenant record", zap.Int("id", dto.ID), zap.Error(err))
			continue
		}
		tenants = append(tenants, tenant)
	}
	return tenants, nil
}

// ListRooms fetches every room record.
func (r *APIRepository) ListRooms(ctx context.Context) ([]models.Room, error) {
	var dtos []roomDTO
	if err := r.getList(ctx, "/api/rooms", &dtos); err != nil {
		return nil, fmt.Errorf("list rooms: %w", err)
	}

	rooms := make([]models.Room, 0, len(dtos))
	for _, dto := range dtos {
		room, err := dto.toModel()
		if err != nil {
			r.logger.Warn("skipping malformed room record", zap.Int("id", dto.ID), zap.Error(err))
			continue
		}
		rooms = append(rooms, room)
	}
	return rooms, nil
}

// ListPayments fetches the full payment history.
func (r *APIRepository) ListPayments(ctx context.Context) ([]models.PaymentRecord, error) {
	var dtos []paymentDTO
	if err := r.getList(ctx, "/api/payment-histories", &dtos); err != nil {
		return nil, fmt.Errorf("list payment histories: %w", err)
	}

	payments := make([]models.PaymentRecord, 0, len(dtos))
	for _, dto := range dtos {
		payment, err := dto.toModel()
		if err != nil {
			r.logger.Warn("skipping malformed payment record", zap.Int("id", dto.ID), zap.Error(err))
			continue
		}
		payments = append(payments, payment)
	}
	return payments, nil
}

// UpdateRoomStatus writes the room back with the new status. The store may
// reject the write with a conflict when the room changed underneath us; that
// surfaces as ErrStaleWriteConflict and is corrected by the next pass.
func (r *APIRepository) UpdateRoomStatus(ctx context.Context, room models.Room, status models.RoomStatus) (models.Room, error) {
	payload := roomDTO{
		ID:       room.ID,
		RoomName: room.RoomName,
		Capacity: json.Number(fmt.Sprint(room.Capacity)),
		Price:    json.Number(fmt.Sprintf("%g", room.Price)),
		Status:   string(status),
	}

	var result roomDTO
	resp, err := r.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&result).
		Put(fmt.Sprintf("/api/rooms/%d", room.ID))
	if err != nil {
		return models.Room{}, fmt.Errorf("update room %d status: %w", room.ID, err)
	}
	if err := statusError(resp); err != nil {
		return models.Room{}, fmt.Errorf("update room %d status: %w", room.ID, err)
	}

	updated, err := result.toModel()
	if err != nil {
		return models.Room{}, fmt.Errorf("decode updated room %d: %w", room.ID, err)
	}
	return updated, nil
}

// CreatePayment appends a payment history record and returns the persisted
// row including its assigned identity.
func (r *APIRepository) CreatePayment(ctx context.Context, record models.PaymentRecord) (models.PaymentRecord, error) {
	payload := paymentDTO{
		TenantName:  record.TenantName,
		RoomName:    record.RoomName,
		Amount:      json.Number(fmt.Sprintf("%g", record.Amount)),
		PaymentDate: record.PaymentDate.Format(paymentDateLayout),
		Status:      record.Status,
	}

	var result paymentDTO
	resp, err := r.httpClient.R().
		SetContext(ctx).
		SetBody(payload).
		SetResult(&result).
		Post("/api/payment-histories")
	if err != nil {
		return models.PaymentRecord{}, fmt.Errorf("create payment: %w", err)
	}
	if err := statusError(resp); err != nil {
		return models.PaymentRecord{}, fmt.Errorf("create payment: %w", err)
	}

	created, err := result.toModel()
	if err != nil {
		return models.PaymentRecord{}, fmt.Errorf("decode created payment: %w", err)
	}
	return created, nil
}

func (r *APIRepository) getList(ctx context.Context, path string, out any) error {
	resp, err := r.httpClient.R().
		SetContext(ctx).
		SetResult(out).
		Get(path)
	if err != nil {
		return err
	}
	return statusError(resp)
}

func statusError(resp *resty.Response) error {
	switch {
	case resp.StatusCode() == http.StatusConflict:
		return ErrStaleWriteConflict
	case resp.StatusCode() == http.StatusNotFound:
		return ErrNotFound
	case resp.StatusCode() >= http.StatusBadRequest:
		return fmt.Errorf("record store error: status=%d body=%s", resp.StatusCode(), resp.String())
	}
	return nil
}
