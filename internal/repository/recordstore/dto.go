package recordstore

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/chanqt/boardinghouse/internal/domain/models"
)

// The store serializes dates as bare days and payment timestamps as
// "YYYY-MM-DD HH:MM:SS"; numeric fields sometimes arrive as strings.
// DTOs absorb those quirks before records reach the domain model.
const (
	startDateLayout   = "2006-01-02"
	paymentDateLayout = "2006-01-02 15:04:05"
)

type tenantDTO struct {
	ID           int    `json:"id"`
	TenantName   string `json:"tenantName"`
	RoomName     string `json:"roomNo"`
	PhoneNumber  string `json:"phoneNumber"`
	GuardianName string `json:"guardianName"`
	StartDate    string `json:"startDate"`
}

func (d tenantDTO) toModel() (models.Tenant, error) {
	tenant := models.Tenant{
		ID:           d.ID,
		TenantName:   d.TenantName,
		RoomName:     d.RoomName,
		PhoneNumber:  d.PhoneNumber,
		GuardianName: d.GuardianName,
	}

	if d.StartDate != "" {
		start, err := parseDay(d.StartDate)
		if err != nil {
			return models.Tenant{}, fmt.Errorf("parse start date %q: %w", d.StartDate, err)
		}
		tenant.StartDate = &start
	}
	return tenant, nil
}

type roomDTO struct {
	ID       int         `json:"id"`
	RoomName string      `json:"roomName"`
	Capacity json.Number `json:"capacity"`
	Price    json.Number `json:"price"`
	Status   string      `json:"status"`
}

func (d roomDTO) toModel() (models.Room, error) {
	capacity, err := d.Capacity.Int64()
	if err != nil {
		return models.Room{}, fmt.Errorf("parse capacity %q: %w", d.Capacity, err)
	}

	price := 0.0
	if d.Price != "" {
		price, err = d.Price.Float64()
		if err != nil {
			return models.Room{}, fmt.Errorf("parse price %q: %w", d.Price, err)
		}
	}

	status := models.RoomStatus(d.Status)
	if status == "" {
		status = models.RoomAvailable
	}

	return models.Room{
		ID:       d.ID,
		RoomName: d.RoomName,
		Capacity: int(capacity),
		Price:    price,
		Status:   status,
	}, nil
}

type paymentDTO struct {
	ID          int         `json:"id"`
	TenantName  string      `json:"tenant_name"`
	RoomName    string      `json:"room"`
	Amount      json.Number `json:"payment_amount"`
	PaymentDate string      `json:"payment_date"`
	Status      string      `json:"status"`
}

func (d paymentDTO) toModel() (models.PaymentRecord, error) {
	amount := 0.0
	if d.Amount != "" {
		var err error
		amount, err = d.Amount.Float64()
		if err != nil {
			return models.PaymentRecord{}, fmt.Errorf("parse payment amount %q: %w", d.Amount, err)
		}
	}

	paidAt, err := parseTimestamp(d.PaymentDate)
	if err != nil {
		return models.PaymentRecord{}, fmt.Errorf("parse payment date %q: %w", d.PaymentDate, err)
	}

	return models.PaymentRecord{
		ID:          d.ID,
		TenantName:  d.TenantName,
		RoomName:    d.RoomName,
		Amount:      amount,
		PaymentDate: paidAt,
		Status:      d.Status,
	}, nil
}

func parseDay(value string) (time.Time, error) {
	if len(value) > len(startDateLayout) {
		value = value[:len(startDateLayout)]
	}
	return time.Parse(startDateLayout, value)
}

func parseTimestamp(value string) (time.Time, error) {
	if t, err := time.Parse(paymentDateLayout, value); err == nil {
		return t, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	return parseDay(value)
}
