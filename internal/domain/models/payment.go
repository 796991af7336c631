package models

import "time"

// PaymentStatusPaid is the only payment status that settles a billing period.
const PaymentStatusPaid = "paid"

// PaymentRecord is an immutable rent payment row. TenantName and RoomName are
// a denormalized join key; the store keeps no tenant identity on payments.
type PaymentRecord struct {
	ID          int       `json:"id"`
	TenantName  string    `json:"tenant_name"`
	RoomName    string    `json:"room"`
	Amount      float64   `json:"payment_amount"`
	PaymentDate time.Time `json:"payment_date"`
	Status      string    `json:"status"`
}

// Paid reports whether the record carries the settled status.
func (p PaymentRecord) Paid() bool {
	return p.Status == PaymentStatusPaid
}
