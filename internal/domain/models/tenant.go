package models

import "time"

// Tenant is a boarder record as served by the external record store.
// RoomName is the join key to rooms; the store keeps no foreign key.
type Tenant struct {
	ID           int        `json:"id"`
	TenantName   string     `json:"tenantName"`
	RoomName     string     `json:"roomNo"`
	PhoneNumber  string     `json:"phoneNumber"`
	GuardianName string     `json:"guardianName"`
	StartDate    *time.Time `json:"startDate,omitempty"`
}

// HasBillingBasis reports whether due dates can be derived for the tenant.
func (t Tenant) HasBillingBasis() bool {
	return t.StartDate != nil
}
