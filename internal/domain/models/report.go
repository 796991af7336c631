package models

import "time"

// TenantReportRow is one line of the tenant report, covering active and
// removed tenants alike. DueDate is empty for tenants without a start date;
// DateRemoved is set only for removed tenants.
type TenantReportRow struct {
	TenantID     int        `json:"tenantId"`
	TenantName   string     `json:"tenantName"`
	RoomName     string     `json:"roomName"`
	PhoneNumber  string     `json:"phoneNumber"`
	GuardianName string     `json:"guardianName"`
	StartDate    *time.Time `json:"startDate,omitempty"`
	DueDate      *time.Time `json:"dueDate,omitempty"`
	DateRemoved  *time.Time `json:"dateRemoved,omitempty"`
}

// TenantReport is the historical report: active tenants with their computed
// due dates, removed tenants with their removal dates, and the revenue booked
// in the current calendar month.
type TenantReport struct {
	GeneratedAt    time.Time         `json:"generatedAt"`
	MonthlyRevenue float64           `json:"monthlyRevenue"`
	Active         []TenantReportRow `json:"active"`
	Removed        []TenantReportRow `json:"removed"`
}
