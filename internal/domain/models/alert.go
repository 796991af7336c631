package models

import "time"

// Urgency buckets a due alert by how close the due date is.
type Urgency string

const (
	UrgencyUrgent  Urgency = "urgent"   // daysLeft <= 2
	UrgencyWarning Urgency = "warning"  // 3..5
	UrgencyDueSoon Urgency = "due-soon" // 6..horizon
)

// DueAlert flags a tenant whose upcoming rent falls inside the alert horizon
// and has no settling payment yet.
type DueAlert struct {
	TenantID   int       `json:"tenantId"`
	TenantName string    `json:"tenantName"`
	RoomName   string    `json:"roomName"`
	DueDate    time.Time `json:"dueDate"`
	DaysLeft   int       `json:"daysLeft"`
	Urgency    Urgency   `json:"urgency"`
}
