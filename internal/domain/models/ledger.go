package models

import "time"

// RemovalEntry is one row in the soft-deletion ledger. A tenant id appears at
// most once; the timestamp of the first removal is preserved.
type RemovalEntry struct {
	TenantID    int       `bson:"tenant_id" json:"tenantId"`
	DateRemoved time.Time `bson:"date_removed" json:"dateRemoved"`
}
