package billing

import (
	"time"

	"github.com/chanqt/boardinghouse/internal/domain/models"
)

// HasSettledPayment reports whether any payment settles the window
// [windowStart, windowEnd). A record qualifies when its denormalized tenant
// and room names match exactly (case-sensitive), its status is paid, and its
// timestamp falls inside the window. One qualifying record is enough; amounts
// are never summed across records.
func HasSettledPayment(tenantName, roomName string, windowStart, windowEnd time.Time, payments []models.PaymentRecord) bool {
	for _, p := range payments {
		if p.TenantName != tenantName || p.RoomName != roomName {
			continue
		}
		if !p.Paid() {
			continue
		}
		if !p.PaymentDate.Before(windowStart) && p.PaymentDate.Before(windowEnd) {
			return true
		}
	}
	return false
}

// AmbiguousJoinKeys returns the name+room keys shared by more than one
// tenant. Payments for such tenants cannot be told apart; any match counts,
// which is a known limitation of the denormalized join.
func AmbiguousJoinKeys(tenants []models.Tenant) []string {
	seen := make(map[string]int, len(tenants))
	for _, t := range tenants {
		seen[t.TenantName+"/"+t.RoomName]++
	}

	var dup []string
	for key, n := range seen {
		if n > 1 {
			dup = append(dup, key)
		}
	}
	return dup
}

// PaymentsFor filters the snapshot down to records carrying the tenant's
// denormalized name+room key.
func PaymentsFor(tenantName, roomName string, payments []models.PaymentRecord) []models.PaymentRecord {
	var out []models.PaymentRecord
	for _, p := range payments {
		if p.TenantName == tenantName && p.RoomName == roomName {
			out = append(out, p)
		}
	}
	return out
}
