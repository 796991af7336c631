package billing

import (
	"errors"
	"time"

	"github.com/chanqt/boardinghouse/internal/domain/models"
)

// ErrMissingStartDate indicates a tenant has no billing basis. Such tenants
// carry no due date and are skipped by due-date and near-due computations.
var ErrMissingStartDate = errors.New("tenant has no start date")

// CurrentDueDate derives the tenant's current rent due date from the start
// date, the clock, and the payment history. It is a pure projection: repeated
// calls with the same inputs yield the same date, so recomputing on every
// data reload is safe.
//
// The due date is the end of the first unsettled period, looking back one
// period at most: with p whole periods elapsed since start, rent is due at
// the boundary AddMonths(start, max(p,1)); a settled payment inside the
// period closing at that boundary rolls the due date one period forward.
func CurrentDueDate(start, now time.Time, tenantName, roomName string, payments []models.PaymentRecord) time.Time {
	idx := wholePeriodsElapsed(start, now)
	if idx < 1 {
		idx = 1
	}

	window := MonthlyPeriod(start, idx-1)
	if HasSettledPayment(tenantName, roomName, window.Start, window.End, payments) {
		idx++
	}

	return AddMonths(start, idx)
}

// TenantDueDate is the tenant-level wrapper around CurrentDueDate.
func TenantDueDate(t models.Tenant, now time.Time, payments []models.PaymentRecord) (time.Time, error) {
	if !t.HasBillingBasis() {
		return time.Time{}, ErrMissingStartDate
	}
	return CurrentDueDate(*t.StartDate, now, t.TenantName, t.RoomName, payments), nil
}

// wholePeriodsElapsed counts the period boundaries at or before now: the
// largest k >= 0 with AddMonths(start, k) <= now. Comparing boundary dates
// rather than raw day-of-month keeps clamped months correct (a Jan 31 anchor
// crosses its February boundary on Feb 28/29).
func wholePeriodsElapsed(start, now time.Time) int {
	if now.Before(start) {
		return 0
	}

	sy, sm, _ := start.Date()
	ny, nm, _ := now.Date()
	k := (ny-sy)*12 + int(nm-sm)
	if k < 0 {
		return 0
	}
	// The month delta overshoots by at most one boundary.
	for k > 0 && now.Before(AddMonths(start, k)) {
		k--
	}
	if now.Before(AddMonths(start, k+1)) {
		return k
	}
	return k + 1
}
