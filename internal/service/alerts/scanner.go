package alerts

import (
	"math"
	"sort"
	"time"

	"go.uber.org/zap"

	"github.com/chanqt/boardinghouse/internal/domain/models"
	"github.com/chanqt/boardinghouse/internal/service/billing"
)

// DefaultSpanDays is the fixed period length of the scanning heuristic. The
// sweep deliberately uses coarse 30-day spans rather than the calendar-month
// periods of the due-date calculator; the two period models are kept separate
// on purpose.
const DefaultSpanDays = 30

// DefaultHorizonDays is the default alert horizon.
const DefaultHorizonDays = 7

// Scanner sweeps active tenants and flags those whose upcoming rent falls
// inside the alert horizon without a settling payment.
type Scanner struct {
	spanDays    int
	horizonDays int
	logger      *zap.Logger
	now         func() time.Time
}

// NewScanner builds a scanner. Non-positive spanDays or horizonDays fall back
// to the defaults.
func NewScanner(spanDays, horizonDays int, logger *zap.Logger) *Scanner {
	if logger == nil {
		logger = zap.NewNop()
	}
	if spanDays <= 0 {
		spanDays = DefaultSpanDays
	}
	if horizonDays <= 0 {
		horizonDays = DefaultHorizonDays
	}
	return &Scanner{
		spanDays:    spanDays,
		horizonDays: horizonDays,
		logger:      logger,
		now:         time.Now,
	}
}

// Scan computes due alerts for the given active tenants. Tenants without a
// start date carry no billing basis and are skipped. Alerts are sorted by
// days left, most urgent first.
func (s *Scanner) Scan(tenants []models.Tenant, payments []models.PaymentRecord) []models.DueAlert {
	return s.ScanWithHorizon(tenants, payments, s.horizonDays)
}

// ScanWithHorizon is Scan with a caller-supplied horizon.
func (s *Scanner) ScanWithHorizon(tenants []models.Tenant, payments []models.PaymentRecord, horizonDays int) []models.DueAlert {
	if horizonDays <= 0 {
		horizonDays = s.horizonDays
	}
	now := s.now().UTC()

	var out []models.DueAlert
	for _, tenant := range tenants {
		if !tenant.HasBillingBasis() {
			continue
		}

		windowStart, due := s.currentSpan(*tenant.StartDate, now)
		daysLeft := int(math.Ceil(due.Sub(now).Hours() / 24))
		if daysLeft < 0 || daysLeft > horizonDays {
			continue
		}
		if billing.HasSettledPayment(tenant.TenantName, tenant.RoomName, windowStart, due, payments) {
			continue
		}

		out = append(out, models.DueAlert{
			TenantID:   tenant.ID,
			TenantName: tenant.TenantName,
			RoomName:   tenant.RoomName,
			DueDate:    due,
			DaysLeft:   daysLeft,
			Urgency:    bucket(daysLeft),
		})
	}

	sort.Slice(out, func(i, j int) bool { return out[i].DaysLeft < out[j].DaysLeft })

	s.logger.Debug("near-due sweep finished",
		zap.Int("tenants", len(tenants)),
		zap.Int("alerts", len(out)),
		zap.Int("horizon_days", horizonDays))
	return out
}

// currentSpan returns the running fixed-length span [windowStart, due) for a
// tenant that started at start.
func (s *Scanner) currentSpan(start, now time.Time) (windowStart, due time.Time) {
	daysSince := int(now.Sub(start).Hours() / 24)
	periods := 0
	if daysSince > 0 {
		periods = daysSince / s.spanDays
	}
	windowStart = billing.AddSpans(start, periods, s.spanDays)
	due = billing.AddSpans(start, periods+1, s.spanDays)
	return windowStart, due
}

func bucket(daysLeft int) models.Urgency {
	switch {
	case daysLeft <= 2:
		return models.UrgencyUrgent
	case daysLeft <= 5:
		return models.UrgencyWarning
	default:
		return models.UrgencyDueSoon
	}
}
