package reporting

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.uber.org/zap"

	"github.com/chanqt/boardinghouse/internal/domain/models"
	"github.com/chanqt/boardinghouse/internal/repository/recordstore"
	"github.com/chanqt/boardinghouse/internal/repository/sheets"
	"github.com/chanqt/boardinghouse/internal/service/billing"
	"github.com/chanqt/boardinghouse/internal/service/ledger"
)

const (
	dateLayout        = "2006-01-02"
	activeWriteRange  = "Active!A:G"
	removedWriteRange = "Removed!A:G"
)

// Service builds the historical tenant report and optionally exports it to a
// spreadsheet. Removed tenants stay in the report; the ledger only excludes
// them from active computations.
type Service struct {
	store   recordstore.Repository
	removed *ledger.Service
	sink    sheets.ReportSink
	logger  *zap.Logger
	now     func() time.Time
}

// NewService wires a reporting service. A nil sink disables exporting.
func NewService(store recordstore.Repository, removed *ledger.Service, sink sheets.ReportSink, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{
		store:   store,
		removed: removed,
		sink:    sink,
		logger:  logger,
		now:     time.Now,
	}
}

// BuildReport assembles the active and removed tenant lists with their due
// and removal dates, plus the revenue booked in the current calendar month.
func (s *Service) BuildReport(ctx context.Context) (models.TenantReport, error) {
	tenants, err := s.store.ListTenants(ctx)
	if err != nil {
		return models.TenantReport{}, fmt.Errorf("list tenants: %w", err)
	}
	payments, err := s.store.ListPayments(ctx)
	if err != nil {
		return models.TenantReport{}, fmt.Errorf("list payment histories: %w", err)
	}

	now := s.now().UTC()
	report := models.TenantReport{
		GeneratedAt:    now,
		MonthlyRevenue: monthlyRevenue(payments, now),
	}

	for _, tenant := range tenants {
		row := models.TenantReportRow{
			TenantID:     tenant.ID,
			TenantName:   tenant.TenantName,
			RoomName:     tenant.RoomName,
			PhoneNumber:  tenant.PhoneNumber,
			GuardianName: tenant.GuardianName,
			StartDate:    tenant.StartDate,
		}

		if due, err := billing.TenantDueDate(tenant, now, payments); err == nil {
			row.DueDate = &due
		} else if !errors.Is(err, billing.ErrMissingStartDate) {
			return models.TenantReport{}, fmt.Errorf("due date for tenant %d: %w", tenant.ID, err)
		}

		if removedAt, ok := s.removed.RemovalDate(tenant.ID); ok {
			removed := removedAt
			row.DateRemoved = &removed
			report.Removed = append(report.Removed, row)
		} else {
			report.Active = append(report.Active, row)
		}
	}

	return report, nil
}

// ExportReport builds the report and appends it to the configured sheet.
func (s *Service) ExportReport(ctx context.Context) (models.TenantReport, error) {
	report, err := s.BuildReport(ctx)
	if err != nil {
		return models.TenantReport{}, err
	}

	if s.sink == nil {
		s.logger.Warn("report sink not configured, skipping export")
		return report, nil
	}

	if err := s.sink.AppendRows(ctx, activeWriteRange, activeRows(report)); err != nil {
		return models.TenantReport{}, fmt.Errorf("export active tenants: %w", err)
	}
	if err := s.sink.AppendRows(ctx, removedWriteRange, removedRows(report)); err != nil {
		return models.TenantReport{}, fmt.Errorf("export removed tenants: %w", err)
	}

	s.logger.Info("tenant report exported",
		zap.Int("active", len(report.Active)),
		zap.Int("removed", len(report.Removed)),
		zap.Float64("monthly_revenue", report.MonthlyRevenue))
	return report, nil
}

// monthlyRevenue sums the paid payments that fall in now's calendar month.
func monthlyRevenue(payments []models.PaymentRecord, now time.Time) float64 {
	var total float64
	for _, p := range payments {
		if !p.Paid() {
			continue
		}
		if p.PaymentDate.Year() == now.Year() && p.PaymentDate.Month() == now.Month() {
			total += p.Amount
		}
	}
	return total
}

func activeRows(report models.TenantReport) [][]interface{} {
	rows := make([][]interface{}, 0, len(report.Active))
	for _, row := range report.Active {
		rows = append(rows, []interface{}{
			report.GeneratedAt.Format(dateLayout),
			row.TenantName,
			row.RoomName,
			row.PhoneNumber,
			row.GuardianName,
			formatDay(row.StartDate),
			formatDay(row.DueDate),
		})
	}
	return rows
}

func removedRows(report models.TenantReport) [][]interface{} {
	rows := make([][]interface{}, 0, len(report.Removed))
	for _, row := range report.Removed {
		rows = append(rows, []interface{}{
			report.GeneratedAt.Format(dateLayout),
			row.TenantName,
			row.RoomName,
			row.PhoneNumber,
			row.GuardianName,
			formatDay(row.StartDate),
			formatDay(row.DateRemoved),
		})
	}
	return rows
}

func formatDay(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(dateLayout)
}
