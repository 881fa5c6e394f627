package payroll

import (
	"context"
	"time"
)

// PayrollService is the application-facing contract for the period
// lifecycle and per-employee pay computation.
type PayrollService interface {
	// Periods
	CreatePeriod(ctx context.Context, req CreatePeriodRequest) (PeriodResponse, error)
	GetPeriod(ctx context.Context, id string) (PeriodResponse, error)
	GetPeriodByDate(ctx context.Context, date time.Time) (PeriodResponse, error)
	ListPeriods(ctx context.Context, filter PeriodFilter) (ListPeriodsResponse, error)
	GetPeriodSummary(ctx context.Context, periodID string) (PeriodSummaryResponse, error)

	// Lifecycle transitions
	FinalizePeriod(ctx context.Context, periodID string) error
	MarkPeriodAsPaid(ctx context.Context, periodID string) error
	ReopenPeriod(ctx context.Context, periodID string) error

	// Items
	BulkProcess(ctx context.Context, periodID string, req BulkProcessRequest) (BulkProcessResult, error)
	GetItem(ctx context.Context, itemID string) (ItemResponse, error)
	ListItems(ctx context.Context, periodID string) ([]ItemResponse, error)
	Recalculate(ctx context.Context, itemID string) (ItemResponse, error)
	AdjustWorkingDays(ctx context.Context, itemID string, req AdjustWorkingDaysRequest) (ItemResponse, error)
	AddAdjustment(ctx context.Context, itemID string, req AddAdjustmentRequest) (ItemResponse, error)
	GetPayslipBreakdown(ctx context.Context, itemID string) (PayslipBreakdown, error)

	// Components and overrides
	CreateComponent(ctx context.Context, req CreateComponentRequest) (ComponentResponse, error)
	ListComponents(ctx context.Context) ([]ComponentResponse, error)
	UpdateComponent(ctx context.Context, req UpdateComponentRequest) error
	CreateOverride(ctx context.Context, req CreateOverrideRequest) (OverrideResponse, error)
	ListEmployeeOverrides(ctx context.Context, employeeID string) ([]OverrideResponse, error)
	EndOverride(ctx context.Context, id string, endDate time.Time) error
}
