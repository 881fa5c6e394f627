package payroll

import (
	"context"
	"time"
)

// PayrollRepository defines data access for periods, items, lines,
// components and overrides. Methods are transaction-aware: when the
// context carries an open transaction they run inside it.
type PayrollRepository interface {
	// Periods
	CreatePeriod(ctx context.Context, period PayrollPeriod) (PayrollPeriod, error)
	GetPeriodByID(ctx context.Context, id string) (PayrollPeriod, error)
	// GetPeriodByIDForUpdate locks the period row for the duration of
	// the surrounding transaction (SELECT ... FOR UPDATE).
	GetPeriodByIDForUpdate(ctx context.Context, id string) (PayrollPeriod, error)
	GetOpenPeriodByKey(ctx context.Context, year, month, periodNumber int) (PayrollPeriod, error)
	GetPeriodByDate(ctx context.Context, date time.Time) (PayrollPeriod, error)
	ListPeriods(ctx context.Context, filter PeriodFilter) ([]PayrollPeriod, int64, error)
	CountOverlappingPeriods(ctx context.Context, start, end time.Time, excludeID string) (int, error)
	UpdatePeriodStatus(ctx context.Context, id string, from, to PeriodStatus) error
	GetPeriodSummary(ctx context.Context, periodID string) (PeriodSummary, error)

	// Items
	UpsertItem(ctx context.Context, item PayrollItem) (PayrollItem, error)
	GetItemByID(ctx context.Context, id string) (PayrollItem, error)
	GetItemByPeriodEmployee(ctx context.Context, periodID, employeeID string) (PayrollItem, error)
	GetItemsByPeriod(ctx context.Context, periodID string) ([]PayrollItem, error)
	UpdateItemTotals(ctx context.Context, item PayrollItem) error
	UpdateItemStatusByPeriod(ctx context.Context, periodID string, from, to ItemStatus) (int64, error)
	CountItemsByStatus(ctx context.Context, periodID string, status ItemStatus) (int, error)

	// Lines
	ReplaceLines(ctx context.Context, itemID string, lines []PayrollItemLine) error
	AppendLine(ctx context.Context, line PayrollItemLine) (PayrollItemLine, error)
	GetLines(ctx context.Context, itemID string) ([]PayrollItemLine, error)

	// Components
	CreateComponent(ctx context.Context, component PayComponent) (PayComponent, error)
	GetComponentByID(ctx context.Context, id string) (PayComponent, error)
	GetActiveComponents(ctx context.Context) ([]PayComponent, error)
	UpdateComponent(ctx context.Context, req UpdateComponentRequest) error

	// Overrides
	CreateOverride(ctx context.Context, override EmployeeOverride) (EmployeeOverride, error)
	GetOverridesForEmployee(ctx context.Context, employeeID string) ([]EmployeeOverride, error)
	EndOverride(ctx context.Context, id string, endDate time.Time) error
}
