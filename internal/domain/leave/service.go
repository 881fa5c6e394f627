package leave

import "context"

// LeaveService is the application-facing contract for the leave credit
// ledger.
type LeaveService interface {
	InitializeYearlyBalances(ctx context.Context, req InitializeBalancesRequest) ([]BalanceResponse, error)
	GetBalances(ctx context.Context, employeeID string, year int) ([]BalanceResponse, error)
	ProcessMonthlyAccrual(ctx context.Context, req AccrualRequest) (AccrualResult, error)
	// RunMonthlyAccrualForActive sweeps every active employee; the cron
	// scheduler calls it on the first day of each month.
	RunMonthlyAccrualForActive(ctx context.Context, year, month int) (AccrualRunSummary, error)
}
