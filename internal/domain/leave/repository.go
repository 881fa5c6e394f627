package leave

import (
	"context"

	"github.com/shopspring/decimal"
)

// LeaveRepository defines data access for leave types and balances.
type LeaveRepository interface {
	GetActiveLeaveTypes(ctx context.Context) ([]LeaveType, error)
	GetLeaveTypeByID(ctx context.Context, id string) (LeaveType, error)

	CreateBalance(ctx context.Context, balance LeaveBalance) (LeaveBalance, error)
	GetBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (LeaveBalance, error)
	GetBalancesByEmployeeYear(ctx context.Context, employeeID string, year int) ([]LeaveBalance, error)
	// AddToBalance atomically increments current_balance by delta.
	AddToBalance(ctx context.Context, balanceID string, delta decimal.Decimal) error
	// DebitForMonetization decrements current_balance and increments
	// monetized_days by days in one statement; fails with
	// ErrInsufficientBalance when the balance would go negative.
	DebitForMonetization(ctx context.Context, balanceID string, days decimal.Decimal) error
}
