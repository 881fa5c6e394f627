package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/leave"
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type leaveRepository struct {
	db *database.DB
}

func NewLeaveRepository(db *database.DB) leave.LeaveRepository {
	return &leaveRepository{db: db}
}

const leaveTypeColumns = `id, code, name, monthly_accrual, is_monetizable, is_active, created_at, updated_at`

func scanLeaveType(row pgx.Row) (leave.LeaveType, error) {
	var t leave.LeaveType
	err := row.Scan(&t.ID, &t.Code, &t.Name, &t.MonthlyAccrual, &t.IsMonetizable, &t.IsActive, &t.CreatedAt, &t.UpdatedAt)
	return t, err
}

func (r *leaveRepository) GetActiveLeaveTypes(ctx context.Context) ([]leave.LeaveType, error) {
	q := r.db.Querier(ctx)

	rows, err := q.Query(ctx, `SELECT `+leaveTypeColumns+` FROM leave_types WHERE is_active = true ORDER BY code`)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave types: %w", err)
	}
	defer rows.Close()

	var types []leave.LeaveType
	for rows.Next() {
		t, err := scanLeaveType(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave type: %w", err)
		}
		types = append(types, t)
	}

	return types, nil
}

func (r *leaveRepository) GetLeaveTypeByID(ctx context.Context, id string) (leave.LeaveType, error) {
	q := r.db.Querier(ctx)

	t, err := scanLeaveType(q.QueryRow(ctx, `SELECT `+leaveTypeColumns+` FROM leave_types WHERE id = $1`, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveType{}, leave.ErrLeaveTypeNotFound
		}
		return leave.LeaveType{}, fmt.Errorf("failed to get leave type: %w", err)
	}

	return t, nil
}

const balanceColumns = `b.id, b.employee_id, b.leave_type_id, b.year, b.current_balance, b.monetized_days,
	b.created_at, b.updated_at, t.code, t.name, t.is_monetizable, t.monthly_accrual`

func scanBalance(row pgx.Row) (leave.LeaveBalance, error) {
	var b leave.LeaveBalance
	err := row.Scan(
		&b.ID, &b.EmployeeID, &b.LeaveTypeID, &b.Year, &b.CurrentBalance, &b.MonetizedDays,
		&b.CreatedAt, &b.UpdatedAt, &b.LeaveTypeCode, &b.LeaveTypeName, &b.IsMonetizable, &b.MonthlyAccrual,
	)
	return b, err
}

func (r *leaveRepository) CreateBalance(ctx context.Context, balance leave.LeaveBalance) (leave.LeaveBalance, error) {
	q := r.db.Querier(ctx)

	query := `
		INSERT INTO leave_balances (employee_id, leave_type_id, year, current_balance, monetized_days)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		balance.EmployeeID, balance.LeaveTypeID, balance.Year, balance.CurrentBalance, balance.MonetizedDays,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, "uk_leave_balance_year") {
			return leave.LeaveBalance{}, leave.ErrBalancesExist
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to create leave balance: %w", err)
	}

	return r.getBalanceByID(ctx, id)
}

func (r *leaveRepository) getBalanceByID(ctx context.Context, id string) (leave.LeaveBalance, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + balanceColumns + `
		FROM leave_balances b
		JOIN leave_types t ON t.id = b.leave_type_id
		WHERE b.id = $1
	`

	b, err := scanBalance(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return b, nil
}

func (r *leaveRepository) GetBalance(ctx context.Context, employeeID, leaveTypeID string, year int) (leave.LeaveBalance, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + balanceColumns + `
		FROM leave_balances b
		JOIN leave_types t ON t.id = b.leave_type_id
		WHERE b.employee_id = $1 AND b.leave_type_id = $2 AND b.year = $3
	`

	b, err := scanBalance(q.QueryRow(ctx, query, employeeID, leaveTypeID, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return leave.LeaveBalance{}, leave.ErrBalanceNotFound
		}
		return leave.LeaveBalance{}, fmt.Errorf("failed to get leave balance: %w", err)
	}

	return b, nil
}

func (r *leaveRepository) GetBalancesByEmployeeYear(ctx context.Context, employeeID string, year int) ([]leave.LeaveBalance, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + balanceColumns + `
		FROM leave_balances b
		JOIN leave_types t ON t.id = b.leave_type_id
		WHERE b.employee_id = $1 AND b.year = $2
		ORDER BY t.code
	`

	rows, err := q.Query(ctx, query, employeeID, year)
	if err != nil {
		return nil, fmt.Errorf("failed to list leave balances: %w", err)
	}
	defer rows.Close()

	var balances []leave.LeaveBalance
	for rows.Next() {
		b, err := scanBalance(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan leave balance: %w", err)
		}
		balances = append(balances, b)
	}

	return balances, nil
}

func (r *leaveRepository) AddToBalance(ctx context.Context, balanceID string, delta decimal.Decimal) error {
	q := r.db.Querier(ctx)

	query := `UPDATE leave_balances SET current_balance = current_balance + $2, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, balanceID, delta)
	if err != nil {
		return fmt.Errorf("failed to add to leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrBalanceNotFound
	}

	return nil
}

// DebitForMonetization moves days from the balance to the monetized
// counter in one statement; the WHERE clause keeps the balance from
// going negative under concurrent debits.
func (r *leaveRepository) DebitForMonetization(ctx context.Context, balanceID string, days decimal.Decimal) error {
	q := r.db.Querier(ctx)

	query := `
		UPDATE leave_balances
		SET current_balance = current_balance - $2,
			monetized_days = monetized_days + $2,
			updated_at = NOW()
		WHERE id = $1 AND current_balance >= $2
	`

	tag, err := q.Exec(ctx, query, balanceID, days)
	if err != nil {
		if isCheckViolation(err, "ck_leave_balance_non_negative") {
			return leave.ErrInsufficientBalance
		}
		return fmt.Errorf("failed to debit leave balance: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return leave.ErrInsufficientBalance
	}

	return nil
}
