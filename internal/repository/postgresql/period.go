package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/database"
)

type payrollRepository struct {
	db *database.DB
}

func NewPayrollRepository(db *database.DB) payroll.PayrollRepository {
	return &payrollRepository{db: db}
}

const periodColumns = `id, year, month, period_number, start_date, end_date, pay_date, status, created_by, created_at, updated_at`

func scanPeriod(row pgx.Row) (payroll.PayrollPeriod, error) {
	var p payroll.PayrollPeriod
	err := row.Scan(
		&p.ID, &p.Year, &p.Month, &p.PeriodNumber,
		&p.StartDate, &p.EndDate, &p.PayDate,
		&p.Status, &p.CreatedBy, &p.CreatedAt, &p.UpdatedAt,
	)
	return p, err
}

func (r *payrollRepository) CreatePeriod(ctx context.Context, period payroll.PayrollPeriod) (payroll.PayrollPeriod, error) {
	q := r.db.Querier(ctx)

	query := `
		INSERT INTO payroll_periods (year, month, period_number, start_date, end_date, pay_date, status, created_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING ` + periodColumns

	p, err := scanPeriod(q.QueryRow(ctx, query,
		period.Year, period.Month, period.PeriodNumber,
		period.StartDate, period.EndDate, period.PayDate,
		period.Status, period.CreatedBy,
	))
	if err != nil {
		if isUniqueViolation(err, "uk_payroll_period_open") {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodAlreadyExists
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to create payroll period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetPeriodByID(ctx context.Context, id string) (payroll.PayrollPeriod, error) {
	q := r.db.Querier(ctx)

	query := `SELECT ` + periodColumns + ` FROM payroll_periods WHERE id = $1`

	p, err := scanPeriod(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to get payroll period: %w", err)
	}

	return p, nil
}

// GetPeriodByIDForUpdate locks the period row until the surrounding
// transaction ends. Finalize/pay/reopen use this to serialize
// concurrent admin requests.
func (r *payrollRepository) GetPeriodByIDForUpdate(ctx context.Context, id string) (payroll.PayrollPeriod, error) {
	q := r.db.Querier(ctx)

	query := `SELECT ` + periodColumns + ` FROM payroll_periods WHERE id = $1 FOR UPDATE`

	p, err := scanPeriod(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to lock payroll period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetOpenPeriodByKey(ctx context.Context, year, month, periodNumber int) (payroll.PayrollPeriod, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + periodColumns + `
		FROM payroll_periods
		WHERE year = $1 AND month = $2 AND period_number = $3 AND status IN ('draft', 'processing')
	`

	p, err := scanPeriod(q.QueryRow(ctx, query, year, month, periodNumber))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to get open payroll period: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) GetPeriodByDate(ctx context.Context, date time.Time) (payroll.PayrollPeriod, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + periodColumns + `
		FROM payroll_periods
		WHERE start_date <= $1 AND end_date >= $1
		ORDER BY created_at DESC
		LIMIT 1
	`

	p, err := scanPeriod(q.QueryRow(ctx, query, date))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollPeriod{}, payroll.ErrPeriodNotFound
		}
		return payroll.PayrollPeriod{}, fmt.Errorf("failed to get payroll period by date: %w", err)
	}

	return p, nil
}

func (r *payrollRepository) ListPeriods(ctx context.Context, filter payroll.PeriodFilter) ([]payroll.PayrollPeriod, int64, error) {
	q := r.db.Querier(ctx)

	where := " WHERE 1=1"
	args := []interface{}{}
	argIdx := 1

	if filter.Year != nil {
		where += fmt.Sprintf(" AND year = $%d", argIdx)
		args = append(args, *filter.Year)
		argIdx++
	}
	if filter.Status != nil {
		where += fmt.Sprintf(" AND status = $%d", argIdx)
		args = append(args, *filter.Status)
		argIdx++
	}

	var totalCount int64
	if err := q.QueryRow(ctx, "SELECT COUNT(*) FROM payroll_periods"+where, args...).Scan(&totalCount); err != nil {
		return nil, 0, fmt.Errorf("failed to count payroll periods: %w", err)
	}

	limit := filter.Limit
	if limit <= 0 {
		limit = 20
	}
	page := filter.Page
	if page <= 0 {
		page = 1
	}

	query := `SELECT ` + periodColumns + ` FROM payroll_periods` + where +
		fmt.Sprintf(" ORDER BY year DESC, month DESC, period_number DESC LIMIT $%d OFFSET $%d", argIdx, argIdx+1)
	args = append(args, limit, (page-1)*limit)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list payroll periods: %w", err)
	}
	defer rows.Close()

	var periods []payroll.PayrollPeriod
	for rows.Next() {
		p, err := scanPeriod(rows)
		if err != nil {
			return nil, 0, fmt.Errorf("failed to scan payroll period: %w", err)
		}
		periods = append(periods, p)
	}

	return periods, totalCount, nil
}

func (r *payrollRepository) CountOverlappingPeriods(ctx context.Context, start, end time.Time, excludeID string) (int, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT COUNT(*)
		FROM payroll_periods
		WHERE start_date <= $2 AND end_date >= $1 AND id::text <> $3
	`

	var count int
	if err := q.QueryRow(ctx, query, start, end, excludeID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count overlapping periods: %w", err)
	}

	return count, nil
}

// UpdatePeriodStatus is a compare-and-swap on status: it only succeeds
// when the current status still matches from.
func (r *payrollRepository) UpdatePeriodStatus(ctx context.Context, id string, from, to payroll.PeriodStatus) error {
	q := r.db.Querier(ctx)

	query := `UPDATE payroll_periods SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`

	tag, err := q.Exec(ctx, query, id, from, to)
	if err != nil {
		return fmt.Errorf("failed to update period status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrPeriodNotEditable
	}

	return nil
}

func (r *payrollRepository) GetPeriodSummary(ctx context.Context, periodID string) (payroll.PeriodSummary, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT COUNT(*),
			   COALESCE(SUM(basic_pay), 0),
			   COALESCE(SUM(total_allowances), 0),
			   COALESCE(SUM(total_deductions), 0),
			   COALESCE(SUM(gross_pay), 0),
			   COALESCE(SUM(net_pay), 0),
			   COUNT(*) FILTER (WHERE status = 'draft'),
			   COUNT(*) FILTER (WHERE status = 'computed'),
			   COUNT(*) FILTER (WHERE status = 'finalized'),
			   COUNT(*) FILTER (WHERE status = 'paid')
		FROM payroll_items
		WHERE period_id = $1
	`

	s := payroll.PeriodSummary{PeriodID: periodID}
	err := q.QueryRow(ctx, query, periodID).Scan(
		&s.TotalEmployees,
		&s.TotalBasicPay, &s.TotalAllowances, &s.TotalDeductions,
		&s.TotalGrossPay, &s.TotalNetPay,
		&s.DraftCount, &s.ComputedCount, &s.FinalizedCount, &s.PaidCount,
	)
	if err != nil {
		return payroll.PeriodSummary{}, fmt.Errorf("failed to get period summary: %w", err)
	}

	return s, nil
}
