package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/benefits"
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/database"
	"github.com/shopspring/decimal"
)

type benefitRepository struct {
	db *database.DB
}

func NewBenefitRepository(db *database.DB) benefits.BenefitRepository {
	return &benefitRepository{db: db}
}

const benefitColumns = `b.id, b.employee_id, b.benefit_type, b.amount, b.year, b.date_paid, b.notes, b.processed_by, b.created_at, e.first_name || ' ' || e.last_name`

func scanBenefit(row pgx.Row) (benefits.CompensationBenefit, error) {
	var b benefits.CompensationBenefit
	err := row.Scan(
		&b.ID, &b.EmployeeID, &b.BenefitType, &b.Amount, &b.Year,
		&b.DatePaid, &b.Notes, &b.ProcessedBy, &b.CreatedAt, &b.EmployeeName,
	)
	return b, err
}

func (r *benefitRepository) CreateBenefit(ctx context.Context, benefit benefits.CompensationBenefit) (benefits.CompensationBenefit, error) {
	q := r.db.Querier(ctx)

	query := `
		INSERT INTO compensation_benefits (employee_id, benefit_type, amount, year, date_paid, notes, processed_by)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		benefit.EmployeeID, benefit.BenefitType, benefit.Amount, benefit.Year,
		benefit.DatePaid, benefit.Notes, benefit.ProcessedBy,
	).Scan(&id)
	if err != nil {
		if isUniqueViolation(err, "uk_compensation_benefit_year") {
			return benefits.CompensationBenefit{}, benefits.ErrBenefitAlreadyGranted
		}
		return benefits.CompensationBenefit{}, fmt.Errorf("failed to create compensation benefit: %w", err)
	}

	return r.getBenefitByID(ctx, id)
}

func (r *benefitRepository) getBenefitByID(ctx context.Context, id string) (benefits.CompensationBenefit, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + benefitColumns + `
		FROM compensation_benefits b
		JOIN employees e ON e.id = b.employee_id
		WHERE b.id = $1
	`

	b, err := scanBenefit(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return benefits.CompensationBenefit{}, benefits.ErrBenefitNotFound
		}
		return benefits.CompensationBenefit{}, fmt.Errorf("failed to get compensation benefit: %w", err)
	}

	return b, nil
}

func (r *benefitRepository) GetBenefit(ctx context.Context, employeeID, benefitType string, year int) (benefits.CompensationBenefit, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + benefitColumns + `
		FROM compensation_benefits b
		JOIN employees e ON e.id = b.employee_id
		WHERE b.employee_id = $1 AND b.benefit_type = $2 AND b.year = $3
	`

	b, err := scanBenefit(q.QueryRow(ctx, query, employeeID, benefitType, year))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return benefits.CompensationBenefit{}, benefits.ErrBenefitNotFound
		}
		return benefits.CompensationBenefit{}, fmt.Errorf("failed to get compensation benefit: %w", err)
	}

	return b, nil
}

func (r *benefitRepository) ListBenefitsByEmployee(ctx context.Context, employeeID string) ([]benefits.CompensationBenefit, error) {
	query := `
		SELECT ` + benefitColumns + `
		FROM compensation_benefits b
		JOIN employees e ON e.id = b.employee_id
		WHERE b.employee_id = $1
		ORDER BY b.year DESC, b.benefit_type
	`

	return r.queryBenefits(ctx, query, employeeID)
}

func (r *benefitRepository) ListBenefitsByTypeYear(ctx context.Context, benefitType string, year int) ([]benefits.CompensationBenefit, error) {
	query := `
		SELECT ` + benefitColumns + `
		FROM compensation_benefits b
		JOIN employees e ON e.id = b.employee_id
		WHERE b.benefit_type = $1 AND b.year = $2
		ORDER BY e.employee_code
	`

	return r.queryBenefits(ctx, query, benefitType, year)
}

func (r *benefitRepository) queryBenefits(ctx context.Context, query string, args ...interface{}) ([]benefits.CompensationBenefit, error) {
	q := r.db.Querier(ctx)

	rows, err := q.Query(ctx, query, args...)
	if err != nil {
		return nil, fmt.Errorf("failed to list compensation benefits: %w", err)
	}
	defer rows.Close()

	var result []benefits.CompensationBenefit
	for rows.Next() {
		b, err := scanBenefit(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan compensation benefit: %w", err)
		}
		result = append(result, b)
	}

	return result, nil
}

// ========== TERMINAL LEAVE ==========

const tlbColumns = `id, employee_id, total_leave_credits, highest_monthly_salary, constant_factor,
	claim_date, separation_date, computed_amount, status, created_by, created_at, updated_at`

func scanTLB(row pgx.Row) (benefits.TerminalLeaveBenefit, error) {
	var t benefits.TerminalLeaveBenefit
	err := row.Scan(
		&t.ID, &t.EmployeeID, &t.TotalLeaveCredits, &t.HighestMonthlySalary, &t.ConstantFactor,
		&t.ClaimDate, &t.SeparationDate, &t.ComputedAmount, &t.Status, &t.CreatedBy, &t.CreatedAt, &t.UpdatedAt,
	)
	return t, err
}

func (r *benefitRepository) CreateTLB(ctx context.Context, claim benefits.TerminalLeaveBenefit) (benefits.TerminalLeaveBenefit, error) {
	q := r.db.Querier(ctx)

	query := `
		INSERT INTO terminal_leave_benefits (
			employee_id, total_leave_credits, highest_monthly_salary, constant_factor,
			claim_date, separation_date, computed_amount, status, created_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
		RETURNING ` + tlbColumns

	t, err := scanTLB(q.QueryRow(ctx, query,
		claim.EmployeeID, claim.TotalLeaveCredits, claim.HighestMonthlySalary, claim.ConstantFactor,
		claim.ClaimDate, claim.SeparationDate, claim.ComputedAmount, claim.Status, claim.CreatedBy,
	))
	if err != nil {
		// Partial unique index over non-cancelled claims.
		if isUniqueViolation(err, "uk_terminal_leave_live") {
			return benefits.TerminalLeaveBenefit{}, benefits.ErrTLBAlreadyComputed
		}
		return benefits.TerminalLeaveBenefit{}, fmt.Errorf("failed to create terminal leave claim: %w", err)
	}

	return t, nil
}

func (r *benefitRepository) GetTLBByID(ctx context.Context, id string) (benefits.TerminalLeaveBenefit, error) {
	return r.getTLB(ctx, `SELECT `+tlbColumns+` FROM terminal_leave_benefits WHERE id = $1`, id)
}

func (r *benefitRepository) GetTLBByIDForUpdate(ctx context.Context, id string) (benefits.TerminalLeaveBenefit, error) {
	return r.getTLB(ctx, `SELECT `+tlbColumns+` FROM terminal_leave_benefits WHERE id = $1 FOR UPDATE`, id)
}

func (r *benefitRepository) GetLiveTLBByEmployee(ctx context.Context, employeeID string) (benefits.TerminalLeaveBenefit, error) {
	return r.getTLB(ctx, `SELECT `+tlbColumns+` FROM terminal_leave_benefits WHERE employee_id = $1 AND status <> 'cancelled'`, employeeID)
}

func (r *benefitRepository) getTLB(ctx context.Context, query string, args ...interface{}) (benefits.TerminalLeaveBenefit, error) {
	q := r.db.Querier(ctx)

	t, err := scanTLB(q.QueryRow(ctx, query, args...))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return benefits.TerminalLeaveBenefit{}, benefits.ErrTLBNotFound
		}
		return benefits.TerminalLeaveBenefit{}, fmt.Errorf("failed to get terminal leave claim: %w", err)
	}

	return t, nil
}

func (r *benefitRepository) UpdateTLBStatus(ctx context.Context, id string, from, to benefits.TLBStatus) error {
	q := r.db.Querier(ctx)

	query := `UPDATE terminal_leave_benefits SET status = $3, updated_at = NOW() WHERE id = $1 AND status = $2`

	tag, err := q.Exec(ctx, query, id, from, to)
	if err != nil {
		return fmt.Errorf("failed to update terminal leave status: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return benefits.ErrTLBInvalidTransition
	}

	return nil
}

func (r *benefitRepository) SumBasicPayPaidInYear(ctx context.Context, employeeID string, year int) (decimal.Decimal, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT COALESCE(SUM(i.basic_pay), 0)
		FROM payroll_items i
		JOIN payroll_periods p ON p.id = i.period_id
		WHERE i.employee_id = $1 AND p.year = $2 AND i.status = 'paid'
	`

	var total decimal.Decimal
	if err := q.QueryRow(ctx, query, employeeID, year).Scan(&total); err != nil {
		return decimal.Zero, fmt.Errorf("failed to sum paid basic pay: %w", err)
	}

	return total, nil
}
