package postgresql

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/payroll"
)

const itemColumns = `i.id, i.period_id, i.employee_id, i.working_days, i.daily_rate, i.basic_pay,
	i.total_allowances, i.total_deductions, i.gross_pay, i.net_pay, i.status, i.processed_by,
	i.adjustment_note, i.created_at, i.updated_at, e.first_name || ' ' || e.last_name, e.employee_code`

func scanItem(row pgx.Row) (payroll.PayrollItem, error) {
	var i payroll.PayrollItem
	err := row.Scan(
		&i.ID, &i.PeriodID, &i.EmployeeID, &i.WorkingDays, &i.DailyRate, &i.BasicPay,
		&i.TotalAllowances, &i.TotalDeductions, &i.GrossPay, &i.NetPay, &i.Status, &i.ProcessedBy,
		&i.AdjustmentNote, &i.CreatedAt, &i.UpdatedAt, &i.EmployeeName, &i.EmployeeCode,
	)
	return i, err
}

func (r *payrollRepository) UpsertItem(ctx context.Context, item payroll.PayrollItem) (payroll.PayrollItem, error) {
	q := r.db.Querier(ctx)

	query := `
		INSERT INTO payroll_items (
			period_id, employee_id, working_days, daily_rate, basic_pay,
			total_allowances, total_deductions, gross_pay, net_pay, status, processed_by, adjustment_note
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)
		ON CONFLICT (period_id, employee_id) DO UPDATE SET
			working_days = EXCLUDED.working_days,
			daily_rate = EXCLUDED.daily_rate,
			basic_pay = EXCLUDED.basic_pay,
			total_allowances = EXCLUDED.total_allowances,
			total_deductions = EXCLUDED.total_deductions,
			gross_pay = EXCLUDED.gross_pay,
			net_pay = EXCLUDED.net_pay,
			status = EXCLUDED.status,
			processed_by = EXCLUDED.processed_by,
			updated_at = NOW()
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		item.PeriodID, item.EmployeeID, item.WorkingDays, item.DailyRate, item.BasicPay,
		item.TotalAllowances, item.TotalDeductions, item.GrossPay, item.NetPay,
		item.Status, item.ProcessedBy, item.AdjustmentNote,
	).Scan(&id)
	if err != nil {
		return payroll.PayrollItem{}, fmt.Errorf("failed to upsert payroll item: %w", err)
	}

	return r.GetItemByID(ctx, id)
}

func (r *payrollRepository) GetItemByID(ctx context.Context, id string) (payroll.PayrollItem, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + itemColumns + `
		FROM payroll_items i
		JOIN employees e ON e.id = i.employee_id
		WHERE i.id = $1
	`

	i, err := scanItem(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollItem{}, payroll.ErrItemNotFound
		}
		return payroll.PayrollItem{}, fmt.Errorf("failed to get payroll item: %w", err)
	}

	return i, nil
}

func (r *payrollRepository) GetItemByPeriodEmployee(ctx context.Context, periodID, employeeID string) (payroll.PayrollItem, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + itemColumns + `
		FROM payroll_items i
		JOIN employees e ON e.id = i.employee_id
		WHERE i.period_id = $1 AND i.employee_id = $2
	`

	i, err := scanItem(q.QueryRow(ctx, query, periodID, employeeID))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayrollItem{}, payroll.ErrItemNotFound
		}
		return payroll.PayrollItem{}, fmt.Errorf("failed to get payroll item: %w", err)
	}

	return i, nil
}

func (r *payrollRepository) GetItemsByPeriod(ctx context.Context, periodID string) ([]payroll.PayrollItem, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + itemColumns + `
		FROM payroll_items i
		JOIN employees e ON e.id = i.employee_id
		WHERE i.period_id = $1
		ORDER BY e.employee_code
	`

	rows, err := q.Query(ctx, query, periodID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll items: %w", err)
	}
	defer rows.Close()

	var items []payroll.PayrollItem
	for rows.Next() {
		i, err := scanItem(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan payroll item: %w", err)
		}
		items = append(items, i)
	}

	return items, nil
}

func (r *payrollRepository) UpdateItemTotals(ctx context.Context, item payroll.PayrollItem) error {
	q := r.db.Querier(ctx)

	query := `
		UPDATE payroll_items
		SET working_days = $2, daily_rate = $3, basic_pay = $4,
			total_allowances = $5, total_deductions = $6, gross_pay = $7, net_pay = $8,
			status = $9, adjustment_note = $10, updated_at = NOW()
		WHERE id = $1
	`

	tag, err := q.Exec(ctx, query,
		item.ID, item.WorkingDays, item.DailyRate, item.BasicPay,
		item.TotalAllowances, item.TotalDeductions, item.GrossPay, item.NetPay,
		item.Status, item.AdjustmentNote,
	)
	if err != nil {
		return fmt.Errorf("failed to update payroll item totals: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrItemNotFound
	}

	return nil
}

func (r *payrollRepository) UpdateItemStatusByPeriod(ctx context.Context, periodID string, from, to payroll.ItemStatus) (int64, error) {
	q := r.db.Querier(ctx)

	query := `UPDATE payroll_items SET status = $3, updated_at = NOW() WHERE period_id = $1 AND status = $2`

	tag, err := q.Exec(ctx, query, periodID, from, to)
	if err != nil {
		return 0, fmt.Errorf("failed to update item statuses: %w", err)
	}

	return tag.RowsAffected(), nil
}

func (r *payrollRepository) CountItemsByStatus(ctx context.Context, periodID string, status payroll.ItemStatus) (int, error) {
	q := r.db.Querier(ctx)

	var count int
	err := q.QueryRow(ctx, `SELECT COUNT(*) FROM payroll_items WHERE period_id = $1 AND status = $2`, periodID, status).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count payroll items: %w", err)
	}

	return count, nil
}

// ========== LINES ==========

const lineColumns = `id, item_id, line_type, description, amount, is_override, calculation_basis, created_at`

// ReplaceLines swaps the full line set of an item. Recalculation always
// rewrites every line, so a delete-and-insert keeps the set canonical.
func (r *payrollRepository) ReplaceLines(ctx context.Context, itemID string, lines []payroll.PayrollItemLine) error {
	q := r.db.Querier(ctx)

	if _, err := q.Exec(ctx, `DELETE FROM payroll_item_lines WHERE item_id = $1`, itemID); err != nil {
		return fmt.Errorf("failed to clear payroll item lines: %w", err)
	}

	for _, line := range lines {
		_, err := q.Exec(ctx, `
			INSERT INTO payroll_item_lines (item_id, line_type, description, amount, is_override, calculation_basis)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, itemID, line.LineType, line.Description, line.Amount, line.IsOverride, line.CalculationBasis)
		if err != nil {
			return fmt.Errorf("failed to insert payroll item line: %w", err)
		}
	}

	return nil
}

func (r *payrollRepository) AppendLine(ctx context.Context, line payroll.PayrollItemLine) (payroll.PayrollItemLine, error) {
	q := r.db.Querier(ctx)

	query := `
		INSERT INTO payroll_item_lines (item_id, line_type, description, amount, is_override, calculation_basis)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING ` + lineColumns

	var l payroll.PayrollItemLine
	err := q.QueryRow(ctx, query,
		line.ItemID, line.LineType, line.Description, line.Amount, line.IsOverride, line.CalculationBasis,
	).Scan(&l.ID, &l.ItemID, &l.LineType, &l.Description, &l.Amount, &l.IsOverride, &l.CalculationBasis, &l.CreatedAt)
	if err != nil {
		return payroll.PayrollItemLine{}, fmt.Errorf("failed to append payroll item line: %w", err)
	}

	return l, nil
}

func (r *payrollRepository) GetLines(ctx context.Context, itemID string) ([]payroll.PayrollItemLine, error) {
	q := r.db.Querier(ctx)

	query := `SELECT ` + lineColumns + ` FROM payroll_item_lines WHERE item_id = $1 ORDER BY created_at, id`

	rows, err := q.Query(ctx, query, itemID)
	if err != nil {
		return nil, fmt.Errorf("failed to list payroll item lines: %w", err)
	}
	defer rows.Close()

	var lines []payroll.PayrollItemLine
	for rows.Next() {
		var l payroll.PayrollItemLine
		if err := rows.Scan(&l.ID, &l.ItemID, &l.LineType, &l.Description, &l.Amount, &l.IsOverride, &l.CalculationBasis, &l.CreatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan payroll item line: %w", err)
		}
		lines = append(lines, l)
	}

	return lines, nil
}
