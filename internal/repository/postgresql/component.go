package postgresql

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/payroll"
)

const componentColumns = `id, code, name, kind, method, amount, frequency, is_prorated, is_taxable, is_mandatory, is_active, created_at, updated_at`

func scanComponent(row pgx.Row) (payroll.PayComponent, error) {
	var c payroll.PayComponent
	err := row.Scan(
		&c.ID, &c.Code, &c.Name, &c.Kind, &c.Method, &c.Amount, &c.Frequency,
		&c.IsProrated, &c.IsTaxable, &c.IsMandatory, &c.IsActive, &c.CreatedAt, &c.UpdatedAt,
	)
	return c, err
}

func (r *payrollRepository) CreateComponent(ctx context.Context, component payroll.PayComponent) (payroll.PayComponent, error) {
	q := r.db.Querier(ctx)

	query := `
		INSERT INTO pay_components (code, name, kind, method, amount, frequency, is_prorated, is_taxable, is_mandatory, is_active)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
		RETURNING ` + componentColumns

	c, err := scanComponent(q.QueryRow(ctx, query,
		component.Code, component.Name, component.Kind, component.Method, component.Amount,
		component.Frequency, component.IsProrated, component.IsTaxable, component.IsMandatory, component.IsActive,
	))
	if err != nil {
		if isUniqueViolation(err, "uk_pay_component_code") {
			return payroll.PayComponent{}, payroll.ErrComponentCodeExists
		}
		return payroll.PayComponent{}, fmt.Errorf("failed to create pay component: %w", err)
	}

	return c, nil
}

func (r *payrollRepository) GetComponentByID(ctx context.Context, id string) (payroll.PayComponent, error) {
	q := r.db.Querier(ctx)

	query := `SELECT ` + componentColumns + ` FROM pay_components WHERE id = $1`

	c, err := scanComponent(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.PayComponent{}, payroll.ErrComponentNotFound
		}
		return payroll.PayComponent{}, fmt.Errorf("failed to get pay component: %w", err)
	}

	return c, nil
}

func (r *payrollRepository) GetActiveComponents(ctx context.Context) ([]payroll.PayComponent, error) {
	q := r.db.Querier(ctx)

	query := `SELECT ` + componentColumns + ` FROM pay_components WHERE is_active = true ORDER BY kind, code`

	rows, err := q.Query(ctx, query)
	if err != nil {
		return nil, fmt.Errorf("failed to list pay components: %w", err)
	}
	defer rows.Close()

	var components []payroll.PayComponent
	for rows.Next() {
		c, err := scanComponent(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan pay component: %w", err)
		}
		components = append(components, c)
	}

	return components, nil
}

func (r *payrollRepository) UpdateComponent(ctx context.Context, req payroll.UpdateComponentRequest) error {
	q := r.db.Querier(ctx)

	setParts := []string{"updated_at = NOW()"}
	args := []interface{}{req.ID}
	argIdx := 2

	if req.Name != nil {
		setParts = append(setParts, fmt.Sprintf("name = $%d", argIdx))
		args = append(args, *req.Name)
		argIdx++
	}
	if req.Amount != nil {
		setParts = append(setParts, fmt.Sprintf("amount = $%d", argIdx))
		args = append(args, *req.Amount)
		argIdx++
	}
	if req.IsActive != nil {
		setParts = append(setParts, fmt.Sprintf("is_active = $%d", argIdx))
		args = append(args, *req.IsActive)
		argIdx++
	}

	query := "UPDATE pay_components SET "
	for i, part := range setParts {
		if i > 0 {
			query += ", "
		}
		query += part
	}
	query += " WHERE id = $1"

	tag, err := q.Exec(ctx, query, args...)
	if err != nil {
		return fmt.Errorf("failed to update pay component: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrComponentNotFound
	}

	return nil
}

// ========== OVERRIDES ==========

const overrideColumns = `o.id, o.employee_id, o.component_id, o.amount, o.effective_date, o.end_date,
	o.created_by, o.created_at, o.updated_at, c.code, c.kind`

func scanOverride(row pgx.Row) (payroll.EmployeeOverride, error) {
	var o payroll.EmployeeOverride
	err := row.Scan(
		&o.ID, &o.EmployeeID, &o.ComponentID, &o.Amount, &o.EffectiveDate, &o.EndDate,
		&o.CreatedBy, &o.CreatedAt, &o.UpdatedAt, &o.ComponentCode, &o.ComponentKind,
	)
	return o, err
}

func (r *payrollRepository) CreateOverride(ctx context.Context, override payroll.EmployeeOverride) (payroll.EmployeeOverride, error) {
	q := r.db.Querier(ctx)

	query := `
		INSERT INTO employee_overrides (employee_id, component_id, amount, effective_date, end_date, created_by)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING id
	`

	var id string
	err := q.QueryRow(ctx, query,
		override.EmployeeID, override.ComponentID, override.Amount,
		override.EffectiveDate, override.EndDate, override.CreatedBy,
	).Scan(&id)
	if err != nil {
		return payroll.EmployeeOverride{}, fmt.Errorf("failed to create employee override: %w", err)
	}

	return r.getOverrideByID(ctx, id)
}

func (r *payrollRepository) getOverrideByID(ctx context.Context, id string) (payroll.EmployeeOverride, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + overrideColumns + `
		FROM employee_overrides o
		JOIN pay_components c ON c.id = o.component_id
		WHERE o.id = $1
	`

	o, err := scanOverride(q.QueryRow(ctx, query, id))
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return payroll.EmployeeOverride{}, payroll.ErrOverrideNotFound
		}
		return payroll.EmployeeOverride{}, fmt.Errorf("failed to get employee override: %w", err)
	}

	return o, nil
}

func (r *payrollRepository) GetOverridesForEmployee(ctx context.Context, employeeID string) ([]payroll.EmployeeOverride, error) {
	q := r.db.Querier(ctx)

	query := `
		SELECT ` + overrideColumns + `
		FROM employee_overrides o
		JOIN pay_components c ON c.id = o.component_id
		WHERE o.employee_id = $1
		ORDER BY o.effective_date DESC
	`

	rows, err := q.Query(ctx, query, employeeID)
	if err != nil {
		return nil, fmt.Errorf("failed to list employee overrides: %w", err)
	}
	defer rows.Close()

	var overrides []payroll.EmployeeOverride
	for rows.Next() {
		o, err := scanOverride(rows)
		if err != nil {
			return nil, fmt.Errorf("failed to scan employee override: %w", err)
		}
		overrides = append(overrides, o)
	}

	return overrides, nil
}

func (r *payrollRepository) EndOverride(ctx context.Context, id string, endDate time.Time) error {
	q := r.db.Querier(ctx)

	query := `UPDATE employee_overrides SET end_date = $2, updated_at = NOW() WHERE id = $1`

	tag, err := q.Exec(ctx, query, id, endDate)
	if err != nil {
		return fmt.Errorf("failed to end employee override: %w", err)
	}
	if tag.RowsAffected() == 0 {
		return payroll.ErrOverrideNotFound
	}

	return nil
}
