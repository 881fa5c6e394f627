package payroll

import (
	"context"
	"testing"

	"github.com/go-chi/jwtauth/v5"
	"github.com/lestrrat-go/jwx/v2/jwt"
	"github.com/lgu-hris/payroll-backend-go/internal/config"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/employee"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testPayrollConfig() config.PayrollConfig {
	return config.PayrollConfig{
		StandardWorkingDays: 22,
		MonetizableDaysCap:  29,
		TerminalLeaveFactor: d("0.0481927"),
	}
}

func authedContext(t *testing.T) context.Context {
	t.Helper()
	tok, err := jwt.NewBuilder().Claim("user_id", "user-1").Build()
	require.NoError(t, err)
	return jwtauth.NewContext(context.Background(), tok, nil)
}

type serviceFixture struct {
	svc           payroll.PayrollService
	payrollRepo   *memPayrollRepo
	employeeRepo  *memEmployeeRepo
	auditRepo     *memAuditRepo
	notifications *memNotificationRepo
}

func newServiceFixture(employees ...employee.Employee) *serviceFixture {
	payrollRepo := newMemPayrollRepo()
	employeeRepo := newMemEmployeeRepo(employees...)
	auditRepo := &memAuditRepo{}
	notifications := &memNotificationRepo{}

	svc := NewPayrollService(passthroughTx{}, payrollRepo, employeeRepo, auditRepo, notifications, testPayrollConfig())

	return &serviceFixture{
		svc:           svc,
		payrollRepo:   payrollRepo,
		employeeRepo:  employeeRepo,
		auditRepo:     auditRepo,
		notifications: notifications,
	}
}

func testEmployees() []employee.Employee {
	emp1 := testEmployee()
	emp2 := testEmployee()
	emp2.ID = "emp-2"
	emp2.EmployeeCode = "EMP-0002"
	emp2.MonthlySalary = nil
	emp2.DailyRate = decp("1000")
	emp3 := testEmployee()
	emp3.ID = "emp-3"
	emp3.EmployeeCode = "EMP-0003"
	return []employee.Employee{emp1, emp2, emp3}
}

func createTestPeriod(t *testing.T, ctx context.Context, svc payroll.PayrollService) payroll.PeriodResponse {
	t.Helper()
	period, err := svc.CreatePeriod(ctx, payroll.CreatePeriodRequest{
		Year: 2025, Month: 1, PeriodNumber: 1,
		StartDate: "2025-01-01", EndDate: "2025-01-15", PayDate: "2025-01-20",
	})
	require.NoError(t, err)
	return period
}

func intp(v int) *int { return &v }

func TestPayrollService_FullLifecycle(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t)
	f := newServiceFixture(testEmployees()...)

	period := createTestPeriod(t, ctx, f.svc)
	assert.Equal(t, "draft", period.Status)

	// Process three employees with mixed working days.
	result, err := f.svc.BulkProcess(ctx, period.ID, payroll.BulkProcessRequest{
		Employees: []payroll.EmployeeWorkingDays{
			{EmployeeID: "emp-1", WorkingDays: intp(22)},
			{EmployeeID: "emp-2", WorkingDays: intp(10)},
			{EmployeeID: "emp-3", WorkingDays: intp(0)},
		},
	})
	require.NoError(t, err)
	assert.Equal(t, 3, result.ProcessedCount)
	assert.Equal(t, 0, result.FailedCount)
	require.Len(t, result.Items, 3)

	byEmployee := map[string]payroll.ItemResponse{}
	for _, item := range result.Items {
		byEmployee[item.EmployeeID] = item
	}
	assert.True(t, d("22000").Equal(byEmployee["emp-1"].BasicPay))
	assert.True(t, d("10000").Equal(byEmployee["emp-2"].BasicPay))
	assert.True(t, byEmployee["emp-3"].BasicPay.IsZero())
	for _, item := range result.Items {
		assert.Equal(t, "computed", item.Status)
	}

	// Processing moved the period out of draft.
	got, err := f.svc.GetPeriod(ctx, period.ID)
	require.NoError(t, err)
	assert.Equal(t, "processing", got.Status)

	// Finalize: every item flips to finalized, period to completed.
	require.NoError(t, err)
	err = f.svc.FinalizePeriod(ctx, period.ID)
	require.NoError(t, err)

	items, err := f.svc.ListItems(ctx, period.ID)
	require.NoError(t, err)
	for _, item := range items {
		assert.Equal(t, "finalized", item.Status)
	}
	got, _ = f.svc.GetPeriod(ctx, period.ID)
	assert.Equal(t, "completed", got.Status)
	assert.Len(t, f.notifications.notifications, 3)

	// Pay out.
	err = f.svc.MarkPeriodAsPaid(ctx, period.ID)
	require.NoError(t, err)

	items, _ = f.svc.ListItems(ctx, period.ID)
	for _, item := range items {
		assert.Equal(t, "paid", item.Status)
	}
	got, _ = f.svc.GetPeriod(ctx, period.ID)
	assert.Equal(t, "paid", got.Status)
	assert.Len(t, f.notifications.notifications, 6)

	// Reopen is off the table once paid.
	err = f.svc.ReopenPeriod(ctx, period.ID)
	assert.Error(t, err)
}

func TestPayrollService_ReopenBeforePay(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t)
	f := newServiceFixture(testEmployees()...)

	period := createTestPeriod(t, ctx, f.svc)
	_, err := f.svc.BulkProcess(ctx, period.ID, payroll.BulkProcessRequest{
		Employees: []payroll.EmployeeWorkingDays{{EmployeeID: "emp-1"}},
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.FinalizePeriod(ctx, period.ID))

	require.NoError(t, f.svc.ReopenPeriod(ctx, period.ID))

	got, err := f.svc.GetPeriod(ctx, period.ID)
	require.NoError(t, err)
	assert.Equal(t, "processing", got.Status)

	items, _ := f.svc.ListItems(ctx, period.ID)
	require.Len(t, items, 1)
	assert.Equal(t, "computed", items[0].Status)
}

func TestPayrollService_FinalizeBlockedByNegativeNet(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t)
	f := newServiceFixture(testEmployees()...)

	// A fixed deduction larger than a small period's pay drives net
	// negative for the zero-days employee only when pay is positive, so
	// target the 10-day employee with an oversized deduction.
	_, err := f.svc.CreateComponent(ctx, payroll.CreateComponentRequest{
		Code: "LOAN", Name: "Salary Loan", Kind: "deduction", Method: "fixed", Amount: d("15000"),
	})
	require.NoError(t, err)

	period := createTestPeriod(t, ctx, f.svc)
	_, err = f.svc.BulkProcess(ctx, period.ID, payroll.BulkProcessRequest{
		Employees: []payroll.EmployeeWorkingDays{
			{EmployeeID: "emp-1", WorkingDays: intp(22)}, // 22000 - 15000, still positive
			{EmployeeID: "emp-2", WorkingDays: intp(10)}, // 10000 - 15000, negative
		},
	})
	require.NoError(t, err)

	err = f.svc.FinalizePeriod(ctx, period.ID)
	require.Error(t, err)

	var blocked *payroll.FinalizeBlockedError
	require.ErrorAs(t, err, &blocked)
	assert.Equal(t, []string{"emp-2"}, blocked.EmployeeIDs())

	// Nothing moved: the valid item stays computed, the period editable.
	items, _ := f.svc.ListItems(ctx, period.ID)
	for _, item := range items {
		assert.Equal(t, "computed", item.Status)
	}
}

func TestPayrollService_AddAdjustmentReSumsTotals(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t)
	f := newServiceFixture(testEmployees()...)

	period := createTestPeriod(t, ctx, f.svc)
	result, err := f.svc.BulkProcess(ctx, period.ID, payroll.BulkProcessRequest{
		Employees: []payroll.EmployeeWorkingDays{{EmployeeID: "emp-1", WorkingDays: intp(22)}},
	})
	require.NoError(t, err)
	itemID := result.Items[0].ID

	updated, err := f.svc.AddAdjustment(ctx, itemID, payroll.AddAdjustmentRequest{
		Description: "Overpayment recovery",
		Amount:      d("-500"),
	})
	require.NoError(t, err)

	assert.True(t, d("500").Equal(updated.TotalDeductions))
	assert.True(t, d("21500").Equal(updated.NetPay))
	assert.True(t, updated.NetPay.Equal(updated.GrossPay.Sub(updated.TotalDeductions)))

	// The adjustment survives recalculation.
	recalced, err := f.svc.Recalculate(ctx, itemID)
	require.NoError(t, err)
	assert.True(t, updated.NetPay.Equal(recalced.NetPay))
}

func TestPayrollService_AdjustWorkingDaysRecomputes(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t)
	f := newServiceFixture(testEmployees()...)

	period := createTestPeriod(t, ctx, f.svc)
	result, err := f.svc.BulkProcess(ctx, period.ID, payroll.BulkProcessRequest{
		Employees: []payroll.EmployeeWorkingDays{{EmployeeID: "emp-1", WorkingDays: intp(22)}},
	})
	require.NoError(t, err)
	itemID := result.Items[0].ID

	updated, err := f.svc.AdjustWorkingDays(ctx, itemID, payroll.AdjustWorkingDaysRequest{
		WorkingDays: 11,
		Reason:      "unpaid leave",
	})
	require.NoError(t, err)

	assert.Equal(t, 11, updated.WorkingDays)
	assert.True(t, d("11000").Equal(updated.BasicPay))
	require.NotNil(t, updated.AdjustmentNote)
	assert.Equal(t, "unpaid leave", *updated.AdjustmentNote)
}

func TestPayrollService_EditsRejectedAfterFinalize(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t)
	f := newServiceFixture(testEmployees()...)

	period := createTestPeriod(t, ctx, f.svc)
	result, err := f.svc.BulkProcess(ctx, period.ID, payroll.BulkProcessRequest{
		Employees: []payroll.EmployeeWorkingDays{{EmployeeID: "emp-1"}},
	})
	require.NoError(t, err)
	require.NoError(t, f.svc.FinalizePeriod(ctx, period.ID))

	_, err = f.svc.AddAdjustment(ctx, result.Items[0].ID, payroll.AddAdjustmentRequest{
		Description: "late adjustment", Amount: d("100"),
	})
	assert.ErrorIs(t, err, payroll.ErrPeriodNotEditable)

	_, err = f.svc.BulkProcess(ctx, period.ID, payroll.BulkProcessRequest{
		Employees: []payroll.EmployeeWorkingDays{{EmployeeID: "emp-2"}},
	})
	assert.ErrorIs(t, err, payroll.ErrPeriodNotEditable)
}

func TestPayrollService_DuplicateOpenPeriodRejected(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t)
	f := newServiceFixture(testEmployees()...)

	createTestPeriod(t, ctx, f.svc)

	_, err := f.svc.CreatePeriod(ctx, payroll.CreatePeriodRequest{
		Year: 2025, Month: 1, PeriodNumber: 1,
		StartDate: "2025-01-01", EndDate: "2025-01-15", PayDate: "2025-01-20",
	})
	assert.Error(t, err)
}

func TestPayrollService_BulkProcessPartialFailure(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t)

	employees := testEmployees()
	employees[1].EmploymentStatus = employee.EmploymentStatusSeparated
	f := newServiceFixture(employees...)

	period := createTestPeriod(t, ctx, f.svc)
	result, err := f.svc.BulkProcess(ctx, period.ID, payroll.BulkProcessRequest{
		Employees: []payroll.EmployeeWorkingDays{
			{EmployeeID: "emp-1"},
			{EmployeeID: "emp-2"},
			{EmployeeID: "emp-missing"},
		},
	})
	require.NoError(t, err)

	assert.Equal(t, 1, result.ProcessedCount)
	assert.Equal(t, 2, result.FailedCount)
	require.Len(t, result.Failures, 2)
}

func TestPayrollService_PayslipBreakdown(t *testing.T) {
	t.Parallel()
	ctx := authedContext(t)
	f := newServiceFixture(testEmployees()...)

	_, err := f.svc.CreateComponent(ctx, payroll.CreateComponentRequest{
		Code: "TRANSPORT", Name: "Transport", Kind: "allowance", Method: "fixed", Amount: d("2000"),
	})
	require.NoError(t, err)

	period := createTestPeriod(t, ctx, f.svc)
	result, err := f.svc.BulkProcess(ctx, period.ID, payroll.BulkProcessRequest{
		Employees: []payroll.EmployeeWorkingDays{{EmployeeID: "emp-1", WorkingDays: intp(22)}},
	})
	require.NoError(t, err)

	breakdown, err := f.svc.GetPayslipBreakdown(ctx, result.Items[0].ID)
	require.NoError(t, err)

	assert.Equal(t, "Maria Santos", breakdown.Employee.FullName)
	assert.Equal(t, 22, breakdown.Calculation.WorkingDays)
	assert.True(t, d("24000").Equal(breakdown.Calculation.NetPay))
	require.Len(t, breakdown.LineItems, 1)
	assert.Equal(t, "Transport", breakdown.LineItems[0].Description)
}
