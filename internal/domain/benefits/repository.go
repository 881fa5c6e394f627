package benefits

import (
	"context"

	"github.com/shopspring/decimal"
)

// BenefitRepository defines data access for compensation benefit records
// and terminal leave claims. Duplicate protection for recurring benefits
// is backed by a unique index on (employee_id, benefit_type, year); the
// implementation maps that violation to ErrBenefitAlreadyGranted.
type BenefitRepository interface {
	CreateBenefit(ctx context.Context, benefit CompensationBenefit) (CompensationBenefit, error)
	GetBenefit(ctx context.Context, employeeID, benefitType string, year int) (CompensationBenefit, error)
	ListBenefitsByEmployee(ctx context.Context, employeeID string) ([]CompensationBenefit, error)
	ListBenefitsByTypeYear(ctx context.Context, benefitType string, year int) ([]CompensationBenefit, error)

	// TLB claims. One live (non-cancelled) claim per employee.
	CreateTLB(ctx context.Context, claim TerminalLeaveBenefit) (TerminalLeaveBenefit, error)
	GetTLBByID(ctx context.Context, id string) (TerminalLeaveBenefit, error)
	GetTLBByIDForUpdate(ctx context.Context, id string) (TerminalLeaveBenefit, error)
	GetLiveTLBByEmployee(ctx context.Context, employeeID string) (TerminalLeaveBenefit, error)
	UpdateTLBStatus(ctx context.Context, id string, from, to TLBStatus) error

	// SumBasicPayPaidInYear totals basic pay across the employee's paid
	// payroll items for the year. Feeds the 13th/14th month calculators.
	SumBasicPayPaidInYear(ctx context.Context, employeeID string, year int) (decimal.Decimal, error)
}
