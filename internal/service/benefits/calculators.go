package benefits

import (
	"context"
	"fmt"

	"github.com/lgu-hris/payroll-backend-go/internal/config"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/benefits"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/employee"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/leave"
	"github.com/shopspring/decimal"
)

const (
	loyaltyBaseYears     = 10
	loyaltyIncrementSpan = 5
	minPBBServiceMonths  = 4
)

var (
	loyaltyBaseAmount      = decimal.NewFromInt(10000)
	loyaltyIncrementAmount = decimal.NewFromInt(5000)
	twelve                 = decimal.NewFromInt(12)
)

// Calculator computes one benefit type for one employee and year.
// Ineligibility is a result value, never an error.
type Calculator interface {
	Compute(ctx context.Context, emp employee.Employee, year int) (benefits.Computation, error)
}

// Registry maps benefit type codes to their calculators. Adding a
// benefit type is a registration, not a switch edit.
type Registry struct {
	calculators map[string]Calculator
}

func NewRegistry(benefitRepo benefits.BenefitRepository, leaveRepo leave.LeaveRepository, cfg config.PayrollConfig) *Registry {
	yearEndPay := yearEndPayCalculator{benefitRepo: benefitRepo}
	return &Registry{calculators: map[string]Calculator{
		benefits.CodeThirteenthMonth:   yearEndPay,
		benefits.CodeFourteenthMonth:   yearEndPay,
		benefits.CodePBB:               pbbCalculator{standardWorkingDays: cfg.StandardWorkingDays},
		benefits.CodeLoyaltyAward:      loyaltyCalculator{},
		benefits.CodeLeaveMonetization: monetizationCalculator{leaveRepo: leaveRepo, cfg: cfg},
	}}
}

func (r *Registry) Get(code string) (Calculator, bool) {
	c, ok := r.calculators[code]
	return c, ok
}

// yearEndPayCalculator covers both 13th and 14th month pay: one twelfth
// of the basic pay actually paid out during the year.
type yearEndPayCalculator struct {
	benefitRepo benefits.BenefitRepository
}

func (c yearEndPayCalculator) Compute(ctx context.Context, emp employee.Employee, year int) (benefits.Computation, error) {
	total, err := c.benefitRepo.SumBasicPayPaidInYear(ctx, emp.ID, year)
	if err != nil {
		return benefits.Computation{}, err
	}
	if total.IsZero() {
		return benefits.Ineligible(fmt.Sprintf("no basic pay paid in %d", year)), nil
	}
	return benefits.Eligible(total.Div(twelve)), nil
}

// pbbCalculator grants the performance-based bonus to employees with at
// least four service months in the target year. The amount is one
// month's salary.
type pbbCalculator struct {
	standardWorkingDays int
}

func (c pbbCalculator) Compute(_ context.Context, emp employee.Employee, year int) (benefits.Computation, error) {
	months := serviceMonthsInYear(emp.AppointmentDate, year)
	if months < minPBBServiceMonths {
		return benefits.Ineligible(fmt.Sprintf("only %d service month(s) in %d, minimum is %d", months, year, minPBBServiceMonths)), nil
	}
	return benefits.Eligible(emp.EffectiveMonthlySalary(c.standardWorkingDays)), nil
}

// loyaltyCalculator awards 10,000 at ten years of service and 5,000 per
// additional full five-year increment. An employee at 16 years still
// holds the 15-year award.
type loyaltyCalculator struct{}

func (c loyaltyCalculator) Compute(_ context.Context, emp employee.Employee, year int) (benefits.Computation, error) {
	years := yearsOfService(emp.AppointmentDate, yearEnd(year))

	if years < loyaltyBaseYears {
		next := loyaltyBaseYears - years
		comp := benefits.Ineligible(fmt.Sprintf("%d year(s) of service, eligible at %d", years, loyaltyBaseYears))
		comp.NextEligibleYears = &next
		return comp, nil
	}

	increments := (years - loyaltyBaseYears) / loyaltyIncrementSpan
	amount := loyaltyBaseAmount.Add(loyaltyIncrementAmount.Mul(decimal.NewFromInt(int64(increments))))

	next := loyaltyIncrementSpan - ((years - loyaltyBaseYears) % loyaltyIncrementSpan)
	comp := benefits.Eligible(amount)
	comp.NextEligibleYears = &next
	return comp, nil
}

// monetizationCalculator converts unused monetizable leave credits to
// cash, capped per leave type.
type monetizationCalculator struct {
	leaveRepo leave.LeaveRepository
	cfg       config.PayrollConfig
}

func (c monetizationCalculator) Compute(ctx context.Context, emp employee.Employee, year int) (benefits.Computation, error) {
	balances, err := c.leaveRepo.GetBalancesByEmployeeYear(ctx, emp.ID, year)
	if err != nil {
		return benefits.Computation{}, err
	}

	dailyRate := emp.EffectiveDailyRate(c.cfg.StandardWorkingDays)
	plan := buildMonetizationPlan(balances, dailyRate, c.cfg.MonetizableDaysCap)
	if len(plan.Debits) == 0 {
		return benefits.Ineligible("no monetizable leave credits"), nil
	}
	return benefits.Eligible(plan.Amount), nil
}

// monetizationDebit is one leave balance reduction inside a
// monetization grant.
type monetizationDebit struct {
	BalanceID string
	Days      decimal.Decimal
}

type monetizationPlan struct {
	Amount decimal.Decimal
	Debits []monetizationDebit
}

// buildMonetizationPlan selects min(balance, cap) days from every
// monetizable leave type with a positive balance.
func buildMonetizationPlan(balances []leave.LeaveBalance, dailyRate decimal.Decimal, capDays int) monetizationPlan {
	capDecimal := decimal.NewFromInt(int64(capDays))
	plan := monetizationPlan{Amount: decimal.Zero}

	totalDays := decimal.Zero
	for _, b := range balances {
		if b.IsMonetizable == nil || !*b.IsMonetizable {
			continue
		}
		if !b.CurrentBalance.IsPositive() {
			continue
		}
		days := decimal.Min(b.CurrentBalance, capDecimal)
		totalDays = totalDays.Add(days)
		plan.Debits = append(plan.Debits, monetizationDebit{BalanceID: b.ID, Days: days})
	}

	plan.Amount = totalDays.Mul(dailyRate).Round(2)
	return plan
}
