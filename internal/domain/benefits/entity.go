package benefits

import (
	"time"

	"github.com/shopspring/decimal"
)

// Benefit type codes. Recurring types are granted at most once per
// (employee, code, year).
const (
	CodeThirteenthMonth   = "13TH_MONTH"
	CodeFourteenthMonth   = "14TH_MONTH"
	CodePBB               = "PBB"
	CodeLoyaltyAward      = "LOYALTY"
	CodeLeaveMonetization = "MONETIZATION"
	CodeTerminalLeave     = "TLB"
)

// CompensationBenefit - record of one paid benefit instance.
type CompensationBenefit struct {
	ID          string
	EmployeeID  string
	BenefitType string
	Amount      decimal.Decimal
	Year        int
	DatePaid    *time.Time
	Notes       *string
	ProcessedBy string
	CreatedAt   time.Time

	// Joined fields
	EmployeeName *string
}

// Eligibility is a normal result value; ineligible is not an error.
type Eligibility struct {
	Eligible bool   `json:"eligible"`
	Reason   string `json:"reason,omitempty"`
}

// Computation is the outcome of one benefit calculator run.
type Computation struct {
	Amount      decimal.Decimal `json:"amount"`
	Eligibility Eligibility     `json:"eligibility"`
	// NextEligibleYears is set by service-length benefits (loyalty award)
	// when the employee is not yet eligible for the next increment.
	NextEligibleYears *int `json:"next_eligible_years,omitempty"`
}

// Ineligible builds a zero-amount computation with a reason.
func Ineligible(reason string) Computation {
	return Computation{Amount: decimal.Zero, Eligibility: Eligibility{Eligible: false, Reason: reason}}
}

// Eligible builds a computation for an eligible employee.
func Eligible(amount decimal.Decimal) Computation {
	return Computation{Amount: amount.Round(2), Eligibility: Eligibility{Eligible: true}}
}

// TLBStatus enum
type TLBStatus string

const (
	TLBStatusComputed  TLBStatus = "computed"
	TLBStatusApproved  TLBStatus = "approved"
	TLBStatusPaid      TLBStatus = "paid"
	TLBStatusCancelled TLBStatus = "cancelled"
)

// TerminalLeaveBenefit - one-time lump sum for accumulated leave credits
// upon separation.
type TerminalLeaveBenefit struct {
	ID                   string
	EmployeeID           string
	TotalLeaveCredits    decimal.Decimal
	HighestMonthlySalary decimal.Decimal
	ConstantFactor       decimal.Decimal
	ClaimDate            time.Time
	SeparationDate       time.Time
	ComputedAmount       decimal.Decimal
	Status               TLBStatus
	CreatedBy            string
	CreatedAt            time.Time
	UpdatedAt            time.Time
}

// CanTransition reports whether the claim may move to the target status.
// Cancelled is terminal; paid is terminal.
func (t TerminalLeaveBenefit) CanTransition(to TLBStatus) bool {
	switch to {
	case TLBStatusApproved:
		return t.Status == TLBStatusComputed
	case TLBStatusPaid:
		return t.Status == TLBStatusApproved
	case TLBStatusCancelled:
		return t.Status == TLBStatusComputed || t.Status == TLBStatusApproved
	}
	return false
}

// ComputeTerminalLeaveAmount applies the statutory formula:
// credits x highest monthly salary x constant factor.
func ComputeTerminalLeaveAmount(credits, highestSalary, factor decimal.Decimal) decimal.Decimal {
	return credits.Mul(highestSalary).Mul(factor).Round(2)
}
