package benefits

import (
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/validator"
	"github.com/shopspring/decimal"
)

// ========== COMPUTE / GRANT DTOs ==========

type ComputeRequest struct {
	EmployeeID  string `json:"employee_id"`
	BenefitType string `json:"benefit_type"`
	Year        int    `json:"year"`
}

func (r *ComputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	if validator.IsEmpty(r.BenefitType) {
		errs = append(errs, validator.ValidationError{Field: "benefit_type", Message: "is required"})
	}
	if r.Year < 2000 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2000 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type ComputeResponse struct {
	EmployeeID  string      `json:"employee_id"`
	BenefitType string      `json:"benefit_type"`
	Year        int         `json:"year"`
	Computation Computation `json:"computation"`
}

type GrantRequest struct {
	EmployeeID  string  `json:"employee_id"`
	BenefitType string  `json:"benefit_type"`
	Year        int     `json:"year"`
	Notes       *string `json:"notes,omitempty"`
}

func (r *GrantRequest) Validate() error {
	cr := ComputeRequest{EmployeeID: r.EmployeeID, BenefitType: r.BenefitType, Year: r.Year}
	return cr.Validate()
}

type BenefitResponse struct {
	ID           string          `json:"id"`
	EmployeeID   string          `json:"employee_id"`
	EmployeeName string          `json:"employee_name,omitempty"`
	BenefitType  string          `json:"benefit_type"`
	Amount       decimal.Decimal `json:"amount"`
	Year         int             `json:"year"`
	DatePaid     *string         `json:"date_paid,omitempty"`
	Notes        *string         `json:"notes,omitempty"`
	ProcessedBy  string          `json:"processed_by"`
}

// ========== BATCH DTOs ==========

type BatchComputeRequest struct {
	BenefitType string   `json:"benefit_type"`
	Year        int      `json:"year"`
	EmployeeIDs []string `json:"employee_ids,omitempty"` // empty = all active
}

func (r *BatchComputeRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.BenefitType) {
		errs = append(errs, validator.ValidationError{Field: "benefit_type", Message: "is required"})
	}
	if r.Year < 2000 {
		errs = append(errs, validator.ValidationError{Field: "year", Message: "must be 2000 or later"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type BatchComputeFailure struct {
	EmployeeID string `json:"employee_id"`
	Message    string `json:"message"`
}

type BatchComputeResult struct {
	Computed []ComputeResponse     `json:"computed"`
	Failures []BatchComputeFailure `json:"failures,omitempty"`
}

// ========== TLB DTOs ==========

type ComputeTLBRequest struct {
	EmployeeID     string `json:"employee_id"`
	ClaimDate      string `json:"claim_date"`
	SeparationDate string `json:"separation_date"`
}

func (r *ComputeTLBRequest) Validate() error {
	var errs validator.ValidationErrors

	if r.EmployeeID == "" {
		errs = append(errs, validator.ValidationError{Field: "employee_id", Message: "is required"})
	}
	claim, claimOK := validator.IsValidDate(r.ClaimDate)
	if !claimOK {
		errs = append(errs, validator.ValidationError{Field: "claim_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	separation, sepOK := validator.IsValidDate(r.SeparationDate)
	if !sepOK {
		errs = append(errs, validator.ValidationError{Field: "separation_date", Message: "must be a valid date (YYYY-MM-DD)"})
	}
	if claimOK && sepOK && claim.Before(separation) {
		errs = append(errs, validator.ValidationError{Field: "claim_date", Message: "must not be before separation_date"})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type TLBResponse struct {
	ID                   string          `json:"id"`
	EmployeeID           string          `json:"employee_id"`
	TotalLeaveCredits    decimal.Decimal `json:"total_leave_credits"`
	HighestMonthlySalary decimal.Decimal `json:"highest_monthly_salary"`
	ConstantFactor       decimal.Decimal `json:"constant_factor"`
	ClaimDate            string          `json:"claim_date"`
	SeparationDate       string          `json:"separation_date"`
	ComputedAmount       decimal.Decimal `json:"computed_amount"`
	Status               string          `json:"status"`
}
