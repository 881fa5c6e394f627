package response

import (
	"errors"
	"net/http"
	"strings"

	"github.com/lgu-hris/payroll-backend-go/internal/domain/benefits"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/employee"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/leave"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/payroll"
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/validator"
)

// HandleError maps domain errors to HTTP responses
func HandleError(w http.ResponseWriter, err error) {
	// Field-level validation failures
	var validationErrs validator.ValidationErrors
	if errors.As(err, &validationErrs) {
		ValidationError(w, validationErrs.ToMap())
		return
	}

	// Finalization blockers carry the offending employee ids
	var blocked *payroll.FinalizeBlockedError
	if errors.As(err, &blocked) {
		BadRequest(w, "Finalization blocked: "+strings.Join(blocked.EmployeeIDs(), ", "), finalizeIssueDetails(blocked))
		return
	}

	switch {
	// Payroll period errors
	case errors.Is(err, payroll.ErrPeriodNotFound):
		NotFound(w, "Payroll period not found")
	case errors.Is(err, payroll.ErrPeriodAlreadyExists):
		Conflict(w, "An open payroll period already exists for this year, month and period number")
	case errors.Is(err, payroll.ErrPeriodOverlaps):
		Conflict(w, "Payroll period dates overlap an existing period")
	case errors.Is(err, payroll.ErrPeriodNotEditable):
		BadRequest(w, "Payroll period is no longer editable", nil)
	case errors.Is(err, payroll.ErrPeriodNotCompleted):
		BadRequest(w, "Payroll period must be completed first", nil)
	case errors.Is(err, payroll.ErrPeriodAlreadyFinal):
		BadRequest(w, "Payroll period is already finalized", nil)
	case errors.Is(err, payroll.ErrPeriodHasPaidItems):
		BadRequest(w, "Payroll period has paid items and cannot be reopened", nil)

	// Payroll item errors
	case errors.Is(err, payroll.ErrItemNotFound):
		NotFound(w, "Payroll item not found")
	case errors.Is(err, payroll.ErrItemNotEditable):
		BadRequest(w, "Payroll item is no longer editable", nil)
	case errors.Is(err, payroll.ErrLineSumMismatch):
		// Data integrity failure, not a client mistake.
		InternalServerError(w, "Payroll item totals are inconsistent")

	// Component / override errors
	case errors.Is(err, payroll.ErrComponentNotFound):
		NotFound(w, "Pay component not found")
	case errors.Is(err, payroll.ErrComponentCodeExists):
		Conflict(w, "Pay component code already exists")
	case errors.Is(err, payroll.ErrOverrideNotFound):
		NotFound(w, "Employee override not found")

	// Employee errors
	case errors.Is(err, employee.ErrEmployeeNotFound):
		NotFound(w, "Employee not found")
	case errors.Is(err, employee.ErrEmployeeInactive):
		BadRequest(w, "Employee is not active", nil)

	// Benefit errors
	case errors.Is(err, benefits.ErrBenefitNotFound):
		NotFound(w, "Compensation benefit not found")
	case errors.Is(err, benefits.ErrBenefitAlreadyGranted):
		Conflict(w, "Benefit already granted for this employee and year")
	case errors.Is(err, benefits.ErrUnknownBenefitType):
		BadRequest(w, "Unknown benefit type", nil)
	case errors.Is(err, benefits.ErrTLBNotFound):
		NotFound(w, "Terminal leave claim not found")
	case errors.Is(err, benefits.ErrTLBAlreadyComputed):
		Conflict(w, "Terminal leave benefit already computed for this employee")
	case errors.Is(err, benefits.ErrTLBInvalidTransition):
		BadRequest(w, "Invalid terminal leave status transition", nil)

	// Leave ledger errors
	case errors.Is(err, leave.ErrLeaveTypeNotFound):
		NotFound(w, "Leave type not found")
	case errors.Is(err, leave.ErrBalanceNotFound):
		NotFound(w, "Leave balance not found")
	case errors.Is(err, leave.ErrBalancesExist):
		Conflict(w, "Leave balances already initialized for this employee and year")
	case errors.Is(err, leave.ErrInsufficientBalance):
		BadRequest(w, "Insufficient leave balance", nil)

	// Default
	default:
		InternalServerError(w, "An unexpected error occurred")
	}
}

func finalizeIssueDetails(blocked *payroll.FinalizeBlockedError) map[string]string {
	details := make(map[string]string, len(blocked.Issues))
	for _, issue := range blocked.Issues {
		details[issue.EmployeeID] = issue.Reason
	}
	return details
}
