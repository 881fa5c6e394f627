package payroll

import (
	"errors"
	"fmt"
	"strings"
)

var (
	ErrPeriodNotFound      = errors.New("payroll period not found")
	ErrPeriodAlreadyExists = errors.New("an open payroll period already exists for this year, month and period number")
	ErrPeriodNotEditable   = errors.New("payroll period is no longer editable")
	ErrPeriodNotCompleted  = errors.New("payroll period must be completed first")
	ErrPeriodAlreadyFinal  = errors.New("payroll period is already finalized")
	ErrPeriodHasPaidItems  = errors.New("payroll period has paid items and cannot be reopened")
	ErrPeriodOverlaps      = errors.New("payroll period dates overlap an existing period")

	ErrItemNotFound    = errors.New("payroll item not found")
	ErrItemNotEditable = errors.New("payroll item is no longer editable")

	ErrComponentNotFound   = errors.New("pay component not found")
	ErrComponentCodeExists = errors.New("pay component code already exists")
	ErrOverrideNotFound    = errors.New("employee override not found")

	// ErrLineSumMismatch indicates stored totals diverged from the line
	// set. This is a data-integrity bug, never a user error.
	ErrLineSumMismatch = errors.New("payroll item totals do not match its line sum")
)

// ItemIssue identifies one payroll item blocking finalization.
type ItemIssue struct {
	ItemID     string `json:"item_id"`
	EmployeeID string `json:"employee_id"`
	Reason     string `json:"reason"`
}

// FinalizeBlockedError collects every item that failed finalization
// validation, not just the first.
type FinalizeBlockedError struct {
	Issues []ItemIssue
}

func (e *FinalizeBlockedError) Error() string {
	ids := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		ids = append(ids, issue.EmployeeID)
	}
	return fmt.Sprintf("finalization blocked by %d item(s), employees: %s", len(e.Issues), strings.Join(ids, ", "))
}

// EmployeeIDs returns the offending employee ids in issue order.
func (e *FinalizeBlockedError) EmployeeIDs() []string {
	ids := make([]string, 0, len(e.Issues))
	for _, issue := range e.Issues {
		ids = append(ids, issue.EmployeeID)
	}
	return ids
}
