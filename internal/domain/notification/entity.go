package notification

import "time"

// Type enum
type Type string

const (
	TypePayrollFinalized Type = "payroll_finalized"
	TypePayrollPaid      Type = "payroll_paid"
)

// Notification - event row consumed by the separate notification
// delivery service.
type Notification struct {
	ID         string
	EmployeeID string
	Type       Type
	Title      string
	Message    string
	RelatedID  string // payroll item id
	IsRead     bool
	CreatedAt  time.Time
}
