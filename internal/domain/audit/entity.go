package audit

import "time"

// Entry - one audit log row. Every state transition and manual
// adjustment in the engine emits one.
type Entry struct {
	ID        string
	UserID    string
	Action    string
	TableName string
	RecordID  string
	OldValues map[string]interface{}
	NewValues map[string]interface{}
	IPAddress string
	UserAgent string
	CreatedAt time.Time
}

// Action names used by the payroll engine.
const (
	ActionPeriodCreated      = "period.created"
	ActionPeriodFinalized    = "period.finalized"
	ActionPeriodPaid         = "period.paid"
	ActionPeriodReopened     = "period.reopened"
	ActionItemProcessed      = "item.processed"
	ActionWorkingDaysChanged = "item.working_days_adjusted"
	ActionAdjustmentAdded    = "item.adjustment_added"
	ActionBenefitGranted     = "benefit.granted"
	ActionTLBComputed        = "tlb.computed"
	ActionTLBStatusChanged   = "tlb.status_changed"
	ActionBalancesSeeded     = "leave.balances_initialized"
	ActionAccrualPosted      = "leave.accrual_posted"
)
