package leave

import "errors"

var (
	ErrLeaveTypeNotFound   = errors.New("leave type not found")
	ErrBalanceNotFound     = errors.New("leave balance not found")
	ErrBalancesExist       = errors.New("leave balances already initialized for this employee and year")
	ErrInsufficientBalance = errors.New("insufficient leave balance")
)
