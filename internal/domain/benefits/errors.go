package benefits

import "errors"

var (
	ErrBenefitNotFound = errors.New("compensation benefit not found")
	// ErrBenefitAlreadyGranted fires when a recurring benefit already has
	// a record for the same employee, type and year.
	ErrBenefitAlreadyGranted = errors.New("benefit already granted for this employee and year")
	ErrUnknownBenefitType    = errors.New("unknown benefit type")

	ErrTLBNotFound          = errors.New("terminal leave claim not found")
	ErrTLBAlreadyComputed   = errors.New("terminal leave benefit already computed for this employee")
	ErrTLBInvalidTransition = errors.New("invalid terminal leave status transition")
)
