package employee

import "context"

// EmployeeRepository defines read access to the employee master store.
// Soft-deleted employees are excluded unless a method says otherwise.
type EmployeeRepository interface {
	GetByID(ctx context.Context, id string) (Employee, error)
	GetByIDs(ctx context.Context, ids []string) ([]Employee, error)
	GetActive(ctx context.Context) ([]Employee, error)
	// GetByIDIncludingDeleted is used by historical benefit computations
	// (e.g. terminal leave for a separated, archived employee).
	GetByIDIncludingDeleted(ctx context.Context, id string) (Employee, error)
}
