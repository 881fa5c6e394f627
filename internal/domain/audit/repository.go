package audit

import "context"

// AuditRepository is the write-only sink for audit entries. Failures are
// logged by callers, never propagated into the business operation.
type AuditRepository interface {
	Insert(ctx context.Context, entry Entry) error
}
