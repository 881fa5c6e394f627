package postgresql

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/lgu-hris/payroll-backend-go/internal/domain/audit"
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/database"
)

type auditRepository struct {
	db *database.DB
}

func NewAuditRepository(db *database.DB) audit.AuditRepository {
	return &auditRepository{db: db}
}

func (r *auditRepository) Insert(ctx context.Context, entry audit.Entry) error {
	q := r.db.Querier(ctx)

	oldValues, err := json.Marshal(entry.OldValues)
	if err != nil {
		return fmt.Errorf("failed to marshal old values: %w", err)
	}
	newValues, err := json.Marshal(entry.NewValues)
	if err != nil {
		return fmt.Errorf("failed to marshal new values: %w", err)
	}

	query := `
		INSERT INTO audit_logs (user_id, action, table_name, record_id, old_values, new_values, ip_address, user_agent)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	`

	_, err = q.Exec(ctx, query,
		entry.UserID, entry.Action, entry.TableName, entry.RecordID,
		oldValues, newValues, entry.IPAddress, entry.UserAgent,
	)
	if err != nil {
		return fmt.Errorf("failed to insert audit entry: %w", err)
	}

	return nil
}
