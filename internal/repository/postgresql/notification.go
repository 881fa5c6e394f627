package postgresql

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"github.com/lgu-hris/payroll-backend-go/internal/domain/notification"
	"github.com/lgu-hris/payroll-backend-go/internal/pkg/database"
)

type notificationRepository struct {
	db *database.DB
}

func NewNotificationRepository(db *database.DB) notification.NotificationRepository {
	return &notificationRepository{db: db}
}

func (r *notificationRepository) CreateBatch(ctx context.Context, notifications []notification.Notification) error {
	q := r.db.Querier(ctx)

	for _, n := range notifications {
		if n.ID == "" {
			n.ID = uuid.New().String()
		}
		_, err := q.Exec(ctx, `
			INSERT INTO notifications (id, employee_id, type, title, message, related_id)
			VALUES ($1, $2, $3, $4, $5, $6)
		`, n.ID, n.EmployeeID, n.Type, n.Title, n.Message, n.RelatedID)
		if err != nil {
			return fmt.Errorf("failed to insert notification: %w", err)
		}
	}

	return nil
}
