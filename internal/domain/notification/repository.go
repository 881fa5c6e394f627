package notification

import "context"

// NotificationRepository is the write side of the notification sink.
type NotificationRepository interface {
	CreateBatch(ctx context.Context, notifications []Notification) error
}
