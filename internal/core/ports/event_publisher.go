package ports

import (
	"context"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/core/domain/model/order"
)

// StatusChangedEvent is emitted after a transition is committed.
// NotificationTemplate is empty when the customer is not notified.
type StatusChangedEvent struct {
	OrderID              kernel.UUID
	BranchID             kernel.UUID
	From                 order.Status
	To                   order.Status
	ActorID              string
	At                   time.Time
	NotificationTemplate string
}

// EventPublisher hands committed status changes to downstream consumers such
// as the notification service.
type EventPublisher interface {
	PublishStatusChanged(ctx context.Context, event StatusChangedEvent) error
}
