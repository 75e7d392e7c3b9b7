package commands

import (
	"context"
	"log/slog"

	"laundry/internal/core/domain/model/order"
	"laundry/internal/core/ports"
)

// TransitionOrderStatusResult describes a committed transition.
type TransitionOrderStatusResult struct {
	Order   *order.Order
	From    order.Status
	To      order.Status
	History []order.HistoryEntry

	// NotificationTemplate is empty when the customer is not told about To.
	NotificationTemplate string
}

// TransitionOrderStatusCommandHandler performs "attempt transition" as one
// atomic step: check against the graph, append to the ledger, and a
// compare-and-swap write of status plus entry.
//
// Concurrent attempts on the same order are serialised by the optional
// OrderLocker; the storage compare-and-swap rejects whatever slips through
// with errs.ErrVersionIsInvalid. The status change event is published only
// after commit, and a failed publish does not undo the transition.
type TransitionOrderStatusCommandHandler struct {
	uowFactory OrderUoWFactory
	graph      order.Graph
	locker     ports.OrderLocker
	publisher  ports.EventPublisher
	logger     *slog.Logger
}

// NewTransitionOrderStatusCommandHandler creates the handler. locker and
// publisher may be nil.
func NewTransitionOrderStatusCommandHandler(
	uowFactory OrderUoWFactory,
	graph order.Graph,
	locker ports.OrderLocker,
	publisher ports.EventPublisher,
	logger *slog.Logger,
) TransitionOrderStatusCommandHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return TransitionOrderStatusCommandHandler{
		uowFactory: uowFactory,
		graph:      graph,
		locker:     locker,
		publisher:  publisher,
		logger:     logger.With("component", "transition_order_status"),
	}
}

// Handle moves the order and returns the updated ledger.
//
// Returns:
//   - *order.InvalidTransitionError when the graph refuses the move; nothing is written
//   - errs.ErrObjectNotFound when the order does not exist
//   - errs.ErrVersionIsInvalid when another writer changed the status first
//   - ports.ErrOrderLocked when another transition on the order is in flight
func (h *TransitionOrderStatusCommandHandler) Handle(
	ctx context.Context,
	cmd TransitionOrderStatusCommand,
) (TransitionOrderStatusResult, error) {
	if err := cmd.Validate(); err != nil {
		return TransitionOrderStatusResult{}, err
	}

	if h.locker != nil {
		unlock, err := h.locker.Lock(ctx, cmd.OrderID())
		if err != nil {
			return TransitionOrderStatusResult{}, err
		}
		defer unlock()
	}

	uow := h.uowFactory.Create()
	if err := uow.Begin(ctx); err != nil {
		return TransitionOrderStatusResult{}, err
	}

	defer func() {
		_ = uow.Rollback(ctx)
	}()

	orderRepo := uow.OrderRepository()
	aggregate, err := orderRepo.Get(ctx, cmd.OrderID())
	if err != nil {
		return TransitionOrderStatusResult{}, err
	}

	from := aggregate.Status()
	history, err := aggregate.AppendTransition(h.graph, cmd.Next(), cmd.ActorID(), cmd.At())
	if err != nil {
		return TransitionOrderStatusResult{}, err
	}

	if err = orderRepo.UpdateStatus(ctx, aggregate, from, aggregate.LastEntry()); err != nil {
		return TransitionOrderStatusResult{}, err
	}

	if err = uow.Commit(ctx); err != nil {
		return TransitionOrderStatusResult{}, err
	}

	template, _ := cmd.Next().CustomerNotification()
	result := TransitionOrderStatusResult{
		Order:                aggregate,
		From:                 from,
		To:                   cmd.Next(),
		History:              history,
		NotificationTemplate: template,
	}

	h.publish(ctx, result, cmd)

	return result, nil
}

func (h *TransitionOrderStatusCommandHandler) publish(
	ctx context.Context,
	result TransitionOrderStatusResult,
	cmd TransitionOrderStatusCommand,
) {
	if h.publisher == nil {
		return
	}

	event := ports.StatusChangedEvent{
		OrderID:              cmd.OrderID(),
		BranchID:             result.Order.BranchID(),
		From:                 result.From,
		To:                   result.To,
		ActorID:              cmd.ActorID(),
		At:                   cmd.At(),
		NotificationTemplate: result.NotificationTemplate,
	}
	if err := h.publisher.PublishStatusChanged(ctx, event); err != nil {
		h.logger.ErrorContext(ctx, "failed to publish status change",
			"order_id", cmd.OrderID().String(),
			"to", result.To.String(),
			"error", err)
	}
}
