package order

import (
	"fmt"
	"time"

	"laundry/internal/pkg/errs"
)

// HistoryEntry is one immutable line of the status ledger.
type HistoryEntry struct {
	status    Status
	timestamp time.Time
	actorID   string
}

// NewHistoryEntry validates and builds a ledger entry.
func NewHistoryEntry(status Status, timestamp time.Time, actorID string) (HistoryEntry, error) {
	if err := status.Validate(); err != nil {
		return HistoryEntry{}, err
	}
	if timestamp.IsZero() {
		return HistoryEntry{}, errs.NewValueIsRequiredError("timestamp")
	}
	return HistoryEntry{status: status, timestamp: timestamp, actorID: actorID}, nil
}

// Status returns the status the order entered.
func (e HistoryEntry) Status() Status {
	return e.status
}

// Timestamp returns when the order entered the status.
func (e HistoryEntry) Timestamp() time.Time {
	return e.timestamp
}

// ActorID returns the staff member or system actor that made the change.
func (e HistoryEntry) ActorID() string {
	return e.actorID
}

// validateLedger checks the invariants of a ledger rebuilt from storage:
// it starts at Received, timestamps never go backwards and the last entry
// matches the current status.
func validateLedger(history []HistoryEntry, current Status) error {
	if len(history) == 0 {
		return errs.NewValueIsRequiredError("status history")
	}
	if history[0].status != Received {
		return errs.NewValueIsInvalidErrorWithCause(
			"status history",
			fmt.Errorf("first entry is %s, expected %s", history[0].status, Received),
		)
	}
	for i := 1; i < len(history); i++ {
		if history[i].timestamp.Before(history[i-1].timestamp) {
			return errs.NewValueIsInvalidErrorWithCause(
				"status history",
				fmt.Errorf("entry %d is older than entry %d", i, i-1),
			)
		}
	}
	if last := history[len(history)-1].status; last != current {
		return errs.NewValueIsInvalidErrorWithCause(
			"status history",
			fmt.Errorf("last entry is %s but order status is %s", last, current),
		)
	}
	return nil
}
