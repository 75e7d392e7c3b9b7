package order

import (
	"fmt"

	"laundry/internal/pkg/errs"
)

// Status is the lifecycle stage an order occupies.
//
// Forward path:
//
//	Received → Queued → Washing → Drying → Ironing → QualityCheck → Packaging → Ready
//	Ready ──┬──> OutForDelivery ──> Delivered   (return by delivery)
//	        └──> Collected                       (customer pickup)
//
// Delivered and Collected are terminal.
type Status int

const (
	// Unknown catches uninitialised values and anything that failed to parse.
	Unknown Status = iota
	Received
	Queued
	Washing
	Drying
	Ironing
	QualityCheck
	Packaging
	Ready
	OutForDelivery
	Delivered
	Collected
)

var statusNames = map[Status]string{
	Received:       "received",
	Queued:         "queued",
	Washing:        "washing",
	Drying:         "drying",
	Ironing:        "ironing",
	QualityCheck:   "quality_check",
	Packaging:      "packaging",
	Ready:          "ready",
	OutForDelivery: "out_for_delivery",
	Delivered:      "delivered",
	Collected:      "collected",
}

// AllStatuses returns every valid status in forward order. The returned slice
// is a fresh copy.
func AllStatuses() []Status {
	return []Status{
		Received,
		Queued,
		Washing,
		Drying,
		Ironing,
		QualityCheck,
		Packaging,
		Ready,
		OutForDelivery,
		Delivered,
		Collected,
	}
}

// ParseStatus maps a persisted or requested status name to a Status.
func ParseStatus(name string) (Status, error) {
	for s, n := range statusNames {
		if n == name {
			return s, nil
		}
	}
	return Unknown, errs.NewValueIsInvalidErrorWithCause(
		"status is invalid",
		fmt.Errorf("%q is not a known status", name),
	)
}

// Validate rejects Unknown and out-of-range values.
func (s Status) Validate() error {
	if _, ok := statusNames[s]; !ok {
		return errs.NewValueIsInvalidErrorWithCause("status is invalid", fmt.Errorf("%d is not a valid status", s))
	}
	return nil
}

// String returns the wire name, or "unknown" for invalid values.
func (s Status) String() string {
	if name, ok := statusNames[s]; ok {
		return name
	}
	return "unknown"
}

// IsTerminal reports whether no transition may leave s.
func (s Status) IsTerminal() bool {
	return s == Delivered || s == Collected
}

// CustomerNotification returns the notification template for an order that
// just entered s, and whether the customer is notified at all.
func (s Status) CustomerNotification() (template string, notify bool) {
	switch s {
	case Received:
		return "order_received", true
	case Queued, Washing, Drying, Ironing, QualityCheck, Packaging:
		return "", false
	case Ready:
		return "order_ready", true
	case OutForDelivery:
		return "order_out_for_delivery", true
	case Delivered:
		return "order_delivered", true
	case Collected:
		return "order_collected", true
	case Unknown:
		return "", false
	}
	return "", false
}
