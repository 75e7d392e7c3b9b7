package services

import (
	"math"
	"time"

	"laundry/internal/core/domain/model/branch"
	"laundry/internal/core/domain/model/order"
)

// DefaultSortingWindow applies to branches without a configured window.
const DefaultSortingWindow = 6 * time.Hour

// WindowValidation is the answer to "may this order leave at proposed time".
// An unmet window is a normal result with Valid false, not an error.
type WindowValidation struct {
	Valid        bool
	EarliestTime time.Time
}

// SortingMetrics summarises sorting window state across orders.
type SortingMetrics struct {
	Total                 int
	PendingSort           int
	ExpiringSoon          int
	ReadyForScheduling    int
	AverageSortingMinutes float64
}

// SortingWindow gates when an order that reached a processing branch may leave
// again. Branch configuration is passed into every call.
type SortingWindow struct {
	fallback     time.Duration
	expiringSoon time.Duration
}

// NewSortingWindow returns the service. A non-positive fallback selects
// DefaultSortingWindow. expiringSoon is the look-ahead used by FleetMetrics.
func NewSortingWindow(fallback, expiringSoon time.Duration) SortingWindow {
	if fallback <= 0 {
		fallback = DefaultSortingWindow
	}
	return SortingWindow{fallback: fallback, expiringSoon: expiringSoon}
}

// Window returns the buffer that applies at b.
func (w SortingWindow) Window(b *branch.Branch) time.Duration {
	return b.SortingWindow(w.fallback)
}

// RecordArrival stamps arrival at b and the earliest return time on o.
func (w SortingWindow) RecordArrival(o *order.Order, b *branch.Branch, now time.Time) error {
	if err := b.Validate(); err != nil {
		return err
	}
	return o.RecordArrival(b.ID(), now, now.Add(w.Window(b)))
}

// CompleteSorting marks o as sorted at now.
func (w SortingWindow) CompleteSorting(o *order.Order, now time.Time) error {
	return o.CompleteSorting(now)
}

// EarliestReturnTime recomputes the window end from arrival, or from now when
// the order has not arrived yet.
func (w SortingWindow) EarliestReturnTime(o *order.Order, b *branch.Branch, now time.Time) time.Time {
	from := now
	if arrived := o.ArrivedAt(); arrived != nil {
		from = *arrived
	}
	return from.Add(w.Window(b))
}

// ValidateProposedTime checks proposed against the window. The earliest time
// is always filled in for display.
func (w SortingWindow) ValidateProposedTime(o *order.Order, b *branch.Branch, proposed, now time.Time) WindowValidation {
	earliest := w.EarliestReturnTime(o, b, now)
	return WindowValidation{
		Valid:        !proposed.Before(earliest),
		EarliestTime: earliest,
	}
}

// RemainingWindowMinutes returns whole minutes until the window closes,
// rounded up, or 0 once sorting is complete or the window has passed.
func (w SortingWindow) RemainingWindowMinutes(o *order.Order, b *branch.Branch, now time.Time) int {
	if o.SortingCompleted() {
		return 0
	}
	left := w.EarliestReturnTime(o, b, now).Sub(now)
	if left <= 0 {
		return 0
	}
	return int(math.Ceil(left.Minutes()))
}

// FleetMetrics counts orders by sorting state using their stored window:
//   - pending sort: arrived and not yet sorted
//   - expiring soon: not sorted and the window closes within the look-ahead
//   - ready for scheduling: arrived, sorted and the window has closed
//
// The three buckets never overlap: an unsorted order stays pending sort even
// after its window closed.
//
// The average covers every order with both arrival and sorting times.
func (w SortingWindow) FleetMetrics(orders []*order.Order, now time.Time) SortingMetrics {
	m := SortingMetrics{Total: len(orders)}
	horizon := now.Add(w.expiringSoon)

	var (
		sortedSum   time.Duration
		sortedCount int
	)
	for _, o := range orders {
		arrived := o.ArrivedAt()
		if arrived == nil {
			continue
		}

		if !o.SortingCompleted() {
			m.PendingSort++
		}
		if earliest := o.EarliestReturnTime(); earliest != nil {
			if !o.SortingCompleted() && earliest.After(now) && !earliest.After(horizon) {
				m.ExpiringSoon++
			}
			if o.SortingCompleted() && !now.Before(*earliest) {
				m.ReadyForScheduling++
			}
		}
		if done := o.SortingCompletedAt(); done != nil {
			sortedSum += done.Sub(*arrived)
			sortedCount++
		}
	}
	if sortedCount > 0 {
		m.AverageSortingMinutes = sortedSum.Minutes() / float64(sortedCount)
	}

	return m
}
