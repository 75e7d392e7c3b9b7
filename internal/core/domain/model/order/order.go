package order

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"

	"github.com/shopspring/decimal"
)

// ErrOrderIsNotConstructed is returned for orders not built by NewOrder or RestoreOrder.
var ErrOrderIsNotConstructed = errors.New("Order must be created via NewOrder constructor")

// CollectionMethod is how garments reach the shop.
type CollectionMethod string

// ReturnMethod is how garments go back to the customer.
type ReturnMethod string

const (
	CollectionDropOff CollectionMethod = "drop_off"
	CollectionPickup  CollectionMethod = "pickup"

	ReturnCollect  ReturnMethod = "collect"
	ReturnDelivery ReturnMethod = "delivery"
)

// Address is a delivery destination. Coordinates are optional: an address
// without them cannot be routed.
type Address struct {
	Street      string
	Coordinates *kernel.Coordinates
}

// IsResolvable reports whether the address can be handed to a router.
func (a *Address) IsResolvable() bool {
	return a != nil && strings.TrimSpace(a.Street) != "" &&
		a.Coordinates != nil && a.Coordinates.Validate() == nil
}

// Customer carries the contact data shown on route stops.
type Customer struct {
	Name  string
	Phone string
}

// Order is the aggregate root of the lifecycle. Its status only changes through
// AppendTransition, which keeps the history ledger and the status in step.
//
// Invariants:
//   - history is never empty and starts with Received
//   - history is append-only and the last entry's status equals Status()
//   - a terminal status (Delivered, Collected) admits no further transitions
type Order struct {
	id                  kernel.UUID
	branchID            kernel.UUID
	processingBranchID  *kernel.UUID
	customer            Customer
	collectionMethod    CollectionMethod
	returnMethod        ReturnMethod
	deliveryAddress     *Address
	totalAmount         decimal.Decimal
	status              Status
	history             []HistoryEntry
	createdAt           time.Time
	estimatedCompletion time.Time
	actualCompletion    *time.Time

	// sorting window state, set once the order reaches a processing branch
	arrivedAt          *time.Time
	earliestReturnTime *time.Time
	sortingCompleted   bool
	sortingCompletedAt *time.Time

	isConstructed bool
}

// NewOrderParams groups the intake data of a new order.
type NewOrderParams struct {
	ID                  kernel.UUID
	BranchID            kernel.UUID
	Customer            Customer
	CollectionMethod    CollectionMethod
	ReturnMethod        ReturnMethod
	DeliveryAddress     *Address
	TotalAmount         decimal.Decimal
	CreatedAt           time.Time
	EstimatedCompletion time.Time
	ActorID             string
}

// NewOrder registers an order at intake. The ledger is opened with a Received
// entry stamped CreatedAt.
func NewOrder(p NewOrderParams) (*Order, error) {
	o := &Order{
		customer:            p.Customer,
		deliveryAddress:     p.DeliveryAddress,
		status:              Received,
		createdAt:           p.CreatedAt,
		estimatedCompletion: p.EstimatedCompletion,
		isConstructed:       true,
	}

	if err := errors.Join(
		o.setID(p.ID),
		o.setBranchID(p.BranchID),
		o.setMethods(p.CollectionMethod, p.ReturnMethod),
		o.setTotalAmount(p.TotalAmount),
		o.setSchedule(p.CreatedAt, p.EstimatedCompletion),
	); err != nil {
		return nil, err
	}

	entry, err := NewHistoryEntry(Received, p.CreatedAt, p.ActorID)
	if err != nil {
		return nil, err
	}
	o.history = []HistoryEntry{entry}

	return o, nil
}

// Snapshot is the full persisted state of an order, used to rebuild it.
type Snapshot struct {
	ID                  kernel.UUID
	BranchID            kernel.UUID
	ProcessingBranchID  *kernel.UUID
	Customer            Customer
	CollectionMethod    CollectionMethod
	ReturnMethod        ReturnMethod
	DeliveryAddress     *Address
	TotalAmount         decimal.Decimal
	Status              Status
	History             []HistoryEntry
	CreatedAt           time.Time
	EstimatedCompletion time.Time
	ActualCompletion    *time.Time
	ArrivedAt           *time.Time
	EarliestReturnTime  *time.Time
	SortingCompleted    bool
	SortingCompletedAt  *time.Time
}

// RestoreOrder rebuilds an order from storage, re-checking every invariant.
func RestoreOrder(s Snapshot) (*Order, error) {
	o := &Order{
		processingBranchID: s.ProcessingBranchID,
		customer:           s.Customer,
		deliveryAddress:    s.DeliveryAddress,
		actualCompletion:   s.ActualCompletion,
		arrivedAt:          s.ArrivedAt,
		earliestReturnTime: s.EarliestReturnTime,
		sortingCompleted:   s.SortingCompleted,
		sortingCompletedAt: s.SortingCompletedAt,
		isConstructed:      true,
	}

	if err := errors.Join(
		o.setID(s.ID),
		o.setBranchID(s.BranchID),
		o.setMethods(s.CollectionMethod, s.ReturnMethod),
		o.setTotalAmount(s.TotalAmount),
		o.setSchedule(s.CreatedAt, s.EstimatedCompletion),
		s.Status.Validate(),
		validateLedger(s.History, s.Status),
	); err != nil {
		return nil, err
	}

	o.status = s.Status
	o.history = append([]HistoryEntry(nil), s.History...)
	return o, nil
}

// Validate ensures the order was built by a constructor.
func (o *Order) Validate() error {
	if o == nil || !o.isConstructed {
		return ErrOrderIsNotConstructed
	}
	return nil
}

// IsEqual compares orders by identity.
func (o *Order) IsEqual(other *Order) bool {
	return other != nil && o.id.IsEqual(other.id)
}

func (o *Order) ID() kernel.UUID { return o.id }
func (o *Order) BranchID() kernel.UUID { return o.branchID }
func (o *Order) Customer() Customer { return o.customer }
func (o *Order) CollectionMethod() CollectionMethod { return o.collectionMethod }
func (o *Order) ReturnMethod() ReturnMethod { return o.returnMethod }
func (o *Order) DeliveryAddress() *Address { return o.deliveryAddress }
func (o *Order) TotalAmount() decimal.Decimal { return o.totalAmount }
func (o *Order) Status() Status { return o.status }
func (o *Order) CreatedAt() time.Time { return o.createdAt }
func (o *Order) EstimatedCompletion() time.Time { return o.estimatedCompletion }
func (o *Order) ActualCompletion() *time.Time { return o.actualCompletion }
func (o *Order) ArrivedAt() *time.Time { return o.arrivedAt }
func (o *Order) EarliestReturnTime() *time.Time { return o.earliestReturnTime }
func (o *Order) SortingCompleted() bool { return o.sortingCompleted }
func (o *Order) SortingCompletedAt() *time.Time { return o.sortingCompletedAt }

// ProcessingBranchID returns the branch currently handling the order, falling
// back to the owning branch.
func (o *Order) ProcessingBranchID() kernel.UUID {
	if o.processingBranchID != nil {
		return *o.processingBranchID
	}
	return o.branchID
}

// History returns a copy of the status ledger, oldest first.
func (o *Order) History() []HistoryEntry {
	return append([]HistoryEntry(nil), o.history...)
}

// LastEntry returns the most recent ledger entry.
func (o *Order) LastEntry() HistoryEntry {
	return o.history[len(o.history)-1]
}

// RequiresDelivery reports whether the order goes back by delivery rather
// than customer pickup.
func (o *Order) RequiresDelivery() bool {
	return o.returnMethod == ReturnDelivery
}

// AppendTransition moves the order to next and appends the matching ledger
// entry. On rejection the order is left untouched and an InvalidTransitionError
// is returned. Entering Ready stamps the actual completion time.
//
// The returned slice is a copy of the updated ledger.
func (o *Order) AppendTransition(g Graph, next Status, actorID string, at time.Time) ([]HistoryEntry, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	if err := g.Check(o.status, next); err != nil {
		return nil, err
	}

	if last := o.LastEntry().Timestamp(); at.Before(last) {
		return nil, errs.NewValueIsInvalidErrorWithCause(
			"transition timestamp",
			fmt.Errorf("%s is before the last recorded change at %s", at.Format(time.RFC3339), last.Format(time.RFC3339)),
		)
	}

	entry, err := NewHistoryEntry(next, at, actorID)
	if err != nil {
		return nil, err
	}

	o.history = append(o.history, entry)
	o.status = next
	if next == Ready && o.actualCompletion == nil {
		completedAt := at
		o.actualCompletion = &completedAt
	}

	return o.History(), nil
}

// RecordArrival marks the order as physically received at branchID and sets
// the earliest time it may leave again.
func (o *Order) RecordArrival(branchID kernel.UUID, at, earliestReturn time.Time) error {
	if err := branchID.Validate(); err != nil {
		return err
	}
	if earliestReturn.Before(at) {
		return errs.NewValueIsInvalidErrorWithCause(
			"earliest return time",
			fmt.Errorf("%s is before arrival", earliestReturn.Format(time.RFC3339)),
		)
	}

	arrivedAt, earliest := at, earliestReturn
	o.processingBranchID = &branchID
	o.arrivedAt = &arrivedAt
	o.earliestReturnTime = &earliest
	o.sortingCompleted = false
	o.sortingCompletedAt = nil
	return nil
}

// CompleteSorting marks sorting as done. It does not move the earliest
// return time.
func (o *Order) CompleteSorting(at time.Time) error {
	if o.arrivedAt == nil {
		return errs.NewValueIsInvalidErrorWithCause(
			"sorting",
			fmt.Errorf("order %s has not arrived at a processing branch", o.id),
		)
	}
	if o.sortingCompleted {
		return nil
	}

	completedAt := at
	o.sortingCompleted = true
	o.sortingCompletedAt = &completedAt
	return nil
}

func (o *Order) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	o.id = id
	return nil
}

func (o *Order) setBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("branch id", err)
	}
	o.branchID = id
	return nil
}

func (o *Order) setMethods(collection CollectionMethod, ret ReturnMethod) error {
	var errList []error
	switch collection {
	case CollectionDropOff, CollectionPickup:
		o.collectionMethod = collection
	default:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"collection method", fmt.Errorf("%q is not supported", collection)))
	}
	switch ret {
	case ReturnCollect, ReturnDelivery:
		o.returnMethod = ret
	default:
		errList = append(errList, errs.NewValueIsInvalidErrorWithCause(
			"return method", fmt.Errorf("%q is not supported", ret)))
	}
	return errors.Join(errList...)
}

func (o *Order) setTotalAmount(total decimal.Decimal) error {
	if total.IsNegative() {
		return errs.NewValueIsInvalidErrorWithCause("total amount", fmt.Errorf("%s is negative", total))
	}
	o.totalAmount = total
	return nil
}

func (o *Order) setSchedule(createdAt, estimatedCompletion time.Time) error {
	if createdAt.IsZero() {
		return errs.NewValueIsRequiredError("created at")
	}
	if estimatedCompletion.IsZero() {
		return errs.NewValueIsRequiredError("estimated completion")
	}
	o.createdAt = createdAt
	o.estimatedCompletion = estimatedCompletion
	return nil
}
