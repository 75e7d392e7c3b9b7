package driver

import (
	"errors"
	"fmt"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

// Domain errors for driver operations.
var (
	// ErrNameIsRequired is returned when attempting to create a driver without a name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrDriverIsNotConstructed is returned when using an improperly initialized Driver.
	ErrDriverIsNotConstructed = errors.New("Driver must be created via NewDriver constructor")
	// ErrDriverUnavailable is returned when a driver is off shift, based at another
	// branch or otherwise cannot take a batch.
	ErrDriverUnavailable = errors.New("driver unavailable")
)

// Driver represents a delivery driver based at one branch.
// It is an aggregate root tracking availability and the number of batches the
// driver is currently carrying.
//
// Key responsibilities:
//   - Managing driver identity (ID, name, phone) and home branch
//   - Tracking shift availability
//   - Counting active batches, which drives automatic assignment
//
// Business rules:
//   - Driver must have a valid UUID, a non-empty name and a valid home branch
//   - Active batch count never goes negative
//   - Only an available driver may take a batch
//
// Example usage:
//
//	d, err := driver.NewDriver(kernel.NewUUID(), "Otieno", "+254711000000", branchID)
//	if err != nil {
//	    // Handle construction error
//	}
//	err = d.TakeBatch()
type Driver struct {
	// id uniquely identifies the driver
	id kernel.UUID
	// name is the human-readable name of the driver
	name string
	// phone is shown to dispatchers and customers
	phone string
	// branchID is the branch the driver works out of
	branchID kernel.UUID
	// available is false while the driver is off shift
	available bool
	// activeBatches is the number of batches assigned and not yet completed
	activeBatches int
	// guard ensures the driver was properly constructed
	guard guard.ConstructorGuard
}

// NewDriver creates an available driver with no active batches.
//
// Parameters:
//   - id: Unique identifier for the driver (must be valid UUID)
//   - name: Human-readable name (must be non-empty)
//   - phone: Contact number (optional)
//   - branchID: Home branch (must be valid UUID)
//
// Returns:
//   - *Driver: A driver ready to take batches
//   - error: Validation error if any parameter is invalid (aggregated errors for multiple issues)
func NewDriver(id kernel.UUID, name, phone string, branchID kernel.UUID) (*Driver, error) {
	d := &Driver{
		phone:     phone,
		available: true,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setBranchID(branchID),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// RestoreDriver reconstructs a Driver from persistent storage, including its
// availability and current batch load.
//
// Business Rules:
//   - Driver ID and branch ID must be valid
//   - Name cannot be empty
//   - Active batch count cannot be negative
func RestoreDriver(
	id kernel.UUID,
	name, phone string,
	branchID kernel.UUID,
	available bool,
	activeBatches int,
) (*Driver, error) {
	d := &Driver{
		phone:     phone,
		available: available,
		guard:     guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		d.setID(id),
		d.setName(name),
		d.setBranchID(branchID),
		d.setActiveBatches(activeBatches),
	); err != nil {
		return nil, err
	}

	return d, nil
}

// IsEqual compares two drivers by identifier.
func (d *Driver) IsEqual(other *Driver) bool {
	if other == nil {
		return false
	}
	return d.id.IsEqual(other.id)
}

// Validate ensures the driver was created through a constructor.
func (d *Driver) Validate() error {
	if d == nil {
		return ErrDriverIsNotConstructed
	}
	return d.guard.Validate(ErrDriverIsNotConstructed)
}

// ID returns the driver's unique identifier.
func (d *Driver) ID() kernel.UUID {
	return d.id
}

// Name returns the driver's name.
func (d *Driver) Name() string {
	return d.name
}

// Phone returns the driver's contact number.
func (d *Driver) Phone() string {
	return d.phone
}

// BranchID returns the driver's home branch.
func (d *Driver) BranchID() kernel.UUID {
	return d.branchID
}

// IsAvailable reports whether the driver is on shift.
func (d *Driver) IsAvailable() bool {
	return d.available
}

// ActiveBatches returns the number of batches the driver currently carries.
func (d *Driver) ActiveBatches() int {
	return d.activeBatches
}

// CanServe reports whether the driver may take a batch leaving branchID.
func (d *Driver) CanServe(branchID kernel.UUID) bool {
	return d.available && d.branchID.IsEqual(branchID)
}

// SetAvailability puts the driver on or off shift.
func (d *Driver) SetAvailability(available bool) {
	d.available = available
}

// TakeBatch increments the driver's load.
//
// Returns ErrDriverUnavailable if the driver is off shift.
func (d *Driver) TakeBatch() error {
	if err := d.Validate(); err != nil {
		return err
	}
	if !d.available {
		return fmt.Errorf("%w: %s is off shift", ErrDriverUnavailable, d.id)
	}
	d.activeBatches++
	return nil
}

// CompleteBatch decrements the driver's load. It never goes below zero.
func (d *Driver) CompleteBatch() {
	if d.activeBatches > 0 {
		d.activeBatches--
	}
}

func (d *Driver) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	d.id = id
	return nil
}

func (d *Driver) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	d.name = name
	return nil
}

func (d *Driver) setBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return errs.NewValueIsRequiredErrorWithCause("branch id", err)
	}
	d.branchID = id
	return nil
}

func (d *Driver) setActiveBatches(n int) error {
	if n < 0 {
		return errs.NewValueIsOutOfRangeError("active batches", n, 0, "unbounded")
	}
	d.activeBatches = n
	return nil
}
