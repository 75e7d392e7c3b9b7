// Package branch models a shop or processing site of the garment-care network.
package branch

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/errs"
	"laundry/internal/pkg/guard"
)

// Type distinguishes full processing sites from collection points.
type Type string

const (
	TypeMain      Type = "main"
	TypeSatellite Type = "satellite"
)

var (
	// ErrNameIsRequired is returned when a branch has no name.
	ErrNameIsRequired = errs.NewValueIsRequiredError("name")
	// ErrBranchIsNotConstructed is returned when using a zero-value Branch.
	ErrBranchIsNotConstructed = errors.New("Branch must be created via NewBranch constructor")
)

// Branch carries the configuration the scheduling window and batch
// assignment read. A nil sorting window means "use the system default".
type Branch struct {
	id                 kernel.UUID
	name               string
	branchType         Type
	mainStoreID        *kernel.UUID
	sortingWindowHours *int
	location           *kernel.Coordinates
	guard              guard.ConstructorGuard
}

// NewBranch validates and builds a branch.
//
// Satellites reference the main store that processes their orders;
// sortingWindowHours and location are optional.
func NewBranch(
	id kernel.UUID,
	name string,
	branchType Type,
	mainStoreID *kernel.UUID,
	sortingWindowHours *int,
	location *kernel.Coordinates,
) (*Branch, error) {
	b := &Branch{
		mainStoreID: mainStoreID,
		location:    location,
		guard:       guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		b.setID(id),
		b.setName(name),
		b.setType(branchType),
		b.setSortingWindowHours(sortingWindowHours),
	); err != nil {
		return nil, err
	}

	return b, nil
}

// Validate ensures the branch was built by NewBranch.
func (b *Branch) Validate() error {
	if b == nil {
		return ErrBranchIsNotConstructed
	}
	return b.guard.Validate(ErrBranchIsNotConstructed)
}

func (b *Branch) ID() kernel.UUID { return b.id }

func (b *Branch) Name() string { return b.name }

func (b *Branch) Type() Type { return b.branchType }

func (b *Branch) MainStoreID() *kernel.UUID { return b.mainStoreID }

func (b *Branch) SortingWindowHours() *int { return b.sortingWindowHours }

func (b *Branch) Location() *kernel.Coordinates { return b.location }

// SortingWindow returns the configured buffer after arrival, or fallback
// when the branch has none.
func (b *Branch) SortingWindow(fallback time.Duration) time.Duration {
	if b == nil || b.sortingWindowHours == nil {
		return fallback
	}
	return time.Duration(*b.sortingWindowHours) * time.Hour
}

func (b *Branch) setID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}
	b.id = id
	return nil
}

func (b *Branch) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}
	b.name = name
	return nil
}

func (b *Branch) setType(t Type) error {
	switch t {
	case TypeMain, TypeSatellite:
		b.branchType = t
		return nil
	}
	return errs.NewValueIsInvalidErrorWithCause("branch type", fmt.Errorf("%q is not supported", t))
}

func (b *Branch) setSortingWindowHours(hours *int) error {
	if hours == nil {
		return nil
	}
	if *hours < 0 || *hours > 168 {
		return errs.NewValueIsOutOfRangeError("sorting window hours", *hours, 0, 168)
	}
	h := *hours
	b.sortingWindowHours = &h
	return nil
}
