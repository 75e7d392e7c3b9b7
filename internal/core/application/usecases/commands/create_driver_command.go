package commands

import (
	"errors"
	"strings"

	"laundry/internal/core/domain/model/kernel"
	"laundry/internal/pkg/guard"
)

var (
	ErrCreateDriverCommandIsNotConstructed = errors.New(
		"CreateDriverCommand must be created via NewCreateDriverCommand constructor",
	)
	ErrNameIsRequired = errors.New("name is required")
)

// CreateDriverCommand represents a request to register a new driver at a branch.
// Encapsulates all data needed to create a driver entity.
//
// Example:
//
//	cmd, err := NewCreateDriverCommand("Otieno", "+254711000000", branchID)
//	if err != nil {
//	    return fmt.Errorf("invalid driver data: %w", err)
//	}
//
//	handler := NewCreateDriverCommandHandler(uowFactory)
//	if err := handler.Handle(ctx, cmd); err != nil {
//	    return fmt.Errorf("failed to create driver: %w", err)
//	}
//	fmt.Printf("Created driver with ID: %s", cmd.DriverID())
type CreateDriverCommand struct { //nolint:recvcheck //using for validation
	driverID kernel.UUID
	name     string
	phone    string
	branchID kernel.UUID

	guard guard.ConstructorGuard
}

// NewCreateDriverCommand creates a command to register a new driver.
// Automatically generates a unique ID for the driver.
// Validates that name is not empty and the home branch is a valid id.
func NewCreateDriverCommand(name, phone string, branchID kernel.UUID) (CreateDriverCommand, error) {
	command := CreateDriverCommand{
		phone: phone,
		guard: guard.NewConstructorGuard(),
	}

	if err := errors.Join(
		command.setDriverID(kernel.NewUUID()),
		command.setName(name),
		command.setBranchID(branchID),
	); err != nil {
		return CreateDriverCommand{}, err
	}

	return command, nil
}

// Validate ensures the command was created through the constructor.
// Returns ErrCreateDriverCommandIsNotConstructed if validation fails.
func (c CreateDriverCommand) Validate() error {
	return c.guard.Validate(ErrCreateDriverCommandIsNotConstructed)
}

// DriverID returns the driver ID from the command.
func (c CreateDriverCommand) DriverID() kernel.UUID {
	return c.driverID
}

// Name returns the driver name from the command.
func (c CreateDriverCommand) Name() string {
	return c.name
}

// Phone returns the driver phone from the command.
func (c CreateDriverCommand) Phone() string {
	return c.phone
}

// BranchID returns the home branch from the command.
func (c CreateDriverCommand) BranchID() kernel.UUID {
	return c.branchID
}

func (c *CreateDriverCommand) setDriverID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.driverID = id
	return nil
}

func (c *CreateDriverCommand) setName(name string) error {
	if strings.TrimSpace(name) == "" {
		return ErrNameIsRequired
	}

	c.name = name
	return nil
}

func (c *CreateDriverCommand) setBranchID(id kernel.UUID) error {
	if err := id.Validate(); err != nil {
		return err
	}

	c.branchID = id
	return nil
}
