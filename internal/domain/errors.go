package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Match them with errors.Is.
var (
	ErrValidation = errors.New("validation failed")
	ErrNotFound   = errors.New("not found")
)

// Validation reasons, wrapped by ValidationError.
var (
	ErrProductRequired      = errors.New("product is required")
	ErrProductTitleRequired = errors.New("product title is required")
	ErrProductPriceNegative = errors.New("product price must not be negative")
	ErrProductPriceInvalid  = errors.New("product price must be a finite number")
	ErrCustomerRequired     = errors.New("customer is required")
	ErrCustomerNameRequired = errors.New("customer name is required")
)

// Entity names used in errors, spans and logs.
const (
	EntityProduct  = "product"
	EntityCustomer = "customer"
)

// Operation is the write operation that failed validation.
type Operation string

const (
	OpSave   Operation = "save"
	OpUpdate Operation = "update"
)

// ValidationError is returned when save or update input is rejected.
type ValidationError struct {
	Entity string
	Op     Operation
	Err    error
}

// NewValidationError builds a ValidationError for entity/op with the given reason.
func NewValidationError(entity string, op Operation, reason error) *ValidationError {
	return &ValidationError{Entity: entity, Op: op, Err: reason}
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s %s: %v", e.Entity, e.Op, e.Err)
}

func (e *ValidationError) Unwrap() error { return e.Err }

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError is returned when an id has no entity, or the entity is inactive
// and the operation requires an active one.
type NotFoundError struct {
	Entity string
	ID     int64
}

// NewNotFoundError builds a NotFoundError for entity/id.
func NewNotFoundError(entity string, id int64) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: id}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with id %d not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// IsValidation reports whether err is a ValidationError.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
