package entity

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned by repositories when a document does not exist.
	ErrNotFound = errors.New("not found")

	// ErrInvalidTransition is returned when cancellation is requested outside
	// the allowed source state.
	ErrInvalidTransition = errors.New("invalid status transition")

	// ErrInvalidThreshold is returned for a non-positive threshold value.
	ErrInvalidThreshold = errors.New("threshold must be a positive integer")

	// ErrDuplicateSequence is returned when persisting an order whose sequence
	// number is already taken in either order collection.
	ErrDuplicateSequence = errors.New("duplicate order sequence")
)

// InsufficientStockError names the limiting stock item and the exact shortfall
// so callers can surface an itemized, user-facing rejection.
type InsufficientStockError struct {
	Item      string
	Available int
	Required  int
}

func (e *InsufficientStockError) Error() string {
	return fmt.Sprintf("insufficient stock for %q: available %d, required %d", e.Item, e.Available, e.Required)
}

// UnknownIngredientError is raised when a menu item references a stock item
// that does not exist. For ordering purposes it is equivalent to out of stock.
type UnknownIngredientError struct {
	Item string
}

func (e *UnknownIngredientError) Error() string {
	return fmt.Sprintf("unknown ingredient %q: no matching stock item", e.Item)
}

// ValidationError rejects a cart before any stock is touched.
type ValidationError struct {
	Msg string
}

func (e *ValidationError) Error() string {
	return e.Msg
}

func Validationf(format string, args ...interface{}) *ValidationError {
	return &ValidationError{Msg: fmt.Sprintf(format, args...)}
}
