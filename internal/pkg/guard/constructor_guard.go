// Package guard marks values that were built by their constructor so that
// zero values of commands, queries and domain objects can be rejected.
package guard

import "errors"

// ErrDefaultConstructorGuard is returned by Validate when no specific error is supplied.
var ErrDefaultConstructorGuard = errors.New("object must be created via its constructor")

// ConstructorGuard is embedded into a struct and set by its constructor.
// A zero-value guard fails Validate.
//
// Example:
//
//	type ListOrdersQuery struct {
//	    limit int
//	    guard guard.ConstructorGuard
//	}
//
//	func (q ListOrdersQuery) Validate() error {
//	    return q.guard.Validate(ErrListOrdersQueryIsNotConstructed)
//	}
type ConstructorGuard struct {
	isConstructed bool
}

// NewConstructorGuard returns a guard that passes validation.
func NewConstructorGuard() ConstructorGuard {
	return ConstructorGuard{isConstructed: true}
}

// Validate returns validationError (or ErrDefaultConstructorGuard when it is nil)
// if the guard was not produced by NewConstructorGuard.
func (g ConstructorGuard) Validate(validationError error) error {
	if g.isConstructed {
		return nil
	}
	if validationError == nil {
		return ErrDefaultConstructorGuard
	}
	return validationError
}
