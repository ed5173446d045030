// Package service implements the category, post, and user operations on
// top of the store layer: slug assignment, paginated search, ownership
// checks, and the publish transition. Handlers translate the typed errors
// defined here into HTTP status codes.
package service

import (
	"errors"
	"fmt"
)

// NotFoundError reports that the target of an operation does not exist.
// Always surfaced to the caller, never retried.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s with ID %q not found", e.Resource, e.ID)
}

// ConflictError reports a duplicate value detected before any write, for
// example a category name that is already taken case-insensitively.
type ConflictError struct {
	Resource string
	Field    string
	Value    string
}

func (e *ConflictError) Error() string {
	return fmt.Sprintf("%s with %s %q already exists", e.Resource, e.Field, e.Value)
}

// ForbiddenError reports an ownership mismatch on a mutation. It is kept
// distinct from NotFoundError: existence is always resolved first.
type ForbiddenError struct {
	Message string
}

func (e *ForbiddenError) Error() string {
	return e.Message
}

// ErrInvalidCredentials is returned by Authenticate for an unknown email,
// a wrong password, or a deactivated account. Deliberately indistinct.
var ErrInvalidCredentials = errors.New("invalid email or password")

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf *NotFoundError
	return errors.As(err, &nf)
}

// IsConflict reports whether err is a ConflictError.
func IsConflict(err error) bool {
	var c *ConflictError
	return errors.As(err, &c)
}

// IsForbidden reports whether err is a ForbiddenError.
func IsForbidden(err error) bool {
	var f *ForbiddenError
	return errors.As(err, &f)
}
