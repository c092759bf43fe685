package permission

import "errors"

// Domain errors for identifier and permission parsing.
var (
	// ErrInvalidID is returned when an identifier fails validation.
	ErrInvalidID = errors.New("permission.invalid_id")

	// ErrInvalidPermission is returned when a permission string fails validation.
	ErrInvalidPermission = errors.New("permission.invalid_permission")
)
