package ecs

import "errors"

var (
	// ErrInvalidEntity is returned when a handle does not refer to a living entity.
	ErrInvalidEntity = errors.New("entity is not living")
	// ErrNotFound is returned when a living entity lacks the requested component.
	ErrNotFound = errors.New("component not found")
	// ErrNotRegistered is returned when no manager or system of the type is registered.
	ErrNotRegistered = errors.New("type not registered")
	// ErrDuplicateRegistration is returned when a manager or system type is registered twice.
	ErrDuplicateRegistration = errors.New("type already registered")
)
