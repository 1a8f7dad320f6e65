package core

import "fmt"

// ProtectedResourceError is returned when a mutation targets a
// system-flagged category. Callers should check for it before offering
// destructive actions in the UI.
type ProtectedResourceError struct {
	Name string
}

func (e *ProtectedResourceError) Error() string {
	return fmt.Sprintf("category %q is a system category and cannot be modified", e.Name)
}

// ConstraintViolationError wraps a unique or foreign-key violation from
// the storage engine (duplicate category name, dangling reference).
type ConstraintViolationError struct {
	Op  string
	Err error
}

func (e *ConstraintViolationError) Error() string {
	return fmt.Sprintf("%s: constraint violation: %v", e.Op, e.Err)
}

func (e *ConstraintViolationError) Unwrap() error { return e.Err }

// StorageError wraps any other persistence failure.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: storage error: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }
