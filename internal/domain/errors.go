// Package domain holds the error taxonomy shared by the content engine and its callers.
package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// Sentinel errors, use with errors.Is().
var (
	ErrValidation        = errors.New("validation failed")
	ErrNotFound          = errors.New("not found")
	ErrPermissionDenied  = errors.New("permission denied")
	ErrUnauthenticated   = errors.New("unauthenticated")
	ErrInvalidReorder    = errors.New("invalid reorder")
	ErrAlreadyInState    = errors.New("already in state")
	ErrInvalidTransition = errors.New("invalid transition")
	ErrStorage           = errors.New("storage failure")
)

var known = []error{
	ErrValidation, ErrNotFound, ErrPermissionDenied, ErrUnauthenticated,
	ErrInvalidReorder, ErrAlreadyInState, ErrInvalidTransition, ErrStorage,
}

// IsKnown reports whether err belongs to the taxonomy above.
func IsKnown(err error) bool {
	for _, target := range known {
		if errors.Is(err, target) {
			return true
		}
	}
	return false
}

// FieldError is a single failed field constraint.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError always carries every failed field, not only the first one.
type ValidationError struct {
	Fields []FieldError
}

func NewValidationError(fields ...FieldError) *ValidationError {
	e := &ValidationError{}
	for _, f := range fields {
		e.Add(f.Field, f.Message)
	}
	return e
}

// Add appends a field failure keeping fields sorted by name.
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
	sort.SliceStable(e.Fields, func(i, j int) bool { return e.Fields[i].Field < e.Fields[j].Field })
}

func (e *ValidationError) HasField(field string) bool {
	for _, f := range e.Fields {
		if f.Field == field {
			return true
		}
	}
	return false
}

// OrNil returns nil when no field failed.
func (e *ValidationError) OrNil() error {
	if e == nil || len(e.Fields) == 0 {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (e *ValidationError) Is(target error) bool { return target == ErrValidation }

// NotFoundError indicates the referenced entity does not exist.
type NotFoundError struct {
	Entity string
	ID     string
}

func NewNotFound(entity string, id any) *NotFoundError {
	return &NotFoundError{Entity: entity, ID: fmt.Sprint(id)}
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %s not found", e.Entity, e.ID)
}

func (e *NotFoundError) Is(target error) bool { return target == ErrNotFound }

// PermissionDeniedError carries the required role or ownership and the actual principal.
type PermissionDeniedError struct {
	Action        string
	Required      string
	PrincipalID   int
	PrincipalRole string
	Reason        string
}

func (e *PermissionDeniedError) Error() string {
	return fmt.Sprintf("permission denied: %s requires %s (principal %d, role %s): %s",
		e.Action, e.Required, e.PrincipalID, e.PrincipalRole, e.Reason)
}

func (e *PermissionDeniedError) Is(target error) bool { return target == ErrPermissionDenied }

// InvalidReorderError lists duplicate and unknown ids of a reorder payload.
type InvalidReorderError struct {
	Duplicates []int
	Unknown    []int
}

func (e *InvalidReorderError) Error() string {
	return fmt.Sprintf("invalid reorder: duplicates=%v unknown=%v", e.Duplicates, e.Unknown)
}

func (e *InvalidReorderError) Is(target error) bool { return target == ErrInvalidReorder }

// StateError reports a lifecycle transition that was not applied. Kind is
// either ErrAlreadyInState (idempotent no-op) or ErrInvalidTransition.
type StateError struct {
	Entity string
	ID     int
	State  string
	Action string
	Kind   error
}

func AlreadyInState(entity string, id int, state, action string) *StateError {
	return &StateError{Entity: entity, ID: id, State: state, Action: action, Kind: ErrAlreadyInState}
}

func InvalidTransition(entity string, id int, state, action string) *StateError {
	return &StateError{Entity: entity, ID: id, State: state, Action: action, Kind: ErrInvalidTransition}
}

func (e *StateError) Error() string {
	return fmt.Sprintf("%s %d: cannot %s from %s: %v", e.Entity, e.ID, e.Action, e.State, e.Kind)
}

func (e *StateError) Is(target error) bool { return target == e.Kind }

// StorageError wraps a failed storage operation.
type StorageError struct {
	Op  string
	Err error
}

// NewStorageError returns nil for a nil err.
func NewStorageError(op string, err error) error {
	if err == nil {
		return nil
	}
	var se *StorageError
	if errors.As(err, &se) {
		return err
	}
	return &StorageError{Op: op, Err: err}
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("failed to %s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error { return e.Err }

func (e *StorageError) Is(target error) bool { return target == ErrStorage }
