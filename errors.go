package stax

import (
	"errors"
	"fmt"
)

// ErrorCode identifies specific failure conditions in the engine.
type ErrorCode int

const (
	// No error occurred
	ErrCodeNone ErrorCode = iota
	// A transition referenced a name absent from the node's children
	ErrCodeStateNotFound
	// A push referenced a child already on the active stack
	ErrCodeStateActive
	// PopState was called on an empty active stack under PopStrict
	ErrCodeEmptyStackPop
	// AddChild was called twice with the same name on the same node
	ErrCodeDuplicateChild
	// An event identifier was absent from the active leaf's event table
	ErrCodeEventNotFound
	// AddEvent was called twice with the same identifier on the same node
	ErrCodeDuplicateEvent
	// The builder was used incorrectly
	ErrCodeInvalidConfiguration
)

// StateError represents state and transition related errors. Node is the
// state the failing operation was invoked on; Child is the referenced
// child name, when one was involved.
type StateError struct {
	Code    ErrorCode
	Node    string
	Child   string
	Message string
}

func (e *StateError) Error() string {
	return fmt.Sprintf("state error [%s]: %s", e.Node, e.Message)
}

// NewStateNotFoundError creates an error for a transition that referenced
// an unregistered child name.
func NewStateNotFoundError(node, child string) *StateError {
	return &StateError{
		Code:    ErrCodeStateNotFound,
		Node:    node,
		Child:   child,
		Message: fmt.Sprintf("state '%s' has no child '%s'", node, child),
	}
}

// NewStateActiveError creates an error for a push of a child that is
// already on the active stack.
func NewStateActiveError(node, child string) *StateError {
	return &StateError{
		Code:    ErrCodeStateActive,
		Node:    node,
		Child:   child,
		Message: fmt.Sprintf("child '%s' is already on the active stack of '%s'", child, node),
	}
}

// NewEmptyStackPopError creates an error for a strict pop on an empty
// active stack.
func NewEmptyStackPopError(node string) *StateError {
	return &StateError{
		Code:    ErrCodeEmptyStackPop,
		Node:    node,
		Message: fmt.Sprintf("pop on empty active stack of '%s'", node),
	}
}

// NewDuplicateChildError creates an error for a repeated AddChild name.
func NewDuplicateChildError(node, child string) *StateError {
	return &StateError{
		Code:    ErrCodeDuplicateChild,
		Node:    node,
		Child:   child,
		Message: fmt.Sprintf("state '%s' already has a child '%s'", node, child),
	}
}

// EventError represents event table related errors.
type EventError struct {
	Code    ErrorCode
	Node    string
	Event   string
	Message string
}

func (e *EventError) Error() string {
	return fmt.Sprintf("event error [%s]: %s", e.Node, e.Message)
}

// NewEventNotFoundError creates an error for an event identifier the
// active leaf has no handler for.
func NewEventNotFoundError(node, event string) *EventError {
	return &EventError{
		Code:    ErrCodeEventNotFound,
		Node:    node,
		Event:   event,
		Message: fmt.Sprintf("state '%s' has no handler for event '%s'", node, event),
	}
}

// NewDuplicateEventError creates an error for a repeated AddEvent
// identifier.
func NewDuplicateEventError(node, event string) *EventError {
	return &EventError{
		Code:    ErrCodeDuplicateEvent,
		Node:    node,
		Event:   event,
		Message: fmt.Sprintf("state '%s' already handles event '%s'", node, event),
	}
}

// ConfigurationError represents builder misuse.
type ConfigurationError struct {
	Component string
	Issue     string
}

func (e *ConfigurationError) Error() string {
	return fmt.Sprintf("configuration error in %s: %s", e.Component, e.Issue)
}

// NewConfigurationError creates a new configuration error.
func NewConfigurationError(component, issue string) *ConfigurationError {
	return &ConfigurationError{
		Component: component,
		Issue:     issue,
	}
}

// IsStateError checks if an error is a StateError.
func IsStateError(err error) bool {
	var target *StateError
	return errors.As(err, &target)
}

// IsEventError checks if an error is an EventError.
func IsEventError(err error) bool {
	var target *EventError
	return errors.As(err, &target)
}

// IsConfigurationError checks if an error is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var target *ConfigurationError
	return errors.As(err, &target)
}

// GetErrorCode returns the error code for known error types.
func GetErrorCode(err error) ErrorCode {
	var stateErr *StateError
	if errors.As(err, &stateErr) {
		return stateErr.Code
	}
	var eventErr *EventError
	if errors.As(err, &eventErr) {
		return eventErr.Code
	}
	var configErr *ConfigurationError
	if errors.As(err, &configErr) {
		return ErrCodeInvalidConfiguration
	}
	return ErrCodeNone
}

// ErrorCollector accumulates errors during tree construction so the
// builder can report every problem from a single Build call.
type ErrorCollector struct {
	errors []error
}

// NewErrorCollector creates an empty error collector.
func NewErrorCollector() *ErrorCollector {
	return &ErrorCollector{}
}

// Add records an error. Nil errors are ignored.
func (c *ErrorCollector) Add(err error) {
	if err != nil {
		c.errors = append(c.errors, err)
	}
}

// HasErrors reports whether any error was recorded.
func (c *ErrorCollector) HasErrors() bool {
	return len(c.errors) > 0
}

// Errors returns the recorded errors in the order they were added.
func (c *ErrorCollector) Errors() []error {
	return c.errors
}

// Err returns the recorded errors joined into one, or nil.
func (c *ErrorCollector) Err() error {
	return errors.Join(c.errors...)
}
