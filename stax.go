// Package stax provides a stack-based hierarchical state machine engine
// designed to be driven from a host application's update loop. Each state
// owns a set of named child states and an active-state stack; updates and
// events are always routed to the top of the stack, so the currently active
// root-to-leaf path receives exclusive execution.
package stax

// ActionFunc is a lifecycle or condition callback bound to a single state.
// The state it was registered on is passed in, so a callback can read the
// state's context or request a transition on the state or its parent.
type ActionFunc func(s State)

// UpdateFunc is the per-tick callback of a state. The delta is the elapsed
// time of the current tick in seconds, as supplied by the external driver.
type UpdateFunc func(s State, delta float64)

// Predicate decides whether a condition's action fires during an update.
type Predicate func(s State) bool

// EventHandler handles a named event together with its opaque payload.
type EventHandler func(s State, args any)

// Condition pairs a predicate with the action that runs when the predicate
// evaluates true during an update tick. Conditions are evaluated in the
// order they were registered.
type Condition struct {
	Predicate Predicate
	Action    ActionFunc
}
