package stax

// StackOp identifies which transition operation mutated an active stack.
type StackOp int

const (
	// OpChange replaced the stack top
	OpChange StackOp = iota
	// OpPush nested a new state on top of the stack
	OpPush
	// OpPop removed the stack top
	OpPop
)

// String returns the operation name.
func (op StackOp) String() string {
	switch op {
	case OpChange:
		return "change"
	case OpPush:
		return "push"
	case OpPop:
		return "pop"
	default:
		return "unknown"
	}
}

// Observer receives notifications about state lifecycle activity anywhere
// in a machine's tree.
type Observer interface {
	// OnStateEnter is called after a state has been entered
	OnStateEnter(s State)

	// OnTransition is called after a stack operation completed on parent.
	// from is nil for pushes, to is nil for pops.
	OnTransition(parent State, from, to State, op StackOp)
}

// ExtendedObserver provides additional optional observation methods.
type ExtendedObserver interface {
	Observer

	// OnStateExit is called after a state has been exited
	OnStateExit(s State)

	// OnUpdate is called when a leaf state receives its tick
	OnUpdate(s State, delta float64)

	// OnConditionFired is called when a condition's predicate held during
	// an update; index is the condition's registration position
	OnConditionFired(s State, index int)

	// OnEventTriggered is called when an event reaches a leaf with a
	// matching handler, before the handler runs
	OnEventTriggered(s State, event *Event)

	// OnEventRejected is called when an event reaches a leaf that has no
	// matching handler
	OnEventRejected(s State, event *Event, reason string)

	// OnError is called when a transition operation fails; the error is
	// also returned to the caller
	OnError(s State, err error)
}

// BaseObserver provides a default implementation with no-op methods.
type BaseObserver struct{}

// OnStateEnter implements the required Observer method
func (o *BaseObserver) OnStateEnter(s State) {
	// Default implementation - no operation
}

// OnTransition implements the required Observer method
func (o *BaseObserver) OnTransition(parent State, from, to State, op StackOp) {
	// Default implementation - no operation
}

// OnStateExit implements the optional ExtendedObserver method
func (o *BaseObserver) OnStateExit(s State) {
	// Default implementation - no operation
}

// OnUpdate implements the optional ExtendedObserver method
func (o *BaseObserver) OnUpdate(s State, delta float64) {
	// Default implementation - no operation
}

// OnConditionFired implements the optional ExtendedObserver method
func (o *BaseObserver) OnConditionFired(s State, index int) {
	// Default implementation - no operation
}

// OnEventTriggered implements the optional ExtendedObserver method
func (o *BaseObserver) OnEventTriggered(s State, event *Event) {
	// Default implementation - no operation
}

// OnEventRejected implements the optional ExtendedObserver method
func (o *BaseObserver) OnEventRejected(s State, event *Event, reason string) {
	// Default implementation - no operation
}

// OnError implements the optional ExtendedObserver method
func (o *BaseObserver) OnError(s State, err error) {
	// Default implementation - no operation
}

// ObserverManager manages a collection of observers. A nil manager is
// valid and drops every notification, so detached subtrees stay silent
// until they are adopted into a machine.
type ObserverManager struct {
	observers []Observer
}

// NewObserverManager creates a new observer manager.
func NewObserverManager() *ObserverManager {
	return &ObserverManager{
		observers: make([]Observer, 0),
	}
}

// AddObserver adds an observer to the manager.
func (om *ObserverManager) AddObserver(observer Observer) {
	om.observers = append(om.observers, observer)
}

// RemoveObserver removes an observer from the manager.
func (om *ObserverManager) RemoveObserver(observer Observer) {
	for i, existing := range om.observers {
		if existing == observer {
			om.observers = append(om.observers[:i], om.observers[i+1:]...)
			return
		}
	}
}

// NotifyStateEnter notifies all observers of a state entry.
func (om *ObserverManager) NotifyStateEnter(s State) {
	if om == nil {
		return
	}
	for _, observer := range om.observers {
		observer.OnStateEnter(s)
	}
}

// NotifyStateExit notifies extended observers of a state exit.
func (om *ObserverManager) NotifyStateExit(s State) {
	if om == nil {
		return
	}
	for _, observer := range om.observers {
		if extended, ok := observer.(ExtendedObserver); ok {
			extended.OnStateExit(s)
		}
	}
}

// NotifyTransition notifies all observers of a completed stack operation.
func (om *ObserverManager) NotifyTransition(parent State, from, to State, op StackOp) {
	if om == nil {
		return
	}
	for _, observer := range om.observers {
		observer.OnTransition(parent, from, to, op)
	}
}

// NotifyUpdate notifies extended observers of a leaf tick.
func (om *ObserverManager) NotifyUpdate(s State, delta float64) {
	if om == nil {
		return
	}
	for _, observer := range om.observers {
		if extended, ok := observer.(ExtendedObserver); ok {
			extended.OnUpdate(s, delta)
		}
	}
}

// NotifyConditionFired notifies extended observers of a fired condition.
func (om *ObserverManager) NotifyConditionFired(s State, index int) {
	if om == nil {
		return
	}
	for _, observer := range om.observers {
		if extended, ok := observer.(ExtendedObserver); ok {
			extended.OnConditionFired(s, index)
		}
	}
}

// NotifyEventTriggered notifies extended observers of a handled event.
func (om *ObserverManager) NotifyEventTriggered(s State, event *Event) {
	if om == nil {
		return
	}
	for _, observer := range om.observers {
		if extended, ok := observer.(ExtendedObserver); ok {
			extended.OnEventTriggered(s, event)
		}
	}
}

// NotifyError notifies extended observers of a failed transition operation.
func (om *ObserverManager) NotifyError(s State, err error) {
	if om == nil {
		return
	}
	for _, observer := range om.observers {
		if extended, ok := observer.(ExtendedObserver); ok {
			extended.OnError(s, err)
		}
	}
}

// NotifyEventRejected notifies extended observers of an unhandled event.
func (om *ObserverManager) NotifyEventRejected(s State, event *Event, reason string) {
	if om == nil {
		return
	}
	for _, observer := range om.observers {
		if extended, ok := observer.(ExtendedObserver); ok {
			extended.OnEventRejected(s, event, reason)
		}
	}
}
