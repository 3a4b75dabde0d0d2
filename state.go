package stax

// State represents one node of a state tree. A node owns its children, its
// own active-state stack, its lifecycle callbacks, its event table and its
// condition list. Nodes with a non-empty stack delegate all ticking and
// event routing to the stack top; nodes with an empty stack execute their
// own update callback and conditions.
type State interface {
	// Name returns the name the state is registered under in its parent.
	Name() string
	// Parent returns the enclosing state, or nil for the root.
	Parent() State
	// Context returns the opaque value attached at build time, or nil.
	Context() any
	// ElapsedTime returns the seconds accumulated since the last Enter.
	// Time only accumulates while the state is the active leaf.
	ElapsedTime() float64
	// Children returns a copy of the name-to-state child table.
	Children() map[string]State
	// Child returns the direct child registered under name.
	Child(name string) (State, bool)
	// ActiveStack returns a copy of the active-state stack, bottom first.
	ActiveStack() []State

	Enter()
	Exit()
	Update(delta float64)

	ChangeState(name string) error
	PushState(name string) error
	PopState() error
	TriggerEvent(name string, args any) error

	AddChild(name string, child State) error
	AddEvent(name string, handler EventHandler) error
	AddCondition(pred Predicate, action ActionFunc)

	SetEnterAction(action ActionFunc)
	SetExitAction(action ActionFunc)
	SetUpdateAction(action UpdateFunc)

	base() *BaseState
}

// BaseState implements the State interface and provides the dispatch
// behavior shared by all node types. Specialized nodes embed BaseState and
// override the methods they need; the promoted implementation keeps them
// valid tree members.
type BaseState struct {
	name      string
	parent    State
	context   any
	popPolicy PopPolicy
	observers *ObserverManager

	children    map[string]State
	activeStack []State
	elapsed     float64

	enterAction  ActionFunc
	exitAction   ActionFunc
	updateAction UpdateFunc

	events     map[string]EventHandler
	conditions []Condition
}

// NewState creates a new detached state node with the given name. The name
// is replaced by the registration name when the node is added to a parent.
func NewState(name string) *BaseState {
	return &BaseState{
		name:     name,
		children: make(map[string]State),
		events:   make(map[string]EventHandler),
	}
}

// Name returns the state's name.
func (b *BaseState) Name() string {
	return b.name
}

// Parent returns the enclosing state, or nil for the root.
func (b *BaseState) Parent() State {
	return b.parent
}

// Context returns the opaque context value attached to the state.
func (b *BaseState) Context() any {
	return b.context
}

// SetContext attaches an opaque externally-owned value to the state. The
// engine stores it unchanged and never interprets it.
func (b *BaseState) SetContext(v any) {
	b.context = v
}

// ElapsedTime returns the seconds accumulated since the last Enter.
func (b *BaseState) ElapsedTime() float64 {
	return b.elapsed
}

// Children returns a copy of the child table.
func (b *BaseState) Children() map[string]State {
	children := make(map[string]State, len(b.children))
	for name, child := range b.children {
		children[name] = child
	}
	return children
}

// Child returns the direct child registered under name.
func (b *BaseState) Child(name string) (State, bool) {
	child, ok := b.children[name]
	return child, ok
}

// ActiveStack returns a copy of the active-state stack, bottom first.
func (b *BaseState) ActiveStack() []State {
	stack := make([]State, len(b.activeStack))
	copy(stack, b.activeStack)
	return stack
}

// Enter resets the state's elapsed time and runs the enter action.
func (b *BaseState) Enter() {
	b.elapsed = 0
	if b.enterAction != nil {
		b.enterAction(b)
	}
	b.observers.NotifyStateEnter(b)
}

// Exit runs the exit action. Membership in the parent's active stack is
// managed by the transition operations, not by Exit itself.
func (b *BaseState) Exit() {
	if b.exitAction != nil {
		b.exitAction(b)
	}
	b.observers.NotifyStateExit(b)
}

// Update advances the state by delta seconds. If the active stack is
// non-empty the whole tick is delegated to the stack top and the state's
// own callback, elapsed time and conditions are skipped. Otherwise the
// update action runs, elapsed time accumulates, and every condition is
// evaluated in registration order; each predicate that holds fires its
// action in the same tick.
func (b *BaseState) Update(delta float64) {
	if n := len(b.activeStack); n > 0 {
		b.activeStack[n-1].Update(delta)
		return
	}

	if b.updateAction != nil {
		b.updateAction(b, delta)
	}
	b.elapsed += delta
	b.observers.NotifyUpdate(b, delta)

	// Snapshot the slice header so an action appending conditions or
	// mutating the stack cannot disturb this pass.
	conditions := b.conditions
	for i := range conditions {
		c := conditions[i]
		if c.Predicate == nil || !c.Predicate(b) {
			continue
		}
		b.observers.NotifyConditionFired(b, i)
		if c.Action != nil {
			c.Action(b)
		}
	}
}

// ChangeState replaces the top of the active stack with the named child:
// the current top (if any) is popped and exited, then the new child is
// pushed and entered. States beneath the top are preserved. Changing to the
// current top itself is a restart (exit then enter); changing to a child
// buried beneath the top is a StateActive error, since the child would end
// up on the stack twice. Returns a StateNotFound error if the name is
// unknown. Both checks precede any side effect.
func (b *BaseState) ChangeState(name string) error {
	next, ok := b.children[name]
	if !ok {
		err := NewStateNotFoundError(b.name, name)
		b.observers.NotifyError(b, err)
		return err
	}
	n := len(b.activeStack)
	for i := 0; i < n-1; i++ {
		if b.activeStack[i] == next {
			err := NewStateActiveError(b.name, name)
			b.observers.NotifyError(b, err)
			return err
		}
	}

	var from State
	if n > 0 {
		from = b.activeStack[n-1]
		b.activeStack = b.activeStack[:n-1]
		from.Exit()
	}

	b.activeStack = append(b.activeStack, next)
	next.Enter()
	b.observers.NotifyTransition(b, from, next, OpChange)
	return nil
}

// PushState pushes and enters the named child without popping anything,
// nesting it on top of whatever is currently active. Returns a
// StateNotFound error if the name is unknown, and a StateActive error if
// the child is already on the stack.
func (b *BaseState) PushState(name string) error {
	next, ok := b.children[name]
	if !ok {
		err := NewStateNotFoundError(b.name, name)
		b.observers.NotifyError(b, err)
		return err
	}
	for _, active := range b.activeStack {
		if active == next {
			err := NewStateActiveError(b.name, name)
			b.observers.NotifyError(b, err)
			return err
		}
	}

	b.activeStack = append(b.activeStack, next)
	next.Enter()
	b.observers.NotifyTransition(b, nil, next, OpPush)
	return nil
}

// PopState pops and exits the top of the active stack, resuming whatever
// was beneath it. Popping an empty stack follows the machine's PopPolicy:
// an EmptyStackPop error under PopStrict, a no-op under PopLenient.
func (b *BaseState) PopState() error {
	n := len(b.activeStack)
	if n == 0 {
		if b.popPolicy == PopLenient {
			return nil
		}
		err := NewEmptyStackPopError(b.name)
		b.observers.NotifyError(b, err)
		return err
	}

	top := b.activeStack[n-1]
	b.activeStack = b.activeStack[:n-1]
	top.Exit()
	b.observers.NotifyTransition(b, top, nil, OpPop)
	return nil
}

// TriggerEvent routes the event to the deepest currently-active leaf. If
// the active stack is non-empty the call is forwarded unchanged to the
// stack top; otherwise the state's own event table is consulted and the
// handler invoked with the opaque args. Returns an EventNotFound error if
// the leaf has no handler registered under name.
func (b *BaseState) TriggerEvent(name string, args any) error {
	if n := len(b.activeStack); n > 0 {
		return b.activeStack[n-1].TriggerEvent(name, args)
	}

	handler, ok := b.events[name]
	if !ok {
		err := NewEventNotFoundError(b.name, name)
		b.observers.NotifyEventRejected(b, NewEvent(name, args), err.Message)
		return err
	}

	b.observers.NotifyEventTriggered(b, NewEvent(name, args))
	handler(b, args)
	return nil
}

// AddChild registers child under name and sets its parent back-reference.
// The child adopts the registration name. Returns a DuplicateChild error
// if the name is already taken; the tree is left unchanged.
func (b *BaseState) AddChild(name string, child State) error {
	if _, exists := b.children[name]; exists {
		return NewDuplicateChildError(b.name, name)
	}

	cb := child.base()
	cb.name = name
	cb.parent = b
	cb.attach(b.observers, b.popPolicy)
	b.children[name] = child
	return nil
}

// AddEvent registers a handler for the named event. Returns a
// DuplicateEvent error if the name is already registered on this state.
func (b *BaseState) AddEvent(name string, handler EventHandler) error {
	if _, exists := b.events[name]; exists {
		return NewDuplicateEventError(b.name, name)
	}
	b.events[name] = handler
	return nil
}

// AddCondition appends a predicate/action pair to the ordered condition
// list. Registration order is evaluation order. Duplicate predicates are
// legal; each entry is evaluated independently.
func (b *BaseState) AddCondition(pred Predicate, action ActionFunc) {
	b.conditions = append(b.conditions, Condition{Predicate: pred, Action: action})
}

// SetEnterAction replaces the enter callback. The slot holds at most one
// callback; the last writer wins.
func (b *BaseState) SetEnterAction(action ActionFunc) {
	b.enterAction = action
}

// SetExitAction replaces the exit callback.
func (b *BaseState) SetExitAction(action ActionFunc) {
	b.exitAction = action
}

// SetUpdateAction replaces the per-tick callback.
func (b *BaseState) SetUpdateAction(action UpdateFunc) {
	b.updateAction = action
}

func (b *BaseState) base() *BaseState {
	return b
}

// attach propagates the machine-level observer manager and pop policy down
// an adopted subtree.
func (b *BaseState) attach(observers *ObserverManager, policy PopPolicy) {
	b.observers = observers
	b.popPolicy = policy
	for _, child := range b.children {
		child.base().attach(observers, policy)
	}
}
