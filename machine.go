package stax

// PopPolicy selects the behavior of PopState on an empty active stack.
type PopPolicy int

const (
	// PopStrict makes popping an empty stack an EmptyStackPop error.
	PopStrict PopPolicy = iota
	// PopLenient makes popping an empty stack a no-op.
	PopLenient
)

// Machine is the root node of a state tree. It is a regular state with the
// machine-wide concerns attached: the observer manager shared by every node
// and the pop policy inherited by adopted children.
//
// A freshly built machine has an empty active stack and is inert; the
// driver must issue an explicit ChangeState or PushState before the first
// Update tick, then call Update(delta) once per tick with a non-negative
// delta in seconds.
type Machine struct {
	BaseState
}

// Option configures a Machine at construction time.
type Option func(*Machine)

// WithPopPolicy sets the machine-wide empty-stack pop policy. The default
// is PopStrict.
func WithPopPolicy(policy PopPolicy) Option {
	return func(m *Machine) {
		m.popPolicy = policy
	}
}

// NewMachine creates an empty root state with the given name. States are
// added with AddChild or, more conveniently, through a Builder.
func NewMachine(name string, opts ...Option) *Machine {
	m := &Machine{BaseState: *NewState(name)}
	m.observers = NewObserverManager()
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// AddObserver registers an observer for lifecycle notifications across the
// whole tree.
func (m *Machine) AddObserver(observer Observer) {
	m.observers.AddObserver(observer)
}

// RemoveObserver unregisters a previously added observer.
func (m *Machine) RemoveObserver(observer Observer) {
	m.observers.RemoveObserver(observer)
}

// ActiveLeaf returns the deepest currently-active state, following the top
// of each active stack from the root down. It returns the machine itself
// when the root stack is empty.
func (m *Machine) ActiveLeaf() State {
	var leaf State = &m.BaseState
	for {
		stack := leaf.base().activeStack
		if len(stack) == 0 {
			return leaf
		}
		leaf = stack[len(stack)-1]
	}
}

// ActivePath returns the machine's current configuration: the state names
// on the root-to-leaf path formed by following each node's stack top. The
// root's own name is the first element.
func (m *Machine) ActivePath() []string {
	path := []string{m.name}
	var node State = &m.BaseState
	for {
		stack := node.base().activeStack
		if len(stack) == 0 {
			return path
		}
		node = stack[len(stack)-1]
		path = append(path, node.Name())
	}
}
