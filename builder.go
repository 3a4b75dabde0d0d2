package stax

import "fmt"

// Builder assembles a state tree declaratively. State opens the declaration
// of a named child of the current scope, End closes it and returns to the
// enclosing scope, and Build returns the finished machine. Registration
// calls between State and End apply to the innermost open declaration;
// before any State call they apply to the root itself.
//
// Construction errors (duplicate child names, duplicate event identifiers,
// unbalanced State/End pairs) are collected and reported together by Build.
type Builder struct {
	machine *Machine
	scope   []State
	errs    *ErrorCollector
	built   bool
}

// NewBuilder starts a builder around an empty root machine.
func NewBuilder(name string, opts ...Option) *Builder {
	machine := NewMachine(name, opts...)
	return &Builder{
		machine: machine,
		scope:   []State{&machine.BaseState},
		errs:    NewErrorCollector(),
	}
}

// current returns the innermost open declaration
func (b *Builder) current() State {
	return b.scope[len(b.scope)-1]
}

// State opens the declaration of a new child state under the current
// scope. Every State call must be closed by a matching End before Build.
func (b *Builder) State(name string) *Builder {
	return b.StateNode(name, NewState(name))
}

// StateNode is like State but declares the child using a caller-provided
// node, allowing specialized node types that embed BaseState.
func (b *Builder) StateNode(name string, node State) *Builder {
	if node == nil {
		b.errs.Add(NewConfigurationError("Builder", fmt.Sprintf("nil node for state '%s'", name)))
		node = NewState(name)
	}
	b.errs.Add(b.current().AddChild(name, node))
	// Open the scope even after a duplicate-name error so that the chained
	// registrations land on the orphaned node instead of the existing child.
	b.scope = append(b.scope, node)
	return b
}

// End closes the innermost open state declaration and returns control to
// the enclosing scope.
func (b *Builder) End() *Builder {
	if len(b.scope) <= 1 {
		b.errs.Add(NewConfigurationError("Builder", "End without a matching State"))
		return b
	}
	b.scope = b.scope[:len(b.scope)-1]
	return b
}

// OnEnter registers the enter callback of the current state.
func (b *Builder) OnEnter(action ActionFunc) *Builder {
	b.current().SetEnterAction(action)
	return b
}

// OnExit registers the exit callback of the current state.
func (b *Builder) OnExit(action ActionFunc) *Builder {
	b.current().SetExitAction(action)
	return b
}

// OnUpdate registers the per-tick callback of the current state.
func (b *Builder) OnUpdate(action UpdateFunc) *Builder {
	b.current().SetUpdateAction(action)
	return b
}

// When appends a condition to the current state. Conditions are evaluated
// in declaration order on every tick the state is the active leaf.
func (b *Builder) When(pred Predicate, action ActionFunc) *Builder {
	if pred == nil {
		b.errs.Add(NewConfigurationError("Builder", fmt.Sprintf("nil predicate on state '%s'", b.current().Name())))
		return b
	}
	b.current().AddCondition(pred, action)
	return b
}

// On registers an event handler on the current state.
func (b *Builder) On(event string, handler EventHandler) *Builder {
	b.errs.Add(b.current().AddEvent(event, handler))
	return b
}

// WithContext attaches an opaque externally-owned value to the current
// state. The engine stores it unchanged and exposes it to the state's
// callbacks through State.Context.
func (b *Builder) WithContext(v any) *Builder {
	b.current().base().SetContext(v)
	return b
}

// Build closes construction and returns the assembled machine, ready for
// the driver to issue its initial transition. It fails if any declaration
// was left open or any registration error was collected.
func (b *Builder) Build() (*Machine, error) {
	if !b.built {
		if open := len(b.scope) - 1; open > 0 {
			b.errs.Add(NewConfigurationError("Builder",
				fmt.Sprintf("%d state declaration(s) left open; close each with End before Build", open)))
			b.scope = b.scope[:1]
		}
		b.built = true
	}

	if b.errs.HasErrors() {
		return nil, b.errs.Err()
	}
	return b.machine, nil
}

// ChangeTo returns an action that asks the state's parent to replace the
// stack top with the named sibling. Meant for wiring conditions and event
// handlers without closures. Failures are reported through the observers'
// OnError hook rather than returned: the transition operations notify it
// themselves, and a state without a parent is reported here.
func ChangeTo(name string) ActionFunc {
	return func(s State) {
		parent := s.Parent()
		if parent == nil {
			notifyNoParent(s, "ChangeTo")
			return
		}
		_ = parent.ChangeState(name)
	}
}

// PushTo returns an action that pushes the named sibling on top of the
// state's parent stack, as a resumable overlay.
func PushTo(name string) ActionFunc {
	return func(s State) {
		parent := s.Parent()
		if parent == nil {
			notifyNoParent(s, "PushTo")
			return
		}
		_ = parent.PushState(name)
	}
}

// Pop returns an action that pops the state's parent stack, unwinding the
// current overlay.
func Pop() ActionFunc {
	return func(s State) {
		parent := s.Parent()
		if parent == nil {
			notifyNoParent(s, "Pop")
			return
		}
		_ = parent.PopState()
	}
}

func notifyNoParent(s State, helper string) {
	s.base().observers.NotifyError(s, NewConfigurationError(helper,
		fmt.Sprintf("state '%s' has no parent to transition on", s.Name())))
}
