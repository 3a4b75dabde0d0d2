package stax

import (
	"math"
	"testing"
)

// TestObserver is a mock observer for testing that captures all observer
// notifications in arrival order
type TestObserver struct {
	Enters      []string
	Exits       []string
	Transitions []TransitionRecord
	Updates     []UpdateRecord
	Conditions  []ConditionRecord
	Events      []EventRecord
	Rejections  []RejectionRecord
	Errors      []ErrorRecord

	// Sequence interleaves enters and exits ("enter:X" / "exit:X") so
	// tests can assert ordering across both
	Sequence []string
}

type TransitionRecord struct {
	Parent string
	From   string
	To     string
	Op     StackOp
}

type UpdateRecord struct {
	State string
	Delta float64
}

type ConditionRecord struct {
	State string
	Index int
}

type EventRecord struct {
	State string
	Event *Event
}

type RejectionRecord struct {
	State  string
	Event  *Event
	Reason string
}

type ErrorRecord struct {
	State string
	Err   error
}

// NewTestObserver creates a new test observer
func NewTestObserver() *TestObserver {
	return &TestObserver{}
}

// OnStateEnter records state entries
func (o *TestObserver) OnStateEnter(s State) {
	o.Enters = append(o.Enters, s.Name())
	o.Sequence = append(o.Sequence, "enter:"+s.Name())
}

// OnStateExit records state exits
func (o *TestObserver) OnStateExit(s State) {
	o.Exits = append(o.Exits, s.Name())
	o.Sequence = append(o.Sequence, "exit:"+s.Name())
}

// OnTransition records stack operations
func (o *TestObserver) OnTransition(parent State, from, to State, op StackOp) {
	record := TransitionRecord{Parent: parent.Name(), Op: op}
	if from != nil {
		record.From = from.Name()
	}
	if to != nil {
		record.To = to.Name()
	}
	o.Transitions = append(o.Transitions, record)
}

// OnUpdate records leaf ticks
func (o *TestObserver) OnUpdate(s State, delta float64) {
	o.Updates = append(o.Updates, UpdateRecord{State: s.Name(), Delta: delta})
}

// OnConditionFired records fired conditions
func (o *TestObserver) OnConditionFired(s State, index int) {
	o.Conditions = append(o.Conditions, ConditionRecord{State: s.Name(), Index: index})
}

// OnEventTriggered records handled events
func (o *TestObserver) OnEventTriggered(s State, event *Event) {
	o.Events = append(o.Events, EventRecord{State: s.Name(), Event: event})
}

// OnEventRejected records unhandled events
func (o *TestObserver) OnEventRejected(s State, event *Event, reason string) {
	o.Rejections = append(o.Rejections, RejectionRecord{State: s.Name(), Event: event, Reason: reason})
}

// OnError records failed transition operations
func (o *TestObserver) OnError(s State, err error) {
	o.Errors = append(o.Errors, ErrorRecord{State: s.Name(), Err: err})
}

// EnterCount returns how often the named state was entered
func (o *TestObserver) EnterCount(name string) int {
	return countString(o.Enters, name)
}

// ExitCount returns how often the named state was exited
func (o *TestObserver) ExitCount(name string) int {
	return countString(o.Exits, name)
}

func countString(values []string, target string) int {
	count := 0
	for _, v := range values {
		if v == target {
			count++
		}
	}
	return count
}

// CreateSimpleMachine builds the flat fixture used across tests: a root
// with children Idle, Moving and Paused and no callbacks attached.
func CreateSimpleMachine() *Machine {
	machine := NewMachine("game")
	_ = machine.AddChild("Idle", NewState("Idle"))
	_ = machine.AddChild("Moving", NewState("Moving"))
	_ = machine.AddChild("Paused", NewState("Paused"))
	return machine
}

// CreateNestedMachine builds the hierarchical fixture: the Moving child
// additionally contains Walking and Running substates.
func CreateNestedMachine() *Machine {
	machine := CreateSimpleMachine()
	moving, _ := machine.Child("Moving")
	_ = moving.AddChild("Walking", NewState("Walking"))
	_ = moving.AddChild("Running", NewState("Running"))
	return machine
}

// AssertActivePath checks the machine's current root-to-leaf configuration
func AssertActivePath(t *testing.T, machine *Machine, expected ...string) {
	t.Helper()
	path := machine.ActivePath()
	if len(path) != len(expected) {
		t.Fatalf("Expected active path %v, got %v", expected, path)
	}
	for i := range expected {
		if path[i] != expected[i] {
			t.Fatalf("Expected active path %v, got %v", expected, path)
		}
	}
}

// AssertErrorCode checks that an error carries the expected code
func AssertErrorCode(t *testing.T, err error, code ErrorCode) {
	t.Helper()
	if err == nil {
		t.Fatalf("Expected error with code %d, got nil", code)
	}
	if got := GetErrorCode(err); got != code {
		t.Errorf("Expected error code %d, got %d (%v)", code, got, err)
	}
}

// AssertElapsed checks a state's elapsed time within a small tolerance
func AssertElapsed(t *testing.T, s State, expected float64) {
	t.Helper()
	if math.Abs(s.ElapsedTime()-expected) > 1e-9 {
		t.Errorf("Expected elapsed time %.6f on %s, got %.6f", expected, s.Name(), s.ElapsedTime())
	}
}
