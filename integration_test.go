package stax

import (
	"testing"
)

// Full driver-style scenarios: build a tree, select a starting child, then
// tick the root the way a host update loop would.

func TestIntegration_IdleTicksAfterInitialTransition(t *testing.T) {
	updates := 0
	builder := NewBuilder("game")
	builder.State("Idle").
		OnUpdate(func(s State, delta float64) { updates++ }).
		End()
	builder.State("Moving").End()

	machine, err := builder.Build()
	if err != nil {
		t.Fatalf("Expected build to succeed, got: %v", err)
	}

	if err := machine.ChangeState("Idle"); err != nil {
		t.Fatalf("Expected initial transition to succeed, got: %v", err)
	}
	machine.Update(tick)

	if updates != 1 {
		t.Errorf("Expected Idle to tick exactly once, got %d", updates)
	}
	idle, _ := machine.Child("Idle")
	AssertElapsed(t, idle, tick)
}

func TestIntegration_ConditionDrivenTransition(t *testing.T) {
	inputPressed := false

	builder := NewBuilder("game")
	builder.State("Idle").
		When(func(s State) bool { return inputPressed }, ChangeTo("Moving")).
		End()
	builder.State("Moving").End()

	machine, err := builder.Build()
	if err != nil {
		t.Fatalf("Expected build to succeed, got: %v", err)
	}
	observer := NewTestObserver()
	machine.AddObserver(observer)

	_ = machine.ChangeState("Idle")
	machine.Update(tick)
	AssertActivePath(t, machine, "game", "Idle")

	inputPressed = true
	machine.Update(tick)

	if observer.ExitCount("Idle") != 1 || observer.EnterCount("Moving") != 1 {
		t.Errorf("Expected exactly one Idle exit and one Moving enter, got %d/%d",
			observer.ExitCount("Idle"), observer.EnterCount("Moving"))
	}

	// subsequent ticks go to Moving, not Idle
	idle, _ := machine.Child("Idle")
	moving, _ := machine.Child("Moving")
	idleElapsed := idle.ElapsedTime()
	machine.Update(tick)
	AssertElapsed(t, moving, tick)
	AssertElapsed(t, idle, idleElapsed)
}

func TestIntegration_PausedOverlayResumesByEvent(t *testing.T) {
	builder := NewBuilder("game")
	builder.State("Moving").End()
	builder.State("Paused").
		On("resume", func(s State, args any) { _ = s.Parent().PopState() }).
		End()

	machine, err := builder.Build()
	if err != nil {
		t.Fatalf("Expected build to succeed, got: %v", err)
	}
	moving, _ := machine.Child("Moving")

	_ = machine.ChangeState("Moving")
	machine.Update(tick)
	machine.Update(tick)

	if err := machine.PushState("Paused"); err != nil {
		t.Fatalf("Expected push to succeed, got: %v", err)
	}
	machine.Update(tick)

	if err := machine.TriggerEvent("resume", nil); err != nil {
		t.Fatalf("Expected resume to route to the Paused leaf, got: %v", err)
	}

	AssertActivePath(t, machine, "game", "Moving")
	// Moving only accumulated while it was the actual leaf
	AssertElapsed(t, moving, 2*tick)

	machine.Update(tick)
	AssertElapsed(t, moving, 3*tick)
}

func TestIntegration_FixedTimestepLoop(t *testing.T) {
	type input struct {
		moving bool
		paused bool
	}
	in := &input{}

	builder := NewBuilder("player")
	builder.State("Idle").
		WithContext(in).
		When(func(s State) bool { return s.Context().(*input).moving }, ChangeTo("Moving")).
		End()
	builder.State("Moving").
		WithContext(in).
		When(func(s State) bool { return !s.Context().(*input).moving }, ChangeTo("Idle")).
		When(func(s State) bool { return s.Context().(*input).paused }, PushTo("Paused")).
		End()
	builder.State("Paused").
		WithContext(in).
		On("resume", func(s State, args any) {
			s.Context().(*input).paused = false
			_ = s.Parent().PopState()
		}).
		End()

	machine, err := builder.Build()
	if err != nil {
		t.Fatalf("Expected build to succeed, got: %v", err)
	}

	_ = machine.ChangeState("Idle")

	step := func(frames int) {
		for i := 0; i < frames; i++ {
			machine.Update(tick)
		}
	}

	step(2)
	AssertActivePath(t, machine, "player", "Idle")

	in.moving = true
	step(1)
	AssertActivePath(t, machine, "player", "Moving")

	in.paused = true
	step(1)
	AssertActivePath(t, machine, "player", "Paused")

	step(3)
	_ = machine.TriggerEvent("resume", nil)
	AssertActivePath(t, machine, "player", "Moving")

	in.moving = false
	step(1)
	AssertActivePath(t, machine, "player", "Idle")
}
