package state_test

import (
	"testing"

	"github.com/hsbadam/Syn10platform/foundation/state"
)

func TestMachineLifecycle(t *testing.T) {
	t.Parallel()

	m := state.NewMachine()

	steps := []state.Phase{state.Recording, state.Stopped, state.Analyzed, state.Recording}
	for _, next := range steps {
		if err := m.Transition(next); err != nil {
			t.Fatalf("transition to %s: %v", next, err)
		}
	}
}

func TestMachineRejectsOverlappingSessions(t *testing.T) {
	t.Parallel()

	m := state.NewMachine()
	if err := m.Transition(state.Recording); err != nil {
		t.Fatal(err)
	}
	if err := m.Transition(state.Stopped); err != nil {
		t.Fatal(err)
	}

	// Analysis is still pending; a new recording must wait.
	if err := m.Transition(state.Recording); err == nil {
		t.Fatal("recording started while analysis pending")
	}
}

func TestMachineRejectsAnalyzeWhileRecording(t *testing.T) {
	t.Parallel()

	m := state.NewMachine()
	if err := m.Transition(state.Recording); err != nil {
		t.Fatal(err)
	}

	if err := m.Transition(state.Analyzed); err == nil {
		t.Fatal("analyzed a live recording")
	}
}
