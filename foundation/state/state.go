// Package state serializes the lifecycle of the single in-flight
// recording session. One recording at a time: a new session must not
// start while a previous one's analysis is still pending.
package state

import (
	"fmt"
	"sync"
)

type Phase int

const (
	Idle Phase = iota
	Recording
	Stopped
	Analyzed
)

func (p Phase) String() string {
	switch p {
	case Idle:
		return "idle"
	case Recording:
		return "recording"
	case Stopped:
		return "stopped"
	case Analyzed:
		return "analyzed"
	}
	return "unknown"
}

type Machine struct {
	sync.RWMutex

	phase Phase
}

func NewMachine() *Machine {
	return &Machine{phase: Idle}
}

func (m *Machine) Phase() Phase {
	m.RLock()
	defer m.RUnlock()
	{
		return m.phase
	}
}

// Transition moves the machine to the next phase, rejecting anything that
// would overlap sessions or analyze a live recording.
func (m *Machine) Transition(next Phase) error {
	m.Lock()
	defer m.Unlock()
	{
		if !legal(m.phase, next) {
			return fmt.Errorf("illegal transition %s -> %s", m.phase, next)
		}
		m.phase = next
	}

	return nil
}

func legal(from, to Phase) bool {
	switch to {
	case Recording:
		return from == Idle || from == Analyzed

	case Stopped:
		return from == Recording

	case Analyzed:
		return from == Stopped
	}
	return false
}
