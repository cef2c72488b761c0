// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: modal/machine.go
// Summary: Stateful wrapper around Transition with listener fan-out.
// Notes: Not safe for concurrent use; callers drive it from one goroutine.

package modal

import "github.com/rs/zerolog"

type listener struct {
	id int
	fn func(Event)
}

// Machine owns the current lifecycle state. State is only ever changed
// through SetState.
type Machine struct {
	Logger zerolog.Logger

	prev     State
	current  State
	override *State

	listeners []listener
	nextID    int
}

// NewMachine returns a machine in Initial.
func NewMachine() *Machine {
	return &Machine{Logger: zerolog.Nop()}
}

// State returns the current state.
func (m *Machine) State() State { return m.current }

// Prev returns the state before the current one.
func (m *Machine) Prev() State { return m.prev }

// SetOverride forces every following transition to s until ClearOverride.
func (m *Machine) SetOverride(s State) { m.override = &s }

// ClearOverride drops a forced state.
func (m *Machine) ClearOverride() { m.override = nil }

// Override returns the forced state, if any.
func (m *Machine) Override() (State, bool) {
	if m.override == nil {
		return Initial, false
	}
	return *m.override, true
}

// Listen registers fn for every event and returns a func that removes it.
func (m *Machine) Listen(fn func(Event)) (cancel func()) {
	m.nextID++
	id := m.nextID
	m.listeners = append(m.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range m.listeners {
			if l.id == id {
				m.listeners = append(m.listeners[:i], m.listeners[i+1:]...)
				return
			}
		}
	}
}

// SetState requests next. It returns the events of the accepted transition,
// already delivered to listeners, or nil when the request is a no-op.
func (m *Machine) SetState(next State) []Event {
	adjusted, ok := Transition(m.prev, m.current, next, m.override)
	if !ok {
		return nil
	}
	events := Events(m.prev, m.current, adjusted)
	m.Logger.Debug().
		Str("from", m.current.String()).
		Str("requested", next.String()).
		Str("to", adjusted.String()).
		Msg("Machine: state changed")

	m.prev, m.current = m.current, adjusted
	for _, l := range append([]listener(nil), m.listeners...) {
		for _, e := range events {
			l.fn(e)
		}
	}
	return events
}

// Reset returns the machine to Initial without emitting events.
func (m *Machine) Reset() {
	m.prev, m.current, m.override = Initial, Initial, nil
}
