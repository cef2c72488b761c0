// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: modal/transition.go
// Summary: Pure transition function and lifecycle events.

package modal

import "fmt"

// Transition adjusts a requested state given the previous and current
// states. An override, when non-nil, wins over every rule. The second
// result is false when the adjusted state equals current.
func Transition(prev, current, next State, override *State) (State, bool) {
	adjusted := next
	switch {
	case override != nil:
		adjusted = *override

	// A dismiss gesture that reverses mid-flight is a cancellation.
	case prev == DismissingGesture && current == GestureDragging && next == SnappingFromGestureDragging:
		adjusted = DismissViaGestureCancelled

	case prev == DismissingProgrammatic && current == DismissedProgrammatic && next == SnappedProgrammatic:
		adjusted = DismissedProgrammatic

	// A present gesture that reverses mid-flight is a cancellation too.
	case current == PresentingGesture && next == DismissingGesture:
		adjusted = PresentViaGestureCancelled

	// Snapping a hidden modal presents it.
	case (current.IsHidden() || current.IsDismissing()) && next.IsSnapping():
		if next.IsProgrammatic() {
			adjusted = PresentingProgrammatic
		} else {
			adjusted = PresentingGesture
		}
	}
	return adjusted, adjusted != current
}

// EventType names a lifecycle notification.
type EventType uint8

const (
	EventStateChanged EventType = iota
	EventWillShow
	EventDidShow
	EventWillHide
	EventDidHide
	EventPresentCancelled
	EventDismissCancelled
)

var eventNames = []string{
	"stateChanged", "willShow", "didShow", "willHide", "didHide",
	"presentCancelled", "dismissCancelled",
}

func (t EventType) String() string {
	if int(t) < len(eventNames) {
		return eventNames[t]
	}
	return fmt.Sprintf("EventType(%d)", uint8(t))
}

// Event describes one accepted transition From -> To; Prev is the state
// before From.
type Event struct {
	Type EventType
	Prev State
	From State
	To   State
}

func (e Event) String() string {
	return fmt.Sprintf("%s %s->%s", e.Type, e.From, e.To)
}

// Events derives the notifications for an accepted transition.
func Events(prev, from, to State) []Event {
	mk := func(t EventType) Event { return Event{Type: t, Prev: prev, From: from, To: to} }
	out := []Event{mk(EventStateChanged)}

	if to.IsPresenting() && !from.IsPresenting() {
		out = append(out, mk(EventWillShow))
	}
	if to.IsPresented() && !from.IsPresented() {
		out = append(out, mk(EventDidShow))
	}
	if (to.IsDismissing() || to == PresentViaGestureCancelled) && !from.IsDismissing() {
		out = append(out, mk(EventWillHide))
	}
	if to.IsDismissed() && !from.IsDismissed() {
		out = append(out, mk(EventDidHide))
	}
	if prev.IsHidden() && from.IsPresenting() &&
		(to.IsDismissing() || to.IsDismissed() || to == PresentViaGestureCancelled) {
		out = append(out, mk(EventPresentCancelled))
	}
	if from.IsDismissing() && !to.IsDismissing() && !to.IsDismissed() {
		out = append(out, mk(EventDismissCancelled))
	}
	return out
}
