// Copyright © 2025 Texelation contributors
// SPDX-License-Identifier: AGPL-3.0-or-later
//
// File: modal/state.go
// Summary: Presentation lifecycle states and their derived categories.

package modal

// State is a node of the presentation lifecycle.
type State uint8

const (
	Initial State = iota
	PresentingProgrammatic
	PresentingGesture
	PresentedProgrammatic
	PresentedGesture
	DismissingProgrammatic
	DismissingGesture
	DismissedProgrammatic
	DismissedGesture
	SnappingProgrammatic
	SnappingFromGestureDragging
	SnappedProgrammatic
	SnappedFromGestureDragging
	GestureDragging
	DismissViaGestureCancelled
	PresentViaGestureCancelled

	stateCount
)

var stateNames = [stateCount]string{
	"initial",
	"presentingProgrammatic",
	"presentingGesture",
	"presentedProgrammatic",
	"presentedGesture",
	"dismissingProgrammatic",
	"dismissingGesture",
	"dismissedProgrammatic",
	"dismissedGesture",
	"snappingProgrammatic",
	"snappingFromGestureDragging",
	"snappedProgrammatic",
	"snappedFromGestureDragging",
	"gestureDragging",
	"dismissViaGestureCancelled",
	"presentViaGestureCancelled",
}

func (s State) String() string {
	if s < stateCount {
		return stateNames[s]
	}
	return "unknown"
}

// States lists every state in declaration order.
func States() []State {
	out := make([]State, stateCount)
	for i := range out {
		out[i] = State(i)
	}
	return out
}

func (s State) IsPresenting() bool { return s == PresentingProgrammatic || s == PresentingGesture }
func (s State) IsPresented() bool  { return s == PresentedProgrammatic || s == PresentedGesture }
func (s State) IsDismissing() bool { return s == DismissingProgrammatic || s == DismissingGesture }
func (s State) IsDismissed() bool  { return s == DismissedProgrammatic || s == DismissedGesture }
func (s State) IsSnapping() bool {
	return s == SnappingProgrammatic || s == SnappingFromGestureDragging
}
func (s State) IsSnapped() bool {
	return s == SnappedProgrammatic || s == SnappedFromGestureDragging
}

// IsCancelled reports the two gesture-reversal states.
func (s State) IsCancelled() bool {
	return s == DismissViaGestureCancelled || s == PresentViaGestureCancelled
}

func (s State) IsProgrammatic() bool {
	switch s {
	case PresentingProgrammatic, PresentedProgrammatic, DismissingProgrammatic,
		DismissedProgrammatic, SnappingProgrammatic, SnappedProgrammatic:
		return true
	}
	return false
}

func (s State) IsGesture() bool {
	return s != Initial && s < stateCount && !s.IsProgrammatic()
}

// IsHidden is true before the first presentation and after a dismissal.
func (s State) IsHidden() bool { return s == Initial || s.IsDismissed() }

// IsVisible is true whenever some part of the modal may be on screen.
func (s State) IsVisible() bool { return !s.IsHidden() && s < stateCount }

// IsAnimating reports states that end when an animation completes.
func (s State) IsAnimating() bool {
	return s.IsPresenting() || s.IsDismissing() || s.IsSnapping() || s.IsCancelled()
}

// Settled returns the state an animation starting in s ends in.
func (s State) Settled() State {
	switch s {
	case PresentingProgrammatic:
		return PresentedProgrammatic
	case PresentingGesture:
		return PresentedGesture
	case DismissingProgrammatic:
		return DismissedProgrammatic
	case DismissingGesture, PresentViaGestureCancelled:
		return DismissedGesture
	case SnappingProgrammatic:
		return SnappedProgrammatic
	case SnappingFromGestureDragging, DismissViaGestureCancelled, GestureDragging:
		return SnappedFromGestureDragging
	}
	return s
}
