package core

import (
	"slices"
	"testing"
)

func TestInputFrameSetHas(t *testing.T) {
	var f InputFrame // zero value must be usable
	if f.Has(ActionPause) {
		t.Error("empty frame should not report actions")
	}

	f.Set(ActionPause)
	if !f.Has(ActionPause) {
		t.Error("Has(Pause) = false after Set")
	}
	if f.Has(ActionRestart) {
		t.Error("Has(Restart) = true without Set")
	}
}

func TestInputFrameTurnOrder(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionDown)
	f.Set(ActionPause)
	f.Set(ActionLeft)
	f.Set(ActionDown)

	want := []Action{ActionDown, ActionLeft, ActionDown}
	if got := f.Turns(); !slices.Equal(got, want) {
		t.Errorf("Turns() = %v, expected %v", got, want)
	}
}

func TestInputFrameClearAndClone(t *testing.T) {
	f := NewInputFrame()
	f.Set(ActionUp)
	f.Set(ActionRestart)

	clone := f.Clone()
	f.Clear()

	if f.Has(ActionUp) || len(f.Turns()) != 0 {
		t.Error("Clear should drop all actions and turns")
	}
	if !clone.Has(ActionUp) || !clone.Has(ActionRestart) {
		t.Error("Clone should be independent of the original")
	}
	if len(clone.Turns()) != 1 {
		t.Errorf("clone turns = %v, expected [Up]", clone.Turns())
	}
}

func TestActionString(t *testing.T) {
	tests := map[Action]string{
		ActionNone:       "None",
		ActionUp:         "Up",
		ActionRight:      "Right",
		ActionScreenshot: "Screenshot",
		Action(99):       "Unknown",
	}
	for a, want := range tests {
		if a.String() != want {
			t.Errorf("Action(%d).String() = %q, expected %q", a, a.String(), want)
		}
	}
}

func TestIsDirection(t *testing.T) {
	for _, a := range []Action{ActionUp, ActionDown, ActionLeft, ActionRight} {
		if !a.IsDirection() {
			t.Errorf("%v should be a direction", a)
		}
	}
	for _, a := range []Action{ActionNone, ActionPause, ActionQuit} {
		if a.IsDirection() {
			t.Errorf("%v should not be a direction", a)
		}
	}
}
