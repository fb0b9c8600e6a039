package sweatci

import (
	"testing"
)

func TestShouldExpand(t *testing.T) {
	s := NewAliasRunState(nil)

	steps := []struct {
		alias   string
		expand  bool
		engaged bool
		looping bool
	}{
		{"plain", true, false, false},
		{"+jump", true, true, false},
		{"+jump", false, true, false},
		{"-jump", true, false, false},
		{"-jump", false, false, false},
		{"!spin", false, false, true},
		{"!spin", false, false, false},
	}

	for i, step := range steps {
		if got := s.ShouldExpand(step.alias); got != step.expand {
			t.Errorf("Step %d %s: expected expand=%v, got %v", i, step.alias, step.expand, got)
		}
		if got := s.IsEngaged("jump"); got != step.engaged {
			t.Errorf("Step %d %s: expected engaged=%v, got %v", i, step.alias, step.engaged, got)
		}
		if got := s.IsLooping("!spin"); got != step.looping {
			t.Errorf("Step %d %s: expected looping=%v, got %v", i, step.alias, step.looping, got)
		}
	}
}

func TestGateCommand(t *testing.T) {
	s := NewAliasRunState(nil)

	if !s.GateCommand("status") {
		t.Error("Expected plain commands to always run")
	}
	if !s.GateCommand("+attack") {
		t.Error("Expected first +attack to run")
	}
	if s.GateCommand("+attack") {
		t.Error("Expected repeated +attack to be gated")
	}
	if !s.GateCommand("-attack") {
		t.Error("Expected -attack to run while engaged")
	}
	if s.GateCommand("-attack") {
		t.Error("Expected -attack to be gated once released")
	}
}

func TestLoopAliasesKeepOrder(t *testing.T) {
	s := NewAliasRunState(nil)
	s.ToggleLoop("!b")
	s.ToggleLoop("!a")
	s.ToggleLoop("!c")
	s.StopLoop("!a")

	loops := s.LoopAliases()
	if len(loops) != 2 || loops[0] != "!b" || loops[1] != "!c" {
		t.Errorf("Expected [!b !c], got %v", loops)
	}

	// Returned slices are copies
	loops[0] = "changed"
	if s.LoopAliases()[0] != "!b" {
		t.Error("Expected LoopAliases to return a copy")
	}

	s.Engage("x")
	s.Reset()
	if len(s.LoopAliases()) != 0 || len(s.EngagedToggles()) != 0 {
		t.Error("Expected Reset to clear both sets")
	}
}
