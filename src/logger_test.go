package sweatci

import (
	"testing"
)

func TestLoggerGating(t *testing.T) {
	out := NewBufferPrinter()
	l := NewLogger(false, out)

	l.DebugCat(CatParse, "hidden %d", 1)
	l.TraceCat(CatNone, "hidden too")
	if out.String() != "" {
		t.Errorf("Expected debug output to be off, got %q", out.String())
	}

	l.WarnCat(CatSystem, "careful")
	if got := out.Text(OutputWarning); got != "[SweatCI:system WARN] careful\n" {
		t.Errorf("Unexpected warning %q", got)
	}

	out.Reset()
	l.SetEnabled(true)
	l.DebugCat(CatParse, "still hidden")
	if out.String() != "" {
		t.Errorf("Expected a disabled category to stay quiet, got %q", out.String())
	}

	l.EnableCategory(CatParse)
	if !l.IsCategoryEnabled(CatParse) || l.IsCategoryEnabled(CatIO) {
		t.Error("Expected only the parse category to be enabled")
	}
	l.DebugCat(CatParse, "token %s", "echo")
	if got := out.Text(OutputDefault); got != "[DEBUG:parse] token echo\n" {
		t.Errorf("Unexpected debug line %q", got)
	}

	out.Reset()
	l.DisableCategory(CatParse)
	if l.IsCategoryEnabled(CatParse) {
		t.Error("Expected parse to be disabled")
	}
	l.DebugCat(CatParse, "gone")
	l.DebugCat(CatNone, "uncategorized")
	if got := out.String(); got != "[DEBUG] uncategorized\n" {
		t.Errorf("Expected only the uncategorized line, got %q", got)
	}
}

func TestEnableAllCategories(t *testing.T) {
	l := NewLogger(true, NewBufferPrinter())
	l.EnableAllCategories()

	for _, cat := range AllLogCategories() {
		if !l.IsCategoryEnabled(cat) {
			t.Errorf("Expected %s to be enabled", cat)
		}
	}
}

func TestLoggerLevels(t *testing.T) {
	out := NewBufferPrinter()
	l := NewLogger(false, out)

	l.NoticeCat(CatIO, "reloading")
	l.ErrorCat(CatCommand, "broken")

	if got := out.Text(OutputEcho); got != "[SweatCI:io NOTICE] reloading\n" {
		t.Errorf("Unexpected notice %q", got)
	}
	if got := out.Text(OutputError); got != "[SweatCI:command ERROR] broken\n" {
		t.Errorf("Unexpected error %q", got)
	}
}

func TestLoggerPosition(t *testing.T) {
	out := NewBufferPrinter()
	l := NewLogger(false, out)

	l.ErrorAt(CatParse, SourcePosition{Filename: "game.cfg", Line: 4, Column: 2}, "bad %s", "thing")
	l.ErrorAt(CatParse, SourcePosition{Line: 1, Column: 7}, "typed")

	expected := "[SweatCI:parse ERROR] bad thing\n  at line 4, column 2 in game.cfg\n" +
		"[SweatCI:parse ERROR] typed\n  at line 1, column 7 in <console>\n"
	if got := out.Text(OutputError); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestParseLogCategory(t *testing.T) {
	tests := []struct {
		input    string
		expected LogCategory
		ok       bool
	}{
		{"parse", CatParse, true},
		{" Macro ", CatMacro, true},
		{"IO", CatIO, true},
		{"", CatNone, false},
		{"network", CatNone, false},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			cat, ok := ParseLogCategory(tt.input)
			if cat != tt.expected || ok != tt.ok {
				t.Errorf("Expected (%q, %v), got (%q, %v)", tt.expected, tt.ok, cat, ok)
			}
		})
	}
}
