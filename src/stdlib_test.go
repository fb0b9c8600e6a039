package sweatci

import (
	"strings"
	"testing"
)

func newStdlibInterpreter() (*Interpreter, *BufferPrinter) {
	in, out := newTestInterpreter()
	in.RegisterStandardLibrary()
	return in, out
}

func TestHelp(t *testing.T) {
	in, out := newStdlibInterpreter()

	in.ParseLine("help echo", FromConsole)
	if got := out.Text(OutputWarning); got != "echo <message> - echoes a message to the console\n" {
		t.Errorf("Unexpected help output %q", got)
	}

	out.Reset()
	in.ParseLine("help", FromConsole)
	expected := "help <command> - shows the usage of the command specified - see \"commands\" command to get a list of commands\n"
	if got := out.Text(OutputWarning); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}

	out.Reset()
	in.ParseLine("help nothing", FromConsole)
	if got := out.Text(OutputError); got != "unknown command \"nothing\"\n" {
		t.Errorf("Expected unknown command, got %q", got)
	}
}

func TestCommandsListing(t *testing.T) {
	in, out := newStdlibInterpreter()

	in.ParseLine("commands", FromConsole)

	lines := strings.Split(strings.TrimSuffix(out.Text(OutputEcho), "\n"), "\n")
	if len(lines) != in.Registry().Len() {
		t.Fatalf("Expected %d lines, got %d", in.Registry().Len(), len(lines))
	}
	if lines[0] != "help <command> - shows the usage of the command specified" {
		t.Errorf("Expected help first, got %q", lines[0])
	}
}

func TestAliasCommand(t *testing.T) {
	in, out := newStdlibInterpreter()

	in.ParseLine(`alias greet "echo hi"`, FromConsole)
	if v, ok := in.Variables().Get("greet"); !ok || v != "echo hi" {
		t.Errorf("Expected greet = \"echo hi\", got %q", v)
	}

	in.ParseLine("alias greet", FromConsole)
	if _, ok := in.Variables().Get("greet"); ok {
		t.Error("Expected greet to be deleted")
	}

	in.ParseLine("alias greet", FromConsole)
	if got := out.Text(OutputError); got != "\"greet\" variable not found\n" {
		t.Errorf("Unexpected error %q", got)
	}

	out.Reset()
	in.ParseLine("alias echo foo", FromConsole)
	if got := out.Text(OutputError); got != "varName is a command name, therefore this variable can not be created\n" {
		t.Errorf("Unexpected error %q", got)
	}

	out.Reset()
	in.ParseLine(`alias "two words" foo`, FromConsole)
	if got := out.Text(OutputError); got != "variable name can not have whitespace.\n" {
		t.Errorf("Unexpected error %q", got)
	}
}

func TestAliasDeleteStopsState(t *testing.T) {
	in, _ := newStdlibInterpreter()

	in.ParseLine(`alias !spin "echo x"; !spin`, FromConsole)
	in.ParseLine(`alias +move "echo go"; +move`, FromConsole)

	in.ParseLine("alias !spin; alias +move", FromConsole)

	if in.AliasState().IsLooping("!spin") {
		t.Error("Expected deleting !spin to stop the loop")
	}
	if in.AliasState().IsEngaged("move") {
		t.Error("Expected deleting +move to release the toggle")
	}
}

func TestVariablesListing(t *testing.T) {
	in, out := newStdlibInterpreter()

	in.ParseLine("alias b 2; alias a 1", FromConsole)
	in.ParseLine("variables", FromConsole)

	expected := "amount of variables: 2\na = \"1\"\nb = \"2\"\n"
	if got := out.Text(OutputEcho); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}
}

func TestCvarsListing(t *testing.T) {
	in, out := newStdlibInterpreter()
	fov := 90
	name := "player"
	in.BindCvar("name", StringVar(&name), "<text> - player name")
	in.BindCvar("fov", IntVar(&fov), "<degrees> - field of view")

	in.ParseLine("cvars", FromConsole)

	expected := "amount of cvars: 2\nfov = \"90\"\nname = \"player\"\n"
	if got := out.Text(OutputEcho); got != expected {
		t.Errorf("Expected %q, got %q", expected, got)
	}

	out.Reset()
	in.UnbindCvar("fov")
	in.ParseLine("cvars", FromConsole)
	if got := out.Text(OutputEcho); got != "amount of cvars: 1\nname = \"player\"\n" {
		t.Errorf("Expected fov to be gone, got %q", got)
	}
}

func TestVariableCommand(t *testing.T) {
	in, out := newStdlibInterpreter()

	in.ParseLine("alias a 1; variable a", FromConsole)
	if got := out.Text(OutputEcho); got != "a = \"1\"\n" {
		t.Errorf("Unexpected output %q", got)
	}

	in.ParseLine("variable missing", FromConsole)
	if got := out.Text(OutputError); got != "variable \"missing\" does not exist\n" {
		t.Errorf("Unexpected error %q", got)
	}
}

func TestIncrementVar(t *testing.T) {
	tests := []struct {
		name     string
		start    string
		args     string
		expected string
	}{
		{"simple", "1", "0 10 1", "2"},
		{"wraps past max", "9", "0 10 3", "2"},
		{"lands on max", "7", "0 10 3", "10"},
		{"wraps below min", "1", "0 10 -3", "8"},
		{"fractional", "0.5", "0 1 0.25", "0.75"},
		{"zero width range", "5", "3 3 1", "3"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, out := newStdlibInterpreter()
			in.Variables().Set("x", tt.start)

			in.ParseLine("incrementvar x "+tt.args, FromConsole)

			if v, _ := in.Variables().Get("x"); v != tt.expected {
				t.Errorf("Expected x=%s, got %s", tt.expected, v)
			}
			if out.Text(OutputError) != "" {
				t.Errorf("Unexpected error %q", out.Text(OutputError))
			}
		})
	}
}

func TestIncrementVarCvar(t *testing.T) {
	in, _ := newStdlibInterpreter()
	x := 9
	in.BindCvar("x", IntVar(&x), "<n> - test value")

	in.ParseLine("incrementvar x 0 10 3", FromConsole)

	if x != 2 {
		t.Errorf("Expected x=2, got %d", x)
	}
}

func TestIncrementVarErrors(t *testing.T) {
	tests := []struct {
		name     string
		line     string
		expected string
	}{
		{"bad bound", "incrementvar x a 10 1", "one of the variables is not a number\n"},
		{"bad delta", "incrementvar x 0 10 fast", "one of the variables is not a number\n"},
		{"min above max", "incrementvar x 10 0 1", "minValue is higher than maxValue\n"},
		{"unknown", "incrementvar missing 0 10 1", "unknown variable \"missing\"\n"},
		{"not a number", "incrementvar word 0 10 1", "variable value \"abc\" is not a number\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			in, out := newStdlibInterpreter()
			in.Variables().Set("x", "5")
			in.Variables().Set("word", "abc")

			in.ParseLine(tt.line, FromConsole)

			if got := out.Text(OutputError); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
			if v, _ := in.Variables().Get("x"); v != "5" {
				t.Errorf("Expected x unchanged, got %s", v)
			}
			if v, _ := in.Variables().Get("word"); v != "abc" {
				t.Errorf("Expected word unchanged, got %s", v)
			}
		})
	}
}

func TestToggle(t *testing.T) {
	in, out := newStdlibInterpreter()

	in.ParseLine("alias mode walk", FromConsole)
	in.ParseLine("toggle mode walk run", FromConsole)
	if v, _ := in.Variables().Get("mode"); v != "run" {
		t.Errorf("Expected run, got %s", v)
	}
	in.ParseLine("toggle mode walk run", FromConsole)
	if v, _ := in.Variables().Get("mode"); v != "walk" {
		t.Errorf("Expected walk, got %s", v)
	}

	// Anything other than the first option flips to the first option
	in.Variables().Set("mode", "crouch")
	in.ParseLine("toggle mode walk run", FromConsole)
	if v, _ := in.Variables().Get("mode"); v != "walk" {
		t.Errorf("Expected walk, got %s", v)
	}

	in.ParseLine("toggle missing a b", FromConsole)
	if got := out.Text(OutputError); got != "unknown variable \"missing\"\n" {
		t.Errorf("Unexpected error %q", got)
	}
}

func TestToggleCvar(t *testing.T) {
	in, _ := newStdlibInterpreter()
	crosshair := false
	in.BindCvar("crosshair", BoolVar(&crosshair), "<0|1> - show crosshair")

	in.ParseLine("toggle crosshair 0 1", FromConsole)
	if !crosshair {
		t.Error("Expected crosshair on")
	}
	in.ParseLine("toggle crosshair 0 1", FromConsole)
	if crosshair {
		t.Error("Expected crosshair off")
	}
}

func TestHostCommandKeepsName(t *testing.T) {
	in, out := newTestInterpreter()
	calls := recorder(t, in, "echo", 0, 3)

	in.RegisterStandardLibrary()
	in.ParseLine("echo a b", FromConsole)

	if len(*calls) != 1 || len((*calls)[0]) != 2 {
		t.Errorf("Expected the host's echo to run with 2 args, got %q", *calls)
	}
	if out.Text(OutputEcho) != "" {
		t.Errorf("Expected the built-in echo not to run, got %q", out.Text(OutputEcho))
	}
}
