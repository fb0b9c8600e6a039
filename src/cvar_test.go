package sweatci

import (
	"errors"
	"testing"
)

func TestValueBindings(t *testing.T) {
	var (
		s   string
		b   bool
		i   int
		i16 int16
		u16 uint16
		u8  uint8
		f32 float32
		f64 float64
	)

	tests := []struct {
		name     string
		value    Value
		input    string
		expected string
	}{
		{"string", StringVar(&s), "hello world", "hello world"},
		{"bool one", BoolVar(&b), "1", "1"},
		{"bool zero", BoolVar(&b), "0", "0"},
		{"bool word", BoolVar(&b), "true", "1"},
		{"bool negative", BoolVar(&b), "-1", "0"},
		{"int", IntVar(&i), "-42", "-42"},
		{"int from float text", IntVar(&i), "2.9", "2"},
		{"int16", Int16Var(&i16), "-300", "-300"},
		{"uint16", Uint16Var(&u16), "65535", "65535"},
		{"uint8 prints as number", Uint8Var(&u8), "65", "65"},
		{"float32", Float32Var(&f32), "0.5", "0.5"},
		{"float64 no trailing zeros", Float64Var(&f64), "2.000000", "2"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if err := tt.value.Set(tt.input); err != nil {
				t.Fatalf("Set(%q) failed: %v", tt.input, err)
			}
			if got := tt.value.String(); got != tt.expected {
				t.Errorf("Expected %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestValueSetFailureKeepsValue(t *testing.T) {
	i := 7
	u8 := uint8(9)
	i16 := int16(3)
	f := 1.5
	b := true

	tests := []struct {
		name     string
		value    Value
		input    string
		expected string
	}{
		{"int not a number", IntVar(&i), "abc", "7"},
		{"uint8 overflow", Uint8Var(&u8), "300", "9"},
		{"uint8 negative", Uint8Var(&u8), "-1", "9"},
		{"int16 overflow", Int16Var(&i16), "40000", "3"},
		{"float garbage", Float64Var(&f), "1.5x", "1.5"},
		{"bool garbage", BoolVar(&b), "maybe", "1"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.value.Set(tt.input)
			if !errors.Is(err, ErrInvalidValue) {
				t.Errorf("Expected ErrInvalidValue, got %v", err)
			}
			if got := tt.value.String(); got != tt.expected {
				t.Errorf("Expected value to stay %q, got %q", tt.expected, got)
			}
		})
	}
}

func TestFlagVar(t *testing.T) {
	flags := uint8(0x01)
	third := FlagVar(&flags, 0x04)

	if third.String() != "0" {
		t.Errorf("Expected bit clear, got %q", third.String())
	}
	if err := third.Set("1"); err != nil {
		t.Fatal(err)
	}
	if flags != 0x05 {
		t.Errorf("Expected flags 0x05, got %#x", flags)
	}
	if err := third.Set("0"); err != nil {
		t.Fatal(err)
	}
	if flags != 0x01 {
		t.Errorf("Expected other bits untouched, got %#x", flags)
	}
}

func TestValueFuncsReadOnly(t *testing.T) {
	v := ValueFuncs{StringFunc: func() string { return "fixed" }}

	if err := v.Set("x"); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Expected read-only error, got %v", err)
	}
	if v.String() != "fixed" {
		t.Errorf("Expected fixed, got %q", v.String())
	}
}

func TestCvarCommand(t *testing.T) {
	in, out := newTestInterpreter()
	sensitivity := 2.5
	if _, err := in.BindCvar("sensitivity", Float64Var(&sensitivity), "<value> - mouse sensitivity"); err != nil {
		t.Fatal(err)
	}

	in.ParseLine("sensitivity", FromConsole)
	if got := out.Text(OutputEcho); got != "2.5\n" {
		t.Errorf("Expected value echoed, got %q", got)
	}

	in.ParseLine("sensitivity 3", FromConsole)
	if sensitivity != 3 {
		t.Errorf("Expected 3, got %v", sensitivity)
	}

	out.Reset()
	in.ParseLine("sensitivity fast", FromConsole)
	if sensitivity != 3 {
		t.Errorf("Expected value unchanged after bad input, got %v", sensitivity)
	}
	if got := out.Text(OutputWarning); got != "sensitivity <value> - mouse sensitivity\n" {
		t.Errorf("Expected usage after bad input, got %q", got)
	}

	// Single-argument commands see "1 2" as one value
	out.Reset()
	in.ParseLine("sensitivity 1 2", FromConsole)
	if sensitivity != 3 {
		t.Errorf("Expected value unchanged after \"1 2\", got %v", sensitivity)
	}
	if out.Text(OutputWarning) == "" {
		t.Error("Expected usage after \"1 2\"")
	}
}

func TestBindCvarConflicts(t *testing.T) {
	in, _ := newTestInterpreter()
	in.RegisterStandardLibrary()
	var s string

	if _, err := in.BindCvar("echo", StringVar(&s), ""); !errors.Is(err, ErrCommandExists) {
		t.Errorf("Expected ErrCommandExists binding over a command, got %v", err)
	}
	if _, err := in.BindCvar("name", StringVar(&s), ""); err != nil {
		t.Fatal(err)
	}
	if _, err := in.BindCvar("name", StringVar(&s), ""); !errors.Is(err, ErrCommandExists) {
		t.Errorf("Expected ErrCommandExists binding twice, got %v", err)
	}
	if _, err := in.BindCvar("nil_value", nil, ""); !errors.Is(err, ErrInvalidValue) {
		t.Errorf("Expected ErrInvalidValue for a nil value, got %v", err)
	}
}

func TestUnbindCvar(t *testing.T) {
	in, _ := newTestInterpreter()
	var a, b string
	in.BindCvar("a", StringVar(&a), "")
	in.BindCvar("b", StringVar(&b), "")

	if !in.UnbindCvar("a") {
		t.Error("Expected UnbindCvar(a) to succeed")
	}
	if in.Registry().Has("a") {
		t.Error("Expected the shadow command to be removed")
	}

	// Removing the shadow command drops the binding too
	if !in.UnregisterCommand("b") {
		t.Error("Expected UnregisterCommand(b) to succeed")
	}
	if _, ok := in.CVars().Resolve("b"); ok {
		t.Error("Expected binding b to be gone")
	}
	if in.UnbindCvar("b") {
		t.Error("Expected UnbindCvar(b) to report nothing removed")
	}
}

func TestResolveCvar(t *testing.T) {
	in, _ := newTestInterpreter()
	n := 12
	in.BindCvar("n", IntVar(&n), "")

	value, err := in.ResolveCvar("n")
	if err != nil || value != "12" {
		t.Errorf("Expected 12, got %q (%v)", value, err)
	}
	if _, err := in.ResolveCvar("missing"); !errors.Is(err, ErrUnknownCvar) {
		t.Errorf("Expected ErrUnknownCvar, got %v", err)
	}
}
