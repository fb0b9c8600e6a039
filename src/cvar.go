package sweatci

import (
	"fmt"
	"math"
	"sort"
	"strconv"
	"strings"
)

// Value is a host variable the console can set from text and print as text.
// Set must leave the variable unchanged when it returns an error.
type Value interface {
	Set(text string) error
	String() string
}

// CVar is a named binding of a host Value
type CVar struct {
	Name  string
	Value Value
	Usage string
}

// Get returns the current value as text
func (c *CVar) Get() string {
	return c.Value.String()
}

// Set parses text into the bound value
func (c *CVar) Set(text string) error {
	return c.Value.Set(text)
}

// CVarStorage keeps CVAR bindings. Every binding is also a command of the same name.
type CVarStorage struct {
	cvars    map[string]*CVar
	registry *Registry
	logger   *Logger
	out      Printer
}

// NewCVarStorage creates a storage whose shadow commands live in registry
func NewCVarStorage(registry *Registry, logger *Logger, out Printer) *CVarStorage {
	s := &CVarStorage{
		cvars:    make(map[string]*CVar),
		registry: registry,
		logger:   logger,
		out:      out,
	}
	// Removing the shadow command removes the binding too
	registry.onRemove = func(cmd *Command) {
		if _, ok := s.cvars[cmd.Name]; ok {
			delete(s.cvars, cmd.Name)
			s.logger.DebugCat(CatVariable, "unbound cvar %q", cmd.Name)
		}
	}
	return s
}

// Bind creates a CVAR and registers its shadow command (0..1 arguments).
// A name already used by a command is rejected.
func (s *CVarStorage) Bind(name string, value Value, usage string) (*CVar, error) {
	if value == nil {
		s.logger.ErrorCat(CatVariable, "can not bind cvar %q: nil value", name)
		return nil, fmt.Errorf("cvar %q: nil value: %w", name, ErrInvalidValue)
	}
	if s.registry.Has(name) {
		s.logger.ErrorCat(CatVariable, "command with name %q already exists, can not bind cvar", name)
		return nil, fmt.Errorf("cvar %q: %w", name, ErrCommandExists)
	}

	if _, err := s.registry.Register(name, 0, 1, s.dispatch, usage, value); err != nil {
		return nil, err
	}

	cvar := &CVar{Name: name, Value: value, Usage: usage}
	s.cvars[name] = cvar
	s.logger.DebugCat(CatVariable, "bound cvar %q = %q", name, value.String())
	return cvar, nil
}

// Resolve looks up a CVAR by name
func (s *CVarStorage) Resolve(name string) (*CVar, bool) {
	c, ok := s.cvars[name]
	return c, ok
}

// Unbind removes a CVAR and its shadow command
func (s *CVarStorage) Unbind(name string) bool {
	if _, ok := s.cvars[name]; !ok {
		return false
	}
	return s.registry.Unregister(name)
}

// Names returns every CVAR name in sorted order
func (s *CVarStorage) Names() []string {
	names := make([]string, 0, len(s.cvars))
	for name := range s.cvars {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// dispatch is the handler shared by every CVAR command.
// No arguments prints the value; one argument sets it and shows usage on failure.
func (s *CVarStorage) dispatch(ctx *Context) {
	value, ok := ctx.Command.Data.(Value)
	if !ok {
		s.out.Print(OutputError, fmt.Sprintf("\"%s\" CVAR not found\n", ctx.Command.Name))
		return
	}

	if len(ctx.Args) == 0 {
		s.out.Print(OutputEcho, value.String()+"\n")
		return
	}

	if err := value.Set(ctx.Args[0]); err != nil {
		s.logger.DebugCat(CatVariable, "cvar %q rejected %q: %v", ctx.Command.Name, ctx.Args[0], err)
		s.registry.PrintUsage(ctx.Command)
	}
}

// Typed Value implementations, in the style of the flag package

type stringValue string

// StringVar binds a string
func StringVar(p *string) Value { return (*stringValue)(p) }

func (v *stringValue) Set(text string) error {
	*v = stringValue(text)
	return nil
}

func (v *stringValue) String() string { return string(*v) }

type boolValue bool

// BoolVar binds a bool. Numbers <= 0 mean false, other numbers true; true/false words also work.
func BoolVar(p *bool) Value { return (*boolValue)(p) }

func (v *boolValue) Set(text string) error {
	b, err := parseBool(text)
	if err != nil {
		return err
	}
	*v = boolValue(b)
	return nil
}

func (v *boolValue) String() string { return formatBool(bool(*v)) }

type intValue int

// IntVar binds an int
func IntVar(p *int) Value { return (*intValue)(p) }

func (v *intValue) Set(text string) error {
	n, err := parseSigned(text, strconv.IntSize)
	if err != nil {
		return err
	}
	*v = intValue(n)
	return nil
}

func (v *intValue) String() string { return strconv.Itoa(int(*v)) }

type int16Value int16

// Int16Var binds an int16
func Int16Var(p *int16) Value { return (*int16Value)(p) }

func (v *int16Value) Set(text string) error {
	n, err := parseSigned(text, 16)
	if err != nil {
		return err
	}
	*v = int16Value(n)
	return nil
}

func (v *int16Value) String() string { return strconv.FormatInt(int64(*v), 10) }

type uint16Value uint16

// Uint16Var binds a uint16
func Uint16Var(p *uint16) Value { return (*uint16Value)(p) }

func (v *uint16Value) Set(text string) error {
	n, err := parseUnsigned(text, 16)
	if err != nil {
		return err
	}
	*v = uint16Value(n)
	return nil
}

func (v *uint16Value) String() string { return strconv.FormatUint(uint64(*v), 10) }

type uint8Value uint8

// Uint8Var binds a uint8, printed as a number rather than a character
func Uint8Var(p *uint8) Value { return (*uint8Value)(p) }

func (v *uint8Value) Set(text string) error {
	n, err := parseUnsigned(text, 8)
	if err != nil {
		return err
	}
	*v = uint8Value(n)
	return nil
}

func (v *uint8Value) String() string { return strconv.FormatUint(uint64(*v), 10) }

type float32Value float32

// Float32Var binds a float32
func Float32Var(p *float32) Value { return (*float32Value)(p) }

func (v *float32Value) Set(text string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 32)
	if err != nil {
		return fmt.Errorf("%q: %w", text, ErrInvalidValue)
	}
	*v = float32Value(f)
	return nil
}

func (v *float32Value) String() string { return strconv.FormatFloat(float64(*v), 'f', -1, 32) }

type float64Value float64

// Float64Var binds a float64
func Float64Var(p *float64) Value { return (*float64Value)(p) }

func (v *float64Value) Set(text string) error {
	f, err := strconv.ParseFloat(strings.TrimSpace(text), 64)
	if err != nil {
		return fmt.Errorf("%q: %w", text, ErrInvalidValue)
	}
	*v = float64Value(f)
	return nil
}

func (v *float64Value) String() string { return FormatNumber(float64(*v)) }

type flagValue struct {
	flags *uint8
	bit   uint8
}

// FlagVar binds one bit (or bit mask) of a flags byte as a boolean
func FlagVar(flags *uint8, bit uint8) Value {
	return &flagValue{flags: flags, bit: bit}
}

func (v *flagValue) Set(text string) error {
	b, err := parseBool(text)
	if err != nil {
		return err
	}
	if b {
		*v.flags |= v.bit
	} else {
		*v.flags &^= v.bit
	}
	return nil
}

func (v *flagValue) String() string { return formatBool(*v.flags&v.bit == v.bit) }

// ValueFuncs adapts a pair of functions to Value, for host types without a
// dedicated binding. A nil SetFunc makes the CVAR read-only.
type ValueFuncs struct {
	SetFunc    func(text string) error
	StringFunc func() string
}

func (v ValueFuncs) Set(text string) error {
	if v.SetFunc == nil {
		return fmt.Errorf("read-only: %w", ErrInvalidValue)
	}
	return v.SetFunc(text)
}

func (v ValueFuncs) String() string {
	if v.StringFunc == nil {
		return ""
	}
	return v.StringFunc()
}

// parseSigned parses an integer of the given size. Float text is truncated
// toward zero so values written by incrementvar ("2.5") still fit.
func parseSigned(text string, bits int) (int64, error) {
	text = strings.TrimSpace(text)
	if n, err := strconv.ParseInt(text, 10, bits); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q: %w", text, ErrInvalidValue)
	}
	f = math.Trunc(f)
	limit := math.Ldexp(1, bits-1)
	if f < -limit || f >= limit {
		return 0, fmt.Errorf("%q out of range: %w", text, ErrInvalidValue)
	}
	return int64(f), nil
}

// parseUnsigned is parseSigned for unsigned sizes
func parseUnsigned(text string, bits int) (uint64, error) {
	text = strings.TrimSpace(text)
	if n, err := strconv.ParseUint(text, 10, bits); err == nil {
		return n, nil
	}
	f, err := strconv.ParseFloat(text, 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, fmt.Errorf("%q: %w", text, ErrInvalidValue)
	}
	f = math.Trunc(f)
	if f < 0 || f >= math.Ldexp(1, bits) {
		return 0, fmt.Errorf("%q out of range: %w", text, ErrInvalidValue)
	}
	return uint64(f), nil
}

func parseBool(text string) (bool, error) {
	if n, err := parseSigned(text, 64); err == nil {
		return n > 0, nil
	}
	b, err := strconv.ParseBool(strings.TrimSpace(text))
	if err != nil {
		return false, fmt.Errorf("%q: %w", text, ErrInvalidValue)
	}
	return b, nil
}

func formatBool(b bool) string {
	if b {
		return "1"
	}
	return "0"
}

// FormatNumber prints a float without trailing zeros ("2", "2.5")
func FormatNumber(f float64) string {
	return strconv.FormatFloat(f, 'f', -1, 64)
}
