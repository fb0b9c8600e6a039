package sweatci

import (
	"fmt"
	"strings"
	"unicode"
)

// Command is a named, arity-checked handler
type Command struct {
	Name    string
	MinArgs uint8
	MaxArgs uint8
	Handler Handler
	Usage   string
	// Data is host-owned; the registry never copies or frees it
	Data interface{}
}

// Registry is the ordered table of commands
type Registry struct {
	commands []*Command
	byName   map[string]*Command
	logger   *Logger
	out      Printer
	// onRemove is told about every unregistered command
	onRemove func(*Command)
}

// NewRegistry creates an empty registry
func NewRegistry(logger *Logger, out Printer) *Registry {
	return &Registry{
		byName: make(map[string]*Command),
		logger: logger,
		out:    out,
	}
}

// Register adds a command. A duplicate name is rejected and logged; the first registration wins.
func (r *Registry) Register(name string, minArgs, maxArgs uint8, handler Handler, usage string, data interface{}) (*Command, error) {
	if err := validateName(name); err != nil {
		r.logger.ErrorCat(CatCommand, "can not register command %q: %v", name, err)
		return nil, err
	}
	if handler == nil {
		r.logger.ErrorCat(CatCommand, "can not register command %q: %v", name, ErrNilHandler)
		return nil, fmt.Errorf("command %q: %w", name, ErrNilHandler)
	}
	if minArgs > maxArgs {
		r.logger.ErrorCat(CatCommand, "can not register command %q: minArgs %d > maxArgs %d", name, minArgs, maxArgs)
		return nil, fmt.Errorf("command %q: %w", name, ErrInvalidArity)
	}
	if _, exists := r.byName[name]; exists {
		r.logger.ErrorCat(CatCommand, "command with name %q already exists", name)
		return nil, fmt.Errorf("command %q: %w", name, ErrCommandExists)
	}

	cmd := &Command{
		Name:    name,
		MinArgs: minArgs,
		MaxArgs: maxArgs,
		Handler: handler,
		Usage:   usage,
		Data:    data,
	}
	r.commands = append(r.commands, cmd)
	r.byName[name] = cmd
	r.logger.DebugCat(CatCommand, "registered command %q [%d,%d]", name, minArgs, maxArgs)
	return cmd, nil
}

// Lookup finds a command by exact name, printing "unknown command" when asked to
func (r *Registry) Lookup(name string, reportUnknown bool) (*Command, bool) {
	if cmd, ok := r.byName[name]; ok {
		return cmd, true
	}
	if reportUnknown {
		r.PrintUnknown(name)
	}
	return nil, false
}

// Has reports whether name is registered
func (r *Registry) Has(name string) bool {
	_, ok := r.byName[name]
	return ok
}

// Unregister removes a command, reporting whether it existed
func (r *Registry) Unregister(name string) bool {
	cmd, ok := r.byName[name]
	if !ok {
		return false
	}
	delete(r.byName, name)
	for i, c := range r.commands {
		if c == cmd {
			r.commands = append(r.commands[:i], r.commands[i+1:]...)
			break
		}
	}
	if r.onRemove != nil {
		r.onRemove(cmd)
	}
	r.logger.DebugCat(CatCommand, "unregistered command %q", name)
	return true
}

// Commands returns the commands in registration order
func (r *Registry) Commands() []*Command {
	return append([]*Command(nil), r.commands...)
}

// Len returns the number of registered commands
func (r *Registry) Len() int {
	return len(r.commands)
}

// Clear removes every command
func (r *Registry) Clear() {
	for _, cmd := range r.Commands() {
		r.Unregister(cmd.Name)
	}
}

// Run invokes the command's handler. The caller has already filled ctx.Args.
func (r *Registry) Run(cmd *Command, ctx *Context) {
	ctx.Command = cmd
	r.logger.TraceCat(CatCommand, "run %q args=%q origin=%s", cmd.Name, ctx.Args, ctx.Origin)
	cmd.Handler(ctx)
}

// PrintUsage prints "<name> <usage>" as a warning
func (r *Registry) PrintUsage(cmd *Command) {
	r.out.Print(OutputWarning, cmd.Name+" "+cmd.Usage+"\n")
}

// PrintUnknown reports an unknown command name
func (r *Registry) PrintUnknown(name string) {
	r.out.Print(OutputError, fmt.Sprintf("unknown command \"%s\"\n", name))
}

// validateName rejects empty names and names containing whitespace
func validateName(name string) error {
	if name == "" {
		return fmt.Errorf("empty name: %w", ErrInvalidName)
	}
	if strings.IndexFunc(name, unicode.IsSpace) >= 0 {
		return fmt.Errorf("%q contains whitespace: %w", name, ErrInvalidName)
	}
	return nil
}
