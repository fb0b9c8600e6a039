package sweatci

// Interpreter is one console session: commands, CVARs, aliases and toggle state.
// It is not safe for concurrent use; hosts calling it from several goroutines
// must serialize every call.
type Interpreter struct {
	config    *Config
	logger    *Logger
	out       Printer
	registry  *Registry
	cvars     *CVarStorage
	vars      VariableStore
	state     *AliasRunState
	execDepth int
	overflows int
}

// New creates a new interpreter. A nil config means DefaultConfig().
func New(config *Config) *Interpreter {
	if config == nil {
		config = DefaultConfig()
	} else {
		// Defaults are filled in on a copy; the caller's Config is left alone
		c := *config
		config = &c
	}
	if config.MaxAliasDepth <= 0 {
		config.MaxAliasDepth = DefaultMaxAliasDepth
	}
	if config.MaxExecDepth <= 0 {
		config.MaxExecDepth = DefaultMaxExecDepth
	}

	out := config.Output
	if out == nil {
		out = NewConsolePrinter(nil, nil)
	}
	vars := config.Variables
	if vars == nil {
		vars = NewMapVariables()
	}

	logger := NewLogger(config.Debug, out)
	if len(config.DebugCategories) == 0 {
		logger.EnableAllCategories()
	}
	for _, cat := range config.DebugCategories {
		logger.EnableCategory(cat)
	}

	registry := NewRegistry(logger, out)

	return &Interpreter{
		config:   config,
		logger:   logger,
		out:      out,
		registry: registry,
		cvars:    NewCVarStorage(registry, logger, out),
		vars:     vars,
		state:    NewAliasRunState(logger),
	}
}

// Config returns the configuration in use
func (in *Interpreter) Config() *Config {
	return in.config
}

// Logger returns the interpreter's logger
func (in *Interpreter) Logger() *Logger {
	return in.logger
}

// Output returns the output sink
func (in *Interpreter) Output() Printer {
	return in.out
}

// Registry returns the command registry
func (in *Interpreter) Registry() *Registry {
	return in.registry
}

// CVars returns the CVAR storage
func (in *Interpreter) CVars() *CVarStorage {
	return in.cvars
}

// Variables returns the variable store
func (in *Interpreter) Variables() VariableStore {
	return in.vars
}

// AliasState returns the loop/toggle tracker
func (in *Interpreter) AliasState() *AliasRunState {
	return in.state
}

// AliasOverflows returns how many times alias expansion hit MaxAliasDepth
func (in *Interpreter) AliasOverflows() int {
	return in.overflows
}

// Print sends text to the output sink
func (in *Interpreter) Print(level OutputLevel, text string) {
	in.out.Print(level, text)
}

// RegisterCommand registers a command handler
func (in *Interpreter) RegisterCommand(name string, minArgs, maxArgs uint8, handler Handler, usage string) (*Command, error) {
	return in.registry.Register(name, minArgs, maxArgs, handler, usage, nil)
}

// RegisterCommandWithData registers a command handler carrying host data
func (in *Interpreter) RegisterCommandWithData(name string, minArgs, maxArgs uint8, handler Handler, usage string, data interface{}) (*Command, error) {
	return in.registry.Register(name, minArgs, maxArgs, handler, usage, data)
}

// UnregisterCommand removes a command (or a CVAR's command, dropping the CVAR)
func (in *Interpreter) UnregisterCommand(name string) bool {
	return in.registry.Unregister(name)
}

// BindCvar binds a host value as a CVAR
func (in *Interpreter) BindCvar(name string, value Value, usage string) (*CVar, error) {
	return in.cvars.Bind(name, value, usage)
}

// UnbindCvar removes a CVAR
func (in *Interpreter) UnbindCvar(name string) bool {
	return in.cvars.Unbind(name)
}

// ParseLine runs every statement in text
func (in *Interpreter) ParseLine(text string, origin Origin) {
	in.ParseLineAt(text, origin, "")
}

// ParseLineAt runs text, reporting positions against filename
func (in *Interpreter) ParseLineAt(text string, origin Origin, filename string) {
	p := newParser(in, text, origin, filename)
	p.parse()
}

// RunLoopAliasesOnce runs the body of every active loop alias once.
// Hosts call it once per tick.
func (in *Interpreter) RunLoopAliasesOnce() {
	for _, name := range in.state.LoopAliases() {
		body, ok := in.vars.Get(name)
		if !ok {
			// The alias was deleted without going through the alias command
			in.state.StopLoop(name)
			continue
		}
		in.ParseLine(body, FromLoopAlias)
	}
}
