package sweatci

import (
	"errors"
	"fmt"
	"strings"
)

// TokenKind identifies what a token means to the statement loop
type TokenKind int

const (
	TokenNothing TokenKind = iota // No token emitted yet
	TokenString                   // Bare word or quoted string used as data
	TokenCommand                  // Bare word naming a registered command
	TokenEOF                      // End of the input buffer
	TokenEOS                      // End of statement (';' or newline)
)

// String returns the kind name used in debug output
func (k TokenKind) String() string {
	switch k {
	case TokenNothing:
		return "NOTHING"
	case TokenString:
		return "STRING"
	case TokenCommand:
		return "COMMAND"
	case TokenEOF:
		return "EOF"
	case TokenEOS:
		return "EOS"
	}
	return "UNKNOWN"
}

// Token is a single lexical unit produced by a Tokenizer
type Token struct {
	Kind   TokenKind
	Text   string
	Line   int
	Column int
}

// String formats the token for debug logging
func (t Token) String() string {
	return fmt.Sprintf("Token(%s, %q)", t.Kind, t.Text)
}

// Origin records where a statement came from
type Origin uint16

const (
	FromAlias     Origin = 1 << iota // Reached through an alias body
	FromLoopAlias                    // Run by RunLoopAliasesOnce
	FromFile                         // Run by exec / ExecFile
	FromConsole                      // Typed by the user
	FromInternal                     // Run by host code rather than a user
)

// Has reports whether every bit of flag is set
func (o Origin) Has(flag Origin) bool {
	return o&flag == flag
}

// String lists the set flags, e.g. "console|alias"
func (o Origin) String() string {
	if o == 0 {
		return "none"
	}
	names := []struct {
		flag Origin
		name string
	}{
		{FromAlias, "alias"},
		{FromLoopAlias, "loop_alias"},
		{FromFile, "file"},
		{FromConsole, "console"},
		{FromInternal, "internal"},
	}
	var parts []string
	for _, n := range names {
		if o.Has(n.flag) {
			parts = append(parts, n.name)
		}
	}
	return strings.Join(parts, "|")
}

// SourcePosition tracks where a statement was read from
type SourcePosition struct {
	Filename string
	Line     int
	Column   int
}

// Context is passed to command handlers
type Context struct {
	Args     []string
	Command  *Command
	Position SourcePosition
	Origin   Origin
	interp   *Interpreter
}

// Interpreter returns the interpreter running the command
func (c *Context) Interpreter() *Interpreter {
	return c.interp
}

// Variables returns the variable store of the running interpreter
func (c *Context) Variables() VariableStore {
	return c.interp.vars
}

// Print sends text to the interpreter's output sink
func (c *Context) Print(level OutputLevel, text string) {
	c.interp.out.Print(level, text)
}

// Printf formats and sends text to the interpreter's output sink
func (c *Context) Printf(level OutputLevel, format string, args ...interface{}) {
	c.interp.out.Print(level, fmt.Sprintf(format, args...))
}

// PrintUsage prints the usage line of the running command
func (c *Context) PrintUsage() {
	if c.Command != nil {
		c.interp.registry.PrintUsage(c.Command)
	}
}

// Handler is a function that handles a command
type Handler func(*Context)

// Config holds configuration for an Interpreter
type Config struct {
	Debug               bool
	DebugCategories     []LogCategory
	MaxAliasDepth       int
	ReportAliasOverflow bool
	MaxExecDepth        int
	Output              Printer
	Variables           VariableStore
}

const (
	DefaultMaxAliasDepth = 50000
	DefaultMaxExecDepth  = 32
)

// DefaultConfig returns default configuration
func DefaultConfig() *Config {
	return &Config{
		Debug:               false,
		MaxAliasDepth:       DefaultMaxAliasDepth,
		ReportAliasOverflow: false,
		MaxExecDepth:        DefaultMaxExecDepth,
	}
}

var (
	ErrCommandExists = errors.New("command already exists")
	ErrInvalidArity  = errors.New("minimum arguments exceed maximum arguments")
	ErrInvalidName   = errors.New("invalid name")
	ErrNilHandler    = errors.New("nil command handler")
	ErrInvalidValue  = errors.New("invalid value")
	ErrUnknownCvar   = errors.New("unknown cvar")
)

// ScriptError is an error with position information
type ScriptError struct {
	Message  string
	Position SourcePosition
	Err      error
}

func (e *ScriptError) Error() string {
	if e.Position.Filename == "" {
		return e.Message
	}
	if e.Position.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", e.Position.Filename, e.Position.Line, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Position.Filename, e.Message)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}
